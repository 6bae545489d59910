package gpio

import "sync"

// FakeSegment is a test double that records every glyph shown.
type FakeSegment struct {
	mu sync.Mutex

	// Glyphs contains every glyph passed to SetChar, in order.
	Glyphs []byte

	// SetError, if set, will be returned by SetChar.
	SetError error
}

// NewFakeSegment creates a FakeSegment.
func NewFakeSegment() *FakeSegment {
	return &FakeSegment{}
}

// SetChar records glyph.
func (f *FakeSegment) SetChar(glyph byte, dot bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SetError != nil {
		return f.SetError
	}
	f.Glyphs = append(f.Glyphs, glyph)
	return nil
}

// Current returns the last glyph shown, or 0 if none.
func (f *FakeSegment) Current() byte {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.Glyphs) == 0 {
		return 0
	}
	return f.Glyphs[len(f.Glyphs)-1]
}

// History returns a copy of every glyph shown.
func (f *FakeSegment) History() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return string(f.Glyphs)
}
