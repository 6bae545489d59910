package display

import (
	"sort"
	"sync"

	"github.com/sweeney/risk-monitor/internal/hw"
)

// FakeDisplay is a test double that records text by pixel row.
type FakeDisplay struct {
	mu sync.Mutex

	rows map[int]string

	// Clears counts calls to ClearScreen.
	Clears int

	// WriteError, if set, will be returned by PutString.
	WriteError error
}

// NewFakeDisplay creates an empty FakeDisplay.
func NewFakeDisplay() *FakeDisplay {
	return &FakeDisplay{rows: make(map[int]string)}
}

// ClearScreen drops every recorded row.
func (f *FakeDisplay) ClearScreen(c hw.Color) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rows = make(map[int]string)
	f.Clears++
	return nil
}

// PutString records text at row y. x is ignored.
func (f *FakeDisplay) PutString(x, y int, text string, fg, bg hw.Color) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.WriteError != nil {
		return f.WriteError
	}
	f.rows[y] = text
	return nil
}

// At returns the text shown at pixel row y.
func (f *FakeDisplay) At(y int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[y]
}

// Lines returns the shown text ordered top to bottom.
func (f *FakeDisplay) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	ys := make([]int, 0, len(f.rows))
	for y := range f.rows {
		ys = append(ys, y)
	}
	sort.Ints(ys)

	out := make([]string, len(ys))
	for i, y := range ys {
		out[i] = f.rows[y]
	}
	return out
}

// ClearCount returns the number of ClearScreen calls so far.
func (f *FakeDisplay) ClearCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Clears
}
