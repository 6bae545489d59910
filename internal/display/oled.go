// Package display renders text rows on the monochrome OLED.
package display

import (
	"fmt"
	"image"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/sweeney/risk-monitor/internal/hw"
)

// Face is the font used for every row. Glyphs are 7x13 pixels.
var Face = basicfont.Face7x13

// Drawer is the panel the framebuffer is flushed to.
type Drawer interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

// OLED keeps a 1-bit framebuffer and pushes it to the panel after each change.
type OLED struct {
	mu  sync.Mutex
	dev Drawer
	fb  *image1bit.VerticalLSB
}

// New wraps dev.
func New(dev Drawer) *OLED {
	return &OLED{
		dev: dev,
		fb:  image1bit.NewVerticalLSB(dev.Bounds()),
	}
}

// Open initialises an SSD1306 on bus with the default 128x64 geometry.
func Open(bus i2c.Bus) (*OLED, error) {
	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return nil, fmt.Errorf("ssd1306: %w", err)
	}
	return New(dev), nil
}

// ClearScreen fills the screen with c.
func (o *OLED) ClearScreen(c hw.Color) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	draw.Draw(o.fb, o.fb.Bounds(), &image.Uniform{C: bit(c)}, image.Point{}, draw.Src)
	return o.flush()
}

// PutString draws text with its top-left corner at (x, y) over a bg box.
func (o *OLED) PutString(x, y int, text string, fg, bg hw.Color) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	w := font.MeasureString(Face, text).Ceil()
	box := image.Rect(x, y, x+w, y+Face.Height).Intersect(o.fb.Bounds())
	draw.Draw(o.fb, box, &image.Uniform{C: bit(bg)}, image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  o.fb,
		Src:  &image.Uniform{C: bit(fg)},
		Face: Face,
		Dot:  fixed.P(x, y+Face.Ascent),
	}
	d.DrawString(text)
	return o.flush()
}

// Close turns the panel off when it supports halting.
func (o *OLED) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if h, ok := o.dev.(interface{ Halt() error }); ok {
		return h.Halt()
	}
	return nil
}

func (o *OLED) flush() error {
	if err := o.dev.Draw(o.dev.Bounds(), o.fb, image.Point{}); err != nil {
		return fmt.Errorf("flush display: %w", err)
	}
	return nil
}

func bit(c hw.Color) image1bit.Bit {
	return image1bit.Bit(c != hw.Black)
}
