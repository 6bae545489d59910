package gpio

// Segment bits: a..g in bits 0..6, decimal point in bit 7.
const segDot = 1 << 7

var segGlyphs = map[byte]uint8{
	'0': 0x3F,
	'1': 0x06,
	'2': 0x5B,
	'3': 0x4F,
	'4': 0x66,
	'5': 0x6D,
	'6': 0x7D,
	'7': 0x07,
	'8': 0x7F,
	'9': 0x6F,
	'-': 0x40,
	' ': 0x00,
}

// Encode returns the segment mask for glyph. Unknown glyphs render blank
// and report false.
func Encode(glyph byte, dot bool) (uint8, bool) {
	mask, ok := segGlyphs[glyph]
	if dot {
		mask |= segDot
	}
	return mask, ok
}

// lineValues expands mask into one value per segment line.
func lineValues(mask uint8, activeLow bool) []int {
	values := make([]int, 8)
	for i := range values {
		on := mask&(1<<i) != 0
		if on != activeLow {
			values[i] = 1
		}
	}
	return values
}
