package filter

// PosterizeTable builds the per-channel lookup table that reduces each 8-bit
// channel to the given number of levels. Levels outside 2-255 are clamped.
func PosterizeTable(levels int) [256]uint8 {
	if levels < 2 {
		levels = 2
	}
	if levels > 255 {
		levels = 255
	}

	var lut [256]uint8
	steps := levels - 1
	for v := 0; v < 256; v++ {
		bucket := (v * levels) >> 8
		lut[v] = uint8(bucket * 255 / steps)
	}
	return lut
}
