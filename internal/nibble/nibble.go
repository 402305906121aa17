package nibble

const (
	HighMask uint8 = 0xF0
	LowMask  uint8 = 0x0F
	Shift          = 4
)

// Embed writes (carrier & 0xF0) | (secret >> 4) into dst element by element.
// All three slices must have the same length.
func Embed(dst, carrier, secret []uint8) {
	if len(carrier) == 0 {
		return
	}
	_ = dst[len(carrier)-1]
	_ = secret[len(carrier)-1]
	for i, c := range carrier {
		dst[i] = (c & HighMask) | (secret[i] >> Shift)
	}
}

// EmbedMasked is Embed for a carrier whose low nibbles are already cleared.
func EmbedMasked(dst, masked, secret []uint8) {
	if len(masked) == 0 {
		return
	}
	_ = dst[len(masked)-1]
	_ = secret[len(masked)-1]
	for i, c := range masked {
		dst[i] = c | (secret[i] >> Shift)
	}
}

// Mask clears the low nibble of every element of src into dst.
func Mask(dst, src []uint8) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1]
	for i, v := range src {
		dst[i] = v & HighMask
	}
}

// Extract moves the low nibble of every element of src into the high nibble of dst.
func Extract(dst, src []uint8) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1]
	for i, v := range src {
		dst[i] = (v & LowMask) << Shift
	}
}
