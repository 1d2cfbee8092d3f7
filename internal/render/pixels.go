package render

// FillRGBA unpacks packed 0xAARRGGBB cells into byte-order RGBA pixels in
// buf. Buffers too small for the frame are left untouched.
func FillRGBA(buf []byte, frame []uint32) {
	if len(buf) < 4*len(frame) {
		return
	}
	for i, p := range frame {
		base := i * 4
		buf[base+0] = uint8(p >> 16)
		buf[base+1] = uint8(p >> 8)
		buf[base+2] = uint8(p)
		buf[base+3] = uint8(p >> 24)
	}
}
