package encoding

import (
	"golang.org/x/exp/constraints"
)

func write2(dst []byte, n uint16) []byte {
	return append(dst, byte(n>>8), byte(n))
}

func write4(dst []byte, n uint32) []byte {
	return append(
		dst,
		byte(n>>24),
		byte(n>>16),
		byte(n>>8),
		byte(n),
	)
}

func write8(dst []byte, n uint64) []byte {
	return append(
		dst,
		byte(n>>56),
		byte(n>>48),
		byte(n>>40),
		byte(n>>32),
		byte(n>>24),
		byte(n>>16),
		byte(n>>8),
		byte(n),
	)
}

// decodeSigned decodes b as a sequence of big-endian two's complement
// integers of the given width.
func decodeSigned[T constraints.Signed](b []byte, width int) []T {
	out := make([]T, len(b)/width)
	for i := range out {
		var x uint64
		for _, c := range b[i*width : (i+1)*width] {
			x = x<<8 | uint64(c)
		}
		out[i] = T(x)
	}

	return out
}

// appendSigned is the inverse of decodeSigned.
func appendSigned[T constraints.Signed](dst []byte, values []T, width int) []byte {
	for _, v := range values {
		x := uint64(v)
		for shift := (width - 1) * 8; shift >= 0; shift -= 8 {
			dst = append(dst, byte(x>>shift))
		}
	}

	return dst
}
