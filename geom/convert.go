// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package geom

import (
	"encoding/binary"
	"math"
)

func float32sToBytes(vs []float32) []byte {
	b := make([]byte, len(vs)*4)
	for i, v := range vs {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

func uint16sToBytes(vs []uint16) []byte {
	b := make([]byte, len(vs)*2)
	for i, v := range vs {
		binary.LittleEndian.PutUint16(b[i*2:], v)
	}
	return b
}
