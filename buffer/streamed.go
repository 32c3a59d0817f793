// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package buffer

import (
	"golang.org/x/exp/slices"

	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
)

// Streamed holds a timestamp table plus a packed element buffer; it
// implements the StreamedBuffer* node family: evaluation selects the
// record whose timestamp is the largest <= t, clamped to the first
// record if t precedes all of them.
type Streamed struct {
	format     linear.Format
	stride     int
	timestamps []float64
	data       []byte
	cachedIdx  int
}

// NewStreamed builds a Streamed buffer from parallel timestamps and
// packed element records. Timestamps must be non-negative and
// non-decreasing, and len(data) must equal len(timestamps)*format.Size().
func NewStreamed(format linear.Format, timestamps []float64, data []byte) (*Streamed, error) {
	if len(timestamps) == 0 {
		return nil, errs.New(pkgName, errs.InvalidArg, "Streamed requires at least one record")
	}
	for i, ts := range timestamps {
		if ts < 0 {
			return nil, errs.New(pkgName, errs.InvalidArg, "timestamps must be non-negative")
		}
		if i > 0 && ts < timestamps[i-1] {
			return nil, errs.New(pkgName, errs.InvalidArg, "timestamps must be non-decreasing")
		}
	}
	stride := format.Size()
	if len(data) != stride*len(timestamps) {
		return nil, errs.New(pkgName, errs.InvalidData, "data size does not match timestamp count")
	}
	return &Streamed{
		format:     format,
		stride:     stride,
		timestamps: append([]float64(nil), timestamps...),
		data:       append([]byte(nil), data...),
	}, nil
}

// Record returns the element record selected for query time t.
func (s *Streamed) Record(t float64) []byte {
	i := s.findRecord(t)
	return s.data[i*s.stride : (i+1)*s.stride]
}

func (s *Streamed) findRecord(t float64) int {
	ts := s.timestamps
	if t <= ts[0] {
		return 0
	}
	if t >= ts[len(ts)-1] {
		return len(ts) - 1
	}
	i := s.cachedIdx
	if i >= 0 && i < len(ts)-1 && t >= ts[i] && t < ts[i+1] {
		return i
	}
	j, exact := slices.BinarySearchFunc(ts, t, func(a, b float64) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	})
	var idx int
	switch {
	case exact:
		idx = j
	case j == 0:
		idx = 0
	default:
		idx = j - 1
	}
	s.cachedIdx = idx
	return idx
}

// Count returns the number of records.
func (s *Streamed) Count() int { return len(s.timestamps) }
