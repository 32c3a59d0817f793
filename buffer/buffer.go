// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package buffer implements the typed CPU buffer / GPU mirror model: a
// Buffer carries a linear array tagged with a format and element count,
// optionally aliasing a Block field, and lazily mirrors its content to
// a GPU buffer once a consumer requests it. Views record byte offset
// and stride against shared storage instead of deep-copying.
package buffer

import (
	"os"

	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
)

const pkgName = "buffer"

func newErr(code errs.Code, reason string) error { return errs.New(pkgName, code, reason) }

// Consumer identifies a subsystem that requested GPU mirroring of a
// Buffer, contributing its own usage bits to the eventual GPU allocation.
type Consumer int

// Consumers.
const (
	ConsumerGeometry Consumer = 1 << iota
	ConsumerTextureSource
	ConsumerDrawBinding
)

// usageFor maps a consumer set to the GPU usage flags it requires.
func usageFor(consumers Consumer) gpu.Usage {
	u := gpu.UsageTransferDst
	if consumers&ConsumerGeometry != 0 {
		u |= gpu.UsageVertex | gpu.UsageIndex
	}
	if consumers&ConsumerDrawBinding != 0 {
		u |= gpu.UsageUniform | gpu.UsageStorage
	}
	if consumers&ConsumerTextureSource != 0 {
		u |= gpu.UsageStorage
	}
	return u
}

// Buffer is a typed linear array of elements in format Format, optionally
// aliasing a Block field. GPU mirroring is deferred until Request is
// called by a consumer; Prepare then performs the actual transfer.
type Buffer struct {
	format linear.Format
	count  int
	stride int

	data []byte

	block      *Block
	blockField string

	dynamic bool

	consumers Consumer
	mirror    gpu.Buffer
	uploaded  bool
}

// New creates an owning Buffer of count elements in the given format,
// zero-initialized.
func New(format linear.Format, count int) (*Buffer, error) {
	if count < 0 {
		return nil, newErr(errs.InvalidArg, "negative element count")
	}
	stride := format.Size()
	return &Buffer{
		format: format,
		count:  count,
		stride: stride,
		data:   make([]byte, stride*count),
	}, nil
}

// NewFromData creates an owning Buffer whose element count is derived
// from len(data)/format.Size(); data must divide evenly.
func NewFromData(format linear.Format, data []byte) (*Buffer, error) {
	stride := format.Size()
	if stride == 0 || len(data)%stride != 0 {
		return nil, newErr(errs.InvalidData, "data size does not match element format")
	}
	cp := append([]byte(nil), data...)
	return &Buffer{format: format, count: len(data) / stride, stride: stride, data: cp}, nil
}

// NewFromFile loads a Buffer's CPU data from filename, validating the
// resulting size against the declared format and count.
func NewFromFile(format linear.Format, count int, filename string) (*Buffer, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, errs.New(pkgName, errs.IO, err.Error())
	}
	stride := format.Size()
	if len(b) != stride*count {
		return nil, newErr(errs.InvalidData, "file size does not match declared element count")
	}
	return &Buffer{format: format, count: count, stride: stride, data: b}, nil
}

// NewView creates a non-owning Buffer that aliases the named field of
// blk, inheriting its stride and byte offset.
func NewView(blk *Block, field string) (*Buffer, error) {
	f, ok := blk.Field(field)
	if !ok {
		return nil, newErr(errs.NotFound, "block has no field named "+field)
	}
	return &Buffer{
		format:     f.Format,
		count:      f.Count,
		stride:     f.Stride,
		block:      blk,
		blockField: field,
	}, nil
}

// SetDynamic marks b as re-uploaded on every update.
func (b *Buffer) SetDynamic(dynamic bool) { b.dynamic = dynamic }

// Dynamic reports whether b re-uploads its data on every update.
func (b *Buffer) Dynamic() bool { return b.dynamic }

// Format returns b's element format.
func (b *Buffer) Format() linear.Format { return b.format }

// Count returns the number of elements in b.
func (b *Buffer) Count() int { return b.count }

// Stride returns the per-element byte stride.
func (b *Buffer) Stride() int { return b.stride }

// Bytes returns b's CPU-side data, resolving through the backing block
// if b is a view.
func (b *Buffer) Bytes() []byte {
	if b.block != nil {
		return b.block.FieldBytes(b.blockField)
	}
	return b.data
}

// SetBytes overwrites b's CPU-side data; len(data) must equal
// len(b.Bytes()). Views write through to the backing block.
func (b *Buffer) SetBytes(data []byte) error {
	dst := b.Bytes()
	if len(data) != len(dst) {
		return newErr(errs.InvalidArg, "data size does not match buffer size")
	}
	copy(dst, data)
	b.uploaded = false
	return nil
}

// Request registers consumer as requiring a GPU mirror of b. It is a
// no-op if consumer was already registered.
func (b *Buffer) Request(consumer Consumer) { b.consumers |= consumer }

// Requested reports whether any consumer has requested a GPU mirror.
func (b *Buffer) Requested() bool { return b.consumers != 0 }

// Prepare allocates (if needed) and uploads the GPU mirror, honoring
// the lazy-upload gate: nothing happens unless a consumer has called
// Request.
func (b *Buffer) Prepare(ctx gpu.GpuCtx) error {
	if !b.Requested() {
		return nil
	}
	return b.upload(ctx, int64(len(b.Bytes())))
}

func (b *Buffer) upload(ctx gpu.GpuCtx, size int64) error {
	if b.mirror == nil {
		m, err := ctx.NewBuffer(size, usageFor(b.consumers))
		if err != nil {
			return err
		}
		b.mirror = m
		b.uploaded = false
	}
	if !b.uploaded || b.dynamic {
		if err := b.mirror.Write(0, b.Bytes()); err != nil {
			return err
		}
		b.uploaded = true
	}
	return nil
}

// Mirror returns b's GPU-side buffer, or nil if no consumer has
// requested one (or Prepare has not yet run).
func (b *Buffer) Mirror() gpu.Buffer { return b.mirror }
