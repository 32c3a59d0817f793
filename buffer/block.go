// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package buffer

import (
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
)

// BlockField describes one named field of a Block: its element format,
// element count (1 for a scalar/vector field, >1 for an array field), and
// its byte layout within the block's contiguous memory.
type BlockField struct {
	Name   string
	Format linear.Format
	Count  int
	Offset int
	Stride int
}

// Block is a named, std140/std430-like struct description: an ordered
// list of fields over one contiguous CPU memory region. Buffer nodes may
// create a non-owning view onto one of its fields.
type Block struct {
	name   string
	fields []BlockField
	data   []byte
	rev    uint64
}

// NewBlock lays out fields in order, packing each one at the next offset
// aligned to its own element size (the std140/std430 "base alignment"
// simplification this engine uses: every scalar/vector type aligns to
// its own size, and array elements are padded to their stride).
func NewBlock(name string, fields []BlockField) (*Block, error) {
	if len(fields) == 0 {
		return nil, errs.New(pkgName, errs.InvalidArg, "Block requires at least one field")
	}
	laid := make([]BlockField, len(fields))
	offset := 0
	for i, f := range fields {
		if f.Count < 1 {
			f.Count = 1
		}
		elemSize := f.Format.Size()
		if elemSize == 0 {
			return nil, errs.New(pkgName, errs.InvalidArg, "field "+f.Name+" has a zero-size format")
		}
		offset = align(offset, elemSize)
		if f.Stride == 0 {
			f.Stride = elemSize
		}
		f.Offset = offset
		laid[i] = f
		offset += f.Stride * f.Count
	}
	return &Block{name: name, fields: laid, data: make([]byte, offset)}, nil
}

func align(offset, a int) int {
	if a <= 1 {
		return offset
	}
	if rem := offset % a; rem != 0 {
		offset += a - rem
	}
	return offset
}

// Name returns the block's name.
func (b *Block) Name() string { return b.name }

// Size returns the block's total CPU-side byte size.
func (b *Block) Size() int { return len(b.data) }

// Bytes returns the block's full contiguous CPU memory.
func (b *Block) Bytes() []byte { return b.data }

// Field returns the layout of the named field and whether it exists.
func (b *Block) Field(name string) (BlockField, bool) {
	for _, f := range b.fields {
		if f.Name == name {
			return f, true
		}
	}
	return BlockField{}, false
}

// FieldBytes returns the byte range belonging to the named field, or nil
// if no such field exists.
func (b *Block) FieldBytes(name string) []byte {
	f, ok := b.Field(name)
	if !ok {
		return nil
	}
	n := f.Stride * f.Count
	return b.data[f.Offset : f.Offset+n]
}

// Fields returns the block's field list in declaration order.
func (b *Block) Fields() []BlockField { return append([]BlockField(nil), b.fields...) }

// Revision returns the block's content revision. Consumers cache the
// revision they last uploaded and re-push only when it differs.
func (b *Block) Revision() uint64 { return b.rev }

// Bump records a content change, advancing the revision.
func (b *Block) Bump() { b.rev++ }
