// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "fmt"

// Decoder reads a value whose type ID has already been consumed.
type Decoder[T Typed] func(*Packer) (T, error)

// TypeParser maps type IDs to their decoders.
type TypeParser[T Typed] struct {
	indexToDecoder map[uint8]Decoder[T]
}

func NewTypeParser[T Typed]() *TypeParser[T] {
	return &TypeParser[T]{
		indexToDecoder: map[uint8]Decoder[T]{},
	}
}

// Register associates the type ID of [o] with [f].
func (p *TypeParser[T]) Register(o T, f Decoder[T]) error {
	index := o.GetTypeID()
	if _, ok := p.indexToDecoder[index]; ok {
		return fmt.Errorf("%w: type %d (%T)", ErrDuplicateItem, index, o)
	}
	p.indexToDecoder[index] = f
	return nil
}

func (p *TypeParser[T]) LookupIndex(index uint8) (Decoder[T], bool) {
	f, ok := p.indexToDecoder[index]
	return f, ok
}

// Unmarshal reads a type ID followed by the value it identifies. [b] must
// hold exactly one value.
func (p *TypeParser[T]) Unmarshal(b []byte, limit int) (T, error) {
	var zero T
	r := NewReader(b, limit)
	index := r.UnpackByte()
	if err := r.Err(); err != nil {
		return zero, err
	}
	f, ok := p.LookupIndex(index)
	if !ok {
		return zero, fmt.Errorf("%w: %d", ErrUnknownType, index)
	}
	v, err := f(r)
	if err != nil {
		return zero, err
	}
	if !r.Empty() {
		return zero, fmt.Errorf("%w: %d bytes remaining", ErrExtraBytes, len(b)-r.Offset())
	}
	return v, nil
}

// Marshaler is a [Typed] value that can write its own fields.
type Marshaler interface {
	Typed

	Marshal(p *Packer)
}

// MarshalTyped writes the type ID of [v] followed by its fields.
func MarshalTyped(v Marshaler, limit int) ([]byte, error) {
	p := NewWriter(128, limit)
	p.PackByte(v.GetTypeID())
	v.Marshal(p)
	return p.Bytes(), p.Err()
}
