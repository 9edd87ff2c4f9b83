package kv

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"chocolate/pkg/platform/sentinel"
)

// Values are stored as deterministic (core) CBOR so identical state always
// produces identical bytes across backends.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("kv: build cbor encoder: %v", err))
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("kv: build cbor decoder: %v", err))
	}
}

// Marshal encodes v with the deterministic encoder.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// GetValue loads and decodes the value at key.
func GetValue[T any](ctx context.Context, r Reader, key []byte) (T, error) {
	var v T
	raw, err := r.Get(ctx, key)
	if err != nil {
		return v, err
	}
	if err := Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode %q: %w", key, err)
	}
	return v, nil
}

// GetValueOr is GetValue, returning fallback when the key is absent.
func GetValueOr[T any](ctx context.Context, r Reader, key []byte, fallback T) (T, error) {
	v, err := GetValue[T](ctx, r, key)
	if errors.Is(err, sentinel.ErrNotFound) {
		return fallback, nil
	}
	return v, err
}

// PutValue encodes and stores v at key.
func PutValue(ctx context.Context, s Store, key []byte, v any) error {
	raw, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.Put(ctx, key, raw)
}

// GetUint32 reads a 4-byte big-endian counter. A missing key reads as 0.
func GetUint32(ctx context.Context, r Reader, key []byte) (uint32, error) {
	raw, err := r.Get(ctx, key)
	if errors.Is(err, sentinel.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(raw) != 4 {
		return 0, fmt.Errorf("counter %q has %d bytes: %w", key, len(raw), sentinel.ErrInvalidState)
	}
	return binary.BigEndian.Uint32(raw), nil
}

// PutUint32 writes a 4-byte big-endian counter.
func PutUint32(ctx context.Context, s Store, key []byte, n uint32) error {
	return s.Put(ctx, key, binary.BigEndian.AppendUint32(nil, n))
}
