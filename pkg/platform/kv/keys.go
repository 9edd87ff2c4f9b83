package kv

import "encoding/binary"

// Key builds "<prefix>/<suffix>". Suffixes are raw binary.
func Key(prefix string, suffix ...[]byte) []byte {
	n := len(prefix) + 1
	for _, s := range suffix {
		n += len(s)
	}
	key := make([]byte, 0, n)
	key = append(key, prefix...)
	key = append(key, '/')
	for _, s := range suffix {
		key = append(key, s...)
	}
	return key
}

// Uint32Key builds "<prefix>/<u32 big-endian>".
func Uint32Key(prefix string, n uint32) []byte {
	return Key(prefix, binary.BigEndian.AppendUint32(nil, n))
}

// CounterKey names a global counter.
func CounterKey(name string) []byte {
	return Key("counter", []byte(name))
}
