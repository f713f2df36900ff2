// Package metadata implements the durable per-venv binary metadata format:
// a 7-byte self-describing header followed by a MessagePack-encoded body.
package metadata

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// magicHeader tells `file` (and us) that a .metadata file is structured
// data rather than an arbitrary blob: "UVX" + SOH + version(2) + padding.
var magicHeader = [7]byte{0x55, 0x56, 0x58, 0x01, 0x32, 0x04, 0x00}

// FormatError wraps a failure to decode a metadata file's body, so callers
// can distinguish it from I/O errors.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed metadata at %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Encode writes the header followed by the MessagePack encoding of v.
func Encode(v *Record) ([]byte, error) {
	body, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	buf := make([]byte, 0, len(magicHeader)+len(body))
	buf = append(buf, magicHeader[:]...)
	buf = append(buf, body...)
	return buf, nil
}

// Decode reads a Record from data, stripping the header if present. Data
// written before the header existed decodes from byte 0 (legacy fallback).
func Decode(data []byte) (*Record, error) {
	body := data
	if bytes.HasPrefix(data, magicHeader[:]) {
		body = data[len(magicHeader):]
	}

	var rec Record
	if err := msgpack.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal metadata body: %w", err)
	}
	return &rec, nil
}

// HasHeader reports whether data begins with the magic header.
func HasHeader(data []byte) bool {
	return bytes.HasPrefix(data, magicHeader[:])
}
