package token

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"
)

// All multi-byte integers on the wire are little-endian. Strings and byte
// blobs are prefixed with a uint16 length.

func packUint16(w io.Writer, n uint16) error {
	return binary.Write(w, binary.LittleEndian, n)
}

func packUint32(w io.Writer, n uint32) error {
	return binary.Write(w, binary.LittleEndian, n)
}

func packString(w io.Writer, s string) error {
	return packBytes(w, []byte(s))
}

func packBytes(w io.Writer, b []byte) error {
	if len(b) > 0xFFFF {
		return fmt.Errorf("value too long to pack: %d bytes", len(b))
	}
	if err := packUint16(w, uint16(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// packPrivileges writes a privilege map as uint16 count followed by
// key/expiry pairs in ascending key order. Ordering matters: the verifier
// recomputes the signature over the exact byte sequence.
func packPrivileges(w io.Writer, privileges map[uint16]uint32) error {
	if err := packUint16(w, uint16(len(privileges))); err != nil {
		return err
	}
	keys := make([]int, 0, len(privileges))
	for k := range privileges {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)
	for _, k := range keys {
		if err := packUint16(w, uint16(k)); err != nil {
			return err
		}
		if err := packUint32(w, privileges[uint16(k)]); err != nil {
			return err
		}
	}
	return nil
}

func unpackUint16(r io.Reader) (uint16, error) {
	var n uint16
	err := binary.Read(r, binary.LittleEndian, &n)
	return n, err
}

func unpackUint32(r io.Reader) (uint32, error) {
	var n uint32
	err := binary.Read(r, binary.LittleEndian, &n)
	return n, err
}

func unpackBytes(r io.Reader) ([]byte, error) {
	n, err := unpackUint16(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func unpackString(r io.Reader) (string, error) {
	b, err := unpackBytes(r)
	return string(b), err
}

func unpackPrivileges(r io.Reader) (map[uint16]uint32, error) {
	count, err := unpackUint16(r)
	if err != nil {
		return nil, err
	}
	privileges := make(map[uint16]uint32, count)
	for i := uint16(0); i < count; i++ {
		k, err := unpackUint16(r)
		if err != nil {
			return nil, err
		}
		v, err := unpackUint32(r)
		if err != nil {
			return nil, err
		}
		privileges[k] = v
	}
	return privileges, nil
}
