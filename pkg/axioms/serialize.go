package axioms

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/tetradb/tetra/pkg/spo"
)

// Serialized form: one version byte, a uvarint axiom count, then the
// entries. Version 1 writes each entry as a uvarint key length followed by
// the canonical key bytes. Version 0 is the legacy layout of three raw
// big-endian term handles per entry; it is decoded but never written.
const (
	versionLegacyTermIDs byte = 0
	versionCanonicalKeys byte = 1
)

// maxKeyLen bounds a version-1 key record. Canonical keys are a few dozen
// bytes; anything past this is corruption and is rejected before allocating.
const maxKeyLen = 1024

var (
	ErrUnknownVersion = errors.New("unknown axiom serialization version")
	ErrCorrupt        = errors.New("corrupt axiom record")
)

var decoders = map[byte]func(*Set, *bytes.Reader) error{
	versionLegacyTermIDs: decodeLegacyTermIDs,
	versionCanonicalKeys: decodeCanonicalKeys,
}

// MarshalBinary serializes the built set in the current format. It fails
// with ErrNotBuilt on an unbuilt set.
func (s *Set) MarshalBinary() ([]byte, error) {
	if s.index == nil {
		return nil, ErrNotBuilt
	}

	var buf bytes.Buffer
	var scratch [binary.MaxVarintLen64]byte

	buf.WriteByte(versionCanonicalKeys)
	n := binary.PutUvarint(scratch[:], uint64(s.index.Count())) // #nosec G115 - count is never negative
	buf.Write(scratch[:n])

	for it := s.index.Range(); it.Next(); {
		key := it.Key()
		n = binary.PutUvarint(scratch[:], uint64(len(key))) // #nosec G115 - length is never negative
		buf.Write(scratch[:n])
		buf.Write(key)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary rebuilds the set from a serialized record, accepting any
// supported version. An unrecognized version byte is rejected before
// anything else is read. It fails with ErrAlreadyBuilt if the set was
// already built, and leaves the set unbuilt on any decode failure.
func (s *Set) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	version, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("reading version byte: %w", err)
	}
	decode, ok := decoders[version]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownVersion, version)
	}
	return decode(s, r)
}

// readCount reads the axiom count, rejecting values past the 32-bit signed
// bound.
func readCount(r *bytes.Reader) (int, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return 0, fmt.Errorf("reading axiom count: %w", err)
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: axiom count %d out of range", ErrCorrupt, n)
	}
	return int(n), nil
}

func decodeLegacyTermIDs(s *Set, r *bytes.Reader) error {
	n, err := readCount(r)
	if err != nil {
		return err
	}
	index, err := s.buildIndex(n)
	if err != nil {
		return err
	}

	var handle [8]byte
	for i := 0; i < n; i++ {
		var ids [3]spo.ID
		for j := range ids {
			if _, err := io.ReadFull(r, handle[:]); err != nil {
				return fmt.Errorf("reading term handle: %w", err)
			}
			ids[j] = spo.NewTermID(binary.BigEndian.Uint64(handle[:]))
		}
		index.Insert(spo.EncodeKey(ids[0], ids[1], ids[2]), byte(spo.KindAxiom))
	}

	s.index = index
	return nil
}

func decodeCanonicalKeys(s *Set, r *bytes.Reader) error {
	n, err := readCount(r)
	if err != nil {
		return err
	}
	index, err := s.buildIndex(n)
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		keyLen, err := binary.ReadUvarint(r)
		if err != nil {
			return fmt.Errorf("reading key length: %w", err)
		}
		if keyLen > maxKeyLen {
			return fmt.Errorf("%w: key length %d exceeds %d", ErrCorrupt, keyLen, maxKeyLen)
		}
		key := make([]byte, keyLen)
		if _, err := io.ReadFull(r, key); err != nil {
			return fmt.Errorf("reading key: %w", err)
		}
		sub, pred, obj, err := spo.DecodeKey(key)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		index.Insert(spo.EncodeKey(sub, pred, obj), byte(spo.KindAxiom))
	}

	s.index = index
	return nil
}
