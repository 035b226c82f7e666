package spo

import "fmt"

// EncodeQuadKey concatenates identifiers into an index key for one of the
// store's permutation tables. Identifier byte order makes the result sort
// lexicographically by component.
func EncodeQuadKey(ids ...ID) []byte {
	size := 0
	for _, id := range ids {
		size += len(id)
	}
	key := make([]byte, 0, size)
	for _, id := range ids {
		key = append(key, id...)
	}
	return key
}

// EncodeKey builds the canonical subject-predicate-object key a statement is
// identified by. The graph component never participates.
func EncodeKey(s, p, o ID) []byte {
	return EncodeQuadKey(s, p, o)
}

// DecodeKey parses a canonical key back into its three identifiers. It fails
// unless the key holds exactly three with no trailing bytes.
func DecodeKey(key []byte) (s, p, o ID, err error) {
	ids, err := SplitKey(key, 3)
	if err != nil {
		return nil, nil, nil, err
	}
	return ids[0], ids[1], ids[2], nil
}

// SplitKey parses a key into exactly n identifiers.
func SplitKey(key []byte, n int) ([]ID, error) {
	ids := make([]ID, 0, n)
	rest := key
	for i := 0; i < n; i++ {
		id, size, err := DecodeID(rest)
		if err != nil {
			return nil, fmt.Errorf("%w: component %d: %v", ErrInvalidKey, i, err)
		}
		ids = append(ids, id)
		rest = rest[size:]
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidKey, len(rest))
	}
	return ids, nil
}
