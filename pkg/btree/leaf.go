package btree

import (
	"bytes"
	"sort"
)

// Leaf is an ordered index held in a single node: sorted keys with one value
// byte each. It serves index workloads that are built once, stay small
// enough for the root leaf, and are then only read.
type Leaf struct {
	keys   [][]byte
	values []byte
}

// New allocates a leaf sized for branchingFactor entries. The capacity is a
// hint; the leaf grows past it if needed. A factor below one is treated as
// one so an empty index can still be built.
func New(branchingFactor int) *Leaf {
	if branchingFactor < 1 {
		branchingFactor = 1
	}
	return &Leaf{
		keys:   make([][]byte, 0, branchingFactor),
		values: make([]byte, 0, branchingFactor),
	}
}

// Insert stores value under key, keeping keys in ascending order. Inserting
// an existing key replaces its value. The key bytes are copied.
func (l *Leaf) Insert(key []byte, value byte) {
	i := l.search(key)
	if i < len(l.keys) && bytes.Equal(l.keys[i], key) {
		l.values[i] = value
		return
	}

	k := append([]byte(nil), key...)
	l.keys = append(l.keys, nil)
	copy(l.keys[i+1:], l.keys[i:])
	l.keys[i] = k

	l.values = append(l.values, 0)
	copy(l.values[i+1:], l.values[i:])
	l.values[i] = value
}

// Contains reports whether key is present.
func (l *Leaf) Contains(key []byte) bool {
	i := l.search(key)
	return i < len(l.keys) && bytes.Equal(l.keys[i], key)
}

// Count returns the number of entries.
func (l *Leaf) Count() int {
	return len(l.keys)
}

// Range returns a fresh iterator over all entries in ascending key order.
func (l *Leaf) Range() *Iterator {
	return &Iterator{leaf: l, pos: -1}
}

func (l *Leaf) search(key []byte) int {
	return sort.Search(len(l.keys), func(i int) bool {
		return bytes.Compare(l.keys[i], key) >= 0
	})
}

// Iterator walks a leaf's entries in ascending key order.
type Iterator struct {
	leaf *Leaf
	pos  int
}

// Next advances to the next entry.
func (it *Iterator) Next() bool {
	if it.pos+1 >= len(it.leaf.keys) {
		return false
	}
	it.pos++
	return true
}

// Key returns the current key.
func (it *Iterator) Key() []byte {
	if it.pos < 0 || it.pos >= len(it.leaf.keys) {
		return nil
	}
	return it.leaf.keys[it.pos]
}

// Value returns the current value byte.
func (it *Iterator) Value() byte {
	if it.pos < 0 || it.pos >= len(it.leaf.keys) {
		return 0
	}
	return it.leaf.values[it.pos]
}
