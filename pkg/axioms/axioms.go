// Package axioms maintains the statements a store treats as unconditionally
// true. The set is built exactly once, when a store is created or reopened,
// and is immutable afterwards.
package axioms

import (
	"errors"

	"github.com/tetradb/tetra/pkg/btree"
	"github.com/tetradb/tetra/pkg/spo"
)

var (
	ErrNotBuilt     = errors.New("axiom index not built")
	ErrAlreadyBuilt = errors.New("axiom index already built")
	ErrNilCatalog   = errors.New("nil axiom catalog")
	ErrNilWriter    = errors.New("nil statement writer")
	ErrNilSink      = errors.New("nil axiom sink")
)

// OrderedIndex is the ordered structure the set keeps canonical keys in.
// Implementations must keep keys unique and iterate them in ascending byte
// order.
type OrderedIndex interface {
	Insert(key []byte, value byte)
	Contains(key []byte) bool
	Count() int
	Range() OrderedIterator
}

// OrderedIterator walks index entries in ascending key order.
type OrderedIterator interface {
	Next() bool
	Key() []byte
	Value() byte
}

// minBranchingFactor is the smallest index allocation; the build step sizes
// the index to the axiom count so the whole set fits a single node.
const minBranchingFactor = 3

// Set is a store's axiom set: a membership index over canonical
// subject-predicate-object keys. A zero Set is unbuilt; exactly one of Init
// or UnmarshalBinary builds it. Once built it is immutable and safe for
// concurrent readers without synchronization.
type Set struct {
	index    OrderedIndex
	newIndex func(branchingFactor int) OrderedIndex
}

// Option configures a Set before it is built.
type Option func(*Set)

// WithIndex overrides the ordered index implementation backing the set.
func WithIndex(factory func(branchingFactor int) OrderedIndex) Option {
	return func(s *Set) { s.newIndex = factory }
}

func NewSet(opts ...Option) *Set {
	s := &Set{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type leafIndex struct {
	*btree.Leaf
}

func (li leafIndex) Range() OrderedIterator {
	return li.Leaf.Range()
}

func defaultIndex(branchingFactor int) OrderedIndex {
	return leafIndex{btree.New(branchingFactor)}
}

// buildIndex allocates the index for n axioms. It fails if the set was
// already built; the caller assigns the returned index only after
// populating it, so a failed build never exposes a partial set.
func (s *Set) buildIndex(n int) (OrderedIndex, error) {
	if s.index != nil {
		return nil, ErrAlreadyBuilt
	}
	factory := s.newIndex
	if factory == nil {
		factory = defaultIndex
	}
	branchingFactor := n
	if branchingFactor < minBranchingFactor {
		branchingFactor = minBranchingFactor
	}
	return factory(branchingFactor), nil
}

// IsAxiom reports whether the statement (sub, pred, obj) is in the set. An
// absent component is never axiomatic and returns false without encoding a
// key. The graph a statement appears in never matters here.
func (s *Set) IsAxiom(sub, pred, obj spo.ID) (bool, error) {
	if s.index == nil {
		return false, ErrNotBuilt
	}
	if len(sub) == 0 || len(pred) == 0 || len(obj) == 0 {
		return false, nil
	}
	return s.index.Contains(spo.EncodeKey(sub, pred, obj)), nil
}

// Size returns the number of distinct axioms.
func (s *Set) Size() (int, error) {
	if s.index == nil {
		return 0, ErrNotBuilt
	}
	return s.index.Count(), nil
}

// Axioms returns a fresh iterator over the set in canonical key order. Each
// call starts over from the first axiom.
func (s *Set) Axioms() (*Iterator, error) {
	if s.index == nil {
		return nil, ErrNotBuilt
	}
	return &Iterator{it: s.index.Range()}, nil
}

// Iterator yields a set's axioms in ascending canonical key order.
type Iterator struct {
	it OrderedIterator
}

// Next advances to the next axiom.
func (it *Iterator) Next() bool {
	return it.it.Next()
}

// Statement decodes the current entry back into its identifiers.
func (it *Iterator) Statement() (spo.Statement, error) {
	sub, pred, obj, err := spo.DecodeKey(it.it.Key())
	if err != nil {
		return spo.Statement{}, err
	}
	return spo.Statement{
		Subject:   sub,
		Predicate: pred,
		Object:    obj,
		Kind:      spo.Kind(it.it.Value()),
	}, nil
}
