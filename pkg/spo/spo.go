package spo

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidID  = errors.New("invalid identifier encoding")
	ErrInvalidKey = errors.New("invalid statement key")
)

// Type is the discriminator byte leading every identifier
type Type byte

const (
	// TypeTermID is a raw numeric term handle. Stores that resolve terms
	// through an external lexicon use these; the legacy axiom format is
	// written entirely in them.
	TypeTermID Type = iota + 1

	TypeIRI
	TypeBlankNode
	TypeBlankNodeID
	TypeString
	TypeStringInline
	TypeLangString
	TypeInteger
	TypeDecimal
	TypeDouble
	TypeBoolean
	TypeDateTime
	TypeDate
	TypeDefaultGraph
)

func (t Type) String() string {
	switch t {
	case TypeTermID:
		return "termid"
	case TypeIRI:
		return "iri"
	case TypeBlankNode:
		return "bnode"
	case TypeBlankNodeID:
		return "bnodeid"
	case TypeString:
		return "string"
	case TypeStringInline:
		return "inline"
	case TypeLangString:
		return "langstring"
	case TypeInteger:
		return "integer"
	case TypeDecimal:
		return "decimal"
	case TypeDouble:
		return "double"
	case TypeBoolean:
		return "boolean"
	case TypeDateTime:
		return "datetime"
	case TypeDate:
		return "date"
	case TypeDefaultGraph:
		return "defaultgraph"
	default:
		return "unknown"
	}
}

// MaxInlineString is the longest string stored inline in an identifier
// instead of behind a hash.
const MaxInlineString = 16

// payloadWidth returns the fixed payload size for a type. Inline strings
// carry their own length byte and report ok=false here.
func payloadWidth(t Type) (int, bool) {
	switch t {
	case TypeTermID, TypeBlankNodeID, TypeInteger, TypeDecimal, TypeDouble, TypeDateTime, TypeDate:
		return 8, true
	case TypeIRI, TypeBlankNode, TypeString, TypeLangString:
		return 16, true
	case TypeBoolean:
		return 1, true
	case TypeDefaultGraph:
		return 0, true
	default:
		return 0, false
	}
}

// ID is an internal term identifier in wire form: a type byte followed by a
// type-determined payload. Identifiers are self-delimiting and prefix-free,
// so concatenating them yields keys whose byte order equals component order.
// A nil or empty ID means the component is absent.
type ID []byte

// Type returns the identifier's type discriminator, or zero if absent.
func (id ID) Type() Type {
	if len(id) == 0 {
		return 0
	}
	return Type(id[0])
}

// Payload returns the bytes after the type discriminator.
func (id ID) Payload() []byte {
	if len(id) == 0 {
		return nil
	}
	if id.Type() == TypeStringInline {
		return id[2:]
	}
	return id[1:]
}

// NeedsDictionary reports whether the identifier is a content hash that
// requires an id2str lookup to recover the original term.
func (id ID) NeedsDictionary() bool {
	switch id.Type() {
	case TypeIRI, TypeBlankNode, TypeString, TypeLangString:
		return true
	default:
		return false
	}
}

// Equal reports byte equality of two identifiers.
func (id ID) Equal(other ID) bool {
	return bytes.Equal(id, other)
}

func NewTermID(v uint64) ID {
	id := make(ID, 9)
	id[0] = byte(TypeTermID)
	binary.BigEndian.PutUint64(id[1:], v)
	return id
}

func NewIRI(hash [16]byte) ID {
	return newHashed(TypeIRI, hash)
}

func NewBlankNode(hash [16]byte) ID {
	return newHashed(TypeBlankNode, hash)
}

func NewBlankNodeID(n uint64) ID {
	id := make(ID, 9)
	id[0] = byte(TypeBlankNodeID)
	binary.BigEndian.PutUint64(id[1:], n)
	return id
}

func NewString(hash [16]byte) ID {
	return newHashed(TypeString, hash)
}

// NewStringInline encodes s directly into the identifier. s must be at most
// MaxInlineString bytes; longer strings belong behind NewString.
func NewStringInline(s string) ID {
	id := make(ID, 2+len(s))
	id[0] = byte(TypeStringInline)
	id[1] = byte(len(s))
	copy(id[2:], s)
	return id
}

func NewLangString(hash [16]byte) ID {
	return newHashed(TypeLangString, hash)
}

func NewInteger(v int64) ID {
	id := make(ID, 9)
	id[0] = byte(TypeInteger)
	binary.BigEndian.PutUint64(id[1:], uint64(v)) // #nosec G115 - intentional bit-pattern conversion for binary encoding
	return id
}

func NewDecimal(v float64) ID {
	id := make(ID, 9)
	id[0] = byte(TypeDecimal)
	binary.BigEndian.PutUint64(id[1:], math.Float64bits(v))
	return id
}

func NewDouble(v float64) ID {
	id := make(ID, 9)
	id[0] = byte(TypeDouble)
	binary.BigEndian.PutUint64(id[1:], math.Float64bits(v))
	return id
}

func NewBoolean(v bool) ID {
	id := make(ID, 2)
	id[0] = byte(TypeBoolean)
	if v {
		id[1] = 1
	}
	return id
}

func NewDateTime(nanos int64) ID {
	id := make(ID, 9)
	id[0] = byte(TypeDateTime)
	binary.BigEndian.PutUint64(id[1:], uint64(nanos)) // #nosec G115 - intentional bit-pattern conversion for timestamp encoding
	return id
}

func NewDate(days int64) ID {
	id := make(ID, 9)
	id[0] = byte(TypeDate)
	binary.BigEndian.PutUint64(id[1:], uint64(days)) // #nosec G115 - intentional bit-pattern conversion for date encoding
	return id
}

func DefaultGraph() ID {
	return ID{byte(TypeDefaultGraph)}
}

func newHashed(t Type, hash [16]byte) ID {
	id := make(ID, 17)
	id[0] = byte(t)
	copy(id[1:], hash[:])
	return id
}

// DecodeID parses one identifier from the front of b and returns it along
// with the number of bytes consumed.
func DecodeID(b []byte) (ID, int, error) {
	if len(b) == 0 {
		return nil, 0, fmt.Errorf("%w: empty input", ErrInvalidID)
	}
	t := Type(b[0])

	if t == TypeStringInline {
		if len(b) < 2 {
			return nil, 0, fmt.Errorf("%w: truncated inline string", ErrInvalidID)
		}
		n := int(b[1])
		if n > MaxInlineString {
			return nil, 0, fmt.Errorf("%w: inline string length %d", ErrInvalidID, n)
		}
		total := 2 + n
		if len(b) < total {
			return nil, 0, fmt.Errorf("%w: truncated inline string", ErrInvalidID)
		}
		return ID(b[:total]), total, nil
	}

	w, ok := payloadWidth(t)
	if !ok {
		return nil, 0, fmt.Errorf("%w: unknown type %d", ErrInvalidID, b[0])
	}
	total := 1 + w
	if len(b) < total {
		return nil, 0, fmt.Errorf("%w: truncated %s identifier", ErrInvalidID, t)
	}
	return ID(b[:total]), total, nil
}

// Kind tags how a statement entered the store.
type Kind byte

const (
	KindExplicit Kind = iota
	KindAxiom
	KindInferred
)

func (k Kind) String() string {
	switch k {
	case KindExplicit:
		return "explicit"
	case KindAxiom:
		return "axiom"
	case KindInferred:
		return "inferred"
	default:
		return "unknown"
	}
}

// Statement is a resolved triple: three identifiers plus the kind tag.
type Statement struct {
	Subject   ID
	Predicate ID
	Object    ID
	Kind      Kind
}

// Key returns the statement's canonical key.
func (st Statement) Key() []byte {
	return EncodeKey(st.Subject, st.Predicate, st.Object)
}

// Compare orders statements subject first, then predicate, then object.
// Because identifiers are prefix-free this equals byte order of the
// canonical keys.
func Compare(a, b Statement) int {
	if c := bytes.Compare(a.Subject, b.Subject); c != 0 {
		return c
	}
	if c := bytes.Compare(a.Predicate, b.Predicate); c != 0 {
		return c
	}
	return bytes.Compare(a.Object, b.Object)
}
