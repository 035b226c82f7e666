package encoding

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tetradb/tetra/pkg/rdf"
	"github.com/tetradb/tetra/pkg/spo"
	"github.com/zeebo/xxh3"
)

// TermEncoder resolves RDF terms to their identifiers
type TermEncoder struct {
	// Hash function for strings (xxhash3 128-bit)
}

func NewTermEncoder() *TermEncoder {
	return &TermEncoder{}
}

// Hash128 computes a 128-bit xxhash3 hash of the input string
func (e *TermEncoder) Hash128(s string) [16]byte {
	hash := xxh3.Hash128([]byte(s))
	var result [16]byte
	// xxh3.Hash128 returns a uint128-like type, we need to extract the bytes
	binary.BigEndian.PutUint64(result[0:8], hash.Hi)
	binary.BigEndian.PutUint64(result[8:16], hash.Lo)
	return result
}

// EncodeTerm encodes an RDF term into its identifier
// Returns the identifier and optionally a string to store in id2str table
func (e *TermEncoder) EncodeTerm(term rdf.Term) (spo.ID, *string, error) {
	switch t := term.(type) {
	case *rdf.NamedNode:
		return e.encodeNamedNode(t)
	case *rdf.BlankNode:
		return e.encodeBlankNode(t)
	case *rdf.Literal:
		return e.encodeLiteral(t)
	case *rdf.DefaultGraph:
		return spo.DefaultGraph(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown term type: %T", term)
	}
}

func (e *TermEncoder) encodeNamedNode(node *rdf.NamedNode) (spo.ID, *string, error) {
	// Always hash IRIs (using 128-bit xxhash3)
	return spo.NewIRI(e.Hash128(node.IRI)), &node.IRI, nil
}

func (e *TermEncoder) encodeBlankNode(node *rdf.BlankNode) (spo.ID, *string, error) {
	// Numeric labels get an inline identifier
	if num, err := strconv.ParseUint(node.ID, 10, 64); err == nil {
		return spo.NewBlankNodeID(num), nil, nil
	}

	// Hash non-numeric blank node labels
	return spo.NewBlankNode(e.Hash128(node.ID)), &node.ID, nil
}

func (e *TermEncoder) encodeLiteral(lit *rdf.Literal) (spo.ID, *string, error) {
	// Check for typed literals with special encoding
	if lit.Datatype != nil {
		switch lit.Datatype.IRI {
		case rdf.XSDInteger.IRI:
			return e.encodeIntegerLiteral(lit)
		case rdf.XSDDecimal.IRI:
			return e.encodeDecimalLiteral(lit)
		case rdf.XSDDouble.IRI:
			return e.encodeDoubleLiteral(lit)
		case rdf.XSDBoolean.IRI:
			return e.encodeBooleanLiteral(lit)
		case rdf.XSDDateTime.IRI:
			return e.encodeDateTimeLiteral(lit)
		case rdf.XSDDate.IRI:
			return e.encodeDateLiteral(lit)
		}
	}

	// Language-tagged string
	if lit.Language != "" {
		return e.encodeLangStringLiteral(lit)
	}

	// Plain string literal
	return e.encodeStringLiteral(lit)
}

func (e *TermEncoder) encodeStringLiteral(lit *rdf.Literal) (spo.ID, *string, error) {
	// Inline small strings
	if len(lit.Value) <= spo.MaxInlineString {
		return spo.NewStringInline(lit.Value), nil, nil
	}

	// Hash large strings
	return spo.NewString(e.Hash128(lit.Value)), &lit.Value, nil
}

func (e *TermEncoder) encodeLangStringLiteral(lit *rdf.Literal) (spo.ID, *string, error) {
	// Combine value and language tag for hashing
	combined := lit.Value + "@" + lit.Language
	return spo.NewLangString(e.Hash128(combined)), &combined, nil
}

func (e *TermEncoder) encodeIntegerLiteral(lit *rdf.Literal) (spo.ID, *string, error) {
	value, err := strconv.ParseInt(lit.Value, 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid integer literal: %w", err)
	}
	return spo.NewInteger(value), nil, nil
}

func (e *TermEncoder) encodeDecimalLiteral(lit *rdf.Literal) (spo.ID, *string, error) {
	value, err := strconv.ParseFloat(lit.Value, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid decimal literal: %w", err)
	}
	return spo.NewDecimal(value), nil, nil
}

func (e *TermEncoder) encodeDoubleLiteral(lit *rdf.Literal) (spo.ID, *string, error) {
	value, err := strconv.ParseFloat(lit.Value, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid double literal: %w", err)
	}
	return spo.NewDouble(value), nil, nil
}

func (e *TermEncoder) encodeBooleanLiteral(lit *rdf.Literal) (spo.ID, *string, error) {
	value, err := strconv.ParseBool(lit.Value)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid boolean literal: %w", err)
	}
	return spo.NewBoolean(value), nil, nil
}

func (e *TermEncoder) encodeDateTimeLiteral(lit *rdf.Literal) (spo.ID, *string, error) {
	// Parse RFC3339 datetime
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(lit.Value))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid datetime literal: %w", err)
	}

	// Store as Unix timestamp (nanoseconds since epoch)
	return spo.NewDateTime(t.UnixNano()), nil, nil
}

func (e *TermEncoder) encodeDateLiteral(lit *rdf.Literal) (spo.ID, *string, error) {
	// Parse date (assuming YYYY-MM-DD format)
	t, err := time.Parse("2006-01-02", strings.TrimSpace(lit.Value))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid date literal: %w", err)
	}

	// Store as days since epoch
	return spo.NewDate(t.Unix()/86400), nil, nil
}
