package store

import (
	"github.com/tetradb/tetra/pkg/rdf"
	"github.com/tetradb/tetra/pkg/spo"
)

// TermEncoder handles encoding of RDF terms into identifiers
type TermEncoder interface {
	// EncodeTerm encodes an RDF term into its identifier
	// Returns the identifier and optionally a string to store in id2str table
	EncodeTerm(term rdf.Term) (spo.ID, *string, error)
}

// TermDecoder handles decoding of RDF terms from identifiers
type TermDecoder interface {
	// DecodeTerm decodes an identifier back to an rdf.Term
	// For terms that require string lookup, stringValue should be provided
	DecodeTerm(id spo.ID, stringValue *string) (rdf.Term, error)
}
