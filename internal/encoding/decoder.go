package encoding

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/tetradb/tetra/pkg/rdf"
	"github.com/tetradb/tetra/pkg/spo"
)

// TermDecoder handles decoding of RDF terms
type TermDecoder struct{}

// NewTermDecoder creates a new term decoder
func NewTermDecoder() *TermDecoder {
	return &TermDecoder{}
}

// DecodeTerm decodes an identifier back to an rdf.Term
// For terms that require string lookup, stringValue should be provided
func (d *TermDecoder) DecodeTerm(id spo.ID, stringValue *string) (rdf.Term, error) {
	switch id.Type() {
	case spo.TypeIRI:
		if stringValue == nil {
			return nil, fmt.Errorf("string value required for named node")
		}
		return rdf.NewNamedNode(*stringValue), nil

	case spo.TypeBlankNode:
		if stringValue == nil {
			return nil, fmt.Errorf("string value required for blank node")
		}
		return rdf.NewBlankNode(*stringValue), nil

	case spo.TypeBlankNodeID:
		numericID := binary.BigEndian.Uint64(id.Payload())
		return rdf.NewBlankNode(strconv.FormatUint(numericID, 10)), nil

	case spo.TypeString:
		if stringValue == nil {
			return nil, fmt.Errorf("string value required for string literal")
		}
		return rdf.NewLiteral(*stringValue), nil

	case spo.TypeStringInline:
		return rdf.NewLiteral(string(id.Payload())), nil

	case spo.TypeLangString:
		if stringValue == nil {
			return nil, fmt.Errorf("string value required for language-tagged literal")
		}
		// Split value@language
		for i := len(*stringValue) - 1; i >= 0; i-- {
			if (*stringValue)[i] == '@' {
				value := (*stringValue)[:i]
				lang := (*stringValue)[i+1:]
				return rdf.NewLiteralWithLanguage(value, lang), nil
			}
		}
		return rdf.NewLiteral(*stringValue), nil

	case spo.TypeInteger:
		value := int64(binary.BigEndian.Uint64(id.Payload())) // #nosec G115 - intentional bit-pattern conversion for binary decoding
		return rdf.NewIntegerLiteral(value), nil

	case spo.TypeDecimal:
		bits := binary.BigEndian.Uint64(id.Payload())
		value := math.Float64frombits(bits)
		return rdf.NewLiteralWithDatatype(fmt.Sprintf("%g", value), rdf.XSDDecimal), nil

	case spo.TypeDouble:
		bits := binary.BigEndian.Uint64(id.Payload())
		value := math.Float64frombits(bits)
		return rdf.NewDoubleLiteral(value), nil

	case spo.TypeBoolean:
		value := id.Payload()[0] != 0
		return rdf.NewBooleanLiteral(value), nil

	case spo.TypeDateTime:
		nanos := int64(binary.BigEndian.Uint64(id.Payload())) // #nosec G115 - intentional bit-pattern conversion for timestamp decoding
		t := time.Unix(0, nanos)
		return rdf.NewDateTimeLiteral(t), nil

	case spo.TypeDate:
		days := int64(binary.BigEndian.Uint64(id.Payload())) // #nosec G115 - intentional bit-pattern conversion for date decoding
		t := time.Unix(days*86400, 0)
		return rdf.NewLiteralWithDatatype(t.UTC().Format("2006-01-02"), rdf.XSDDate), nil

	case spo.TypeDefaultGraph:
		return rdf.NewDefaultGraph(), nil

	case spo.TypeTermID:
		// Raw handles carry no symbolic form to recover
		return nil, fmt.Errorf("term id %d has no symbolic form", binary.BigEndian.Uint64(id.Payload()))

	default:
		return nil, fmt.Errorf("unknown identifier type: %d", id.Type())
	}
}
