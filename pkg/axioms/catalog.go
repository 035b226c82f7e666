package axioms

import (
	"github.com/tetradb/tetra/pkg/rdf"
)

// Catalog supplies the symbolic axioms a store is created with. The set
// never decides what is axiomatic; it indexes whatever the configured
// catalog declares.
type Catalog interface {
	// AddAxioms appends the catalog's axioms to sink. The sink may already
	// hold axioms from another catalog; implementations must tolerate that
	// and must reject a nil sink with ErrNilSink.
	AddAxioms(sink *Sink) error
}

// Sink accumulates symbolic axioms, dropping duplicates.
type Sink struct {
	seen    map[string]struct{}
	triples []*rdf.Triple
}

func NewSink() *Sink {
	return &Sink{seen: make(map[string]struct{})}
}

// Add records t unless an equal triple was already added.
func (k *Sink) Add(t *rdf.Triple) {
	key := t.String()
	if _, ok := k.seen[key]; ok {
		return
	}
	k.seen[key] = struct{}{}
	k.triples = append(k.triples, t)
}

// Len returns the number of distinct triples added.
func (k *Sink) Len() int {
	return len(k.triples)
}

// Triples returns the accumulated axioms in insertion order.
func (k *Sink) Triples() []*rdf.Triple {
	return k.triples
}

// Standard catalogs.
var (
	// None declares no axioms.
	None Catalog = noAxioms{}

	// RDFS declares the RDF and RDFS axiomatic triples.
	RDFS Catalog = rdfsAxioms{}

	// OWL extends RDFS with the OWL vocabulary declarations backing
	// equivalence and sameAs reasoning.
	OWL Catalog = owlAxioms{}
)

type noAxioms struct{}

func (noAxioms) AddAxioms(sink *Sink) error {
	if sink == nil {
		return ErrNilSink
	}
	return nil
}

type rdfsAxioms struct{}

func (rdfsAxioms) AddAxioms(sink *Sink) error {
	if sink == nil {
		return ErrNilSink
	}
	addRDFSAxioms(sink)
	return nil
}

type owlAxioms struct{}

func (owlAxioms) AddAxioms(sink *Sink) error {
	if sink == nil {
		return ErrNilSink
	}
	addRDFSAxioms(sink)
	addOWLAxioms(sink)
	return nil
}

func addRDFSAxioms(sink *Sink) {
	add := func(s, p, o rdf.Term) {
		sink.Add(rdf.NewTriple(s, p, o))
	}

	add(rdf.RDFType, rdf.RDFType, rdf.RDFProperty)
	add(rdf.RDFSubject, rdf.RDFType, rdf.RDFProperty)
	add(rdf.RDFPredicate, rdf.RDFType, rdf.RDFProperty)
	add(rdf.RDFObject, rdf.RDFType, rdf.RDFProperty)
	add(rdf.RDFFirst, rdf.RDFType, rdf.RDFProperty)
	add(rdf.RDFRest, rdf.RDFType, rdf.RDFProperty)
	add(rdf.RDFValue, rdf.RDFType, rdf.RDFProperty)
	add(rdf.RDFNil, rdf.RDFType, rdf.RDFList)

	add(rdf.RDFType, rdf.RDFSDomain, rdf.RDFSResource)
	add(rdf.RDFSDomain, rdf.RDFSDomain, rdf.RDFProperty)
	add(rdf.RDFSRange, rdf.RDFSDomain, rdf.RDFProperty)
	add(rdf.RDFSSubPropertyOf, rdf.RDFSDomain, rdf.RDFProperty)
	add(rdf.RDFSSubClassOf, rdf.RDFSDomain, rdf.RDFSClass)
	add(rdf.RDFSubject, rdf.RDFSDomain, rdf.RDFStatement)
	add(rdf.RDFPredicate, rdf.RDFSDomain, rdf.RDFStatement)
	add(rdf.RDFObject, rdf.RDFSDomain, rdf.RDFStatement)
	add(rdf.RDFSMember, rdf.RDFSDomain, rdf.RDFSResource)
	add(rdf.RDFFirst, rdf.RDFSDomain, rdf.RDFList)
	add(rdf.RDFRest, rdf.RDFSDomain, rdf.RDFList)
	add(rdf.RDFSSeeAlso, rdf.RDFSDomain, rdf.RDFSResource)
	add(rdf.RDFSIsDefinedBy, rdf.RDFSDomain, rdf.RDFSResource)
	add(rdf.RDFSComment, rdf.RDFSDomain, rdf.RDFSResource)
	add(rdf.RDFSLabel, rdf.RDFSDomain, rdf.RDFSResource)
	add(rdf.RDFValue, rdf.RDFSDomain, rdf.RDFSResource)

	add(rdf.RDFType, rdf.RDFSRange, rdf.RDFSClass)
	add(rdf.RDFSDomain, rdf.RDFSRange, rdf.RDFSClass)
	add(rdf.RDFSRange, rdf.RDFSRange, rdf.RDFSClass)
	add(rdf.RDFSSubPropertyOf, rdf.RDFSRange, rdf.RDFProperty)
	add(rdf.RDFSSubClassOf, rdf.RDFSRange, rdf.RDFSClass)
	add(rdf.RDFSubject, rdf.RDFSRange, rdf.RDFSResource)
	add(rdf.RDFPredicate, rdf.RDFSRange, rdf.RDFSResource)
	add(rdf.RDFObject, rdf.RDFSRange, rdf.RDFSResource)
	add(rdf.RDFSMember, rdf.RDFSRange, rdf.RDFSResource)
	add(rdf.RDFFirst, rdf.RDFSRange, rdf.RDFSResource)
	add(rdf.RDFRest, rdf.RDFSRange, rdf.RDFList)
	add(rdf.RDFSSeeAlso, rdf.RDFSRange, rdf.RDFSResource)
	add(rdf.RDFSIsDefinedBy, rdf.RDFSRange, rdf.RDFSResource)
	add(rdf.RDFSComment, rdf.RDFSRange, rdf.RDFSLiteral)
	add(rdf.RDFSLabel, rdf.RDFSRange, rdf.RDFSLiteral)
	add(rdf.RDFValue, rdf.RDFSRange, rdf.RDFSResource)

	add(rdf.RDFAlt, rdf.RDFSSubClassOf, rdf.RDFSContainer)
	add(rdf.RDFBag, rdf.RDFSSubClassOf, rdf.RDFSContainer)
	add(rdf.RDFSeq, rdf.RDFSSubClassOf, rdf.RDFSContainer)
	add(rdf.RDFSContainerMembershipProperty, rdf.RDFSSubClassOf, rdf.RDFProperty)
	add(rdf.RDFSIsDefinedBy, rdf.RDFSSubPropertyOf, rdf.RDFSSeeAlso)
	add(rdf.RDFXML, rdf.RDFType, rdf.RDFSDatatype)
	add(rdf.RDFXML, rdf.RDFSSubClassOf, rdf.RDFSLiteral)
	add(rdf.RDFSDatatype, rdf.RDFSSubClassOf, rdf.RDFSClass)
}

func addOWLAxioms(sink *Sink) {
	add := func(s, p, o rdf.Term) {
		sink.Add(rdf.NewTriple(s, p, o))
	}

	add(rdf.OWLEquivalentClass, rdf.RDFType, rdf.RDFProperty)
	add(rdf.OWLEquivalentClass, rdf.RDFType, rdf.OWLTransitiveProperty)
	add(rdf.OWLEquivalentProperty, rdf.RDFType, rdf.RDFProperty)
	add(rdf.OWLEquivalentProperty, rdf.RDFType, rdf.OWLTransitiveProperty)
	add(rdf.OWLSameAs, rdf.RDFType, rdf.RDFProperty)
	add(rdf.OWLSameAs, rdf.RDFType, rdf.OWLTransitiveProperty)
	add(rdf.OWLInverseOf, rdf.RDFType, rdf.RDFProperty)
	add(rdf.OWLClass, rdf.RDFSSubClassOf, rdf.RDFSClass)
	add(rdf.OWLTransitiveProperty, rdf.RDFSSubClassOf, rdf.RDFProperty)
}
