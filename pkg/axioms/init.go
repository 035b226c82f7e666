package axioms

import (
	"fmt"
	"sort"

	"github.com/tetradb/tetra/pkg/rdf"
	"github.com/tetradb/tetra/pkg/spo"
)

// StatementWriter is the write pipeline axioms are persisted through. The
// pipeline resolves symbolic statements to identifiers, stores them like any
// other data, and reports each resolved batch through onResolved before
// returning.
type StatementWriter interface {
	WriteBatch(stmts []*rdf.Triple, kind spo.Kind, onResolved func(batch []spo.Statement)) error
}

// Init builds the set for a fresh store: it collects the catalog's axioms,
// writes them through w so they are persisted like ordinary statements, and
// indexes the resolved batch the pipeline reports. Only the first reported
// batch is captured; the pipeline is sized so one batch holds every axiom.
// Any error from the catalog or the pipeline aborts the build and the set
// stays unbuilt. A second Init fails with ErrAlreadyBuilt.
func (s *Set) Init(catalog Catalog, w StatementWriter) error {
	if catalog == nil {
		return ErrNilCatalog
	}
	if w == nil {
		return ErrNilWriter
	}

	sink := NewSink()
	if err := catalog.AddAxioms(sink); err != nil {
		return fmt.Errorf("collecting axioms: %w", err)
	}

	var working []spo.Statement
	if sink.Len() > 0 {
		captured := false
		err := w.WriteBatch(sink.Triples(), spo.KindAxiom, func(batch []spo.Statement) {
			if captured {
				return
			}
			captured = true
			working = append(working, batch...)
		})
		if err != nil {
			return fmt.Errorf("writing axioms: %w", err)
		}
		sort.Slice(working, func(i, j int) bool {
			return spo.Compare(working[i], working[j]) < 0
		})
	}

	index, err := s.buildIndex(len(working))
	if err != nil {
		return err
	}
	for _, st := range working {
		index.Insert(st.Key(), byte(st.Kind))
	}
	s.index = index
	return nil
}
