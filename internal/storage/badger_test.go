package storage

import (
	"errors"
	"testing"

	"github.com/tetradb/tetra/internal/encoding"
	"github.com/tetradb/tetra/pkg/axioms"
	"github.com/tetradb/tetra/pkg/rdf"
	"github.com/tetradb/tetra/pkg/store"
)

func TestStoreLifecycleWithAxioms(t *testing.T) {
	tmpDir := t.TempDir()
	storage, err := NewBadgerStorage(tmpDir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	tripleStore, err := store.Create(storage, encoding.NewTermEncoder(), encoding.NewTermDecoder(), store.Options{
		Axioms: axioms.RDFS,
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	size, err := tripleStore.Axioms().Size()
	if err != nil {
		t.Fatalf("failed to get axiom count: %v", err)
	}
	if size != 48 {
		t.Errorf("expected 48 axioms, got %d", size)
	}

	// Declared axioms are recognized
	isAxiom, err := tripleStore.IsAxiom(rdf.RDFType, rdf.RDFType, rdf.RDFProperty)
	if err != nil {
		t.Fatalf("failed to check axiom: %v", err)
	}
	if !isAxiom {
		t.Error("expected rdf:type rdf:type rdf:Property to be an axiom")
	}

	// Arbitrary statements are not
	isAxiom, err = tripleStore.IsAxiom(
		rdf.NewNamedNode("http://example.org/alice"),
		rdf.RDFType,
		rdf.RDFProperty,
	)
	if err != nil {
		t.Fatalf("failed to check non-axiom: %v", err)
	}
	if isAxiom {
		t.Error("expected example statement to not be an axiom")
	}

	// Axioms were written through as regular default-graph statements
	contains, err := tripleStore.ContainsQuad(rdf.NewQuad(rdf.RDFType, rdf.RDFType, rdf.RDFProperty, rdf.NewDefaultGraph()))
	if err != nil {
		t.Fatalf("failed to check quad: %v", err)
	}
	if !contains {
		t.Error("expected axiom statement to be stored as a quad")
	}

	count, err := tripleStore.Count()
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 48 {
		t.Errorf("expected 48 stored quads, got %d", count)
	}

	storeID := tripleStore.ID()

	if err := tripleStore.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	// Reopen and verify identity and axioms survive
	storage2, err := NewBadgerStorage(tmpDir)
	if err != nil {
		t.Fatalf("failed to reopen storage: %v", err)
	}
	reopened, err := store.Open(storage2, encoding.NewTermEncoder(), encoding.NewTermDecoder())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer reopened.Close()

	if reopened.ID() != storeID {
		t.Errorf("expected store id %s, got %s", storeID, reopened.ID())
	}

	size, err = reopened.Axioms().Size()
	if err != nil {
		t.Fatalf("failed to get axiom count after reopen: %v", err)
	}
	if size != 48 {
		t.Errorf("expected 48 axioms after reopen, got %d", size)
	}

	isAxiom, err = reopened.IsAxiom(rdf.RDFType, rdf.RDFType, rdf.RDFProperty)
	if err != nil {
		t.Fatalf("failed to check axiom after reopen: %v", err)
	}
	if !isAxiom {
		t.Error("expected axiom membership to survive reopen")
	}
}

func TestCreateTwiceFails(t *testing.T) {
	tmpDir := t.TempDir()
	storage, err := NewBadgerStorage(tmpDir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	tripleStore, err := store.Create(storage, encoding.NewTermEncoder(), encoding.NewTermDecoder(), store.Options{})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer tripleStore.Close()

	_, err = store.Create(storage, encoding.NewTermEncoder(), encoding.NewTermDecoder(), store.Options{})
	if !errors.Is(err, store.ErrStoreExists) {
		t.Errorf("expected ErrStoreExists, got %v", err)
	}
}

func TestOpenMissingStore(t *testing.T) {
	tmpDir := t.TempDir()
	storage, err := NewBadgerStorage(tmpDir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer storage.Close()

	_, err = store.Open(storage, encoding.NewTermEncoder(), encoding.NewTermDecoder())
	if !errors.Is(err, store.ErrStoreNotFound) {
		t.Errorf("expected ErrStoreNotFound, got %v", err)
	}
}

func TestBatchInsertAndQuery(t *testing.T) {
	// Create temporary storage
	tmpDir := t.TempDir()
	storage, err := NewBadgerStorage(tmpDir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer storage.Close()

	tripleStore, err := store.Create(storage, encoding.NewTermEncoder(), encoding.NewTermDecoder(), store.Options{})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	// Create test quads
	quads := []*rdf.Quad{
		rdf.NewQuad(
			rdf.NewNamedNode("http://example.org/alice"),
			rdf.NewNamedNode("http://xmlns.com/foaf/0.1/name"),
			rdf.NewLiteral("Alice"),
			rdf.NewDefaultGraph(),
		),
		rdf.NewQuad(
			rdf.NewNamedNode("http://example.org/bob"),
			rdf.NewNamedNode("http://xmlns.com/foaf/0.1/name"),
			rdf.NewLiteral("Bob"),
			rdf.NewDefaultGraph(),
		),
		rdf.NewQuad(
			rdf.NewNamedNode("http://example.org/charlie"),
			rdf.NewNamedNode("http://xmlns.com/foaf/0.1/name"),
			rdf.NewLiteral("Charlie"),
			rdf.NewNamedNode("http://example.org/graph1"),
		),
	}

	// Batch insert
	err = tripleStore.InsertQuadsBatch(quads)
	if err != nil {
		t.Fatalf("failed to batch insert: %v", err)
	}

	// Query: Check count
	count, err := tripleStore.Count()
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}

	// Query: Get all triples from default graph
	pattern := &store.Pattern{
		Subject:   &store.Variable{Name: "s"},
		Predicate: &store.Variable{Name: "p"},
		Object:    &store.Variable{Name: "o"},
		Graph:     rdf.NewDefaultGraph(),
	}

	iter, err := tripleStore.Query(pattern)
	if err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	defer iter.Close()

	defaultGraphCount := 0
	for iter.Next() {
		quad, err := iter.Quad()
		if err != nil {
			t.Fatalf("failed to get quad: %v", err)
		}
		if quad == nil {
			t.Fatal("got nil quad")
		}
		defaultGraphCount++

		// Verify it's in default graph
		if quad.Graph.Type() != rdf.TermTypeDefaultGraph {
			t.Errorf("expected default graph, got type %d", quad.Graph.Type())
		}
	}

	if defaultGraphCount != 2 {
		t.Errorf("expected 2 quads in default graph, got %d", defaultGraphCount)
	}

	// Query: Get triples from named graph
	namedGraphPattern := &store.Pattern{
		Subject:   &store.Variable{Name: "s"},
		Predicate: &store.Variable{Name: "p"},
		Object:    &store.Variable{Name: "o"},
		Graph:     rdf.NewNamedNode("http://example.org/graph1"),
	}

	iter2, err := tripleStore.Query(namedGraphPattern)
	if err != nil {
		t.Fatalf("failed to query named graph: %v", err)
	}
	defer iter2.Close()

	namedGraphCount := 0
	for iter2.Next() {
		quad, err := iter2.Quad()
		if err != nil {
			t.Fatalf("failed to get quad from named graph: %v", err)
		}
		if quad == nil {
			t.Fatal("got nil quad from named graph")
		}
		namedGraphCount++

		// Verify subject is charlie
		if quad.Subject.Type() != rdf.TermTypeNamedNode {
			t.Errorf("expected named node subject, got type %d", quad.Subject.Type())
		}
		subjectNode, ok := quad.Subject.(*rdf.NamedNode)
		if !ok {
			t.Error("failed to cast subject to NamedNode")
		} else if subjectNode.IRI != "http://example.org/charlie" {
			t.Errorf("expected charlie, got %s", subjectNode.IRI)
		}
	}

	if namedGraphCount != 1 {
		t.Errorf("expected 1 quad in named graph, got %d", namedGraphCount)
	}
}

func TestBatchInsertAndQuerySpecificValues(t *testing.T) {
	// Create temporary storage
	tmpDir := t.TempDir()
	storage, err := NewBadgerStorage(tmpDir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer storage.Close()

	tripleStore, err := store.Create(storage, encoding.NewTermEncoder(), encoding.NewTermDecoder(), store.Options{})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	// Create test data with specific values we'll query
	aliceNode := rdf.NewNamedNode("http://example.org/alice")
	nameProperty := rdf.NewNamedNode("http://xmlns.com/foaf/0.1/name")
	aliceLiteral := rdf.NewLiteral("Alice")

	quads := []*rdf.Quad{
		rdf.NewQuad(
			aliceNode,
			nameProperty,
			aliceLiteral,
			rdf.NewDefaultGraph(),
		),
		rdf.NewQuad(
			rdf.NewNamedNode("http://example.org/alice"),
			rdf.NewNamedNode("http://xmlns.com/foaf/0.1/age"),
			rdf.NewLiteralWithDatatype("30", rdf.XSDInteger),
			rdf.NewDefaultGraph(),
		),
	}

	// Batch insert
	err = tripleStore.InsertQuadsBatch(quads)
	if err != nil {
		t.Fatalf("failed to batch insert: %v", err)
	}

	// Query: Find alice's name (subject and predicate bound)
	pattern := &store.Pattern{
		Subject:   aliceNode,
		Predicate: nameProperty,
		Object:    &store.Variable{Name: "o"},
		Graph:     rdf.NewDefaultGraph(),
	}

	iter, err := tripleStore.Query(pattern)
	if err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	defer iter.Close()

	found := false
	for iter.Next() {
		quad, err := iter.Quad()
		if err != nil {
			t.Fatalf("failed to get quad: %v", err)
		}

		// Verify the object is "Alice"
		if quad.Object.Type() != rdf.TermTypeLiteral {
			t.Errorf("expected literal object, got type %d", quad.Object.Type())
		}
		literal, ok := quad.Object.(*rdf.Literal)
		if !ok {
			t.Error("failed to cast object to Literal")
		} else if literal.Value != "Alice" {
			t.Errorf("expected 'Alice', got '%s'", literal.Value)
		} else {
			found = true
		}
	}

	if !found {
		t.Error("did not find alice's name")
	}
}

func TestBatchDeleteAndQuery(t *testing.T) {
	// Create temporary storage
	tmpDir := t.TempDir()
	storage, err := NewBadgerStorage(tmpDir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer storage.Close()

	tripleStore, err := store.Create(storage, encoding.NewTermEncoder(), encoding.NewTermDecoder(), store.Options{})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	// Create and insert test quads
	quads := []*rdf.Quad{
		rdf.NewQuad(
			rdf.NewNamedNode("http://example.org/alice"),
			rdf.NewNamedNode("http://xmlns.com/foaf/0.1/name"),
			rdf.NewLiteral("Alice"),
			rdf.NewDefaultGraph(),
		),
		rdf.NewQuad(
			rdf.NewNamedNode("http://example.org/bob"),
			rdf.NewNamedNode("http://xmlns.com/foaf/0.1/name"),
			rdf.NewLiteral("Bob"),
			rdf.NewDefaultGraph(),
		),
	}

	err = tripleStore.InsertQuadsBatch(quads)
	if err != nil {
		t.Fatalf("failed to batch insert: %v", err)
	}

	// Verify count before delete
	count, err := tripleStore.Count()
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2 before delete, got %d", count)
	}

	// Batch delete one quad
	err = tripleStore.DeleteQuadsBatch([]*rdf.Quad{quads[0]})
	if err != nil {
		t.Fatalf("failed to batch delete: %v", err)
	}

	// Verify count after delete
	count, err = tripleStore.Count()
	if err != nil {
		t.Fatalf("failed to count after delete: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1 after delete, got %d", count)
	}

	// Query to verify only Bob remains
	pattern := &store.Pattern{
		Subject:   &store.Variable{Name: "s"},
		Predicate: &store.Variable{Name: "p"},
		Object:    &store.Variable{Name: "o"},
		Graph:     rdf.NewDefaultGraph(),
	}

	iter, err := tripleStore.Query(pattern)
	if err != nil {
		t.Fatalf("failed to query after delete: %v", err)
	}
	defer iter.Close()

	foundBob := false
	foundAlice := false
	for iter.Next() {
		quad, err := iter.Quad()
		if err != nil {
			t.Fatalf("failed to get quad: %v", err)
		}

		subject, ok := quad.Subject.(*rdf.NamedNode)
		if !ok {
			t.Error("expected NamedNode subject")
			continue
		}

		if subject.IRI == "http://example.org/bob" {
			foundBob = true
		}
		if subject.IRI == "http://example.org/alice" {
			foundAlice = true
		}
	}

	if !foundBob {
		t.Error("Bob should still be present after delete")
	}
	if foundAlice {
		t.Error("Alice should be deleted")
	}
}
