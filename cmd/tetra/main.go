package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/tetradb/tetra/internal/encoding"
	"github.com/tetradb/tetra/internal/storage"
	"github.com/tetradb/tetra/pkg/axioms"
	"github.com/tetradb/tetra/pkg/rdf"
	"github.com/tetradb/tetra/pkg/store"
)

const dbPath = "./tetra_data"

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: tetra <command> [args]")
		fmt.Println("Commands:")
		fmt.Println("  demo   - Run a demo with sample data")
		fmt.Println("  axioms - List the store's axioms")
		fmt.Println("  info   - Show store metadata")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "demo":
		runDemo()
	case "axioms":
		runAxioms()
	case "info":
		runInfo()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

// openOrCreate opens the store at dbPath, creating it with the RDFS axioms
// on first use.
func openOrCreate() (*store.TripleStore, error) {
	badgerStorage, err := storage.NewBadgerStorage(dbPath)
	if err != nil {
		return nil, err
	}

	tripleStore, err := store.Open(badgerStorage, encoding.NewTermEncoder(), encoding.NewTermDecoder())
	if errors.Is(err, store.ErrStoreNotFound) {
		return store.Create(badgerStorage, encoding.NewTermEncoder(), encoding.NewTermDecoder(), store.Options{
			Axioms: axioms.RDFS,
		})
	}
	if err != nil {
		_ = badgerStorage.Close() // #nosec G104 - close error less important than original error
		return nil, err
	}
	return tripleStore, nil
}

func runDemo() {
	fmt.Println("=== Tetra RDF Quad Store Demo ===")
	fmt.Println()

	fmt.Printf("Opening database at: %s\n", dbPath)
	tripleStore, err := openOrCreate()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer tripleStore.Close()

	axiomCount, err := tripleStore.Axioms().Size()
	if err != nil {
		log.Fatalf("Failed to read axiom count: %v", err)
	}
	fmt.Printf("Store %s initialized with %d axioms\n", tripleStore.ID(), axiomCount)
	fmt.Println()

	// Insert sample data
	fmt.Println("Inserting sample data...")

	// Create some example triples
	alice := rdf.NewNamedNode("http://example.org/alice")
	bob := rdf.NewNamedNode("http://example.org/bob")
	carol := rdf.NewNamedNode("http://example.org/carol")

	knows := rdf.NewNamedNode("http://xmlns.com/foaf/0.1/knows")
	name := rdf.NewNamedNode("http://xmlns.com/foaf/0.1/name")
	age := rdf.NewNamedNode("http://xmlns.com/foaf/0.1/age")

	// Insert triples
	triples := []*rdf.Triple{
		rdf.NewTriple(alice, name, rdf.NewLiteral("Alice")),
		rdf.NewTriple(alice, age, rdf.NewIntegerLiteral(30)),
		rdf.NewTriple(alice, knows, bob),

		rdf.NewTriple(bob, name, rdf.NewLiteral("Bob")),
		rdf.NewTriple(bob, age, rdf.NewIntegerLiteral(25)),
		rdf.NewTriple(bob, knows, carol),

		rdf.NewTriple(carol, name, rdf.NewLiteral("Carol")),
		rdf.NewTriple(carol, age, rdf.NewIntegerLiteral(28)),
	}

	for _, triple := range triples {
		if err := tripleStore.InsertTriple(triple); err != nil {
			log.Fatalf("Failed to insert triple: %v", err)
		}
		fmt.Printf("  + %s\n", triple)
	}

	// Insert some quads with named graphs
	fmt.Println("\nInserting data into named graphs...")
	graph1 := rdf.NewNamedNode("http://example.org/graph1")
	graph2 := rdf.NewNamedNode("http://example.org/graph2")

	quads := []*rdf.Quad{
		rdf.NewQuad(alice, name, rdf.NewLiteral("Alice in Graph1"), graph1),
		rdf.NewQuad(bob, name, rdf.NewLiteral("Bob in Graph1"), graph1),
		rdf.NewQuad(alice, name, rdf.NewLiteral("Alice in Graph2"), graph2),
		rdf.NewQuad(carol, name, rdf.NewLiteral("Carol in Graph2"), graph2),
	}

	for _, quad := range quads {
		if err := tripleStore.InsertQuad(quad); err != nil {
			log.Fatalf("Failed to insert quad: %v", err)
		}
		fmt.Printf("  + Quad in graph <%s>: %s %s %s\n",
			quad.Graph.(*rdf.NamedNode).IRI,
			formatTerm(quad.Subject),
			formatTerm(quad.Predicate),
			formatTerm(quad.Object))
	}

	// Count statements
	count, err := tripleStore.Count()
	if err != nil {
		log.Fatalf("Failed to count statements: %v", err)
	}
	fmt.Printf("\nTotal statements stored: %d\n", count)

	// Pattern query example
	fmt.Println()
	fmt.Println("=== Querying Data ===")
	fmt.Println()

	fmt.Println("Everything about alice in the default graph:")
	pattern := &store.Pattern{
		Subject:   alice,
		Predicate: store.NewVariable("p"),
		Object:    store.NewVariable("o"),
		Graph:     rdf.NewDefaultGraph(),
	}

	iter, err := tripleStore.Query(pattern)
	if err != nil {
		log.Fatalf("Failed to query: %v", err)
	}
	results := 0
	for iter.Next() {
		quad, err := iter.Quad()
		if err != nil {
			log.Fatalf("Failed to read quad: %v", err)
		}
		fmt.Printf("  %s %s %s\n",
			formatTerm(quad.Subject),
			formatTerm(quad.Predicate),
			formatTerm(quad.Object))
		results++
	}
	if err := iter.Close(); err != nil {
		log.Fatalf("Failed to close iterator: %v", err)
	}
	fmt.Printf("Found %d results\n", results)

	// Axiom checks
	fmt.Println()
	fmt.Println("=== Axiom Checks ===")
	fmt.Println()

	checks := []*rdf.Triple{
		rdf.NewTriple(rdf.RDFType, rdf.RDFType, rdf.RDFProperty),
		rdf.NewTriple(rdf.RDFSSubClassOf, rdf.RDFSDomain, rdf.RDFSClass),
		rdf.NewTriple(alice, knows, bob),
	}
	for _, check := range checks {
		isAxiom, err := tripleStore.IsAxiom(check.Subject, check.Predicate, check.Object)
		if err != nil {
			log.Fatalf("Failed to check axiom: %v", err)
		}
		fmt.Printf("  IsAxiom(%s %s %s) = %t\n",
			formatTerm(check.Subject),
			formatTerm(check.Predicate),
			formatTerm(check.Object),
			isAxiom)
	}

	fmt.Println("\n=== Demo Complete ===")
}

func runAxioms() {
	tripleStore, err := openOrCreate()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer tripleStore.Close()

	set := tripleStore.Axioms()
	size, err := set.Size()
	if err != nil {
		log.Fatalf("Failed to read axiom count: %v", err)
	}
	fmt.Printf("Store %s holds %d axioms:\n", tripleStore.ID(), size)

	iter, err := set.Axioms()
	if err != nil {
		log.Fatalf("Failed to iterate axioms: %v", err)
	}
	for iter.Next() {
		statement, err := iter.Statement()
		if err != nil {
			log.Fatalf("Failed to read statement: %v", err)
		}
		triple, err := tripleStore.DecodeStatement(statement)
		if err != nil {
			log.Fatalf("Failed to decode statement: %v", err)
		}
		fmt.Printf("  %s %s %s [%s]\n",
			formatTerm(triple.Subject),
			formatTerm(triple.Predicate),
			formatTerm(triple.Object),
			statement.Kind)
	}
}

func runInfo() {
	badgerStorage, err := storage.NewBadgerStorage(dbPath)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}

	tripleStore, err := store.Open(badgerStorage, encoding.NewTermEncoder(), encoding.NewTermDecoder())
	if errors.Is(err, store.ErrStoreNotFound) {
		_ = badgerStorage.Close() // #nosec G104 - exiting anyway
		log.Fatalf("No store at %s, run 'tetra demo' first", dbPath)
	}
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer tripleStore.Close()

	axiomCount, err := tripleStore.Axioms().Size()
	if err != nil {
		log.Fatalf("Failed to read axiom count: %v", err)
	}
	count, err := tripleStore.Count()
	if err != nil {
		log.Fatalf("Failed to count statements: %v", err)
	}

	fmt.Printf("Store:      %s\n", tripleStore.ID())
	fmt.Printf("Created:    %s\n", tripleStore.Created().Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Format:     v%d\n", store.FormatVersion)
	fmt.Printf("Axioms:     %d\n", axiomCount)
	fmt.Printf("Statements: %d\n", count)
}

func formatTerm(term rdf.Term) string {
	switch t := term.(type) {
	case *rdf.NamedNode:
		// Return just the local name if possible
		iri := t.IRI
		if idx := len(iri) - 1; idx >= 0 {
			for i := idx; i >= 0; i-- {
				if iri[i] == '/' || iri[i] == '#' {
					return iri[i+1:]
				}
			}
		}
		return iri
	case *rdf.Literal:
		return t.Value
	default:
		return term.String()
	}
}
