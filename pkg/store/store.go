package store

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tetradb/tetra/pkg/axioms"
	"github.com/tetradb/tetra/pkg/rdf"
	"github.com/tetradb/tetra/pkg/spo"
)

// FormatVersion identifies the store's on-disk layout.
const FormatVersion byte = 1

// writeBatchSize caps statements per write transaction. One resolved batch
// is reported per committed transaction, so anything that must land in a
// single batch has to fit here.
const writeBatchSize = 10000

var (
	ErrStoreExists   = errors.New("store already exists")
	ErrStoreNotFound = errors.New("store not found")
	ErrStoreFormat   = errors.New("unsupported store format")
)

// Metadata record keys.
var (
	metaKeyFormat  = []byte("format")
	metaKeyStoreID = []byte("id")
	metaKeyCreated = []byte("created")
	metaKeyAxioms  = []byte("axioms")
)

// Options configures store creation.
type Options struct {
	// Axioms is the catalog of statements the store treats as
	// unconditionally true. Defaults to axioms.None.
	Axioms axioms.Catalog
}

// TripleStore is an RDF quad store over a Storage backend with pluggable
// term encoding. Statements are kept in eleven identifier-key permutation
// tables; a metadata record carries the store's identity and its serialized
// axiom set.
type TripleStore struct {
	storage Storage
	encoder TermEncoder
	decoder TermDecoder
	axioms  *axioms.Set
	id      uuid.UUID
	created time.Time
}

// Create initializes a fresh store: it persists the axioms declared by
// opts.Axioms through the regular write path, builds their membership index,
// and commits the metadata record. It fails with ErrStoreExists if storage
// already holds a store, and any axiom failure fails the creation entirely.
func Create(storage Storage, encoder TermEncoder, decoder TermDecoder, opts Options) (*TripleStore, error) {
	s := &TripleStore{storage: storage, encoder: encoder, decoder: decoder}

	txn, err := storage.Begin(false)
	if err != nil {
		return nil, err
	}
	_, err = txn.Get(TableMeta, metaKeyFormat)
	_ = txn.Rollback() // #nosec G104 - read-only transaction
	if err == nil {
		return nil, ErrStoreExists
	}
	if err != ErrNotFound {
		return nil, err
	}

	catalog := opts.Axioms
	if catalog == nil {
		catalog = axioms.None
	}
	set := axioms.NewSet()
	if err := set.Init(catalog, s); err != nil {
		return nil, fmt.Errorf("building axioms: %w", err)
	}
	blob, err := set.MarshalBinary()
	if err != nil {
		return nil, err
	}

	s.axioms = set
	s.id = uuid.New()
	s.created = time.Now().UTC().Truncate(time.Second)

	txn, err = storage.Begin(true)
	if err != nil {
		return nil, err
	}
	defer txn.Rollback()

	if err := txn.Set(TableMeta, metaKeyFormat, []byte{FormatVersion}); err != nil {
		return nil, err
	}
	if err := txn.Set(TableMeta, metaKeyStoreID, s.id[:]); err != nil {
		return nil, err
	}
	if err := txn.Set(TableMeta, metaKeyCreated, []byte(s.created.Format(time.RFC3339))); err != nil {
		return nil, err
	}
	if err := txn.Set(TableMeta, metaKeyAxioms, blob); err != nil {
		return nil, err
	}
	if err := txn.Commit(); err != nil {
		return nil, err
	}
	return s, nil
}

// Open loads an existing store, reconstructing its axiom set from the
// metadata record. It fails with ErrStoreNotFound when storage holds no
// store; a corrupt or unknown-version axiom record fails the open.
func Open(storage Storage, encoder TermEncoder, decoder TermDecoder) (*TripleStore, error) {
	s := &TripleStore{storage: storage, encoder: encoder, decoder: decoder}

	txn, err := storage.Begin(false)
	if err != nil {
		return nil, err
	}
	defer txn.Rollback()

	format, err := txn.Get(TableMeta, metaKeyFormat)
	if err == ErrNotFound {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(format) != 1 || format[0] != FormatVersion {
		return nil, fmt.Errorf("%w: %v", ErrStoreFormat, format)
	}

	idBytes, err := txn.Get(TableMeta, metaKeyStoreID)
	if err != nil {
		return nil, err
	}
	s.id, err = uuid.FromBytes(idBytes)
	if err != nil {
		return nil, fmt.Errorf("reading store id: %w", err)
	}

	createdBytes, err := txn.Get(TableMeta, metaKeyCreated)
	if err != nil {
		return nil, err
	}
	s.created, err = time.Parse(time.RFC3339, string(createdBytes))
	if err != nil {
		return nil, fmt.Errorf("reading creation time: %w", err)
	}

	blob, err := txn.Get(TableMeta, metaKeyAxioms)
	if err != nil {
		return nil, err
	}
	set := axioms.NewSet()
	if err := set.UnmarshalBinary(blob); err != nil {
		return nil, fmt.Errorf("restoring axioms: %w", err)
	}
	s.axioms = set
	return s, nil
}

// ID returns the store's instance identifier.
func (s *TripleStore) ID() uuid.UUID {
	return s.id
}

// Created returns when the store was created.
func (s *TripleStore) Created() time.Time {
	return s.created
}

// Axioms returns the store's axiom set.
func (s *TripleStore) Axioms() *axioms.Set {
	return s.axioms
}

// Close closes the underlying storage.
func (s *TripleStore) Close() error {
	return s.storage.Close()
}

// IsAxiom reports whether the statement (sub, pred, obj) is axiomatic in
// this store. A nil term is never axiomatic. The graph a statement appears
// in does not participate.
func (s *TripleStore) IsAxiom(sub, pred, obj rdf.Term) (bool, error) {
	if s.axioms == nil {
		return false, axioms.ErrNotBuilt
	}
	if sub == nil || pred == nil || obj == nil {
		return false, nil
	}

	subID, _, err := s.encoder.EncodeTerm(sub)
	if err != nil {
		return false, err
	}
	predID, _, err := s.encoder.EncodeTerm(pred)
	if err != nil {
		return false, err
	}
	objID, _, err := s.encoder.EncodeTerm(obj)
	if err != nil {
		return false, err
	}
	return s.axioms.IsAxiom(subID, predID, objID)
}

// WriteBatch resolves stmts to identifiers and persists them into the
// default graph across every index permutation, committing in chunks of
// writeBatchSize. After each chunk commits, onResolved (when non-nil)
// receives that chunk's resolved statements in submission order.
func (s *TripleStore) WriteBatch(stmts []*rdf.Triple, kind spo.Kind, onResolved func(batch []spo.Statement)) error {
	for start := 0; start < len(stmts); start += writeBatchSize {
		end := min(start+writeBatchSize, len(stmts))
		resolved, err := s.writeTripleChunk(stmts[start:end], kind)
		if err != nil {
			return err
		}
		if onResolved != nil {
			onResolved(resolved)
		}
	}
	return nil
}

func (s *TripleStore) writeTripleChunk(stmts []*rdf.Triple, kind spo.Kind) ([]spo.Statement, error) {
	txn, err := s.storage.Begin(true)
	if err != nil {
		return nil, err
	}
	defer txn.Rollback()

	resolved := make([]spo.Statement, 0, len(stmts))
	for _, t := range stmts {
		quad := &rdf.Quad{
			Subject:   t.Subject,
			Predicate: t.Predicate,
			Object:    t.Object,
			Graph:     rdf.NewDefaultGraph(),
		}
		st, err := s.insertQuadInTxn(txn, quad, kind)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, st)
	}
	if err := txn.Commit(); err != nil {
		return nil, err
	}
	return resolved, nil
}

// InsertQuad inserts a quad as an explicit statement.
func (s *TripleStore) InsertQuad(quad *rdf.Quad) error {
	txn, err := s.storage.Begin(true)
	if err != nil {
		return err
	}
	defer txn.Rollback()

	if _, err := s.insertQuadInTxn(txn, quad, spo.KindExplicit); err != nil {
		return err
	}
	return txn.Commit()
}

// InsertTriple inserts a triple into the default graph.
func (s *TripleStore) InsertTriple(triple *rdf.Triple) error {
	quad := &rdf.Quad{
		Subject:   triple.Subject,
		Predicate: triple.Predicate,
		Object:    triple.Object,
		Graph:     rdf.NewDefaultGraph(),
	}
	return s.InsertQuad(quad)
}

// InsertQuadsBatch inserts quads as explicit statements in chunked
// transactions.
func (s *TripleStore) InsertQuadsBatch(quads []*rdf.Quad) error {
	for start := 0; start < len(quads); start += writeBatchSize {
		end := min(start+writeBatchSize, len(quads))
		if err := s.insertQuadChunk(quads[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *TripleStore) insertQuadChunk(quads []*rdf.Quad) error {
	txn, err := s.storage.Begin(true)
	if err != nil {
		return err
	}
	defer txn.Rollback()

	for _, quad := range quads {
		if _, err := s.insertQuadInTxn(txn, quad, spo.KindExplicit); err != nil {
			return err
		}
	}
	return txn.Commit()
}

// insertQuadInTxn writes one quad into every index permutation and returns
// its resolved statement.
func (s *TripleStore) insertQuadInTxn(txn Transaction, quad *rdf.Quad, kind spo.Kind) (spo.Statement, error) {
	var st spo.Statement

	subID, subStr, err := s.encoder.EncodeTerm(quad.Subject)
	if err != nil {
		return st, fmt.Errorf("failed to encode subject: %w", err)
	}
	predID, predStr, err := s.encoder.EncodeTerm(quad.Predicate)
	if err != nil {
		return st, fmt.Errorf("failed to encode predicate: %w", err)
	}
	objID, objStr, err := s.encoder.EncodeTerm(quad.Object)
	if err != nil {
		return st, fmt.Errorf("failed to encode object: %w", err)
	}
	graphID, graphStr, err := s.encoder.EncodeTerm(quad.Graph)
	if err != nil {
		return st, fmt.Errorf("failed to encode graph: %w", err)
	}

	if err := s.storeString(txn, subID, subStr); err != nil {
		return st, err
	}
	if err := s.storeString(txn, predID, predStr); err != nil {
		return st, err
	}
	if err := s.storeString(txn, objID, objStr); err != nil {
		return st, err
	}
	if err := s.storeString(txn, graphID, graphStr); err != nil {
		return st, err
	}

	// The statement kind rides along as the index entry value.
	value := []byte{byte(kind)}

	isDefaultGraph := quad.Graph.Type() == rdf.TermTypeDefaultGraph

	if isDefaultGraph {
		if err := txn.Set(TableSPO, spo.EncodeQuadKey(subID, predID, objID), value); err != nil {
			return st, err
		}
		if err := txn.Set(TablePOS, spo.EncodeQuadKey(predID, objID, subID), value); err != nil {
			return st, err
		}
		if err := txn.Set(TableOSP, spo.EncodeQuadKey(objID, subID, predID), value); err != nil {
			return st, err
		}
	}

	if err := txn.Set(TableSPOG, spo.EncodeQuadKey(subID, predID, objID, graphID), value); err != nil {
		return st, err
	}
	if err := txn.Set(TablePOSG, spo.EncodeQuadKey(predID, objID, subID, graphID), value); err != nil {
		return st, err
	}
	if err := txn.Set(TableOSPG, spo.EncodeQuadKey(objID, subID, predID, graphID), value); err != nil {
		return st, err
	}
	if err := txn.Set(TableGSPO, spo.EncodeQuadKey(graphID, subID, predID, objID), value); err != nil {
		return st, err
	}
	if err := txn.Set(TableGPOS, spo.EncodeQuadKey(graphID, predID, objID, subID), value); err != nil {
		return st, err
	}
	if err := txn.Set(TableGOSP, spo.EncodeQuadKey(graphID, objID, subID, predID), value); err != nil {
		return st, err
	}

	if !isDefaultGraph {
		if err := txn.Set(TableGraphs, graphID, value); err != nil {
			return st, err
		}
	}

	st = spo.Statement{Subject: subID, Predicate: predID, Object: objID, Kind: kind}
	return st, nil
}

// storeString stores a dictionary string for a hashed identifier.
func (s *TripleStore) storeString(txn Transaction, id spo.ID, str *string) error {
	if str == nil {
		return nil
	}

	key := id.Payload()
	value := []byte(*str)

	// Check if already present to avoid unnecessary writes.
	existing, err := txn.Get(TableID2Str, key)
	if err == nil && bytes.Equal(existing, value) {
		return nil
	}
	if err != nil && err != ErrNotFound {
		return err
	}
	return txn.Set(TableID2Str, key, value)
}

// DeleteQuad deletes a quad from the store.
func (s *TripleStore) DeleteQuad(quad *rdf.Quad) error {
	txn, err := s.storage.Begin(true)
	if err != nil {
		return err
	}
	defer txn.Rollback()

	if err := s.deleteQuadInTxn(txn, quad); err != nil {
		return err
	}
	return txn.Commit()
}

// DeleteTriple deletes a triple from the default graph.
func (s *TripleStore) DeleteTriple(triple *rdf.Triple) error {
	quad := &rdf.Quad{
		Subject:   triple.Subject,
		Predicate: triple.Predicate,
		Object:    triple.Object,
		Graph:     rdf.NewDefaultGraph(),
	}
	return s.DeleteQuad(quad)
}

// DeleteQuadsBatch deletes quads in chunked transactions.
func (s *TripleStore) DeleteQuadsBatch(quads []*rdf.Quad) error {
	for start := 0; start < len(quads); start += writeBatchSize {
		end := min(start+writeBatchSize, len(quads))
		if err := s.deleteQuadChunk(quads[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *TripleStore) deleteQuadChunk(quads []*rdf.Quad) error {
	txn, err := s.storage.Begin(true)
	if err != nil {
		return err
	}
	defer txn.Rollback()

	for _, quad := range quads {
		if err := s.deleteQuadInTxn(txn, quad); err != nil {
			return err
		}
	}
	return txn.Commit()
}

func (s *TripleStore) deleteQuadInTxn(txn Transaction, quad *rdf.Quad) error {
	subID, _, err := s.encoder.EncodeTerm(quad.Subject)
	if err != nil {
		return fmt.Errorf("failed to encode subject: %w", err)
	}
	predID, _, err := s.encoder.EncodeTerm(quad.Predicate)
	if err != nil {
		return fmt.Errorf("failed to encode predicate: %w", err)
	}
	objID, _, err := s.encoder.EncodeTerm(quad.Object)
	if err != nil {
		return fmt.Errorf("failed to encode object: %w", err)
	}
	graphID, _, err := s.encoder.EncodeTerm(quad.Graph)
	if err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}

	isDefaultGraph := quad.Graph.Type() == rdf.TermTypeDefaultGraph

	if isDefaultGraph {
		if err := txn.Delete(TableSPO, spo.EncodeQuadKey(subID, predID, objID)); err != nil {
			return err
		}
		if err := txn.Delete(TablePOS, spo.EncodeQuadKey(predID, objID, subID)); err != nil {
			return err
		}
		if err := txn.Delete(TableOSP, spo.EncodeQuadKey(objID, subID, predID)); err != nil {
			return err
		}
	}

	if err := txn.Delete(TableSPOG, spo.EncodeQuadKey(subID, predID, objID, graphID)); err != nil {
		return err
	}
	if err := txn.Delete(TablePOSG, spo.EncodeQuadKey(predID, objID, subID, graphID)); err != nil {
		return err
	}
	if err := txn.Delete(TableOSPG, spo.EncodeQuadKey(objID, subID, predID, graphID)); err != nil {
		return err
	}
	if err := txn.Delete(TableGSPO, spo.EncodeQuadKey(graphID, subID, predID, objID)); err != nil {
		return err
	}
	if err := txn.Delete(TableGPOS, spo.EncodeQuadKey(graphID, predID, objID, subID)); err != nil {
		return err
	}
	if err := txn.Delete(TableGOSP, spo.EncodeQuadKey(graphID, objID, subID, predID)); err != nil {
		return err
	}

	// The graphs table and the id2str dictionary are left alone; other
	// quads may still reference them (no garbage collection).
	return nil
}

// ContainsQuad checks if a quad exists in the store.
func (s *TripleStore) ContainsQuad(quad *rdf.Quad) (bool, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return false, err
	}
	defer txn.Rollback()

	subID, _, err := s.encoder.EncodeTerm(quad.Subject)
	if err != nil {
		return false, err
	}
	predID, _, err := s.encoder.EncodeTerm(quad.Predicate)
	if err != nil {
		return false, err
	}
	objID, _, err := s.encoder.EncodeTerm(quad.Object)
	if err != nil {
		return false, err
	}
	graphID, _, err := s.encoder.EncodeTerm(quad.Graph)
	if err != nil {
		return false, err
	}

	key := spo.EncodeQuadKey(subID, predID, objID, graphID)
	_, err = txn.Get(TableSPOG, key)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of quads in the store.
func (s *TripleStore) Count() (int64, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return 0, err
	}
	defer txn.Rollback()

	it, err := txn.Scan(TableSPOG, nil, nil)
	if err != nil {
		return 0, err
	}
	defer it.Close()

	count := int64(0)
	for it.Next() {
		count++
	}
	return count, nil
}

// DecodeStatement resolves a statement's identifiers back to terms through
// the id2str dictionary.
func (s *TripleStore) DecodeStatement(st spo.Statement) (*rdf.Triple, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return nil, err
	}
	defer txn.Rollback()

	subject, err := s.decodeTerm(txn, st.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to decode subject: %w", err)
	}
	predicate, err := s.decodeTerm(txn, st.Predicate)
	if err != nil {
		return nil, fmt.Errorf("failed to decode predicate: %w", err)
	}
	object, err := s.decodeTerm(txn, st.Object)
	if err != nil {
		return nil, fmt.Errorf("failed to decode object: %w", err)
	}
	return rdf.NewTriple(subject, predicate, object), nil
}
