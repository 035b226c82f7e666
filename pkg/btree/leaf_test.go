package btree

import (
	"bytes"
	"testing"
)

// ===== Leaf Tests =====

func TestLeaf_InsertAndContains(t *testing.T) {
	leaf := New(4)

	keys := [][]byte{
		[]byte("delta"),
		[]byte("alpha"),
		[]byte("charlie"),
		[]byte("bravo"),
	}
	for i, k := range keys {
		leaf.Insert(k, byte(i))
	}

	if leaf.Count() != 4 {
		t.Errorf("Expected count 4, got %d", leaf.Count())
	}
	for _, k := range keys {
		if !leaf.Contains(k) {
			t.Errorf("Expected to contain %q", k)
		}
	}
	if leaf.Contains([]byte("echo")) {
		t.Error("Expected echo to be absent")
	}
}

func TestLeaf_UpsertKeepsCountDistinct(t *testing.T) {
	leaf := New(2)
	leaf.Insert([]byte("key"), 1)
	leaf.Insert([]byte("key"), 2)

	if leaf.Count() != 1 {
		t.Errorf("Expected count 1 after upsert, got %d", leaf.Count())
	}

	it := leaf.Range()
	if !it.Next() {
		t.Fatal("Expected one entry")
	}
	if it.Value() != 2 {
		t.Errorf("Expected value 2 after upsert, got %d", it.Value())
	}
}

func TestLeaf_RangeAscendingAndRestartable(t *testing.T) {
	leaf := New(8)
	for _, k := range []string{"m", "a", "z", "f", "q"} {
		leaf.Insert([]byte(k), 0)
	}

	collect := func() [][]byte {
		var got [][]byte
		for it := leaf.Range(); it.Next(); {
			got = append(got, append([]byte(nil), it.Key()...))
		}
		return got
	}

	first := collect()
	if len(first) != 5 {
		t.Fatalf("Expected 5 entries, got %d", len(first))
	}
	for i := 1; i < len(first); i++ {
		if bytes.Compare(first[i-1], first[i]) >= 0 {
			t.Errorf("Expected ascending order, got %q before %q", first[i-1], first[i])
		}
	}

	second := collect()
	if len(second) != len(first) {
		t.Fatalf("Expected restarted iteration to yield %d entries, got %d", len(first), len(second))
	}
	for i := range first {
		if !bytes.Equal(first[i], second[i]) {
			t.Errorf("Entry %d differs between iterations", i)
		}
	}
}

func TestLeaf_MinimumCapacity(t *testing.T) {
	leaf := New(0)
	if leaf.Count() != 0 {
		t.Errorf("Expected empty leaf, got count %d", leaf.Count())
	}

	leaf.Insert([]byte("a"), 1)
	if !leaf.Contains([]byte("a")) {
		t.Error("Expected insert to work on minimum-capacity leaf")
	}

	it := New(0).Range()
	if it.Next() {
		t.Error("Expected empty iteration")
	}
	if it.Key() != nil {
		t.Error("Expected nil key on exhausted iterator")
	}
}

func TestLeaf_InsertCopiesKey(t *testing.T) {
	leaf := New(1)
	key := []byte("abc")
	leaf.Insert(key, 0)

	key[0] = 'z'
	if !leaf.Contains([]byte("abc")) {
		t.Error("Expected leaf to keep its own copy of the key")
	}
	if leaf.Contains([]byte("zbc")) {
		t.Error("Expected mutated caller key to be absent")
	}
}
