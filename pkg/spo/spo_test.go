package spo

import (
	"bytes"
	"errors"
	"testing"
)

// ===== ID Tests =====

func TestID_Constructors(t *testing.T) {
	var hash [16]byte
	for i := range hash {
		hash[i] = byte(i + 1)
	}

	tests := []struct {
		name   string
		id     ID
		typ    Type
		length int
		dict   bool
	}{
		{name: "term id", id: NewTermID(42), typ: TypeTermID, length: 9},
		{name: "iri", id: NewIRI(hash), typ: TypeIRI, length: 17, dict: true},
		{name: "blank node hash", id: NewBlankNode(hash), typ: TypeBlankNode, length: 17, dict: true},
		{name: "blank node numeric", id: NewBlankNodeID(7), typ: TypeBlankNodeID, length: 9},
		{name: "string hash", id: NewString(hash), typ: TypeString, length: 17, dict: true},
		{name: "string inline", id: NewStringInline("hi"), typ: TypeStringInline, length: 4},
		{name: "lang string", id: NewLangString(hash), typ: TypeLangString, length: 17, dict: true},
		{name: "integer", id: NewInteger(-5), typ: TypeInteger, length: 9},
		{name: "decimal", id: NewDecimal(2.5), typ: TypeDecimal, length: 9},
		{name: "double", id: NewDouble(1.5), typ: TypeDouble, length: 9},
		{name: "boolean", id: NewBoolean(true), typ: TypeBoolean, length: 2},
		{name: "datetime", id: NewDateTime(123456789), typ: TypeDateTime, length: 9},
		{name: "date", id: NewDate(19000), typ: TypeDate, length: 9},
		{name: "default graph", id: DefaultGraph(), typ: TypeDefaultGraph, length: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.id.Type() != tt.typ {
				t.Errorf("Expected type %v, got %v", tt.typ, tt.id.Type())
			}
			if len(tt.id) != tt.length {
				t.Errorf("Expected length %d, got %d", tt.length, len(tt.id))
			}
			if tt.id.NeedsDictionary() != tt.dict {
				t.Errorf("Expected NeedsDictionary %v, got %v", tt.dict, tt.id.NeedsDictionary())
			}

			decoded, n, err := DecodeID(tt.id)
			if err != nil {
				t.Fatalf("DecodeID failed: %v", err)
			}
			if n != len(tt.id) {
				t.Errorf("Expected %d bytes consumed, got %d", len(tt.id), n)
			}
			if !decoded.Equal(tt.id) {
				t.Errorf("Expected decoded id %v, got %v", tt.id, decoded)
			}
		})
	}
}

func TestID_AbsentType(t *testing.T) {
	var id ID
	if id.Type() != 0 {
		t.Errorf("Expected zero type for absent id, got %v", id.Type())
	}
	if id.Payload() != nil {
		t.Error("Expected nil payload for absent id")
	}
}

func TestDecodeID_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{name: "empty input", input: nil},
		{name: "unknown type", input: []byte{0xFF, 1, 2, 3}},
		{name: "truncated hash", input: append([]byte{byte(TypeIRI)}, make([]byte, 8)...)},
		{name: "truncated numeric", input: []byte{byte(TypeInteger), 1, 2}},
		{name: "inline missing length", input: []byte{byte(TypeStringInline)}},
		{name: "inline length too large", input: []byte{byte(TypeStringInline), 17}},
		{name: "inline truncated body", input: []byte{byte(TypeStringInline), 4, 'a', 'b'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeID(tt.input)
			if !errors.Is(err, ErrInvalidID) {
				t.Errorf("Expected ErrInvalidID, got %v", err)
			}
		})
	}
}

func TestDecodeID_ConsumesPrefixOnly(t *testing.T) {
	first := NewBoolean(false)
	second := NewInteger(9)
	buf := append(append([]byte{}, first...), second...)

	id, n, err := DecodeID(buf)
	if err != nil {
		t.Fatalf("DecodeID failed: %v", err)
	}
	if !id.Equal(first) {
		t.Errorf("Expected first id %v, got %v", first, id)
	}
	if n != len(first) {
		t.Errorf("Expected %d bytes consumed, got %d", len(first), n)
	}
}

// ===== Key Tests =====

func TestEncodeKey_DecodeKey(t *testing.T) {
	var hash [16]byte
	hash[0] = 0xAB

	s := NewIRI(hash)
	p := NewTermID(2)
	o := NewStringInline("x")

	key := EncodeKey(s, p, o)
	if len(key) != len(s)+len(p)+len(o) {
		t.Errorf("Expected key length %d, got %d", len(s)+len(p)+len(o), len(key))
	}

	ds, dp, do, err := DecodeKey(key)
	if err != nil {
		t.Fatalf("DecodeKey failed: %v", err)
	}
	if !ds.Equal(s) || !dp.Equal(p) || !do.Equal(o) {
		t.Error("Decoded components do not match originals")
	}
}

func TestDecodeKey_Errors(t *testing.T) {
	s := NewTermID(1)
	p := NewTermID(2)
	o := NewTermID(3)

	tests := []struct {
		name string
		key  []byte
	}{
		{name: "empty key", key: nil},
		{name: "two components", key: EncodeQuadKey(s, p)},
		{name: "trailing bytes", key: append(EncodeKey(s, p, o), 0x00)},
		{name: "garbage", key: []byte{0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := DecodeKey(tt.key)
			if !errors.Is(err, ErrInvalidKey) {
				t.Errorf("Expected ErrInvalidKey, got %v", err)
			}
		})
	}
}

func TestSplitKey_Quad(t *testing.T) {
	ids := []ID{NewTermID(1), NewInteger(2), NewBoolean(true), DefaultGraph()}
	key := EncodeQuadKey(ids...)

	parts, err := SplitKey(key, 4)
	if err != nil {
		t.Fatalf("SplitKey failed: %v", err)
	}
	if len(parts) != 4 {
		t.Fatalf("Expected 4 components, got %d", len(parts))
	}
	for i, id := range ids {
		if !parts[i].Equal(id) {
			t.Errorf("Component %d: expected %v, got %v", i, id, parts[i])
		}
	}
}

// ===== Statement Tests =====

func TestStatement_Key(t *testing.T) {
	st := Statement{
		Subject:   NewTermID(1),
		Predicate: NewTermID(2),
		Object:    NewTermID(3),
		Kind:      KindAxiom,
	}

	expected := EncodeKey(st.Subject, st.Predicate, st.Object)
	if !bytes.Equal(st.Key(), expected) {
		t.Error("Statement key does not match EncodeKey output")
	}
}

func TestCompare_MatchesKeyOrder(t *testing.T) {
	stmts := []Statement{
		{Subject: NewTermID(1), Predicate: NewTermID(2), Object: NewTermID(3)},
		{Subject: NewTermID(1), Predicate: NewTermID(2), Object: NewTermID(4)},
		{Subject: NewTermID(1), Predicate: NewTermID(3), Object: NewTermID(0)},
		{Subject: NewTermID(2), Predicate: NewTermID(0), Object: NewTermID(0)},
	}

	for i := 0; i < len(stmts); i++ {
		for j := 0; j < len(stmts); j++ {
			got := Compare(stmts[i], stmts[j])
			want := bytes.Compare(stmts[i].Key(), stmts[j].Key())
			if (got < 0) != (want < 0) || (got == 0) != (want == 0) {
				t.Errorf("Compare(%d, %d) = %d, key order = %d", i, j, got, want)
			}
		}
	}

	for i := 1; i < len(stmts); i++ {
		if Compare(stmts[i-1], stmts[i]) >= 0 {
			t.Errorf("Expected statement %d < statement %d", i-1, i)
		}
	}
}
