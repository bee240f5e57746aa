// Package store persists entity collections as whole JSON documents. A
// collection is an object keyed by entity ID; the object's key order is the
// collection order and is preserved across Load and Save.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNoDocument is returned by Load when the collection was never saved.
	ErrNoDocument = errors.New("store: no document")
	// ErrMalformed is returned by Load when the saved document cannot be parsed.
	ErrMalformed = errors.New("store: malformed document")
	// ErrBackupFailed is returned by Load when a malformed document could not
	// be copied aside, and by every later Save on that store, so the original
	// is never overwritten.
	ErrBackupFailed = errors.New("store: backup of malformed document failed")
)

// Document is one entity of a collection in serialised form.
type Document struct {
	ID   string
	Body json.RawMessage
}

// Store loads and saves a complete collection. Every Save replaces the
// previous snapshot.
type Store interface {
	Load(ctx context.Context) ([]Document, error)
	Save(ctx context.Context, docs []Document) error
}

const indent = "    "

// Encode renders docs as a pretty-printed JSON object in slice order.
// Non-ASCII text is written literally and HTML characters are not escaped.
func Encode(docs []Document) ([]byte, error) {
	var buf bytes.Buffer
	if len(docs) == 0 {
		buf.WriteString("{}\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("{\n")
	for i, d := range docs {
		key, err := marshalNoEscape(d.ID)
		if err != nil {
			return nil, fmt.Errorf("encode key %q: %w", d.ID, err)
		}
		var body bytes.Buffer
		if err := json.Indent(&body, d.Body, indent, indent); err != nil {
			return nil, fmt.Errorf("encode %q: %w", d.ID, err)
		}
		buf.WriteString(indent)
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(body.Bytes())
		if i < len(docs)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// Decode parses a document produced by Encode (or any JSON object) keeping
// key order. A repeated key keeps its first position and its last value.
func Decode(data []byte) ([]Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var docs []Document
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		id, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected key, got %v", tok)
		}
		var body json.RawMessage
		if err := dec.Decode(&body); err != nil {
			return nil, fmt.Errorf("value for %q: %w", id, err)
		}
		if i, dup := seen[id]; dup {
			docs[i].Body = body
			continue
		}
		seen[id] = len(docs)
		docs = append(docs, Document{ID: id, Body: body})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after object")
	}
	return docs, nil
}

// Marshal serialises v without HTML escaping, the way document bodies are
// expected to look on disk.
func Marshal(v any) (json.RawMessage, error) {
	return marshalNoEscape(v)
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
