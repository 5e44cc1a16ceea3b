// Package jsonfile provides a file-backed implementation of
// qalink.StoreService. The entire store is one JSON document with two
// top-level mappings, questions and answers, keyed by string-encoded
// sequential integers. Every mutation rewrites the whole file atomically
// via a temporary file and rename, so readers never observe a half-written
// store and a crash mid-write leaves the previous version intact.
package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Document is the persisted store structure.
type Document struct {
	Questions map[string]*QuestionRecord `json:"questions"`
	Answers   map[string]*AnswerRecord   `json:"answers"`
}

// NewDocument returns an empty document with initialized mappings.
func NewDocument() *Document {
	return &Document{
		Questions: map[string]*QuestionRecord{},
		Answers:   map[string]*AnswerRecord{},
	}
}

// QuestionIDs returns all question ids in ascending numeric order.
func (d *Document) QuestionIDs() []string {
	return sortedIDs(d.Questions)
}

// AnswerIDs returns all answer ids in ascending numeric order.
func (d *Document) AnswerIDs() []string {
	return sortedIDs(d.Answers)
}

func sortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, aerr := strconv.Atoi(ids[i])
		b, berr := strconv.Atoi(ids[j])
		// Non-numeric ids (legacy data) sort after numeric ones.
		if aerr != nil || berr != nil {
			if (aerr == nil) != (berr == nil) {
				return aerr == nil
			}
			return ids[i] < ids[j]
		}
		return a < b
	})
	return ids
}

// QuestionRecord is the persisted form of a question. Unknown fields found
// in the file are preserved in Extra so rewrites do not lose data.
type QuestionRecord struct {
	Text        string
	Description string
	Answers     []string
	Extra       map[string]json.RawMessage
}

// UnmarshalJSON decodes the known fields and retains the rest in Extra.
func (r *QuestionRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := extractString(raw, "text", &r.Text); err != nil {
		return err
	}
	if err := extractString(raw, "description", &r.Description); err != nil {
		return err
	}
	if err := extractStrings(raw, "answers", &r.Answers); err != nil {
		return err
	}
	if len(raw) > 0 {
		r.Extra = raw
	}
	return nil
}

// MarshalJSON encodes the known fields merged with any preserved extras.
func (r *QuestionRecord) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 3+len(r.Extra))
	for k, v := range r.Extra {
		m[k] = v
	}
	m["text"] = r.Text
	m["description"] = r.Description
	m["answers"] = nonNil(r.Answers)
	return json.Marshal(m)
}

// AnswerRecord is the persisted form of an answer, with the same
// unknown-field preservation as QuestionRecord.
type AnswerRecord struct {
	Text      string
	Questions []string
	Extra     map[string]json.RawMessage
}

func (r *AnswerRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := extractString(raw, "text", &r.Text); err != nil {
		return err
	}
	if err := extractStrings(raw, "questions", &r.Questions); err != nil {
		return err
	}
	if len(raw) > 0 {
		r.Extra = raw
	}
	return nil
}

func (r *AnswerRecord) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 2+len(r.Extra))
	for k, v := range r.Extra {
		m[k] = v
	}
	m["text"] = r.Text
	m["questions"] = nonNil(r.Questions)
	return json.Marshal(m)
}

func extractString(raw map[string]json.RawMessage, key string, dst *string) error {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	delete(raw, key)
	return json.Unmarshal(v, dst)
}

func extractStrings(raw map[string]json.RawMessage, key string, dst *[]string) error {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	delete(raw, key)
	return json.Unmarshal(v, dst)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ReadDocument reads and parses a store file.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeDocument(data)
}

// ReadDocumentLenient is like ReadDocument but strips leading //-prefixed
// comment lines before parsing. Legacy store files sometimes carry such a
// header; the store itself never writes one.
func ReadDocumentLenient(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		kept = append(kept, line)
	}
	return decodeDocument([]byte(strings.Join(kept, "\n")))
}

func decodeDocument(data []byte) (*Document, error) {
	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	if doc.Questions == nil {
		doc.Questions = map[string]*QuestionRecord{}
	}
	if doc.Answers == nil {
		doc.Answers = map[string]*AnswerRecord{}
	}
	return doc, nil
}

// WriteDocument writes a store file atomically: the document is serialized
// to a fresh temporary file in the target directory, then renamed over the
// target path.
func WriteDocument(path string, doc *Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}
