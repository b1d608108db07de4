// Package record turns raw CLI output into ordered, case-insensitive field maps.
package record

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// foldKey builds the lookup key for name. Casers carry state, so each
// call gets its own.
func foldKey(name string) string {
	return cases.Fold().String(name)
}

// Field is a single name/value pair of a Record.
type Field struct {
	Name  string
	Value string
}

// Record is one parsed entity from CLI output. Field names compare
// case-insensitively; iteration follows first-insertion order and the last
// write to a name wins.
type Record struct {
	fields []Field
	index  map[string]int
}

// New creates an empty Record.
func New() *Record {
	return &Record{index: make(map[string]int)}
}

// FromFields builds a Record from pairs in order.
func FromFields(fields ...Field) *Record {
	r := New()
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// Set stores value under name.
func (r *Record) Set(name, value string) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	key := foldKey(name)
	if i, ok := r.index[key]; ok {
		r.fields[i].Value = value
		return
	}
	r.index[key] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: value})
}

// Get returns the raw value stored under name.
func (r *Record) Get(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	i, ok := r.index[foldKey(name)]
	if !ok {
		return "", false
	}
	return r.fields[i].Value, true
}

// Has reports whether name is present, whatever its value. Flag-style fields
// are emitted by the CLI without a value, so presence is the signal.
func (r *Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Len is the number of distinct fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.fields)
}

// Fields returns a copy of the fields in insertion order.
func (r *Record) Fields() []Field {
	if r == nil {
		return nil
	}
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Map returns the fields as a plain map keyed by their original names.
func (r *Record) Map() map[string]string {
	m := make(map[string]string, r.Len())
	for _, f := range r.Fields() {
		m[f.Name] = f.Value
	}
	return m
}

// String returns the value of name, or def when it is missing or empty.
func (r *Record) String(name, def string) string {
	if v, ok := r.Get(name); ok && v != "" {
		return v
	}
	return def
}

// Int parses name as a base-10 int, returning def on absence or parse failure.
func (r *Record) Int(name string, def int) int {
	v, ok := r.Get(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// Int64 parses name as a base-10 int64, returning def on absence or parse failure.
func (r *Record) Int64(name string, def int64) int64 {
	v, ok := r.Get(name)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return def
	}
	return n
}

// Enum returns the member of allowed matching the value of name
// case-insensitively, or def when nothing matches.
func Enum[T ~string](r *Record, name string, def T, allowed ...T) T {
	v, ok := r.Get(name)
	if !ok {
		return def
	}
	v = strings.TrimSpace(v)
	for _, a := range allowed {
		if strings.EqualFold(string(a), v) {
			return a
		}
	}
	return def
}

// Sequence reads prefix0, prefix1, ... until the first missing index.
// A gap ends the sequence; later indices are not consulted.
func (r *Record) Sequence(prefix string) []string {
	var out []string
	for i := 0; ; i++ {
		v, ok := r.Get(prefix + strconv.Itoa(i))
		if !ok {
			return out
		}
		out = append(out, v)
	}
}
