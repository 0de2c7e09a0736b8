package dfield

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Reader reads the fields of one raw record. The first failure sticks: later reads
// return zero values and Err reports the original problem.
type Reader struct {
	table  string
	index  int
	path   string
	record gjson.Result
	keys   KeyMap
	root   *Reader
	err    error
}

func NewReader(table string, index int, record gjson.Result, keys KeyMap) *Reader {
	r := &Reader{
		table:  table,
		index:  index,
		record: record,
		keys:   keys,
	}
	r.root = r
	return r
}

func (r *Reader) Err() error {
	return r.root.err
}

func (r *Reader) Raw() gjson.Result {
	return r.record
}

// Fail records a decode failure for a field the caller validates itself.
func (r *Reader) Fail(field string, reason string) {
	r.fail(field, reason)
}

func (r *Reader) fail(field string, reason string) {
	if r.root.err != nil {
		return
	}
	r.root.err = DecodeError{
		Table:  r.table,
		Index:  r.index,
		Field:  r.path + field,
		Reason: reason,
	}
}

func (r *Reader) lookup(field string) gjson.Result {
	aliases := []string{field}
	if r.keys != nil {
		aliases = r.keys.Aliases(r.table, field)
	}
	for _, alias := range aliases {
		value := r.record.Get(gjson.Escape(alias))
		if value.Exists() && value.Type != gjson.Null {
			return value
		}
	}
	return gjson.Result{}
}

func (r *Reader) Has(field string) bool {
	return r.lookup(field).Exists()
}

func (r *Reader) required(field string) (gjson.Result, bool) {
	value := r.lookup(field)
	if !value.Exists() {
		r.fail(field, "missing required field")
		return value, false
	}
	return value, true
}

func (r *Reader) Int(field string) int {
	value, ok := r.required(field)
	if !ok {
		return 0
	}
	return r.toInt(field, value)
}

func (r *Reader) IntOr(field string, fallback int) int {
	value := r.lookup(field)
	if !value.Exists() {
		return fallback
	}
	return r.toInt(field, value)
}

func (r *Reader) OptInt(field string) *int {
	value := r.lookup(field)
	if !value.Exists() {
		return nil
	}
	n := r.toInt(field, value)
	return &n
}

func (r *Reader) String(field string) string {
	value, ok := r.required(field)
	if !ok {
		return ""
	}
	return r.toString(field, value)
}

func (r *Reader) StringOr(field string, fallback string) string {
	value := r.lookup(field)
	if !value.Exists() {
		return fallback
	}
	return r.toString(field, value)
}

func (r *Reader) BoolOr(field string, fallback bool) bool {
	value := r.lookup(field)
	switch {
	case !value.Exists():
		return fallback
	case value.IsBool():
		return value.Bool()
	}
	r.fail(field, "not a boolean: "+value.Raw)
	return fallback
}

// Float accepts a bare number or a {"value": n} wrapper.
func (r *Reader) Float(field string) float64 {
	value, ok := r.required(field)
	if !ok {
		return 0
	}
	return r.toFloat(field, value)
}

func (r *Reader) FloatOr(field string, fallback float64) float64 {
	value := r.lookup(field)
	if !value.Exists() {
		return fallback
	}
	return r.toFloat(field, value)
}

// Hash accepts a bare number, a numeric string or a {"hash": n} wrapper, and returns
// the canonical form.
func (r *Reader) Hash(field string) Hash {
	value, ok := r.required(field)
	if !ok {
		return 0
	}
	if value.IsObject() {
		value = value.Get("hash")
	}
	switch value.Type {
	case gjson.Number:
		if hash, ok := ParseHash(value.Raw); ok {
			return hash
		}
		if n, ok := integral(value); ok {
			return NewHash(n)
		}
	case gjson.String:
		if hash, ok := ParseHash(value.Str); ok {
			return hash
		}
	}
	r.fail(field, "not a text map hash: "+value.Raw)
	return 0
}

// Ints reads an optional list; absence yields nil.
func (r *Reader) Ints(field string) []int {
	value := r.lookup(field)
	if !value.Exists() {
		return nil
	}
	if !value.IsArray() {
		r.fail(field, "not a list: "+value.Raw)
		return nil
	}
	items := value.Array()
	ints := make([]int, 0, len(items))
	for i, item := range items {
		ints = append(ints, r.toInt(fmt.Sprintf("%s[%d]", field, i), item))
	}
	return ints
}

func (r *Reader) Strings(field string) []string {
	value := r.lookup(field)
	if !value.Exists() {
		return nil
	}
	if !value.IsArray() {
		r.fail(field, "not a list: "+value.Raw)
		return nil
	}
	items := value.Array()
	strs := make([]string, 0, len(items))
	for i, item := range items {
		strs = append(strs, r.toString(fmt.Sprintf("%s[%d]", field, i), item))
	}
	return strs
}

// Objects reads an optional list of nested records.
func (r *Reader) Objects(field string) []*Reader {
	value := r.lookup(field)
	if !value.Exists() {
		return nil
	}
	if !value.IsArray() {
		r.fail(field, "not a list: "+value.Raw)
		return nil
	}
	items := value.Array()
	readers := make([]*Reader, 0, len(items))
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", field, i)
		if !item.IsObject() {
			r.fail(itemPath, "not an object: "+item.Raw)
			return nil
		}
		readers = append(readers, r.nested(itemPath, item))
	}
	return readers
}

// IntMap reads an optional object of integers.
func (r *Reader) IntMap(field string) map[string]int {
	value := r.lookup(field)
	if !value.Exists() {
		return map[string]int{}
	}
	if !value.IsObject() {
		r.fail(field, "not an object: "+value.Raw)
		return map[string]int{}
	}
	ints := map[string]int{}
	value.ForEach(func(key, item gjson.Result) bool {
		ints[key.String()] = r.toInt(field+"."+key.String(), item)
		return true
	})
	return ints
}

func (r *Reader) nested(path string, record gjson.Result) *Reader {
	return &Reader{
		table:  r.table,
		index:  r.index,
		path:   r.path + path + ".",
		record: record,
		keys:   r.keys,
		root:   r.root,
	}
}

func (r *Reader) toInt(field string, value gjson.Result) int {
	switch value.Type {
	case gjson.Number:
		if n, ok := integral(value); ok {
			return int(n)
		}
	case gjson.String:
		if n, err := strconv.Atoi(strings.TrimSpace(value.Str)); err == nil {
			return n
		}
	}
	r.fail(field, "not an integer: "+value.Raw)
	return 0
}

func (r *Reader) toFloat(field string, value gjson.Result) float64 {
	if value.IsObject() {
		value = value.Get("value")
	}
	switch value.Type {
	case gjson.Number:
		return value.Float()
	case gjson.String:
		if f, err := strconv.ParseFloat(strings.TrimSpace(value.Str), 64); err == nil {
			return f
		}
	}
	r.fail(field, "not a number: "+value.Raw)
	return 0
}

func (r *Reader) toString(field string, value gjson.Result) string {
	if value.Type != gjson.String {
		r.fail(field, "not a string: "+value.Raw)
		return ""
	}
	return value.Str
}

func integral(value gjson.Result) (int64, bool) {
	f := value.Float()
	if f != math.Trunc(f) {
		return 0, false
	}
	return value.Int(), true
}
