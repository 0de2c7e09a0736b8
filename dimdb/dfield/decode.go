package dfield

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// DecodeTable decodes every record of a raw table with decode and drops the records
// whose IsValid reports false. The table may be a JSON array of records or an object
// whose values are records.
func DecodeTable[T any](table string, raw []byte, keys KeyMap, decode func(r *Reader) T) ([]T, error) {
	if len(raw) == 0 {
		return nil, errors.WithStack(DecodeError{Table: table, Index: -1, Reason: "missing table bytes"})
	}
	if !gjson.ValidBytes(raw) {
		return nil, errors.WithStack(DecodeError{Table: table, Index: -1, Reason: "invalid JSON"})
	}
	root := gjson.ParseBytes(raw)
	if !root.IsArray() && !root.IsObject() {
		return nil, errors.WithStack(
			DecodeError{Table: table, Index: -1, Reason: "expected a list or an object of records"},
		)
	}

	var (
		records = make([]T, 0)
		index   = 0
		err     error
	)
	root.ForEach(func(_, value gjson.Result) bool {
		defer func() { index++ }()
		if !value.IsObject() {
			err = errors.WithStack(DecodeError{Table: table, Index: index, Reason: "record is not an object"})
			return false
		}
		reader := NewReader(table, index, value, keys)
		record := decode(reader)
		if reader.Err() != nil {
			err = errors.WithStack(reader.Err())
			return false
		}
		if validated, ok := any(record).(Validated); ok && !validated.IsValid() {
			return true
		}
		records = append(records, record)
		return true
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DecodeOptional decodes a table that upstream may not ship; absent bytes give no records.
func DecodeOptional[T any](table string, raw []byte, keys KeyMap, decode func(r *Reader) T) ([]T, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	return DecodeTable(table, raw, keys, decode)
}
