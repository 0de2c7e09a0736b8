package dpack

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Encode renders value as indented JSON with the keys of every object sorted, struct
// fields included. Numbers keep their exact digits; slashes and HTML characters are
// written verbatim.
func Encode(value any) ([]byte, error) {
	compact, err := marshal(value)
	if err != nil {
		return nil, errors.Wrap(err, "Encode error")
	}

	decoder := json.NewDecoder(bytes.NewReader(compact))
	decoder.UseNumber()
	var decoded any
	if err := decoder.Decode(&decoded); err != nil {
		return nil, errors.Wrap(err, "Encode error")
	}

	sorted, err := marshal(sortDeep(decoded))
	if err != nil {
		return nil, errors.Wrap(err, "Encode error")
	}
	indented := bytes.Buffer{}
	if err := json.Indent(&indented, sorted, "", "  "); err != nil {
		return nil, errors.Wrap(err, "Encode error")
	}
	indented.WriteByte('\n')
	return indented.Bytes(), nil
}

func marshal(value any) ([]byte, error) {
	buffer := bytes.Buffer{}
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}

// sortDeep rebuilds every decoded object as an ordered map with sorted keys and HTML
// escaping turned off. json.Number values pass through untouched.
func sortDeep(value any) any {
	switch v := value.(type) {
	case map[string]any:
		om := orderedmap.New()
		om.SetEscapeHTML(false)
		keys := lo.Keys(v)
		sort.Strings(keys)
		for _, key := range keys {
			om.Set(key, sortDeep(v[key]))
		}
		return om
	case []any:
		for i, item := range v {
			v[i] = sortDeep(item)
		}
		return v
	}
	return value
}

// Write encodes every file into dir, creating it when needed.
func Write(dir string, files map[string]any, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "Write error")
	}
	names := lo.Keys(files)
	sort.Strings(names)
	for _, name := range names {
		encoded, err := Encode(files[name])
		if err != nil {
			return errors.Wrapf(err, "Write error encoding %s", name)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, encoded, 0o644); err != nil {
			return errors.Wrap(err, "Write error")
		}
		logger.Info("file written", "path", path, "bytes", len(encoded))
	}
	return nil
}
