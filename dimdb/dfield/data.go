package dfield

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type (
	// Hash keys a record into the text maps. Upstream stores it signed or unsigned;
	// values built with NewHash or ParseHash are canonical, so String is the join key.
	Hash int64

	// HashSet is a set of canonical hash keys.
	HashSet map[string]struct{}

	// KeyMap maps table -> field -> aliases tried after the field name itself.
	KeyMap map[string]map[string][]string

	// NameHashed is implemented by records that carry display text.
	NameHashed interface {
		NameHashes() []Hash
	}
	// Validated is implemented by records that upstream ships placeholders of.
	Validated interface {
		IsValid() bool
	}

	DecodeError struct {
		Table  string
		Index  int
		Field  string
		Reason string
	}
)

// NewHash folds the signed spelling of a 32-bit hash onto its unsigned one. Wider
// hashes are kept as they are.
func NewHash(n int64) Hash {
	if n < 0 && n >= math.MinInt32 {
		return Hash(n + 1<<32)
	}
	return Hash(n)
}

// ParseHash reads a decimal hash in either spelling, 64-bit unsigned values included.
func ParseHash(text string) (Hash, bool) {
	text = strings.TrimSpace(text)
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return NewHash(n), true
	}
	if n, err := strconv.ParseUint(text, 10, 64); err == nil {
		return Hash(int64(n)), true
	}
	return 0, false
}

func (h Hash) String() string {
	return strconv.FormatInt(int64(h), 10)
}

func (r DecodeError) Error() string {
	switch {
	case r.Index < 0:
		return fmt.Sprintf("decoding %s: %s", r.Table, r.Reason)
	case r.Field == "":
		return fmt.Sprintf("decoding %s record #%d: %s", r.Table, r.Index, r.Reason)
	}
	return fmt.Sprintf("decoding %s record #%d field %s: %s", r.Table, r.Index, r.Field, r.Reason)
}

func NewHashSet(keys ...string) HashSet {
	set := make(HashSet, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set
}

func (s HashSet) Add(hashes ...Hash) {
	for _, hash := range hashes {
		s[hash.String()] = struct{}{}
	}
}

func (s HashSet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s HashSet) Sorted() []string {
	keys := lo.Keys(s)
	sort.Strings(keys)
	return keys
}

// CollectHashes adds the hashes of every record to set.
func CollectHashes[T NameHashed](set HashSet, records []T) {
	for _, record := range records {
		set.Add(record.NameHashes()...)
	}
}

// Aliases returns the lookup order for a field: its own name, then configured aliases.
func (m KeyMap) Aliases(table string, field string) []string {
	aliases := m[table][field]
	if lo.Contains(aliases, field) {
		return aliases
	}
	return append([]string{field}, aliases...)
}

// Merge returns a copy of m where every table/field present in other replaces m's entry.
func (m KeyMap) Merge(other KeyMap) KeyMap {
	merged := make(KeyMap, len(m)+len(other))
	for table, fields := range m {
		merged[table] = lo.Assign(fields)
	}
	for table, fields := range other {
		merged[table] = lo.Assign(merged[table], fields)
	}
	return merged
}
