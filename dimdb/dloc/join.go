package dloc

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"enkadb/dimdb/dfetch"
	"enkadb/dimdb/dfield"
	"enkadb/dimdb/dgame"
)

var rubyPattern = regexp.MustCompile(`\{RUBY.*?\}`)

type chunk struct {
	lang dgame.Language
	path string
}

// Join fetches the text maps of langs and keeps only the needed hashes.
// Sequential and parallel runs produce identical tables.
func Join(
	ctx context.Context,
	src dfetch.Source,
	game dgame.Game,
	langs []dgame.Language,
	needed dfield.HashSet,
	opts dfetch.Options,
) (Table, error) {
	chunks := lo.FlatMap(langs, func(lang dgame.Language, _ int) []chunk {
		return lo.Map(lang.TextMapFiles(game), func(path string, _ int) chunk {
			return chunk{lang: lang, path: path}
		})
	})

	decoded := make([]map[string]string, len(chunks))
	err := dfetch.Run(ctx, len(chunks), opts, func(ctx context.Context, i int) error {
		raw, err := src.Fetch(ctx, chunks[i].path)
		if err != nil {
			return errors.Wrapf(err, "Join error fetching %s", chunks[i].path)
		}
		texts, err := DecodeChunk(chunks[i].path, raw, needed)
		if err != nil {
			return errors.Wrap(err, "Join error")
		}
		decoded[i] = texts
		return nil
	})
	if err != nil {
		return nil, err
	}

	table := make(Table, len(langs))
	for i, c := range chunks {
		texts, ok := table[c.lang]
		if !ok {
			texts = make(map[string]string, len(needed))
			table[c.lang] = texts
		}
		for hash, text := range decoded[i] {
			texts[hash] = text
		}
	}
	if texts, ok := table[dgame.LangJAJP]; ok {
		for hash, text := range texts {
			texts[hash] = StripRuby(text)
		}
	}
	return table, nil
}

// DecodeChunk reads a flat hash -> text object, keeping only the needed hashes under
// their canonical keys.
func DecodeChunk(name string, raw []byte, needed dfield.HashSet) (map[string]string, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.WithStack(dfield.DecodeError{Table: name, Index: -1, Reason: "invalid JSON"})
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, errors.WithStack(dfield.DecodeError{Table: name, Index: -1, Reason: "expected an object"})
	}
	texts := make(map[string]string)
	root.ForEach(func(key, value gjson.Result) bool {
		hash := key.String()
		if parsed, ok := dfield.ParseHash(hash); ok {
			hash = parsed.String()
		}
		if needed.Has(hash) {
			texts[hash] = value.String()
		}
		return true
	})
	return texts, nil
}

// StripRuby drops furigana annotations, keeping the annotated text.
func StripRuby(text string) string {
	if !strings.Contains(text, "{RUBY") {
		return text
	}
	return rubyPattern.ReplaceAllString(text, "")
}
