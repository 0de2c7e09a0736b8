package dloc

import (
	"enkadb/dimdb/dfield"
	"enkadb/dimdb/dgame"
)

type (
	// Table maps language -> canonical hash -> text.
	Table map[dgame.Language]map[string]string

	// EnkaTable maps published language id -> canonical hash -> text.
	EnkaTable map[string]map[string]string

	// Override replaces the text of one hash in every language it names.
	Override struct {
		Hash  dfield.Hash
		Names map[dgame.Language]string
	}
)

// Languages returns the languages present in the table.
func (t Table) Languages() []dgame.Language {
	langs := make([]dgame.Language, 0, len(t))
	for lang := range t {
		langs = append(langs, lang)
	}
	return langs
}
