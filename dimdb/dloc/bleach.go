package dloc

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"enkadb/dimdb/dfield"
	"enkadb/dimdb/dgame"
)

var (
	ReferenceLanguages = []dgame.Language{dgame.LangENUS, dgame.LangZHCN}

	testMarkers     = []string{"(test)", "Test Skill"}
	languageMarkers = map[dgame.Language][]string{
		dgame.LangZHCN: {"测试"},
	}
)

// FindForbidden collects the hashes whose text in any reference language carries a
// test marker. With no languages given, ReferenceLanguages are scanned.
func FindForbidden(table Table, langs ...dgame.Language) dfield.HashSet {
	if len(langs) == 0 {
		langs = ReferenceLanguages
	}
	forbidden := dfield.NewHashSet()
	for _, lang := range langs {
		markers := append(slices.Clone(testMarkers), languageMarkers[lang]...)
		for hash, text := range table[lang] {
			if lo.SomeBy(markers, func(marker string) bool { return strings.Contains(text, marker) }) {
				forbidden[hash] = struct{}{}
			}
		}
	}
	return forbidden
}

// Bleach removes the forbidden hashes from every language.
func Bleach(table Table, forbidden dfield.HashSet) {
	for _, texts := range table {
		for hash := range forbidden {
			delete(texts, hash)
		}
	}
}
