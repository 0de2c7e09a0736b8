package dgame

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/text/language"
)

const (
	LangZHCN Language = "zh-cn"
	LangZHTW Language = "zh-tw"
	LangDEDE Language = "de-de"
	LangENUS Language = "en-us"
	LangESES Language = "es-es"
	LangFRFR Language = "fr-fr"
	LangIDID Language = "id-id"
	LangITIT Language = "it-it"
	LangJAJP Language = "ja-jp"
	LangKOKR Language = "ko-kr"
	LangPTPT Language = "pt-pt"
	LangRURU Language = "ru-ru"
	LangTHTH Language = "th-th"
	LangTRTR Language = "tr-tr"
	LangVIVN Language = "vi-vn"
)

var (
	allLanguages = []Language{
		LangZHCN, LangZHTW, LangDEDE, LangENUS, LangESES, LangFRFR, LangIDID, LangITIT,
		LangJAJP, LangKOKR, LangPTPT, LangRURU, LangTHTH, LangTRTR, LangVIVN,
	}
	textMapSuffixes = map[Language]string{
		LangZHCN: "CHS",
		LangZHTW: "CHT",
		LangDEDE: "DE",
		LangENUS: "EN",
		LangESES: "ES",
		LangFRFR: "FR",
		LangIDID: "ID",
		LangITIT: "IT",
		LangJAJP: "JP",
		LangKOKR: "KR",
		LangPTPT: "PT",
		LangRURU: "RU",
		LangTHTH: "TH",
		LangTRTR: "TR",
		LangVIVN: "VI",
	}
	missingLanguages = map[Game][]Language{
		GameHSR: {LangITIT, LangTRTR},
	}
	// GI ships these text maps in two halves.
	chunkedLanguages = map[Game][]Language{
		GameGI: {LangTHTH, LangRURU},
	}
)

// Languages lists every language the game publishes text maps for.
func Languages(game Game) []Language {
	return lo.Without(allLanguages, missingLanguages[game]...)
}

// ParseLanguage accepts full tags ("en-US") or bare output ids ("en").
func ParseLanguage(game Game, value string) (Language, error) {
	tag, err := language.Parse(value)
	if err != nil {
		return "", errors.Wrap(UnknownLanguageError{Game: game, Value: value}, err.Error())
	}
	normalized := Language(strings.ToLower(tag.String()))
	available := Languages(game)
	if lo.Contains(available, normalized) {
		return normalized, nil
	}
	matched, ok := lo.Find(available, func(lang Language) bool {
		return lang.EnkaID() == string(normalized)
	})
	if !ok {
		return "", errors.WithStack(UnknownLanguageError{Game: game, Value: value})
	}
	return matched, nil
}

func (l Language) Suffix() string {
	return textMapSuffixes[l]
}

// EnkaID is the language key used by the published files: the base language,
// except for the two Chinese scripts which keep their region.
func (l Language) EnkaID() string {
	if l == LangZHCN || l == LangZHTW {
		return string(l)
	}
	tag, err := language.Parse(string(l))
	if err != nil {
		return string(l)
	}
	base, _ := tag.Base()
	return base.String()
}

// TextMapFiles lists the upstream paths holding the language's text map, in merge order.
func (l Language) TextMapFiles(game Game) []string {
	if lo.Contains(chunkedLanguages[game], l) {
		return []string{
			fmt.Sprintf("TextMap/TextMap%s_0.json", l.Suffix()),
			fmt.Sprintf("TextMap/TextMap%s_1.json", l.Suffix()),
		}
	}
	return []string{fmt.Sprintf("TextMap/TextMap%s.json", l.Suffix())}
}
