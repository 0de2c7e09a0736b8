package dgame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguage_EnkaID(t *testing.T) {
	expectations := map[Language]string{
		LangZHCN: "zh-cn",
		LangZHTW: "zh-tw",
		LangENUS: "en",
		LangJAJP: "ja",
		LangPTPT: "pt",
		LangVIVN: "vi",
	}
	for lang, expected := range expectations {
		assert.Equal(t, expected, lang.EnkaID(), string(lang))
	}
}

func TestLanguages(t *testing.T) {
	assert.Len(t, Languages(GameGI), 15)
	assert.Len(t, Languages(GameHSR), 13)
	assert.NotContains(t, Languages(GameHSR), LangITIT)
	assert.NotContains(t, Languages(GameHSR), LangTRTR)
}

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage(GameGI, "en-US")
	require.NoError(t, err)
	assert.Equal(t, LangENUS, lang)

	lang, err = ParseLanguage(GameGI, "ja")
	require.NoError(t, err)
	assert.Equal(t, LangJAJP, lang)

	lang, err = ParseLanguage(GameHSR, "zh-TW")
	require.NoError(t, err)
	assert.Equal(t, LangZHTW, lang)

	_, err = ParseLanguage(GameHSR, "it-it")
	var unknown UnknownLanguageError
	assert.ErrorAs(t, err, &unknown)

	_, err = ParseLanguage(GameGI, "not a tag!")
	assert.Error(t, err)
}

func TestLanguage_TextMapFiles(t *testing.T) {
	assert.Equal(t, []string{"TextMap/TextMapEN.json"}, LangENUS.TextMapFiles(GameGI))
	assert.Equal(
		t,
		[]string{"TextMap/TextMapTH_0.json", "TextMap/TextMapTH_1.json"},
		LangTHTH.TextMapFiles(GameGI),
	)
	assert.Equal(t, []string{"TextMap/TextMapTH.json"}, LangTHTH.TextMapFiles(GameHSR))
}

func TestParseGame(t *testing.T) {
	game, err := ParseGame("Genshin")
	require.NoError(t, err)
	assert.Equal(t, GameGI, game)

	game, err = ParseGame("hsr")
	require.NoError(t, err)
	assert.Equal(t, GameHSR, game)

	_, err = ParseGame("zzz")
	var unknown UnknownGameError
	assert.ErrorAs(t, err, &unknown)
}

func TestProtagonistNames(t *testing.T) {
	names, ok := ProtagonistNames(GameHSR, 8002)
	require.True(t, ok)
	assert.Equal(t, "星", names[LangJAJP])
	assert.Equal(t, "Stelle", names[LangENUS])

	names, ok = ProtagonistNames(GameGI, 10000007)
	require.True(t, ok)
	assert.Equal(t, "荧", names[LangZHCN])

	assert.True(t, IsProtagonist(GameGI, 10000005))
	assert.False(t, IsProtagonist(GameGI, 10000002))
	assert.False(t, IsProtagonist(GameHSR, 10000005))
}
