package dkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	expectations := map[string]string{
		"ID":                       "id",
		"HPBase":                   "hpBase",
		"AvatarID":                 "avatarID",
		"Hash":                     "hash",
		"Value":                    "value",
		"RankIDList":               "rankIDList",
		"BaseHP":                   "baseHP",
		"avatarID":                 "avatarID",
		"SPBase":                   "spBase",
		"ActionAvatarHeadIconPath": "actionAvatarHeadIconPath",
		"":                         "",
	}
	for input, expected := range expectations {
		assert.Equal(t, expected, Fold(input), input)
	}
}

func TestFoldJSON(t *testing.T) {
	raw := []byte(`[
		{"AvatarID": 1001, "AvatarName": {"Hash": -531793651}, "HPBase": {"Value": 144},
		 "RankIDList": [100101, 100102], "Anchor": "Point01", "Release": true, "Extra": null}
	]`)

	folded, err := FoldJSON(raw)
	require.NoError(t, err)

	assert.JSONEq(
		t,
		`[{"avatarID": 1001, "avatarName": {"hash": -531793651}, "hpBase": {"value": 144},
		  "rankIDList": [100101, 100102], "anchor": "Point01", "release": true, "extra": null}]`,
		string(folded),
	)
}

func TestFoldJSON_Invalid(t *testing.T) {
	_, err := FoldJSON([]byte(`[{"ID": `))
	assert.Error(t, err)
}
