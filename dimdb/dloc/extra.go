package dloc

import (
	"embed"
	"encoding/json"

	"github.com/pkg/errors"

	"enkadb/dimdb/dgame"
)

//go:embed extra/*.json
var extraFiles embed.FS

var extraFileNames = map[dgame.Game]string{
	dgame.GameGI:  "extra/extra-loc-genshin.json",
	dgame.GameHSR: "extra/extra-loc-starrail.json",
}

// ExtraLoc loads the curated translations bundled for the game.
func ExtraLoc(game dgame.Game) (EnkaTable, error) {
	name, ok := extraFileNames[game]
	if !ok {
		return EnkaTable{}, nil
	}
	raw, err := extraFiles.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "ExtraLoc error")
	}
	extra := EnkaTable{}
	if err := json.Unmarshal(raw, &extra); err != nil {
		return nil, errors.Wrapf(err, "ExtraLoc error decoding %s", name)
	}
	return extra, nil
}
