package dimdb

import (
	"log/slog"

	"enkadb/dimdb/dfetch"
	"enkadb/dimdb/dfield"
	"enkadb/dimdb/dgame"
	"enkadb/dimdb/dloc"
)

type (
	// DB is one title's decoded snapshot, from text map needs to packed files.
	DB interface {
		NeededHashes() dfield.HashSet
		ProtagonistOverrides() []dloc.Override
		Bleach(forbidden dfield.HashSet)
		Pack(loc dloc.EnkaTable) (map[string]any, error)
	}

	Options struct {
		Source dfetch.Source
		Fetch  dfetch.Options
		// Keys holds the field aliases of the title's raw tables.
		Keys dfield.KeyMap
		// Languages restricts the joined text maps; empty means every language.
		Languages []dgame.Language
		// NoLang skips the text maps; loc output then only holds the bundled extras.
		NoLang bool
		Logger *slog.Logger
	}
)

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}
