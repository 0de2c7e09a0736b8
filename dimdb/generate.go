package dimdb

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"enkadb/dimdb/dfetch"
	"enkadb/dimdb/dfield"
	"enkadb/dimdb/dgame"
	"enkadb/dimdb/dgi"
	"enkadb/dimdb/dhsr"
	"enkadb/dimdb/dloc"
)

// Requests lists the raw tables the game needs.
func Requests(game dgame.Game) ([]dfetch.Request, error) {
	switch game {
	case dgame.GameGI:
		return dgi.Requests(), nil
	case dgame.GameHSR:
		return dhsr.Requests(), nil
	}
	return nil, errors.WithStack(dgame.UnknownGameError{Value: string(game)})
}

// Tables lists every upstream path a run of the game may read: raw tables, collab
// tables and the text maps of langs (every language when langs is empty).
func Tables(game dgame.Game, langs ...dgame.Language) ([]string, error) {
	requests, err := Requests(game)
	if err != nil {
		return nil, errors.Wrap(err, "Tables error")
	}
	if len(langs) == 0 {
		langs = dgame.Languages(game)
	}
	paths := lo.Map(requests, func(request dfetch.Request, _ int) string { return request.Path })
	for _, lang := range langs {
		paths = append(paths, lang.TextMapFiles(game)...)
	}
	return paths, nil
}

// NewDB decodes the fetched raw tables of the game.
func NewDB(game dgame.Game, fetched map[string][]byte, keys dfield.KeyMap, logger *slog.Logger) (DB, error) {
	switch game {
	case dgame.GameGI:
		db, err := dgi.NewDB(dgi.ByTable(fetched), keys)
		if err != nil {
			return nil, errors.Wrap(err, "NewDB error")
		}
		db.Logger = logger
		return db, nil
	case dgame.GameHSR:
		db, err := dhsr.NewDB(dhsr.ByTable(fetched), keys)
		if err != nil {
			return nil, errors.Wrap(err, "NewDB error")
		}
		db.Logger = logger
		return db, nil
	}
	return nil, errors.WithStack(dgame.UnknownGameError{Value: string(game)})
}

// Generate runs the whole pipeline for one game and returns the files to publish keyed
// by file name. Any failure yields no files at all.
func Generate(ctx context.Context, game dgame.Game, opts Options) (map[string]any, error) {
	logger := opts.logger().With("game", string(game))
	stage := func(name string, started time.Time) {
		logger.Info("stage done", "stage", name, "elapsed", time.Since(started))
	}

	started := time.Now()
	requests, err := Requests(game)
	if err != nil {
		return nil, errors.Wrap(err, "Generate error")
	}
	fetched, err := dfetch.FetchAll(ctx, opts.Source, requests, opts.Fetch)
	if err != nil {
		return nil, errors.Wrap(err, "Generate error")
	}
	stage("fetch", started)

	started = time.Now()
	db, err := NewDB(game, fetched, opts.Keys, logger)
	if err != nil {
		return nil, errors.Wrap(err, "Generate error")
	}
	stage("decode", started)

	table := dloc.Table{}
	if !opts.NoLang {
		started = time.Now()
		langs := opts.Languages
		if len(langs) == 0 {
			langs = dgame.Languages(game)
		}
		table, err = dloc.Join(ctx, opts.Source, game, langs, db.NeededHashes(), opts.Fetch)
		if err != nil {
			return nil, errors.Wrap(err, "Generate error")
		}
		dloc.InjectProtagonists(table, db.ProtagonistOverrides())
		forbidden := dloc.FindForbidden(table)
		db.Bleach(forbidden)
		dloc.Bleach(table, forbidden)
		if len(forbidden) > 0 {
			logger.Info("bleached test content", "hashes", len(forbidden))
		}
		stage("localize", started)
	}

	started = time.Now()
	extra, err := dloc.ExtraLoc(game)
	if err != nil {
		return nil, errors.Wrap(err, "Generate error")
	}
	files, err := db.Pack(dloc.EnkaMap(table, extra))
	if err != nil {
		return nil, errors.Wrap(err, "Generate error")
	}
	stage("assemble", started)
	return files, nil
}
