package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"

	"enkadb/config"
	"enkadb/dimdb"
	"enkadb/dimdb/dfetch"
	"enkadb/dimdb/dgame"
	"enkadb/dimdb/dpack"
)

var version = "dev"

type (
	Args struct {
		Generate *GenerateCmd `arg:"subcommand:generate"`
		Tables   *TablesCmd   `arg:"subcommand:tables"`
		Verbose  bool         `arg:"-v,--verbose" help:"log debug records"`
	}
	GenerateCmd struct {
		Game     string   `arg:"-g,--game,required" help:"gi or hsr" placeholder:"GAME"`
		Out      string   `help:"output directory" placeholder:"DIR"`
		Config   string   `help:"YAML file laid over the defaults" placeholder:"FILE"`
		OneByOne bool     `arg:"--one-by-one" help:"fetch files sequentially"`
		NoLang   bool     `arg:"--no-lang" help:"skip the text maps"`
		Lang     []string `arg:"--lang,separate" help:"restrict to a language, repeatable" placeholder:"TAG"`
		Mirror   string   `help:"read upstream files from a local mirror" placeholder:"DIR"`
	}
	TablesCmd struct {
		Game string   `arg:"-g,--game,required" help:"gi or hsr" placeholder:"GAME"`
		Lang []string `arg:"--lang,separate" help:"only list text maps of a language, repeatable" placeholder:"TAG"`
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"Builds the enka lookup files for Genshin Impact and Honkai: Star Rail",
			"from the community data dumps.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func (Args) Version() string {
	return "enkadb " + version
}

func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig layers the command line over the loaded configuration.
func loadConfig(cmd GenerateCmd) (config.Config, error) {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return config.Config{}, errors.Wrap(err, "loadConfig error")
	}
	if cmd.Out != "" {
		cfg.OutputDir = cmd.Out
	}
	if cmd.OneByOne {
		cfg.OneByOne = true
	}
	if len(cmd.Lang) > 0 {
		cfg.Languages = cmd.Lang
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, errors.Wrap(err, "loadConfig error")
	}
	return cfg, nil
}

func source(cfg config.Config, game dgame.Game, mirror string, logger *slog.Logger) dfetch.Source {
	if mirror != "" {
		return dfetch.DirSource{Root: mirror}
	}
	src := dfetch.NewHTTPSource(cfg.RepoURL(game), cfg.Fetch.Timeout, cfg.Fetch.Retries)
	src.Logger = logger
	return src
}

func StartGenerating(ctx context.Context, cmd GenerateCmd) error {
	game, err := dgame.ParseGame(cmd.Game)
	if err != nil {
		return errors.Wrap(err, "StartGenerating error")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return errors.Wrap(err, "StartGenerating error")
	}
	langs, err := cfg.LanguagesFor(game)
	if err != nil {
		return errors.Wrap(err, "StartGenerating error")
	}

	logger := slog.Default()
	files, err := dimdb.Generate(ctx, game, dimdb.Options{
		Source:    source(cfg, game, cmd.Mirror, logger),
		Fetch:     dfetch.Options{OneByOne: cfg.OneByOne, Limit: cfg.Fetch.Parallelism},
		Keys:      cfg.KeysFor(game),
		Languages: langs,
		NoLang:    cmd.NoLang,
		Logger:    logger,
	})
	if err != nil {
		return errors.Wrap(err, "StartGenerating error")
	}
	if err := dpack.Write(cfg.OutputDir, files, logger); err != nil {
		return errors.Wrap(err, "StartGenerating error")
	}
	logger.Info("done generating", "game", string(game), "dir", cfg.OutputDir, "files", len(files))
	return nil
}

func StartListing(w io.Writer, cmd TablesCmd) error {
	game, err := dgame.ParseGame(cmd.Game)
	if err != nil {
		return errors.Wrap(err, "StartListing error")
	}
	langs := make([]dgame.Language, 0, len(cmd.Lang))
	for _, tag := range cmd.Lang {
		lang, err := dgame.ParseLanguage(game, tag)
		if err != nil {
			return errors.Wrap(err, "StartListing error")
		}
		langs = append(langs, lang)
	}
	paths, err := dimdb.Tables(game, langs...)
	if err != nil {
		return errors.Wrap(err, "StartListing error")
	}
	for _, path := range paths {
		if _, err := fmt.Fprintln(w, path); err != nil {
			return errors.Wrap(err, "StartListing error")
		}
	}
	return nil
}

func Start() {
	args := Args{}
	parser := arg.MustParse(&args)
	setupLogger(args.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch {
	case args.Generate != nil:
		err = StartGenerating(ctx, *args.Generate)
	case args.Tables != nil:
		err = StartListing(os.Stdout, *args.Tables)
	default:
		parser.WriteHelp(os.Stdout)
		return
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		stop()
		os.Exit(1)
	}
}
