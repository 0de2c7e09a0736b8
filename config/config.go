package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"enkadb/dimdb/dfield"
	"enkadb/dimdb/dgame"
)

//go:embed default.yaml
var defaultYAML []byte

type (
	Config struct {
		OutputDir string   `yaml:"output_dir" env:"ENKADB_OUTPUT_DIR" validate:"required"`
		OneByOne  bool     `yaml:"one_by_one" env:"ENKADB_ONE_BY_ONE"`
		Languages []string `yaml:"languages" env:"ENKADB_LANGUAGES" envSeparator:","`
		Repos     Repos    `yaml:"repos"`
		Fetch     Fetch    `yaml:"fetch"`
		// Keys maps game -> table -> field -> aliases.
		Keys map[string]dfield.KeyMap `yaml:"keys"`
	}
	Repos struct {
		GI  string `yaml:"gi" env:"ENKADB_GI_REPO" validate:"required,url"`
		HSR string `yaml:"hsr" env:"ENKADB_HSR_REPO" validate:"required,url"`
	}
	Fetch struct {
		Timeout     time.Duration `yaml:"timeout" env:"ENKADB_FETCH_TIMEOUT" validate:"min=0"`
		Retries     uint          `yaml:"retries" env:"ENKADB_FETCH_RETRIES"`
		Parallelism int           `yaml:"parallelism" env:"ENKADB_FETCH_PARALLELISM" validate:"min=0"`
	}

	InvalidLanguageError struct {
		Value string
	}
)

func (r InvalidLanguageError) Error() string {
	return fmt.Sprintf("invalid language tag %q", r.Value)
}

// Default returns the configuration embedded in the binary.
func Default() (Config, error) {
	cfg := Config{}
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "Default error")
	}
	return cfg, nil
}

// Load layers the embedded defaults, the YAML file at path (skipped when path is empty
// or the file does not exist) and the ENKADB_* environment, then validates the result.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, errors.Wrap(err, "Load error")
	}
	if path != "" {
		cfg, err = overlayFile(cfg, path)
		if err != nil {
			return Config{}, errors.Wrap(err, "Load error")
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "Load error parsing environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "Load error")
	}
	return cfg, nil
}

// overlayFile lays a user file over cfg. Key aliases merge per table and field instead
// of replacing the whole game.
func overlayFile(cfg Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "overlayFile error reading %s", path)
	}

	defaults := cfg.Keys
	cfg.Keys = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "overlayFile error parsing %s", path)
	}
	merged := make(map[string]dfield.KeyMap, len(defaults))
	for game, keys := range defaults {
		merged[game] = keys
	}
	for game, keys := range cfg.Keys {
		merged[game] = merged[game].Merge(keys)
	}
	cfg.Keys = merged
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "Validate error")
	}
	for _, tag := range c.Languages {
		if _, err := language.Parse(tag); err != nil {
			return errors.WithStack(InvalidLanguageError{Value: tag})
		}
	}
	return nil
}

// RepoURL returns the upstream repository of the game.
func (c Config) RepoURL(game dgame.Game) string {
	if game == dgame.GameHSR {
		return c.Repos.HSR
	}
	return c.Repos.GI
}

// KeysFor returns the field aliases of the game, never nil.
func (c Config) KeysFor(game dgame.Game) dfield.KeyMap {
	keys, ok := c.Keys[string(game)]
	if !ok || keys == nil {
		return dfield.KeyMap{}
	}
	return keys
}

// LanguagesFor resolves the configured tags for the game. No tags means every language
// the game ships.
func (c Config) LanguagesFor(game dgame.Game) ([]dgame.Language, error) {
	if len(c.Languages) == 0 {
		return dgame.Languages(game), nil
	}
	langs := make([]dgame.Language, 0, len(c.Languages))
	for _, tag := range c.Languages {
		lang, err := dgame.ParseLanguage(game, tag)
		if err != nil {
			return nil, errors.Wrap(err, "LanguagesFor error")
		}
		langs = append(langs, lang)
	}
	return langs, nil
}
