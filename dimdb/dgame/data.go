package dgame

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type (
	Game     string
	Language string

	// AssemblyError reports a cross-table reference that must resolve but does not.
	AssemblyError struct {
		Game     Game
		EntityID string
		Reason   string
	}
	UnknownGameError struct {
		Value string
	}
	UnknownLanguageError struct {
		Game  Game
		Value string
	}
)

const (
	GameGI  Game = "gi"
	GameHSR Game = "hsr"
)

func (r AssemblyError) Error() string {
	return fmt.Sprintf("%s: assembling %s failed: %s", r.Game.BrandName(), r.EntityID, r.Reason)
}

func (r UnknownGameError) Error() string {
	return fmt.Sprintf("unknown game %q, expected one of gi, hsr", r.Value)
}

func (r UnknownLanguageError) Error() string {
	return fmt.Sprintf("language %q is not available for %s", r.Value, r.Game.BrandName())
}

func ParseGame(value string) (Game, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "gi", "genshin", "genshinimpact":
		return GameGI, nil
	case "hsr", "starrail", "honkaistarrail":
		return GameHSR, nil
	}
	return "", errors.WithStack(UnknownGameError{Value: value})
}

func (g Game) BrandName() string {
	switch g {
	case GameGI:
		return "Genshin Impact"
	case GameHSR:
		return "Honkai: Star Rail"
	}
	return string(g)
}
