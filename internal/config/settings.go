package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Settings holds all configuration options for a catalog build.
type Settings struct {
	// Local toggles local dev path mode: ROM paths become
	// "/roms/<system>/<file>" instead of the remote storage URL.
	Local bool `env:"ARCADE_LOCAL" envDefault:"false"`

	// Manifest is the ROM manifest source: an http(s):// URL, a local
	// file path, or empty to scan RomsDir.
	Manifest string `env:"ARCADE_MANIFEST"`

	// RomsDir is the filesystem tree scanned when no manifest is given.
	RomsDir string `env:"ARCADE_ROMS_DIR" envDefault:"roms"`

	// PublicDir is the site root containing games/, the prediction
	// schedule and the output artifacts.
	PublicDir string `env:"ARCADE_PUBLIC_DIR" envDefault:"public"`

	// RomBaseURL is the remote storage base joined with
	// "<system>/<filename>" in production mode.
	RomBaseURL string `env:"ARCADE_ROM_BASE_URL" envDefault:"https://roms.arcade-cdn.net"`

	// LauncherBase is the page the front-end launches games from.
	LauncherBase string `env:"ARCADE_LAUNCHER_BASE" envDefault:"/play"`

	// PlaceholderCover is the site path served when a game has no
	// cover image.
	PlaceholderCover string `env:"ARCADE_PLACEHOLDER_COVER" envDefault:"/assets/cover-placeholder.png"`

	// Workers bounds the parallel entry-building phase. 0 means
	// min(NumCPU, 4); 1 forces the sequential strategy.
	Workers int `env:"ARCADE_WORKERS" envDefault:"0"`

	// GenerateThumbs enables cover thumbnail generation during the
	// build.
	GenerateThumbs bool `env:"ARCADE_GENERATE_THUMBS" envDefault:"false"`

	// ThumbMaxSize is the maximum thumbnail edge in pixels.
	ThumbMaxSize int `env:"ARCADE_THUMB_MAX_SIZE" envDefault:"300"`
}

// Load parses ARCADE_* environment variables into a Settings struct.
func Load() (*Settings, error) {
	s := &Settings{}
	if err := env.Parse(s); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}
	return s, nil
}

// DefaultSettings returns settings with default values, ignoring the
// environment. Used by tests.
func DefaultSettings() *Settings {
	return &Settings{
		RomsDir:          "roms",
		PublicDir:        "public",
		RomBaseURL:       "https://roms.arcade-cdn.net",
		LauncherBase:     "/play",
		PlaceholderCover: "/assets/cover-placeholder.png",
		ThumbMaxSize:     300,
	}
}

// EffectiveWorkers resolves the worker count: an explicit positive
// value wins, otherwise the CPU count capped at 4.
func (s *Settings) EffectiveWorkers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	n := runtime.NumCPU()
	if n > 4 {
		n = 4
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ManifestIsRemote reports whether the manifest source is a URL.
func (s *Settings) ManifestIsRemote() bool {
	return strings.HasPrefix(s.Manifest, "http://") || strings.HasPrefix(s.Manifest, "https://")
}

// GamesDir is the directory holding per-game metadata directories.
func (s *Settings) GamesDir() string {
	return filepath.Join(s.PublicDir, "games")
}

// GameDir is the per-game directory for a game id.
func (s *Settings) GameDir(gameID string) string {
	return filepath.Join(s.GamesDir(), gameID)
}

// PredictionsPath is the weekly prediction schedule document.
func (s *Settings) PredictionsPath() string {
	return filepath.Join(s.PublicDir, "predict", "predictions.yaml")
}

// GamelistPath is the catalog output artifact.
func (s *Settings) GamelistPath() string {
	return filepath.Join(s.PublicDir, "gamelist.json")
}

// CurrentGamePath is the current-game-id output artifact.
func (s *Settings) CurrentGamePath() string {
	return filepath.Join(s.PublicDir, "current_game.txt")
}

// RomPath builds the ROM location for an entry: a local dev path or
// the remote storage URL, depending on mode.
func (s *Settings) RomPath(system, filename string) string {
	if s.Local {
		return "/roms/" + system + "/" + filename
	}
	return strings.TrimRight(s.RomBaseURL, "/") + "/" + system + "/" + filename
}

// PageURL builds the launcher page URL for a game id.
func (s *Settings) PageURL(gameID string) string {
	return s.LauncherBase + "?game=" + gameID
}
