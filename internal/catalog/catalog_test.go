package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/arcade-catalog/internal/config"
	"github.com/handiism/arcade-catalog/internal/model"
)

// Wednesday, 2025-02-05 falls in ISO week 6 (seed 202506).
var testNow = time.Date(2025, 2, 5, 12, 0, 0, 0, time.UTC)

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	s := config.DefaultSettings()
	root := t.TempDir()
	s.PublicDir = filepath.Join(root, "public")
	s.RomsDir = filepath.Join(root, "roms")
	require.NoError(t, os.MkdirAll(s.GamesDir(), 0755))
	return s
}

func writeGameFile(t *testing.T, s *config.Settings, gameID, name, content string) {
	t.Helper()
	dir := s.GameDir(gameID)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func writeSchedule(t *testing.T, s *config.Settings, content string) {
	t.Helper()
	path := s.PredictionsPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func mustEntry(t *testing.T, rel string) model.ManifestEntry {
	t.Helper()
	entry, ok := model.ParseManifestEntry(rel)
	require.True(t, ok)
	return entry
}

func TestIsNew(t *testing.T) {
	day := func(offset int) string {
		return testNow.AddDate(0, 0, offset).Format("2006-01-02")
	}

	tests := []struct {
		name     string
		added    string
		explicit string
		want     bool
	}{
		{"explicit override", "", "true", true},
		{"explicit override beats old date", day(-100), "true", true},
		{"three days ago", day(-3), "", true},
		{"six days ago", day(-6), "", true},
		{"seven days ago", day(-7), "", false},
		{"eight days ago", day(-8), "", false},
		{"today", day(0), "", true},
		{"no date", "", "", false},
		{"placeholder sentinel", model.AddedPlaceholder, "", false},
		{"unparsable date", "last tuesday", "", false},
		{"explicit false ignored", day(-3), "false", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNew(tt.added, tt.explicit, testNow))
		})
	}
}

// Scenario: manifest entry with no metadata directory at all.
func TestBuildROM_NoMetadata(t *testing.T) {
	s := testSettings(t)
	asm := NewAssembler(s, testNow)

	e := asm.builder.BuildROM(mustEntry(t, "NES/Mario.nes"))

	assert.Equal(t, "Mario", e.ID)
	assert.Equal(t, "nes", e.Core)
	assert.Equal(t, "yes", e.Hide)
	assert.Empty(t, e.Title) // render-time fallback, not build-time
	assert.Equal(t, s.PlaceholderCover, e.CoverArt)
	assert.Equal(t, "/play?game=Mario", e.PageURL)
	assert.Equal(t, "https://roms.arcade-cdn.net/NES/Mario.nes", e.RomPath)
	assert.True(t, e.EnableScore)
	assert.Empty(t, e.NewFlag)
	assert.Empty(t, e.SaveState)
}

// Scenario: added just over a week ago is no longer new.
func TestBuildROM_WithMetadata(t *testing.T) {
	s := testSettings(t)
	added := testNow.AddDate(0, 0, -8).Format("2006-01-02")
	writeGameFile(t, s, "Zelda", "metadata.yaml",
		"title: Zelda\nadded: "+added+"\nhide: no\n")

	asm := NewAssembler(s, testNow)
	e := asm.builder.BuildROM(mustEntry(t, "SNES/Zelda.sfc"))

	assert.Equal(t, "Zelda", e.Title)
	assert.Equal(t, "no", e.Hide)
	assert.Equal(t, "snes", e.Core)
	assert.Empty(t, e.NewFlag)
}

// Scenario: added three days ago is new.
func TestBuildROM_RecentlyAdded(t *testing.T) {
	s := testSettings(t)
	added := testNow.AddDate(0, 0, -3).Format("2006-01-02")
	writeGameFile(t, s, "Metroid", "metadata.yaml", "added: "+added+"\n")

	asm := NewAssembler(s, testNow)
	e := asm.builder.BuildROM(mustEntry(t, "GBA/Metroid.gba"))

	assert.Equal(t, "true", e.NewFlag)
}

func TestBuildROM_LocalMode(t *testing.T) {
	s := testSettings(t)
	s.Local = true

	asm := NewAssembler(s, testNow)
	e := asm.builder.BuildROM(mustEntry(t, "NES/Mario.nes"))

	assert.Equal(t, "/roms/NES/Mario.nes", e.RomPath)
}

func TestBuildROM_UnmappedSystem(t *testing.T) {
	s := testSettings(t)

	asm := NewAssembler(s, testNow)
	e := asm.builder.BuildROM(mustEntry(t, "DREAMCAST/crazytaxi.cdi"))

	// Unmapped systems still ship, just without a launcher core.
	assert.Empty(t, e.Core)
	assert.Equal(t, "crazytaxi", e.ID)
}

func TestBuildROM_CoverAndSaveState(t *testing.T) {
	s := testSettings(t)
	writeGameFile(t, s, "Mario", "cover.png", "not-a-real-png")
	writeGameFile(t, s, "Mario", "save.state", "state")

	asm := NewAssembler(s, testNow)
	e := asm.builder.BuildROM(mustEntry(t, "NES/Mario.nes"))

	assert.Equal(t, "/games/Mario/cover.png", e.CoverArt)
	assert.Equal(t, "/games/Mario/save.state", e.SaveState)
}

func TestBuildROM_EnableScoreOverride(t *testing.T) {
	s := testSettings(t)
	writeGameFile(t, s, "Pong", "metadata.yaml", "enable_score: false\n")

	asm := NewAssembler(s, testNow)
	e := asm.builder.BuildROM(mustEntry(t, "ATARI2600/Pong.a26"))

	assert.False(t, e.EnableScore)
}

// Scenario: a past-week prediction unhides the game and overrides its
// added date, beating an explicit hide: yes.
func TestPredictionOverridePrecedence(t *testing.T) {
	s := testSettings(t)
	writeGameFile(t, s, "balloonfight", "metadata.yaml",
		"title: Balloon Fight\nhide: yes\nadded: 2024-06-01\n")
	writeSchedule(t, s, `
202505:
  title: Balloon Fight
  game_id: balloonfight
`)

	asm := NewAssembler(s, testNow)
	e := asm.builder.BuildROM(mustEntry(t, "NES/balloonfight.nes"))

	assert.Equal(t, "no", e.Hide)
	// Week 5 starts on the Monday 2025-02-03.
	assert.Equal(t, "2025-02-03", e.Added)
	// Overridden date is two days before testNow, so the entry is new.
	assert.Equal(t, "true", e.NewFlag)
}

// A predicted game with no metadata file at all is still unhidden.
func TestPredictionOverrideWithoutMetadata(t *testing.T) {
	s := testSettings(t)
	writeSchedule(t, s, `
202501:
  title: Mystery
  game_id: mystery
`)

	asm := NewAssembler(s, testNow)
	e := asm.builder.BuildROM(mustEntry(t, "NES/mystery.nes"))

	assert.Equal(t, "no", e.Hide)
	assert.Equal(t, "2025-01-06", e.Added)
}

func TestBuildExternal(t *testing.T) {
	s := testSettings(t)
	writeGameFile(t, s, "external-arcade1up", "metadata.yaml", `
game_type: external
hide: no
title: "Demo"
external_url: "https://x"
`)

	asm := NewAssembler(s, testNow)
	e, reason := asm.builder.BuildExternal("external-arcade1up")
	require.Empty(t, reason)

	assert.Equal(t, "external", e.Core)
	assert.Equal(t, "https://x", e.PageURL)
	assert.Equal(t, "https://x", e.ExternalURL)
	assert.Equal(t, "Demo", e.Title)
	assert.Equal(t, DefaultLaunchButtonText, e.LaunchButtonText)
	assert.False(t, e.EnableScore)
	assert.Empty(t, e.RomPath)
	assert.Empty(t, e.SaveState)
}

func TestBuildExternal_LaunchButtonURL(t *testing.T) {
	s := testSettings(t)
	writeGameFile(t, s, "external-demo", "metadata.yaml", `
game_type: external
title: Demo
external_url: https://play.example/demo
launch_button_url: https://info.example/demo
launch_button_text: Visit
`)

	asm := NewAssembler(s, testNow)
	e, reason := asm.builder.BuildExternal("external-demo")
	require.Empty(t, reason)

	assert.Equal(t, "https://info.example/demo", e.PageURL)
	assert.Equal(t, "Visit", e.LaunchButtonText)
}

func TestBuildExternal_Eligibility(t *testing.T) {
	tests := []struct {
		name     string
		metadata string
		reason   string
	}{
		{"hidden", "game_type: external\ntitle: T\nexternal_url: u\nhide: yes\n", "hidden"},
		{"missing title", "game_type: external\nexternal_url: u\n", "missing title"},
		{"missing url", "game_type: external\ntitle: T\n", "missing external_url"},
		{"wrong type", "game_type: rom\ntitle: T\nexternal_url: u\n", "game_type is not external"},
		{"no type", "title: T\nexternal_url: u\n", "game_type is not external"},
		{"malformed", "title: [unclosed\n  :::bad yaml", "missing or invalid metadata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSettings(t)
			writeGameFile(t, s, "external-bad", "metadata.yaml", tt.metadata)

			asm := NewAssembler(s, testNow)
			e, reason := asm.builder.BuildExternal("external-bad")
			assert.Nil(t, e)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestBuildExternal_NoDirectory(t *testing.T) {
	s := testSettings(t)
	asm := NewAssembler(s, testNow)

	e, reason := asm.builder.BuildExternal("external-ghost")
	assert.Nil(t, e)
	assert.Equal(t, "missing or invalid metadata", reason)
}

func TestAssemble_MergesRomAndExternal(t *testing.T) {
	s := testSettings(t)
	writeGameFile(t, s, "external-arcade1up", "metadata.yaml",
		"game_type: external\ntitle: Demo\nexternal_url: https://x\n")
	writeGameFile(t, s, "external-rejected", "metadata.yaml",
		"game_type: external\ntitle: Nope\nexternal_url: https://y\nhide: yes\n")

	entries := []model.ManifestEntry{
		mustEntry(t, "NES/Mario.nes"),
		mustEntry(t, "SNES/Zelda.sfc"),
	}

	asm := NewAssembler(s, testNow)
	result, err := asm.Assemble(context.Background(), entries)
	require.NoError(t, err)

	ids := make(map[string]bool)
	for _, g := range result.Catalog.Games {
		ids[g.ID] = true
	}
	assert.Equal(t, map[string]bool{
		"Mario":              true,
		"Zelda":              true,
		"external-arcade1up": true,
	}, ids)

	require.Len(t, result.Skips, 1)
	assert.Equal(t, "external-rejected", result.Skips[0].ID)
	assert.Equal(t, "hidden", result.Skips[0].Reason)
}

func TestAssemble_EmptyIsFatal(t *testing.T) {
	s := testSettings(t)
	asm := NewAssembler(s, testNow)

	_, err := asm.Assemble(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestAssemble_Cancelled(t *testing.T) {
	s := testSettings(t)
	asm := NewAssembler(s, testNow)
	asm.Sequential = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := asm.Assemble(ctx, []model.ManifestEntry{mustEntry(t, "NES/Mario.nes")})
	assert.ErrorIs(t, err, context.Canceled)
}

// Sequential and parallel strategies must produce the same document.
func TestAssemble_StrategyEquivalence(t *testing.T) {
	s := testSettings(t)
	s.Workers = 4
	added := testNow.AddDate(0, 0, -2).Format("2006-01-02")
	writeGameFile(t, s, "Zelda", "metadata.yaml", "title: Zelda\nadded: "+added+"\nhide: no\n")
	writeGameFile(t, s, "external-arcade1up", "metadata.yaml",
		"game_type: external\ntitle: Demo\nexternal_url: https://x\n")
	writeSchedule(t, s, "202501:\n  title: Mario\n  game_id: Mario\n")

	entries := []model.ManifestEntry{
		mustEntry(t, "NES/Mario.nes"),
		mustEntry(t, "SNES/Zelda.sfc"),
		mustEntry(t, "GBA/Metroid.gba"),
		mustEntry(t, "arcade/sf2.zip"),
		mustEntry(t, "GENESIS/Sonic.md"),
	}

	parallel := NewAssembler(s, testNow)
	parallelResult, err := parallel.Assemble(context.Background(), entries)
	require.NoError(t, err)

	sequential := NewAssembler(s, testNow)
	sequential.Sequential = true
	sequentialResult, err := sequential.Assemble(context.Background(), entries)
	require.NoError(t, err)

	parallelJSON, err := json.Marshal(parallelResult.Catalog)
	require.NoError(t, err)
	sequentialJSON, err := json.Marshal(sequentialResult.Catalog)
	require.NoError(t, err)
	assert.JSONEq(t, string(sequentialJSON), string(parallelJSON))
}

func TestAssemble_CurrentGame(t *testing.T) {
	s := testSettings(t)
	writeSchedule(t, s, "202506:\n  title: Metal Slug 3\n  game_id: mslug3\n")

	asm := NewAssembler(s, testNow)
	result, err := asm.Assemble(context.Background(), []model.ManifestEntry{
		mustEntry(t, "arcade/mslug3.zip"),
	})
	require.NoError(t, err)
	assert.Equal(t, "mslug3", result.CurrentGameID)
}

func TestAssemble_CurrentGameLegacyTitle(t *testing.T) {
	s := testSettings(t)
	writeGameFile(t, s, "mslug3", "metadata.yaml", "title: Metal Slug 3\n")
	writeSchedule(t, s, "202506: metal slug 3\n")

	asm := NewAssembler(s, testNow)
	result, err := asm.Assemble(context.Background(), []model.ManifestEntry{
		mustEntry(t, "arcade/mslug3.zip"),
	})
	require.NoError(t, err)
	assert.Equal(t, "mslug3", result.CurrentGameID)
}

func TestPublish(t *testing.T) {
	s := testSettings(t)

	asm := NewAssembler(s, testNow)
	result, err := asm.Assemble(context.Background(), []model.ManifestEntry{
		mustEntry(t, "NES/Mario.nes"),
	})
	require.NoError(t, err)
	require.NoError(t, asm.Publish(result))

	data, err := os.ReadFile(s.GamelistPath())
	require.NoError(t, err)

	var catalog model.Catalog
	require.NoError(t, json.Unmarshal(data, &catalog))
	require.Len(t, catalog.Games, 1)
	assert.Equal(t, "Mario", catalog.Games[0].ID)

	current, err := os.ReadFile(s.CurrentGamePath())
	require.NoError(t, err)
	assert.Equal(t, model.NoGame+"\n", string(current))
}

func TestFindByTitle(t *testing.T) {
	games := []model.CatalogEntry{
		{ID: "mslug3", Title: "Metal Slug 3"},
		{ID: "hero", Title: "H.E.R.O."},
		{ID: "untitled"},
	}

	tests := []struct {
		title string
		want  string
	}{
		{"Metal Slug 3", "mslug3"},
		{"metal slug 3", "mslug3"},
		{"Metal Slug", "mslug3"},
		{"H.E.R.O. (Helicopter Emergency Rescue Operation)", "hero"},
		{"Unknown Game", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, FindByTitle(games, tt.title))
		})
	}
}
