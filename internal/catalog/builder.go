package catalog

import (
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/handiism/arcade-catalog/internal/config"
	ioutils "github.com/handiism/arcade-catalog/internal/io"
	"github.com/handiism/arcade-catalog/internal/meta"
	"github.com/handiism/arcade-catalog/internal/model"
	"github.com/handiism/arcade-catalog/internal/predict"
)

// CoverName is the conventional cover filename inside a game
// directory.
const CoverName = "cover.png"

// SaveStateName is the conventional save-state filename inside a game
// directory.
const SaveStateName = "save.state"

// DefaultLaunchButtonText labels the launch button of an external game
// when its metadata doesn't override it.
const DefaultLaunchButtonText = "Play Game"

// Builder constructs catalog entries. It is safe for concurrent use:
// all state is read-only after construction.
type Builder struct {
	settings *config.Settings
	meta     *meta.Resolver
	schedule *predict.Schedule
	thumbs   *ioutils.Thumbnailer
	now      time.Time
}

// NewBuilder creates a Builder. The schedule may be empty but not nil;
// now is injected so recency and overlay decisions are reproducible
// in tests.
func NewBuilder(settings *config.Settings, schedule *predict.Schedule, now time.Time) *Builder {
	b := &Builder{
		settings: settings,
		meta:     meta.NewResolver(settings.GamesDir()),
		schedule: schedule,
		now:      now,
	}
	if settings.GenerateThumbs {
		b.thumbs = &ioutils.Thumbnailer{MaxSize: settings.ThumbMaxSize}
	}
	return b
}

// BuildROM builds the catalog entry for a ROM-backed manifest entry.
// Every manifest entry yields an entry; missing metadata just means
// defaults (hidden, no title).
func (b *Builder) BuildROM(entry model.ManifestEntry) *model.CatalogEntry {
	record, _ := b.meta.Resolve(entry.GameID)

	hide := record.Hide.String()
	if hide == "" {
		hide = "yes"
	}

	e := b.shared(entry.GameID, record, hide)
	e.Core = model.SystemCore(entry.System)
	e.RomPath = b.settings.RomPath(entry.System, entry.Filename)
	e.PageURL = b.settings.PageURL(entry.GameID)
	e.SaveState = b.saveState(entry.GameID)

	if record.EnableScore != nil {
		e.EnableScore = *record.EnableScore
	} else {
		e.EnableScore = true
	}

	return e
}

// BuildExternal builds the catalog entry for an externally-hosted game
// directory. The second return value is a non-empty skip reason when
// the directory is not eligible; ineligible externals are excluded
// entirely rather than shipped with placeholder data.
func (b *Builder) BuildExternal(gameID string) (*model.CatalogEntry, string) {
	record, ok := b.meta.Resolve(gameID)
	if !ok {
		return nil, "missing or invalid metadata"
	}
	if record.GameType != model.GameTypeExternal {
		return nil, "game_type is not external"
	}
	if record.Hidden() {
		return nil, "hidden"
	}
	if record.Title == "" {
		return nil, "missing title"
	}
	if record.ExternalURL == "" {
		return nil, "missing external_url"
	}

	e := b.shared(gameID, record, record.Hide.String())
	e.Core = model.GameTypeExternal
	e.GameType = record.GameType
	e.ExternalURL = record.ExternalURL
	e.LaunchButtonURL = record.LaunchButtonURL

	e.LaunchButtonText = record.LaunchButtonText
	if e.LaunchButtonText == "" {
		e.LaunchButtonText = DefaultLaunchButtonText
	}

	e.PageURL = record.ExternalURL
	if record.LaunchButtonURL != "" && record.LaunchButtonURL != record.ExternalURL {
		e.PageURL = record.LaunchButtonURL
	}

	if record.EnableScore != nil {
		e.EnableScore = *record.EnableScore
	}

	return e, ""
}

// shared applies the steps common to both entry classes: metadata
// field transfer, prediction overlay, recency on the effective added
// date, and cover resolution.
func (b *Builder) shared(gameID string, record *model.MetadataRecord, hide string) *model.CatalogEntry {
	added := record.Added.String()

	status := b.schedule.Status(gameID, b.now)
	if status.Show {
		hide = "no"
		if status.OverrideAdded != "" {
			added = status.OverrideAdded
		}
	}

	newFlag := ""
	if IsNew(added, record.New.String(), b.now) {
		newFlag = "true"
	}

	return &model.CatalogEntry{
		ID:                  gameID,
		Title:               record.Title,
		Problem:             record.Problem,
		Developer:           record.Developer.String(),
		Year:                record.Year.String(),
		Genre:               record.Genre,
		Recommended:         record.Recommended.String(),
		Added:               added,
		Hide:                hide,
		CoverArt:            b.coverArt(gameID),
		Controls:            record.Controls,
		ToStart:             record.ToStart,
		NewFlag:             newFlag,
		AnnouncementMessage: record.AnnouncementMessage,
	}
}

// coverArt resolves the cover site path, falling back to the shared
// placeholder when the per-game cover is absent. Thumbnail generation
// piggybacks here when enabled; its failures degrade to a diagnostic.
func (b *Builder) coverArt(gameID string) string {
	coverFile := filepath.Join(b.settings.GameDir(gameID), CoverName)
	if !ioutils.FileExists(coverFile) {
		logrus.WithField("game", gameID).Debug("no cover image, using placeholder")
		return b.settings.PlaceholderCover
	}

	if b.thumbs != nil {
		if _, err := b.thumbs.Generate(coverFile); err != nil {
			logrus.WithField("game", gameID).WithError(err).Warn("thumbnail generation failed")
		}
	}

	return "/games/" + gameID + "/" + CoverName
}

// saveState resolves the save-state site path, or empty when the game
// ships none.
func (b *Builder) saveState(gameID string) string {
	if !ioutils.FileExists(filepath.Join(b.settings.GameDir(gameID), SaveStateName)) {
		return ""
	}
	return "/games/" + gameID + "/" + SaveStateName
}
