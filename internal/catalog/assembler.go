package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/arcade-catalog/internal/config"
	ioutils "github.com/handiism/arcade-catalog/internal/io"
	"github.com/handiism/arcade-catalog/internal/model"
	"github.com/handiism/arcade-catalog/internal/predict"
)

// ErrEmptyCatalog is returned when assembly produced no entries at
// all. An empty catalog would break the whole front-end, so this is a
// fatal condition.
var ErrEmptyCatalog = errors.New("catalog: no entries assembled")

// Skip records one excluded entry and why.
type Skip struct {
	ID     string
	Reason string
}

// Result is a finished, validated assembly.
type Result struct {
	Catalog *model.Catalog
	Skips   []Skip

	// CurrentGameID is this week's scheduled game id, or empty when
	// the schedule has none.
	CurrentGameID string

	// data is the validated JSON document, kept so Publish writes
	// exactly what was validated.
	data []byte
}

// result is one per-entry outcome inside the parallel phase. Each
// worker writes only its own slot, so no locking is needed.
type result struct {
	entry *model.CatalogEntry
	skip  *Skip
}

// Assembler merges ROM-backed and external entries into the final
// catalog document.
type Assembler struct {
	settings *config.Settings
	schedule *predict.Schedule
	builder  *Builder
	now      time.Time

	// Sequential forces the single-pass strategy regardless of the
	// configured worker count. Both strategies produce the same
	// document.
	Sequential bool
}

// NewAssembler creates an Assembler, loading the prediction schedule
// once for the whole build.
func NewAssembler(settings *config.Settings, now time.Time) *Assembler {
	schedule := predict.LoadSchedule(settings.PredictionsPath())
	return &Assembler{
		settings: settings,
		schedule: schedule,
		builder:  NewBuilder(settings, schedule, now),
		now:      now,
	}
}

// Assemble builds all entries and validates the final document.
//
// Per-entry problems become Skips; only an empty final catalog or a
// document that fails to serialize returns an error.
func (a *Assembler) Assemble(ctx context.Context, entries []model.ManifestEntry) (*Result, error) {
	externals := a.externalIDs()
	results := make([]result, len(entries)+len(externals))

	build := func(i int) {
		if i < len(entries) {
			results[i].entry = a.builder.BuildROM(entries[i])
			return
		}
		gameID := externals[i-len(entries)]
		entry, reason := a.builder.BuildExternal(gameID)
		if reason != "" {
			results[i].skip = &Skip{ID: gameID, Reason: reason}
			return
		}
		results[i].entry = entry
	}

	workers := a.settings.EffectiveWorkers()
	if a.Sequential {
		workers = 1
	}

	if workers <= 1 {
		for i := range results {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			build(i)
		}
	} else {
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := range results {
			i := i
			g.Go(func() error {
				build(i)
				return ctx.Err()
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	res := &Result{Catalog: &model.Catalog{}}
	for _, r := range results {
		switch {
		case r.skip != nil:
			logrus.WithFields(logrus.Fields{
				"game":   r.skip.ID,
				"reason": r.skip.Reason,
			}).Info("skipping entry")
			res.Skips = append(res.Skips, *r.skip)
		case r.entry != nil:
			if _, err := json.Marshal(r.entry); err != nil {
				skip := Skip{ID: r.entry.ID, Reason: fmt.Sprintf("serialization failed: %v", err)}
				logrus.WithFields(logrus.Fields{"game": skip.ID, "reason": skip.Reason}).Warn("skipping entry")
				res.Skips = append(res.Skips, skip)
				continue
			}
			res.Catalog.Games = append(res.Catalog.Games, *r.entry)
		}
	}

	if len(res.Catalog.Games) == 0 {
		return nil, ErrEmptyCatalog
	}

	data, err := json.MarshalIndent(res.Catalog, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("catalog: serializing final document: %w", err)
	}
	if !json.Valid(data) {
		return nil, errors.New("catalog: final document is not valid JSON")
	}
	res.data = data

	res.CurrentGameID = a.currentGameID(res.Catalog.Games)
	return res, nil
}

// Publish writes the two build artifacts: the catalog document and
// the current-game id file. Both writes are atomic so an interrupted
// publish keeps the previous artifacts intact.
func (a *Assembler) Publish(res *Result) error {
	if err := ioutils.WriteFileAtomic(a.settings.GamelistPath(), res.data); err != nil {
		return fmt.Errorf("catalog: writing %s: %w", a.settings.GamelistPath(), err)
	}

	current := res.CurrentGameID
	if current == "" {
		current = model.NoGame
	}
	if err := ioutils.WriteFileAtomic(a.settings.CurrentGamePath(), []byte(current+"\n")); err != nil {
		return fmt.Errorf("catalog: writing %s: %w", a.settings.CurrentGamePath(), err)
	}
	return nil
}

// externalIDs lists the external game directories under the games
// root, in directory order (sorted by name). A missing games root
// just means no externals.
func (a *Assembler) externalIDs() []string {
	dirents, err := os.ReadDir(a.settings.GamesDir())
	if err != nil {
		logrus.WithField("dir", a.settings.GamesDir()).WithError(err).Debug("no games directory")
		return nil
	}

	var ids []string
	for _, de := range dirents {
		if de.IsDir() && strings.HasPrefix(de.Name(), model.ExternalIDPrefix) {
			ids = append(ids, de.Name())
		}
	}
	return ids
}

// currentGameID resolves this week's scheduled game to an id. Modern
// schedule entries carry the id; legacy title-only entries are matched
// against the assembled titles.
func (a *Assembler) currentGameID(games []model.CatalogEntry) string {
	p, ok := a.schedule.Current(a.now)
	if !ok {
		return ""
	}
	if p.GameID != "" {
		return p.GameID
	}
	return FindByTitle(games, p.Title)
}

// FindByTitle resolves a game title to an entry id: exact match first,
// then case-insensitive, then substring in either direction. Returns
// empty when nothing matches.
func FindByTitle(games []model.CatalogEntry, title string) string {
	if title == "" {
		return ""
	}

	for _, g := range games {
		if g.Title == title {
			return g.ID
		}
	}

	lower := strings.ToLower(title)
	for _, g := range games {
		if strings.ToLower(g.Title) == lower {
			return g.ID
		}
	}

	for _, g := range games {
		gt := strings.ToLower(g.Title)
		if gt == "" {
			continue
		}
		if strings.Contains(gt, lower) || strings.Contains(lower, gt) {
			return g.ID
		}
	}
	return ""
}
