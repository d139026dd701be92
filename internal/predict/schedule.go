package predict

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Prediction is one scheduled week from the rotation.
type Prediction struct {
	Seed   string
	Title  string
	GameID string
}

// Status is the overlay decision for one game.
type Status struct {
	// Predicted reports whether the game appears in the schedule at
	// all.
	Predicted bool

	// Show forces hide="no" on the entry when true. Set for games
	// scheduled in a past or current week.
	Show bool

	// OverrideAdded is the week-start date ("2006-01-02") that
	// replaces the metadata's added date, or empty when the schedule
	// supplies none. Only past weeks carry an override.
	OverrideAdded string
}

// Schedule is the loaded weekly rotation, indexed for per-game lookup.
type Schedule struct {
	byGameID map[string]Prediction
	bySeed   map[string]Prediction
}

// LoadSchedule reads the prediction schedule document. Any failure
// (missing file, malformed YAML) produces an empty schedule: overlay
// lookups then answer "not predicted", matching the lookup-level error
// policy of the build.
func LoadSchedule(path string) *Schedule {
	s := &Schedule{
		byGameID: make(map[string]Prediction),
		bySeed:   make(map[string]Prediction),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logrus.WithField("path", path).WithError(err).Debug("no prediction schedule")
		return s
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		logrus.WithField("path", path).WithError(err).Warn("invalid prediction schedule, ignoring")
		return s
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return s
	}

	// Seeds may be int or string keys, and values are either a bare
	// title (legacy) or a {title, game_id} mapping. Legacy entries
	// have no game id and cannot participate in overlay lookup.
	doc := root.Content[0]
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]

		p := Prediction{Seed: key.Value}
		switch value.Kind {
		case yaml.ScalarNode:
			p.Title = value.Value
		case yaml.MappingNode:
			var fields struct {
				Title  string `yaml:"title"`
				GameID string `yaml:"game_id"`
			}
			if err := value.Decode(&fields); err != nil {
				logrus.WithField("seed", p.Seed).WithError(err).Warn("invalid prediction entry, skipping")
				continue
			}
			p.Title = fields.Title
			p.GameID = fields.GameID
		default:
			continue
		}

		s.bySeed[p.Seed] = p
		if p.GameID != "" {
			s.byGameID[p.GameID] = p
		}
	}

	return s
}

// Len returns the number of scheduled weeks.
func (s *Schedule) Len() int { return len(s.bySeed) }

// Status answers the overlay question for a game id at a point in
// time. Lookup is by game id only; legacy title-only entries never
// match.
func (s *Schedule) Status(gameID string, now time.Time) Status {
	p, ok := s.byGameID[gameID]
	if !ok {
		return Status{}
	}

	value, err := seedValue(p.Seed)
	if err != nil {
		logrus.WithFields(logrus.Fields{"game": gameID, "seed": p.Seed}).
			Warn("prediction has malformed seed, treating as not predicted")
		return Status{}
	}

	current, err := seedValue(CurrentSeed(now))
	if err != nil {
		return Status{}
	}

	status := Status{Predicted: true}
	switch {
	case value == current:
		status.Show = true
	case value < current:
		status.Show = true
		if start, err := SeedWeekStart(p.Seed); err == nil {
			status.OverrideAdded = start
		}
	}
	return status
}

// BySeed returns the prediction for a week seed.
func (s *Schedule) BySeed(seed string) (Prediction, bool) {
	p, ok := s.bySeed[seed]
	return p, ok
}

// Current returns the prediction for the current week, if any.
func (s *Schedule) Current(now time.Time) (Prediction, bool) {
	return s.BySeed(CurrentSeed(now))
}
