// Package meta resolves per-game metadata documents.
//
// Each game may carry a metadata.yaml in its directory under the games
// root. A missing file and a malformed file are deliberately
// indistinguishable to callers: both resolve to an absent record, and
// every field falls back to its default. Malformed documents are
// logged so authors can find them.
package meta

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/handiism/arcade-catalog/internal/model"
)

// DocumentName is the conventional metadata filename inside a game
// directory.
const DocumentName = "metadata.yaml"

// Resolver loads metadata records from the games root directory.
type Resolver struct {
	gamesDir string
}

// NewResolver creates a Resolver reading from the given games root
// (the directory containing one subdirectory per game id).
func NewResolver(gamesDir string) *Resolver {
	return &Resolver{gamesDir: gamesDir}
}

// Resolve loads the metadata record for a game id.
//
// The second return value is false when the document is absent or
// malformed; the returned record is then the zero record, so callers
// can use it without branching.
func (r *Resolver) Resolve(gameID string) (*model.MetadataRecord, bool) {
	path := filepath.Join(r.gamesDir, gameID, DocumentName)

	data, err := os.ReadFile(path)
	if err != nil {
		return &model.MetadataRecord{}, false
	}

	var record model.MetadataRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		logrus.WithFields(logrus.Fields{
			"game": gameID,
			"path": path,
		}).WithError(err).Warn("invalid metadata document, using defaults")
		return &model.MetadataRecord{}, false
	}

	return &record, true
}

// Path returns the metadata document path for a game id.
func (r *Resolver) Path(gameID string) string {
	return filepath.Join(r.gamesDir, gameID, DocumentName)
}
