// Package manifest supplies the list of ROM entries a build processes.
//
// Exactly one source is used per build, selected by configuration:
// a remote manifest URL, a local manifest file, or a recursive scan of
// the ROMs directory. All sources drop bios entries; scan and local
// file additionally drop reserved basenames and denylisted extensions
// (a remote manifest is trusted as pre-filtered).
package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/handiism/arcade-catalog/internal/config"
	httpclient "github.com/handiism/arcade-catalog/internal/http"
	"github.com/handiism/arcade-catalog/internal/model"
)

// maxScanDepth is how many directory levels below the ROMs root the
// scan descends. ROMs live at "<system>/<file>", so two is enough.
const maxScanDepth = 2

// Source produces the manifest entries for a build.
type Source struct {
	settings *config.Settings
	client   *httpclient.Client
}

// NewSource creates a Source for the given settings.
func NewSource(settings *config.Settings) *Source {
	return &Source{
		settings: settings,
		client:   httpclient.NewClient(),
	}
}

// List returns the filtered manifest entries from the configured
// source. A remote fetch failure is fatal; everything else filters
// quietly.
func (s *Source) List(ctx context.Context) ([]model.ManifestEntry, error) {
	switch {
	case s.settings.ManifestIsRemote():
		return s.fromURL(ctx, s.settings.Manifest)
	case s.settings.Manifest != "":
		return s.fromFile(s.settings.Manifest)
	default:
		return s.scan(s.settings.RomsDir)
	}
}

func (s *Source) fromURL(ctx context.Context, url string) ([]model.ManifestEntry, error) {
	body, err := s.client.GetString(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("manifest: fetching %s: %w", url, err)
	}
	logrus.WithField("url", url).Debug("fetched remote manifest")
	return parseLines(body), nil
}

func (s *Source) fromFile(path string) ([]model.ManifestEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: reading %s: %w", path, err)
	}
	return parseLines(string(data)), nil
}

// scan walks the ROMs directory up to maxScanDepth levels, following
// symbolic links, and returns every allowed file as an entry.
func (s *Source) scan(root string) ([]model.ManifestEntry, error) {
	var entries []model.ManifestEntry

	var walk func(dir, rel string, depth int) error
	walk = func(dir, rel string, depth int) error {
		dirents, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("manifest: scanning %s: %w", dir, err)
		}

		for _, de := range dirents {
			name := de.Name()
			childRel := name
			if rel != "" {
				childRel = rel + "/" + name
			}

			// os.Stat resolves symlinks, so linked system folders
			// are descended into like real directories.
			info, err := os.Stat(filepath.Join(dir, name))
			if err != nil {
				logrus.WithField("path", childRel).WithError(err).Debug("skipping unreadable entry")
				continue
			}

			if info.IsDir() {
				if depth < maxScanDepth {
					if err := walk(filepath.Join(dir, name), childRel, depth+1); err != nil {
						return err
					}
				}
				continue
			}

			if entry, ok := model.ParseManifestEntry(childRel); ok {
				entries = append(entries, entry)
			}
		}
		return nil
	}

	if err := walk(root, "", 1); err != nil {
		return nil, err
	}
	return entries, nil
}

// parseLines splits a newline-delimited manifest into entries,
// dropping blank lines and anything the shared filters reject.
func parseLines(body string) []model.ManifestEntry {
	var entries []model.ManifestEntry
	for _, line := range strings.Split(body, "\n") {
		if entry, ok := model.ParseManifestEntry(line); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}
