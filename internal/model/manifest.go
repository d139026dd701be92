package model

import (
	"path"
	"strings"
)

// deniedExtensions are file extensions that never identify a ROM. Helper
// scripts and documentation live next to the ROM files in some systems'
// folders, so the manifest filters them out.
var deniedExtensions = map[string]bool{
	".md":   true,
	".txt":  true,
	".sh":   true,
	".yml":  true,
	".yaml": true,
	".py":   true,
}

// reservedBasenames are non-ROM files matched by basename regardless of
// extension.
var reservedBasenames = map[string]bool{
	"README":       true,
	"upload-files": true,
}

// ManifestEntry is one ROM file from the manifest, identified by its
// path relative to the ROMs root ("<system>/<filename>").
//
// System, Filename and GameID are derived from the path:
//
//	entry, _ := ParseManifestEntry("SNES/Zelda.sfc")
//	// entry.System   == "SNES"
//	// entry.Filename == "Zelda.sfc"
//	// entry.GameID   == "Zelda"
type ManifestEntry struct {
	// RelPath is the path relative to the ROMs root, always with
	// forward slashes.
	RelPath string

	// System is the first path segment (the ROM folder name).
	System string

	// Filename is the last path segment.
	Filename string

	// GameID is the filename with its final extension stripped. It keys
	// metadata lookup, prediction lookup and the catalog entry id.
	GameID string
}

// ParseManifestEntry parses a manifest line into a ManifestEntry.
//
// It returns ok=false for entries that must never produce a catalog
// entry: blank lines, paths with a "bios" segment, denylisted
// extensions and reserved basenames.
func ParseManifestEntry(rel string) (ManifestEntry, bool) {
	rel = strings.TrimSpace(strings.ReplaceAll(rel, "\\", "/"))
	rel = strings.TrimPrefix(rel, "./")
	if rel == "" {
		return ManifestEntry{}, false
	}

	segments := strings.Split(rel, "/")
	for _, seg := range segments {
		if strings.EqualFold(seg, "bios") {
			return ManifestEntry{}, false
		}
	}

	filename := segments[len(segments)-1]
	if !AllowedManifestFile(filename) {
		return ManifestEntry{}, false
	}

	system := ""
	if len(segments) > 1 {
		system = segments[0]
	}

	return ManifestEntry{
		RelPath:  rel,
		System:   system,
		Filename: filename,
		GameID:   strings.TrimSuffix(filename, path.Ext(filename)),
	}, true
}

// AllowedManifestFile reports whether a filename may appear in the
// manifest: not a reserved basename and not a denylisted extension.
func AllowedManifestFile(filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	base := strings.TrimSuffix(filename, path.Ext(filename))
	if reservedBasenames[base] || reservedBasenames[filename] {
		return false
	}
	return !deniedExtensions[ext]
}
