// Package model defines the core data structures used throughout
// the arcade-catalog builder.
//
// # ManifestEntry
//
// ManifestEntry represents one ROM file from the manifest, with its
// system and game id derived from the relative path:
//
//	entry, ok := model.ParseManifestEntry("NES/Mario.nes")
//	fmt.Println(entry.System) // "NES"
//	fmt.Println(entry.GameID) // "Mario"
//
// # MetadataRecord
//
// MetadataRecord is the per-game metadata.yaml document. All fields are
// optional; a missing or malformed document behaves exactly like an
// empty record.
//
// # CatalogEntry and Catalog
//
// CatalogEntry is the normalized per-game record serialized into the
// gamelist.json catalog:
//
//	catalog := &model.Catalog{Games: entries}
//	data, err := json.Marshal(catalog)
//
// # System cores
//
// SystemCore maps a ROM folder name ("NES", "arcade", ...) to the
// emulator core identifier the front-end launches.
package model
