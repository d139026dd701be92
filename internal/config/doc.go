// Package config provides configuration management for the catalog
// builder.
//
// Settings are read from ARCADE_* environment variables, so the build
// driver can be configured from CI without flags:
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Local vs production mode
//
// ARCADE_LOCAL=true switches ROM paths from the remote storage base
// URL to local "/roms/..." paths served by the dev server.
//
// # Manifest source
//
// ARCADE_MANIFEST selects where the ROM manifest comes from:
//   - an http(s):// URL: fetched remotely (fatal on failure)
//   - any other non-empty value: read as a local file
//   - empty: the ROMs directory is scanned
package config
