package model

// CatalogEntry is the normalized per-game record the front-end
// consumes. ROM-backed and external games share the same shape; the
// external-only fields stay empty (and are omitted from the JSON) for
// ROM-backed entries, and RomPath/SaveState stay empty for external
// ones.
//
// Title is intentionally left empty when the metadata document has
// none: the front-end falls back to a capitalized id at render time.
type CatalogEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Problem     string `json:"problem,omitempty"`
	Developer   string `json:"developer,omitempty"`
	Year        string `json:"year,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Recommended string `json:"recommended,omitempty"`

	// Added is the effective added date ("YYYY-MM-DD"), after any
	// prediction override.
	Added string `json:"added,omitempty"`

	// Hide is "yes", "no" or empty.
	Hide string `json:"hide"`

	// CoverArt is an absolute site path, either the per-game cover or
	// the shared placeholder.
	CoverArt string `json:"coverArt"`

	PageURL string `json:"pageUrl"`

	// Core is the emulator core id, or "external".
	Core string `json:"core"`

	RomPath   string `json:"romPath,omitempty"`
	SaveState string `json:"saveState,omitempty"`

	EnableScore bool `json:"enableScore"`

	Controls any    `json:"controls,omitempty"`
	ToStart  string `json:"toStart,omitempty"`

	// NewFlag is "true" or the empty string.
	NewFlag string `json:"new"`

	AnnouncementMessage string `json:"announcementMessage,omitempty"`

	// External-only fields.
	ExternalURL      string `json:"externalUrl,omitempty"`
	LaunchButtonText string `json:"launchButtonText,omitempty"`
	LaunchButtonURL  string `json:"launchButtonUrl,omitempty"`
	GameType         string `json:"gameType,omitempty"`
}

// Catalog is the full gamelist.json document. The front-end re-sorts
// the games for display, so order only needs to be reproducible, not
// meaningful.
type Catalog struct {
	Games []CatalogEntry `json:"games"`
}

// NoGame is the current-game artifact sentinel written when no game is
// scheduled for the current week.
const NoGame = "no-game"
