package model

import "gopkg.in/yaml.v3"

// AddedPlaceholder is the literal value the metadata template ships in
// the "added" field. It means "date unknown" and is never a real date.
const AddedPlaceholder = "YYYY-MM-DD"

// GameTypeExternal marks a metadata document describing an
// externally-hosted game rather than a ROM-backed one.
const GameTypeExternal = "external"

// ExternalIDPrefix is the reserved game-id prefix identifying per-game
// directories for externally-hosted games.
const ExternalIDPrefix = "external-"

// FlexString decodes any YAML scalar (string, int, bool, date) as its
// literal text. Metadata authors write `year: 1984` and `new: true`
// unquoted, so plain string fields would fail to decode.
type FlexString string

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *FlexString) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*f = FlexString(value.Value)
	}
	return nil
}

// String returns the scalar text.
func (f FlexString) String() string { return string(f) }

// MetadataRecord is the per-game metadata.yaml document.
//
// Every field is optional. A record decoded from a partial document has
// zero values for the missing fields, so downstream code never sees an
// undefined field. A missing or malformed document is represented by
// the zero MetadataRecord.
type MetadataRecord struct {
	Title       string     `yaml:"title"`
	Developer   FlexString `yaml:"developer"`
	Year        FlexString `yaml:"year"`
	Genre       string     `yaml:"genre"`
	Recommended FlexString `yaml:"recommended"`

	// Added is the date the game was added, "YYYY-MM-DD" or the
	// AddedPlaceholder sentinel.
	Added FlexString `yaml:"added"`

	// Hide is "yes", "no" or empty.
	Hide FlexString `yaml:"hide"`

	// EnableScore is nil when unset; the effective default depends on
	// the entry class (true for ROM-backed, false for external).
	EnableScore *bool `yaml:"enable_score"`

	ToStart string `yaml:"to_start"`
	Problem string `yaml:"problem"`

	// Controls is passed through to the catalog verbatim.
	Controls any `yaml:"controls"`

	// New is an explicit override for the recency flag ("true" forces
	// the entry to be marked new).
	New FlexString `yaml:"new"`

	AnnouncementMessage string `yaml:"announcement_message"`

	// External-only fields.
	GameType         string `yaml:"game_type"`
	ExternalURL      string `yaml:"external_url"`
	LaunchButtonText string `yaml:"launch_button_text"`
	LaunchButtonURL  string `yaml:"launch_button_url"`
}

// Hidden reports whether the record explicitly hides the game.
func (m *MetadataRecord) Hidden() bool {
	return m.Hide.String() == "yes"
}
