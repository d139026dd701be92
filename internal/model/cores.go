package model

// systemCores maps a ROM folder name to the emulator core the
// front-end launches for it. The mapping is total over the systems the
// site hosts; anything else yields an empty core and the entry ships
// without a launcher.
var systemCores = map[string]string{
	"arcade":    "arcade",
	"fbneo":     "arcade",
	"mame":      "mame2003_plus",
	"mame2003":  "mame2003_plus",
	"ATARI2600": "atari2600",
	"GAMEBOY":   "gb",
	"GBA":       "gba",
	"GENESIS":   "segaMD",
	"MEGADRIVE": "segaMD",
	"GG":        "segaGG",
	"JAGUAR":    "jaguar",
	"NES":       "nes",
	"N64":       "n64",
	"PCENGINE":  "pce",
	"PSX":       "psx",
	"S32X":      "sega32x",
	"SMS":       "segaMS",
	"SNES":      "snes",
	"VB":        "vb",
	"WS":        "ws",
}

// SystemCore returns the core id for a ROM folder name, or "" for an
// unmapped system.
func SystemCore(system string) string {
	return systemCores[system]
}
