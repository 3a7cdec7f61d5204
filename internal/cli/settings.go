package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Settings are the host options that may also come from a TOML file:
//
//	log_level    = "debug"
//	log_format   = "text"
//	modules_path = "./manifests"
type Settings struct {
	LogFormat   string `toml:"log_format"`
	LogLevel    string `toml:"log_level"`
	ModulesPath string `toml:"modules_path"`
}

// LoadSettings decodes a TOML settings file. Unknown keys are rejected.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Settings{}, fmt.Errorf("unknown keys in settings %s: %v", path, undecoded)
	}
	return s, nil
}

// merge fills s from file for every option not explicitly set on the
// command line. Empty file values are ignored.
func (s Settings) merge(file Settings, setFlags map[string]bool) Settings {
	if !setFlags["log-format"] && file.LogFormat != "" {
		s.LogFormat = file.LogFormat
	}
	if !setFlags["log-level"] && file.LogLevel != "" {
		s.LogLevel = file.LogLevel
	}
	if !setFlags["modules-path"] && file.ModulesPath != "" {
		s.ModulesPath = file.ModulesPath
	}
	return s
}
