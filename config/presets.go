package config

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed presets/*.yaml
var presetFS embed.FS

// presetFiles maps preset environment names to their bundled config files
var presetFiles = map[string]string{
	"Empty-5x5":             "presets/empty-5x5.yaml",
	"Empty-Random-5x5":      "presets/empty-random-5x5.yaml",
	"FourRooms":             "presets/four-rooms.yaml",
	"Dynamic-Obstacles-6x6": "presets/dynamic-obstacles-6x6.yaml",
	"KeyDoor-8x8":           "presets/keydoor-8x8.yaml",
	"Crossing-9x9":          "presets/crossing-9x9.yaml",
}

// PresetNames returns the sorted names of the bundled environments
func PresetNames() []string {
	names := make([]string, 0, len(presetFiles))
	for name := range presetFiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadPreset loads a bundled environment configuration by name.
// Name matching is case-insensitive.
func LoadPreset(name string) (*Config, error) {
	for known, path := range presetFiles {
		if strings.EqualFold(known, name) {
			raw, err := presetFS.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read preset %s: %w", known, err)
			}
			return Load(raw)
		}
	}
	return nil, fmt.Errorf("no environment named %q, known environments: %s",
		name, strings.Join(PresetNames(), ", "))
}
