package registry

import (
	"embed"
	"encoding/json"
	"io/fs"
	"sort"
	"strings"
)

//go:embed colors
var embeddedColors embed.FS

// EmbeddedBaseColor returns the base color shipped with the binary.
func EmbeddedBaseColor(name string) (*BaseColor, error) {
	data, err := embeddedColors.ReadFile("colors/" + name + ".json")
	if err != nil {
		return nil, err
	}

	var color BaseColor
	if err := json.Unmarshal(data, &color); err != nil {
		return nil, err
	}

	return &color, nil
}

// HasEmbeddedBaseColor checks if a base color is available without the network.
func HasEmbeddedBaseColor(name string) bool {
	_, err := embeddedColors.ReadFile("colors/" + name + ".json")
	return err == nil
}

// ListEmbeddedBaseColors returns all embedded base color names, sorted.
func ListEmbeddedBaseColors() ([]string, error) {
	entries, err := fs.ReadDir(embeddedColors, "colors")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), ".json"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names, nil
}
