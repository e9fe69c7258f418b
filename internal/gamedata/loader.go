// Package gamedata provides embedded enemy and weapon tables.
package gamedata

import (
	"embed"
	"encoding/json"
	"fmt"
)

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS

// Load reads and unmarshals a JSON table from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("read embedded table %s: %w", filename, err)
	}
	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("parse table %s: %w", filename, err)
	}
	return result, nil
}
