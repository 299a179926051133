package bestiary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadArchetypeFromBytes parses a single archetype from raw YAML bytes.
//
// Postcondition: Returns a validated Archetype or an error.
func LoadArchetypeFromBytes(data []byte) (Archetype, error) {
	var a Archetype
	if err := yaml.Unmarshal(data, &a); err != nil {
		return Archetype{}, fmt.Errorf("parsing archetype YAML: %w", err)
	}
	if err := a.Validate(); err != nil {
		return Archetype{}, err
	}
	return a, nil
}

// LoadDir returns a bestiary seeded with the built-in archetypes and
// overlaid with every *.yaml file in dir. A file whose id matches a
// built-in replaces it; new ids are added.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns the merged bestiary or an error on the first
// parse or validation failure; on error, the partial result is
// discarded.
func LoadDir(dir string) (*Bestiary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading bestiary dir %q: %w", dir, err)
	}

	b := Default()
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		a, err := LoadArchetypeFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		b.archetypes[a.ID] = a
	}
	return b, nil
}
