package games

import (
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML structure of a variant catalog:
//
//	variants:
//	  - id: wacky-machine
//	    name: Wacky Machine Math
//	    mode: subset-sum
//	    part_count: 5
type catalogFile struct {
	Variants []Variant `yaml:"variants"`
}

// ParseCatalog decodes and validates a catalog document. Nothing is
// registered: the whole document is checked first and every problem is
// reported, not just the first.
func ParseCatalog(data []byte) ([]Variant, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	var verr error
	seen := make(map[string]bool, len(file.Variants))
	for i, v := range file.Variants {
		if err := v.validate(); err != nil {
			verr = multierr.Append(verr, fmt.Errorf("variant %d: %w", i, err))
		}
		if v.ID != "" && seen[v.ID] {
			verr = multierr.Append(verr, fmt.Errorf("variant %d: duplicate id %q", i, v.ID))
		}
		seen[v.ID] = true
	}
	if verr != nil {
		return nil, verr
	}
	return file.Variants, nil
}

// LoadCatalog merges variant definitions from a YAML file into the registry.
// A known ID replaces its built-in; a new ID extends the catalog. On any
// validation error nothing is registered.
func LoadCatalog(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	variants, err := ParseCatalog(data)
	if err != nil {
		return err
	}
	for _, v := range variants {
		Register(v)
	}
	slog.Info("variant catalog loaded", "path", path, "count", len(variants))
	return nil
}
