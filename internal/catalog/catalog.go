// Package catalog holds the fixed set of circuit parameters a user can pick from.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog is wrapped by every validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Category is one dropdown: a name and its ordered options.
type Category struct {
	Name    string   `yaml:"name"`
	Options []string `yaml:"options"`
}

// Catalog is the ordered list of categories offered to the user.
type Catalog struct {
	Categories []Category `yaml:"categories"`
}

var builtin = []Category{
	{Name: "Algorithm", Options: []string{
		"Shor's Algorithm", "Grover's Algorithm", "QAOA", "VQE", "QFT", "QPE",
		"Deutsch-Jozsa Algorithm", "Bernstein-Vazirani Algorithm", "Simon’s Algorithm",
		"HHL", "Quantum Walk Algorithms", "Amplitude Amplification", "QGAN", "QSVM",
		"Quantum Annealing",
	}},
	{Name: "Qubit Count", Options: []string{"2", "4", "8", "16", "32"}},
	{Name: "Gate", Options: []string{
		"Hadamard", "CNOT", "Pauli-X", "Pauli-Y", "Pauli-Z", "Clifford", "T-Gate",
		"Toffoli", "Fredkin", "S-Phase", "T-Phase", "Rotation", "Controlled-U",
		"Controlled-Z", "Swap",
	}},
	{Name: "Connectivity", Options: []string{
		"Full", "Linear", "Circular", "Custom", "Heavy-Hex", "Star-Topology", "Chain",
		"Bus", "Ring",
	}},
	{Name: "Error Rate", Options: []string{"Low", "Medium", "High", "Qubit Crosstalk"}},
	{Name: "Optimization", Options: []string{
		"Gate Cancellation", "Gate Merging", "Qubit Mapping & Routing", "Depth Reduction",
		"Template Matching", "Pauli Frame Optimization", "Clifford Circuit Optimization",
		"Variational Compilation",
	}},
	{Name: "Measure", Options: []string{"Single Qubit", "Multi-Qubit", "All", "Weak Measurement", "QND"}},
	{Name: "Entanglement", Options: []string{"Bell State", "GHZ State", "W State", "Cluster State"}},
	{Name: "Width", Options: []string{"Narrow", "Medium", "Wide"}},
	{Name: "Depth", Options: []string{"Shallow", "Medium", "Deep"}},
}

// Default returns a copy of the built-in catalog.
func Default() Catalog {
	cats := make([]Category, len(builtin))
	for i, c := range builtin {
		cats[i] = Category{Name: c.Name, Options: append([]string(nil), c.Options...)}
	}
	return Catalog{Categories: cats}
}

// Len returns the number of categories.
func (c Catalog) Len() int {
	return len(c.Categories)
}

// Names returns the category names in display order.
func (c Catalog) Names() []string {
	names := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.Name
	}
	return names
}

// Options returns the options for a category.
func (c Catalog) Options(name string) ([]string, bool) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat.Options, true
		}
	}
	return nil, false
}

// Has reports whether value is one of the options listed under name.
func (c Catalog) Has(name, value string) bool {
	opts, ok := c.Options(name)
	if !ok {
		return false
	}
	for _, o := range opts {
		if o == value {
			return true
		}
	}
	return false
}

// Validate checks names and options are non-empty and unique.
func (c Catalog) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalidCatalog)
	}

	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return fmt.Errorf("%w: category %d has no name", ErrInvalidCatalog, i)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidCatalog, name)
		}
		seen[name] = true

		if len(cat.Options) == 0 {
			return fmt.Errorf("%w: category %q has no options", ErrInvalidCatalog, name)
		}
		opts := make(map[string]bool, len(cat.Options))
		for _, o := range cat.Options {
			if strings.TrimSpace(o) == "" {
				return fmt.Errorf("%w: category %q has an empty option", ErrInvalidCatalog, name)
			}
			if opts[o] {
				return fmt.Errorf("%w: category %q lists %q twice", ErrInvalidCatalog, name, o)
			}
			opts[o] = true
		}
	}
	return nil
}

// Load reads and validates a catalog from a YAML file.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("reading catalog file: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parsing catalog file: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Save writes a catalog to a YAML file.
func Save(path string, c Catalog) error {
	out, err := yaml.Marshal(&c)
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing catalog file: %w", err)
	}
	return nil
}
