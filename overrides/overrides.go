// Package overrides holds static name → value mappings that take precedence
// over the cache and the registry service.
//
// An Overrides value is never mutated after it has been built: WithPackage and
// WithType return a fresh copy, so one value can be shared by any number of
// resolvers.
package overrides

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/krisalay/mvr/naming"
	"github.com/krisalay/mvr/types"
)

// Overrides maps package names to addresses and type names to full signatures.
// The field names are the exchange format's two sections.
type Overrides struct {
	Packages map[string]string `json:"packages,omitempty"`
	Types    map[string]string `json:"types,omitempty"`
}

// New returns an empty set of overrides.
func New() Overrides {
	return Overrides{}
}

// WithPackage returns a copy with name → address added (last write wins).
func (o Overrides) WithPackage(name, address string) Overrides {
	out := o.Clone()
	if out.Packages == nil {
		out.Packages = make(map[string]string, 1)
	}
	out.Packages[name] = address
	return out
}

// WithType returns a copy with name → signature added (last write wins).
func (o Overrides) WithType(name, signature string) Overrides {
	out := o.Clone()
	if out.Types == nil {
		out.Types = make(map[string]string, 1)
	}
	out.Types[name] = signature
	return out
}

// Package looks up a package override.
func (o Overrides) Package(name string) (string, bool) {
	v, ok := o.Packages[name]
	return v, ok
}

// Type looks up a type override.
func (o Overrides) Type(name string) (string, bool) {
	v, ok := o.Types[name]
	return v, ok
}

// Len is the total number of overrides in both sections.
func (o Overrides) Len() int {
	return len(o.Packages) + len(o.Types)
}

// Clone deep-copies both maps.
func (o Overrides) Clone() Overrides {
	return Overrides{
		Packages: maps.Clone(o.Packages),
		Types:    maps.Clone(o.Types),
	}
}

// Validate checks every key against the registry naming rules.
func (o Overrides) Validate() error {
	for name := range o.Packages {
		if err := naming.ValidatePackageName(name); err != nil {
			return types.ConfigError("package override %q: %w", name, err)
		}
	}
	for name := range o.Types {
		if err := naming.ValidateTypeName(name); err != nil {
			return types.ConfigError("type override %q: %w", name, err)
		}
	}
	return nil
}

// Parse reads overrides from YAML or JSON. Unknown sections are rejected.
func Parse(data []byte) (Overrides, error) {
	var o Overrides
	if err := yaml.UnmarshalStrict(data, &o); err != nil {
		return Overrides{}, types.ConfigError("failed to parse overrides: %w", err)
	}
	return o, nil
}

// LoadFile reads and parses an overrides file.
func LoadFile(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, types.ConfigError("failed to read overrides file %s: %w", path, err)
	}
	return Parse(data)
}

// ToYAML renders the overrides in the YAML exchange format.
func (o Overrides) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal overrides: %w", err)
	}
	return data, nil
}

// ToJSON renders the overrides as indented JSON.
func (o Overrides) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal overrides: %w", err)
	}
	return data, nil
}
