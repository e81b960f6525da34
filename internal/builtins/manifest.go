// Package builtins embeds a human-readable mirror of the checker's
// built-in environment, so the contents of internal/types.NewBuiltinEnv
// are visible without reading Go source — and so a test can catch the
// two definitions drifting apart.
package builtins

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var manifestYAML []byte

// Manifest is the parsed shape of manifest.yaml.
type Manifest struct {
	Constructors []string `yaml:"constructors"`
	Stdlib       []string `yaml:"stdlib"`
	Specials     []string `yaml:"specials"`
}

// Load parses the embedded manifest.
func Load() (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(manifestYAML, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Names returns every binding name the manifest lists, across all three
// groups.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Constructors)+len(m.Stdlib)+len(m.Specials))
	names = append(names, m.Constructors...)
	names = append(names, m.Stdlib...)
	names = append(names, m.Specials...)
	return names
}
