// Package paramschema loads the published parameter descriptors an
// operator sees for each algorithm tag, merging a config file's
// defaults onto each strategy's programmatic ParamDescriptor list.
package paramschema

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/defense-scheduler/internal/algorithm"
)

// Descriptor mirrors algorithm.ParamDescriptor in a form the TOML/YAML
// decoders can populate directly.
type Descriptor struct {
	Name        string `toml:"name" yaml:"name" json:"name"`
	Type        string `toml:"type" yaml:"type" json:"type"`
	Default     any    `toml:"default" yaml:"default" json:"default"`
	Description string `toml:"description" yaml:"description" json:"description"`
}

type algorithmEntry struct {
	Tag        string       `toml:"tag" yaml:"tag"`
	Parameters []Descriptor `toml:"parameters" yaml:"parameters"`
}

type fileFormat struct {
	Algorithms []algorithmEntry `toml:"algorithms" yaml:"algorithms"`
}

// Published is the config-file descriptor overlay, keyed by tag.
type Published map[string][]Descriptor

// Load reads dir/algorithms.toml if present, otherwise
// dir/algorithms.yaml, and returns the published overrides per tag.
// Neither file existing is not an error: Merge then falls back
// entirely to the registry's programmatic defaults.
func Load(dir string) (Published, error) {
	tomlPath := filepath.Join(dir, "algorithms.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		var doc fileFormat
		if _, err := toml.DecodeFile(tomlPath, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", tomlPath, err)
		}
		return toPublished(doc), nil
	}

	yamlPath := filepath.Join(dir, "algorithms.yaml")
	if raw, err := os.ReadFile(yamlPath); err == nil {
		var doc fileFormat
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", yamlPath, err)
		}
		return toPublished(doc), nil
	}

	return Published{}, nil
}

func toPublished(doc fileFormat) Published {
	out := make(Published, len(doc.Algorithms))
	for _, entry := range doc.Algorithms {
		out[entry.Tag] = entry.Parameters
	}
	return out
}

// Merge overlays published defaults/descriptions onto each registered
// tag's programmatic descriptor list. The registry stays authoritative
// for which parameters a tag accepts and their types; the config file
// can only adjust a default value or description text.
func Merge(registry *algorithm.Registry, published Published) map[string][]algorithm.ParamDescriptor {
	out := make(map[string][]algorithm.ParamDescriptor)
	for _, tag := range registry.Tags() {
		base := registry.Descriptors(tag)
		overrides := indexByName(published[tag])
		merged := make([]algorithm.ParamDescriptor, len(base))
		for i, d := range base {
			if o, ok := overrides[d.Name]; ok {
				if o.Default != nil {
					d.Default = o.Default
				}
				if o.Description != "" {
					d.Description = o.Description
				}
			}
			merged[i] = d
		}
		out[tag] = merged
	}
	return out
}

func indexByName(descriptors []Descriptor) map[string]Descriptor {
	idx := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		idx[d.Name] = d
	}
	return idx
}
