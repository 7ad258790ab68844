package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/abdidvp/reviewkit/internal/domain"
)

const header = `# reviewkit configuration
# Keys left out fall back to the built-in defaults.

`

// Encode renders cfg as a configuration document that Parse reads back to
// the same values. Language blocks follow the top-level keys in name order.
func Encode(cfg domain.Config) ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	for _, name := range slices.Sorted(maps.Keys(cfg.Languages)) {
		var block yaml.Node
		if err := block.Encode(cfg.Languages[name]); err != nil {
			return nil, fmt.Errorf("encoding %s block: %w", name, err)
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		doc.Content = append(doc.Content, key, &block)
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}
