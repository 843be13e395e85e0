// internal/prompts/prompts.go
// Package prompts loads protocol prompt sets from the configuration document.
// Prompt order within a protocol follows document order, which is why the
// section is walked as a yaml.Node rather than decoded into a map.
package prompts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Prompt is one named prompt belonging to a protocol section.
type Prompt struct {
	Name string
	Text string
}

// Load returns the ordered prompts of the named protocol section from the
// configuration document at path. A missing or malformed section is an error;
// the caller is expected to treat it as fatal.
func Load(path, protocol string) ([]Prompt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file %q: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not parse config file %q: %w", path, err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("invalid configuration format in %q", path)
	}

	root := doc.Content[0]
	section := mappingValue(root, "protocols")
	if section == nil {
		return nil, fmt.Errorf("invalid configuration format: %q section is missing", "protocols")
	}
	if section.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("invalid configuration format: %q section is malformed", "protocols")
	}

	protoNode := mappingValue(section, protocol)
	if protoNode == nil {
		return nil, fmt.Errorf("invalid configuration format: %q section is missing or malformed", protocol)
	}
	if protoNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("invalid configuration format: %q section is missing or malformed", protocol)
	}

	prompts := make([]Prompt, 0, len(protoNode.Content)/2)
	for i := 0; i+1 < len(protoNode.Content); i += 2 {
		key := protoNode.Content[i]
		value := protoNode.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("invalid configuration format: prompt %q in section %q is not a string", key.Value, protocol)
		}
		prompts = append(prompts, Prompt{Name: key.Value, Text: value.Value})
	}
	return prompts, nil
}

// Texts flattens prompts to their text in order.
func Texts(prompts []Prompt) []string {
	texts := make([]string, len(prompts))
	for i, p := range prompts {
		texts[i] = p.Text
	}
	return texts
}

func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
