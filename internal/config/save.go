package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SavePreviewEnabled updates preview.enabled in the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
func SavePreviewEnabled(configPath string, enabled bool) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	enabledNode := &yaml.Node{
		Kind:  yaml.ScalarNode,
		Value: fmt.Sprintf("%t", enabled),
	}

	if doc.Kind == 0 {
		// Empty or new file - create document structure
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: "preview"},
						{
							Kind: yaml.MappingNode,
							Content: []*yaml.Node{
								{Kind: yaml.ScalarNode, Value: "enabled"},
								enabledNode,
							},
						},
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind != yaml.MappingNode {
			return fmt.Errorf("unexpected config structure: root is not a mapping")
		}
		preview := findOrAppendMapping(root, "preview")
		setMappingValue(preview, "enabled", enabledNode)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(configPath, out, 0o644); err != nil { //nolint:gosec // config file is not sensitive
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// findOrAppendMapping returns the mapping node under key, creating it if absent.
func findOrAppendMapping(root *yaml.Node, key string) *yaml.Node {
	for i := 0; i < len(root.Content)-1; i += 2 {
		if root.Content[i].Value == key {
			if root.Content[i+1].Kind == yaml.MappingNode {
				return root.Content[i+1]
			}
			// Key exists but is not a mapping - replace it
			root.Content[i+1] = &yaml.Node{Kind: yaml.MappingNode}
			return root.Content[i+1]
		}
	}
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		mapping,
	)
	return mapping
}

// setMappingValue replaces or appends a scalar entry in a mapping node.
func setMappingValue(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			// Keep the existing node's comments, only swap the value
			value.HeadComment = mapping.Content[i+1].HeadComment
			value.LineComment = mapping.Content[i+1].LineComment
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}
