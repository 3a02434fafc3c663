// Package loader reads and writes YAML service description files. Command
// and parameter order in the file is the descriptor insertion order, so
// decoding walks yaml.Node mappings instead of plain maps.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vexley/opdesc/pkg/opdesc"
)

// commandDoc mirrors one command entry in a description file. Params stays a
// raw node so its mapping order survives decoding.
type commandDoc struct {
	Doc    string    `yaml:"doc"`
	Method string    `yaml:"method"`
	URI    string    `yaml:"uri"`
	Class  string    `yaml:"class"`
	Params yaml.Node `yaml:"params"`
}

// Load reads a description file from disk
func Load(path string) (*opdesc.Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read description file: %w", err)
	}
	desc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return desc, nil
}

// Parse builds a description from YAML bytes
func Parse(data []byte) (*opdesc.Description, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid description document: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return opdesc.NewDescription(""), nil
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("description document must be a mapping, got %s node", nodeKind(top))
	}

	desc := opdesc.NewDescription("")
	var name string

	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i], top.Content[i+1]
		switch key.Value {
		case "name":
			name = value.Value
		case "commands":
			if value.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("commands must be a mapping, got %s node at line %d", nodeKind(value), value.Line)
			}
			for j := 0; j+1 < len(value.Content); j += 2 {
				cmd, err := decodeCommand(value.Content[j].Value, value.Content[j+1])
				if err != nil {
					return nil, err
				}
				desc.Add(cmd)
			}
		}
	}

	named := opdesc.NewDescription(name)
	named.Merge(desc)
	return named, nil
}

func decodeCommand(name string, node *yaml.Node) (*opdesc.Command, error) {
	var doc commandDoc
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("command %q: %w", name, err)
	}

	cfg := opdesc.CommandConfig{
		Name:   name,
		Doc:    doc.Doc,
		Method: doc.Method,
		URI:    doc.URI,
		Class:  doc.Class,
	}

	if doc.Params.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(doc.Params.Content); i += 2 {
			paramName := doc.Params.Content[i].Value
			var pc opdesc.ParamConfig
			if err := doc.Params.Content[i+1].Decode(&pc); err != nil {
				return nil, fmt.Errorf("command %q, param %q: %w", name, paramName, err)
			}
			pc.Name = paramName
			cfg.Params = append(cfg.Params, pc)
		}
	} else if doc.Params.Kind != 0 && doc.Params.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("command %q: params must be a mapping", name)
	}

	return opdesc.NewCommand(cfg), nil
}

// Marshal serializes a description to YAML, preserving command and
// parameter order.
func Marshal(desc *opdesc.Description) ([]byte, error) {
	top := &yaml.Node{Kind: yaml.MappingNode}

	if desc.Name() != "" {
		appendPair(top, "name", scalar(desc.Name()))
	}

	if desc.Len() > 0 {
		commands := &yaml.Node{Kind: yaml.MappingNode}
		for _, cmd := range desc.Commands() {
			node, err := commandNode(cmd)
			if err != nil {
				return nil, fmt.Errorf("command %q: %w", cmd.Name(), err)
			}
			appendPair(commands, cmd.Name(), node)
		}
		appendPair(top, "commands", commands)
	}

	return yaml.Marshal(top)
}

// Write serializes a description to a file
func Write(path string, desc *opdesc.Description) error {
	data, err := Marshal(desc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func commandNode(cmd *opdesc.Command) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	if cmd.Doc() != "" {
		appendPair(node, "doc", scalar(cmd.Doc()))
	}
	if cmd.Method() != "" {
		appendPair(node, "method", scalar(cmd.Method()))
	}
	if cmd.URI() != "" {
		appendPair(node, "uri", scalar(cmd.URI()))
	}
	if cmd.Class() != "" && cmd.Class() != opdesc.DefaultClass {
		appendPair(node, "class", scalar(cmd.Class()))
	}

	if cmd.Len() > 0 {
		params := &yaml.Node{Kind: yaml.MappingNode}
		for _, param := range cmd.Params() {
			value := &yaml.Node{}
			if err := value.Encode(param.Config()); err != nil {
				return nil, fmt.Errorf("param %q: %w", param.Name(), err)
			}
			appendPair(params, param.Name(), value)
		}
		appendPair(node, "params", params)
	}

	return node, nil
}

func appendPair(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content, scalar(key), value)
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
