package dump

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/gubarz/ssmlkit/internal/ssml"
)

// Tree renders a node tree as YAML. Tags become mappings with name, attrs
// and children keys; attribute order is kept. Text nodes become plain strings.
func Tree(n ssml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(n)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toYAML(n ssml.Node) *yaml.Node {
	switch n := n.(type) {
	case *ssml.Text:
		return scalar(n.Value)
	case *ssml.Tag:
		out := &yaml.Node{Kind: yaml.MappingNode}
		out.Content = append(out.Content, scalar("name"), scalar(n.Name))

		if len(n.Attrs) > 0 {
			attrs := &yaml.Node{Kind: yaml.MappingNode}
			for _, a := range n.Attrs {
				attrs.Content = append(attrs.Content, scalar(a.Name), scalar(a.Value))
			}
			out.Content = append(out.Content, scalar("attrs"), attrs)
		}

		if len(n.Children) > 0 {
			children := &yaml.Node{Kind: yaml.SequenceNode}
			for _, child := range n.Children {
				children.Content = append(children.Content, toYAML(child))
			}
			out.Content = append(out.Content, scalar("children"), children)
		}
		return out
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
