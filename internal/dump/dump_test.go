package dump

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/gubarz/ssmlkit/internal/ssml"
)

func TestTree(t *testing.T) {
	root := ssml.MustParse(`<speak b="2" a="1">Hi <break time="1s"/></speak>`)

	out, err := Tree(root)
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, out)
	}
	top := doc.Content[0]
	if keys := mappingKeys(top); len(keys) != 3 || keys[0] != "name" || keys[1] != "attrs" || keys[2] != "children" {
		t.Fatalf("unexpected top-level keys %v", keys)
	}

	attrs := top.Content[3]
	if keys := mappingKeys(attrs); len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Errorf("expected attribute order [b a], got %v", keys)
	}
	if attrs.Content[1].Value != "2" || attrs.Content[1].Tag != "!!str" {
		t.Errorf("expected string value \"2\", got %s %q", attrs.Content[1].Tag, attrs.Content[1].Value)
	}

	children := top.Content[5]
	if len(children.Content) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children.Content))
	}
	if children.Content[0].Value != "Hi " {
		t.Errorf("expected text %q, got %q", "Hi ", children.Content[0].Value)
	}
	if children.Content[1].Kind != yaml.MappingNode {
		t.Errorf("expected break to be a mapping")
	}
}

func mappingKeys(n *yaml.Node) []string {
	var keys []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		keys = append(keys, n.Content[i].Value)
	}
	return keys
}

func TestTreeDecodes(t *testing.T) {
	root := ssml.MustParse(`<speak><p>one</p><p>two</p></speak>`)
	out, err := Tree(root)
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}

	var decoded struct {
		Name     string `yaml:"name"`
		Children []struct {
			Name     string   `yaml:"name"`
			Children []string `yaml:"children"`
		} `yaml:"children"`
	}
	if err := yaml.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Name != "speak" || len(decoded.Children) != 2 {
		t.Fatalf("unexpected shape: %+v", decoded)
	}
	if decoded.Children[1].Children[0] != "two" {
		t.Errorf("expected second paragraph text 'two', got %+v", decoded.Children[1])
	}
}
