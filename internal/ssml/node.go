package ssml

// Node is either a *Text or a *Tag.
type Node interface {
	node()
}

// Text is a run of character data with entities already decoded
type Text struct {
	Value string
}

func (*Text) node() {}

// Attr is a single name="value" pair on a tag
type Attr struct {
	Name  string
	Value string
}

// Tag is an element with ordered attributes and ordered children
type Tag struct {
	Name     string
	Attrs    []Attr
	Children []Node
}

func (*Tag) node() {}

// NewText creates a text node
func NewText(value string) *Text {
	return &Text{Value: value}
}

// NewTag creates a tag node with the given children
func NewTag(name string, attrs []Attr, children ...Node) *Tag {
	return &Tag{Name: name, Attrs: attrs, Children: children}
}

// Attr returns the value of the named attribute
func (t *Tag) Attr(name string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// setAttr overwrites an existing attribute in place or appends a new one
func (t *Tag) setAttr(name, value string) {
	for i := range t.Attrs {
		if t.Attrs[i].Name == name {
			t.Attrs[i].Value = value
			return
		}
	}
	t.Attrs = append(t.Attrs, Attr{Name: name, Value: value})
}

// Equal reports whether two trees have the same shape, names, attributes and text.
// A nil attribute slice equals an empty one. Nil nodes, typed or not, only
// equal other nil nodes.
func Equal(a, b Node) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	switch x := a.(type) {
	case *Text:
		y, ok := b.(*Text)
		return ok && x.Value == y.Value
	case *Tag:
		y, ok := b.(*Tag)
		if !ok || x.Name != y.Name || len(x.Attrs) != len(y.Attrs) || len(x.Children) != len(y.Children) {
			return false
		}
		for i := range x.Attrs {
			if x.Attrs[i] != y.Attrs[i] {
				return false
			}
		}
		for i := range x.Children {
			if !Equal(x.Children[i], y.Children[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Text:
		return n == nil
	case *Tag:
		return n == nil
	}
	return false
}
