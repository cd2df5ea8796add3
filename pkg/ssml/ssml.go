// Package ssml parses and renders the subset of SSML used for synthesized speech.
//
// A document must have a single <speak> root, every opening tag must be closed
// by a tag of exactly the same name, and attribute values must be double-quoted.
//
//	root, err := ssml.Parse(`<speak>Hello, <break time="500ms"/>world!</speak>`)
//	if err != nil {
//		return err
//	}
//	fmt.Println(ssml.RenderSpeech(root)) // Hello, [0.5 second pause] world!
package ssml

import "github.com/gubarz/ssmlkit/internal/ssml"

type (
	Node  = ssml.Node
	Text  = ssml.Text
	Tag   = ssml.Tag
	Attr  = ssml.Attr
	Error = ssml.Error
	Kind  = ssml.Kind
)

// Error kinds, for use with errors.Is.
const (
	ErrLex             = ssml.ErrLex
	ErrAttributeSyntax = ssml.ErrAttributeSyntax
	ErrTagMismatch     = ssml.ErrTagMismatch
	ErrUnclosedTag     = ssml.ErrUnclosedTag
	ErrMissingRoot     = ssml.ErrMissingRoot
	ErrMultipleRoots   = ssml.ErrMultipleRoots
	ErrWrongRootName   = ssml.ErrWrongRootName
)

// Parse parses a document and returns its <speak> root.
func Parse(text string) (*Tag, error) {
	return ssml.Parse(text)
}

// RenderMarkup serializes a tree back to canonical SSML.
func RenderMarkup(n Node) string {
	return ssml.RenderMarkup(n)
}

// RenderSpeech renders a tree as speakable plain text.
func RenderSpeech(n Node) string {
	return ssml.RenderSpeech(n)
}

// EscapeEntities escapes &, < and >.
func EscapeEntities(text string) string {
	return ssml.EscapeEntities(text)
}

// UnescapeEntities decodes &lt;, &gt; and &amp;.
func UnescapeEntities(text string) string {
	return ssml.UnescapeEntities(text)
}

// Equal reports whether two trees are structurally identical.
func Equal(a, b Node) bool {
	return ssml.Equal(a, b)
}

// NewText creates a text node.
func NewText(value string) *Text {
	return ssml.NewText(value)
}

// NewTag creates a tag node with the given attributes and children.
func NewTag(name string, attrs []Attr, children ...Node) *Tag {
	return ssml.NewTag(name, attrs, children...)
}
