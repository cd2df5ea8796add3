package ssml

import "strings"

// RenderMarkup serializes a tree back to SSML. Text is re-escaped and
// attributes are written double-quoted in their original order.
// Self-closing input comes back as an explicit open/close pair.
func RenderMarkup(n Node) string {
	var b strings.Builder
	writeMarkup(&b, n)
	return b.String()
}

func writeMarkup(b *strings.Builder, n Node) {
	if isNil(n) {
		return
	}
	switch n := n.(type) {
	case *Text:
		b.WriteString(EscapeEntities(n.Value))
	case *Tag:
		b.WriteByte('<')
		b.WriteString(n.Name)
		for _, a := range n.Attrs {
			b.WriteByte(' ')
			b.WriteString(a.Name)
			b.WriteString(`="`)
			b.WriteString(escapeAttr(a.Value))
			b.WriteByte('"')
		}
		b.WriteByte('>')
		for _, child := range n.Children {
			writeMarkup(b, child)
		}
		b.WriteString("</")
		b.WriteString(n.Name)
		b.WriteByte('>')
	}
}
