package ssml

import "strings"

// Both replacers work in a single left-to-right pass, so "&amp;lt;" decodes to
// "&lt;" and not "<".
var (
	escaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	unescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")

	// quotes are escaped as well inside attribute values
	attrEscaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	attrUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&", "&quot;", `"`)
)

// EscapeEntities replaces &, < and > with their entity references
func EscapeEntities(text string) string {
	return escaper.Replace(text)
}

// UnescapeEntities decodes &lt;, &gt; and &amp;. Any other entity is left as is.
func UnescapeEntities(text string) string {
	return unescaper.Replace(text)
}

func escapeAttr(value string) string {
	return attrEscaper.Replace(value)
}

func unescapeAttr(value string) string {
	return attrUnescaper.Replace(value)
}
