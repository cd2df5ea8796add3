package ssml

import (
	"strconv"
	"strings"
	"unicode"
)

// AudioPlaceholder is what an <audio> element renders as
const AudioPlaceholder = "[audio]"

// RenderSpeech renders a tree as plain text meant to be read aloud.
// Sibling fragments are trimmed and joined with a single space; empty
// fragments are dropped.
//
//   - <break time="500ms"/> and <break time="2s"/> become "[0.5 second pause]"
//     and "[2 second pause]"; a missing or unknown time renders nothing
//   - <say-as interpret-as="character"> spells its text out letter by letter
//   - <sub alias="..."> renders the alias instead of its content
//   - <audio> renders "[audio]"
//   - every other tag renders its children
func RenderSpeech(n Node) string {
	return strings.TrimSpace(speak(n))
}

func speak(n Node) string {
	switch n := n.(type) {
	case *Text:
		if n == nil {
			return ""
		}
		return n.Value
	case *Tag:
		if n == nil {
			return ""
		}
		switch n.Name {
		case "break":
			return pause(n)
		case "say-as":
			if spellsOut(n) {
				return joinChildren(n.Children, spell)
			}
		case "sub":
			alias, _ := n.Attr("alias")
			return alias
		case "audio":
			return AudioPlaceholder
		}
		return joinChildren(n.Children, nil)
	}
	return ""
}

// joinChildren renders children and joins the non-empty results with a space.
// textFn, when set, replaces the rendering of direct text children.
func joinChildren(children []Node, textFn func(string) string) string {
	parts := make([]string, 0, len(children))
	for _, child := range children {
		var s string
		if t, ok := child.(*Text); ok && t != nil && textFn != nil {
			s = textFn(t.Value)
		} else {
			s = speak(child)
		}
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func pause(n *Tag) string {
	value, ok := n.Attr("time")
	if !ok {
		return ""
	}
	value = strings.TrimSpace(value)

	switch {
	case strings.HasSuffix(value, "ms"):
		digits := strings.TrimSpace(strings.TrimSuffix(value, "ms"))
		if !isDecimal(digits, false) {
			return ""
		}
		ms, err := strconv.Atoi(digits)
		if err != nil {
			return ""
		}
		return formatPause(strconv.FormatFloat(float64(ms)/1000, 'f', -1, 64))
	case strings.HasSuffix(value, "s"):
		seconds := strings.TrimSpace(strings.TrimSuffix(value, "s"))
		if !isDecimal(seconds, true) {
			return ""
		}
		return formatPause(seconds)
	}
	return ""
}

// isDecimal reports whether s is one or more ASCII digits, optionally
// followed by '.' and one or more digits when fraction is set
func isDecimal(s string, fraction bool) bool {
	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if hasDot && (!fraction || fracPart == "") {
		return false
	}
	return isDigits(intPart) && (!hasDot || isDigits(fracPart))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func formatPause(seconds string) string {
	return "[" + seconds + " second pause]"
}

func spellsOut(n *Tag) bool {
	switch v, _ := n.Attr("interpret-as"); v {
	case "character", "characters", "spell-out":
		return true
	}
	return false
}

// spell separates every non-space character with a single space
func spell(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
