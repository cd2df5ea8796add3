package ssml

import (
	"errors"
	"testing"
)

func TestEntities(t *testing.T) {
	tests := []struct {
		raw     string
		escaped string
	}{
		{"", ""},
		{"plain", "plain"},
		{"TS &> JS", "TS &amp;&gt; JS"},
		{"<speak>", "&lt;speak&gt;"},
		{"&lt;", "&amp;lt;"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := EscapeEntities(tt.raw); got != tt.escaped {
				t.Errorf("EscapeEntities(%q): expected %q, got %q", tt.raw, tt.escaped, got)
			}
			if got := UnescapeEntities(tt.escaped); got != tt.raw {
				t.Errorf("UnescapeEntities(%q): expected %q, got %q", tt.escaped, tt.raw, got)
			}
		})
	}
}

func TestUnescapeLeavesUnknownEntities(t *testing.T) {
	if got := UnescapeEntities("&quot;&nbsp;&amp"); got != "&quot;&nbsp;&amp" {
		t.Errorf("expected unknown entities untouched, got %q", got)
	}
}

func TestKindIsError(t *testing.T) {
	err := &Error{Kind: ErrUnclosedTag, Message: "tag <p> is never closed", Line: 1, Column: 8}
	if !errors.Is(err, ErrUnclosedTag) {
		t.Error("expected errors.Is to match the kind")
	}
	if errors.Is(err, ErrTagMismatch) {
		t.Error("expected errors.Is not to match another kind")
	}
	if got := err.Error(); got != "1:8: unclosed tag: tag <p> is never closed" {
		t.Errorf("unexpected message %q", got)
	}
	if got := Kind(42).String(); got != "Kind(42)" {
		t.Errorf("expected Kind(42), got %q", got)
	}
}
