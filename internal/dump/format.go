package dump

import (
	"fmt"
	"strings"

	"github.com/gubarz/ssmlkit/internal/ssml"
)

// Format selects how a parsed document is rendered
type Format string

const (
	FormatSpeech Format = "speech"
	FormatMarkup Format = "markup"
	FormatTree   Format = "tree"
)

// Formats lists every format in cycling order
var Formats = []Format{FormatSpeech, FormatMarkup, FormatTree}

// ParseFormat validates a format name. Empty means speech.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSpeech, FormatMarkup, FormatTree:
		return f, nil
	case "":
		return FormatSpeech, nil
	default:
		return "", fmt.Errorf("unknown format %q (supported: speech, markup, tree)", s)
	}
}

// Next returns the format after f, wrapping around
func (f Format) Next() Format {
	for i, candidate := range Formats {
		if candidate == f {
			return Formats[(i+1)%len(Formats)]
		}
	}
	return FormatSpeech
}

// Render renders n in the given format
func Render(n ssml.Node, f Format) (string, error) {
	switch f {
	case FormatMarkup:
		return ssml.RenderMarkup(n), nil
	case FormatTree:
		b, err := Tree(n)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(b), "\n"), nil
	default:
		return ssml.RenderSpeech(n), nil
	}
}
