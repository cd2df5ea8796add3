package ssml

// parseAttrs parses the raw attribute substring of a tag into t.Attrs.
// Grammar: (ws* name ws* '=' ws* '"' value '"')* ws*, with at least one
// whitespace character between pairs. base is the offset of raw in input
// and is only used for error positions.
func parseAttrs(t *Tag, raw, input string, base int) error {
	fail := func(i int, format string, args ...any) error {
		return newError(input, base+i, ErrAttributeSyntax, format, args...)
	}

	i := 0
	for {
		j := skipSpace(raw, i, len(raw))
		if j == len(raw) {
			return nil
		}
		if j == i && i > 0 {
			return fail(i, "missing whitespace between attributes")
		}
		i = j

		nameStart := i
		for i < len(raw) && !isSpace(raw[i]) && raw[i] != '=' && raw[i] != '"' && raw[i] != '\'' {
			i++
		}
		name := raw[nameStart:i]
		if name == "" {
			return fail(i, "attribute name missing")
		}

		i = skipSpace(raw, i, len(raw))
		if i >= len(raw) || raw[i] != '=' {
			return fail(i, "attribute %q has no value: expected '='", name)
		}
		i = skipSpace(raw, i+1, len(raw))

		if i >= len(raw) || raw[i] != '"' {
			return fail(i, "value of attribute %q must be double-quoted", name)
		}
		valueStart := i + 1
		i = valueStart
		for i < len(raw) && raw[i] != '"' {
			i++
		}
		if i >= len(raw) {
			return fail(valueStart-1, "unterminated value for attribute %q", name)
		}

		t.setAttr(name, unescapeAttr(raw[valueStart:i]))
		i++
	}
}
