package ssml

import "strings"

// TokenType identifies what a token represents
type TokenType int

const (
	TokenText      TokenType = iota // character data between tags, still escaped
	TokenOpen                       // <name ...>
	TokenClose                      // </name>
	TokenSelfClose                  // <name .../>
)

// String returns a string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case TokenText:
		return "TEXT"
	case TokenOpen:
		return "OPEN"
	case TokenClose:
		return "CLOSE"
	case TokenSelfClose:
		return "SELF_CLOSE"
	default:
		return "UNKNOWN"
	}
}

// Token is a single lexical unit with its byte position in the input
type Token struct {
	Type TokenType
	// Name is the tag name for tag tokens.
	Name string
	// Raw is the escaped text for TokenText, or the unparsed attribute
	// substring for TokenOpen and TokenSelfClose.
	Raw string
	// Offset of the token start ('<' for tags).
	Offset int
	// RawOffset is where Raw begins in the input.
	RawOffset int
}

// Lexer splits SSML input into tag and text tokens
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Next returns the next token. ok is false once the input is exhausted.
// Text runs made only of whitespace are skipped.
func (l *Lexer) Next() (tok Token, ok bool, err error) {
	for l.pos < len(l.input) {
		if l.input[l.pos] != '<' {
			start := l.pos
			end := strings.IndexByte(l.input[start:], '<')
			if end < 0 {
				end = len(l.input)
			} else {
				end += start
			}
			l.pos = end
			raw := l.input[start:end]
			if isBlank(raw) {
				continue
			}
			return Token{Type: TokenText, Raw: raw, Offset: start, RawOffset: start}, true, nil
		}

		tok, err := l.readTag()
		if err != nil {
			return Token{}, false, err
		}
		return tok, true, nil
	}
	return Token{}, false, nil
}

// Tokenize returns all tokens from the input
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, ok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// readTag reads a delimiter starting at the current '<'
func (l *Lexer) readTag() (Token, error) {
	start := l.pos
	end := strings.IndexByte(l.input[start+1:], '>')
	if end < 0 {
		return Token{}, newError(l.input, start, ErrLex, "unterminated tag: missing '>'")
	}
	end += start + 1
	if next := strings.IndexByte(l.input[start+1:end], '<'); next >= 0 {
		return Token{}, newError(l.input, start, ErrLex, "unterminated tag: found '<' before '>'")
	}
	l.pos = end + 1

	i := skipSpace(l.input, start+1, end)
	tok := Token{Type: TokenOpen, Offset: start}
	if i < end && l.input[i] == '/' {
		tok.Type = TokenClose
		i = skipSpace(l.input, i+1, end)
	}

	if i >= end || !isNameStart(l.input[i]) {
		return Token{}, newError(l.input, i, ErrLex, "expected tag name")
	}
	nameStart := i
	for i < end && isNameChar(l.input[i]) {
		i++
	}
	tok.Name = l.input[nameStart:i]

	rest := l.input[i:end]
	switch tok.Type {
	case TokenClose:
		if !isBlank(rest) {
			return Token{}, newError(l.input, i, ErrLex, "unexpected %q in closing tag </%s>", strings.TrimSpace(rest), tok.Name)
		}
	default:
		if trimmed := strings.TrimRight(rest, " \t\r\n"); strings.HasSuffix(trimmed, "/") {
			tok.Type = TokenSelfClose
			rest = trimmed[:len(trimmed)-1]
		}
		if rest != "" && !isSpace(rest[0]) {
			return Token{}, newError(l.input, i, ErrLex, "invalid character %q in tag name", rest[0])
		}
		tok.Raw = rest
		tok.RawOffset = i
	}
	return tok, nil
}

func skipSpace(s string, i, end int) int {
	for i < end && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isSpace(s[i]) {
			return false
		}
	}
	return true
}

// isNameStart accepts ASCII letters, '_', ':' and any non-ASCII byte
func isNameStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == ':' || ch > 127
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || '0' <= ch && ch <= '9' || ch == '-' || ch == '.'
}
