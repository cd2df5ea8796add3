package ssml

// RootName is the only tag name accepted at the top level of a document
const RootName = "speak"

// openTag is a tag on the builder stack together with where it was opened
type openTag struct {
	tag    *Tag
	offset int
}

// builder assembles a tree from tokens using an explicit stack of open tags
type builder struct {
	input      string
	lexer      *Lexer
	stack      []openTag
	root       *Tag
	rootOffset int
}

// Parse parses an SSML document. It returns the root <speak> tag, or an
// *Error describing the first problem found. No partial tree is returned.
func Parse(input string) (*Tag, error) {
	b := &builder{input: input, lexer: NewLexer(input)}
	for {
		tok, ok, err := b.lexer.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return b.finish()
		}
		if err := b.consume(tok); err != nil {
			return nil, err
		}
	}
}

// MustParse is like Parse but panics on error. Intended for tests and fixed input.
func MustParse(input string) *Tag {
	root, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return root
}

func (b *builder) consume(tok Token) error {
	switch tok.Type {
	case TokenText:
		return b.text(tok)
	case TokenOpen:
		return b.open(tok)
	case TokenSelfClose:
		if err := b.open(tok); err != nil {
			return err
		}
		return b.close(Token{Type: TokenClose, Name: tok.Name, Offset: tok.Offset})
	case TokenClose:
		return b.close(tok)
	}
	return nil
}

func (b *builder) text(tok Token) error {
	if len(b.stack) == 0 {
		if b.root != nil || b.opensLater() {
			return newError(b.input, tok.Offset, ErrMultipleRoots, "text %q outside the root tag", preview(tok.Raw))
		}
		return newError(b.input, tok.Offset, ErrMissingRoot, "document has no <%s> tag, only text", RootName)
	}
	top := b.stack[len(b.stack)-1].tag
	top.Children = append(top.Children, NewText(UnescapeEntities(tok.Raw)))
	return nil
}

// opensLater reports whether an opening tag follows the current lexer
// position. Lexing stops quietly at the first error.
func (b *builder) opensLater() bool {
	peek := *b.lexer
	for {
		tok, ok, err := peek.Next()
		if err != nil || !ok {
			return false
		}
		if tok.Type == TokenOpen || tok.Type == TokenSelfClose {
			return true
		}
	}
}

func (b *builder) open(tok Token) error {
	if len(b.stack) == 0 && b.root != nil {
		line, col := lineColumn(b.input, b.rootOffset)
		return newError(b.input, tok.Offset, ErrMultipleRoots,
			"second top-level tag <%s>, root <%s> already closed (opened at %d:%d)", tok.Name, b.root.Name, line, col)
	}
	tag := &Tag{Name: tok.Name}
	if err := parseAttrs(tag, tok.Raw, b.input, tok.RawOffset); err != nil {
		return err
	}
	b.stack = append(b.stack, openTag{tag: tag, offset: tok.Offset})
	return nil
}

func (b *builder) close(tok Token) error {
	if len(b.stack) == 0 {
		err := newError(b.input, tok.Offset, ErrTagMismatch, "closing tag </%s> has no matching opening tag", tok.Name)
		err.Close = tok.Name
		return err
	}

	top := b.stack[len(b.stack)-1]
	if top.tag.Name != tok.Name {
		line, col := lineColumn(b.input, top.offset)
		err := newError(b.input, tok.Offset, ErrTagMismatch,
			"closing tag </%s> does not match <%s> opened at %d:%d", tok.Name, top.tag.Name, line, col)
		err.Open = top.tag.Name
		err.Close = tok.Name
		return err
	}

	b.stack = b.stack[:len(b.stack)-1]
	if len(b.stack) == 0 {
		b.root = top.tag
		b.rootOffset = top.offset
		return nil
	}
	parent := b.stack[len(b.stack)-1].tag
	parent.Children = append(parent.Children, top.tag)
	return nil
}

func (b *builder) finish() (*Tag, error) {
	if n := len(b.stack); n > 0 {
		top := b.stack[n-1]
		err := newError(b.input, top.offset, ErrUnclosedTag, "tag <%s> is never closed", top.tag.Name)
		err.Open = top.tag.Name
		return nil, err
	}
	if b.root == nil {
		return nil, newError(b.input, len(b.input), ErrMissingRoot, "document has no <%s> tag", RootName)
	}
	if b.root.Name != RootName {
		return nil, newError(b.input, b.rootOffset, ErrWrongRootName, "root tag is <%s>, expected <%s>", b.root.Name, RootName)
	}
	return b.root, nil
}

// preview shortens text for error messages to at most 20 runes
func preview(s string) string {
	const limit = 20
	n := 0
	for i := range s {
		if n == limit {
			return s[:i] + "..."
		}
		n++
	}
	return s
}
