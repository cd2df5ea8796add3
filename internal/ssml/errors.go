package ssml

import "fmt"

// Kind classifies a parse failure. Kind values are errors themselves so callers
// can match with errors.Is(err, ssml.ErrTagMismatch).
type Kind int

const (
	ErrLex Kind = iota + 1
	ErrAttributeSyntax
	ErrTagMismatch
	ErrUnclosedTag
	ErrMissingRoot
	ErrMultipleRoots
	ErrWrongRootName
)

var kindNames = map[Kind]string{
	ErrLex:             "lex error",
	ErrAttributeSyntax: "attribute syntax error",
	ErrTagMismatch:     "tag mismatch",
	ErrUnclosedTag:     "unclosed tag",
	ErrMissingRoot:     "missing root",
	ErrMultipleRoots:   "multiple roots",
	ErrWrongRootName:   "wrong root name",
}

// String returns a short human-readable name for the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) Error() string {
	return k.String()
}

// Error describes why a document was rejected and where
type Error struct {
	Kind    Kind
	Message string
	Offset  int // byte offset into the input
	Line    int // 1-based
	Column  int // 1-based, counted in bytes

	// Open and Close are set for ErrTagMismatch and ErrUnclosedTag.
	Open  string
	Close string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Kind, e.Message)
}

// Unwrap exposes the Kind so errors.Is works against the Err* constants.
func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(input string, offset int, kind Kind, format string, args ...any) *Error {
	line, col := lineColumn(input, offset)
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
		Line:    line,
		Column:  col,
	}
}

// lineColumn converts a byte offset to a 1-based line and column
func lineColumn(input string, offset int) (int, int) {
	if offset > len(input) {
		offset = len(input)
	}
	line, col := 1, 1
	for i := 0; i < offset; i++ {
		if input[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
