package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/gubarz/ssmlkit/internal/cache"
	"github.com/gubarz/ssmlkit/internal/ssml"
)

// Document is a single SSML snippet found on disk
type Document struct {
	File        string    // Source file path
	Header      string    // Nearest Markdown heading, or the file name
	Description string    // Blockquote text above the snippet
	Source      string    // Raw SSML
	Line        int       // 1-based line in File where Source starts
	Tags        []string  // Tags from path/header
	Root        *ssml.Tag // Parsed tree, nil if Err is set
	Err         error     // Parse failure
}

// Valid reports whether the document parsed
func (d *Document) Valid() bool {
	return d.Err == nil
}

// Location returns file:line:col for a parse failure, mapped back into File
func (d *Document) Location() string {
	var perr *ssml.Error
	if errors.As(d.Err, &perr) {
		return fmt.Sprintf("%s:%d:%d", d.File, d.Line+perr.Line-1, perr.Column)
	}
	return fmt.Sprintf("%s:%d", d.File, d.Line)
}

// Index holds all discovered documents
type Index struct {
	Documents []*Document
	// Skipped lists files below a loaded directory that could not be read
	Skipped []string
}

// Invalid returns the documents that failed to parse
func (idx *Index) Invalid() []*Document {
	var out []*Document
	for _, d := range idx.Documents {
		if !d.Valid() {
			out = append(out, d)
		}
	}
	return out
}

var (
	headerRegex    = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	codeBlockStart = regexp.MustCompile("^```(\\w*)\\s*$")
	codeBlockEnd   = regexp.MustCompile("^```\\s*$")
	blockquoteRe   = regexp.MustCompile(`^>\s?(.*)$`)
)

// Loader discovers documents and parses them through a shared cache
type Loader struct {
	cache  *cache.ParseCache
	logger *log.Logger
	index  *Index
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(c *cache.ParseCache, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{
		cache:  c,
		logger: logger,
		index:  &Index{},
	}
}

// Load parses a file, or every SSML and Markdown file below a directory
func (l *Loader) Load(path string) (*Index, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return l.LoadDirectory(path)
	}
	return l.LoadFile(path)
}

// LoadDirectory recursively loads all supported files
func (l *Loader) LoadDirectory(dir string) (*Index, error) {
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			l.skip(path, err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if name := info.Name(); path != dir && (strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if kindOf(path) == kindUnknown {
			return nil
		}
		if err := l.loadFile(path); err != nil {
			l.skip(path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.logStats()
	return l.index, nil
}

// skip records a file or directory that could not be read and moves on
func (l *Loader) skip(path string, err error) {
	l.index.Skipped = append(l.index.Skipped, path)
	l.logger.Warn("skipping unreadable path", "path", path, "err", err)
}

// LoadFile loads a single file. Files that are neither Markdown nor
// .ssml/.xml are treated as one SSML document.
func (l *Loader) LoadFile(path string) (*Index, error) {
	if err := l.loadFile(path); err != nil {
		return nil, err
	}
	l.logStats()
	return l.index, nil
}

// LoadSource adds a document that did not come from a file, such as stdin
func (l *Loader) LoadSource(name, src string) *Document {
	doc := l.newDocument(name, name, "", src, 1)
	l.index.Documents = append(l.index.Documents, doc)
	return doc
}

type fileKind int

const (
	kindUnknown fileKind = iota
	kindSSML
	kindMarkdown
)

func kindOf(path string) fileKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ssml", ".xml":
		return kindSSML
	case ".md", ".markdown":
		return kindMarkdown
	}
	return kindUnknown
}

func (l *Loader) loadFile(path string) error {
	if kindOf(path) == kindMarkdown {
		lines, err := readLines(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		before := len(l.index.Documents)
		l.parseMarkdown(path, lines)
		l.logger.Debug("scanned markdown", "file", path, "documents", len(l.index.Documents)-before)
		return nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	header := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc := l.newDocument(path, header, "", string(b), 1)
	l.index.Documents = append(l.index.Documents, doc)
	l.logger.Debug("loaded document", "file", path, "valid", doc.Valid())
	return nil
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// parseMarkdown collects fenced ssml blocks, and xml blocks whose content
// starts with a <speak> tag.
func (l *Loader) parseMarkdown(path string, lines []string) {
	var currentHeader string
	var currentDescription strings.Builder
	var inCodeBlock bool
	var codeBlockLang string
	var codeBlockLine int
	var codeBlockContent strings.Builder

	for i, line := range lines {
		if inCodeBlock {
			if codeBlockEnd.MatchString(line) {
				inCodeBlock = false
				l.addBlock(path, currentHeader, currentDescription.String(), codeBlockLang, codeBlockContent.String(), codeBlockLine)
				continue
			}
			codeBlockContent.WriteString(line + "\n")
			continue
		}

		if matches := headerRegex.FindStringSubmatch(line); matches != nil {
			currentHeader = strings.TrimSpace(matches[2])
			currentDescription.Reset()
			continue
		}

		if matches := blockquoteRe.FindStringSubmatch(line); matches != nil {
			if currentDescription.Len() > 0 {
				currentDescription.WriteString("\n")
			}
			currentDescription.WriteString(matches[1])
			continue
		}

		if matches := codeBlockStart.FindStringSubmatch(line); matches != nil {
			inCodeBlock = true
			codeBlockLang = strings.ToLower(matches[1])
			codeBlockLine = i + 2
			codeBlockContent.Reset()
		}
	}

	if inCodeBlock {
		l.logger.Warn("unterminated code block", "file", path, "line", codeBlockLine-1)
	}
}

func (l *Loader) addBlock(path, header, description, lang, content string, line int) {
	switch lang {
	case "ssml":
	case "xml":
		if !strings.HasPrefix(strings.TrimSpace(content), "<speak") {
			return
		}
	default:
		return
	}
	if strings.TrimSpace(content) == "" {
		return
	}
	if header == "" {
		header = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	doc := l.newDocument(path, header, description, content, line)
	l.index.Documents = append(l.index.Documents, doc)
}

func (l *Loader) newDocument(path, header, description, src string, line int) *Document {
	root, err := l.cache.Parse(src)
	if err != nil {
		l.logger.Debug("document does not parse", "file", path, "line", line, "err", err)
	}
	return &Document{
		File:        path,
		Header:      header,
		Description: strings.TrimSpace(description),
		Source:      src,
		Line:        line,
		Tags:        extractTags(path, header),
		Root:        root,
		Err:         err,
	}
}

func (l *Loader) logStats() {
	hits, misses := l.cache.Stats()
	l.logger.Debug("load complete",
		"documents", len(l.index.Documents),
		"invalid", len(l.index.Invalid()),
		"cache_hits", hits,
		"cache_misses", misses,
	)
}

func extractTags(path, header string) []string {
	var tags []string
	dir := filepath.Dir(path)
	parts := strings.Split(dir, string(filepath.Separator))
	for _, part := range parts {
		if part != "" && part != "." {
			tags = append(tags, strings.ToLower(part))
		}
	}

	if idx := strings.Index(header, ":"); idx != -1 {
		tags = append(tags, strings.ToLower(strings.TrimSpace(header[:idx])))
	}

	return tags
}
