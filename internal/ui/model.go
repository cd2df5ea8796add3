package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/ssmlkit/internal/catalog"
	"github.com/gubarz/ssmlkit/internal/dump"
)

// ============================================================================
// String Builder Pool - reduces GC pressure from rendering
// ============================================================================

var builderPool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

func getBuilder() *strings.Builder {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

func putBuilder(b *strings.Builder) {
	if b.Cap() < 64*1024 { // Don't pool huge builders
		builderPool.Put(b)
	}
}

// ============================================================================
// Document Item
// ============================================================================

// docItem wraps a Document with display metadata
type docItem struct {
	doc    *catalog.Document
	folder string
	file   string
	speech string // speech rendering, empty for invalid documents
}

func newDocItem(doc *catalog.Document) docItem {
	item := docItem{
		doc:    doc,
		folder: filepath.Base(filepath.Dir(doc.File)),
		file:   strings.TrimSuffix(filepath.Base(doc.File), filepath.Ext(doc.File)),
	}
	if doc.Valid() {
		item.speech, _ = dump.Render(doc.Root, dump.FormatSpeech)
	}
	return item
}

// matchesQuery checks if the item matches all search words
func (item *docItem) matchesQuery(words []string) bool {
	for _, word := range words {
		if !item.containsWord(word) {
			return false
		}
	}
	return true
}

// containsWord checks if any field contains the word (case-insensitive)
func (item *docItem) containsWord(word string) bool {
	for _, field := range []string{item.folder, item.file, item.doc.Header, item.doc.Description, item.speech} {
		if strings.Contains(strings.ToLower(field), word) {
			return true
		}
	}
	return false
}

// ============================================================================
// Debounce
// ============================================================================

// filterMsg triggers filtering after debounce
type filterMsg struct{}

func debounceFilter() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return filterMsg{}
	})
}

// ============================================================================
// Main Model
// ============================================================================

// maxResults caps the filtered list to keep rendering fast
const maxResults = 1000

// previewLines is the fixed height of the preview pane
const previewLines = 8

// mainModel is the Bubble Tea model for browsing documents
type mainModel struct {
	width     int
	height    int
	textInput textinput.Model
	quitting  bool

	docs     []docItem
	filtered []docItem
	cursor   int
	offset   int // viewport scroll offset
	format   dump.Format
	selected *catalog.Document
}

func newMainModel(docs []*catalog.Document, format dump.Format) mainModel {
	ti := textinput.New()
	ti.Placeholder = "Type to search..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	items := make([]docItem, len(docs))
	for i, doc := range docs {
		items[i] = newDocItem(doc)
	}

	return mainModel{
		docs:      items,
		filtered:  items,
		textInput: ti,
		format:    format,
	}
}

// Init implements tea.Model
func (m mainModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 4
		m.adjustOffset()
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	case filterMsg:
		m.filterDocs()
		return m, nil
	}

	prevQuery := m.textInput.Value()
	var tiCmd tea.Cmd
	m.textInput, tiCmd = m.textInput.Update(msg)
	cmds = append(cmds, tiCmd)

	// Only trigger debounced filter if query changed
	if m.textInput.Value() != prevQuery {
		cmds = append(cmds, debounceFilter())
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes navigation keys. Unhandled keys go to the text input.
func (m *mainModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return tea.Quit, true
	case "enter":
		if m.cursor < len(m.filtered) && m.filtered[m.cursor].doc.Valid() {
			m.selected = m.filtered[m.cursor].doc
			return tea.Quit, true
		}
		return nil, true
	case "tab":
		m.format = m.format.Next()
	case "up", "ctrl+p":
		m.moveCursor(-1)
	case "down", "ctrl+n":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-10)
	case "pgdown":
		m.moveCursor(10)
	case "home", "ctrl+a":
		m.moveCursor(-len(m.filtered))
	case "end", "ctrl+e":
		m.moveCursor(len(m.filtered))
	default:
		return nil, false
	}
	return nil, true
}

// moveCursor moves the cursor by delta, clamping to valid range
func (m *mainModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(0, len(m.filtered)-1))
	m.adjustOffset()
}

// adjustOffset keeps the cursor inside the list viewport. View has a value
// receiver, so the offset must be settled here rather than while rendering.
func (m *mainModel) adjustOffset() {
	scrollWindow(m.cursor, len(m.filtered), m.listHeight(), &m.offset)
}

// listHeight is the number of list rows left after the preview pane,
// its divider and the input section
func (m *mainModel) listHeight() int {
	return max(max(m.height, 24)-(previewLines+1)-3, 3)
}

// filterDocs filters the document list based on the search query
func (m *mainModel) filterDocs() {
	query := strings.TrimSpace(m.textInput.Value())

	if query == "" {
		m.filtered = m.docs
	} else {
		words := strings.Fields(strings.ToLower(query))
		m.filtered = make([]docItem, 0, min(len(m.docs), maxResults))
		for i := range m.docs {
			if m.docs[i].matchesQuery(words) {
				m.filtered = append(m.filtered, m.docs[i])
				if len(m.filtered) >= maxResults {
					break
				}
			}
		}
	}

	m.cursor = clamp(m.cursor, 0, max(0, len(m.filtered)-1))
	m.adjustOffset()
}

// ============================================================================
// Rendering
// ============================================================================

// View implements tea.Model
func (m mainModel) View() string {
	if m.quitting {
		return ""
	}

	width := max(m.width, 80)
	height := max(m.height, 24)

	preview := m.renderPreview(width)
	inputLines := 3 // divider + info + input
	list := m.renderList(m.listHeight(), width)

	padding := max(height-countLines(preview)-countLines(list)-inputLines, 0)

	b := getBuilder()
	defer putBuilder(b)
	b.WriteString(preview)
	b.WriteString(list)
	b.WriteString(strings.Repeat("\n", padding))
	b.WriteString(m.renderInput(width))
	return b.String()
}

// renderPreview renders the selected document in the current format
func (m mainModel) renderPreview(width int) string {
	b := getBuilder()
	defer putBuilder(b)
	lines := 0

	if m.cursor < len(m.filtered) {
		item := m.filtered[m.cursor]
		b.WriteString(styles.Path.Render(item.folder+"/"+item.file) + " " + styles.Header.Render(item.doc.Header))
		b.WriteString(styles.Dim.Render(" [" + string(m.format) + "]"))
		b.WriteString("\n")
		lines++

		if item.doc.Description != "" {
			b.WriteString(styles.Desc.Render(truncateLines(item.doc.Description, 1, width)))
			b.WriteString("\n")
			lines++
		}

		body, style := m.previewBody(item)
		body = truncateLines(body, previewLines-lines, 0)
		b.WriteString(style.Render(body))
		b.WriteString("\n")
		lines += countLines(body)
	}

	for lines < previewLines {
		b.WriteString("\n")
		lines++
	}

	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	return b.String()
}

// previewBody returns the preview text and its style
func (m mainModel) previewBody(item docItem) (string, lipgloss.Style) {
	if !item.doc.Valid() {
		return item.doc.Location() + ": " + item.doc.Err.Error(), styles.Error
	}
	if m.format == dump.FormatSpeech {
		return item.speech, styles.Speech
	}
	out, err := dump.Render(item.doc.Root, m.format)
	if err != nil {
		return err.Error(), styles.Error
	}
	return out, styles.Markup
}

// renderList renders the scrollable list of documents
func (m *mainModel) renderList(maxHeight, width int) string {
	if len(m.filtered) == 0 {
		return ""
	}

	start, end := scrollWindow(m.cursor, len(m.filtered), maxHeight, &m.offset)

	b := getBuilder()
	defer putBuilder(b)
	for i := start; i < end; i++ {
		b.WriteString(m.renderListItem(m.filtered[i], i == m.cursor, width))
		b.WriteString("\n")
	}
	return b.String()
}

// renderListItem renders a single list row: status, location, header, speech
func (m mainModel) renderListItem(item docItem, selected bool, width int) string {
	status := styles.Speech.Render("✓")
	summary := item.speech
	if !item.doc.Valid() {
		status = styles.Error.Render("✗")
		summary = item.doc.Err.Error()
	}

	label := truncateString(item.folder+"/"+item.file+" "+item.doc.Header, 40)
	line := fmt.Sprintf("%-40s  %s", label, truncateString(firstLine(summary), max(width-48, 10)))
	if selected {
		return styles.Cursor.Render("▶ ") + status + " " + styles.Selected.Render(line)
	}
	return "  " + status + " " + line
}

// renderInput renders the input section at the bottom
func (m mainModel) renderInput(width int) string {
	b := getBuilder()
	defer putBuilder(b)
	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(styles.Dim.Render(fmt.Sprintf("  %d/%d", len(m.filtered), len(m.docs))))
	b.WriteString(" • ")
	b.WriteString(styles.Dim.Render("Tab format"))
	b.WriteString(" • ")
	b.WriteString(styles.Dim.Render("Enter output"))
	b.WriteString(" • ")
	b.WriteString(styles.Dim.Render("ESC exit"))
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	return b.String()
}

// ============================================================================
// Helpers
// ============================================================================

// clamp restricts v to the range [minV, maxV]
func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// countLines counts the number of lines in a string
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(s, "\n"), "\n") + 1
}

// scrollWindow calculates the visible range for a scrollable list
func scrollWindow(cursor, total, height int, offset *int) (start, end int) {
	if cursor < *offset {
		*offset = cursor
	}
	if cursor >= *offset+height {
		*offset = cursor - height + 1
	}
	maxOffset := max(0, total-height)
	*offset = clamp(*offset, 0, maxOffset)

	start = *offset
	end = min(start+height, total)
	return
}

// firstLine returns the first line of a string
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// truncateString truncates a string to maxLen runes with ellipsis
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 3 || len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// truncateLines truncates text to maxLines with optional maxLen per content
func truncateLines(text string, maxLines int, maxLen int) string {
	lines := strings.Split(text, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		text = strings.Join(lines[:maxLines], "\n") + "..."
	}
	if maxLen > 3 && len(text) > maxLen {
		text = truncateString(text, maxLen)
	}
	return text
}
