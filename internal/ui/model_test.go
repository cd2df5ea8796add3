package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gubarz/ssmlkit/internal/catalog"
	"github.com/gubarz/ssmlkit/internal/dump"
	"github.com/gubarz/ssmlkit/internal/ssml"
)

func testDocs() []*catalog.Document {
	return []*catalog.Document{
		{
			File:   "/snippets/greetings/hello.md",
			Header: "Hello",
			Root:   ssml.MustParse(`<speak>Hello <break time="1s"/> world</speak>`),
		},
		{
			File:   "/snippets/numbers/phone.ssml",
			Header: "Phone",
			Root:   ssml.MustParse(`<speak><say-as interpret-as="characters">911</say-as></speak>`),
		},
		{
			File:   "/snippets/broken/oops.ssml",
			Header: "Oops",
			Err:    errors.New("1:1: missing root: no speak element"),
		},
	}
}

func TestNewDocItem(t *testing.T) {
	docs := testDocs()

	item := newDocItem(docs[0])
	if item.folder != "greetings" || item.file != "hello" {
		t.Errorf("expected greetings/hello, got %s/%s", item.folder, item.file)
	}
	if item.speech != "Hello [1 second pause] world" {
		t.Errorf("unexpected speech %q", item.speech)
	}

	if broken := newDocItem(docs[2]); broken.speech != "" {
		t.Errorf("expected no speech for invalid document, got %q", broken.speech)
	}
}

func TestFilterDocs(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Hello", "Phone", "Oops"}},
		{"hello", []string{"Hello"}},
		{"9 1 1", []string{"Phone"}},
		{"NUMBERS phone", []string{"Phone"}},
		{"pause", []string{"Hello"}},
		{"nothing-matches", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			m := newMainModel(testDocs(), dump.FormatSpeech)
			m.textInput.SetValue(tt.query)
			m.filterDocs()

			var got []string
			for _, item := range m.filtered {
				got = append(got, item.doc.Header)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("query %q: expected %v, got %v", tt.query, tt.want, got)
			}
		})
	}
}

func TestHandleKey(t *testing.T) {
	t.Run("tab cycles format", func(t *testing.T) {
		m := newMainModel(testDocs(), dump.FormatSpeech)
		for _, want := range []dump.Format{dump.FormatMarkup, dump.FormatTree, dump.FormatSpeech} {
			if _, handled := m.handleKey(tea.KeyMsg{Type: tea.KeyTab}); !handled {
				t.Fatal("expected tab to be handled")
			}
			if m.format != want {
				t.Errorf("expected %s, got %s", want, m.format)
			}
		}
	})

	t.Run("enter selects valid document", func(t *testing.T) {
		m := newMainModel(testDocs(), dump.FormatSpeech)
		m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
		cmd, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd == nil {
			t.Error("expected quit command")
		}
		if m.selected == nil || m.selected.Header != "Phone" {
			t.Errorf("expected Phone selected, got %+v", m.selected)
		}
	})

	t.Run("enter ignores invalid document", func(t *testing.T) {
		m := newMainModel(testDocs(), dump.FormatSpeech)
		m.handleKey(tea.KeyMsg{Type: tea.KeyEnd})
		cmd, handled := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
		if !handled || cmd != nil {
			t.Error("expected enter to be swallowed")
		}
		if m.selected != nil {
			t.Errorf("expected no selection, got %s", m.selected.Header)
		}
	})

	t.Run("cursor clamps", func(t *testing.T) {
		m := newMainModel(testDocs(), dump.FormatSpeech)
		m.handleKey(tea.KeyMsg{Type: tea.KeyPgDown})
		if m.cursor != 2 {
			t.Errorf("expected cursor 2, got %d", m.cursor)
		}
		m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
		m.handleKey(tea.KeyMsg{Type: tea.KeyPgUp})
		if m.cursor != 0 {
			t.Errorf("expected cursor 0, got %d", m.cursor)
		}
	})

	t.Run("esc quits", func(t *testing.T) {
		m := newMainModel(testDocs(), dump.FormatSpeech)
		m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
		if !m.quitting || m.View() != "" {
			t.Error("expected quitting model with empty view")
		}
	})

	t.Run("runes go to input", func(t *testing.T) {
		m := newMainModel(testDocs(), dump.FormatSpeech)
		if _, handled := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")}); handled {
			t.Error("expected rune key to fall through")
		}
	})
}

func manyDocs(n int) []*catalog.Document {
	root := ssml.MustParse("<speak>hi</speak>")
	docs := make([]*catalog.Document, n)
	for i := range docs {
		docs[i] = &catalog.Document{File: fmt.Sprintf("/snippets/doc%02d.ssml", i), Header: fmt.Sprintf("Doc %02d", i), Root: root}
	}
	return docs
}

func TestScrollOffsetPersists(t *testing.T) {
	m := newMainModel(manyDocs(30), dump.FormatSpeech)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(mainModel)
	rows := m.listHeight()

	for i := 0; i < 20; i++ {
		m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	}
	if want := 20 - rows + 1; m.offset != want {
		t.Fatalf("expected offset %d after scrolling down, got %d", want, m.offset)
	}
	before := m.offset

	// moving up inside the viewport must not shift the window
	m.View()
	m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	if m.offset != before {
		t.Errorf("expected offset to stay %d, got %d", before, m.offset)
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeyHome})
	if m.cursor != 0 || m.offset != 0 {
		t.Errorf("expected cursor and offset 0 after home, got %d/%d", m.cursor, m.offset)
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeyEnd})
	if m.cursor != 29 || m.offset != 30-rows {
		t.Errorf("expected cursor 29 offset %d after end, got %d/%d", 30-rows, m.cursor, m.offset)
	}

	m.textInput.SetValue("doc 0")
	m.filterDocs()
	if m.offset != 0 {
		t.Errorf("expected offset reset after filtering to %d rows, got %d", len(m.filtered), m.offset)
	}
}

func TestPreviewBody(t *testing.T) {
	m := newMainModel(testDocs(), dump.FormatMarkup)

	body, _ := m.previewBody(m.docs[0])
	if body != `<speak>Hello <break time="1s"></break> world</speak>` {
		t.Errorf("unexpected markup preview %q", body)
	}

	body, _ = m.previewBody(m.docs[2])
	if !strings.HasPrefix(body, "/snippets/broken/oops.ssml:0: ") {
		t.Errorf("expected location prefix, got %q", body)
	}
}

func TestFilterDocuments(t *testing.T) {
	docs := testDocs()
	if got := filterDocuments(docs, false); len(got) != 3 {
		t.Errorf("expected all documents, got %d", len(got))
	}
	if got := filterDocuments(docs, true); len(got) != 2 {
		t.Errorf("expected 2 valid documents, got %d", len(got))
	}
}

func TestScrollWindow(t *testing.T) {
	tests := []struct {
		name               string
		cursor, total, h   int
		offset             int
		wantStart, wantEnd int
	}{
		{"fits", 0, 3, 10, 0, 0, 3},
		{"scroll down", 12, 20, 5, 0, 8, 13},
		{"scroll up", 2, 20, 5, 8, 2, 7},
		{"clamp offset", 19, 20, 5, 30, 15, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset := tt.offset
			start, end := scrollWindow(tt.cursor, tt.total, tt.h, &offset)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("expected [%d,%d), got [%d,%d)", tt.wantStart, tt.wantEnd, start, end)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"hello world", 8, "hello..."},
		{"héllo wörld", 8, "héllo..."},
		{"abc", 2, "abc"},
	}

	for _, tt := range tests {
		if got := truncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestCountLines(t *testing.T) {
	if countLines("") != 0 || countLines("a") != 1 || countLines("a\nb\n") != 2 {
		t.Error("unexpected line counts")
	}
}
