package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/gubarz/ssmlkit/internal/config"
)

// ============================================================================
// Speaker Interface
// ============================================================================

// Speaker reads text aloud
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// shellSpeaker pipes text into a TTS command run through a shell
type shellSpeaker struct {
	shell   string
	command string
}

// Speak runs the TTS command with text on stdin
func (s *shellSpeaker) Speak(ctx context.Context, text string) error {
	if s.command == "" {
		return fmt.Errorf("no text-to-speech command found (set tts_command)")
	}
	cmd := exec.CommandContext(ctx, s.shell, "-c", s.command)
	cmd.Stdin = strings.NewReader(text)
	cmd.Env = os.Environ()

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tts failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// ttsCandidates are tried in order when no tts_command is configured.
// Each reads the text to speak from stdin.
var ttsCandidates = []struct {
	binary  string
	command string
}{
	{"say", "say -f -"},
	{"espeak-ng", "espeak-ng --stdin"},
	{"espeak", "espeak --stdin"},
	{"spd-say", "spd-say -e"},
}

// DetectTTSCommand returns the first available TTS command, or ""
func DetectTTSCommand() string {
	for _, c := range ttsCandidates {
		if commandExists(c.binary) {
			return c.command
		}
	}
	return ""
}

// ============================================================================
// Clipboard Interface
// ============================================================================

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
}

// systemClipboard implements Clipboard using system commands
type systemClipboard struct {
	fallback io.Writer
}

// Copy copies text to the system clipboard
func (c *systemClipboard) Copy(text string) error {
	cmd := c.findClipboardCommand()
	if cmd == nil {
		// No clipboard tool found, just print
		_, err := fmt.Fprintln(c.fallback, text)
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// findClipboardCommand returns the appropriate clipboard command for the system
func (c *systemClipboard) findClipboardCommand() *exec.Cmd {
	switch {
	case commandExists("wl-copy"):
		return exec.Command("wl-copy")
	case commandExists("xclip"):
		return exec.Command("xclip", "-selection", "clipboard")
	case commandExists("xsel"):
		return exec.Command("xsel", "--clipboard", "--input")
	case commandExists("pbcopy"):
		return exec.Command("pbcopy")
	default:
		return nil
	}
}

// commandExists checks if a command is available in PATH
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// ============================================================================
// Executor
// ============================================================================

// OutputMode represents how rendered text should be handled
type OutputMode string

const (
	OutputPrint OutputMode = "print"
	OutputCopy  OutputMode = "copy"
	OutputSpeak OutputMode = "speak"
)

// ParseOutputMode validates a mode name
func ParseOutputMode(s string) (OutputMode, error) {
	switch mode := OutputMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case OutputPrint, OutputCopy, OutputSpeak:
		return mode, nil
	case "":
		return OutputPrint, nil
	default:
		return "", fmt.Errorf("unknown output mode %q (supported: print, copy, speak)", s)
	}
}

// Executor delivers rendered text to stdout, the clipboard or a speaker
type Executor struct {
	out       io.Writer
	speaker   Speaker
	clipboard Clipboard
}

// NewExecutor creates an executor from the current configuration
func NewExecutor() *Executor {
	command := config.GetTTSCommand()
	if command == "" {
		command = DetectTTSCommand()
	}
	return &Executor{
		out:       os.Stdout,
		speaker:   &shellSpeaker{shell: config.GetShell(), command: command},
		clipboard: &systemClipboard{fallback: os.Stdout},
	}
}

// WithClipboard sets a custom clipboard implementation (useful for testing)
func (e *Executor) WithClipboard(c Clipboard) *Executor {
	e.clipboard = c
	return e
}

// WithSpeaker sets a custom speaker implementation (useful for testing)
func (e *Executor) WithSpeaker(s Speaker) *Executor {
	e.speaker = s
	return e
}

// WithOutput redirects printed text
func (e *Executor) WithOutput(w io.Writer) *Executor {
	e.out = w
	return e
}

// Output handles text based on the configured mode
func (e *Executor) Output(ctx context.Context, text string) error {
	mode, err := ParseOutputMode(config.GetOutput())
	if err != nil {
		return err
	}
	return e.OutputWithMode(ctx, text, mode)
}

// OutputWithMode handles text with an explicit mode
func (e *Executor) OutputWithMode(ctx context.Context, text string, mode OutputMode) error {
	switch mode {
	case OutputSpeak:
		return e.speaker.Speak(ctx, text)
	case OutputCopy:
		return e.clipboard.Copy(text)
	default: // print
		_, err := fmt.Fprintln(e.out, text)
		return err
	}
}
