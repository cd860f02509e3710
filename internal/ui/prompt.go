package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt aborted")

// SelectConfig configures a single-choice prompt.
type SelectConfig struct {
	Message     string
	Options     []string
	Description func(index int) string
	Default     int
	PageSize    int
}

// Prompter asks the user to pick among options. It returns the chosen index.
type Prompter interface {
	Select(cfg SelectConfig) (int, error)
}

// NewPrompter returns a survey-backed prompter when in and out are
// terminals, and a numbered-menu prompter otherwise.
func NewPrompter(in io.Reader, out io.Writer) Prompter {
	if isTerminal(in) && isTerminal(out) {
		return SurveyPrompter{}
	}
	return NewLinePrompter(in, out)
}

// SurveyPrompter prompts with an arrow-key menu.
type SurveyPrompter struct{}

func (SurveyPrompter) Select(cfg SelectConfig) (int, error) {
	if len(cfg.Options) == 0 {
		return 0, errors.New("nothing to select")
	}
	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
	}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if cfg.Default >= 0 && cfg.Default < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.Default]
	}
	if cfg.Description != nil {
		prompt.Description = func(_ string, index int) string { return cfg.Description(index) }
	}

	var out int
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return 0, ErrAborted
		}
		return 0, err
	}
	return out, nil
}

// LinePrompter presents a numbered list and reads the choice from a line of
// input. It works with pipes and scripted input.
type LinePrompter struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewLinePrompter reads from r and writes the menu to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{reader: bufio.NewReader(r), w: w}
}

// Select prints the options and returns the selected index. An empty line
// picks the default.
func (p *LinePrompter) Select(cfg SelectConfig) (int, error) {
	items := cfg.Options
	if len(items) == 0 {
		return 0, errors.New("nothing to select")
	}

	fmt.Fprintf(p.w, "\n%s\n", cfg.Message)
	for i, item := range items {
		line := fmt.Sprintf("  %d) %s", i+1, item)
		if cfg.Description != nil {
			if d := cfg.Description(i); d != "" {
				line += " - " + d
			}
		}
		fmt.Fprintln(p.w, line)
	}
	fmt.Fprintf(p.w, "Enter number [1-%d]: ", len(items))

	line, err := p.reader.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		if errors.Is(err, io.EOF) {
			return 0, ErrAborted
		}
		return 0, fmt.Errorf("reading selection: %w", err)
	}

	choice := strings.TrimSpace(line)
	if choice == "" && cfg.Default >= 0 && cfg.Default < len(items) {
		return cfg.Default, nil
	}
	num, err := strconv.Atoi(choice)
	if err != nil || num < 1 || num > len(items) {
		return 0, fmt.Errorf("invalid selection %q: choose 1-%d", choice, len(items))
	}
	return num - 1, nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
