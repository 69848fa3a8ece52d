package app

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"vacancystats/internal/errors"
	"vacancystats/pkg/contracts/domain"
)

// Prompt texts
const (
	FilePrompt       = "Введите название файла: "
	ProfessionPrompt = "Введите название профессии: "
	ModePrompt       = "Вывод (document, chart, spreadsheet): "
)

// Prompter asks questions on w and reads one line answers from r.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter. Reuse one prompter for a session so that
// buffered input is not lost between questions.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w}
}

// Ask prints label and returns the trimmed answer. An answer cut short by
// end of input is still returned; io.EOF is only reported when nothing was
// read.
func (p *Prompter) Ask(label string) (string, error) {
	if _, err := fmt.Fprint(p.out, label); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Mode asks for one of the interactive output modes. Any other answer
// returns an error wrapping ErrUnknownMode.
func (p *Prompter) Mode() (domain.OutputMode, error) {
	answer, err := p.Ask(ModePrompt)
	if err != nil && err != io.EOF {
		return "", err
	}
	mode, ok := domain.ParseOutputMode(answer)
	if !ok || !slices.Contains(domain.InteractiveModes, mode) {
		return "", errors.NewUnknownModeError(answer)
	}
	return mode, nil
}
