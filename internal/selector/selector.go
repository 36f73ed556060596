// Package selector asks the user to pick one of several options.
package selector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

var (
	ErrInvalidSelection    = errors.New("selection is not a number")
	ErrSelectionOutOfRange = errors.New("selection is out of range")
	ErrSelectionCancelled  = errors.New("selection cancelled")
)

// Selector returns the 0-based index of the chosen option.
type Selector interface {
	Select(options []string) (int, error)
}

// PromptSelector lists the options on Out and reads a 1-based choice from In.
type PromptSelector struct {
	In     io.Reader
	Out    io.Writer
	Prompt string
}

const defaultPrompt = "Please select a city to monitor for weather updates"

var promptColor = color.New(color.FgGreen).SprintFunc()

func NewPromptSelector(in io.Reader, out io.Writer) *PromptSelector {
	return &PromptSelector{In: in, Out: out, Prompt: defaultPrompt}
}

// Select blocks until one line is read. The line is not re-asked on bad input.
func (p *PromptSelector) Select(options []string) (int, error) {
	for i, opt := range options {
		fmt.Fprintf(p.Out, "%d. %s\n", i+1, opt)
	}
	prompt := p.Prompt
	if prompt == "" {
		prompt = defaultPrompt
	}
	fmt.Fprintln(p.Out, promptColor(prompt))

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: %v", ErrSelectionCancelled, err)
	}
	input := strings.TrimSpace(line)
	if input == "" && errors.Is(err, io.EOF) {
		return 0, ErrSelectionCancelled
	}

	return parseChoice(input, len(options))
}

// parseChoice converts a 1-based answer into a checked 0-based index.
func parseChoice(input string, n int) (int, error) {
	num, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSelection, input)
	}
	if num < 1 || num > n {
		return 0, fmt.Errorf("%w: %d is not between 1 and %d", ErrSelectionOutOfRange, num, n)
	}
	return num - 1, nil
}
