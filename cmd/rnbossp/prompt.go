package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

var errCancelled = errors.New("cancelled")

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var (
	stdinIsTerminalFn           = stdinIsTerminal
	stdin             io.Reader = os.Stdin
)

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter() *prompter {
	return &prompter{in: bufio.NewReader(stdin), out: stdout}
}

func (p *prompter) line() (string, error) {
	s, err := p.in.ReadString('\n')
	if err != nil && (s == "" || !errors.Is(err, io.EOF)) {
		if errors.Is(err, io.EOF) {
			return "", errCancelled
		}
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// ask prints label and returns the answer, or def for an empty answer.
func (p *prompter) ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	s, err := p.line()
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// confirm asks until the answer is yes or no.
func (p *prompter) confirm(question string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s (yes/no): ", question)
		s, err := p.line()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(s) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please enter 'yes' or 'no'")
	}
}

// choose lists options and returns the picked one. "q" cancels.
func (p *prompter) choose(label string, options []string) (string, error) {
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, o)
	}
	for {
		fmt.Fprintf(p.out, "\n%s (1-%d) or 'q' to quit: ", label, len(options))
		s, err := p.line()
		if err != nil {
			return "", err
		}
		if strings.EqualFold(s, "q") {
			return "", errCancelled
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > len(options) {
			fmt.Fprintf(p.out, "Please enter a number between 1 and %d\n", len(options))
			continue
		}
		return options[n-1], nil
	}
}
