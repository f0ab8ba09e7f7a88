// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package uiutil

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

var InterruptErr = terminal.InterruptErr

// Prompter asks the user for input.
type Prompter interface {
	// Input asks for a line of text. An empty answer yields defaultValue.
	Input(message, defaultValue string) (string, error)
	// Confirm asks a yes/no question.
	Confirm(message string, defaultValue bool) (bool, error)
}

// Survey is a Prompter for interactive terminals.
type Survey struct {
	opts []survey.AskOpt
}

func NewSurvey(opts ...survey.AskOpt) *Survey {
	return &Survey{opts: opts}
}

func (s *Survey) Input(message, defaultValue string) (string, error) {
	var ans string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &ans, s.opts...); err != nil {
		return "", err
	}
	return ans, nil
}

func (s *Survey) Confirm(message string, defaultValue bool) (bool, error) {
	ans := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &ans, s.opts...); err != nil {
		return false, err
	}
	return ans, nil
}

// LineReader is a Prompter that reads one answer per line.
// It is used with --tty=false, and with scripted answers in tests.
type LineReader struct {
	r *bufio.Reader
	w io.Writer
}

func NewLineReader(r io.Reader, w io.Writer) *LineReader {
	return &LineReader{r: bufio.NewReader(r), w: w}
}

func (l *LineReader) readLine() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (l *LineReader) Input(message, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(l.w, "%s [%s]: ", message, defaultValue)
	} else {
		fmt.Fprintf(l.w, "%s: ", message)
	}
	ans, err := l.readLine()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(ans) == "" {
		return defaultValue, nil
	}
	return ans, nil
}

func (l *LineReader) Confirm(message string, defaultValue bool) (bool, error) {
	hint := "y/N"
	if defaultValue {
		hint = "Y/n"
	}
	fmt.Fprintf(l.w, "%s (%s) ", message, hint)
	ans, err := l.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(ans)) {
	case "":
		return defaultValue, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
