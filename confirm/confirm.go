package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

type IConfirmer interface {
	Confirm(target string, action string) (bool, error)
}

// PromptConfirmer asks on Out and reads a single answer line from In.
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer
	// IsTerminal reports whether In is interactive. When it is not and no
	// answer can be read, the prompt declines.
	IsTerminal bool
	Logger     *logrus.Logger
}

func NewPromptConfirmer(logger *logrus.Logger) *PromptConfirmer {
	return &PromptConfirmer{
		In:         os.Stdin,
		Out:        os.Stderr,
		IsTerminal: term.IsTerminal(int(os.Stdin.Fd())),
		Logger:     logger,
	}
}

func (prompt *PromptConfirmer) Confirm(target string, action string) (bool, error) {
	fmt.Fprintf(prompt.Out, "Are you sure you want to perform %q on target %q? [y/N]: ", action, target)

	answer, err := bufio.NewReader(prompt.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	if errors.Is(err, io.EOF) && answer == "" {
		fmt.Fprintln(prompt.Out)
		if !prompt.IsTerminal {
			prompt.Logger.Warn("No confirmation available on a non-interactive input, use --force to skip the prompt")
		}
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

type ForceConfirmer struct {
	Logger *logrus.Logger
}

func (force *ForceConfirmer) Confirm(target string, action string) (bool, error) {
	force.Logger.Debugf("Skipping confirmation for %q on target %q", action, target)
	return true, nil
}

type WhatIfConfirmer struct {
	Logger *logrus.Logger
}

func (whatIf *WhatIfConfirmer) Confirm(target string, action string) (bool, error) {
	whatIf.Logger.Infof("What if: Performing the operation %q on target %q.", action, target)
	return false, nil
}
