package editor

import (
	"fmt"
	"os"
	"os/exec"
)

// Opener shows rendered reports in the user's editor or pager
type Opener struct {
	// lookup resolves environment variables; replaced in tests
	lookup func(string) string
	// lookPath resolves executables on $PATH; replaced in tests
	lookPath func(string) (string, error)
}

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{lookup: os.Getenv, lookPath: exec.LookPath}
}

// WriteReport stores a report in a temporary file and returns its path.
// The caller removes the file once the editor exits.
func (o *Opener) WriteReport(text string) (string, error) {
	f, err := os.CreateTemp("", "lcatrace-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write report file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write report file: %w", err)
	}
	return f.Name(), nil
}

// Command returns an exec.Cmd opening path in the editor.
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	program := o.findProgram()
	if program == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR or $PAGER")
	}

	cmd := exec.Command(program, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findProgram returns the program to use
func (o *Opener) findProgram() string {
	for _, env := range []string{"EDITOR", "VISUAL", "PAGER"} {
		if program := o.lookup(env); program != "" {
			return program
		}
	}

	// Try common viewers
	for _, program := range []string{"less", "nvim", "vim", "vi", "nano"} {
		if path, err := o.lookPath(program); err == nil {
			return path
		}
	}

	return ""
}
