package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// CommandEngine runs the tesseract executable once per image.
//
// The image is piped on stdin and the text read from stdout, so nothing
// touches the filesystem.
type CommandEngine struct {
	path   string
	opts   Options
	closed bool
}

// NewCommandFactory resolves o.Binary on PATH and returns a factory of
// CommandEngines.
//
// Returns an error wrapping ErrNotAvailable if the binary cannot be found.
func NewCommandFactory(o Options) (Factory, error) {
	o = o.withDefaults()
	path, err := exec.LookPath(o.Binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found: %v", ErrNotAvailable, o.Binary, err)
	}
	return func() (Engine, error) {
		return &CommandEngine{path: path, opts: o}, nil
	}, nil
}

// Args returns the command line passed to tesseract, without the program name.
func (e *CommandEngine) Args() []string {
	return []string{
		"stdin", "stdout",
		"-l", e.opts.Language,
		"--psm", strconv.Itoa(e.opts.PageSegMode),
	}
}

// Recognize implements Engine.
func (e *CommandEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	if e.closed {
		return "", fmt.Errorf("%w: engine already closed", ErrEngine)
	}
	if len(image) == 0 {
		return "", fmt.Errorf("%w: empty image", ErrEngine)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.path, e.Args()...)
	cmd.Stdin = bytes.NewReader(image)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %w", ErrEngine, ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && msg != "" {
			return "", fmt.Errorf("%w: tesseract exited with %d: %s", ErrEngine, exitErr.ExitCode(), msg)
		}
		return "", fmt.Errorf("%w: %w", ErrEngine, err)
	}
	return stdout.String(), nil
}

// Close implements Engine. The process has already exited by the time
// Recognize returns, so Close only marks the engine unusable.
func (e *CommandEngine) Close() error {
	if e.closed {
		return fmt.Errorf("%w: engine closed twice", ErrEngine)
	}
	e.closed = true
	return nil
}

// commandVersion returns the first line of `tesseract --version`.
func commandVersion(path string) (string, error) {
	out, err := exec.Command(path, "--version").CombinedOutput()
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line), nil
}
