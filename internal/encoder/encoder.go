// Package encoder wraps the external w3strings executable. The tool is a
// black box: it takes a file path and flags, produces an output file next to
// the input, and reports progress on stdout with INFO/WARN/ERROR prefixes.
package encoder

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// forceFlag disables the encoder's built-in id range check. The spelling is
// the encoder's own.
const forceFlag = "--force-ignore-id-space-check-i-know-what-i-am-doing"

// Runner invokes the external encoder.
type Runner struct {
	path   string
	logger zerolog.Logger
}

// NewRunner creates a Runner for the executable at path. The logger receives
// the relayed encoder output.
func NewRunner(path string, logger zerolog.Logger) *Runner {
	return &Runner{path: path, logger: logger}
}

// Decode runs `w3strings -d <input>`, producing <input>.csv next to the
// input file.
func (r *Runner) Decode(ctx context.Context, input string) error {
	return r.run(ctx, "-d", input)
}

// Encode runs `w3strings -e <input>`, producing <input>.w3strings. A non-nil
// idSpace is passed through -i; a nil one disables the encoder's id range
// check entirely, which is required for tables carrying vanilla ids.
func (r *Runner) Encode(ctx context.Context, input string, idSpace *int) error {
	args := []string{"-e", input}
	if idSpace != nil {
		args = append(args, "-i", strconv.Itoa(*idSpace))
	} else {
		args = append(args, forceFlag)
	}

	if err := r.run(ctx, args...); err != nil {
		return err
	}

	// The encoder leaves a stray .ws file behind on every encode.
	if err := os.Remove(input + ".w3strings.ws"); err != nil && !os.IsNotExist(err) {
		r.logger.Warn().Err(err).Msg("Failed to remove encoder leftover file")
	}
	return nil
}

// run executes the encoder and blocks until it exits. Stdout is captured and
// relayed through the logger; stderr is uninformative and discarded. A
// non-zero exit is fatal.
func (r *Runner) run(ctx context.Context, args ...string) error {
	r.logger.Info().Str("cmd", r.path+" "+strings.Join(args, " ")).Msg("Invoking encoder")

	cmd := exec.CommandContext(ctx, r.path, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = nil

	err := cmd.Run()
	r.relay(&stdout)
	if err != nil {
		return fmt.Errorf("w3strings %s: %w", strings.Join(args, " "), err)
	}
	return nil
}

// relay forwards the encoder's own leveled log lines through ours.
func (r *Runner) relay(out *bytes.Buffer) {
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "ERROR"):
			r.logger.Error().Msg(strings.TrimSpace(strings.TrimPrefix(line, "ERROR")))
		case strings.HasPrefix(line, "WARN"):
			r.logger.Warn().Msg(strings.TrimSpace(strings.TrimPrefix(line, "WARN")))
		case strings.HasPrefix(line, "INFO"):
			r.logger.Info().Msg(strings.TrimSpace(strings.TrimPrefix(line, "INFO")))
		default:
			r.logger.Debug().Msg(line)
		}
	}
}
