package ffprobe

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	coreerrors "github.com/five82/mediameta/internal/errors"
	"github.com/five82/mediameta/internal/logging"
	"github.com/five82/mediameta/internal/media"
)

// samplePackets bounds how much of the stream a frame sampling run reads.
const samplePackets = 30

// frameReader streams one interlace flag per decoded frame from an ffprobe
// process. Closing it before the stream ends kills the process.
type frameReader struct {
	ctx     context.Context
	binary  string
	cmd     *exec.Cmd
	scanner *bufio.Scanner
	stderr  *bytes.Buffer

	mu       sync.Mutex
	finished bool
	err      error
}

// startFrameReader launches ffprobe decoding stream index of path.
func startFrameReader(ctx context.Context, binary, path string, index int) (*frameReader, error) {
	args := []string{
		"-v", "error",
		"-select_streams", fmt.Sprint(index),
		"-read_intervals", fmt.Sprintf("%%+#%d", samplePackets),
		"-show_entries", "frame=interlaced_frame",
		"-of", "csv=p=0",
		path,
	}
	logging.Debug("Starting frame sampler", "binary", binary, "stream", index)

	cmd := exec.CommandContext(ctx, binary, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, coreerrors.NewCommandStartError(binary, fmt.Errorf("failed to get stdout pipe: %w", err))
	}
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, coreerrors.NewCommandStartError(binary, err)
	}

	r := newFrameReader(stdout)
	r.ctx = ctx
	r.binary = binary
	r.cmd = cmd
	r.stderr = stderr
	return r, nil
}

func newFrameReader(r io.Reader) *frameReader {
	return &frameReader{ctx: context.Background(), scanner: bufio.NewScanner(r)}
}

// Next returns the next frame sample. A line that does not carry a flag
// counts as an undecodable frame.
func (r *frameReader) Next() (media.Frame, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return media.Frame{}, coreerrors.NewIOError("reading frame samples", err)
		}
		if err := r.wait(); err != nil {
			return media.Frame{}, err
		}
		return media.Frame{}, io.EOF
	}

	line := strings.TrimSpace(strings.TrimSuffix(r.scanner.Text(), ","))
	switch line {
	case "1":
		return media.Frame{Interlaced: true}, nil
	case "0":
		return media.Frame{}, nil
	default:
		return media.Frame{}, media.ErrFrameUndecodable
	}
}

// wait reaps the process once stdout is drained.
func (r *frameReader) wait() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finished || r.cmd == nil {
		r.finished = true
		return r.err
	}
	r.finished = true

	if err := r.cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		switch {
		case r.ctx.Err() != nil:
			r.err = coreerrors.NewCancelledError()
		case errors.As(err, &exitErr):
			r.err = coreerrors.WrapExecError(r.binary, err, strings.TrimSpace(r.stderr.String()))
		default:
			r.err = coreerrors.NewCommandWaitError(r.binary, err)
		}
	}
	return r.err
}

// Close stops the process if it is still running.
func (r *frameReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finished || r.cmd == nil {
		r.finished = true
		return nil
	}
	r.finished = true

	if r.cmd.Process != nil {
		if err := r.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			logging.Warn("Failed to stop frame sampler", "error", err)
		}
	}
	// Wait reports the kill; the samples already read stand.
	_ = r.cmd.Wait()
	return nil
}
