package reporter

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/five82/mediameta/internal/metadata"
)

// progressThreshold is the smallest file that gets a checksum progress bar.
const progressThreshold = 64 << 20

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ChecksumProgress returns a progress hook that draws a byte progress bar on
// w while large files are hashed.
func ChecksumProgress(w io.Writer) metadata.ProgressFunc {
	return func(path string, size int64) io.WriteCloser {
		if size < progressThreshold {
			return nopWriteCloser{}
		}
		bar := progressbar.NewOptions64(
			size,
			progressbar.OptionSetDescription("Hashing "+filepath.Base(path)),
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		return &barWriter{bar: bar}
	}
}

type barWriter struct {
	bar *progressbar.ProgressBar
}

func (b *barWriter) Write(p []byte) (int, error) {
	return b.bar.Write(p)
}

func (b *barWriter) Close() error {
	return b.bar.Finish()
}

type nopWriteCloser struct{}

func (nopWriteCloser) Write(p []byte) (int, error) { return len(p), nil }
func (nopWriteCloser) Close() error                { return nil }
