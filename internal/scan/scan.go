// Package scan classifies the primary video stream as progressive or
// interlaced.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"

	coreerrors "github.com/five82/mediameta/internal/errors"
	"github.com/five82/mediameta/internal/logging"
	"github.com/five82/mediameta/internal/media"
)

// MaxDecodedFrames caps the decode attempts of a deep scan.
const MaxDecodedFrames = 30

// Type is the scan type of a video stream.
type Type int

const (
	// Progressive is certain: declared by the header or confirmed by decoding.
	Progressive Type = iota + 1
	// LikelyProgressive means the header field order is unknown and no
	// frames were decoded.
	LikelyProgressive
	// Interlaced is declared by the header or seen on a decoded frame.
	Interlaced
)

func (t Type) String() string {
	switch t {
	case Progressive:
		return "Progressive scan"
	case LikelyProgressive:
		return "Progressive scan*"
	case Interlaced:
		return "Interlaced scan"
	default:
		return "Unknown scan"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Classify inspects the container's best video stream. ok is false when the
// container has no video stream. With decodeFrames set, an unknown header
// field order is resolved by decoding up to MaxDecodedFrames frames.
//
// A deep scan consumes frames from the stream; callers must not assume any
// read position afterwards.
func Classify(ctx context.Context, c media.Container, decodeFrames bool) (Type, bool, error) {
	s, ok := c.BestStream(media.Video)
	if !ok {
		return 0, false, nil
	}

	dec, err := s.VideoDecoder()
	if err != nil {
		if coreerrors.IsKind(err, coreerrors.KindCodecInit) {
			return 0, false, err
		}
		return 0, false, coreerrors.NewCodecInitError(s.Index(), err.Error())
	}

	order := dec.FieldOrder()
	logging.Debug("Video field order", "stream", s.Index(), "field_order", order)

	switch {
	case order == media.FieldProgressive:
		return Progressive, true, nil
	case order.Interlaced():
		return Interlaced, true, nil
	case !decodeFrames:
		return LikelyProgressive, true, nil
	}

	t, err := DeepScan(ctx, dec)
	if err != nil {
		return 0, false, fmt.Errorf("scanning frames of stream #%d: %w", s.Index(), err)
	}
	return t, true, nil
}

// DeepScan decodes up to MaxDecodedFrames frames and reports Interlaced on the
// first interlaced frame, Progressive otherwise. Undecodable frames count
// against the cap. A stream that ends early without an interlaced frame is
// Progressive.
func DeepScan(ctx context.Context, dec media.VideoDecoder) (Type, error) {
	frames, err := dec.Frames(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = frames.Close() }()

	decoded := 0
	attempts := 0
	for attempts < MaxDecodedFrames {
		if err := ctx.Err(); err != nil {
			return 0, coreerrors.NewCancelledError()
		}

		f, err := frames.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		attempts++
		if errors.Is(err, media.ErrFrameUndecodable) {
			continue
		}
		if err != nil {
			return 0, err
		}
		decoded++
		if f.Interlaced {
			logging.Debug("Interlaced frame found", "attempts", attempts, "decoded", decoded)
			return Interlaced, nil
		}
	}

	logging.Debug("Deep scan found no interlaced frames", "attempts", attempts, "decoded", decoded)
	return Progressive, nil
}
