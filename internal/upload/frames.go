package upload

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

//go:generate go run go.uber.org/mock/mockgen -source=frames.go -destination=mocks/mock.go

// FrameExtractor writes a single JPEG still taken at offset into out.
type FrameExtractor interface {
	Extract(ctx context.Context, video string, offset time.Duration, out string) error
}

type FFmpegExtractor struct {
	path string
}

func NewFFmpegExtractor(path string) *FFmpegExtractor {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpegExtractor{path: path}
}

func (e *FFmpegExtractor) Extract(ctx context.Context, video string, offset time.Duration, out string) error {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-ss", strconv.FormatFloat(offset.Seconds(), 'f', 3, 64),
		"-i", video,
		"-frames:v", "1",
		"-q:v", "3",
		out,
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.path, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg frame at %s: %w: %s", offset, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}
