// Package upload prepares a local video for posting: size check, candidate
// thumbnails, moderation pre-check and the final authenticated upload.
package upload

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/orgball2608/reels-client/internal/domain"
	"github.com/orgball2608/reels-client/internal/reels"
	"github.com/orgball2608/reels-client/internal/session"
	"github.com/orgball2608/reels-client/pkg/config"
	apperrors "github.com/orgball2608/reels-client/pkg/errors"
	"github.com/orgball2608/reels-client/pkg/formatter"
	"github.com/orgball2608/reels-client/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

var (
	ErrFileTooLarge  = errors.New("file too large")
	ErrTitleRequired = errors.New("title is required")
	ErrUnsafeContent = errors.New("video contains restricted content")
	ErrNoSuchFrame   = errors.New("no such frame")
)

const (
	defaultVideoType = "video/mp4"
	defaultFrame     = 1
)

// frameOffsets are the positions candidate thumbnails are taken from.
var frameOffsets = []time.Duration{1 * time.Second, 2 * time.Second, 3 * time.Second, 4 * time.Second}

type Opts struct {
	fx.In

	LC        fx.Lifecycle
	API       reels.Client
	Session   session.Reader
	Extractor FrameExtractor
	Config    *config.Config
	Logger    logger.Logger
}

type Service struct {
	api       reels.Client
	session   session.Reader
	extractor FrameExtractor
	logger    logger.Logger
	pool      *ants.Pool
	maxBytes  int64
}

func New(opts Opts) (*Service, error) {
	workers := opts.Config.Upload.Workers
	if workers <= 0 {
		workers = len(frameOffsets)
	}
	pool, err := ants.NewPool(workers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create frame pool: %w", err)
	}

	opts.LC.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Release()
			return nil
		},
	})

	return &Service{
		api:       opts.API,
		session:   opts.Session,
		extractor: opts.Extractor,
		logger:    opts.Logger.WithComponent("Upload"),
		pool:      pool,
		maxBytes:  opts.Config.Upload.MaxSizeMB * 1024 * 1024,
	}, nil
}

// Draft is a video waiting to be posted.
type Draft struct {
	Video     string
	Size      int64
	Frames    []string
	Thumbnail string

	dir string
}

func (d *Draft) SelectThumbnail(i int) error {
	if i < 0 || i >= len(d.Frames) {
		return fmt.Errorf("%w: %d of %d", ErrNoSuchFrame, i, len(d.Frames))
	}
	d.Thumbnail = d.Frames[i]
	return nil
}

func (d *Draft) UseCustomThumbnail(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to read thumbnail: %w", err)
	}
	d.Thumbnail = path
	return nil
}

// Discard removes extracted frames from disk.
func (d *Draft) Discard() {
	if d.dir != "" {
		_ = os.RemoveAll(d.dir)
		d.dir = ""
	}
}

// Prepare checks the size limit and extracts candidate thumbnails. Frames that
// cannot be extracted are skipped; a draft with no frames is still valid.
func (s *Service) Prepare(ctx context.Context, path string) (*Draft, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read video: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("failed to read video: %s is a directory", path)
	}
	if info.Size() > s.maxBytes {
		return nil, fmt.Errorf("%w: %s, limit is %s", ErrFileTooLarge,
			formatter.ByteSize(info.Size()), formatter.ByteSize(s.maxBytes))
	}

	dir, err := os.MkdirTemp("", "reels-frames-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create frame directory: %w", err)
	}

	draft := &Draft{Video: path, Size: info.Size(), dir: dir}
	draft.Frames = s.extractFrames(ctx, path, dir)
	switch {
	case len(draft.Frames) > defaultFrame:
		draft.Thumbnail = draft.Frames[defaultFrame]
	case len(draft.Frames) > 0:
		draft.Thumbnail = draft.Frames[0]
	}

	s.logger.Info("Video prepared", "path", path, "size", formatter.ByteSize(info.Size()), "frames", len(draft.Frames))
	return draft, nil
}

func (s *Service) extractFrames(ctx context.Context, video, dir string) []string {
	var wg sync.WaitGroup
	results := make([]string, len(frameOffsets))

	for i, offset := range frameOffsets {
		out := filepath.Join(dir, fmt.Sprintf("frame-%d.jpg", i+1))

		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			select {
			case <-ctx.Done():
				return
			default:
			}
			if err := s.extractor.Extract(ctx, video, offset, out); err != nil {
				s.logger.Warn("Failed to extract frame", "offset", offset, "error", err)
				return
			}
			results[i] = out
		})
		if err != nil {
			wg.Done()
			s.logger.Error("Failed to submit frame job", "offset", offset, "error", err)
		}
	}

	wg.Wait()

	frames := make([]string, 0, len(results))
	for _, f := range results {
		if f != "" {
			frames = append(frames, f)
		}
	}
	return frames
}

// Submit runs the moderation pre-check and, when it passes, uploads the video
// with the chosen thumbnail. The draft is discarded on success.
func (s *Service) Submit(ctx context.Context, draft *Draft, title, description string) (*domain.UploadResult, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	if s.session.Identity() == nil {
		return nil, apperrors.ErrAuthRequired
	}

	video := videoAttachment(draft.Video)

	moderation, err := s.api.CheckModeration(ctx, video)
	if err != nil {
		s.logger.Error("Moderation check failed", "path", draft.Video, "error", err)
		return nil, fmt.Errorf("moderation check failed: %w", err)
	}
	if moderation.Flagged() {
		categories := moderation.FlaggedCategories()
		s.logger.Warn("Video rejected by moderation", "path", draft.Video, "flags", categories)
		return nil, fmt.Errorf("%w: %s", ErrUnsafeContent, formatter.Flags(categories))
	}

	token, err := s.session.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrAuthRequired, err)
	}

	req := reels.UploadRequest{
		Video:       video,
		Title:       title,
		Description: description,
	}
	if draft.Thumbnail != "" {
		req.Thumbnail = &reels.Attachment{
			Path:        draft.Thumbnail,
			FileName:    "thumbnail.jpg",
			ContentType: "image/jpeg",
		}
	}

	result, err := s.api.Upload(ctx, token, req)
	if err != nil {
		s.logger.Error("Upload failed", "path", draft.Video, "error", err)
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	s.logger.Info("Video uploaded", "path", draft.Video, "title", title)
	draft.Discard()
	return result, nil
}

func videoAttachment(path string) reels.Attachment {
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if !strings.HasPrefix(contentType, "video/") {
		contentType = defaultVideoType
	}
	return reels.Attachment{
		Path:        path,
		FileName:    filepath.Base(path),
		ContentType: contentType,
	}
}
