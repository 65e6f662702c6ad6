package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/orgball2608/reels-client/internal/domain"
	"github.com/orgball2608/reels-client/internal/reels"
	mock_reels "github.com/orgball2608/reels-client/internal/reels/mocks"
	mock_upload "github.com/orgball2608/reels-client/internal/upload/mocks"
	"github.com/orgball2608/reels-client/pkg/config"
	apperrors "github.com/orgball2608/reels-client/pkg/errors"
	"github.com/orgball2608/reels-client/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
)

type stubSession struct {
	identity *domain.Identity
	token    string
	err      error
}

func (s *stubSession) Identity() *domain.Identity { return s.identity }

func (s *stubSession) Token(context.Context) (string, error) { return s.token, s.err }

var bob = &stubSession{identity: &domain.Identity{ID: "u2", Username: "bob"}, token: "tok-b"}

type fixture struct {
	api       *mock_reels.MockClient
	extractor *mock_upload.MockFrameExtractor
	svc       *Service
}

func newFixture(t *testing.T, sess *stubSession) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Upload.MaxSizeMB = 1
	cfg.Upload.Workers = 2

	lc := fxtest.NewLifecycle(t)
	f := fixture{
		api:       mock_reels.NewMockClient(ctrl),
		extractor: mock_upload.NewMockFrameExtractor(ctrl),
	}
	svc, err := New(Opts{
		LC:        lc,
		API:       f.api,
		Session:   sess,
		Extractor: f.extractor,
		Config:    cfg,
		Logger:    logger.Nop(),
	})
	require.NoError(t, err)
	lc.RequireStart()
	t.Cleanup(func() { lc.RequireStop() })

	f.svc = svc
	return f
}

func writeVideo(t *testing.T, size int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(size))
	require.NoError(t, f.Close())
	return path
}

func writeFrame(_ context.Context, _ string, _ time.Duration, out string) error {
	return os.WriteFile(out, []byte("jpeg"), 0o600)
}

func TestPrepareExtractsFourFrames(t *testing.T) {
	f := newFixture(t, bob)
	video := writeVideo(t, 1024)

	var mu sync.Mutex
	var offsets []time.Duration
	f.extractor.EXPECT().Extract(gomock.Any(), video, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, v string, at time.Duration, out string) error {
			mu.Lock()
			offsets = append(offsets, at)
			mu.Unlock()
			return writeFrame(ctx, v, at, out)
		}).Times(4)

	draft, err := f.svc.Prepare(context.Background(), video)
	require.NoError(t, err)
	t.Cleanup(draft.Discard)

	require.Len(t, draft.Frames, 4)
	assert.ElementsMatch(t, frameOffsets, offsets)
	assert.Equal(t, draft.Frames[1], draft.Thumbnail)
	for i, frame := range draft.Frames {
		assert.FileExists(t, frame)
		assert.Equal(t, filepath.Base(frame), "frame-"+string(rune('1'+i))+".jpg")
	}
}

func TestPrepareSkipsFailedFrames(t *testing.T) {
	f := newFixture(t, bob)
	video := writeVideo(t, 1024)

	f.extractor.EXPECT().Extract(gomock.Any(), video, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, v string, at time.Duration, out string) error {
			if at != time.Second {
				return errors.New("past end of stream")
			}
			return writeFrame(ctx, v, at, out)
		}).Times(4)

	draft, err := f.svc.Prepare(context.Background(), video)
	require.NoError(t, err)
	t.Cleanup(draft.Discard)

	require.Len(t, draft.Frames, 1)
	assert.Equal(t, draft.Frames[0], draft.Thumbnail)
}

func TestPrepareRejectsLargeFile(t *testing.T) {
	f := newFixture(t, bob)
	video := writeVideo(t, 1<<20+1)

	_, err := f.svc.Prepare(context.Background(), video)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestPrepareAcceptsExactLimit(t *testing.T) {
	f := newFixture(t, bob)
	video := writeVideo(t, 1<<20)

	f.extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("no ffmpeg")).Times(4)

	draft, err := f.svc.Prepare(context.Background(), video)
	require.NoError(t, err)
	t.Cleanup(draft.Discard)
	assert.Empty(t, draft.Frames)
	assert.Empty(t, draft.Thumbnail)
}

func TestDraftThumbnailSelection(t *testing.T) {
	draft := &Draft{Frames: []string{"a.jpg", "b.jpg"}}

	require.NoError(t, draft.SelectThumbnail(0))
	assert.Equal(t, "a.jpg", draft.Thumbnail)
	assert.ErrorIs(t, draft.SelectThumbnail(2), ErrNoSuchFrame)

	custom := filepath.Join(t.TempDir(), "cover.jpg")
	require.NoError(t, os.WriteFile(custom, []byte("x"), 0o600))
	require.NoError(t, draft.UseCustomThumbnail(custom))
	assert.Equal(t, custom, draft.Thumbnail)
	assert.Error(t, draft.UseCustomThumbnail(filepath.Join(t.TempDir(), "missing.jpg")))
}

func TestSubmitUploadsAfterModeration(t *testing.T) {
	f := newFixture(t, bob)
	dir := t.TempDir()
	draft := &Draft{Video: "/videos/clip.mp4", Thumbnail: "/tmp/frame-2.jpg", dir: dir}

	gomock.InOrder(
		f.api.EXPECT().CheckModeration(gomock.Any(), reels.Attachment{
			Path: "/videos/clip.mp4", FileName: "clip.mp4", ContentType: "video/mp4",
		}).Return(&domain.ModerationResult{Flags: map[string]bool{"violence": false}}, nil),
		f.api.EXPECT().Upload(gomock.Any(), "tok-b", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req reels.UploadRequest) (*domain.UploadResult, error) {
				assert.Equal(t, "Sunset", req.Title)
				assert.Equal(t, "beach", req.Description)
				require.NotNil(t, req.Thumbnail)
				assert.Equal(t, "/tmp/frame-2.jpg", req.Thumbnail.Path)
				assert.Equal(t, "thumbnail.jpg", req.Thumbnail.FileName)
				assert.Equal(t, "image/jpeg", req.Thumbnail.ContentType)
				return &domain.UploadResult{Message: "ok"}, nil
			}),
	)

	res, err := f.svc.Submit(context.Background(), draft, "Sunset", "beach")
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Message)
	assert.NoDirExists(t, dir)
}

func TestSubmitBlockedByModeration(t *testing.T) {
	f := newFixture(t, bob)
	draft := &Draft{Video: "/videos/clip.mp4"}

	f.api.EXPECT().CheckModeration(gomock.Any(), gomock.Any()).
		Return(&domain.ModerationResult{Flags: map[string]bool{"violence": true, "nudity": false}}, nil)

	_, err := f.svc.Submit(context.Background(), draft, "Sunset", "")
	require.ErrorIs(t, err, ErrUnsafeContent)
	assert.Contains(t, err.Error(), "violence")
}

func TestSubmitPreconditions(t *testing.T) {
	draft := &Draft{Video: "/videos/clip.mp4"}

	t.Run("title required", func(t *testing.T) {
		f := newFixture(t, bob)
		_, err := f.svc.Submit(context.Background(), draft, "  ", "")
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("signed out", func(t *testing.T) {
		f := newFixture(t, &stubSession{})
		_, err := f.svc.Submit(context.Background(), draft, "Sunset", "")
		assert.ErrorIs(t, err, apperrors.ErrAuthRequired)
	})

	t.Run("credential missing", func(t *testing.T) {
		f := newFixture(t, &stubSession{identity: bob.identity, err: errors.New("gone")})
		f.api.EXPECT().CheckModeration(gomock.Any(), gomock.Any()).
			Return(&domain.ModerationResult{Flags: map[string]bool{}}, nil)

		_, err := f.svc.Submit(context.Background(), draft, "Sunset", "")
		assert.ErrorIs(t, err, apperrors.ErrAuthRequired)
	})
}

func TestSubmitModerationFailure(t *testing.T) {
	f := newFixture(t, bob)
	draft := &Draft{Video: "/videos/clip.mp4"}

	f.api.EXPECT().CheckModeration(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.Transport(errors.New("reset")))

	_, err := f.svc.Submit(context.Background(), draft, "Sunset", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsRequestFailed(err))
}

func TestVideoAttachmentContentType(t *testing.T) {
	assert.Equal(t, "video/mp4", videoAttachment("/a/b.mp4").ContentType)
	assert.Equal(t, "video/mp4", videoAttachment("/a/b.unknown").ContentType)
	assert.Equal(t, "b.MOV", videoAttachment("/a/b.MOV").FileName)
}
