package reelsimpl

import (
	"context"
	"net/http"

	"github.com/orgball2608/reels-client/internal/domain"
	"github.com/orgball2608/reels-client/internal/reels"
	apperrors "github.com/orgball2608/reels-client/pkg/errors"
)

// CheckModeration submits the video to the content pre-check.
func (c *ReelsImpl) CheckModeration(ctx context.Context, video reels.Attachment) (*domain.ModerationResult, error) {
	f := newForm()
	if err := f.file("video", video); err != nil {
		return nil, apperrors.Wrap(err, "failed to attach video")
	}
	body, contentType, err := f.close()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build form")
	}

	var resp moderationResponse
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/upload",
		body:        body,
		contentType: contentType,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Flags == nil {
		resp.Flags = map[string]bool{}
	}
	return &domain.ModerationResult{Flags: resp.Flags}, nil
}

func (c *ReelsImpl) Upload(ctx context.Context, token string, req reels.UploadRequest) (*domain.UploadResult, error) {
	if token == "" {
		return nil, apperrors.ErrAuthRequired
	}

	f := newForm()
	if err := f.file("video", req.Video); err != nil {
		return nil, apperrors.Wrap(err, "failed to attach video")
	}
	if err := f.field("title", req.Title); err != nil {
		return nil, apperrors.Wrap(err, "failed to build form")
	}
	if err := f.field("description", req.Description); err != nil {
		return nil, apperrors.Wrap(err, "failed to build form")
	}
	if req.Thumbnail != nil {
		if err := f.file("thumbnail", *req.Thumbnail); err != nil {
			return nil, apperrors.Wrap(err, "failed to attach thumbnail")
		}
	}
	body, contentType, err := f.close()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build form")
	}

	var resp uploadResponse
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/test-upload",
		body:        body,
		contentType: contentType,
		token:       token,
	}, &resp)
	if err != nil {
		// The server took the video; only its reply was not what we expected.
		if apperrors.GetCode(err) == apperrors.CodeBadResponse {
			c.logger.Warn("Upload accepted with unreadable reply", "error", err)
			return &domain.UploadResult{}, nil
		}
		return nil, err
	}
	return &domain.UploadResult{Message: resp.Message}, nil
}
