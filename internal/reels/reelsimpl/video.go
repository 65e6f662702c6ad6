package reelsimpl

import (
	"context"
	"net/http"
	"net/url"

	"github.com/orgball2608/reels-client/internal/domain"
	apperrors "github.com/orgball2608/reels-client/pkg/errors"
)

func (c *ReelsImpl) ListVideos(ctx context.Context) ([]domain.FeedItem, error) {
	var resp videosResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/videos"}, &resp); err != nil {
		return nil, err
	}
	return toFeedItems(resp.Videos), nil
}

func (c *ReelsImpl) ToggleLike(ctx context.Context, token, videoID string) (*domain.LikeAck, error) {
	if token == "" {
		return nil, apperrors.ErrAuthRequired
	}

	var resp likeResponse
	path := "/api/videolike/" + url.PathEscape(videoID) + "/like"
	if err := c.postJSON(ctx, path, token, struct{}{}, &resp); err != nil {
		return nil, err
	}
	if resp.Message == "" {
		return nil, apperrors.BadResponse("missing like acknowledgement")
	}
	return &domain.LikeAck{Message: resp.Message}, nil
}

func (c *ReelsImpl) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var resp profileResponse
	path := "/api/users/" + url.PathEscape(userID) + "/profile"
	if err := c.do(ctx, request{method: http.MethodGet, path: path}, &resp); err != nil {
		return nil, err
	}
	return &domain.Profile{
		User:   resp.User.toDomain(),
		Videos: toFeedItems(resp.Videos),
	}, nil
}
