package reels

import (
	"context"

	"github.com/orgball2608/reels-client/internal/domain"
)

// Attachment is a local file sent as one multipart part.
type Attachment struct {
	Path        string
	FileName    string
	ContentType string
}

type RegisterRequest struct {
	Username   string
	Password   string
	ProfilePic *Attachment
}

type UploadRequest struct {
	Video       Attachment
	Title       string
	Description string
	Thumbnail   *Attachment
}

//go:generate go run go.uber.org/mock/mockgen -source=reels.go -destination=mocks/mock.go

// Client talks to the reels REST API. Calls are never retried.
type Client interface {
	SignIn(ctx context.Context, username, password string) (*domain.AuthResult, error)
	Register(ctx context.Context, req RegisterRequest) (*domain.AuthResult, error)
	ListVideos(ctx context.Context) ([]domain.FeedItem, error)
	ToggleLike(ctx context.Context, token, videoID string) (*domain.LikeAck, error)
	CheckModeration(ctx context.Context, video Attachment) (*domain.ModerationResult, error)
	Upload(ctx context.Context, token string, req UploadRequest) (*domain.UploadResult, error)
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
}
