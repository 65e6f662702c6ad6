package reelsimpl

import (
	"time"

	"github.com/orgball2608/reels-client/internal/domain"
)

type userDTO struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	ProfileURL string `json:"profileUrl"`
	ProfilePic string `json:"profilePic"`
}

func (u userDTO) toDomain() domain.Identity {
	profile := u.ProfileURL
	if profile == "" {
		profile = u.ProfilePic
	}
	return domain.Identity{
		ID:         u.ID,
		Username:   u.Username,
		ProfileURL: profile,
	}
}

type authResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type uploaderDTO struct {
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic"`
}

type videoDTO struct {
	ID          string      `json:"id"`
	S3URL       string      `json:"s3_url"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	UploadedBy  uploaderDTO `json:"uploadedBy"`
	LikesCount  int         `json:"likesCount"`
	LikedBy     []string    `json:"likedBy"`
	CreatedAt   string      `json:"createdAt"`
}

func (v videoDTO) toDomain() domain.FeedItem {
	likes := v.LikesCount
	if likes < 0 {
		likes = 0
	}
	return domain.FeedItem{
		ID:          v.ID,
		MediaURL:    v.S3URL,
		Title:       v.Title,
		Description: v.Description,
		Uploader: domain.Uploader{
			Username:      v.UploadedBy.Username,
			ProfilePicURL: v.UploadedBy.ProfilePic,
		},
		LikesCount: likes,
		LikedBy:    v.LikedBy,
		CreatedAt:  parseTime(v.CreatedAt),
	}
}

func toFeedItems(in []videoDTO) []domain.FeedItem {
	out := make([]domain.FeedItem, 0, len(in))
	for _, v := range in {
		out = append(out, v.toDomain())
	}
	return out
}

// parseTime accepts RFC 3339 timestamps; anything else becomes the zero time.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

type videosResponse struct {
	Videos []videoDTO `json:"videos"`
}

type likeResponse struct {
	Message string `json:"message"`
}

type moderationResponse struct {
	Flags map[string]bool `json:"flags"`
}

type uploadResponse struct {
	Message string `json:"message"`
}

type profileResponse struct {
	User   userDTO    `json:"user"`
	Videos []videoDTO `json:"videos"`
}
