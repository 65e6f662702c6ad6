package domain

import (
	"slices"
	"strings"
	"time"
)

type Uploader struct {
	Username      string
	ProfilePicURL string
}

// FeedItem is one playable video in the vertical feed.
type FeedItem struct {
	ID                   string
	MediaURL             string
	Title                string
	Description          string
	Uploader             Uploader
	LikesCount           int
	LikedBy              []string
	IsLikedByCurrentUser bool
	CreatedAt            time.Time
}

// LikedByUser reports whether userID is in the item's membership set.
func (f FeedItem) LikedByUser(userID string) bool {
	if userID == "" {
		return false
	}
	return slices.Contains(f.LikedBy, userID)
}

// ApplyLikeAck applies a confirmed toggle: a like adds exactly one, an unlike
// removes exactly one. The counter never goes negative.
func (f *FeedItem) ApplyLikeAck(ack LikeAck) {
	if ack.IsUnlike() {
		if f.LikesCount > 0 {
			f.LikesCount--
		}
		f.IsLikedByCurrentUser = false
		return
	}
	f.LikesCount++
	f.IsLikedByCurrentUser = true
}

// LikeAck is the server's acknowledgement of a like toggle.
type LikeAck struct {
	Message string
}

func (a LikeAck) IsUnlike() bool {
	return strings.Contains(strings.ToLower(a.Message), "unliked")
}

type UploadResult struct {
	Message string
}
