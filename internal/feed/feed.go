// Package feed holds the video list of one feed screen, which item plays,
// and confirmed like toggles.
package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/orgball2608/reels-client/internal/domain"
	"github.com/orgball2608/reels-client/internal/reels"
	"github.com/orgball2608/reels-client/internal/session"
	"github.com/orgball2608/reels-client/internal/share"
	apperrors "github.com/orgball2608/reels-client/pkg/errors"
	"github.com/orgball2608/reels-client/pkg/logger"
	"go.uber.org/fx"
)

var ErrItemNotFound = errors.New("feed item not found")

const shareMessagePrefix = "Check out this video! "

type Opts struct {
	fx.In

	API     reels.Client
	Session session.Reader
	Sharer  share.Client
	Logger  logger.Logger
}

// Controller is owned by a single feed screen. Overlapping LoadFeed or
// ToggleLike calls on the same item are not serialised.
type Controller struct {
	api     reels.Client
	session session.Reader
	sharer  share.Client
	logger  logger.Logger

	mu    sync.RWMutex
	items []domain.FeedItem
	state PlaybackState
}

func New(opts Opts) *Controller {
	return &Controller{
		api:     opts.API,
		session: opts.Session,
		sharer:  opts.Sharer,
		logger:  opts.Logger.WithComponent("Feed"),
		state:   initialState(),
	}
}

// LoadFeed replaces the whole list and resets playback. On failure the
// previous list stays as it was.
func (c *Controller) LoadFeed(ctx context.Context) error {
	items, err := c.api.ListVideos(ctx)
	if err != nil {
		c.logger.Error("Failed to load feed", "error", err)
		return fmt.Errorf("failed to load feed: %w", err)
	}

	userID := ""
	if identity := c.session.Identity(); identity != nil {
		userID = identity.ID
	}
	for i := range items {
		items[i].IsLikedByCurrentUser = items[i].LikedByUser(userID)
	}

	c.mu.Lock()
	c.items = items
	c.state = initialState()
	c.mu.Unlock()

	c.logger.Info("Feed loaded", "count", len(items))
	return nil
}

// SetVisibleIndex is driven by the host's viewport logic; the controller
// trusts it. Indexes outside the list are ignored.
func (c *Controller) SetVisibleIndex(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.items) {
		c.logger.Debug("Ignoring visible index outside the feed", "index", index, "count", len(c.items))
		return
	}
	c.state = c.state.visible(index)
}

// TogglePauseAtIndex flips the pause flag of the active item; any other index is a no-op.
func (c *Controller) TogglePauseAtIndex(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.togglePause(index)
}

func (c *Controller) ShouldPlay(index int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.ShouldPlay(index)
}

func (c *Controller) State() PlaybackState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Items returns a copy of the current list.
func (c *Controller) Items() []domain.FeedItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.FeedItem, len(c.items))
	copy(out, c.items)
	return out
}

// ToggleLike waits for the server's acknowledgement and only then applies
// exactly the change it reports, to the matching item only. Without an
// identity it returns ErrAuthRequired and makes no request.
func (c *Controller) ToggleLike(ctx context.Context, itemID string) (domain.FeedItem, error) {
	if c.session.Identity() == nil {
		return domain.FeedItem{}, apperrors.ErrAuthRequired
	}
	if _, ok := c.find(itemID); !ok {
		return domain.FeedItem{}, ErrItemNotFound
	}

	token, err := c.session.Token(ctx)
	if err != nil {
		c.logger.Warn("No credential for like", "item_id", itemID, "error", err)
		return domain.FeedItem{}, fmt.Errorf("%w: %w", apperrors.ErrAuthRequired, err)
	}

	ack, err := c.api.ToggleLike(ctx, token, itemID)
	if err != nil {
		c.logger.Error("Like failed", "item_id", itemID, "error", err)
		return domain.FeedItem{}, fmt.Errorf("failed to toggle like: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID != itemID {
			continue
		}
		c.items[i].ApplyLikeAck(*ack)
		c.logger.Info("Like toggled", "item_id", itemID, "liked", c.items[i].IsLikedByCurrentUser, "likes", c.items[i].LikesCount)
		return c.items[i], nil
	}

	// The list was replaced while the request was in flight.
	return domain.FeedItem{}, ErrItemNotFound
}

// ShareItem passes the item's media URL to the share target.
func (c *Controller) ShareItem(ctx context.Context, itemID string) error {
	item, ok := c.find(itemID)
	if !ok {
		return ErrItemNotFound
	}
	if err := c.sharer.Share(ctx, shareMessagePrefix+item.MediaURL); err != nil {
		c.logger.Error("Share failed", "item_id", itemID, "error", err)
		return err
	}
	return nil
}

func (c *Controller) find(itemID string) (domain.FeedItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.ID == itemID {
			return item, true
		}
	}
	return domain.FeedItem{}, false
}
