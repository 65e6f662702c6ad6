package commandimpl

import (
	"context"
	"strconv"

	"github.com/orgball2608/reels-client/internal/domain"
	"github.com/orgball2608/reels-client/internal/feed"
	"github.com/orgball2608/reels-client/pkg/formatter"
)

func (c *CommandImpl) handleFeed(ctx context.Context) {
	if err := c.Feed.LoadFeed(ctx); err != nil {
		c.reportError("Loading the feed", err)
		return
	}

	items := c.Feed.Items()
	if len(items) == 0 {
		c.print("The feed is empty.\n")
		return
	}

	// The first video starts fully in view.
	c.Feed.SetVisibleIndex(0)
	for i, item := range items {
		c.printItem(i, item, c.Feed.ShouldPlay(i))
	}
}

func (c *CommandImpl) handleView(args []string) {
	index, ok := c.position(args)
	if !ok {
		c.print("Usage: view <n>\n")
		return
	}

	items := c.Feed.Items()
	if index >= len(items) {
		c.printf("There are %d videos in the feed.\n", len(items))
		return
	}

	c.Feed.SetVisibleIndex(index)
	c.printItem(index, items[index], c.Feed.ShouldPlay(index))
}

func (c *CommandImpl) handleTap() {
	state := c.Feed.State()
	if state.ActiveIndex == feed.NoneActive {
		c.print("Nothing is in view.\n")
		return
	}

	c.Feed.TogglePauseAtIndex(state.ActiveIndex)
	if c.Feed.ShouldPlay(state.ActiveIndex) {
		c.printf("%s playing.\n", formatter.Ordinal(state.ActiveIndex))
	} else {
		c.printf("%s paused.\n", formatter.Ordinal(state.ActiveIndex))
	}
}

func (c *CommandImpl) handleLike(ctx context.Context, args []string) {
	id, ok := c.itemID(args)
	if !ok {
		c.print("Usage: like [id]\n")
		return
	}
	if !c.Limiter.Allow(id) {
		c.print("Slow down a little.\n")
		return
	}

	item, err := c.Feed.ToggleLike(ctx, id)
	if err != nil {
		c.reportError("Like", err)
		return
	}

	verb := "Liked"
	if !item.IsLikedByCurrentUser {
		verb = "Unliked"
	}
	c.printf("%s %s. %s\n", verb, item.ID, formatter.FormatLikes(item.LikesCount))
}

func (c *CommandImpl) handleShare(ctx context.Context, args []string) {
	id, ok := c.itemID(args)
	if !ok {
		c.print("Usage: share [id]\n")
		return
	}

	if err := c.Feed.ShareItem(ctx, id); err != nil {
		c.reportError("Share", err)
		return
	}
	c.printf("Shared %s.\n", id)
}

func (c *CommandImpl) printItem(index int, item domain.FeedItem, playing bool) {
	marker := " "
	if playing {
		marker = ">"
	}
	heart := ""
	if item.IsLikedByCurrentUser {
		heart = " (liked)"
	}

	title := item.Title
	if title == "" {
		title = item.Description
	}

	c.printf("%s %s [%s] %s by @%s | %s%s", marker, formatter.Ordinal(index), item.ID, title,
		item.Uploader.Username, formatter.FormatLikes(item.LikesCount), heart)
	if !item.CreatedAt.IsZero() {
		c.printf(" | %s", formatter.TimeAgo(item.CreatedAt, c.now()))
	}
	c.print("\n")
}

// itemID returns the explicit id argument or the video currently in view.
func (c *CommandImpl) itemID(args []string) (string, bool) {
	if len(args) == 1 {
		return args[0], true
	}
	if len(args) > 1 {
		return "", false
	}

	state := c.Feed.State()
	items := c.Feed.Items()
	if state.ActiveIndex == feed.NoneActive || state.ActiveIndex >= len(items) {
		return "", false
	}
	return items[state.ActiveIndex].ID, true
}

// position parses a 1-based position into a 0-based index.
func (c *CommandImpl) position(args []string) (int, bool) {
	if len(args) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}
