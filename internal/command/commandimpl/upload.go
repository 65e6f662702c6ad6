package commandimpl

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/orgball2608/reels-client/internal/upload"
	"github.com/orgball2608/reels-client/pkg/formatter"
)

func (c *CommandImpl) handleUpload(ctx context.Context, args []string) {
	if len(args) < 2 {
		c.print("Usage: upload <path> <title> [description...]\n")
		return
	}

	draft, err := c.Uploader.Prepare(ctx, args[0])
	if err != nil {
		c.reportError("Preparing the video", err)
		return
	}

	c.discardDraft()
	c.draft = draft
	c.draftTitle = args[1]
	c.draftDescription = strings.Join(args[2:], " ")

	c.printf("Ready to post %s (%s).\n", args[0], formatter.ByteSize(draft.Size))
	c.printFrames()
}

func (c *CommandImpl) handleThumb(args []string) {
	if c.draft == nil {
		c.print("Prepare a video with upload first.\n")
		return
	}
	if len(args) != 1 {
		c.print("Usage: thumb <n> | thumb <image path>\n")
		return
	}

	var err error
	if index, ok := c.position(args); ok {
		err = c.draft.SelectThumbnail(index)
	} else {
		err = c.draft.UseCustomThumbnail(args[0])
	}
	if err != nil {
		c.reportError("Choosing the thumbnail", err)
		return
	}
	c.printFrames()
}

func (c *CommandImpl) handlePost(ctx context.Context) {
	if c.draft == nil {
		c.print("Please select a video first.\n")
		return
	}

	_, err := c.Uploader.Submit(ctx, c.draft, c.draftTitle, c.draftDescription)
	switch {
	case err == nil:
		c.draft = nil
		c.print("Video uploaded successfully!\n")
	case errors.Is(err, upload.ErrUnsafeContent):
		c.discardDraft()
		c.print("Unsafe: your video contains restricted content.\n")
	case errors.Is(err, upload.ErrTitleRequired):
		c.print("Please enter a title.\n")
	default:
		c.reportError("Upload", err)
	}
}

func (c *CommandImpl) printFrames() {
	for i, frame := range c.draft.Frames {
		marker := " "
		if frame == c.draft.Thumbnail {
			marker = "*"
		}
		c.printf("%s frame %s %s\n", marker, formatter.Ordinal(i), frame)
	}
	if c.draft.Thumbnail == "" {
		c.print("  no thumbnail\n")
	} else if !slices.Contains(c.draft.Frames, c.draft.Thumbnail) {
		c.printf("* custom %s\n", c.draft.Thumbnail)
	}
}

func (c *CommandImpl) discardDraft() {
	if c.draft != nil {
		c.draft.Discard()
		c.draft = nil
	}
}
