package commandimpl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/orgball2608/reels-client/internal/command"
	"github.com/orgball2608/reels-client/internal/feed"
	"github.com/orgball2608/reels-client/internal/ratelimit"
	"github.com/orgball2608/reels-client/internal/reels"
	"github.com/orgball2608/reels-client/internal/session"
	"github.com/orgball2608/reels-client/internal/upload"
	apperrors "github.com/orgball2608/reels-client/pkg/errors"
	"github.com/orgball2608/reels-client/pkg/logger"
	"go.uber.org/fx"
)

const prompt = "> "

type Opts struct {
	fx.In

	API      reels.Client
	Session  *session.Store
	Feed     *feed.Controller
	Uploader *upload.Service
	Limiter  ratelimit.Limiter
	Logger   logger.Logger
	Out      io.Writer `optional:"true"`
}

type CommandImpl struct {
	API      reels.Client
	Session  *session.Store
	Feed     *feed.Controller
	Uploader *upload.Service
	Limiter  ratelimit.Limiter
	Logger   logger.Logger

	out io.Writer
	now func() time.Time

	draft            *upload.Draft
	draftTitle       string
	draftDescription string
}

func New(opts Opts) *CommandImpl {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &CommandImpl{
		API:      opts.API,
		Session:  opts.Session,
		Feed:     opts.Feed,
		Uploader: opts.Uploader,
		Limiter:  opts.Limiter,
		Logger:   opts.Logger.WithComponent("Command"),
		out:      out,
		now:      time.Now,
	}
}

var _ command.Client = (*CommandImpl)(nil)

// Run returns as soon as ctx is done. A read already blocked on in is left
// behind and ends with the input.
func (c *CommandImpl) Run(ctx context.Context, in io.Reader) error {
	defer c.discardDraft()

	lines := make(chan string)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	c.print(prompt)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			err := c.HandleCommand(ctx, line)
			if errors.Is(err, command.ErrQuit) {
				return nil
			}
			if err != nil {
				c.Logger.Error("Command failed", "error", err)
			}
			c.print(prompt)
		}
	}
}

// HandleCommand runs a single command line. User-facing failures are written
// to the output; only ErrQuit and unexpected errors are returned.
func (c *CommandImpl) HandleCommand(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	c.Logger.Debug("Handling command", "command", name, "args", len(args))

	switch name {
	case "login":
		c.handleLogin(ctx, args)
	case "register":
		c.handleRegister(ctx, args)
	case "logout":
		c.handleLogout(ctx)
	case "whoami":
		c.handleWhoami()
	case "feed":
		c.handleFeed(ctx)
	case "view":
		c.handleView(args)
	case "tap":
		c.handleTap()
	case "like":
		c.handleLike(ctx, args)
	case "share":
		c.handleShare(ctx, args)
	case "upload":
		c.handleUpload(ctx, args)
	case "thumb":
		c.handleThumb(args)
	case "post":
		c.handlePost(ctx)
	case "profile":
		c.handleProfile(ctx)
	case "help":
		c.handleHelp()
	case "quit", "exit":
		return command.ErrQuit
	default:
		c.printf("Unknown command %q. Type help for the list of commands.\n", name)
	}
	return nil
}

func (c *CommandImpl) handleHelp() {
	c.print(`Commands:
  login <username> <password>
  register <username> <password> [profile image]
  logout
  whoami
  feed                       load the feed
  view <n>                   bring video n into view
  tap                        pause or resume the playing video
  like [id]                  like or unlike a video, default the one in view
  share [id]                 share a video, default the one in view
  upload <path> <title> [description...]
  thumb <n>                  pick frame n as the thumbnail, or thumb <path.jpg>
  post                       check and upload the prepared video
  profile                    show your profile and videos
  quit
`)
}

// reportError prints a failure the way the user should see it.
func (c *CommandImpl) reportError(action string, err error) {
	switch {
	case apperrors.IsAuthRequired(err):
		c.print("Please sign in first.\n")
	case errors.Is(err, feed.ErrItemNotFound):
		c.print("No such video in the feed.\n")
	case apperrors.IsRequestFailed(err):
		c.printf("%s failed: could not reach the server.\n", action)
	default:
		c.printf("%s failed: %s\n", action, apperrors.GetMessage(err))
	}
}

func (c *CommandImpl) print(s string) {
	_, _ = io.WriteString(c.out, s)
}

func (c *CommandImpl) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
