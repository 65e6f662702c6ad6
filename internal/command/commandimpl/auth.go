package commandimpl

import (
	"context"
	"mime"
	"path/filepath"
	"strings"

	"github.com/orgball2608/reels-client/internal/domain"
	apperrors "github.com/orgball2608/reels-client/pkg/errors"
)

func (c *CommandImpl) handleLogin(ctx context.Context, args []string) {
	if len(args) != 2 {
		c.print("Usage: login <username> <password>\n")
		return
	}

	if !c.Session.Login(ctx, args[0], args[1]) {
		c.print("Login failed.\n")
		return
	}
	c.printf("Signed in as @%s.\n", c.Session.Identity().Username)
}

func (c *CommandImpl) handleRegister(ctx context.Context, args []string) {
	if len(args) < 2 || len(args) > 3 {
		c.print("Usage: register <username> <password> [profile image]\n")
		return
	}

	var image *domain.ProfileImage
	if len(args) == 3 {
		image = profileImage(args[2])
	}

	if err := c.Session.Register(ctx, args[0], args[1], image); err != nil {
		c.printf("Registration failed: %s\n", apperrors.GetMessage(err))
		return
	}
	c.printf("Welcome, @%s!\n", c.Session.Identity().Username)
}

func (c *CommandImpl) handleLogout(ctx context.Context) {
	c.Session.Logout(ctx)
	c.print("Signed out.\n")
}

func (c *CommandImpl) handleWhoami() {
	identity := c.Session.Identity()
	if identity == nil {
		c.print("Not signed in.\n")
		return
	}
	c.printf("@%s (%s)\n", identity.Username, identity.ID)
}

func profileImage(path string) *domain.ProfileImage {
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if !strings.HasPrefix(contentType, "image/") {
		contentType = ""
	}
	return &domain.ProfileImage{
		Path:        path,
		FileName:    filepath.Base(path),
		ContentType: contentType,
	}
}
