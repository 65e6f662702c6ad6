package commandimpl

import "context"

func (c *CommandImpl) handleProfile(ctx context.Context) {
	identity := c.Session.Identity()
	if identity == nil {
		c.print("Please sign in first.\n")
		return
	}

	profile, err := c.API.GetProfile(ctx, identity.ID)
	if err != nil {
		c.reportError("Loading the profile", err)
		return
	}

	c.printf("@%s, %d videos\n", profile.User.Username, len(profile.Videos))
	if profile.User.ProfileURL != "" {
		c.printf("  picture: %s\n", profile.User.ProfileURL)
	}
	for i, video := range profile.Videos {
		c.printItem(i, video, false)
	}
}
