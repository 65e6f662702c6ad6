package reelsimpl

import (
	"context"
	"net/http"

	"github.com/orgball2608/reels-client/internal/domain"
	"github.com/orgball2608/reels-client/internal/reels"
	apperrors "github.com/orgball2608/reels-client/pkg/errors"
)

func (c *ReelsImpl) SignIn(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	var resp authResponse
	body := map[string]string{"username": username, "password": password}
	if err := c.postJSON(ctx, "/api/signin", "", body, &resp); err != nil {
		return nil, err
	}
	return toAuthResult(resp)
}

func (c *ReelsImpl) Register(ctx context.Context, req reels.RegisterRequest) (*domain.AuthResult, error) {
	f := newForm()
	if err := f.field("username", req.Username); err != nil {
		return nil, apperrors.Wrap(err, "failed to build form")
	}
	if err := f.field("password", req.Password); err != nil {
		return nil, apperrors.Wrap(err, "failed to build form")
	}
	if req.ProfilePic != nil {
		if err := f.file("profilePic", *req.ProfilePic); err != nil {
			return nil, apperrors.Wrap(err, "failed to attach profile picture")
		}
	}
	body, contentType, err := f.close()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build form")
	}

	var resp authResponse
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/register",
		body:        body,
		contentType: contentType,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return toAuthResult(resp)
}

func toAuthResult(resp authResponse) (*domain.AuthResult, error) {
	if resp.Token == "" {
		return nil, apperrors.BadResponse("missing token")
	}
	return &domain.AuthResult{
		Token: resp.Token,
		User:  resp.User.toDomain(),
	}, nil
}
