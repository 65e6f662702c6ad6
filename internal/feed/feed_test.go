package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/orgball2608/reels-client/internal/domain"
	mock_reels "github.com/orgball2608/reels-client/internal/reels/mocks"
	mock_share "github.com/orgball2608/reels-client/internal/share/mocks"
	"github.com/orgball2608/reels-client/internal/session"
	apperrors "github.com/orgball2608/reels-client/pkg/errors"
	"github.com/orgball2608/reels-client/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubSession struct {
	identity *domain.Identity
	token    string
	err      error
}

func (s *stubSession) Identity() *domain.Identity { return s.identity }

func (s *stubSession) Token(context.Context) (string, error) {
	return s.token, s.err
}

func signedIn(id string) *stubSession {
	return &stubSession{identity: &domain.Identity{ID: id, Username: "user-" + id}, token: "tok"}
}

func twoItems() []domain.FeedItem {
	return []domain.FeedItem{
		{ID: "v1", MediaURL: "https://cdn/v1.mp4", LikesCount: 5, LikedBy: []string{"u9"}},
		{ID: "v2", MediaURL: "https://cdn/v2.mp4", LikesCount: 0, LikedBy: []string{}},
	}
}

type fixture struct {
	api    *mock_reels.MockClient
	sharer *mock_share.MockClient
	ctrl   *Controller
}

func newFixture(t *testing.T, sess session.Reader) fixture {
	t.Helper()
	mc := gomock.NewController(t)
	f := fixture{
		api:    mock_reels.NewMockClient(mc),
		sharer: mock_share.NewMockClient(mc),
	}
	f.ctrl = New(Opts{API: f.api, Session: sess, Sharer: f.sharer, Logger: logger.Nop()})
	return f
}

func (f fixture) load(t *testing.T, items []domain.FeedItem) {
	t.Helper()
	f.api.EXPECT().ListVideos(gomock.Any()).Return(items, nil)
	require.NoError(t, f.ctrl.LoadFeed(context.Background()))
}

func TestLoadFeedAnnotatesLikes(t *testing.T) {
	f := newFixture(t, signedIn("u9"))
	f.load(t, twoItems())

	items := f.ctrl.Items()
	require.Len(t, items, 2)
	assert.True(t, items[0].IsLikedByCurrentUser)
	assert.False(t, items[1].IsLikedByCurrentUser)
	assert.Equal(t, PlaybackState{ActiveIndex: NoneActive}, f.ctrl.State())
}

func TestLoadFeedLoggedOutLikesNothing(t *testing.T) {
	f := newFixture(t, &stubSession{})
	f.load(t, twoItems())

	for _, item := range f.ctrl.Items() {
		assert.False(t, item.IsLikedByCurrentUser, item.ID)
	}
}

func TestLoadFeedFailureKeepsList(t *testing.T) {
	f := newFixture(t, signedIn("u9"))
	f.load(t, twoItems())
	f.ctrl.SetVisibleIndex(1)

	f.api.EXPECT().ListVideos(gomock.Any()).Return(nil, apperrors.Transport(errors.New("offline")))
	err := f.ctrl.LoadFeed(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsRequestFailed(err))

	assert.Len(t, f.ctrl.Items(), 2)
	assert.Equal(t, 1, f.ctrl.State().ActiveIndex)
}

func TestLoadFeedResetsPlayback(t *testing.T) {
	f := newFixture(t, signedIn("u9"))
	f.load(t, twoItems())
	f.ctrl.SetVisibleIndex(1)
	f.ctrl.TogglePauseAtIndex(1)

	f.load(t, twoItems())
	assert.Equal(t, PlaybackState{ActiveIndex: NoneActive}, f.ctrl.State())
	assert.False(t, f.ctrl.ShouldPlay(0))
	assert.False(t, f.ctrl.ShouldPlay(1))
}

func TestPauseScopedToActiveItem(t *testing.T) {
	f := newFixture(t, signedIn("u9"))
	f.load(t, twoItems())

	f.ctrl.SetVisibleIndex(0)
	f.ctrl.SetVisibleIndex(1)
	f.ctrl.TogglePauseAtIndex(1)

	assert.Equal(t, PlaybackState{ActiveIndex: 1, PausedByUser: true}, f.ctrl.State())
	assert.False(t, f.ctrl.ShouldPlay(0))
	assert.False(t, f.ctrl.ShouldPlay(1))
}

func TestPlaybackTransitions(t *testing.T) {
	f := newFixture(t, signedIn("u9"))
	items := make([]domain.FeedItem, 5)
	for i := range items {
		items[i].ID = string(rune('a' + i))
	}
	f.load(t, items)

	tests := []struct {
		name   string
		act    func(c *Controller)
		active int
		paused bool
	}{
		{name: "pause on inactive index is ignored", act: func(c *Controller) { c.TogglePauseAtIndex(0) }, active: NoneActive},
		{name: "first item becomes visible", act: func(c *Controller) { c.SetVisibleIndex(0) }, active: 0},
		{name: "pause other index is ignored", act: func(c *Controller) { c.TogglePauseAtIndex(3) }, active: 0},
		{name: "pause active", act: func(c *Controller) { c.TogglePauseAtIndex(0) }, active: 0, paused: true},
		{name: "same index keeps pause", act: func(c *Controller) { c.SetVisibleIndex(0) }, active: 0, paused: true},
		{name: "out of range ignored", act: func(c *Controller) { c.SetVisibleIndex(9) }, active: 0, paused: true},
		{name: "negative ignored", act: func(c *Controller) { c.SetVisibleIndex(-2) }, active: 0, paused: true},
		{name: "switching clears pause", act: func(c *Controller) { c.SetVisibleIndex(3) }, active: 3},
		{name: "resume after double toggle", act: func(c *Controller) {
			c.TogglePauseAtIndex(3)
			c.TogglePauseAtIndex(3)
		}, active: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.act(f.ctrl)
			state := f.ctrl.State()
			assert.Equal(t, tt.active, state.ActiveIndex)
			assert.Equal(t, tt.paused, state.PausedByUser)

			playing := 0
			for i := range items {
				if f.ctrl.ShouldPlay(i) {
					playing++
					assert.Equal(t, tt.active, i)
				}
			}
			assert.LessOrEqual(t, playing, 1)
		})
	}
}

func TestToggleLikeConfirmed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, signedIn("u9"))
	f.load(t, twoItems())

	gomock.InOrder(
		f.api.EXPECT().ToggleLike(gomock.Any(), "tok", "v2").Return(&domain.LikeAck{Message: "video liked"}, nil),
		f.api.EXPECT().ToggleLike(gomock.Any(), "tok", "v2").Return(&domain.LikeAck{Message: "Video unliked"}, nil),
	)

	item, err := f.ctrl.ToggleLike(ctx, "v2")
	require.NoError(t, err)
	assert.Equal(t, 1, item.LikesCount)
	assert.True(t, item.IsLikedByCurrentUser)

	items := f.ctrl.Items()
	assert.Equal(t, 5, items[0].LikesCount)
	assert.True(t, items[0].IsLikedByCurrentUser)
	assert.Equal(t, 1, items[1].LikesCount)

	item, err = f.ctrl.ToggleLike(ctx, "v2")
	require.NoError(t, err)
	assert.Equal(t, 0, item.LikesCount)
	assert.False(t, item.IsLikedByCurrentUser)
}

func TestToggleLikeWithoutIdentityMakesNoCall(t *testing.T) {
	f := newFixture(t, &stubSession{})
	f.load(t, twoItems())

	_, err := f.ctrl.ToggleLike(context.Background(), "v1")
	require.ErrorIs(t, err, apperrors.ErrAuthRequired)
	assert.Equal(t, 5, f.ctrl.Items()[0].LikesCount)
}

func TestToggleLikeMissingCredential(t *testing.T) {
	sess := signedIn("u9")
	sess.err = session.ErrNoCredential
	f := newFixture(t, sess)
	f.load(t, twoItems())

	_, err := f.ctrl.ToggleLike(context.Background(), "v1")
	require.ErrorIs(t, err, apperrors.ErrAuthRequired)
	assert.ErrorIs(t, err, session.ErrNoCredential)
}

func TestToggleLikeUnknownItem(t *testing.T) {
	f := newFixture(t, signedIn("u9"))
	f.load(t, twoItems())

	_, err := f.ctrl.ToggleLike(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestToggleLikeFailureLeavesItem(t *testing.T) {
	f := newFixture(t, signedIn("u9"))
	f.load(t, twoItems())

	f.api.EXPECT().ToggleLike(gomock.Any(), "tok", "v1").Return(nil, apperrors.Rejected(500, "boom"))

	_, err := f.ctrl.ToggleLike(context.Background(), "v1")
	require.Error(t, err)
	assert.True(t, apperrors.IsRejected(err))

	items := f.ctrl.Items()
	assert.Equal(t, 5, items[0].LikesCount)
	assert.True(t, items[0].IsLikedByCurrentUser)
}

func TestUnlikeNeverGoesNegative(t *testing.T) {
	f := newFixture(t, signedIn("u1"))
	f.load(t, twoItems())

	f.api.EXPECT().ToggleLike(gomock.Any(), "tok", "v2").Return(&domain.LikeAck{Message: "unliked"}, nil)

	item, err := f.ctrl.ToggleLike(context.Background(), "v2")
	require.NoError(t, err)
	assert.Equal(t, 0, item.LikesCount)
	assert.False(t, item.IsLikedByCurrentUser)
}

func TestItemsReturnsCopy(t *testing.T) {
	f := newFixture(t, signedIn("u9"))
	f.load(t, twoItems())

	items := f.ctrl.Items()
	items[0].LikesCount = 100
	assert.Equal(t, 5, f.ctrl.Items()[0].LikesCount)
}

func TestShareItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &stubSession{})
	f.load(t, twoItems())

	f.sharer.EXPECT().Share(gomock.Any(), "Check out this video! https://cdn/v1.mp4").Return(nil)
	require.NoError(t, f.ctrl.ShareItem(ctx, "v1"))

	assert.ErrorIs(t, f.ctrl.ShareItem(ctx, "missing"), ErrItemNotFound)

	boom := errors.New("share sheet closed")
	f.sharer.EXPECT().Share(gomock.Any(), gomock.Any()).Return(boom)
	assert.ErrorIs(t, f.ctrl.ShareItem(ctx, "v2"), boom)
}
