package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"promptito-be/internal/config"
	"promptito-be/internal/dto"
	"promptito-be/internal/entity"
	"promptito-be/internal/pkg/apperror"
	"promptito-be/internal/pkg/logger"
	"promptito-be/internal/repository/cache"
	"promptito-be/internal/repository/memory"
	"promptito-be/pkg/builder/segment"
	"promptito-be/pkg/events"
	"promptito-be/pkg/i18n"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var galleryTr = i18n.Map{"gallery.fork": "(fork)"}

type galleryFixture struct {
	store     *fakeStore
	drafts    *memory.LocalDraftRepository
	publisher *fakePublisher
	views     *fakeViews
	mailer    *fakeMailer
	svc       IGalleryService
}

func newGalleryFixture() *galleryFixture {
	f := &galleryFixture{
		store:     newFakeStore(),
		drafts:    memory.NewLocalDraftRepository(time.Hour),
		publisher: &fakePublisher{},
		views:     &fakeViews{},
		mailer:    &fakeMailer{},
	}
	f.svc = NewGalleryService(
		f.store,
		f.drafts,
		(*cache.GalleryCache)(nil),
		f.views,
		f.publisher,
		f.mailer,
		config.FeatureFlags{Publishing: true, Gallery: true, Moderation: true},
		"https://promptito.test/",
		"mods@promptito.test",
		logger.NewNop(),
	)
	return f
}

func publicPrompt(owner uuid.UUID, slug string) entity.Prompt {
	return entity.Prompt{
		OwnerId:    owner,
		Title:      "Release notes",
		Slug:       slug,
		Visibility: entity.VisibilityPublic,
		Status:     entity.StatusActive,
		Structure:  "BAB",
		Macro:      "BAB",
		Tags:       []string{"dev"},
	}
}

func TestCanView(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	listed := &entity.Prompt{OwnerId: owner, Visibility: entity.VisibilityPublic, Status: entity.StatusActive}
	hidden := &entity.Prompt{OwnerId: owner, Visibility: entity.VisibilityPublic, Status: entity.StatusHidden}
	private := &entity.Prompt{OwnerId: owner, Visibility: entity.VisibilityPrivate, Status: entity.StatusActive}

	tests := []struct {
		name   string
		prompt *entity.Prompt
		actor  Actor
		want   bool
	}{
		{"listed anonymous", listed, Actor{}, true},
		{"hidden anonymous", hidden, Actor{ClientID: "c1"}, false},
		{"hidden stranger", hidden, Actor{UserID: other}, false},
		{"hidden owner", hidden, Actor{UserID: owner}, true},
		{"hidden admin", hidden, Actor{UserID: other, IsAdmin: true}, true},
		{"private anonymous", private, Actor{}, false},
		{"private signed in", private, Actor{UserID: other}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canView(tt.prompt, tt.actor))
		})
	}
}

func TestGalleryDisabledWithoutStore(t *testing.T) {
	svc := NewGalleryService(nil, memory.NewLocalDraftRepository(time.Hour), nil, nil, nil, nil,
		config.FeatureFlags{}, "", "", logger.NewNop())

	_, err := svc.List(context.Background(), Actor{}, &dto.GalleryQuery{})
	assert.ErrorIs(t, err, apperror.ErrFeatureDisabled)
	_, err = svc.Mine(context.Background(), Actor{UserID: uuid.New()})
	assert.ErrorIs(t, err, apperror.ErrFeatureDisabled)
}

func TestListMarksFavoritesPerCaller(t *testing.T) {
	f := newGalleryFixture()
	ctx := context.Background()
	user := uuid.New()
	p := f.store.addPrompt(publicPrompt(uuid.New(), "a"))
	f.store.addPrompt(publicPrompt(uuid.New(), "b"))
	hidden := publicPrompt(uuid.New(), "c")
	hidden.Status = entity.StatusHidden
	f.store.addPrompt(hidden)

	_, err := f.svc.SetFavorite(ctx, Actor{UserID: user}, p.Id, true)
	require.NoError(t, err)

	res, err := f.svc.List(ctx, Actor{UserID: user}, &dto.GalleryQuery{Macro: "all"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	assert.Equal(t, defaultGalleryLimit, res.Limit)
	for _, it := range res.Items {
		assert.Equal(t, it.Id == p.Id, it.IsFavorite, it.Slug)
	}

	anon, err := f.svc.List(ctx, Actor{}, &dto.GalleryQuery{})
	require.NoError(t, err)
	for _, it := range anon.Items {
		assert.False(t, it.IsFavorite)
	}
}

func TestDetailHidesWhatTheCallerCannotSee(t *testing.T) {
	f := newGalleryFixture()
	ctx := context.Background()
	owner := uuid.New()

	hidden := publicPrompt(owner, "hidden-one")
	hidden.Status = entity.StatusHidden
	f.store.addPrompt(hidden)

	_, err := f.svc.Detail(ctx, Actor{}, galleryTr, "hidden-one")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = f.svc.Detail(ctx, Actor{UserID: uuid.New()}, galleryTr, "hidden-one")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = f.svc.Detail(ctx, Actor{}, galleryTr, "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	detail, err := f.svc.Detail(ctx, Actor{UserID: owner}, galleryTr, "hidden-one")
	require.NoError(t, err)
	assert.True(t, detail.IsOwner)
	assert.Empty(t, f.views.ids, "views are only counted for listed prompts")
}

func TestDetailRecordsView(t *testing.T) {
	f := newGalleryFixture()
	p := f.store.addPrompt(publicPrompt(uuid.New(), "listed"))

	detail, err := f.svc.Detail(context.Background(), Actor{}, galleryTr, "listed")
	require.NoError(t, err)
	assert.Equal(t, p.Id, detail.Id)
	assert.False(t, detail.IsOwner)
	assert.Equal(t, []uuid.UUID{p.Id}, f.views.ids)
}

func TestSetFavoriteIsIdempotent(t *testing.T) {
	f := newGalleryFixture()
	ctx := context.Background()
	owner := uuid.New()
	user := Actor{UserID: uuid.New()}
	p := f.store.addPrompt(publicPrompt(owner, "fav"))

	res, err := f.svc.SetFavorite(ctx, user, p.Id, true)
	require.NoError(t, err)
	assert.True(t, res.IsFavorite)
	assert.Equal(t, int64(1), res.FavoritesCount)

	res, err = f.svc.SetFavorite(ctx, user, p.Id, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.FavoritesCount)
	assert.Equal(t, int64(1), f.store.prompt(p.Id).FavoritesCount)
	assert.Equal(t, []string{events.PromptFavorited}, f.publisher.types())

	payload := f.publisher.last().Payload()
	assert.Equal(t, owner.String(), payload["owner_id"])
	assert.Equal(t, user.UserID.String(), payload["actor_id"])

	res, err = f.svc.SetFavorite(ctx, user, p.Id, false)
	require.NoError(t, err)
	assert.False(t, res.IsFavorite)
	assert.Equal(t, int64(0), f.store.prompt(p.Id).FavoritesCount)

	favorites, err := f.svc.Favorites(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestSetFavoriteRequiresSignIn(t *testing.T) {
	f := newGalleryFixture()
	p := f.store.addPrompt(publicPrompt(uuid.New(), "fav"))
	_, err := f.svc.SetFavorite(context.Background(), Actor{ClientID: "c1"}, p.Id, true)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestFavoritesSkipsPromptsNoLongerVisible(t *testing.T) {
	f := newGalleryFixture()
	ctx := context.Background()
	user := Actor{UserID: uuid.New()}
	keep := f.store.addPrompt(publicPrompt(uuid.New(), "keep"))
	gone := f.store.addPrompt(publicPrompt(uuid.New(), "gone"))

	for _, id := range []uuid.UUID{keep.Id, gone.Id} {
		_, err := f.svc.SetFavorite(ctx, user, id, true)
		require.NoError(t, err)
	}
	require.NoError(t, fakePrompts{f.store}.SetStatus(ctx, gone.Id, entity.StatusHidden, nil))

	favorites, err := f.svc.Favorites(ctx, user)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, keep.Id, favorites[0].Id)
	assert.True(t, favorites[0].IsFavorite)
}

func TestReportAcceptsAnonymousAndMailsModerators(t *testing.T) {
	f := newGalleryFixture()
	p := f.store.addPrompt(publicPrompt(uuid.New(), "spam"))

	res, err := f.svc.Report(context.Background(), Actor{}, p.Id, &dto.ReportRequest{Reason: "  spam  ", Details: "links"})
	require.NoError(t, err)
	assert.Nil(t, res.ReporterId)
	assert.Equal(t, "spam", res.Reason)
	assert.Equal(t, entity.ReportOpen, res.Status)

	assert.Equal(t, []string{events.PromptReported}, f.publisher.types())
	assert.Equal(t, res.Id.String(), f.publisher.last().Payload()["report_id"])

	require.Eventually(t, func() bool { return f.mailer.count() == 1 }, time.Second, 10*time.Millisecond)
	mail := f.mailer.first()
	assert.Equal(t, "mods@promptito.test", mail.to)
	assert.Equal(t, "spam", mail.reason)
}

func TestReportNeedsReason(t *testing.T) {
	f := newGalleryFixture()
	p := f.store.addPrompt(publicPrompt(uuid.New(), "spam"))
	_, err := f.svc.Report(context.Background(), Actor{}, p.Id, &dto.ReportRequest{Reason: "   "})
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestForkSignedInCreatesPrivateCopy(t *testing.T) {
	f := newGalleryFixture()
	owner := uuid.New()
	forker := Actor{UserID: uuid.New()}
	src := f.store.addPrompt(publicPrompt(owner, "release-notes"))

	res, err := f.svc.Fork(context.Background(), forker, galleryTr, src.Id)
	require.NoError(t, err)
	require.NotNil(t, res.Prompt)
	assert.Nil(t, res.Draft)

	fork := f.store.prompt(res.Prompt.Id)
	assert.Equal(t, forker.UserID, fork.OwnerId)
	assert.Equal(t, entity.VisibilityPrivate, fork.Visibility)
	assert.Equal(t, "Release notes (fork)", fork.Title)
	assert.True(t, strings.HasPrefix(fork.Slug, "release-notes-fork"), fork.Slug)
	assert.Equal(t, []string{"dev"}, fork.Tags)

	assert.Equal(t, []string{events.PromptForked}, f.publisher.types())
	assert.Equal(t, fork.Id.String(), f.publisher.last().Payload()["fork_id"])
}

func TestForkAnonymousKeepsLocalDraft(t *testing.T) {
	f := newGalleryFixture()
	src := f.store.addPrompt(publicPrompt(uuid.New(), "release-notes"))

	_, err := f.svc.Fork(context.Background(), Actor{}, galleryTr, src.Id)
	assert.ErrorIs(t, err, ErrClientIDRequired)

	res, err := f.svc.Fork(context.Background(), Actor{ClientID: "browser-1"}, galleryTr, src.Id)
	require.NoError(t, err)
	require.NotNil(t, res.Draft)
	assert.Equal(t, StoredLocal, res.Draft.Stored)

	draft, ok := f.drafts.Get("client:browser-1")
	require.True(t, ok)
	assert.Equal(t, "Release notes (fork)", draft.State.Title)
	assert.Empty(t, f.publisher.types())
}

func TestForkStateFallsBackToRecordFields(t *testing.T) {
	p := &entity.Prompt{Title: "Pitch", Structure: "BAB", Tags: []string{"sales"}, BuilderState: []byte("{broken")}
	st := forkState(p, galleryTr)

	assert.Equal(t, "Pitch (fork)", st.Title)
	assert.Equal(t, "BAB", st.Structure)
	assert.Equal(t, "BAB", st.Macro)
	assert.Equal(t, []string{"sales"}, st.Tags)
	assert.True(t, st.OnboardingCompleted)
	assert.Equal(t, segment.Context, st.SegmentOrder[0])
}

func TestUpdateVisibilityAndDeleteNeedOwnership(t *testing.T) {
	f := newGalleryFixture()
	ctx := context.Background()
	owner := Actor{UserID: uuid.New()}
	p := f.store.addPrompt(publicPrompt(owner.UserID, "mine"))
	req := &dto.UpdateVisibilityRequest{Visibility: entity.VisibilityPrivate}

	_, err := f.svc.UpdateVisibility(ctx, Actor{UserID: uuid.New()}, p.Id, req)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	_, err = f.svc.UpdateVisibility(ctx, Actor{}, p.Id, req)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	res, err := f.svc.UpdateVisibility(ctx, owner, p.Id, req)
	require.NoError(t, err)
	assert.Equal(t, entity.VisibilityPrivate, res.Visibility)

	assert.ErrorIs(t, f.svc.Delete(ctx, Actor{UserID: uuid.New()}, p.Id), apperror.ErrForbidden)
	require.NoError(t, f.svc.Delete(ctx, Actor{UserID: uuid.New(), IsAdmin: true}, p.Id))
	assert.ErrorIs(t, f.svc.Delete(ctx, owner, p.Id), apperror.ErrNotFound)
}
