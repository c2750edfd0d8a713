package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vidtranslator/internal/client/client"
	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/logging"
)

func newVideoSvc(store *memVideos, tr *fakeTranslator) VideoService {
	return NewVideoService(store, tr, 2, logging.Nop())
}

func TestVideoService_ListIsScopedAndOrdered(t *testing.T) {
	store := &memVideos{}
	seedVideo(store, "alice", "first", "fr", models.ModeVoice)
	seedVideo(store, "bob", "bobs", "de", models.ModeVoice)
	seedVideo(store, "alice", "second", "es", models.ModeSubtitle)
	seedVideo(store, "alice", "third", "it", models.ModeBoth)
	svc := newVideoSvc(store, &fakeTranslator{})

	all, err := svc.List(context.Background(), aliceSession)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"third", "second", "first"}, titles(all))
	assert.Equal(t, 0, store.lastLimit)

	recent, err := svc.Recent(context.Background(), aliceSession)
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "second"}, titles(recent))
	assert.Equal(t, 2, store.lastLimit)
}

func TestVideoService_RequiresSession(t *testing.T) {
	store := &memVideos{}
	svc := newVideoSvc(store, &fakeTranslator{})
	ctx := context.Background()

	_, err := svc.List(ctx, models.Session{})
	require.ErrorIs(t, err, ErrNoSession)
	_, err = svc.Recent(ctx, models.Session{})
	require.ErrorIs(t, err, ErrNoSession)
	_, err = svc.Get(ctx, models.Session{}, "1")
	require.ErrorIs(t, err, ErrNoSession)
	require.ErrorIs(t, svc.Delete(ctx, models.Session{}, "1"), ErrNoSession)
	assert.Zero(t, store.calls)
}

func TestVideoService_BlankSearchMakesNoCall(t *testing.T) {
	store := &memVideos{}
	seedVideo(store, "alice", "Cooking", "fr", models.ModeVoice)
	svc := newVideoSvc(store, &fakeTranslator{})

	for _, q := range []string{"", "   ", "\t"} {
		got, err := svc.Search(context.Background(), aliceSession, q)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
	assert.Zero(t, store.calls)

	got, err := svc.Search(context.Background(), aliceSession, " cook ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cooking"}, titles(got))
	assert.Equal(t, 1, store.calls)
}

func TestVideoService_SearchNeverLeaksOtherUsers(t *testing.T) {
	store := &memVideos{}
	seedVideo(store, "bob", "Cooking", "fr", models.ModeVoice)
	svc := newVideoSvc(store, &fakeTranslator{})

	got, err := svc.Search(context.Background(), aliceSession, "cook")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestVideoService_SaveMetadata(t *testing.T) {
	ctx := context.Background()
	store := &memVideos{}
	v := seedVideo(store, "alice", "Old", "fr", models.ModeVoice)
	svc := newVideoSvc(store, &fakeTranslator{})

	t.Run("blank title rejected", func(t *testing.T) {
		_, err := svc.SaveMetadata(ctx, aliceSession, v.ID.String(), models.VideoPatch{Title: ptr("  ")})
		require.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("unknown language rejected", func(t *testing.T) {
		_, err := svc.SaveMetadata(ctx, aliceSession, v.ID.String(), models.VideoPatch{TargetLang: ptr("xx")})
		require.ErrorIs(t, err, ErrUnsupportedLanguage)
	})

	t.Run("unknown mode rejected", func(t *testing.T) {
		_, err := svc.SaveMetadata(ctx, aliceSession, v.ID.String(), models.VideoPatch{TranslationMode: ptr(models.TranslationMode("dub"))})
		require.Error(t, err)
	})

	t.Run("title trimmed and saved", func(t *testing.T) {
		got, err := svc.SaveMetadata(ctx, aliceSession, v.ID.String(), models.VideoPatch{Title: ptr("  New  ")})
		require.NoError(t, err)
		assert.Equal(t, "New", got.Title)
		assert.Equal(t, "New", *store.lastPatch.Title)
		assert.Equal(t, "fr", got.TargetLang)
	})

	t.Run("foreign video not found", func(t *testing.T) {
		_, err := svc.SaveMetadata(ctx, bobSession, v.ID.String(), models.VideoPatch{Title: ptr("Hack")})
		require.ErrorIs(t, err, client.ErrNotFound)
	})
}

func TestVideoService_Retranslate(t *testing.T) {
	ctx := context.Background()
	store := &memVideos{}
	v := seedVideo(store, "alice", "Talk", "fr", models.ModeVoice)

	t.Run("needs original url", func(t *testing.T) {
		tr := &fakeTranslator{}
		svc := newVideoSvc(store, tr)
		noURL := v
		noURL.OriginalURL = " "
		require.ErrorIs(t, svc.Retranslate(ctx, aliceSession, noURL, "es", models.ModeVoice), ErrNoOriginalURL)
		assert.Empty(t, tr.retrans)
	})

	t.Run("validates language", func(t *testing.T) {
		tr := &fakeTranslator{}
		svc := newVideoSvc(store, tr)
		require.ErrorIs(t, svc.Retranslate(ctx, aliceSession, v, "klingon", models.ModeVoice), ErrUnsupportedLanguage)
		assert.Empty(t, tr.retrans)
	})

	t.Run("sends request", func(t *testing.T) {
		tr := &fakeTranslator{}
		svc := newVideoSvc(store, tr)
		require.NoError(t, svc.Retranslate(ctx, aliceSession, v, "es", models.ModeSubtitle))
		require.Len(t, tr.retrans, 1)
		assert.Equal(t, models.RetranslateRequest{
			VideoID:         v.ID.String(),
			VideoURL:        v.OriginalURL,
			TargetLang:      "es",
			TranslationMode: models.ModeSubtitle,
		}, tr.retrans[0])
	})

	t.Run("backend failure surfaces", func(t *testing.T) {
		tr := &fakeTranslator{err: client.ErrUnavailable}
		svc := newVideoSvc(store, tr)
		require.ErrorIs(t, svc.Retranslate(ctx, aliceSession, v, "es", models.ModeVoice), client.ErrUnavailable)
	})
}

func TestVideoService_Delete(t *testing.T) {
	ctx := context.Background()
	store := &memVideos{}
	v := seedVideo(store, "alice", "Talk", "fr", models.ModeVoice)
	svc := newVideoSvc(store, &fakeTranslator{})

	require.ErrorIs(t, svc.Delete(ctx, bobSession, v.ID.String()), client.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, aliceSession, v.ID.String()))
	_, err := svc.Get(ctx, aliceSession, v.ID.String())
	require.ErrorIs(t, err, client.ErrNotFound)
}

func titles(vs []models.Video) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Title)
	}
	return out
}
