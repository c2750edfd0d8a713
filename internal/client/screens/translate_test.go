package screens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/client/nav"
	"github.com/dmitrijs2005/vidtranslator/internal/client/services"
)

func assertNeverBoth(t *testing.T, tr *Translate) {
	t.Helper()
	assert.False(t, tr.ShowImport() && tr.ShowResult(), "import button and result shown together in %s", tr.Phase())
}

func TestTranslate_Phases(t *testing.T) {
	vs := &memVideoService{}
	tr := NewTranslate(&fakeTranslateService{videos: vs})
	ctx := context.Background()

	assert.Equal(t, PhaseImport, tr.Phase())
	assert.True(t, tr.ShowImport())
	assert.False(t, tr.ShowResult())
	_, lang, mode := tr.Form()
	assert.Equal(t, "fr", lang)
	assert.Equal(t, models.ModeVoice, mode)

	require.NoError(t, tr.Import("clip.mp4"))
	assert.Equal(t, PhaseSelected, tr.Phase())
	assertNeverBoth(t, tr)
	assert.Equal(t, "clip.mp4", tr.File().Name)

	tr.SetTitle("Clip")
	tr.SetTargetLang("en")
	require.NoError(t, tr.Submit(ctx, alice))
	assert.Equal(t, PhaseTranslated, tr.Phase())
	assert.True(t, tr.ShowResult())
	assert.False(t, tr.ShowImport())
	assert.Equal(t, "Vidéo traduite avec succès !", tr.Alert().Message)

	res := tr.Result()
	require.NotNil(t, res)
	require.NotNil(t, res.TranslatedURL)
	assert.Equal(t, "en", res.TargetLang)

	tr.SetMode(models.ModeBoth)
	tr.Reset()
	assert.Equal(t, PhaseImport, tr.Phase())
	assert.Nil(t, tr.Result())
	assertNeverBoth(t, tr)

	title, lang, mode := tr.Form()
	assert.Empty(t, title)
	assert.Equal(t, DefaultTargetLang, lang)
	assert.Equal(t, DefaultMode, mode)
}

func TestTranslate_ImportFailure(t *testing.T) {
	tr := NewTranslate(&fakeTranslateService{videos: &memVideoService{}})

	require.ErrorIs(t, tr.Import("notes.txt"), services.ErrNotVideo)
	assert.Equal(t, PhaseImport, tr.Phase())
	assert.Equal(t, "Le fichier sélectionné n'est pas une vidéo", tr.Alert().Message)
}

func TestTranslate_SubmitWithoutFile(t *testing.T) {
	fts := &fakeTranslateService{videos: &memVideoService{}}
	tr := NewTranslate(fts)

	require.ErrorIs(t, tr.Submit(context.Background(), alice), services.ErrNoFile)
	assert.Equal(t, "Veuillez importer une vidéo", tr.Alert().Message)
	assert.Zero(t, fts.calls)
}

func TestTranslate_FailureKeepsSelection(t *testing.T) {
	fts := &fakeTranslateService{videos: &memVideoService{}, err: errBoom}
	tr := NewTranslate(fts)
	require.NoError(t, tr.Import("clip.mp4"))

	require.Error(t, tr.Submit(context.Background(), alice))
	assert.Equal(t, PhaseSelected, tr.Phase())
	assert.Equal(t, "Erreur de traduction", tr.Alert().Message)
	assert.NotNil(t, tr.File())
	assertNeverBoth(t, tr)
}

func TestTranslate_RoundTripLabels(t *testing.T) {
	ctx := context.Background()
	vs := &memVideoService{}
	tr := NewTranslate(&fakeTranslateService{videos: vs})
	require.NoError(t, tr.Import("cours.mp4"))
	tr.SetTargetLang("es")
	tr.SetMode(models.ModeSubtitle)
	require.NoError(t, tr.Submit(ctx, alice))

	l := NewVideoList(vs)
	require.NoError(t, l.Load(ctx, alice))
	require.Len(t, l.Videos(), 1)
	v := l.Videos()[0]
	assert.Equal(t, "Espagnol", models.LanguageLabel(v.TargetLang))
	assert.Equal(t, "Sous-titres", models.ModeLabel(v.TranslationMode))
}

func TestEndToEnd_LoginHomeTranslate(t *testing.T) {
	ctx := context.Background()
	vs := &memVideoService{}
	vs.add("bob", "bob only", "fr", models.ModeVoice)
	vs.add("alice", "mine", "de", models.ModeVoice)
	auth := newFakeAuth()
	box := &sessionBox{}
	r := newRouter(box, nav.Home)
	assert.Equal(t, nav.To(nav.Login), r.Current())

	s, err := NewLogin(auth, r, box.set).Submit(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	home := NewHome(auth, vs, r, box.set)
	_, err = home.Load(ctx)
	require.NoError(t, err)
	for _, v := range home.Recent() {
		assert.Equal(t, "alice", v.UserID)
	}
	require.Len(t, home.Recent(), 1)

	require.NoError(t, r.Push(nav.To(nav.Translate)))
	tr := NewTranslate(&fakeTranslateService{videos: vs})
	require.NoError(t, tr.Import("lecture.mp4"))
	tr.SetTargetLang("en")
	require.NoError(t, tr.Submit(ctx, *s))

	assert.True(t, tr.ShowResult())
	assert.False(t, tr.ShowImport())
	require.NotNil(t, tr.Result().TranslatedURL)
	assert.NotEmpty(t, *tr.Result().TranslatedURL)
}
