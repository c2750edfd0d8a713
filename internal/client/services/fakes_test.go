package services

import (
	"context"
	"database/sql"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/vidtranslator/internal/client/client"
	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, client.RunMigrations(context.Background(), db))
	return db
}

// fakeAuth implements client.AuthClient.
type fakeAuth struct {
	signUpSession *models.Session
	signUpErr     error
	signInSession *models.Session
	signInErr     error
	signOutErr    error
	updateErr     error
	refreshed     *models.Session
	refreshErr    error
	userErr       error

	calls        []string
	lastPassword string
	lastRefresh  string
}

func (f *fakeAuth) SignUp(_ context.Context, email, password string) (*models.Session, error) {
	f.calls = append(f.calls, "signup")
	f.lastPassword = password
	return f.signUpSession, f.signUpErr
}

func (f *fakeAuth) SignIn(_ context.Context, email, password string) (*models.Session, error) {
	f.calls = append(f.calls, "signin")
	f.lastPassword = password
	return f.signInSession, f.signInErr
}

func (f *fakeAuth) SignOut(context.Context, models.Session) error {
	f.calls = append(f.calls, "signout")
	return f.signOutErr
}

func (f *fakeAuth) UpdatePassword(_ context.Context, _ models.Session, pw string) error {
	f.calls = append(f.calls, "update")
	f.lastPassword = pw
	return f.updateErr
}

func (f *fakeAuth) GetUser(_ context.Context, s models.Session) (*models.User, error) {
	f.calls = append(f.calls, "getuser")
	if f.userErr != nil {
		return nil, f.userErr
	}
	return &models.User{ID: s.UserID, Email: s.Email}, nil
}

func (f *fakeAuth) Refresh(_ context.Context, rt string) (*models.Session, error) {
	f.calls = append(f.calls, "refresh")
	f.lastRefresh = rt
	return f.refreshed, f.refreshErr
}

// memVideos is an in-memory client.VideoStore that honours user scoping.
type memVideos struct {
	mu     sync.Mutex
	rows   []models.Video
	nextID int
	err    error
	calls  int

	lastLimit int
	lastPatch models.VideoPatch
}

func (m *memVideos) List(_ context.Context, s models.Session, limit int) ([]models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	out := m.owned(s)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memVideos) Search(_ context.Context, s models.Session, text string) ([]models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	text = strings.ToLower(strings.TrimSpace(text))
	out := []models.Video{}
	for _, v := range m.owned(s) {
		if strings.Contains(strings.ToLower(v.Title), text) ||
			strings.Contains(v.TargetLang, text) ||
			strings.Contains(string(v.TranslationMode), text) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memVideos) Get(_ context.Context, s models.Session, id string) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	for _, v := range m.owned(s) {
		if v.ID.String() == id {
			return &v, nil
		}
	}
	return nil, client.ErrNotFound
}

func (m *memVideos) Insert(_ context.Context, s models.Session, nv models.NewVideo) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	tr := nv.TranslatedURL
	v := models.Video{
		ID:              models.ID(strconv.Itoa(m.nextID)),
		UserID:          s.UserID,
		Title:           nv.Title,
		OriginalURL:     nv.OriginalURL,
		TranslatedURL:   &tr,
		SubtitleURL:     nv.SubtitleURL,
		TargetLang:      nv.TargetLang,
		TranslationMode: nv.TranslationMode,
		CreatedAt:       time.Date(2025, 1, 1, 0, 0, m.nextID, 0, time.UTC),
	}
	m.rows = append(m.rows, v)
	return &v, nil
}

func (m *memVideos) Update(_ context.Context, s models.Session, id string, p models.VideoPatch) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastPatch = p
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.rows {
		v := &m.rows[i]
		if v.ID.String() != id || v.UserID != s.UserID {
			continue
		}
		if p.Title != nil {
			v.Title = *p.Title
		}
		if p.TargetLang != nil {
			v.TargetLang = *p.TargetLang
		}
		if p.TranslationMode != nil {
			v.TranslationMode = *p.TranslationMode
		}
		out := *v
		return &out, nil
	}
	return nil, client.ErrNotFound
}

func (m *memVideos) Delete(_ context.Context, s models.Session, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	for i, v := range m.rows {
		if v.ID.String() == id && v.UserID == s.UserID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return client.ErrNotFound
}

func (m *memVideos) owned(s models.Session) []models.Video {
	out := []models.Video{}
	for _, v := range m.rows {
		if v.UserID == s.UserID {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type fakeObjects struct {
	uploads []string
	types   []string
	err     error
}

func (f *fakeObjects) Upload(_ context.Context, _ models.Session, bucket, key, ct string, _ []byte) error {
	if f.err != nil {
		return f.err
	}
	f.uploads = append(f.uploads, bucket+"/"+key)
	f.types = append(f.types, ct)
	return nil
}

func (f *fakeObjects) PublicURL(bucket, key string) string {
	return "https://proj.supabase.co/storage/v1/object/public/" + bucket + "/" + key
}

type fakeTranslator struct {
	result   *models.TranslateResult
	err      error
	requests []models.TranslateRequest
	retrans  []models.RetranslateRequest
}

func (f *fakeTranslator) Translate(_ context.Context, req models.TranslateRequest) (*models.TranslateResult, error) {
	f.requests = append(f.requests, req)
	return f.result, f.err
}

func (f *fakeTranslator) Retranslate(_ context.Context, req models.RetranslateRequest) (*models.TranslateResult, error) {
	f.retrans = append(f.retrans, req)
	if f.err != nil {
		return nil, f.err
	}
	return &models.TranslateResult{}, nil
}

func ptr[T any](v T) *T { return &v }

var (
	aliceSession = models.Session{AccessToken: "at-alice", RefreshToken: "rt-alice", UserID: "alice", Email: "alice@example.com"}
	bobSession   = models.Session{AccessToken: "at-bob", UserID: "bob"}
)

func seedVideo(m *memVideos, user, title, lang string, mode models.TranslationMode) models.Video {
	m.nextID++
	v := models.Video{
		ID:              models.ID(strconv.Itoa(m.nextID)),
		UserID:          user,
		Title:           title,
		OriginalURL:     "https://o/" + title + ".mp4",
		TargetLang:      lang,
		TranslationMode: mode,
		CreatedAt:       time.Date(2024, 1, 1, 0, 0, m.nextID, 0, time.UTC),
	}
	m.rows = append(m.rows, v)
	return v
}
