package screens

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/vidtranslator/internal/client/client"
	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/client/nav"
	"github.com/dmitrijs2005/vidtranslator/internal/client/services"
)

var (
	alice = models.Session{AccessToken: "at-a", UserID: "alice", Email: "alice@example.com"}
	bob   = models.Session{AccessToken: "at-b", UserID: "bob", Email: "bob@example.com"}
)

// fakeAuthService accepts one e-mail/password pair per user.
type fakeAuthService struct {
	users   map[string]models.Session
	current *models.Session
	err     error
	pending bool
}

func newFakeAuth() *fakeAuthService {
	return &fakeAuthService{users: map[string]models.Session{
		"alice@example.com/secret1": alice,
		"bob@example.com/secret2":   bob,
	}}
}

func (f *fakeAuthService) SignUp(_ context.Context, email, password, confirm string) (*models.Session, error) {
	if email == "" || password == "" || confirm == "" {
		return nil, services.ErrMissingFields
	}
	if password != confirm {
		return nil, services.ErrPasswordMismatch
	}
	if f.pending {
		return nil, nil
	}
	s := models.Session{AccessToken: "at-new", UserID: "new", Email: email}
	f.current = &s
	return &s, nil
}

func (f *fakeAuthService) SignIn(_ context.Context, email, password string) (*models.Session, error) {
	if email == "" || password == "" {
		return nil, services.ErrMissingFields
	}
	s, ok := f.users[email+"/"+password]
	if !ok {
		return nil, &client.BackendError{Status: 400, Message: "Invalid login credentials"}
	}
	f.current = &s
	return &s, nil
}

func (f *fakeAuthService) SignOut(context.Context, models.Session) error {
	f.current = nil
	return nil
}

func (f *fakeAuthService) UpdatePassword(_ context.Context, _ models.Session, pw, confirm string) error {
	if pw != confirm {
		return services.ErrPasswordMismatch
	}
	return f.err
}

func (f *fakeAuthService) User(_ context.Context, s models.Session) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: s.UserID, Email: s.Email}, nil
}

func (f *fakeAuthService) CurrentSession(context.Context) (*models.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.current == nil {
		return nil, services.ErrNoSession
	}
	s := *f.current
	return &s, nil
}

// memVideoService keeps rows per user and mimics the backend retranslation
// by rewriting the row.
type memVideoService struct {
	mu      sync.Mutex
	rows    []models.Video
	next    int
	err     error
	calls   int
	block   chan struct{}
	started chan string
}

func (m *memVideoService) add(user, title, lang string, mode models.TranslationMode) models.Video {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	tr := "https://cdn/" + strconv.Itoa(m.next) + ".mp4"
	v := models.Video{
		ID: models.ID(strconv.Itoa(m.next)), UserID: user, Title: title,
		OriginalURL: "https://o/" + strconv.Itoa(m.next) + ".mp4", TranslatedURL: &tr,
		TargetLang: lang, TranslationMode: mode,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, m.next, 0, time.UTC),
	}
	m.rows = append(m.rows, v)
	return v
}

func (m *memVideoService) owned(s models.Session) []models.Video {
	out := []models.Video{}
	for _, v := range m.rows {
		if v.UserID == s.UserID {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memVideoService) List(_ context.Context, s models.Session) ([]models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.owned(s), nil
}

func (m *memVideoService) Recent(ctx context.Context, s models.Session) ([]models.Video, error) {
	vs, err := m.List(ctx, s)
	if len(vs) > 2 {
		vs = vs[:2]
	}
	return vs, err
}

func (m *memVideoService) Search(_ context.Context, s models.Session, q string) ([]models.Video, error) {
	if m.started != nil {
		m.started <- q
	}
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if strings.TrimSpace(q) == "" {
		return []models.Video{}, nil
	}
	if m.err != nil {
		return nil, m.err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	out := []models.Video{}
	for _, v := range m.owned(s) {
		if strings.Contains(strings.ToLower(v.Title), q) || strings.Contains(v.TargetLang, q) ||
			strings.Contains(string(v.TranslationMode), q) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memVideoService) Get(_ context.Context, s models.Session, id string) (*models.Video, error) {
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

func (m *memVideoService) find(s models.Session, id string) *models.Video {
	for i := range m.rows {
		if m.rows[i].ID.String() == id && m.rows[i].UserID == s.UserID {
			return &m.rows[i]
		}
	}
	return nil
}

func (m *memVideoService) SaveMetadata(_ context.Context, s models.Session, id string, p models.VideoPatch) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return nil, services.ErrEmptyTitle
	}
	v := m.find(s, id)
	if v == nil {
		return nil, client.ErrNotFound
	}
	if p.Title != nil {
		v.Title = strings.TrimSpace(*p.Title)
	}
	out := *v
	return &out, nil
}

func (m *memVideoService) Retranslate(_ context.Context, s models.Session, video models.Video, lang string, mode models.TranslationMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if video.OriginalURL == "" {
		return services.ErrNoOriginalURL
	}
	if m.err != nil {
		return m.err
	}
	v := m.find(s, video.ID.String())
	if v == nil {
		return client.ErrNotFound
	}
	v.TargetLang, v.TranslationMode = lang, mode
	return nil
}

func (m *memVideoService) Delete(_ context.Context, s models.Session, id string) error {
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

// fakeTranslateService records translated videos in a memVideoService.
type fakeTranslateService struct {
	videos *memVideoService
	err    error
	calls  int
}

func (f *fakeTranslateService) PickFile(path string) (*models.LocalFile, error) {
	switch {
	case strings.TrimSpace(path) == "":
		return nil, services.ErrNoFile
	case strings.HasSuffix(path, ".txt"):
		return nil, services.ErrNotVideo
	}
	return &models.LocalFile{Path: path, Name: path, MIMEType: "video/mp4", Data: []byte("ftyp")}, nil
}

func (f *fakeTranslateService) Translate(_ context.Context, s models.Session, file *models.LocalFile, title, lang string, mode models.TranslationMode) (*models.Video, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if !models.IsSupportedLanguage(lang) {
		return nil, services.ErrUnsupportedLanguage
	}
	if title == "" {
		title = file.Name
	}
	v := f.videos.add(s.UserID, title, lang, mode)
	return &v, nil
}

// sessionBox is what the terminal app uses to hold the signed-in session.
type sessionBox struct{ s *models.Session }

func (b *sessionBox) set(s *models.Session) { b.s = s }
func (b *sessionBox) authed() bool         { return b.s != nil }

func newRouter(box *sessionBox, start nav.Name) *nav.Router {
	return nav.NewRouter(nav.To(start), box.authed)
}

var errBoom = errors.New("boom")
