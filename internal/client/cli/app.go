package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/vidtranslator/internal/client/client"
	"github.com/dmitrijs2005/vidtranslator/internal/client/config"
	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/client/nav"
	"github.com/dmitrijs2005/vidtranslator/internal/client/screens"
	"github.com/dmitrijs2005/vidtranslator/internal/client/services"
	"github.com/dmitrijs2005/vidtranslator/internal/logging"

	_ "modernc.org/sqlite"
)

// App is the terminal client. It owns the signed-in session and hands it to
// every screen action explicitly.
type App struct {
	log    logging.Logger
	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer

	authService services.AuthService
	router      *nav.Router
	session     *models.Session

	login     *screens.Login
	signUp    *screens.SignUp
	home      *screens.Home
	videoList *screens.VideoList
	search    *screens.Search
	detail    *screens.Detail
	edit      *screens.Edit
	translate *screens.Translate
	profile   *screens.Profile
}

// NewApp builds the adapters selected by c and the services on top of them.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.SessionDB, "error", err)
		return nil, err
	}

	objects, err := newObjectStore(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	auth := client.NewGoTrueAuth(c.SupabaseURL, c.SupabaseAnonKey)
	videos := client.NewPostgrestVideos(c.SupabaseURL, c.SupabaseAnonKey, log.With("component", "videos"))
	translator := client.NewHTTPTranslator(c.TranslatorURL, c.TranslatorTimeout)

	as := services.NewAuthService(auth, db, log.With("component", "auth"))
	vs := services.NewVideoService(videos, translator, c.HomeRecentLimit, log.With("component", "videos"))
	ts := services.NewTranslateService(objects, translator, videos, c.OriginalBucket, log.With("component", "translate"))

	a := newApp(as, vs, ts, c.SearchDebounce, log, bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db
	log.Debug(ctx, "client ready", "storage", c.StorageDriver, "translator", c.TranslatorURL)
	return a, nil
}

func newObjectStore(ctx context.Context, c *config.Config) (client.ObjectStore, error) {
	switch c.StorageDriver {
	case config.StorageS3:
		return client.NewS3Storage(ctx, client.S3Config{
			Endpoint:   c.S3EndpointURL(),
			Region:     c.S3Region,
			AccessKey:  c.S3AccessKey,
			SecretKey:  c.S3SecretKey,
			ProjectURL: c.SupabaseURL,
		})
	case config.StorageSupabase, "":
		return client.NewSupabaseStorage(c.SupabaseURL, c.SupabaseAnonKey), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
}

func newApp(as services.AuthService, vs services.VideoService, ts services.TranslateService,
	debounce time.Duration, log logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	a := &App{log: log, reader: reader, out: out, authService: as}
	a.router = nav.NewRouter(nav.To(nav.Home), a.isLoggedIn)

	a.login = screens.NewLogin(as, a.router, a.setSession)
	a.signUp = screens.NewSignUp(as, a.router, a.setSession)
	a.home = screens.NewHome(as, vs, a.router, a.setSession)
	a.videoList = screens.NewVideoList(vs)
	a.search = screens.NewSearch(vs, debounce)
	a.detail = screens.NewDetail(vs, a.router)
	a.edit = screens.NewEdit(vs)
	a.translate = screens.NewTranslate(ts)
	a.profile = screens.NewProfile(as, a.router, a.setSession)
	return a
}

func (a *App) setSession(s *models.Session) { a.session = s }

func (a *App) isLoggedIn() bool { return a.session != nil }

// refreshSession reloads the stored session before a guarded command,
// renewing it when the access token has expired. A session the backend no
// longer accepts ends with the user back on the login screen. When the
// backend cannot be reached the current session is kept.
func (a *App) refreshSession(ctx context.Context) error {
	if a.session == nil {
		return nil
	}
	s, err := a.authService.CurrentSession(ctx)
	switch {
	case err == nil:
		a.session = s
		return nil
	case errors.Is(err, services.ErrNoSession):
		a.expire(ctx)
		return err
	default:
		a.log.Warn(ctx, "session check failed", "error", err)
		return nil
	}
}

// expire forgets a rejected session and returns to the login screen.
func (a *App) expire(ctx context.Context) {
	if a.session != nil {
		// No access token: only the stored copy is cleared.
		if err := a.authService.SignOut(ctx, models.Session{UserID: a.session.UserID}); err != nil {
			a.log.Warn(ctx, "clear stored session", "error", err)
		}
	}
	a.session = nil
	_ = a.router.Reset(nav.To(nav.Login))
	a.showAlert(&screens.Alert{Title: screens.TitleError, Message: screens.MsgSessionExpired})
}

func (a *App) getStatus() string {
	s := a.router.Current().String()
	if a.session != nil && a.session.Email != "" {
		s = a.session.Email + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

// Run restores the saved session, if any, and runs the REPL until the user
// exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Bienvenue dans vidtranslator (tapez 'help' pour la liste des commandes)")
	if _, err := a.home.Load(ctx); err == nil {
		_ = a.router.Reset(nav.To(nav.Home))
		a.renderHome()
	} else {
		a.showAlert(a.home.Alert())
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close stops pending searches and closes the session database.
func (a *App) Close() {
	a.search.Close()
	if a.db != nil {
		_ = a.db.Close()
	}
}
