package screens

import (
	"context"

	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/client/nav"
	"github.com/dmitrijs2005/vidtranslator/internal/client/services"
)

// Login signs a user in and moves to the home screen.
type Login struct {
	state
	auth       services.AuthService
	nav        Navigator
	setSession SessionSetter
}

func NewLogin(auth services.AuthService, n Navigator, set SessionSetter) *Login {
	return &Login{auth: auth, nav: n, setSession: set}
}

// Submit returns the new session. On failure the screen stays where it is.
func (l *Login) Submit(ctx context.Context, email, password string) (*models.Session, error) {
	if err := l.begin(); err != nil {
		return nil, err
	}
	s, err := l.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, l.fail(err, "Erreur lors de la connexion")
	}
	l.setSession(s)
	l.succeed("")
	_ = l.nav.Reset(nav.To(nav.Home))
	return s, nil
}

// SignUp registers a user.
type SignUp struct {
	state
	auth       services.AuthService
	nav        Navigator
	setSession SessionSetter
}

func NewSignUp(auth services.AuthService, n Navigator, set SessionSetter) *SignUp {
	return &SignUp{auth: auth, nav: n, setSession: set}
}

// Submit returns the new session, or nil when the account awaits e-mail
// confirmation; in that case the user is sent to the login screen.
func (u *SignUp) Submit(ctx context.Context, email, password, confirm string) (*models.Session, error) {
	if err := u.begin(); err != nil {
		return nil, err
	}
	s, err := u.auth.SignUp(ctx, email, password, confirm)
	if err != nil {
		return nil, u.fail(err, "Erreur lors de l'inscription")
	}
	if s == nil {
		u.succeed("Compte créé, confirmez votre adresse e-mail puis connectez-vous")
		_ = u.nav.Replace(nav.To(nav.Login))
		return nil, nil
	}
	u.setSession(s)
	u.succeed("Compte créé avec succès !")
	_ = u.nav.Reset(nav.To(nav.Home))
	return s, nil
}

// Profile changes the password and signs out.
type Profile struct {
	state
	auth       services.AuthService
	nav        Navigator
	setSession SessionSetter
	user       *models.User
}

func NewProfile(auth services.AuthService, n Navigator, set SessionSetter) *Profile {
	return &Profile{auth: auth, nav: n, setSession: set}
}

// Load verifies the session with the backend and fetches the account.
func (p *Profile) Load(ctx context.Context, s models.Session) error {
	if err := p.begin(); err != nil {
		return err
	}
	u, err := p.auth.User(ctx, s)
	if err != nil {
		return p.fail(err, "Erreur de vérification d'authentification")
	}
	p.mu.Lock()
	p.user = u
	p.mu.Unlock()
	p.succeed("")
	return nil
}

// User is the account loaded by Load, or nil.
func (p *Profile) User() *models.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.user == nil {
		return nil
	}
	u := *p.user
	return &u
}

func (p *Profile) ChangePassword(ctx context.Context, s models.Session, newPassword, confirm string) error {
	if err := p.begin(); err != nil {
		return err
	}
	if err := p.auth.UpdatePassword(ctx, s, newPassword, confirm); err != nil {
		return p.fail(err, "Impossible de modifier le mot de passe")
	}
	p.succeed("Mot de passe modifié avec succès")
	return nil
}

// Logout forgets the session and returns to the login screen. Callers ask
// for confirmation first.
func (p *Profile) Logout(ctx context.Context, s models.Session) error {
	if err := p.begin(); err != nil {
		return err
	}
	if err := p.auth.SignOut(ctx, s); err != nil {
		return p.fail(err, "Impossible de se déconnecter")
	}
	p.setSession(nil)
	p.mu.Lock()
	p.user = nil
	p.mu.Unlock()
	p.succeed("")
	_ = p.nav.Reset(nav.To(nav.Login))
	return nil
}
