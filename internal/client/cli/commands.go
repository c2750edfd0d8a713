package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vidtranslator/internal/client/client"
	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/client/nav"
	"github.com/dmitrijs2005/vidtranslator/internal/client/screens"
	"github.com/dmitrijs2005/vidtranslator/internal/client/services"
)

// getSimpleText, getPassword and confirm are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getDefault    = GetDefault
	confirm       = Confirm
)

var errCancelled = errors.New("cancelled")

// open moves to r, reporting a missing session to the user. The session is
// refreshed first so the command runs with a valid token.
func (a *App) open(ctx context.Context, r nav.Route) error {
	if err := a.refreshSession(ctx); err != nil {
		return err
	}
	err := a.router.Push(r)
	if errors.Is(err, nav.ErrNotAuthenticated) {
		a.session = nil
		printlnFn("Veuillez vous connecter (commande login).")
	}
	return err
}

// fail reports a failed action. A token the backend rejected ends the
// session instead of showing the screen's alert.
func (a *App) fail(ctx context.Context, al *screens.Alert, err error) error {
	if errors.Is(err, client.ErrUnauthorized) && a.session != nil {
		a.expire(ctx)
		return err
	}
	a.showAlert(al)
	return err
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "E-mail", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Mot de passe", a.out)
	if err != nil {
		return err
	}
	if _, err := a.login.Submit(ctx, email, password); err != nil {
		a.showAlert(a.login.Alert())
		return err
	}
	return a.Home(ctx)
}

func (a *App) SignUp(ctx context.Context) error {
	_ = a.router.Push(nav.To(nav.SignUp))
	email, err := getSimpleText(a.reader, "E-mail", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Mot de passe", a.out)
	if err != nil {
		return err
	}
	again, err := getPassword(a.reader, "Confirmer le mot de passe", a.out)
	if err != nil {
		return err
	}
	s, err := a.signUp.Submit(ctx, email, password, again)
	a.showAlert(a.signUp.Alert())
	if err != nil || s == nil {
		return err
	}
	return a.Home(ctx)
}

func (a *App) Home(ctx context.Context) error {
	if a.session == nil {
		printlnFn("Veuillez vous connecter (commande login).")
		return services.ErrNoSession
	}
	if err := a.router.Reset(nav.To(nav.Home)); err != nil {
		return err
	}
	if _, err := a.home.Load(ctx); err != nil {
		if errors.Is(err, services.ErrNoSession) {
			a.showAlert(&screens.Alert{Title: screens.TitleError, Message: screens.MsgSessionExpired})
			return err
		}
		return a.fail(ctx, a.home.Alert(), err)
	}
	a.renderHome()
	return nil
}

func (a *App) Videos(ctx context.Context) error {
	if err := a.open(ctx, nav.To(nav.Videos)); err != nil {
		return err
	}
	if err := a.videoList.Load(ctx, *a.session); err != nil {
		return a.fail(ctx, a.videoList.Alert(), err)
	}
	vs := a.videoList.Videos()
	printlnFn(fmt.Sprintf("Mes vidéos (%d)", len(vs)))
	renderVideos(vs)
	return nil
}

// Search runs query, or asks for one when it is empty.
func (a *App) Search(ctx context.Context, query string) error {
	if err := a.open(ctx, nav.To(nav.Search)); err != nil {
		return err
	}
	if query == "" {
		q, err := getSimpleText(a.reader, "Rechercher (titre, langue ou mode)", a.out)
		if err != nil {
			return err
		}
		query = q
	}
	a.search.Type(ctx, *a.session, query)
	a.search.Wait()

	if al := a.search.Alert(); al != nil {
		return a.fail(ctx, al, a.search.LastError())
	}
	renderVideos(a.search.Results())
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	if err := a.open(ctx, nav.DetailOf(id)); err != nil {
		return err
	}
	if err := a.detail.Load(ctx, *a.session, id); err != nil {
		return a.fail(ctx, a.detail.Alert(), err)
	}
	renderVideo(a.detail.Video())
	return nil
}

// Edit asks for the new title, language and mode, then offers whichever of
// the save and retranslate actions the changes reveal.
func (a *App) Edit(ctx context.Context, id string) error {
	if err := a.open(ctx, nav.EditOf(id)); err != nil {
		return err
	}
	defer a.router.Back()

	if err := a.edit.Load(ctx, *a.session, id); err != nil {
		return a.fail(ctx, a.edit.Alert(), err)
	}
	title, lang, mode := a.edit.Draft()

	newTitle, err := getDefault(a.reader, "Titre", title, a.out)
	if err != nil {
		return err
	}
	printlnFn(languageChoices())
	newLang, err := getDefault(a.reader, "Langue cible", lang, a.out)
	if err != nil {
		return err
	}
	printlnFn(modeChoices())
	newMode, err := getDefault(a.reader, "Mode", string(mode), a.out)
	if err != nil {
		return err
	}
	a.edit.SetTitle(newTitle)
	a.edit.SetTargetLang(newLang)
	a.edit.SetMode(models.TranslationMode(newMode))

	if !a.edit.TitleChanged() && !a.edit.TranslationChanged() {
		printlnFn("Aucune modification.")
		return nil
	}
	if a.edit.TitleChanged() {
		if ok, err := confirm(a.reader, "Enregistrer le nouveau titre ?", a.out); err != nil {
			return err
		} else if ok {
			if err := a.edit.Save(ctx, *a.session); err != nil {
				return a.fail(ctx, a.edit.Alert(), err)
			}
			a.showAlert(a.edit.Alert())
		}
	}
	if a.edit.TranslationChanged() {
		_, lang, mode := a.edit.Draft()
		q := fmt.Sprintf("Relancer la traduction (%s, %s) ?", models.LanguageLabel(lang), models.ModeLabel(mode))
		if ok, err := confirm(a.reader, q, a.out); err != nil {
			return err
		} else if ok {
			if err := a.edit.Retranslate(ctx, *a.session); err != nil {
				return a.fail(ctx, a.edit.Alert(), err)
			}
			a.showAlert(a.edit.Alert())
		}
	}
	if v := a.edit.Video(); v != nil {
		renderVideo(v)
	}
	return nil
}

// Delete removes a video after confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.open(ctx, nav.DetailOf(id)); err != nil {
		return err
	}
	if err := a.detail.Load(ctx, *a.session, id); err != nil {
		return a.fail(ctx, a.detail.Alert(), err)
	}
	v := a.detail.Video()
	ok, err := confirm(a.reader, fmt.Sprintf("Voulez-vous vraiment supprimer « %s » ?", v.Title), a.out)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Suppression annulée.")
		return errCancelled
	}
	if err := a.detail.Delete(ctx, *a.session); err != nil {
		return a.fail(ctx, a.detail.Alert(), err)
	}
	a.showAlert(a.detail.Alert())
	return nil
}

// Translate walks through import, form and submission.
func (a *App) Translate(ctx context.Context) error {
	if err := a.open(ctx, nav.To(nav.Translate)); err != nil {
		return err
	}
	a.translate.Reset()

	path, err := getSimpleText(a.reader, "Importer une vidéo (chemin du fichier)", a.out)
	if err != nil {
		return err
	}
	if err := a.translate.Import(path); err != nil {
		a.showAlert(a.translate.Alert())
		return err
	}
	f := a.translate.File()
	printlnFn(fmt.Sprintf("Vidéo sélectionnée : %s (%s, %d octets)", f.Name, f.MIMEType, f.Size()))

	_, lang, mode := a.translate.Form()
	title, err := getSimpleText(a.reader, "Titre (vide = nom du fichier)", a.out)
	if err != nil {
		return err
	}
	printlnFn(languageChoices())
	lang, err = getDefault(a.reader, "Langue cible", lang, a.out)
	if err != nil {
		return err
	}
	printlnFn(modeChoices())
	m, err := getDefault(a.reader, "Mode", string(mode), a.out)
	if err != nil {
		return err
	}
	a.translate.SetTitle(title)
	a.translate.SetTargetLang(lang)
	a.translate.SetMode(models.TranslationMode(m))

	printlnFn("Traduction en cours…")
	if err := a.translate.Submit(ctx, *a.session); err != nil {
		return a.fail(ctx, a.translate.Alert(), err)
	}
	a.showAlert(a.translate.Alert())
	renderVideo(a.translate.Result())
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	if err := a.open(ctx, nav.To(nav.Profile)); err != nil {
		return err
	}
	if err := a.profile.Load(ctx, *a.session); err != nil {
		return a.fail(ctx, a.profile.Alert(), err)
	}
	u := a.profile.User()
	printlnFn("Profil")
	printlnFn("  E-mail      :", u.Email)
	printlnFn("  Utilisateur :", u.ID)
	return nil
}

func (a *App) Passwd(ctx context.Context) error {
	if err := a.open(ctx, nav.To(nav.Profile)); err != nil {
		return err
	}
	pw, err := getPassword(a.reader, "Nouveau mot de passe", a.out)
	if err != nil {
		return err
	}
	again, err := getPassword(a.reader, "Confirmer le mot de passe", a.out)
	if err != nil {
		return err
	}
	if err := a.profile.ChangePassword(ctx, *a.session, pw, again); err != nil {
		return a.fail(ctx, a.profile.Alert(), err)
	}
	a.showAlert(a.profile.Alert())
	return nil
}

// Logout signs out after confirmation.
func (a *App) Logout(ctx context.Context) error {
	if a.session == nil {
		printlnFn("Vous n'êtes pas connecté.")
		return nil
	}
	ok, err := confirm(a.reader, "Voulez-vous vraiment vous déconnecter ?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}
	if err := a.profile.Logout(ctx, *a.session); err != nil {
		a.showAlert(a.profile.Alert())
		return err
	}
	printlnFn("Déconnecté.")
	return nil
}

func (a *App) Back(context.Context) error {
	r, ok := a.router.Back()
	if !ok {
		printlnFn("Déjà sur le premier écran.")
		return nil
	}
	printlnFn("Retour à", r.String())
	return nil
}
