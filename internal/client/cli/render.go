package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/client/screens"
)

const dateLayout = "02/01/2006 15:04"

func (a *App) showAlert(al *screens.Alert) {
	if al == nil {
		return
	}
	printlnFn(al.String())
	if al.Title == screens.TitleError {
		a.log.Debug(context.Background(), "alert shown", "message", al.Message)
	}
}

func (a *App) renderHome() {
	if email := a.home.Email(); email != "" {
		printlnFn("Bonjour", email)
	}
	recent := a.home.Recent()
	printlnFn("Vidéos récentes")
	renderVideos(recent)
}

func videoLine(v models.Video) string {
	return fmt.Sprintf("  [%s] %s | %s | %s | %s",
		v.ID, v.Title, models.LanguageLabel(v.TargetLang), models.ModeLabel(v.TranslationMode),
		v.CreatedAt.Local().Format(dateLayout))
}

func renderVideos(vs []models.Video) {
	if len(vs) == 0 {
		printlnFn("  Aucune vidéo.")
		return
	}
	for _, v := range vs {
		printlnFn(videoLine(v))
	}
}

func renderVideo(v *models.Video) {
	if v == nil {
		return
	}
	printlnFn(fmt.Sprintf("%s (#%s)", v.Title, v.ID))
	printlnFn("  Langue    :", models.LanguageLabel(v.TargetLang))
	printlnFn("  Mode      :", models.ModeLabel(v.TranslationMode))
	printlnFn("  Originale :", v.OriginalURL)
	if v.TranslatedURL != nil {
		printlnFn("  Traduite  :", *v.TranslatedURL)
	} else {
		printlnFn("  Traduite  : en attente")
	}
	if v.SubtitleURL != nil {
		printlnFn("  Sous-titres :", *v.SubtitleURL)
	}
	if v.ThumbnailURL != nil {
		printlnFn("  Miniature :", *v.ThumbnailURL)
	}
	if !v.CreatedAt.IsZero() {
		printlnFn("  Créée le  :", v.CreatedAt.Local().Format(dateLayout))
	}
}

func languageChoices() string {
	parts := make([]string, 0, len(models.Languages))
	for _, l := range models.Languages {
		parts = append(parts, fmt.Sprintf("%s (%s)", l.Code, l.Label))
	}
	return "Langues : " + strings.Join(parts, ", ")
}

func modeChoices() string {
	parts := make([]string, 0, len(models.Modes))
	for _, m := range models.Modes {
		parts = append(parts, fmt.Sprintf("%s (%s)", m, models.ModeLabel(m)))
	}
	return "Modes : " + strings.Join(parts, ", ")
}
