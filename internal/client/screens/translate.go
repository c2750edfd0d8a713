package screens

import (
	"context"

	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/client/services"
)

// Phase of the translate screen.
type Phase int

const (
	PhaseImport Phase = iota
	PhaseSelected
	PhaseTranslated
)

func (p Phase) String() string {
	switch p {
	case PhaseSelected:
		return "selected"
	case PhaseTranslated:
		return "translated"
	default:
		return "import"
	}
}

// Default form values.
const (
	DefaultTargetLang = "fr"
	DefaultMode       = models.ModeVoice
)

// Translate imports a local video and sends it for translation.
type Translate struct {
	state
	svc services.TranslateService

	phase  Phase
	file   *models.LocalFile
	title  string
	lang   string
	mode   models.TranslationMode
	result *models.Video
}

func NewTranslate(svc services.TranslateService) *Translate {
	return &Translate{svc: svc, lang: DefaultTargetLang, mode: DefaultMode}
}

// Import picks the file at path. A failed pick leaves the screen unchanged.
func (t *Translate) Import(path string) error {
	if err := t.begin(); err != nil {
		return err
	}
	f, err := t.svc.PickFile(path)
	if err != nil {
		return t.fail(err, "Impossible d'importer la vidéo")
	}
	t.mu.Lock()
	t.file = f
	t.result = nil
	t.phase = PhaseSelected
	t.mu.Unlock()
	t.succeed("")
	return nil
}

func (t *Translate) SetTitle(title string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.title = title
}

func (t *Translate) SetTargetLang(code string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lang = models.NormalizeLanguage(code)
}

func (t *Translate) SetMode(m models.TranslationMode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mode = m
}

// Submit uploads and translates the selected file.
func (t *Translate) Submit(ctx context.Context, s models.Session) error {
	t.mu.Lock()
	file, title, lang, mode := t.file, t.title, t.lang, t.mode
	phase := t.phase
	t.mu.Unlock()

	if err := t.begin(); err != nil {
		return err
	}
	if phase != PhaseSelected || file == nil {
		return t.fail(services.ErrNoFile, "")
	}
	v, err := t.svc.Translate(ctx, s, file, title, lang, mode)
	if err != nil {
		return t.fail(err, "Erreur de traduction")
	}
	t.mu.Lock()
	t.result = v
	t.phase = PhaseTranslated
	t.mu.Unlock()
	t.succeed("Vidéo traduite avec succès !")
	return nil
}

// Reset starts a new translation.
func (t *Translate) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status == StatusLoading {
		return
	}
	t.phase = PhaseImport
	t.file = nil
	t.result = nil
	t.title = ""
	t.lang = DefaultTargetLang
	t.mode = DefaultMode
	t.alert = nil
}

func (t *Translate) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

// ShowImport reports whether the import button is shown.
func (t *Translate) ShowImport() bool { return t.Phase() == PhaseImport }

// ShowResult reports whether the translated video is shown.
func (t *Translate) ShowResult() bool { return t.Phase() == PhaseTranslated }

func (t *Translate) File() *models.LocalFile {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.file
}

// Form returns the entered title, language and mode.
func (t *Translate) Form() (title, lang string, mode models.TranslationMode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.title, t.lang, t.mode
}

// Result is the translated video, set in PhaseTranslated.
func (t *Translate) Result() *models.Video {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.result == nil {
		return nil
	}
	v := *t.result
	return &v
}
