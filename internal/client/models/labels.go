package models

import "strings"

// Language is a selectable target language.
type Language struct {
	Code  string
	Label string
}

// Languages lists the supported target languages in picker order.
var Languages = []Language{
	{Code: "fr", Label: "Français"},
	{Code: "en", Label: "Anglais"},
	{Code: "es", Label: "Espagnol"},
	{Code: "de", Label: "Allemand"},
	{Code: "it", Label: "Italien"},
	{Code: "ar", Label: "Arabe"},
	{Code: "ja", Label: "Japonais"},
}

var modeLabels = map[TranslationMode]string{
	ModeVoice:    "Voix",
	ModeSubtitle: "Sous-titres",
	ModeBoth:     "Voix + Sous-titres",
}

// IsSupportedLanguage reports whether code is in Languages.
func IsSupportedLanguage(code string) bool {
	_, ok := lookupLanguage(code)
	return ok
}

// NormalizeLanguage lowercases code and strips a region suffix ("en-US" → "en").
func NormalizeLanguage(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	return code
}

// LanguageLabel returns the display label for code, or code itself when unknown.
func LanguageLabel(code string) string {
	if l, ok := lookupLanguage(code); ok {
		return l.Label
	}
	return code
}

// ModeLabel returns the display label for m, or the raw value when unknown.
func ModeLabel(m TranslationMode) string {
	if l, ok := modeLabels[m]; ok {
		return l
	}
	return string(m)
}

func lookupLanguage(code string) (Language, bool) {
	for _, l := range Languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}
