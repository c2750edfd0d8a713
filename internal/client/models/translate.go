package models

// TranslateRequest is the form sent to POST /translate once the original has
// been uploaded.
type TranslateRequest struct {
	OriginalURL     string
	Title           string
	TargetLang      string
	TranslationMode TranslationMode
	UserID          string
}

// RetranslateRequest is the JSON body of POST /retranslate.
type RetranslateRequest struct {
	VideoID         string          `json:"video_id"`
	VideoURL        string          `json:"video_url"`
	TargetLang      string          `json:"target_lang"`
	TranslationMode TranslationMode `json:"translation_mode"`
}

// TranslateResult is a successful translation backend response.
type TranslateResult struct {
	TranslatedURL string  `json:"translated_url"`
	SubtitleURL   *string `json:"subtitle_url,omitempty"`
}
