// Package client holds the adapters to the external systems the
// vidtranslator client depends on.
//
//   - AuthClient (GoTrueAuth): hosted email/password auth.
//   - VideoStore (PostgrestVideos): the videos table, always filtered by the
//     session's user id.
//   - ObjectStore (SupabaseStorage, S3Storage): uploads of original videos
//     and their public URLs.
//   - Translator (HTTPTranslator): the translation backend.
//
// Adapters make a single attempt per call. Failures come back as sentinel
// errors (ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrNoTranslatedURL,
// ErrInvalidRecord) or as a *BackendError carrying the backend's message.
//
// InitDatabase and RunMigrations bootstrap the local SQLite database that
// keeps the signed-in session between runs.
package client
