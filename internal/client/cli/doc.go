// Package cli provides the interactive vidtranslator terminal client.
//
// It wires configuration, the local session store, the hosted backend
// adapters and the screens into a REPL. Each command opens a screen: the
// prompt shows the current route and the signed-in user, form fields are
// asked one by one, and every screen alert is printed as "Erreur: …" or
// "Succès: …".
//
// The REPL is started with App.Run, which restores any saved session and
// blocks until the user exits.
package cli
