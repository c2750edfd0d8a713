package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	SignUp(ctx context.Context) error
	Home(ctx context.Context) error
	Videos(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Show(ctx context.Context, id string) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Translate(ctx context.Context) error
	Profile(ctx context.Context) error
	Passwd(ctx context.Context) error
	Logout(ctx context.Context) error
	Back(ctx context.Context) error
}

const (
	helpSignedOut = "Commandes : login, signup, help, exit"
	helpSignedIn  = "Commandes : home, videos, search <texte>, show <id>, edit <id>, delete <id>, translate, profile, passwd, logout, back, help, exit"
)

// runREPL starts the read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on a. The rest of the line is the command argument
// (a video id, or the search text). The loop exits on EOF or when the user
// types "exit" or "quit".
//
// Errors returned by command handlers are not printed here; handlers print
// the screen alert themselves. This keeps the loop focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("vt %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help", "?":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "login":
			_ = a.Login(ctx)

		case "signup", "register":
			_ = a.SignUp(ctx)

		case "home", "h":
			_ = a.Home(ctx)

		case "videos", "list", "l":
			_ = a.Videos(ctx)

		case "search", "s":
			_ = a.Search(ctx, arg)

		case "show":
			if arg == "" {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, arg)

		case "edit":
			if arg == "" {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, arg)

		case "delete", "rm":
			if arg == "" {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, arg)

		case "translate", "t":
			_ = a.Translate(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "passwd":
			_ = a.Passwd(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "back":
			_ = a.Back(ctx)

		case "exit", "quit":
			printlnFn("Au revoir !")
			return

		default:
			printlnFn("Commande inconnue :", cmd)
		}

		if err != nil {
			return
		}
	}
}
