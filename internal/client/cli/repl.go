package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	report(err error)

	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Home(ctx context.Context) error

	Users(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	DeleteUser(ctx context.Context, args []string) error
	ToggleSpecial(ctx context.Context, args []string) error

	Ads(ctx context.Context) error
	OpenAd(ctx context.Context, args []string) error
	CloseAd(ctx context.Context) error
	Approve(ctx context.Context, args []string) error
	Reject(ctx context.Context, args []string) error

	Page(ctx context.Context, args []string) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error

	Images(ctx context.Context) error
	Upload(ctx context.Context, paths []string) error
	RemoveImage(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: login, exit"
	helpLoggedIn  = "Available commands: home, users, search, delete, special, ads, ad, close, approve, reject, " +
		"page, next, prev, images, upload, rmimage, logout, exit"
)

// runREPL reads one command per line from reader and dispatches it to a.
// Handler errors go through a.report. The loop ends on EOF, on "exit" or
// "quit", or when ctx is cancelled.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("forsa> %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "login":
			a.report(a.Login(ctx))

		case "logout":
			a.report(a.Logout(ctx))

		case "home", "dashboard":
			a.report(a.Home(ctx))

		case "users":
			a.report(a.Users(ctx))

		case "search":
			a.report(a.Search(ctx, args))

		case "delete":
			a.report(a.DeleteUser(ctx, args))

		case "special":
			a.report(a.ToggleSpecial(ctx, args))

		case "ads":
			a.report(a.Ads(ctx))

		case "ad":
			a.report(a.OpenAd(ctx, args))

		case "close":
			a.report(a.CloseAd(ctx))

		case "approve":
			a.report(a.Approve(ctx, args))

		case "reject":
			a.report(a.Reject(ctx, args))

		case "page":
			a.report(a.Page(ctx, args))

		case "n", "next":
			a.report(a.Next(ctx))

		case "p", "prev":
			a.report(a.Prev(ctx))

		case "images":
			a.report(a.Images(ctx))

		case "upload":
			a.report(a.Upload(ctx, args))

		case "rmimage":
			a.report(a.RemoveImage(ctx, args))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
