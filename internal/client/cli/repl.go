package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// screens defines the command surface the REPL dispatches to. The real
// App type satisfies this interface; tests can provide a lightweight
// stub.
type screens interface {
	state() gateState
	admin() bool
	login(ctx context.Context)
	register(ctx context.Context)
	dashboard(ctx context.Context)
	archiveList(ctx context.Context)
	history(ctx context.Context)
	userAdmin(ctx context.Context)
	logout(ctx context.Context)
}

// runREPL drives the interactive loop. Each iteration re-derives the
// routing state from the session, so the available commands always
// match the current authentication state:
//
//	Loading:
//	  a placeholder is shown and no navigation decision is made.
//
//	Not logged in:
//	  - help              — show available commands
//	  - login             — authenticate with NIP and password
//	  - register | daftar — create an account
//	  - exit | quit       — leave the program
//
//	Logged in:
//	  - help              — show available commands
//	  - dashboard         — archive statistics and recent records
//	  - arsip | daftar    — browse, search and manage archive records
//	  - riwayat           — active and deleted record history
//	  - users             — user administration (admin only)
//	  - logout | keluar   — end the session
//	  - exit | quit       — leave the program
//
// Screen handlers print their own notices; the loop only routes.
func runREPL(ctx context.Context, s screens, statusFn func() string, reader *bufio.Reader) {
	for {
		if s.state() == gateLoading {
			printlnFn("Loading...")
			if _, err := reader.ReadString('\n'); err != nil {
				return
			}
			continue
		}

		printlnFn(fmt.Sprintf("siap> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		if s.state() == gateUnauthenticated {
			switch cmd {
			case "help":
				printlnFn("Available commands: login, register, exit")
			case "login":
				s.login(ctx)
			case "register", "daftar":
				s.register(ctx)
			case "exit", "quit":
				return
			default:
				printlnFn(fmt.Sprintf("Unknown command: %s", cmd))
			}
			continue
		}

		switch cmd {
		case "help":
			if s.admin() {
				printlnFn("Available commands: dashboard, arsip, riwayat, users, logout, exit")
			} else {
				printlnFn("Available commands: dashboard, arsip, riwayat, logout, exit")
			}
		case "dashboard":
			s.dashboard(ctx)
		case "arsip", "daftar":
			s.archiveList(ctx)
		case "riwayat":
			s.history(ctx)
		case "users":
			if s.admin() {
				s.userAdmin(ctx)
			} else {
				printlnFn("Perintah ini hanya untuk admin.")
			}
		case "logout", "keluar":
			s.logout(ctx)
		case "exit", "quit":
			return
		default:
			printlnFn(fmt.Sprintf("Unknown command: %s", cmd))
		}
	}
}
