package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	GuestLogin(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	SetFilter(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	ResumeUpload(ctx context.Context, args []string) error
	ResumeDownload(ctx context.Context, args []string) error
	ResumeDelete(ctx context.Context, args []string) error
}

// runREPL starts a read–eval–print loop for the trackIt CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens as
// arguments. Unknown commands are reported back to the user. The loop exits
// on scanner EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current session (from statusFn) and accepts:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - guest          — start a demo session with sample data
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help                        — show available commands
//	  - list | l                    — list jobs matching the current filter
//	  - filter <field> <value>      — constrain company/position/status
//	  - filter reset                — clear all criteria
//	  - show <id>                   — show one job with its resume versions
//	  - add                         — create a job (interactive)
//	  - edit <id>                   — change one field of a job
//	  - delete <id>                 — delete a job (asks for confirmation)
//	  - resume-up <id> <path>       — upload a resume version
//	  - resume-get <id> <ver> [out] — download a resume version
//	  - resume-rm <id> <ver>        — delete a resume version
//	  - logout                      — log out
//	  - exit | quit                 — leave the program
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("trackit> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, filter, show, add, edit, delete, resume-up, resume-get, resume-rm, logout, exit")
			} else {
				printlnFn("Available commands: register, login, guest, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "guest":
			_ = a.GuestLogin(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "filter":
			_ = a.SetFilter(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "resume-up":
			_ = a.ResumeUpload(ctx, args)

		case "resume-get":
			_ = a.ResumeDownload(ctx, args)

		case "resume-rm":
			_ = a.ResumeDelete(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
