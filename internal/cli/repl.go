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
	unlocked() bool
	Setup(ctx context.Context) error
	Unlock(ctx context.Context) error
	Lock(ctx context.Context) error
	Write(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Tag(ctx context.Context) error
	Delete(ctx context.Context) error
	Purge(ctx context.Context) error
	Story(ctx context.Context) error
	Stories(ctx context.Context) error
	APIKey(ctx context.Context) error
	Push(ctx context.Context) error
	Pull(ctx context.Context) error
	Export(ctx context.Context) error
	Import(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the Journly CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Locked:
//	  - help           — show available commands
//	  - setup          — create a new vault
//	  - unlock         — unlock the vault
//	  - status         — show vault status
//	  - exit | quit    — leave the program
//
//	Unlocked:
//	  - help           — show available commands
//	  - write          — write a journal entry
//	  - list           — list entries
//	  - show           — show a single entry (interactive ID prompt)
//	  - tag            — attach a tag to an entry
//	  - delete         — soft-delete an entry
//	  - purge          — permanently remove an entry
//	  - story          — generate a story from recent entries
//	  - stories        — list generated stories
//	  - apikey         — configure the remote AI provider
//	  - push | pull    — sync the encrypted backup
//	  - export | import — local backup file
//	  - status         — show vault status
//	  - lock           — lock the vault
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("journly> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.unlocked() {
				printlnFn("Available commands: write, (l)ist, show, tag, delete, purge, story, stories, apikey, push, pull, export, import, status, lock, exit")
			} else {
				printlnFn("Available commands: setup, unlock, status, exit")
			}

		case "setup":
			_ = a.Setup(ctx)

		case "unlock":
			_ = a.Unlock(ctx)

		case "lock":
			_ = a.Lock(ctx)

		case "write":
			_ = a.Write(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx)

		case "tag":
			_ = a.Tag(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "purge":
			_ = a.Purge(ctx)

		case "story":
			_ = a.Story(ctx)

		case "stories":
			_ = a.Stories(ctx)

		case "apikey":
			_ = a.APIKey(ctx)

		case "push":
			_ = a.Push(ctx)

		case "pull":
			_ = a.Pull(ctx)

		case "export":
			_ = a.Export(ctx)

		case "import":
			_ = a.Import(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
