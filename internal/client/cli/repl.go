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
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Write(ctx context.Context, args []string) error
	Show(ctx context.Context) error
	Find(ctx context.Context, args []string) error
	Status(ctx context.Context) error
	reportError(ctx context.Context, cmd string, err error)
}

// runREPL starts a simple read–eval–print loop for the docsession CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Handler errors go to a.reportError and the
// loop carries on. The loop exits on EOF, when ctx is done, or when the
// user types "exit" or "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - signup         create an account and log in
//	  - login          authenticate
//	  - find <name>    look a user up
//	  - status         show session and store state
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - help, find, status, exit | quit as above
//	  - write k=v ...  set fields on the current user
//	  - show           print the current user
//	  - logout         log out
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("ds %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: write k=v ..., show, find <name>, status, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, find <name>, status, exit")
			}

		case "signup":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "write":
			cmdErr = a.Write(ctx, args)

		case "show":
			cmdErr = a.Show(ctx)

		case "find":
			cmdErr = a.Find(ctx, args)

		case "status":
			cmdErr = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			a.reportError(ctx, cmd, cmdErr)
		}
	}
}
