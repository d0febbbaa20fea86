package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/skillshare/internal/client/client"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Execute(ctx context.Context, name string, args []string) error
	Help() string
}

// runREPL reads one command per line from reader and dispatches it to a.
// The first token is the command and the rest are its arguments. Errors are
// printed as "error: <message>" and the loop goes on. It returns on EOF or
// when the user types "exit" or "quit".
//
// Prompts read from the same reader, so a command can ask follow-up
// questions without losing buffered input. The prompt, help text and errors
// go to out, the same writer commands print to.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "skillshare (%s)> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			fmt.Fprintln(out)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(out, a.Help())
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			if execErr := a.Execute(ctx, cmd, args); execErr != nil {
				fmt.Fprintln(out, "error:", describeError(execErr))
			}
		}

		if ctx.Err() != nil {
			return
		}
	}
}

// describeError prefers the server's own message over the wrapped chain.
func describeError(err error) string {
	if msg := client.MessageOf(err); msg != "" {
		return msg
	}
	switch {
	case errors.Is(err, client.ErrAuthentication):
		return "please log in again"
	case errors.Is(err, client.ErrPermissionDenied):
		return "you are not allowed to do that"
	case errors.Is(err, client.ErrNotFound):
		return "not found"
	case errors.Is(err, client.ErrConflict):
		return "that already exists"
	case errors.Is(err, client.ErrServer):
		return fmt.Sprintf("the server failed (HTTP %d), try again later", client.StatusOf(err))
	}
	return err.Error()
}
