package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failOn   string

	calls []string
	args  [][]string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Execute(_ context.Context, name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	if name == "login" {
		f.loggedIn = true
	}
	if name == f.failOn {
		return errors.New("it broke")
	}
	return nil
}

func (f *fakeExec) Help() string {
	if f.loggedIn {
		return "help: signed in"
	}
	return "help: signed out"
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	var out bytes.Buffer

	input := bufio.NewReader(strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"posts 2",
		"post abc",
		"exit",
		"posts",
	}, "\n")))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, input, &out)

	assert.Equal(t, []string{"login", "posts", "post"}, exec.calls)
	assert.Equal(t, []string{"2"}, exec.args[1])
	printed := out.String()
	assert.Contains(t, printed, "skillshare (status)> help: signed out\n", "prompt stays on the input line")
	assert.Contains(t, printed, "help: signed in")
	assert.Contains(t, printed, "Bye!")
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	var out bytes.Buffer

	input := bufio.NewReader(strings.NewReader("broken\nposts\n"))
	exec := &fakeExec{failOn: "broken"}
	runREPL(context.Background(), exec, func() string { return "s" }, input, &out)

	assert.Equal(t, []string{"broken", "posts"}, exec.calls)
	assert.Contains(t, out.String(), "error: it broke")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("courses")), io.Discard)

	assert.Equal(t, []string{"courses"}, exec.calls)
}

func TestRunREPL_StopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("posts\ncourses\n")), io.Discard)

	assert.Equal(t, []string{"posts"}, exec.calls)
}
