package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Me(ctx context.Context) error { f.calls = append(f.calls, "me"); return nil }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func TestRunREPL_Commands(t *testing.T) {
	out := capturePrints(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"",
		"login",
		"help",
		"me",
		"whoami",
		"logout",
		"bogus",
		"exit",
		"me",
	}, "\n"))

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewReader(input))

	assert.Equal(t, []string{"login", "me", "me", "logout"}, f.calls)
	assert.Contains(t, *out, "Available commands: login, exit")
	assert.Contains(t, *out, "Available commands: me, logout, exit")
	assert.Contains(t, *out, "Unknown command: bogus")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	capturePrints(t)

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewReader(strings.NewReader("login")))

	assert.Equal(t, []string{"login"}, f.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrints(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &fakeExec{}
	runREPL(ctx, f, func() string { return "" }, bufio.NewReader(strings.NewReader("me\nme\n")))

	assert.Equal(t, []string{"me"}, f.calls)
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	out := capturePrints(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "(ana)" }, bufio.NewReader(strings.NewReader("quit\n")))

	assert.Equal(t, "pf> (ana) > ", (*out)[0])
}
