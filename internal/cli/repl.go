package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for REPL output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// State is a REPL state.
type State int

const (
	AwaitingCredentials State = iota
	Authenticated
	Exiting
)

func (s State) String() string {
	switch s {
	case AwaitingCredentials:
		return "awaiting-credentials"
	case Authenticated:
		return "authenticated"
	case Exiting:
		return "exiting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Users(ctx context.Context) error
	Strength(ctx context.Context, args []string) error
	Crack(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context) error
	Switch(ctx context.Context) error
}

type translator interface {
	T(id string, data map[string]any) string
}

// runREPL reads commands from reader until the machine reaches Exiting and
// returns the final state. Command handlers print their own messages; an
// error they return is shown as unexpected, except end of input and context
// cancellation which stop the loop.
func runREPL(ctx context.Context, a execIface, tr translator, statusFn func() string, reader *bufio.Reader) State {
	state := AwaitingCredentials
	if a.isLoggedIn() {
		state = Authenticated
	}

	for state != Exiting {
		if ctx.Err() != nil {
			return Exiting
		}

		printFn(statusFn())
		line, err := readLine(reader)
		if err != nil {
			printlnFn()
			return Exiting
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		state = step(ctx, a, tr, state, parts[0], parts[1:])
	}
	return state
}

// step executes one command in state and returns the next state.
func step(ctx context.Context, a execIface, tr translator, state State, cmd string, args []string) State {
	switch cmd {
	case "exit", "quit":
		printlnFn(tr.T("repl.bye", nil))
		return Exiting
	case "help":
		if state == Authenticated {
			printlnFn(tr.T("repl.help.user", nil))
		} else {
			printlnFn(tr.T("repl.help.guest", nil))
		}
		return state
	case "users":
		return settle(ctx, a, tr, a.Users(ctx))
	}

	var err error
	switch {
	case state == AwaitingCredentials && cmd == "login":
		err = a.Login(ctx)
	case state == AwaitingCredentials && cmd == "register":
		err = a.Register(ctx)
	case state == Authenticated && cmd == "crack":
		err = a.Crack(ctx, args)
	case state == Authenticated && cmd == "strength":
		err = a.Strength(ctx, args)
	case state == Authenticated && cmd == "whoami":
		err = a.WhoAmI(ctx)
	case state == Authenticated && cmd == "switch":
		err = a.Switch(ctx)
	default:
		printlnFn(tr.T("repl.unknown", map[string]any{"Command": cmd}))
		return state
	}
	return settle(ctx, a, tr, err)
}

func settle(ctx context.Context, a execIface, tr translator, err error) State {
	if err != nil {
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			return Exiting
		}
		printlnFn(tr.T("error.unexpected", map[string]any{"Message": err.Error()}))
	}
	if a.isLoggedIn() {
		return Authenticated
	}
	return AwaitingCredentials
}
