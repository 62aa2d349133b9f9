package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/dmitrijs2005/credvault/internal/bruteforce"
	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/strength"
)

// notifyInterrupt is a test seam; Ctrl+C stops a running crack without
// leaving the REPL.
var notifyInterrupt = func(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}

// Strength scores a password given as arguments or read without echo.
func (a *App) Strength(ctx context.Context, args []string) error {
	pw := strings.Join(args, " ")
	if pw == "" {
		raw, err := getPassword(a.reader, a.tr.T("prompt.strength", nil), a.out)
		if err != nil {
			return err
		}
		pw = string(raw)
		common.WipeByteArray(raw)
	}

	r := strength.Score(pw)

	a.say("strength.title", nil)
	yes, no := a.tr.T("strength.yes", nil), a.tr.T("strength.no", nil)
	for _, c := range strength.Criteria() {
		mark := no
		if r.Criteria[c] {
			mark = yes
		}
		a.println(fmt.Sprintf("%s: %s", a.tr.T(string(c), nil), mark))
	}
	a.say("strength.result", map[string]any{"Class": a.tr.T(string(r.Class), nil)})
	return nil
}

// Crack runs the brute-force demonstration against a target given as an
// argument or prompted for.
func (a *App) Crack(ctx context.Context, args []string) error {
	a.say("crack.warning", nil)

	target := strings.TrimSpace(strings.Join(args, " "))
	if target == "" {
		t, err := getSimpleText(a.reader, a.tr.T("prompt.crack", map[string]any{"Max": a.config.Crack.MaxLength}), a.out)
		if err != nil {
			return err
		}
		target = t
	}

	opts := []bruteforce.Option{
		bruteforce.WithAlphabet(a.config.Crack.Alphabet),
		bruteforce.WithMaxLength(a.config.Crack.MaxLength),
		bruteforce.WithProgress(a.config.Crack.ProgressEvery, func(p bruteforce.Progress) {
			a.say("crack.progress", map[string]any{"Attempts": p.Attempts, "Candidate": p.Candidate})
		}),
	}
	if err := bruteforce.Validate(target, opts...); err != nil {
		a.report(err)
		return nil
	}

	a.say("crack.start", nil)
	runCtx, stop := notifyInterrupt(ctx)
	res, err := bruteforce.Crack(runCtx, target, opts...)
	stop()

	a.log.Info(ctx, "brute-force demo finished",
		"attempts", res.Attempts, "elapsed", res.Elapsed.String(), "found", err == nil)

	switch {
	case err == nil:
		a.println()
		a.say("crack.found", map[string]any{"Found": res.Found})
		a.say("crack.attempts", map[string]any{"Attempts": res.Attempts})
		a.say("crack.elapsed", map[string]any{"Seconds": fmt.Sprintf("%.2f", res.Elapsed.Seconds())})
	case errors.Is(err, bruteforce.ErrNotFound):
		a.say("error.not_found", map[string]any{"Attempts": res.Attempts})
	case errors.Is(err, context.Canceled) && ctx.Err() == nil:
		a.report(err)
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		a.report(err)
	}
	return nil
}
