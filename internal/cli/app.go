package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/credvault/internal/config"
	"github.com/dmitrijs2005/credvault/internal/hashing"
	"github.com/dmitrijs2005/credvault/internal/i18n"
	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/services"
	"github.com/dmitrijs2005/credvault/internal/session"
	"github.com/dmitrijs2005/credvault/internal/store"
)

type App struct {
	config    *config.Config
	log       logging.Logger
	tr        *i18n.Translator
	store     store.Store
	registrar *services.Registrar
	auth      *services.Authenticator
	session   *session.Holder
	reader    *bufio.Reader
	out       io.Writer
}

// Option customizes an App.
type Option func(*App)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.reader = bufio.NewReader(in)
		a.out = out
	}
}

func NewApp(c *config.Config, log logging.Logger, opts ...Option) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	tr, err := i18n.New(c.Language)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	h, err := hashing.New(c.Hash.Algorithm)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(c, log.With("component", "store"))
	if err != nil {
		return nil, err
	}

	a := &App{
		config:    c,
		log:       log,
		tr:        tr,
		store:     st,
		registrar: services.NewRegistrar(st, h, log.With("component", "registrar")),
		auth:      services.NewAuthenticator(st, h, log.With("component", "auth")),
		session:   &session.Holder{},
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}

	log.Debug(context.Background(), "app initialized",
		"store", st.Path(), "backend", c.Store.Backend, "hash", h.Name(), "lang", tr.Lang())
	return a, nil
}

// Run starts the interactive REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) error {
	a.say("repl.welcome", nil)
	runREPL(ctx, a, a.tr, a.getStatus, a.reader)
	a.endSession(ctx)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.LoggedIn()
}

func (a *App) getStatus() string {
	if s, ok := a.session.Current(); ok {
		return fmt.Sprintf("credvault (%s)> ", s.Username)
	}
	return "credvault> "
}

// say prints the translated message id on its own line.
func (a *App) say(id string, data map[string]any) {
	fmt.Fprintln(a.out, a.tr.T(id, data))
}
