package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/credvault/internal/buildinfo"
	"github.com/dmitrijs2005/credvault/internal/config"
	"github.com/dmitrijs2005/credvault/internal/i18n"
	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/spf13/cobra"
)

// runtime carries what a command needs once flags are parsed.
type runtime struct {
	cfgFile string
	opts    []Option

	cfg *config.Config
}

func (r *runtime) loadConfig(cmd *cobra.Command, path string) error {
	cfg, err := config.Load(cmd.Flags(), path)
	if err != nil {
		return err
	}
	r.cfg = cfg
	return nil
}

// withApp builds the App for one command invocation and releases the log
// file afterwards.
func (r *runtime) withApp(fn func(ctx context.Context, a *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := r.loadConfig(cmd, r.cfgFile); err != nil {
			return err
		}

		log, closer, err := logging.New(r.cfg, buildinfo.Version)
		if err != nil {
			return err
		}
		defer closer.Close()

		opts := append([]Option{WithIO(cmd.InOrStdin(), cmd.OutOrStdout())}, r.opts...)
		app, err := NewApp(r.cfg, log, opts...)
		if err != nil {
			return err
		}
		return fn(cmd.Context(), app, args)
	}
}

// NewRootCmd creates the credvault command tree. Options are applied to the
// App of every command that needs one.
func NewRootCmd(opts ...Option) *cobra.Command {
	r := &runtime{opts: opts}

	runREPLCmd := r.withApp(func(ctx context.Context, a *App, _ []string) error {
		buildinfo.PrintBuildData(a.out)
		return a.Run(ctx)
	})

	cmd := &cobra.Command{
		Use:   "credvault",
		Short: "credvault keeps local accounts and demonstrates password strength.",
		Long: `credvault stores usernames with hashed passwords in a local file and
offers a small set of password tools once you are logged in.

Running without a subcommand starts the interactive shell.`,
		Version:       buildinfo.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runREPLCmd,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&r.cfgFile, "config", "", "config file (default is <user config dir>/credvault/credvault.yaml or ./credvault.yaml)")
	pf.String("data-dir", "", "directory holding the credential file and logs")
	pf.String("backend", "", `credential store backend ("json", "sqlite")`)
	pf.String("store-file", "", "credential file name or absolute path")
	pf.Int("max-attempts", 0, "login attempts before giving up (default 3)")
	pf.String("hash", "", `hash for new passwords ("sha256", "argon2id")`)
	pf.String("log-level", "", `log level ("debug", "info", "warn", "error")`)
	pf.String("log-output", "", `log destination ("file", "stderr")`)
	pf.String("lang", "", `interface language ("en", "pt")`)

	cmd.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Start the interactive shell",
			Args:  cobra.NoArgs,
			RunE:  runREPLCmd,
		},
		&cobra.Command{
			Use:   "register",
			Short: "Create a new account",
			Args:  cobra.NoArgs,
			RunE: r.withApp(func(ctx context.Context, a *App, _ []string) error {
				return a.Register(ctx)
			}),
		},
		newLoginCmd(r),
		&cobra.Command{
			Use:   "users",
			Short: "List registered users",
			Args:  cobra.NoArgs,
			RunE: r.withApp(func(ctx context.Context, a *App, _ []string) error {
				return a.Users(ctx)
			}),
		},
		&cobra.Command{
			Use:   "strength [password]",
			Short: "Score a password (prompts without echo when omitted)",
			RunE: r.withApp(func(ctx context.Context, a *App, args []string) error {
				return a.Strength(ctx, args)
			}),
		},
		&cobra.Command{
			Use:   "crack [target]",
			Short: "Brute-force a short password to show how quickly it falls",
			Args:  cobra.MaximumNArgs(1),
			RunE: r.withApp(func(ctx context.Context, a *App, args []string) error {
				return a.Crack(ctx, args)
			}),
		},
		newConfigCmd(r),
	)

	return cmd
}

func newLoginCmd(r *runtime) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials without starting the shell",
		Args:  cobra.NoArgs,
		RunE: r.withApp(func(ctx context.Context, a *App, _ []string) error {
			return a.VerifyLogin(ctx, username)
		}),
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "check a single password for this user")
	return cmd
}

func newConfigCmd(r *runtime) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := r.cfgFile
			if path == "" {
				path = config.DefaultFilePath()
			}

			// the target may not exist yet, so only read it when it does
			loadFrom := r.cfgFile
			_, err := os.Stat(path)
			switch {
			case err == nil && !force:
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			case errors.Is(err, fs.ErrNotExist):
				loadFrom = ""
			case err != nil:
				return err
			}

			if err := r.loadConfig(cmd, loadFrom); err != nil {
				return err
			}
			if err := config.WriteFile(r.cfg, path); err != nil {
				return err
			}

			tr, err := i18n.New(r.cfg.Language)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tr.T("config.written", map[string]any{"Path": path}))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(initCmd)
	return cmd
}
