package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	libconfig "gestaocombustivel/backend/libs/config"
	"gestaocombustivel/backend/libs/logging"
	"gestaocombustivel/backend/services/fleet-console/internal/app"
	"gestaocombustivel/backend/services/fleet-console/internal/config"
)

const usage = `usage: fleet-console <command> [flags]

commands:
  serve     run the local console gateway
  login     sign in and persist the session
  logout    clear the persisted session
  whoami    print the signed-in user
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "serve":
		err = runServe(ctx, args)
	case "login":
		err = runLogin(ctx, args, os.Stdin, os.Stdout)
	case "logout":
		err = runLogout(ctx, args, os.Stdout)
	case "whoami":
		err = runWhoami(ctx, args, os.Stdout)
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "fleet-console:", err)
		}
		os.Exit(1)
	}
}

// newFlags registers the flags shared by every command.
func newFlags(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file (overrides "+libconfig.PathEnv+")")
	return fs, configPath
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		if err := os.Setenv(libconfig.PathEnv, path); err != nil {
			return nil, err
		}
	}
	return config.Load()
}

// bootstrap loads config and builds the app with a console logger on stderr.
func bootstrap(ctx context.Context, configPath string) (*app.App, *zap.Logger, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(logging.Options{Encoding: "console", Output: "stderr"})
	if err != nil {
		return nil, nil, err
	}
	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return application, logger, nil
}

func runServe(ctx context.Context, args []string) error {
	fs, configPath := newFlags("serve")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init fleet console", zap.Error(err))
		return err
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("gateway stopped with error", zap.Error(err))
		return err
	}
	return nil
}

func runLogin(ctx context.Context, args []string, in *os.File, out io.Writer) error {
	fs, configPath := newFlags("login")
	email := fs.String("email", "", "account e-mail")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("login: -email is required")
	}

	password, err := readPassword(in, out)
	if err != nil {
		return err
	}

	application, logger, err := bootstrap(ctx, *configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer application.Close()

	ctrl := application.Controller()
	if err := ctrl.Login(ctx, *email, password); err != nil {
		return err
	}
	user := ctrl.Session().User
	fmt.Fprintf(out, "signed in as %s (%s), empresa %s\n", user.Name, user.Role, user.CompanyID)
	return nil
}

func runLogout(ctx context.Context, args []string, out io.Writer) error {
	fs, configPath := newFlags("logout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	application, logger, err := bootstrap(ctx, *configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer application.Close()

	if err := application.Controller().Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "signed out")
	return nil
}

func runWhoami(ctx context.Context, args []string, out io.Writer) error {
	fs, configPath := newFlags("whoami")
	if err := fs.Parse(args); err != nil {
		return err
	}

	application, logger, err := bootstrap(ctx, *configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer application.Close()

	return printWhoami(out, application.Controller())
}
