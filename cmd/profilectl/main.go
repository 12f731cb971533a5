// Command profilectl reads and edits denizen profiles over the denizen API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kotoed/denizen/internal/profile"
	"github.com/kotoed/denizen/pkg/profilesdk"
	"github.com/kotoed/denizen/pkg/slogx"
)

var version = "dev"

const defaultURL = "http://localhost:8080"

// options are the persistent flags shared by every subcommand.
type options struct {
	url      string
	logLevel string
	logFile  string

	logger  *slog.Logger
	closeFn func() error
}

func (o *options) client() *profilesdk.Client {
	return profilesdk.NewClient(o.url)
}

func (o *options) service() profile.Service {
	return profile.NewSDKService(o.url)
}

func (o *options) reporter() profile.ErrorReporter {
	return profile.LogReporter{Logger: o.logger}
}

func (o *options) setupLogger(stderr io.Writer) error {
	out := stderr
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		o.closeFn = f.Close
	}

	o.logger = slogx.New(slogx.Config{
		Service: "profilectl",
		Version: version,
		Env:     os.Getenv("ENV"),
		Level:   o.logLevel,
		Format:  "text",
		Output:  out,
	})
	return nil
}

func newRootCmd() *cobra.Command {
	o := &options{}

	defaultBase := os.Getenv("KOTOED_URL")
	if defaultBase == "" {
		defaultBase = defaultURL
	}

	root := &cobra.Command{
		Use:           "profilectl",
		Short:         "Read and edit denizen profiles",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := o.setupLogger(cmd.ErrOrStderr()); err != nil {
				return err
			}
			cmd.SetContext(slogx.WithContext(cmd.Context(), o.logger))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if o.closeFn != nil {
				return o.closeFn()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&o.url, "url", defaultBase, "Denizen API base URL (or set KOTOED_URL env)")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&o.logFile, "log-file", "", "Write logs to this file instead of stderr")

	root.AddCommand(newShowCmd(o))
	root.AddCommand(newSetCmd(o))
	root.AddCommand(newPasswdCmd(o))
	root.AddCommand(newCreateCmd(o))
	root.AddCommand(newEditCmd(o))

	return root
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
