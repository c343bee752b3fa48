package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Exit codes: 0 success, 1 user interrupt, 2 usage error or command
// failure.
const (
	exitOK        = 0
	exitInterrupt = 1
	exitFailure   = 2
)

var errNoCommand = errors.New("no command given (try --help)")

// Run dispatches the process arguments and returns the process exit code.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, err := wireApp()
	if err != nil {
		renderError(os.Stderr, err, false)
		return exitFailure
	}

	return run(ctx, app, args, os.Stdout, os.Stderr)
}

// run executes one invocation and maps its outcome to an exit code.
// Errors are rendered here, once; an interrupt bypasses rendering
// entirely.
func run(ctx context.Context, app *app, args []string, out, errOut io.Writer) int {
	var debug bool
	root := newRootCmd(app, &debug)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil {
			return exitInterrupt
		}
		renderError(errOut, err, debug)
		return exitFailure
	}

	return exitOK
}

func newRootCmd(app *app, debug *bool) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "maas",
		Short:         "Interact with a remote MAAS-style fleet server",
		Long:          "maas manages named profiles of remote fleet servers and issues node lifecycle operations (acquire, deploy, release) against them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			return errNoCommand
		},
	}

	rootCmd.PersistentFlags().BoolVar(debug, "debug", false, "Print full diagnostics on failure")
	_ = rootCmd.PersistentFlags().MarkHidden("debug")

	groups := newGroupRegistry()
	registerProfileCommands(rootCmd, groups, app)
	registerListingCommands(rootCmd, groups, app)
	registerLifecycleCommands(rootCmd, groups, app)
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// renderError is the single place command failures become user output.
// The terse form is a one-line message; --debug unwraps the whole cause
// chain with concrete error types.
func renderError(w io.Writer, err error, debug bool) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if !debug {
		return
	}

	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(w, "  caused by (%T): %v\n", cause, cause)
	}
}
