package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/maasutil/maascli/internal/domain"
	"github.com/maasutil/maascli/internal/ports"
	"github.com/maasutil/maascli/internal/render"
	"github.com/maasutil/maascli/internal/retry"
	"github.com/maasutil/maascli/internal/tables"
)

// pollInterval is the pause between node state re-reads while waiting for
// a deploy or release to finish.
const pollInterval = time.Second

var (
	progressStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("171"))
	deployedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
)

func registerLifecycleCommands(root *cobra.Command, groups *groupRegistry, app *app) {
	groups.Ensure(root, groupLifecycle, "Node lifecycle:")

	root.AddCommand(
		newAcquireNodeCmd(app),
		newLaunchNodeCmd(app),
		newReleaseNodeCmd(app),
	)
}

// acquireFlags is the constraint set shared by acquire-node and
// launch-node.
type acquireFlags struct {
	hostname     string
	architecture string
	cpus         int
	memory       float64
	tags         string
}

func addAcquireFlags(cmd *cobra.Command) *acquireFlags {
	flags := &acquireFlags{}
	cmd.Flags().StringVar(&flags.hostname, "hostname", "", "Hostname the node must match")
	cmd.Flags().StringVar(&flags.architecture, "architecture", "", "Architecture the node must match")
	cmd.Flags().IntVar(&flags.cpus, "cpus", 0, "Minimum number of CPUs")
	cmd.Flags().Float64Var(&flags.memory, "memory", 0, "Minimum amount of memory, in MiB")
	cmd.Flags().StringVar(&flags.tags, "tags", "", "Space-separated tags the node must carry")
	return flags
}

func (f *acquireFlags) constraints() domain.AcquireConstraints {
	return domain.AcquireConstraints{
		Hostname:     f.hostname,
		Architecture: f.architecture,
		CPUs:         f.cpus,
		Memory:       f.memory,
		Tags:         strings.Fields(f.tags),
	}
}

func newAcquireNodeCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "acquire-node",
		Short:   "Acquire a node",
		Args:    cobra.NoArgs,
		GroupID: groupLifecycle,
	}
	flags := addAcquireFlags(cmd)
	profileName := addProfileNameFlag(cmd)
	format := addOutputFormatFlag(cmd, app.defaultTarget)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		target, err := render.ParseTarget(*format)
		if err != nil {
			return err
		}

		origin, err := app.origin(cmd.Context(), *profileName)
		if err != nil {
			return err
		}

		node, err := origin.AcquireNode(cmd.Context(), flags.constraints())
		if err != nil {
			return err
		}

		return render.Render(cmd.OutOrStdout(), target, tables.Nodes([]domain.Node{node}))
	}

	return cmd
}

func newLaunchNodeCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "launch-node",
		Short:   "Acquire and deploy a node",
		Args:    cobra.NoArgs,
		GroupID: groupLifecycle,
	}
	flags := addAcquireFlags(cmd)
	var wait int
	cmd.Flags().IntVar(&wait, "wait", 0, "Number of seconds to wait for the deploy to complete")
	profileName := addProfileNameFlag(cmd)
	format := addOutputFormatFlag(cmd, app.defaultTarget)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		target, err := render.ParseTarget(*format)
		if err != nil {
			return err
		}

		origin, err := app.origin(cmd.Context(), *profileName)
		if err != nil {
			return err
		}

		node, err := origin.AcquireNode(cmd.Context(), flags.constraints())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printBanner(out, progressStyle, "DEPLOYING:")
		if err := render.Render(out, target, tables.Nodes([]domain.Node{node})); err != nil {
			return err
		}

		node, err = origin.DeployNode(cmd.Context(), node.SystemID)
		if err != nil {
			return err
		}

		node, err = app.awaitTransition(cmd.Context(), out, origin, node, domain.StateDeploying,
			time.Duration(wait)*time.Second, "Deploying node "+node.SystemID+"...")
		if err != nil {
			return err
		}

		if node.Status != domain.StateDeployed {
			printBanner(out, failedStyle, "FAILED TO DEPLOY:")
			if err := render.Render(out, target, tables.Nodes([]domain.Node{node})); err != nil {
				return err
			}
			return fmt.Errorf("node %s was not deployed (status %q): %w",
				node.SystemID, node.Status, domain.ErrOperationNotCompleted)
		}

		printBanner(out, deployedStyle, "DEPLOYED:")
		return render.Render(out, target, tables.Nodes([]domain.Node{node}))
	}

	return cmd
}

func newReleaseNodeCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "release-node",
		Short:   "Release a node",
		Args:    cobra.NoArgs,
		GroupID: groupLifecycle,
	}
	var systemID string
	var wait int
	cmd.Flags().StringVar(&systemID, "system-id", "", "System ID of the node to release")
	_ = cmd.MarkFlagRequired("system-id")
	cmd.Flags().IntVar(&wait, "wait", 0, "Number of seconds to wait for the release to complete")
	profileName := addProfileNameFlag(cmd)
	format := addOutputFormatFlag(cmd, app.defaultTarget)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		target, err := render.ParseTarget(*format)
		if err != nil {
			return err
		}

		origin, err := app.origin(cmd.Context(), *profileName)
		if err != nil {
			return err
		}

		node, err := origin.ReleaseNode(cmd.Context(), systemID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		node, err = app.awaitTransition(cmd.Context(), out, origin, node, domain.StateReleasing,
			time.Duration(wait)*time.Second, "Releasing node "+node.SystemID+"...")
		if err != nil {
			return err
		}

		if err := render.Render(out, target, tables.Nodes([]domain.Node{node})); err != nil {
			return err
		}

		if node.Status != domain.StateReady {
			return fmt.Errorf("node %s was not released (status %q): %w",
				node.SystemID, node.Status, domain.ErrOperationNotCompleted)
		}

		return nil
	}

	return cmd
}

// awaitTransition re-reads the node after each polling sleep until it
// leaves the transitional state or the wait budget runs out. A zero or
// negative timeout means no waiting at all: the node passed in is the one
// inspected. The final state is for the caller to judge; a node that
// never transitioned comes back as-is, not as an error.
func (a *app) awaitTransition(ctx context.Context, out io.Writer, origin ports.Origin, node domain.Node, transitional string, timeout time.Duration, label string) (domain.Node, error) {
	poll := func(ctx context.Context) (domain.Node, error) {
		current := node
		for attempt := range retry.Retries(timeout, pollInterval) {
			if current.Status != transitional {
				break
			}
			if err := a.sleep(ctx, attempt.Wait); err != nil {
				return current, err
			}

			var err error
			current, err = origin.Node(ctx, current.SystemID)
			if err != nil {
				return current, fmt.Errorf("re-read node %s: %w", node.SystemID, err)
			}
		}
		return current, nil
	}

	if a.interactive && timeout > 0 {
		return runPollSpinner(ctx, out, label, poll)
	}
	return poll(ctx)
}

func printBanner(w io.Writer, style lipgloss.Style, text string) {
	fmt.Fprintln(w, style.Render(text))
}
