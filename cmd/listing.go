package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maasutil/maascli/internal/ports"
	"github.com/maasutil/maascli/internal/render"
	"github.com/maasutil/maascli/internal/tables"
)

func registerListingCommands(root *cobra.Command, groups *groupRegistry, app *app) {
	groups.Ensure(root, groupResources, "Remote resources:")

	root.AddCommand(
		newListCmd(app, "list-nodes", "List nodes", func(ctx context.Context, origin ports.Origin) (render.Table, error) {
			nodes, err := origin.Nodes(ctx)
			return tables.Nodes(nodes), err
		}),
		newListCmd(app, "list-tags", "List tags", func(ctx context.Context, origin ports.Origin) (render.Table, error) {
			tags, err := origin.Tags(ctx)
			return tables.Tags(tags), err
		}),
		newListCmd(app, "list-files", "List files", func(ctx context.Context, origin ports.Origin) (render.Table, error) {
			files, err := origin.Files(ctx)
			return tables.Files(files), err
		}),
		newListCmd(app, "list-users", "List users", func(ctx context.Context, origin ports.Origin) (render.Table, error) {
			users, err := origin.Users(ctx)
			return tables.Users(users), err
		}),
	)
}

// newListCmd builds one resource-listing command. The session bootstrap
// (profile flag, environment fallback, origin resolution) is shared; the
// fetch function is the only per-command part.
func newListCmd(app *app, use, short string, fetch func(context.Context, ports.Origin) (render.Table, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Args:    cobra.NoArgs,
		GroupID: groupResources,
	}
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

		table, err := fetch(cmd.Context(), origin)
		if err != nil {
			return err
		}

		return render.Render(cmd.OutOrStdout(), target, table)
	}

	return cmd
}

// origin resolves the profile (flag or environment fallback) and opens a
// session-bound entry point to the remote resource collections.
func (a *app) origin(ctx context.Context, profileName string) (ports.Origin, error) {
	name, err := resolveProfileName(profileName)
	if err != nil {
		return nil, err
	}

	profile, err := a.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", name, err)
	}

	session, err := a.sessions.FromProfile(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("establish session for profile %q: %w", name, err)
	}

	return session.Origin(), nil
}
