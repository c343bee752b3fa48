package cmd

import (
	"github.com/spf13/cobra"

	"github.com/maasutil/maascli/internal/render"
	"github.com/maasutil/maascli/internal/tables"
)

func registerProfileCommands(root *cobra.Command, groups *groupRegistry, app *app) {
	groups.Ensure(root, groupProfiles, "Profile management:")

	root.AddCommand(
		newLoginCmd(app),
		newLoginAPICmd(app),
		newLogoutCmd(app),
		newListProfilesCmd(app),
		newRefreshProfilesCmd(app),
	)
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "logout <profile-name>",
		Short:   "Log out of a remote server, purging the stored credentials",
		Long:    "Log out of a remote server, removing the named profile from this client. Log in again later to re-create it.",
		Args:    cobra.ExactArgs(1),
		GroupID: groupProfiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.service.Logout(cmd.Context(), args[0])
		},
	}
}

func newListProfilesCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list-profiles",
		Short:   "List remote servers that have been logged in to",
		Args:    cobra.NoArgs,
		GroupID: groupProfiles,
	}
	format := addOutputFormatFlag(cmd, app.defaultTarget)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		target, err := render.ParseTarget(*format)
		if err != nil {
			return err
		}

		profiles, err := app.service.Profiles(cmd.Context())
		if err != nil {
			return err
		}

		return render.Render(cmd.OutOrStdout(), target, tables.Profiles(profiles))
	}

	return cmd
}

func newRefreshProfilesCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "refresh-profiles",
		Short:   "Refresh the API descriptions of all profiles",
		Long:    "Refresh the cached capability description of every stored profile. Use this after the remote server has been upgraded.",
		Args:    cobra.NoArgs,
		GroupID: groupProfiles,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.service.RefreshProfiles(cmd.Context())
		},
	}
}
