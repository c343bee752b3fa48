package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/maasutil/maascli/internal/application"
	"github.com/maasutil/maascli/internal/domain"
)

var (
	successStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	emphasisStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

func newLoginCmd(app *app) *cobra.Command {
	var insecure bool

	cmd := &cobra.Command{
		Use:   "login <profile-name> <url> [username] [password]",
		Short: "Log in to a remote server with username and password",
		Long: `Log in to a remote server with username and password.

Omit both the username and the password for anonymous access. Pass a
single hyphen as the password to read it from stdin; if a username is
given without a password you will be prompted for it interactively.
Credentials may also be embedded in the URL, but never in both places at
once.`,
		Args:    cobra.RangeArgs(2, 4),
		GroupID: groupProfiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := application.LoginParams{
				ProfileName: args[0],
				URL:         args[1],
				Insecure:    insecure,
			}
			if len(args) > 2 {
				params.Username = args[2]
			}
			if len(args) > 3 {
				params.Password = args[3]
			}

			profile, err := app.service.Login(cmd.Context(), params)
			if err != nil {
				return err
			}

			printLoginConfirmation(cmd.OutOrStdout(), profile)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&insecure, "insecure", "k", false, "Disable SSL certificate verification")

	return cmd
}

func newLoginAPICmd(app *app) *cobra.Command {
	var insecure bool

	cmd := &cobra.Command{
		Use:   "login-api <profile-name> <url> [credentials]",
		Short: "Log in to a remote server with an API key",
		Long: `Log in to a remote server with an API key.

The key is the long random-looking string of three colon-separated parts
shown in the user preferences page of the web UI. Pass a single hyphen to
read it from stdin, or omit it to be prompted interactively.`,
		Args:    cobra.RangeArgs(2, 3),
		GroupID: groupProfiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rawKey string
			if len(args) > 2 {
				rawKey = args[2]
			}

			profile, err := app.service.LoginWithAPIKey(cmd.Context(), args[0], args[1], rawKey, insecure)
			if err != nil {
				return err
			}

			printLoginConfirmation(cmd.OutOrStdout(), profile)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&insecure, "insecure", "k", false, "Disable SSL certificate verification")

	return cmd
}

func printLoginConfirmation(w io.Writer, profile domain.Profile) {
	fmt.Fprintf(w, "%s You are logged in to %s with the profile name %s.\n",
		successStyle.Render("Success!"),
		emphasisStyle.Render(profile.URL),
		emphasisStyle.Render(profile.Name))
	fmt.Fprintln(w, "For help with the available commands, try: maas --help")
}
