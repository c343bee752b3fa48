package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maasutil/maascli/internal/render"
)

// profileEnvVar supplies a default profile name, making --profile-name
// optional when set.
const profileEnvVar = "MAAS_PROFILE"

func addOutputFormatFlag(cmd *cobra.Command, defaultTarget render.Target) *string {
	format := new(string)
	cmd.Flags().StringVar(format, "output-format", string(defaultTarget),
		"Output tabular data as a formatted table (pretty), an ASCII-only table (plain), or one of the dump formats (json, yaml, csv)")
	return format
}

func addProfileNameFlag(cmd *cobra.Command) *string {
	name := new(string)
	cmd.Flags().StringVar(name, "profile-name", "",
		"Name of the remote server profile to use; see list-profiles. Defaults to $"+profileEnvVar)
	return name
}

// resolveProfileName applies the environment fallback. The flag is only
// required when no fallback is present.
func resolveProfileName(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if name := os.Getenv(profileEnvVar); name != "" {
		return name, nil
	}
	return "", fmt.Errorf("--profile-name is required when %s is not set", profileEnvVar)
}
