package version

import (
	"encoding/json"
	"fmt"

	"github.com/endorses/seqscan/internal/pkg/version"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var VersionCmd = newCommand()

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().Bool("short", false, "print only the version")
	cmd.Flags().StringP("format", "f", "text", "output format: text, yaml or json")
	return cmd
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	short, _ := cmd.Flags().GetBool("short")
	format, _ := cmd.Flags().GetString("format")

	switch format {
	case "text":
		if short {
			_, err := fmt.Fprintln(out, version.GetShortVersion())
			return err
		}
		_, err := fmt.Fprintln(out, version.GetFullVersion())
		return err
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(version.Get())
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(version.Get()); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format: %q", format)
}
