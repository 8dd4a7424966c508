package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kyaoi/mdpeek/internal/config"
)

func newConfigCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if used := v.ConfigFileUsed(); used != "" {
				fmt.Fprintf(out, "# file: %s\n", used)
			}
			for _, o := range config.Options() {
				fmt.Fprintf(out, "# %s\n%s = %v\n", o.Comment, o.Key, v.Get(o.Key))
			}
			return nil
		},
	}
}
