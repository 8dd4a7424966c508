package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kyaoi/mdpeek/internal/app"
	"github.com/kyaoi/mdpeek/internal/config"
)

type ctxKey string

const configKey ctxKey = "config"

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command. Without arguments it opens the
// built-in sample; with a file it opens the file; with a directory it opens
// the file picker there.
func NewRootCmd() *cobra.Command {
	var cfgPath string
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "mdpeek [file|directory]",
		Short:         "View and edit markdown in the terminal",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(v); err != nil {
				return err
			}
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 1 {
				target = args[0]
			}
			return app.Run(cmd.Context(), target, getConfig(cmd))
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (yaml|toml|json)")
	flags.String("style", "", "glamour style")
	flags.Int("width", 0, "wrap width for rendered markdown")
	flags.Bool("emoji", false, "render :emoji: shortcodes")
	cmd.Flags().Bool("watch", true, "reload the open file when it changes on disk")
	cmd.Flags().String("log-file", "", "write diagnostics to this file")

	// Bound flags override file and env values only when set explicitly.
	_ = v.BindPFlag("style", flags.Lookup("style"))
	_ = v.BindPFlag("word_wrap", flags.Lookup("width"))
	_ = v.BindPFlag("render.emoji", flags.Lookup("emoji"))
	_ = v.BindPFlag("watch", cmd.Flags().Lookup("watch"))
	_ = v.BindPFlag("log_file", cmd.Flags().Lookup("log-file"))

	cmd.AddCommand(newExportCmd(v))
	cmd.AddCommand(newConfigCmd(v))
	return cmd
}

func getConfig(cmd *cobra.Command) config.Config {
	cfg, ok := cmd.Context().Value(configKey).(config.Config)
	if !ok {
		panic(fmt.Sprintf("%s: configuration not loaded", cmd.Name()))
	}
	return cfg
}
