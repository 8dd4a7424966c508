package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kyaoi/mdpeek/internal/app"
)

func newExportCmd(v *viper.Viper) *cobra.Command {
	var (
		output string
		title  string
	)
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Render a markdown file to a standalone HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var buf bytes.Buffer
			if err := app.Export(cmd.Context(), args[0], title, getConfig(cmd), &buf); err != nil {
				return err
			}
			if output == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".html"
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path, - for stdout (default: <file>.html)")
	cmd.Flags().StringVar(&title, "title", "", "page title (default: front-matter title or file name)")
	cmd.Flags().Bool("raw-html", false, "keep sanitised inline HTML")
	_ = v.BindPFlag("export.raw_html", cmd.Flags().Lookup("raw-html"))
	return cmd
}
