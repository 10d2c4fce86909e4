package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grid-tools/hazelcast-mcp/pkg/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Long:  "The config command provides subcommands to create and inspect the configuration file.",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var path string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default settings",
		Long: `Write a configuration file populated with the default settings, ready to be
edited. Without --path the file goes to the XDG config home.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			target := path
			if target == "" {
				var err error
				target, err = config.Path()
				if err != nil {
					return err
				}
			}

			if !force {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", target)
				}
			}

			if err := config.Default().Save(target); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Where to write the file (default: XDG config home)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Print the configuration the server would run with, after merging the file over the defaults.",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}
			fmt.Print(string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "Path to the configuration file")

	return cmd
}
