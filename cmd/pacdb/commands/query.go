package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the local database is missing, invalid or valid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Status(cmd.Context(), c.options())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "path:     %s\n", report.Path)
			_, _ = fmt.Fprintf(out, "status:   %s\n", report.Status)
			_, _ = fmt.Fprintf(out, "packages: %d\n", report.Count)
			return nil
		},
	}
}

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			keys, err := c.app.List(cmd.Context(), c.options())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, key := range keys {
				_, _ = fmt.Fprintf(out, "%s %s\n", key.Name, key.Version)
			}
			return nil
		},
	}
}

func (c *CLI) newLatestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latest NAME",
		Short: "Print the newest installed version of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := c.app.Latest(cmd.Context(), c.options(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", key.Name, key.Version)
			return nil
		},
	}
}

func (c *CLI) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write a JSON inventory of every installed package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.app.Export(cmd.Context(), c.options(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d packages to %s\n", n, args[0])
			return nil
		},
	}
}
