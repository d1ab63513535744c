package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/pacdb/internal/core/domain"
)

func (c *CLI) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info NAME [VERSION]",
		Short: "Show the record of an installed package",
		Long: "Show the record of an installed package.\n" +
			"Without VERSION the newest installed version is shown.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var version string
			if len(args) == 2 {
				version = args[1]
			}
			pkg, err := c.app.Info(cmd.Context(), c.options(), args[0], version)
			if err != nil {
				return err
			}
			writeInfo(cmd.OutOrStdout(), pkg)
			return nil
		},
	}
}

func writeInfo(w io.Writer, pkg *domain.LocalPackage) {
	field := func(label, value string) {
		if value == "" {
			value = "None"
		}
		_, _ = fmt.Fprintf(w, "%-16s: %s\n", label, value)
	}
	list := func(label string, values []string) {
		field(label, strings.Join(values, "  "))
	}

	field("Name", pkg.Name)
	field("Version", pkg.Version)
	field("Description", pkg.Description)
	field("Architecture", pkg.Arch)
	field("URL", pkg.URL)
	list("Licenses", pkg.Licenses)
	list("Groups", pkg.Groups)
	list("Provides", pkg.Provides)
	list("Depends On", pkg.Depends)
	list("Optional Deps", pkg.OptDepends)
	list("Conflicts With", pkg.Conflicts)
	list("Replaces", pkg.Replaces)
	field("Installed Size", strconv.FormatInt(pkg.Size, 10)+" B")
	field("Packager", pkg.Packager)
	field("Build Date", formatDate(pkg.BuildDate))
	field("Install Date", formatDate(pkg.InstallDate))
	field("Install Reason", formatReason(pkg.Reason))

	validation := make([]string, 0, len(pkg.Validation))
	for _, v := range pkg.Validation {
		validation = append(validation, string(v))
	}
	list("Validated By", validation)

	field("Files", strconv.Itoa(len(pkg.Files)))
	field("Package URL", pkg.PURL())
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatReason(r domain.InstallReason) string {
	if r == domain.ReasonDependency {
		return "Installed as a dependency for another package"
	}
	return "Explicitly installed"
}
