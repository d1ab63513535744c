// Package commands implements the CLI commands for pacdb.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.trai.ch/pacdb/internal/app"
	"go.trai.ch/pacdb/internal/build"
	"go.trai.ch/pacdb/internal/core/domain"
	"go.trai.ch/zerr"
)

// EnvPrefix prefixes the environment variables that override flags, e.g. PACDB_DBPATH.
const EnvPrefix = "pacdb"

// DotEnvFile is the optional environment file read from the working directory.
const DotEnvFile = ".env"

// CLI represents the command line interface for pacdb.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	v       *viper.Viper
}

// Application represents the application logic interface.
type Application interface {
	ConfigureLogging(verbose, json bool)
	Status(ctx context.Context, opts app.Options) (app.StatusReport, error)
	List(ctx context.Context, opts app.Options) ([]domain.PackageKey, error)
	Info(ctx context.Context, opts app.Options, name, version string) (*domain.LocalPackage, error)
	Latest(ctx context.Context, opts app.Options, name string) (domain.PackageKey, error)
	Export(ctx context.Context, opts app.Options, out string) (int, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pacdb",
		Short:         "Inspect the local database of installed packages",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to the configuration file (default /etc/pacdb.yaml)")
	flags.String("root", "", "Installation root, overrides the configuration file")
	flags.String("dbpath", "", "Database directory, overrides the configuration file")
	flags.String("siglevel", "", "Signature level options, e.g. \"Required DatabaseOptional\"")
	flags.Int("workers", 0, "Maximum goroutines parsing package records (0 = unbounded)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.Bool("json", false, "Log in JSON format")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
		v:       viper.New(),
	}
	rootCmd.PersistentPreRunE = c.initConfig

	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newInfoCmd())
	rootCmd.AddCommand(c.newLatestCmd())
	rootCmd.AddCommand(c.newExportCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// initConfig binds the flags to viper so each one can also be set through the environment
// or a .env file in the working directory.
func (c *CLI) initConfig(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to load environment file"), "path", DotEnvFile)
	}

	c.v.SetEnvPrefix(EnvPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	if err := c.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	c.app.ConfigureLogging(c.v.GetBool("verbose"), c.v.GetBool("json"))
	return nil
}

func (c *CLI) options() app.Options {
	return app.Options{
		ConfigPath:   c.v.GetString("config"),
		RootPath:     c.v.GetString("root"),
		DatabasePath: c.v.GetString("dbpath"),
		SigLevel:     c.v.GetString("siglevel"),
		Workers:      c.v.GetInt("workers"),
	}
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
