// Package commands implements the figma-fetch command line.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/designsync/figma-fetch/internal/cli"
	"github.com/designsync/figma-fetch/internal/constants"
	"github.com/designsync/figma-fetch/internal/figma"
	"github.com/designsync/figma-fetch/internal/record"
	"github.com/designsync/figma-fetch/internal/snapshot"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// App represents the application.
type App struct {
	cmd    *cobra.Command
	viper  *viper.Viper
	config appConfig
}

// appConfig holds the configuration for the application.
type appConfig struct {
	Verbosity int           `mapstructure:"verbose"`
	Channel   string        `mapstructure:"channel"`
	Token     string        `mapstructure:"token"`
	OutputDir string        `mapstructure:"output-dir"`
	BaseURL   string        `mapstructure:"base-url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Record    bool          `mapstructure:"record"`
}

// New creates a new App instance with default values.
func New() (*App, error) {
	a := App{}

	a.cmd = &cobra.Command{
		Use:   constants.CmdName + " --channel FILE-KEY",
		Short: "Download the raw JSON of a Figma file",
		Long: `Download the raw JSON document of a Figma file and store it locally for offline processing.

The file is fetched with a single authenticated request and written, pretty-printed, to
<output-dir>/` + snapshot.FileName("<channel>") + `, replacing any previous download of the same file.
The access token is taken from --token, or from the ` + constants.TokenEnv + ` environment variable.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Command parsing has been successful. Returns to not print usage anymore.
			a.cmd.SilenceUsage = true
			cli.SetVerbosity(a.config.Verbosity) // Set verbosity before loading config
			if err := cli.InitViperConfig(constants.CmdName, a.cmd, a.viper); err != nil {
				return err
			}
			if err := cli.Unmarshal(a.viper, &a.config); err != nil {
				return err
			}
			cli.SetVerbosity(a.config.Verbosity)
			slog.Debug("Got app config", "channel", a.config.Channel, "outputDir", a.config.OutputDir, "timeout", a.config.Timeout, "record", a.config.Record)

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context())
		},
	}
	a.viper = viper.New()
	a.cmd.CompletionOptions.HiddenDefaultCmd = true

	installRootCmd(&a)
	cli.InstallConfigFlag(a.cmd)

	if err := a.viper.BindPFlags(a.cmd.PersistentFlags()); err != nil {
		return nil, err
	}
	if err := a.viper.BindPFlags(a.cmd.Flags()); err != nil {
		return nil, err
	}
	if err := a.viper.BindEnv("token", constants.TokenEnv); err != nil {
		return nil, err
	}

	a.installVersion()

	return &a, nil
}

func installRootCmd(app *App) {
	cmd := app.cmd

	cmd.PersistentFlags().CountVarP(&app.config.Verbosity, "verbose", "v", "issue INFO (-v), DEBUG (-vv)")

	cmd.Flags().StringVar(&app.config.Channel, "channel", "", "Figma file key (e.g. z4yvn5xr)")
	cmd.Flags().StringVar(&app.config.Token, "token", "", "Figma personal access token (falls back to the "+constants.TokenEnv+" environment variable)")
	cmd.Flags().StringVar(&app.config.OutputDir, "output-dir", constants.DefaultOutputDir, "directory to store the raw file in")
	cmd.Flags().DurationVar(&app.config.Timeout, "timeout", constants.DefaultTimeout, "time limit for the request to Figma")
	cmd.Flags().BoolVar(&app.config.Record, "record", false, "record the fetch in "+constants.RecordFileName+" in the output directory")
	cmd.Flags().StringVar(&app.config.BaseURL, "base-url", constants.DefaultBaseURL, "Figma files endpoint")

	if err := cmd.MarkFlagRequired("channel"); err != nil {
		// This should never happen.
		panic(fmt.Sprintf("failed to mark channel flag as required: %v", err))
	}
	if err := cmd.MarkFlagDirname("output-dir"); err != nil {
		// This should never happen.
		panic(fmt.Sprintf("failed to mark output-dir flag as dirname: %v", err))
	}
	if err := cmd.Flags().MarkHidden("base-url"); err != nil {
		// This should never happen.
		panic(fmt.Sprintf("failed to hide base-url flag: %v", err))
	}
}

// Run executes the command and associated process, returning an error if any.
func (a App) Run() error {
	return a.cmd.Execute()
}

// run fetches the configured file and stores it.
func (a *App) run(ctx context.Context) error {
	conf := a.config

	if err := figma.ValidateFileKey(conf.Channel); err != nil {
		return err
	}
	if conf.Token == "" {
		return fmt.Errorf("%w. Pass --token or set %s", figma.ErrMissingToken, constants.TokenEnv)
	}

	runID := uuid.NewString()
	l := slog.Default().With("run", runID, "channel", conf.Channel)

	c, err := figma.New(conf.Token, figma.WithBaseURL(conf.BaseURL), figma.WithTimeout(conf.Timeout), figma.WithLogger(l))
	if err != nil {
		return fmt.Errorf("failed to create Figma client: %w", err)
	}

	out := a.cmd.OutOrStdout()
	fmt.Fprintf(out, "Connecting to Figma file '%s'…\n", conf.Channel)

	p, err := c.File(ctx, conf.Channel)
	if err != nil {
		return err
	}
	fetchedAt := time.Now()

	path, err := snapshot.Write(conf.OutputDir, conf.Channel, p)
	if err != nil {
		return err
	}
	l.Info("Saved raw file", "file", path)

	if conf.Record {
		e, err := record.NewEntry(path, runID, fetchedAt)
		if err != nil {
			return err
		}
		if err := record.New(l, conf.OutputDir).Update(conf.Channel, e); err != nil {
			return err
		}
	}

	color.New(color.FgGreen).Fprintf(out, "✅ Raw JSON saved to %s\n", path)
	return nil
}
