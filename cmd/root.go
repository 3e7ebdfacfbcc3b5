package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tozahudud/binbot/internal/config"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "binbot",
		Short:         "Waste-bin and sensor-relay chat bots",
		Long:          "binbot runs the waste-bin Telegram bot (serve) and the IoT sensor relay (monitor), and ships the operator tools around them: sensor text parsing, photo classification, bin lookups and secret management.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.flags.configFile, "config", "", "Config file (default ~/.binbot/config.toml)")
	flags.StringVar(&app.flags.envFile, "env-file", ".env", "Dotenv file loaded before reading the environment")
	flags.BoolVar(&app.flags.asJSON, "json", false, "Print machine-readable JSON output")
	flags.BoolVar(&app.flags.trace, "trace", false, "Write OpenTelemetry spans to stderr")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.String("log-format", "", "Log format (text|json)")
	_ = app.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = app.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return app.init(cmd)
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, _ []string) error {
		return app.close(cmd.Context())
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(app),
		newMonitorCmd(app),
		newParseCmd(app),
		newClassifyCmd(app),
		newBinCmd(app),
		newSecretCmd(app),
	)

	return rootCmd
}
