package main

import (
	"github.com/spf13/cobra"
	"github.com/sw385/Semester-Schedule/internal/logger"
	"github.com/sw385/Semester-Schedule/internal/scheduler"
)

// options holds what every subcommand shares: the resolved configuration.
type options struct {
	configPath string
	cfg        *scheduler.Configuration
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "semester-schedule",
		Short: "Find compact weekly class schedules in a course catalog",
		Long: `semester-schedule reads a catalog of course sections, enumerates every
combination of sections inside a credit window and ranks the conflict free
schedules by how little time they leave you waiting on campus.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.StringP("catalog", "i", "", "catalog file (csv/tsv, yaml/json or html)")
	flags.String("delimiter", "", "field delimiter of delimited catalogs (default tab)")
	flags.Bool("skip-bad-rows", false, "skip catalog rows whose days and times do not parse")
	flags.String("log-level", "", "debug, info, warn, error or disabled")

	cmd.AddCommand(newGenerateCmd(opts), newValidateCmd(opts))
	return cmd
}

// load resolves the configuration: defaults, then the YAML file, then any
// flag given on the command line.
func (o *options) load(cmd *cobra.Command) error {
	cfg := scheduler.NewDefaultConfiguration()
	if o.configPath != "" {
		loaded, err := scheduler.LoadConfiguration(o.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("catalog") {
		cfg.CatalogFile, _ = f.GetString("catalog")
	}
	if f.Changed("delimiter") {
		cfg.Delimiter, _ = f.GetString("delimiter")
	}
	if f.Changed("skip-bad-rows") {
		cfg.SkipMalformedRows, _ = f.GetBool("skip-bad-rows")
	}
	if f.Changed("log-level") {
		cfg.LogLevel, _ = f.GetString("log-level")
	}
	if f.Changed("min") {
		cfg.MinCredits, _ = f.GetFloat64("min")
	}
	if f.Changed("max") {
		cfg.MaxCredits, _ = f.GetFloat64("max")
	}
	if f.Changed("count") {
		cfg.SelectionCount, _ = f.GetInt("count")
	}
	if f.Changed("strategy") {
		strategy, _ := f.GetString("strategy")
		cfg.Strategy = scheduler.Strategy(strategy)
	}
	if f.Changed("no-mornings") {
		cfg.NoMornings, _ = f.GetBool("no-mornings")
	}
	if f.Changed("no-nights") {
		cfg.NoNights, _ = f.GetBool("no-nights")
	}
	if f.Changed("out") {
		cfg.OutputDir, _ = f.GetString("out")
	}
	if f.Changed("format") {
		cfg.Formats, _ = f.GetStringSlice("format")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Configure(logger.Config{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Pretty: cfg.LogFormat != "json",
		Output: cmd.ErrOrStderr(),
	})
	o.cfg = cfg
	return nil
}
