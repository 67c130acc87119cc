package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/spf13/pflag"

	"github.com/utilitycheck/utility-data/config"
	"github.com/utilitycheck/utility-data/generator"
	"github.com/utilitycheck/utility-data/loggers"
	"github.com/utilitycheck/utility-data/util/metrics"
	"github.com/utilitycheck/utility-data/version"
)

type options struct {
	flags       *pflag.FlagSet
	configFile  string
	check       bool
	logLevel    string
	logFile     string
	metricsFile string
	doVersion   bool
}

// loadConfig resolves the configuration: defaults, then the config file, then
// environment and command line flags.
func loadConfig(opts *options) (config.Config, error) {
	path := opts.configFile
	if path == "" {
		var err error
		path, err = config.FindConfigFile(".")
		if err != nil {
			return config.Config{}, err
		}
	}

	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
	}

	if err := cfg.ApplyFlags(opts.flags); err != nil {
		return config.Config{}, err
	}
	return cfg, cfg.Valid()
}

func runUtilityData(opts *options, stdout, stderr io.Writer) error {
	if err := config.BindFlagSet(opts.flags); err != nil {
		return err
	}

	if opts.doVersion {
		fmt.Fprintln(stdout, version.LongVersion())
		return nil
	}

	logger, err := loggers.MakeLogger(opts.logLevel, opts.logFile, stderr)
	if err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger.Debug(cfg.String())

	metrics.RegisterPrometheusMetrics()
	if opts.metricsFile != "" {
		defer writeMetrics(logger, opts.metricsFile)
	}

	gen := generator.MakeFileGenerator(cfg, logger)
	if opts.check {
		if err := gen.Check(); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s is up to date\n", cfg.Output)
		return nil
	}

	result, err := gen.Run()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Successfully created %s\n", result.Output)
	return nil
}

func writeMetrics(logger *log.Logger, path string) {
	if err := metrics.WriteTextfile(path); err != nil {
		logger.WithError(err).Errorf("unable to write metrics to %s", path)
	}
}

// makeRootCmd creates the main cobra command and initializes flags.
func makeRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "utility-data",
		Short: "embed utility CSV exports in a JavaScript file",
		Long: `utility-data reads gas.csv and we.csv from the working directory and writes
utility_data.js, declaring GAS_CSV_TEXT and WE_CSV_TEXT as template literals
holding the file contents. The page loads these constants as fallback data
when the live spreadsheet cannot be fetched.

Inputs and output can be changed with a utility-data.yml file, flags or
UTILITY_DATA_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUtilityData(opts, stdout, stderr)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	opts.flags = cmd.Flags()
	opts.flags.StringVarP(&opts.configFile, config.FlagConfig, "c", "", "path to a config file, defaults to utility-data.yml in the working directory when present")
	opts.flags.StringP(config.FlagOutput, "o", defaults.Output, "output file")
	opts.flags.Bool(config.FlagHeader, defaults.Header, "emit a generated code header comment")
	opts.flags.Bool(config.FlagAtomic, defaults.Atomic, "replace the output atomically through a temporary file")
	opts.flags.Bool(config.FlagNormalizeNewlines, defaults.NormalizeNewlines, "convert CRLF and CR line endings to LF; when off, browsers still read CRs in the literals as LF")
	opts.flags.Bool(config.FlagStripBOM, defaults.StripBOM, "remove a leading UTF-8 byte order mark from inputs")
	opts.flags.BoolVar(&opts.check, config.FlagCheck, false, "verify the output is up to date without writing it")
	opts.flags.StringVarP(&opts.logLevel, config.FlagLogLevel, "l", "warn", "verbosity of logs: [error, warn, info, debug, trace]")
	opts.flags.StringVarP(&opts.logFile, config.FlagLogFile, "f", "", "file to write logs to, if unset logs are written to standard error")
	opts.flags.StringVar(&opts.metricsFile, config.FlagMetricsFile, "", "write prometheus metrics in text format to this file after the run")
	opts.flags.BoolVarP(&opts.doVersion, "version", "v", false, "print version and exit")

	return cmd
}

// execute runs the command and returns the process exit code. Every failure
// is reported as a single "Error: ..." line on stderr.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := makeRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	// Hidden command to generate docs in a given directory
	// utility-data generate-docs [path]
	if len(os.Args) == 3 && os.Args[1] == "generate-docs" {
		err := doc.GenMarkdownTree(makeRootCmd(os.Stdout, os.Stderr), os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
