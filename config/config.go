package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable configurations.
const EnvPrefix = "UTILITY_DATA"

// FileTypes is an array of types of the config file.
var FileTypes = [...]string{"yml", "yaml"}

// FileName is the name of the config file. Don't use 'utility_data', viper
// and the autoloader would confuse it with the generated utility_data.js.
const FileName = "utility-data"

// Flag names shared by the command and the config overrides.
const (
	FlagConfig            = "config"
	FlagOutput            = "output"
	FlagHeader            = "header"
	FlagAtomic            = "atomic"
	FlagNormalizeNewlines = "normalize-newlines"
	FlagStripBOM          = "strip-bom"
	FlagCheck             = "check"
	FlagLogLevel          = "loglevel"
	FlagLogFile           = "logfile"
	FlagMetricsFile       = "metrics-file"
)

// EnvName returns the environment variable bound to a flag name.
// e.g. prefix=UTILITY_DATA and --strip-bom is set by UTILITY_DATA_STRIP_BOM
func EnvName(flag string) string {
	return fmt.Sprintf("%s_%s", EnvPrefix, strings.ToUpper(strings.ReplaceAll(flag, "-", "_")))
}

// BindFlagSet glues cobra and viper together via FlagSets. Environment values
// are applied to every flag that was not set on the command line, so after
// this call Changed reports whether a flag came from the command line or the
// environment.
func BindFlagSet(flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores.
		if err := viper.BindEnv(f.Name, EnvName(f.Name)); err != nil {
			bindErr = err
			return
		}

		// Apply the viper value to the flag when the flag is not set and viper has a value
		if !f.Changed && viper.IsSet(f.Name) {
			val := viper.Get(f.Name)
			if err := flags.Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				bindErr = fmt.Errorf("invalid value for %s: %w", EnvName(f.Name), err)
			}
		}
	})
	return bindErr
}
