package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/utilitycheck/utility-data/exporters/filewriter"
	fileimporter "github.com/utilitycheck/utility-data/importers/filereader"
	"github.com/utilitycheck/utility-data/source"
)

// DefaultOutput is the file generated when no output is configured.
const DefaultOutput = "utility_data.js"

// Input maps one source file to the constant that embeds it.
type Input struct {
	// Name is a short label used in logs and metrics.
	Name string `yaml:"name"`
	// Path of the file, relative to the working directory.
	Path string `yaml:"path"`
	// Constant is the JavaScript binding the content is assigned to.
	Constant string `yaml:"constant"`
}

// Config for a generation run.
type Config struct {
	Output            string  `yaml:"output"`
	Header            bool    `yaml:"header"`
	Atomic            bool    `yaml:"atomic"`
	NormalizeNewlines bool    `yaml:"normalize-newlines"`
	StripBOM          bool    `yaml:"strip-bom"`
	Inputs            []Input `yaml:"inputs"`
}

// Default returns the built in configuration: gas.csv and we.csv embedded in
// utility_data.js.
func Default() Config {
	imp := fileimporter.DefaultConfig()
	exp := filewriter.DefaultConfig()
	return Config{
		Output:            DefaultOutput,
		Header:            false,
		Atomic:            exp.Atomic,
		NormalizeNewlines: imp.NormalizeNewlines,
		StripBOM:          imp.StripBOM,
		Inputs: []Input{
			{Name: "gas", Path: "gas.csv", Constant: "GAS_CSV_TEXT"},
			{Name: "we", Path: "we.csv", Constant: "WE_CSV_TEXT"},
		},
	}
}

// Parse overlays the YAML document on top of the defaults. Unknown keys are
// rejected. A listed inputs section replaces the default inputs entirely.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid config file (%s): %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile looks for FileName with any of FileTypes in dir. An empty
// string is returned when there is none; more than one match is an error.
func FindConfigFile(dir string) (string, error) {
	count := 0
	fullPath := ""

	for _, fileType := range FileTypes {
		candidate := filepath.Join(dir, FileName+"."+fileType)
		if _, err := os.Stat(candidate); err == nil {
			count++
			fullPath = candidate
		}
	}

	if count > 1 {
		return "", fmt.Errorf("config filename (%s) in directory (%s) matched more than one filetype: %v",
			FileName, dir, FileTypes)
	}
	return fullPath, nil
}

// ApplyFlags overrides fields with the flags that were changed on the command
// line or, after BindFlagSet, through the environment.
func (cfg *Config) ApplyFlags(flags *pflag.FlagSet) error {
	var err error
	if flags.Changed(FlagOutput) {
		if cfg.Output, err = flags.GetString(FlagOutput); err != nil {
			return err
		}
	}
	boolFlags := map[string]*bool{
		FlagHeader:            &cfg.Header,
		FlagAtomic:            &cfg.Atomic,
		FlagNormalizeNewlines: &cfg.NormalizeNewlines,
		FlagStripBOM:          &cfg.StripBOM,
	}
	for name, field := range boolFlags {
		if !flags.Changed(name) {
			continue
		}
		if *field, err = flags.GetBool(name); err != nil {
			return err
		}
	}
	return nil
}

// Valid validates a configuration.
func (cfg *Config) Valid() error {
	if cfg.Output == "" {
		return fmt.Errorf("supplied output path was empty")
	}
	if len(cfg.Inputs) == 0 {
		return fmt.Errorf("no inputs configured")
	}

	names := make(map[string]bool)
	constants := make(map[string]bool)
	output := filepath.Clean(cfg.Output)
	for i, in := range cfg.Inputs {
		if in.Name == "" {
			return fmt.Errorf("input %d: name is empty", i)
		}
		if names[in.Name] {
			return fmt.Errorf("input %d: duplicate name %q", i, in.Name)
		}
		names[in.Name] = true

		if in.Path == "" {
			return fmt.Errorf("input %q: path is empty", in.Name)
		}
		if filepath.Clean(in.Path) == output {
			return fmt.Errorf("input %q: path is the output file", in.Name)
		}

		if err := source.ValidIdentifier(in.Constant); err != nil {
			return fmt.Errorf("input %q: %w", in.Name, err)
		}
		if constants[in.Constant] {
			return fmt.Errorf("input %q: duplicate constant %s", in.Name, in.Constant)
		}
		constants[in.Constant] = true
	}
	return nil
}

// Paths returns the input paths in order.
func (cfg *Config) Paths() []string {
	paths := make([]string, 0, len(cfg.Inputs))
	for _, in := range cfg.Inputs {
		paths = append(paths, in.Path)
	}
	return paths
}

// ImporterConfig returns the file importer settings.
func (cfg *Config) ImporterConfig() fileimporter.Config {
	return fileimporter.Config{
		NormalizeNewlines: cfg.NormalizeNewlines,
		StripBOM:          cfg.StripBOM,
	}
}

// ExporterConfig returns the file exporter settings.
func (cfg *Config) ExporterConfig() filewriter.Config {
	exp := filewriter.DefaultConfig()
	exp.Atomic = cfg.Atomic
	return exp
}

func (cfg *Config) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Output: %s ", cfg.Output)
	for _, in := range cfg.Inputs {
		fmt.Fprintf(&sb, "Input: %s=%s->%s ", in.Name, in.Path, in.Constant)
	}
	fmt.Fprintf(&sb, "Header: %t Atomic: %t NormalizeNewlines: %t StripBOM: %t",
		cfg.Header, cfg.Atomic, cfg.NormalizeNewlines, cfg.StripBOM)
	return sb.String()
}
