package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/iwvelando/donut-profit/internal/config"
	"github.com/iwvelando/donut-profit/internal/optimizer"
	"github.com/iwvelando/donut-profit/internal/params"
	"github.com/iwvelando/donut-profit/internal/profit"
	"github.com/iwvelando/donut-profit/pkg/constants"
	"github.com/iwvelando/donut-profit/pkg/format"
	"github.com/iwvelando/donut-profit/pkg/output"
	"github.com/iwvelando/donut-profit/pkg/validation"
	"go.uber.org/zap"
)

// setFlags collects repeated -set name=value edits.
type setFlags []string

func (s *setFlags) String() string {
	return strings.Join(*s, ",")
}

func (s *setFlags) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// applyEdits applies each name=value edit in order, the way slider changes
// arrive one field at a time.
func applyEdits(p params.Parameters, edits []string) (params.Parameters, error) {
	for _, edit := range edits {
		name, raw, ok := strings.Cut(edit, "=")
		if !ok {
			return p, fmt.Errorf("expected name=value, got %q", edit)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return p, fmt.Errorf("invalid value for %s: %w", name, err)
		}
		p, err = p.Set(name, value)
		if err != nil {
			return p, err
		}
	}
	return p, nil
}

// loadConfiguration falls back to the defaults when the file does not exist
// and reports whether it did.
func loadConfiguration(path string) (*config.Configuration, bool, error) {
	conf, err := config.LoadConfiguration(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), true, nil
	}
	return conf, false, err
}

func writeResult(result profit.Result, outputFormat, outputFile string) error {
	if outputFormat == constants.OutputFormatXLSX {
		return output.WriteXLSX(outputFile, result)
	}

	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", outputFile, err)
		}
		defer func() {
			_ = f.Close()
		}()
		w = f
	}

	switch outputFormat {
	case constants.OutputFormatCSV:
		return output.WriteCSV(w, result)
	case constants.OutputFormatJSON:
		return output.WriteJSON(w, result)
	default:
		return output.WritePretty(w, result)
	}
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json, xlsx")
	outputFileFlag := flag.String("output-file", "", "write output to this file instead of stdout (required for xlsx)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	optimize := flag.Bool("optimize", false, "search for the production volume with the highest expected profit")
	var edits setFlags
	flag.Var(&edits, "set", "parameter edit as name=value (repeatable)")
	flag.Parse()

	conf, usedDefaults, err := loadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if usedDefaults {
		logger.Info(fmt.Sprintf("no configuration at %s, using defaults (see %s)", *configLocation, constants.ExampleConfigFile),
			zap.String("op", "main"),
		)
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	outputFile := conf.Output.File
	if *outputFileFlag != "" {
		outputFile = *outputFileFlag
	}
	if err := validation.ValidateOutputTarget(outputFormat, outputFile); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	p, err := applyEdits(conf.Parameters, edits)
	if err != nil {
		logger.Fatal("failed to apply parameter edits",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if err := p.Validate(); err != nil {
		logger.Fatal("invalid parameters",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	conf.Parameters = p
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	result := profit.Evaluate(logger, p)

	if *optimize {
		runner, err := optimizer.NewRunner(logger, conf.Optimizer)
		if err != nil {
			logger.Fatal("failed to initialize optimizer",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		summary, err := runner.Run(p)
		if err != nil {
			logger.Fatal("optimizer execution failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		fmt.Fprintf(os.Stderr, "Optimal %s: %s (expected daily profit %s, change %s)\n",
			summary.Field, summary.ValueDisplay, format.Currency(summary.ExpectedProfit), summary.ImprovementLabel)
	}

	if err := writeResult(result, outputFormat, outputFile); err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
