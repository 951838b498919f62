// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/donut-profit/pkg/constants"
)

var outputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatJSON,
	constants.OutputFormatXLSX,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	for _, f := range outputFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %s", strings.Join(outputFormats, ", "), format)
}

// ValidateOutputTarget checks that formats which cannot go to stdout have a file.
func ValidateOutputTarget(format, file string) error {
	if err := ValidateOutputFormat(format); err != nil {
		return err
	}
	if format == constants.OutputFormatXLSX && strings.TrimSpace(file) == "" {
		return fmt.Errorf("output format %s requires an output file", format)
	}
	return nil
}
