package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/paycalc/internal/domain"
)

// Formatter renders a tax breakdown in one output format.
type Formatter interface {
	Name() string
	Format(tb *domain.TaxBreakdown) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(tb *domain.TaxBreakdown) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(tb *domain.TaxBreakdown) ([]byte, error) { return f.F(tb) }

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"json":    JSONFormatter{Pretty: true},
	"csv":     CSVFormatter{},
}

var aliases = map[string]string{
	"table":       "console",
	"text":        "console",
	"json-pretty": "json",
}

// AvailableFormatterNames lists the registered formatter names, sorted.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted alternate names, sorted.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetFormatterByName returns the formatter registered under name or alias,
// or nil when none matches.
func GetFormatterByName(name string) Formatter {
	if target, ok := aliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// WriteFormatted renders tb with f and writes it to a timestamped file in the
// working directory. It returns the file name.
func WriteFormatted(f Formatter, tb *domain.TaxBreakdown, ext string) (string, error) {
	data, err := f.Format(tb)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("paycalc_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
