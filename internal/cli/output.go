package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/justsurfingit/internship-finder/internal/services"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
	// ExitConfig marks a config file or flag the command could not use.
	ExitConfig = 2
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// GetExitCode returns ExitFailure unless err is an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the JSON envelope for --format json.
type CLIResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

// Success prints data as JSON, or calls text for the human form.
func (f *OutputFormatter) Success(data any, text func(io.Writer)) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{Status: "ok", Data: data})
	}
	text(f.Writer)
	return nil
}

func renderBrowse(w io.Writer, v *services.BrowseView) {
	fmt.Fprintf(w, "%d companies, %d opportunities, %d locations\n",
		v.Summary.Companies, v.Summary.TotalOpportunities, v.Summary.DistinctLocations)
	if v.Query.Term != "" {
		fmt.Fprintf(w, "search: %q\n", v.Query.Term)
	}
	if v.ActiveFilters > 0 {
		f := v.Query.Filters
		fmt.Fprintf(w, "filters: industry=%s location=%s company_size=%s\n", f.Industry, f.Location, f.CompanySize)
	}
	if v.Len() == 0 {
		fmt.Fprintf(w, "\n%s\n", v.EmptyMessage)
		return
	}
	renderSection(w, "Featured", v.Featured)
	renderSection(w, "All companies", v.Regular)
}
