package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/deduce/internal/presentation/report"
	"github.com/aretw0/deduce/internal/presentation/tui"
	"github.com/aretw0/deduce/pkg/domain"
)

// OutputFormat selects how a report is printed.
type OutputFormat string

const (
	FormatText     OutputFormat = "text"
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
)

// ErrNoInput is returned when neither arguments nor a prompt produced facts.
var ErrNoInput = errors.New("no symptoms given")

// RunOptions configures a single inference run from the command line.
type RunOptions struct {
	Args   []string
	Goals  []string
	Format OutputFormat
	Save   bool
	// Interactive prints a prompt before reading In.
	Interactive bool
	// In is read for a line of symptoms when Args is empty.
	In  io.Reader
	Out io.Writer
}

// Run reads the user's symptoms, runs the catalog and prints the report.
func Run(ctx context.Context, app *App, opts RunOptions) (*domain.Report, error) {
	line := strings.Join(opts.Args, ", ")
	if strings.TrimSpace(line) == "" && opts.In != nil {
		if opts.Interactive {
			fmt.Fprint(opts.Out, "Enter symptoms (comma separated): ")
		}
		read, err := bufio.NewReader(opts.In).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		line = read
	}
	if strings.TrimSpace(line) == "" {
		return nil, ErrNoInput
	}

	r, mappings, err := app.Engine.InferInput(ctx, line, opts.Goals...)
	if r == nil {
		return nil, err
	}
	if err != nil {
		app.Logger.Warn("Run interrupted", "err", err, "stop_reason", r.Result.StopReason)
	}

	if err := PrintReport(opts.Out, r, opts.Format, func(w io.Writer) error {
		if err := report.Mappings(w, mappings); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "Normalized/expanded user facts: [%s]\n\n", strings.Join(r.UserFacts, ", "))
		return err
	}); err != nil {
		return r, err
	}

	if opts.Save && app.Store != nil {
		if err := app.Store.Save(ctx, r); err != nil {
			return r, fmt.Errorf("failed to save report: %w", err)
		}
		if opts.Format != FormatJSON {
			printSystemMessage(opts.Out, "Report saved as '%s'.", r.ID)
		}
	}
	return r, err
}

// PrintReport writes r in the requested format. preamble, if set, runs
// before the text rendering only.
func PrintReport(w io.Writer, r *domain.Report, format OutputFormat, preamble func(io.Writer) error) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatMarkdown:
		out, err := tui.NewRenderer()(report.Markdown(r))
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, out)
		return err
	case FormatText, "":
		if preamble != nil {
			if err := preamble(w); err != nil {
				return err
			}
		}
		return report.Text(w, r)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
