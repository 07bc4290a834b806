package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// ListReports prints the stored report IDs with their creation time and
// stop reason.
func ListReports(ctx context.Context, app *App, w io.Writer) error {
	ids, err := app.Store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "No saved reports.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tFACTS\tSTOP")
	for _, id := range ids {
		r, err := app.Store.Load(ctx, id)
		if err != nil {
			app.Logger.Warn("Skipping unreadable report", "id", id, "err", err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.ID, r.CreatedAt.Format(time.RFC3339), len(r.Result.Facts), r.Result.StopReason)
	}
	return tw.Flush()
}

// InspectReport loads a stored report and prints it.
func InspectReport(ctx context.Context, app *App, id string, format OutputFormat, w io.Writer) error {
	r, err := app.Store.Load(ctx, id)
	if err != nil {
		return err
	}
	return PrintReport(w, r, format, nil)
}

// DeleteReport removes a stored report.
func DeleteReport(ctx context.Context, app *App, id string, w io.Writer) error {
	if err := app.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	printSystemMessage(w, "Report '%s' deleted.", id)
	return nil
}
