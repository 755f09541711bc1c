package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/Domenick1991/skybook/internal/codec"
	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/ledger"
	"github.com/Domenick1991/skybook/internal/ticketlog"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/klauspost/compress/zstd"
)

func verify(ctx context.Context, w io.Writer, path string, strict bool) error {
	_, report, err := ticketlog.ReadFile(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "frames: %d\nbad frames: %d\nvalid bytes: %d\ntail bytes: %d\nunreadable bytes: %d\n",
		report.Frames, report.BadFrames, report.ValidSize, report.TailBytes, report.Unreadable)
	if report.Unreadable > 0 {
		return fmt.Errorf("%s: %w: %d bytes after offset %d cannot be read", path, ticketlog.ErrDamaged, report.Unreadable, report.ValidSize)
	}
	if strict && (report.BadFrames > 0 || report.TailBytes > 0) {
		return fmt.Errorf("%s: %d bad frames, %d tail bytes", path, report.BadFrames, report.TailBytes)
	}
	return nil
}

// load rebuilds the ledger the same way the service does at startup.
func load(ctx context.Context, path string) (*ledger.Ledger, int, error) {
	tickets, _, err := ticketlog.ReadFile(ctx, path)
	if err != nil {
		return nil, 0, err
	}
	l := ledger.New()
	skipped := 0
	for _, t := range tickets {
		if err := l.Insert(t); err != nil {
			skipped++
		}
	}
	return l, skipped, nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func dump(ctx context.Context, w io.Writer, path, email string) error {
	l, skipped, err := load(ctx, path)
	if err != nil {
		return err
	}

	var tickets []domain.Ticket
	if email == "" {
		tickets = l.Snapshot()
	} else {
		tickets = l.SnapshotFor(email, false)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "CLASS", "FLIGHT", "ROUTE", "CUSTOMER", "EMAIL", "PRICE", "ISSUED").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, tk := range tickets {
		t.Row(
			tk.ID,
			string(tk.CabinClass),
			tk.Flight.FlightNumber,
			tk.Flight.Origin+" -> "+tk.Flight.Destination,
			tk.Customer.Name,
			tk.Customer.Email,
			strconv.FormatFloat(tk.Price, 'f', 2, 64),
			tk.IssuedAt.Format(time.RFC3339),
		)
	}

	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d tickets", len(tickets))
	if skipped > 0 {
		fmt.Fprintf(w, " (%d duplicate records skipped)", skipped)
	}
	fmt.Fprintln(w)
	return nil
}

func export(ctx context.Context, w io.Writer, path, out string) (err error) {
	l, _, err := load(ctx, path)
	if err != nil {
		return err
	}
	tickets := l.Snapshot()

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	zw, err := zstd.NewWriter(file)
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}
	enc := codec.NewEncoder(zw)
	for _, t := range tickets {
		if err := enc.Encode(t); err != nil {
			zw.Close()
			return fmt.Errorf("encoding ticket %s: %w", t.ID, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flushing %s: %w", out, err)
	}

	fmt.Fprintf(w, "exported %d tickets to %s\n", len(tickets), out)
	return nil
}
