package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"curator/config"
	applog "curator/logger"
	"curator/scoring"
	"curator/sheets"
	"curator/store"
	"curator/transfer"
)

const stdoutCLIName = "-"

var build string
var semanticVersion = "v0.1.0-dev" + build

// app bundles what every command needs.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	store store.Store
	opts  scoring.Options
}

func setup(cCtx *cli.Context) (*app, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Scoring()
	if err != nil {
		return nil, err
	}

	var st store.Store
	if cCtx.Bool("memory") {
		st = store.NewMemory()
	} else {
		st, err = store.OpenSQLite(cCtx.Context, cfg.DatabasePath())
		if err != nil {
			return nil, err
		}
	}
	return &app{cfg: cfg, log: logger, store: st, opts: opts}, nil
}

func (a *app) close() {
	a.store.Close()
	_ = a.log.Sync()
}

func withApp(fn func(*cli.Context, *app) error) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		a, err := setup(cCtx)
		if err != nil {
			return err
		}
		defer a.close()
		return fn(cCtx, a)
	}
}

func serve(cCtx *cli.Context, a *app) error {
	srv := &server{
		store:                a.store,
		sheets:               sheets.New(a.cfg.SheetsEndpoint, a.log),
		opts:                 a.opts,
		log:                  a.log,
		defaultSpreadsheetID: a.cfg.SpreadsheetID,
		qrSize:               a.cfg.QRSize,
	}

	httpSrv := &http.Server{
		Addr:              a.cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("curator is running", zap.String("addr", a.cfg.Port), zap.String("mode", string(a.opts.Mode)))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func leaderboard(cCtx *cli.Context, a *app) error {
	opts := a.opts
	if m := cCtx.String("mode"); m != "" {
		mode, err := scoring.ParseMode(m)
		if err != nil {
			return err
		}
		opts.Mode = mode
	}

	recs, err := a.store.List(cCtx.Context)
	if err != nil {
		return err
	}
	teams := scoring.FilterAndSort(scoring.AggregateWith(recs, opts), cCtx.String("query"), scoring.ParseSortKey(cCtx.String("sort")))

	out := cCtx.App.Writer
	switch cCtx.String("format") {
	case "json":
		return transfer.WriteJSON(out, teams)
	case "yaml":
		return transfer.WriteYAML(out, teams)
	case "table":
		_, err := fmt.Fprintln(out, leaderboardTable(teams))
		return err
	}
	return fmt.Errorf("unknown format %q", cCtx.String("format"))
}

func leaderboardTable(teams []scoring.TeamSummary) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Team", "Name", "Auto", "Teleop", "Endgame", "Total", "Matches")
	for i, team := range teams {
		t.Row(
			fmt.Sprint(i+1),
			team.TeamNumber,
			team.TeamName,
			fmt.Sprint(team.Auto),
			fmt.Sprint(team.Teleop),
			fmt.Sprint(team.Endgame),
			fmt.Sprint(team.Total),
			fmt.Sprint(team.Matches),
		)
	}
	return t.String()
}

func export(cCtx *cli.Context, a *app) (err error) {
	recs, err := a.store.List(cCtx.Context)
	if err != nil {
		return err
	}

	outputLocation := cCtx.String("output")
	var out io.WriteCloser = nopCloser{cCtx.App.Writer}
	if outputLocation != stdoutCLIName {
		out = transfer.NewLazyWriteCloser(func() (io.WriteCloser, error) {
			return os.OpenFile(outputLocation, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		})
	}
	defer closeOutput(out, outputLocation, &err)

	switch cCtx.String("format") {
	case "json":
		payload, err := transfer.EncodePayload(recs)
		if err != nil {
			return err
		}
		_, err = out.Write(payload)
		return err
	case "csv":
		return transfer.WriteCSV(out, recs)
	case "yaml":
		return transfer.WriteYAML(out, scoring.AggregateWith(recs, a.opts))
	case "qr":
		payload, err := transfer.EncodePayload(recs)
		if err != nil {
			return err
		}
		png, err := transfer.QRCode(payload, a.cfg.QRSize)
		if err != nil {
			return err
		}
		_, err = out.Write(png)
		return err
	}
	return fmt.Errorf("unknown format %q", cCtx.String("format"))
}

func importPayload(cCtx *cli.Context, a *app) error {
	var in io.Reader = os.Stdin
	if loc := cCtx.String("input"); loc != stdoutCLIName {
		f, err := os.Open(loc)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	recs, err := transfer.DecodePayload(data)
	if err != nil {
		return err
	}
	for i, rec := range recs {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	added, err := a.store.Append(cCtx.Context, recs...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cCtx.App.Writer, "imported %d of %d submissions\n", added, len(recs))
	return err
}

func clearData(cCtx *cli.Context, a *app) error {
	if err := a.store.Clear(cCtx.Context); err != nil {
		return err
	}
	_, err := fmt.Fprintln(cCtx.App.Writer, "local data cleared")
	return err
}

func count(cCtx *cli.Context, a *app) error {
	n, err := a.store.Count(cCtx.Context)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cCtx.App.Writer, "stored submissions: %d\n", n)
	return err
}

// closeOutput reports a failed close unless the export already failed.
func closeOutput(out io.Closer, name string, err *error) {
	if cerr := out.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close %s: %w", name, cerr)
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func newApp() *cli.App {
	return &cli.App{
		Name:    "curator",
		Usage:   "Record FTC match scouting data and rank teams",
		Version: semanticVersion,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "memory",
				Usage: "Keep submissions in memory instead of the SQLite file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the scouting web server",
				Action: withApp(serve),
			},
			{
				Name:  "leaderboard",
				Usage: "Print the team leaderboard",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Filter by team number or name"},
					&cli.StringFlag{Name: "sort", Aliases: []string{"s"}, Value: string(scoring.SortTotal), Usage: "total, auto, teleop or endgame"},
					&cli.StringFlag{Name: "mode", Usage: "first or mean (default from AGGREGATION_MODE)"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "table", Usage: "table, json or yaml"},
				},
				Action: withApp(leaderboard),
			},
			{
				Name:  "export",
				Usage: "Export stored submissions",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "json", Usage: "json (QR payload), csv, yaml (leaderboard) or qr (PNG)"},
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "The location to write the export. Can be a file path or \"-\" (for stdout).",
						Required: true,
					},
				},
				Action: withApp(export),
			},
			{
				Name:  "import",
				Usage: "Import a scanned QR payload",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Value: stdoutCLIName, Usage: "Payload file or \"-\" for stdin"},
				},
				Action: withApp(importPayload),
			},
			{
				Name:   "clear",
				Usage:  "Delete every stored submission",
				Action: withApp(clearData),
			},
			{
				Name:   "count",
				Usage:  "Print the number of stored submissions",
				Action: withApp(count),
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
