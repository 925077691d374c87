package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"curator/scoring"
	"curator/sheets"
	"curator/store"
	"curator/templates"
	"curator/transfer"
)

const maxImportBytes = 1 << 20

type server struct {
	store  store.Store
	sheets *sheets.Client
	opts   scoring.Options
	log    *zap.Logger

	// used until a spreadsheet ID is saved through the settings endpoint
	defaultSpreadsheetID string
	qrSize               int
}

type jsonResponse struct {
	Status  string `json:"status"` // "success" or "error"
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Fields  any    `json:"fields,omitempty"`
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/", s.homeHandler)
	r.Get("/teams/{team}", s.teamHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/teams", s.listTeamsHandler)
		r.Get("/submissions", s.listSubmissionsHandler)
		r.Post("/submissions", s.createSubmissionHandler)
		r.Delete("/submissions", s.clearSubmissionsHandler)
		r.Get("/export/payload", s.exportPayloadHandler)
		r.Get("/export/qr", s.exportQRHandler)
		r.Post("/import", s.importHandler)
		r.Get("/settings/spreadsheet", s.getSpreadsheetHandler)
		r.Put("/settings/spreadsheet", s.putSpreadsheetHandler)
	})
	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}

// leaderboard recomputes the summaries from the current store contents.
func (s *server) leaderboard(ctx context.Context, query string, key scoring.SortKey, opts scoring.Options) ([]scoring.TeamSummary, int, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	teams := scoring.FilterAndSort(scoring.AggregateWith(recs, opts), query, key)
	return teams, len(recs), nil
}

// requestOptions applies an optional ?mode= override to the configured options.
func (s *server) requestOptions(r *http.Request) (scoring.Options, error) {
	opts := s.opts
	if m := r.URL.Query().Get("mode"); m != "" {
		mode, err := scoring.ParseMode(m)
		if err != nil {
			return opts, err
		}
		opts.Mode = mode
	}
	return opts, nil
}

func sortParam(r *http.Request) scoring.SortKey {
	if v := r.URL.Query().Get("sort"); v != "" {
		return scoring.ParseSortKey(v)
	}
	return scoring.SortTotal
}

func (s *server) homeHandler(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	query := r.URL.Query().Get("q")
	key := sortParam(r)

	teams, n, err := s.leaderboard(r.Context(), query, key, opts)
	if err != nil {
		s.internalError(w, "load leaderboard", err)
		return
	}

	component := templates.Leaderboard(templates.LeaderboardPageData{
		Query:       query,
		Sort:        key,
		Mode:        opts.Mode,
		Teams:       teams,
		Submissions: n,
	})
	templ.Handler(component).ServeHTTP(w, r)
}

func (s *server) teamHandler(w http.ResponseWriter, r *http.Request) {
	team := scoring.TeamNumber(chi.URLParam(r, "team"))

	recs, err := s.store.List(r.Context())
	if err != nil {
		s.internalError(w, "load team", err)
		return
	}
	teamRecs := scoring.TeamRecords(recs, team)
	if len(teamRecs) == 0 {
		http.Error(w, fmt.Sprintf("Team %s not found", team), http.StatusNotFound)
		return
	}

	scores := make([]scoring.Scores, len(teamRecs))
	for i, rec := range teamRecs {
		scores[i] = s.opts.Weights.Calculate(rec)
	}
	component := templates.Team(templates.TeamPageData{
		Summary: scoring.AggregateWith(teamRecs, s.opts)[0],
		Records: teamRecs,
		Scores:  scores,
	})
	templ.Handler(component).ServeHTTP(w, r)
}

func (s *server) listTeamsHandler(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	teams, _, err := s.leaderboard(r.Context(), r.URL.Query().Get("q"), sortParam(r), opts)
	if err != nil {
		s.internalError(w, "load leaderboard", err)
		return
	}
	s.writeSuccess(w, http.StatusOK, teams)
}

func (s *server) listSubmissionsHandler(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.internalError(w, "list submissions", err)
		return
	}
	if recs == nil {
		recs = []scoring.Record{}
	}
	s.writeSuccess(w, http.StatusOK, recs)
}

func (s *server) createSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	var rec scoring.Record
	if err := json.NewDecoder(io.LimitReader(r.Body, maxImportBytes)).Decode(&rec); err != nil {
		s.writeError(w, "Bad Request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := rec.Validate(); err != nil {
		s.writeValidationError(w, err)
		return
	}

	ctx := r.Context()
	added, err := s.store.Append(ctx, rec)
	if err != nil {
		s.internalError(w, "save submission", err)
		return
	}
	if added == 0 {
		s.writeError(w, fmt.Sprintf("submission %s is already stored", rec.ID), http.StatusConflict)
		return
	}

	result := templates.SubmitResult{Saved: true, Message: "Data Saved Locally"}
	err = s.sheets.Submit(ctx, s.spreadsheetID(ctx), rec)
	switch {
	case err == nil:
		result.Exported = true
		result.Message = "Exported Data to Google Sheets"
	case errors.Is(err, sheets.ErrNotConfigured):
	default:
		s.log.Warn("spreadsheet export failed", zap.Error(err), zap.String("team", rec.TeamNumber.Key()))
		result.Message = "Saved locally; spreadsheet export failed: " + err.Error()
	}

	s.log.Info("submission saved",
		zap.String("team", rec.TeamNumber.Key()),
		zap.Int("qualification", rec.QualificationNumber),
		zap.Bool("exported", result.Exported))
	s.writeSuccess(w, http.StatusCreated, result)
}

func (s *server) clearSubmissionsHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		s.internalError(w, "clear submissions", err)
		return
	}
	s.log.Info("local data cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) payload(ctx context.Context) ([]byte, int, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	payload, err := transfer.EncodePayload(recs)
	return payload, len(recs), err
}

func (s *server) exportPayloadHandler(w http.ResponseWriter, r *http.Request) {
	payload, _, err := s.payload(r.Context())
	if err != nil {
		s.internalError(w, "encode payload", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

func (s *server) exportQRHandler(w http.ResponseWriter, r *http.Request) {
	size := s.qrSize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 64 || n > 2048 {
			http.Error(w, "size must be between 64 and 2048", http.StatusBadRequest)
			return
		}
		size = n
	}

	payload, n, err := s.payload(r.Context())
	if err != nil {
		s.internalError(w, "encode payload", err)
		return
	}
	if n == 0 {
		http.Error(w, "No stored submissions", http.StatusNotFound)
		return
	}

	png, err := transfer.QRCode(payload, size)
	if errors.Is(err, transfer.ErrPayloadTooLarge) {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	if err != nil {
		s.internalError(w, "render qr", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

type importResult struct {
	Received int `json:"received"`
	Added    int `json:"added"`
}

func (s *server) importHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		s.writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}
	recs, err := transfer.DecodePayload(body)
	if err != nil {
		s.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	for i, rec := range recs {
		if err := rec.Validate(); err != nil {
			s.writeValidationError(w, fmt.Errorf("record %d: %w", i, err))
			return
		}
	}

	added, err := s.store.Append(r.Context(), recs...)
	if err != nil {
		s.internalError(w, "import submissions", err)
		return
	}
	s.log.Info("payload imported", zap.Int("received", len(recs)), zap.Int("added", added))
	s.writeSuccess(w, http.StatusOK, importResult{Received: len(recs), Added: added})
}

type spreadsheetSetting struct {
	SpreadsheetID string `json:"spreadsheetID"`
}

func (s *server) spreadsheetID(ctx context.Context) string {
	id, err := s.store.Setting(ctx, store.SpreadsheetIDKey)
	if err != nil {
		if !errors.Is(err, store.ErrSettingNotFound) {
			s.log.Warn("read spreadsheet id", zap.Error(err))
		}
		return s.defaultSpreadsheetID
	}
	return id
}

func (s *server) getSpreadsheetHandler(w http.ResponseWriter, r *http.Request) {
	s.writeSuccess(w, http.StatusOK, spreadsheetSetting{SpreadsheetID: s.spreadsheetID(r.Context())})
}

func (s *server) putSpreadsheetHandler(w http.ResponseWriter, r *http.Request) {
	var body spreadsheetSetting
	if err := json.NewDecoder(io.LimitReader(r.Body, 4096)).Decode(&body); err != nil {
		s.writeError(w, "Bad Request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.store.SetSetting(r.Context(), store.SpreadsheetIDKey, body.SpreadsheetID); err != nil {
		s.internalError(w, "save spreadsheet id", err)
		return
	}
	s.writeSuccess(w, http.StatusOK, body)
}

func (s *server) internalError(w http.ResponseWriter, op string, err error) {
	s.log.Error(op, zap.Error(err))
	s.writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *server) writeSuccess(w http.ResponseWriter, status int, data any) {
	s.writeJSON(w, status, jsonResponse{Status: "success", Data: data})
}

func (s *server) writeError(w http.ResponseWriter, msg string, status int) {
	s.writeJSON(w, status, jsonResponse{Status: "error", Message: msg})
}

func (s *server) writeValidationError(w http.ResponseWriter, err error) {
	resp := jsonResponse{Status: "error", Message: err.Error()}
	var verr *scoring.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	s.writeJSON(w, http.StatusBadRequest, resp)
}

// writeJSON encodes before writing the header so an encoding failure can
// still become a 500.
func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.log.Error("encode response", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
