// Package sheets forwards submissions to a spreadsheet through a small web-app
// bridge that appends one row per request.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"curator/scoring"
	"curator/transfer"
)

var ErrNotConfigured = errors.New("spreadsheet export is not configured")

// StatusError is returned when the bridge answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spreadsheet bridge returned %d: %s", e.StatusCode, e.Body)
}

type appendRequest struct {
	SpreadsheetID string     `json:"spreadsheetID"`
	Columns       []string   `json:"columns"`
	Values        [][]string `json:"values"`
}

type Client struct {
	Endpoint string
	HTTP     *http.Client
	Logger   *zap.Logger
}

func New(endpoint string, logger *zap.Logger) *Client {
	return &Client{
		Endpoint: endpoint,
		HTTP:     &http.Client{Timeout: 15 * time.Second},
		Logger:   logger,
	}
}

// Submit appends rec as one row of the given spreadsheet.
func (c *Client) Submit(ctx context.Context, spreadsheetID string, rec scoring.Record) error {
	if c == nil || c.Endpoint == "" || spreadsheetID == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(appendRequest{
		SpreadsheetID: spreadsheetID,
		Columns:       transfer.Columns,
		Values:        [][]string{transfer.Row(rec)},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client().Do(req)
	if err != nil {
		return fmt.Errorf("post to spreadsheet bridge: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(msg))}
	}

	if c.Logger != nil {
		c.Logger.Debug("submission exported",
			zap.String("team", rec.TeamNumber.Key()),
			zap.Int("qualification", rec.QualificationNumber))
	}
	return nil
}

func (c *Client) client() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}
