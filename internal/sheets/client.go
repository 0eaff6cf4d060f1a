package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/oauth2/google"

	"github.com/cinedexbot/cinedex/internal/config"
)

const (
	scopeSpreadsheets = "https://www.googleapis.com/auth/spreadsheets"
	defaultBaseURL    = "https://sheets.googleapis.com"
)

// Client reads and appends rows of one sheet through the Google Sheets values
// API. It implements catalog.Store.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	spreadsheetID string
	valueRange    string
	logger        *slog.Logger
}

// NewClient builds a client authenticated with the service-account
// credentials file from config. The returned client holds a token source
// bound to ctx, so ctx should outlive the client.
func NewClient(ctx context.Context, log *slog.Logger, cfg config.SheetsConfig) (*Client, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read service account credentials: %w", err)
	}
	jwtConfig, err := google.JWTConfigFromJSON(data, scopeSpreadsheets)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}
	return newClient(jwtConfig.Client(ctx), defaultBaseURL, cfg.SpreadsheetID, cfg.SheetName, log), nil
}

func newClient(httpClient *http.Client, baseURL, spreadsheetID, sheetName string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		httpClient:    httpClient,
		baseURL:       strings.TrimRight(baseURL, "/"),
		spreadsheetID: spreadsheetID,
		valueRange:    sheetName + "!A:D",
		logger:        log.With(slog.String("component", "sheets")),
	}
}

type valueRangeBody struct {
	Values [][]string `json:"values"`
}

// ReadAll returns the full ordered row snapshot of the sheet, header row
// included.
func (c *Client) ReadAll(ctx context.Context) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s",
		c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(c.valueRange))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build values request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("read sheet values: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, apiError("read sheet values", resp)
	}
	var body valueRangeBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode sheet values: %w", err)
	}
	return body.Values, nil
}

// Append adds one row after the last non-empty row of the sheet, with RAW
// input semantics (values stored as sent, no formula parsing).
func (c *Client) Append(ctx context.Context, row []string) error {
	payload, err := json.Marshal(valueRangeBody{Values: [][]string{row}})
	if err != nil {
		return fmt.Errorf("encode append body: %w", err)
	}
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:append?valueInputOption=RAW",
		c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(c.valueRange))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build append request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("append sheet row: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return apiError("append sheet row", resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func apiError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		return fmt.Errorf("%s: status %d", op, resp.StatusCode)
	}
	return fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, detail)
}
