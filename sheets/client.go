// Package sheets reads and writes translation tables in a Google Sheet
// through the Sheets v4 API.
//
// One sheet (tab) holds one table: the header row is "key" followed by
// language codes, column A holds flat keys and each language column holds
// the translated strings.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/minios-linux/langsheet/langmodel"
)

// DefaultBaseURL is the Sheets API endpoint.
const DefaultBaseURL = "https://sheets.googleapis.com/"

// ErrMissingSheetID is returned by New for an empty spreadsheet ID.
var ErrMissingSheetID = errors.New("sheet id is required")

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient      *http.Client
	baseURL         string
	credentialsJSON []byte
	credentialsFile string
}

// WithHTTPClient uses an already authorized HTTP client. Credentials
// options are ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = strings.TrimRight(u, "/") + "/" }
}

// WithCredentialsJSON authenticates with a service account key.
func WithCredentialsJSON(data []byte) Option {
	return func(o *options) { o.credentialsJSON = data }
}

// WithCredentialsFile authenticates with a service account key file.
func WithCredentialsFile(path string) Option {
	return func(o *options) { o.credentialsFile = path }
}

// Client talks to one spreadsheet.
//
// API failures are returned wrapped; use errors.As with *googleapi.Error to
// read the HTTP status.
type Client struct {
	sheetID string
	svc     *sheetsapi.Service
}

// New creates a client for the spreadsheet with the given ID.
func New(ctx context.Context, sheetID string, opts ...Option) (*Client, error) {
	if sheetID == "" {
		return nil, ErrMissingSheetID
	}

	o := options{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}

	hc := o.httpClient
	if hc == nil {
		var err error
		if hc, err = authClient(ctx, o); err != nil {
			return nil, err
		}
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(hc), option.WithEndpoint(o.baseURL))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return &Client{sheetID: sheetID, svc: svc}, nil
}

// SheetID returns the spreadsheet ID.
func (c *Client) SheetID() string {
	return c.sheetID
}

// Load reads the table on the given sheet and builds a model for languages.
// Languages without a column in the sheet get empty content.
func (c *Client) Load(ctx context.Context, title string, languages []string) (*langmodel.Model, error) {
	rows, err := c.ReadTable(ctx, title)
	if err != nil {
		return nil, err
	}

	flat, missing := TableToFlat(rows, languages)
	for _, lang := range missing {
		slog.Warn("Language column not found in sheet", "lang", lang, "sheet", title)
	}
	return langmodel.NewFromFlat(languages, flat), nil
}

// Save replaces the table on the given sheet with the model's flat content,
// creating the sheet if it does not exist.
func (c *Client) Save(ctx context.Context, title string, m *langmodel.Model) error {
	return c.WriteTable(ctx, title, FlatToTable(m.Languages(), m.Flat()))
}

// ReadTable returns all rows of a sheet as strings.
func (c *Client) ReadTable(ctx context.Context, title string) ([][]string, error) {
	slog.Debug("Reading sheet", "sheet", title)
	resp, err := c.svc.Spreadsheets.Values.Get(c.sheetID, a1Range(title)).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", title, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = cellString(cell)
		}
	}
	return rows, nil
}

// WriteTable clears a sheet and writes rows into it, creating the sheet
// first when needed. Cells are written RAW so values are never parsed as
// formulas or numbers.
func (c *Client) WriteTable(ctx context.Context, title string, rows [][]string) error {
	if err := c.ensureSheet(ctx, title); err != nil {
		return err
	}

	rng := a1Range(title)
	slog.Debug("Clearing sheet", "sheet", title)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.sheetID, rng, &sheetsapi.ClearValuesRequest{}).
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("clearing sheet %q: %w", title, err)
	}

	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = make([]any, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}

	slog.Debug("Writing sheet", "sheet", title, "rows", len(rows))
	vr := &sheetsapi.ValueRange{Range: rng, MajorDimension: "ROWS", Values: values}
	if _, err := c.svc.Spreadsheets.Values.Update(c.sheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("writing sheet %q: %w", title, err)
	}
	return nil
}

// SheetTitles lists the titles of all sheets in the spreadsheet.
func (c *Client) SheetTitles(ctx context.Context) ([]string, error) {
	resp, err := c.svc.Spreadsheets.Get(c.sheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("reading spreadsheet: %w", err)
	}

	titles := make([]string, 0, len(resp.Sheets))
	for _, s := range resp.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}

func (c *Client) ensureSheet(ctx context.Context, title string) error {
	titles, err := c.SheetTitles(ctx)
	if err != nil {
		return err
	}
	for _, t := range titles {
		if t == title {
			return nil
		}
	}

	slog.Info("Creating sheet", "sheet", title)
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.sheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("creating sheet %q: %w", title, err)
	}
	return nil
}

// a1Range addresses a whole sheet in A1 notation.
func a1Range(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func cellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}
