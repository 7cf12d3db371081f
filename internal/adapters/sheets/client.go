package sheets

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/sgaviria/finanzapp/internal/apperrors"
	"github.com/sgaviria/finanzapp/internal/core/domain"
	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
	"github.com/sgaviria/finanzapp/internal/platform/config"
)

// Client wraps a Sheets service bound to one spreadsheet, with the numeric
// sheet ids needed for structural operations (row deletion) resolved up
// front.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetIDs      map[string]int64
}

// NewClient binds a Sheets service to a spreadsheet, resolving sheet ids and
// validating the header row of every expected tab against the column layout.
func NewClient(ctx context.Context, svc *sheets.Service, spreadsheetID string, headers map[string][]string) (*Client, error) {
	c := &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetIDs:      make(map[string]int64),
	}

	meta, err := svc.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, apperrors.NewBadGatewayError(fmt.Sprintf("failed to read spreadsheet %s: %v", spreadsheetID, err))
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil {
			c.sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}

	ranges := make([]string, 0, len(headers))
	tabs := make([]string, 0, len(headers))
	for tab := range headers {
		if _, ok := c.sheetIDs[tab]; !ok {
			return nil, fmt.Errorf("%w: missing tab %q", apperrors.ErrSchemaMismatch, tab)
		}
		tabs = append(tabs, tab)
		ranges = append(ranges, fmt.Sprintf("%s!1:1", tab))
	}
	resp, err := svc.Spreadsheets.Values.BatchGet(spreadsheetID).Ranges(ranges...).Context(ctx).Do()
	if err != nil {
		return nil, apperrors.NewBadGatewayError(fmt.Sprintf("failed to read header rows: %v", err))
	}
	for i, vr := range resp.ValueRanges {
		tab := tabs[i]
		want := headers[tab]
		if len(vr.Values) == 0 {
			return nil, fmt.Errorf("%w: tab %q has no header row", apperrors.ErrSchemaMismatch, tab)
		}
		got := vr.Values[0]
		for col, name := range want {
			if cellString(got, col) != name {
				return nil, fmt.Errorf("%w: tab %q column %s is %q, want %q",
					apperrors.ErrSchemaMismatch, tab, columnLetter(col), cellString(got, col), name)
			}
		}
	}
	return c, nil
}

// readRows returns all data rows of a tab (header excluded). The sheet row
// number of rows[i] is i+2.
func (c *Client) readRows(ctx context.Context, tab string, colCount int) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, dataRange(tab, colCount)).Context(ctx).Do()
	if err != nil {
		return nil, apperrors.NewBadGatewayError(fmt.Sprintf("failed to read %s rows: %v", tab, err))
	}
	return resp.Values, nil
}

func (c *Client) appendRow(ctx context.Context, tab string, colCount int, row []interface{}) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, dataRange(tab, colCount), vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return apperrors.NewBadGatewayError(fmt.Sprintf("failed to append %s row: %v", tab, err))
	}
	return nil
}

func (c *Client) updateRow(ctx context.Context, tab string, sheetRow int64, colCount int, row []interface{}) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rowRange(tab, sheetRow, colCount), vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return apperrors.NewBadGatewayError(fmt.Sprintf("failed to update %s row %d: %v", tab, sheetRow, err))
	}
	return nil
}

func (c *Client) updateCell(ctx context.Context, tab string, sheetRow int64, col int, value interface{}) error {
	a1 := fmt.Sprintf("%s!%s%d", tab, columnLetter(col), sheetRow)
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, a1, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return apperrors.NewBadGatewayError(fmt.Sprintf("failed to update cell %s: %v", a1, err))
	}
	return nil
}

func (c *Client) deleteRow(ctx context.Context, tab string, sheetRow int64) error {
	sheetID, ok := c.sheetIDs[tab]
	if !ok {
		return fmt.Errorf("%w: missing tab %q", apperrors.ErrSchemaMismatch, tab)
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: sheetRow - 1, // zero-based, inclusive
					EndIndex:   sheetRow,     // exclusive
				},
			},
		}},
	}
	_, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return apperrors.NewBadGatewayError(fmt.Sprintf("failed to delete %s row %d: %v", tab, sheetRow, err))
	}
	return nil
}

// Factory builds per-tenant repositories backed by each user's own
// spreadsheet, authenticating with the user's stored OAuth tokens.
type Factory struct {
	oauthCfg *oauth2.Config
}

// NewFactory creates the tenant repository factory.
func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		oauthCfg: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{sheets.SpreadsheetsScope},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portsrepo.TenantRepositoryFactory = (*Factory)(nil)

// ForUser implements portsrepo.TenantRepositoryFactory. The token source
// refreshes the access token transparently when it is expired.
func (f *Factory) ForUser(ctx context.Context, user domain.User) (*portsrepo.TenantRepos, error) {
	if user.SpreadsheetID == "" {
		return nil, apperrors.NewBadRequestError("No spreadsheet linked for this user")
	}
	if user.GoogleRefreshToken == "" {
		return nil, apperrors.NewUnauthorizedError("No Google credentials stored for this user")
	}

	token := &oauth2.Token{
		AccessToken:  user.GoogleAccessToken,
		RefreshToken: user.GoogleRefreshToken,
	}
	if user.GoogleTokenExpiry != nil {
		token.Expiry = *user.GoogleTokenExpiry
	}
	svc, err := sheets.NewService(ctx, option.WithTokenSource(f.oauthCfg.TokenSource(ctx, token)))
	if err != nil {
		return nil, apperrors.NewBadGatewayError(fmt.Sprintf("failed to build sheets service: %v", err))
	}

	client, err := NewClient(ctx, svc, user.SpreadsheetID, expectedHeaders)
	if err != nil {
		return nil, err
	}
	return &portsrepo.TenantRepos{
		Debts:      NewDebtRepository(client),
		Expenses:   NewExpenseRepository(client),
		Statements: NewStatementRepository(client),
		Categories: NewCategoryRepository(client),
	}, nil
}

// NewUserRepositoryFromConfig builds the master-spreadsheet user repository
// using the application owner's refresh token.
func NewUserRepositoryFromConfig(ctx context.Context, cfg *config.Config) (*UserRepository, error) {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Scopes:       []string{sheets.SpreadsheetsScope},
		Endpoint:     google.Endpoint,
	}
	token := &oauth2.Token{RefreshToken: cfg.MasterRefreshToken}
	svc, err := sheets.NewService(ctx, option.WithTokenSource(oauthCfg.TokenSource(ctx, token)))
	if err != nil {
		return nil, apperrors.NewBadGatewayError(fmt.Sprintf("failed to build sheets service: %v", err))
	}
	client, err := NewClient(ctx, svc, cfg.MasterSpreadsheetID, map[string][]string{tabUsers: userHeaders})
	if err != nil {
		return nil, err
	}
	return NewUserRepository(client), nil
}
