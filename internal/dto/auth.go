package dto

// ExchangeCodeRequest is the payload for POST /auth/google/exchange-code.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ExchangeCodeResponse returns the application JWT after a successful code
// exchange.
type ExchangeCodeResponse struct {
	Token string `json:"token"`
}

// LoginURLResponse returns the Google consent URL and the CSRF state echoed
// back on the redirect.
type LoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// LinkSpreadsheetRequest binds a tenant to their spreadsheet document.
type LinkSpreadsheetRequest struct {
	SpreadsheetID string `json:"spreadsheetID" binding:"required"`
}
