package commontypes

// DetectedPrice is the wire form of one marked price: the amount and
// currency read straight off the marker attributes, the literal matched
// text, and the amount re-rendered in the caller's home currency.
type DetectedPrice struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Text     string  `json:"text"`
	Display  string  `json:"display,omitempty"`
}

// ClassifyResponse answers one classification query.
type ClassifyResponse struct {
	Matched bool           `json:"matched"`
	Price   *DetectedPrice `json:"price,omitempty"`
}

// ConvertResponse answers one conversion query.
type ConvertResponse struct {
	Amount  float64 `json:"amount"`
	From    string  `json:"from"`
	To      string  `json:"to"`
	Result  float64 `json:"result"`
	Display string  `json:"display"`
}

// AnnotateResponse carries the rewritten document plus every price that
// was marked in it.
type AnnotateResponse struct {
	HTML    string          `json:"html"`
	Matches []DetectedPrice `json:"matches"`
}

// CurrencyInfo describes one supported currency for listing endpoints.
type CurrencyInfo struct {
	Code        string `json:"code"`
	Symbol      string `json:"symbol"`
	DisplayName string `json:"displayName"`
	Locale      string `json:"locale"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
