package currency

import "strings"

// TokenKind distinguishes the two kinds of lead tokens a currency can
// be recognized by: a glyph such as "₹" or a letter form such as "INR".
// Letter forms are matched only at word boundaries.
type TokenKind int

const (
	TokenSymbol TokenKind = iota
	TokenCode
)

// Token is one detection pattern spec: a literal lead token owned by
// exactly one currency. No two supported currencies share a token.
type Token struct {
	Text string
	Kind TokenKind
}

// Definition describes one supported currency. Definitions are static:
// constructed once, never mutated, shared read-only.
type Definition struct {
	Code             string
	Symbol           string
	DisplayName      string
	FormattingLocale string
	SymbolAfter      bool // "1.234,56 €" style placement
	Tokens           []Token
}

// FallbackCode is returned by DefaultCurrencyForLocale when the locale
// carries no mapped region, and is the currency the structured-element
// heuristic assumes for its last-resort symbol rule.
const FallbackCode = "USD"

// PivotCode is the single reference currency all conversions route
// through. Rate tables are expressed as units of currency per 1 pivot.
const PivotCode = "USD"

// definitions is the registry, in declaration order. Declaration order
// is the final tie-breaker of the lead-token priority order, so the
// position of a currency here is load-bearing only between tokens of
// equal kind and length.
var definitions = []Definition{
	{
		Code: "USD", Symbol: "$", DisplayName: "US Dollar", FormattingLocale: "en-US",
		Tokens: []Token{{"US$", TokenSymbol}, {"$", TokenSymbol}, {"USD", TokenCode}},
	},
	{
		Code: "EUR", Symbol: "€", DisplayName: "Euro", FormattingLocale: "de-DE", SymbolAfter: true,
		Tokens: []Token{{"€", TokenSymbol}, {"EUR", TokenCode}},
	},
	{
		Code: "GBP", Symbol: "£", DisplayName: "British Pound", FormattingLocale: "en-GB",
		Tokens: []Token{{"£", TokenSymbol}, {"GBP", TokenCode}},
	},
	{
		Code: "INR", Symbol: "₹", DisplayName: "Indian Rupee", FormattingLocale: "en-IN",
		Tokens: []Token{{"₹", TokenSymbol}, {"Rs.", TokenCode}, {"Rs", TokenCode}, {"INR", TokenCode}},
	},
	{
		Code: "JPY", Symbol: "¥", DisplayName: "Japanese Yen", FormattingLocale: "ja-JP",
		Tokens: []Token{{"¥", TokenSymbol}, {"JPY", TokenCode}},
	},
	{
		Code: "CNY", Symbol: "CN¥", DisplayName: "Chinese Yuan", FormattingLocale: "zh-CN",
		Tokens: []Token{{"CN¥", TokenSymbol}, {"CNY", TokenCode}, {"RMB", TokenCode}},
	},
	{
		Code: "AUD", Symbol: "A$", DisplayName: "Australian Dollar", FormattingLocale: "en-AU",
		Tokens: []Token{{"A$", TokenSymbol}, {"AUD", TokenCode}},
	},
	{
		Code: "CAD", Symbol: "C$", DisplayName: "Canadian Dollar", FormattingLocale: "en-CA",
		Tokens: []Token{{"C$", TokenSymbol}, {"CAD", TokenCode}},
	},
	{
		Code: "RUB", Symbol: "₽", DisplayName: "Russian Ruble", FormattingLocale: "ru-RU", SymbolAfter: true,
		Tokens: []Token{{"₽", TokenSymbol}, {"RUB", TokenCode}},
	},
	{
		Code: "KRW", Symbol: "₩", DisplayName: "South Korean Won", FormattingLocale: "ko-KR",
		Tokens: []Token{{"₩", TokenSymbol}, {"KRW", TokenCode}},
	},
}

var definitionsByCode = func() map[string]*Definition {
	m := make(map[string]*Definition, len(definitions))
	for i := range definitions {
		m[definitions[i].Code] = &definitions[i]
	}
	return m
}()

// localeDefaults maps a two-letter region code to the currency a user
// in that region most likely wants as their home currency. Consulted
// only for the initial default, never during detection.
var localeDefaults = map[string]string{
	"US": "USD", "GB": "GBP", "IN": "INR", "JP": "JPY", "CN": "CNY",
	"AU": "AUD", "CA": "CAD", "RU": "RUB", "KR": "KRW",
	"DE": "EUR", "FR": "EUR", "IT": "EUR", "ES": "EUR", "NL": "EUR",
	"PT": "EUR", "IE": "EUR", "AT": "EUR", "FI": "EUR",
}

// ListCurrencies returns the supported currencies in registry order.
// The returned slice is a copy; callers may not mutate definitions.
func ListCurrencies() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the definition for a canonical currency code.
func Lookup(code string) (*Definition, bool) {
	def, ok := definitionsByCode[strings.ToUpper(strings.TrimSpace(code))]
	return def, ok
}

// IsSupported reports whether code is a registry currency.
func IsSupported(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// DefaultCurrencyForLocale picks a home currency from a locale tag such
// as "en-IN" or "en_IN". The trailing region subtag (the portion after
// the last separator) is upper-cased and looked up; FallbackCode is
// returned when the tag is empty, has no region subtag, or the region
// is unmapped.
func DefaultCurrencyForLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return FallbackCode
	}
	idx := strings.LastIndexAny(locale, "-_")
	if idx < 0 || idx == len(locale)-1 {
		return FallbackCode
	}
	region := strings.ToUpper(locale[idx+1:])
	if code, ok := localeDefaults[region]; ok {
		return code
	}
	return FallbackCode
}
