package currency

import (
	"github.com/leekchan/accounting"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Format renders an amount as a display string in a currency's own
// formatting locale: locale-correct digit grouping (en-IN groups
// 2-3-3), exactly two fraction digits, and the currency's symbol
// placement. A code the registry or the locale facility does not
// recognize falls back to a plain grouped number suffixed with the
// code. Format never fails.
func Format(amount float64, code string) string {
	def, ok := Lookup(code)
	if !ok {
		return fallbackFormat(amount, code)
	}
	tag, err := language.Parse(def.FormattingLocale)
	if err != nil {
		return fallbackFormat(amount, code)
	}

	p := message.NewPrinter(tag)
	digits := p.Sprintf("%v", number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))

	if def.SymbolAfter {
		return digits + " " + def.Symbol
	}
	return def.Symbol + digits
}

func fallbackFormat(amount float64, code string) string {
	ac := accounting.Accounting{
		Symbol:    "",
		Precision: 2,
		Thousand:  ",",
		Decimal:   ".",
	}
	return ac.FormatMoneyFloat64(amount) + " " + code
}
