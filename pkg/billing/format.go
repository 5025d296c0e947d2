package billing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts for display in a given locale and currency.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter returns a Formatter for the locale tag and ISO 4217 code.
func NewFormatter(locale language.Tag, code string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, err
	}
	return &Formatter{printer: message.NewPrinter(locale), unit: unit}, nil
}

// Display formats amount rounded to whole currency units, e.g. "INR 684".
func (f *Formatter) Display(amount decimal.Decimal) string {
	return f.printer.Sprintf("%v %v", f.unit, number.Decimal(amount.Round(0).IntPart()))
}

// Exact formats amount with two fractional digits, e.g. "USD 1,234.50".
func (f *Formatter) Exact(amount decimal.Decimal) string {
	v, _ := amount.Round(2).Float64()
	return f.printer.Sprintf("%v %v", f.unit, number.Decimal(v, number.Scale(2)))
}
