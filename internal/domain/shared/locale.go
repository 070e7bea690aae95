package shared

import (
	"time"
	_ "time/tzdata" // Mexico City rules on hosts without a zoneinfo database

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Display locale of the store
var (
	DisplayLanguage = language.MustParse("es-MX")
	DisplayLocation = mustLoadLocation("America/Mexico_City")
)

const displayTimeLayout = "2/1/2006, 15:04:05"

var displayPrinter = message.NewPrinter(DisplayLanguage)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// FormatCurrency formats an MXN amount the way the dashboard shows it: $1,234.50
func FormatCurrency(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	return sign + "$" + displayPrinter.Sprint(number.Decimal(f, number.Scale(2)))
}

// FormatDateTime formats t in Mexico City time: 15/10/2026, 09:30:00
func FormatDateTime(t time.Time) string {
	return t.In(DisplayLocation).Format(displayTimeLayout)
}
