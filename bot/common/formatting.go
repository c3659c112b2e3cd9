package common

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FormatUnits renders a unit amount with two decimal places, dropping the
// fraction when it is zero.
func FormatUnits(units decimal.Decimal) string {
	if units.Equal(units.Truncate(0)) {
		return units.Truncate(0).String()
	}
	return units.StringFixed(2)
}

// FormatSignedUnits renders a unit delta with an explicit sign
func FormatSignedUnits(units decimal.Decimal) string {
	if units.IsNegative() {
		return FormatUnits(units)
	}
	return "+" + FormatUnits(units)
}

// FormatAmericanOdds renders a price in the American convention
func FormatAmericanOdds(odds decimal.Decimal) string {
	if odds.IsPositive() {
		return "+" + odds.Truncate(0).String()
	}
	return odds.Truncate(0).String()
}

// FormatRecord renders a won-lost-push record
func FormatRecord(won, lost, push int) string {
	return fmt.Sprintf("%d-%d-%d", won, lost, push)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
