package order

import (
	"fmt"
	"time"
)

// FormatNumber renders a human-readable order number from the intake date
// and the daily sequence value, e.g. "Order 02/09/26 #14". Numbers restart
// from 1 each day, so the date part keeps them unique across days.
func FormatNumber(date time.Time, sequence int) string {
	return fmt.Sprintf("Order %s #%d", date.Format("02/01/06"), sequence)
}
