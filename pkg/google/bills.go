package google

import (
	"fmt"
	"time"

	"github.com/moneta-app/moneta/internal/utils"
	"github.com/moneta-app/moneta/pkg/card"
	"google.golang.org/api/calendar/v3"
)

const dateLayout = "2006-01-02"

// BillEvents builds one all-day reminder per card and month with a non-zero projected bill.
// The reminder falls on the card's closing day, clamped to the length of the month.
func BillEvents(bills []card.MonthlyBill, cards []card.CreditCard, currency string) ([]*calendar.Event, error) {
	closingDays := make(map[int]int, len(cards))
	for _, c := range cards {
		closingDays[c.Id] = c.ClosingDay
	}

	events := make([]*calendar.Event, 0)
	for _, bill := range bills {
		month, err := utils.ParseMonth(bill.Month, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid bill month %q: %w", bill.Month, err)
		}
		for _, cb := range bill.Cards {
			if cb.Amount.IsZero() {
				continue
			}
			closingDay, ok := closingDays[cb.CardId]
			if !ok {
				continue
			}
			day := ClosingDate(month, closingDay)
			events = append(events, &calendar.Event{
				Summary:      fmt.Sprintf("%s bill", cb.Name),
				Description:  fmt.Sprintf("Projected bill for %s: %s %s", bill.Month, cb.Amount.StringFixed(2), currency),
				Start:        &calendar.EventDateTime{Date: day.Format(dateLayout)},
				End:          &calendar.EventDateTime{Date: day.AddDate(0, 0, 1).Format(dateLayout)},
				Transparency: "transparent",
			})
		}
	}
	return events, nil
}

// ClosingDate returns closingDay of month's month, or its last day when the month is shorter.
func ClosingDate(month time.Time, closingDay int) time.Time {
	first := utils.StartOfMonth(month)
	lastDay := first.AddDate(0, 1, -1).Day()
	if closingDay > lastDay {
		closingDay = lastDay
	}
	if closingDay < 1 {
		closingDay = 1
	}
	return first.AddDate(0, 0, closingDay-1)
}
