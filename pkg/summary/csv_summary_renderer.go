package summary

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type SummaryRenderer interface {
	RenderSummary(summary MonthlySummary) (string, error)
}

type CsvSummaryRendererImpl struct {
}

func NewCsvSummaryRenderer() *CsvSummaryRendererImpl {
	return &CsvSummaryRendererImpl{}
}

// RenderSummary writes the month's transactions followed by category and month totals.
func (r *CsvSummaryRendererImpl) RenderSummary(summary MonthlySummary) (string, error) {
	data := make([][]string, 0, len(summary.Transactions)+len(summary.Categories)+8)
	data = append(data, []string{"Date", "Description", "Type", "Category", "Amount", "Card"})
	for _, t := range summary.Transactions {
		cardId := ""
		if t.CardId != nil {
			cardId = strconv.Itoa(*t.CardId)
		}
		data = append(data, []string{
			t.Date.Format("2006-01-02"),
			t.Description,
			string(t.Type),
			t.Category.String(),
			t.Amount.StringFixed(2),
			cardId,
		})
	}

	data = append(data, []string{}, []string{"Category", "Total"})
	for _, c := range summary.Categories {
		data = append(data, []string{c.Category, c.Amount.StringFixed(2)})
	}

	data = append(data,
		[]string{},
		[]string{"Income", summary.Income.StringFixed(2)},
		[]string{"Expenses", summary.Expense.StringFixed(2)},
		[]string{"Balance", summary.Balance.StringFixed(2)},
	)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
