package card

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

const chartWidth = 900

// RenderBillsChart draws the monthly totals of a bill projection as a PNG bar chart.
func RenderBillsChart(bills []MonthlyBill, currency string) ([]byte, error) {
	if len(bills) == 0 {
		return nil, fmt.Errorf("failed to render bills chart: no months")
	}
	values := make([]chart.Value, 0, len(bills))
	maxTotal := 0.0
	for _, bill := range bills {
		total := bill.Total.InexactFloat64()
		if total > maxTotal {
			maxTotal = total
		}
		values = append(values, chart.Value{
			Label: bill.Month,
			Value: total,
		})
	}
	if maxTotal <= 0 {
		// go-chart refuses to render a zero-height range
		maxTotal = 1
	}

	slot := (chartWidth - 60) / len(values)
	graph := chart.BarChart{
		Title:  "Projected card bills",
		Width:  chartWidth,
		Height: 450,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
		BarWidth:   slot * 3 / 5,
		BarSpacing: slot * 2 / 5,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxTotal * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f %s", f, currency)
				}
				return ""
			},
		},
		Bars: values,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render bills chart: %w", err)
	}
	return buffer.Bytes(), nil
}
