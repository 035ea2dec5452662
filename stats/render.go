package stats

import "fmt"

// RenderQuartiles formats q's boundaries as six right-aligned 7-column
// fields (min, p25, p50, p75, max, total), the layout an external CLI
// renders one row per metric; empty metrics never reach here (Quartiles
// already skips them), but a caller presenting every metricOrder entry
// uses RenderEmpty for the ones with no recorded values.
func RenderQuartiles(q Quartile) string {
	return fmt.Sprintf("%7d%7d%7d%7d%7d%7d", q.Min, q.P25, q.P50, q.P75, q.Max, q.Total)
}

// RenderEmpty is the fixed-width placeholder row for a metric with no
// recorded values: a dash in each of the six fields.
func RenderEmpty() string {
	return fmt.Sprintf("%7s%7s%7s%7s%7s%7s", "-", "-", "-", "-", "-", "-")
}
