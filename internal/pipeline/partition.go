package pipeline

import (
	"math"

	"stockvalues/internal/report"
)

// Partition splits outcomes into the report rows and the error messages,
// both in outcome order. Every outcome lands in exactly one of the two.
func Partition(outcomes []Outcome) (report.Report, []string) {
	rows := make(report.Report, 0, len(outcomes))
	var errs []string
	for _, o := range outcomes {
		switch {
		case !o.OK():
			errs = append(errs, o.Err.Error())
		case math.IsNaN(o.Price) || math.IsInf(o.Price, 0):
			errs = append(errs, (&NoQuoteError{Symbol: o.Symbol}).Error())
		default:
			rows = append(rows, report.Row{Symbol: string(o.Symbol), Price: report.Price(o.Price)})
		}
	}
	return rows, errs
}
