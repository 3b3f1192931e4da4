package output

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"mis-dashboard/internal/domain"
	"mis-dashboard/internal/usecase"
)

// View selects between the tabular and chart presentation of the item view.
type View string

const (
	ViewTable View = "table"
	ViewChart View = "chart"
)

const (
	quantityPlaces = 3
	barWidth       = 30
)

var itemHeaders = []string{
	"Sl No", "Item", "Target", "Actual On Date", "Actual Till Date",
	"DM On Date", "DM Till Date", "Disp On Date", "Disp Till Date",
}

// ItemsTable converts item rows to table data. Quantities are shown with
// three decimals; cells a summary row leaves empty stay empty.
func ItemsTable(items []domain.ItemRow) Data {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.SlNo,
			it.ItemName,
			quantity(it.Target),
			quantity(it.ActualOnDate),
			quantity(it.ActualTillDate),
			quantity(it.DMActualOnDate),
			quantity(it.DMActualTillDate),
			quantity(it.DispActualOnDate),
			quantity(it.DispActualTillDate),
		})
	}
	return Data{Headers: itemHeaders, Rows: rows}
}

// RecordsTable converts raw records to table data. Columns are the union of
// record fields, sl_no first and the rest sorted.
func RecordsTable(records []domain.RawRecord) Data {
	seen := make(map[string]bool)
	var fields []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				fields = append(fields, k)
			}
		}
	}
	sort.Slice(fields, func(i, j int) bool {
		if fields[i] == domain.FieldLineNo || fields[j] == domain.FieldLineNo {
			return fields[i] == domain.FieldLineNo
		}
		return fields[i] < fields[j]
	})

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(fields))
		for i, f := range fields {
			if v, ok := rec[f]; ok {
				row[i] = domain.FormatValue(v)
			}
		}
		rows = append(rows, row)
	}
	return Data{Headers: fields, Rows: rows}
}

// WriteItemsChart draws target against actual-till-date for every detail
// row as horizontal bars, followed by the summary rows as plain values.
func WriteItemsChart(w io.Writer, items []domain.ItemRow) error {
	maxValue := 0.0
	width := 0
	for _, it := range items {
		if it.IsSummary {
			continue
		}
		maxValue = math.Max(maxValue, math.Abs(usecase.ToFloat(it.Target)))
		maxValue = math.Max(maxValue, math.Abs(usecase.ToFloat(it.ActualTillDate)))
		if len(it.ItemName) > width {
			width = len(it.ItemName)
		}
	}

	for _, it := range items {
		var err error
		if it.IsSummary {
			_, err = fmt.Fprintf(w, "%s: %s\n", it.ItemName, quantity(it.Target))
		} else {
			_, err = fmt.Fprintf(w, "%-*s  target %s %s\n%-*s  actual %s %s\n",
				width, it.ItemName, bar(it.Target, maxValue), quantity(it.Target),
				width, "", bar(it.ActualTillDate, maxValue), quantity(it.ActualTillDate))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func bar(value string, maxValue float64) string {
	n := 0
	if maxValue > 0 {
		n = int(math.Round(math.Abs(usecase.ToFloat(value)) / maxValue * barWidth))
	}
	return strings.Repeat("█", n) + strings.Repeat("·", barWidth-n)
}

func quantity(s string) string {
	if s == "" {
		return ""
	}
	return usecase.FormatFixed(s, quantityPlaces)
}
