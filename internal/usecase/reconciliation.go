package usecase

import (
	"strconv"
	"strings"

	"mis-dashboard/internal/domain"
)

// DefaultQuantity stands in for a missing target or actual value.
const DefaultQuantity = "0.000"

// BuildItems joins the combine and dispatch datasets into detail rows and
// appends one summary row per stock record.
//
// Dispatch drives the join: every dispatch row yields exactly one detail row,
// in dispatch order, whether or not combine has a matching category. Values
// are carried as the source's formatted text; missing ones become
// DefaultQuantity. Summary rows always follow all detail rows.
func BuildItems(combine, dispatch, stock []domain.RawRecord) []domain.ItemRow {
	// Later combine rows with the same normalized key replace earlier ones.
	byKey := make(map[string]domain.RawRecord, len(combine))
	for _, c := range combine {
		byKey[NormalizeKey(c.TextOr(domain.FieldCategory, ""))] = c
	}

	out := make([]domain.ItemRow, 0, len(dispatch)+len(stock))

	for i, d := range dispatch {
		category := d.TextOr(domain.FieldCategory, "")
		c := byKey[NormalizeKey(category)]
		name := strings.ReplaceAll(category, "_", " ")

		out = append(out, domain.ItemRow{
			SlNo:               strconv.Itoa(i + 1),
			ItemName:           name,
			Target:             c.TextOr(domain.FieldTarget, DefaultQuantity),
			ActualOnDate:       c.TextOr(domain.FieldDayActual, DefaultQuantity),
			ActualTillDate:     c.TextOr(domain.FieldMonActual, DefaultQuantity),
			DMItem:             name,
			DMActualOnDate:     d.TextOr(domain.FieldDMDaily, DefaultQuantity),
			DMActualTillDate:   d.TextOr(domain.FieldDMMonth, DefaultQuantity),
			DispActualOnDate:   d.TextOr(domain.FieldDisDaily, DefaultQuantity),
			DispActualTillDate: d.TextOr(domain.FieldDisMonth, DefaultQuantity),
			IsSummary:          false,
		})
	}

	for _, s := range stock {
		out = append(out, domain.ItemRow{
			ItemName:  s.TextOr(domain.FieldParameter, ""),
			Target:    s.TextOr(domain.FieldQuantity, DefaultQuantity),
			IsSummary: true,
		})
	}

	return out
}

// NumberRows returns copies of records with a 1-based sl_no assigned in
// source order. The input records are not modified.
func NumberRows(records []domain.RawRecord) []domain.RawRecord {
	out := make([]domain.RawRecord, len(records))
	for i, r := range records {
		row := r.Clone()
		row[domain.FieldLineNo] = strconv.Itoa(i + 1)
		out[i] = row
	}
	return out
}
