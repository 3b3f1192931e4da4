package domain

// ItemRow is one line of the unified item view. Detail rows come from the
// dispatch dataset joined with combine; summary rows come from stock.
type ItemRow struct {
	SlNo               string `json:"sl_no"`
	ItemName           string `json:"item_name"`
	Target             string `json:"target"`
	ActualOnDate       string `json:"actual_on_date"`
	ActualTillDate     string `json:"actual_till_date"`
	DMItem             string `json:"dm_item"`
	DMActualOnDate     string `json:"dm_actual_on_date"`
	DMActualTillDate   string `json:"dm_actual_till_date"`
	DispActualOnDate   string `json:"disp_actual_on_date"`
	DispActualTillDate string `json:"disp_actual_till_date"`
	IsSummary          bool   `json:"isSummary"`
}

// Sources holds the four datasets fetched for one report date.
type Sources struct {
	Dtm      []RawRecord `json:"dtm"`
	Combine  []RawRecord `json:"combine"`
	Dispatch []RawRecord `json:"dispatch"`
	Stock    []RawRecord `json:"stock"`
}
