package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mis-dashboard/internal/domain"
)

var sampleItems = []domain.ItemRow{
	{
		SlNo: "1", ItemName: "COUPLER", Target: "100", ActualOnDate: "3", ActualTillDate: "60",
		DMItem: "COUPLER", DMActualOnDate: "2", DMActualTillDate: "40",
		DispActualOnDate: "1", DispActualTillDate: "20",
	},
	{ItemName: "Total Stock", Target: "500", IsSummary: true},
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", " yaml ", ""} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat(FormatYAML, nil))
	assert.Equal(t, FormatJSON, DetectFormat("", nil))
}

func TestItemsTable(t *testing.T) {
	d := ItemsTable(sampleItems)

	require.Len(t, d.Rows, 2)
	assert.Len(t, d.Headers, 9)
	assert.Equal(t, []string{"1", "COUPLER", "100.000", "3.000", "60.000", "2.000", "40.000", "1.000", "20.000"}, d.Rows[0])
	assert.Equal(t, []string{"", "Total Stock", "500.000", "", "", "", "", "", ""}, d.Rows[1])
}

func TestRecordsTable(t *testing.T) {
	d := RecordsTable([]domain.RawRecord{
		{"plant": "P1", "sl_no": "1", "budat": "20250115"},
		{"plant": "P2", "sl_no": "2", "qty": json.Number("4.5")},
	})

	assert.Equal(t, []string{"sl_no", "budat", "plant", "qty"}, d.Headers)
	assert.Equal(t, [][]string{
		{"1", "20250115", "P1", ""},
		{"2", "", "P2", "4.5"},
	}, d.Rows)
}

func TestFormatters(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, ItemsTable(sampleItems)))
		out := buf.String()
		assert.Contains(t, out, "COUPLER")
		assert.Contains(t, out, "Total Stock")
		assert.Contains(t, out, "500.000")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatJSON).Format(&buf, sampleItems))

		var got []domain.ItemRow
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, sampleItems, got)
		assert.Contains(t, buf.String(), `"isSummary": true`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatYAML).Format(&buf, sampleItems))
		assert.Contains(t, buf.String(), "item_name: COUPLER")
		assert.Contains(t, buf.String(), "isSummary: true")
	})

	t.Run("table falls back to json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"items": 2}))
		assert.JSONEq(t, `{"items":2}`, buf.String())
	})
}

func TestWriteItemsChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteItemsChart(&buf, sampleItems))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "COUPLER")
	assert.Contains(t, lines[0], strings.Repeat("█", barWidth)+" 100.000")
	assert.Contains(t, lines[1], strings.Repeat("█", 18)+strings.Repeat("·", 12)+" 60.000")
	assert.Equal(t, "Total Stock: 500.000", lines[2])
}
