package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	data, err := WriteXLSX(
		Sheet{
			Name:    "Attendance",
			Title:   "Daily attendance 2024-05-06",
			Headers: []string{"Employee", "Status", "Late (min)"},
			Rows: [][]interface{}{
				{"Ayu Lestari", "late", 12},
				{"Budi Santoso", "absent", 0},
			},
			Widths: map[string]float64{"A": 28},
		},
		Sheet{
			Name:    "Summary",
			Headers: []string{"Metric", "Value"},
			Rows:    [][]interface{}{{"Present days", 1}},
		},
	)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Attendance", "Summary"}, f.GetSheetList())

	title, err := f.GetCellValue("Attendance", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Daily attendance 2024-05-06", title)

	header, err := f.GetCellValue("Attendance", "C3")
	require.NoError(t, err)
	assert.Equal(t, "Late (min)", header)

	late, err := f.GetCellValue("Attendance", "C4")
	require.NoError(t, err)
	assert.Equal(t, "12", late)

	metric, err := f.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Present days", metric)
}

func TestWriteXLSX_NoSheets(t *testing.T) {
	_, err := WriteXLSX()
	assert.ErrorIs(t, err, ErrNoSheets)
}
