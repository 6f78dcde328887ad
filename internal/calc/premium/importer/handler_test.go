package importer

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestRead(t *testing.T) {
	data := workbook(t, [][]any{
		{"roomVolume", "toggleL7", "machinePower", "notes"},
		{100, "yes", 10, "first room"},
		{80, "no", 10, "second room"},
		{},
		{120, "1", 4},
	})

	res, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 3, res.Count)

	assert.Equal(t, 2, res.Results[0].Row)
	assert.Equal(t, "100", res.Results[0].Fields["roomVolume"])
	assert.Equal(t, true, res.Results[0].Fields["toggleL7"])
	assert.NotContains(t, res.Results[0].Fields, "notes")
	assert.Equal(t, 7.0, res.Results[0].Breakdown.L7)

	assert.Zero(t, res.Results[1].Breakdown.L7)
	assert.Equal(t, 5, res.Results[2].Row)
	assert.InDelta(t, 2.8, res.Results[2].Breakdown.L7, 1e-12)
}

func TestReadEmpty(t *testing.T) {
	_, err := Read(bytes.NewReader(workbook(t, [][]any{{"roomVolume"}})))
	assert.ErrorIs(t, err, errEmptySheet)

	_, err = Read(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}

func TestHandlerImport(t *testing.T) {
	data := workbook(t, [][]any{{"toggleL7", "machinePower"}, {"true", "10"}})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "rooms.xlsx")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	(&Handler{}).Import(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	w = httptest.NewRecorder()
	(&Handler{}).Import(w, httptest.NewRequest(http.MethodPost, "/import", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
