package coolingload

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerCalc(t *testing.T) {
	body := `{"roomVolume":"100","tOutside":"35","tRoom":"-18","toggleL7":true,"machinePower":"10","compressorHours":"20","safetyFactor":"1.1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tools/coolingload/calc", strings.NewReader(body))
	w := httptest.NewRecorder()

	(&Handler{}).Calc(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var res Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 7.0, res.Breakdown.L7)
	assert.Equal(t, 7.0, res.Breakdown.TotalLoad)
	assert.InDelta(t, 7*1.1*24/20, res.Breakdown.RequiredCapacity, 1e-12)
	assert.Equal(t, "7.000 kW", res.Display.L7)
	assert.Equal(t, 100.0, res.Inputs.RoomVolume)
}

func TestHandlerCalcBadPayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/tools/coolingload/calc", strings.NewReader("[1,2"))
	w := httptest.NewRecorder()
	(&Handler{}).Calc(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerCalcOverflowingCapacity(t *testing.T) {
	body := `{"toggleL7":true,"machinePower":"10","compressorHours":"1","safetyFactor":"1e308"}`
	w := httptest.NewRecorder()
	(&Handler{}).Calc(w, httptest.NewRequest(http.MethodPost, "/api/tools/coolingload/calc", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotZero(t, w.Body.Len())

	var res Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 7.0, res.Breakdown.TotalLoad)
	assert.Zero(t, res.Breakdown.RequiredCapacity)
	assert.Equal(t, "0.000 kW", res.Display.RequiredCapacity)
}
