package get_report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
	"github.com/neohelios/occupancy-dashboard/internal/usecase/build_report"
)

type fakeUseCase struct {
	lastReq build_report.Request
	resp    *build_report.Response
	err     error
}

func (f *fakeUseCase) Execute(_ context.Context, req build_report.Request) (*build_report.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func reportURL(query string) string {
	return "/api/v1/occupancy/report?" + query
}

func TestHandle_OK(t *testing.T) {
	matrix := &domain.OccupancyMatrix{
		RouteCode:  "BOC",
		VesselCode: "PSMC",
		Model:      domain.RoomBased,
		Grades:     []string{domain.TotalGradeCode, "OC"},
		Rows: []domain.MatrixRow{
			{
				ScheduleID: 10,
				ETD:        time.Date(2025, 11, 1, 19, 0, 0, 0, time.UTC),
				DateLabel:  "11월 01일 (토)",
				Cells: map[string]domain.MatrixCell{
					domain.TotalGradeCode: {RoomsConfirmed: 3, RoomsBlocked: 1, RoomsVacant: 6, PaxConfirmed: 5, PaxBlocked: 2, PaxRemaining: 13},
					"OC":                  {RoomsConfirmed: 3, RoomsBlocked: 1, RoomsVacant: 6, PaxConfirmed: 5, PaxBlocked: 2, PaxRemaining: 13},
				},
			},
		},
	}
	uc := &fakeUseCase{resp: &build_report.Response{Matrix: matrix}}
	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodGet,
		reportURL("route=BOC&origin=PUS&destination=ALL&start_date=2025-11-01&end_date=2025-11-30"), nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "BOC", uc.lastReq.RouteCode)
	assert.Equal(t, "PUS", uc.lastReq.Origin)

	var body ReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "BOC", body.Route)
	assert.True(t, body.HasVacancy)
	require.Len(t, body.Rows, 1)

	cell := body.Rows[0].Cells["OC"]
	assert.Equal(t, 3, cell.RoomsConfirmed)
	require.NotNil(t, cell.RoomsVacant)
	assert.Equal(t, 6, *cell.RoomsVacant)
}

func TestHandle_SeatBasedOmitsVacancyFields(t *testing.T) {
	matrix := &domain.OccupancyMatrix{
		RouteCode: "TSL",
		Model:     domain.SeatBased,
		Grades:    []string{domain.TotalGradeCode, "STA"},
		Rows: []domain.MatrixRow{
			{
				ScheduleID: 20,
				Cells: map[string]domain.MatrixCell{
					domain.TotalGradeCode: {RoomsConfirmed: 50, PaxConfirmed: 50},
					"STA":                 {RoomsConfirmed: 50, PaxConfirmed: 50},
				},
			},
		},
	}
	uc := &fakeUseCase{resp: &build_report.Response{Matrix: matrix}}
	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodGet,
		reportURL("route=TSL&start_date=2025-11-01&end_date=2025-11-30"), nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "rooms_vacant")
	assert.NotContains(t, rec.Body.String(), "pax_remaining")
}

func TestHandle_BadDate(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	req := httptest.NewRequest(http.MethodGet,
		reportURL("route=BOC&start_date=2025/11/01&end_date=2025-11-30"), nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", build_report.ErrInvalidInput, http.StatusBadRequest},
		{"unknown route", build_report.ErrUnknownRoute, http.StatusNotFound},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})

			req := httptest.NewRequest(http.MethodGet,
				reportURL("route=BOC&start_date=2025-11-01&end_date=2025-11-30"), nil)
			rec := httptest.NewRecorder()
			h.Handle(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
