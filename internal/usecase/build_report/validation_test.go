package build_report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNormalizeRequest(t *testing.T) {
	req := Request{RouteCode: "BOC"}
	normalizeRequest(&req)

	assert.Equal(t, domain.PortWildcard, req.Origin)
	assert.Equal(t, domain.PortWildcard, req.Destination)

	req = Request{RouteCode: "BOC", Origin: "PUS", Destination: "OSA"}
	normalizeRequest(&req)
	assert.Equal(t, "PUS", req.Origin)
	assert.Equal(t, "OSA", req.Destination)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{
			name: "valid range",
			req:  Request{RouteCode: "BOC", Range: domain.DateRange{Start: day("2025-11-01"), End: day("2025-11-30")}},
		},
		{
			name: "single day range",
			req:  Request{RouteCode: "BOC", Range: domain.DateRange{Start: day("2025-11-01"), End: day("2025-11-01")}},
		},
		{
			name:    "missing route",
			req:     Request{Range: domain.DateRange{Start: day("2025-11-01"), End: day("2025-11-30")}},
			wantErr: true,
		},
		{
			name:    "missing dates",
			req:     Request{RouteCode: "BOC"},
			wantErr: true,
		},
		{
			name:    "end before start",
			req:     Request{RouteCode: "BOC", Range: domain.DateRange{Start: day("2025-11-30"), End: day("2025-11-01")}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(&tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
