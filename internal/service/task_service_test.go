package service

import (
	"errors"
	"testing"
	"time"

	"planpulse/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestResolvePlannedRange(t *testing.T) {
	storedStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	storedEnd := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		req       *model.UpdateTaskRequest
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name:      "no dates keeps stored range",
			req:       &model.UpdateTaskRequest{},
			wantStart: storedStart,
			wantEnd:   storedEnd,
		},
		{
			name:      "both dates moved forward",
			req:       &model.UpdateTaskRequest{PlannedStart: strp("2024-04-01"), PlannedEnd: strp("2024-04-30")},
			wantStart: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "start equal to end allowed",
			req:       &model.UpdateTaskRequest{PlannedStart: strp("2024-04-15"), PlannedEnd: strp("2024-04-15")},
			wantStart: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "end before stored start rejected",
			req:     &model.UpdateTaskRequest{PlannedEnd: strp("2024-02-01")},
			wantErr: true,
		},
		{
			name:    "start after stored end rejected",
			req:     &model.UpdateTaskRequest{PlannedStart: strp("2024-05-01")},
			wantErr: true,
		},
		{
			name:    "inverted pair rejected",
			req:     &model.UpdateTaskRequest{PlannedStart: strp("2024-04-10"), PlannedEnd: strp("2024-04-01")},
			wantErr: true,
		},
		{
			name:    "unparsable start rejected",
			req:     &model.UpdateTaskRequest{PlannedStart: strp("03/01/2024")},
			wantErr: true,
		},
		{
			name:    "unparsable end rejected",
			req:     &model.UpdateTaskRequest{PlannedEnd: strp("not-a-date")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := resolvePlannedRange(storedStart, storedEnd, tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
