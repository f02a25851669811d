package service

import (
	"testing"
	"time"

	"planpulse/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestImportJobStalled(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		status    string
		updatedAt time.Time
		want      bool
	}{
		{
			name:      "running past the window is stalled",
			status:    string(model.ImportJobStatusRunning),
			updatedAt: now.Add(-importStaleAfter - time.Minute),
			want:      true,
		},
		{
			name:      "running within the window is not stalled",
			status:    string(model.ImportJobStatusRunning),
			updatedAt: now.Add(-time.Minute),
			want:      false,
		},
		{
			name:      "exactly at the window is not stalled",
			status:    string(model.ImportJobStatusRunning),
			updatedAt: now.Add(-importStaleAfter),
			want:      false,
		},
		{
			name:      "completed job is never stalled",
			status:    string(model.ImportJobStatusCompleted),
			updatedAt: now.Add(-24 * time.Hour),
			want:      false,
		},
		{
			name:      "failed job is never stalled",
			status:    string(model.ImportJobStatusFailed),
			updatedAt: now.Add(-24 * time.Hour),
			want:      false,
		},
		{
			name:      "pending job is never stalled",
			status:    string(model.ImportJobStatusPending),
			updatedAt: now.Add(-24 * time.Hour),
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, importJobStalled(tt.status, tt.updatedAt, now))
		})
	}
}
