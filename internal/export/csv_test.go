package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hia/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 8)
	assert.Equal(t, "Report ID", row[0])
	assert.Equal(t, "Created At", row[7])
}

func TestWriteReports(t *testing.T) {
	reportID := uuid.New()
	userID := uuid.New()
	createdAt := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

	report := domain.Report{
		ID:         reportID,
		UserID:     userID,
		InputKind:  "mixed",
		ResultText: "• **Glucose**: 88 mg/dL - NORMAL",
		Succeeded:  true,
		Warnings:   "",
		ModelUsed:  "test/text-model",
		CreatedAt:  createdAt,
	}

	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteReports([]domain.Report{report}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 8)
	assert.Equal(t, reportID.String(), row[0])
	assert.Equal(t, userID.String(), row[1])
	assert.Equal(t, "mixed", row[2])
	assert.Equal(t, "Yes", row[3])
	assert.Equal(t, "test/text-model", row[4])
	assert.Equal(t, "• **Glucose**: 88 mg/dL - NORMAL", row[6])
	assert.Equal(t, "2026-03-14T08:00:00Z", row[7])
}

func TestWriteReports_Failed(t *testing.T) {
	report := domain.Report{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		InputKind:  "text",
		ResultText: "",
		Succeeded:  false,
		Warnings:   "no bullet lines found in cleaned output",
		CreatedAt:  time.Now(),
	}

	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteReports([]domain.Report{report}))
	w.Flush()

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Equal(t, "No", row[3])
	assert.Equal(t, "no bullet lines found in cleaned output", row[5])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Analysis Reports", "Analysis_Reports"},
		{"special chars", "reports / March (final)", "reports_March_final"},
		{"hyphens and underscores preserved", "my-export_2026", "my-export_2026"},
		{"consecutive underscores collapsed", "a___b", "a_b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	filename := BuildFilename("analysis reports", "csv")
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "analysis_reports_"+today+".csv", filename)
}
