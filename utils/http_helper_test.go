package utils

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayagamaleldin/graduationproject/models"
)

func TestQueryInt(t *testing.T) {
	tests := []struct {
		query  string
		want   int
		wantOK bool
	}{
		{"", 50, true},
		{"limit=10", 10, true},
		{"limit=0", 0, true},
		{"limit=-3", 50, false},
		{"limit=ten", 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			got, ok := QueryInt(r, "limit", 50)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestHandleServiceError(t *testing.T) {
	notFound := func(err error) bool { return IsSQLNoRowsError(err) }

	rec := httptest.NewRecorder()
	HandleServiceError(rec, fmt.Errorf("lookup: %w", sql.ErrNoRows), notFound, models.CodeProfileNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.CodeProfileNotFound, resp.Code)

	rec = httptest.NewRecorder()
	HandleServiceError(rec, errors.New("boom"), notFound, models.CodeProfileNotFound)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.CodeDatabaseError, resp.Code)
	assert.Equal(t, "boom", resp.Message)
}
