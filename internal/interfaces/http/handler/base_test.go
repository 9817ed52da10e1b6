package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdesk/backend/internal/domain/shared"
	"github.com/salesdesk/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found",
			err:            shared.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   dto.ErrCodeNotFound,
		},
		{
			name:           "product not found maps to 404",
			err:            shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found: Laptop"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   dto.ErrCodeNotFound,
		},
		{
			name:           "insufficient stock maps to 422",
			err:            shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock for Laptop: requested 5, available 2"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   dto.ErrCodeInsufficientStock,
		},
		{
			name:           "duplicate maps to 409",
			err:            shared.NewDomainError("ALREADY_EXISTS", "A product named Laptop already exists"),
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrCodeAlreadyExists,
		},
		{
			name:           "concurrency conflict maps to 409",
			err:            shared.ErrConcurrencyConflict,
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrCodeConcurrencyConflict,
		},
		{
			name:           "upstream failure maps to 502",
			err:            shared.ErrUpstreamUnavailable,
			expectedStatus: http.StatusBadGateway,
			expectedCode:   dto.ErrCodeUpstream,
		},
		{
			name:           "unknown error maps to 500",
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h := &BaseHandler{}
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}
}

func TestParseUUID(t *testing.T) {
	_, ok := parseUUID("not-a-uuid")
	assert.False(t, ok)

	id, ok := parseUUID("8f14e45f-ceea-4e72-b2c6-1c8f6fbd6d6b")
	assert.True(t, ok)
	assert.Equal(t, "8f14e45f-ceea-4e72-b2c6-1c8f6fbd6d6b", id.String())
}
