package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventrewards/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (q quantityRequest) Validate() []string {
	if q.Quantity < 1 {
		return []string{"quantity must be positive"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantOK      bool
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{name: "valid", body: `{"quantity":3}`, wantOK: true, wantStatus: http.StatusOK},
		{name: "validation failure", body: `{"quantity":0}`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMessage: "invalid input: quantity must be positive"},
		{name: "unknown field", body: `{"quantity":1,"extra":true}`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMessage: `invalid input: unknown field "extra"`},
		{name: "malformed", body: `{"quantity":}`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMessage: "invalid input: malformed JSON at offset"},
		{name: "truncated", body: `{`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMessage: "invalid input: request body is truncated"},
		{name: "empty", body: ``, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMessage: "invalid input: request body is required"},
		{name: "wrong type", body: `{"quantity":"three"}`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMessage: "invalid input: quantity must be of type int"},
		{name: "not an object", body: `[1]`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMessage: "invalid input: body must be a JSON object, got array"},
		{name: "trailing object", body: `{"quantity":1}{"quantity":2}`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMessage: "invalid input: body must contain a single JSON object"},
		{
			name:        "too large",
			body:        `{"quantity":1,"pad":"` + strings.Repeat("x", MaxBodyBytes) + `"}`,
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantCode:    ErrCodePayloadTooLarge,
			wantMessage: "request body exceeds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dest quantityRequest
			ok := DecodeAndValidate(rec, req, &dest)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if !ok {
				var resp APIResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantCode, resp.Error.Code)
				assert.Contains(t, resp.Error.Message, tt.wantMessage)
			}
		})
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query   string
		want    domain.PaginationParams
		wantErr string
	}{
		{query: "", want: domain.PaginationParams{Page: 1, PageSize: DefaultPageSize}},
		{query: "page=3&page_size=5", want: domain.PaginationParams{Page: 3, PageSize: 5}},
		{query: "page_size=1000", want: domain.PaginationParams{Page: 1, PageSize: MaxPageSize}},
		{query: "page=0", wantErr: "page must be a positive integer"},
		{query: "page=x", wantErr: "page must be a positive integer"},
		{query: "page_size=-2", wantErr: "page_size must be a positive integer"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			got, err := ParsePagination(req)
			if tt.wantErr != "" {
				require.ErrorIs(t, err, domain.ErrInvalidInput)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
