package dto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func strPtr(s string) *string { return &s }

func newTestContext(target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	method := http.MethodGet
	if body != "" {
		method = http.MethodPost
	}

	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}

	return c, w
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantDetails map[string]string
	}{
		{
			name:       "quote not found",
			err:        domain.NewNotFoundError("quote", "abc"),
			wantStatus: http.StatusNotFound,
			wantCode:   ErrorCodeNotFound,
		},
		{
			name:       "email already registered",
			err:        domain.NewConflictError("user", "email already registered"),
			wantStatus: http.StatusConflict,
			wantCode:   ErrorCodeConflict,
		},
		{
			name:        "field validation carries details",
			err:         domain.NewValidationError("content", "must not be empty"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    ErrorCodeValidation,
			wantDetails: map[string]string{"content": "must not be empty"},
		},
		{
			name:       "missing credentials",
			err:        domain.NewUnauthorizedError("missing credentials"),
			wantStatus: http.StatusUnauthorized,
			wantCode:   ErrorCodeUnauthorized,
		},
		{
			name:       "pending account",
			err:        domain.NewForbiddenError("submit quote", "account pending approval"),
			wantStatus: http.StatusForbidden,
			wantCode:   ErrorCodeForbidden,
		},
		{
			name:        "storage failure hides driver text",
			err:         domain.NewStorageError("insert quote", errors.New("dial tcp 10.0.0.5:5432: refused")),
			wantStatus:  http.StatusBadGateway,
			wantCode:    ErrorCodeStorage,
			wantMessage: "storage backend error",
		},
		{
			name:        "request deadline inside a store call",
			err:         domain.NewStorageError("list quotes", context.DeadlineExceeded),
			wantStatus:  http.StatusGatewayTimeout,
			wantCode:    ErrorCodeTimeout,
			wantMessage: "request timed out",
		},
		{
			name:        "key set unavailable",
			err:         domain.NewUnavailableError("jwks", "circuit open"),
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    ErrorCodeUnavailable,
			wantMessage: "service temporarily unavailable",
		},
		{
			name:        "unknown error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    ErrorCodeInternal,
			wantMessage: "an internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := MapDomainError(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			require.NotNil(t, resp)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantDetails, resp.Error.Details)
			assert.Equal(t, tt.wantStatus, HTTPStatusFromCode(tt.wantCode))

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, resp.Error.Message)
			} else {
				assert.Equal(t, tt.err.Error(), resp.Error.Message)
			}
		})
	}

	t.Run("nil error", func(t *testing.T) {
		status, resp := MapDomainError(nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Nil(t, resp)
	})
}

func TestHTTPStatusFromCode_AdapterCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatusFromCode(ErrorCodeBadRequest))
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatusFromCode(ErrorCodeTimeout))
	assert.Equal(t, http.StatusRequestEntityTooLarge, HTTPStatusFromCode(ErrorCodePayloadTooLarge))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromCode("SOMETHING_ELSE"))
}

func TestGetTraceID(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*gin.Context)
		want  string
	}{
		{
			name:  "context value",
			setup: func(c *gin.Context) { c.Set("trace_id", "ctx-1") },
			want:  "ctx-1",
		},
		{
			name:  "request id header",
			setup: func(c *gin.Context) { c.Request.Header.Set("X-Request-ID", "hdr-1") },
			want:  "hdr-1",
		},
		{
			name: "context wins over header",
			setup: func(c *gin.Context) {
				c.Set("trace_id", "ctx-1")
				c.Request.Header.Set("X-Request-ID", "hdr-1")
			},
			want: "ctx-1",
		},
		{
			name:  "nothing set",
			setup: func(*gin.Context) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext("/", "")
			tt.setup(c)

			assert.Equal(t, tt.want, GetTraceID(c))
		})
	}
}

func TestHandleError_WritesEnvelope(t *testing.T) {
	c, w := newTestContext("/", "")
	c.Request.Header.Set("X-Request-ID", "req-9")

	HandleError(c, domain.NewStorageError("count quotes", errors.New("mongo: no reachable servers")))

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ErrorCodeStorage, resp.Error.Code)
	assert.Equal(t, "req-9", resp.TraceID)
	assert.NotContains(t, w.Body.String(), "mongo")
}

func TestAbortWithError_StopsChain(t *testing.T) {
	c, w := newTestContext("/", "")

	AbortWithError(c, domain.NewUnauthorizedError("invalid token"))

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetLimit(t *testing.T) {
	tests := []struct {
		limit int
		def   int
		want  int
	}{
		{limit: 0, def: DefaultLimit, want: DefaultLimit},
		{limit: -5, def: 50, want: 50},
		{limit: 7, def: DefaultLimit, want: 7},
		{limit: MaxLimit, def: DefaultLimit, want: MaxLimit},
		{limit: 5000, def: DefaultLimit, want: MaxLimit},
	}

	for _, tt := range tests {
		p := PaginationRequest{Limit: tt.limit}
		assert.Equal(t, tt.want, p.GetLimit(tt.def), "limit=%d def=%d", tt.limit, tt.def)
	}
}

func TestNewPaginatedResponse(t *testing.T) {
	quotes := []*domain.Quote{
		{ID: "a", Content: "One.", Status: domain.QuoteStatusApproved},
		{ID: "b", Content: "Two.", Status: domain.QuoteStatusApproved},
	}

	page := NewPaginatedResponse(quotes, "2", NewQuoteResponse)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "b", page.Items[1].ID)
	assert.True(t, page.HasMore)

	last := NewPaginatedResponse[*domain.Quote](nil, "", NewQuoteResponse)
	assert.NotNil(t, last.Items)
	assert.False(t, last.HasMore)

	body, err := json.Marshal(last)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"hasMore":false}`, string(body))
}

func TestNewQuoteResponse(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	verified := created.Add(time.Hour)

	resp := NewQuoteResponse(&domain.Quote{
		ID:          "q1",
		Content:     "Stay hungry.",
		ContentHash: "hash",
		Status:      domain.QuoteStatusApproved,
		Source:      "api",
		SubmittedBy: strPtr("jane"),
		CreatedAt:   created,
		VerifiedAt:  &verified,
		VerifiedBy:  strPtr("boss@x.com"),
		Likes:       4,
	})

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "q1",
		"content": "Stay hungry.",
		"contentHash": "hash",
		"status": "APPROVED",
		"source": "api",
		"submittedBy": "jane",
		"createdAt": "2026-01-02T03:04:05Z",
		"verifiedAt": "2026-01-02T04:04:05Z",
		"verifiedBy": "boss@x.com",
		"likes": 4
	}`, string(body))

	pending, err := json.Marshal(NewQuoteResponse(&domain.Quote{ID: "q2", Status: domain.QuoteStatusPending}))
	require.NoError(t, err)
	assert.Contains(t, string(pending), `"submittedBy":null`)
	assert.NotContains(t, string(pending), "verifiedAt")
}

func TestNewUserResponse_OmitsPasswordHash(t *testing.T) {
	resp := NewUserResponse(&domain.User{
		Email:        "jane@x.com",
		PasswordHash: "$2a$10$secret",
		DisplayName:  "Jane",
		Status:       domain.UserStatusPending,
	})

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "$2a$")
	assert.Contains(t, string(body), `"status":"PENDING"`)
}

func TestNewIdentityResponse(t *testing.T) {
	resp := NewIdentityResponse(&domain.Identity{
		Email:   "boss@x.com",
		IsAdmin: true,
		Status:  domain.UserStatusApproved,
		Source:  domain.IdentitySourceStatic,
	})

	assert.Equal(t, "static", resp.Source)
	assert.True(t, resp.IsAdmin)
}

func TestValidate_Requests(t *testing.T) {
	tests := []struct {
		name       string
		req        any
		wantFields map[string]string
	}{
		{
			name: "valid submission",
			req:  &SubmitQuoteRequest{Content: "Be kind."},
		},
		{
			name:       "whitespace only content",
			req:        &SubmitQuoteRequest{Content: " \n\t "},
			wantFields: map[string]string{"content": "must not be empty"},
		},
		{
			name:       "content too long",
			req:        &SubmitQuoteRequest{Content: strings.Repeat("a", 2001)},
			wantFields: map[string]string{"content": "must be at most 2000 characters"},
		},
		{
			name: "status in any case",
			req:  &EditQuoteRequest{Status: strPtr("approved")},
		},
		{
			name:       "unknown status",
			req:        &EditQuoteRequest{Status: strPtr("LOST")},
			wantFields: map[string]string{"status": "must be one of: PENDING APPROVED REJECTED"},
		},
		{
			name: "status omitted",
			req:  &EditQuoteRequest{Content: strPtr("Edited.")},
		},
		{
			name: "password at bcrypt limit",
			req:  &RegisterUserRequest{Email: "jane@x.com", Password: strings.Repeat("p", 72)},
		},
		{
			name:       "multi-byte password over bcrypt limit",
			req:        &RegisterUserRequest{Email: "jane@x.com", Password: strings.Repeat("é", 40)},
			wantFields: map[string]string{"password": "must be at most 72 bytes"},
		},
		{
			name: "bad email and missing password",
			req:  &RegisterUserRequest{Email: "not-an-email"},
			wantFields: map[string]string{
				"email":    "must be a valid email address",
				"password": "this field is required",
			},
		},
		{
			name:       "unknown session role",
			req:        &SessionRequest{Password: "x", Role: "root"},
			wantFields: map[string]string{"role": "must be one of: admin user"},
		},
		{
			name:       "admin flag required",
			req:        &SetAdminRequest{},
			wantFields: map[string]string{"isAdmin": "this field is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)

			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrValidation)
			assert.True(t, IsValidationError(err))
			assert.Equal(t, tt.wantFields, ValidationErrors(err))
		})
	}
}

func TestBindAndValidate(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		c, _ := newTestContext("/", `{"content":"Hello.","source":"api"}`)

		var req SubmitQuoteRequest
		require.NoError(t, BindAndValidate(c, &req))
		assert.Equal(t, "api", req.Source)
	})

	t.Run("malformed json", func(t *testing.T) {
		c, _ := newTestContext("/", `{"content":`)

		var req SubmitQuoteRequest
		err := BindAndValidate(c, &req)
		require.ErrorIs(t, err, ErrBinding)
		assert.False(t, IsValidationError(err))
	})
}

func TestBindQueryAndValidate(t *testing.T) {
	c, _ := newTestContext("/?status=pending&limit=10&cursor=20", "")

	var q AdminQuoteQuery
	require.NoError(t, BindQueryAndValidate(c, &q))
	assert.Equal(t, "pending", q.Status)
	assert.Equal(t, 10, q.GetLimit(DefaultLimit))
	assert.Equal(t, "20", q.Cursor)

	c, _ = newTestContext("/?limit=0x", "")
	require.ErrorIs(t, BindQueryAndValidate(c, &q), ErrBinding)
}

func TestRespondWithBindingError(t *testing.T) {
	t.Run("validation failure lists fields", func(t *testing.T) {
		c, w := newTestContext("/", "")

		RespondWithBindingError(c, Validate(&SubmitQuoteRequest{}))

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrorCodeValidation, resp.Error.Code)
		assert.Contains(t, resp.Error.Details, "content")
	})

	t.Run("binding failure", func(t *testing.T) {
		c, w := newTestContext("/", "")

		RespondWithBindingError(c, ErrBinding)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrorCodeBadRequest, resp.Error.Code)
		assert.Empty(t, resp.Error.Details)
	})

	t.Run("body over the size limit", func(t *testing.T) {
		c, w := newTestContext("/", "")

		RespondWithBindingError(c, fmt.Errorf("%w: %w", ErrBinding, &http.MaxBytesError{Limit: 16}))

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, ErrorCodePayloadTooLarge, resp.Error.Code)
	})
}
