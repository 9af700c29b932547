package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	appAuth "github.com/yigit/dormitory/internal/app/auth"
	"github.com/yigit/dormitory/internal/app/models/dto"
	"github.com/yigit/dormitory/internal/pkg/apperrors"
	"github.com/yigit/dormitory/internal/pkg/auth"
	"github.com/yigit/dormitory/internal/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWT(exp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "middleware-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "test",
	})
}

func protectedRouter(jwtService *auth.JWTService, module appAuth.Module) *gin.Engine {
	m := NewAuthMiddleware(jwtService)
	r := gin.New()
	r.GET("/protected", m.JWTAuth(), m.ModuleRequired(module), func(c *gin.Context) {
		identity, _ := IdentityFrom(c)
		c.String(http.StatusOK, identity.Username)
	})
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	if resp.Error == nil {
		t.Fatalf("response has no error detail: %s", w.Body.String())
	}
	return resp
}

func TestJWTAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	r := protectedRouter(newJWT(time.Hour), appAuth.ModuleReports)

	for _, header := range []string{"", "Token abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	jwtService := newJWT(-time.Minute)
	token, _, err := jwtService.GenerateToken(1, "admin", "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protectedRouter(jwtService, appAuth.ModuleReports).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if got := decodeError(t, w).Error.Code; got != dto.ErrorCodeExpiredToken {
		t.Errorf("code = %s, want %s", got, dto.ErrorCodeExpiredToken)
	}
}

func TestModuleRequiredFollowsAccessTable(t *testing.T) {
	jwtService := newJWT(time.Hour)

	for _, role := range appAuth.Roles {
		token, _, err := jwtService.GenerateToken(7, "user-"+string(role), string(role))
		if err != nil {
			t.Fatalf("GenerateToken: %v", err)
		}
		for _, module := range appAuth.Modules {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			protectedRouter(jwtService, module).ServeHTTP(w, req)

			want := http.StatusForbidden
			if appAuth.HasAccess(role, module) {
				want = http.StatusOK
			}
			if w.Code != want {
				t.Errorf("%s on %s: status = %d, want %d", role, module, w.Code, want)
			}
		}
	}
}

func TestModuleRequiredDeniesUnknownRole(t *testing.T) {
	jwtService := newJWT(time.Hour)
	token, _, err := jwtService.GenerateToken(9, "ghost", "superuser")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protectedRouter(jwtService, appAuth.ModuleReports).ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
		code dto.ErrorCode
	}{
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{apperrors.NewValidationError("amount", "amount must be finite"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{fmt.Errorf("get: %w", apperrors.ErrStudentNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{fmt.Errorf("check in: %w", apperrors.ErrRoomFull), http.StatusConflict, dto.ErrorCodeConflict},
		{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{errors.New("disk on fire"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HandleAPIError(c, tt.err)

		wantSeverity := dto.ErrorSeverityError
		switch tt.want {
		case http.StatusBadRequest:
			wantSeverity = dto.ErrorSeverityWarning
		case http.StatusInternalServerError:
			wantSeverity = dto.ErrorSeverityCritical
		}
		if w.Code == tt.want {
			if got := decodeError(t, w).Error.Severity; got != wantSeverity {
				t.Errorf("%v: severity = %s, want %s", tt.err, got, wantSeverity)
			}
		}

		if w.Code != tt.want {
			t.Errorf("%v: status = %d, want %d", tt.err, w.Code, tt.want)
			continue
		}
		if got := decodeError(t, w).Error.Code; got != tt.code {
			t.Errorf("%v: code = %s, want %s", tt.err, got, tt.code)
		}
	}
}

func TestHandleAPIErrorKeepsSpecificMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, fmt.Errorf("check in: %w", apperrors.ErrAlreadyCheckedIn))

	resp := decodeError(t, w)
	if resp.Error.Message != "student already has an open stay" {
		t.Errorf("message = %q", resp.Error.Message)
	}
	if resp.Success {
		t.Error("success = true on an error response")
	}
}

func TestHandleBindingErrorListsFields(t *testing.T) {
	type payload struct {
		Name string `json:"name" binding:"required"`
		Date string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	}

	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			HandleBindingError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", jsonBody(`{"date":"14.10.2026"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	details, ok := decodeError(t, w).Error.Details.(map[string]any)
	if !ok {
		t.Fatalf("details = %#v, want a field map", decodeError(t, w).Error.Details)
	}
	if details["Name"] != "Name is required" {
		t.Errorf("Name detail = %v", details["Name"])
	}
	if details["Date"] != "Date must be a date in YYYY-MM-DD format" {
		t.Errorf("Date detail = %v", details["Date"])
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", jsonBody(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d, want 400", w.Code)
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(logger.Nop()))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(requestIDKey))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(requestIDHeader)
	if id == "" || w.Body.String() != id {
		t.Errorf("request id header %q, body %q", id, w.Body.String())
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "upstream-id")
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "upstream-id" {
		t.Errorf("request id = %q, want the caller's", got)
	}
}

func jsonBody(s string) *strings.Reader {
	return strings.NewReader(s)
}
