package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yigit/dormitory/internal/app/models/dto"
	"github.com/yigit/dormitory/internal/config"
	"github.com/yigit/dormitory/internal/pkg/logger"
	"github.com/yigit/dormitory/internal/testkit"
)

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Database = testkit.SQLiteConfig(t)
	cfg.JWT.Secret = "api-test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "test"
	cfg.Auth.PasswordScheme = "sha256"
	cfg.Auth.DefaultAdminPassword = "admin123"

	lgr := logger.Nop()
	store, err := SetupDatabase(t.Context(), cfg, lgr)
	if err != nil {
		t.Fatalf("SetupDatabase: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	deps, err := BuildDependencies(t.Context(), cfg, store, lgr)
	if err != nil {
		t.Fatalf("BuildDependencies: %v", err)
	}
	return &apiClient{t: t, router: SetupRouter(cfg, deps, lgr)}
}

func (a *apiClient) do(method, path string, body any) (int, envelope) {
	a.t.Helper()

	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			a.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code, env
}

func (a *apiClient) mustDo(method, path string, body any, wantStatus int, out any) {
	a.t.Helper()
	status, env := a.do(method, path, body)
	if status != wantStatus {
		a.t.Fatalf("%s %s: status = %d, want %d (error %+v)", method, path, status, wantStatus, env.Error)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			a.t.Fatalf("%s %s: decode data %s: %v", method, path, env.Data, err)
		}
	}
}

func (a *apiClient) login(username, password string) {
	a.t.Helper()
	a.token = ""
	var resp dto.AuthResponse
	a.mustDo(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: username, Password: password}, http.StatusOK, &resp)
	if resp.Token.TokenType != "Bearer" || resp.Token.AccessToken == "" {
		a.t.Fatalf("unexpected token response %+v", resp.Token)
	}
	a.token = resp.Token.AccessToken
}

func TestHealthIsPublic(t *testing.T) {
	api := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var health dto.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health.Status != "ok" || health.Database != "sqlite" {
		t.Errorf("health = %+v", health)
	}
}

func TestLoginAndIdentity(t *testing.T) {
	api := newAPI(t)

	status, env := api.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "admin", Password: "wrong"})
	if status != http.StatusUnauthorized || env.Error.Code != dto.ErrorCodeInvalidCredentials {
		t.Fatalf("wrong password: status %d error %+v", status, env.Error)
	}
	status, _ = api.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "nobody", Password: "admin123"})
	if status != http.StatusUnauthorized {
		t.Fatalf("unknown user: status %d", status)
	}
	status, _ = api.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "admin"})
	if status != http.StatusBadRequest {
		t.Fatalf("missing password: status %d", status)
	}

	status, _ = api.do(http.MethodGet, "/api/v1/auth/me", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("me without token: status %d", status)
	}

	api.login("admin", "admin123")
	var me dto.IdentityResponse
	api.mustDo(http.MethodGet, "/api/v1/auth/me", nil, http.StatusOK, &me)
	if me.Username != "admin" || me.Role != "admin" || len(me.Modules) != 6 {
		t.Errorf("me = %+v", me)
	}
}

func TestRoleGating(t *testing.T) {
	api := newAPI(t)
	api.login("admin", "admin123")

	for _, u := range []dto.CreateUserRequest{
		{Username: "cmd", Password: "pw", Role: "commandant"},
		{Username: "acc", Password: "pw", Role: "accountant"},
		{Username: "view", Password: "pw", Role: "viewer"},
	} {
		api.mustDo(http.MethodPost, "/api/v1/users", u, http.StatusCreated, nil)
	}
	status, env := api.do(http.MethodPost, "/api/v1/users", dto.CreateUserRequest{Username: "cmd", Password: "x", Role: "viewer"})
	if status != http.StatusConflict {
		t.Fatalf("duplicate user: status %d error %+v", status, env.Error)
	}
	status, _ = api.do(http.MethodPost, "/api/v1/users", dto.CreateUserRequest{Username: "root", Password: "x", Role: "root"})
	if status != http.StatusBadRequest {
		t.Fatalf("unknown role: status %d", status)
	}

	tests := []struct {
		user   string
		method string
		path   string
		want   int
	}{
		{"cmd", http.MethodGet, "/api/v1/students", http.StatusOK},
		{"cmd", http.MethodGet, "/api/v1/rooms", http.StatusOK},
		{"cmd", http.MethodGet, "/api/v1/stays", http.StatusOK},
		{"cmd", http.MethodGet, "/api/v1/reports/debtors", http.StatusOK},
		{"cmd", http.MethodPost, "/api/v1/charges", http.StatusForbidden},
		{"cmd", http.MethodPost, "/api/v1/users", http.StatusForbidden},
		{"acc", http.MethodGet, "/api/v1/students", http.StatusForbidden},
		{"acc", http.MethodGet, "/api/v1/reports/debtors", http.StatusOK},
		{"acc", http.MethodGet, "/api/v1/students/1/balance", http.StatusNotFound},
		{"view", http.MethodGet, "/api/v1/reports/debtors", http.StatusOK},
		{"view", http.MethodGet, "/api/v1/rooms", http.StatusForbidden},
		{"view", http.MethodGet, "/api/v1/students/1/balance", http.StatusForbidden},
	}
	for _, tt := range tests {
		api.login(tt.user, "pw")
		status, _ := api.do(tt.method, tt.path, nil)
		if status != tt.want {
			t.Errorf("%s %s %s: status = %d, want %d", tt.user, tt.method, tt.path, status, tt.want)
		}
	}
}

func TestOccupancyAndBillingFlow(t *testing.T) {
	api := newAPI(t)
	api.login("admin", "admin123")

	var ivan, petr dto.IDResponse
	api.mustDo(http.MethodPost, "/api/v1/students", dto.CreateStudentRequest{FullName: "Ivan Petrov", StudyGroup: "IT-21"}, http.StatusCreated, &ivan)
	api.mustDo(http.MethodPost, "/api/v1/students", dto.CreateStudentRequest{FullName: "Petr Sidorov"}, http.StatusCreated, &petr)

	status, _ := api.do(http.MethodPost, "/api/v1/students", dto.CreateStudentRequest{FullName: "Bad Date", BirthDate: "01.02.2003"})
	if status != http.StatusBadRequest {
		t.Fatalf("bad birth date: status %d", status)
	}

	var found []map[string]any
	api.mustDo(http.MethodGet, "/api/v1/students?q=it-21", nil, http.StatusOK, &found)
	if len(found) != 1 {
		t.Fatalf("search found %d students, want 1", len(found))
	}

	floor := 1
	var room dto.IDResponse
	api.mustDo(http.MethodPost, "/api/v1/rooms", dto.CreateRoomRequest{Building: "A", Floor: &floor, RoomNumber: "101", TotalBeds: 1}, http.StatusCreated, &room)
	status, _ = api.do(http.MethodPost, "/api/v1/rooms", dto.CreateRoomRequest{Building: "A", Floor: &floor, RoomNumber: "101", TotalBeds: 2})
	if status != http.StatusConflict {
		t.Fatalf("duplicate room: status %d", status)
	}

	var stay dto.IDResponse
	api.mustDo(http.MethodPost, "/api/v1/stays", dto.CheckInRequest{StudentID: ivan.ID, RoomID: room.ID, CheckinDate: "2026-09-01"}, http.StatusCreated, &stay)

	status, env := api.do(http.MethodPost, "/api/v1/stays", dto.CheckInRequest{StudentID: petr.ID, RoomID: room.ID})
	if status != http.StatusConflict || env.Error.Message != "room has no free beds" {
		t.Fatalf("full room: status %d error %+v", status, env.Error)
	}
	status, _ = api.do(http.MethodPost, "/api/v1/stays", dto.CheckInRequest{StudentID: 9999, RoomID: room.ID})
	if status != http.StatusNotFound {
		t.Fatalf("unknown student: status %d", status)
	}

	var rooms []struct {
		ID       int64 `json:"id"`
		Occupied int   `json:"occupied"`
	}
	api.mustDo(http.MethodGet, "/api/v1/rooms", nil, http.StatusOK, &rooms)
	if len(rooms) != 1 || rooms[0].Occupied != 1 {
		t.Fatalf("rooms = %+v", rooms)
	}

	var closed struct {
		CheckoutDate   *string `json:"checkoutDate"`
		CheckoutReason *string `json:"checkoutReason"`
	}
	api.mustDo(http.MethodPost, "/api/v1/stays/"+itoa(stay.ID)+"/checkout",
		dto.CheckOutRequest{CheckoutDate: "2026-09-30", Reason: "graduated"}, http.StatusOK, &closed)
	if closed.CheckoutDate == nil || *closed.CheckoutDate != "2026-09-30" {
		t.Fatalf("checkout = %+v", closed)
	}
	status, _ = api.do(http.MethodPost, "/api/v1/stays/9999/checkout", nil)
	if status != http.StatusNotFound {
		t.Fatalf("unknown stay: status %d", status)
	}
	status, _ = api.do(http.MethodPost, "/api/v1/stays/abc/checkout", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("malformed stay id: status %d", status)
	}

	api.mustDo(http.MethodPost, "/api/v1/stays", dto.CheckInRequest{StudentID: petr.ID, RoomID: room.ID}, http.StatusCreated, nil)

	amount := 1500.0
	api.mustDo(http.MethodPost, "/api/v1/charges", dto.AddChargeRequest{StudentID: ivan.ID, Period: "2026-09", Amount: &amount, BenefitDiscount: 500}, http.StatusCreated, nil)
	paid := 400.0
	api.mustDo(http.MethodPost, "/api/v1/payments", dto.AddPaymentRequest{StudentID: ivan.ID, Amount: &paid, Method: "cash"}, http.StatusCreated, nil)
	status, _ = api.do(http.MethodPost, "/api/v1/charges", dto.AddChargeRequest{StudentID: ivan.ID})
	if status != http.StatusBadRequest {
		t.Fatalf("charge without amount: status %d", status)
	}

	var balance struct {
		Balance float64 `json:"balance"`
	}
	api.mustDo(http.MethodGet, "/api/v1/students/"+itoa(ivan.ID)+"/balance", nil, http.StatusOK, &balance)
	if balance.Balance != 600 {
		t.Errorf("balance = %v, want 600", balance.Balance)
	}

	var debtors []struct {
		StudentID int64   `json:"studentId"`
		Debt      float64 `json:"debt"`
	}
	api.mustDo(http.MethodGet, "/api/v1/reports/debtors", nil, http.StatusOK, &debtors)
	if len(debtors) != 1 || debtors[0].StudentID != ivan.ID || debtors[0].Debt != 600 {
		t.Errorf("debtors = %+v", debtors)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
