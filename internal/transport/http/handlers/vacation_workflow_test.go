package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"ferias/internal/app/server"
	"ferias/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	RequestID string `json:"requestId"`
}

func testConfig(dbURL string) config.Config {
	cfg := config.Load()
	cfg.DatabaseURL = dbURL
	cfg.JWTSecret = "test-secret"
	cfg.Environment = "test"
	cfg.RunMigrations = true
	cfg.RunSeed = true
	cfg.SeedAdminPassword = "Admin123!"
	cfg.MigrationsDir = "../../../../migrations"
	cfg.RateLimitPerMinute = 10000
	cfg.MetricsEnabled = false
	return cfg
}

func startApp(t *testing.T) (*server.App, *httptest.Server) {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	app, err := server.New(context.Background(), testConfig(dbURL))
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)

	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return app, ts
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, payload any, wantStatus int) envelope {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response from %s %s: %v", method, url, err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d (error: %+v)", method, url, wantStatus, resp.StatusCode, env.Error)
	}
	return env
}

func adminMatricula(t *testing.T, app *server.App) string {
	t.Helper()
	var matricula string
	err := app.DB.QueryRow(context.Background(), "SELECT matricula FROM users WHERE role = 'admin' ORDER BY created_at LIMIT 1").Scan(&matricula)
	if err != nil {
		t.Fatalf("lookup admin matricula: %v", err)
	}
	return matricula
}

func login(t *testing.T, client *http.Client, baseURL, matricula, password string) string {
	t.Helper()
	env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/auth/login", "", map[string]string{
		"matricula": matricula,
		"senha":     password,
	}, http.StatusOK)

	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if data.Token == "" {
		t.Fatal("expected token in login response")
	}
	return data.Token
}

func registerUser(t *testing.T, client *http.Client, baseURL, adminToken, name, role, sectorID, password string) string {
	t.Helper()
	env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/usuarios", adminToken, map[string]string{
		"nome":    name,
		"perfil":  role,
		"setorId": sectorID,
		"senha":   password,
	}, http.StatusCreated)

	var data struct {
		Matricula string `json:"matricula"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return data.Matricula
}

func TestVacationApprovalWorkflow(t *testing.T) {
	app, ts := startApp(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, adminMatricula(t, app), "Admin123!")

	sectorName := fmt.Sprintf("Operacoes-%d", time.Now().UnixNano())
	sectorEnv := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/setores", adminToken, map[string]any{
		"nome":                    sectorName,
		"limiteFeriasSimultaneas": 1,
	}, http.StatusCreated)
	var sec struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(sectorEnv.Data, &sec); err != nil {
		t.Fatalf("decode sector: %v", err)
	}

	password := "Senha123!"
	anaMatricula := registerUser(t, client, ts.URL, adminToken, "Ana", "colaborador", sec.ID, password)
	brunoMatricula := registerUser(t, client, ts.URL, adminToken, "Bruno", "colaborador", sec.ID, password)
	gestorMatricula := registerUser(t, client, ts.URL, adminToken, "Chefe", "gestor", sec.ID, password)

	anaToken := login(t, client, ts.URL, anaMatricula, password)
	brunoToken := login(t, client, ts.URL, brunoMatricula, password)
	gestorToken := login(t, client, ts.URL, gestorMatricula, password)

	// A 10-day request is rejected: vacations must total exactly 30 days.
	shortEnv := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/ferias/solicitar", anaToken, map[string]any{
		"periodos": []map[string]string{{"inicio": "2025-03-01", "fim": "2025-03-10"}},
	}, http.StatusBadRequest)
	if shortEnv.Error == nil || !strings.Contains(shortEnv.Error.Message, "Atual: 10") {
		t.Fatalf("expected duration error citing Atual: 10, got %+v", shortEnv.Error)
	}

	submitEnv := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/ferias/solicitar", anaToken, map[string]any{
		"periodos": []map[string]string{{"inicio": "2025-01-01", "fim": "2025-01-30"}},
	}, http.StatusCreated)
	var anaResult struct {
		Request struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"solicitacao"`
		Warnings []string `json:"avisos"`
	}
	if err := json.Unmarshal(submitEnv.Data, &anaResult); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}
	if anaResult.Request.Status != "pendente" {
		t.Fatalf("expected pending status, got %s", anaResult.Request.Status)
	}
	if len(anaResult.Warnings) != 0 {
		t.Fatalf("expected no warnings for first request, got %v", anaResult.Warnings)
	}

	// Overlapping pending request is accepted, but flagged.
	overlapEnv := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/ferias/solicitar", brunoToken, map[string]any{
		"periodos": []map[string]string{{"inicio": "2025-01-15", "fim": "2025-02-13"}},
	}, http.StatusCreated)
	var brunoResult struct {
		Request struct {
			ID string `json:"id"`
		} `json:"solicitacao"`
		Warnings []string `json:"avisos"`
	}
	if err := json.Unmarshal(overlapEnv.Data, &brunoResult); err != nil {
		t.Fatalf("decode overlap response: %v", err)
	}
	if len(brunoResult.Warnings) == 0 {
		t.Fatal("expected pending-overlap warning")
	}

	// Cancelling someone else's request is forbidden.
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/ferias/"+anaResult.Request.ID+"/cancelar", brunoToken, nil, http.StatusForbidden)

	// Denying without a reason is rejected.
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/ferias/"+brunoResult.Request.ID+"/negar", gestorToken, map[string]string{
		"motivo": "  ",
	}, http.StatusBadRequest)

	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/ferias/"+anaResult.Request.ID+"/aprovar", gestorToken, nil, http.StatusOK)

	// First approval wins: the limit-1 sector is now full over January 15-30.
	conflictEnv := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/ferias/"+brunoResult.Request.ID+"/aprovar", gestorToken, nil, http.StatusConflict)
	if conflictEnv.Error == nil || !strings.Contains(conflictEnv.Error.Message, "2025-01-15") {
		t.Fatalf("expected conflict citing 2025-01-15, got %+v", conflictEnv.Error)
	}

	// Re-approving an already approved request is a state conflict.
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/ferias/"+anaResult.Request.ID+"/aprovar", gestorToken, nil, http.StatusConflict)

	calendarEnv := doJSON(t, client, http.MethodGet,
		ts.URL+"/api/v1/ferias/calendario/"+sec.ID+"?inicio=2025-01-01&fim=2025-01-31", anaToken, nil, http.StatusOK)
	var days []struct {
		Day      time.Time `json:"dia"`
		Approved int       `json:"aprovadas"`
		Pending  int       `json:"pendentes"`
		Limit    int       `json:"limite"`
	}
	if err := json.Unmarshal(calendarEnv.Data, &days); err != nil {
		t.Fatalf("decode calendar: %v", err)
	}
	if len(days) != 31 {
		t.Fatalf("expected 31 calendar days, got %d", len(days))
	}
	if days[0].Approved != 1 || days[0].Pending != 0 {
		t.Fatalf("expected Jan 1 approved=1 pending=0, got %+v", days[0])
	}
	if days[14].Approved != 1 || days[14].Pending != 1 {
		t.Fatalf("expected Jan 15 approved=1 pending=1, got %+v", days[14])
	}
	if days[30].Approved != 0 || days[30].Pending != 1 {
		t.Fatalf("expected Jan 31 approved=0 pending=1, got %+v", days[30])
	}

	// Bruno's request is still pending, so he can withdraw it.
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/ferias/"+brunoResult.Request.ID+"/cancelar", brunoToken, nil, http.StatusOK)
}

func TestVacationCalendarPDFExport(t *testing.T) {
	app, ts := startApp(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, adminMatricula(t, app), "Admin123!")

	sectorName := fmt.Sprintf("Export-%d", time.Now().UnixNano())
	sectorEnv := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/setores", adminToken, map[string]any{
		"nome":                    sectorName,
		"limiteFeriasSimultaneas": 2,
	}, http.StatusCreated)
	var sec struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(sectorEnv.Data, &sec); err != nil {
		t.Fatalf("decode sector: %v", err)
	}

	req, err := http.NewRequest(http.MethodGet,
		ts.URL+"/api/v1/ferias/calendario/"+sec.ID+"/export.pdf?inicio=2025-01-01&fim=2025-01-31", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("export request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for pdf export, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", ct)
	}
}
