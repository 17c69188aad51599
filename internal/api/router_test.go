package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studiocrm/internal/api/controllers"
	"studiocrm/internal/audit"
	"studiocrm/internal/config"
	"studiocrm/internal/infra"
	"studiocrm/internal/models/request_models"
	"studiocrm/internal/repositories"
	"studiocrm/internal/services"
	"studiocrm/pkg/ai"
	"studiocrm/pkg/fieldcrypt"
	"studiocrm/pkg/memcache"
	"studiocrm/pkg/utils"
)

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	TraceID string          `json:"trace_id"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	engine *gin.Engine
	auth   services.AuthServiceInterface
	audits repositories.AuditLogRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cipher, err := fieldcrypt.DeriveCipher("router-test-secret")
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}
	db, err := infra.OpenSQLiteMemory(strings.ReplaceAll(t.Name(), "/", "_"), cipher)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	clock := utils.SystemClock{}
	issuer := utils.NewTokenIssuer("router-test-secret", time.Hour)
	revoked := memcache.NewRevokedTokens()

	creatorRepo := repositories.NewCreatorRepository(db)
	credentialRepo := repositories.NewCredentialRepository(db)
	milestoneRepo := repositories.NewMilestoneRepository(db)
	deliverableRepo := repositories.NewDeliverableRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	recorder := audit.NewRecorder(auditRepo)

	authService := services.NewAuthService(repositories.NewUserRepository(db), issuer, revoked, clock)

	engine := NewRouter(RouterParams{
		Config:  &config.Config{CORSAllowedOrigins: "*"},
		Logger:  zap.NewNop(),
		DB:      db,
		Issuer:  issuer,
		Revoked: revoked,
		Auth:    controllers.NewAuthController(authService),
		Creators: controllers.NewCreatorController(
			services.NewCreatorService(db, creatorRepo, credentialRepo, milestoneRepo, deliverableRepo, recorder, clock), clock),
		Credentials: controllers.NewCredentialController(
			services.NewCredentialService(db, credentialRepo, creatorRepo, recorder, clock)),
		Milestones: controllers.NewMilestoneController(
			services.NewMilestoneService(milestoneRepo, creatorRepo, clock)),
		AuditLogs: controllers.NewAuditLogController(services.NewAuditService(auditRepo)),
		Deliverables: controllers.NewDeliverableController(
			services.NewDeliverableService(db, deliverableRepo, creatorRepo, ai.DisabledGenerator{}, recorder, clock)),
		Dashboard: controllers.NewDashboardController(services.NewDashboardService(creatorRepo)),
	})

	return &testServer{engine: engine, auth: authService, audits: auditRepo}
}

func (s *testServer) login(t *testing.T, email, role string) string {
	t.Helper()
	ctx := context.Background()
	if _, err := s.auth.CreateUser(ctx, request_models.CreateUserRequest{
		Name: role + " user", Email: email, Password: "password-123", Role: role,
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	resp, err := s.auth.Login(ctx, request_models.LoginRequest{Email: email, Password: "password-123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return resp.Token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, path, err, w.Body.String())
		}
	}
	return w, env
}

func TestHealthAndAuthGate(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || env.Status != "success" {
		t.Fatalf("health = %d %+v", w.Code, env)
	}
	if w.Header().Get("X-Trace-ID") == "" || env.TraceID == "" {
		t.Errorf("trace id missing")
	}

	w, _ = s.do(t, http.MethodGet, "/api/v1/creators", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated list = %d", w.Code)
	}

	w, _ = s.do(t, http.MethodGet, "/api/v1/creators", "not-a-jwt", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token list = %d", w.Code)
	}
}

func TestCreatorFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "ops@studio.test", "OPERATOR")

	w, env := s.do(t, http.MethodPost, "/api/v1/creators", token, map[string]any{
		"creator_name":  "Ana Ruiz",
		"creator_email": "ana@example.com",
		"brand_name":    "Ana Fit",
		"brand_niche":   "Fitness",
	}, "X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	var created struct {
		ID          string `json:"id"`
		HealthScore string `json:"health_score"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode creator: %v", err)
	}
	if created.HealthScore != "GREEN" {
		t.Errorf("health = %s", created.HealthScore)
	}

	entries, err := s.audits.Recent(context.Background(), 10)
	if err != nil || len(entries) != 1 {
		t.Fatalf("audit entries = %d, %v", len(entries), err)
	}
	if entries[0].IPAddress == nil || *entries[0].IPAddress != "203.0.113.9" || entries[0].UserEmail != "ops@studio.test" {
		t.Errorf("entry actor = %v %s", entries[0].IPAddress, entries[0].UserEmail)
	}

	w, _ = s.do(t, http.MethodPost, "/api/v1/creators", token, map[string]any{
		"creator_name":  "Copy",
		"creator_email": "ana@example.com",
		"brand_name":    "Copy",
		"brand_niche":   "Fitness",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate email = %d", w.Code)
	}

	w, _ = s.do(t, http.MethodPost, "/api/v1/creators/"+created.ID+"/update_journey_status", token, map[string]any{
		"journey_status": "LAUNCH",
	})
	if w.Code != http.StatusOK {
		t.Errorf("update status = %d %s", w.Code, w.Body.String())
	}

	w, env = s.do(t, http.MethodGet, "/api/v1/creators?journey_status=LAUNCH&ordering=-brand_name", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d %s", w.Code, w.Body.String())
	}
	var page struct {
		Total int64 `json:"total"`
	}
	_ = json.Unmarshal(env.Data, &page)
	if page.Total != 1 {
		t.Errorf("filtered total = %d", page.Total)
	}

	w, _ = s.do(t, http.MethodGet, "/api/v1/creators?ordering=password", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad ordering = %d", w.Code)
	}

	w, _ = s.do(t, http.MethodGet, "/api/v1/creators/not-a-uuid", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad id = %d", w.Code)
	}

	w, _ = s.do(t, http.MethodGet, "/api/v1/creators/export", token, nil)
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv") {
		t.Errorf("export = %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "Ana Fit") {
		t.Errorf("export body = %q", w.Body.String())
	}

	w, env = s.do(t, http.MethodGet, "/api/v1/creators/by_status", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("by_status = %d", w.Code)
	}
	var groups map[string][]json.RawMessage
	_ = json.Unmarshal(env.Data, &groups)
	if len(groups) != 6 || len(groups["LAUNCH"]) != 1 {
		t.Errorf("groups = %v", groups)
	}
}

func TestRolesAndAuditImmutability(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login(t, "admin@studio.test", "ADMIN")
	opsToken := s.login(t, "ops@studio.test", "OPERATOR")
	creatorToken := s.login(t, "talent@studio.test", "CREATOR")

	w, _ := s.do(t, http.MethodPost, "/api/v1/creators", creatorToken, map[string]any{
		"creator_name": "X", "creator_email": "x@example.com", "brand_name": "X", "brand_niche": "X",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("CREATOR role create = %d", w.Code)
	}

	w, env := s.do(t, http.MethodPost, "/api/v1/creators", opsToken, map[string]any{
		"creator_name": "Vault", "creator_email": "vault@example.com", "brand_name": "Vault", "brand_niche": "Security",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create creator = %d", w.Code)
	}
	var creator struct{ ID string }
	_ = json.Unmarshal(env.Data, &creator)

	w, env = s.do(t, http.MethodPost, "/api/v1/credentials", opsToken, map[string]any{
		"creator_id": creator.ID, "platform_name": "Shopify", "account_identifier": "vault", "password": "pa55",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create credential = %d %s", w.Code, w.Body.String())
	}
	if strings.Contains(string(env.Data), "pa55") {
		t.Errorf("credential response leaks the password")
	}
	var cred struct{ ID string }
	_ = json.Unmarshal(env.Data, &cred)

	w, _ = s.do(t, http.MethodPost, "/api/v1/credentials/"+cred.ID+"/reveal", opsToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("operator reveal = %d", w.Code)
	}
	w, env = s.do(t, http.MethodPost, "/api/v1/credentials/"+cred.ID+"/reveal", adminToken, nil)
	if w.Code != http.StatusOK || !strings.Contains(string(env.Data), "pa55") {
		t.Errorf("admin reveal = %d %s", w.Code, env.Data)
	}

	w, env = s.do(t, http.MethodGet, "/api/v1/audit-logs/recent", opsToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("recent = %d", w.Code)
	}
	var entries []struct{ ID string }
	_ = json.Unmarshal(env.Data, &entries)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want create creator, create credential and view", len(entries))
	}

	for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodDelete} {
		w, _ = s.do(t, method, "/api/v1/audit-logs/"+entries[0].ID, adminToken, map[string]any{"notes": "edited"})
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s audit entry = %d", method, w.Code)
		}
	}

	w, _ = s.do(t, http.MethodGet, "/api/v1/users", opsToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("operator list users = %d", w.Code)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "ops@studio.test", "OPERATOR")

	w, _ := s.do(t, http.MethodGet, "/api/v1/dashboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard = %d", w.Code)
	}

	w, _ = s.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout = %d", w.Code)
	}

	w, _ = s.do(t, http.MethodGet, "/api/v1/dashboard", token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("revoked token = %d", w.Code)
	}
}

func TestGenerateWithoutProviderFails(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "ops@studio.test", "OPERATOR")

	_, env := s.do(t, http.MethodPost, "/api/v1/creators", token, map[string]any{
		"creator_name": "Gen", "creator_email": "gen@example.com", "brand_name": "Gen", "brand_niche": "AI",
	})
	var creator struct{ ID string }
	_ = json.Unmarshal(env.Data, &creator)

	w, env := s.do(t, http.MethodPost, "/api/v1/deliverables", token, map[string]any{
		"creator_id": creator.ID, "deliverable_type": "Brand Guide",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create deliverable = %d %s", w.Code, w.Body.String())
	}
	var d struct{ ID string }
	_ = json.Unmarshal(env.Data, &d)

	w, _ = s.do(t, http.MethodPost, "/api/v1/deliverables/"+d.ID+"/generate", token, nil)
	if w.Code != http.StatusBadGateway {
		t.Errorf("generate without provider = %d", w.Code)
	}

	w, env = s.do(t, http.MethodGet, "/api/v1/deliverables/"+d.ID, token, nil)
	if w.Code != http.StatusOK || !strings.Contains(string(env.Data), `"status":"FAILED"`) {
		t.Errorf("deliverable after failure = %d %s", w.Code, env.Data)
	}
}
