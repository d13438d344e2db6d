package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	httpx "github.com/mdanyllo/UpaonServicesBackPrototipo/internal/http"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/http/handlers"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/http/middleware"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/infrastructure/auth"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/infrastructure/database"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/infrastructure/repositories"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/mocks"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/services"
)

var codePattern = regexp.MustCompile(`\d{6}`)

// capturingSender records every outbound email so the flow can read the
// verification codes a real run would deliver over SMTP.
type capturingSender struct {
	emails []string
}

func (s *capturingSender) SendEmail(to, subject, body string) error {
	s.emails = append(s.emails, body)
	return nil
}

func (s *capturingSender) SendSMS(to, message string) error { return nil }

func (s *capturingSender) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, s.emails, "expected a verification email to have been sent")
	code := codePattern.FindString(s.emails[len(s.emails)-1])
	require.NotEmpty(t, code, "expected a 6-digit code in the email body")
	return code
}

func newAdminEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	modelText := `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`
	m, err := model.NewModelFromString(modelText)
	require.NoError(t, err)
	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)
	_, err = e.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|PATCH|DELETE)")
	require.NoError(t, err)
	return e
}

// newMarketplace wires the full router over in-memory SQLite and miniredis,
// with real services everywhere the flow under test reaches.
func newMarketplace(t *testing.T) (*gin.Engine, *capturingSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(gdb))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	sender := &capturingSender{}

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService("e2e-secret", "upaonsvc", 15*time.Minute, 24*time.Hour)

	userRepo := repositories.NewUserRepository(gdb)
	providerRepo := repositories.NewProviderRepository(gdb)
	reviewRepo := repositories.NewReviewRepository(gdb)
	paymentRepo := repositories.NewPaymentRepository(gdb)
	contactRepo := repositories.NewContactLogRepository(gdb)
	sessionRepo := repositories.NewSessionRepository(rdb, 24*time.Hour)

	verifySvc := services.NewVerificationService(sender, rdb, services.VerificationConfig{
		Length:       6,
		TTL:          10 * time.Minute,
		MaxAttempts:  5,
		ResendWindow: time.Minute,
	})
	authSvc := services.NewAuthService(userRepo, providerRepo, sessionRepo, passwordSvc, tokenSvc, verifySvc)
	reviewSvc := services.NewReviewService(reviewRepo, providerRepo)
	searchSvc := services.NewSearchService(providerRepo)
	statsSvc := services.NewStatsService(userRepo, providerRepo, contactRepo, paymentRepo)

	authH := handlers.NewAuthHandlers(authSvc, userRepo, mocks.NewMockFileStorage())
	providerH := handlers.NewProviderHandlers(searchSvc, providerRepo, contactRepo, statsSvc)
	reviewH := handlers.NewReviewHandlers(reviewSvc)
	paymentH := handlers.NewPaymentHandlers(mocks.NewMockPaymentService())
	adminH := handlers.NewAdminHandlers(statsSvc, userRepo, providerRepo)

	jwtMW := middleware.NewAuthMW(tokenSvc, sessionRepo)
	casbinMW := middleware.NewCasbinMW(newAdminEnforcer(t))

	router := httpx.BuildRouter(authH, providerH, reviewH, paymentH, adminH, jwtMW, casbinMW, []string{"*"})
	return router, sender
}

func do(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	decoded := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

// TestMarketplaceFlow walks the happy path end to end: a provider registers
// and verifies their email, a client does the same, the client logs in and
// leaves a five-star review, and the provider's public detail reflects it.
func TestMarketplaceFlow(t *testing.T) {
	router, sender := newMarketplace(t)

	var clientToken string
	var clientID float64

	t.Run("provider registers", func(t *testing.T) {
		w, _ := do(t, router, http.MethodPost, "/auth/register", "", map[string]interface{}{
			"name":         "João Eletricista",
			"email":        "joao@example.com",
			"password":     "senha123",
			"phone":        "98999990000",
			"role":         "PROVIDER",
			"city":         "São Luís",
			"neighborhood": "Cohama",
			"category":     "Eletricista",
			"description":  "Instalações residenciais",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("provider verifies the emailed code", func(t *testing.T) {
		w, _ := do(t, router, http.MethodPost, "/auth/verify", "", map[string]interface{}{
			"email": "joao@example.com",
			"code":  sender.lastCode(t),
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("client registers and verifies", func(t *testing.T) {
		w, body := do(t, router, http.MethodPost, "/auth/register", "", map[string]interface{}{
			"name":     "Maria Cliente",
			"email":    "maria@example.com",
			"password": "senha123",
			"role":     "CLIENT",
			"city":     "São Luís",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		data := body["data"].(map[string]interface{})
		clientID = data["user_id"].(float64)

		w, _ = do(t, router, http.MethodPost, "/auth/verify", "", map[string]interface{}{
			"email": "maria@example.com",
			"code":  sender.lastCode(t),
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("client logs in", func(t *testing.T) {
		w, body := do(t, router, http.MethodPost, "/auth/login", "", map[string]interface{}{
			"email":    "maria@example.com",
			"password": "senha123",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		data := body["data"].(map[string]interface{})
		clientToken = data["access_token"].(string)
		require.NotEmpty(t, clientToken)
		assert.Equal(t, "Bearer", data["token_type"])
		user := data["user"].(map[string]interface{})
		assert.Equal(t, clientID, user["id"])
	})

	t.Run("client reviews the provider", func(t *testing.T) {
		w, body := do(t, router, http.MethodPost, "/reviews", clientToken, map[string]interface{}{
			"provider_id": 1,
			"rating":      5,
			"comment":     "Excelente serviço",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		data := body["data"].(map[string]interface{})
		assert.Equal(t, float64(5), data["rating"])
		assert.Equal(t, float64(1), data["provider_id"])
	})

	t.Run("provider detail shows the aggregated rating", func(t *testing.T) {
		w, body := do(t, router, http.MethodGet, "/providers/1", "", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		data := body["data"].(map[string]interface{})
		assert.Equal(t, float64(5), data["rating"])
		assert.Equal(t, "Eletricista", data["category"])

		reviews, rBody := do(t, router, http.MethodGet, "/reviews/1", "", nil)
		require.Equal(t, http.StatusOK, reviews.Code)
		list := rBody["data"].([]interface{})
		require.Len(t, list, 1)
		first := list[0].(map[string]interface{})
		author := first["author"].(map[string]interface{})
		assert.Equal(t, "Maria Cliente", author["name"])
	})

	t.Run("review without a token is rejected", func(t *testing.T) {
		w, _ := do(t, router, http.MethodPost, "/reviews", "", map[string]interface{}{
			"provider_id": 1,
			"rating":      5,
		})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
