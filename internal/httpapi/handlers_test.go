package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/audit"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/auth"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/config"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/datasource"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/reporting"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/settlement"
	"github.com/Julianb233/daily-event-insurance-sub010/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var (
	adminID   = auth.Identity{UserID: "adm-1", Email: "ops@dailyevent.example", Role: "admin"}
	partnerID = auth.Identity{UserID: "usr-7", Email: "owner@adventure.example", PartnerID: "prt-001-adventure", Role: "partner"}
	supportID = auth.Identity{UserID: "sup-1", Email: "help@dailyevent.example", Role: "support"}
)

type testEnv struct {
	router  *gin.Engine
	store   *audit.MemoryStore
	manager *auth.Manager
	h       *Handlers
}

type stubLimiter struct {
	allow      bool
	released   int
	onAcquire  func()
	releaseErr error
}

func (s *stubLimiter) Acquire(context.Context, string) (bool, error) {
	if s.onAcquire != nil {
		s.onAcquire()
	}
	return s.allow, nil
}

func (s *stubLimiter) Release(ctx context.Context, _ string) error {
	s.released++
	s.releaseErr = ctx.Err()
	return nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := func() time.Time { return time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC) }

	src, err := datasource.NewFixtureSource()
	require.NoError(t, err)

	manager, err := auth.NewManager(config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	log := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := audit.NewMemoryStore()

	h := &Handlers{
		Auth:                  manager,
		Credentials:           auth.NewStaticCredentials(auth.StaticUser{Identity: adminID, PasswordHash: string(hash)}),
		Attempts:              auth.NewMemoryAttempts(time.Minute, now),
		LoginFailureThreshold: 3,
		Audit:                 audit.NewRecorder(log, store),
		AuditReader:           store,
		Partners:              src,
		Statements: settlement.NewService(src,
			settlement.WithClock(now),
			settlement.WithNumberGenerator(settlement.NewNumberGenerator(now, func(int) int { return 123 })),
		),
		Reports: reporting.NewService(src).WithClock(now),
		Exports: NewLocalExportLimiter(2),
		Now:     now,
	}

	r := gin.New()
	r.Use(logger.Middleware(log))
	h.Register(r)

	return &testEnv{router: r, store: store, manager: manager, h: h}
}

func (e *testEnv) token(t *testing.T, id auth.Identity) string {
	t.Helper()
	pair, err := e.manager.IssuePair(time.Now(), id)
	require.NoError(t, err)
	return pair.AccessToken
}

func (e *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("X-Request-Id", "req-test")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) entries(typ audit.EventType) []audit.Entry {
	var out []audit.Entry
	for _, en := range e.store.Entries() {
		if en.EventType == typ {
			out = append(out, en)
		}
	}
	return out
}

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/v1/auth/login", "", `{"email":"OPS@dailyevent.example","password":"correct horse"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	claims, err := env.manager.Verify(pair.AccessToken, auth.TokenTypeAccess, env.h.now())
	require.NoError(t, err)
	assert.Equal(t, "adm-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	logins := env.entries(audit.EventType(audit.UserLogin))
	require.Len(t, logins, 1)
	assert.True(t, logins[0].Success)
	assert.Equal(t, "adm-1", logins[0].UserID)
	assert.Equal(t, "admin", logins[0].UserRole)
	assert.Equal(t, "req-test", logins[0].RequestID)
}

func TestLogin_RepeatedFailuresRecordBruteForce(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 3; i++ {
		w := env.do(http.MethodPost, "/v1/auth/login", "", `{"email":"ops@dailyevent.example","password":"wrong"}`)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	failed := env.entries(audit.EventType(audit.LoginFailed))
	require.Len(t, failed, 3)
	assert.False(t, failed[0].Success)
	assert.Equal(t, "invalid credentials", failed[0].ErrorMessage)

	brute := env.entries(audit.EventType(audit.BruteForceDetected))
	require.Len(t, brute, 1)
	assert.Equal(t, audit.CategorySecurity, brute[0].Category)
	assert.Equal(t, "ops@dailyevent.example", brute[0].UserEmail)
}

func TestLogin_BadInput(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPost, "/v1/auth/login", "", `{`).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPost, "/v1/auth/login", "", `{"email":"a@b.c"}`).Code)
	assert.Empty(t, env.store.Entries())
}

func TestAdminExport_CSVAndAudit(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/v1/admin/export?type=policies&period=30d", env.token(t, adminID), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "policies-export-2024-07-10.csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "Policy Number,"))

	exported := env.entries(audit.EventType(audit.DataExported))
	require.Len(t, exported, 1)
	e := exported[0]
	assert.Equal(t, audit.CategoryDataAccess, e.Category)
	assert.Equal(t, "adm-1", e.UserID)
	assert.Equal(t, "req-test", e.RequestID)
	assert.True(t, e.PIIAccessed)
	assert.Equal(t, 4, e.Details["recordCount"])
}

func TestAdminExport_Errors(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, adminID)

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/v1/admin/export?type=bogus", admin, "").Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/v1/admin/export", "", "").Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, "/v1/admin/export", env.token(t, partnerID), "").Code)
	assert.Empty(t, env.entries(audit.EventType(audit.DataExported)))
}

func TestAdminExport_ConcurrencyCapRejects(t *testing.T) {
	env := newTestEnv(t)
	limiter := &stubLimiter{allow: false}
	env.h.Exports = limiter

	w := env.do(http.MethodGet, "/v1/admin/export?type=summary", env.token(t, adminID), "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Zero(t, limiter.released)

	limited := env.entries(audit.EventType(audit.RateLimitExceeded))
	require.Len(t, limited, 1)
	assert.False(t, limited[0].Success)
	assert.Equal(t, "/v1/admin/export", limited[0].Details["endpoint"])

	limiter.allow = true
	w = env.do(http.MethodGet, "/v1/admin/export?type=summary", env.token(t, adminID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, limiter.released)
}

func TestAdminExport_ReleasesSlotAfterClientDisconnect(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter := &stubLimiter{allow: true, onAcquire: cancel}
	env.h.Exports = limiter

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/export?type=summary", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+env.token(t, adminID))
	env.router.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, limiter.released)
	assert.NoError(t, limiter.releaseErr)
}

func TestAdminStatement_CSV(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet,
		"/v1/admin/partners/prt-001-adventure/statements?format=csv&start=2024-06-01&end=2024-06-30",
		env.token(t, adminID), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "statement-STM-20240710-00123.csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "SETTLEMENT STATEMENT"))
	assert.Contains(t, w.Body.String(), "STM-20240710-00123")

	reports := env.entries(audit.EventType(audit.ReportGenerated))
	require.Len(t, reports, 1)
	assert.Equal(t, "prt-001-adventure", reports[0].PartnerID)
	assert.Equal(t, "STM-20240710-00123", reports[0].ResourceID)
	assert.Equal(t, "csv", reports[0].Details["format"])
}

func TestAdminStatement_Errors(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, adminID)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"unknown partner", "/v1/admin/partners/prt-404/statements", http.StatusNotFound},
		{"bad format", "/v1/admin/partners/prt-001-adventure/statements?format=docx", http.StatusBadRequest},
		{"half period", "/v1/admin/partners/prt-001-adventure/statements?start=2024-06-01", http.StatusBadRequest},
		{"bad date", "/v1/admin/partners/prt-001-adventure/statements?start=June&end=2024-06-30", http.StatusBadRequest},
		{"end before start", "/v1/admin/partners/prt-001-adventure/statements?start=2024-06-30&end=2024-06-01", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, env.do(http.MethodGet, tt.path, admin, "").Code)
		})
	}
	assert.Empty(t, env.entries(audit.EventType(audit.ReportGenerated)))
}

func TestPartnerStatement_DefaultsToPreviousMonth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/v1/partner/statements", env.token(t, partnerID), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	body := w.Body.String()
	assert.Contains(t, body, "Adventure Sports Inc")
	assert.Contains(t, body, "June 1, 2024 - June 30, 2024")

	reports := env.entries(audit.EventType(audit.ReportGenerated))
	require.Len(t, reports, 1)
	assert.Equal(t, "usr-7", reports[0].UserID)
	assert.Equal(t, "partner", reports[0].UserRole)
}

func TestPartnerStatement_RoleScoping(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/v1/partner/statements", env.token(t, adminID), "").Code)
	assert.Equal(t, http.StatusForbidden,
		env.do(http.MethodGet, "/v1/admin/partners/prt-002-mountain/statements", env.token(t, partnerID), "").Code)
}

func TestPartnerStatusChanges(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, adminID)

	w := env.do(http.MethodPost, "/v1/admin/partners/prt-003-citymarathon/approve", admin, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var p datasource.Partner
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, datasource.PartnerActive, p.Status)

	approved := env.entries(audit.EventType(audit.PartnerApproved))
	require.Len(t, approved, 1)
	assert.Equal(t, "Partner City Marathon Events approved by adm-1", approved[0].Description)

	assert.Equal(t, http.StatusBadRequest,
		env.do(http.MethodPost, "/v1/admin/partners/prt-002-mountain/suspend", admin, `{"reason":"  "}`).Code)
	assert.Equal(t, http.StatusNotFound,
		env.do(http.MethodPost, "/v1/admin/partners/prt-404/suspend", admin, `{"reason":"fraud review"}`).Code)

	w = env.do(http.MethodPost, "/v1/admin/partners/prt-002-mountain/suspend", admin, `{"reason":"fraud review"}`)
	require.Equal(t, http.StatusOK, w.Code)
	suspended := env.entries(audit.EventType(audit.PartnerSuspended))
	require.Len(t, suspended, 1)
	assert.Equal(t, "fraud review", suspended[0].Details["reason"])
}

func TestPartnerStatusChanges_ReadOnlySource(t *testing.T) {
	env := newTestEnv(t)
	env.h.Partners = nil
	w := env.do(http.MethodPost, "/v1/admin/partners/prt-003-citymarathon/approve", env.token(t, adminID), "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestAuditLog(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, adminID)
	env.do(http.MethodPost, "/v1/admin/partners/prt-003-citymarathon/approve", admin, "")
	env.do(http.MethodGet, "/v1/admin/export?type=summary", admin, "")

	w := env.do(http.MethodGet, "/v1/admin/audit?category=partner", env.token(t, supportID), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Entries []audit.Entry `json:"entries"`
		Count   int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, audit.EventType(audit.PartnerApproved), resp.Entries[0].EventType)

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/v1/admin/audit?category=nope", admin, "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/v1/admin/audit?limit=x", admin, "").Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, "/v1/admin/audit", env.token(t, partnerID), "").Code)

	env.h.AuditReader = nil
	assert.Equal(t, http.StatusNotImplemented, env.do(http.MethodGet, "/v1/admin/audit", admin, "").Code)
}

func TestStatementPeriod(t *testing.T) {
	now := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)

	start, end, err := statementPeriod("", "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), end)

	start, end, err = statementPeriod("2024-01-01", "2024-01-31", now)
	require.NoError(t, err)
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, 31, end.Day())

	_, _, err = statementPeriod("", "2024-01-31", now)
	assert.Error(t, err)
}
