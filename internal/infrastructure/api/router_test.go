package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/basak2005/Google-workspace-Integration/internal/application"
	"github.com/basak2005/Google-workspace-Integration/internal/application/services"
	"github.com/basak2005/Google-workspace-Integration/internal/domain"
)

type memoryStore struct {
	mu      sync.Mutex
	records map[string]*domain.CredentialRecord
}

func (s *memoryStore) Save(_ context.Context, rec *domain.CredentialRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.SessionID] = rec.Clone()
	return nil
}

func (s *memoryStore) Load(_ context.Context, identity string) (*domain.CredentialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[identity].Clone(), nil
}

func (s *memoryStore) Delete(_ context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, identity)
	return nil
}

func (s *memoryStore) ListIdentities(_ context.Context) ([]domain.SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.SessionInfo{}
	for id := range s.records {
		out = append(out, domain.SessionInfo{SessionID: id})
	}
	return out, nil
}

type stubProvider struct{}

func (stubProvider) AuthCodeURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + url.QueryEscape(state)
}

func (stubProvider) Exchange(_ context.Context, code string) (*domain.CredentialRecord, error) {
	exp := time.Now().Add(time.Hour)
	return &domain.CredentialRecord{
		AccessToken:  "token-for-" + code,
		RefreshToken: "refresh-token",
		ExpiresAt:    &exp,
	}, nil
}

func (stubProvider) Refresh(_ context.Context, rec *domain.CredentialRecord) (*domain.CredentialRecord, error) {
	updated := rec.Clone()
	exp := time.Now().Add(time.Hour)
	updated.ExpiresAt = &exp
	return updated, nil
}

func newTestRouter(t *testing.T, adminToken string) (http.Handler, *application.CredentialManager) {
	t.Helper()
	logger := zerolog.Nop()
	store := &memoryStore{records: make(map[string]*domain.CredentialRecord)}
	provider := stubProvider{}

	manager := application.NewCredentialManager(store, provider, logger)
	flow := application.NewOAuthFlowController(manager, provider, "http://localhost:5173", logger)

	router := NewRouter(Deps{
		Auth:               NewAuthHandler(flow, manager, adminToken, logger),
		Calendar:           NewCalendarHandler(services.NewCalendarService(logger), manager, logger),
		Tasks:              NewTasksHandler(services.NewTasksService(logger), manager, logger),
		Gmail:              NewGmailHandler(services.NewGmailService(logger), manager, logger),
		Drive:              NewDriveHandler(services.NewDriveService(logger), manager, logger),
		Contacts:           NewContactsHandler(services.NewContactsService(logger), manager, logger),
		Sheets:             NewSheetsHandler(services.NewSheetsService(logger), manager, logger),
		YouTube:            NewYouTubeHandler(services.NewYouTubeService(logger), manager, logger),
		Photos:             NewPhotosHandler(services.NewPhotosService(logger), manager, logger),
		User:               NewUserHandler(services.NewUserService(logger), services.NewMapsService("", logger), manager, logger),
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		Logger:             logger,
	})
	return router, manager
}

func decodeBodyMap(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, "")

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "ok", decodeBodyMap(t, res)["status"])
}

func TestLoginWithoutRedirectReturnsAuthURLAndIdentity(t *testing.T) {
	router, _ := newTestRouter(t, "")

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/auth/login?redirect=false", nil))

	require.Equal(t, http.StatusOK, res.Code)
	body := decodeBodyMap(t, res)
	sessionID, _ := body["session_id"].(string)
	authURL, _ := body["auth_url"].(string)
	require.Len(t, sessionID, 64)
	require.Contains(t, authURL, "state="+sessionID)
}

func TestLoginRedirectsToProvider(t *testing.T) {
	router, _ := newTestRouter(t, "")

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	require.Equal(t, http.StatusFound, res.Code)
	require.Contains(t, res.Header().Get("Location"), "accounts.google.com")
}

func TestCallbackStoresCredentialAndSetsCookie(t *testing.T) {
	router, manager := newTestRouter(t, "")

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/auth/callback?code=the-code&state=the-identity", nil))

	require.Equal(t, http.StatusFound, res.Code)
	require.Contains(t, res.Header().Get("Location"), "session_id=the-identity")

	cookies := res.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, domain.SessionCookieName, cookies[0].Name)
	require.Equal(t, "the-identity", cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)

	rec, err := manager.Get(context.Background(), "the-identity")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, "token-for-the-code", rec.AccessToken)
}

func TestCallbackWithoutCodeFails(t *testing.T) {
	router, _ := newTestRouter(t, "")

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/auth/callback?state=x", nil))

	require.Equal(t, http.StatusBadGateway, res.Code)
}

func TestStatusReflectsAuthentication(t *testing.T) {
	router, _ := newTestRouter(t, "")

	// Anonymous.
	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/auth/status", nil))
	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, false, decodeBodyMap(t, res)["authenticated"])

	// Complete a flow, then check with the Bearer header.
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/auth/callback?code=c&state=sess1", nil))

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.Header.Set("Authorization", "Bearer sess1")
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, true, decodeBodyMap(t, res)["authenticated"])
}

func TestUnknownSessionGetsLoginHint(t *testing.T) {
	router, _ := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/calendar/events", nil)
	req.Header.Set("Authorization", "Bearer wrong-identity")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
	body := decodeBodyMap(t, res)
	require.Contains(t, body["hint"], "/auth/login")
}

func TestAnonymousProductRequestIsRejected(t *testing.T) {
	router, _ := newTestRouter(t, "")

	for _, path := range []string{"/gmail/messages", "/drive/files", "/tasks/lists", "/user/me"} {
		res := httptest.NewRecorder()
		router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusUnauthorized, res.Code, path)
	}
}

func TestLogoutRemovesSession(t *testing.T) {
	router, manager := newTestRouter(t, "")
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/auth/callback?code=c&state=sess1", nil))

	req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer sess1")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)

	rec, err := manager.Get(context.Background(), "sess1")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestLogoutUnknownSessionSucceeds(t *testing.T) {
	router, _ := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer never-existed")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
}

func TestListUsersRequiresAdminToken(t *testing.T) {
	router, _ := newTestRouter(t, "secret-admin")

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/auth/users", nil))
	require.Equal(t, http.StatusForbidden, res.Code)

	req := httptest.NewRequest(http.MethodGet, "/auth/users", nil)
	req.Header.Set("X-Admin-Token", "secret-admin")
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)
}

func TestListUsersDisabledWithoutConfiguredToken(t *testing.T) {
	router, _ := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/auth/users", nil)
	req.Header.Set("X-Admin-Token", "")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusForbidden, res.Code)
}

func TestAssistantUnavailableWithoutSummarizer(t *testing.T) {
	router, _ := newTestRouter(t, "")
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/auth/callback?code=c&state=sess1", nil))

	req := httptest.NewRequest(http.MethodGet, "/assistant/daily-summary", nil)
	req.Header.Set("Authorization", "Bearer sess1")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusServiceUnavailable, res.Code)
}

func TestGeocodeUnavailableWithoutAPIKey(t *testing.T) {
	router, _ := newTestRouter(t, "")
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/auth/callback?code=c&state=sess1", nil))

	req := httptest.NewRequest(http.MethodGet, "/maps/geocode?address=berlin", nil)
	req.Header.Set("Authorization", "Bearer sess1")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusServiceUnavailable, res.Code)
}
