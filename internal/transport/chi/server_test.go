package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chiv5 "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/studymate/matchd/internal/domain"
	healthuc "github.com/studymate/matchd/internal/usecase/health"
	partneruc "github.com/studymate/matchd/internal/usecase/partner"
	recommenduc "github.com/studymate/matchd/internal/usecase/recommend"
)

const (
	testUserID   = "6f1c2b9a-0f6d-4a37-9a34-5f3f6a2d8c01"
	testAuthorID = "9b7e4c11-2d58-4f0b-8a3c-1e9d6b5a7f02"
)

// --- Mocks ---

type mockUsers struct {
	user       domain.User
	getErr     error
	candidates []domain.User
	authors    []domain.User
}

func (m *mockUsers) GetUser(_ context.Context, id string) (domain.User, error) {
	if m.getErr != nil {
		return domain.User{}, m.getErr
	}
	u := m.user
	u.ID = id
	return u, nil
}

func (m *mockUsers) ListCandidates(_ context.Context, _ string) ([]domain.User, error) {
	return m.candidates, nil
}

func (m *mockUsers) GetUsersByIDs(_ context.Context, _ []string) ([]domain.User, error) {
	return m.authors, nil
}

type mockPosts struct {
	posts []domain.Post
}

func (m *mockPosts) ListPosts(_ context.Context) ([]domain.Post, error) {
	return m.posts, nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func newTestRouter(t *testing.T, users *mockUsers, posts *mockPosts, pinger *mockPinger) http.Handler {
	t.Helper()

	srv := NewServer(
		partneruc.New(users),
		recommenduc.New(users, posts),
		healthuc.New(pinger),
		zap.NewNop(),
	)
	r := chiv5.NewRouter()
	srv.Routes(r)
	return r
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("GET", target, http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// --- Tests ---

func TestFindPartners_OK(t *testing.T) {
	users := &mockUsers{
		user: domain.User{Domains: []string{"web"}},
		candidates: []domain.User{
			{ID: "c1", Name: "Ada", Email: "ada@example.com", Domains: []string{"web"}, Bio: "hi"},
		},
	}
	router := newTestRouter(t, users, &mockPosts{}, &mockPinger{})

	rr := doGet(t, router, "/api/v1/partners/search?user_id="+testUserID)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp matchListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Matches) != 1 {
		t.Fatalf("expected 1 match, got %+v", resp)
	}
	if resp.Matches[0].Name != "Ada" {
		t.Errorf("unexpected candidate: %+v", resp.Matches[0])
	}
	// 100 skill + 5 bio
	if resp.Matches[0].Score != 105 {
		t.Errorf("expected score 105, got %d", resp.Matches[0].Score)
	}
}

func TestFindPartners_EmailNeverSerialized(t *testing.T) {
	users := &mockUsers{
		candidates: []domain.User{
			{ID: "c1", Name: "Ada", Email: "ada@example.com"},
		},
	}
	router := newTestRouter(t, users, &mockPosts{}, &mockPinger{})

	rr := doGet(t, router, "/api/v1/partners/search?user_id="+testUserID)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var raw map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&raw); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	items := raw["matches"].([]any)
	match := items[0].(map[string]any)
	if _, ok := match["email"]; ok {
		t.Error("email leaked into candidate response")
	}
	if match["name"] != "Ada" {
		t.Errorf("candidate fields not flattened into match: %+v", match)
	}
}

func TestFindPartners_QueryOverrides(t *testing.T) {
	users := &mockUsers{
		candidates: []domain.User{
			{ID: "c1", Name: "Ada", Domains: []string{"ai"}, StudyTime: domain.Morning},
		},
	}
	router := newTestRouter(t, users, &mockPosts{}, &mockPinger{})

	rr := doGet(t, router,
		"/api/v1/partners/search?user_id="+testUserID+"&domain=ai&study_time=morning")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp matchListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// 100 skill + 50 time
	if resp.Matches[0].Score != 150 {
		t.Errorf("expected score 150 with overrides, got %d", resp.Matches[0].Score)
	}
}

func TestFindPartners_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		getErr     error
		wantStatus int
		wantCode   string
	}{
		{"missing user_id", "/api/v1/partners/search", nil, http.StatusBadRequest, codeBadRequest},
		{"malformed user_id", "/api/v1/partners/search?user_id=zzz", nil,
			http.StatusBadRequest, codeInvalidUserID},
		{"bad study_time", "/api/v1/partners/search?user_id=" + testUserID + "&study_time=noon", nil,
			http.StatusBadRequest, codeInvalidStudyTime},
		{"bad team_pref", "/api/v1/partners/search?user_id=" + testUserID + "&team_pref=pair", nil,
			http.StatusBadRequest, codeInvalidTeamPref},
		{"unknown user", "/api/v1/partners/search?user_id=" + testUserID, domain.ErrUserNotFound,
			http.StatusNotFound, codeUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mockUsers{getErr: tt.getErr}
			router := newTestRouter(t, users, &mockPosts{}, &mockPinger{})

			rr := doGet(t, router, tt.target)
			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}

			var errResp errorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if errResp.Code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, errResp.Code)
			}
		})
	}
}

func TestFindPartners_InternalErrorIsOpaque(t *testing.T) {
	users := &mockUsers{getErr: context.DeadlineExceeded}
	router := newTestRouter(t, users, &mockPosts{}, &mockPinger{})

	rr := doGet(t, router, "/api/v1/partners/search?user_id="+testUserID)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != codeInternalError || errResp.Message != "internal error" {
		t.Errorf("internal details leaked: %+v", errResp)
	}
}

func TestRecommendPosts_OK(t *testing.T) {
	users := &mockUsers{
		user:    domain.User{Domains: []string{"ai"}},
		authors: []domain.User{{ID: testAuthorID, Name: "Grace", AvatarID: "3"}},
	}
	posts := &mockPosts{posts: []domain.Post{{
		ID:        "p1",
		AuthorID:  testAuthorID,
		Title:     "Transformers from scratch",
		Tags:      []string{"ai"},
		Likes:     []string{"a", "b", "c"},
		CreatedAt: time.Now().UTC(),
	}}}
	router := newTestRouter(t, users, posts, &mockPinger{})

	rr := doGet(t, router, "/api/v1/posts/recommendations?user_id="+testUserID)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp postListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected 1 recommendation, got %d", resp.Total)
	}

	item := resp.Recommended[0]
	if item.Author.Name != "Grace" || item.Author.AvatarID != "3" {
		t.Errorf("unexpected author: %+v", item.Author)
	}
	if len(item.Likes) != 3 {
		t.Errorf("expected 3 likes, got %d", len(item.Likes))
	}
	// 1500 exact + 6 popularity, same-day post
	if item.Score != 1506 {
		t.Errorf("expected score 1506, got %d", item.Score)
	}
	if item.Breakdown.Relevance != 1500 {
		t.Errorf("expected relevance 1500, got %d", item.Breakdown.Relevance)
	}
	if item.CreatedAt == "" {
		t.Error("expected created_at to be set")
	}
}

func TestRecommendPosts_MissingUserID(t *testing.T) {
	router := newTestRouter(t, &mockUsers{}, &mockPosts{}, &mockPinger{})

	rr := doGet(t, router, "/api/v1/posts/recommendations")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestRecommendPosts_UnknownAuthorFallsBack(t *testing.T) {
	users := &mockUsers{}
	posts := &mockPosts{posts: []domain.Post{{
		ID:        "p1",
		AuthorID:  testAuthorID,
		Title:     "orphaned",
		Tags:      []string{"ai"},
		CreatedAt: time.Now().UTC(),
	}}}
	router := newTestRouter(t, users, posts, &mockPinger{})

	rr := doGet(t, router, "/api/v1/posts/recommendations?user_id="+testUserID)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp postListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	author := resp.Recommended[0].Author
	if author.Name != "Unknown User" || author.AvatarID != "0" {
		t.Errorf("expected fallback author, got %+v", author)
	}
}

func TestHealthCheck_OK(t *testing.T) {
	router := newTestRouter(t, &mockUsers{}, &mockPosts{}, &mockPinger{})

	rr := doGet(t, router, "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" || resp.Checks["database"] != "ok" {
		t.Errorf("unexpected health report: %+v", resp)
	}
}

func TestHealthCheck_Degraded503(t *testing.T) {
	router := newTestRouter(t, &mockUsers{}, &mockPosts{}, &mockPinger{err: context.DeadlineExceeded})

	rr := doGet(t, router, "/health")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}
