// Package chi exposes the ranking services over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/studymate/matchd/internal/domain"
	healthuc "github.com/studymate/matchd/internal/usecase/health"
	partneruc "github.com/studymate/matchd/internal/usecase/partner"
	recommenduc "github.com/studymate/matchd/internal/usecase/recommend"
)

// Error codes returned in the error envelope.
const (
	codeInvalidUserID    = "invalid_user_id"
	codeInvalidStudyTime = "invalid_study_time"
	codeInvalidTeamPref  = "invalid_team_pref"
	codeUserNotFound     = "user_not_found"
	codeBadRequest       = "bad_request"
	codeInternalError    = "internal_error"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the ranking API.
type Server struct {
	partners      *partneruc.Service
	recommender   *recommenduc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	partners *partneruc.Service,
	recommender *recommenduc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		partners:    partners,
		recommender: recommender,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidUserID, http.StatusBadRequest, codeInvalidUserID),
		sentinelHandler(domain.ErrInvalidStudyTime, http.StatusBadRequest, codeInvalidStudyTime),
		sentinelHandler(domain.ErrInvalidTeamPref, http.StatusBadRequest, codeInvalidTeamPref),
		sentinelHandler(domain.ErrUserNotFound, http.StatusNotFound, codeUserNotFound),
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/v1/partners/search", s.FindPartners)
	r.Get("/api/v1/posts/recommendations", s.RecommendPosts)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// candidateResponse is the public projection of a matched user. Email and
// anything credential-adjacent never leave the service.
type candidateResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Username      string   `json:"username,omitempty"`
	AvatarID      string   `json:"avatar_id,omitempty"`
	Bio           string   `json:"bio,omitempty"`
	Domains       []string `json:"domains,omitempty"`
	LearningStyle string   `json:"learning_style,omitempty"`
	StudyTime     string   `json:"study_time,omitempty"`
	TeamPref      string   `json:"team_pref,omitempty"`
}

// matchResponse flattens the candidate fields alongside score and reasons.
type matchResponse struct {
	candidateResponse
	Score   int      `json:"score"`
	Reasons []string `json:"reasons,omitempty"`
}

type matchListResponse struct {
	Matches []matchResponse `json:"matches"`
	Total   int             `json:"total"`
}

// FindPartners handles GET /api/v1/partners/search.
func (s *Server) FindPartners(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := partneruc.Query{
		UserID:    q.Get("user_id"),
		Domains:   q["domain"],
		StudyTime: q.Get("study_time"),
		TeamPref:  q.Get("team_pref"),
	}
	if query.UserID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "user_id is required")
		return
	}

	matches, err := s.partners.FindPartners(r.Context(), query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]matchResponse, len(matches))
	for i, m := range matches {
		items[i] = matchResponse{
			candidateResponse: candidateToResponse(m.User),
			Score:             m.Score,
			Reasons:           m.Reasons,
		}
	}

	writeJSON(w, http.StatusOK, matchListResponse{Matches: items, Total: len(items)})
}

type postResponse struct {
	ID        string                `json:"id"`
	Author    recommenduc.Author    `json:"author"`
	Title     string                `json:"title"`
	Summary   string                `json:"summary,omitempty"`
	Tags      []string              `json:"tags,omitempty"`
	Likes     []string              `json:"likes,omitempty"`
	CreatedAt string                `json:"created_at,omitempty"`
	Score     int                   `json:"score"`
	Breakdown recommenduc.Breakdown `json:"score_breakdown"`
}

type postListResponse struct {
	Recommended []postResponse `json:"recommended"`
	Total       int            `json:"total"`
}

// RecommendPosts handles GET /api/v1/posts/recommendations.
func (s *Server) RecommendPosts(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "user_id is required")
		return
	}

	recs, err := s.recommender.Recommend(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]postResponse, len(recs))
	for i, rec := range recs {
		items[i] = recommendationToResponse(rec)
	}

	writeJSON(w, http.StatusOK, postListResponse{Recommended: items, Total: len(items)})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func candidateToResponse(u domain.User) candidateResponse {
	return candidateResponse{
		ID:            u.ID,
		Name:          u.Name,
		Username:      u.Username,
		AvatarID:      u.AvatarID,
		Bio:           u.Bio,
		Domains:       u.Domains,
		LearningStyle: u.LearningStyle,
		StudyTime:     string(u.StudyTime),
		TeamPref:      string(u.TeamPref),
	}
}

func recommendationToResponse(rec recommenduc.Recommendation) postResponse {
	resp := postResponse{
		ID:        rec.Post.ID,
		Author:    rec.Author,
		Title:     rec.Post.Title,
		Summary:   rec.Post.Summary,
		Tags:      rec.Post.Tags,
		Likes:     rec.Post.Likes,
		Score:     rec.Score,
		Breakdown: rec.Breakdown,
	}
	if !rec.Post.CreatedAt.IsZero() {
		resp.CreatedAt = rec.Post.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidUserID,
		domain.ErrInvalidStudyTime,
		domain.ErrInvalidTeamPref,
		domain.ErrUserNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
