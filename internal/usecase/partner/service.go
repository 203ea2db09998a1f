// Package partner ranks study-partner candidates against a searcher's
// expanded skill set, study time, and team preference.
package partner

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/studymate/matchd/internal/domain"
	"github.com/studymate/matchd/internal/domain/rank"
	"github.com/studymate/matchd/internal/domain/taxonomy"
	"github.com/studymate/matchd/internal/logger"
)

// Scoring weights. Skill overlap dominates; the rest are tie-shapers.
const (
	skillMatchPoints   = 100 // per matching skill
	timeMatchPoints    = 50
	flexibleTimePoints = 10 // searcher is flexible, candidate has any slot
	teamMatchPoints    = 30
	bioPoints          = 5
)

const defaultLimit = 50

// Query describes one partner search. Overrides, when set, replace the
// corresponding field of the searcher's own profile.
type Query struct {
	UserID    string
	Domains   []string // override; empty = use profile domains
	StudyTime string   // override; "" = use profile study time
	TeamPref  string   // override; "" = use profile team preference
}

// Match is one ranked candidate with its score explanation.
type Match struct {
	User    domain.User
	Score   int
	Reasons []string
}

// Service ranks partner candidates. Stateless per request: the only shared
// state is the read-only taxonomy.
type Service struct {
	users    Directory
	limit    int
	scored   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a partner search service.
func New(users Directory) *Service {
	return &Service{users: users, limit: defaultLimit}
}

// WithLimit overrides the maximum number of matches returned.
func (s *Service) WithLimit(limit int) *Service {
	if limit > 0 {
		s.limit = limit
	}
	return s
}

// WithMetrics attaches a counter incremented per scored candidate and a
// histogram observing per-search duration.
func (s *Service) WithMetrics(scored *prometheus.CounterVec, duration *prometheus.HistogramVec) *Service {
	s.scored = scored
	s.duration = duration
	return s
}

// FindPartners scores every other user against the searcher's criteria and
// returns the top matches, best first. Every candidate is retained regardless
// of score — ranking, not exclusion, decides what surfaces.
func (s *Service) FindPartners(ctx context.Context, q Query) ([]Match, error) {
	if s.duration != nil {
		timer := prometheus.NewTimer(s.duration.WithLabelValues("partner"))
		defer timer.ObserveDuration()
	}

	if _, err := uuid.Parse(q.UserID); err != nil {
		return nil, fmt.Errorf("parse user id %q: %w", q.UserID, domain.ErrInvalidUserID)
	}

	searchTime := strings.ToLower(strings.TrimSpace(q.StudyTime))
	if searchTime != "" && !domain.StudyTime(searchTime).IsValid() {
		return nil, fmt.Errorf("study time %q: %w", q.StudyTime, domain.ErrInvalidStudyTime)
	}
	searchTeam := strings.ToLower(strings.TrimSpace(q.TeamPref))
	if searchTeam != "" && !domain.TeamPref(searchTeam).IsValid() {
		return nil, fmt.Errorf("team preference %q: %w", q.TeamPref, domain.ErrInvalidTeamPref)
	}

	searcher, err := s.users.GetUser(ctx, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetch searcher: %w", err)
	}

	// Overrides win; otherwise the searcher's own profile drives the search.
	if searchTime == "" {
		searchTime = string(searcher.StudyTime)
	}
	if searchTeam == "" {
		searchTeam = string(searcher.TeamPref)
	}
	searchDomains := q.Domains
	if len(searchDomains) == 0 {
		searchDomains = searcher.Domains
	}

	targetSkills := taxonomy.ExpandQuery(searchDomains)

	candidates, err := s.users.ListCandidates(ctx, searcher.ID)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	scored := make([]rank.Scored[Match], 0, len(candidates))
	for _, cand := range candidates {
		score, reasons := scoreCandidate(targetSkills, searchTime, searchTeam, cand)
		scored = append(scored, rank.Scored[Match]{
			Item:  Match{User: cand, Reasons: reasons},
			Score: score,
		})
	}

	if s.scored != nil {
		s.scored.WithLabelValues("partner").Add(float64(len(scored)))
	}

	logger.FromContext(ctx).Debug("partner candidates scored",
		zap.Int("candidates", len(scored)),
		zap.Int("expanded_skills", len(targetSkills)),
	)

	top := rank.Top(scored, s.limit)

	matches := make([]Match, len(top))
	for i, sc := range top {
		sc.Item.Score = sc.Score
		matches[i] = sc.Item
	}
	return matches, nil
}

// scoreCandidate computes the additive compatibility score. All branches are
// evaluated; there is no reject path, only lower scores.
func scoreCandidate(targetSkills map[string]struct{}, searchTime, searchTeam string, cand domain.User) (int, []string) {
	score := 0
	var reasons []string

	candDomains := make(map[string]struct{}, len(cand.Domains))
	for _, d := range cand.Domains {
		candDomains[taxonomy.Normalize(d)] = struct{}{}
	}
	matches := 0
	for d := range candDomains {
		if _, ok := targetSkills[d]; ok {
			matches++
		}
	}
	if matches > 0 {
		score += matches * skillMatchPoints
		reasons = append(reasons, fmt.Sprintf("%d skill match(es)", matches))
	}

	if searchTime != "" && cand.StudyTime != "" {
		switch {
		case strings.EqualFold(string(cand.StudyTime), searchTime):
			score += timeMatchPoints
			reasons = append(reasons, "study time match")
		case searchTime == string(domain.Flexible):
			score += flexibleTimePoints
		}
	}

	if searchTeam != "" && cand.TeamPref != "" && strings.EqualFold(string(cand.TeamPref), searchTeam) {
		score += teamMatchPoints
		reasons = append(reasons, searchTeam+" preference match")
	}

	if cand.Bio != "" {
		score += bioPoints
	}

	return score, reasons
}
