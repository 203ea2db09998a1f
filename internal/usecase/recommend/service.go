// Package recommend ranks content posts against a user's expanded interest
// keywords, combined with popularity and freshness signals.
package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/studymate/matchd/internal/domain"
	"github.com/studymate/matchd/internal/domain/rank"
	"github.com/studymate/matchd/internal/domain/taxonomy"
	"github.com/studymate/matchd/internal/logger"
)

// Per-tag relevance tiers, strict priority: once a tier matches, lower tiers
// are skipped for that tag.
const (
	exactMatchPoints    = 1500 // tag is one of the user's literal domains
	semanticMatchPoints = 800  // tag is in the expanded keyword set
	fuzzyMatchPoints    = 200  // substring overlap, first keyword wins

	// minFuzzyLen guards the substring tier against short tokens
	// ("ai" inside "said"). Both sides must exceed it.
	minFuzzyLen = 2

	likePoints       = 2
	popularityCap    = 500 // virality cannot dominate relevance
	agePenaltyPerDay = 10
	untaggedPenalty  = 500
)

const defaultLimit = 30

// Breakdown itemizes a recommendation score for client transparency.
type Breakdown struct {
	Relevance  int `json:"relevance"`
	Popularity int `json:"popularity"`
	AgePenalty int `json:"age_penalty"`
}

// Author is the display projection of a post's author.
type Author struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	AvatarID string `json:"avatar_id"`
}

// Recommendation is one ranked post with its resolved author and score.
type Recommendation struct {
	Post      domain.Post
	Author    Author
	Score     int
	Breakdown Breakdown
}

// Service ranks posts for a user. Stateless per request.
type Service struct {
	users    UserSource
	posts    PostSource
	limit    int
	now      func() time.Time
	scored   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a post recommendation service.
func New(users UserSource, posts PostSource) *Service {
	return &Service{users: users, posts: posts, limit: defaultLimit, now: time.Now}
}

// WithLimit overrides the maximum number of recommendations returned.
func (s *Service) WithLimit(limit int) *Service {
	if limit > 0 {
		s.limit = limit
	}
	return s
}

// WithClock overrides the freshness clock (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithMetrics attaches a counter incremented per scored post and a histogram
// observing per-request duration.
func (s *Service) WithMetrics(scored *prometheus.CounterVec, duration *prometheus.HistogramVec) *Service {
	s.scored = scored
	s.duration = duration
	return s
}

// Recommend scores every post against the user's interests and returns the
// top recommendations, best first, with authors resolved in a single batched
// lookup across the surviving page.
func (s *Service) Recommend(ctx context.Context, userID string) ([]Recommendation, error) {
	if s.duration != nil {
		timer := prometheus.NewTimer(s.duration.WithLabelValues("post"))
		defer timer.ObserveDuration()
	}

	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("parse user id %q: %w", userID, domain.ErrInvalidUserID)
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	rawDomains := make(map[string]struct{}, len(user.Domains))
	for _, d := range user.Domains {
		rawDomains[taxonomy.Normalize(d)] = struct{}{}
	}
	keywords := taxonomy.ExpandDomains(user.Domains)

	posts, err := s.posts.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	now := s.now()
	scored := make([]rank.Scored[Recommendation], 0, len(posts))
	for _, post := range posts {
		breakdown := scorePost(keywords, rawDomains, post, now)
		total := breakdown.Relevance + breakdown.Popularity - breakdown.AgePenalty
		if len(post.Tags) == 0 {
			total -= untaggedPenalty
		}
		scored = append(scored, rank.Scored[Recommendation]{
			Item:  Recommendation{Post: post, Breakdown: breakdown},
			Score: total,
		})
	}

	if s.scored != nil {
		s.scored.WithLabelValues("post").Add(float64(len(scored)))
	}

	logger.FromContext(ctx).Debug("posts scored",
		zap.Int("posts", len(scored)),
		zap.Int("expanded_keywords", len(keywords)),
	)

	top := rank.Top(scored, s.limit)

	authors, err := s.resolveAuthors(ctx, top)
	if err != nil {
		return nil, err
	}

	out := make([]Recommendation, len(top))
	for i, sc := range top {
		rec := sc.Item
		rec.Score = sc.Score
		rec.Author = authors[rec.Post.AuthorID]
		out[i] = rec
	}
	return out, nil
}

// resolveAuthors fetches the distinct authors of the surviving page in one
// collaborator call. Unresolved references degrade to a sentinel author.
func (s *Service) resolveAuthors(ctx context.Context, top []rank.Scored[Recommendation]) (map[string]Author, error) {
	distinct := make(map[string]struct{})
	for _, sc := range top {
		if id := sc.Item.Post.AuthorID; id != "" {
			distinct[id] = struct{}{}
		}
	}

	ids := make([]string, 0, len(distinct))
	for id := range distinct {
		ids = append(ids, id)
	}

	authors := make(map[string]Author, len(ids))
	for _, sc := range top {
		id := sc.Item.Post.AuthorID
		authors[id] = Author{ID: id, Name: "Unknown User", AvatarID: "0"}
	}

	if len(ids) == 0 {
		return authors, nil
	}

	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve authors: %w", err)
	}
	for _, u := range users {
		a := Author{ID: u.ID, Name: u.Name, AvatarID: u.AvatarID}
		if a.Name == "" {
			a.Name = "Unknown User"
		}
		if a.AvatarID == "" {
			a.AvatarID = "0"
		}
		authors[u.ID] = a
	}
	return authors, nil
}

// scorePost computes the per-post breakdown. Relevance sums per-tag tier
// scores; popularity is like-count capped; age decays linearly per whole day.
func scorePost(keywords, rawDomains map[string]struct{}, post domain.Post, now time.Time) Breakdown {
	relevance := 0
	for _, tag := range post.Tags {
		relevance += scoreTag(keywords, rawDomains, taxonomy.Normalize(tag))
	}

	popularity := len(post.Likes) * likePoints
	if popularity > popularityCap {
		popularity = popularityCap
	}

	// A zero CreatedAt means the timestamp was never recorded; Sub saturates
	// at the maximum duration, which yields the maximal age penalty.
	days := int(now.Sub(post.CreatedAt).Hours() / 24)

	return Breakdown{
		Relevance:  relevance,
		Popularity: popularity,
		AgePenalty: days * agePenaltyPerDay,
	}
}

// scoreTag applies the tier ladder to one normalized tag.
func scoreTag(keywords, rawDomains map[string]struct{}, tag string) int {
	if _, ok := rawDomains[tag]; ok {
		return exactMatchPoints
	}
	if _, ok := keywords[tag]; ok {
		return semanticMatchPoints
	}
	if len(tag) > minFuzzyLen {
		for kw := range keywords {
			if len(kw) > minFuzzyLen && (strings.Contains(tag, kw) || strings.Contains(kw, tag)) {
				return fuzzyMatchPoints
			}
		}
	}
	return 0
}
