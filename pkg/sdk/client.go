// Package matchd is the embedded SDK: it wires the ranking services directly
// over a Redis connection, no HTTP server required.
package matchd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/studymate/matchd/internal/db"
	dbRedis "github.com/studymate/matchd/internal/db/redis"
	"github.com/studymate/matchd/internal/domain"
	"github.com/studymate/matchd/internal/logger"
	postrepo "github.com/studymate/matchd/internal/repository/post"
	userrepo "github.com/studymate/matchd/internal/repository/user"
	healthuc "github.com/studymate/matchd/internal/usecase/health"
	partneruc "github.com/studymate/matchd/internal/usecase/partner"
	recommenduc "github.com/studymate/matchd/internal/usecase/recommend"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "matchd:"
)

// Internal interfaces so tests can swap the services.
type partnerUseCase interface {
	FindPartners(ctx context.Context, q partneruc.Query) ([]partneruc.Match, error)
}

type recommendUseCase interface {
	Recommend(ctx context.Context, userID string) ([]recommenduc.Recommendation, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the matchd SDK entry point.
type Client struct {
	store     db.Store
	users     *userrepo.Repo
	posts     *postrepo.Repo
	partners  partnerUseCase
	recs      recommendUseCase
	healthSvc healthUseCase
	logger    *zap.Logger
}

// New creates a matchd Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}
	if len(cfg.addrs) == 0 {
		return nil, errors.New("matchd: database address required (use WithRedis)")
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("matchd: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("matchd: database not ready: %w", err)
	}
	cfg.logger.Info("matchd client ready",
		zap.Strings("addrs", cfg.addrs),
		zap.String("key_prefix", cfg.keyPrefix),
	)

	users := userrepo.New(store, cfg.keyPrefix)
	posts := postrepo.New(store, cfg.keyPrefix)

	partnerSvc := partneruc.New(users)
	if cfg.partnerLimit > 0 {
		partnerSvc = partnerSvc.WithLimit(cfg.partnerLimit)
	}
	recommendSvc := recommenduc.New(users, posts)
	if cfg.postLimit > 0 {
		recommendSvc = recommendSvc.WithLimit(cfg.postLimit)
	}

	return &Client{
		store:     store,
		users:     users,
		posts:     posts,
		partners:  partnerSvc,
		recs:      recommendSvc,
		healthSvc: healthuc.New(store),
		logger:    cfg.logger,
	}, nil
}

// withLogger carries the client logger down to the ranking pipelines.
func (c *Client) withLogger(ctx context.Context) context.Context {
	if c.logger == nil {
		return ctx
	}
	return logger.ContextWithLogger(ctx, c.logger)
}

// Close releases the database connection.
func (c *Client) Close() {
	c.store.Close()
}

// PutUser creates or replaces a user profile.
func (c *Client) PutUser(ctx context.Context, u User) error {
	return c.users.Put(ctx, userToDomain(u))
}

// PutUsers stores several profiles in one pipelined round-trip.
func (c *Client) PutUsers(ctx context.Context, users []User) error {
	dus := make([]domain.User, len(users))
	for i, u := range users {
		dus[i] = userToDomain(u)
	}
	return c.users.PutAll(ctx, dus)
}

// PutPost creates or replaces a post.
func (c *Client) PutPost(ctx context.Context, p Post) error {
	return c.posts.Put(ctx, postToDomain(p))
}

// PutPosts stores several posts in one pipelined round-trip.
func (c *Client) PutPosts(ctx context.Context, posts []Post) error {
	dps := make([]domain.Post, len(posts))
	for i, p := range posts {
		dps[i] = postToDomain(p)
	}
	return c.posts.PutAll(ctx, dps)
}

// FindPartners ranks study-partner candidates for the given query.
func (c *Client) FindPartners(ctx context.Context, q PartnerQuery) ([]Match, error) {
	matches, err := c.partners.FindPartners(c.withLogger(ctx), partneruc.Query{
		UserID:    q.UserID,
		Domains:   q.Domains,
		StudyTime: q.StudyTime,
		TeamPref:  q.TeamPref,
	})
	if err != nil {
		return nil, err
	}

	out := make([]Match, len(matches))
	for i, m := range matches {
		out[i] = Match{
			User:    candidateFromDomain(m.User),
			Score:   m.Score,
			Reasons: m.Reasons,
		}
	}
	return out, nil
}

// RecommendPosts ranks content posts for the given user.
func (c *Client) RecommendPosts(ctx context.Context, userID string) ([]Recommendation, error) {
	recs, err := c.recs.Recommend(c.withLogger(ctx), userID)
	if err != nil {
		return nil, err
	}

	out := make([]Recommendation, len(recs))
	for i, rec := range recs {
		out[i] = Recommendation{
			Post:   postFromDomain(rec.Post),
			Author: Author(rec.Author),
			Score:  rec.Score,
			Breakdown: Breakdown{
				Relevance:  rec.Breakdown.Relevance,
				Popularity: rec.Breakdown.Popularity,
				AgePenalty: rec.Breakdown.AgePenalty,
			},
		}
	}
	return out, nil
}

// Health reports component availability.
func (c *Client) Health(ctx context.Context) HealthReport {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthReport{Status: string(report.Status), Checks: checks}
}

func userToDomain(u User) domain.User {
	return domain.User{
		ID:            u.ID,
		Name:          u.Name,
		Username:      u.Username,
		Email:         u.Email,
		AvatarID:      u.AvatarID,
		Bio:           u.Bio,
		Domains:       u.Domains,
		LearningStyle: u.LearningStyle,
		StudyTime:     domain.StudyTime(u.StudyTime),
		TeamPref:      domain.TeamPref(u.TeamPref),
	}
}

func userFromDomain(u domain.User) User {
	return User{
		ID:            u.ID,
		Name:          u.Name,
		Username:      u.Username,
		Email:         u.Email,
		AvatarID:      u.AvatarID,
		Bio:           u.Bio,
		Domains:       u.Domains,
		LearningStyle: u.LearningStyle,
		StudyTime:     string(u.StudyTime),
		TeamPref:      string(u.TeamPref),
	}
}

// candidateFromDomain projects a matched user for candidate output.
// Email stays server-side, same as the HTTP projection.
func candidateFromDomain(u domain.User) User {
	c := userFromDomain(u)
	c.Email = ""
	return c
}

func postToDomain(p Post) domain.Post {
	return domain.Post(p)
}

func postFromDomain(p domain.Post) Post {
	return Post(p)
}
