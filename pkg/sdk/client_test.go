package matchd

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/studymate/matchd/internal/domain"
	"github.com/studymate/matchd/internal/logger"
	healthuc "github.com/studymate/matchd/internal/usecase/health"
	partneruc "github.com/studymate/matchd/internal/usecase/partner"
	recommenduc "github.com/studymate/matchd/internal/usecase/recommend"
)

// --- Mocks ---

type mockPartnerUC struct {
	gotCtx   context.Context
	gotQuery partneruc.Query
	matches  []partneruc.Match
	err      error
}

func (m *mockPartnerUC) FindPartners(ctx context.Context, q partneruc.Query) ([]partneruc.Match, error) {
	m.gotCtx = ctx
	m.gotQuery = q
	return m.matches, m.err
}

type mockRecommendUC struct {
	recs []recommenduc.Recommendation
	err  error
}

func (m *mockRecommendUC) Recommend(_ context.Context, _ string) ([]recommenduc.Recommendation, error) {
	return m.recs, m.err
}

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- Tests ---

func TestNew_RequiresAddress(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error without WithRedis")
	}
}

func TestFindPartners_ConvertsTypes(t *testing.T) {
	puc := &mockPartnerUC{matches: []partneruc.Match{{
		User:    domain.User{ID: "c1", Name: "Ada", StudyTime: domain.Night},
		Score:   150,
		Reasons: []string{"1 skill match(es)"},
	}}}
	c := &Client{partners: puc}

	matches, err := c.FindPartners(context.Background(), PartnerQuery{
		UserID:    "u1",
		Domains:   []string{"ai"},
		StudyTime: Night,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if puc.gotQuery.UserID != "u1" || puc.gotQuery.StudyTime != Night {
		t.Errorf("query not forwarded: %+v", puc.gotQuery)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	m := matches[0]
	if m.User.Name != "Ada" || m.User.StudyTime != Night || m.Score != 150 {
		t.Errorf("unexpected match: %+v", m)
	}
}

func TestFindPartners_NeverProjectsEmail(t *testing.T) {
	puc := &mockPartnerUC{matches: []partneruc.Match{{
		User:  domain.User{ID: "c1", Name: "Ada", Email: "ada@example.com"},
		Score: 5,
	}}}
	c := &Client{partners: puc}

	matches, err := c.FindPartners(context.Background(), PartnerQuery{UserID: "u1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matches[0].User.Email != "" {
		t.Errorf("email leaked into candidate output: %+v", matches[0].User)
	}
	if matches[0].User.Name != "Ada" {
		t.Errorf("unexpected candidate: %+v", matches[0].User)
	}
}

func TestFindPartners_CarriesClientLogger(t *testing.T) {
	l := zap.NewNop()
	puc := &mockPartnerUC{}
	c := &Client{partners: puc, logger: l}

	if _, err := c.FindPartners(context.Background(), PartnerQuery{UserID: "u1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.FromContext(puc.gotCtx) != l {
		t.Error("client logger not carried into the pipeline context")
	}
}

func TestFindPartners_SentinelErrors(t *testing.T) {
	c := &Client{partners: &mockPartnerUC{err: domain.ErrInvalidStudyTime}}

	_, err := c.FindPartners(context.Background(), PartnerQuery{UserID: "u1"})
	if !errors.Is(err, ErrInvalidStudyTime) {
		t.Fatalf("expected ErrInvalidStudyTime, got %v", err)
	}
}

func TestRecommendPosts_ConvertsTypes(t *testing.T) {
	ruc := &mockRecommendUC{recs: []recommenduc.Recommendation{{
		Post:   domain.Post{ID: "p1", Title: "Graphs"},
		Author: recommenduc.Author{ID: "a1", Name: "Grace", AvatarID: "3"},
		Score:  1400,
		Breakdown: recommenduc.Breakdown{
			Relevance:  1500,
			Popularity: 0,
			AgePenalty: 100,
		},
	}}}
	c := &Client{recs: ruc}

	recs, err := c.RecommendPosts(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	r := recs[0]
	if r.Post.Title != "Graphs" || r.Author.Name != "Grace" || r.Score != 1400 {
		t.Errorf("unexpected recommendation: %+v", r)
	}
	if r.Breakdown.AgePenalty != 100 {
		t.Errorf("breakdown not converted: %+v", r.Breakdown)
	}
}

func TestRecommendPosts_SentinelErrors(t *testing.T) {
	c := &Client{recs: &mockRecommendUC{err: domain.ErrUserNotFound}}

	_, err := c.RecommendPosts(context.Background(), "u1")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestHealth_ConvertsReport(t *testing.T) {
	c := &Client{healthSvc: &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckError},
	}}}

	report := c.Health(context.Background())
	if report.Status != "degraded" || report.Checks["database"] != "error" {
		t.Errorf("unexpected report: %+v", report)
	}
}
