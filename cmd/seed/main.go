// Command seed loads a demo data set so the ranking endpoints have something
// to chew on in a fresh environment.
package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/studymate/matchd/internal/config"
	dbRedis "github.com/studymate/matchd/internal/db/redis"
	"github.com/studymate/matchd/internal/domain"
	logpkg "github.com/studymate/matchd/internal/logger"
	postrepo "github.com/studymate/matchd/internal/repository/post"
	userrepo "github.com/studymate/matchd/internal/repository/user"
)

func main() {
	var envFlag string
	flag.StringVar(&envFlag, "env", config.GetEnv(), "config environment (local, dev, prod)")
	flag.Parse()

	cfg, err := config.Load(envFlag)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(envFlag, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	userRepo := userrepo.New(store, cfg.Storage.KeyPrefix)
	postRepo := postrepo.New(store, cfg.Storage.KeyPrefix)

	users := demoUsers()
	if err := userRepo.PutAll(ctx, users); err != nil {
		logger.Fatal("Failed to seed users", zap.Error(err))
	}
	logger.Info("Seeded users", zap.Int("count", len(users)))

	posts := demoPosts()
	if err := postRepo.PutAll(ctx, posts); err != nil {
		logger.Fatal("Failed to seed posts", zap.Error(err))
	}
	logger.Info("Seeded posts", zap.Int("count", len(posts)))
}

// Fixed ids keep reseeding idempotent and make the demo queries copy-pasteable.
const (
	adaID    = "0a1b2c3d-1111-4000-8000-000000000001"
	graceID  = "0a1b2c3d-1111-4000-8000-000000000002"
	linusID  = "0a1b2c3d-1111-4000-8000-000000000003"
	margotID = "0a1b2c3d-1111-4000-8000-000000000004"
	kenID    = "0a1b2c3d-1111-4000-8000-000000000005"
)

func demoUsers() []domain.User {
	return []domain.User{
		{
			ID: adaID, Name: "Ada Lovelace", Username: "ada", AvatarID: "1",
			Bio:     "First programmer, lifelong learner.",
			Domains: []string{"ai", "dsa"}, LearningStyle: "visual",
			StudyTime: domain.Night, TeamPref: domain.Solo,
		},
		{
			ID: graceID, Name: "Grace Hopper", Username: "grace", AvatarID: "2",
			Bio:     "Compilers and ships.",
			Domains: []string{"web", "cloud"}, LearningStyle: "hands-on",
			StudyTime: domain.Morning, TeamPref: domain.Team,
		},
		{
			ID: linusID, Name: "Linus T", Username: "linus", AvatarID: "3",
			Domains:   []string{"cloud", "cybersecurity"},
			StudyTime: domain.Night, TeamPref: domain.Solo,
		},
		{
			ID: margotID, Name: "Margot", Username: "margot", AvatarID: "4",
			Bio:     "Game jams every weekend.",
			Domains: []string{"game"}, LearningStyle: "project-based",
			StudyTime: domain.Evening, TeamPref: domain.Team,
		},
		{
			ID: kenID, Name: "Ken", Username: "ken", AvatarID: "5",
			Domains:   []string{"dsa", "app"},
			StudyTime: domain.Flexible, TeamPref: domain.Team,
		},
	}
}

func demoPosts() []domain.Post {
	now := time.Now().UTC()
	return []domain.Post{
		{
			ID: "0a1b2c3d-2222-4000-8000-000000000001", AuthorID: adaID,
			Title:     "Dynamic programming, minus the fear",
			Summary:   "Tabulation vs memoization with worked examples.",
			Tags:      []string{"dsa", "dynamic programming", "recursion"},
			Likes:     []string{graceID, kenID},
			CreatedAt: now.AddDate(0, 0, -2),
		},
		{
			ID: "0a1b2c3d-2222-4000-8000-000000000002", AuthorID: graceID,
			Title:     "Shipping a REST API with chi",
			Summary:   "Routing, middleware, graceful shutdown.",
			Tags:      []string{"web", "api", "backend"},
			Likes:     []string{adaID, linusID, margotID},
			CreatedAt: now.AddDate(0, 0, -5),
		},
		{
			ID: "0a1b2c3d-2222-4000-8000-000000000003", AuthorID: linusID,
			Title:     "Kubernetes for people who hate YAML",
			Tags:      []string{"cloud", "kubernetes", "devops"},
			Likes:     []string{graceID},
			CreatedAt: now.AddDate(0, 0, -12),
		},
		{
			ID: "0a1b2c3d-2222-4000-8000-000000000004", AuthorID: margotID,
			Title:     "Shader basics in Godot",
			Tags:      []string{"game", "godot", "shaders"},
			CreatedAt: now.AddDate(0, 0, -1),
		},
		{
			ID: "0a1b2c3d-2222-4000-8000-000000000005", AuthorID: kenID,
			Title: "Untitled draft",
			// No tags on purpose: exercises the untagged ranking penalty.
			CreatedAt: now,
		},
		{
			ID: "0a1b2c3d-2222-4000-8000-000000000006", AuthorID: adaID,
			Title:     "Transformers from first principles",
			Summary:   "Attention, positional encodings, and why it works.",
			Tags:      []string{"ai", "transformer", "deep learning"},
			Likes:     []string{graceID, linusID, margotID, kenID},
			CreatedAt: now.AddDate(0, 0, -30),
		},
	}
}
