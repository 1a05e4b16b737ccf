package remote

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/lawdir/internal/config"
)

// Open builds the syncer selected by cfg.Backend. It returns a nil syncer
// when sync is disabled. The returned close function releases backend
// connections and is never nil.
func Open(ctx context.Context, cfg config.SyncConfig) (*Syncer, func(), error) {
	noop := func() {}

	switch strings.ToLower(cfg.Backend) {
	case config.SyncNone, "":
		return nil, noop, nil

	case config.SyncGitHub:
		store, err := NewGitHubStore(GitHubConfig{
			Owner:   cfg.GitHub.Owner,
			Repo:    cfg.GitHub.Repo,
			Branch:  cfg.GitHub.Branch,
			Token:   cfg.GitHub.Token,
			BaseURL: cfg.GitHub.BaseURL,
		}, nil)
		if err != nil {
			return nil, noop, err
		}
		return NewSyncer(store, cfg.Key), noop, nil

	case config.SyncPostgres:
		pool, err := NewPostgresPool(ctx, cfg.Postgres.URL, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, noop, err
		}
		store, err := NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return NewSyncer(store, cfg.Key), pool.Close, nil

	case config.SyncRedis:
		client, err := NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, noop, err
		}
		return NewSyncer(NewRedisStore(client, ""), cfg.Key), func() { _ = client.Close() }, nil

	case config.SyncMinIO:
		store, err := NewMinIOStore(ctx, MinIOConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			UseSSL:    cfg.MinIO.UseSSL,
		})
		if err != nil {
			return nil, noop, err
		}
		return NewSyncer(store, cfg.Key), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown sync backend %q", cfg.Backend)
	}
}
