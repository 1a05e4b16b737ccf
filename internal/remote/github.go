package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
)

// GitHubConfig identifies the file holding the document.
type GitHubConfig struct {
	Owner   string
	Repo    string
	Branch  string
	Token   string
	BaseURL string // defaults to https://api.github.com/
}

// GitHubStore keeps documents as files in a repository through the contents API.
type GitHubStore struct {
	cfg    GitHubConfig
	client *github.Client
}

// NewGitHubStore returns a store using httpClient, or a default client when nil.
func NewGitHubStore(cfg GitHubConfig, httpClient *http.Client) (*GitHubStore, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	client := github.NewClient(httpClient)
	if cfg.Token != "" {
		client = client.WithAuthToken(cfg.Token)
	}
	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("github: base url: %w", err)
		}
		client.BaseURL = base
	}
	return &GitHubStore{cfg: cfg, client: client}, nil
}

func (s *GitHubStore) Name() string { return "github" }

func (s *GitHubStore) Get(ctx context.Context, key string) ([]byte, error) {
	file, err := s.fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("github: decode %s: %w", key, err)
	}
	return []byte(content), nil
}

// Put creates or replaces the file. The current sha is looked up first so the
// update is applied on top of the latest revision.
func (s *GitHubStore) Put(ctx context.Context, key string, data []byte) error {
	var sha string
	switch file, err := s.fetch(ctx, key); {
	case err == nil:
		sha = file.GetSHA()
	case !errors.Is(err, ErrNotExist):
		return err
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(fmt.Sprintf("Update %s (%s)", key, time.Now().UTC().Format(time.RFC3339))),
		Content: data,
	}
	if s.cfg.Branch != "" {
		opts.Branch = github.String(s.cfg.Branch)
	}

	var err error
	if sha == "" {
		_, _, err = s.client.Repositories.CreateFile(ctx, s.cfg.Owner, s.cfg.Repo, key, opts)
	} else {
		opts.SHA = github.String(sha)
		_, _, err = s.client.Repositories.UpdateFile(ctx, s.cfg.Owner, s.cfg.Repo, key, opts)
	}
	if err != nil {
		return fmt.Errorf("github: put %s: %w", key, err)
	}
	return nil
}

func (s *GitHubStore) fetch(ctx context.Context, key string) (*github.RepositoryContent, error) {
	opts := &github.RepositoryContentGetOptions{Ref: s.cfg.Branch}
	file, _, resp, err := s.client.Repositories.GetContents(ctx, s.cfg.Owner, s.cfg.Repo, key, opts)
	if err != nil {
		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
			return nil, ErrNotExist
		}
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("github: get %s: %w", key, err)
	}
	if file == nil {
		return nil, fmt.Errorf("github: %s is a directory", key)
	}
	return file, nil
}
