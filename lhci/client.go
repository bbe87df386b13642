// Package lhci reads builds and runs from a Lighthouse CI server.
package lhci

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"lhcompare/schema"
)

// ErrNoAncestor is returned when the server knows no ancestor for a build.
var ErrNoAncestor = errors.New("build has no ancestor")

// Build is the subset of a Lighthouse CI build we use.
type Build struct {
	ID            string `json:"id"`
	ProjectID     string `json:"projectId"`
	Lifecycle     string `json:"lifecycle"`
	Hash          string `json:"hash"`
	Branch        string `json:"branch"`
	CommitMessage string `json:"commitMessage"`
	Author        string `json:"author"`
	RunAt         string `json:"runAt"`
	AncestorHash  string `json:"ancestorHash"`
}

type Client struct {
	http           *resty.Client
	representative bool
}

type Option func(*Client)

// WithBasicAuth sets the credentials of a server protected by basic auth.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.http.SetBasicAuth(username, password)
	}
}

// WithRepresentativeRuns limits fetched runs to the representative (median)
// run of each URL.
func WithRepresentativeRuns() Option {
	return func(c *Client) {
		c.representative = true
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json").
			SetTimeout(30 * time.Second).
			SetRetryCount(2),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Build fetches one build.
func (c *Client) Build(ctx context.Context, projectID, buildID string) (*Build, error) {
	var build Build
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"projectId": projectID, "buildId": buildID}).
		SetResult(&build).
		Get("/v1/projects/{projectId}/builds/{buildId}")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch build %s: %w", buildID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch build %s: %s", buildID, resp.Status())
	}
	return &build, nil
}

// Ancestor fetches the build the given build should be compared against.
func (c *Client) Ancestor(ctx context.Context, projectID, buildID string) (*Build, error) {
	var build Build
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"projectId": projectID, "buildId": buildID}).
		SetResult(&build).
		Get("/v1/projects/{projectId}/builds/{buildId}/ancestor")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ancestor of build %s: %w", buildID, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNoAncestor
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch ancestor of build %s: %s", buildID, resp.Status())
	}
	return &build, nil
}

// Runs fetches the runs of a build. Reports arrive serialized in the lhr field.
func (c *Client) Runs(ctx context.Context, projectID, buildID string) ([]schema.Run, error) {
	var runs []schema.Run
	req := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"projectId": projectID, "buildId": buildID}).
		SetResult(&runs)
	if c.representative {
		req.SetQueryParam("representative", "true")
	}

	resp, err := req.Get("/v1/projects/{projectId}/builds/{buildId}/runs")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs of build %s: %w", buildID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch runs of build %s: %s", buildID, resp.Status())
	}
	return runs, nil
}

// BuildRuns fetches the runs of a build and of its ancestor.
func (c *Client) BuildRuns(ctx context.Context, projectID, buildID string) (current, baseline []schema.Run, err error) {
	ancestor, err := c.Ancestor(ctx, projectID, buildID)
	if err != nil {
		return nil, nil, err
	}

	current, err = c.Runs(ctx, projectID, buildID)
	if err != nil {
		return nil, nil, err
	}
	baseline, err = c.Runs(ctx, projectID, ancestor.ID)
	if err != nil {
		return nil, nil, err
	}
	return current, baseline, nil
}
