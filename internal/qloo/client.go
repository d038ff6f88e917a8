// Package qloo is the gateway to the Qloo cultural-recommendation API. Every
// method is a thin shaping layer over authenticated HTTP GETs; the upstream
// provides no ranking, so recommendation scores are a constant placeholder.
package qloo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cultura-atlas/atlas-backend/internal/models"
	"github.com/cultura-atlas/atlas-backend/internal/preferences"
)

const (
	defaultPage = 1
	defaultTake = 10

	// The search API carries no relevance signal, so every recommendation
	// gets the same score.
	placeholderScore     = 1.0
	placeholderReasoning = "Based on search results"
)

// DefaultTargetCategories is the category spread requested for cross-domain
// lookups. The upstream call does not actually filter by these; they travel
// as metadata only.
var DefaultTargetCategories = []string{
	"restaurant", "music", "movie", "travel", "activity", "art", "book", "fashion",
}

type SearchResponse struct {
	Entities []models.Entity `json:"entities"`
	Total    int             `json:"total"`
}

type RecsResponse struct {
	Recommendations []models.Recommendation `json:"recommendations"`
	Total           int                     `json:"total"`
}

type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a Qloo API client. Constructed once at process start and
// passed into request handlers.
func NewClient(baseURL, apiToken string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		apiToken:   apiToken,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("building qloo request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("X-Api-Key", c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qloo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("qloo returned non-success status",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("qloo request failed: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding qloo response: %w", err)
	}
	return nil
}

type searchAPIResponse struct {
	Results []models.Entity `json:"results"`
	Total   int             `json:"total"`
}

// Search runs one entity search for a free-text query.
func (c *Client) Search(ctx context.Context, query string, page, take int) (SearchResponse, error) {
	if page <= 0 {
		page = defaultPage
	}
	if take <= 0 {
		take = defaultTake
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("take", strconv.Itoa(take))

	var apiResp searchAPIResponse
	if err := c.get(ctx, "/search", params, &apiResp); err != nil {
		return SearchResponse{}, err
	}

	entities := apiResp.Results
	if entities == nil {
		entities = []models.Entity{}
	}
	return SearchResponse{Entities: entities, Total: apiResp.Total}, nil
}

// CrossDomainRecommendations issues one search per preference text in
// parallel and flattens the results into recommendations, preserving input
// order. All-or-nothing: if any search fails the whole batch fails. An empty
// input yields an empty result without any request.
//
// targetCategories is requested metadata only; the upstream search does not
// filter by it.
func (c *Client) CrossDomainRecommendations(ctx context.Context, preferenceTexts []string, targetCategories []string) (RecsResponse, error) {
	if len(preferenceTexts) == 0 {
		return RecsResponse{Recommendations: []models.Recommendation{}}, nil
	}

	results := make([]SearchResponse, len(preferenceTexts))
	g, gctx := errgroup.WithContext(ctx)
	for i, text := range preferenceTexts {
		i, text := i, text
		g.Go(func() error {
			res, err := c.Search(gctx, text, defaultPage, defaultTake)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RecsResponse{}, err
	}

	recs := []models.Recommendation{}
	for _, res := range results {
		for _, entity := range res.Entities {
			recs = append(recs, models.Recommendation{
				Entity:    entity,
				Score:     placeholderScore,
				Reasoning: placeholderReasoning,
			})
		}
	}

	c.logger.Debug("cross-domain recommendations assembled",
		zap.Int("queries", len(preferenceTexts)),
		zap.Int("recommendations", len(recs)))

	return RecsResponse{Recommendations: recs, Total: len(recs)}, nil
}

// GroupRecommendations merges a combined group preference list with the given
// strategy and looks up cross-domain recommendations for the survivors.
func (c *Client) GroupRecommendations(ctx context.Context, groupPrefs []models.Preference, targetCategories []string, strategy preferences.MergeStrategy) (RecsResponse, []models.Preference, error) {
	merged := preferences.Merge(groupPrefs, strategy)

	texts := make([]string, 0, len(merged))
	for _, p := range merged {
		texts = append(texts, p.Name)
	}

	recs, err := c.CrossDomainRecommendations(ctx, texts, targetCategories)
	if err != nil {
		return RecsResponse{}, nil, err
	}
	return recs, merged, nil
}
