package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Status(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/status", nil, &out)
	return out, err
}

func (c *Client) Report(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/report", nil, &out)
	return out, err
}

func (c *Client) Advance(ctx context.Context, days int) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/advance", map[string]any{
		"days": days,
	}, &out)
	return out, err
}

func (c *Client) Pause(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/pause", nil, &out)
	return out, err
}

func (c *Client) Resume(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/resume", nil, &out)
	return out, err
}

func (c *Client) NewGame(ctx context.Context, name, difficulty, specialization, founder string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/new", map[string]any{
		"name":           name,
		"difficulty":     difficulty,
		"specialization": specialization,
		"founder_name":   founder,
	}, &out)
	return out, err
}

func (c *Client) Roster(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/roster", nil, &out)
	return out, err
}

func (c *Client) Candidates(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/roster/candidates", nil, &out)
	return out, err
}

func (c *Client) RefreshCandidates(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/roster/candidates/refresh", nil, &out)
	return out, err
}

func (c *Client) Hire(ctx context.Context, candidateID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/roster/hire", map[string]any{
		"candidate_id": candidateID,
	}, &out)
	return out, err
}

func (c *Client) Fire(ctx context.Context, employeeID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/roster/"+url.PathEscape(employeeID)+"/fire", nil, &out)
	return out, err
}

func (c *Client) Train(ctx context.Context, employeeID, skill string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/roster/"+url.PathEscape(employeeID)+"/train", map[string]any{
		"skill": skill,
	}, &out)
	return out, err
}

func (c *Client) Project(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/project", nil, &out)
	return out, err
}

func (c *Client) CompletedProjects(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/projects/completed", nil, &out)
	return out, err
}

func (c *Client) StartProject(ctx context.Context, title, genre, platform string, budgetMicros int64) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/project", map[string]any{
		"title":         title,
		"genre":         genre,
		"platform":      platform,
		"budget_micros": budgetMicros,
	}, &out)
	return out, err
}

func (c *Client) CancelProject(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/project/cancel", nil, &out)
	return out, err
}

func (c *Client) Genres(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/catalog/genres", nil, &out)
	return out, err
}

func (c *Client) Platforms(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/catalog/platforms", nil, &out)
	return out, err
}

func (c *Client) CampaignCatalog(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/catalog/campaigns", nil, &out)
	return out, err
}

func (c *Client) ResearchCatalog(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/catalog/research", nil, &out)
	return out, err
}

func (c *Client) Research(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/research", nil, &out)
	return out, err
}

func (c *Client) StartResearch(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/research/start", map[string]any{
		"id": id,
	}, &out)
	return out, err
}

func (c *Client) CancelResearch(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/research/cancel", nil, &out)
	return out, err
}

func (c *Client) Marketing(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/marketing", nil, &out)
	return out, err
}

func (c *Client) StartCampaign(ctx context.Context, campaign, targetID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/marketing/start", map[string]any{
		"campaign":  campaign,
		"target_id": targetID,
	}, &out)
	return out, err
}

func (c *Client) CancelCampaign(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/marketing/"+url.PathEscape(id)+"/cancel", nil, &out)
	return out, err
}

func (c *Client) Finance(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/finance", nil, &out)
	return out, err
}

func (c *Client) TakeLoan(ctx context.Context, loan string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/finance/loans/take", map[string]any{
		"loan": loan,
	}, &out)
	return out, err
}

func (c *Client) AcceptOffer(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/finance/offers/"+url.PathEscape(id)+"/accept", nil, &out)
	return out, err
}

func (c *Client) RejectOffer(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/finance/offers/"+url.PathEscape(id)+"/reject", nil, &out)
	return out, err
}

func (c *Client) Saves(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/saves", nil, &out)
	return out, err
}

func (c *Client) Save(ctx context.Context, slot string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/saves/"+url.PathEscape(slot), nil, &out)
	return out, err
}

func (c *Client) Load(ctx context.Context, slot string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/saves/"+url.PathEscape(slot)+"/load", nil, &out)
	return out, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
