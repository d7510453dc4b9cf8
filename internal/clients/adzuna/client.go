package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const defaultBaseURL = "https://api.adzuna.com/v1/api/jobs"

var ErrMissingCredentials = errors.New("adzuna credentials are not configured")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	appID       string
	appKey      string
	baseURL     string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewClient(appID, appKey string) *Client {
	return &Client{appID: appID, appKey: appKey, baseURL: defaultBaseURL, httpClient: &http.Client{}}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	if maxRequestsPerSecond <= 0 {
		c.rateLimiter = nil
		return
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) HasCredentials() bool {
	return c.appID != "" && c.appKey != ""
}

// Search runs one page of a job search. Errors are returned as is, without retries.
func (c *Client) Search(ctx context.Context, parameters SearchParameters) (SearchResult, error) {

	if !c.HasCredentials() {
		return SearchResult{}, ErrMissingCredentials
	}

	if err := parameters.Validate(); err != nil {
		return SearchResult{}, fmt.Errorf("invalid parameters: %w", err)
	}

	params := parameters.ToUrlParams()
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)

	apiURL := c.baseURL + "/" + strings.ToLower(parameters.Country) + "/search/" + strconv.Itoa(parameters.Page)

	body, err := c.sendRequest(ctx, http.MethodGet, apiURL+"?"+params.Encode())
	if err != nil {
		return SearchResult{}, err
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return SearchResult{}, fmt.Errorf("error decoding JSON response: %w", err)
	}

	return result, nil
}

func (c *Client) sendRequest(ctx context.Context, method string, url string) ([]byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}

	return body, nil
}
