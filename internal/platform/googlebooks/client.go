// Package googlebooks is the read-only client for the external book-metadata
// search provider behind GET /books/search.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"bookstore/internal/book"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	maxRetries int
}

func NewClient(baseURL, apiKey string, rps float64, maxRetries int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		maxRetries: maxRetries,
	}
}

// volumesResponse matches the volumes endpoint payload.
type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title               string   `json:"title"`
		Subtitle            string   `json:"subtitle"`
		Authors             []string `json:"authors"`
		Publisher           string   `json:"publisher"`
		PublishedDate       string   `json:"publishedDate"`
		Description         string   `json:"description"`
		IndustryIdentifiers []struct {
			Type       string `json:"type"`
			Identifier string `json:"identifier"`
		} `json:"industryIdentifiers"`
		PageCount  int      `json:"pageCount"`
		Categories []string `json:"categories"`
		ImageLinks struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

// Search queries the volumes endpoint and maps each candidate volume to a
// SearchResult. Implements book.SearchProvider.
func (c *Client) Search(ctx context.Context, query string) ([]book.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", "en")
	params.Set("langRestrict", "en")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	var res volumesResponse
	if err := c.get(ctx, c.baseURL+"/volumes?"+params.Encode(), &res); err != nil {
		return nil, err
	}

	results := make([]book.SearchResult, 0, len(res.Items))
	for _, item := range res.Items {
		info := item.VolumeInfo
		result := book.SearchResult{
			ID:            item.ID,
			Title:         info.Title,
			Subtitle:      info.Subtitle,
			Authors:       info.Authors,
			Publisher:     info.Publisher,
			PublishedDate: info.PublishedDate,
			Description:   info.Description,
			PageCount:     info.PageCount,
			Categories:    info.Categories,
			Image:         info.ImageLinks.Thumbnail,
		}
		for _, ident := range info.IndustryIdentifiers {
			switch ident.Type {
			case "ISBN_10":
				result.ISBN10 = ident.Identifier
			case "ISBN_13":
				result.ISBN13 = ident.Identifier
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// get performs a rate-limited GET with bounded retries on 429 and 5xx.
func (c *Client) get(ctx context.Context, u string, target interface{}) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
				continue
			}
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		err = json.NewDecoder(resp.Body).Decode(target)
		resp.Body.Close()
		return err
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}
