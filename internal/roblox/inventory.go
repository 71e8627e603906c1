package roblox

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"altlens/internal/metrics"
	"altlens/internal/model"
)

const inventoryPageSize = 100

type inventoryPage struct {
	NextPageToken  string `json:"nextPageToken"`
	InventoryItems []struct {
		Path         string `json:"path"`
		AssetDetails *struct {
			AssetID   flexInt `json:"assetId"`
			CreatedBy *struct {
				ID flexInt `json:"id"`
			} `json:"createdBy"`
		} `json:"assetDetails"`
	} `json:"inventoryItems"`
}

// ItemPager yields inventory pages one at a time.
type ItemPager interface {
	Next(ctx context.Context) ([]model.InventoryItem, error)
	Done() bool
}

// InventoryPager walks one inventory category of an account.
type InventoryPager struct {
	c        *HTTPClient
	userID   int64
	category model.Category
	apiKey   string
	token    string
	page     int
	done     bool
	limiter  *rate.Limiter
}

// InventoryPages starts a walk over category for userID using apiKey.
func (c *HTTPClient) InventoryPages(userID int64, category model.Category, apiKey string) ItemPager {
	return &InventoryPager{
		c:        c,
		userID:   userID,
		category: category,
		apiKey:   apiKey,
		limiter:  newPageLimiter(c.pageDelay),
	}
}

// Done reports whether the walk has ended.
func (p *InventoryPager) Done() bool { return p.done }

// Next fetches the next page. A forbidden response ends the walk with
// ErrInventoryPrivate; any other failure with ErrPageFailed.
func (p *InventoryPager) Next(ctx context.Context) ([]model.InventoryItem, error) {
	if p.done {
		return nil, nil
	}
	if err := wait(ctx, p.limiter); err != nil {
		p.done = true
		return nil, err
	}
	p.page++

	q := url.Values{}
	q.Set("maxPageSize", fmt.Sprint(inventoryPageSize))
	if p.token != "" {
		q.Set("pageToken", p.token)
	}
	q.Set("filter", p.category.Filter())
	u := fmt.Sprintf("%s/cloud/v2/users/%d/inventory-items?%s", p.c.endpoints.Cloud, p.userID, q.Encode())

	var raw inventoryPage
	err := p.c.getJSON(ctx, "inventory", u, p.apiKey, &raw)
	if err != nil {
		p.done = true
		var se *StatusError
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case errors.As(err, &se) && se.Code == http.StatusForbidden:
			return nil, ErrInventoryPrivate
		}
		metrics.PageFailures.WithLabelValues("inventory").Inc()
		return nil, pageError(p.page, err)
	}
	metrics.PagesFetched.WithLabelValues("inventory").Inc()

	p.token = raw.NextPageToken
	p.done = p.token == ""
	out := make([]model.InventoryItem, 0, len(raw.InventoryItems))
	for _, it := range raw.InventoryItems {
		item := model.InventoryItem{ID: it.Path}
		if it.AssetDetails != nil {
			item.AssetID = int64(it.AssetDetails.AssetID)
			if it.AssetDetails.CreatedBy != nil {
				item.CreatorID = int64(it.AssetDetails.CreatedBy.ID)
			}
		}
		out = append(out, item)
	}
	return out, nil
}
