package roblox

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"altlens/internal/logging"
	"altlens/internal/metrics"
	"altlens/internal/model"
)

const badgePageLimit = 100

type badgePage struct {
	NextPageCursor string `json:"nextPageCursor"`
	Data           []struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
		Creator     *struct {
			ID   int64  `json:"id"`
			Type string `json:"type"`
		} `json:"creator"`
	} `json:"data"`
}

// BadgePager walks an account's badges newest first, one page per Next.
// It is not restartable.
type BadgePager struct {
	c       *HTTPClient
	userID  int64
	cursor  string
	page    int
	done    bool
	limiter *rate.Limiter
}

// BadgePages starts a badge walk for userID.
func (c *HTTPClient) BadgePages(userID int64) *BadgePager {
	return &BadgePager{c: c, userID: userID, limiter: newPageLimiter(c.pageDelay)}
}

// Done reports whether the walk has ended.
func (p *BadgePager) Done() bool { return p.done }

// Page is the number of pages requested so far.
func (p *BadgePager) Page() int { return p.page }

// Next fetches the next page. A failed page ends the walk with an error
// wrapping ErrPageFailed. Only cancellation of ctx itself is returned as a
// context error; a per-request timeout is a page failure.
func (p *BadgePager) Next(ctx context.Context) ([]model.Badge, error) {
	if p.done {
		return nil, nil
	}
	if err := wait(ctx, p.limiter); err != nil {
		p.done = true
		return nil, err
	}
	p.page++

	q := url.Values{}
	q.Set("limit", fmt.Sprint(badgePageLimit))
	q.Set("sortOrder", "Desc")
	if p.cursor != "" {
		q.Set("cursor", p.cursor)
	}
	u := fmt.Sprintf("%s/v1/users/%d/badges?%s", p.c.endpoints.Badges, p.userID, q.Encode())

	var raw badgePage
	if err := p.c.getJSON(ctx, "badges", u, "", &raw); err != nil {
		p.done = true
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		metrics.PageFailures.WithLabelValues("badges").Inc()
		return nil, pageError(p.page, err)
	}
	metrics.PagesFetched.WithLabelValues("badges").Inc()

	p.cursor = raw.NextPageCursor
	p.done = p.cursor == ""
	out := make([]model.Badge, 0, len(raw.Data))
	for _, d := range raw.Data {
		b := model.Badge{ID: d.ID, Name: d.DisplayName}
		if d.Creator != nil {
			b.CreatorID = d.Creator.ID
		}
		out = append(out, b)
	}
	return out, nil
}

// FetchAllBadges collects every badge of userID, newest first. A failed page
// stops the walk and the badges gathered so far are returned without error.
func (c *HTTPClient) FetchAllBadges(ctx context.Context, userID int64, progress *logging.Progress) ([]model.Badge, error) {
	pager := c.BadgePages(userID)
	var all []model.Badge
	for !pager.Done() {
		page, err := pager.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrPageFailed) {
				progress.Warnf("Badge fetch failed on page %d", pager.Page())
				logging.Warn("badge page failed", zap.Int64("user_id", userID), zap.Int("page", pager.Page()), zap.Error(err))
				return all, nil
			}
			return all, err
		}
		all = append(all, page...)
		if pager.Page()%5 == 0 {
			progress.Infof("Fetched %d badges so far...", len(all))
		}
	}
	return all, nil
}
