// Package inventory counts an account's inventory per category.
package inventory

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"altlens/internal/logging"
	"altlens/internal/metrics"
	"altlens/internal/model"
	"altlens/internal/roblox"
)

const (
	// SystemCreatorID owns platform-issued default items.
	SystemCreatorID int64 = 1

	// MaxSystemAccessories is how many platform-issued accessories still count.
	MaxSystemAccessories = 5
)

// Counter accumulates one category's count page by page.
type Counter struct {
	category model.Category
	ownerID  int64
	count    int
	system   int
}

// NewCounter counts category for the account ownerID.
func NewCounter(category model.Category, ownerID int64) *Counter {
	return &Counter{category: category, ownerID: ownerID}
}

// Add counts one page of items.
func (c *Counter) Add(items []model.InventoryItem) {
	for _, it := range items {
		switch c.category {
		case model.CategoryGamepasses:
			if it.CreatorID != c.ownerID {
				c.count++
			}
		default:
			if it.CreatorID != SystemCreatorID {
				c.count++
				continue
			}
			if c.category == model.CategoryAccessories && c.system < MaxSystemAccessories {
				c.system++
				c.count++
			}
		}
	}
}

// Count is the number of items counted so far.
func (c *Counter) Count() int { return c.count }

// Count is the one-shot form of Counter.
func Count(items []model.InventoryItem, category model.Category, ownerID int64) int {
	c := NewCounter(category, ownerID)
	c.Add(items)
	return c.Count()
}

// Source opens inventory walks.
type Source interface {
	InventoryPages(userID int64, category model.Category, apiKey string) roblox.ItemPager
}

// Collect counts every category of userID in order. A private category
// marks the whole result private with zero counts and skips the remaining
// categories. Other page failures keep that category's partial count.
func Collect(ctx context.Context, src Source, userID int64, apiKey string, progress *logging.Progress) (model.Inventory, error) {
	var inv model.Inventory
	for _, cat := range model.Categories {
		progress.Infof("Fetching %s...", cat)
		n, err := collectCategory(ctx, src.InventoryPages(userID, cat, apiKey), NewCounter(cat, userID))
		switch {
		case errors.Is(err, roblox.ErrInventoryPrivate):
			progress.Warnf("Inventory is private (403)")
			metrics.PrivateInventories.Inc()
			return model.Inventory{Private: true}, nil
		case errors.Is(err, roblox.ErrPageFailed):
			progress.Errorf("Failed to fetch %s: %v", cat, err)
			logging.Warn("inventory page failed", zap.Int64("user_id", userID), zap.String("category", string(cat)), zap.Error(err))
		case err != nil:
			return model.Inventory{}, err
		default:
			progress.Successf("Found %d %s", n, cat)
		}
		inv.Set(cat, n)
	}
	return inv, nil
}

func collectCategory(ctx context.Context, pager roblox.ItemPager, counter *Counter) (int, error) {
	for !pager.Done() {
		items, err := pager.Next(ctx)
		if err != nil {
			return counter.Count(), err
		}
		counter.Add(items)
	}
	return counter.Count(), nil
}
