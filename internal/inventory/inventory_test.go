package inventory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"altlens/internal/logging"
	"altlens/internal/model"
	"altlens/internal/roblox"
)

const owner int64 = 777

func items(creators ...int64) []model.InventoryItem {
	out := make([]model.InventoryItem, len(creators))
	for i, c := range creators {
		out[i] = model.InventoryItem{ID: fmt.Sprintf("item-%d", i), CreatorID: c}
	}
	return out
}

func repeat(creator int64, n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = creator
	}
	return out
}

func TestCountClothingExcludesSystemItems(t *testing.T) {
	in := items(SystemCreatorID, 55, SystemCreatorID, 66, owner)
	assert.Equal(t, 3, Count(in, model.CategoryShirts, owner))
	assert.Equal(t, 3, Count(in, model.CategoryPants, owner))
}

func TestCountAccessoriesCapsSystemItems(t *testing.T) {
	in := items(append(repeat(SystemCreatorID, 8), 55, 56, 57)...)
	assert.Equal(t, MaxSystemAccessories+3, Count(in, model.CategoryAccessories, owner))

	// the cap holds across pages
	c := NewCounter(model.CategoryAccessories, owner)
	c.Add(items(repeat(SystemCreatorID, 3)...))
	c.Add(items(append(repeat(SystemCreatorID, 4), 90)...))
	assert.Equal(t, MaxSystemAccessories+1, c.Count())
}

func TestCountGamepassesExcludesSelfPublished(t *testing.T) {
	in := items(owner, SystemCreatorID, 55, owner, 0)
	assert.Equal(t, 3, Count(in, model.CategoryGamepasses, owner))
}

type fakePager struct {
	pages [][]model.InventoryItem
	fail  error
	done  bool
	calls int
}

func (f *fakePager) Next(ctx context.Context) ([]model.InventoryItem, error) {
	f.calls++
	if len(f.pages) == 0 {
		f.done = true
		if f.fail != nil {
			return nil, f.fail
		}
		return nil, nil
	}
	p := f.pages[0]
	f.pages = f.pages[1:]
	f.done = len(f.pages) == 0 && f.fail == nil
	return p, nil
}

func (f *fakePager) Done() bool { return f.done }

type fakeSource struct {
	pagers map[model.Category]*fakePager
	opened []model.Category
}

func (s *fakeSource) InventoryPages(userID int64, c model.Category, apiKey string) roblox.ItemPager {
	s.opened = append(s.opened, c)
	if p, ok := s.pagers[c]; ok {
		return p
	}
	return &fakePager{}
}

func TestCollectCountsEveryCategory(t *testing.T) {
	src := &fakeSource{pagers: map[model.Category]*fakePager{
		model.CategoryShirts:      {pages: [][]model.InventoryItem{items(55, 56), items(SystemCreatorID, 57)}},
		model.CategoryPants:       {pages: [][]model.InventoryItem{items(58)}},
		model.CategoryAccessories: {pages: [][]model.InventoryItem{items(repeat(SystemCreatorID, 7)...)}},
		model.CategoryGamepasses:  {pages: [][]model.InventoryItem{items(owner, 60, 61)}},
	}}
	progress := logging.NewProgress("t", nil)
	inv, err := Collect(context.Background(), src, owner, "key", progress)
	require.NoError(t, err)
	assert.Equal(t, model.Inventory{Shirts: 3, Pants: 1, Accessories: 5, Gamepasses: 2}, inv)
	assert.Equal(t, model.Categories, src.opened)
	assert.Equal(t, "Found 3 shirts", progress.Entries()[1].Message)
}

func TestCollectPrivateShortCircuits(t *testing.T) {
	src := &fakeSource{pagers: map[model.Category]*fakePager{
		model.CategoryShirts:      {pages: [][]model.InventoryItem{items(55, 56)}},
		model.CategoryPants:       {pages: [][]model.InventoryItem{items(58)}},
		model.CategoryAccessories: {fail: roblox.ErrInventoryPrivate},
	}}
	inv, err := Collect(context.Background(), src, owner, "key", nil)
	require.NoError(t, err)
	assert.Equal(t, model.Inventory{Private: true}, inv)
	assert.Equal(t, []model.Category{model.CategoryShirts, model.CategoryPants, model.CategoryAccessories}, src.opened)
}

func TestCollectKeepsPartialCountOnPageFailure(t *testing.T) {
	failure := fmt.Errorf("%w: page 2: boom", roblox.ErrPageFailed)
	src := &fakeSource{pagers: map[model.Category]*fakePager{
		model.CategoryShirts:     {pages: [][]model.InventoryItem{items(55, 56)}, fail: failure},
		model.CategoryGamepasses: {pages: [][]model.InventoryItem{items(60)}},
	}}
	progress := logging.NewProgress("t", nil)
	inv, err := Collect(context.Background(), src, owner, "key", progress)
	require.NoError(t, err)
	assert.Equal(t, model.Inventory{Shirts: 2, Gamepasses: 1}, inv)

	var levels []string
	for _, e := range progress.Entries() {
		levels = append(levels, e.Level)
	}
	assert.Contains(t, levels, logging.LevelError)
}

func TestCollectReturnsContextErrors(t *testing.T) {
	src := &fakeSource{pagers: map[model.Category]*fakePager{
		model.CategoryShirts: {fail: context.Canceled},
	}}
	_, err := Collect(context.Background(), src, owner, "key", nil)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, src.opened, 1)
}
