package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Badge represents the subset of badge fields used by the tool.
// CreatorID is zero when the badge has no creator.
type Badge struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatorID int64  `json:"creatorId,omitempty"`
}

// BadgeResult is the reduction of an account's full badge history.
type BadgeResult struct {
	Genuine         int     `json:"genuine"`
	Filtered        int     `json:"filtered"`
	FilteredPercent float64 `json:"filteredPercent"`
	ReferenceFound  bool    `json:"referenceFound"`
	ReferencePage   int     `json:"referencePage,omitempty"`
	TotalPages      int     `json:"totalPages"`
}

// Total is the number of badges the result was computed over.
func (r BadgeResult) Total() int { return r.Genuine + r.Filtered }

// PagesFromEnd is the distance from the reference badge's page to the
// oldest page, counting both. Zero when the reference badge was not found.
func (r BadgeResult) PagesFromEnd() int {
	if !r.ReferenceFound {
		return 0
	}
	return r.TotalPages - r.ReferencePage + 1
}

// Summary describes where the reference badge sits, e.g. "Page 3 of 12".
func (r BadgeResult) Summary() string {
	if !r.ReferenceFound {
		return "Not found"
	}
	return fmt.Sprintf("Page %d of %d", r.ReferencePage, r.TotalPages)
}

// InventoryItem is one entry of an inventory listing.
type InventoryItem struct {
	ID        string `json:"id"`
	AssetID   int64  `json:"assetId,omitempty"`
	CreatorID int64  `json:"creatorId,omitempty"`
}

// Category is an inventory category the tool counts.
type Category string

const (
	CategoryShirts      Category = "shirts"
	CategoryPants       Category = "pants"
	CategoryAccessories Category = "accessories"
	CategoryGamepasses  Category = "gamepasses"
)

// Categories lists inventory categories in fetch order.
var Categories = []Category{CategoryShirts, CategoryPants, CategoryAccessories, CategoryGamepasses}

// Filter returns the remote filter expression for the category.
func (c Category) Filter() string {
	switch c {
	case CategoryShirts:
		return "inventoryItemAssetTypes=CLASSIC_SHIRT"
	case CategoryPants:
		return "inventoryItemAssetTypes=CLASSIC_PANTS"
	case CategoryAccessories:
		return "inventoryItemAssetTypes=HAT"
	case CategoryGamepasses:
		return "gamePasses=true"
	}
	return ""
}

// Inventory holds per-category counts. When Private is set all counts are zero.
type Inventory struct {
	Shirts      int  `json:"shirts"`
	Pants       int  `json:"pants"`
	Accessories int  `json:"accessories"`
	Gamepasses  int  `json:"gamepasses"`
	Private     bool `json:"private"`
}

// Clothing is shirts plus pants.
func (i Inventory) Clothing() int { return i.Shirts + i.Pants }

// Set stores n for category c.
func (i *Inventory) Set(c Category, n int) {
	switch c {
	case CategoryShirts:
		i.Shirts = n
	case CategoryPants:
		i.Pants = n
	case CategoryAccessories:
		i.Accessories = n
	case CategoryGamepasses:
		i.Gamepasses = n
	}
}

// Profile is the public profile of an account.
type Profile struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Description string    `json:"description,omitempty"`
	Created     time.Time `json:"created"`
}

// AgeDays returns whole days between creation and now, never negative.
func (p Profile) AgeDays(now time.Time) int {
	d := now.Sub(p.Created)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// Social holds the social graph counters of an account.
type Social struct {
	Friends   int `json:"friends"`
	Followers int `json:"followers"`
	Following int `json:"following"`
	Groups    int `json:"groups"`
}

// Avatar is a rendered avatar image reference.
type Avatar struct {
	Kind     string `json:"kind"` // full or headshot
	ImageURL string `json:"imageUrl"`
}

// Verdict is the scored outcome of an analysis.
type Verdict struct {
	Score    int      `json:"score"`
	Category string   `json:"category"`
	Reasons  []string `json:"reasons"`
}

// LogEntry is one progress message emitted during a run.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
}

// Report is everything an analysis run produced.
type Report struct {
	RunID     uuid.UUID   `json:"runId"`
	Username  string      `json:"username"`
	Profile   Profile     `json:"profile"`
	AgeDays   int         `json:"ageDays"`
	Social    Social      `json:"social"`
	Avatars   []Avatar    `json:"avatars,omitempty"`
	Badges    BadgeResult `json:"badges"`
	Inventory Inventory   `json:"inventory"`
	Verdict   Verdict     `json:"verdict"`
	Log       []LogEntry  `json:"log"`
}
