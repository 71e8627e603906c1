package model

import (
	"fmt"
	"strconv"
)

// Category labels, highest risk first.
const (
	VerdictFakeBadges         = "Auto-Failed (Fake Badges)"
	VerdictInsufficientBadges = "Auto-Failed (Insufficient Badges)"
	VerdictHigh               = "HIGH"
	VerdictMediumHigh         = "MEDIUM-HIGH"
	VerdictMedium             = "MEDIUM"
	VerdictLow                = "LOW"
)

const (
	minGenuineBadges = 210
	fakeBadgePercent = 78
)

// verdictLadder maps minimum scores to categories, descending.
var verdictLadder = []struct {
	min      int
	category string
}{
	{200, VerdictFakeBadges},
	{100, VerdictInsufficientBadges},
	{50, VerdictHigh},
	{16, VerdictMediumHigh},
	{8, VerdictMedium},
}

// Score estimates alt likelihood from account age in days, the badge
// reduction, inventory counts and friend count. Every rule that fires adds
// its weight and one reason, in rule order.
func Score(ageDays int, badges BadgeResult, inv Inventory, friends int) Verdict {
	score := 0
	reasons := []string{}
	add := func(w int, reason string) {
		score += w
		reasons = append(reasons, reason)
	}

	if badges.Genuine < minGenuineBadges {
		add(100, fmt.Sprintf("Auto-Fail: <%d real badges", minGenuineBadges))
	}
	pct := badges.FilteredPercent
	if pct >= fakeBadgePercent || (pct >= 80 && badges.Genuine < 750) {
		add(200, fmt.Sprintf("Auto-Fail: %s%% fake badges", strconv.FormatFloat(pct, 'f', -1, 64)))
	}

	if badges.ReferenceFound {
		switch fromEnd := badges.PagesFromEnd(); {
		case fromEnd <= 2:
			add(12, "GAR badge very old (+12)")
		case fromEnd <= 4:
			add(8, "GAR badge old (+8)")
		case fromEnd <= 6:
			add(4, "GAR badge somewhat old (+4)")
		}
	}

	switch {
	case ageDays < 7:
		add(35, "Very new account (+35)")
	case ageDays < 30:
		add(25, "New account (+25)")
	case ageDays < 90:
		add(15, "Young account (+15)")
	}

	switch {
	case friends == 0:
		add(15, "No friends (+15)")
	case friends < 5:
		add(10, fmt.Sprintf("Few friends (%d) (+10)", friends))
	}

	if !inv.Private {
		if inv.Clothing() == 0 && ageDays > 30 {
			add(15, "No clothing (+15)")
		}
		if inv.Gamepasses < 5 && ageDays > 180 {
			add(12, "Few gamepasses (+12)")
		}
	}

	return Verdict{Score: score, Category: Categorize(score), Reasons: reasons}
}

// Categorize returns the first category whose threshold score reaches.
func Categorize(score int) string {
	for _, step := range verdictLadder {
		if score >= step.min {
			return step.category
		}
	}
	return VerdictLow
}

// AutoFailed reports whether category is one of the auto-fail tiers.
func AutoFailed(category string) bool {
	return category == VerdictFakeBadges || category == VerdictInsufficientBadges
}
