package badges

import (
	"math"

	"altlens/internal/model"
)

const (
	// ReferenceBadgeID is the well-known badge whose rank approximates how
	// long the account has been active.
	ReferenceBadgeID int64 = 2124527902

	// PageSize is the page size the reference rank is expressed in.
	PageSize = 30

	// MassIssuerThreshold is the badge count at which a creator is treated
	// as a farm for the whole run.
	MassIssuerThreshold = 50

	// MaxPerCreator caps how many badges one creator can contribute.
	MaxPerCreator = 15
)

// Aggregate classifies every badge exactly once and locates the reference
// badge. The input is expected newest first.
//
// Mass issuers are computed over the whole input before any badge is
// accepted, so a creator crossing the threshold late never leaves accepted
// badges behind.
func Aggregate(all []model.Badge) model.BadgeResult {
	excluded := massIssuers(all)
	retained := make(map[int64]int)

	var res model.BadgeResult
	refPos := -1
	for i, b := range all {
		if b.ID == ReferenceBadgeID && refPos < 0 {
			refPos = i
		}
		if _, ok := excluded[b.CreatorID]; ok {
			res.Filtered++
			continue
		}
		if !IsGenuine(b) {
			res.Filtered++
			continue
		}
		if retained[b.CreatorID] >= MaxPerCreator {
			res.Filtered++
			continue
		}
		retained[b.CreatorID]++
		res.Genuine++
	}

	n := len(all)
	res.TotalPages = (n + PageSize - 1) / PageSize
	if refPos >= 0 {
		res.ReferenceFound = true
		res.ReferencePage = refPos/PageSize + 1
	}
	if n > 0 {
		res.FilteredPercent = math.Round(float64(res.Filtered)/float64(n)*1000) / 10
	}
	return res
}

// massIssuers returns creators that issued at least MassIssuerThreshold badges.
func massIssuers(all []model.Badge) map[int64]struct{} {
	counts := make(map[int64]int)
	out := make(map[int64]struct{})
	for _, b := range all {
		if b.CreatorID == 0 {
			continue
		}
		counts[b.CreatorID]++
		if counts[b.CreatorID] >= MassIssuerThreshold {
			out[b.CreatorID] = struct{}{}
		}
	}
	return out
}

// MassIssuers counts creators at or above MassIssuerThreshold.
func MassIssuers(all []model.Badge) int { return len(massIssuers(all)) }
