// Package badges separates genuine achievement badges from farmed noise and
// reduces an account's badge history to a model.BadgeResult.
package badges

import (
	"altlens/internal/model"
	"altlens/internal/util"
)

// spamCreators are groups known to mass-issue badges.
var spamCreators = map[int64]struct{}{
	12812691:    {},
	33902982:    {},
	5088172:     {},
	15750958230: {},
	11858305:    {},
	32488102:    {},
	13617167:    {},
	4705120:     {},
	5218018:     {},
}

// lowEffortKeywords mark badges awarded for trivial actions.
var lowEffortKeywords = []string{
	"obby", "easy", "free", "quick", "simple", "fast", "auto", "afk", "idle", "click",
	"simulator", "tycoon", "farm", "grind", "noob", "pro", "legend", "master", "expert",
	"stage", "camp", "level", "collect", "find", "touch", "press", "walk", "run", "jump",
	"badge", "drop", "welcome", "visitor",
}

// IsGenuine reports whether b looks like a real achievement.
func IsGenuine(b model.Badge) bool {
	if b.Name == "" || b.CreatorID == 0 {
		return false
	}
	if _, spam := spamCreators[b.CreatorID]; spam {
		return false
	}
	if util.IsDigits(util.StripWhitespace(b.Name)) {
		return false
	}
	return !util.ContainsAnyCaseInsensitive(b.Name, lowEffortKeywords)
}
