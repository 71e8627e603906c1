package theme

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"altlens/internal/model"
)

func TestBannerNamesTool(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "ALTLENS")
}

func TestEntryColorsByLevel(t *testing.T) {
	at := time.Date(2026, 1, 2, 13, 4, 5, 0, time.UTC)
	line := Entry(model.LogEntry{Time: at, Level: "warning", Message: "Inventory is private"})
	assert.Contains(t, line, "13:04:05")
	assert.Contains(t, line, yellow+"Inventory is private")

	assert.Equal(t, green, LevelColor("success"))
	assert.Equal(t, red, LevelColor("error"))
	assert.Equal(t, cyan, LevelColor("info"))
}

func TestCategoryColor(t *testing.T) {
	assert.Equal(t, red, CategoryColor(model.VerdictFakeBadges))
	assert.Equal(t, red, CategoryColor(model.VerdictHigh))
	assert.Equal(t, magenta, CategoryColor(model.VerdictMediumHigh))
	assert.Equal(t, yellow, CategoryColor(model.VerdictMedium))
	assert.Equal(t, green, CategoryColor(model.VerdictLow))
	assert.Contains(t, Verdict(model.Verdict{Score: 27, Category: model.VerdictMediumHigh}), "MEDIUM-HIGH"+reset+" (score 27)")
}
