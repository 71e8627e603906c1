// Package analysis runs one alt-account analysis end to end.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"altlens/internal/badges"
	"altlens/internal/inventory"
	"altlens/internal/logging"
	"altlens/internal/metrics"
	"altlens/internal/model"
	"altlens/internal/roblox"
)

// Client is the remote surface an analysis needs.
type Client interface {
	LookupUserID(ctx context.Context, username string) (int64, error)
	GetProfile(ctx context.Context, userID int64) (model.Profile, error)
	GetSocial(ctx context.Context, userID int64) (model.Social, error)
	GetAvatars(ctx context.Context, userID int64) ([]model.Avatar, error)
	FetchAllBadges(ctx context.Context, userID int64, progress *logging.Progress) ([]model.Badge, error)
	inventory.Source
}

// Analyzer scores accounts. It holds no per-run state and may be shared.
type Analyzer struct {
	client Client
	now    func() time.Time
}

type Option func(*Analyzer)

// WithClock sets the clock used for account age.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

func New(client Client, opts ...Option) *Analyzer {
	a := &Analyzer{client: client, now: time.Now}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run analyzes username using apiKey for inventory access.
func (a *Analyzer) Run(ctx context.Context, username, apiKey string) (model.Report, error) {
	return a.RunWithSink(ctx, username, apiKey, nil)
}

// RunWithSink is Run with every progress entry also passed to sink as it
// happens. On error the returned report carries only the progress log.
func (a *Analyzer) RunWithSink(ctx context.Context, username, apiKey string, sink func(model.LogEntry)) (model.Report, error) {
	start := time.Now()
	metrics.AnalysisRuns.Inc()
	defer metrics.ObserveAnalysisDuration(start)

	runID := uuid.New()
	progress := logging.NewProgress(runID.String(), sink)
	username = strings.TrimSpace(username)
	apiKey = strings.TrimSpace(apiKey)
	report := model.Report{RunID: runID, Username: username}

	fail := func(err error) (model.Report, error) {
		kind := Classify(err)
		metrics.AnalysisErrors.WithLabelValues(kind).Inc()
		progress.Errorf("Error: %v", err)
		logging.Warn("analysis failed", zap.String("run_id", runID.String()), zap.String("username", username), zap.String("kind", kind), zap.Error(err))
		report.Log = progress.Entries()
		return report, err
	}

	if username == "" || apiKey == "" {
		return fail(ErrMissingInput)
	}

	progress.Infof("Starting analysis for: %s", username)
	progress.Infof("Fetching user ID...")
	userID, err := a.client.LookupUserID(ctx, username)
	switch {
	case errors.Is(err, roblox.ErrUserNotFound):
		return fail(fmt.Errorf("%w: %s", ErrNotFound, username))
	case err != nil:
		return fail(unexpected(ctx, err))
	}
	progress.Successf("Found user ID: %d", userID)

	progress.Infof("Fetching user profile...")
	if err := a.fetchAccount(ctx, userID, &report, progress); err != nil {
		return fail(unexpected(ctx, err))
	}
	progress.Successf("Profile data received")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := a.badgePipeline(gctx, userID, progress)
		report.Badges = res
		return err
	})
	g.Go(func() error {
		progress.Infof("Fetching inventory...")
		inv, err := inventory.Collect(gctx, a.client, userID, apiKey, progress)
		if err != nil {
			return err
		}
		if inv.Private {
			progress.Warnf("Inventory is private")
		} else {
			progress.Successf("Inventory: %d shirts, %d pants, %d accessories, %d gamepasses", inv.Shirts, inv.Pants, inv.Accessories, inv.Gamepasses)
		}
		report.Inventory = inv
		return nil
	})
	if err := g.Wait(); err != nil {
		return fail(unexpected(ctx, err))
	}

	report.AgeDays = report.Profile.AgeDays(a.now())
	report.Verdict = model.Score(report.AgeDays, report.Badges, report.Inventory, report.Social.Friends)
	metrics.Verdicts.WithLabelValues(report.Verdict.Category).Inc()
	progress.Successf("Analysis complete! Score: %d, Category: %s", report.Verdict.Score, report.Verdict.Category)
	logging.Info("analysis complete",
		zap.String("run_id", runID.String()),
		zap.Int64("user_id", userID),
		zap.Int("score", report.Verdict.Score),
		zap.String("category", report.Verdict.Category),
		zap.Duration("took", time.Since(start)),
	)
	report.Log = progress.Entries()
	return report, nil
}

// fetchAccount loads profile, social counts and avatars concurrently.
// Avatars are optional.
func (a *Analyzer) fetchAccount(ctx context.Context, userID int64, report *model.Report, progress *logging.Progress) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := a.client.GetProfile(gctx, userID)
		if err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		report.Profile = p
		return nil
	})
	g.Go(func() error {
		s, err := a.client.GetSocial(gctx, userID)
		if err != nil {
			return fmt.Errorf("social: %w", err)
		}
		report.Social = s
		return nil
	})
	g.Go(func() error {
		av, err := a.client.GetAvatars(gctx, userID)
		if err != nil {
			progress.Warnf("Avatar unavailable: %v", err)
			return nil
		}
		report.Avatars = av
		return nil
	})
	return g.Wait()
}

func (a *Analyzer) badgePipeline(ctx context.Context, userID int64, progress *logging.Progress) (model.BadgeResult, error) {
	progress.Infof("Fetching badges...")
	all, err := a.client.FetchAllBadges(ctx, userID, progress)
	if err != nil {
		return model.BadgeResult{}, err
	}
	progress.Successf("Fetched %d total badges", len(all))

	progress.Infof("Processing badges...")
	progress.Infof("Found %d creators with %d+ badges", badges.MassIssuers(all), badges.MassIssuerThreshold)
	res := badges.Aggregate(all)
	if res.ReferenceFound {
		progress.Successf("GAR badge found! %s", res.Summary())
	}
	progress.Successf("Valid badges: %d, Filtered: %d (%s%%)", res.Genuine, res.Filtered, strconv.FormatFloat(res.FilteredPercent, 'f', -1, 64))
	return res, nil
}
