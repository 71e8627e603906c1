package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"altlens/internal/analysis"
	"altlens/internal/api"
	"altlens/internal/cmdlog"
	"altlens/internal/config"
	"altlens/internal/logging"
	"altlens/internal/metrics"
	"altlens/internal/model"
	"altlens/internal/roblox"
	"altlens/internal/theme"
)

func configPathDefault() string { return "./" + config.DefaultPath }

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newAnalyzer(cfg config.Config) *analysis.Analyzer {
	return analysis.New(roblox.NewHTTPClient(cfg.ClientOptions()))
}

func cmdInit(c *cli.Context) error {
	return cmdlog.Run("init", func() error {
		path := c.String("path")
		if err := config.Save(path, config.Default()); err != nil {
			return err
		}
		abs, _ := filepath.Abs(path)
		theme.PrintBanner(c.App.Writer)
		fmt.Fprintln(c.App.Writer, "Config written to:", abs)
		return nil
	})
}

func cmdAnalyze(c *cli.Context) error {
	return cmdlog.Run("analyze", func() error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		if c.Bool("verbose") {
			if err := logging.Init(cfg.Log.Env); err != nil {
				return err
			}
		}
		metrics.StartServer(cfg.Metrics.Addr)

		username := c.String("username")
		if username == "" {
			username = c.Args().First()
		}
		apiKey := c.String("api-key")
		if apiKey == "" {
			apiKey = cfg.Credentials.APIKey
		}

		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := c.App.Writer
		asJSON := c.Bool("json")
		var sink func(model.LogEntry)
		if !asJSON {
			theme.PrintBanner(out)
			sink = func(e model.LogEntry) { fmt.Fprintln(out, theme.Entry(e)) }
		}
		report, err := newAnalyzer(cfg).RunWithSink(ctx, username, apiKey, sink)
		if err != nil {
			return err
		}
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		printReport(c, report)
		return nil
	})
}

func printReport(c *cli.Context, r model.Report) {
	w := c.App.Writer
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s (@%s, id %d)\n", r.Profile.DisplayName, r.Profile.Name, r.Profile.ID)
	fmt.Fprintf(w, "Account age:  %d days\n", r.AgeDays)
	fmt.Fprintf(w, "Social:       %d friends, %d followers, %d following, %d groups\n", r.Social.Friends, r.Social.Followers, r.Social.Following, r.Social.Groups)
	fmt.Fprintf(w, "Badges:       %d genuine, %d filtered (%.1f%%)\n", r.Badges.Genuine, r.Badges.Filtered, r.Badges.FilteredPercent)
	fmt.Fprintf(w, "GAR badge:    %s\n", r.Badges.Summary())
	if r.Inventory.Private {
		fmt.Fprintln(w, "Inventory:    private")
	} else {
		fmt.Fprintf(w, "Inventory:    %d clothing, %d accessories, %d gamepasses\n", r.Inventory.Clothing(), r.Inventory.Accessories, r.Inventory.Gamepasses)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Verdict:", theme.Verdict(r.Verdict))
	for _, reason := range r.Verdict.Reasons {
		fmt.Fprintln(w, "  -", reason)
	}
}

func cmdServe(c *cli.Context) error {
	return cmdlog.Run("serve", func() error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		if err := logging.Init(cfg.Log.Env); err != nil {
			return err
		}
		metrics.StartServer(cfg.Metrics.Addr)

		addr := cfg.Server.Addr
		if a := c.String("addr"); a != "" {
			addr = a
		}
		srv := &http.Server{
			Addr: addr,
			Handler: api.NewRouter(&api.RouterConfig{
				Analyzer:      newAnalyzer(cfg),
				DefaultAPIKey: cfg.Credentials.APIKey,
			}),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logging.Info("server starting", zap.String("addr", addr))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		logging.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}
