package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"altlens/internal/logging"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()
	defer func() { _ = logging.Sync() }()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "altlens"
	app.Usage = "score how likely a Roblox account is an alt"
	app.Action = cli.ShowAppHelp
	app.Flags = []cli.Flag{configFlag()}
	app.Commands = []*cli.Command{
		{
			Name:   "init",
			Usage:  "Create a config file",
			Action: cmdInit,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "path", Value: configPathDefault(), Usage: "path to write config"},
			},
		},
		{
			Name:      "analyze",
			Usage:     "Analyze one account",
			ArgsUsage: "[username]",
			Action:    cmdAnalyze,
			Flags: []cli.Flag{
				configFlag(),
				&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "account to analyze"},
				&cli.StringFlag{Name: "api-key", Usage: "Open Cloud API key", EnvVars: []string{"ROBLOX_API_KEY"}},
				&cli.BoolFlag{Name: "json", Usage: "print the report as JSON"},
				&cli.BoolFlag{Name: "verbose", Usage: "also write structured logs to stderr"},
			},
		},
		{
			Name:   "serve",
			Usage:  "Start the HTTP API",
			Action: cmdServe,
			Flags: []cli.Flag{
				configFlag(),
				&cli.StringFlag{Name: "addr", Usage: "listen address (overrides server.addr)"},
			},
		},
	}
	return app
}

func configFlag() cli.Flag {
	return &cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: configPathDefault(), Usage: "config path", EnvVars: []string{"ALTLENS_CONFIG"}}
}
