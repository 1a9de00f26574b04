package main

import (
	"github.com/alecthomas/kong"

	"github.com/julianstephens/triage/internal/cli"
	"github.com/julianstephens/triage/internal/config"
	"github.com/julianstephens/triage/internal/constants"
	"github.com/julianstephens/triage/internal/errors"
	"github.com/julianstephens/triage/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string  `help:"Config file path." type:"string" default:"~/.config/triage/config.yaml"`
	Debug   bool    `help:"Enable debug logging."`
	Backend string  `help:"Storage backend (memory or sqlite). Overrides the config file."`
	Latency float64 `help:"Latency factor for simulated calls, 0 disables latency. Negative keeps the configured value." default:"-1"`
	Failure float64 `help:"Probability (0-1) that a simulated call fails. Negative keeps the configured value." default:"-1"`

	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	List   cli.ListCmd   `cmd:"" help:"List feedback."`
	Show   cli.ShowCmd   `cmd:"" help:"Show one feedback item with its notes."`
	Search cli.SearchCmd `cmd:"" help:"Search feedback."`
	Stats  cli.StatsCmd  `cmd:"" help:"Show the analytics summary."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Customer feedback triage dashboard"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	errors.Fatal(err)
	if CLI.Debug {
		cfg.Debug = true
	}
	if CLI.Backend != "" {
		cfg.Backend = CLI.Backend
	}
	if CLI.Latency >= 0 {
		cfg.Gateway.LatencyFactor = CLI.Latency
	}
	if CLI.Failure >= 0 {
		cfg.Gateway.FailureRate = CLI.Failure
	}
	errors.Fatal(cfg.Validate())

	errors.Fatal(logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: cfg.Dir,
		Console:   ctx.Command() != "tui",
	}))
	logger.Debug("Starting", "command", ctx.Command(), "backend", cfg.Backend)

	appCtx, err := cli.NewContext(cfg)
	errors.Fatal(err)

	err = ctx.Run(appCtx)
	if cerr := appCtx.Close(); cerr != nil {
		logger.Warn("Failed to close storage", "error", cerr)
	}
	errors.Fatal(err)
	_ = logger.Close()
}
