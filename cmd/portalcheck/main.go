// portalcheck runs a YAML scenario plan against a live portal URL and
// reports per-scenario pass/fail plus a summary.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/kuitang/portalcheck/internal/browser"
	"github.com/kuitang/portalcheck/internal/config"
	"github.com/kuitang/portalcheck/internal/engine"
	"github.com/kuitang/portalcheck/internal/obs"
	"github.com/kuitang/portalcheck/internal/scenario"
)

func main() {
	os.Exit(run())
}

func run() int {
	obs.Init()
	log := obs.Pkg("main")

	flags := config.ParseFlags()
	cfg, err := config.LoadConfig(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	cfg.PrintStartupSummary()

	plan, err := scenario.LoadPlan(cfg.PlanPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	portalURL := plan.PortalURL
	if cfg.PortalURL != "" {
		portalURL = cfg.PortalURL
	}

	eng := engine.New(func() (engine.Session, error) {
		return browser.Acquire(cfg.Browser)
	}, cfg.EngineOptions())

	report, err := eng.Run(context.Background(), portalURL, plan.Scenarios)
	if err != nil {
		log.Error("run aborted", "error", err)
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 2
	}

	printReport(report)

	if cfg.JSONOutput {
		if err := json.NewEncoder(os.Stdout).Encode(report); err != nil {
			log.Error("encode report", "error", err)
			return 2
		}
	}

	if !report.OK() {
		return 1
	}
	return 0
}

func printReport(report *engine.Report) {
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	dim := color.New(color.Faint)

	for i, result := range report.Results {
		label := result.Scenario.Description
		if label == "" {
			label = fmt.Sprintf("%s %s", result.Scenario.Action, result.Scenario.Target)
		}
		if result.Passed {
			pass.Fprintf(os.Stderr, "  PASS  ")
		} else {
			fail.Fprintf(os.Stderr, "  FAIL  ")
		}
		fmt.Fprintf(os.Stderr, "[%d] %s", i+1, label)
		dim.Fprintf(os.Stderr, " (%dms)\n", result.DurationMS)
		if !result.Passed {
			dim.Fprintf(os.Stderr, "        %s\n", result.Error)
		}
	}

	fmt.Fprintln(os.Stderr, "")
	summary := report.Summary
	if report.OK() {
		pass.Fprintf(os.Stderr, "%d/%d scenarios passed\n", summary.Passed, summary.Total)
	} else {
		fail.Fprintf(os.Stderr, "%d/%d scenarios failed\n", summary.Failed, summary.Total)
	}
}
