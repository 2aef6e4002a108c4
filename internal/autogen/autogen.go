// Package autogen schedules unattended calendar generation. When enabled
// it wakes on a cron schedule, loads the configured request file and
// generates the coming week's calendar.
package autogen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/adhocore/gronx"

	"mastermind/pkg/config"
	"mastermind/pkg/generate"
	"mastermind/pkg/logger"
	"mastermind/pkg/models"
	"mastermind/pkg/store"
)

const defaultCron = "0 6 * * 1"

// Start starts the autogen scheduler if enabled. Returns a cancel func.
func Start(ctx context.Context, eff config.EffectiveConfigResult, gen *generate.Generator) (context.CancelFunc, error) {
	ag := eff.Config.Autogen

	if !ag.Enabled {
		logger.Info("autogen_disabled")
		return func() {}, nil
	}

	if ag.RequestFile == "" {
		return nil, fmt.Errorf("autogen enabled but autogen.request_file is not set")
	}
	// fail fast when the request file is unreadable at startup
	if _, err := loadRequest(ag.RequestFile); err != nil {
		return nil, err
	}

	cronExpr := ag.Cron
	if cronExpr == "" {
		cronExpr = defaultCron
	}
	if !gronx.IsValid(cronExpr) {
		logger.Error("autogen_invalid_cron", "cron", ag.Cron)
		return nil, fmt.Errorf("invalid autogen cron expression: %s", ag.Cron)
	}

	logger.Info("autogen_enabled", "cron", cronExpr, "request_file", ag.RequestFile)
	ctx2, cancel := context.WithCancel(ctx)

	go runScheduler(ctx2, ag.RequestFile, cronExpr, gen)

	return cancel, nil
}

// runScheduler uses gronx to compute the next tick for the configured cron
// expression and sleeps until that time.
func runScheduler(ctx context.Context, requestFile, cronExpr string, gen *generate.Generator) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("autogen_scheduler_stopping")
			return
		default:
		}

		now := time.Now().UTC()
		next, err := gronx.NextTickAfter(cronExpr, now, false)
		if err != nil {
			logger.Error("autogen_nexttick_failed", "cron", cronExpr, "error", err)
			select {
			case <-time.After(30 * time.Second):
			case <-ctx.Done():
				logger.Info("autogen_scheduler_stopping")
				return
			}
			continue
		}

		wait := time.Until(next)
		if wait <= 0 {
			wait = time.Second
		}

		select {
		case <-time.After(wait):
			if err := runOnce(ctx, requestFile, gen); err != nil {
				logger.Error("autogen_run_error", "error", err)
			}
		case <-ctx.Done():
			logger.Info("autogen_scheduler_stopping")
			return
		}
	}
}

// runOnce loads the request file and generates a calendar for the coming
// week, overwriting any calendar already stored for that week.
func runOnce(ctx context.Context, requestFile string, gen *generate.Generator) error {
	req, err := loadRequest(requestFile)
	if err != nil {
		return err
	}
	// the request file always targets the coming week
	req.WeekStart = nil

	resp, err := gen.GenerateCalendar(ctx, req)
	if err != nil {
		return fmt.Errorf("autogen generation failed: %w", err)
	}
	if err := store.SaveCalendar(&resp); err != nil {
		return fmt.Errorf("autogen save failed: %w", err)
	}
	logger.Info("autogen_calendar_generated",
		"week_start", resp.Calendar.WeekStart.Format(time.RFC3339),
		"quality_score", resp.QualityScore)
	return nil
}

func loadRequest(path string) (models.CalendarRequest, error) {
	var req models.CalendarRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("autogen request file unreadable: %w", err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("autogen request file invalid: %w", err)
	}
	return req, nil
}
