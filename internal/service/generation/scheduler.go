package generation

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/prompts"
)

// DefaultScheduleInterval is how often the scheduler considers a run.
const DefaultScheduleInterval = 24 * time.Hour

// requestFromSettings assembles a Request from stored settings, the same
// inputs a scheduled run would have used in the admin surface.
func (s *Service) requestFromSettings() Request {
	req := Request{
		Tone:        prompts.Tone(s.settings.Get(SettingTone, string(prompts.ToneDefault))),
		CustomTone:  s.settings.Get(SettingCustomTone, ""),
		CharLimit:   s.settings.GetInt(SettingCharLimit, 200),
		Model:       s.settings.Get(SettingSelectedModel, ""),
		GenerateSEO: s.settings.GetBool(SettingGenerateSEO, false),
	}

	for _, kw := range strings.Split(s.settings.Get(SettingKeywords, ""), ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			req.Keywords = append(req.Keywords, kw)
		}
	}
	for _, raw := range strings.Split(s.settings.Get(SettingSelectedCategories, ""), ",") {
		if id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32); err == nil {
			req.CategoryIDs = append(req.CategoryIDs, uint(id))
		}
	}
	return req
}

// RunScheduled executes one settings-driven run. Failures are mailed to
// the administrator when notifications are enabled.
func (s *Service) RunScheduled(ctx context.Context) (*Result, error) {
	result, err := s.GeneratePost(ctx, s.requestFromSettings())
	if err != nil {
		s.logger.Error("scheduled generation failed", "error", err)
		s.NotifyFailure(err)
		return nil, err
	}
	return result, nil
}

// StartScheduler runs settings-driven generation on a fixed interval
// until ctx is cancelled. Runs are skipped while auto-creation is
// disabled, so the toggle takes effect without a restart.
func (s *Service) StartScheduler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultScheduleInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			if !s.settings.GetBool(SettingAutoCreate, false) {
				continue
			}
			if _, err := s.RunScheduled(ctx); err == nil {
				s.logger.Info("scheduled post created")
			}
		}
	}
}
