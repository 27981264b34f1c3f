package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/brandscope/visibility-bot/internal/config"
	"github.com/brandscope/visibility-bot/internal/notifications"
	"github.com/brandscope/visibility-bot/internal/pipeline"
	"github.com/brandscope/visibility-bot/internal/platforms"
)

// runTimeout bounds one scheduled analysis run
const runTimeout = 30 * time.Minute

// Service schedules recurring analysis runs and connectivity audits
type Service struct {
	config   *config.Config
	pipeline *pipeline.Service
	gateway  *platforms.Gateway
	notifier notifications.Interface
	cron     *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, pipelineService *pipeline.Service, gateway *platforms.Gateway, notifier notifications.Interface) *Service {
	return &Service{
		config:   cfg,
		pipeline: pipelineService,
		gateway:  gateway,
		notifier: notifier,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled runs
func (s *Service) Start() error {
	if s.config.BrandName == "" {
		logrus.Warn("BRAND_NAME is not configured, scheduled analysis runs are disabled")
	} else {
		var cronExpression string
		switch s.config.Schedule {
		case "daily":
			// Run daily at 9 AM
			cronExpression = "0 0 9 * * *"
		default:
			// Run weekly on Monday at 9 AM
			cronExpression = "0 0 9 * * MON"
		}

		if _, err := s.cron.AddFunc(cronExpression, s.runScheduledAnalysis); err != nil {
			return err
		}
	}

	// Check platform connectivity every 4 hours
	if _, err := s.cron.AddFunc("0 0 */4 * * *", s.runConnectivityAudit); err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s schedule (plus connectivity audits every 4 hours)", s.config.Schedule)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}

func (s *Service) runScheduledAnalysis() {
	logrus.Info("Starting scheduled visibility analysis")

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if _, err := s.pipeline.Run(ctx, s.pipeline.DefaultProfile()); err != nil {
		logrus.Errorf("Scheduled analysis run failed: %v", err)
	}
}

// runConnectivityAudit probes every enabled platform and alerts on the ones
// that stopped answering. Platforms without credentials are skipped.
func (s *Service) runConnectivityAudit() {
	logrus.Info("Starting platform connectivity audit")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	status := s.gateway.Status(ctx)

	var unreachable []string
	for _, id := range s.gateway.Registry().EnabledNames() {
		if !status[id] {
			unreachable = append(unreachable, id)
		}
	}

	if len(unreachable) == 0 {
		logrus.Info("Connectivity audit passed for all enabled platforms")
		return
	}

	logrus.Warnf("Connectivity audit found unreachable platforms: %s", strings.Join(unreachable, ", "))

	message := fmt.Sprintf("The following AI platforms are unreachable: %s", strings.Join(unreachable, ", "))
	if err := s.notifier.SendAlert("Platform Connectivity Alert", message); err != nil {
		logrus.Errorf("Failed to send connectivity alert: %v", err)
	}
}
