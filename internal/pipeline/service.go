package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/brandscope/visibility-bot/internal/analysis"
	"github.com/brandscope/visibility-bot/internal/config"
	"github.com/brandscope/visibility-bot/internal/models"
	"github.com/brandscope/visibility-bot/internal/notifications"
	"github.com/brandscope/visibility-bot/internal/platforms"
	"github.com/brandscope/visibility-bot/internal/prompts"
	"github.com/brandscope/visibility-bot/internal/scoring"
	"github.com/brandscope/visibility-bot/internal/storage"
)

// RunMetrics receives pipeline-level observations; a nil recorder disables
// instrumentation
type RunMetrics interface {
	ObserveRun(status string, duration time.Duration)
	SetVisibilityScore(brand string, score float64)
}

// Service runs the end-to-end visibility analysis: prompt generation,
// platform querying, mention and competitor analysis, scoring, and
// publication of the result bundle.
type Service struct {
	config     *config.Config
	gateway    *platforms.Gateway
	generator  *prompts.Generator
	analyzer   *analysis.Analyzer
	aggregator *analysis.Aggregator
	scorer     *scoring.Scorer
	storage    storage.Interface
	notifier   notifications.Interface
	metrics    RunMetrics
	validate   *validator.Validate

	mu      sync.RWMutex
	lastRun *models.RunSummary
}

// NewService creates a pipeline service over the given collaborators.
// collector may be nil.
func NewService(cfg *config.Config, gateway *platforms.Gateway, store storage.Interface, notifier notifications.Interface, collector RunMetrics) *Service {
	analyzer := analysis.NewAnalyzer(nil)
	return &Service{
		config:     cfg,
		gateway:    gateway,
		generator:  prompts.NewGenerator(),
		analyzer:   analyzer,
		aggregator: analysis.NewAggregator(analyzer),
		scorer:     scoring.NewScorer(),
		storage:    store,
		notifier:   notifier,
		metrics:    collector,
		validate:   validator.New(),
	}
}

// DefaultProfile builds the analysis profile from configuration, used by
// scheduled runs and the manual trigger endpoint
func (s *Service) DefaultProfile() models.BrandProfile {
	return models.BrandProfile{
		BrandName:      s.config.BrandName,
		Industry:       s.config.Industry,
		CustomIndustry: s.config.CustomIndustry,
		Location:       s.config.Location,
		Competitors:    s.config.Competitors,
		PromptCount:    s.config.PromptCount,
		Platforms:      s.config.Platforms,
	}
}

// LastRun returns the summary of the most recent successful run, or nil
func (s *Service) LastRun() *models.RunSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun
}

// Run executes one complete visibility analysis for the profile and publishes
// the result bundle. Publication is all-or-nothing: when any stage fails the
// run aborts, nothing is stored, and the system stays safe to retry.
func (s *Service) Run(ctx context.Context, profile models.BrandProfile) (*models.ResultBundle, error) {
	start := time.Now()
	runID := uuid.New().String()

	logrus.Infof("Starting visibility analysis run %s for %s", runID, profile.BrandName)

	bundle, err := s.run(ctx, runID, profile)
	duration := time.Since(start)

	if err != nil {
		s.observeRun("failure", duration)
		logrus.Errorf("Visibility analysis run %s failed: %v", runID, err)
		return nil, err
	}

	s.observeRun("success", duration)
	if s.metrics != nil {
		s.metrics.SetVisibilityScore(profile.BrandName, bundle.VisibilityScore.OverallScore)
	}
	s.recordLastRun(bundle, start, duration)

	logrus.Infof("Visibility analysis run %s completed in %v (score %.1f, %d mentions)",
		runID, duration, bundle.VisibilityScore.OverallScore, bundle.BrandAnalysis.TotalMentions)

	return bundle, nil
}

func (s *Service) run(ctx context.Context, runID string, profile models.BrandProfile) (bundle *models.ResultBundle, err error) {
	// Unexpected failures surface as a failed run, never as a crash of the
	// serving process.
	defer func() {
		if r := recover(); r != nil {
			bundle = nil
			err = fmt.Errorf("visibility pipeline panicked: %v", r)
		}
	}()

	if err := s.validateProfile(profile); err != nil {
		return nil, err
	}

	promptList, err := s.buildPrompts(profile)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Generated %d prompts for %s analysis", len(promptList), profile.Industry)

	orchestrator := analysis.NewOrchestrator(s.gateway)
	orchestrator.OnProgress = func(done, total int) {
		if done%10 == 0 || done == total {
			logrus.Debugf("Query progress: %d/%d", done, total)
		}
	}
	responses := orchestrator.Run(ctx, profile.Platforms, promptList)

	// The response set is read-only from here on, so the competitor rollup
	// runs alongside the brand analysis. A panic on either path ends up on
	// this goroutine, where the run-level recover turns it into a failed run.
	var brandAnalysis models.EntityAnalysis
	var competitorAnalyses []models.EntityAnalysis

	var wg sync.WaitGroup
	var competitorPanic any
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() { competitorPanic = recover() }()
		competitorAnalyses = s.aggregator.AnalyzeCompetitors(responses, profile.Competitors)
	}()
	brandAnalysis = s.analyzer.AnalyzeMentions(responses, profile.BrandName)
	wg.Wait()
	if competitorPanic != nil {
		panic(competitorPanic)
	}

	report := s.aggregator.BuildReport(brandAnalysis, competitorAnalyses)
	score := s.scorer.Score(brandAnalysis, competitorAnalyses)

	bundle = &models.ResultBundle{
		RunID:              runID,
		Profile:            profile,
		Prompts:            promptList,
		Responses:          responses,
		BrandAnalysis:      brandAnalysis,
		CompetitorAnalysis: report,
		VisibilityScore:    score,
		Timestamp:          time.Now().UTC(),
	}

	if err := s.store(ctx, bundle); err != nil {
		return nil, err
	}

	// The bundle is published at this point; notification failures are
	// logged, not turned into a failed run.
	if err := s.notify(bundle); err != nil {
		logrus.Errorf("Failed to send notifications for run %s: %v", runID, err)
	}

	return bundle, nil
}

func (s *Service) validateProfile(profile models.BrandProfile) error {
	if err := s.validate.Struct(profile); err != nil {
		return fmt.Errorf("invalid brand profile: %w", err)
	}

	registry := s.gateway.Registry()
	for _, id := range profile.Platforms {
		if _, ok := registry.Get(id); !ok {
			return fmt.Errorf("invalid brand profile: unknown platform %s", id)
		}
	}

	return nil
}

func (s *Service) buildPrompts(profile models.BrandProfile) ([]string, error) {
	promptList, err := s.generator.Generate(profile.Industry, profile.PromptCount, profile.Location, profile.CustomIndustry)
	if err != nil {
		return nil, fmt.Errorf("prompt generation failed: %w", err)
	}

	// The generated list already holds exactly the requested count; only the
	// competitor extension goes through validation before it is appended.
	if s.config.CompetitorPrompts {
		extension := prompts.ValidatePrompts(
			s.generator.CompetitorPrompts(profile.Industry, profile.BrandName, profile.Competitors, profile.Location))
		promptList = append(promptList, extension...)
	}

	return promptList, nil
}

func (s *Service) store(ctx context.Context, bundle *models.ResultBundle) error {
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result bundle: %w", err)
	}

	name := resultName(bundle.Profile.BrandName, bundle.Timestamp)
	if err := s.storage.Store(ctx, name, data); err != nil {
		return fmt.Errorf("failed to store result bundle: %w", err)
	}

	return nil
}

func (s *Service) notify(bundle *models.ResultBundle) error {
	var errs []string

	if err := s.notifier.SendReport(bundle); err != nil {
		errs = append(errs, fmt.Sprintf("report: %v", err))
	}

	if bundle.VisibilityScore.OverallScore < s.config.AlertThreshold {
		subject := fmt.Sprintf("Visibility Alert - %s", bundle.Profile.BrandName)
		message := fmt.Sprintf("Overall visibility score %.1f fell below the alert threshold %.1f",
			bundle.VisibilityScore.OverallScore, s.config.AlertThreshold)
		if err := s.notifier.SendAlert(subject, message); err != nil {
			errs = append(errs, fmt.Sprintf("alert: %v", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

func (s *Service) recordLastRun(bundle *models.ResultBundle, started time.Time, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRun = &models.RunSummary{
		RunID:         bundle.RunID,
		Brand:         bundle.Profile.BrandName,
		OverallScore:  bundle.VisibilityScore.OverallScore,
		TotalMentions: bundle.BrandAnalysis.TotalMentions,
		Platforms:     bundle.BrandAnalysis.PlatformMentions,
		StartedAt:     started,
		Duration:      duration.String(),
	}
}

func (s *Service) observeRun(status string, duration time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveRun(status, duration)
	}
}

// resultName builds the stored bundle name, for example
// analysis-acme-corp-2026-03-14-09-30-00.json
func resultName(brand string, ts time.Time) string {
	slug := strings.Join(strings.Fields(strings.ToLower(brand)), "-")
	return fmt.Sprintf("analysis-%s-%s.json", slug, ts.Format("2006-01-02-15-04-05"))
}
