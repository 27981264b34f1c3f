package platforms

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// probePrompt is the message used for connectivity checks
const probePrompt = "Hello, this is a test message."

// QueryMetrics receives query timings; a nil recorder disables instrumentation
type QueryMetrics interface {
	ObserveQuery(platform string, duration time.Duration, failed bool)
}

// Gateway wraps the registry with per-call timeouts and error absorption.
// A gateway query never fails: unknown platforms, client errors, and
// timeouts all come back as error-marked response strings, so one slow or
// broken platform can not take down an analysis run.
type Gateway struct {
	registry *Registry
	timeout  time.Duration
	metrics  QueryMetrics
}

// NewGateway creates a gateway over the registry. metrics may be nil.
func NewGateway(registry *Registry, timeout time.Duration, metrics QueryMetrics) *Gateway {
	return &Gateway{
		registry: registry,
		timeout:  timeout,
		metrics:  metrics,
	}
}

// Registry exposes the wrapped registry
func (g *Gateway) Registry() *Registry {
	return g.registry
}

// Query sends a prompt to one platform and always returns a response string
func (g *Gateway) Query(ctx context.Context, platformID, prompt string) string {
	platform, ok := g.registry.Get(platformID)
	if !ok {
		return fmt.Sprintf("Error: platform %s is not supported", platformID)
	}

	// fail fast without burning the timeout on a platform that can only 401
	if !platform.IsEnabled() {
		return fmt.Sprintf("%s API Error: API key not configured", platform.GetDisplayName())
	}

	queryCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	response, err := platform.Query(queryCtx, prompt)
	duration := time.Since(start)

	if err != nil {
		g.observe(platformID, duration, true)
		logrus.WithFields(logrus.Fields{
			"platform": platformID,
			"error":    err.Error(),
		}).Warn("Platform query failed")
		return fmt.Sprintf("%s API Error: %v", platform.GetDisplayName(), err)
	}

	g.observe(platformID, duration, false)
	return response
}

// IsErrorResponse reports whether a response string is an absorbed failure.
// Markers: "<DisplayName> API Error:" for client failures, "Error:" for
// unknown platforms, "Error querying" for worker-level recoveries.
func (g *Gateway) IsErrorResponse(response string) bool {
	if strings.HasPrefix(response, "Error:") || strings.HasPrefix(response, "Error querying ") {
		return true
	}
	for _, platform := range g.registry.All() {
		if strings.HasPrefix(response, platform.GetDisplayName()+" API Error:") {
			return true
		}
	}
	return false
}

// Probe checks whether one platform answers a test message
func (g *Gateway) Probe(ctx context.Context, platformID string) bool {
	return !g.IsErrorResponse(g.Query(ctx, platformID, probePrompt))
}

// Status probes every registered platform concurrently
func (g *Gateway) Status(ctx context.Context) map[string]bool {
	ids := g.registry.Names()
	results := make([]bool, len(ids))

	group, probeCtx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		group.Go(func() error {
			results[i] = g.Probe(probeCtx, id)
			return nil
		})
	}
	_ = group.Wait()

	status := make(map[string]bool, len(ids))
	for i, id := range ids {
		status[id] = results[i]
	}
	return status
}

func (g *Gateway) observe(platform string, duration time.Duration, failed bool) {
	if g.metrics != nil {
		g.metrics.ObserveQuery(platform, duration, failed)
	}
}
