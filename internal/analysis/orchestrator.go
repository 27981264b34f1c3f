package analysis

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/brandscope/visibility-bot/internal/models"
)

// maxQueryWorkers caps the pool so no provider gets hammered
const maxQueryWorkers = 20

// QueryGateway issues one platform query and always returns a response
// string; failures come back as error-marked text, never as an error.
type QueryGateway interface {
	Query(ctx context.Context, platformID, prompt string) string
}

type queryJob struct {
	platform    string
	prompt      string
	promptIndex int
}

type queryResult struct {
	platform    string
	prompt      string
	promptIndex int
	response    string
}

// Orchestrator fans every (platform, prompt) pair out over a bounded worker
// pool and reassembles per-platform responses in canonical prompt order.
// OnProgress, when set, is invoked exactly once per completed pair from a
// single collector goroutine.
type Orchestrator struct {
	gateway    QueryGateway
	OnProgress func(done, total int)
}

// NewOrchestrator creates an orchestrator over the given gateway
func NewOrchestrator(gateway QueryGateway) *Orchestrator {
	return &Orchestrator{gateway: gateway}
}

// Run queries every prompt on every platform. It always returns a complete
// response set: failed or cancelled queries carry error-marked response
// strings, so len(responses[p]) == len(prompts) for every platform p.
func (o *Orchestrator) Run(ctx context.Context, platformIDs []string, prompts []string) models.PlatformResponses {
	total := len(platformIDs) * len(prompts)

	responses := make(models.PlatformResponses, len(platformIDs))
	for _, platform := range platformIDs {
		responses[platform] = make([]models.PromptResponse, 0, len(prompts))
	}
	if total == 0 {
		return responses
	}

	workers := len(platformIDs) * 5
	if total < workers {
		workers = total
	}
	if workers > maxQueryWorkers {
		workers = maxQueryWorkers
	}

	jobs := make(chan queryJob, total)
	results := make(chan queryResult, total)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- o.execute(ctx, job)
			}
		}()
	}

	for _, platform := range platformIDs {
		for i, prompt := range prompts {
			jobs <- queryJob{platform: platform, prompt: prompt, promptIndex: i}
		}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	// the collector alone touches the buffers and the progress counter
	done := 0
	for result := range results {
		responses[result.platform] = append(responses[result.platform], models.PromptResponse{
			Prompt:      result.prompt,
			Response:    result.response,
			PromptIndex: result.promptIndex,
		})
		done++
		if o.OnProgress != nil {
			o.OnProgress(done, total)
		}
	}

	// restore canonical prompt order; completion order is nondeterministic
	for platform := range responses {
		buffer := responses[platform]
		sort.Slice(buffer, func(i, j int) bool {
			return buffer[i].PromptIndex < buffer[j].PromptIndex
		})
	}

	return responses
}

// execute runs one job and always produces a result, converting panics and
// cancellations into error-marked responses so the totals reconcile
func (o *Orchestrator) execute(ctx context.Context, job queryJob) (result queryResult) {
	result = queryResult{
		platform:    job.platform,
		prompt:      job.prompt,
		promptIndex: job.promptIndex,
	}

	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"platform": job.platform,
				"panic":    r,
			}).Warn("Query worker recovered from panic")
			result.response = fmt.Sprintf("Error querying %s: %v", job.platform, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		result.response = fmt.Sprintf("Error querying %s: %v", job.platform, err)
		return result
	}

	result.response = o.gateway.Query(ctx, job.platform, job.prompt)
	return result
}
