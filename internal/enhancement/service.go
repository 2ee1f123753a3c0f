// Package enhancement is the application service behind the enhancement
// endpoints: it classifies the prompt when the caller didn't, runs the
// technique chain, records metrics, and persists the result to history.
package enhancement

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/promptforge/prompt-studio/enhancer-api/internal/chain"
	"github.com/promptforge/prompt-studio/enhancer-api/internal/classifier"
	"github.com/promptforge/prompt-studio/enhancer-api/internal/history"
	"github.com/promptforge/prompt-studio/enhancer-api/internal/metrics"
)

// Input is one enhancement request as the service sees it. Intent and
// Complexity are optional; when absent the service classifies the text.
type Input struct {
	Text       string
	Techniques []string
	Intent     string
	Complexity string
	Options    map[string]map[string]interface{}
}

// Output bundles the chain response with the persisted record id (zero when
// persistence was skipped or failed) and the classification that was used.
type Output struct {
	EnhancementID uuid.UUID
	Intent        string
	Complexity    string
	Response      chain.Response
}

// Service orchestrates classification, chain execution, metrics, and history.
// It is stateless across requests; concurrent invocations each get their own
// chain context.
type Service struct {
	executor   *chain.Executor
	registry   *chain.Registry
	remote     classifier.Classifier // may be nil when no service is configured
	fallback   classifier.Classifier
	store      history.Store // may be nil in degraded deployments
	chainStats *metrics.ChainMetrics
}

// NewService creates the enhancement service. remote and store may be nil;
// the service degrades rather than failing when collaborators are absent.
func NewService(executor *chain.Executor, registry *chain.Registry, remote classifier.Classifier, store history.Store, chainStats *metrics.ChainMetrics) *Service {
	return &Service{
		executor:   executor,
		registry:   registry,
		remote:     remote,
		fallback:   classifier.Heuristic{},
		store:      store,
		chainStats: chainStats,
	}
}

// Techniques returns the registered technique ids.
func (s *Service) Techniques() []string {
	return s.registry.Names()
}

// Enhance runs the technique chain for one request. Per-technique problems
// surface as data inside the response; the only error returned is the
// invocation-level fatal case (nothing to chain) or the caller's cancellation.
func (s *Service) Enhance(ctx context.Context, userID uuid.UUID, input Input, observers ...chain.StepObserver) (*Output, error) {
	intent, complexity := s.classify(ctx, input)

	inv := chain.Invocation{
		ID:           uuid.New().String(),
		TechniqueIDs: input.Techniques,
		Prompt:       input.Text,
		Intent:       intent,
		Complexity:   complexity,
		Options:      input.Options,
	}

	if s.chainStats != nil {
		s.chainStats.RecordChainStarted(ctx, intent, complexity, len(inv.TechniqueIDs))
	}

	start := time.Now()
	summary, err := s.executor.Run(ctx, inv, observers...)
	elapsed := time.Since(start)

	if s.chainStats != nil && summary != nil {
		for _, stepErr := range summary.Errors {
			reason := "internal fault"
			if stepErr.Message == "unknown technique" {
				reason = "unknown technique"
			}
			s.chainStats.RecordTechniqueFailure(ctx, stepErr.Technique, reason)
		}
		s.chainStats.RecordChainCompleted(ctx, intent, len(summary.Errors), elapsed)
	}

	if err != nil {
		if s.chainStats != nil && summary == nil {
			s.chainStats.RecordChainCompleted(ctx, intent, 1, elapsed)
		}
		return nil, err
	}

	response := chain.BuildResponse(summary)
	output := &Output{
		Intent:     intent,
		Complexity: complexity,
		Response:   response,
	}

	if s.store != nil {
		record := &history.Record{
			UserID:         userID,
			OriginalPrompt: input.Text,
			EnhancedPrompt: summary.FinalPrompt,
			Techniques:     input.Techniques,
			Intent:         intent,
			Complexity:     complexity,
			Options:        input.Options,
			Summary:        summaryDocument(response),
		}
		if saveErr := s.store.Save(ctx, record); saveErr != nil {
			// Persistence failure must not cost the user their result.
			log.Printf(`{"level":"error","message":"Failed to persist enhancement","error":"%v","user_id":"%s"}`, saveErr, userID)
			output.Response.Warnings = append(output.Response.Warnings, "enhancement could not be saved to history")
		} else {
			output.EnhancementID = record.ID
		}
	}

	return output, nil
}

// Rerun re-executes a stored enhancement with its original technique list,
// intent, complexity, and options, and persists the new run as its own
// record. Deterministic techniques make the result identical to the original.
func (s *Service) Rerun(ctx context.Context, userID, enhancementID uuid.UUID, observers ...chain.StepObserver) (*Output, error) {
	record, err := s.GetRecord(ctx, userID, enhancementID)
	if err != nil {
		return nil, err
	}

	return s.Enhance(ctx, userID, Input{
		Text:       record.OriginalPrompt,
		Techniques: record.Techniques,
		Intent:     record.Intent,
		Complexity: record.Complexity,
		Options:    record.Options,
	}, observers...)
}

// GetRecord retrieves one of the user's enhancement records. Records owned by
// other users are reported as not found.
func (s *Service) GetRecord(ctx context.Context, userID, enhancementID uuid.UUID) (*history.Record, error) {
	if s.store == nil {
		return nil, history.ErrNotFound
	}
	record, err := s.store.Get(ctx, enhancementID)
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, history.ErrNotFound
	}
	return record, nil
}

// ListRecords retrieves a page of the user's enhancement history. Out-of-range
// limit and offset values are clamped; the values actually used are returned so
// callers can echo them accurately.
func (s *Service) ListRecords(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*history.Record, int, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if s.store == nil {
		return []*history.Record{}, limit, offset, nil
	}
	records, err := s.store.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, limit, offset, fmt.Errorf("failed to list history: %w", err)
	}
	if records == nil {
		records = []*history.Record{}
	}
	return records, limit, offset, nil
}

// classify fills in missing intent/complexity. The remote classifier is
// preferred; any failure degrades to the deterministic local heuristic.
func (s *Service) classify(ctx context.Context, input Input) (string, string) {
	if input.Intent != "" && input.Complexity != "" {
		return input.Intent, input.Complexity
	}

	var result classifier.Classification
	classified := false
	if s.remote != nil {
		if remote, err := s.remote.Classify(ctx, input.Text); err == nil {
			result = remote
			classified = true
		} else {
			log.Printf(`{"level":"warn","message":"Classifier service unavailable, using heuristic","error":"%v"}`, err)
		}
	}
	if !classified {
		result, _ = s.fallback.Classify(ctx, input.Text)
	}

	intent := input.Intent
	if intent == "" {
		intent = result.Intent
	}
	complexity := input.Complexity
	if complexity == "" {
		complexity = result.Complexity
	}
	return intent, complexity
}

// summaryDocument flattens the response metadata into the jsonb document
// stored with the history record.
func summaryDocument(response chain.Response) map[string]interface{} {
	return map[string]interface{}{
		"chain_summary":      response.Metadata.ChainSummary,
		"chain_errors":       response.Metadata.ChainErrors,
		"technique_metadata": response.Metadata.TechniqueMetadata,
		"warnings":           response.Warnings,
	}
}
