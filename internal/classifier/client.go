// Package classifier supplies the intent and complexity labels consumed by
// the technique chain. The chain itself treats these values as opaque.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Classification is the result of classifying a prompt.
type Classification struct {
	Intent     string  `json:"intent"`
	Complexity string  `json:"complexity"`
	Confidence float64 `json:"confidence"`
}

// Classifier labels a prompt with intent and complexity.
type Classifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// Client calls the standalone classifier service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
	breaker    *gobreaker.CircuitBreaker
}

// classifyRequest is the wire request to the classifier service.
type classifyRequest struct {
	Text string `json:"text"`
}

// NewClient creates a classifier service client with a circuit breaker.
func NewClient() *Client {
	baseURL := os.Getenv("CLASSIFIER_URL")
	if baseURL == "" {
		baseURL = "http://classifier-service:8002"
		log.Printf("WARN: CLASSIFIER_URL not set, defaulting to %s", baseURL)
	}

	settings := gobreaker.Settings{
		Name:        "classifier",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("Circuit breaker %s changed from %s to %s", name, from, to)
		},
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		tracer:  otel.Tracer("classifier-client"),
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// SetBaseURL sets the base URL for testing purposes.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// Classify labels the given prompt text via the classifier service.
func (c *Client) Classify(ctx context.Context, text string) (Classification, error) {
	ctx, span := c.tracer.Start(ctx, "classifier.classify")
	defer span.End()

	span.SetAttributes(attribute.Int("prompt.length", len(text)))

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.classifyInternal(ctx, text)
	})
	if err != nil {
		span.RecordError(err)
		return Classification{}, fmt.Errorf("failed to classify prompt: %w", err)
	}

	classification := result.(Classification)
	span.SetAttributes(
		attribute.String("classification.intent", classification.Intent),
		attribute.String("classification.complexity", classification.Complexity),
	)
	return classification, nil
}

func (c *Client) classifyInternal(ctx context.Context, text string) (Classification, error) {
	jsonData, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return Classification{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/classify", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return Classification{}, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Classification{}, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return Classification{}, fmt.Errorf("classifier returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return Classification{}, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var classification Classification
	if err := json.NewDecoder(resp.Body).Decode(&classification); err != nil {
		return Classification{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return classification, nil
}

// IsHealthy checks if the classifier service is reachable.
func (c *Client) IsHealthy(ctx context.Context) bool {
	ctx, span := c.tracer.Start(ctx, "classifier.health_check")
	defer span.End()

	if c.breaker.State() == gobreaker.StateOpen {
		span.SetAttributes(attribute.Bool("healthy", false), attribute.String("reason", "circuit_breaker_open"))
		return false
	}

	url := fmt.Sprintf("%s/health", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		span.RecordError(err)
		return false
	}

	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		return false
	}
	defer resp.Body.Close()

	healthy := resp.StatusCode == http.StatusOK
	span.SetAttributes(attribute.Bool("healthy", healthy))
	return healthy
}
