// Package service implements the analysis relay: validate an incoming
// encoded image, forward it to the configured vision-language model with
// the fixed prompt, and return the model's text verdict unmodified.
package service

import (
	"errors"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"vegan-analyze-service/config"
	"vegan-analyze-service/gemini"
	"vegan-analyze-service/image"
	"vegan-analyze-service/llm"
	"vegan-analyze-service/metrics"
	"vegan-analyze-service/openai"
	"vegan-analyze-service/stubllm"
)

// Relay error taxonomy. The caller maps these to HTTP responses; the
// underlying cause of an analysis failure is logged, never returned.
var (
	ErrMissingInput      = errors.New("missing input")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrAnalysisFailed    = errors.New("analysis failed")
)

// Service represents the analysis relay service.
type Service struct {
	llmClient llm.Client
}

// NewService creates a relay around the provider selected by the config.
func NewService(cfg *config.Config) *Service {
	var client llm.Client
	switch cfg.LLMProvider {
	case "gemini":
		client = gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.MaxResponseTokens, cfg.LLMTimeout)
	case "stub":
		client = stubllm.NewClient()
	default:
		client = openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.MaxResponseTokens, cfg.LLMTimeout)
	}
	log.Infof("Relay LLM provider=%s", client.SourceName())
	return NewServiceWithClient(client)
}

// NewServiceWithClient creates a relay around an explicit provider.
func NewServiceWithClient(client llm.Client) *Service {
	return &Service{llmClient: client}
}

// Analyze runs the single relay operation. Precondition checks happen in
// order: payload present, then declared MIME type supported; only then is
// the external model called. Every request is a fresh, independent call —
// no caching, no queueing.
func (s *Service) Analyze(dataURI string) (string, error) {
	metrics.AnalyzeInFlight.Inc()
	defer metrics.AnalyzeInFlight.Dec()
	start := time.Now()

	result, err := s.analyze(dataURI)

	label := metrics.ResultOK
	switch {
	case errors.Is(err, ErrMissingInput):
		label = metrics.ResultMissing
	case errors.Is(err, ErrUnsupportedFormat):
		label = metrics.ResultUnsupported
	case err != nil:
		label = metrics.ResultFailed
	}
	metrics.AnalyzeTotal.WithLabelValues(label).Inc()
	metrics.AnalyzeDurationSeconds.WithLabelValues(label).Observe(time.Since(start).Seconds())

	return result, err
}

func (s *Service) analyze(dataURI string) (string, error) {
	if dataURI == "" {
		return "", ErrMissingInput
	}

	enc, err := image.ParseDataURI(dataURI)
	if err != nil {
		// Both reject as unsupported, but operators need to tell a
		// genuinely unsupported type from a corrupt payload.
		var unsupported *image.UnsupportedTypeError
		if errors.As(err, &unsupported) {
			log.Warnf("rejected unsupported image type %q", unsupported.MIME)
		} else {
			log.Warnf("rejected malformed image payload: %v", err)
		}
		return "", ErrUnsupportedFormat
	}

	reqID := uuid.New().String()
	logger := log.WithFields(log.Fields{
		"request_id": reqID,
		"provider":   s.llmClient.SourceName(),
		"mime":       enc.MIME,
		"bytes":      len(enc.Data),
	})
	logger.Info("analyzing image")

	result, err := s.llmClient.AnalyzeImage(enc.MIME, enc.Data)
	if err != nil {
		// Log the cause for operators; callers only see a generic failure.
		logger.Errorf("analysis failed: %v", err)
		return "", ErrAnalysisFailed
	}

	logger.Info("analysis complete")
	return result, nil
}
