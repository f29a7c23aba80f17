// Package enhance asks a language model for narrative suggestions about a
// recipe. It never fails: any problem yields the fixed fallback set.
package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ukaji3/recetario-go/internal/config"
	"github.com/ukaji3/recetario-go/pkg/recetario/models"
	"go.uber.org/zap"
)

// Provider sends a prompt to a model and returns its raw text answer.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Fallback returns the suggestions used whenever the provider cannot answer.
func Fallback() models.Enhancement {
	return models.Enhancement{
		GourmetVariation: "Una versión elevada con técnicas artesanales y acabados frescos.",
		Pairing:          "Café de especialidad de origen latinoamericano.",
		TechniqueTip:     "El control preciso de temperatura garantiza la textura perfecta.",
		NutritionNote:    "Balance equilibrado de ingredientes frescos y naturales.",
		Fallback:         true,
	}
}

// NewProvider builds the provider selected in cfg. It returns nil for the
// none provider.
func NewProvider(cfg config.EnhancerConfig) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderNone, "":
		return nil, nil
	case config.ProviderGemini:
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is empty")
		}
		return NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	case config.ProviderOpenRouter:
		if strings.TrimSpace(cfg.OpenRouterAPIKey) == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY is empty")
		}
		return NewOpenRouter(cfg), nil
	}
	return nil, fmt.Errorf("unknown enhancer provider %q", cfg.Provider)
}

// Service enhances recipes through an optional provider.
type Service struct {
	provider Provider
	timeout  time.Duration
	log      *zap.Logger
}

// NewService wraps p. A nil provider makes every call return Fallback.
func NewService(p Provider, timeout time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{provider: p, timeout: timeout, log: log}
}

// ProviderName names the active provider.
func (s *Service) ProviderName() string {
	if s.provider == nil {
		return config.ProviderNone
	}
	return s.provider.Name()
}

// Enhance asks the provider about r.
func (s *Service) Enhance(ctx context.Context, r models.Recipe) models.Enhancement {
	if s.provider == nil {
		return Fallback()
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log := s.log.With(zap.String("provider", s.provider.Name()), zap.String("recipe", r.ID))
	start := time.Now()
	text, err := s.provider.Generate(ctx, BuildPrompt(r))
	if err != nil {
		log.Warn("enhancement failed, using fallback", zap.Error(err))
		return Fallback()
	}
	e, err := Decode(text)
	if err != nil {
		log.Warn("enhancement unusable, using fallback", zap.Error(err))
		return Fallback()
	}
	log.Debug("recipe enhanced", zap.Duration("latency", time.Since(start)))
	return e
}

// EnhanceAsync runs Enhance in the background. The channel yields exactly
// one value and is then closed.
func (s *Service) EnhanceAsync(ctx context.Context, r models.Recipe) <-chan models.Enhancement {
	ch := make(chan models.Enhancement, 1)
	go func() {
		defer close(ch)
		ch <- s.Enhance(ctx, r)
	}()
	return ch
}

// Decode parses a model answer. Code fences are tolerated; every field is
// required.
func Decode(text string) (models.Enhancement, error) {
	text = StripCodeFences(text)
	if text == "" {
		return models.Enhancement{}, fmt.Errorf("empty response")
	}
	var e models.Enhancement
	if err := json.Unmarshal([]byte(text), &e); err != nil {
		return models.Enhancement{}, fmt.Errorf("bad JSON: %w", err)
	}
	e.GourmetVariation = strings.TrimSpace(e.GourmetVariation)
	e.Pairing = strings.TrimSpace(e.Pairing)
	e.TechniqueTip = strings.TrimSpace(e.TechniqueTip)
	e.NutritionNote = strings.TrimSpace(e.NutritionNote)
	e.Fallback = false
	if !e.Complete() {
		return models.Enhancement{}, fmt.Errorf("missing enhancement fields")
	}
	return e, nil
}

// StripCodeFences removes a surrounding markdown code fence.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
