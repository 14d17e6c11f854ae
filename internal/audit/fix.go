package audit

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"UXTester/internal/domain"
	"UXTester/internal/ports"
)

const (
	fixDelay = 1 * time.Second

	fixPrompt = "Provide a CSS fix for: 'Insufficient Color Contrast. Primary text elements fall below " +
		"WCAG AA standard ratio of 4.5:1. Recommendation: Darken text color'. Return ONLY the CSS code block."

	mockFix     = "/* Mock Fix (Gemini Key Missing) */\n.nav-link {\n  padding: 12px 24px;\n}"
	fallbackFix = "/* AI Unavailable - Using Fallback */\n.text-element {\n  color: #1a1a1a; /* Darkened for contrast */\n}"
)

// FixAdvisor returns advisory code-fix suggestions. It never surfaces an error:
// an unconfigured or failing generator degrades to a canned fix so the caller
// always gets a usable payload.
type FixAdvisor struct {
	narrative ports.NarrativeGenerator
	logger    *slog.Logger
	delay     time.Duration
}

// NewFixAdvisor wires the optional narrative generator.
func NewFixAdvisor(narrative ports.NarrativeGenerator, logger *slog.Logger) *FixAdvisor {
	return &FixAdvisor{narrative: narrative, logger: logger, delay: fixDelay}
}

// WithDelay overrides the mock-path delay.
func (f *FixAdvisor) WithDelay(d time.Duration) *FixAdvisor {
	f.delay = d
	return f
}

// SuggestFix asks the generator for a CSS fix for the contrast weakness.
// Without a generator it waits briefly and returns the mock fix; on generator
// failure it returns the fallback fix.
func (f *FixAdvisor) SuggestFix(ctx context.Context) domain.FixSuggestion {
	if f.narrative == nil {
		if f.delay > 0 {
			timer := time.NewTimer(f.delay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
			}
		}
		return domain.FixSuggestion{Status: "success", Fix: mockFix}
	}

	text, err := f.narrative.Generate(ctx, fixPrompt)
	if err != nil {
		if f.logger != nil {
			f.logger.Warn("fix generation failed", "error", err)
		}
		return domain.FixSuggestion{Status: "success", Fix: fallbackFix}
	}

	return domain.FixSuggestion{Status: "success", Fix: stripCodeFences(text)}
}

func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```css", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
