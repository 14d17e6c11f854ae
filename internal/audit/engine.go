package audit

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"UXTester/internal/domain"
	"UXTester/internal/ports"
)

const (
	scanDelay      = 2 * time.Second
	scanTimeLayout = "2006-01-02 15:04 UTC"

	// Substituted verbatim whenever the narrative generator is absent or fails.
	fallbackSummary = "Standard Audit Complete: Analysis indicates solid performance metrics, " +
		"though accessibility compliance requires attention. Recommended focus on color contrast and ARIA labels."
)

// scoreRange is an inclusive bound for one category score.
type scoreRange struct {
	lo, hi int
}

var categoryBounds = []struct {
	name string
	scoreRange
}{
	{"performance", scoreRange{75, 98}},
	{"accessibility", scoreRange{65, 90}},
	{"best_practices", scoreRange{80, 100}},
	{"seo", scoreRange{70, 95}},
}

// Engine produces synthetic audit reports. Scores are randomized within fixed
// per-category bounds; the narrative comes from an external generator with a
// local fallback. Safe for concurrent use: the rand source is guarded by mu,
// which is held only for the non-blocking draws, never across the delay or the
// generator call.
type Engine struct {
	narrative ports.NarrativeGenerator
	probe     ports.TitleProbe
	logger    *slog.Logger

	mu    sync.Mutex
	rng   *rand.Rand
	delay time.Duration
	now   func() time.Time
}

var _ ports.Auditor = (*Engine)(nil)

// NewEngine wires the optional narrative generator and page probe. Both may be
// nil; the engine then always falls back.
func NewEngine(narrative ports.NarrativeGenerator, probe ports.TitleProbe, logger *slog.Logger) *Engine {
	return &Engine{
		narrative: narrative,
		probe:     probe,
		logger:    logger,
		rng:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().Unix()))),
		delay:     scanDelay,
		now:       time.Now,
	}
}

// WithRand replaces the random source; tests pass a seeded generator.
func (e *Engine) WithRand(rng *rand.Rand) *Engine {
	e.rng = rng
	return e
}

// WithDelay overrides the artificial processing delay.
func (e *Engine) WithDelay(d time.Duration) *Engine {
	e.delay = d
	return e
}

// WithClock overrides the timestamp source.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Scan audits the URL: bounded random category scores, floor-averaged overall
// score, a generated (or fallback) summary, and three sampled findings per
// catalog. External failures never propagate; only an empty URL or a cancelled
// context yields an error.
func (e *Engine) Scan(ctx context.Context, url string) (domain.ScanResult, error) {
	if strings.TrimSpace(url) == "" {
		return domain.ScanResult{}, domain.ErrEmptyURL
	}

	if err := e.wait(ctx); err != nil {
		return domain.ScanResult{}, err
	}

	e.mu.Lock()
	categories := make(map[string]int, len(categoryBounds))
	sum := 0
	for _, c := range categoryBounds {
		score := c.lo + e.rng.IntN(c.hi-c.lo+1)
		categories[c.name] = score
		sum += score
	}
	overall := sum / 4
	strengths := sampleStrengths(e.rng)
	weaknesses := sampleWeaknesses(e.rng)
	e.mu.Unlock()

	result := domain.ScanResult{
		URL:        url,
		Timestamp:  e.now().UTC().Format(scanTimeLayout),
		Score:      overall,
		Categories: categories,
		Summary:    e.summarize(ctx, categories),
		Strengths:  strengths,
		Weaknesses: weaknesses,
	}

	if e.probe != nil {
		if title, err := e.probe.Title(ctx, url); err == nil {
			result.PageTitle = title
		} else {
			e.debug("page title probe failed", "url", url, "error", err)
		}
	}

	return result, nil
}

func (e *Engine) wait(ctx context.Context) error {
	if e.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(e.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) summarize(ctx context.Context, categories map[string]int) string {
	if e.narrative == nil {
		return fallbackSummary
	}

	prompt := fmt.Sprintf(
		"Write a professional 2-sentence executive summary for a UX audit with these scores: "+
			"Performance %d, Accessibility %d, Best Practices %d, SEO %d. Tone: Strategic and direct.",
		categories["performance"], categories["accessibility"], categories["best_practices"], categories["seo"])

	text, err := e.narrative.Generate(ctx, prompt)
	if err != nil {
		e.debug("narrative generation failed", "error", err)
		return fallbackSummary
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fallbackSummary
	}
	return text
}

func sampleStrengths(rng *rand.Rand) []domain.StrengthFinding {
	picks := rng.Perm(len(strengthCatalog))[:3]
	out := make([]domain.StrengthFinding, 0, 3)
	for _, i := range picks {
		out = append(out, strengthCatalog[i])
	}
	return out
}

func sampleWeaknesses(rng *rand.Rand) []domain.WeaknessFinding {
	picks := rng.Perm(len(weaknessCatalog))[:3]
	out := make([]domain.WeaknessFinding, 0, 3)
	for _, i := range picks {
		out = append(out, weaknessCatalog[i])
	}
	return out
}

func (e *Engine) debug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}
