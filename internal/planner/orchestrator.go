package planner

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/titaniumstop/AI-integrated-fitness-plan/internal/geminiservice"
	"github.com/rs/zerolog/log"
)

// Mode selects the generation strategy. It is decided once, at construction
// time, from the deployment environment; a per-request concise flag can only
// upgrade a request to ModeConcise, never downgrade it.
type Mode int

const (
	// ModeStandard issues a single larger call with a tighter timeout and
	// no local fallback: an upstream failure fails the request.
	ModeStandard Mode = iota

	// ModeConcise issues a single compact call and, on any failure,
	// synthesizes a deterministic local plan instead of failing.
	ModeConcise
)

// Per-call budgets. Each stage calls the service at most once; resilience
// comes from fallback synthesis, not from retries.
const (
	standardTimeout = 12 * time.Second
	conciseTimeout  = 15 * time.Second
	summaryTimeout  = 8 * time.Second
)

var (
	standardConfig = geminiservice.GenerationConfig{MaxOutputTokens: 1536, Temperature: 0.7, TopP: 0.95}
	conciseConfig  = geminiservice.GenerationConfig{MaxOutputTokens: 900, Temperature: 0.6, TopP: 0.9}
	summaryConfig  = geminiservice.GenerationConfig{MaxOutputTokens: 220, Temperature: 0.4}
)

// Generator is the seam to the external generation service. Implemented by
// geminiservice.Client; tests substitute stubs with the same signature.
type Generator interface {
	Generate(ctx context.Context, contents []geminiservice.Content, cfg *geminiservice.GenerationConfig, timeout time.Duration) geminiservice.Outcome
}

// PlanResult is the entity returned to the caller. Created once per request,
// serialized immediately, never mutated afterwards.
type PlanResult struct {
	Success bool   `json:"success"`
	Plan    string `json:"plan,omitempty"`
	Summary string `json:"summary,omitempty"`
	Note    string `json:"note,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// Orchestrator coordinates one plan-generation request end to end:
// targets → prompt → primary call → optional fallback → summary.
type Orchestrator struct {
	gen         Generator
	defaultMode Mode
}

func NewOrchestrator(gen Generator, defaultMode Mode) *Orchestrator {
	return &Orchestrator{gen: gen, defaultMode: defaultMode}
}

// ModeFromEnv resolves the deployment-level default mode. Constrained local
// deployments (LOCAL_MODE set) default to concise generation with its
// guaranteed fallback path.
func ModeFromEnv() Mode {
	if os.Getenv("LOCAL_MODE") != "" {
		return ModeConcise
	}
	return ModeStandard
}

// GeneratePlan runs the pipeline for one validated profile. Stages execute
// strictly sequentially; one call is in flight at a time.
func (o *Orchestrator) GeneratePlan(ctx context.Context, profile UserProfile, conciseRequested bool) PlanResult {
	targets := ComputeTargets(profile)

	mode := o.defaultMode
	if conciseRequested {
		mode = ModeConcise
	}

	var planText, note string

	switch mode {
	case ModeConcise:
		outcome := o.gen.Generate(ctx, geminiservice.UserContent(BuildConcisePrompt(profile, targets)), &conciseConfig, conciseTimeout)
		if outcome.OK() {
			planText = outcome.Text
		} else {
			// Absorbed, never surfaced as failure: synthesize locally and
			// record what went wrong in the note.
			log.Warn().Err(outcome.Err).Msg("Concise generation failed, synthesizing fallback plan")
			planText = SynthesizeFallbackPlan(profile, targets)
			note = "Returned server fallback due to local model limit: " + outcome.Message()
		}

	default:
		outcome := o.gen.Generate(ctx, geminiservice.UserContent(BuildPlanPrompt(profile, targets)), &standardConfig, standardTimeout)
		if !outcome.OK() {
			log.Error().Err(outcome.Err).Msg("Standard generation failed")
			return PlanResult{
				Success: false,
				Error:   "Failed to generate fitness plan",
				Details: fmt.Sprintf("All model attempts failed. Last error: %s", outcome.Message()),
			}
		}
		planText = outcome.Text
	}

	summary := o.summarize(ctx, planText, profile, targets)

	return PlanResult{
		Success: true,
		Plan:    planText,
		Summary: summary,
		Note:    note,
	}
}

// summarize condenses the plan with one short, separately-timed call.
// Failures of any kind fall back to the heuristic summary, so a plan is
// always accompanied by a non-empty summary.
func (o *Orchestrator) summarize(ctx context.Context, planText string, profile UserProfile, targets NutritionTargets) string {
	outcome := o.gen.Generate(ctx, geminiservice.UserContent(BuildSummaryPrompt(planText)), &summaryConfig, summaryTimeout)
	if outcome.OK() {
		return outcome.Text
	}

	log.Warn().Err(outcome.Err).Msg("Summary generation failed, using heuristic summary")
	return HeuristicSummary(profile, targets)
}
