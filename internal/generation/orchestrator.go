package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

// LLM is the text-generation collaborator. One call is one attempt.
type LLM interface {
	GenerateText(ctx context.Context, system string, user string) (string, error)
}

type State string

const (
	StateIdle       State = "idle"
	StateAttempting State = "attempting"
	StateRetrying   State = "retrying"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
)

// SleepFunc waits for d or until ctx is done. Injectable for tests.
type SleepFunc func(ctx context.Context, d time.Duration) error

// AttemptObserver is invoked after every LLM attempt with its inputs and
// outcome. Used for call logging and progress events.
type AttemptObserver func(attempt int, prompt string, content string, err error)

// ExhaustedError is the terminal failure after the attempt budget is
// spent. It wraps the last underlying error.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("generation failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

// IsTokenBudgetFailure classifies an LLM failure as input-size related
// using the provider's message text.
func IsTokenBudgetFailure(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "token") ||
		strings.Contains(msg, "limit") ||
		strings.Contains(msg, "context")
}

type OrchestratorConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Sleep       SleepFunc
	Observer    AttemptObserver
}

// Orchestrator drives the attempt loop for one generation request:
// Idle -> Attempting -> {Succeeded, Retrying, Failed}. Token-budget
// failures retry with shrunk context and a rebuilt prompt; all other
// failures retry with the identical prompt. Backoff doubles from
// BaseDelay between attempts. Instances are single-use.
type Orchestrator struct {
	log         *logger.Logger
	llm         LLM
	maxAttempts int
	baseDelay   time.Duration
	sleep       SleepFunc
	observer    AttemptObserver
	state       State
}

func NewOrchestrator(log *logger.Logger, llm LLM, cfg OrchestratorConfig) *Orchestrator {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = defaultBaseDelay
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleepWithContext
	}
	return &Orchestrator{
		log:         log.With("component", "GenerationOrchestrator"),
		llm:         llm,
		maxAttempts: cfg.MaxAttempts,
		baseDelay:   cfg.BaseDelay,
		sleep:       cfg.Sleep,
		observer:    cfg.Observer,
		state:       StateIdle,
	}
}

func (o *Orchestrator) State() State { return o.state }

type Result struct {
	Content  string
	Attempts int
	// Context is the (possibly shrunk) context the final attempt used.
	Context Context
	// Prompt is the prompt the final attempt used.
	Prompt string
}

// Run executes the attempt loop. build must be pure so a rebuilt prompt
// after truncation reflects only the shrunk context.
func (o *Orchestrator) Run(ctx context.Context, system string, genctx Context, build func(Context) string) (Result, error) {
	if o.state != StateIdle {
		return Result{}, fmt.Errorf("orchestrator is single-use, state %q", o.state)
	}

	prompt := build(genctx)
	var lastErr error

	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			o.state = StateFailed
			return Result{}, err
		}

		o.state = StateAttempting
		content, err := o.llm.GenerateText(ctx, system, prompt)
		if o.observer != nil {
			o.observer(attempt, prompt, content, err)
		}
		if err == nil {
			o.state = StateSucceeded
			return Result{Content: content, Attempts: attempt, Context: genctx, Prompt: prompt}, nil
		}
		lastErr = err

		if attempt >= o.maxAttempts {
			break
		}

		o.state = StateRetrying
		if IsTokenBudgetFailure(err) {
			genctx = genctx.Shrink()
			prompt = build(genctx)
			o.log.Warn("token budget failure, retrying with reduced context",
				"attempt", attempt,
				"reference_len", len(genctx.ReferenceContent),
				"error", err.Error(),
			)
		} else {
			o.log.Warn("generation attempt failed, retrying",
				"attempt", attempt,
				"error", err.Error(),
			)
		}

		wait := o.baseDelay << (attempt - 1)
		if err := o.sleep(ctx, wait); err != nil {
			o.state = StateFailed
			return Result{}, err
		}
	}

	o.state = StateFailed
	return Result{Attempts: o.maxAttempts, Context: genctx, Prompt: prompt},
		&ExhaustedError{Attempts: o.maxAttempts, Last: lastErr}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
