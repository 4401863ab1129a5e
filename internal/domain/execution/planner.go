package execution

import (
	"context"

	"github.com/felixgeelhaar/axsetup/internal/adapters/logging"
	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// Planner checks every step in dry-run mode and never applies one.
type Planner struct {
	logger ports.Logger
}

// NewPlanner creates a Planner. A nil logger discards output.
func NewPlanner(logger ports.Logger) *Planner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Planner{logger: logger}
}

// Plan checks each step in order and records what would change. A step
// whose Check or Plan fails is recorded as unknown with the error, and
// planning continues. Only a cancelled ctx stops it early.
func (p *Planner) Plan(ctx context.Context, steps []compiler.Step) (*Plan, error) {
	plan := NewExecutionPlan()
	runCtx := compiler.NewRunContext(ports.ContextWithLogger(ctx, p.logger)).WithDryRun(true)

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry := p.planStep(step, runCtx)
		plan.Add(entry)

		fields := []ports.Field{ports.F("step", step.ID().String()), ports.F("status", entry.Status().String())}
		if entry.Err() != nil {
			p.logger.Warn(ctx, WarnMarker+" could not check step", append(fields, ports.Err(entry.Err()))...)
			continue
		}
		p.logger.Debug(ctx, "step checked", fields...)
	}

	p.logger.Info(ctx, "plan ready", ports.F("summary", plan.Summary().String()))
	return plan, nil
}

func (p *Planner) planStep(step compiler.Step, ctx compiler.RunContext) PlanEntry {
	status, err := step.Check(ctx)
	if err != nil {
		return NewPlanEntry(step, compiler.StatusUnknown, compiler.Diff{}).WithErr(err)
	}
	if status != compiler.StatusNeedsApply {
		return NewPlanEntry(step, status, compiler.Diff{})
	}

	diff, err := step.Plan(ctx)
	if err != nil {
		return NewPlanEntry(step, compiler.StatusUnknown, compiler.Diff{}).WithErr(err)
	}
	return NewPlanEntry(step, status, diff)
}
