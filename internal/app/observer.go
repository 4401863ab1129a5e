package app

import (
	"context"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/execution"
	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// logObserver logs step progress.
type logObserver struct {
	logger ports.Logger
}

func newLogObserver(logger ports.Logger) *logObserver {
	return &logObserver{logger: logger}
}

func (o *logObserver) StepStarted(step compiler.Step, index, total int) {
	o.logger.Debug(context.Background(), "step started",
		ports.F("step", step.ID().String()), ports.F("index", index+1), ports.F("total", total))
}

func (o *logObserver) StepFinished(result execution.StepResult, index, total int) {
	if result.Failed() {
		return
	}
	o.logger.Info(context.Background(), "step finished",
		ports.F("step", result.StepID().String()),
		ports.F("phase", string(result.Phase())),
		ports.F("index", index+1),
		ports.F("total", total),
		ports.F("duration", result.Duration().String()))
}

var _ execution.Observer = (*logObserver)(nil)
