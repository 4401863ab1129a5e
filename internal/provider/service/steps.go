// Package service converges systemd units to a desired enabled and running state.
package service

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/manifest"
	"github.com/felixgeelhaar/axsetup/internal/ports"
	"github.com/felixgeelhaar/axsetup/internal/validation"
)

// UnitError is returned when a systemctl command fails or the unit does
// not reach its desired state.
type UnitError struct {
	Unit   string
	Action string
	Output string
}

// Error implements error.
func (e *UnitError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("systemctl %s %s failed", e.Action, e.Unit)
	}
	return fmt.Sprintf("systemctl %s %s failed: %s", e.Action, e.Unit, e.Output)
}

// State is the observed or desired state of a unit.
type State struct {
	Enabled bool
	Running bool
}

// String renders the state the way systemctl reports it.
func (s State) String() string {
	enabled, active := "disabled", "inactive"
	if s.Enabled {
		enabled = "enabled"
	}
	if s.Running {
		active = "active"
	}
	return enabled + ", " + active
}

// UnitStep converges one unit. Only the commands whose state differs from
// the desired one are issued.
type UnitStep struct {
	id      compiler.StepID
	service manifest.Service
	runner  ports.CommandRunner
}

// NewUnitStep creates a new UnitStep.
func NewUnitStep(svc manifest.Service, runner ports.CommandRunner) *UnitStep {
	return &UnitStep{
		id:      compiler.IDFor("service", "configure", svc.Name),
		service: svc,
		runner:  runner,
	}
}

// ID returns the step identifier.
func (s *UnitStep) ID() compiler.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *UnitStep) DependsOn() []compiler.StepID {
	return nil
}

// Component returns the report name.
func (s *UnitStep) Component() string {
	return s.service.Name + " service"
}

// Desired returns the state the unit is converged to.
func (s *UnitStep) Desired() State {
	return State{Enabled: s.service.Enabled, Running: s.service.Running}
}

// Check queries the unit and compares it with the desired state.
func (s *UnitStep) Check(ctx compiler.RunContext) (compiler.StepStatus, error) {
	current, err := s.Query(ctx)
	if err != nil {
		return compiler.StatusUnknown, err
	}
	if current == s.Desired() {
		return compiler.StatusSatisfied, nil
	}
	return compiler.StatusNeedsApply, nil
}

// Plan returns the state change.
func (s *UnitStep) Plan(ctx compiler.RunContext) (compiler.Diff, error) {
	current, err := s.Query(ctx)
	if err != nil {
		return compiler.Diff{}, err
	}
	if current == s.Desired() {
		return compiler.NoChange("unit", s.service.Name), nil
	}
	return compiler.Modify("unit", s.service.Name,
		current.String(), s.Desired().String()), nil
}

// Apply issues the commands that move the unit from its current state to
// the desired one, then confirms the result.
func (s *UnitStep) Apply(ctx compiler.RunContext) error {
	current, err := s.Query(ctx)
	if err != nil {
		return err
	}

	for _, action := range Actions(current, s.Desired()) {
		if err := s.systemctl(ctx, action); err != nil {
			return err
		}
	}

	after, err := s.Query(ctx)
	if err != nil {
		return err
	}
	if after != s.Desired() {
		return &UnitError{Unit: s.service.Name, Action: "converge",
			Output: fmt.Sprintf("unit is %s, want %s", after, s.Desired())}
	}
	return nil
}

// Explain provides a human-readable explanation.
func (s *UnitStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	scope := "system"
	if s.service.User {
		scope = "user"
	}
	return compiler.NewExplanation(
		"Configure systemd unit",
		fmt.Sprintf("Makes the %s unit %s %s.", scope, s.service.Name, s.Desired()),
		[]string{"https://www.freedesktop.org/software/systemd/man/systemctl.html"},
	)
}

// Query reads the unit's enabled and active state. A unit whose enablement
// cannot be toggled reports the desired value, so no enable or disable is
// issued for it.
func (s *UnitStep) Query(ctx compiler.RunContext) (State, error) {
	if err := validation.ValidateUnitName(s.service.Name); err != nil {
		return State{}, err
	}

	enabled, err := s.runner.Run(ctx.Context(), "systemctl", s.args("is-enabled")...)
	if err != nil {
		return State{}, &UnitError{Unit: s.service.Name, Action: "is-enabled", Output: err.Error()}
	}
	active, err := s.runner.Run(ctx.Context(), "systemctl", s.args("is-active")...)
	if err != nil {
		return State{}, &UnitError{Unit: s.service.Name, Action: "is-active", Output: err.Error()}
	}

	state := State{Running: strings.TrimSpace(active.Stdout) == "active"}
	on, fixed := enablement(enabled.Stdout)
	state.Enabled = on
	if fixed {
		state.Enabled = s.service.Enabled
	}
	return state, nil
}

// Actions returns the systemctl verbs that move current to desired.
func Actions(current, desired State) []string {
	var actions []string
	switch {
	case desired.Enabled && !current.Enabled:
		actions = append(actions, "enable")
	case !desired.Enabled && current.Enabled:
		actions = append(actions, "disable")
	}
	switch {
	case desired.Running && !current.Running:
		actions = append(actions, "start")
	case !desired.Running && current.Running:
		actions = append(actions, "stop")
	}
	return actions
}

// systemctl runs a state-changing verb. System units go through sudo.
func (s *UnitStep) systemctl(ctx compiler.RunContext, action string) error {
	command, args := "systemctl", s.args(action)
	if !s.service.User {
		command, args = "sudo", append([]string{"systemctl"}, args...)
	}

	ctx.Logger().Info(ctx.Context(), "changing unit state",
		ports.F("unit", s.service.Name), ports.F("action", action))
	result, err := s.runner.Run(ctx.Context(), command, args...)
	if err != nil {
		return &UnitError{Unit: s.service.Name, Action: action, Output: err.Error()}
	}
	if !result.Success() {
		return &UnitError{Unit: s.service.Name, Action: action, Output: result.Output()}
	}
	return nil
}

func (s *UnitStep) args(verb string) []string {
	if s.service.User {
		return []string{"--user", verb, s.service.Name}
	}
	return []string{verb, s.service.Name}
}

// enablement interprets is-enabled output. Static, alias and indirect units
// are fixed: enable and disable do not change them.
func enablement(out string) (enabled, fixed bool) {
	switch strings.TrimSpace(out) {
	case "enabled", "enabled-runtime":
		return true, false
	case "static", "alias", "indirect":
		return false, true
	}
	return false, false
}

// Ensure UnitStep implements compiler.Step.
var _ compiler.Step = (*UnitStep)(nil)
