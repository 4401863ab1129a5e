package compiler

// Compiler orchestrates providers into the ordered step list of a run.
type Compiler struct {
	providers []Provider
}

// NewCompiler creates a new Compiler.
func NewCompiler() *Compiler {
	return &Compiler{
		providers: make([]Provider, 0),
	}
}

// RegisterProvider adds a provider to the compiler.
// Providers are called in registration order during compilation, and that
// order is the order their steps run in.
func (c *Compiler) RegisterProvider(provider Provider) {
	c.providers = append(c.providers, provider)
}

// Providers returns all registered providers.
func (c *Compiler) Providers() []Provider {
	return c.providers
}

// Compile calls each provider and concatenates their steps.
// Returns an error if:
// - Any provider fails to compile
// - Duplicate step IDs are detected
// - A dependency is missing or does not run before the step needing it
func (c *Compiler) Compile(ctx CompileContext) ([]Step, error) {
	var steps []Step
	position := make(map[string]int)

	for _, provider := range c.providers {
		compiled, err := provider.Compile(ctx)
		if err != nil {
			return nil, NewProviderFailedError(provider.Name(), err)
		}
		for _, step := range compiled {
			id := step.ID().String()
			if _, exists := position[id]; exists {
				return nil, NewStepDuplicateError(provider.Name(), id)
			}
			position[id] = len(steps)
			steps = append(steps, step)
		}
	}

	for i, step := range steps {
		for _, dep := range step.DependsOn() {
			at, ok := position[dep.String()]
			if !ok {
				return nil, NewDependencyMissingError(step.ID().String(), dep.String())
			}
			if at > i {
				return nil, NewDependencyOrderError(step.ID().String(), dep.String())
			}
		}
	}

	return steps, nil
}
