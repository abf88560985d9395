package eval

import "context"

// Inputs is the set of sibling input values visible to an expression,
// keyed by parameter name. Raw field text, not evaluated values.
type Inputs map[string]string

// Evaluator resolves an expression to a concrete value. Implementations
// are the compiler/executor side of the playground; the UI only consumes
// Results. An Evaluator must be safe for concurrent use.
type Evaluator interface {
	Evaluate(ctx context.Context, expression string, inputs Inputs) (string, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, expression string, inputs Inputs) (string, error)

// Evaluate implements Evaluator.
func (f EvaluatorFunc) Evaluate(ctx context.Context, expression string, inputs Inputs) (string, error) {
	return f(ctx, expression, inputs)
}
