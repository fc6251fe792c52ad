package predictor

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/google/cel-go/cel"

	"github.com/modelserve/scored/internal/domain/model"
)

// CEL scores a feature vector by evaluating a compiled CEL expression.
// The expression sees `x` (list of double) and `names` (list of string)
// and must yield a number or a list of numbers.
type CEL struct {
	base
	expr    string
	program cel.Program
}

func newCEL(_ context.Context, spec Spec) (*CEL, error) {
	env, err := cel.NewEnv(
		cel.Variable("x", cel.ListType(cel.DoubleType)),
		cel.Variable("names", cel.ListType(cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	ast, iss := env.Compile(spec.Expr)
	if iss.Err() != nil {
		return nil, fmt.Errorf("%w: compile %q: %w", ErrLoad, spec.Expr, iss.Err())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	return &CEL{
		base: base{
			kind:       "cel",
			threadSafe: spec.ThreadSafe,
			canary:     spec.Canary,
		},
		expr:    spec.Expr,
		program: program,
	}, nil
}

// Predict evaluates the expression against the feature vector.
func (p *CEL) Predict(_ context.Context, req model.ScoreRequest) (model.ScoreResult, error) {
	start := time.Now()

	names := req.FeatureNames
	if names == nil {
		names = []string{}
	}

	out, _, err := p.program.Eval(map[string]any{
		"x":     req.Features,
		"names": names,
	})
	if err != nil {
		return model.ScoreResult{}, fmt.Errorf("%w: eval: %w", ErrPrediction, err)
	}

	scores, err := toScores(out.Value(), out)
	if err != nil {
		return model.ScoreResult{}, err
	}

	return model.ScoreResult{
		Scores:    scores,
		ModelKind: p.kind,
		Elapsed:   time.Since(start),
	}, nil
}

// Healthy runs a canary prediction.
func (p *CEL) Healthy(ctx context.Context) bool {
	return canaryCheck(ctx, p, p.canary)
}

type nativeConverter interface {
	ConvertToNative(typeDesc reflect.Type) (any, error)
}

// toScores coerces an evaluation result into a score vector.
func toScores(value any, raw nativeConverter) ([]float64, error) {
	switch v := value.(type) {
	case float64:
		return []float64{v}, nil
	case int64:
		return []float64{float64(v)}, nil
	case uint64:
		return []float64{float64(v)}, nil
	default:
		native, err := raw.ConvertToNative(reflect.TypeOf([]float64{}))
		if err != nil {
			return nil, fmt.Errorf("%w: expression must yield a number or a list of numbers", ErrPrediction)
		}
		scores, ok := native.([]float64)
		if !ok {
			return nil, fmt.Errorf("%w: expression must yield a number or a list of numbers", ErrPrediction)
		}
		return scores, nil
	}
}
