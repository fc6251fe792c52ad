package predictor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/modelserve/scored/internal/domain/model"
	"github.com/modelserve/scored/internal/domain/predictor"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCELPredict(t *testing.T) {
	Convey("Given the CEL model kind", t, func() {
		ctx := context.Background()

		Convey("When the expression maps the feature list", func() {
			p, err := predictor.Load(ctx, predictor.Spec{
				Kind: "cel",
				Expr: "x.map(v, v * 2.0)",
			})
			So(err, ShouldBeNil)

			res, err := p.Predict(ctx, model.ScoreRequest{Features: []float64{1, 2, 3}})

			Convey("Then it should yield the mapped list", func() {
				So(err, ShouldBeNil)
				So(res.Scores, ShouldResemble, []float64{2, 4, 6})
				So(res.ModelKind, ShouldEqual, "cel")
			})
		})

		Convey("When the expression reduces to a scalar", func() {
			p, err := predictor.Load(ctx, predictor.Spec{
				Kind: "cel",
				Expr: "x[0] + x[1]",
			})
			So(err, ShouldBeNil)

			res, err := p.Predict(ctx, model.ScoreRequest{Features: []float64{1.5, 2.5}})

			Convey("Then it should yield a single score", func() {
				So(err, ShouldBeNil)
				So(res.Scores, ShouldResemble, []float64{4})
			})
		})

		Convey("When the expression uses feature names", func() {
			p, err := predictor.Load(ctx, predictor.Spec{
				Kind: "cel",
				Expr: `size(names) > 0 && names[0] == "age" ? x[0] * 10.0 : x[0]`,
			})
			So(err, ShouldBeNil)

			res, err := p.Predict(ctx, model.ScoreRequest{
				Features:     []float64{3},
				FeatureNames: []string{"age"},
			})

			Convey("Then the names should be in scope", func() {
				So(err, ShouldBeNil)
				So(res.Scores, ShouldResemble, []float64{30})
			})
		})

		Convey("When the expression does not compile", func() {
			_, err := predictor.Load(ctx, predictor.Spec{
				Kind: "cel",
				Expr: "x +",
			})

			Convey("Then loading should fail with ErrLoad", func() {
				So(errors.Is(err, predictor.ErrLoad), ShouldBeTrue)
			})
		})

		Convey("When the expression yields a non-numeric result", func() {
			p, err := predictor.Load(ctx, predictor.Spec{
				Kind: "cel",
				Expr: `"not a number"`,
			})
			So(err, ShouldBeNil)

			_, err = p.Predict(ctx, model.ScoreRequest{Features: []float64{1}})

			Convey("Then predict should fail with ErrPrediction", func() {
				So(errors.Is(err, predictor.ErrPrediction), ShouldBeTrue)
			})
		})

		Convey("When the expression indexes out of range", func() {
			p, err := predictor.Load(ctx, predictor.Spec{
				Kind: "cel",
				Expr: "x[10]",
			})
			So(err, ShouldBeNil)

			_, err = p.Predict(ctx, model.ScoreRequest{Features: []float64{1}})

			Convey("Then predict should fail with ErrPrediction", func() {
				So(errors.Is(err, predictor.ErrPrediction), ShouldBeTrue)
			})
		})
	})
}
