package predictor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/modelserve/scored/internal/domain/model"
	"github.com/modelserve/scored/internal/domain/predictor"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given the predictor factory", t, func() {
		ctx := context.Background()

		Convey("When loading the identity kind", func() {
			p, err := predictor.Load(ctx, predictor.Spec{Kind: "identity"})

			Convey("Then it should produce a working adapter", func() {
				So(err, ShouldBeNil)
				So(p, ShouldNotBeNil)
				So(p.Kind(), ShouldEqual, "identity")
				So(p.ThreadSafe(), ShouldBeFalse)
			})
		})

		Convey("When loading an unknown kind", func() {
			p, err := predictor.Load(ctx, predictor.Spec{Kind: "tensorflow"})

			Convey("Then it should fail with ErrLoad", func() {
				So(p, ShouldBeNil)
				So(errors.Is(err, predictor.ErrLoad), ShouldBeTrue)
			})
		})

		Convey("When declaring a thread-safe model", func() {
			p, err := predictor.Load(ctx, predictor.Spec{Kind: "identity", ThreadSafe: true})

			Convey("Then the capability should be advertised", func() {
				So(err, ShouldBeNil)
				So(p.ThreadSafe(), ShouldBeTrue)
			})
		})
	})
}

func TestIdentityPredict(t *testing.T) {
	Convey("Given a loaded identity model", t, func() {
		ctx := context.Background()
		p, err := predictor.Load(ctx, predictor.Spec{Kind: "identity"})
		So(err, ShouldBeNil)

		Convey("When predicting a feature vector", func() {
			in := model.ScoreRequest{Features: []float64{1, 2, -3.5}}
			res, err := p.Predict(ctx, in)

			Convey("Then the scores should equal the input", func() {
				So(err, ShouldBeNil)
				So(res.Scores, ShouldResemble, []float64{1, 2, -3.5})
				So(res.ModelKind, ShouldEqual, "identity")
			})

			Convey("And the result should not alias the input", func() {
				So(err, ShouldBeNil)
				res.Scores[0] = 99
				So(in.Features[0], ShouldEqual, 1)
			})
		})

		Convey("When checking health", func() {
			Convey("Then the canary should pass", func() {
				So(p.Healthy(ctx), ShouldBeTrue)
			})
		})
	})
}

func TestLinearPredict(t *testing.T) {
	Convey("Given a loaded linear model", t, func() {
		ctx := context.Background()
		p, err := predictor.Load(ctx, predictor.Spec{
			Kind:    "linear",
			Weights: []float64{0.5, 2},
			Bias:    1,
		})
		So(err, ShouldBeNil)

		Convey("When predicting a matching feature vector", func() {
			res, err := p.Predict(ctx, model.ScoreRequest{Features: []float64{4, 3}})

			Convey("Then it should compute weights.x + bias", func() {
				So(err, ShouldBeNil)
				So(res.Scores, ShouldResemble, []float64{0.5*4 + 2*3 + 1})
			})
		})

		Convey("When the feature length mismatches the weights", func() {
			_, err := p.Predict(ctx, model.ScoreRequest{Features: []float64{1}})

			Convey("Then it should fail with ErrPrediction", func() {
				So(errors.Is(err, predictor.ErrPrediction), ShouldBeTrue)
			})
		})

		Convey("When loading without weights", func() {
			_, err := predictor.Load(ctx, predictor.Spec{Kind: "linear"})

			Convey("Then loading should fail", func() {
				So(errors.Is(err, predictor.ErrLoad), ShouldBeTrue)
			})
		})

		Convey("When checking health with a mismatched canary", func() {
			Convey("Then the zero-vector substitute should pass", func() {
				So(p.Healthy(ctx), ShouldBeTrue)
			})
		})
	})
}
