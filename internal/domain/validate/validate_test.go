package validate_test

import (
	"testing"

	"github.com/modelserve/scored/internal/domain/model"
	"github.com/modelserve/scored/internal/domain/validate"
	. "github.com/smartystreets/goconvey/convey"
)

func TestValidatorParse(t *testing.T) {
	Convey("Given a validator with default limits", t, func() {
		v := validate.New()

		Convey("When parsing a well-formed payload", func() {
			req, err := v.Parse([]byte(`{"X": [1, 2]}`))

			Convey("Then it should produce a normalized request", func() {
				So(err, ShouldBeNil)
				So(req.Features, ShouldResemble, []float64{1, 2})
				So(req.FeatureNames, ShouldBeEmpty)
			})
		})

		Convey("When parsing a payload with feature names", func() {
			req, err := v.Parse([]byte(`{"X": [0.5, -1.5], "feature_names": ["age", "income"]}`))

			Convey("Then names should ride along", func() {
				So(err, ShouldBeNil)
				So(req.Features, ShouldResemble, []float64{0.5, -1.5})
				So(req.FeatureNames, ShouldResemble, []string{"age", "income"})
			})
		})

		Convey("When the payload is not JSON", func() {
			_, err := v.Parse([]byte(`{not json`))

			Convey("Then it should fail as malformed", func() {
				So(err, ShouldNotBeNil)
				So(validate.Reason(err), ShouldEqual, "malformed")
			})
		})

		Convey("When the X field is missing", func() {
			_, err := v.Parse([]byte(`{}`))

			Convey("Then it should fail with missing features", func() {
				So(err, ShouldNotBeNil)
				So(validate.Reason(err), ShouldEqual, "missing_features")
			})
		})

		Convey("When the X field is null", func() {
			_, err := v.Parse([]byte(`{"X": null}`))

			Convey("Then it should fail with missing features", func() {
				So(err, ShouldNotBeNil)
				So(validate.Reason(err), ShouldEqual, "missing_features")
			})
		})

		Convey("When the X field is empty", func() {
			_, err := v.Parse([]byte(`{"X": []}`))

			Convey("Then it should fail with empty features", func() {
				So(err, ShouldNotBeNil)
				So(validate.Reason(err), ShouldEqual, "empty_features")
			})
		})

		Convey("When the X field holds non-numeric values", func() {
			_, err := v.Parse([]byte(`{"X": ["a", "b"]}`))

			Convey("Then it should fail as not numeric", func() {
				So(err, ShouldNotBeNil)
				So(validate.Reason(err), ShouldEqual, "not_numeric")
			})
		})

		Convey("When the X field is a scalar", func() {
			_, err := v.Parse([]byte(`{"X": 42}`))

			Convey("Then it should fail as not numeric", func() {
				So(err, ShouldNotBeNil)
				So(validate.Reason(err), ShouldEqual, "not_numeric")
			})
		})

		Convey("When feature names length mismatches", func() {
			_, err := v.Parse([]byte(`{"X": [1, 2], "feature_names": ["only_one"]}`))

			Convey("Then it should fail with name mismatch", func() {
				So(err, ShouldNotBeNil)
				So(validate.Reason(err), ShouldEqual, "name_mismatch")
			})
		})
	})

	Convey("Given a validator with a small feature cap", t, func() {
		v := validate.New(validate.WithMaxFeatures(2))

		Convey("When the payload exceeds the cap", func() {
			_, err := v.Parse([]byte(`{"X": [1, 2, 3]}`))

			Convey("Then it should fail with too many features", func() {
				So(err, ShouldNotBeNil)
				So(validate.Reason(err), ShouldEqual, "too_many_features")
			})
		})

		Convey("When the payload is at the cap", func() {
			req, err := v.Parse([]byte(`{"X": [1, 2]}`))

			Convey("Then it should succeed", func() {
				So(err, ShouldBeNil)
				So(req.Features, ShouldHaveLength, 2)
			})
		})
	})
}

func TestParseRoundTrip(t *testing.T) {
	Convey("Given a normalized score request", t, func() {
		v := validate.New()
		original := model.ScoreRequest{
			Features:     []float64{3.14, 0, -7},
			FeatureNames: []string{"x1", "x2", "x3"},
		}

		Convey("When encoding and re-parsing it", func() {
			raw, err := model.EncodeRequest(original)
			So(err, ShouldBeNil)

			parsed, err := v.Parse(raw)

			Convey("Then the round trip should reconstruct an equivalent request", func() {
				So(err, ShouldBeNil)
				So(parsed, ShouldResemble, original)
			})
		})
	})
}

func TestParseDeterminism(t *testing.T) {
	Convey("Given the same raw payload parsed repeatedly", t, func() {
		v := validate.New()
		raw := []byte(`{"X": [1, 2], "feature_names": ["a", "b"]}`)

		Convey("When parsing it twice", func() {
			first, err1 := v.Parse(raw)
			second, err2 := v.Parse(raw)

			Convey("Then the results should be identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldResemble, second)
			})
		})
	})
}
