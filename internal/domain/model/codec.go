package model

import (
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
)

// WireRequest mirrors the JSON payload accepted by POST /score.
// X stays raw so the validator can distinguish a missing field from a
// field of the wrong shape.
type WireRequest struct {
	X            json.RawMessage `json:"X"`
	FeatureNames []string        `json:"feature_names,omitempty"`
}

// WireResponse mirrors the JSON body returned on a successful score.
type WireResponse struct {
	Score []float64 `json:"score"`
}

// EncodeRequest serializes a ScoreRequest back to the wire shape.
func EncodeRequest(req ScoreRequest) ([]byte, error) {
	x, err := sonic.Marshal(req.Features)
	if err != nil {
		return nil, fmt.Errorf("encode features: %w", err)
	}
	out, err := sonic.Marshal(WireRequest{X: x, FeatureNames: req.FeatureNames})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return out, nil
}

// EncodeResponse serializes a ScoreResult to the wire shape.
func EncodeResponse(res ScoreResult) ([]byte, error) {
	out, err := sonic.Marshal(WireResponse{Score: res.Scores})
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return out, nil
}
