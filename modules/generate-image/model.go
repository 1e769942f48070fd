package generateimage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"paprika-server/modules/common/model"
	"paprika-server/modules/common/utils"
)

// GenericErrorMessage - the only failure detail ever returned to callers
const GenericErrorMessage = "Something went wrong"

// MaxSeed - random seeds are drawn from [0, MaxSeed)
const MaxSeed = 1_000_000

var (
	ErrMissingField = errors.New("missing required field")
	ErrNoOutput     = errors.New("prediction response has no output")
)

// GenerateImageRequest - body of POST /api/generate-image.
// Numeric fields are pointers so an absent value fails the request instead of becoming zero.
type GenerateImageRequest struct {
	URL               string  `json:"url"`
	Prompt            string  `json:"prompt"`
	Seed              *int64  `json:"seed,omitempty"`
	Width             *Number `json:"width"`
	Height            *Number `json:"height"`
	NumInferenceSteps *Number `json:"num_inference_steps"`
	GuidanceScale     *Number `json:"guidance_scale"`
}

// Number - a JSON number or numeric string in the form it is forwarded.
// Numbers are rendered shortest-form (7.50 -> "7.5", 1e3 -> "1000"); strings are kept as written.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	var raw json.Number
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("expected a number or numeric string: %w", err)
	}
	if len(b) > 0 && b[0] == '"' {
		*n = Number(raw)
		return nil
	}
	f, err := raw.Float64()
	if err != nil {
		return err
	}
	*n = Number(utils.FormatNumber(f))
	return nil
}

func (n Number) String() string {
	return string(n)
}

// Float64 - value of n; always parses since UnmarshalJSON only accepts valid numbers
func (n Number) Float64() float64 {
	f, _ := strconv.ParseFloat(string(n), 64)
	return f
}

// GenerateImageResponse - always sent with HTTP 200; nil fields are omitted
type GenerateImageResponse struct {
	Data  *string `json:"data,omitempty"`
	Error *string `json:"error,omitempty"`
}

// PredictionRequest - body of POST {url}/predictions
type PredictionRequest struct {
	Input PredictionInput `json:"input"`
}

// PredictionInput - the prediction service only accepts string values
type PredictionInput struct {
	Prompt            string `json:"prompt"`
	Width             string `json:"width"`
	Height            string `json:"height"`
	Seed              string `json:"seed"`
	NumInferenceSteps string `json:"num_inference_steps"`
	GuidanceScale     string `json:"guidance_scale"`
}

// PredictionResult - response of the prediction service
type PredictionResult struct {
	Output []string               `json:"output"`
	Status model.PredictionStatus `json:"status"`
	Error  *string                `json:"error,omitempty"`
}

// NewPredictionInput - stringify req for the prediction service using the resolved seed
func NewPredictionInput(req *GenerateImageRequest, seed int64) (PredictionInput, error) {
	if err := req.requireNumbers(); err != nil {
		return PredictionInput{}, err
	}
	return PredictionInput{
		Prompt:            req.Prompt,
		Width:             req.Width.String(),
		Height:            req.Height.String(),
		Seed:              strconv.FormatInt(seed, 10),
		NumInferenceSteps: req.NumInferenceSteps.String(),
		GuidanceScale:     req.GuidanceScale.String(),
	}, nil
}

func (r *GenerateImageRequest) requireNumbers() error {
	switch {
	case r.Width == nil:
		return fmt.Errorf("%w: width", ErrMissingField)
	case r.Height == nil:
		return fmt.Errorf("%w: height", ErrMissingField)
	case r.NumInferenceSteps == nil:
		return fmt.Errorf("%w: num_inference_steps", ErrMissingField)
	case r.GuidanceScale == nil:
		return fmt.Errorf("%w: guidance_scale", ErrMissingField)
	}
	return nil
}

func stringPtr(s string) *string {
	return &s
}
