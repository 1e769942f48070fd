package model

import "time"

// GenerationRecord - one completed generation kept in the history list
type GenerationRecord struct {
	ID                string    `json:"id"`
	RequestID         string    `json:"request_id,omitempty"`
	Prompt            string    `json:"prompt"`
	Seed              int64     `json:"seed"`
	Width             float64   `json:"width"`
	Height            float64   `json:"height"`
	NumInferenceSteps float64   `json:"num_inference_steps"`
	GuidanceScale     float64   `json:"guidance_scale"`
	Output            string    `json:"output"`
	FileName          string    `json:"file_name"`
	DurationSeconds   float64   `json:"duration_seconds"`
	CreatedAt         time.Time `json:"created_at"`
}

// PredictionStatus - status reported by the prediction service
type PredictionStatus string

const (
	StatusSucceeded PredictionStatus = "succeeded"
	StatusFailed    PredictionStatus = "failed"
)
