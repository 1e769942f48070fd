package generateimage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"paprika-server/modules/common/history"
	"paprika-server/modules/common/model"
	"paprika-server/modules/common/requestid"
	"paprika-server/modules/common/utils"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type GenerateImageHandler struct {
	service *Service
	history history.Store
	now     func() time.Time
}

// NewGenerateImageHandler - store may be nil when history is disabled
func NewGenerateImageHandler(service *Service, store history.Store) *GenerateImageHandler {
	if store == nil {
		store = history.NopStore{}
	}
	return &GenerateImageHandler{
		service: service,
		history: store,
		now:     time.Now,
	}
}

// HistoryResponse - body of GET /api/generations
type HistoryResponse struct {
	Data  []model.GenerationRecord `json:"data"`
	Error *string                  `json:"error,omitempty"`
}

// GenerateImage - POST /api/generate-image
// Every outcome is answered with HTTP 200; failures carry only GenericErrorMessage.
func (h *GenerateImageHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	start := h.now()
	reqID := requestid.FromContext(r.Context())

	resp, err := h.generate(r, start, reqID)
	if err != nil {
		log.Printf("❌ [GenerateImage] [%s] ----- Failed in %.3fs: %v -----", reqID, h.since(start), err)
		writeJSON(w, GenerateImageResponse{Error: stringPtr(GenericErrorMessage)})
		return
	}

	writeJSON(w, resp)
}

func (h *GenerateImageHandler) generate(r *http.Request, start time.Time, reqID string) (*GenerateImageResponse, error) {
	ctx := r.Context()
	var req GenerateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	startedAt := start.UTC().Format(http.TimeFormat)
	log.Printf("🎨 [GenerateImage] [%s] ----- Started: %s %s -----", reqID, startedAt, req.describe())

	seed := h.service.ResolveSeed(req.Seed)
	input, err := NewPredictionInput(&req, seed)
	if err != nil {
		return nil, err
	}

	result, err := h.service.Predict(ctx, req.URL, input)
	if err != nil {
		return nil, err
	}

	upstreamFailed := result.Error != nil && *result.Error != ""
	if upstreamFailed {
		log.Printf("⚠️ [GenerateImage] [%s] ----- %s %s -----", reqID, h.now().UTC().Format(http.TimeFormat), *result.Error)
	}

	elapsed := h.since(start)
	log.Printf("✅ [GenerateImage] [%s] ----- Ended in %.3fs: %s %s seed_used=%d status=%s outputs=%d -----",
		reqID, elapsed, startedAt, req.describe(), seed, result.Status, len(result.Output))

	resp := &GenerateImageResponse{Error: result.Error}
	if len(result.Output) > 0 {
		resp.Data = stringPtr(result.Output[0])
		if !upstreamFailed {
			h.record(ctx, reqID, &req, seed, result.Output[0], elapsed)
		}
	}
	return resp, nil
}

// record - history writes never change the endpoint response
func (h *GenerateImageHandler) record(ctx context.Context, reqID string, req *GenerateImageRequest, seed int64, output string, elapsed float64) {
	rec := model.GenerationRecord{
		ID:                uuid.NewString(),
		RequestID:         reqID,
		Prompt:            req.Prompt,
		Seed:              seed,
		Width:             req.Width.Float64(),
		Height:            req.Height.Float64(),
		NumInferenceSteps: req.NumInferenceSteps.Float64(),
		GuidanceScale:     req.GuidanceScale.Float64(),
		FileName: utils.GetImageFileName(utils.ImageNamingParams{
			URL:            output,
			Prompt:         utils.FormatPrompt(req.Prompt),
			Seed:           seed,
			InferenceSteps: req.NumInferenceSteps.Float64(),
			GuidanceScale:  req.GuidanceScale.Float64(),
		}),
		DurationSeconds: elapsed,
		CreatedAt:       h.now().UTC(),
	}
	// inline images are too large to keep in the list
	if !strings.HasPrefix(output, "data:") {
		rec.Output = output
	}

	if err := h.history.Append(ctx, rec); err != nil {
		log.Printf("⚠️ [GenerateImage] [%s] Failed to record generation: %v", reqID, err)
	}
}

// ListGenerations - GET /api/generations?limit=N
func (h *GenerateImageHandler) ListGenerations(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		log.Printf("❌ [GenerateImage] [%s] Failed to list generations: %v", requestid.FromContext(r.Context()), err)
		writeJSON(w, HistoryResponse{
			Data:  []model.GenerationRecord{},
			Error: stringPtr(GenericErrorMessage),
		})
		return
	}

	writeJSON(w, HistoryResponse{Data: records})
}

func (h *GenerateImageHandler) since(start time.Time) float64 {
	return h.now().Sub(start).Seconds()
}

func (r *GenerateImageRequest) describe() string {
	seed := "none"
	if r.Seed != nil {
		seed = strconv.FormatInt(*r.Seed, 10)
	}
	return fmt.Sprintf("prompt=%q seed=%s width=%s height=%s steps=%s guidance=%s url=%s",
		r.Prompt, seed, optionalNumber(r.Width), optionalNumber(r.Height), optionalNumber(r.NumInferenceSteps), optionalNumber(r.GuidanceScale), r.URL)
}

func optionalNumber(v *Number) string {
	if v == nil {
		return "none"
	}
	return v.String()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ [GenerateImage] Failed to write response: %v", err)
	}
}
