package generateimage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"paprika-server/modules/common/model"
)

// --- Mocks ---

// predictionServer stands in for the external prediction service.
type predictionServer struct {
	*httptest.Server

	mu       sync.Mutex
	calls    int
	path     string
	method   string
	ctype    string
	rawBody  []byte
	received PredictionRequest
}

func newPredictionServer(t *testing.T, status int, body string) *predictionServer {
	t.Helper()
	ps := &predictionServer{}
	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)

		ps.mu.Lock()
		ps.calls++
		ps.path = r.URL.Path
		ps.method = r.Method
		ps.ctype = r.Header.Get("Content-Type")
		ps.rawBody = raw
		_ = json.Unmarshal(raw, &ps.received)
		ps.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ps.Close)
	return ps
}

func (ps *predictionServer) input() PredictionInput {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.received.Input
}

func (ps *predictionServer) body() []byte {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.rawBody
}

// request - path, method and content type of the last call
func (ps *predictionServer) request() (string, string, string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.path, ps.method, ps.ctype
}

func (ps *predictionServer) callCount() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.calls
}

type fakeStore struct {
	mu        sync.Mutex
	records   []model.GenerationRecord
	appendErr error
	recentErr error
	lastLimit int
}

func (f *fakeStore) Append(ctx context.Context, record model.GenerationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.records = append([]model.GenerationRecord{record}, f.records...)
	return nil
}

func (f *fakeStore) Recent(ctx context.Context, limit int) ([]model.GenerationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return append([]model.GenerationRecord{}, f.records[:limit]...), nil
}

var errStoreDown = errors.New("store down")

func fixedIntn(v int) func(int) int {
	return func(int) int { return v }
}
