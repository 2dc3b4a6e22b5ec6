package scans

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupScanRouter(t *testing.T, vision *stubVision) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	handler := NewHandler(newTestService(vision, repo, &stubStore{}))

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	handler.RegisterLegacyRoutes(router)
	return router, repo
}

func postUpload(t *testing.T, router *gin.Engine, path string, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

type uploadResponse struct {
	ImageURL        string          `json:"imageUrl"`
	Error           string          `json:"error"`
	DiseaseAnalysis DiseaseAnalysis `json:"diseaseAnalysis"`
}

func TestCreateScanEndpointReturnsAnalysis(t *testing.T) {
	vision := &stubVision{text: "The crop looks healthy"}
	router, repo := setupScanRouter(t, vision)

	resp := postUpload(t, router, "/api/v1/scans", map[string]any{
		"fileData": "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("img")),
		"fileName": "crop.jpg",
		"fileType": "image/jpeg",
		"userId":   "user-1",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Error != "" {
		t.Fatalf("unexpected error %q", out.Error)
	}
	if out.DiseaseAnalysis != HealthyResult() {
		t.Fatalf("analysis = %+v", out.DiseaseAnalysis)
	}
	if out.ImageURL == "" {
		t.Fatalf("expected imageUrl in response")
	}

	scans, err := repo.ListByUser(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(scans) != 1 {
		t.Fatalf("persisted scans = %d, want 1", len(scans))
	}
}

func TestCreateScanEndpointMissingFileDataStillOK(t *testing.T) {
	router, _ := setupScanRouter(t, &stubVision{})

	resp := postUpload(t, router, "/api/v1/scans", map[string]any{
		"fileName": "crop.jpg",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("validation failures must still answer 200, got %d", resp.Code)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Error == "" {
		t.Fatalf("expected error message in body")
	}
	if out.DiseaseAnalysis != ErrorResult() {
		t.Fatalf("analysis = %+v, want error record", out.DiseaseAnalysis)
	}
}

func TestCreateScanEndpointVisionFailureStillOK(t *testing.T) {
	vision := &stubVision{err: &timeoutStubErr{}}
	router, _ := setupScanRouter(t, vision)

	resp := postUpload(t, router, "/api/v1/scans", map[string]any{
		"fileData": base64.StdEncoding.EncodeToString([]byte("img")),
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.DiseaseAnalysis != ErrorResult() {
		t.Fatalf("analysis = %+v, want error record", out.DiseaseAnalysis)
	}
}

func TestLegacyUploadRouteServesSamePipeline(t *testing.T) {
	vision := &stubVision{text: "The crop looks healthy"}
	router, _ := setupScanRouter(t, vision)

	resp := postUpload(t, router, "/upload-image", map[string]any{
		"fileData": base64.StdEncoding.EncodeToString([]byte("img")),
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
}

func TestListScansRequiresUserID(t *testing.T) {
	router, _ := setupScanRouter(t, &stubVision{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scans", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

type timeoutStubErr struct{}

func (*timeoutStubErr) Error() string { return "vision request timeout after 30s" }
