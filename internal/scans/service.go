package scans

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"farmassist-backend/internal/llm"
	"farmassist-backend/internal/plaintext"
	"farmassist-backend/internal/shared/metrics"
	"farmassist-backend/internal/shared/storage/object"
	"farmassist-backend/internal/shared/telemetry"
)

// ErrBadImage is reported when an upload payload is not decodable image data.
var ErrBadImage = errors.New("image payload is not valid base64 image data")

// Service contains business logic for crop scans. AnalyzeCropImage is total:
// any upstream failure collapses into the fixed error record rather than an
// error return, so callers always have a complete analysis to show.
type Service struct {
	Repo       Repo
	Store      object.ObjectStore
	Vision     llm.VisionClient
	Extractor  *Extractor
	Normalizer *plaintext.Normalizer
}

// Upload is one inbound image submission.
type Upload struct {
	FileData string
	FileName string
	FileType string
}

// CreateScan runs the full pipeline for one uploaded image: decode, store
// the original, analyze, persist. Storage and persistence failures degrade
// rather than fail, the analysis still comes back with whatever parts
// succeeded. Only an undecodable payload is an error.
func (s *Service) CreateScan(ctx context.Context, userID string, up Upload) (Scan, error) {
	img, err := DecodeImagePayload(up.FileData, up.FileType)
	if err != nil {
		return Scan{}, err
	}

	scan := Scan{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	if s.Store != nil {
		fileName := strings.TrimSpace(up.FileName)
		if fileName == "" {
			fileName = scan.ID + extensionFor(img.MimeType)
		}
		key, _, _, saveErr := s.Store.Save(ctx, userID, fileName, bytes.NewReader(img.Data))
		if saveErr != nil {
			telemetry.Error("scan.image.store_failed", map[string]any{
				"user_id": userID,
				"scan_id": scan.ID,
				"err":     saveErr.Error(),
			})
		} else {
			scan.ImageURL = s.Store.URL(key)
		}
	}

	scan.Analysis = s.AnalyzeCropImage(ctx, img)

	if s.Repo != nil {
		if err := s.Repo.Create(ctx, scan); err != nil {
			telemetry.Error("scan.persist_failed", map[string]any{
				"user_id": userID,
				"scan_id": scan.ID,
				"err":     err.Error(),
			})
		}
	}
	return scan, nil
}

// AnalyzeCropImage asks the vision model about the image and turns its raw
// text into a complete analysis record.
func (s *Service) AnalyzeCropImage(ctx context.Context, img llm.Image) DiseaseAnalysis {
	metrics.IncScanStarted()
	startedAt := time.Now().UTC()

	if s.Vision == nil {
		metrics.IncScanFailed()
		telemetry.Error("scan.vision.failed", map[string]any{"err": "vision client not configured"})
		return ErrorResult()
	}

	rawText, err := s.Vision.AnalyzeImage(ctx, img)
	if err != nil {
		metrics.IncScanFailed()
		var timeoutErr *llm.TimeoutError
		telemetry.Error("scan.vision.failed", map[string]any{
			"err":     err.Error(),
			"timeout": errors.As(err, &timeoutErr),
		})
		return ErrorResult()
	}

	partial := s.Extractor.Extract(rawText)
	if _, ok := extractJSON(rawText); !ok {
		metrics.IncScanPatternFallback()
	}

	analysis := partial.withDefaults()
	analysis.Disease = s.Normalizer.Normalize(analysis.Disease)
	analysis.Treatment = s.Normalizer.Normalize(analysis.Treatment)
	analysis.Prevention = s.Normalizer.Normalize(analysis.Prevention)

	metrics.IncScanCompleted()
	metrics.ObserveScanDurationMs(float64(time.Since(startedAt).Microseconds()) / 1000.0)
	telemetry.Info("scan.completed", map[string]any{
		"disease":    analysis.Disease,
		"confidence": analysis.Confidence,
	})
	return analysis
}

// List returns a user's scans ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Scan, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// DecodeImagePayload accepts either a data URL or bare base64 and returns
// the decoded image. The caller's declared type wins for the mime type,
// then the data URL header; bare payloads with no declaration are assumed
// JPEG.
func DecodeImagePayload(payload, declaredType string) (llm.Image, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return llm.Image{}, ErrBadImage
	}

	mimeType := "image/jpeg"
	data := payload
	if strings.HasPrefix(payload, "data:") {
		comma := strings.Index(payload, ",")
		if comma < 0 {
			return llm.Image{}, ErrBadImage
		}
		header := payload[len("data:"):comma]
		data = payload[comma+1:]
		if semi := strings.IndexByte(header, ';'); semi >= 0 {
			header = header[:semi]
		}
		if header != "" {
			mimeType = header
		}
	}
	if t := strings.TrimSpace(declaredType); t != "" {
		mimeType = t
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil || len(decoded) == 0 {
		return llm.Image{}, ErrBadImage
	}
	return llm.Image{Data: decoded, MimeType: mimeType}, nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
