package scans

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateMapsAnalysisColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	scan := Scan{
		ID:       "scan-1",
		UserID:   "user-1",
		ImageURL: "http://localhost:8080/files/abc/scan-1.jpg",
		Analysis: DiseaseAnalysis{
			Disease:      "Leaf Blight",
			Confidence:   78,
			AffectedArea: "30%",
			Treatment:    "spray copper solution.",
			Prevention:   "rotate crops.",
		},
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO scans").
		WithArgs(
			scan.ID,
			scan.UserID,
			scan.ImageURL,
			scan.Analysis.Disease,
			scan.Analysis.Confidence,
			scan.Analysis.AffectedArea,
			scan.Analysis.Treatment,
			scan.Analysis.Prevention,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), scan); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateAnonymousUserIsNull(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	scan := Scan{
		ID:        "scan-2",
		Analysis:  ErrorResult(),
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO scans").
		WithArgs(
			scan.ID,
			nil,
			"",
			scan.Analysis.Disease,
			scan.Analysis.Confidence,
			scan.Analysis.AffectedArea,
			scan.Analysis.Treatment,
			scan.Analysis.Prevention,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), scan); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "image_url", "disease_name", "confidence",
		"affected_area_estimate", "treatment_tips", "prevention_tips", "created_at",
	}).
		AddRow("scan-9", "user-1", "https://img/9.jpg", "Healthy", 95, "0%", "No treatment needed. Your plant looks good.", "Keep taking good care of your plants as you have been.", now).
		AddRow("scan-8", nil, "https://img/8.jpg", "Leaf Rust", 88, "40%", "Remove sick leaves.", "Rotate crops.", now.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM scans").
		WithArgs("user-1", 20, 0).
		WillReturnRows(rows)

	scans, err := repo.ListByUser(context.Background(), "user-1", 20, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(scans) != 2 {
		t.Fatalf("len = %d, want 2", len(scans))
	}
	if scans[0].Analysis.Disease != "Healthy" || scans[0].Analysis.Confidence != 95 {
		t.Fatalf("first row analysis = %+v", scans[0].Analysis)
	}
	if scans[1].UserID != "" {
		t.Fatalf("null user_id should scan to empty, got %q", scans[1].UserID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
