package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/models"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	wrapped := &DB{
		DB:                 db,
		driver:             "pgx",
		builder:            sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}
	return wrapped, mock, db
}

func TestIncidentReplaceAll_DeleteThenInsert(t *testing.T) {
	wrapped, mock, db := newTestDB(t)
	defer db.Close()

	repo := NewIncidentRepository(wrapped, logger.Nop())

	incidents := []models.SecurityIncident{
		{ExternalID: "INC-1", Timestamp: time.Now(), Severity: "critical", IncidentType: "phishing", Status: "open"},
		{ExternalID: "INC-2", Timestamp: time.Now(), Severity: "low", IncidentType: "malware", Status: "closed"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM incidents").
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec("INSERT INTO incidents").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	if err := repo.ReplaceAll(context.Background(), incidents); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestIncidentReplaceAll_EmptyFeedClearsTable(t *testing.T) {
	wrapped, mock, db := newTestDB(t)
	defer db.Close()

	repo := NewIncidentRepository(wrapped, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM incidents").
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	if err := repo.ReplaceAll(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestIncidentReplaceAll_InsertFailureRollsBack(t *testing.T) {
	wrapped, mock, db := newTestDB(t)
	defer db.Close()

	repo := NewIncidentRepository(wrapped, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM incidents").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO incidents").
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := repo.ReplaceAll(context.Background(), []models.SecurityIncident{{ExternalID: "INC-1"}})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTopOpenBySeverity(t *testing.T) {
	wrapped, mock, db := newTestDB(t)
	defer db.Close()

	repo := NewIncidentRepository(wrapped, logger.Nop())

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "external_id", "timestamp", "severity", "incident_type",
		"status", "description", "reported_by", "asset"}).
		AddRow(1, "INC-9", now, "critical", "ransomware", "open", "encrypted hosts", "soc", "db-01").
		AddRow(2, "INC-4", now, "high", "phishing", "investigating", "credential theft", "helpdesk", "mail")

	mock.ExpectQuery("SELECT (.+) FROM incidents").
		WillReturnRows(rows)

	incidents, err := repo.TopOpenBySeverity(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(incidents) != 2 {
		t.Fatalf("expected 2 incidents, got %d", len(incidents))
	}
	if incidents[0].Severity != "critical" {
		t.Errorf("expected critical first, got %s", incidents[0].Severity)
	}
}

func TestOpenStatsByPriority(t *testing.T) {
	wrapped, mock, db := newTestDB(t)
	defer db.Close()

	repo := NewTicketRepository(wrapped, logger.Nop())

	rows := sqlmock.NewRows([]string{"priority", "open_count", "mean_resolution_hours"}).
		AddRow("high", 12, 6.5).
		AddRow("low", 3, 30.0)

	mock.ExpectQuery("SELECT (.+) FROM it_tickets").
		WillReturnRows(rows)

	stats, err := repo.OpenStatsByPriority(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(stats))
	}
	if stats[0].Priority != "high" || stats[0].OpenCount != 12 {
		t.Errorf("unexpected first stat: %+v", stats[0])
	}
}

func TestLargestBySize(t *testing.T) {
	wrapped, mock, db := newTestDB(t)
	defer db.Close()

	repo := NewDatasetRepository(wrapped, logger.Nop())

	rows := sqlmock.NewRows([]string{"dataset_id", "name", "size_bytes", "row_count", "source"}).
		AddRow(1, "clickstream", 1<<30, 1_000_000, "kafka").
		AddRow(2, "churn", 1<<20, 50_000, "s3")

	mock.ExpectQuery("SELECT (.+) FROM datasets").
		WillReturnRows(rows)

	datasets, err := repo.LargestBySize(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(datasets) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(datasets))
	}
	if datasets[0].Name != "clickstream" {
		t.Errorf("expected clickstream first, got %s", datasets[0].Name)
	}
}
