package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/mock"
	"github.com/MKhiriev/opsboard/models"
)

func TestCyberPage_Snapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	incidents := mock.NewMockIncidentRepository(ctrl)

	incidents.EXPECT().TopOpenBySeverity(gomock.Any(), uint64(snapshotRowLimit)).Return([]models.SecurityIncident{
		{ExternalID: "INC-9", IncidentType: "ransomware", Severity: "critical", Status: "open", Asset: "db-01", Timestamp: time.Now()},
		{ExternalID: "INC-4", IncidentType: "phishing", Severity: "high", Status: "investigating", Asset: "mail", Timestamp: time.Now()},
	}, nil)

	page := NewCyberPage(incidents, logger.Nop())
	assert.Equal(t, models.DomainCyber, page.Domain())
	assert.Contains(t, page.RolePrompt(), "cybersecurity assistant")

	snapshot, err := page.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Contains(t, snapshot, "id:INC-9")
	assert.Contains(t, snapshot, "severity:critical")
	assert.Contains(t, snapshot, "asset:mail")
}

func TestCyberPage_Snapshot_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	incidents := mock.NewMockIncidentRepository(ctrl)
	incidents.EXPECT().TopOpenBySeverity(gomock.Any(), gomock.Any()).Return(nil, nil)

	page := NewCyberPage(incidents, logger.Nop())

	snapshot, err := page.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "No open incidents.", snapshot)
}

func TestITPage_Snapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	tickets := mock.NewMockTicketRepository(ctrl)

	tickets.EXPECT().OpenStatsByPriority(gomock.Any()).Return([]models.TicketPriorityStat{
		{Priority: "high", OpenCount: 12, MeanResolutionHours: 6.5},
	}, nil)

	page := NewITPage(tickets, logger.Nop())
	assert.Equal(t, models.DomainIT, page.Domain())

	snapshot, err := page.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Contains(t, snapshot, "priority:high")
	assert.Contains(t, snapshot, "open:12")
	assert.Contains(t, snapshot, "6.5h")
}

func TestDataPage_Snapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	datasets := mock.NewMockDatasetRepository(ctrl)

	datasets.EXPECT().LargestBySize(gomock.Any(), uint64(snapshotRowLimit)).Return([]models.Dataset{
		{Name: "clickstream", SizeBytes: 1 << 30, Rows: 1_000_000, Source: "kafka"},
	}, nil)

	page := NewDataPage(datasets, logger.Nop())
	assert.Equal(t, models.DomainData, page.Domain())

	snapshot, err := page.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Contains(t, snapshot, "name:clickstream")
	assert.Contains(t, snapshot, "source:kafka")
}

func TestPage_SnapshotError(t *testing.T) {
	ctrl := gomock.NewController(t)
	incidents := mock.NewMockIncidentRepository(ctrl)
	incidents.EXPECT().TopOpenBySeverity(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	page := NewCyberPage(incidents, logger.Nop())

	_, err := page.Snapshot(context.Background())
	assert.Error(t, err)
}
