package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/store"
	"github.com/MKhiriev/opsboard/models"
)

// How many rows a snapshot summarises. Snapshots are bounded text, not data
// exports; a handful of rows is enough for the assistant to reason about.
const snapshotRowLimit = 5

// cyberPage is the cybersecurity domain: incidents feed, incident-response
// assistant persona.
type cyberPage struct {
	incidents store.IncidentRepository
	logger    *logger.Logger
}

func NewCyberPage(incidents store.IncidentRepository, logger *logger.Logger) DomainPage {
	return &cyberPage{incidents: incidents, logger: logger}
}

func (p *cyberPage) Domain() models.Domain { return models.DomainCyber }

func (p *cyberPage) RolePrompt() string {
	return "You are a cybersecurity assistant. Provide concise, actionable advice based on given incident context. Mention sources and be conservative if data is missing."
}

// Snapshot summarises the most urgent open incidents as plain text.
func (p *cyberPage) Snapshot(ctx context.Context) (string, error) {
	incidents, err := p.incidents.TopOpenBySeverity(ctx, snapshotRowLimit)
	if err != nil {
		return "", fmt.Errorf("building cyber snapshot: %w", err)
	}
	if len(incidents) == 0 {
		return "No open incidents.", nil
	}

	var b strings.Builder
	b.WriteString("Top open incidents:\n")
	for _, i := range incidents {
		fmt.Fprintf(&b, "- id:%s, type:%s, severity:%s, status:%s, asset:%s\n",
			i.ExternalID, i.IncidentType, i.Severity, i.Status, i.Asset)
	}
	return b.String(), nil
}

// itPage is the IT operations domain: ticket queue, triage assistant persona.
type itPage struct {
	tickets store.TicketRepository
	logger  *logger.Logger
}

func NewITPage(tickets store.TicketRepository, logger *logger.Logger) DomainPage {
	return &itPage{tickets: tickets, logger: logger}
}

func (p *itPage) Domain() models.Domain { return models.DomainIT }

func (p *itPage) RolePrompt() string {
	return "You are an IT operations assistant. Provide concise, actionable advice on ticket queues, triage and resolution times based on the given context. Be conservative if data is missing."
}

// Snapshot summarises the ticket queue per priority.
func (p *itPage) Snapshot(ctx context.Context) (string, error) {
	stats, err := p.tickets.OpenStatsByPriority(ctx)
	if err != nil {
		return "", fmt.Errorf("building it snapshot: %w", err)
	}
	if len(stats) == 0 {
		return "No tickets on record.", nil
	}

	var b strings.Builder
	b.WriteString("Ticket queue by priority:\n")
	for _, s := range stats {
		fmt.Fprintf(&b, "- priority:%s, open:%d, mean resolution:%.1fh\n",
			s.Priority, s.OpenCount, s.MeanResolutionHours)
	}
	return b.String(), nil
}

// dataPage is the data science domain: dataset inventory, analytics
// assistant persona.
type dataPage struct {
	datasets store.DatasetRepository
	logger   *logger.Logger
}

func NewDataPage(datasets store.DatasetRepository, logger *logger.Logger) DomainPage {
	return &dataPage{datasets: datasets, logger: logger}
}

func (p *dataPage) Domain() models.Domain { return models.DomainData }

func (p *dataPage) RolePrompt() string {
	return "You are a data science assistant. Provide concise, practical advice about datasets, their size and their sources based on the given context. Be conservative if data is missing."
}

// Snapshot summarises the largest datasets in the inventory.
func (p *dataPage) Snapshot(ctx context.Context) (string, error) {
	datasets, err := p.datasets.LargestBySize(ctx, snapshotRowLimit)
	if err != nil {
		return "", fmt.Errorf("building data snapshot: %w", err)
	}
	if len(datasets) == 0 {
		return "No datasets on record.", nil
	}

	var b strings.Builder
	b.WriteString("Largest datasets:\n")
	for _, d := range datasets {
		fmt.Fprintf(&b, "- name:%s, size:%d bytes, rows:%d, source:%s\n",
			d.Name, d.SizeBytes, d.Rows, d.Source)
	}
	return b.String(), nil
}
