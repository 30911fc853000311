// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ingest parses the three domain CSV feeds and loads them into the
// relational store. Feeds are authoritative: a load replaces the full table
// contents instead of merging.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/opsboard/models"
)

// Timestamp layouts accepted across the feeds, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// header maps CSV column names (lowercased, trimmed) to their index in a
// record. Columns the schema does not know about are ignored, so feeds may
// carry extra columns without breaking the import.
type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	record, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingFeed, err)
	}

	h := make(header, len(record))
	for i, name := range record {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h, nil
}

// field returns the trimmed value of a named column, or an error when the
// feed does not carry that column at all.
func (h header) field(record []string, name string) (string, error) {
	i, ok := h[name]
	if !ok || i >= len(record) {
		return "", fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	return strings.TrimSpace(record[i]), nil
}

func parseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised timestamp %q", ErrBadRecord, value)
}

// ParseIncidents decodes the security incidents feed. Required columns:
// external_id, timestamp, severity, incident_type, status. The description,
// reported_by and asset columns are optional.
func ParseIncidents(r io.Reader) ([]models.SecurityIncident, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	h, err := readHeader(reader)
	if err != nil {
		return nil, err
	}

	var incidents []models.SecurityIncident
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrReadingFeed, line, err)
		}

		var i models.SecurityIncident
		if i.ExternalID, err = h.field(record, "external_id"); err != nil {
			return nil, err
		}
		rawTimestamp, err := h.field(record, "timestamp")
		if err != nil {
			return nil, err
		}
		if i.Timestamp, err = parseTime(rawTimestamp); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if i.Severity, err = h.field(record, "severity"); err != nil {
			return nil, err
		}
		if i.IncidentType, err = h.field(record, "incident_type"); err != nil {
			return nil, err
		}
		if i.Status, err = h.field(record, "status"); err != nil {
			return nil, err
		}
		i.Description, _ = h.field(record, "description")
		i.ReportedBy, _ = h.field(record, "reported_by")
		i.Asset, _ = h.field(record, "asset")

		incidents = append(incidents, i)
	}

	return incidents, nil
}

// ParseTickets decodes the IT tickets feed. Required columns: ticket_id,
// priority, status, created_at. The description, assigned_to and
// resolution_time_hours columns are optional; resolution time is zero for
// tickets that are still open.
func ParseTickets(r io.Reader) ([]models.ITTicket, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	h, err := readHeader(reader)
	if err != nil {
		return nil, err
	}

	var tickets []models.ITTicket
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrReadingFeed, line, err)
		}

		var t models.ITTicket
		rawID, err := h.field(record, "ticket_id")
		if err != nil {
			return nil, err
		}
		if t.TicketID, err = strconv.ParseInt(rawID, 10, 64); err != nil {
			return nil, fmt.Errorf("%w: line %d: ticket_id %q", ErrBadRecord, line, rawID)
		}
		if t.Priority, err = h.field(record, "priority"); err != nil {
			return nil, err
		}
		if t.Status, err = h.field(record, "status"); err != nil {
			return nil, err
		}
		rawCreatedAt, err := h.field(record, "created_at")
		if err != nil {
			return nil, err
		}
		if t.CreatedAt, err = parseTime(rawCreatedAt); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		t.Description, _ = h.field(record, "description")
		t.AssignedTo, _ = h.field(record, "assigned_to")
		if raw, err := h.field(record, "resolution_time_hours"); err == nil && raw != "" {
			if t.ResolutionTimeHours, err = strconv.ParseFloat(raw, 64); err != nil {
				return nil, fmt.Errorf("%w: line %d: resolution_time_hours %q", ErrBadRecord, line, raw)
			}
		}

		tickets = append(tickets, t)
	}

	return tickets, nil
}

// ParseDatasets decodes the datasets feed. Required columns: dataset_id,
// name. The size_bytes, rows and source columns are optional.
func ParseDatasets(r io.Reader) ([]models.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	h, err := readHeader(reader)
	if err != nil {
		return nil, err
	}

	var datasets []models.Dataset
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrReadingFeed, line, err)
		}

		var d models.Dataset
		rawID, err := h.field(record, "dataset_id")
		if err != nil {
			return nil, err
		}
		if d.DatasetID, err = strconv.ParseInt(rawID, 10, 64); err != nil {
			return nil, fmt.Errorf("%w: line %d: dataset_id %q", ErrBadRecord, line, rawID)
		}
		if d.Name, err = h.field(record, "name"); err != nil {
			return nil, err
		}
		if raw, err := h.field(record, "size_bytes"); err == nil && raw != "" {
			if d.SizeBytes, err = strconv.ParseInt(raw, 10, 64); err != nil {
				return nil, fmt.Errorf("%w: line %d: size_bytes %q", ErrBadRecord, line, raw)
			}
		}
		if raw, err := h.field(record, "rows"); err == nil && raw != "" {
			if d.Rows, err = strconv.ParseInt(raw, 10, 64); err != nil {
				return nil, fmt.Errorf("%w: line %d: rows %q", ErrBadRecord, line, raw)
			}
		}
		d.Source, _ = h.field(record, "source")

		datasets = append(datasets, d)
	}

	return datasets, nil
}
