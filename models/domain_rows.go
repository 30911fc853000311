package models

import "time"

// SecurityIncident is one row of the cybersecurity incidents table,
// imported from the incidents CSV feed.
type SecurityIncident struct {
	ID           int64     `json:"id"`
	ExternalID   string    `json:"external_id"`
	Timestamp    time.Time `json:"timestamp"`
	Severity     string    `json:"severity"`
	IncidentType string    `json:"incident_type"`
	Status       string    `json:"status"`
	Description  string    `json:"description"`
	ReportedBy   string    `json:"reported_by"`
	Asset        string    `json:"asset"`
}

// ITTicket is one row of the IT ticket table, imported from the tickets
// CSV feed. ResolutionTimeHours is zero while the ticket is open.
type ITTicket struct {
	TicketID            int64     `json:"ticket_id"`
	Priority            string    `json:"priority"`
	Description         string    `json:"description"`
	Status              string    `json:"status"`
	AssignedTo          string    `json:"assigned_to"`
	CreatedAt           time.Time `json:"created_at"`
	ResolutionTimeHours float64   `json:"resolution_time_hours"`
}

// Dataset is one row of the data science datasets table, imported from
// the datasets CSV feed.
type Dataset struct {
	DatasetID int64  `json:"dataset_id"`
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	Rows      int64  `json:"rows"`
	Source    string `json:"source"`
}

// TicketPriorityStat is an aggregate used by the IT dashboard snapshot:
// the number of open tickets and the mean resolution time for one priority.
type TicketPriorityStat struct {
	Priority            string  `json:"priority"`
	OpenCount           int64   `json:"open_count"`
	MeanResolutionHours float64 `json:"mean_resolution_hours"`
}
