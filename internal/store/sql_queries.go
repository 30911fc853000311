// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/opsboard/models"
)

// Column sets shared by the user queries. Password hashes travel through the
// repository layer only; projections for the API are built by the services.
var userColumns = []string{"user_id", "username", "password_hash", "role", "created_at"}

// severityRank orders incidents from the most to the least urgent severity.
// Unknown severities sort last.
const severityRank = `CASE severity
	WHEN 'critical' THEN 0
	WHEN 'high' THEN 1
	WHEN 'medium' THEN 2
	WHEN 'low' THEN 3
	ELSE 4
END`

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert("users").
		Columns("username", "password_hash", "role").
		Values(user.Username, user.PasswordHash, string(user.Role)).
		Suffix("RETURNING user_id, username, password_hash, role, created_at").
		ToSql()
}

func buildSelectUserByUsernameQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.Select(userColumns...).
		From("users").
		Where(sq.Eq{"username": username}).
		ToSql()
}

func buildUpdateUserPasswordQuery(b sq.StatementBuilderType, username, passwordHash string) (string, []any, error) {
	return b.Update("users").
		Set("password_hash", passwordHash).
		Where(sq.Eq{"username": username}).
		ToSql()
}

func buildDeleteUserQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.Delete("users").
		Where(sq.Eq{"username": username}).
		ToSql()
}

func buildSelectAllUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(userColumns...).
		From("users").
		OrderBy("username").
		ToSql()
}

func buildCountUsersByRoleQuery(b sq.StatementBuilderType, role models.Role) (string, []any, error) {
	return b.Select("COUNT(*)").
		From("users").
		Where(sq.Eq{"role": string(role)}).
		ToSql()
}

func buildDeleteAllQuery(b sq.StatementBuilderType, table string) (string, []any, error) {
	return b.Delete(table).ToSql()
}

func buildInsertIncidentsQuery(b sq.StatementBuilderType, incidents []models.SecurityIncident) (string, []any, error) {
	insert := b.Insert("incidents").
		Columns("external_id", "timestamp", "severity", "incident_type", "status", "description", "reported_by", "asset")
	for _, i := range incidents {
		insert = insert.Values(i.ExternalID, i.Timestamp, i.Severity, i.IncidentType, i.Status, i.Description, i.ReportedBy, i.Asset)
	}
	return insert.ToSql()
}

func buildInsertTicketsQuery(b sq.StatementBuilderType, tickets []models.ITTicket) (string, []any, error) {
	insert := b.Insert("it_tickets").
		Columns("ticket_id", "priority", "description", "status", "assigned_to", "created_at", "resolution_time_hours")
	for _, t := range tickets {
		insert = insert.Values(t.TicketID, t.Priority, t.Description, t.Status, t.AssignedTo, t.CreatedAt, t.ResolutionTimeHours)
	}
	return insert.ToSql()
}

func buildInsertDatasetsQuery(b sq.StatementBuilderType, datasets []models.Dataset) (string, []any, error) {
	// The column is row_count, not rows: ROWS is reserved in PostgreSQL.
	insert := b.Insert("datasets").
		Columns("dataset_id", "name", "size_bytes", "row_count", "source")
	for _, d := range datasets {
		insert = insert.Values(d.DatasetID, d.Name, d.SizeBytes, d.Rows, d.Source)
	}
	return insert.ToSql()
}

func buildSelectTopOpenIncidentsQuery(b sq.StatementBuilderType, limit uint64) (string, []any, error) {
	return b.Select(
		"id", "external_id", "timestamp", "severity", "incident_type",
		"status", "description", "reported_by", "asset").
		From("incidents").
		Where(sq.NotEq{"status": "closed"}).
		OrderBy(severityRank, "timestamp DESC").
		Limit(limit).
		ToSql()
}

func buildTicketOpenStatsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(
		"priority",
		"SUM(CASE WHEN status = 'open' THEN 1 ELSE 0 END) AS open_count",
		"AVG(COALESCE(resolution_time_hours, 0)) AS mean_resolution_hours").
		From("it_tickets").
		GroupBy("priority").
		OrderBy("open_count DESC").
		ToSql()
}

func buildSelectLargestDatasetsQuery(b sq.StatementBuilderType, limit uint64) (string, []any, error) {
	return b.Select("dataset_id", "name", "size_bytes", "row_count", "source").
		From("datasets").
		OrderBy("size_bytes DESC").
		Limit(limit).
		ToSql()
}
