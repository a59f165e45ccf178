// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package store

import (
	"context"
	"fmt"

	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/models"
)

// auditRepository is the SQL-backed implementation of [AuditRepository].
type auditRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAuditRepository constructs an [AuditRepository] backed by the provided
// database connection and logger.
func NewAuditRepository(db *DB, logger *logger.Logger) AuditRepository {
	logger.Debug().Msg("creating audit repository")
	return &auditRepository{
		db:     db,
		logger: logger,
	}
}

// RecordEvent appends one event to the audit log.
func (r *auditRepository) RecordEvent(ctx context.Context, event models.AuditEvent) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertAuditEventQuery(r.db.builder, event)
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.RecordEvent").Msg("error building insert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.execContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*auditRepository.RecordEvent").Str("action", event.Action).Msg("error inserting audit event")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// GetRecentEvents returns up to limit most recent events of one account,
// newest first.
func (r *auditRepository) GetRecentEvents(ctx context.Context, userID string, limit int) ([]models.AuditEvent, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectRecentAuditEventsQuery(r.db.builder, userID, limit)
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.GetRecentEvents").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.GetRecentEvents").Str("user_id", userID).Msg("error querying audit events")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var events []models.AuditEvent
	for rows.Next() {
		var event models.AuditEvent
		if err := rows.Scan(
			&event.ID, &event.UserID, &event.Action, &event.IPAddress,
			&event.UserAgent, &event.Success, &event.Timestamp,
		); err != nil {
			log.Err(err).Str("func", "*auditRepository.GetRecentEvents").Msg("error scanning audit event row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return events, nil
}
