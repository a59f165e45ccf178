// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package store

import (
	"context"
	"fmt"

	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/models"
)

// categoryRepository is the SQL-backed implementation of [CategoryRepository].
type categoryRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCategoryRepository constructs a [CategoryRepository] backed by the
// provided database connection and logger.
func NewCategoryRepository(db *DB, logger *logger.Logger) CategoryRepository {
	logger.Debug().Msg("creating category repository")
	return &categoryRepository{
		db:     db,
		logger: logger,
	}
}

// CreateCategory persists a new category and returns it unchanged on success.
func (r *categoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertCategoryQuery(r.db.builder, category)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.CreateCategory").Msg("error building insert query")
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.execContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*categoryRepository.CreateCategory").Msg("error inserting category")
		return models.Category{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return category, nil
}

// GetCategoriesByUser lists a user's categories in creation order.
func (r *categoryRepository) GetCategoriesByUser(ctx context.Context, userID string) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectCategoriesQuery(r.db.builder, userID)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.GetCategoriesByUser").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.GetCategoriesByUser").Str("user_id", userID).Msg("error querying categories")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.Icon, &category.CreatedAt); err != nil {
			log.Err(err).Str("func", "*categoryRepository.GetCategoriesByUser").Msg("error scanning category row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return categories, nil
}

// UpdateCategory renames a category or changes its icon. Ownership is part of
// the WHERE clause, so a foreign category id behaves like a missing one.
//
// Returns [ErrCategoryNotFound] when no category matches (id, user_id).
func (r *categoryRepository) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateCategoryQuery(r.db.builder, category)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.UpdateCategory").Msg("error building update query")
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.execContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.UpdateCategory").Msg("error updating category")
		return models.Category{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return models.Category{}, ErrCategoryNotFound
	}

	selectQuery, selectArgs, err := buildSelectCategoryQuery(r.db.builder, category.ID, category.UserID)
	if err != nil {
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, selectQuery, selectArgs...)
	var updated models.Category
	if err := row.Scan(&updated.ID, &updated.UserID, &updated.Name, &updated.Icon, &updated.CreatedAt); err != nil {
		log.Err(err).Str("func", "*categoryRepository.UpdateCategory").Msg("error reading updated category")
		return models.Category{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return updated, nil
}

// DeleteCategory removes a category owned by the user. Entries assigned to
// the category are detached first, so they stay in the vault as
// uncategorized. Both statements run in one transaction.
//
// Returns [ErrCategoryNotFound] when no category matches (id, user_id).
func (r *categoryRepository) DeleteCategory(ctx context.Context, categoryID string, userID string) error {
	log := logger.FromContext(ctx)

	detachQuery, detachArgs, err := buildDetachEntriesQuery(r.db.builder, categoryID, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	deleteQuery, deleteArgs, err := buildDeleteCategoryQuery(r.db.builder, categoryID, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.DeleteCategory").Msg("error during opening transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, detachQuery, detachArgs...); err != nil {
		log.Err(err).Str("func", "*categoryRepository.DeleteCategory").Msg("error detaching entries")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	result, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.DeleteCategory").Msg("error deleting category")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrCategoryNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
