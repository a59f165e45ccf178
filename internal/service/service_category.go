// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/store"
	"github.com/pivault/pivault/internal/utils"
	"github.com/pivault/pivault/internal/validators"
	"github.com/pivault/pivault/models"
)

// categoryService is the concrete implementation of CategoryService.
// Category names are plaintext metadata; they never enter the encrypted
// payload.
type categoryService struct {
	categoryRepository store.CategoryRepository
	validator          validators.Validator
	uuid               *utils.UUIDGenerator
	logger             *logger.Logger
}

// NewCategoryService constructs a CategoryService on top of the category
// repository.
func NewCategoryService(repos *store.Repositories, logger *logger.Logger) CategoryService {
	return &categoryService{
		categoryRepository: repos.CategoryRepository,
		validator:          validators.NewAccountValidator(),
		uuid:               utils.NewUUIDGenerator(),
		logger:             logger,
	}
}

// CreateCategory validates and persists a category owned by the user.
// Returns ErrInvalidCategoryName for an empty or over-long name.
func (s *categoryService) CreateCategory(ctx context.Context, userID string, category models.Category) (models.Category, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, category, validators.FieldCategoryName); err != nil {
		return models.Category{}, err
	}
	name := strings.TrimSpace(category.Name)

	icon := category.Icon
	if icon == "" {
		icon = "folder"
	}

	created, err := s.categoryRepository.CreateCategory(ctx, models.Category{
		ID:        s.uuid.Generate(),
		UserID:    userID,
		Name:      name,
		Icon:      icon,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("category creation failed")
		return models.Category{}, fmt.Errorf("category creation failed: %w", err)
	}

	return created, nil
}

// GetCategories lists the user's categories in creation order.
func (s *categoryService) GetCategories(ctx context.Context, userID string) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	categories, err := s.categoryRepository.GetCategoriesByUser(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("category list failed")
		return nil, fmt.Errorf("category list failed: %w", err)
	}

	return categories, nil
}

// UpdateCategory renames an owned category or changes its icon. The name is
// re-validated with the same rules as creation; a missing icon falls back to
// the default like it does on create.
//
// Returns ErrInvalidCategoryName for a bad name, or the repository's
// store.ErrCategoryNotFound when the user owns no such category.
func (s *categoryService) UpdateCategory(ctx context.Context, userID string, category models.Category) (models.Category, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, category, validators.FieldCategoryName); err != nil {
		return models.Category{}, err
	}

	icon := category.Icon
	if icon == "" {
		icon = "folder"
	}

	updated, err := s.categoryRepository.UpdateCategory(ctx, models.Category{
		ID:     category.ID,
		UserID: userID,
		Name:   strings.TrimSpace(category.Name),
		Icon:   icon,
	})
	if err != nil {
		log.Err(err).Str("user_id", userID).Str("category_id", category.ID).Msg("category update failed")
		return models.Category{}, fmt.Errorf("category update failed: %w", err)
	}

	return updated, nil
}

// DeleteCategory removes an owned category. Entries keep living in the vault
// as uncategorized; the repository detaches them in the same transaction.
func (s *categoryService) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	log := logger.FromContext(ctx)

	if err := s.categoryRepository.DeleteCategory(ctx, categoryID, userID); err != nil {
		log.Err(err).Str("user_id", userID).Str("category_id", categoryID).Msg("category deletion failed")
		return fmt.Errorf("category deletion failed: %w", err)
	}

	return nil
}
