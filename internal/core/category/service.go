// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/bookmarks/internal/platform/apperr"
	"github.com/taibuivan/bookmarks/internal/platform/dberr"
	"github.com/taibuivan/bookmarks/internal/platform/validate"
	"github.com/taibuivan/bookmarks/pkg/normalize"
	"github.com/taibuivan/bookmarks/pkg/pointer"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListCategories(context context.Context, userID string) ([]*Category, error) {
	return service.repo.ListCategories(context, userID)
}

func (service *Service) GetCategory(context context.Context, userID string, id int64) (*Category, error) {
	category, err := service.repo.GetCategory(context, userID, id)
	return category, notFound(err)
}

func (service *Service) CreateCategory(context context.Context, category *Category) error {
	if err := service.prepare(category); err != nil {
		return err
	}

	if err := service.repo.CreateCategory(context, category); err != nil {
		return err
	}

	service.logger.InfoContext(context, "category_created", slog.Int64("category_id", category.ID))
	return nil
}

func (service *Service) UpdateCategory(context context.Context, category *Category) error {
	if err := service.prepare(category); err != nil {
		return err
	}

	if err := service.repo.UpdateCategory(context, category); err != nil {
		return notFound(err)
	}

	service.logger.InfoContext(context, "category_updated", slog.Int64("category_id", category.ID))
	return nil
}

func (service *Service) DeleteCategory(context context.Context, userID string, id int64) error {
	if err := service.repo.DeleteCategory(context, userID, id); err != nil {
		return notFound(err)
	}

	service.logger.InfoContext(context, "category_deleted", slog.Int64("category_id", id))
	return nil
}

// OwnerOf feeds the ownership gate.
func (service *Service) OwnerOf(context context.Context, id int64) (string, error) {
	return service.repo.OwnerOf(context, id)
}

// prepare normalizes then validates the mutable fields.
func (service *Service) prepare(category *Category) error {
	category.Name = normalize.Name(category.Name)
	category.Description = pointer.TrimmedOrNil(category.Description)

	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name).MaxLen(FieldName, category.Name, nameMaxLength)
	if category.Description != nil {
		validator.MaxLen(FieldDescription, *category.Description, descriptionMaxLength)
	}

	return validator.Err()
}

// notFound names the resource in a missing-row error.
func notFound(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound("Category")
	}
	return err
}
