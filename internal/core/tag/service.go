// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/bookmarks/internal/platform/apperr"
	"github.com/taibuivan/bookmarks/internal/platform/dberr"
	"github.com/taibuivan/bookmarks/internal/platform/validate"
	"github.com/taibuivan/bookmarks/pkg/normalize"
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

func (service *Service) ListTags(context context.Context, userID string, withCounts bool) ([]*Tag, error) {
	return service.repo.ListTags(context, userID, withCounts)
}

func (service *Service) CreateTag(context context.Context, tag *Tag) error {
	if err := prepare(tag); err != nil {
		return err
	}

	if err := service.repo.CreateTag(context, tag); err != nil {
		return err
	}

	service.logger.InfoContext(context, "tag_created", slog.Int64("tag_id", tag.ID))
	return nil
}

func (service *Service) RenameTag(context context.Context, tag *Tag) error {
	if err := prepare(tag); err != nil {
		return err
	}

	if err := service.repo.RenameTag(context, tag); err != nil {
		return notFound(err)
	}

	service.logger.InfoContext(context, "tag_renamed", slog.Int64("tag_id", tag.ID))
	return nil
}

func (service *Service) DeleteTag(context context.Context, userID string, id int64) error {
	if err := service.repo.DeleteTag(context, userID, id); err != nil {
		return notFound(err)
	}

	service.logger.InfoContext(context, "tag_deleted", slog.Int64("tag_id", id))
	return nil
}

// OwnerOf feeds the ownership gate.
func (service *Service) OwnerOf(context context.Context, id int64) (string, error) {
	return service.repo.OwnerOf(context, id)
}

// prepare case-folds the name so "Go" and "go" are the same tag.
func prepare(tag *Tag) error {
	tag.Name = normalize.Key(tag.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, tag.Name).MaxLen(FieldName, tag.Name, nameMaxLength)
	return validator.Err()
}

func notFound(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound("Tag")
	}
	return err
}
