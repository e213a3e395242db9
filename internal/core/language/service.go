// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language

import (
	"context"
	"errors"
	"log/slog"
	"math"

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

func (service *Service) ListLanguages(context context.Context) ([]*Language, error) {
	return service.repo.ListLanguages(context)
}

// GetLanguage answers apperr.NotFound("Language") for unknown ids.
func (service *Service) GetLanguage(context context.Context, id int) (*Language, error) {
	if id <= 0 || id > math.MaxInt32 {
		return nil, apperr.NotFound("Language")
	}

	language, err := service.repo.GetLanguage(context, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.NotFound("Language")
	}
	return language, err
}

// CreateLanguage stores the short name case-folded so "EN" and "en" collide.
func (service *Service) CreateLanguage(context context.Context, language *Language) error {
	language.Name = normalize.Name(language.Name)
	language.ShortName = normalize.Key(language.ShortName)

	validator := &validate.Validator{}
	validator.Required(FieldName, language.Name).MaxLen(FieldName, language.Name, nameMaxLength)
	validator.Required(FieldShortName, language.ShortName).MaxLen(FieldShortName, language.ShortName, shortNameMaxLength)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.CreateLanguage(context, language); err != nil {
		return err
	}

	service.logger.InfoContext(context, "language_created", slog.String("short_name", language.ShortName))
	return nil
}
