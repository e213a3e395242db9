// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taibuivan/bookmarks/internal/core/language"
	"github.com/taibuivan/bookmarks/internal/platform/apperr"
	"github.com/taibuivan/bookmarks/internal/platform/dberr"
	"github.com/taibuivan/bookmarks/internal/platform/middleware"
	"github.com/taibuivan/bookmarks/internal/platform/validate"
	"github.com/taibuivan/bookmarks/pkg/normalize"
	"github.com/taibuivan/bookmarks/pkg/pointer"
	"github.com/taibuivan/bookmarks/pkg/slice"
)

// LanguageFinder resolves a language id, answering apperr.NotFound("Language") when unknown.
type LanguageFinder interface {
	GetLanguage(context context.Context, id int) (*language.Language, error)
}

type Service struct {
	repo          Repository
	categoryOwner middleware.OwnerLookup
	languages     LanguageFinder
	logger        *slog.Logger
}

// NewService wires the bookmark use cases. categoryOwner is usually the
// category service's OwnerOf.
func NewService(repo Repository, categoryOwner middleware.OwnerLookup, languages LanguageFinder, logger *slog.Logger) *Service {
	return &Service{
		repo:          repo,
		categoryOwner: categoryOwner,
		languages:     languages,
		logger:        logger,
	}
}

// ListGrouped returns the user's bookmarks keyed by category name.
// Categories without bookmarks are absent.
func (service *Service) ListGrouped(context context.Context, userID string) (Grouped, error) {
	sites, err := service.repo.ListAllSites(context, userID)
	if err != nil {
		return nil, err
	}

	grouped := make(Grouped)
	for _, s := range sites {
		grouped[s.CategoryName] = append(grouped[s.CategoryName], s)
	}
	return grouped, nil
}

func (service *Service) ListSites(context context.Context, userID string, filter Filter, limit, offset int) ([]*Site, int, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	return service.repo.ListSites(context, userID, filter, limit, offset)
}

func (service *Service) GetSite(context context.Context, userID string, id int64) (*Site, error) {
	site, err := service.repo.GetSite(context, userID, id)
	return site, notFound(err)
}

/*
CreateSite files a new bookmark for userID.

Description: The category must belong to the caller and the language must
exist; tag ids the caller does not own are dropped.

Parameters:
  - context: context.Context (carries the caller identity)
  - userID: string
  - input: Input

Returns:
  - *Site: The stored, hydrated bookmark
  - error: Validation, NotFound (category or language) or storage failures
*/
func (service *Service) CreateSite(context context.Context, userID string, input Input) (*Site, error) {
	site, tagIDs, err := service.prepare(context, userID, input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.CreateSite(context, site, tagIDs); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "site_created", slog.Int64("site_id", site.ID))
	return service.GetSite(context, userID, site.ID)
}

// UpdateSite rewrites the bookmark and replaces its tag set.
func (service *Service) UpdateSite(context context.Context, userID string, id int64, input Input) (*Site, error) {
	site, tagIDs, err := service.prepare(context, userID, input)
	if err != nil {
		return nil, err
	}
	site.ID = id

	if err := service.repo.UpdateSite(context, site, tagIDs); err != nil {
		return nil, notFound(err)
	}

	service.logger.InfoContext(context, "site_updated", slog.Int64("site_id", id))
	return service.GetSite(context, userID, id)
}

func (service *Service) DeleteSite(context context.Context, userID string, id int64) error {
	if err := service.repo.DeleteSite(context, userID, id); err != nil {
		return notFound(err)
	}

	service.logger.InfoContext(context, "site_deleted", slog.Int64("site_id", id))
	return nil
}

// OwnerOf feeds the ownership gate.
func (service *Service) OwnerOf(context context.Context, id int64) (string, error) {
	return service.repo.OwnerOf(context, id)
}

// prepare validates input and resolves its references.
func (service *Service) prepare(context context.Context, userID string, input Input) (*Site, []int64, error) {
	site := &Site{
		UserID:      userID,
		CategoryID:  input.CategoryID,
		LanguageID:  input.LanguageID,
		Name:        normalize.Name(input.Name),
		URL:         strings.TrimSpace(input.URL),
		Description: pointer.TrimmedOrNil(input.Description),
	}

	// 1. Shape
	validator := &validate.Validator{}
	validator.Required(FieldName, site.Name).MaxLen(FieldName, site.Name, nameMaxLength)
	validator.Required(FieldURL, site.URL)
	if site.URL != "" {
		validator.URL(FieldURL, site.URL).MaxLen(FieldURL, site.URL, urlMaxLength)
	}
	validator.Positive(FieldCategoryID, site.CategoryID)
	if site.Description != nil {
		validator.MaxLen(FieldDescription, *site.Description, descriptionMaxLength)
	}

	if err := validator.Err(); err != nil {
		return nil, nil, err
	}

	// 2. The category must be the caller's own
	if err := middleware.CheckOwnership(context, "Category", site.CategoryID, service.categoryOwner); err != nil {
		return nil, nil, err
	}

	// 3. The language must exist
	if site.LanguageID != nil {
		if _, err := service.languages.GetLanguage(context, *site.LanguageID); err != nil {
			return nil, nil, err
		}
	}

	// 4. Tags: the repository drops ids the caller does not own
	tagIDs := slice.Unique(slice.Filter(input.TagIDs, func(id int64) bool { return id > 0 }))

	return site, tagIDs, nil
}

func notFound(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound("Bookmark")
	}
	return err
}
