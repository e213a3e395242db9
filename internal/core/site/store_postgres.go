// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookmarks/internal/core/language"
	"github.com/taibuivan/bookmarks/internal/core/tag"
	"github.com/taibuivan/bookmarks/internal/platform/database/schema"
	"github.com/taibuivan/bookmarks/internal/platform/dberr"
	"github.com/taibuivan/bookmarks/internal/platform/postgres"
	"github.com/taibuivan/bookmarks/pkg/slice"
)

const errInvalidReference = "Bookmark references a missing category or language"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectSites is the hydrated projection shared by every read.
var selectSites = fmt.Sprintf(`
	SELECT s.%s, s.%s, s.%s, c.%s, s.%s, l.%s, l.%s, s.%s, s.%s, s.%s, s.%s, s.%s
	FROM %s s
	JOIN %s c ON c.%s = s.%s
	LEFT JOIN %s l ON l.%s = s.%s
`,
	schema.CoreSite.ID, schema.CoreSite.UserID, schema.CoreSite.CategoryID, schema.CoreCategory.Name,
	schema.CoreSite.LanguageID, schema.CoreLanguage.Name, schema.CoreLanguage.ShortName,
	schema.CoreSite.Name, schema.CoreSite.URL, schema.CoreSite.Description,
	schema.CoreSite.CreatedAt, schema.CoreSite.UpdatedAt,
	schema.CoreSite.Table,
	schema.CoreCategory.Table, schema.CoreCategory.ID, schema.CoreSite.CategoryID,
	schema.CoreLanguage.Table, schema.CoreLanguage.ID, schema.CoreSite.LanguageID,
)

func (repository *PostgresRepository) ListAllSites(context context.Context, userID string) ([]*Site, error) {
	query := selectSites + fmt.Sprintf(`
		WHERE s.%s = $1
		ORDER BY c.%s ASC, s.%s ASC
	`, schema.CoreSite.UserID, schema.CoreCategory.Name, schema.CoreSite.Name)

	sites, err := repository.collect(context, query, userID)
	if err != nil {
		return nil, err
	}

	return sites, repository.loadTags(context, userID, sites)
}

func (repository *PostgresRepository) ListSites(context context.Context, userID string, f Filter, limit, offset int) ([]*Site, int, error) {
	where := fmt.Sprintf(` WHERE s.%s = $1`, schema.CoreSite.UserID)
	args := []any{userID}

	if f.CategoryID > 0 {
		args = append(args, f.CategoryID)
		where += fmt.Sprintf(` AND s.%s = $%d`, schema.CoreSite.CategoryID, len(args))
	}

	if len(f.TagIDs) > 0 {
		args = append(args, f.TagIDs)
		where += fmt.Sprintf(` AND EXISTS (SELECT 1 FROM %s st WHERE st.%s = s.%s AND st.%s = ANY($%d))`,
			schema.CoreSiteTag.Table, schema.CoreSiteTag.SiteID, schema.CoreSite.ID, schema.CoreSiteTag.TagID, len(args))
	}

	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		where += fmt.Sprintf(` AND (s.%s ILIKE $%d OR s.%s ILIKE $%d OR s.%s ILIKE $%d)`,
			schema.CoreSite.Name, len(args), schema.CoreSite.URL, len(args), schema.CoreSite.Description, len(args))
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s s`, schema.CoreSite.Table) + where

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_sites")
	}

	query := selectSites + where + fmt.Sprintf(` ORDER BY s.%s ASC, s.%s ASC LIMIT $`, schema.CoreSite.Name, schema.CoreSite.ID) +
		strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	sites, err := repository.collect(context, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return sites, total, repository.loadTags(context, userID, sites)
}

func (repository *PostgresRepository) GetSite(context context.Context, userID string, id int64) (*Site, error) {
	query := selectSites + fmt.Sprintf(` WHERE s.%s = $1 AND s.%s = $2`, schema.CoreSite.ID, schema.CoreSite.UserID)

	sites, err := repository.collect(context, query, id, userID)
	if err != nil {
		return nil, err
	}
	if len(sites) == 0 {
		return nil, dberr.ErrNotFound
	}

	return sites[0], repository.loadTags(context, userID, sites)
}

func (repository *PostgresRepository) CreateSite(context context.Context, s *Site, tagIDs []int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s, %s
	`,
		schema.CoreSite.Table,
		schema.CoreSite.UserID, schema.CoreSite.CategoryID, schema.CoreSite.LanguageID,
		schema.CoreSite.Name, schema.CoreSite.URL, schema.CoreSite.Description,
		schema.CoreSite.ID, schema.CoreSite.CreatedAt, schema.CoreSite.UpdatedAt,
	)

	return postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(context, query, s.UserID, s.CategoryID, s.LanguageID, s.Name, s.URL, s.Description).
			Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, errInvalidReference)
		}

		return attachTags(context, tx, s.UserID, s.ID, tagIDs)
	})
}

func (repository *PostgresRepository) UpdateSite(context context.Context, s *Site, tagIDs []int64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1 AND %s = $2
		RETURNING %s, %s
	`,
		schema.CoreSite.Table,
		schema.CoreSite.CategoryID, schema.CoreSite.LanguageID, schema.CoreSite.Name,
		schema.CoreSite.URL, schema.CoreSite.Description, schema.CoreSite.UpdatedAt,
		schema.CoreSite.ID, schema.CoreSite.UserID,
		schema.CoreSite.CreatedAt, schema.CoreSite.UpdatedAt,
	)

	clearTags := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreSiteTag.Table, schema.CoreSiteTag.SiteID)

	return postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(context, query, s.ID, s.UserID, s.CategoryID, s.LanguageID, s.Name, s.URL, s.Description).
			Scan(&s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, errInvalidReference)
		}

		if _, err := tx.Exec(context, clearTags, s.ID); err != nil {
			return dberr.Wrap(err, "clear_site_tags")
		}

		return attachTags(context, tx, s.UserID, s.ID, tagIDs)
	})
}

func (repository *PostgresRepository) DeleteSite(context context.Context, userID string, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CoreSite.Table, schema.CoreSite.ID, schema.CoreSite.UserID)

	result, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_site")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) OwnerOf(context context.Context, id int64) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CoreSite.UserID, schema.CoreSite.Table, schema.CoreSite.ID)

	var ownerID string
	if err := repository.db.QueryRow(context, query, id).Scan(&ownerID); err != nil {
		return "", dberr.Wrap(err, "site_owner")
	}
	return ownerID, nil
}

// # Helpers

// attachTags links the site to the subset of tagIDs owned by userID.
func attachTags(context context.Context, db postgres.Querier, userID string, siteID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		SELECT $1, %s FROM %s WHERE %s = $2 AND %s = ANY($3)
		ON CONFLICT DO NOTHING
	`,
		schema.CoreSiteTag.Table, schema.CoreSiteTag.SiteID, schema.CoreSiteTag.TagID,
		schema.CoreTag.ID, schema.CoreTag.Table, schema.CoreTag.UserID, schema.CoreTag.ID,
	)

	if _, err := db.Exec(context, query, siteID, userID, tagIDs); err != nil {
		return dberr.Wrap(err, "attach_site_tags")
	}
	return nil
}

// collect runs a selectSites query.
func (repository *PostgresRepository) collect(context context.Context, query string, args ...any) ([]*Site, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sites")
	}

	sites, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Site, error) {
		s := &Site{Tags: []*tag.Tag{}}
		var languageName, languageShortName *string

		err := row.Scan(
			&s.ID, &s.UserID, &s.CategoryID, &s.CategoryName,
			&s.LanguageID, &languageName, &languageShortName,
			&s.Name, &s.URL, &s.Description, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if s.LanguageID != nil && languageName != nil && languageShortName != nil {
			s.Language = &language.Language{ID: *s.LanguageID, Name: *languageName, ShortName: *languageShortName}
		}
		return s, nil
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_site")
	}
	return sites, nil
}

// loadTags fills Tags for every site with one query.
func (repository *PostgresRepository) loadTags(context context.Context, userID string, sites []*Site) error {
	if len(sites) == 0 {
		return nil
	}

	byID := make(map[int64]*Site, len(sites))
	for _, s := range sites {
		byID[s.ID] = s
	}

	query := fmt.Sprintf(`
		SELECT st.%s, t.%s, t.%s, t.%s
		FROM %s st
		JOIN %s t ON t.%s = st.%s
		WHERE st.%s = ANY($1) AND t.%s = $2
		ORDER BY t.%s ASC
	`,
		schema.CoreSiteTag.SiteID, schema.CoreTag.ID, schema.CoreTag.Name, schema.CoreTag.CreatedAt,
		schema.CoreSiteTag.Table,
		schema.CoreTag.Table, schema.CoreTag.ID, schema.CoreSiteTag.TagID,
		schema.CoreSiteTag.SiteID, schema.CoreTag.UserID,
		schema.CoreTag.Name,
	)

	siteIDs := slice.Map(sites, func(s *Site) int64 { return s.ID })

	rows, err := repository.db.Query(context, query, siteIDs, userID)
	if err != nil {
		return dberr.Wrap(err, "list_site_tags")
	}
	defer rows.Close()

	for rows.Next() {
		var siteID int64
		t := &tag.Tag{UserID: userID}
		if err := rows.Scan(&siteID, &t.ID, &t.Name, &t.CreatedAt); err != nil {
			return dberr.Wrap(err, "scan_site_tag")
		}
		if s, ok := byID[siteID]; ok {
			s.Tags = append(s.Tags, t)
		}
	}

	return dberr.Wrap(rows.Err(), "list_site_tags")
}
