// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookmarks/internal/platform/database/schema"
	"github.com/taibuivan/bookmarks/internal/platform/dberr"
)

const errDuplicateName = "Tag with this name already exists"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListTags orders by name; withCounts adds how many of the user's bookmarks carry each tag.
func (repository *PostgresRepository) ListTags(context context.Context, userID string, withCounts bool) ([]*Tag, error) {
	t, st := schema.CoreTag, schema.CoreSiteTag

	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, count(st.%s)::int
		FROM %s t
		LEFT JOIN %s st ON st.%s = t.%s
		WHERE t.%s = $1
		GROUP BY t.%s
		ORDER BY t.%s ASC
	`,
		t.ID, t.UserID, t.Name, t.CreatedAt, st.SiteID,
		t.Table,
		st.Table, st.TagID, t.ID,
		t.UserID,
		t.ID,
		t.Name,
	)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}

	tags, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Tag, error) {
		tag := &Tag{}
		var count int
		if err := row.Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.CreatedAt, &count); err != nil {
			return nil, err
		}
		if withCounts {
			tag.SiteCount = &count
		}
		return tag, nil
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_tag")
	}
	return tags, nil
}

func (repository *PostgresRepository) CreateTag(context context.Context, tag *Tag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		RETURNING %s, %s
	`,
		schema.CoreTag.Table, schema.CoreTag.UserID, schema.CoreTag.Name,
		schema.CoreTag.ID, schema.CoreTag.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, tag.UserID, tag.Name).Scan(&tag.ID, &tag.CreatedAt)
	return dberr.Wrap(err, errDuplicateName)
}

func (repository *PostgresRepository) RenameTag(context context.Context, tag *Tag) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3
		WHERE %s = $1 AND %s = $2
		RETURNING %s
	`,
		schema.CoreTag.Table, schema.CoreTag.Name,
		schema.CoreTag.ID, schema.CoreTag.UserID,
		schema.CoreTag.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, tag.ID, tag.UserID, tag.Name).Scan(&tag.CreatedAt)
	return dberr.Wrap(err, errDuplicateName)
}

// DeleteTag detaches the tag from every bookmark through the sitetag cascade.
func (repository *PostgresRepository) DeleteTag(context context.Context, userID string, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CoreTag.Table, schema.CoreTag.ID, schema.CoreTag.UserID)

	result, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_tag")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) OwnerOf(context context.Context, id int64) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CoreTag.UserID, schema.CoreTag.Table, schema.CoreTag.ID)

	var ownerID string
	if err := repository.db.QueryRow(context, query, id).Scan(&ownerID); err != nil {
		return "", dberr.Wrap(err, "tag_owner")
	}
	return ownerID, nil
}
