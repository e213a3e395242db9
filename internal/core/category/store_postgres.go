// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookmarks/internal/platform/database/schema"
	"github.com/taibuivan/bookmarks/internal/platform/dberr"
)

const errDuplicateName = "Category with this name already exists"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListCategories(context context.Context, userID string) ([]*Category, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CoreCategory.ID, schema.CoreCategory.UserID, schema.CoreCategory.Name,
		schema.CoreCategory.Description, schema.CoreCategory.CreatedAt,
		schema.CoreCategory.Table, schema.CoreCategory.UserID, schema.CoreCategory.Name,
	)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}

	categories, err := pgx.CollectRows(rows, scanCategory)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_category")
	}
	return categories, nil
}

func (repository *PostgresRepository) GetCategory(context context.Context, userID string, id int64) (*Category, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.CoreCategory.ID, schema.CoreCategory.UserID, schema.CoreCategory.Name,
		schema.CoreCategory.Description, schema.CoreCategory.CreatedAt,
		schema.CoreCategory.Table, schema.CoreCategory.ID, schema.CoreCategory.UserID,
	)

	rows, err := repository.db.Query(context, query, id, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category")
	}

	category, err := pgx.CollectExactlyOneRow(rows, scanCategory)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category")
	}
	return category, nil
}

func (repository *PostgresRepository) CreateCategory(context context.Context, c *Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s
	`,
		schema.CoreCategory.Table, schema.CoreCategory.UserID, schema.CoreCategory.Name, schema.CoreCategory.Description,
		schema.CoreCategory.ID, schema.CoreCategory.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, c.UserID, c.Name, c.Description).Scan(&c.ID, &c.CreatedAt)
	return dberr.Wrap(err, errDuplicateName)
}

func (repository *PostgresRepository) UpdateCategory(context context.Context, c *Category) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4
		WHERE %s = $1 AND %s = $2
		RETURNING %s
	`,
		schema.CoreCategory.Table, schema.CoreCategory.Name, schema.CoreCategory.Description,
		schema.CoreCategory.ID, schema.CoreCategory.UserID,
		schema.CoreCategory.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, c.ID, c.UserID, c.Name, c.Description).Scan(&c.CreatedAt)
	return dberr.Wrap(err, errDuplicateName)
}

// DeleteCategory fails with a conflict while bookmarks still reference the category.
func (repository *PostgresRepository) DeleteCategory(context context.Context, userID string, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CoreCategory.Table, schema.CoreCategory.ID, schema.CoreCategory.UserID)

	tag, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "Category still holds bookmarks")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) OwnerOf(context context.Context, id int64) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CoreCategory.UserID, schema.CoreCategory.Table, schema.CoreCategory.ID)

	var ownerID string
	if err := repository.db.QueryRow(context, query, id).Scan(&ownerID); err != nil {
		return "", dberr.Wrap(err, "category_owner")
	}
	return ownerID, nil
}

func scanCategory(row pgx.CollectableRow) (*Category, error) {
	c := &Category{}
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.CreatedAt)
	return c, err
}
