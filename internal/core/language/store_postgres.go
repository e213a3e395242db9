// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookmarks/internal/platform/database/schema"
	"github.com/taibuivan/bookmarks/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListLanguages(context context.Context) ([]*Language, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		ORDER BY %s ASC;
	`,
		schema.CoreLanguage.ID,
		schema.CoreLanguage.Name,
		schema.CoreLanguage.ShortName,
		schema.CoreLanguage.Table,
		schema.CoreLanguage.Name,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_languages")
	}

	languages, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Language, error) {
		l := &Language{}
		err := row.Scan(&l.ID, &l.Name, &l.ShortName)
		return l, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_language")
	}

	return languages, nil
}

func (repository *PostgresRepository) GetLanguage(context context.Context, id int) (*Language, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1;
	`,
		schema.CoreLanguage.ID,
		schema.CoreLanguage.Name,
		schema.CoreLanguage.ShortName,
		schema.CoreLanguage.Table,
		schema.CoreLanguage.ID,
	)

	l := &Language{}
	err := repository.db.QueryRow(context, query, id).Scan(&l.ID, &l.Name, &l.ShortName)
	if err != nil {
		return nil, dberr.Wrap(err, "get_language")
	}
	return l, nil
}

func (repository *PostgresRepository) CreateLanguage(context context.Context, l *Language) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		RETURNING %s
	`,
		schema.CoreLanguage.Table,
		schema.CoreLanguage.Name,
		schema.CoreLanguage.ShortName,
		schema.CoreLanguage.ID,
	)

	err := repository.db.QueryRow(context, query, l.Name, l.ShortName).Scan(&l.ID)
	return dberr.Wrap(err, "Language with this name or short name already exists")
}
