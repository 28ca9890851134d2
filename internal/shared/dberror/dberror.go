// Package dberror classifies constraint violations coming from either Postgres (pgx) or SQLite.
package dberror

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindUnique
	KindForeignKey
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Violation describes a failed constraint. Detail is the Postgres constraint name or,
// for SQLite, the driver message (which names the offending table.columns).
type Violation struct {
	Kind   Kind
	Detail string
}

// Mentions reports whether the violated constraint refers to any of names.
func (v Violation) Mentions(names ...string) bool {
	detail := strings.ToLower(v.Detail)
	for _, n := range names {
		if strings.Contains(detail, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

func Classify(err error) Violation {
	if err == nil {
		return Violation{}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return Violation{Kind: KindUnique, Detail: pgErr.ConstraintName}
		case pgForeignKeyViolation:
			return Violation{Kind: KindForeignKey, Detail: pgErr.ConstraintName}
		}
		return Violation{}
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return Violation{Kind: KindUnique, Detail: sqliteErr.Error()}
		case sqlite3.ErrConstraintForeignKey:
			return Violation{Kind: KindForeignKey, Detail: sqliteErr.Error()}
		}
	}

	// Wrapped or re-rendered driver errors only keep their text.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key value"), strings.Contains(msg, "unique constraint failed"):
		return Violation{Kind: KindUnique, Detail: err.Error()}
	case strings.Contains(msg, "violates foreign key constraint"), strings.Contains(msg, "foreign key constraint failed"):
		return Violation{Kind: KindForeignKey, Detail: err.Error()}
	}

	return Violation{}
}
