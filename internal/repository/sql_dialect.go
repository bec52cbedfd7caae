package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName returns the dialect name, sqlite when unknown.
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// buildLikeCondition builds "col LIKE ? OR col2 LIKE ?" and returns the placeholder count.
func buildLikeCondition(db *gorm.DB, columns ...string) (string, int) {
	return buildLikeConditionByDialect(dbDialectName(db), columns...)
}

func buildLikeConditionByDialect(dialect string, columns ...string) (string, int) {
	parts := make([]string, 0, len(columns))
	operator := likeOperatorByDialect(dialect)
	for _, column := range columns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", trimmed, operator))
	}
	return strings.Join(parts, " OR "), len(parts)
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// dayBucketExpr groups a timestamp column by calendar day as text, valid on sqlite and postgres.
func dayBucketExpr(column string) string {
	return fmt.Sprintf("CAST(date(%s) AS TEXT)", column)
}

// repeatLikeArgs repeats the LIKE argument count times.
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}

// likePattern wraps a trimmed keyword for substring matching.
func likePattern(keyword string) string {
	return "%" + strings.TrimSpace(keyword) + "%"
}
