package repository

import "gorm.io/gorm"

// applyPagination applies page/pageSize, clamping invalid pages to the first one.
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	return query.Limit(pageSize).Offset(offset)
}

// applyLimitOffset applies raw limit/offset, ignoring non-positive values.
func applyLimitOffset(query *gorm.DB, limit, offset int) *gorm.DB {
	if query == nil {
		return query
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
