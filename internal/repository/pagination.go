package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// applyPagination 应用分页参数，统一处理非法页码与偏移量。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}

// orderExpr 带参数的完整 ORDER BY 表达式
func orderExpr(sql string, vars ...interface{}) clause.OrderBy {
	return clause.OrderBy{Expression: clause.Expr{SQL: sql, Vars: vars}}
}
