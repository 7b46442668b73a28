package repository

import (
	"fmt"
	"strings"

	"github.com/stroyprombeton/internal/models"

	"gorm.io/gorm"
)

const likeEscapeChar = `\`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
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

// buildLikeConditionByDialect 构建多列 LIKE 条件（postgres 使用 ILIKE），并返回参数数量。
// 参数需经过 escapeLike 转义。
func buildLikeConditionByDialect(dialect string, columns []string) (string, int) {
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, likeClause(dialect, trimmed))
	}
	return strings.Join(parts, " OR "), len(parts)
}

// prefixRankExpr 前缀匹配排序表达式，匹配的行排在前面。
func prefixRankExpr(dialect, column string) string {
	return fmt.Sprintf("CASE WHEN %s THEN 0 ELSE 1 END", likeClause(dialect, column))
}

func likeClause(dialect, column string) string {
	return fmt.Sprintf("%s %s ? ESCAPE '%s'", column, likeOperatorByDialect(dialect), likeEscapeChar)
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// escapeLike 转义 LIKE 通配符，使 % 与 _ 按字面匹配
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// containsPattern 子串匹配参数：折叠大小写并转义
func containsPattern(term string) string {
	return "%" + escapeLike(models.FoldSearchText(term)) + "%"
}

// prefixPattern 前缀匹配参数：折叠大小写并转义
func prefixPattern(term string) string {
	return escapeLike(models.FoldSearchText(term)) + "%"
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}
