// Package i18n 接口提示消息的多语言支持
package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleRU      = "ru-RU"
	LocaleEN      = "en-US"
	DefaultLocale = LocaleRU
)

const localeHeader = "X-Locale"

var catalogs = map[string]map[string]string{
	LocaleRU: messagesRU,
	LocaleEN: messagesEN,
}

// ResolveLocale 解析请求语言：优先 X-Locale，其次 Accept-Language，默认俄语
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if locale, ok := NormalizeLocale(c.GetHeader(localeHeader)); ok {
		return locale
	}
	for _, part := range strings.Split(c.GetHeader("Accept-Language"), ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale, ok := NormalizeLocale(tag); ok {
			return locale
		}
	}
	return DefaultLocale
}

// NormalizeLocale 将 ru / ru-ru / en_GB 等写法归一到支持的语言
func NormalizeLocale(raw string) (string, bool) {
	raw = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(raw, "_", "-")))
	switch {
	case raw == "":
		return "", false
	case raw == "ru" || strings.HasPrefix(raw, "ru-"):
		return LocaleRU, true
	case raw == "en" || strings.HasPrefix(raw, "en-"):
		return LocaleEN, true
	}
	return "", false
}

// T 翻译消息；缺失时回退到默认语言，再缺失则返回 key 本身
func T(locale, key string) string {
	if messages, ok := catalogs[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化消息
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
