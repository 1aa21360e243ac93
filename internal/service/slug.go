package service

import (
	"regexp"
	"strings"
)

// slugPattern 校验客户端提交的 slug：小写字母、数字，以单个中划线分段。
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// slugify 将标题规整为 URL 安全的 slug：
// 小写化，非 ASCII 字母数字的字符替换为中划线，折叠连续中划线并去掉首尾项。
// 规整结果为空时回退为字面量 post。
func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		default:
			b.WriteRune('-')
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "post"
	}
	return slug
}

func validSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}
