package config

import (
	"fmt"

	"devtoolbox_echo/internal/models"
)

// Menu returns the navigation tree shown in the sidebar.
// The tree is rebuilt on every call so callers can never mutate the shared table.
func Menu() []models.MenuItem {
	return []models.MenuItem{
		{
			Title: "开发工具",
			Key:   string(models.MenuGroupDevTools),
			Icon:  "code",
			Children: []models.MenuItem{
				{Title: "JSON 格式化", Key: "jsonFormatter", Icon: "braces", Path: "/dev/json-formatter"},
				{Title: "正则表达式测试", Key: "regexTester", Icon: "regex", Path: "/dev/regex-tester"},
				{Title: "JSON 校验与解析", Key: "jsonValidator", Icon: "check", Path: "/dev/json-validator"},
				{Title: "API 调试工具", Key: "apiTester", Icon: "send", Path: "/dev/api-tester"},
				{Title: "Base64 转换", Key: "base64", Icon: "binary", Path: "/dev/base64"},
				{Title: "加密解密工具", Key: "crypto", Icon: "lock", Path: "/dev/crypto"},
			},
		},
		{
			Title: "常用工具",
			Key:   string(models.MenuGroupCommon),
			Icon:  "tool",
			Children: []models.MenuItem{
				{Title: "时间转换", Key: "timeConverter", Icon: "clock", Path: "/tools/time-converter"},
				// Same key as the devtools entry; keys only need to be unique among siblings.
				{Title: "JSON格式化", Key: "jsonFormatter", Icon: "braces", Path: "/tools/json-formatter"},
				{Title: "文本对比", Key: "textCompare", Icon: "diff", Path: "/tools/text-compare"},
				{Title: "二维码生成", Key: "qrcode", Icon: "qrcode", Path: "/tools/qrcode"},
			},
		},
		{
			Title: "图片工具",
			Key:   string(models.MenuGroupImage),
			Icon:  "image",
			Children: []models.MenuItem{
				{Title: "图片格式转换", Key: "imageConverter", Icon: "swap", Path: "/image/converter"},
				{Title: "图片压缩", Key: "imageCompressor", Icon: "compress", Path: "/image/compressor"},
			},
		},
	}
}

// ValidateMenu checks the structural rules of a navigation tree:
// leaves need a path, groups need children and sibling keys must be distinct.
func ValidateMenu(items []models.MenuItem) error {
	return validateSiblings(items, "")
}

func validateSiblings(items []models.MenuItem, parent string) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		where := item.Key
		if parent != "" {
			where = parent + "." + item.Key
		}
		if item.Key == "" {
			return fmt.Errorf("menu item %q under %q has no key", item.Title, parent)
		}
		if seen[item.Key] {
			return fmt.Errorf("duplicate menu key %q", where)
		}
		seen[item.Key] = true

		if item.IsLeaf() {
			if item.Path == "" {
				return fmt.Errorf("menu item %q has neither path nor children", where)
			}
			continue
		}
		if item.Path != "" {
			return fmt.Errorf("menu group %q must not have a path", where)
		}
		if err := validateSiblings(item.Children, where); err != nil {
			return err
		}
	}
	return nil
}
