package router

import (
	"devtoolbox_echo/internal/models"
	"devtoolbox_echo/internal/views"
)

// Path constants for every tool page
const (
	Root             = "/"
	DevJSONFormatter = "/dev/json-formatter"
	DevRegexTester   = "/dev/regex-tester"
	DevJSONValidator = "/dev/json-validator"
	DevAPITester     = "/dev/api-tester"
	DevBase64        = "/dev/base64"
	DevCrypto        = "/dev/crypto"
	TimeConverter    = "/tools/time-converter"
	JSONConverter    = "/tools/json-formatter"
	TextCompare      = "/tools/text-compare"
	QRCode           = "/tools/qrcode"
	ImageConverter   = "/image/converter"
	ImageCompressor  = "/image/compressor"
)

// routeDef ties a path to the view key it renders
type routeDef struct {
	path  string
	name  string
	view  string
	title string
	icon  string
	group models.MenuGroup
}

var table = []routeDef{
	{DevJSONFormatter, "devJsonFormatter", views.KeyDevJSONFormatter, "JSON 格式化", "braces", models.MenuGroupDevTools},
	{DevRegexTester, "regexTester", views.KeyRegexTester, "正则表达式测试", "regex", models.MenuGroupDevTools},
	{DevJSONValidator, "jsonValidator", views.KeyJSONValidator, "JSON 校验与解析", "check", models.MenuGroupDevTools},
	{DevAPITester, "apiTester", views.KeyAPITester, "API 调试工具", "send", models.MenuGroupDevTools},
	{DevBase64, "base64", views.KeyBase64, "Base64 转换", "binary", models.MenuGroupDevTools},
	{DevCrypto, "crypto", views.KeyCrypto, "加密解密工具", "lock", models.MenuGroupDevTools},
	{TimeConverter, "timeConverter", views.KeyTimeConverter, "时间转换", "clock", models.MenuGroupCommon},
	{JSONConverter, "jsonConverter", views.KeyJSONConverter, "JSON格式化", "braces", models.MenuGroupCommon},
	{TextCompare, "textCompare", views.KeyTextCompare, "文本对比", "diff", models.MenuGroupCommon},
	{QRCode, "qrcode", views.KeyQRCode, "二维码生成", "qrcode", models.MenuGroupCommon},
	{ImageConverter, "imageConverter", views.KeyImageConverter, "图片格式转换", "swap", models.MenuGroupImage},
	{ImageCompressor, "imageCompressor", views.KeyImageCompressor, "图片压缩", "compress", models.MenuGroupImage},
}

// DefaultRoutes builds the application route table. The root redirects to home;
// every other route loads its view from registry with deps on first visit.
func DefaultRoutes(registry *views.Registry, deps views.Deps, home string) []Route {
	if home == "" {
		home = DevJSONFormatter
	}
	routes := make([]Route, 0, len(table)+1)
	routes = append(routes, Route{Path: Root, Name: "home", Redirect: home})
	for _, def := range table {
		routes = append(routes, Route{
			Path:      def.path,
			Name:      def.name,
			Component: Loader(registry.Loader(def.view, deps)),
			Meta: &Meta{
				Title: def.title,
				Icon:  def.icon,
				Group: string(def.group),
			},
		})
	}
	return routes
}

// ViewKey returns the view key rendered at path
func ViewKey(path string) (string, bool) {
	path = normalize(path)
	for _, def := range table {
		if def.path == path {
			return def.view, true
		}
	}
	return "", false
}
