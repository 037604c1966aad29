// Package pages holds the templ components rendered outside the html/template layouts.
package pages

import "strconv"

// ErrorPageProps configures the error page
type ErrorPageProps struct {
	Code         int
	ErrorTitle   string
	ErrorMessage string
	RequestID    string
	BackLink     string
	BackText     string
}

func (p ErrorPageProps) code() string {
	return strconv.Itoa(p.Code)
}

func (p ErrorPageProps) backLink() string {
	if p.BackLink == "" {
		return "/"
	}
	return p.BackLink
}

func (p ErrorPageProps) backText() string {
	if p.BackText == "" {
		return "返回首页"
	}
	return p.BackText
}
