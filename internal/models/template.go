package models

import "time"

const (
	TemplateTypeResume    = "resume"
	TemplateTypePortfolio = "portfolio"
)

type Template struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int64     `json:"-"`
	Author    Author    `json:"author"`
}

// TemplateSummary is a list row: content is deliberately omitted to keep
// pages small.
type TemplateSummary struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidTemplateType reports whether t is one of the known template kinds.
func ValidTemplateType(t string) bool {
	return t == TemplateTypeResume || t == TemplateTypePortfolio
}
