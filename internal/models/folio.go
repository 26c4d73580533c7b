package models

import "time"

// TemplateSnapshot is the copy of a template taken when a folio is created.
// It is frozen content, not a live reference.
type TemplateSnapshot struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	FetchedAt time.Time `json:"fetched_at"`
}

type Folio struct {
	ID            int64            `json:"id"`
	Type          string           `json:"type"`
	Title         string           `json:"title"`
	AuthorID      int64            `json:"-"`
	Author        Author           `json:"author"`
	BaseTemplate  TemplateSnapshot `json:"base_template"`
	UserInputData string           `json:"user_input_data"`
	LastModified  time.Time        `json:"last_modified"`
}

type FolioSummary struct {
	ID           int64     `json:"id"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	LastModified time.Time `json:"last_modified"`
}
