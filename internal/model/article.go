package model

// CreationDateLayout is the layout of Article.CreationDate (YYYY/MM/DD).
const CreationDateLayout = "2006/01/02"

// BodyMode selects where a deployment keeps the article body.
type BodyMode string

const (
	// BodyMarkdown keeps the body inline on the record as "markdown".
	BodyMarkdown BodyMode = "markdown"
	// BodyFile takes a base64 "file" payload and stores it out of line
	// in the object store under "<id>.html".
	BodyFile BodyMode = "file"
)

// Article data model. Markdown is nil for deployments in BodyFile mode.
type Article struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	Abstract     string  `json:"abstract"`
	Markdown     *string `json:"markdown,omitempty"`
	CreationDate string  `json:"creationDate"`
}

// ArticleInput is the body of POST /article. Every field is optional;
// which of Markdown and File is read depends on the BodyMode.
type ArticleInput struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Abstract string `json:"abstract"`
	Markdown string `json:"markdown"`
	File     string `json:"file"`
}

// Created acknowledges a stored article.
type Created struct {
	ArticleID string `json:"articleId"`
}
