package record

import (
	"fmt"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

// Attribute names of an article record.
const (
	FieldID           = "id"
	FieldTitle        = "title"
	FieldCategory     = "category"
	FieldAbstract     = "abstract"
	FieldMarkdown     = "markdown"
	FieldCreationDate = "creation_date"
)

// MissingFieldError reports an expected string attribute that a stored
// record does not carry. Decoding the empty record returned for an
// unknown key fails this way on FieldID.
type MissingFieldError struct {
	Field string
	Got   Kind
}

func (e *MissingFieldError) Error() string {
	if e.Got != KindInvalid {
		return fmt.Sprintf("record: field %q is %s, want string", e.Field, e.Got)
	}

	return fmt.Sprintf("record: missing field %q", e.Field)
}

// Codec maps articles to records and back for one body mode.
type Codec struct {
	Body model.BodyMode
}

// Encode builds the record stored for a new article. Absent optional
// fields become empty strings.
func (c Codec) Encode(in model.ArticleInput, id, creationDate string) Record {
	r := Record{
		FieldID:           String(id),
		FieldTitle:        String(in.Title),
		FieldCategory:     String(in.Category),
		FieldAbstract:     String(in.Abstract),
		FieldCreationDate: String(creationDate),
	}
	if c.Body == model.BodyMarkdown {
		r[FieldMarkdown] = String(in.Markdown)
	}

	return r
}

// Decode reads an article back from a stored record.
func (c Codec) Decode(r Record) (*model.Article, error) {
	d := decoder{r: r}
	a := &model.Article{
		ID:           d.str(FieldID),
		Title:        d.str(FieldTitle),
		Category:     d.str(FieldCategory),
		Abstract:     d.str(FieldAbstract),
		CreationDate: d.str(FieldCreationDate),
	}
	if c.Body == model.BodyMarkdown {
		md := d.str(FieldMarkdown)
		a.Markdown = &md
	}

	if d.err != nil {
		return nil, d.err
	}

	return a, nil
}

// decoder keeps the first failure so Decode reads like a field list.
type decoder struct {
	r   Record
	err error
}

func (d *decoder) str(field string) string {
	if d.err != nil {
		return ""
	}

	v, ok := d.r[field]
	if !ok {
		d.err = &MissingFieldError{Field: field}

		return ""
	}

	s, ok := v.AsString()
	if !ok {
		d.err = &MissingFieldError{Field: field, Got: v.Kind()}

		return ""
	}

	return s
}
