package content

import (
	"bytes"
	"fmt"
)

// ArticleStatus tells whether an article is visible on the site
type ArticleStatus int

const (
	Draft ArticleStatus = iota + 1
	Published
)

func (s ArticleStatus) String() string {
	switch s {
	case Draft:
		return "draft"
	case Published:
		return "published"
	}
	return "unknown"
}

// NewArticleStatus creates an ArticleStatus from a string, defaulting to Draft
func NewArticleStatus(str string) ArticleStatus {
	if str == "published" {
		return Published
	}
	return Draft
}

// Validate checks if the status is valid
func (s ArticleStatus) Validate() error {
	if s < Draft || s > Published {
		return fmt.Errorf("invalid article status: %d", s)
	}
	return nil
}

func (s ArticleStatus) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString(`"`)
	buffer.WriteString(s.String())
	buffer.WriteString(`"`)
	return buffer.Bytes(), nil
}
