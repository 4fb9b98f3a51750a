package content

import "time"

/* Article is a piece of content stored by the content store.
 * Uses value semantics as it represents data, not behavior
 */
type Article struct {
	ID               int64
	Title            string
	Slug             string
	Body             string
	Excerpt          string
	FeaturedImageURL string
	Category         Category
	Tags             []string
	SEOTitle         string
	SEODescription   string
	Status           ArticleStatus
	AuthorID         int64
	Source           string
	ExternalRef      string
	PublishedAt      *time.Time
	CreatedAt        time.Time
}

// Author is an identity allowed to own articles
type Author struct {
	ID    int64
	Name  string
	Email string
	Role  Role
}

// Role of an author in the content store
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// SourceWebhook marks articles created through the publish webhook
const SourceWebhook = "webhook"
