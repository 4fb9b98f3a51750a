package payload

// Content is one variant of the data tagged union
type Content interface {
	ContentType() ContentType
}

// BlogPost is the data of a blogPost envelope
type BlogPost struct {
	Title            string   `json:"title" validate:"required,max=200"`
	ContentHTML      string   `json:"contentHtml" validate:"required,max=50000"`
	Slug             string   `json:"slug,omitempty" validate:"omitempty,max=200"`
	FeaturedImageURL string   `json:"featuredImageUrl,omitempty" validate:"omitempty,max=500,url"`
	Tags             []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,required,max=50"`
	Category         string   `json:"category,omitempty" validate:"omitempty,category"`
	Categories       []string `json:"categories,omitempty" validate:"omitempty,max=5,dive,category"`
	SEOTitle         string   `json:"seoTitle,omitempty" validate:"omitempty,max=200"`
	SEODescription   string   `json:"seoDescription,omitempty" validate:"omitempty,max=500"`
}

func (BlogPost) ContentType() ContentType { return TypeBlogPost }

// LinkedInPost is the data of a linkedInPost envelope
type LinkedInPost struct {
	Text      string   `json:"text" validate:"required,max=3000"`
	MediaURLs []string `json:"mediaUrls,omitempty" validate:"omitempty,max=4,dive,url"`
}

func (LinkedInPost) ContentType() ContentType { return TypeLinkedInPost }

// Sticker is an interactive element laid over an Instagram story
type Sticker struct {
	Type  string `json:"type" validate:"required,oneof=link mention hashtag location"`
	Value string `json:"value,omitempty" validate:"omitempty,max=500"`
}

// InstagramStory is the data of an instagramStory envelope
type InstagramStory struct {
	MediaURL  string    `json:"mediaUrl" validate:"required,url"`
	MediaType string    `json:"mediaType" validate:"required,oneof=image video"`
	Stickers  []Sticker `json:"stickers,omitempty" validate:"omitempty,max=10,dive"`
}

func (InstagramStory) ContentType() ContentType { return TypeInstagramStory }
