package payload

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	out := make(map[string]string, len(verr.Errors))
	for _, fe := range verr.Errors {
		out[fe.Field] = fe.Message
	}
	return out
}

func TestParse(t *testing.T) {
	t.Run("success - blog post", func(t *testing.T) {
		body := []byte(`{
			"idempotencyKey": "abc123",
			"contentType": "blogPost",
			"targetPlatform": {"name": "blog", "publishStatus": "publish"},
			"notificationUrl": "https://client.example.com/callback",
			"data": {
				"title": "Test Post",
				"contentHtml": "<h1>Test</h1><p>Body text</p>",
				"tags": ["go", "webhooks"],
				"categories": ["design", "News"]
			}
		}`)

		sub, err := Parse(body)
		require.NoError(t, err)
		assert.Equal(t, "abc123", sub.Envelope.IdempotencyKey)
		assert.Equal(t, TypeBlogPost, sub.Envelope.ContentType)
		assert.Equal(t, Publish, sub.Envelope.TargetPlatform.PublishStatus)

		post, ok := sub.Content.(BlogPost)
		require.True(t, ok)
		assert.Equal(t, "Test Post", post.Title)
		assert.Equal(t, []string{"go", "webhooks"}, post.Tags)
	})

	t.Run("success - notification url is optional", func(t *testing.T) {
		body := []byte(`{
			"idempotencyKey": "k1",
			"contentType": "linkedInPost",
			"targetPlatform": {"name": "linkedin", "publishStatus": "draft"},
			"data": {"text": "hello", "mediaUrls": ["https://cdn.example.com/a.png"]}
		}`)

		sub, err := Parse(body)
		require.NoError(t, err)
		assert.Empty(t, sub.Envelope.NotificationURL)
		assert.Equal(t, TypeLinkedInPost, sub.Content.ContentType())
	})

	t.Run("success - instagram story with stickers", func(t *testing.T) {
		body := []byte(`{
			"idempotencyKey": "k2",
			"contentType": "instagramStory",
			"targetPlatform": {"name": "instagram", "publishStatus": "publish"},
			"data": {
				"mediaUrl": "https://cdn.example.com/story.mp4",
				"mediaType": "video",
				"stickers": [{"type": "hashtag", "value": "#go"}]
			}
		}`)

		sub, err := Parse(body)
		require.NoError(t, err)
		story := sub.Content.(InstagramStory)
		assert.Len(t, story.Stickers, 1)
	})

	t.Run("error - reports every violation", func(t *testing.T) {
		body := []byte(`{
			"contentType": "blogPost",
			"targetPlatform": {"name": "blog", "publishStatus": "later"},
			"notificationUrl": "not a url",
			"data": {
				"title": "",
				"contentHtml": "<p>x</p>",
				"category": "Cooking",
				"tags": ["a","b","c","d","e","f","g","h","i","j","k"]
			}
		}`)

		_, err := Parse(body)
		require.Error(t, err)
		fields := fieldErrors(t, err)
		assert.Equal(t, "is required", fields["idempotencyKey"])
		assert.Contains(t, fields["targetPlatform.publishStatus"], "must be one of: publish, draft")
		assert.Equal(t, "must be a valid URL", fields["notificationUrl"])
		assert.Equal(t, "is required", fields["data.title"])
		assert.Contains(t, fields["data.category"], "Technology")
		assert.Equal(t, "must contain at most 10 items", fields["data.tags"])
		assert.Len(t, fields, 6)
	})

	t.Run("error - blog post length limits", func(t *testing.T) {
		body := []byte(`{
			"idempotencyKey": "k3",
			"contentType": "blogPost",
			"targetPlatform": {"name": "blog", "publishStatus": "draft"},
			"data": {
				"title": "` + strings.Repeat("t", 201) + `",
				"contentHtml": "` + strings.Repeat("b", 50001) + `",
				"featuredImageUrl": "https://cdn.example.com/` + strings.Repeat("i", 500) + `.png"
			}
		}`)

		_, err := Parse(body)
		fields := fieldErrors(t, err)
		assert.Equal(t, "must be at most 200 characters", fields["data.title"])
		assert.Equal(t, "must be at most 50000 characters", fields["data.contentHtml"])
		assert.Equal(t, "must be at most 500 characters", fields["data.featuredImageUrl"])
	})

	t.Run("error - too many categories and media", func(t *testing.T) {
		body := []byte(`{
			"idempotencyKey": "k4",
			"contentType": "linkedInPost",
			"targetPlatform": {"name": "linkedin", "publishStatus": "publish"},
			"data": {"text": "", "mediaUrls": ["https://a.io/1","https://a.io/2","https://a.io/3","https://a.io/4","https://a.io/5"]}
		}`)

		_, err := Parse(body)
		fields := fieldErrors(t, err)
		assert.Equal(t, "is required", fields["data.text"])
		assert.Equal(t, "must contain at most 4 items", fields["data.mediaUrls"])
	})

	t.Run("error - sticker fields use their index", func(t *testing.T) {
		body := []byte(`{
			"idempotencyKey": "k5",
			"contentType": "instagramStory",
			"targetPlatform": {"name": "instagram", "publishStatus": "publish"},
			"data": {"mediaUrl": "https://a.io/x.png", "mediaType": "gif", "stickers": [{"type": "poll"}]}
		}`)

		_, err := Parse(body)
		fields := fieldErrors(t, err)
		assert.Equal(t, "must be one of: image, video", fields["data.mediaType"])
		assert.Equal(t, "must be one of: link, mention, hashtag, location", fields["data.stickers[0].type"])
	})

	t.Run("error - missing data", func(t *testing.T) {
		body := []byte(`{
			"idempotencyKey": "k6",
			"contentType": "blogPost",
			"targetPlatform": {"name": "blog", "publishStatus": "publish"},
			"data": null
		}`)

		_, err := Parse(body)
		fields := fieldErrors(t, err)
		assert.Equal(t, "is required", fields["data"])
	})

	t.Run("error - unknown content type skips data validation", func(t *testing.T) {
		body := []byte(`{
			"idempotencyKey": "k7",
			"contentType": "tweet",
			"targetPlatform": {"name": "x", "publishStatus": "publish"},
			"data": {"anything": true}
		}`)

		_, err := Parse(body)
		fields := fieldErrors(t, err)
		assert.Len(t, fields, 1)
		assert.Contains(t, fields["contentType"], "blogPost, linkedInPost, instagramStory")
	})

	t.Run("error - wrong JSON type", func(t *testing.T) {
		body := []byte(`{
			"idempotencyKey": "k8",
			"contentType": "blogPost",
			"targetPlatform": {"name": "blog", "publishStatus": "publish"},
			"data": {"title": 42, "contentHtml": "x"}
		}`)

		_, err := Parse(body)
		fields := fieldErrors(t, err)
		assert.Equal(t, "must be of type string", fields["data.title"])
	})

	t.Run("error - wrong envelope types do not hide other violations", func(t *testing.T) {
		body := []byte(`{
			"idempotencyKey": 7,
			"contentType": "bogus",
			"targetPlatform": {"name": "", "publishStatus": "x"},
			"data": {}
		}`)

		_, err := Parse(body)
		fields := fieldErrors(t, err)
		assert.Equal(t, "must be of type string", fields["idempotencyKey"])
		assert.Contains(t, fields["contentType"], "must be one of")
		assert.Equal(t, "is required", fields["targetPlatform.name"])
		assert.Equal(t, "must be one of: publish, draft", fields["targetPlatform.publishStatus"])
		assert.Len(t, fields, 4)
	})

	t.Run("error - wrong data type is reported with missing fields", func(t *testing.T) {
		body := []byte(`{
			"idempotencyKey": "k9",
			"contentType": "blogPost",
			"targetPlatform": {"name": "blog", "publishStatus": 1},
			"data": {"title": 5, "tags": "go"}
		}`)

		_, err := Parse(body)
		fields := fieldErrors(t, err)
		assert.Equal(t, "must be of type string", fields["targetPlatform.publishStatus"])
		assert.Equal(t, "must be of type string", fields["data.title"])
		assert.Equal(t, "must be of type array", fields["data.tags"])
		assert.Equal(t, "is required", fields["data.contentHtml"])
		assert.Len(t, fields, 4)
	})

	t.Run("error - data of the wrong shape", func(t *testing.T) {
		body := []byte(`{
			"idempotencyKey": "k10",
			"contentType": "linkedInPost",
			"targetPlatform": {"name": "linkedin", "publishStatus": "publish"},
			"data": "hello"
		}`)

		_, err := Parse(body)
		fields := fieldErrors(t, err)
		assert.Equal(t, "must be of type object", fields["data"])
		assert.Len(t, fields, 1)
	})

	t.Run("error - malformed body", func(t *testing.T) {
		_, err := Parse([]byte(`{"idempotencyKey":`))
		fields := fieldErrors(t, err)
		assert.Equal(t, "must be a valid JSON object", fields["body"])
	})
}

func TestDecodeContent(t *testing.T) {
	t.Run("success - round trip of stored content", func(t *testing.T) {
		c, err := DecodeContent(TypeBlogPost, []byte(`{"title":"T","contentHtml":"<p>b</p>","slug":"custom"}`))
		require.NoError(t, err)
		assert.Equal(t, "custom", c.(BlogPost).Slug)
	})

	t.Run("error - unsupported type", func(t *testing.T) {
		_, err := DecodeContent(ContentType("podcast"), []byte(`{}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported content type")
	})
}

func TestPeekIdempotencyKey(t *testing.T) {
	assert.Equal(t, "abc123", PeekIdempotencyKey([]byte(`{"idempotencyKey":" abc123 ","data":{}}`)))
	assert.Empty(t, PeekIdempotencyKey([]byte(`{"data":{}}`)))
	assert.Empty(t, PeekIdempotencyKey([]byte(`not json`)))
	assert.Empty(t, PeekIdempotencyKey([]byte(`{"idempotencyKey": 5}`)))
}
