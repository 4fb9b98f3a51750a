package publish

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/marcelsud/content-webhook/content"
	"github.com/marcelsud/content-webhook/schedule"
	"github.com/marcelsud/content-webhook/webhook"
	"github.com/marcelsud/content-webhook/webhook/callback"
	"github.com/marcelsud/content-webhook/webhook/payload"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// Notifier delivers the outcome of a job to the caller
type Notifier interface {
	Deliver(ctx context.Context, url string, n callback.Notification) callback.Result
}

type Config struct {
	// SiteURL is the public base URL articles are served under
	SiteURL           string
	UnsupportedPolicy UnsupportedPolicy
	// Location decides which calendar day external content is recorded against
	Location *time.Location
}

const errNotStarted = "job could not be started"

/* Processor takes a queued job to a terminal state and reports the outcome.
 * It never returns an error: every failure ends up on the job record.
 */
type Processor struct {
	Jobs     webhook.Writer
	Content  content.UseCase
	Tracker  schedule.Tracker
	Notifier Notifier
	cfg      Config
	logger   zerolog.Logger
}

func NewProcessor(jobs webhook.Writer, cu content.UseCase, tracker schedule.Tracker, notifier Notifier, cfg Config, logger zerolog.Logger) *Processor {
	if cfg.UnsupportedPolicy == 0 {
		cfg.UnsupportedPolicy = AcceptUnsupported
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")
	return &Processor{
		Jobs:     jobs,
		Content:  cu,
		Tracker:  tracker,
		Notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

func (p *Processor) Process(ctx context.Context, task webhook.Task) {
	job := task.Job
	log := p.logger.With().
		Str("trackingId", job.TrackingID).
		Str("contentType", job.ContentType.String()).
		Logger()

	if err := p.Jobs.MarkProcessing(ctx, job.ID, time.Now().UTC()); err != nil {
		if errors.Is(err, webhook.ErrInvalidTransition) {
			log.Warn().Msg("job is no longer queued, skipping")
			return
		}
		// the job stays queued and will not run, the caller still hears about it
		log.Error().Err(err).Msg("marking job as processing")
		p.notify(ctx, task, callback.Failure(job.TrackingID, task.Request.IdempotencyKey, errNotStarted), log)
		return
	}

	outcome, err := p.run(ctx, task)
	finished := time.Now().UTC()

	var n callback.Notification
	if err != nil {
		log.Error().Err(err).Msg("job failed")
		if ferr := p.Jobs.Fail(ctx, job.ID, err.Error(), finished); ferr != nil {
			log.Error().Err(ferr).Msg("recording job failure, callback not sent")
			return
		}
		n = callback.Failure(job.TrackingID, task.Request.IdempotencyKey, err.Error())
	} else {
		log.Info().Str("url", outcome.PublishedURL).Msg("job completed")
		if cerr := p.Jobs.Complete(ctx, job.ID, outcome, finished); cerr != nil {
			log.Error().Err(cerr).Msg("recording job completion, callback not sent")
			return
		}
		n = callback.Success(job.TrackingID, task.Request.IdempotencyKey, outcome)
	}

	p.notify(ctx, task, n, log)
}

// notify delivers n when the request asked for a callback and records how it went
func (p *Processor) notify(ctx context.Context, task webhook.Task, n callback.Notification, log zerolog.Logger) {
	if task.Request.NotificationURL == "" {
		return
	}
	result := p.Notifier.Deliver(ctx, task.Request.NotificationURL, n)
	if err := p.Jobs.RecordCallback(ctx, task.Job.ID, result.Status, result.Attempts); err != nil {
		log.Error().Err(err).Msg("recording callback result")
	}
}

// run does the content specific work. A panic becomes an error.
func (p *Processor) run(ctx context.Context, task webhook.Task) (outcome webhook.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing: %v", r)
		}
	}()

	if task.Job.ContentType == payload.TypeBlogPost {
		// recorded before anything can fail so the scheduler backs off for the day
		if merr := p.Tracker.MarkExternalContent(ctx, time.Now().In(p.cfg.Location)); merr != nil {
			p.logger.Warn().Err(merr).Str("trackingId", task.Job.TrackingID).Msg("marking external content")
		}
	}

	c, err := payload.DecodeContent(task.Job.ContentType, task.Job.ContentData)
	if err != nil {
		return webhook.Outcome{}, fmt.Errorf("decoding content: %w", err)
	}

	switch c := c.(type) {
	case payload.BlogPost:
		return p.publishBlogPost(ctx, task, c)
	default:
		return p.unsupported(task, c)
	}
}

func (p *Processor) publishBlogPost(ctx context.Context, task webhook.Task, post payload.BlogPost) (webhook.Outcome, error) {
	title := PlainText(post.Title)
	if title == "" {
		return webhook.Outcome{}, errors.New("title is empty once HTML is removed")
	}
	body := PlainText(post.ContentHTML)
	if body == "" {
		return webhook.Outcome{}, errors.New("content is empty once HTML is removed")
	}

	short := shortID(task.Job.TrackingID)
	slug := Slugify(post.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		slug = "post-" + short
	}

	author, err := p.Content.DefaultAuthor(ctx)
	if err != nil {
		return webhook.Outcome{}, fmt.Errorf("resolving author: %w", err)
	}

	status := content.Draft
	if task.Job.PublishStatus == payload.Publish {
		status = content.Published
	}

	article := content.Article{
		Title:            html.EscapeString(title),
		Slug:             slug,
		Body:             html.EscapeString(body),
		Excerpt:          html.EscapeString(Excerpt(body, ExcerptLength)),
		FeaturedImageURL: post.FeaturedImageURL,
		Category:         resolveCategory(post),
		Tags:             post.Tags,
		SEOTitle:         StripHTML(post.SEOTitle),
		SEODescription:   StripHTML(post.SEODescription),
		Status:           status,
		AuthorID:         author.ID,
		Source:           content.SourceWebhook,
		ExternalRef:      task.Job.TrackingID,
	}

	saved, err := p.Content.Publish(ctx, article)
	if errors.Is(err, content.ErrSlugTaken) {
		article.Slug = withSuffix(slug, short)
		saved, err = p.Content.Publish(ctx, article)
	}
	if err != nil {
		return webhook.Outcome{}, fmt.Errorf("creating article: %w", err)
	}

	outcome := webhook.Outcome{
		PublishedContentID: strconv.FormatInt(saved.ID, 10),
		PublishedURL:       p.cfg.SiteURL + "/blog/" + saved.Slug,
	}
	if status == content.Draft {
		outcome.Message = "article saved as draft"
	}
	return outcome, nil
}

func (p *Processor) unsupported(task webhook.Task, c payload.Content) (webhook.Outcome, error) {
	if p.cfg.UnsupportedPolicy == FailUnsupported {
		return webhook.Outcome{}, fmt.Errorf("content type %s has no publisher configured", c.ContentType())
	}
	return webhook.Outcome{
		Message: fmt.Sprintf("%s accepted for %s; no publisher is configured for this content type, nothing was published",
			c.ContentType(), task.Request.TargetPlatform.Name),
	}, nil
}

func resolveCategory(post payload.BlogPost) content.Category {
	candidates := make([]string, 0, len(post.Categories)+1)
	if post.Category != "" {
		candidates = append(candidates, post.Category)
	}
	candidates = append(candidates, post.Categories...)
	for _, name := range candidates {
		if c, err := content.ParseCategory(name); err == nil {
			return c
		}
	}
	return content.DefaultCategory
}

func shortID(trackingID string) string {
	id := strings.ReplaceAll(trackingID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToLower(id)
}

func withSuffix(slug, suffix string) string {
	if max := MaxSlugLength - len(suffix) - 1; len(slug) > max {
		slug = strings.TrimRight(slug[:max], "-")
	}
	return slug + "-" + suffix
}
