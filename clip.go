package clipprune

import (
	"context"
	"time"
)

// Format is the output format of a clip.
type Format string

// Supported clip formats.
const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// Clip is a pruned page ready to be saved.
type Clip struct {
	RunID       string    `json:"runId"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Site        string    `json:"site"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Rule        string    `json:"rule"`
	Status      Status    `json:"status"`
	Format      Format    `json:"format"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	ClippedAt   time.Time `json:"clippedAt"`
}

// Validate returns an error if the clip contains invalid fields.
func (c *Clip) Validate() error {
	if c.SourceURL == "" {
		return Errorf(EINVALID, "clip source URL required")
	}
	switch c.Format {
	case FormatHTML, FormatMarkdown:
	default:
		return Errorf(EINVALID, "clip format %q not supported", c.Format)
	}
	return nil
}

// ClipWriter writes clips to storage.
type ClipWriter interface {
	WriteClip(ctx context.Context, clip *Clip) error
}
