package clipprune

// Converter converts pruned HTML to Markdown.
type Converter interface {
	// Convert transforms the HTML of a pruned body into Markdown. Relative
	// links and images are resolved against pageURL when it is not empty.
	Convert(html string, pageURL string) (string, error)
}
