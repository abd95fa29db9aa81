package poster

import "context"

// PlaceholderResolver answers every poster request with the placeholder image.
// It stands in for TMDBResolver when no API key is configured, so clients
// still receive a renderable URL.
type PlaceholderResolver struct {
	url string
}

// NewPlaceholderResolver returns a resolver serving url, or
// DefaultPlaceholderURL when url is empty.
func NewPlaceholderResolver(url string) *PlaceholderResolver {
	if url == "" {
		url = DefaultPlaceholderURL
	}
	return &PlaceholderResolver{url: url}
}

func (p *PlaceholderResolver) ResolvePoster(_ context.Context, _ int64) string {
	return p.url
}

func (p *PlaceholderResolver) PlaceholderURL() string {
	return p.url
}
