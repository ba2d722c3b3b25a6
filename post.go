package newsparse

import (
	"time"
)

// Post is an article assembled from a feed item and its extracted body.
type Post struct {
	ID          string    `json:"id"`
	Site        string    `json:"site"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	Image       string    `json:"image,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Items       []Block   `json:"items"`
	ContentHash string    `json:"contentHash"`
}

// Validate returns an error if the post contains invalid fields.
func (p *Post) Validate() error {
	if p.Title == "" {
		return Errorf(EINVALID, "post title required")
	}
	if !IsValidURL(p.Link) {
		return Errorf(EINVALID, "post link must be an absolute URL, got %q", p.Link)
	}
	for i := range p.Items {
		if err := p.Items[i].Validate(); err != nil {
			return Errorf(EINVALID, "post item %d: %s", i, ErrorMessage(err))
		}
	}
	return nil
}
