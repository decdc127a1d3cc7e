package blog

import "time"

// Post is a blog article. Unpublished posts are drafts visible only
// through the admin API.
type Post struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	FeaturedImageURL string    `json:"featured_image_url,omitempty"`
	SEOKeywords      string    `json:"seo_keywords,omitempty"`
	Author           string    `json:"author,omitempty"`
	IsPublished      bool      `json:"is_published"`
	CreatedAt        time.Time `json:"created_at"`
}
