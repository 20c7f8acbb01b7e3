package model

// BlogPost is an entry of the read-only blog catalog.
type BlogPost struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Content     string   `json:"content"`
	Excerpt     string   `json:"excerpt"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	PublishedAt string   `json:"publishedAt"`
	ReadTime    string   `json:"readTime"`
	URL         string   `json:"url"`
}
