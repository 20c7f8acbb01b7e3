package service

import (
	"strings"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
)

const (
	featuredPosts = 3
	relatedPosts  = 3
)

// BlogQuery filters the blog listing. Empty fields do not filter.
type BlogQuery struct {
	Category string
	Tag      string
	Author   string
	Search   string
	Page     repo.Page
}

// BlogService serves the read-only blog catalog.
type BlogService struct {
	posts []model.BlogPost
}

// NewBlogService returns a service over the built-in posts.
func NewBlogService() *BlogService {
	return &BlogService{posts: seedPosts()}
}

// List filters the catalog and returns one page plus the filtered total.
func (s *BlogService) List(q BlogQuery) ([]model.BlogPost, int) {
	category := strings.ToLower(q.Category)
	tag := strings.ToLower(q.Tag)
	author := strings.ToLower(q.Author)
	search := strings.ToLower(q.Search)

	var out []model.BlogPost
	for _, p := range s.posts {
		if category != "" && strings.ToLower(p.Category) != category {
			continue
		}
		if tag != "" && !anyContains(p.Tags, tag) {
			continue
		}
		if author != "" && !strings.Contains(strings.ToLower(p.Author), author) {
			continue
		}
		if search != "" && !matches(p, search, false) {
			continue
		}
		out = append(out, p)
	}
	return paginate(out, q.Page), len(out)
}

// Get returns the post with the given ID.
func (s *BlogService) Get(id int) (*model.BlogPost, error) {
	for i := range s.posts {
		if s.posts[i].ID == id {
			p := s.posts[i]
			return &p, nil
		}
	}
	return nil, repo.ErrNotFound
}

// Categories returns the distinct categories in first-seen order.
func (s *BlogService) Categories() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range s.posts {
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			out = append(out, p.Category)
		}
	}
	return out
}

// Tags returns the distinct tags in first-seen order.
func (s *BlogService) Tags() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range s.posts {
		for _, t := range p.Tags {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				out = append(out, t)
			}
		}
	}
	return out
}

// Featured returns the first posts of the catalog.
func (s *BlogService) Featured() []model.BlogPost {
	n := min(featuredPosts, len(s.posts))
	return append([]model.BlogPost(nil), s.posts[:n]...)
}

// Search matches q against title, content, excerpt, tags and author.
// It returns at most limit posts and the number of matches.
func (s *BlogService) Search(q string, limit int) ([]model.BlogPost, int, error) {
	if q == "" {
		return nil, 0, invalid("Search query is required")
	}
	needle := strings.ToLower(q)
	out := make([]model.BlogPost, 0)
	for _, p := range s.posts {
		if matches(p, needle, true) {
			out = append(out, p)
		}
	}
	total := len(out)
	if limit > 0 && limit < total {
		out = out[:limit]
	}
	return out, total, nil
}

// Related returns posts sharing the category or a tag with the given post.
func (s *BlogService) Related(id int) ([]model.BlogPost, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	out := make([]model.BlogPost, 0, relatedPosts)
	for _, p := range s.posts {
		if len(out) == relatedPosts {
			break
		}
		if p.ID == post.ID {
			continue
		}
		if p.Category == post.Category || sharesTag(p.Tags, post.Tags) {
			out = append(out, p)
		}
	}
	return out, nil
}

func matches(p model.BlogPost, needle string, withAuthor bool) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Content), needle) ||
		strings.Contains(strings.ToLower(p.Excerpt), needle) ||
		anyContains(p.Tags, needle) {
		return true
	}
	return withAuthor && strings.Contains(strings.ToLower(p.Author), needle)
}

func anyContains(values []string, needle string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

func sharesTag(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func paginate[T any](items []T, p repo.Page) []T {
	start := min(p.Offset(), len(items))
	end := len(items)
	if p.Limit > 0 {
		end = start + min(p.Limit, len(items)-start)
	}
	return append(make([]T, 0, end-start), items[start:end]...)
}

func seedPosts() []model.BlogPost {
	return []model.BlogPost{
		{
			ID:          1,
			Title:       "How To Build Your Own Workout Routine: Plans, Schedules, and Exercises",
			Author:      "Steve Kamb",
			Content:     "Building your own workout routine can seem overwhelming, but it doesn't have to be. This comprehensive guide will walk you through the process of creating a personalized fitness plan that works for your goals, schedule, and fitness level...",
			Excerpt:     "Explore intelligent workout strategies",
			Image:       "images/blog/blog1.jpg",
			Category:    "workout",
			Tags:        []string{"workout routine", "fitness planning", "exercise"},
			PublishedAt: "2023-12-01",
			ReadTime:    "8 min read",
			URL:         "https://www.nerdfitness.com/blog/how-to-build-your-own-workout-routine/",
		},
		{
			ID:          2,
			Title:       "6 Beginner Gym Workouts: How to Work Out in a Gym The Right Way!",
			Author:      "Steve Kamb",
			Content:     "Starting your fitness journey at the gym can be intimidating, but with the right approach, you can build confidence and see real results. This guide covers everything from proper form to workout structure...",
			Excerpt:     "Dynamic workouts for holistic fitness",
			Image:       "images/blog/blog2.jpg",
			Category:    "beginner",
			Tags:        []string{"beginner workout", "gym tips", "fitness"},
			PublishedAt: "2023-11-15",
			ReadTime:    "12 min read",
			URL:         "https://www.nerdfitness.com/blog/a-beginners-guide-to-the-gym-everything-you-need-to-know/",
		},
		{
			ID:          3,
			Title:       "Strength Training For Women: 7 Things You Should Know First Beforehand!",
			Author:      "Staci Ardison",
			Content:     "Strength training is essential for women's health and fitness, but there are many misconceptions that can hold you back. Learn the truth about building strength and muscle as a woman...",
			Excerpt:     "Unleash powerful fitness transformations",
			Image:       "images/class/crossfit-class.jpg",
			Category:    "strength",
			Tags:        []string{"strength training", "women fitness", "muscle building"},
			PublishedAt: "2023-10-20",
			ReadTime:    "10 min read",
			URL:         "https://www.nerdfitness.com/blog/7-strength-training-myths-every-woman-should-know/",
		},
	}
}
