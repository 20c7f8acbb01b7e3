package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/service"
)

const postNotFound = "Blog post not found"

func (h *Handlers) ListPosts(c *gin.Context) {
	p := pageQuery(c)
	posts, total := h.blog.List(service.BlogQuery{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Author:   c.Query("author"),
		Search:   c.Query("search"),
		Page:     p,
	})
	n := len(posts)
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Count:      &n,
		Total:      &total,
		Pagination: &Pagination{Page: p.Page, Pages: pages(total, p.Limit), Limit: p.Limit},
		Data:       orEmpty(posts),
	})
}

func (h *Handlers) PostCategories(c *gin.Context) { list(c, h.blog.Categories()) }

func (h *Handlers) PostTags(c *gin.Context) { list(c, h.blog.Tags()) }

func (h *Handlers) FeaturedPosts(c *gin.Context) { list(c, h.blog.Featured()) }

func (h *Handlers) SearchPosts(c *gin.Context) {
	q := c.Query("q")
	posts, total, err := h.blog.Search(q, positiveQuery(c, "limit", defaultPageLimit))
	if err != nil {
		h.fail(c, err, errorText{})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Count: &total, Query: q, Data: orEmpty(posts)})
}

func (h *Handlers) GetPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, Response{Message: postNotFound})
		return
	}
	post, err := h.blog.Get(id)
	if err != nil {
		h.fail(c, err, errorText{NotFound: postNotFound})
		return
	}
	respond(c, http.StatusOK, "", post)
}

func (h *Handlers) RelatedPosts(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, Response{Message: postNotFound})
		return
	}
	posts, err := h.blog.Related(id)
	if err != nil {
		h.fail(c, err, errorText{NotFound: postNotFound})
		return
	}
	list(c, posts)
}
