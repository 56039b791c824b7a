package handler

import (
	"bytes"

	"github.com/inkwell/internal/db"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// postView is the denormalized shape the read endpoints return: the post
// row plus author, category, tags, comments and the rendered content.
type postView struct {
	db.Post
	ContentHTML string       `json:"content_html"`
	Author      db.User      `json:"author"`
	Category    *db.Category `json:"category"`
	Tags        []db.Tag     `json:"tags"`
	Comments    []db.Comment `json:"comments"`
}

// renderMarkdown converts post markdown into sanitized HTML.
func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		// Fall back to the sanitized raw text rather than failing the read.
		return sanitizer.Sanitize(content)
	}
	return sanitizer.Sanitize(buf.String())
}

// buildPostView flattens a preloaded post into the response shape.
// Relation slices are never nil so clients always see arrays.
func buildPostView(post db.Post) postView {
	view := postView{
		Post:        post,
		ContentHTML: renderMarkdown(post.Content),
		Author:      post.Author,
		Category:    post.Category,
		Tags:        post.Tags,
		Comments:    post.Comments,
	}
	if view.Tags == nil {
		view.Tags = []db.Tag{}
	}
	if view.Comments == nil {
		view.Comments = []db.Comment{}
	}
	return view
}
