// Command seed fills a database with demo content: a couple of accounts,
// reference taxonomy rows, posts in both lifecycle states and comments in
// every moderation state. Useful for local client development.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/inkwell/internal/config"
	"github.com/inkwell/internal/db"
	"github.com/inkwell/internal/service"
	"github.com/joho/godotenv"
)

func main() {
	var databasePath string
	var numPosts int
	flag.StringVar(&databasePath, "db", "", "database path (defaults to DATABASE_PATH)")
	flag.IntVar(&numPosts, "posts", 12, "number of posts to generate")
	flag.Parse()

	if numPosts <= 0 {
		fmt.Fprintln(os.Stderr, "posts must be greater than 0")
		os.Exit(1)
	}

	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}
	if databasePath == "" {
		databasePath = config.Load().DatabasePath
	}

	if err := db.Init(databasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := seed(numPosts); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("seeded %d posts into %s", numPosts, databasePath)
}

func seed(numPosts int) error {
	users := service.NewUserService(db.DB)
	categories := service.NewCategoryService(db.DB)
	tags := service.NewTagService(db.DB)
	posts := service.NewPostService(db.DB)
	comments := service.NewCommentService(db.DB)

	author, err := users.Register(service.RegisterInput{
		Username: "demo-author",
		Email:    "author@example.com",
		Password: "password",
		Role:     db.RoleAuthor,
	})
	if err != nil {
		return fmt.Errorf("create author: %w", err)
	}
	if _, err := users.Register(service.RegisterInput{
		Username: "demo-reader",
		Email:    "reader@example.com",
		Password: "password",
		Role:     db.RoleReader,
	}); err != nil {
		return fmt.Errorf("create reader: %w", err)
	}

	categoryIDs := make([]uint, 0, 4)
	for _, name := range []string{"Engineering", "Design", "Product", "Notes"} {
		category, err := categories.Create(name, strings.ToLower(name))
		if err != nil {
			return fmt.Errorf("create category %s: %w", name, err)
		}
		categoryIDs = append(categoryIDs, category.ID)
	}

	tagIDs := make([]uint, 0, 8)
	for i := 0; i < 8; i++ {
		tag, err := tags.Create(gofakeit.HackerNoun())
		if err != nil {
			return fmt.Errorf("create tag: %w", err)
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	statuses := []string{db.PostStatusPublished, db.PostStatusDraft}
	commentStatuses := []string{db.CommentStatusPending, db.CommentStatusApproved, db.CommentStatusRejected}

	for i := 0; i < numPosts; i++ {
		title := gofakeit.Sentence(gofakeit.Number(4, 9))
		excerpt := gofakeit.Sentence(gofakeit.Number(8, 16))
		categoryID := categoryIDs[gofakeit.Number(0, len(categoryIDs)-1)]

		post, err := posts.Create(service.PostInput{
			Title:      strings.TrimSuffix(title, "."),
			Slug:       fmt.Sprintf("%s-%d", gofakeit.Adjective(), i),
			Content:    fmt.Sprintf("# %s\n\n%s", title, gofakeit.Paragraph(3, 4, 24, "\n\n")),
			Excerpt:    &excerpt,
			CategoryID: &categoryID,
			Status:     statuses[i%len(statuses)],
			TagIDs:     pickTags(tagIDs),
			AuthorID:   author.ID,
		})
		if err != nil {
			return fmt.Errorf("create post %d: %w", i, err)
		}

		for j := 0; j < gofakeit.Number(0, 4); j++ {
			comment, err := comments.Create(service.CommentInput{
				Content:     gofakeit.Sentence(gofakeit.Number(6, 20)),
				AuthorName:  gofakeit.Name(),
				AuthorEmail: gofakeit.Email(),
				PostID:      post.ID,
			})
			if err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
			status := commentStatuses[gofakeit.Number(0, len(commentStatuses)-1)]
			if status != db.CommentStatusPending {
				if _, err := comments.UpdateStatus(comment.ID, status); err != nil {
					return fmt.Errorf("moderate comment: %w", err)
				}
			}
		}
	}

	return nil
}

func pickTags(tagIDs []uint) []uint {
	count := gofakeit.Number(0, 3)
	if count == 0 {
		return nil
	}
	picked := make([]uint, 0, count)
	seen := make(map[uint]struct{}, count)
	for len(picked) < count {
		id := tagIDs[gofakeit.Number(0, len(tagIDs)-1)]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		picked = append(picked, id)
	}
	return picked
}
