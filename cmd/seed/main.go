package main

import (
	"context"
	"flag"
	"strings"
	"time"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/events"
	"github.com/BloggingApp/blog-service/internal/repository/postgres"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	users := flag.Int("users", 10, "number of fake authors")
	posts := flag.Int("posts", 30, "number of posts to create")
	comments := flag.Int("comments", 3, "comments per post")
	edits := flag.Int("edits", 1, "edits per post, each one leaves a backup")
	flag.Parse()

	ctx := context.Background()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if err := config.LoadEnv(); err != nil {
		logger.Sugar().Fatalf("failed to load environment variables: %s", err.Error())
	}
	if err := config.InitConfig(); err != nil {
		logger.Sugar().Fatalf("failed to initialize yaml config: %s", err.Error())
	}
	cfg := config.Load()

	db, err := postgres.DB(ctx, cfg.DB)
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to postgres: %s", err.Error())
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Sugar().Fatalf("failed to migrate postgres: %s", err.Error())
	}

	gofakeit.Seed(time.Now().UnixNano())

	services := service.New(logger, postgres.New(db), events.NewNoop(), service.Options{})

	authors := make([]uuid.UUID, *users)
	for i := range authors {
		authors[i] = uuid.New()
	}

	var likes int
	for i := 0; i < *posts; i++ {
		author := authors[gofakeit.Number(0, len(authors)-1)]
		post, err := services.Post.Create(ctx, author, dto.CreatePostRequest{
			Title:   fakeTitle(),
			Content: gofakeit.Paragraph(2, 4, 12, " "),
		})
		if err != nil {
			logger.Sugar().Fatalf("failed to create post: %s", err.Error())
		}

		for j := 0; j < *comments; j++ {
			if _, err := services.Comment.Create(ctx, authors[gofakeit.Number(0, len(authors)-1)], post.ID, dto.CreateCommentRequest{
				Content: gofakeit.Sentence(gofakeit.Number(3, 15)),
			}); err != nil {
				logger.Sugar().Fatalf("failed to create comment on post(%d): %s", post.ID, err.Error())
			}
		}

		for j := 0; j < *edits; j++ {
			if _, err := services.Post.Edit(ctx, author, post.ID, dto.EditPostRequest{
				Title:   post.Title,
				Content: gofakeit.Paragraph(2, 4, 12, " "),
			}); err != nil {
				logger.Sugar().Fatalf("failed to edit post(%d): %s", post.ID, err.Error())
			}
		}

		for _, liker := range authors {
			if !gofakeit.Bool() {
				continue
			}
			if _, err := services.Post.ToggleLike(ctx, liker, post.ID); err != nil {
				logger.Sugar().Fatalf("failed to like post(%d): %s", post.ID, err.Error())
			}
			likes++
		}
	}

	logger.Sugar().Infof("Seeded %d posts, %d comments, %d likes, %d backups", *posts, *posts*(*comments), likes, *posts*(*edits))
}

const maxTitleLength = 100

func fakeTitle() string {
	return truncateTitle(gofakeit.Sentence(gofakeit.Number(2, 8)))
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) > maxTitleLength {
		runes = runes[:maxTitleLength]
	}

	return strings.TrimSpace(string(runes))
}
