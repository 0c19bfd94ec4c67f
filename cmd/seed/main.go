// Command seed populates the database with fake users, profiles and posts
// for local development.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"devconnect/auth"
	"devconnect/config"
	"devconnect/database"
	"devconnect/gravatar"
	"devconnect/models"
	"devconnect/repository"

	"github.com/brianvoe/gofakeit/v6"
)

const (
	userCount     = 15
	postsPerUser  = 3
	seedPassword  = "password123"
	maxCommenters = 4
)

var statuses = []string{
	"Developer", "Senior Developer", "Junior Developer", "Student",
	"Instructor", "Engineering Manager", "Intern",
}

func main() {
	cfg := config.LoadConfig()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	hashed, err := auth.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	var users []*models.User
	for i := 0; i < userCount; i++ {
		email := gofakeit.Email()
		user := &models.User{
			Name:     gofakeit.Name(),
			Email:    email,
			Password: hashed,
			Avatar:   gravatar.URL(email, 200),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Printf("skipping user %s: %v", email, err)
			continue
		}
		users = append(users, user)
	}
	log.Printf("Created %d users (password %q)", len(users), seedPassword)

	for _, user := range users {
		profile := &models.Profile{
			UserID:         user.ID,
			Status:         statuses[gofakeit.Number(0, len(statuses)-1)],
			Skills:         []string{gofakeit.ProgrammingLanguage(), gofakeit.ProgrammingLanguage(), "Git"},
			Company:        gofakeit.Company(),
			Website:        gofakeit.URL(),
			Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
			Bio:            gofakeit.JobDescriptor() + " " + gofakeit.JobTitle(),
			GithubUsername: gofakeit.Username(),
			Social: models.Social{
				Twitter:  "https://twitter.com/" + gofakeit.Username(),
				Linkedin: "https://linkedin.com/in/" + gofakeit.Username(),
			},
		}
		if _, err := profileRepo.Upsert(ctx, profile); err != nil {
			log.Printf("skipping profile for user %d: %v", user.ID, err)
			continue
		}

		from := gofakeit.DateRange(
			time.Now().AddDate(-8, 0, 0),
			time.Now().AddDate(-2, 0, 0),
		)
		exp := &models.Experience{
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        from,
			Current:     gofakeit.Bool(),
			Description: gofakeit.Sentence(12),
		}
		if !exp.Current {
			to := gofakeit.DateRange(from, time.Now())
			exp.To = &to
		}
		if _, err := profileRepo.AddExperience(ctx, user.ID, exp); err != nil {
			log.Printf("skipping experience for user %d: %v", user.ID, err)
		}
	}
	log.Println("Created profiles with experience entries")

	var posts []*models.Post
	for _, user := range users {
		for i := 0; i < postsPerUser; i++ {
			post := &models.Post{
				UserID: user.ID,
				Name:   user.Name,
				Avatar: user.Avatar,
				Text:   gofakeit.Paragraph(1, 3, 12, " "),
			}
			created, err := postRepo.Create(ctx, post)
			if err != nil {
				log.Printf("skipping post for user %d: %v", user.ID, err)
				continue
			}
			posts = append(posts, created)
		}
	}
	log.Printf("Created %d posts", len(posts))

	for _, post := range posts {
		for _, user := range users {
			if user.ID == post.UserID {
				continue
			}
			if gofakeit.Bool() {
				if _, err := postRepo.Like(ctx, post.ID, user.ID); err != nil {
					continue
				}
			}
		}

		commenters := gofakeit.Number(0, maxCommenters)
		for i := 0; i < commenters; i++ {
			user := users[gofakeit.Number(0, len(users)-1)]
			comment := &models.Comment{
				PostID: post.ID,
				UserID: user.ID,
				Name:   user.Name,
				Avatar: user.Avatar,
				Text:   gofakeit.Sentence(10),
			}
			if _, err := postRepo.AddComment(ctx, comment); err != nil {
				continue
			}
		}
	}
	log.Println("Seed complete")
}
