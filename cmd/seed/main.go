// Command seed populates a development database with fake users, profiles
// and posts. Not intended for production use.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/models"
	"devconnect/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "password123"

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "Rust", "SQL", "Docker",
	"Kubernetes", "React", "PostgreSQL", "Redis", "GraphQL", "AWS",
}

func main() {
	users := flag.Int("users", 10, "number of users to create")
	posts := flag.Int("posts", 30, "number of posts to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	created := make([]*models.User, 0, *users)
	for i := 0; i < *users; i++ {
		email := fmt.Sprintf("%d.%s", i, gofakeit.Email())
		user := &models.User{
			Name:     gofakeit.Name(),
			Email:    email,
			Password: string(hash),
			Avatar:   models.GravatarURL(email),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		created = append(created, user)

		if _, err := profileRepo.Upsert(ctx, user.ID, &repository.ProfileInput{
			Company:        gofakeit.Company(),
			Website:        gofakeit.URL(),
			Location:       gofakeit.City(),
			Status:         gofakeit.JobTitle(),
			Bio:            gofakeit.Sentence(12),
			GithubUsername: gofakeit.Username(),
			Skills:         randomSkills(),
			Twitter:        "https://twitter.com/" + gofakeit.Username(),
			Linkedin:       "https://linkedin.com/in/" + gofakeit.Username(),
		}); err != nil {
			log.Fatalf("Failed to create profile: %v", err)
		}

		from := gofakeit.DateRange(
			time.Now().AddDate(-8, 0, 0),
			time.Now().AddDate(-1, 0, 0),
		)
		if _, err := profileRepo.AddExperience(ctx, user.ID, &models.Experience{
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        from,
			Current:     true,
			Description: gofakeit.Sentence(15),
		}); err != nil {
			log.Fatalf("Failed to create experience: %v", err)
		}
	}

	for i := 0; i < *posts; i++ {
		author := created[rand.Intn(len(created))]
		post, err := postRepo.Create(ctx, &models.Post{
			UserID:       author.ID,
			AuthorName:   author.Name,
			AuthorAvatar: author.Avatar,
			Text:         gofakeit.Paragraph(1, 3, 12, " "),
		})
		if err != nil {
			log.Fatalf("Failed to create post: %v", err)
		}

		for _, u := range created {
			if rand.Intn(3) == 0 {
				if _, err := postRepo.Like(ctx, post.ID, u.ID); err != nil {
					log.Fatalf("Failed to like post: %v", err)
				}
			}
			if rand.Intn(4) == 0 {
				if _, err := postRepo.AddComment(ctx, &models.Comment{
					PostID:       post.ID,
					UserID:       u.ID,
					AuthorName:   u.Name,
					AuthorAvatar: u.Avatar,
					Text:         gofakeit.Sentence(10),
				}); err != nil {
					log.Fatalf("Failed to create comment: %v", err)
				}
			}
		}
	}

	log.Printf("Seeded %d users and %d posts (password for all users: %s)",
		len(created), *posts, seedPassword)
}

func randomSkills() string {
	n := 3 + rand.Intn(4)
	picked := make([]string, 0, n)
	for _, idx := range rand.Perm(len(skillPool))[:n] {
		picked = append(picked, skillPool[idx])
	}
	out := ""
	for i, s := range picked {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
