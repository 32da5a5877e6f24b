// Command seed populates the database with an admin account and sample
// products for local development. Existing rows are left in place.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/digistore/digistore/internal/auth"
	"github.com/digistore/digistore/internal/migrate"
	"github.com/digistore/digistore/internal/model"
	"github.com/digistore/digistore/internal/repository"
)

var sampleProducts = []model.Product{
	{
		Title:       "Digital Marketing Guide",
		Description: "Comprehensive guide to modern digital marketing strategies. Learn about SEO, social media marketing, content marketing, email campaigns, and more. Perfect for beginners and intermediate marketers.",
		Price:       29.99,
		ImageURL:    "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=800&q=80",
		DownloadURL: "https://example.com/downloads/marketing-guide.pdf",
	},
	{
		Title:       "Photography Masterclass",
		Description: "Learn professional photography techniques from basics to advanced concepts. Includes lessons on composition, lighting, post-processing, and building your photography business.",
		Price:       49.99,
		ImageURL:    "https://images.unsplash.com/photo-1452780212940-6f5c0d14d848?w=800&q=80",
		DownloadURL: "https://example.com/downloads/photography-course.zip",
	},
	{
		Title:       "Web Development Course",
		Description: "Complete guide to modern web development. Covers HTML, CSS, JavaScript, React, Node.js, and database integration. Build real-world projects as you learn.",
		Price:       79.99,
		ImageURL:    "https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=800&q=80",
		DownloadURL: "https://example.com/downloads/webdev-course.zip",
	},
}

func main() {
	var (
		databaseURL   = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		adminEmail    = flag.String("admin-email", "admin@example.com", "Admin account email")
		adminName     = flag.String("admin-name", "Admin User", "Admin account name")
		adminPassword = flag.String("admin-password", "admin123", "Admin account password")
		runMigrations = flag.Bool("migrate", true, "Apply pending migrations before seeding")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *runMigrations {
		if err := migrate.Up(ctx, *databaseURL); err != nil {
			fmt.Fprintln(os.Stderr, "apply migrations:", err)
			os.Exit(1)
		}
	}

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	if err := ensureAdmin(ctx, repo, *adminEmail, *adminName, *adminPassword); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	existing, err := repo.ListProducts(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "list products:", err)
		os.Exit(1)
	}
	if len(existing) > 0 {
		fmt.Printf("catalog already has %d products, skipping samples\n", len(existing))
		return
	}

	created := 0
	for _, sample := range sampleProducts {
		product := sample
		product.ID = ulid.Make().String()
		now := time.Now().UTC()
		product.CreatedAt = now
		product.UpdatedAt = now

		if err := repo.CreateProduct(ctx, &product); err != nil {
			fmt.Fprintln(os.Stderr, "create product:", err)
			os.Exit(1)
		}
		created++
	}

	fmt.Printf("seeded admin %s and %d products\n", *adminEmail, created)
}

// ensureAdmin creates the admin account if it does not exist yet.
// An existing account with the same email is left untouched.
func ensureAdmin(ctx context.Context, repo *repository.Repository, email, name, password string) error {
	_, err := repo.GetUserByEmail(ctx, email)
	if err == nil {
		fmt.Printf("admin %s already exists, skipping\n", email)
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}
