package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"horeca-board/pkg/access"
	"horeca-board/pkg/cache"
	"horeca-board/pkg/config"
	"horeca-board/pkg/database"
	"horeca-board/pkg/logger"
	"horeca-board/pkg/models"
	"horeca-board/pkg/s3"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// activeBannersKey mirrors the banner service's cache key so a reseed shows up
// without waiting for the TTL.
const activeBannersKey = "banners:active"

const seedPassword = "password123"

type seedUser struct {
	email string
	name  string
	role  access.Role
	city  string
}

var seedUsers = []seedUser{
	{"admin@horeca.test", "Admin", access.RoleAdmin, "Almaty"},
	{"moderator@horeca.test", "Moderator", access.RoleModerator, "Almaty"},
	{"bistro@horeca.test", "Bistro Nord", access.RoleEmployer, "Almaty"},
	{"hotel@horeca.test", "Grand Hotel", access.RoleEmployer, "Astana"},
	{"anna@horeca.test", "Anna K.", access.RoleJobSeeker, "Almaty"},
	{"timur@horeca.test", "Timur S.", access.RoleJobSeeker, "Astana"},
}

type seedJob struct {
	employer string
	title    string
	jobType  string
	salary   string
	status   string
}

var seedJobs = []seedJob{
	{"bistro@horeca.test", "Line cook", "full_time", "350 000 KZT", "active"},
	{"bistro@horeca.test", "Barista", "part_time", "200 000 KZT", "active"},
	{"bistro@horeca.test", "Dishwasher", "contract", "", "pending"},
	{"hotel@horeca.test", "Front desk agent", "full_time", "400 000 KZT", "active"},
	{"hotel@horeca.test", "Room attendant", "full_time", "280 000 KZT", "pending"},
}

type seedBanner struct {
	owner    string
	title    string
	status   string
	priority int
}

var seedBanners = []seedBanner{
	{"bistro@horeca.test", "Bistro Nord is hiring cooks", "active", 2},
	{"hotel@horeca.test", "Grand Hotel summer season", "active", 1},
	{"hotel@horeca.test", "Open day at Grand Hotel", "pending", 0},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.NewWithLevel(cfg.LogLevel)
	defer log.Sync()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Without storage banners point at the placeholder service directly.
	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Warn("Failed to create S3 client: %v (using remote image URLs)", err)
		s3Client = nil
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis: %v (banner cache not cleared)", err)
		redisClient = nil
	}

	if err := seedDatabase(context.Background(), db, s3Client, redisClient, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(ctx context.Context, db *gorm.DB, s3Client *s3.Client, redisClient *redis.Client, log *logger.Logger) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	ids := make(map[string]string, len(seedUsers))
	for _, u := range seedUsers {
		id, err := ensureUser(ctx, db, u, string(hashedPassword), log)
		if err != nil {
			log.Error("Failed to create user %s: %v", u.email, err)
			continue
		}
		ids[u.email] = id
	}

	var activeJobs []*models.Job
	for _, j := range seedJobs {
		employerID, ok := ids[j.employer]
		if !ok {
			continue
		}
		job := &models.Job{
			EmployerID:  employerID,
			Title:       j.title,
			Company:     nameOf(j.employer),
			Location:    cityOf(j.employer),
			Salary:      j.salary,
			Type:        j.jobType,
			Description: fmt.Sprintf("%s wanted. Training provided, flexible shifts.", j.title),
			Status:      j.status,
		}
		if err := db.WithContext(ctx).Where(models.Job{EmployerID: employerID, Title: j.title}).FirstOrCreate(job).Error; err != nil {
			log.Error("Failed to create job %s: %v", j.title, err)
			continue
		}
		log.Info("Job ready: %s (%s)", job.Title, job.Status)
		if job.Status == "active" {
			activeJobs = append(activeJobs, job)
		}
	}

	// Every seeker applies to the first open vacancy.
	if len(activeJobs) > 0 {
		for _, u := range seedUsers {
			if u.role != access.RoleJobSeeker {
				continue
			}
			app := &models.Application{
				JobID:   activeJobs[0].ID,
				UserID:  ids[u.email],
				Status:  "pending",
				Message: "Hello! I have two years of experience and can start next week.",
			}
			err := db.WithContext(ctx).Where(models.Application{JobID: app.JobID, UserID: app.UserID}).FirstOrCreate(app).Error
			if err != nil {
				log.Error("Failed to create application for %s: %v", u.email, err)
			}
		}
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	now := time.Now().UTC()
	for i, b := range seedBanners {
		ownerID, ok := ids[b.owner]
		if !ok {
			continue
		}
		var existing models.Banner
		err := db.WithContext(ctx).Where("user_id = ? AND title = ?", ownerID, b.title).First(&existing).Error
		if err == nil {
			log.Info("Banner %q already exists, skipping", b.title)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up banner: %w", err)
		}

		imageURL := bannerImage(ctx, s3Client, httpClient, ownerID, i, b.title, log)
		banner := &models.Banner{
			UserID:      ownerID,
			Title:       b.title,
			Description: "Seeded promotion",
			ImageURL:    imageURL,
			Link:        "/jobs",
			Status:      b.status,
			IsActive:    true,
			Priority:    b.priority,
			StartsAt:    now,
			ExpiresAt:   now.Add(30 * 24 * time.Hour),
		}
		if err := db.WithContext(ctx).Create(banner).Error; err != nil {
			log.Error("Failed to create banner %q: %v", b.title, err)
			continue
		}
		log.Info("Created banner: %s", banner.Title)
	}

	if redisClient != nil {
		if err := redisClient.Del(ctx, activeBannersKey).Err(); err != nil {
			log.Warn("Failed to clear banner cache: %v", err)
		}
	}
	return nil
}

// ensureUser creates the credential row and its profile unless the email is
// already registered, and returns the user id.
func ensureUser(ctx context.Context, db *gorm.DB, u seedUser, passwordHash string, log *logger.Logger) (string, error) {
	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", u.email).First(&existing).Error
	if err == nil {
		log.Info("User %s already exists, skipping", u.email)
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	user := &models.User{Email: u.email, PasswordHash: passwordHash}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return "", err
	}

	profile := &models.Profile{
		ID:    user.ID,
		Email: u.email,
		Role:  string(u.role),
		Name:  u.name,
		City:  u.city,
	}
	if err := db.WithContext(ctx).Create(profile).Error; err != nil {
		return "", fmt.Errorf("user %s was created without a profile: %w", user.ID, err)
	}

	log.Info("Created %s: %s", u.role, u.email)
	return user.ID, nil
}

// bannerImage downloads a placeholder image and stores it under banners/.
// When storage is missing or the upload fails, the placeholder URL is used.
func bannerImage(ctx context.Context, s3Client *s3.Client, httpClient *http.Client, ownerID string, index int, title string, log *logger.Logger) string {
	remote := "https://placehold.co/1200x400/png?text=" + url.QueryEscape(title)
	if s3Client == nil {
		return remote
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remote, nil)
	if err != nil {
		return remote
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		log.Warn("Failed to fetch placeholder image: %v", err)
		return remote
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("Placeholder service returned status %d", resp.StatusCode)
		return remote
	}

	key := s3.ObjectKey(s3.PrefixBanners, ownerID, fmt.Sprintf("seed_%d.png", index))
	stored, err := s3Client.Upload(ctx, key, io.LimitReader(resp.Body, 5<<20), "image/png")
	if err != nil {
		log.Warn("Failed to upload banner image: %v", err)
		return remote
	}
	return stored
}

func nameOf(email string) string {
	for _, u := range seedUsers {
		if u.email == email {
			return u.name
		}
	}
	return ""
}

func cityOf(email string) string {
	for _, u := range seedUsers {
		if u.email == email {
			return u.city
		}
	}
	return ""
}
