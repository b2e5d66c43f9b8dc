package services

import (
	"fmt"
	"os"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/apex-leadership/apex_api/model"
	"github.com/apex-leadership/apex_api/services/repositories"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string

	userRepo     *repositories.UserRepository
	contentRepo  *repositories.ContentRepository
	progressRepo *repositories.ProgressRepository
	messageRepo  *repositories.MessageRepository
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds *PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Users() *repositories.UserRepository {
	return ds.userRepo
}

func (ds *PostgresService) Content() *repositories.ContentRepository {
	return ds.contentRepo
}

func (ds *PostgresService) Progress() *repositories.ProgressRepository {
	return ds.progressRepo
}

func (ds *PostgresService) Messages() *repositories.MessageRepository {
	return ds.messageRepo
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		// Fallback to individual environment variables
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "apex_api"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	// Retry connection with exponential backoff
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	models := []interface{}{
		&model.User{},

		// Content models
		&model.Course{},
		&model.Lesson{},
		&model.Resource{},
		&model.Video{},
		&model.PromptCategory{},
		&model.Prompt{},

		// Progress and messaging
		&model.LessonProgress{},
		&model.Message{},
	}

	err = ds.db.AutoMigrate(models...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	ds.userRepo = repositories.NewUserRepository(ds.db)
	ds.contentRepo = repositories.NewContentRepository(ds.db)
	ds.progressRepo = repositories.NewProgressRepository(ds.db)
	ds.messageRepo = repositories.NewMessageRepository(ds.db)

	if err = ds.seedInitialData(); err != nil {
		log.Printf("Failed to seed initial data: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

// seedInitialData creates the owner account and starter catalog content on an
// empty database. Re-runs are no-ops.
func (ds *PostgresService) seedInitialData() error {
	if err := ds.seedOwner(); err != nil {
		return err
	}
	return ds.seedCatalog()
}

func (ds *PostgresService) seedOwner() error {
	ownerEmail := os.Getenv("OWNER_EMAIL")
	if ownerEmail == "" {
		ownerEmail = "owner@example.com"
	}

	if _, err := ds.userRepo.GetUserByEmail(ownerEmail); err == nil {
		return nil
	}

	ownerPassword := os.Getenv("OWNER_PASSWORD")
	if ownerPassword == "" {
		ownerPassword = "ChangeMe123!"
		log.Printf("OWNER_PASSWORD not set, seeding owner with default password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(ownerPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = ds.userRepo.CreateUser(&model.User{
		Email:        ownerEmail,
		Username:     "owner",
		PasswordHash: string(hash),
		Role:         model.RoleOwner,
	})
	return err
}

func (ds *PostgresService) seedCatalog() error {
	courses, err := ds.contentRepo.GetCourses()
	if err != nil {
		return err
	}
	if len(courses) > 0 {
		return nil
	}

	course, err := ds.contentRepo.CreateCourse(&model.Course{
		Title:       "AI Leadership Foundations",
		Description: "Learn the fundamentals of leading in the age of artificial intelligence.",
		Sort:        1,
		IsActive:    true,
	})
	if err != nil {
		return err
	}

	lessons := []model.Lesson{
		{Title: "Understanding AI for Leaders", Order: 1, Duration: "25 min"},
		{Title: "Building an AI-Ready Culture", Order: 2, Duration: "30 min"},
		{Title: "AI Strategy and Roadmapping", Order: 3, Duration: "35 min"},
		{Title: "Ethics and Governance", Order: 4, Duration: "20 min"},
		{Title: "Leading AI Transformation", Order: 5, Duration: "40 min"},
	}
	for i := range lessons {
		lessons[i].CourseID = course.ID
		lessons[i].IsActive = true
		if _, err := ds.contentRepo.CreateLesson(&lessons[i]); err != nil {
			return err
		}
	}

	resources := []model.Resource{
		{Title: "The Future of Leadership in AI-First Organizations", Type: "Article"},
		{Title: "10 Essential AI Leadership Skills", Type: "Guide"},
		{Title: "Ethical AI Implementation Framework", Type: "Template"},
		{Title: "AI Strategy Planning Worksheet", Type: "Worksheet"},
	}
	for i := range resources {
		if _, err := ds.contentRepo.CreateResource(&resources[i]); err != nil {
			return err
		}
	}

	log.Println("Seeded starter catalog")
	return nil
}
