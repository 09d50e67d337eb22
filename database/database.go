package database

import (
	"fmt"
	"log"
	"os"

	"lms_backend/models"
	courseModels "lms_backend/models/course"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	// Build the PostgreSQL connection string
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	// Open database connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)   // Maximum open connections
	sqlDB.SetMaxIdleConns(5)    // Maximum idle connections
	sqlDB.SetConnMaxLifetime(0) // No timeout

	// Run database migrations
	RunMigrations(db)

	seedCourseCategories(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Instructor{},
		&models.CourseCategory{},
		&courseModels.Course{},
		&courseModels.CourseModule{},
		&courseModels.ModuleLesson{},
		&courseModels.Assessment{},
		&courseModels.AssessmentQuestion{},
		&courseModels.AssessmentAnswerOption{},
		&courseModels.Announcement{},
		&courseModels.Enrollment{},
		&courseModels.LessonCompletion{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// seedCourseCategories inserts the default catalog categories on first run
func seedCourseCategories(db *gorm.DB) {
	var count int64
	db.Model(&models.CourseCategory{}).Count(&count)
	if count > 0 {
		return
	}

	categories := []models.CourseCategory{
		{Name: "Programming", Description: "Software development and coding courses", IconName: "code", Color: "#3B82F6"},
		{Name: "Business", Description: "Business, management and entrepreneurship", IconName: "briefcase", Color: "#10B981"},
		{Name: "Design", Description: "Graphic, UX and product design", IconName: "palette", Color: "#F59E0B"},
		{Name: "Marketing", Description: "Digital marketing and growth", IconName: "megaphone", Color: "#EF4444"},
		{Name: "Data Science", Description: "Data analysis, ML and statistics", IconName: "bar-chart", Color: "#8B5CF6"},
		{Name: "Personal Development", Description: "Productivity and soft skills", IconName: "user", Color: "#06B6D4"},
	}

	if err := db.Create(&categories).Error; err != nil {
		log.Printf("Error seeding course categories: %v", err)
		return
	}

	log.Printf("Seeded %d course categories.", len(categories))
}
