package database

import (
	"fmt"
	"log"
	"os"

	"lms-educate/models"
	courseModels "lms-educate/models/course"

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

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the enrollment path relies on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
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
	if err := Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// Migrate performs schema migration plus the partial unique indexes the core
// invariants depend on. Shared with the test database setup.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Membership{},
		&courseModels.Course{},
		&courseModels.SubCourse{},
		&courseModels.Unit{},
		&courseModels.Enrollment{},
	)
	if err != nil {
		return err
	}

	// Uniqueness must only apply to live rows, so the indexes are partial.
	// AutoMigrate cannot express WHERE clauses; raw SQL works on both
	// postgres and the sqlite test database.
	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_memberships_user_org ON memberships (user_id, organization_id) WHERE NOT is_deleted`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_enrollments_user_course ON enrollments (user_id, course_id) WHERE NOT is_deleted`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_sub_courses_course_order ON sub_courses (course_id, order_index) WHERE NOT is_deleted`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_units_sub_course_order ON units (sub_course_id, order_index) WHERE NOT is_deleted`,
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
