package repositories

import (
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"strings"
)

type DbContext struct {
	DB *gorm.DB
}

// NewDbContext opens Postgres for postgres DSNs and SQLite otherwise.
func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(dialector(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func dialector(connectionString string) gorm.Dialector {
	if isPostgres(connectionString) {
		return postgres.Open(connectionString)
	}
	return sqlite.Open(connectionString)
}

func isPostgres(connectionString string) bool {
	return strings.HasPrefix(connectionString, "postgres://") ||
		strings.HasPrefix(connectionString, "postgresql://") ||
		strings.Contains(connectionString, "host=")
}

func (c *DbContext) Migrate() error {
	entities := []any{
		models.UserProfile{},
		models.JobPreferences{},
		models.SavedJob{},
		models.ParsedResume{},
		models.GeneratedDocument{},
		models.JobAlert{},
		models.CareerItem{},
		models.ResumeAnalysis{},
	}

	for _, entity := range entities {
		if err := c.DB.AutoMigrate(entity); err != nil {
			return fmt.Errorf("failed to migrate %T entity: %w", entity, err)
		}
	}

	indexes := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_saved_jobs_user_job ON saved_jobs (user_id, job_id)",
		"CREATE INDEX IF NOT EXISTS idx_generated_documents_user_job_type ON generated_documents (user_id, job_id, document_type)",
		"CREATE INDEX IF NOT EXISTS idx_resume_analyses_user_created ON resume_analyses (user_id, created_at)",
	}
	for _, index := range indexes {
		if err := c.DB.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
