package repositories

import (
	"context"
	"fmt"
	sq "github.com/Masterminds/squirrel"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-copilot/internal/domain/events"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/pipeline"
	"gorm.io/gorm"
	"time"
)

type SavedJobs struct {
	db  *gorm.DB
	bus EventBus.Bus
	now func() time.Time
}

func NewSavedJobRepository(db *gorm.DB, bus EventBus.Bus) *SavedJobs {
	return &SavedJobs{db: db, bus: bus, now: time.Now}
}

func (repo *SavedJobs) List(ctx context.Context, userID string) ([]models.SavedJob, error) {
	var jobs []models.SavedJob
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (repo *SavedJobs) Get(ctx context.Context, userID, id string) (*models.SavedJob, error) {
	var job models.SavedJob
	if err := repo.db.WithContext(ctx).First(&job, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &job, nil
}

func (repo *SavedJobs) GetCountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&models.SavedJob{}).Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Add saves a job for the user. The limit check is a separate read and is not
// atomic with the insert.
func (repo *SavedJobs) Add(ctx context.Context, job *models.SavedJob) error {

	count, err := repo.GetCountByUser(ctx, job.UserID)
	if err != nil {
		return err
	}
	if count >= models.MaxSavedJobsPerUser {
		return models.ErrSavedJobsLimit
	}

	var existing int64
	if err := repo.db.WithContext(ctx).Model(&models.SavedJob{}).
		Where("user_id = ? AND job_id = ?", job.UserID, job.JobID).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return models.ErrDuplicateSavedJob
	}

	if job.Status == "" {
		job.Status = models.StatusSaved
	}
	return repo.db.WithContext(ctx).Create(job).Error
}

func (repo *SavedJobs) UpdateDetails(ctx context.Context, userID, id string, details models.SavedJobDetails) (*models.SavedJob, error) {
	job, err := repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	details.Apply(job)
	if err := repo.db.WithContext(ctx).Select("notes", "recruiter_name", "recruiter_email", "recruiter_phone",
		"recruiter_linked_in", "updated_at").Updates(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// Transition moves a saved job through the application pipeline and publishes
// an ApplicationStatusChanged event when the status actually changes.
func (repo *SavedJobs) Transition(ctx context.Context, userID, id string, to models.ApplicationStatus) (*models.SavedJob, error) {
	job, err := repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	from := job.Status
	now := repo.now().UTC()

	changed, err := pipeline.Transition(job, to, now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return job, nil
	}

	if err := repo.db.WithContext(ctx).Select("status", "applied_date", "interview_date", "offer_date",
		"rejected_date", "updated_at").Updates(job).Error; err != nil {
		return nil, err
	}

	if repo.bus != nil {
		repo.bus.Publish(events.ApplicationStatusChangedTopic, events.ApplicationStatusChanged{
			UserID:     userID,
			SavedJobID: job.ID,
			From:       from,
			To:         job.Status,
			At:         now,
		})
	}
	return job, nil
}

func (repo *SavedJobs) Remove(ctx context.Context, userID, id string) error {
	return affected(repo.db.WithContext(ctx).Delete(&models.SavedJob{}, "user_id = ? AND id = ?", userID, id))
}

type StatusCount struct {
	Status models.ApplicationStatus `json:"status"`
	Count  int64                    `json:"count"`
}

// CountByStatus returns how many saved jobs the user has in each status,
// including statuses with no jobs.
func (repo *SavedJobs) CountByStatus(ctx context.Context, userID string) ([]StatusCount, error) {

	query, args, err := sq.Select("status", "COUNT(*) AS count").
		From("saved_jobs").
		Where(sq.Eq{"user_id": userID}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stats query: %w", err)
	}

	var rows []StatusCount
	if err := repo.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	stats := make([]StatusCount, 0, len(models.ApplicationStatuses))
	for _, status := range models.ApplicationStatuses {
		stats = append(stats, StatusCount{Status: status, Count: counts[status]})
	}
	return stats, nil
}
