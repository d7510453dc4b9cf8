package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/logger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"net/http"
	"strings"
	"unicode/utf8"
)

const MaxResumeSize = 5 << 20

var ErrUnreadableResume = errors.New("resume text could not be extracted, paste it as text")

type blobStore interface {
	Save(owner, filename string, content []byte) (string, error)
	Delete(path string) error
}

type resumeParser interface {
	ParseResume(ctx context.Context, text string) (models.ResumeData, error)
}

type resumeRepository interface {
	Add(ctx context.Context, resume *models.ParsedResume) error
}

type ResumeUpload struct {
	Filename string
	Content  []byte
	// Text overrides extraction from Content when set.
	Text string
}

type ResumeService struct {
	blobs   blobStore
	parser  resumeParser
	resumes resumeRepository
}

func NewResumeService(blobs blobStore, parser resumeParser, resumes resumeRepository) *ResumeService {
	return &ResumeService{blobs: blobs, parser: parser, resumes: resumes}
}

// Upload parses the résumé, keeps the original file and stores the result.
// The user's first résumé becomes primary.
func (s *ResumeService) Upload(ctx context.Context, userID string, upload ResumeUpload) (*models.ParsedResume, error) {

	if len(upload.Content) > MaxResumeSize {
		return nil, fmt.Errorf("resume file exceeds %d bytes", MaxResumeSize)
	}

	text, err := uploadText(upload)
	if err != nil {
		return nil, err
	}

	data, err := s.parser.ParseResume(ctx, text)
	if err != nil {
		return nil, err
	}

	resume := &models.ParsedResume{
		Base:             models.Base{UserID: userID},
		OriginalFilename: upload.Filename,
		RawText:          text,
	}
	resume.SetData(data)

	if len(upload.Content) > 0 {
		path, err := s.blobs.Save(userID, upload.Filename, upload.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store resume file: %w", err)
		}
		resume.StoragePath = path
	}

	if err := s.resumes.Add(ctx, resume); err != nil {
		if resume.StoragePath != "" {
			if delErr := s.blobs.Delete(resume.StoragePath); delErr != nil {
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
					Errorf("orphaned resume file %s: %v", resume.StoragePath, delErr)
			}
		}
		return nil, err
	}
	return resume, nil
}

func uploadText(upload ResumeUpload) (string, error) {
	if text := strings.TrimSpace(upload.Text); text != "" {
		return text, nil
	}
	if len(upload.Content) == 0 {
		return "", fmt.Errorf("resume file or text is required")
	}
	if !utf8.Valid(upload.Content) || !strings.HasPrefix(http.DetectContentType(upload.Content), "text/") {
		return "", ErrUnreadableResume
	}

	text := strings.TrimSpace(string(upload.Content))
	if text == "" {
		return "", fmt.Errorf("resume file is empty")
	}
	return text, nil
}
