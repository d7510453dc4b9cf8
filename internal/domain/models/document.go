package models

import "fmt"

type DocumentType string

const (
	DocumentResume      DocumentType = "resume"
	DocumentCoverLetter DocumentType = "cover_letter"
)

func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(s) {
	case DocumentResume, DocumentCoverLetter:
		return DocumentType(s), nil
	default:
		return "", fmt.Errorf("invalid document type: %q", s)
	}
}

func (t *DocumentType) UnmarshalText(text []byte) error {
	parsed, err := ParseDocumentType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

const MaxDocumentsPerTypePerJob = 2

type GeneratedDocument struct {
	Base
	ResumeID        string       `gorm:"size:36" json:"resume_id"`
	JobID           string       `gorm:"size:128;index" json:"job_id"`
	JobTitle        string       `json:"job_title"`
	Company         string       `json:"company"`
	DocumentType    DocumentType `gorm:"size:16;not null" json:"document_type"`
	Content         string       `gorm:"type:text" json:"content"`
	ATSScore        *int         `json:"ats_score,omitempty"`
	MatchedKeywords []string     `gorm:"serializer:json" json:"matched_keywords"`
	MissingKeywords []string     `gorm:"serializer:json" json:"missing_keywords"`
}
