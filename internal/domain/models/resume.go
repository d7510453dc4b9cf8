package models

type WorkExperience struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Description string   `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Field       string `json:"field,omitempty"`
	Year        string `json:"year,omitempty"`
}

// ResumeData is the structured content extracted from a résumé.
type ResumeData struct {
	Summary         string           `json:"summary"`
	ExtractedSkills []string         `json:"extracted_skills" validate:"dive,required"`
	WorkExperience  []WorkExperience `json:"work_experience" validate:"dive"`
	Education       []Education      `json:"education" validate:"dive"`
	Certifications  []string         `json:"certifications"`
}

type ParsedResume struct {
	Base
	OriginalFilename string           `json:"original_filename"`
	StoragePath      string           `json:"storage_path"`
	RawText          string           `gorm:"type:text" json:"-"`
	ExtractedSkills  []string         `gorm:"serializer:json" json:"extracted_skills"`
	WorkExperience   []WorkExperience `gorm:"serializer:json" json:"work_experience"`
	Education        []Education      `gorm:"serializer:json" json:"education"`
	Certifications   []string         `gorm:"serializer:json" json:"certifications"`
	Summary          string           `gorm:"type:text" json:"summary"`
	IsPrimary        bool             `gorm:"not null;default:false" json:"is_primary"`
}

func (r ParsedResume) Data() ResumeData {
	return ResumeData{
		Summary:         r.Summary,
		ExtractedSkills: r.ExtractedSkills,
		WorkExperience:  r.WorkExperience,
		Education:       r.Education,
		Certifications:  r.Certifications,
	}
}

func (r *ParsedResume) SetData(data ResumeData) {
	r.Summary = data.Summary
	r.ExtractedSkills = data.ExtractedSkills
	r.WorkExperience = data.WorkExperience
	r.Education = data.Education
	r.Certifications = data.Certifications
}

func (ParsedResume) TableName() string {
	return "resumes"
}
