package models

import "time"

type UserProfile struct {
	UserID         string    `gorm:"primaryKey;size:64" json:"user_id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email" binding:"omitempty,email"`
	Headline       string    `json:"headline"`
	Phone          string    `json:"phone"`
	Location       string    `json:"location"`
	LinkedInURL    string    `gorm:"column:linkedin_url" json:"linkedin_url" binding:"omitempty,url"`
	TelegramChatID *int64    `json:"telegram_chat_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type JobPreferences struct {
	UserID       string    `gorm:"primaryKey;size:64" json:"user_id"`
	DesiredRoles []string  `gorm:"serializer:json" json:"desired_roles"`
	Locations    []string  `gorm:"serializer:json" json:"locations"`
	RemoteOnly   bool      `json:"remote_only"`
	SalaryMin    *float64  `json:"salary_min,omitempty" binding:"omitempty,gte=0"`
	JobTypes     []string  `gorm:"serializer:json" json:"job_types"`
	Industries   []string  `gorm:"serializer:json" json:"industries"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
