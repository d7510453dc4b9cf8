package models

import (
	"fmt"
	"strings"
)

type CareerItemType string

const (
	CareerRole          CareerItemType = "role"
	CareerCertification CareerItemType = "certification"
	CareerSkill         CareerItemType = "skill"
)

func ParseCareerItemType(s string) (CareerItemType, error) {
	switch CareerItemType(s) {
	case CareerRole, CareerCertification, CareerSkill:
		return CareerItemType(s), nil
	default:
		return "", fmt.Errorf("invalid career item type: %q", s)
	}
}

func (t *CareerItemType) UnmarshalText(text []byte) error {
	parsed, err := ParseCareerItemType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type CareerItemStatus string

const (
	CareerSaved      CareerItemStatus = "saved"
	CareerInProgress CareerItemStatus = "in_progress"
	CareerCompleted  CareerItemStatus = "completed"
)

func ParseCareerItemStatus(s string) (CareerItemStatus, error) {
	switch CareerItemStatus(s) {
	case CareerSaved, CareerInProgress, CareerCompleted:
		return CareerItemStatus(s), nil
	default:
		return "", fmt.Errorf("invalid career item status: %q", s)
	}
}

func (s *CareerItemStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseCareerItemStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type CareerItem struct {
	Base
	Type   CareerItemType   `gorm:"size:16;not null" json:"type"`
	Title  string           `gorm:"not null" json:"title"`
	Status CareerItemStatus `gorm:"size:16;not null;default:saved" json:"status"`
}

// SameAs matches items by type and case-insensitive title.
func (c CareerItem) SameAs(other CareerItem) bool {
	return c.Type == other.Type && strings.EqualFold(strings.TrimSpace(c.Title), strings.TrimSpace(other.Title))
}
