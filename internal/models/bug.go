package models

import "time"

// Bug classification values
const (
	ClassificationFunctional  = "functional"
	ClassificationPerformance = "performance"
	ClassificationSecurity    = "security"
	ClassificationUsability   = "usability"
)

// Bug severity values
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Bug status values
const (
	StatusNew        = "new"
	StatusInProgress = "in_progress"
	StatusFixed      = "fixed"
	StatusWontFix    = "wont_fix"
)

type Bug struct {
	ID             string
	Title          string
	Description    string
	Classification string
	Severity       string
	Status         string
	ReporterEmail  string
	AssigneeEmail  *string // nil until a developer picks it up
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func ValidClassification(c string) bool {
	switch c {
	case ClassificationFunctional, ClassificationPerformance, ClassificationSecurity, ClassificationUsability:
		return true
	}
	return false
}

func ValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusInProgress, StatusFixed, StatusWontFix:
		return true
	}
	return false
}
