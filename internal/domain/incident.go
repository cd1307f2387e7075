package domain

import "time"

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

type IncidentStatus string

const (
	IncidentStatusReported      IncidentStatus = "REPORTED"
	IncidentStatusInvestigating IncidentStatus = "INVESTIGATING"
	IncidentStatusResolved      IncidentStatus = "RESOLVED"
	IncidentStatusClosed        IncidentStatus = "CLOSED"
)

func (s IncidentStatus) Valid() bool {
	switch s {
	case IncidentStatusReported, IncidentStatusInvestigating, IncidentStatusResolved, IncidentStatusClosed:
		return true
	}
	return false
}

// SecurityIncident is a 6Ws report: who, where, when, what happened,
// what was done, what is needed
type SecurityIncident struct {
	ID             int32          `json:"id"`
	OrgID          *int32         `json:"organization"`
	ReporterName   string         `json:"reporter_name"`
	ReporterEmail  string         `json:"reporter_email"`
	ReporterPhone  string         `json:"reporter_phone"`
	Who            string         `json:"who"`
	WhereStateID   *int32         `json:"where_state"`
	WhereCountyID  *int32         `json:"where_county"`
	WhereLocation  string         `json:"where_location"`
	WhenDate       time.Time      `json:"when_date"`
	WhenTime       string         `json:"when_time"`
	WhatHappened   string         `json:"what_happened"`
	WhatYouDid     string         `json:"what_you_did"`
	WhatYouNeed    string         `json:"what_you_need"`
	IncidentType   string         `json:"incident_type"`
	Severity       Severity       `json:"severity"`
	Status         IncidentStatus `json:"status"`
	IsConfidential bool           `json:"is_confidential"`
	FollowUpNotes  string         `json:"follow_up_notes"`
	ResolvedDate   *time.Time     `json:"resolved_date"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type IncidentFilter struct {
	Severity Severity
	Status   IncidentStatus
	Page
}

type ConstraintType string

const (
	ConstraintTypeBureaucratic ConstraintType = "BUREAUCRATIC"
	ConstraintTypePhysical     ConstraintType = "PHYSICAL"
	ConstraintTypeSecurity     ConstraintType = "SECURITY"
	ConstraintTypePolitical    ConstraintType = "POLITICAL"
	ConstraintTypeOther        ConstraintType = "OTHER"
)

func (t ConstraintType) Valid() bool {
	switch t {
	case ConstraintTypeBureaucratic, ConstraintTypePhysical, ConstraintTypeSecurity, ConstraintTypePolitical, ConstraintTypeOther:
		return true
	}
	return false
}

type ConstraintStatus string

const (
	ConstraintStatusActive     ConstraintStatus = "ACTIVE"
	ConstraintStatusResolved   ConstraintStatus = "RESOLVED"
	ConstraintStatusMonitoring ConstraintStatus = "MONITORING"
)

func (s ConstraintStatus) Valid() bool {
	return s == ConstraintStatusActive || s == ConstraintStatusResolved || s == ConstraintStatusMonitoring
}

type AccessConstraint struct {
	ID                 int32            `json:"id"`
	OrgID              *int32           `json:"organization"`
	ReporterName       string           `json:"reporter_name"`
	ReporterEmail      string           `json:"reporter_email"`
	ReporterPhone      string           `json:"reporter_phone"`
	Location           string           `json:"location"`
	CountyID           *int32           `json:"county"`
	ConstraintType     ConstraintType   `json:"constraint_type"`
	Description        string           `json:"description"`
	DateReported       time.Time        `json:"date_reported"`
	DateStarted        *time.Time       `json:"date_started"`
	AffectedActivities string           `json:"affected_activities"`
	EstimatedImpact    string           `json:"estimated_impact"`
	Status             ConstraintStatus `json:"status"`
	ResolutionNotes    string           `json:"resolution_notes"`
	ResolvedDate       *time.Time       `json:"resolved_date"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

type ConstraintFilter struct {
	ConstraintType ConstraintType
	Status         ConstraintStatus
	CountyID       *int32
	Page
}
