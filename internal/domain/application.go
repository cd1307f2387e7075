package domain

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "PENDING"
	ApplicationStatusUnderReview ApplicationStatus = "UNDER_REVIEW"
	ApplicationStatusApproved    ApplicationStatus = "APPROVED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
)

func (s ApplicationStatus) Decided() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

type MembershipApplication struct {
	ID                     int32             `json:"id"`
	OrganizationName       string            `json:"organization_name"`
	OrganizationType       MemberType        `json:"organization_type"`
	RRCRegistration        string            `json:"rrc_registration"`
	RRCCertificateKey      string            `json:"rrc_certificate"`
	Address                string            `json:"address"`
	Email                  string            `json:"email"`
	Phone                  string            `json:"phone"`
	Website                string            `json:"website"`
	FocalPersonName        string            `json:"focal_person_name"`
	FocalPersonTitle       string            `json:"focal_person_title"`
	FocalPersonEmail       string            `json:"focal_person_email"`
	FocalPersonPhone       string            `json:"focal_person_phone"`
	AreasOfWork            string            `json:"areas_of_work"`
	OperationalCounties    string            `json:"operational_counties"`
	SupportingDocumentsKey string            `json:"supporting_documents"`
	Status                 ApplicationStatus `json:"application_status"`
	SubmittedDate          time.Time         `json:"submitted_date"`
	ReviewedDate           *time.Time        `json:"reviewed_date,omitempty"`
	ReviewerNotes          string            `json:"reviewer_notes"`
	ApprovedOrgID          *int32            `json:"approved_organization,omitempty"`
}
