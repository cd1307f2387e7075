package domain

import "time"

type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
	JobTypeInternship JobType = "INTERNSHIP"
	JobTypeVolunteer  JobType = "VOLUNTEER"
	JobTypeConsultant JobType = "CONSULTANT"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeVolunteer, JobTypeConsultant:
		return true
	}
	return false
}

type JobAdvertisement struct {
	ID                      int32     `json:"id"`
	OrgID                   int32     `json:"organization"`
	OrganizationName        string    `json:"organization_name"`
	JobTitle                string    `json:"job_title"`
	Location                string    `json:"location"`
	JobType                 JobType   `json:"job_type"`
	Description             string    `json:"description"`
	Requirements            string    `json:"requirements"`
	Responsibilities        string    `json:"responsibilities"`
	Qualifications          string    `json:"qualifications"`
	ApplicationDeadline     time.Time `json:"application_deadline"`
	ApplicationEmail        string    `json:"application_email"`
	ApplicationURL          string    `json:"application_url"`
	ApplicationInstructions string    `json:"application_instructions"`
	SalaryRange             string    `json:"salary_range"`
	PostedDate              time.Time `json:"posted_date"`
	IsActive                bool      `json:"is_active"`
	IsApproved              bool      `json:"is_approved"`
	ViewCount               int32     `json:"view_count"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

func (j *JobAdvertisement) ContentRef() ContentRef {
	return ContentRef{Kind: ContentKindJob, ObjectID: j.ID}
}
func (j *JobAdvertisement) Owner() int32  { return j.OrgID }
func (j *JobAdvertisement) Title() string { return j.JobTitle }
func (j *JobAdvertisement) ApplyModeration(status ModerationStatus) {
	j.IsApproved = ApprovalFlagFor(status)
}

// IsExpired is true once the deadline day has passed
func (j *JobAdvertisement) IsExpired(today time.Time) bool {
	return TruncateDay(today).After(TruncateDay(j.ApplicationDeadline))
}

type JobFilter struct {
	JobType  JobType
	Location string
	Search   string
	Page
}

type Training struct {
	ID                   int32      `json:"id"`
	TrainingTitle        string     `json:"title"`
	Provider             string     `json:"provider"`
	Description          string     `json:"description"`
	StartDate            time.Time  `json:"start_date"`
	EndDate              *time.Time `json:"end_date"`
	Location             string     `json:"location"`
	IsOnline             bool       `json:"is_online"`
	CostCents            *int64     `json:"cost_cents"`
	Currency             string     `json:"currency"`
	IsFree               bool       `json:"is_free"`
	RegistrationLink     string     `json:"registration_link"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	ContactEmail         string     `json:"contact_email"`
	ContactPhone         string     `json:"contact_phone"`
	MaxParticipants      *int32     `json:"max_participants"`
	PostedDate           time.Time  `json:"posted_date"`
	IsActive             bool       `json:"is_active"`
	IsApproved           bool       `json:"is_approved"`
	SubmittedBy          *int32     `json:"submitted_by"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

const DefaultCurrency = "USD"

func (t *Training) ContentRef() ContentRef {
	return ContentRef{Kind: ContentKindTraining, ObjectID: t.ID}
}
func (t *Training) Owner() int32 {
	if t.SubmittedBy == nil {
		return 0
	}
	return *t.SubmittedBy
}
func (t *Training) Title() string { return t.TrainingTitle }
func (t *Training) ApplyModeration(status ModerationStatus) {
	t.IsApproved = ApprovalFlagFor(status)
}

// IsPast compares today against the end date, or the start date for one-day trainings
func (t *Training) IsPast(today time.Time) bool {
	last := t.StartDate
	if t.EndDate != nil {
		last = *t.EndDate
	}
	return TruncateDay(today).After(TruncateDay(last))
}

type TrainingFilter struct {
	IsOnline *bool
	IsFree   *bool
	Search   string
	Page
}

type TenderAdvertisement struct {
	ID                 int32      `json:"id"`
	OrgID              int32      `json:"organization"`
	OrganizationName   string     `json:"organization_name"`
	TenderTitle        string     `json:"title"`
	ReferenceNumber    string     `json:"reference_number"`
	Description        string     `json:"description"`
	Category           string     `json:"category"`
	SubmissionDeadline time.Time  `json:"submission_deadline"`
	OpeningDate        *time.Time `json:"opening_date"`
	ContactPerson      string     `json:"contact_person"`
	ContactEmail       string     `json:"contact_email"`
	ContactPhone       string     `json:"contact_phone"`
	DocumentKey        string     `json:"document"`
	ExternalLink       string     `json:"external_link"`
	PostedDate         time.Time  `json:"posted_date"`
	IsActive           bool       `json:"is_active"`
	IsApproved         bool       `json:"is_approved"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (t *TenderAdvertisement) ContentRef() ContentRef {
	return ContentRef{Kind: ContentKindTender, ObjectID: t.ID}
}
func (t *TenderAdvertisement) Owner() int32  { return t.OrgID }
func (t *TenderAdvertisement) Title() string { return t.TenderTitle }
func (t *TenderAdvertisement) ApplyModeration(status ModerationStatus) {
	t.IsApproved = ApprovalFlagFor(status)
}

func (t *TenderAdvertisement) IsExpired(now time.Time) bool {
	return now.After(t.SubmissionDeadline)
}

type TenderFilter struct {
	Category string
	Search   string
	Page
}
