package service

import (
	"context"
	"strings"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/repository"
)

type pageService struct {
	pages         repository.PageRepository
	announcements repository.AnnouncementRepository
	now           func() time.Time
}

func NewPageService(pages repository.PageRepository, announcements repository.AnnouncementRepository) PageService {
	return &pageService{pages: pages, announcements: announcements, now: time.Now}
}

func (s *pageService) ListPages(ctx context.Context) ([]domain.SitePage, error) {
	return s.pages.ListPublished(ctx)
}

func (s *pageService) GetPage(ctx context.Context, slug string) (*domain.SitePage, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.ErrNotFound
	}
	return s.pages.GetPublishedBySlug(ctx, slug)
}

func (s *pageService) ListAnnouncements(ctx context.Context, caller domain.Principal) ([]domain.Announcement, error) {
	_, err := caller.MemberOrgID()
	return s.announcements.ListActive(ctx, s.now().UTC(), caller.IsStaff || err == nil)
}

type contactService struct {
	repo repository.ContactMessageRepository
	now  func() time.Time
}

func NewContactService(repo repository.ContactMessageRepository) ContactService {
	return &contactService{repo: repo, now: time.Now}
}

func (s *contactService) Send(ctx context.Context, caller domain.Principal, msg *domain.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Subject = strings.TrimSpace(msg.Subject)

	v := domain.NewValidationError()
	v.Require("name", msg.Name)
	requireEmail(v, "email", msg.Email)
	v.Require("subject", msg.Subject)
	v.Require("message", msg.Message)
	if err := v.Err(); err != nil {
		return err
	}

	// staff-managed fields are never taken from the form
	msg.Status = domain.ContactStatusNew
	msg.RepliedAt = nil
	msg.ReplyNotes = ""
	msg.OrgID = nil
	if orgID, err := caller.MemberOrgID(); err == nil {
		msg.OrgID = &orgID
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Contact message received", "message_id", msg.ID)
	return nil
}

func (s *contactService) List(ctx context.Context, filter domain.ContactMessageFilter) ([]domain.ContactMessage, int32, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		v := domain.NewValidationError()
		v.Add("status", "Select a valid status.")
		return nil, 0, v
	}
	filter.Page = filter.Page.Normalize()
	return s.repo.List(ctx, filter)
}

func (s *contactService) UpdateStatus(ctx context.Context, id int32, status domain.ContactStatus, notes string) (*domain.ContactMessage, error) {
	if !status.Valid() {
		v := domain.NewValidationError()
		v.Add("status", "Select a valid status.")
		return nil, v
	}

	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	msg.Status = status
	if notes != "" {
		msg.ReplyNotes = notes
	}
	if status == domain.ContactStatusReplied && msg.RepliedAt == nil {
		now := s.now().UTC()
		msg.RepliedAt = &now
	}
	if err := s.repo.UpdateStatus(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
