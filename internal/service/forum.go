package service

import (
	"context"
	"strings"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/repository"
)

type forumService struct {
	repo    repository.ForumRepository
	orgRepo repository.OrganizationRepository
}

func NewForumService(repo repository.ForumRepository, orgRepo repository.OrganizationRepository) ForumService {
	return &forumService{repo: repo, orgRepo: orgRepo}
}

func (s *forumService) ListCategories(ctx context.Context) ([]domain.ForumCategory, error) {
	return s.repo.ListCategories(ctx)
}

func (s *forumService) ListPosts(ctx context.Context, filter domain.ForumPostFilter) ([]domain.ForumPost, int32, error) {
	filter.Page = filter.Page.Normalize()
	return s.repo.ListApprovedPosts(ctx, filter)
}

func (s *forumService) GetPost(ctx context.Context, slug string) (*domain.ForumPost, error) {
	return s.repo.ViewApprovedPost(ctx, slug)
}

func (s *forumService) ListComments(ctx context.Context, postID int32) ([]domain.ForumComment, error) {
	return s.repo.ListApprovedComments(ctx, postID)
}

func (s *forumService) CreatePost(ctx context.Context, orgID int32, post *domain.ForumPost) error {
	v := domain.NewValidationError()
	v.Require("title", post.PostTitle)
	v.Require("content", post.Content)
	if err := v.Err(); err != nil {
		return err
	}

	post.AuthorID = orgID
	post.PostTitle = strings.TrimSpace(post.PostTitle)
	post.IsPinned = false
	post.IsLocked = false
	post.ViewCount = 0

	entry, err := gate(ctx, s.orgRepo, orgID, post, "")
	if err != nil {
		return err
	}
	if err := s.repo.CreatePost(ctx, post, entry); err != nil {
		return err
	}
	countSubmission(entry)
	return nil
}

func (s *forumService) ListMyPosts(ctx context.Context, orgID int32) ([]domain.ForumPost, error) {
	return s.repo.ListPostsByAuthor(ctx, orgID)
}

func (s *forumService) CreateComment(ctx context.Context, orgID int32, comment *domain.ForumComment) error {
	v := domain.NewValidationError()
	v.Require("content", comment.Content)
	if comment.PostID == 0 {
		v.Add("post", "This field is required.")
	}
	if err := v.Err(); err != nil {
		return err
	}

	post, err := s.repo.GetPostByID(ctx, comment.PostID)
	if err != nil {
		return err
	}
	if post.Status != domain.ContentStatusApproved {
		return domain.ErrNotFound
	}
	if post.IsLocked {
		v.Add("post", "This post is locked and does not accept new comments.")
		return v
	}

	comment.AuthorID = orgID
	entry, err := gate(ctx, s.orgRepo, orgID, comment, "")
	if err != nil {
		return err
	}
	if err := s.repo.CreateComment(ctx, comment, entry); err != nil {
		return err
	}
	countSubmission(entry)
	return nil
}
