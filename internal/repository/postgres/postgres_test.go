package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var moderationRowColumns = []string{"id", "content_kind", "object_id", "submitted_by", "submission_notes",
	"moderation_status", "reviewed_by", "reviewed_at", "reviewer_notes", "created_at", "updated_at"}

func pendingEntryRow(kind domain.ContentKind, status domain.ModerationStatus) *sqlmock.Rows {
	created := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(moderationRowColumns).
		AddRow(int64(7), string(kind), int64(31), int64(4), "please review", string(status), nil, nil, "", created, created)
}

func TestConditions(t *testing.T) {
	var c conditions
	c.add("status = ?", "ACTIVE")
	c.search("water", "name", "description")
	c.add("year = ?", int32(2023))

	assert.Equal(t, " WHERE status = $1 AND (name ILIKE $2 OR description ILIKE $3) AND year = $4", c.where())
	assert.Equal(t, []any{"ACTIVE", "%water%", "%water%", int32(2023)}, c.args)

	limit, args := c.paged(domain.Page{Page: 3, PageSize: 10})
	assert.Equal(t, " LIMIT $5 OFFSET $6", limit)
	assert.Equal(t, []any{"ACTIVE", "%water%", "%water%", int32(2023), int32(10), int32(20)}, args)
}

func TestConditions_Empty(t *testing.T) {
	var c conditions
	c.search("")
	assert.Equal(t, "", c.where())
	assert.Empty(t, c.args)
}

func TestMapError(t *testing.T) {
	assert.Nil(t, mapError(nil))
	assert.ErrorIs(t, mapError(sql.ErrNoRows), domain.ErrNotFound)

	err := mapError(&pq.Error{Code: uniqueViolation, Constraint: "operational_presence_unique"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "operational_presence_unique")

	other := errors.New("connection reset")
	assert.Equal(t, other, mapError(other))
}

func TestModerationRepository_Decide(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewModerationRepository(db)
	ctx := context.Background()
	decidedAt := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)
	decision := domain.ModerationDecision{Status: domain.ModerationStatusApproved, ReviewerID: 1, Notes: "ok", DecidedAt: decidedAt}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM moderation_queue WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(7)).
			WillReturnRows(pendingEntryRow(domain.ContentKindEvent, domain.ModerationStatusPending))
		mock.ExpectExec(`UPDATE moderation_queue`).
			WithArgs(domain.ModerationStatusApproved, int32(1), decidedAt, "ok", int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE events SET is_approved = \$1`).
			WithArgs(true, decidedAt, int32(31)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		entry, err := repo.Decide(ctx, 7, decision)
		require.NoError(t, err)
		assert.Equal(t, domain.ModerationStatusApproved, entry.Status)
		require.NotNil(t, entry.ReviewedBy)
		assert.Equal(t, int32(1), *entry.ReviewedBy)
		assert.Equal(t, decidedAt, *entry.ReviewedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyDecided", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM moderation_queue WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(7)).
			WillReturnRows(pendingEntryRow(domain.ContentKindEvent, domain.ModerationStatusRejected))
		mock.ExpectRollback()

		_, err := repo.Decide(ctx, 7, decision)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ForumPostStatusColumn", func(t *testing.T) {
		rejected := domain.ModerationDecision{Status: domain.ModerationStatusRejected, ReviewerID: 1, DecidedAt: decidedAt}
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM moderation_queue WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(7)).
			WillReturnRows(pendingEntryRow(domain.ContentKindForumPost, domain.ModerationStatusPending))
		mock.ExpectExec(`UPDATE moderation_queue`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE forum_posts SET status = \$1`).
			WithArgs(domain.ContentStatusFor(domain.ModerationStatusRejected), decidedAt, int32(31)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		entry, err := repo.Decide(ctx, 7, rejected)
		require.NoError(t, err)
		assert.Equal(t, domain.ModerationStatusRejected, entry.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingContentRollsBack", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM moderation_queue WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(7)).
			WillReturnRows(pendingEntryRow(domain.ContentKindJob, domain.ModerationStatusPending))
		mock.ExpectExec(`UPDATE moderation_queue`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE job_advertisements SET is_approved = \$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, err := repo.Decide(ctx, 7, decision)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGatedTablesCoverEveryKind(t *testing.T) {
	for _, kind := range []domain.ContentKind{
		domain.ContentKindForumPost, domain.ContentKindForumComment, domain.ContentKindEvent,
		domain.ContentKindJob, domain.ContentKindResource, domain.ContentKindTraining, domain.ContentKindTender,
	} {
		gt, ok := gatedTables[kind]
		if assert.True(t, ok, "missing gated table for %s", kind) {
			assert.NotEmpty(t, gt.ownerColumn, kind)
			assert.NotNil(t, gt.write, kind)
		}
	}
}

func TestModerationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewModerationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		entry := &domain.ModerationEntry{Kind: domain.ContentKindJob, ObjectID: 31, SubmittedBy: 4, Status: domain.ModerationStatusPending}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT organization_id FROM job_advertisements WHERE id = \$1 FOR SHARE`).
			WithArgs(int32(31)).
			WillReturnRows(sqlmock.NewRows([]string{"organization_id"}).AddRow(int64(4)))
		mock.ExpectQuery(`INSERT INTO moderation_queue`).
			WithArgs(domain.ContentKindJob, int32(31), int32(4), "", domain.ModerationStatusPending, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
		mock.ExpectCommit()

		require.NoError(t, repo.Create(ctx, entry))
		assert.Equal(t, int32(12), entry.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingObject", func(t *testing.T) {
		entry := &domain.ModerationEntry{Kind: domain.ContentKindEvent, ObjectID: 99, SubmittedBy: 4, Status: domain.ModerationStatusPending}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT created_by FROM events WHERE id = \$1 FOR SHARE`).
			WithArgs(int32(99)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Create(ctx, entry), domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("OwnedByAnotherOrganization", func(t *testing.T) {
		entry := &domain.ModerationEntry{Kind: domain.ContentKindForumPost, ObjectID: 31, SubmittedBy: 4, Status: domain.ModerationStatusPending}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT author_id FROM forum_posts WHERE id = \$1 FOR SHARE`).
			WithArgs(int32(31)).
			WillReturnRows(sqlmock.NewRows([]string{"author_id"}).AddRow(int64(8)))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Create(ctx, entry), domain.ErrPermissionDenied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownKind", func(t *testing.T) {
		entry := &domain.ModerationEntry{Kind: "newsletter", ObjectID: 1, SubmittedBy: 4}
		assert.ErrorIs(t, repo.Create(ctx, entry), domain.ErrNotFound)
	})
}

func TestInsertGated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewForumRepository(db)
	ctx := context.Background()

	t.Run("QueuesEntryWithPost", func(t *testing.T) {
		category := int32(2)
		post := &domain.ForumPost{AuthorID: 4, PostTitle: "Water Access", Content: "...", CategoryID: &category, Status: domain.ContentStatusPending}
		gate := &domain.ModerationEntry{Kind: domain.ContentKindForumPost, SubmittedBy: 4, Status: domain.ModerationStatusPending}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT slug FROM forum_posts`).
			WithArgs("water-access", "water-access-%").
			WillReturnRows(sqlmock.NewRows([]string{"slug"}).AddRow("water-access"))
		mock.ExpectQuery(`INSERT INTO forum_posts`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(55)))
		mock.ExpectQuery(`INSERT INTO moderation_queue`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
		mock.ExpectCommit()

		require.NoError(t, repo.CreatePost(ctx, post, gate))
		assert.Equal(t, int32(55), post.ID)
		assert.Equal(t, "water-access-1", post.Slug)
		assert.Equal(t, int32(55), gate.ObjectID)
		assert.Equal(t, int32(9), gate.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AutoApprovedSkipsQueue", func(t *testing.T) {
		post := &domain.ForumPost{AuthorID: 4, PostTitle: "Updates", Status: domain.ContentStatusApproved}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT slug FROM forum_posts`).
			WillReturnRows(sqlmock.NewRows([]string{"slug"}))
		mock.ExpectQuery(`INSERT INTO forum_posts`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(56)))
		mock.ExpectCommit()

		require.NoError(t, repo.CreatePost(ctx, post, nil))
		assert.Equal(t, "updates", post.Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("QueueFailureRollsBack", func(t *testing.T) {
		post := &domain.ForumPost{AuthorID: 4, PostTitle: "Updates", Status: domain.ContentStatusPending}
		gate := &domain.ModerationEntry{Kind: domain.ContentKindForumPost, SubmittedBy: 4, Status: domain.ModerationStatusPending}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT slug FROM forum_posts`).
			WillReturnRows(sqlmock.NewRows([]string{"slug"}))
		mock.ExpectQuery(`INSERT INTO forum_posts`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(57)))
		mock.ExpectQuery(`INSERT INTO moderation_queue`).
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		assert.Error(t, repo.CreatePost(ctx, post, gate))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrganizationRepository_Deactivate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOrganizationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE member_organizations SET status = \$1, is_verified = \$2, auto_approve_content = \$3`).
			WithArgs(domain.OrgStatusInactive, false, false, sqlmock.AnyArg(), int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Deactivate(ctx, 3))
	})

	t.Run("AlreadyInactive", func(t *testing.T) {
		mock.ExpectExec(`UPDATE member_organizations SET status = \$1, is_verified = \$2, auto_approve_content = \$3`).
			WithArgs(domain.OrgStatusInactive, false, false, sqlmock.AnyArg(), int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Deactivate(ctx, 3), domain.ErrInvalidState)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

var orgRowColumns = []string{"id", "name", "slug", "member_type", "rrc_number", "registration_date",
	"email", "phone", "website", "address", "city", "state", "description", "logo", "status", "date_joined",
	"is_verified", "auto_approve_content", "membership_fee_paid", "membership_expiry_date", "created_at", "updated_at"}

func orgRow(status domain.OrgStatus, expiry *time.Time) *sqlmock.Rows {
	joined := time.Date(2023, 11, 20, 9, 0, 0, 0, time.UTC)
	var exp any
	if expiry != nil {
		exp = *expiry
	}
	return sqlmock.NewRows(orgRowColumns).
		AddRow(int64(3), "Hope NGO", "hope-ngo", "NATIONAL", "", nil,
			"info@hope.org", "", "", "", "Juba", "", "", "", string(status), joined,
			false, false, false, exp, joined, joined)
}

func TestPaymentRepository_Complete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()
	today := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	renew := func(org *domain.MemberOrganization) {
		utils.ApplyMembershipPayment(org, today, utils.DefaultMembershipTermDays)
	}

	t.Run("Success", func(t *testing.T) {
		expiry := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE membership_payments SET status = 'COMPLETED'`).
			WithArgs(sqlmock.AnyArg(), int32(8)).
			WillReturnRows(sqlmock.NewRows([]string{"organization_id"}).AddRow(int64(3)))
		mock.ExpectQuery(`SELECT .* FROM member_organizations WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(3)).
			WillReturnRows(orgRow(domain.OrgStatusPending, nil))
		mock.ExpectExec(`UPDATE member_organizations`).
			WithArgs(true, true, true, domain.OrgStatusActive, expiry, sqlmock.AnyArg(), int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		org, err := repo.Complete(ctx, 8, renew)
		require.NoError(t, err)
		assert.Equal(t, domain.OrgStatusActive, org.Status)
		require.NotNil(t, org.MembershipExpiryDate)
		assert.Equal(t, expiry, *org.MembershipExpiryDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExtendsUnexpiredMembership", func(t *testing.T) {
		current := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		extended := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE membership_payments SET status = 'COMPLETED'`).
			WithArgs(sqlmock.AnyArg(), int32(9)).
			WillReturnRows(sqlmock.NewRows([]string{"organization_id"}).AddRow(int64(3)))
		mock.ExpectQuery(`SELECT .* FROM member_organizations WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(3)).
			WillReturnRows(orgRow(domain.OrgStatusActive, &current))
		mock.ExpectExec(`UPDATE member_organizations`).
			WithArgs(true, true, true, domain.OrgStatusActive, extended, sqlmock.AnyArg(), int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		org, err := repo.Complete(ctx, 9, renew)
		require.NoError(t, err)
		assert.Equal(t, extended, *org.MembershipExpiryDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyCompleted", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE membership_payments SET status = 'COMPLETED'`).
			WithArgs(sqlmock.AnyArg(), int32(8)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		called := false
		_, err := repo.Complete(ctx, 8, func(*domain.MemberOrganization) { called = true })
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		assert.False(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("OrganizationUpdateFails", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE membership_payments SET status = 'COMPLETED'`).
			WithArgs(sqlmock.AnyArg(), int32(8)).
			WillReturnRows(sqlmock.NewRows([]string{"organization_id"}).AddRow(int64(3)))
		mock.ExpectQuery(`SELECT .* FROM member_organizations WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(3)).
			WillReturnRows(orgRow(domain.OrgStatusPending, nil))
		mock.ExpectExec(`UPDATE member_organizations`).
			WillReturnError(errors.New("deadlock detected"))
		mock.ExpectRollback()

		_, err := repo.Complete(ctx, 8, renew)
		assert.EqualError(t, err, "deadlock detected")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
