package service

import (
	"context"
	"strings"
	"testing"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadFixture(t *testing.T) UploadService {
	store, err := storage.NewMockStorageService("http://localhost:8080", t.TempDir())
	require.NoError(t, err)
	return NewUploadService(store, 15)
}

func TestUploadService_RequestUpload(t *testing.T) {
	ctx := context.Background()
	svc := newUploadFixture(t)

	ticket, err := svc.RequestUpload(ctx, memberPrincipal(3), UploadRequest{
		Purpose:     UploadPurposeLogo,
		Filename:    "Logo.PNG",
		ContentType: "image/png",
		Size:        200 * 1024,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ticket.Key, "logo/org3/"), ticket.Key)
	assert.True(t, strings.HasSuffix(ticket.Key, ".png"), ticket.Key)
	assert.True(t, strings.HasPrefix(ticket.UploadURL, "http://localhost:8080/api/v1/upload/"))
	assert.Contains(t, ticket.DownloadURL, "/api/v1/download/")
	assert.False(t, ticket.ExpiresAt.IsZero())
}

func TestUploadService_UserWithoutOrganization(t *testing.T) {
	svc := newUploadFixture(t)
	ticket, err := svc.RequestUpload(context.Background(), domain.Principal{UserID: 12}, UploadRequest{
		Purpose:  UploadPurposeSupportingDocuments,
		Filename: "docs.zip",
		Size:     1024,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ticket.Key, "supporting_documents/u12/"), ticket.Key)
}

func TestUploadService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newUploadFixture(t)

	tests := []struct {
		name  string
		req   UploadRequest
		field string
	}{
		{"Too Large", UploadRequest{Purpose: UploadPurposeReceipt, Filename: "r.pdf", Size: 16 * 1024 * 1024}, "size"},
		{"Empty", UploadRequest{Purpose: UploadPurposeReceipt, Filename: "r.pdf"}, "size"},
		{"Wrong Extension", UploadRequest{Purpose: UploadPurposeTenderDocument, Filename: "tender.exe", Size: 10}, "filename"},
		{"Unknown Purpose", UploadRequest{Purpose: "avatar", Filename: "me.png", Size: 10}, "purpose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RequestUpload(ctx, memberPrincipal(3), tt.req)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestUploadService_ResourceAcceptsAnyExtension(t *testing.T) {
	svc := newUploadFixture(t)
	_, err := svc.RequestUpload(context.Background(), memberPrincipal(3), UploadRequest{
		Purpose:  UploadPurposeResource,
		Filename: "dataset.xlsx",
		Size:     1024,
	})
	assert.NoError(t, err)
}

func TestUploadService_AuthorizeDownload(t *testing.T) {
	ctx := context.Background()
	svc := newUploadFixture(t)
	staff := domain.Principal{UserID: 1, IsStaff: true}
	anonymous := domain.Principal{}

	tests := []struct {
		name   string
		caller domain.Principal
		key    string
		err    error
	}{
		{"Public Logo", anonymous, "logo/org3/a.png", nil},
		{"Public Resource", anonymous, "resource/org3/guide.pdf", nil},
		{"Public Tender Document", anonymous, "tender_document/org3/rfq.pdf", nil},
		{"Anonymous Receipt", anonymous, "receipt/org3/slip.pdf", domain.ErrUnauthenticated},
		{"Owner Receipt", memberPrincipal(3), "receipt/org3/slip.pdf", nil},
		{"Other Member Receipt", memberPrincipal(4), "receipt/org3/slip.pdf", domain.ErrPermissionDenied},
		{"Staff Receipt", staff, "receipt/org3/slip.pdf", nil},
		{"Applicant Certificate", domain.Principal{UserID: 12}, "certificate/u12/rrc.pdf", nil},
		{"Other Applicant Documents", domain.Principal{UserID: 13}, "supporting_documents/u12/docs.zip", domain.ErrPermissionDenied},
		{"Unknown Purpose", staff, "avatars/u1/me.png", storage.ErrInvalidKey},
		{"Malformed", staff, "receipt", storage.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.AuthorizeDownload(ctx, tt.caller, tt.key)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestIsPublicDownload(t *testing.T) {
	assert.True(t, IsPublicDownload("logo/org3/a.png"))
	assert.False(t, IsPublicDownload("receipt/org3/slip.pdf"))
	assert.False(t, IsPublicDownload("logo"))
}
