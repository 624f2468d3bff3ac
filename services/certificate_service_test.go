package services

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/storage"
)

type fakeCertificateRepo struct {
	mu    sync.Mutex
	certs []*models.Certificate
}

func (r *fakeCertificateRepo) Create(_ context.Context, cert *models.Certificate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cert.ID = primitive.NewObjectID()
	cert.CreatedAt = time.Now()
	r.certs = append(r.certs, cert)
	return nil
}

func (r *fakeCertificateRepo) ListByEvent(_ context.Context, eventID int) ([]*models.Certificate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Certificate
	for _, c := range r.certs {
		if c.EventID == eventID {
			result = append(result, c)
		}
	}
	return result, nil
}

type fakeUploader struct {
	mu      sync.Mutex
	uploads []string
}

func (u *fakeUploader) Upload(_ context.Context, key string, _ string, reader io.Reader) (*storage.UploadResult, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.uploads = append(u.uploads, key)
	return &storage.UploadResult{Key: key, Location: "https://cdn.example.com/" + key}, nil
}

func (u *fakeUploader) Delete(_ context.Context, _ string) error { return nil }

func (u *fakeUploader) GetPublicURL(key string) string { return "https://cdn.example.com/" + key }

func TestCertificateGenerate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	event := &models.Event{ID: 1, OrganizerID: 10, Name: "Spring Hack", StartAt: now, EndAt: now.Add(48 * time.Hour)}
	owner := models.Principal{UserID: 10, Role: models.RoleOrganizer}

	t.Run("owner issues certificate, pdf is uploaded and record saved", func(t *testing.T) {
		certRepo := &fakeCertificateRepo{}
		uploader := &fakeUploader{}
		userRepo := newFakeUserRepo(&models.User{ID: 5, Name: "Alice", Email: "alice@example.com", Role: models.RoleParticipant})
		svc := NewCertificateService(certRepo, newFakeRegistrationRepo(), newFakeEventRepo(event), userRepo, uploader)

		cert, err := svc.Generate(context.Background(), owner, GenerateCertificateInput{EventID: 1, UserID: 5})

		require.NoError(t, err)
		assert.Equal(t, "Participant", cert.Role)
		assert.True(t, strings.HasPrefix(cert.BlobKey, "certificates/1/"))
		assert.True(t, strings.HasSuffix(cert.BlobKey, ".pdf"))
		assert.Contains(t, cert.URL, cert.BlobKey)
		assert.Len(t, certRepo.certs, 1)
		assert.Len(t, uploader.uploads, 1)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		svc := NewCertificateService(&fakeCertificateRepo{}, newFakeRegistrationRepo(), newFakeEventRepo(event), newFakeUserRepo(), &fakeUploader{})

		_, err := svc.Generate(context.Background(), models.Principal{UserID: 11, Role: models.RoleOrganizer}, GenerateCertificateInput{EventID: 1, UserID: 5})

		assert.ErrorIs(t, err, ErrNotEventOrganizer)
	})

	t.Run("unknown recipient", func(t *testing.T) {
		svc := NewCertificateService(&fakeCertificateRepo{}, newFakeRegistrationRepo(), newFakeEventRepo(event), newFakeUserRepo(), &fakeUploader{})

		_, err := svc.Generate(context.Background(), owner, GenerateCertificateInput{EventID: 1, UserID: 404})

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestCertificateBulk(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	event := &models.Event{ID: 1, OrganizerID: 10, Name: "Spring Hack", StartAt: now, EndAt: now.Add(48 * time.Hour)}
	owner := models.Principal{UserID: 10, Role: models.RoleOrganizer}

	certRepo := &fakeCertificateRepo{}
	uploader := &fakeUploader{}
	regRepo := newFakeRegistrationRepo()
	for i := 1; i <= 3; i++ {
		regRepo.registrations = append(regRepo.registrations, &models.Registration{
			ID:      i,
			EventID: 1,
			UserID:  i,
			User:    &models.User{ID: i, Name: "User", Role: models.RoleParticipant},
		})
	}
	svc := NewCertificateService(certRepo, regRepo, newFakeEventRepo(event), newFakeUserRepo(), uploader)

	result, err := svc.Bulk(context.Background(), owner, 1)

	require.NoError(t, err)
	assert.Len(t, result.Generated, 3)
	assert.Zero(t, result.Failed)
	assert.Len(t, certRepo.certs, 3)
	assert.Len(t, uploader.uploads, 3)
}
