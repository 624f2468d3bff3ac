package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/pdfgen"
	"github.com/Dosada05/hackathon-system/repositories"
	"github.com/Dosada05/hackathon-system/storage"
)

// Ограничение параллельной генерации сертификатов при массовой выдаче.
const bulkCertificateConcurrency = 4

type GenerateCertificateInput struct {
	EventID int    `json:"event_id"`
	UserID  int    `json:"user_id"`
	Role    string `json:"role"`
}

type BulkCertificatesResult struct {
	Generated []*models.Certificate `json:"generated"`
	Failed    int                   `json:"failed"`
}

type CertificateService interface {
	// Generate создаёт PDF-сертификат, загружает его в хранилище и
	// сохраняет запись. Только владелец события.
	Generate(ctx context.Context, actor models.Principal, input GenerateCertificateInput) (*models.Certificate, error)
	// Bulk генерирует сертификаты всем зарегистрированным участникам
	// события.
	Bulk(ctx context.Context, actor models.Principal, eventID int) (*BulkCertificatesResult, error)
	List(ctx context.Context, eventID int) ([]*models.Certificate, error)
}

type certificateService struct {
	certificateRepo  repositories.CertificateRepository
	registrationRepo repositories.RegistrationRepository
	eventRepo        repositories.EventRepository
	userRepo         repositories.UserRepository
	uploader         storage.FileUploader
	now              func() time.Time
}

func NewCertificateService(
	certificateRepo repositories.CertificateRepository,
	registrationRepo repositories.RegistrationRepository,
	eventRepo repositories.EventRepository,
	userRepo repositories.UserRepository,
	uploader storage.FileUploader,
) CertificateService {
	return &certificateService{
		certificateRepo:  certificateRepo,
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		uploader:         uploader,
		now:              time.Now,
	}
}

func (s *certificateService) Generate(ctx context.Context, actor models.Principal, input GenerateCertificateInput) (*models.Certificate, error) {
	event, err := s.ownedEvent(ctx, actor, input.EventID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch certificate recipient: %w", err)
	}

	role := input.Role
	if role == "" {
		role = "Participant"
	}

	return s.issue(ctx, event, user, role)
}

func (s *certificateService) Bulk(ctx context.Context, actor models.Principal, eventID int) (*BulkCertificatesResult, error) {
	event, err := s.ownedEvent(ctx, actor, eventID)
	if err != nil {
		return nil, err
	}

	registrations, err := s.registrationRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list event registrations: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkCertificateConcurrency)

	certs := make([]*models.Certificate, len(registrations))
	for i, reg := range registrations {
		if reg.User == nil {
			continue
		}
		i, user := i, reg.User
		g.Go(func() error {
			cert, err := s.issue(gctx, event, user, "Participant")
			if err != nil {
				// Один неудавшийся сертификат не срывает всю выдачу.
				return nil
			}
			certs[i] = cert
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &BulkCertificatesResult{Generated: make([]*models.Certificate, 0, len(certs))}
	for i, cert := range certs {
		if cert == nil {
			if registrations[i].User != nil {
				result.Failed++
			}
			continue
		}
		result.Generated = append(result.Generated, cert)
	}
	return result, nil
}

func (s *certificateService) List(ctx context.Context, eventID int) ([]*models.Certificate, error) {
	return s.certificateRepo.ListByEvent(ctx, eventID)
}

func (s *certificateService) ownedEvent(ctx context.Context, actor models.Principal, eventID int) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to check event: %w", err)
	}
	if actor.Role != models.RoleOrganizer || event.OrganizerID != actor.UserID {
		return nil, ErrNotEventOrganizer
	}
	return event, nil
}

func (s *certificateService) issue(ctx context.Context, event *models.Event, user *models.User, role string) (*models.Certificate, error) {
	pdfBytes, err := pdfgen.RenderCertificate(pdfgen.CertificateParams{
		ParticipantName: user.Name,
		EventName:       event.Name,
		Role:            role,
		IssuedAt:        s.now(),
	})
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("certificates/%d/%s.pdf", event.ID, uuid.NewString())
	uploaded, err := s.uploader.Upload(ctx, key, "application/pdf", bytes.NewReader(pdfBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to upload certificate: %w", err)
	}

	cert := &models.Certificate{
		EventID: event.ID,
		UserID:  user.ID,
		Role:    role,
		URL:     uploaded.Location,
		BlobKey: uploaded.Key,
	}
	if err := s.certificateRepo.Create(ctx, cert); err != nil {
		return nil, fmt.Errorf("failed to save certificate record: %w", err)
	}
	return cert, nil
}
