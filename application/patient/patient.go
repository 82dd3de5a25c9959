package patient

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/muhammadheryan/patient-registration/cmd/config"
	"github.com/muhammadheryan/patient-registration/constant"
	"github.com/muhammadheryan/patient-registration/model"
	patientrepo "github.com/muhammadheryan/patient-registration/repository/patient"
	redisrepo "github.com/muhammadheryan/patient-registration/repository/redis"
	cerr "github.com/muhammadheryan/patient-registration/utils/errors"
	"github.com/muhammadheryan/patient-registration/utils/logger"
	"github.com/muhammadheryan/patient-registration/utils/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type PatientApp interface {
	Register(ctx context.Context, req *model.CreatePatientRequest) (*model.PatientListItem, error)
	List(ctx context.Context) ([]model.PatientListItem, error)
	GetPhoto(ctx context.Context, id uint64) (*model.PatientPhoto, error)
}

// EventPublisher announces new registrations. Publishing is best effort.
type EventPublisher interface {
	PublishPatientRegistered(ctx context.Context, event model.PatientRegisteredEvent) error
}

type patientAppImpl struct {
	config      *config.Config
	patientRepo patientrepo.PatientRepository
	photoCache  redisrepo.Repository
	publisher   EventPublisher
	metrics     *metrics.Metrics
	photoLoads  singleflight.Group
}

// NewPatientApp wires the application layer. publisher and m may be nil.
func NewPatientApp(config *config.Config, patientRepo patientrepo.PatientRepository, photoCache redisrepo.Repository, publisher EventPublisher, m *metrics.Metrics) PatientApp {
	return &patientAppImpl{
		config:      config,
		patientRepo: patientRepo,
		photoCache:  photoCache,
		publisher:   publisher,
		metrics:     m,
	}
}

func (s *patientAppImpl) Register(ctx context.Context, req *model.CreatePatientRequest) (*model.PatientListItem, error) {
	var photo []byte
	if req.DocumentPhoto != nil && len(req.DocumentPhoto.Data) > 0 {
		if err := checkPhoto(req.DocumentPhoto.Data); err != nil {
			s.metrics.IncrementRegistrationError("invalid_photo")
			return nil, err
		}
		photo = req.DocumentPhoto.Data
	}

	entity, err := s.patientRepo.Create(ctx, &model.PatientEntity{
		FullName:         req.FullName,
		Email:            normalizeEmail(req.Email),
		PhoneCountryCode: req.PhoneCountryCode,
		PhoneNumber:      req.PhoneNumber,
		DocumentPhoto:    photo,
	})
	if err != nil {
		var conflict *patientrepo.ConflictError
		if errors.As(err, &conflict) {
			s.metrics.IncrementRegistrationError("conflict")
			return nil, cerr.SetCustomError(constant.ErrEmailExists)
		}
		s.metrics.IncrementRegistrationError("internal")
		logger.Ctx(ctx).Error("[Register] err patientRepo.Create", zap.Error(err))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	s.metrics.IncrementPatientsRegistered()
	item := entity.ListItem()
	s.publishRegistered(ctx, item)

	return &item, nil
}

func (s *patientAppImpl) List(ctx context.Context) ([]model.PatientListItem, error) {
	items, err := s.patientRepo.List(ctx)
	if err != nil {
		logger.Ctx(ctx).Error("[List] err patientRepo.List", zap.Error(err))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

func (s *patientAppImpl) GetPhoto(ctx context.Context, id uint64) (*model.PatientPhoto, error) {
	cached, err := s.photoCache.GetPhoto(ctx, id)
	if err != nil {
		// the cache is an optimisation; fall through to the database
		logger.Ctx(ctx).Warn("[GetPhoto] err photoCache.GetPhoto", zap.Uint64("patient_id", id), zap.Error(err))
	}
	if len(cached) > 0 {
		s.metrics.IncrementPhotoCache("hit")
		return &model.PatientPhoto{PatientID: id, ContentType: constant.PhotoContentType, Data: cached}, nil
	}
	s.metrics.IncrementPhotoCache("miss")

	// The shared load must outlive any single caller; each caller still
	// stops waiting when its own ctx is done.
	loadCtx := context.WithoutCancel(ctx)
	ch := s.photoLoads.DoChan(strconv.FormatUint(id, 10), func() (interface{}, error) {
		return s.loadPhoto(loadCtx, id)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return &model.PatientPhoto{PatientID: id, ContentType: constant.PhotoContentType, Data: res.Val.([]byte)}, nil
	}
}

func (s *patientAppImpl) loadPhoto(ctx context.Context, id uint64) ([]byte, error) {
	photo, err := s.patientRepo.GetPhoto(ctx, id)
	if err != nil {
		logger.Ctx(ctx).Error("[GetPhoto] err patientRepo.GetPhoto", zap.Uint64("patient_id", id), zap.Error(err))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if photo == nil {
		return nil, cerr.SetCustomError(constant.ErrPhotoNotFound)
	}

	if err := s.photoCache.SetPhoto(ctx, id, photo, s.photoTTL()); err != nil {
		logger.Ctx(ctx).Warn("[GetPhoto] err photoCache.SetPhoto", zap.Uint64("patient_id", id), zap.Error(err))
	}
	return photo, nil
}

func (s *patientAppImpl) publishRegistered(ctx context.Context, item model.PatientListItem) {
	if s.publisher == nil {
		return
	}
	event := model.PatientRegisteredEvent{
		PatientID:    item.ID,
		FullName:     item.FullName,
		Email:        item.Email,
		HasPhoto:     item.HasPhoto,
		RegisteredAt: item.CreatedAt,
	}
	if event.RegisteredAt.IsZero() {
		event.RegisteredAt = time.Now().UTC()
	}
	if err := s.publisher.PublishPatientRegistered(ctx, event); err != nil {
		logger.Ctx(ctx).Error("[Register] err publisher.PublishPatientRegistered", zap.Uint64("patient_id", item.ID), zap.Error(err))
	}
}

func (s *patientAppImpl) photoTTL() time.Duration {
	if s.config == nil || s.config.Redis.PhotoTTL <= 0 {
		return 24 * time.Hour
	}
	return s.config.Redis.PhotoTTL
}

// normalizeEmail lowercases the address so uniqueness does not depend on the
// column collation of the dialect in use.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkPhoto enforces the size limit and sniffs the bytes, so every stored
// photo can be served as image/jpeg.
func checkPhoto(data []byte) error {
	if len(data) > constant.MaxPhotoSize {
		return cerr.SetCustomError(constant.ErrPhotoTooLarge)
	}
	if !mimetype.Detect(data).Is(constant.PhotoContentType) {
		return cerr.SetCustomError(constant.ErrPhotoNotJPEG)
	}
	return nil
}
