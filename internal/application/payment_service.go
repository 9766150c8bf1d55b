package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/notegenius-api/internal/domain/entity"
	repo "github.com/oksasatya/notegenius-api/internal/domain/repository"
)

const paymentsListKey = "payments:list"

type PaymentService struct {
	Repo     repo.PaymentRepository
	Cache    ListCache
	CacheTTL time.Duration
	Logger   logrus.FieldLogger
}

func NewPaymentService(r repo.PaymentRepository, cache ListCache, cacheTTL time.Duration, logger logrus.FieldLogger) *PaymentService {
	return &PaymentService{Repo: r, Cache: cache, CacheTTL: cacheTTL, Logger: logger}
}

func validatePayment(p *entity.Payment) error {
	p.Method = strings.TrimSpace(p.Method)
	if p.Method == "" || p.UserID == 0 {
		return validationError("Missing required fields: amount, method, user_id")
	}
	return nil
}

func (s *PaymentService) List(ctx context.Context) ([]entity.Payment, error) {
	out, err := cachedList(ctx, s.Cache, s.CacheTTL, s.Logger, paymentsListKey, s.Repo.List)
	if err != nil {
		return nil, internalError("Failed to fetch payments", err)
	}
	return out, nil
}

func (s *PaymentService) Get(ctx context.Context, id int64) (*entity.Payment, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "Payment not found", "Failed to fetch payment")
	}
	return p, nil
}

func (s *PaymentService) Create(ctx context.Context, p *entity.Payment) error {
	if err := validatePayment(p); err != nil {
		return err
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return internalError("Failed to create payment", err)
	}
	invalidate(ctx, s.Cache, s.Logger, paymentsListKey)
	return nil
}

func (s *PaymentService) Update(ctx context.Context, p *entity.Payment) error {
	if err := validatePayment(p); err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return mapWriteErr(err, "", "Payment not found", "Failed to update payment")
	}
	invalidate(ctx, s.Cache, s.Logger, paymentsListKey)
	return nil
}

func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return mapLookupErr(err, "Payment not found", "Failed to delete payment")
	}
	invalidate(ctx, s.Cache, s.Logger, paymentsListKey)
	return nil
}
