package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FacturacionService owns invoice numbering and the company configuration.
type FacturacionService interface {
	// ProximoNumeroTx issues the next gap-free invoice number under the
	// configuration row lock. It must run inside the same transaction as the
	// Venta it numbers: a rollback of that transaction rolls the increment
	// back too, so failed checkouts never burn numbers.
	ProximoNumeroTx(ctx context.Context, tx *gorm.DB) (string, error)
	// ClienteDefaultID resolves the configured walk-in client, validated once
	// and cached for the process lifetime.
	ClienteDefaultID(ctx context.Context) (uuid.UUID, error)
}

type facturacionService struct {
	configRepo  repository.ConfiguracionRepository
	clienteRepo repository.ClienteRepository

	mu             sync.Mutex
	clienteDefault *uuid.UUID
}

func NewFacturacionService(configRepo repository.ConfiguracionRepository, clienteRepo repository.ClienteRepository) FacturacionService {
	return &facturacionService{configRepo: configRepo, clienteRepo: clienteRepo}
}

func (s *facturacionService) ProximoNumeroTx(ctx context.Context, tx *gorm.DB) (string, error) {
	cfg, err := s.configRepo.GetForUpdateTx(tx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", &ConfiguracionError{Falta: "configuración de facturación"}
		}
		return "", err
	}

	siguiente := cfg.UltimoNumero + 1
	if err := s.configRepo.UpdateUltimoNumeroTx(tx, cfg, siguiente); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%07d", cfg.SerieFactura, siguiente), nil
}

func (s *facturacionService) ClienteDefaultID(ctx context.Context) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clienteDefault != nil {
		return *s.clienteDefault, nil
	}

	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, &ConfiguracionError{Falta: "configuración de facturación"}
		}
		return uuid.Nil, err
	}
	if cfg.ClienteDefaultID == uuid.Nil {
		return uuid.Nil, &ConfiguracionError{Falta: "cliente por defecto"}
	}
	// The pointer must resolve to a real row; a dangling reference is the
	// same provisioning failure as a missing one.
	if _, err := s.clienteRepo.FindByID(ctx, cfg.ClienteDefaultID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, &ConfiguracionError{Falta: "cliente por defecto"}
		}
		return uuid.Nil, err
	}

	id := cfg.ClienteDefaultID
	s.clienteDefault = &id
	return id, nil
}
