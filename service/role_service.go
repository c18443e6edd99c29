package service

import (
	"context"

	"servicebot/pkg/logger"
	"servicebot/storage"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSpecialist Role = "specialist"
	RoleClient     Role = "client"
	RoleUnknown    Role = "unknown"
)

// RoleService maps a telegram id to a role. The configured admin id wins
// over everything, then the specialist table, then the client table.
type RoleService interface {
	Resolve(ctx context.Context, teleID int64) (Role, error)
}

type roleService struct {
	adminID     int64
	specialists storage.ISpecialistStorage
	clients     storage.IClientStorage
	log         logger.ILogger
}

func NewRoleService(stg storage.IStorage, adminID int64, log logger.ILogger) RoleService {
	return &roleService{
		adminID:     adminID,
		specialists: stg.Specialist(),
		clients:     stg.Client(),
		log:         log,
	}
}

func (s *roleService) Resolve(ctx context.Context, teleID int64) (Role, error) {
	if s.adminID != 0 && teleID == s.adminID {
		return RoleAdmin, nil
	}

	spec, err := s.specialists.GetByTelegramID(ctx, teleID)
	if err != nil {
		return RoleUnknown, err
	}
	if spec != nil {
		return RoleSpecialist, nil
	}

	client, err := s.clients.GetByTelegramID(ctx, teleID)
	if err != nil {
		return RoleUnknown, err
	}
	if client != nil {
		return RoleClient, nil
	}

	return RoleUnknown, nil
}
