package service

import (
	"time"

	"servicebot/pkg/logger"
	"servicebot/storage"
)

type IServiceManager interface {
	Role() RoleService
	Appointment() AppointmentService
	Specialist() SpecialistService
}

type service struct {
	roleService        RoleService
	appointmentService AppointmentService
	specialistService  SpecialistService
}

func New(stg storage.IStorage, adminID int64, loc *time.Location, log logger.ILogger) IServiceManager {
	return &service{
		roleService:        NewRoleService(stg, adminID, log),
		appointmentService: NewAppointmentService(stg, loc, log),
		specialistService:  NewSpecialistService(stg, log),
	}
}

func (s *service) Role() RoleService {
	return s.roleService
}

func (s *service) Appointment() AppointmentService {
	return s.appointmentService
}

func (s *service) Specialist() SpecialistService {
	return s.specialistService
}
