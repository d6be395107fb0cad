package mapper

import (
	"clinic-assistant-be/internal/entity"
	"clinic-assistant-be/internal/model"
)

type SlotMapper struct{}

func NewSlotMapper() *SlotMapper {
	return &SlotMapper{}
}

func (m *SlotMapper) ToEntity(s *model.Slot) *entity.Slot {
	if s == nil {
		return nil
	}

	return &entity.Slot{
		Id:        s.Id,
		Date:      s.Date,
		Time:      s.Time,
		Service:   s.Service,
		IsBooked:  s.IsBooked,
		CreatedAt: s.CreatedAt,
	}
}

func (m *SlotMapper) ToModel(s *entity.Slot) *model.Slot {
	if s == nil {
		return nil
	}

	return &model.Slot{
		Id:       s.Id,
		Date:     s.Date,
		Time:     s.Time,
		Service:  s.Service,
		IsBooked: s.IsBooked,
	}
}

func (m *SlotMapper) ToEntities(slots []*model.Slot) []*entity.Slot {
	entities := make([]*entity.Slot, len(slots))
	for i, s := range slots {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

func (m *SlotMapper) ToModels(slots []*entity.Slot) []*model.Slot {
	models := make([]*model.Slot, len(slots))
	for i, s := range slots {
		models[i] = m.ToModel(s)
	}
	return models
}

type AppointmentMapper struct{}

func NewAppointmentMapper() *AppointmentMapper {
	return &AppointmentMapper{}
}

func (m *AppointmentMapper) ToEntity(a *model.Appointment) *entity.Appointment {
	if a == nil {
		return nil
	}

	return &entity.Appointment{
		Id:        a.Id,
		Name:      a.Name,
		Phone:     a.Phone,
		Service:   a.Service,
		Date:      a.Date,
		Time:      a.Time,
		Status:    a.Status,
		RoomId:    a.RoomId,
		CreatedAt: a.CreatedAt,
	}
}

func (m *AppointmentMapper) ToModel(a *entity.Appointment) *model.Appointment {
	if a == nil {
		return nil
	}

	return &model.Appointment{
		Id:      a.Id,
		Name:    a.Name,
		Phone:   a.Phone,
		Service: a.Service,
		Date:    a.Date,
		Time:    a.Time,
		Status:  a.Status,
		RoomId:  a.RoomId,
	}
}

func (m *AppointmentMapper) ToEntities(appointments []*model.Appointment) []*entity.Appointment {
	entities := make([]*entity.Appointment, len(appointments))
	for i, a := range appointments {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
