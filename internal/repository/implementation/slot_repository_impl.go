package implementation

import (
	"context"
	"errors"

	"clinic-assistant-be/internal/entity"
	"clinic-assistant-be/internal/mapper"
	"clinic-assistant-be/internal/model"
	"clinic-assistant-be/internal/repository/contract"
	"clinic-assistant-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SlotRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SlotMapper
}

func NewSlotRepository(db *gorm.DB) contract.SlotRepository {
	return &SlotRepositoryImpl{
		db:     db,
		mapper: mapper.NewSlotMapper(),
	}
}

func (r *SlotRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SlotRepositoryImpl) Create(ctx context.Context, slot *entity.Slot) error {
	m := r.mapper.ToModel(slot)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*slot = *r.mapper.ToEntity(m)
	return nil
}

func (r *SlotRepositoryImpl) SeedBulk(ctx context.Context, slots []*entity.Slot) error {
	if len(slots) == 0 {
		return nil
	}
	models := make([]*model.Slot, len(slots))
	for i, s := range slots {
		models[i] = r.mapper.ToModel(s)
	}

	// ON CONFLICT DO NOTHING keeps existing rows, booked or not
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "time"}, {Name: "service"}},
			DoNothing: true,
		}).
		CreateInBatches(models, 200).Error
}

func (r *SlotRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Slot, error) {
	var m model.Slot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SlotRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Slot, error) {
	var models []*model.Slot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Slot, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *SlotRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Slot{}).Count(&count).Error
	return count, err
}

// MarkBooked claims the slot with a conditional update. RowsAffected == 0
// means the slot was missing or already booked, so the caller must not
// create an appointment for it.
func (r *SlotRepositoryImpl) MarkBooked(ctx context.Context, date, time, service string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Slot{}).
		Where("date = ? AND time = ? AND service = ? AND is_booked = ?", date, time, service, false).
		Update("is_booked", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrSlotTaken
	}
	return nil
}

func (r *SlotRepositoryImpl) MarkFree(ctx context.Context, date, time, service string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Slot{}).
		Where("date = ? AND time = ? AND service = ? AND is_booked = ?", date, time, service, true).
		Update("is_booked", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrAppointmentNotFound
	}
	return nil
}
