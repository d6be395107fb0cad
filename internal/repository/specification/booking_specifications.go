package specification

import "gorm.io/gorm"

// ByDate filters slots or appointments by calendar day (YYYY-MM-DD)
type ByDate struct {
	Date string
}

func (s ByDate) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("date = ?", s.Date)
}

// ByService filters by the canonical service name
type ByService struct {
	Service string
}

func (s ByService) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("service = ?", s.Service)
}

// ByTime filters by the HH:MM time of day
type ByTime struct {
	Time string
}

func (s ByTime) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("time = ?", s.Time)
}

// UnbookedOnly keeps only slots still open for booking
type UnbookedOnly struct{}

func (s UnbookedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_booked = ?", false)
}

// ByStatus filters appointments by status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByRoomId filters appointments by the conversation that created them
type ByRoomId struct {
	RoomId string
}

func (s ByRoomId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("room_id = ?", s.RoomId)
}

// BySourceType filters corpus chunks by their origin ("web" or "document")
type BySourceType struct {
	SourceType string
}

func (s BySourceType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_type = ?", s.SourceType)
}

// BySourceName filters corpus chunks by their source document or page
type BySourceName struct {
	SourceName string
}

func (s BySourceName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_name = ?", s.SourceName)
}
