package unitofwork

import (
	"context"

	"clinic-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CorpusChunkRepository() contract.CorpusChunkRepository
	SlotRepository() contract.SlotRepository
	AppointmentRepository() contract.AppointmentRepository
}
