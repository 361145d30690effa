package unitofwork

import (
	"context"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SessionRepository() contract.SessionRepository
	DocumentRepository() contract.DocumentRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
	StudyPlanRepository() contract.StudyPlanRepository
	TopicRepository() contract.TopicRepository
	ChatRepository() contract.ChatRepository
	MessageRepository() contract.MessageRepository
}
