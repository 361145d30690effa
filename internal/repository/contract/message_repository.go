package contract

import (
	"context"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByChatIdUnscoped(ctx context.Context, chatId uuid.UUID) error // Hard delete all
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindRecent returns the newest messages for a chat in chronological order.
	FindRecent(ctx context.Context, chatId uuid.UUID, limit int) ([]*entity.Message, error)
	// FindLastPair returns the newest user message and any assistant replies
	// that came after it, newest last.
	FindLastPair(ctx context.Context, chatId uuid.UUID) ([]*entity.Message, error)
}
