package service

import (
	"context"
	"time"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/pkg/logger"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/specification"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/unitofwork"
	pktStorage "github.com/ArthurLoboLobo/projeto-estudos/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var ErrSessionNotFound = fiber.NewError(fiber.StatusNotFound, "session not found")

type ISessionService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SessionResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type sessionService struct {
	uowFactory    unitofwork.RepositoryFactory
	storageClient *pktStorage.Client
	log           logger.ILogger
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, storageClient *pktStorage.Client, log logger.ILogger) ISessionService {
	return &sessionService{
		uowFactory:    uowFactory,
		storageClient: storageClient,
		log:           log,
	}
}

// findOwnedSession loads a session and enforces ownership. Every session
// operation goes through this so one user can never touch another's data.
func findOwnedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Session, error) {
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil || session.ProfileId != userId {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func toSessionResponse(s *entity.Session) *dto.SessionResponse {
	res := &dto.SessionResponse{
		Id:          s.Id,
		Title:       s.Title,
		Description: s.Description,
		Status:      string(s.Status),
		Stage:       string(s.Stage()),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.DraftPlan != nil {
		plan := &dto.DraftPlanDTO{Topics: make([]dto.DraftPlanTopicDTO, len(s.DraftPlan.Topics))}
		for i, t := range s.DraftPlan.Topics {
			plan.Topics[i] = dto.DraftPlanTopicDTO{
				Id:          t.Id,
				Title:       t.Title,
				Description: t.Description,
				IsCompleted: t.IsCompleted,
			}
		}
		res.DraftPlan = plan
	}
	return res
}

func (s *sessionService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := &entity.Session{
		Id:          uuid.New(),
		ProfileId:   userId,
		Title:       req.Title,
		Description: req.Description,
		Status:      entity.SessionStatusPlanning,
		CreatedAt:   time.Now(),
	}

	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

func (s *sessionService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.FilterBy{Field: "profile_id", Value: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		res[i] = toSessionResponse(session)
	}
	return res, nil
}

func (s *sessionService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := findOwnedSession(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

func (s *sessionService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := findOwnedSession(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	session.Title = req.Title
	session.Description = req.Description

	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// Delete removes a session and everything hanging off it: messages, chats,
// topics, plan versions, chunks, documents and finally the session row.
// Stored files are removed after the transaction commits, best effort.
func (s *sessionService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := findOwnedSession(ctx, uow, userId, id)
	if err != nil {
		return err
	}

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.FilterBy{Field: "session_id", Value: session.Id},
	)
	if err != nil {
		return err
	}
	chats, err := uow.ChatRepository().FindAll(ctx,
		specification.FilterBy{Field: "session_id", Value: session.Id},
	)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	for _, chat := range chats {
		if err := uow.MessageRepository().DeleteByChatIdUnscoped(ctx, chat.Id); err != nil {
			return err
		}
	}
	if err := uow.ChatRepository().DeleteBySessionIdUnscoped(ctx, session.Id); err != nil {
		return err
	}
	if err := uow.TopicRepository().DeleteBySessionIdUnscoped(ctx, session.Id); err != nil {
		return err
	}
	if err := uow.StudyPlanRepository().DeleteBySessionIdUnscoped(ctx, session.Id); err != nil {
		return err
	}
	if err := uow.DocumentChunkRepository().DeleteBySessionId(ctx, session.Id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().DeleteBySessionIdUnscoped(ctx, session.Id); err != nil {
		return err
	}
	if err := uow.SessionRepository().Delete(ctx, session.Id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	for _, document := range documents {
		if document.FilePath == "" {
			continue
		}
		if err := s.storageClient.Delete(ctx, document.FilePath); err != nil {
			s.log.Warn("session", "failed to delete stored file", map[string]interface{}{
				"session_id":  session.Id.String(),
				"document_id": document.Id.String(),
				"file_path":   document.FilePath,
				"error":       err.Error(),
			})
		}
	}
	return nil
}
