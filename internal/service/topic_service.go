package service

import (
	"context"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/specification"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ITopicService interface {
	GetBySession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.TopicResponse, error)
	UpdateCompletion(ctx context.Context, userId uuid.UUID, req *dto.UpdateTopicRequest) (*dto.TopicResponse, error)
}

type topicService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTopicService(uowFactory unitofwork.RepositoryFactory) ITopicService {
	return &topicService{
		uowFactory: uowFactory,
	}
}

func toTopicResponse(t *entity.Topic, chatId *uuid.UUID) *dto.TopicResponse {
	return &dto.TopicResponse{
		Id:          t.Id,
		SessionId:   t.SessionId,
		Title:       t.Title,
		Description: t.Description,
		OrderIndex:  t.OrderIndex,
		IsCompleted: t.IsCompleted,
		ChatId:      chatId,
		CreatedAt:   t.CreatedAt,
	}
}

func (s *topicService) GetBySession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.TopicResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := findOwnedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	topics, err := uow.TopicRepository().FindAll(ctx,
		specification.FilterBy{Field: "session_id", Value: sessionId},
		specification.OrderBy{Field: "order_index", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	chats, err := uow.ChatRepository().FindAll(ctx,
		specification.FilterBy{Field: "session_id", Value: sessionId},
		specification.ByChatType{ChatType: string(entity.ChatTypeTopicSpecific)},
	)
	if err != nil {
		return nil, err
	}
	chatByTopic := make(map[uuid.UUID]uuid.UUID, len(chats))
	for _, chat := range chats {
		if chat.TopicId != nil {
			chatByTopic[*chat.TopicId] = chat.Id
		}
	}

	res := make([]*dto.TopicResponse, len(topics))
	for i, topic := range topics {
		var chatId *uuid.UUID
		if id, ok := chatByTopic[topic.Id]; ok {
			chatId = &id
		}
		res[i] = toTopicResponse(topic, chatId)
	}
	return res, nil
}

func (s *topicService) UpdateCompletion(ctx context.Context, userId uuid.UUID, req *dto.UpdateTopicRequest) (*dto.TopicResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	topic, err := uow.TopicRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	if _, err := findOwnedSession(ctx, uow, userId, topic.SessionId); err != nil {
		return nil, ErrTopicNotFound
	}

	topic.IsCompleted = req.IsCompleted
	if err := uow.TopicRepository().Update(ctx, topic); err != nil {
		return nil, err
	}

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByTopicID{TopicID: topic.Id})
	if err != nil {
		return nil, err
	}
	var chatId *uuid.UUID
	if chat != nil {
		chatId = &chat.Id
	}
	return toTopicResponse(topic, chatId), nil
}
