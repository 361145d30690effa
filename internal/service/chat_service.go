package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/constant"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/pkg/logger"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/specification"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/unitofwork"
	"github.com/ArthurLoboLobo/projeto-estudos/pkg/embedding"
	"github.com/ArthurLoboLobo/projeto-estudos/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	ErrChatNotFound    = fiber.NewError(fiber.StatusNotFound, "chat not found")
	ErrTopicNotFound   = fiber.NewError(fiber.StatusNotFound, "topic not found")
	ErrNoMessageToUndo = fiber.NewError(fiber.StatusNotFound, "no message to undo")
)

const (
	// maxHistoryMessages bounds how much conversation is replayed into
	// the tutor prompt.
	maxHistoryMessages = 20

	// retrievalCorpusThreshold is the total extracted-text size, in
	// characters, above which the review chat switches from whole
	// documents to chunk retrieval.
	retrievalCorpusThreshold = 60000
	retrievalChunkLimit      = 8

	noMaterialsMessage = "No study materials have been uploaded yet. Please upload your course materials (slides, past exams, notes) to get personalized help."
)

type IChatService interface {
	GetBySession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.ChatResponse, error)
	Show(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) (*dto.ChatResponse, error)
	GetByTopic(ctx context.Context, userId uuid.UUID, topicId uuid.UUID) (*dto.ChatResponse, error)
	GetReviewChat(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ChatResponse, error)
	GetMessages(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) ([]*dto.MessageResponse, error)
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest, language string) (*dto.SendMessageResponse, error)
	GenerateWelcome(ctx context.Context, userId uuid.UUID, chatId uuid.UUID, language string) (*dto.GenerateWelcomeResponse, error)
	ClearMessages(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) error
	UndoMessage(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) (*dto.UndoMessageResponse, error)
}

type chatService struct {
	uowFactory        unitofwork.RepositoryFactory
	llmProvider       llm.LLMProvider
	embeddingProvider embedding.EmbeddingProvider
	log               logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:        uowFactory,
		llmProvider:       llmProvider,
		embeddingProvider: embeddingProvider,
		log:               log,
	}
}

func toChatResponse(c *entity.Chat) *dto.ChatResponse {
	return &dto.ChatResponse{
		Id:        c.Id,
		SessionId: c.SessionId,
		ChatType:  string(c.ChatType),
		TopicId:   c.TopicId,
		IsStarted: c.IsStarted,
		CreatedAt: c.CreatedAt,
	}
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:        m.Id,
		ChatId:    m.ChatId,
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// findOwnedChat loads a chat and checks, through its session, that it
// belongs to the calling user.
func (s *chatService) findOwnedChat(ctx context.Context, uow unitofwork.UnitOfWork, userId, chatId uuid.UUID) (*entity.Chat, *entity.Session, error) {
	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatId})
	if err != nil {
		return nil, nil, err
	}
	if chat == nil {
		return nil, nil, ErrChatNotFound
	}

	session, err := findOwnedSession(ctx, uow, userId, chat.SessionId)
	if err != nil {
		return nil, nil, ErrChatNotFound
	}
	return chat, session, nil
}

// buildDocumentContext assembles the study-material block for the tutor
// prompt. Review chats over a large corpus use similarity retrieval so
// the prompt stays bounded; everything else gets the whole documents.
func (s *chatService) buildDocumentContext(ctx context.Context, uow unitofwork.UnitOfWork, chat *entity.Chat, query string) (string, error) {
	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.FilterBy{Field: "session_id", Value: chat.SessionId},
		specification.ByExtractionStatus{Status: string(entity.ExtractionStatusCompleted)},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return "", err
	}
	if len(documents) == 0 {
		return noMaterialsMessage, nil
	}

	totalLength := 0
	for _, doc := range documents {
		totalLength += doc.ContentLength
	}

	if chat.ChatType == entity.ChatTypeGeneralReview && query != "" &&
		s.embeddingProvider != nil && totalLength > retrievalCorpusThreshold {
		if retrieved, err := s.retrieveChunks(ctx, uow, chat.SessionId, query); err == nil && retrieved != "" {
			return retrieved, nil
		} else if err != nil {
			s.log.Warn("ChatService", "chunk retrieval failed, falling back to full documents", map[string]interface{}{
				"session_id": chat.SessionId.String(),
				"error":      err.Error(),
			})
		}
	}

	sections := make([]string, len(documents))
	for i, doc := range documents {
		sections[i] = fmt.Sprintf("=== %s ===\n%s", doc.FileName, doc.ExtractedText)
	}
	return strings.Join(sections, "\n\n"), nil
}

func (s *chatService) retrieveChunks(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, query string) (string, error) {
	embedded, err := s.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return "", err
	}

	scored, err := uow.DocumentChunkRepository().SearchSimilar(ctx, embedded.Embedding.Values, retrievalChunkLimit, sessionId)
	if err != nil {
		return "", err
	}
	if len(scored) == 0 {
		return "", nil
	}

	sections := make([]string, len(scored))
	for i, sc := range scored {
		sections[i] = fmt.Sprintf("=== Excerpt %d ===\n%s", i+1, sc.Chunk.ChunkText)
	}
	return strings.Join(sections, "\n\n"), nil
}

// buildStudyPlanContext renders the topic list with completion state for
// the tutor prompt.
func (s *chatService) buildStudyPlanContext(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (string, error) {
	topics, err := uow.TopicRepository().FindAll(ctx,
		specification.FilterBy{Field: "session_id", Value: sessionId},
		specification.OrderBy{Field: "order_index", Desc: false},
	)
	if err != nil {
		return "", err
	}

	lines := make([]string, len(topics))
	for i, topic := range topics {
		description := ""
		if topic.Description != nil {
			description = *topic.Description
		}
		state := "Not Completed"
		if topic.IsCompleted {
			state = "Completed"
		}
		lines[i] = fmt.Sprintf("- %s: %s (%s)", topic.Title, description, state)
	}
	return strings.Join(lines, "\n"), nil
}

func (s *chatService) topicName(ctx context.Context, uow unitofwork.UnitOfWork, chat *entity.Chat) (string, error) {
	if chat.ChatType != entity.ChatTypeTopicSpecific || chat.TopicId == nil {
		return "", nil
	}
	topic, err := uow.TopicRepository().FindOne(ctx, specification.ByID{ID: *chat.TopicId})
	if err != nil {
		return "", err
	}
	if topic == nil {
		return "", ErrTopicNotFound
	}
	return topic.Title, nil
}

func buildSystemPrompt(chat *entity.Chat, topicName, docContext, planContext, language string) string {
	if chat.ChatType == entity.ChatTypeTopicSpecific {
		return strings.NewReplacer(
			"{topic_name}", topicName,
			"{context}", docContext,
			"{study_plan}", planContext,
			"{language}", languageName(language),
		).Replace(constant.TopicSystemPrompt)
	}
	return strings.NewReplacer(
		"{context}", docContext,
		"{study_plan}", planContext,
		"{language}", languageName(language),
	).Replace(constant.ReviewSystemPrompt)
}

func (s *chatService) GetBySession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := findOwnedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	chats, err := uow.ChatRepository().FindAll(ctx,
		specification.FilterBy{Field: "session_id", Value: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChatResponse, len(chats))
	for i, chat := range chats {
		res[i] = toChatResponse(chat)
	}
	return res, nil
}

func (s *chatService) Show(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, _, err := s.findOwnedChat(ctx, uow, userId, chatId)
	if err != nil {
		return nil, err
	}
	return toChatResponse(chat), nil
}

func (s *chatService) GetByTopic(ctx context.Context, userId uuid.UUID, topicId uuid.UUID) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByTopicID{TopicID: topicId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}
	if _, err := findOwnedSession(ctx, uow, userId, chat.SessionId); err != nil {
		return nil, ErrChatNotFound
	}
	return toChatResponse(chat), nil
}

func (s *chatService) GetReviewChat(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := findOwnedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	chat, err := uow.ChatRepository().FindOne(ctx,
		specification.FilterBy{Field: "session_id", Value: sessionId},
		specification.ByChatType{ChatType: string(entity.ChatTypeGeneralReview)},
	)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}
	return toChatResponse(chat), nil
}

func (s *chatService) GetMessages(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, _, err := s.findOwnedChat(ctx, uow, userId, chatId); err != nil {
		return nil, err
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.FilterBy{Field: "chat_id", Value: chatId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MessageResponse, len(messages))
	for i, message := range messages {
		res[i] = toMessageResponse(message)
	}
	return res, nil
}

func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest, language string) (*dto.SendMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, _, err := s.findOwnedChat(ctx, uow, userId, req.ChatId)
	if err != nil {
		return nil, err
	}

	topicName, err := s.topicName(ctx, uow, chat)
	if err != nil {
		return nil, err
	}
	docContext, err := s.buildDocumentContext(ctx, uow, chat, req.Content)
	if err != nil {
		return nil, err
	}
	planContext, err := s.buildStudyPlanContext(ctx, uow, chat.SessionId)
	if err != nil {
		return nil, err
	}

	systemPrompt := buildSystemPrompt(chat, topicName, docContext, planContext, language)

	// History is read before the new message is persisted, so a failed
	// AI call leaves the conversation untouched and the client can
	// restore the input.
	recent, err := uow.MessageRepository().FindRecent(ctx, chat.Id, maxHistoryMessages)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(recent)+2)
	history = append(history, llm.Message{Role: entity.MessageRoleSystem, Content: systemPrompt})
	for _, m := range recent {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}
	history = append(history, llm.Message{Role: entity.MessageRoleUser, Content: req.Content})

	reply, err := s.llmProvider.Chat(ctx, history)
	if err != nil {
		s.log.Error("ChatService", "tutor reply failed", map[string]interface{}{
			"chat_id": chat.Id.String(),
			"error":   err.Error(),
		})
		return nil, fiber.NewError(fiber.StatusBadGateway, "tutor is unavailable, try again")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	userMessage := &entity.Message{
		Id:        uuid.New(),
		ChatId:    chat.Id,
		Role:      entity.MessageRoleUser,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, userMessage); err != nil {
		return nil, err
	}

	assistantMessage := &entity.Message{
		Id:        uuid.New(),
		ChatId:    chat.Id,
		Role:      entity.MessageRoleAssistant,
		Content:   reply,
		CreatedAt: time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, assistantMessage); err != nil {
		return nil, err
	}

	if !chat.IsStarted {
		if err := uow.ChatRepository().MarkStarted(ctx, chat.Id); err != nil {
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.SendMessageResponse{
		Sent:  toMessageResponse(userMessage),
		Reply: toMessageResponse(assistantMessage),
	}, nil
}

func (s *chatService) GenerateWelcome(ctx context.Context, userId uuid.UUID, chatId uuid.UUID, language string) (*dto.GenerateWelcomeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, _, err := s.findOwnedChat(ctx, uow, userId, chatId)
	if err != nil {
		return nil, err
	}

	// Welcome messages only open an empty chat.
	count, err := uow.MessageRepository().Count(ctx, specification.FilterBy{Field: "chat_id", Value: chat.Id})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return &dto.GenerateWelcomeResponse{Skipped: true}, nil
	}

	topicName, err := s.topicName(ctx, uow, chat)
	if err != nil {
		return nil, err
	}
	docContext, err := s.buildDocumentContext(ctx, uow, chat, "")
	if err != nil {
		return nil, err
	}

	systemPrompt := buildSystemPrompt(chat, topicName, docContext, "", language)

	var instruction string
	if chat.ChatType == entity.ChatTypeTopicSpecific {
		instruction = fmt.Sprintf(
			"Generate a welcome message for the student who is starting to study the topic '%s'. "+
				"1. Briefly introduce what this topic is about and why it's useful. "+
				"2. Based on the study materials, suggest the first important concept or 'thing' they should learn. "+
				"3. Ask if they are ready to start with that specific concept. "+
				"Be direct and focus on getting started.",
			topicName,
		)
	} else {
		topics, err := uow.TopicRepository().FindAll(ctx, specification.FilterBy{Field: "session_id", Value: chat.SessionId})
		if err != nil {
			return nil, err
		}
		completed := 0
		for _, topic := range topics {
			if topic.IsCompleted {
				completed++
			}
		}
		instruction = fmt.Sprintf(
			"Generate a welcome message for the General Review chat. "+
				"The student has completed %d/%d topics and is now ready for final review. "+
				"1. Congratulate them on reaching the review phase. "+
				"2. Explain this is for exam simulation and integrated practice. "+
				"3. Ask what they'd like to focus on: past exam problems, specific topics, or a full practice test. "+
				"Be direct, enthusiastic and supportive.",
			completed, len(topics),
		)
	}

	reply, err := s.llmProvider.Chat(ctx, []llm.Message{
		{Role: entity.MessageRoleSystem, Content: systemPrompt},
		{Role: entity.MessageRoleUser, Content: instruction},
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, "welcome generation failed")
	}

	welcome := &entity.Message{
		Id:        uuid.New(),
		ChatId:    chat.Id,
		Role:      entity.MessageRoleAssistant,
		Content:   reply,
		CreatedAt: time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, welcome); err != nil {
		return nil, err
	}
	if err := uow.ChatRepository().MarkStarted(ctx, chat.Id); err != nil {
		return nil, err
	}

	return &dto.GenerateWelcomeResponse{Message: toMessageResponse(welcome)}, nil
}

func (s *chatService) ClearMessages(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, _, err := s.findOwnedChat(ctx, uow, userId, chatId)
	if err != nil {
		return err
	}
	return uow.MessageRepository().DeleteByChatIdUnscoped(ctx, chat.Id)
}

func (s *chatService) UndoMessage(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) (*dto.UndoMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, _, err := s.findOwnedChat(ctx, uow, userId, chatId)
	if err != nil {
		return nil, err
	}

	pair, err := uow.MessageRepository().FindLastPair(ctx, chat.Id)
	if err != nil {
		return nil, err
	}
	if len(pair) == 0 {
		return nil, ErrNoMessageToUndo
	}

	var undone string
	for _, message := range pair {
		if message.Role == entity.MessageRoleUser {
			undone = message.Content
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()
	for _, message := range pair {
		if err := uow.MessageRepository().Delete(ctx, message.Id); err != nil {
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.UndoMessageResponse{Content: undone}, nil
}
