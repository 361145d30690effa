package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/constant"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/pkg/logger"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/specification"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/unitofwork"
	"github.com/ArthurLoboLobo/projeto-estudos/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	ErrWrongSessionStage    = fiber.NewError(fiber.StatusConflict, "session must be in PLANNING status")
	ErrNoExtractedDocuments = fiber.NewError(fiber.StatusBadRequest, "at least one document must finish extraction before planning")
	ErrPlanNotFound         = fiber.NewError(fiber.StatusNotFound, "study plan not found")
	ErrCannotUndoFirstPlan  = fiber.NewError(fiber.StatusBadRequest, "cannot undo the initial plan")
	ErrTopicNotInPlan       = fiber.NewError(fiber.StatusNotFound, "topic not found in plan")
	ErrNoDraftPlan          = fiber.NewError(fiber.StatusBadRequest, "no study plan found, generate a plan first")
)

const planningSystemPrompt = "You are a helpful academic tutor. Output valid JSON only."

// WelcomeGenerator produces the opening assistant message for a chat.
// Implemented by the chat service.
type WelcomeGenerator interface {
	GenerateWelcome(ctx context.Context, userId uuid.UUID, chatId uuid.UUID, language string) (*dto.GenerateWelcomeResponse, error)
}

type IPlanningService interface {
	Generate(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, language string) (*dto.PlanResponse, error)
	Revise(ctx context.Context, userId uuid.UUID, req *dto.RevisePlanRequest, language string) (*dto.PlanResponse, error)
	Undo(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.PlanResponse, error)
	UpdateTopicStatus(ctx context.Context, userId uuid.UUID, req *dto.UpdateTopicStatusRequest) (*dto.PlanResponse, error)
	GetCurrent(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.PlanResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.PlanResponse, error)
	StartStudying(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, language string) (*dto.StartStudyingResponse, error)
}

type planningService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	welcome     WelcomeGenerator
	log         logger.ILogger
}

func NewPlanningService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	welcome WelcomeGenerator,
	log logger.ILogger,
) IPlanningService {
	return &planningService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		welcome:     welcome,
		log:         log,
	}
}

// parsePlanResponse decodes the AI reply into structured plan content.
// Models often wrap JSON in markdown fences, so those are stripped first.
func parsePlanResponse(raw string) (*entity.PlanContent, error) {
	jsonStr := strings.TrimSpace(raw)
	if strings.Contains(jsonStr, "```") {
		parts := strings.SplitN(jsonStr, "```", 3)
		if len(parts) >= 2 {
			inner := strings.TrimSpace(parts[1])
			inner = strings.TrimSpace(strings.TrimPrefix(inner, "json"))
			if inner != "" {
				jsonStr = inner
			}
		}
	}

	var content entity.PlanContent
	if err := json.Unmarshal([]byte(jsonStr), &content); err != nil {
		return nil, &dto.PlanParseError{Raw: raw}
	}
	if len(content.Topics) == 0 {
		return nil, &dto.PlanParseError{Raw: raw}
	}
	return &content, nil
}

func topicStatusLabel(status string) string {
	switch status {
	case entity.TopicStatusNeedToLearn:
		return "Need to Learn"
	case entity.TopicStatusNeedReview:
		return "Need Review"
	case entity.TopicStatusKnowWell:
		return "Know Well"
	}
	return "Unknown"
}

// renderPlanMarkdown keeps a human-readable copy of the plan alongside
// the structured content. It is also what the tutor prompts embed.
func renderPlanMarkdown(content *entity.PlanContent) string {
	var b strings.Builder
	b.WriteString("# Study Plan\n\n")
	for i, topic := range content.Topics {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, topic.Title)
		fmt.Fprintf(&b, "   %s\n", topic.Description)
		fmt.Fprintf(&b, "   *Status: %s*\n\n", topicStatusLabel(topic.Status))
	}
	return b.String()
}

func draftPlanFromContent(content *entity.PlanContent) *entity.DraftPlan {
	draft := &entity.DraftPlan{Topics: make([]entity.DraftPlanTopic, len(content.Topics))}
	for i, topic := range content.Topics {
		description := topic.Description
		draft.Topics[i] = entity.DraftPlanTopic{
			Id:          topic.Id,
			Title:       topic.Title,
			Description: &description,
			IsCompleted: topic.Status == entity.TopicStatusKnowWell,
		}
	}
	return draft
}

func toPlanResponse(plan *entity.StudyPlan, canUndo bool) *dto.PlanResponse {
	res := &dto.PlanResponse{
		Id:          plan.Id,
		SessionId:   plan.SessionId,
		Version:     plan.Version,
		ContentMd:   plan.ContentMd,
		Instruction: plan.Instruction,
		CanUndo:     canUndo,
		CreatedAt:   plan.CreatedAt,
	}
	if plan.Content != nil {
		res.Topics = make([]dto.PlanTopicDTO, len(plan.Content.Topics))
		for i, topic := range plan.Content.Topics {
			res.Topics[i] = dto.PlanTopicDTO{
				Id:          topic.Id,
				Title:       topic.Title,
				Description: topic.Description,
				Status:      topic.Status,
			}
		}
	}
	return res
}

func (s *planningService) completedDocuments(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) ([]*entity.Document, error) {
	return uow.DocumentRepository().FindAll(ctx,
		specification.FilterBy{Field: "session_id", Value: sessionId},
		specification.ByExtractionStatus{Status: string(entity.ExtractionStatusCompleted)},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
}

// generatePlanContent runs one AI planning call and parses the reply.
func (s *planningService) generatePlanContent(ctx context.Context, prompt string) (*entity.PlanContent, error) {
	reply, err := s.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: planningSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, "plan generation failed")
	}
	return parsePlanResponse(reply)
}

// storePlanVersion appends a new plan version and mirrors it into the
// session draft plan so the planning view stays in sync.
func (s *planningService) storePlanVersion(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	sessionId uuid.UUID,
	content *entity.PlanContent,
	instruction *string,
) (*entity.StudyPlan, error) {
	maxVersion, err := uow.StudyPlanRepository().MaxVersion(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	plan := &entity.StudyPlan{
		Id:          uuid.New(),
		SessionId:   sessionId,
		Version:     maxVersion + 1,
		ContentMd:   renderPlanMarkdown(content),
		Content:     content,
		Instruction: instruction,
		CreatedAt:   time.Now(),
	}
	if err := uow.StudyPlanRepository().Create(ctx, plan); err != nil {
		return nil, err
	}
	if err := uow.SessionRepository().UpdateDraftPlan(ctx, sessionId, draftPlanFromContent(content)); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planningService) Generate(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, language string) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}
	if session.Status != entity.SessionStatusPlanning {
		return nil, ErrWrongSessionStage
	}

	documents, err := s.completedDocuments(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}
	if len(documents) == 0 {
		return nil, ErrNoExtractedDocuments
	}

	description := "No description provided"
	if session.Description != nil && *session.Description != "" {
		description = *session.Description
	}

	prompt := strings.NewReplacer(
		"{title}", session.Title,
		"{description}", description,
		"{context}", buildMaterialsContext(documents),
		"{language}", languageName(language),
	).Replace(constant.GeneratePlanPrompt)

	s.log.Info("PlanningService", "generating study plan", map[string]interface{}{
		"session_id":     sessionId.String(),
		"document_count": len(documents),
	})

	content, err := s.generatePlanContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	plan, err := s.storePlanVersion(ctx, uow, sessionId, content, nil)
	if err != nil {
		return nil, err
	}
	return toPlanResponse(plan, plan.Version > 1), nil
}

func (s *planningService) Revise(ctx context.Context, userId uuid.UUID, req *dto.RevisePlanRequest, language string) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := findOwnedSession(ctx, uow, userId, req.SessionId)
	if err != nil {
		return nil, err
	}
	if session.Status != entity.SessionStatusPlanning {
		return nil, ErrWrongSessionStage
	}

	current, err := uow.StudyPlanRepository().FindLatest(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if current == nil || current.Content == nil {
		return nil, ErrPlanNotFound
	}

	currentJson, err := json.MarshalIndent(current.Content, "", "  ")
	if err != nil {
		return nil, err
	}

	documents, err := s.completedDocuments(ctx, uow, req.SessionId)
	if err != nil {
		return nil, err
	}

	prompt := strings.NewReplacer(
		"{current_plan}", string(currentJson),
		"{instruction}", req.Instruction,
		"{context}", buildMaterialsContext(documents),
		"{language}", languageName(language),
	).Replace(constant.RevisePlanPrompt)

	s.log.Info("PlanningService", "revising study plan", map[string]interface{}{
		"session_id": req.SessionId.String(),
		"version":    current.Version,
	})

	content, err := s.generatePlanContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	instruction := req.Instruction
	plan, err := s.storePlanVersion(ctx, uow, req.SessionId, content, &instruction)
	if err != nil {
		return nil, err
	}
	return toPlanResponse(plan, plan.Version > 1), nil
}

func (s *planningService) Undo(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := findOwnedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	maxVersion, err := uow.StudyPlanRepository().MaxVersion(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if maxVersion == 0 {
		return nil, ErrPlanNotFound
	}
	if maxVersion <= 1 {
		return nil, ErrCannotUndoFirstPlan
	}

	if err := uow.StudyPlanRepository().DeleteVersion(ctx, sessionId, maxVersion); err != nil {
		return nil, err
	}

	plan, err := uow.StudyPlanRepository().FindLatest(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if plan == nil || plan.Content == nil {
		return nil, ErrPlanNotFound
	}

	if err := uow.SessionRepository().UpdateDraftPlan(ctx, sessionId, draftPlanFromContent(plan.Content)); err != nil {
		return nil, err
	}
	return toPlanResponse(plan, plan.Version > 1), nil
}

func (s *planningService) UpdateTopicStatus(ctx context.Context, userId uuid.UUID, req *dto.UpdateTopicStatusRequest) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := findOwnedSession(ctx, uow, userId, req.SessionId); err != nil {
		return nil, err
	}

	plan, err := uow.StudyPlanRepository().FindLatest(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if plan == nil || plan.Content == nil {
		return nil, ErrPlanNotFound
	}

	// A status change edits the current version in place, it is not a
	// revision and never creates a new version.
	found := false
	for i := range plan.Content.Topics {
		if plan.Content.Topics[i].Id == req.TopicId {
			plan.Content.Topics[i].Status = req.Status
			found = true
			break
		}
	}
	if !found {
		return nil, ErrTopicNotInPlan
	}

	plan.ContentMd = renderPlanMarkdown(plan.Content)
	if err := uow.StudyPlanRepository().Update(ctx, plan); err != nil {
		return nil, err
	}
	if err := uow.SessionRepository().UpdateDraftPlan(ctx, req.SessionId, draftPlanFromContent(plan.Content)); err != nil {
		return nil, err
	}
	return toPlanResponse(plan, plan.Version > 1), nil
}

func (s *planningService) GetCurrent(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := findOwnedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	plan, err := uow.StudyPlanRepository().FindLatest(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}
	return toPlanResponse(plan, plan.Version > 1), nil
}

func (s *planningService) GetHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := findOwnedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	plans, err := uow.StudyPlanRepository().FindAll(ctx,
		specification.FilterBy{Field: "session_id", Value: sessionId},
		specification.OrderBy{Field: "version", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PlanResponse, len(plans))
	for i, plan := range plans {
		res[i] = toPlanResponse(plan, plan.Version > 1)
	}
	return res, nil
}

func (s *planningService) StartStudying(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, language string) (*dto.StartStudyingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}
	if session.Status != entity.SessionStatusPlanning {
		return nil, ErrWrongSessionStage
	}
	if session.DraftPlan == nil || len(session.DraftPlan.Topics) == 0 {
		return nil, ErrNoDraftPlan
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	topics := make([]*entity.Topic, len(session.DraftPlan.Topics))
	for i, draft := range session.DraftPlan.Topics {
		topics[i] = &entity.Topic{
			Id:          uuid.New(),
			SessionId:   sessionId,
			Title:       draft.Title,
			Description: draft.Description,
			OrderIndex:  i,
			IsCompleted: draft.IsCompleted,
			CreatedAt:   time.Now(),
		}
	}
	if err := uow.TopicRepository().CreateBulk(ctx, topics); err != nil {
		return nil, err
	}

	chats := make([]*entity.Chat, 0, len(topics)+1)
	topicResponses := make([]dto.TopicResponse, len(topics))
	for i, topic := range topics {
		topicId := topic.Id
		chat := &entity.Chat{
			Id:        uuid.New(),
			SessionId: sessionId,
			ChatType:  entity.ChatTypeTopicSpecific,
			TopicId:   &topicId,
			CreatedAt: time.Now(),
		}
		chats = append(chats, chat)

		chatId := chat.Id
		topicResponses[i] = dto.TopicResponse{
			Id:          topic.Id,
			SessionId:   topic.SessionId,
			Title:       topic.Title,
			Description: topic.Description,
			OrderIndex:  topic.OrderIndex,
			IsCompleted: topic.IsCompleted,
			ChatId:      &chatId,
			CreatedAt:   topic.CreatedAt,
		}
	}
	chats = append(chats, &entity.Chat{
		Id:        uuid.New(),
		SessionId: sessionId,
		ChatType:  entity.ChatTypeGeneralReview,
		CreatedAt: time.Now(),
	})

	if err := uow.ChatRepository().CreateBulk(ctx, chats); err != nil {
		return nil, err
	}
	if err := uow.SessionRepository().UpdateStatus(ctx, sessionId, entity.SessionStatusActive); err != nil {
		return nil, err
	}
	if err := uow.SessionRepository().UpdateDraftPlan(ctx, sessionId, nil); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("PlanningService", "studying phase started", map[string]interface{}{
		"session_id":  sessionId.String(),
		"topic_count": len(topics),
	})

	chatIds := make([]uuid.UUID, len(chats))
	for i, chat := range chats {
		chatIds[i] = chat.Id
	}
	go s.generateWelcomes(userId, chatIds, language)

	return &dto.StartStudyingResponse{
		SessionId: sessionId,
		Status:    string(entity.SessionStatusActive),
		Topics:    topicResponses,
	}, nil
}

// generateWelcomes fires the opening message for every chat in parallel.
// Failures are logged and skipped, the chat falls back to an explicit
// welcome call from the client.
func (s *planningService) generateWelcomes(userId uuid.UUID, chatIds []uuid.UUID, language string) {
	if s.welcome == nil {
		return
	}

	ctx := context.Background()
	var wg sync.WaitGroup
	for _, chatId := range chatIds {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			if _, err := s.welcome.GenerateWelcome(ctx, userId, id, language); err != nil {
				s.log.Error("PlanningService", "failed to generate welcome message", map[string]interface{}{
					"chat_id": id.String(),
					"error":   err.Error(),
				})
			}
		}(chatId)
	}
	wg.Wait()
}
