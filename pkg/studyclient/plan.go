package studyclient

import (
	"context"
	"sync"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/google/uuid"
)

type planAPI interface {
	Plan(ctx context.Context, sessionId uuid.UUID) (*dto.PlanResponse, error)
	GeneratePlan(ctx context.Context, sessionId uuid.UUID, language string) (*dto.PlanResponse, error)
	RevisePlan(ctx context.Context, sessionId uuid.UUID, instruction, language string) (*dto.PlanResponse, error)
	UndoPlan(ctx context.Context, sessionId uuid.UUID) (*dto.PlanResponse, error)
	UpdateTopicStatus(ctx context.Context, sessionId uuid.UUID, topicId, status string) (*dto.PlanResponse, error)
}

// PlanEditor holds the plan version the user is looking at. Every
// successful server call replaces the held plan wholesale, so the
// markdown and the structured topics can never drift apart.
type PlanEditor struct {
	api       planAPI
	sessionId uuid.UUID

	mu      sync.Mutex
	current *dto.PlanResponse
}

func NewPlanEditor(api planAPI, sessionId uuid.UUID) *PlanEditor {
	return &PlanEditor{api: api, sessionId: sessionId}
}

// Current returns the plan the editor holds, nil before the first load.
func (e *PlanEditor) Current() *dto.PlanResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// CanUndo reports whether an undo would leave a version to fall back to.
func (e *PlanEditor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current != nil && e.current.Version > 1
}

func (e *PlanEditor) replace(plan *dto.PlanResponse) *dto.PlanResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = plan
	return plan
}

func (e *PlanEditor) Load(ctx context.Context) (*dto.PlanResponse, error) {
	plan, err := e.api.Plan(ctx, e.sessionId)
	if err != nil {
		return nil, err
	}
	return e.replace(plan), nil
}

func (e *PlanEditor) Generate(ctx context.Context, language string) (*dto.PlanResponse, error) {
	plan, err := e.api.GeneratePlan(ctx, e.sessionId, language)
	if err != nil {
		return nil, err
	}
	return e.replace(plan), nil
}

func (e *PlanEditor) Revise(ctx context.Context, instruction, language string) (*dto.PlanResponse, error) {
	plan, err := e.api.RevisePlan(ctx, e.sessionId, instruction, language)
	if err != nil {
		return nil, err
	}
	return e.replace(plan), nil
}

// Undo drops back to the previous version. At version 1 there is
// nothing to fall back to, so the call is a no-op and never reaches the
// server.
func (e *PlanEditor) Undo(ctx context.Context) (*dto.PlanResponse, error) {
	if !e.CanUndo() {
		return e.Current(), nil
	}
	plan, err := e.api.UndoPlan(ctx, e.sessionId)
	if err != nil {
		return nil, err
	}
	return e.replace(plan), nil
}

func (e *PlanEditor) SetTopicStatus(ctx context.Context, topicId, status string) (*dto.PlanResponse, error) {
	plan, err := e.api.UpdateTopicStatus(ctx, e.sessionId, topicId, status)
	if err != nil {
		return nil, err
	}
	return e.replace(plan), nil
}
