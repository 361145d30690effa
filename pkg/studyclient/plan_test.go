package studyclient

import (
	"context"
	"testing"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/google/uuid"
)

type fakePlanAPI struct {
	plans     map[int]*dto.PlanResponse
	version   int
	undoCalls int
}

func (f *fakePlanAPI) planAt(version int) *dto.PlanResponse {
	if plan, ok := f.plans[version]; ok {
		return plan
	}
	plan := &dto.PlanResponse{
		Id:      uuid.New(),
		Version: version,
		Topics: []dto.PlanTopicDTO{
			{Id: "topic-1", Title: "Derivatives", Status: "need_to_learn"},
		},
		CanUndo: version > 1,
	}
	if f.plans == nil {
		f.plans = map[int]*dto.PlanResponse{}
	}
	f.plans[version] = plan
	return plan
}

func (f *fakePlanAPI) Plan(ctx context.Context, sessionId uuid.UUID) (*dto.PlanResponse, error) {
	return f.planAt(f.version), nil
}

func (f *fakePlanAPI) GeneratePlan(ctx context.Context, sessionId uuid.UUID, language string) (*dto.PlanResponse, error) {
	f.version = 1
	return f.planAt(f.version), nil
}

func (f *fakePlanAPI) RevisePlan(ctx context.Context, sessionId uuid.UUID, instruction, language string) (*dto.PlanResponse, error) {
	f.version++
	return f.planAt(f.version), nil
}

func (f *fakePlanAPI) UndoPlan(ctx context.Context, sessionId uuid.UUID) (*dto.PlanResponse, error) {
	f.undoCalls++
	f.version--
	return f.planAt(f.version), nil
}

func (f *fakePlanAPI) UpdateTopicStatus(ctx context.Context, sessionId uuid.UUID, topicId, status string) (*dto.PlanResponse, error) {
	return f.planAt(f.version), nil
}

func TestPlanEditorVersionMonotonicity(t *testing.T) {
	api := &fakePlanAPI{}
	editor := NewPlanEditor(api, uuid.New())

	plan, err := editor.Generate(context.Background(), "en")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if plan.Version != 1 {
		t.Fatalf("Version = %d, want 1", plan.Version)
	}

	revised, err := editor.Revise(context.Background(), "add a trigonometry topic", "en")
	if err != nil {
		t.Fatalf("Revise() error = %v", err)
	}
	if revised.Version <= plan.Version {
		t.Errorf("revised Version = %d, want > %d", revised.Version, plan.Version)
	}

	undone, err := editor.Undo(context.Background())
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if undone.Version != revised.Version-1 {
		t.Errorf("undone Version = %d, want %d", undone.Version, revised.Version-1)
	}
}

func TestPlanEditorUndoDisabledAtFirstVersion(t *testing.T) {
	api := &fakePlanAPI{}
	editor := NewPlanEditor(api, uuid.New())

	if _, err := editor.Generate(context.Background(), "en"); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if editor.CanUndo() {
		t.Error("CanUndo() = true at version 1")
	}

	plan, err := editor.Undo(context.Background())
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if plan.Version != 1 {
		t.Errorf("Version = %d, want 1", plan.Version)
	}
	if api.undoCalls != 0 {
		t.Errorf("undo issued %d server calls, want 0", api.undoCalls)
	}
}

func TestPlanEditorUndoBeforeLoadIsNoop(t *testing.T) {
	api := &fakePlanAPI{}
	editor := NewPlanEditor(api, uuid.New())

	plan, err := editor.Undo(context.Background())
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if plan != nil {
		t.Errorf("plan = %+v, want nil", plan)
	}
	if api.undoCalls != 0 {
		t.Errorf("undo issued %d server calls, want 0", api.undoCalls)
	}
}

func TestPlanEditorReplacesPlanWholesale(t *testing.T) {
	api := &fakePlanAPI{}
	editor := NewPlanEditor(api, uuid.New())

	first, _ := editor.Generate(context.Background(), "en")
	revised, _ := editor.Revise(context.Background(), "split topic one", "en")

	current := editor.Current()
	if current.Id != revised.Id {
		t.Errorf("Current() holds plan %v, want %v", current.Id, revised.Id)
	}
	if current.Id == first.Id {
		t.Error("Current() still holds the pre-revision plan")
	}
}
