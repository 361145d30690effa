package entity

import "testing"

func TestSessionStage(t *testing.T) {
	desc := "intro"
	draft := &DraftPlan{
		Topics: []DraftPlanTopic{
			{Id: "t1", Title: "Limits", Description: &desc},
		},
	}

	tests := []struct {
		name   string
		status SessionStatus
		draft  *DraftPlan
		want   SessionStage
	}{
		{
			name:   "planning without draft is uploading",
			status: SessionStatusPlanning,
			want:   SessionStageUploading,
		},
		{
			name:   "planning with empty draft is uploading",
			status: SessionStatusPlanning,
			draft:  &DraftPlan{},
			want:   SessionStageUploading,
		},
		{
			name:   "planning with draft topics is planning",
			status: SessionStatusPlanning,
			draft:  draft,
			want:   SessionStagePlanning,
		},
		{
			name:   "active is studying",
			status: SessionStatusActive,
			want:   SessionStageStudying,
		},
		{
			name:   "completed is studying",
			status: SessionStatusCompleted,
			want:   SessionStageStudying,
		},
		{
			name:   "active with stale draft is still studying",
			status: SessionStatusActive,
			draft:  draft,
			want:   SessionStageStudying,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{Status: tt.status, DraftPlan: tt.draft}
			if got := s.Stage(); got != tt.want {
				t.Errorf("Stage() = %q, want %q", got, tt.want)
			}
		})
	}
}
