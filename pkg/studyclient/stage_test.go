package studyclient

import "testing"

func TestSelectView(t *testing.T) {
	tests := []struct {
		name       string
		stage      string
		planLoaded bool
		want       View
	}{
		{
			name:  "uploading",
			stage: "UPLOADING",
			want:  ViewUpload,
		},
		{
			name:       "uploading ignores plan state",
			stage:      "UPLOADING",
			planLoaded: true,
			want:       ViewUpload,
		},
		{
			name:       "planning with plan",
			stage:      "PLANNING",
			planLoaded: true,
			want:       ViewPlanning,
		},
		{
			name:  "planning before plan arrives",
			stage: "PLANNING",
			want:  ViewLoading,
		},
		{
			name:  "studying",
			stage: "STUDYING",
			want:  ViewStudying,
		},
		{
			name:       "studying ignores plan state",
			stage:      "STUDYING",
			planLoaded: true,
			want:       ViewStudying,
		},
		{
			name:  "unknown stage",
			stage: "ARCHIVED",
			want:  ViewLoading,
		},
		{
			name:  "empty stage",
			stage: "",
			want:  ViewLoading,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectView(tt.stage, tt.planLoaded)
			if got != tt.want {
				t.Errorf("SelectView(%q, %v) = %q, want %q", tt.stage, tt.planLoaded, got, tt.want)
			}
		})
	}
}
