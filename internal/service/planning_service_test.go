package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
)

const validPlanJSON = `{"topics":[{"id":"t1","title":"Limits","description":"Intro to limits","status":"need_to_learn"},{"id":"t2","title":"Derivatives","description":"Rates of change","status":"need_review"}]}`

func TestParsePlanResponse(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantTopics int
		wantErr    bool
	}{
		{
			name:       "bare JSON",
			raw:        validPlanJSON,
			wantTopics: 2,
		},
		{
			name:       "json fenced",
			raw:        "```json\n" + validPlanJSON + "\n```",
			wantTopics: 2,
		},
		{
			name:       "plain fenced",
			raw:        "```\n" + validPlanJSON + "\n```",
			wantTopics: 2,
		},
		{
			name:       "fenced with prose around it",
			raw:        "Here is your plan:\n```json\n" + validPlanJSON + "\n```\nGood luck!",
			wantTopics: 2,
		},
		{
			name:       "surrounding whitespace",
			raw:        "\n\n  " + validPlanJSON + "  \n",
			wantTopics: 2,
		},
		{
			name:    "not JSON at all",
			raw:     "I cannot produce a plan for this material.",
			wantErr: true,
		},
		{
			name:    "valid JSON without topics",
			raw:     `{"topics":[]}`,
			wantErr: true,
		},
		{
			name:    "truncated JSON",
			raw:     `{"topics":[{"id":"t1","title":"Lim`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := parsePlanResponse(tt.raw)
			if tt.wantErr {
				var parseErr *dto.PlanParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("err = %v, want *dto.PlanParseError", err)
				}
				if parseErr.Raw != tt.raw {
					t.Errorf("Raw not preserved")
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePlanResponse() error = %v", err)
			}
			if len(content.Topics) != tt.wantTopics {
				t.Errorf("topic count = %d, want %d", len(content.Topics), tt.wantTopics)
			}
		})
	}
}

func TestRenderPlanMarkdown(t *testing.T) {
	content := &entity.PlanContent{
		Topics: []entity.PlanTopic{
			{Id: "t1", Title: "Limits", Description: "Intro to limits", Status: entity.TopicStatusNeedToLearn},
			{Id: "t2", Title: "Derivatives", Description: "Rates of change", Status: entity.TopicStatusKnowWell},
		},
	}

	md := renderPlanMarkdown(content)

	if !strings.HasPrefix(md, "# Study Plan\n\n") {
		t.Errorf("missing header: %q", md)
	}
	for _, want := range []string{
		"1. **Limits**",
		"   Intro to limits",
		"   *Status: Need to Learn*",
		"2. **Derivatives**",
		"   *Status: Know Well*",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
}

func TestTopicStatusLabel(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{entity.TopicStatusNeedToLearn, "Need to Learn"},
		{entity.TopicStatusNeedReview, "Need Review"},
		{entity.TopicStatusKnowWell, "Know Well"},
		{"something_else", "Unknown"},
	}
	for _, tt := range tests {
		if got := topicStatusLabel(tt.status); got != tt.want {
			t.Errorf("topicStatusLabel(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestDraftPlanFromContent(t *testing.T) {
	content := &entity.PlanContent{
		Topics: []entity.PlanTopic{
			{Id: "t1", Title: "Limits", Description: "Intro", Status: entity.TopicStatusNeedToLearn},
			{Id: "t2", Title: "Derivatives", Description: "Rates", Status: entity.TopicStatusKnowWell},
		},
	}

	draft := draftPlanFromContent(content)

	if len(draft.Topics) != 2 {
		t.Fatalf("topic count = %d", len(draft.Topics))
	}
	if draft.Topics[0].IsCompleted {
		t.Error("need_to_learn topic marked completed")
	}
	if !draft.Topics[1].IsCompleted {
		t.Error("know_well topic not marked completed")
	}
	if draft.Topics[0].Id != "t1" || *draft.Topics[0].Description != "Intro" {
		t.Errorf("topic fields not carried over: %+v", draft.Topics[0])
	}
}
