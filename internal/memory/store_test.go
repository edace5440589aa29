package memory

import (
	"context"
	"errors"
	"testing"
)

func TestCharacterSummaryDefaults(t *testing.T) {
	store := NewInMemoryStore()
	store.AddCharacter(&CharacterProfile{ID: "hero", Name: "Elena"})

	summary, ok := store.Character("hero")
	if !ok {
		t.Fatal("Character(hero) not found")
	}
	if summary.ArcStatus != "not_started" {
		t.Errorf("fresh profile arc status = %q, want not_started", summary.ArcStatus)
	}
	if summary.CurrentEmotion != "" {
		t.Errorf("fresh profile emotion = %q, want empty", summary.CurrentEmotion)
	}

	// Unknown characters yield a usable zero summary, not an error.
	missing, ok := store.Character("nobody")
	if ok {
		t.Error("Character(nobody) reported found")
	}
	if missing.ArcStatus != "unknown" {
		t.Errorf("missing character arc status = %q, want unknown", missing.ArcStatus)
	}
}

func TestCharacterSummaryTracksLatest(t *testing.T) {
	store := NewInMemoryStore()
	profile := &CharacterProfile{ID: "hero", Name: "Elena", Fears: []string{"heights"}}
	store.AddCharacter(profile)

	profile.AddArcPoint("introduction", "ordinary life", "s1", "opening")
	profile.AddArcPoint("transformation", "accepts the call", "s2", "mentor")
	profile.AddEmotionalState("fear", "the summons", 0.7, "s2")
	profile.UpdateRelationship("rival", "hostile")

	summary, _ := store.Character("hero")
	if summary.ArcStatus != "in_progress" {
		t.Errorf("arc status = %q, want in_progress", summary.ArcStatus)
	}
	if summary.CurrentStage != "transformation" {
		t.Errorf("current stage = %q, want transformation", summary.CurrentStage)
	}
	if summary.CurrentEmotion != "fear" {
		t.Errorf("current emotion = %q, want fear", summary.CurrentEmotion)
	}
	if summary.Relationships["rival"] != "hostile" {
		t.Errorf("relationships = %v, want rival:hostile", summary.Relationships)
	}
}

func TestContinuityTrackerQueries(t *testing.T) {
	tracker := NewContinuityTracker()

	tracker.AddPlotPoint("the letter arrives", "sets the plot moving", "s1", []string{"Elena"})
	tracker.AddPlotPoint("rival's debt revealed", "motive", "s2", []string{"Marcus"})
	tracker.AddForeshadowing("the locked drawer", "holds the will", "s1")
	tracker.AddThematicDevelopment("trust", "first betrayal", "s2")
	tracker.AddThematicDevelopment("trust", "tentative repair", "s3")

	if got := len(tracker.UnresolvedPlotPoints()); got != 2 {
		t.Errorf("unresolved plot points = %d, want 2", got)
	}

	if !tracker.ResolvePlotPoint("the letter arrives") {
		t.Error("ResolvePlotPoint should match the first unresolved point")
	}
	if got := len(tracker.UnresolvedPlotPoints()); got != 1 {
		t.Errorf("unresolved plot points after resolve = %d, want 1", got)
	}
	if tracker.ResolvePlotPoint("no such point") {
		t.Error("ResolvePlotPoint on unknown description should return false")
	}

	if got := len(tracker.PendingForeshadowing()); got != 1 {
		t.Errorf("pending foreshadowing = %d, want 1", got)
	}
	if !tracker.PayOffForeshadowing("the locked drawer", "s4") {
		t.Error("PayOffForeshadowing should stamp the pending element")
	}
	if got := len(tracker.PendingForeshadowing()); got != 0 {
		t.Errorf("pending foreshadowing after payoff = %d, want 0", got)
	}

	developments := tracker.ThematicDevelopments()["trust"]
	if len(developments) != 2 || developments[1].Development != "tentative repair" {
		t.Errorf("trust developments = %v, want two with latest 'tentative repair'", developments)
	}

	tracker.AddCausalConnection("the letter arrives", "Elena confronts Marcus", "s2")
	connections := tracker.CausalConnections()
	if len(connections) != 1 || connections[0].Effect != "Elena confronts Marcus" {
		t.Errorf("causal connections = %v, want one with the confrontation effect", connections)
	}
}

type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func TestUpdateFromScene(t *testing.T) {
	tests := []struct {
		name           string
		gen            Generator
		wantErr        bool
		wantPlotPoints int
	}{
		{
			name: "valid analysis applied",
			gen: &stubGenerator{response: `{
				"plot_points": [{"description": "letter arrives", "significance": "inciting", "characters_involved": ["Elena"]}],
				"foreshadowing": [{"foreshadowing": "locked drawer", "payoff": "the will"}],
				"thematic_developments": [{"theme": "trust", "development": "seeded"}]
			}`},
			wantPlotPoints: 1,
		},
		{
			name:           "fenced JSON still parsed",
			gen:            &stubGenerator{response: "Here you go:\n```json\n{\"plot_points\": [{\"description\": \"x\", \"significance\": \"y\"}]}\n```"},
			wantPlotPoints: 1,
		},
		{
			name:           "unparseable response dropped",
			gen:            &stubGenerator{response: "no json here"},
			wantPlotPoints: 0,
		},
		{
			name:    "generation failure surfaces",
			gen:     &stubGenerator{err: errors.New("rate limited")},
			wantErr: true,
		},
		{
			name:           "nil generator is a no-op",
			gen:            nil,
			wantPlotPoints: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewInMemoryStore()
			err := store.UpdateFromScene(context.Background(), "s1", "INT. STUDY - NIGHT", tt.gen)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpdateFromScene error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := len(store.UnresolvedPlotPoints()); got != tt.wantPlotPoints {
				t.Errorf("unresolved plot points = %d, want %d", got, tt.wantPlotPoints)
			}
		})
	}
}
