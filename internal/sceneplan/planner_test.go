package sceneplan

import (
	"math"
	"strings"
	"testing"

	"github.com/vampirenirmal/storyloom/internal/memory"
	"github.com/vampirenirmal/storyloom/internal/structure"
)

func newStoryPlanner(t *testing.T, opts structure.PlannerOptions) *structure.StoryPlanner {
	t.Helper()
	p, err := structure.NewStoryPlanner(opts)
	if err != nil {
		t.Fatalf("NewStoryPlanner: %v", err)
	}
	return p
}

func TestSceneDistribution(t *testing.T) {
	tests := []struct {
		name string
		opts structure.PlannerOptions
		want map[int]int
	}{
		{
			name: "three act moderate weights the middle",
			opts: structure.PlannerOptions{
				StructureType: structure.StructureLinear,
				ActStructure:  structure.ActThreeAct,
				NumActs:       3,
				Complexity:    structure.ComplexityModerate,
			},
			want: map[int]int{1: 3, 2: 5, 3: 3},
		},
		{
			name: "three act simple drops one per act",
			opts: structure.PlannerOptions{
				StructureType: structure.StructureLinear,
				ActStructure:  structure.ActThreeAct,
				NumActs:       3,
				Complexity:    structure.ComplexitySimple,
			},
			want: map[int]int{1: 2, 2: 4, 3: 2},
		},
		{
			name: "episodic distributes evenly regardless of act structure",
			opts: structure.PlannerOptions{
				StructureType: structure.StructureEpisodic,
				ActStructure:  structure.ActThreeAct,
				NumActs:       4,
				Complexity:    structure.ComplexityVeryComplex,
			},
			want: map[int]int{1: 6, 2: 6, 3: 6, 4: 6},
		},
		{
			name: "kishotenketsu four parts fixed",
			opts: structure.PlannerOptions{
				StructureType: structure.StructureLinear,
				ActStructure:  structure.ActKishotenketsu,
				NumActs:       4,
				Complexity:    structure.ComplexityModerate,
			},
			want: map[int]int{1: 2, 2: 2, 3: 2, 4: 2},
		},
		{
			name: "kishotenketsu widens at complex",
			opts: structure.PlannerOptions{
				StructureType: structure.StructureLinear,
				ActStructure:  structure.ActKishotenketsu,
				NumActs:       4,
				Complexity:    structure.ComplexityComplex,
			},
			want: map[int]int{1: 3, 2: 3, 3: 2, 4: 2},
		},
		{
			name: "generic structure balanced",
			opts: structure.PlannerOptions{
				StructureType: structure.StructureLinear,
				ActStructure:  structure.ActHeroJourney,
				NumActs:       3,
				Complexity:    structure.ComplexityComplex,
			},
			want: map[int]int{1: 5, 2: 5, 3: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			story := newStoryPlanner(t, tt.opts)
			planner := NewPlanner(story, memory.NewInMemoryStore())

			for act, want := range tt.want {
				if got := planner.ScenesInAct(act); got != want {
					t.Errorf("ScenesInAct(%d) = %d, want %d", act, got, want)
				}
			}
		})
	}
}

func TestScenesInActDefaultsOutsideTable(t *testing.T) {
	story := newStoryPlanner(t, structure.PlannerOptions{
		StructureType: structure.StructureLinear,
		ActStructure:  structure.ActThreeAct,
		NumActs:       3,
		Complexity:    structure.ComplexityModerate,
	})
	planner := NewPlanner(story, memory.NewInMemoryStore())

	if got := planner.ScenesInAct(9); got != baseScenesPerAct {
		t.Errorf("ScenesInAct(9) = %d, want base %d", got, baseScenesPerAct)
	}
}

func TestCreateSceneRequirements(t *testing.T) {
	story := newStoryPlanner(t, structure.PlannerOptions{
		StructureType: structure.StructureLinear,
		ActStructure:  structure.ActThreeAct,
		NumActs:       3,
		Complexity:    structure.ComplexityModerate,
	})

	store := memory.NewInMemoryStore()
	hero := &memory.CharacterProfile{ID: "hero", Name: "Elena", Desires: []string{"freedom"}}
	store.AddCharacter(hero)
	hero.AddArcPoint("introduction", "ordinary life", "s0", "opening")
	hero.AddEmotionalState("restless", "routine", 0.4, "s0")
	store.Continuity().AddPlotPoint("the letter", "inciting", "s0", []string{"hero"})
	store.Continuity().AddThematicDevelopment("freedom", "first taste", "s0")

	planner := NewPlanner(story, store, WithSceneDistribution(map[int]int{1: 4, 2: 4, 3: 4}))

	req := planner.CreateSceneRequirements(2, 1)

	if math.Abs(req.Position-1.0/3.0) > 1e-9 {
		t.Errorf("position = %v, want 1/3", req.Position)
	}
	if req.StoryElements.CurrentBeat != nil {
		// 1/3 is 0.083 from First Plot Point and 0.116 from Rising Action;
		// both outside the 0.05 beat tolerance.
		t.Errorf("current beat = %q, want none", req.StoryElements.CurrentBeat.Name)
	}

	state, ok := req.CharacterStates["hero"]
	if !ok {
		t.Fatal("character states missing hero")
	}
	if state.CurrentStage != "introduction" || state.CurrentEmotion != "restless" {
		t.Errorf("hero state = %+v, want introduction/restless", state)
	}
	if len(req.UnresolvedPlots) != 1 {
		t.Errorf("unresolved plots = %d, want 1", len(req.UnresolvedPlots))
	}
	if req.ThematicStatus["freedom"] != "first taste" {
		t.Errorf("thematic status = %v, want freedom:first taste", req.ThematicStatus)
	}
	if req.TimelinePosition != nil || req.ActiveThreads != nil {
		t.Error("linear structure should carry no structure-specific extras")
	}
}

func TestCreateSceneRequirementsStructureExtras(t *testing.T) {
	t.Run("non-linear timeline position", func(t *testing.T) {
		story := newStoryPlanner(t, structure.PlannerOptions{
			StructureType: structure.StructureNonLinear,
			ActStructure:  structure.ActThreeAct,
			NumActs:       3,
			Complexity:    structure.ComplexityModerate,
		})
		planner := NewPlanner(story, memory.NewInMemoryStore(),
			WithSceneDistribution(map[int]int{1: 4, 2: 4, 3: 4}))

		pos := planner.Position(1, 1)
		if err := story.AddTimeJump(structure.TimeJump{NarrativePosition: pos, ChronologicalPosition: 0.8}); err != nil {
			t.Fatalf("AddTimeJump: %v", err)
		}

		req := planner.CreateSceneRequirements(1, 1)
		if req.TimelinePosition == nil || *req.TimelinePosition != 0.8 {
			t.Errorf("timeline position = %v, want 0.8", req.TimelinePosition)
		}
	})

	t.Run("parallel active threads from subplots", func(t *testing.T) {
		story := newStoryPlanner(t, structure.PlannerOptions{
			StructureType: structure.StructureParallel,
			ActStructure:  structure.ActThreeAct,
			NumActs:       3,
			Complexity:    structure.ComplexityModerate,
		})
		if err := story.AddSubplot(&structure.SubplotDefinition{
			Name:              "second timeline",
			ArcType:           "rise",
			IntegrationPoints: []float64{0.0},
			ResolutionTarget:  0.9,
		}); err != nil {
			t.Fatalf("AddSubplot: %v", err)
		}
		planner := NewPlanner(story, memory.NewInMemoryStore())

		req := planner.CreateSceneRequirements(1, 1)
		if len(req.ActiveThreads) != 1 || req.ActiveThreads[0] != "second timeline" {
			t.Errorf("active threads = %v, want [second timeline]", req.ActiveThreads)
		}
	})
}

func TestHandleSceneCompletion(t *testing.T) {
	story := newStoryPlanner(t, structure.PlannerOptions{
		StructureType: structure.StructureLinear,
		ActStructure:  structure.ActThreeAct,
		NumActs:       3,
		Complexity:    structure.ComplexityModerate,
	})

	if err := story.AddSubplot(&structure.SubplotDefinition{
		Name:              "romance",
		ArcType:           "rise",
		IntegrationPoints: []float64{0.5},
		ResolutionTarget:  0.85,
	}); err != nil {
		t.Fatalf("AddSubplot: %v", err)
	}
	if err := story.AddPlotReversal(&structure.PlotReversal{
		Description:    "ally revealed as spy",
		TargetPosition: 0.5,
		Impact:         "trust collapses",
	}); err != nil {
		t.Fatalf("AddPlotReversal: %v", err)
	}
	if err := story.AddPlotReversal(&structure.PlotReversal{
		Description:    "the map was forged",
		TargetPosition: 0.52,
		Impact:         "journey restarts",
	}); err != nil {
		t.Fatalf("AddPlotReversal: %v", err)
	}

	planner := NewPlanner(story, memory.NewInMemoryStore(),
		WithSceneDistribution(map[int]int{1: 4, 2: 4, 3: 4}))

	// Act 2, scene 3 → 1/3 + (2/4)/3 = 0.5: the Midpoint.
	planner.HandleSceneCompletion("scene-mid", "content", 2, 3)

	beat, ok := story.StoryBeatByPosition(0.5, 0.01)
	if !ok || !beat.Complete {
		t.Fatal("Midpoint should be complete after scene completion")
	}
	if len(beat.SceneIDs) != 1 || beat.SceneIDs[0] != "scene-mid" {
		t.Errorf("Midpoint scenes = %v, want [scene-mid]", beat.SceneIDs)
	}

	// One scene closes every reversal pending at the position.
	for _, reversal := range story.Reversals() {
		if !reversal.Complete {
			t.Errorf("reversal %q not closed", reversal.Description)
		}
		if reversal.SceneID != "scene-mid" {
			t.Errorf("reversal %q scene = %q, want scene-mid", reversal.Description, reversal.SceneID)
		}
	}

	subplot := story.Subplots()[0]
	if len(subplot.Scenes) != 1 || subplot.Scenes[0] != "scene-mid" {
		t.Errorf("subplot scenes = %v, want [scene-mid]", subplot.Scenes)
	}

	seq := planner.SceneSequence()
	if len(seq) != 1 {
		t.Fatalf("scene sequence length = %d, want 1", len(seq))
	}
	if seq[0].BeatName != "Midpoint" || seq[0].Act != 2 || seq[0].Scene != 3 {
		t.Errorf("scene record = %+v, want act 2 scene 3 at Midpoint", seq[0])
	}
}

func TestHandleSceneCompletionRepeatAsymmetry(t *testing.T) {
	story := newStoryPlanner(t, structure.PlannerOptions{
		StructureType: structure.StructureLinear,
		ActStructure:  structure.ActThreeAct,
		NumActs:       3,
		Complexity:    structure.ComplexityModerate,
	})
	if err := story.AddSubplot(&structure.SubplotDefinition{
		Name:              "romance",
		ArcType:           "rise",
		IntegrationPoints: []float64{0.5},
		ResolutionTarget:  0.85,
	}); err != nil {
		t.Fatalf("AddSubplot: %v", err)
	}

	planner := NewPlanner(story, memory.NewInMemoryStore(),
		WithSceneDistribution(map[int]int{1: 4, 2: 4, 3: 4}))

	planner.HandleSceneCompletion("scene-mid", "content", 2, 3)
	planner.HandleSceneCompletion("scene-mid", "content", 2, 3)

	// The subplot path dedups repeated scene IDs.
	subplot := story.Subplots()[0]
	if len(subplot.Scenes) != 1 {
		t.Errorf("subplot scenes = %v, want deduplicated [scene-mid]", subplot.Scenes)
	}

	// The beat path does not; both completions append.
	beat, _ := story.StoryBeatByPosition(0.5, 0.01)
	if len(beat.SceneIDs) != 2 {
		t.Errorf("beat scenes = %v, want two entries for the repeated scene", beat.SceneIDs)
	}

	// The progress log is append-only.
	if got := len(planner.SceneSequence()); got != 2 {
		t.Errorf("scene sequence length = %d, want 2", got)
	}
}

func TestHeroJourneyReversalScenario(t *testing.T) {
	story := newStoryPlanner(t, structure.PlannerOptions{
		StructureType: structure.StructureLinear,
		ActStructure:  structure.ActHeroJourney,
		NumActs:       3,
		Complexity:    structure.ComplexityModerate,
	})

	reversal := &structure.PlotReversal{
		Description:    "mentor's hidden motive",
		TargetPosition: 0.65,
		Impact:         "guidance recast as manipulation",
	}
	if err := story.AddPlotReversal(reversal); err != nil {
		t.Fatalf("AddPlotReversal: %v", err)
	}

	planner := NewPlanner(story, memory.NewInMemoryStore(),
		WithSceneDistribution(map[int]int{1: 4, 2: 4, 3: 4}))

	// Act 3, scene 1 → 2/3 ≈ 0.667, within 0.05 of the reversal target.
	planner.HandleSceneCompletion("scene-a3s1", "content", 3, 1)

	if !reversal.Complete {
		t.Error("reversal should be complete after the act 3 scene 1 completion")
	}
	if reversal.SceneID != "scene-a3s1" {
		t.Errorf("reversal scene = %q, want scene-a3s1", reversal.SceneID)
	}
}

func TestNarrativeRequirementsForLLM(t *testing.T) {
	story := newStoryPlanner(t, structure.PlannerOptions{
		StructureType: structure.StructureLinear,
		ActStructure:  structure.ActThreeAct,
		NumActs:       3,
		Complexity:    structure.ComplexityModerate,
	})
	if err := story.AddSubplot(&structure.SubplotDefinition{
		Name:              "romance",
		Description:       "a slow thaw",
		ArcType:           "rise",
		IntegrationPoints: []float64{0.5},
		ResolutionTarget:  0.85,
	}); err != nil {
		t.Fatalf("AddSubplot: %v", err)
	}

	store := memory.NewInMemoryStore()
	for _, desc := range []string{"plot one", "plot two", "plot three", "plot four"} {
		store.Continuity().AddPlotPoint(desc, "significant", "s0", nil)
	}

	planner := NewPlanner(story, store, WithSceneDistribution(map[int]int{1: 4, 2: 4, 3: 4}))

	brief := planner.NarrativeRequirementsForLLM(2, 3)

	for _, want := range []string{
		"Act: 2, Scene: 3",
		"Narrative Position: 0.50",
		"Name: Midpoint",
		"- romance: a slow thaw",
		"- plot three",
	} {
		if !strings.Contains(brief, want) {
			t.Errorf("brief missing %q\n%s", want, brief)
		}
	}

	// Top-3 cap on unresolved plots.
	if strings.Contains(brief, "plot four") {
		t.Error("brief should cap unresolved plots at three")
	}

	// Pure serialization: no completion state changed.
	beat, _ := story.StoryBeatByPosition(0.5, 0.01)
	if beat.Complete || len(beat.SceneIDs) != 0 {
		t.Error("building the brief must not mutate beat state")
	}
	if got := len(planner.SceneSequence()); got != 0 {
		t.Errorf("building the brief must not touch the progress log, got %d entries", got)
	}
}
