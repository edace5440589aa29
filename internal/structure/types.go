package structure

// Shared types for narrative structure planning and position tracking.

// NarrativeStructureType describes the overall shape of the narrative.
type NarrativeStructureType string

const (
	StructureLinear     NarrativeStructureType = "linear"
	StructureNonLinear  NarrativeStructureType = "non_linear"
	StructureParallel   NarrativeStructureType = "parallel"
	StructureNested     NarrativeStructureType = "nested"
	StructureCircular   NarrativeStructureType = "circular"
	StructureFragmented NarrativeStructureType = "fragmented"
	StructureEpisodic   NarrativeStructureType = "episodic"
	StructureFrame      NarrativeStructureType = "frame"
)

// ActStructureType describes the act pattern the story is built on.
type ActStructureType string

const (
	ActThreeAct       ActStructureType = "3-act"
	ActFiveAct        ActStructureType = "5-act"
	ActHeroJourney    ActStructureType = "hero-journey"
	ActFreytag        ActStructureType = "freytag-pyramid"
	ActKishotenketsu  ActStructureType = "kishotenketsu"
	ActSevenPoint     ActStructureType = "seven-point"
	ActSequenceMethod ActStructureType = "sequence-method"
)

// ComplexityLevel adjusts scene counts and structural density.
type ComplexityLevel string

const (
	ComplexitySimple      ComplexityLevel = "simple"
	ComplexityModerate    ComplexityLevel = "moderate"
	ComplexityComplex     ComplexityLevel = "complex"
	ComplexityVeryComplex ComplexityLevel = "very_complex"
)

// StatusActive and StatusResolved are the well-known thread/subplot states.
// Other free-form statuses are allowed; only "resolved" has query semantics.
const (
	StatusActive   = "active"
	StatusResolved = "resolved"
)

// StoryBeat is a named structural checkpoint with a target position on the
// 0.0-1.0 story timeline. Beats are created in bulk by the catalog and
// mutated only through StoryPlanner.UpdateStoryBeat.
type StoryBeat struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Purpose          string   `json:"purpose"`
	TargetPosition   float64  `json:"target_position" validate:"gte=0,lte=1"`
	EmotionalTone    string   `json:"emotional_tone"`
	RequiredElements []string `json:"required_elements,omitempty"`
	OptionalElements []string `json:"optional_elements,omitempty"`
	SceneIDs         []string `json:"scene_ids,omitempty"`
	Complete         bool     `json:"complete"`
}

// ArcPoint is a key point in a plot thread's arc.
type ArcPoint struct {
	Position    float64 `json:"position" yaml:"position" validate:"gte=0,lte=1"`
	Description string  `json:"description" yaml:"description"`
}

// PlotThread is a tracked throughline of character-focused events.
// Connections hold plain thread names, resolved through the owning planner;
// threads never hold direct references to each other.
type PlotThread struct {
	Name           string     `json:"name" yaml:"name"`
	Description    string     `json:"description" yaml:"description"`
	Importance     float64    `json:"importance" yaml:"importance" validate:"gte=0,lte=1"`
	CharacterFocus []string   `json:"character_focus,omitempty" yaml:"character_focus"`
	ArcPoints      []ArcPoint `json:"arc_points,omitempty" yaml:"arc_points" validate:"dive"`
	Status         string     `json:"status" yaml:"status"`
	Connections    []string   `json:"connections,omitempty" yaml:"connections"`
}

// SubplotDefinition is a secondary arc with its own integration points.
type SubplotDefinition struct {
	Name              string    `json:"name" yaml:"name"`
	Description       string    `json:"description" yaml:"description"`
	Characters        []string  `json:"characters,omitempty" yaml:"characters"`
	ArcType           string    `json:"arc_type" yaml:"arc_type"`
	IntegrationPoints []float64 `json:"integration_points,omitempty" yaml:"integration_points" validate:"dive,gte=0,lte=1"`
	ResolutionTarget  float64   `json:"resolution_target" yaml:"resolution_target" validate:"gte=0,lte=1"`
	Status            string    `json:"status" yaml:"status"`
	Scenes            []string  `json:"scenes,omitempty" yaml:"-"`
}

// PlotReversal is a planned twist tied to a target position. AffectedThreads
// hold thread names, not references.
type PlotReversal struct {
	Description     string   `json:"description" yaml:"description"`
	TargetPosition  float64  `json:"target_position" yaml:"target_position" validate:"gte=0,lte=1"`
	AffectedThreads []string `json:"affected_threads,omitempty" yaml:"affected_threads"`
	Impact          string   `json:"impact" yaml:"impact"`
	Foreshadowing   []string `json:"foreshadowing,omitempty" yaml:"foreshadowing"`
	SceneID         string   `json:"scene_id,omitempty" yaml:"-"`
	Complete        bool     `json:"complete" yaml:"-"`
}

// NarrativeDevice is a free-form device active over a position window.
type NarrativeDevice struct {
	Name          string  `json:"name" yaml:"name"`
	Description   string  `json:"description" yaml:"description"`
	StartPosition float64 `json:"start_position" yaml:"start_position" validate:"gte=0,lte=1"`
	EndPosition   float64 `json:"end_position" yaml:"end_position" validate:"gte=0,lte=1"`
}

// TimeJump maps a narrative position to a chronological position for
// non-linear structures.
type TimeJump struct {
	NarrativePosition     float64 `json:"narrative_position" yaml:"narrative_position" validate:"gte=0,lte=1"`
	ChronologicalPosition float64 `json:"chronological_position" yaml:"chronological_position" validate:"gte=0,lte=1"`
	Description           string  `json:"description,omitempty" yaml:"description"`
}

// MainPlot is the skeleton of the central storyline. The slots are
// free-text, filled in by the generation collaborator rather than by the
// planner itself.
type MainPlot struct {
	Premise         string `json:"premise" yaml:"premise"`
	CentralConflict string `json:"central_conflict" yaml:"central_conflict"`
	ProtagonistGoal string `json:"protagonist_goal" yaml:"protagonist_goal"`
	Stakes          string `json:"stakes" yaml:"stakes"`
	Theme           string `json:"theme" yaml:"theme"`
	ResolutionType  string `json:"resolution_type" yaml:"resolution_type"`
}

// StoryElements bundles everything the narrative requires at one position.
type StoryElements struct {
	CurrentBeat      *StoryBeat        `json:"current_beat,omitempty"`
	ActiveSubplots   []*SubplotDefinition `json:"active_subplots"`
	PendingReversals []*PlotReversal   `json:"pending_reversals"`
	Position         float64           `json:"position"`
	NarrativeDevices []NarrativeDevice `json:"narrative_devices"`

	// Set only for non-linear structures.
	Timeline *TimelineRequirements `json:"timeline_requirements,omitempty"`
	// Set only for parallel structures.
	Threads *ThreadRequirements `json:"thread_requirements,omitempty"`
}

// TimelineRequirements carries the non-linear chronology remap.
type TimelineRequirements struct {
	Connections           []TimeJump `json:"timeline_connections"`
	ChronologicalPosition float64    `json:"chronological_position"`
}

// ThreadRequirements carries the parallel-structure thread focus.
type ThreadRequirements struct {
	ActiveThreads []string `json:"active_threads"`
	ThreadFocus   string   `json:"thread_focus"`
}
