package sceneplan

import (
	"log/slog"

	"github.com/vampirenirmal/storyloom/internal/memory"
	"github.com/vampirenirmal/storyloom/internal/structure"
)

// SceneRecord is one entry in the session's append-only progress log.
type SceneRecord struct {
	SceneID  string  `json:"scene_id"`
	Act      int     `json:"act"`
	Scene    int     `json:"scene"`
	Position float64 `json:"position"`
	BeatName string  `json:"beat_name,omitempty"`
}

// SceneRequirements is the full bundle of obligations for one scene:
// planner-derived story elements merged with memory collaborator state.
type SceneRequirements struct {
	Act      int     `json:"act"`
	Scene    int     `json:"scene"`
	Position float64 `json:"narrative_position"`

	StoryElements structure.StoryElements `json:"story_elements"`

	CharacterStates      map[string]memory.CharacterSummary `json:"character_states"`
	UnresolvedPlots      []memory.PlotPoint                 `json:"unresolved_plots"`
	PendingForeshadowing []memory.ForeshadowingElement      `json:"pending_foreshadowing"`
	ThematicStatus       map[string]string                  `json:"thematic_status"`

	StructureType structure.NarrativeStructureType `json:"structure_type"`
	ActStructure  structure.ActStructureType       `json:"act_structure"`

	// TimelinePosition is set for non-linear structures.
	TimelinePosition *float64 `json:"timeline_position,omitempty"`
	// ActiveThreads is set for parallel structures. It carries the names of
	// subplots active at the position, mirroring the per-scene view the
	// requirements have always exposed.
	ActiveThreads []string `json:"active_threads,omitempty"`
}

// Option customizes a scene planner.
type Option func(*Planner)

// WithSceneDistribution overrides the computed scenes-per-act table.
func WithSceneDistribution(scenesPerAct map[int]int) Option {
	return func(p *Planner) {
		if len(scenesPerAct) > 0 {
			p.scenesPerAct = scenesPerAct
		}
	}
}

// Planner is the per-session scene controller. It owns the scene
// distribution and the progress log; requirement definitions stay in the
// story planner. Not safe for concurrent use; the owning session
// serializes access.
type Planner struct {
	story        *structure.StoryPlanner
	mem          memory.Store
	totalActs    int
	scenesPerAct map[int]int
	sequence     []SceneRecord
}

// NewPlanner builds a scene planner over a story planner and its memory
// collaborator. The scene distribution is derived from the story planner's
// complexity and structure unless overridden.
func NewPlanner(story *structure.StoryPlanner, mem memory.Store, opts ...Option) *Planner {
	p := &Planner{
		story:     story,
		mem:       mem,
		totalActs: story.NumActs(),
	}
	p.scenesPerAct = sceneDistribution(story, p.totalActs)

	for _, opt := range opts {
		opt(p)
	}

	slog.Debug("Scene planner initialized",
		"total_acts", p.totalActs,
		"scenes_per_act", p.scenesPerAct,
	)

	return p
}

// TotalActs returns the number of acts in the production.
func (p *Planner) TotalActs() int { return p.totalActs }

// ScenesInAct returns the scene count for an act, defaulting to the base
// count for acts outside the distribution table.
func (p *Planner) ScenesInAct(act int) int {
	if count, ok := p.scenesPerAct[act]; ok {
		return count
	}
	return baseScenesPerAct
}

// SceneSequence returns the progress log in completion order.
func (p *Planner) SceneSequence() []SceneRecord {
	seq := make([]SceneRecord, len(p.sequence))
	copy(seq, p.sequence)
	return seq
}

// Position maps a scene coordinate onto the story timeline using this
// production's act count and the coordinate act's scene count.
func (p *Planner) Position(act, scene int) float64 {
	return structure.NarrativePosition(act, scene, p.totalActs, p.ScenesInAct(act))
}

// CreateSceneRequirements assembles the full requirement bundle for one
// scene coordinate. Read-only: planner and memory state are unchanged.
func (p *Planner) CreateSceneRequirements(act, scene int) SceneRequirements {
	position := p.Position(act, scene)
	elements := p.story.NecessaryStoryElements(position)

	characterStates := make(map[string]memory.CharacterSummary)
	for _, id := range p.mem.CharacterIDs() {
		if summary, ok := p.mem.Character(id); ok {
			characterStates[id] = summary
		}
	}

	themes := make(map[string]string)
	for theme, developments := range p.mem.ThematicDevelopments() {
		if len(developments) > 0 {
			themes[theme] = developments[len(developments)-1].Development
		}
	}

	req := SceneRequirements{
		Act:                  act,
		Scene:                scene,
		Position:             position,
		StoryElements:        elements,
		CharacterStates:      characterStates,
		UnresolvedPlots:      p.mem.UnresolvedPlotPoints(),
		PendingForeshadowing: p.mem.PendingForeshadowing(),
		ThematicStatus:       themes,
		StructureType:        p.story.StructureType(),
		ActStructure:         p.story.ActStructure(),
	}

	switch p.story.StructureType() {
	case structure.StructureNonLinear:
		chrono := p.story.ChronologicalPosition(position)
		req.TimelinePosition = &chrono
	case structure.StructureParallel:
		for _, subplot := range p.story.ActiveSubplots(position, structure.DefaultSubplotTolerance) {
			req.ActiveThreads = append(req.ActiveThreads, subplot.Name)
		}
	}

	return req
}

// HandleSceneCompletion records a finished scene: the nearest beat is
// marked complete with this scene, every reversal pending at this position
// is closed and stamped (one scene may close several), active subplots get
// the scene appended (deduplicated, unlike the beat path), and the
// progress log grows by one entry.
func (p *Planner) HandleSceneCompletion(sceneID, content string, act, scene int) {
	position := p.Position(act, scene)

	var beatName string
	if beat, ok := p.story.StoryBeatByPosition(position, structure.DefaultBeatTolerance); ok {
		p.story.UpdateStoryBeat(beat.Name, sceneID, true)
		beatName = beat.Name
	}

	reversals := p.story.PendingReversals(position, structure.DefaultReversalTolerance)
	for _, reversal := range reversals {
		reversal.SceneID = sceneID
		reversal.Complete = true
	}

	for _, subplot := range p.story.ActiveSubplots(position, structure.DefaultSubplotTolerance) {
		if !containsString(subplot.Scenes, sceneID) {
			subplot.Scenes = append(subplot.Scenes, sceneID)
		}
	}

	p.sequence = append(p.sequence, SceneRecord{
		SceneID:  sceneID,
		Act:      act,
		Scene:    scene,
		Position: position,
		BeatName: beatName,
	})

	slog.Info("Scene completion recorded",
		"scene_id", sceneID,
		"act", act,
		"scene", scene,
		"position", position,
		"beat", beatName,
		"reversals_closed", len(reversals),
	)
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
