package memory

import "context"

// Generator is the opaque text-generation capability consumed when memory
// updates itself from a finished scene. Errors are surfaced as-is; memory
// does not interpret them.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CharacterStore exposes read access to character state. Every method has a
// defined default for absent data, so callers never need to probe for
// optional capabilities: an unknown character yields a zero summary, an
// empty arc yields status "not_started", and so on.
type CharacterStore interface {
	CharacterIDs() []string
	Character(id string) (CharacterSummary, bool)
}

// ContinuityStore exposes read access to cross-scene narrative continuity.
type ContinuityStore interface {
	UnresolvedPlotPoints() []PlotPoint
	PendingForeshadowing() []ForeshadowingElement
	ThematicDevelopments() map[string][]ThematicDevelopment
}

// Store is the full memory collaborator surface the scene planner consumes:
// character summaries, continuity queries, and the post-scene update hook.
type Store interface {
	CharacterStore
	ContinuityStore

	// UpdateFromScene lets the collaborator absorb a finished scene. The
	// generator may be used to extract continuity updates from the text;
	// the whole operation is collaborator-owned and best-effort.
	UpdateFromScene(ctx context.Context, sceneID, content string, gen Generator) error
}

// CharacterSummary is the read-only view of one character the scene planner
// folds into scene requirements.
type CharacterSummary struct {
	Name           string            `json:"name"`
	ArcStatus      string            `json:"arc_status"`
	CurrentStage   string            `json:"current_stage"`
	CurrentEmotion string            `json:"current_emotion"`
	Relationships  map[string]string `json:"relationships,omitempty"`
	Fears          []string          `json:"fears,omitempty"`
	Desires        []string          `json:"desires,omitempty"`
}
