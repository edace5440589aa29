package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// InMemoryStore is the session-local memory collaborator: character
// profiles plus a continuity tracker. Like the planners it is owned by a
// single session and relies on the session's write discipline.
type InMemoryStore struct {
	profiles map[string]*CharacterProfile
	order    []string
	tracker  *ContinuityTracker
}

// NewInMemoryStore returns an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		profiles: make(map[string]*CharacterProfile),
		tracker:  NewContinuityTracker(),
	}
}

// AddCharacter registers a profile under its ID. Re-registering an ID
// replaces the profile but keeps its original iteration position.
func (s *InMemoryStore) AddCharacter(profile *CharacterProfile) {
	if _, exists := s.profiles[profile.ID]; !exists {
		s.order = append(s.order, profile.ID)
	}
	s.profiles[profile.ID] = profile
}

// Profile returns the mutable profile for direct arc/emotion updates.
func (s *InMemoryStore) Profile(id string) (*CharacterProfile, bool) {
	p, ok := s.profiles[id]
	return p, ok
}

// Continuity returns the mutable continuity tracker.
func (s *InMemoryStore) Continuity() *ContinuityTracker {
	return s.tracker
}

// CharacterIDs returns character IDs in registration order.
func (s *InMemoryStore) CharacterIDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Character returns the read-only summary for an ID. Unknown IDs yield
// (zero, false); the zero summary is safe to use as "no data".
func (s *InMemoryStore) Character(id string) (CharacterSummary, bool) {
	profile, ok := s.profiles[id]
	if !ok {
		return CharacterSummary{ArcStatus: "unknown"}, false
	}
	return profile.Summary(), true
}

func (s *InMemoryStore) UnresolvedPlotPoints() []PlotPoint {
	return s.tracker.UnresolvedPlotPoints()
}

func (s *InMemoryStore) PendingForeshadowing() []ForeshadowingElement {
	return s.tracker.PendingForeshadowing()
}

func (s *InMemoryStore) ThematicDevelopments() map[string][]ThematicDevelopment {
	return s.tracker.ThematicDevelopments()
}

// sceneAnalysis is the JSON shape the generator is asked to produce when
// extracting continuity updates from a finished scene.
type sceneAnalysis struct {
	PlotPoints []struct {
		Description  string   `json:"description"`
		Significance string   `json:"significance"`
		Characters   []string `json:"characters_involved"`
	} `json:"plot_points"`
	Foreshadowing []struct {
		Foreshadowing string `json:"foreshadowing"`
		Payoff        string `json:"payoff"`
	} `json:"foreshadowing"`
	ThematicDevelopments []struct {
		Theme       string `json:"theme"`
		Development string `json:"development"`
	} `json:"thematic_developments"`
}

// UpdateFromScene asks the generator to extract continuity updates from the
// scene text and applies them. Extraction is best effort: an unparseable
// response is logged and dropped rather than failing the scene.
func (s *InMemoryStore) UpdateFromScene(ctx context.Context, sceneID, content string, gen Generator) error {
	if gen == nil || strings.TrimSpace(content) == "" {
		return nil
	}

	prompt := fmt.Sprintf(`Analyze this scene for narrative continuity.

SCENE:
%s

Respond with JSON only, using this shape:
{
  "plot_points": [{"description": "...", "significance": "...", "characters_involved": ["..."]}],
  "foreshadowing": [{"foreshadowing": "...", "payoff": "..."}],
  "thematic_developments": [{"theme": "...", "development": "..."}]
}`, content)

	response, err := gen.Complete(ctx, prompt)
	if err != nil {
		return fmt.Errorf("extracting continuity from scene %s: %w", sceneID, err)
	}

	var analysis sceneAnalysis
	if err := json.Unmarshal([]byte(extractJSON(response)), &analysis); err != nil {
		slog.Warn("Dropping unparseable scene analysis",
			"scene_id", sceneID,
			"error", err,
		)
		return nil
	}

	for _, point := range analysis.PlotPoints {
		s.tracker.AddPlotPoint(point.Description, point.Significance, sceneID, point.Characters)
	}
	for _, element := range analysis.Foreshadowing {
		s.tracker.AddForeshadowing(element.Foreshadowing, element.Payoff, sceneID)
	}
	for _, dev := range analysis.ThematicDevelopments {
		s.tracker.AddThematicDevelopment(dev.Theme, dev.Development, sceneID)
	}

	slog.Debug("Memory updated from scene",
		"scene_id", sceneID,
		"plot_points", len(analysis.PlotPoints),
		"foreshadowing", len(analysis.Foreshadowing),
		"themes", len(analysis.ThematicDevelopments),
	)

	return nil
}

// extractJSON trims prose or code fences around a JSON object.
func extractJSON(response string) string {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end < start {
		return response
	}
	return response[start : end+1]
}
