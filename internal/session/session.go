package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/vampirenirmal/storyloom/internal/agent"
	"github.com/vampirenirmal/storyloom/internal/memory"
	"github.com/vampirenirmal/storyloom/internal/sceneplan"
	"github.com/vampirenirmal/storyloom/internal/structure"
)

// GeneratedScene is one finished scene with its structural coordinates.
type GeneratedScene struct {
	SceneID  string  `json:"scene_id"`
	Act      int     `json:"act"`
	Scene    int     `json:"scene"`
	Position float64 `json:"position"`
	Content  string  `json:"content"`
}

// Option customizes a session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithSceneDistribution overrides the computed scenes-per-act table.
func WithSceneDistribution(scenesPerAct map[int]int) Option {
	return func(s *Session) {
		s.distribution = scenesPerAct
	}
}

// Session owns one story production: a story planner, its scene planner,
// the memory collaborator, and the generation client. All planner and
// memory access goes through the session mutex; generation calls run
// outside it so a slow model never blocks readers of session state.
type Session struct {
	mu sync.Mutex

	id     string
	title  string
	story  *structure.StoryPlanner
	scenes *sceneplan.Planner
	mem    memory.Store
	client agent.AIClient
	logger *slog.Logger

	distribution map[int]int
	generated    []GeneratedScene
}

// New builds a session over a configured story planner. The memory store
// and client may be shared-nothing per session; the client is the only
// component safe to share across sessions.
func New(title string, story *structure.StoryPlanner, mem memory.Store, client agent.AIClient, opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		title:  title,
		story:  story,
		mem:    mem,
		client: client,
		logger: slog.Default().With("component", "session"),
	}

	for _, opt := range opts {
		opt(s)
	}

	var planOpts []sceneplan.Option
	if s.distribution != nil {
		planOpts = append(planOpts, sceneplan.WithSceneDistribution(s.distribution))
	}
	s.scenes = sceneplan.NewPlanner(story, mem, planOpts...)

	s.logger = s.logger.With("session_id", s.id, "title", title)
	s.logger.Debug("Session created",
		"structure_type", story.StructureType(),
		"act_structure", story.ActStructure(),
		"num_acts", story.NumActs(),
	)

	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Title returns the story title.
func (s *Session) Title() string { return s.title }

// TotalActs returns the act count of the production.
func (s *Session) TotalActs() int { return s.scenes.TotalActs() }

// ScenesInAct returns the planned scene count for an act.
func (s *Session) ScenesInAct(act int) int { return s.scenes.ScenesInAct(act) }

// Requirements returns the requirement bundle for a scene coordinate
// without generating anything.
func (s *Session) Requirements(act, scene int) sceneplan.SceneRequirements {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scenes.CreateSceneRequirements(act, scene)
}

// Progress returns the completed-scene log in completion order.
func (s *Session) Progress() []sceneplan.SceneRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scenes.SceneSequence()
}

// Scenes returns all generated scenes so far.
func (s *Session) Scenes() []GeneratedScene {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]GeneratedScene, len(s.generated))
	copy(out, s.generated)
	return out
}

// GenerateScene produces one scene: it assembles the prompt under the
// session lock, calls the generation client with the lock released, then
// re-acquires the lock to record completion and feed the memory
// collaborator. Failed generations leave planner and memory state
// untouched.
func (s *Session) GenerateScene(ctx context.Context, act, scene int) (*GeneratedScene, error) {
	s.mu.Lock()
	prompt := s.buildScenePrompt(act, scene)
	s.mu.Unlock()

	content, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating act %d scene %d: %w", act, scene, err)
	}

	sceneID := fmt.Sprintf("act%d_scene%d_%s", act, scene, uuid.NewString()[:8])

	s.mu.Lock()
	defer s.mu.Unlock()

	s.scenes.HandleSceneCompletion(sceneID, content, act, scene)

	if err := s.mem.UpdateFromScene(ctx, sceneID, content, s.client); err != nil {
		// Continuity extraction is best effort; the scene itself stands.
		s.logger.Warn("Memory update failed for scene",
			"scene_id", sceneID,
			"error", err,
		)
	}

	generated := GeneratedScene{
		SceneID:  sceneID,
		Act:      act,
		Scene:    scene,
		Position: s.scenes.Position(act, scene),
		Content:  content,
	}
	s.generated = append(s.generated, generated)

	return &generated, nil
}

// GenerateStory runs the full production front to back, one scene at a
// time in structural order.
func (s *Session) GenerateStory(ctx context.Context) ([]GeneratedScene, error) {
	totalActs := s.scenes.TotalActs()

	for act := 1; act <= totalActs; act++ {
		for scene := 1; scene <= s.scenes.ScenesInAct(act); scene++ {
			if _, err := s.GenerateScene(ctx, act, scene); err != nil {
				return s.Scenes(), err
			}
		}
	}

	s.logger.Info("Story generation complete",
		"scenes", len(s.Scenes()),
		"acts", totalActs,
	)

	return s.Scenes(), nil
}

// buildScenePrompt renders the full generation prompt: story framing,
// the structural brief, and current character states. Caller holds the
// session lock.
func (s *Session) buildScenePrompt(act, scene int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write this scene of %q.\n\n", s.title)

	plot := s.story.MainPlot()
	if plot.Premise != "" {
		fmt.Fprintf(&b, "PREMISE: %s\n", plot.Premise)
	}
	if plot.CentralConflict != "" {
		fmt.Fprintf(&b, "CENTRAL CONFLICT: %s\n", plot.CentralConflict)
	}
	if plot.Theme != "" {
		fmt.Fprintf(&b, "THEME: %s\n", plot.Theme)
	}
	b.WriteString("\n")

	b.WriteString(s.scenes.NarrativeRequirementsForLLM(act, scene))

	ids := s.mem.CharacterIDs()
	if len(ids) > 0 {
		b.WriteString("\nCHARACTER STATES:\n")
		for _, id := range ids {
			summary, ok := s.mem.Character(id)
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "- %s (arc: %s", summary.Name, summary.ArcStatus)
			if summary.CurrentStage != "" {
				fmt.Fprintf(&b, ", stage: %s", summary.CurrentStage)
			}
			if summary.CurrentEmotion != "" {
				fmt.Fprintf(&b, ", emotion: %s", summary.CurrentEmotion)
			}
			b.WriteString(")\n")
		}
	}

	b.WriteString("\nWrite the scene in prose. Honor the current story beat and keep continuity with the elements above.")

	return b.String()
}
