package memory

import "time"

// Resolution statuses for plot points.
const (
	ResolutionUnresolved = "unresolved"
	ResolutionResolved   = "resolved"
)

// PlotPoint is a significant event the narrative still owes a resolution.
type PlotPoint struct {
	Description        string    `json:"description"`
	Significance       string    `json:"significance"`
	SceneID            string    `json:"scene_id"`
	CharactersInvolved []string  `json:"characters_involved,omitempty"`
	ResolutionStatus   string    `json:"resolution_status"`
	Timestamp          time.Time `json:"timestamp"`
}

// ForeshadowingElement pairs a planted element with its eventual payoff.
// An empty PayoffSceneID marks it as pending.
type ForeshadowingElement struct {
	Foreshadowing    string    `json:"foreshadowing"`
	Payoff           string    `json:"payoff"`
	ForeshadowScene  string    `json:"foreshadow_scene_id"`
	PayoffSceneID    string    `json:"payoff_scene_id,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// ThematicDevelopment records one advancement of a theme.
type ThematicDevelopment struct {
	Theme       string    `json:"theme"`
	Development string    `json:"development"`
	SceneID     string    `json:"scene_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// CausalConnection links a cause event to its narrative effect.
type CausalConnection struct {
	Cause     string    `json:"cause"`
	Effect    string    `json:"effect"`
	SceneID   string    `json:"scene_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ContinuityTracker accumulates plot points, foreshadowing, and thematic
// developments across a production.
type ContinuityTracker struct {
	plotPoints    []PlotPoint
	foreshadowing []ForeshadowingElement
	themes        map[string][]ThematicDevelopment
	causal        []CausalConnection
}

// NewContinuityTracker returns an empty tracker.
func NewContinuityTracker() *ContinuityTracker {
	return &ContinuityTracker{
		themes: make(map[string][]ThematicDevelopment),
	}
}

// AddPlotPoint records a plot point as unresolved.
func (c *ContinuityTracker) AddPlotPoint(description, significance, sceneID string, characters []string) {
	c.plotPoints = append(c.plotPoints, PlotPoint{
		Description:        description,
		Significance:       significance,
		SceneID:            sceneID,
		CharactersInvolved: characters,
		ResolutionStatus:   ResolutionUnresolved,
		Timestamp:          time.Now(),
	})
}

// ResolvePlotPoint marks the first matching unresolved plot point resolved.
// Returns false when nothing matched.
func (c *ContinuityTracker) ResolvePlotPoint(description string) bool {
	for i := range c.plotPoints {
		if c.plotPoints[i].Description == description && c.plotPoints[i].ResolutionStatus == ResolutionUnresolved {
			c.plotPoints[i].ResolutionStatus = ResolutionResolved
			return true
		}
	}
	return false
}

// AddForeshadowing plants a foreshadowing element.
func (c *ContinuityTracker) AddForeshadowing(foreshadowing, payoff, sceneID string) {
	c.foreshadowing = append(c.foreshadowing, ForeshadowingElement{
		Foreshadowing:   foreshadowing,
		Payoff:          payoff,
		ForeshadowScene: sceneID,
		Timestamp:       time.Now(),
	})
}

// PayOffForeshadowing stamps the first pending element matching the planted
// text with its payoff scene. Returns false when nothing matched.
func (c *ContinuityTracker) PayOffForeshadowing(foreshadowing, payoffSceneID string) bool {
	for i := range c.foreshadowing {
		if c.foreshadowing[i].Foreshadowing == foreshadowing && c.foreshadowing[i].PayoffSceneID == "" {
			c.foreshadowing[i].PayoffSceneID = payoffSceneID
			return true
		}
	}
	return false
}

// AddThematicDevelopment records one advancement of a theme.
func (c *ContinuityTracker) AddThematicDevelopment(theme, development, sceneID string) {
	c.themes[theme] = append(c.themes[theme], ThematicDevelopment{
		Theme:       theme,
		Development: development,
		SceneID:     sceneID,
		Timestamp:   time.Now(),
	})
}

// AddCausalConnection records a cause-effect link between events.
func (c *ContinuityTracker) AddCausalConnection(cause, effect, sceneID string) {
	c.causal = append(c.causal, CausalConnection{
		Cause:     cause,
		Effect:    effect,
		SceneID:   sceneID,
		Timestamp: time.Now(),
	})
}

// CausalConnections returns every recorded cause-effect link in order.
func (c *ContinuityTracker) CausalConnections() []CausalConnection {
	out := make([]CausalConnection, len(c.causal))
	copy(out, c.causal)
	return out
}

// UnresolvedPlotPoints returns plot points still awaiting resolution.
func (c *ContinuityTracker) UnresolvedPlotPoints() []PlotPoint {
	var unresolved []PlotPoint
	for _, point := range c.plotPoints {
		if point.ResolutionStatus == ResolutionUnresolved {
			unresolved = append(unresolved, point)
		}
	}
	return unresolved
}

// PendingForeshadowing returns planted elements without a payoff scene.
func (c *ContinuityTracker) PendingForeshadowing() []ForeshadowingElement {
	var pending []ForeshadowingElement
	for _, element := range c.foreshadowing {
		if element.PayoffSceneID == "" {
			pending = append(pending, element)
		}
	}
	return pending
}

// ThematicDevelopments returns every theme's development history.
func (c *ContinuityTracker) ThematicDevelopments() map[string][]ThematicDevelopment {
	return c.themes
}
