package memory

import "time"

// ArcPoint is one stage in a character's development arc.
type ArcPoint struct {
	Stage       string    `json:"stage"`
	Description string    `json:"description"`
	SceneID     string    `json:"scene_id"`
	Trigger     string    `json:"trigger"`
	Timestamp   time.Time `json:"timestamp"`
}

// EmotionalState is one recorded emotion with its cause and intensity.
type EmotionalState struct {
	Emotion   string    `json:"emotion"`
	Cause     string    `json:"cause"`
	Intensity float64   `json:"intensity"`
	SceneID   string    `json:"scene_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CharacterProfile tracks one character's evolution across scenes.
type CharacterProfile struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	DevelopmentArc []ArcPoint        `json:"development_arc,omitempty"`
	EmotionalArc   []EmotionalState  `json:"emotional_arc,omitempty"`
	Relationships  map[string]string `json:"relationships,omitempty"`
	Fears          []string          `json:"fears,omitempty"`
	Desires        []string          `json:"desires,omitempty"`
}

// AddArcPoint appends a development stage.
func (p *CharacterProfile) AddArcPoint(stage, description, sceneID, trigger string) {
	p.DevelopmentArc = append(p.DevelopmentArc, ArcPoint{
		Stage:       stage,
		Description: description,
		SceneID:     sceneID,
		Trigger:     trigger,
		Timestamp:   time.Now(),
	})
}

// AddEmotionalState appends an emotion record.
func (p *CharacterProfile) AddEmotionalState(emotion, cause string, intensity float64, sceneID string) {
	p.EmotionalArc = append(p.EmotionalArc, EmotionalState{
		Emotion:   emotion,
		Cause:     cause,
		Intensity: intensity,
		SceneID:   sceneID,
		Timestamp: time.Now(),
	})
}

// UpdateRelationship sets the current status toward another character.
func (p *CharacterProfile) UpdateRelationship(other, status string) {
	if p.Relationships == nil {
		p.Relationships = make(map[string]string)
	}
	p.Relationships[other] = status
}

// Summary flattens the profile into the read-only view the scene planner
// consumes, with defined defaults when tracking has not started.
func (p *CharacterProfile) Summary() CharacterSummary {
	summary := CharacterSummary{
		Name:          p.Name,
		ArcStatus:     "not_started",
		Relationships: p.Relationships,
		Fears:         p.Fears,
		Desires:       p.Desires,
	}
	if len(p.DevelopmentArc) > 0 {
		summary.ArcStatus = "in_progress"
		summary.CurrentStage = p.DevelopmentArc[len(p.DevelopmentArc)-1].Stage
	}
	if len(p.EmotionalArc) > 0 {
		summary.CurrentEmotion = p.EmotionalArc[len(p.EmotionalArc)-1].Emotion
	}
	return summary
}
