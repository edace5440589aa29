package sceneplan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vampirenirmal/storyloom/internal/structure"
)

// briefListLimit caps list sections in the brief for prompt brevity.
const briefListLimit = 3

// NarrativeRequirementsForLLM renders the requirement bundle for a scene
// coordinate as a plain-text brief for the generation collaborator. Pure
// serialization: no planner or memory state changes.
func (p *Planner) NarrativeRequirementsForLLM(act, scene int) string {
	req := p.CreateSceneRequirements(act, scene)

	var b strings.Builder

	fmt.Fprintf(&b, "NARRATIVE STRUCTURE REQUIREMENTS:\n")
	fmt.Fprintf(&b, "Act: %d, Scene: %d\n", act, scene)
	fmt.Fprintf(&b, "Structure Type: %s\n", req.StructureType)
	fmt.Fprintf(&b, "Act Structure: %s\n", req.ActStructure)
	fmt.Fprintf(&b, "Narrative Position: %.2f (0.0-1.0 scale)\n\n", req.Position)

	b.WriteString("CURRENT STORY BEAT:\n")
	if beat := req.StoryElements.CurrentBeat; beat != nil {
		fmt.Fprintf(&b, "Name: %s\n", beat.Name)
		fmt.Fprintf(&b, "Description: %s\n", beat.Description)
		fmt.Fprintf(&b, "Purpose: %s\n", beat.Purpose)
		fmt.Fprintf(&b, "Emotional Tone: %s\n", beat.EmotionalTone)
	} else {
		b.WriteString("Name: None\n")
	}

	b.WriteString("\nACTIVE ELEMENTS:\n")

	if subplots := req.StoryElements.ActiveSubplots; len(subplots) > 0 {
		b.WriteString("Active Subplots:\n")
		for _, subplot := range subplots {
			fmt.Fprintf(&b, "- %s: %s\n", subplot.Name, subplot.Description)
		}
	}

	if reversals := req.StoryElements.PendingReversals; len(reversals) > 0 {
		b.WriteString("\nPending Plot Reversals:\n")
		for _, reversal := range reversals {
			fmt.Fprintf(&b, "- %s\n", reversal.Description)
		}
	}

	if len(req.UnresolvedPlots) > 0 {
		b.WriteString("\nUnresolved Plot Points:\n")
		for i, point := range req.UnresolvedPlots {
			if i == briefListLimit {
				break
			}
			fmt.Fprintf(&b, "- %s\n", point.Description)
		}
	}

	if len(req.PendingForeshadowing) > 0 {
		b.WriteString("\nPending Foreshadowing Elements:\n")
		for i, element := range req.PendingForeshadowing {
			if i == briefListLimit {
				break
			}
			fmt.Fprintf(&b, "- %s\n", element.Foreshadowing)
		}
	}

	if len(req.ThematicStatus) > 0 {
		b.WriteString("\nThematic Elements:\n")
		themes := make([]string, 0, len(req.ThematicStatus))
		for theme := range req.ThematicStatus {
			themes = append(themes, theme)
		}
		sort.Strings(themes)
		for i, theme := range themes {
			if i == briefListLimit {
				break
			}
			fmt.Fprintf(&b, "- %s: %s\n", theme, req.ThematicStatus[theme])
		}
	}

	switch req.StructureType {
	case structure.StructureNonLinear:
		if req.TimelinePosition != nil {
			fmt.Fprintf(&b, "\nTimeline Position: %.2f (chronological timeline)\n", *req.TimelinePosition)
		}
	case structure.StructureParallel:
		b.WriteString("\nActive Narrative Threads:\n")
		for _, thread := range req.ActiveThreads {
			fmt.Fprintf(&b, "- %s\n", thread)
		}
	}

	return b.String()
}
