package structure

// NarrativePosition maps an (act, scene) coordinate onto the 0.0-1.0 story
// timeline. Acts and scenes are 1-based; the result lies in [0,1) and is
// strictly increasing in scene for a fixed act and in act for a fixed scene.
//
// The scene fraction divides by a single scenesInAct scalar even when acts
// carry unequal scene counts, so positions from differently-sized acts are
// only approximately comparable. Callers pass the count for the act in
// question.
func NarrativePosition(act, scene, totalActs, scenesInAct int) float64 {
	actFraction := float64(act-1) / float64(totalActs)
	sceneFraction := float64(scene-1) / float64(scenesInAct) / float64(totalActs)
	return actFraction + sceneFraction
}
