package sceneplan

import (
	"github.com/vampirenirmal/storyloom/internal/structure"
)

// baseScenesPerAct is the neutral scene count before complexity adjustment.
const baseScenesPerAct = 4

// complexityAdjustment shifts the per-act scene count by complexity level.
func complexityAdjustment(level structure.ComplexityLevel) int {
	switch level {
	case structure.ComplexitySimple:
		return -1
	case structure.ComplexityComplex:
		return 1
	case structure.ComplexityVeryComplex:
		return 2
	default:
		return 0
	}
}

// sceneDistribution computes scenes per act for the planner's structure.
// Three-act stories weight the middle act; episodic structures distribute
// evenly; four-part kishotenketsu uses its fixed 2-scenes-per-part table,
// widened to 3/3/2/2 at higher complexity.
func sceneDistribution(p *structure.StoryPlanner, totalActs int) map[int]int {
	adj := complexityAdjustment(p.Complexity())
	scenes := make(map[int]int, totalActs)

	switch {
	case p.StructureType() == structure.StructureEpisodic:
		for act := 1; act <= totalActs; act++ {
			scenes[act] = baseScenesPerAct + adj
		}
	case p.ActStructure() == structure.ActThreeAct:
		scenes[1] = baseScenesPerAct - 1 + adj
		scenes[2] = baseScenesPerAct + 1 + adj
		scenes[3] = baseScenesPerAct - 1 + adj
		for act := 4; act <= totalActs; act++ {
			scenes[act] = 3 + adj
		}
	default:
		for act := 1; act <= totalActs; act++ {
			scenes[act] = baseScenesPerAct + adj
		}
	}

	if p.ActStructure() == structure.ActKishotenketsu && totalActs == 4 {
		scenes = map[int]int{1: 2, 2: 2, 3: 2, 4: 2}
		if p.Complexity() == structure.ComplexityComplex || p.Complexity() == structure.ComplexityVeryComplex {
			scenes = map[int]int{1: 3, 2: 3, 3: 2, 4: 2}
		}
	}

	return scenes
}
