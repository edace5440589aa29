package structure

import (
	"testing"
)

func TestBeatsForThreeAct(t *testing.T) {
	beats := BeatsFor(ActThreeAct, StructureLinear)

	if len(beats) != 9 {
		t.Fatalf("BeatsFor(3-act, linear) returned %d beats, want 9", len(beats))
	}

	wantPositions := []float64{0.05, 0.12, 0.25, 0.45, 0.5, 0.65, 0.75, 0.88, 0.95}
	for i, beat := range beats {
		if beat.TargetPosition != wantPositions[i] {
			t.Errorf("beat %d (%s) position = %v, want %v", i, beat.Name, beat.TargetPosition, wantPositions[i])
		}
	}

	if beats[1].Name != "Inciting Incident" {
		t.Errorf("beat 1 name = %q, want %q", beats[1].Name, "Inciting Incident")
	}
	if beats[8].Name != "Resolution" {
		t.Errorf("beat 8 name = %q, want %q", beats[8].Name, "Resolution")
	}
}

func TestBeatsForCounts(t *testing.T) {
	tests := []struct {
		name          string
		actStructure  ActStructureType
		structureType NarrativeStructureType
		wantCount     int
	}{
		{"three act linear", ActThreeAct, StructureLinear, 9},
		{"five act linear", ActFiveAct, StructureLinear, 8},
		{"hero journey linear", ActHeroJourney, StructureLinear, 12},
		{"kishotenketsu linear", ActKishotenketsu, StructureLinear, 4},
		{"seven point linear", ActSevenPoint, StructureLinear, 7},
		{"three act non-linear adds two", ActThreeAct, StructureNonLinear, 11},
		{"three act parallel adds two", ActThreeAct, StructureParallel, 11},
		{"three act circular adds two", ActThreeAct, StructureCircular, 11},
		{"three act episodic adds none", ActThreeAct, StructureEpisodic, 9},
		{"unsupported act structure", ActFreytag, StructureLinear, 0},
		{"unsupported with overlay", ActFreytag, StructureCircular, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			beats := BeatsFor(tt.actStructure, tt.structureType)
			if len(beats) != tt.wantCount {
				t.Errorf("BeatsFor(%s, %s) = %d beats, want %d",
					tt.actStructure, tt.structureType, len(beats), tt.wantCount)
			}
		})
	}
}

func TestBeatsForOverlayAppendedAtEnd(t *testing.T) {
	beats := BeatsFor(ActThreeAct, StructureNonLinear)

	if beats[len(beats)-2].Name != "Timeline Anchor" {
		t.Errorf("second-to-last beat = %q, want Timeline Anchor", beats[len(beats)-2].Name)
	}
	if beats[len(beats)-1].Name != "Convergence Point" {
		t.Errorf("last beat = %q, want Convergence Point", beats[len(beats)-1].Name)
	}

	// Overlay beats sit after the base sequence even though their positions
	// fall mid-story.
	if beats[len(beats)-2].TargetPosition != 0.3 {
		t.Errorf("Timeline Anchor position = %v, want 0.3", beats[len(beats)-2].TargetPosition)
	}
}

func TestBeatsForReturnsFreshValues(t *testing.T) {
	first := BeatsFor(ActThreeAct, StructureLinear)
	first[0].Name = "mutated"
	first[0].SceneIDs = append(first[0].SceneIDs, "scene-1")

	second := BeatsFor(ActThreeAct, StructureLinear)
	if second[0].Name != "Introduction" {
		t.Errorf("catalog state leaked across calls: beat 0 name = %q", second[0].Name)
	}
	if len(second[0].SceneIDs) != 0 {
		t.Errorf("catalog state leaked across calls: beat 0 has %d scene IDs", len(second[0].SceneIDs))
	}
}
