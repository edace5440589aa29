package structure

import (
	"math"
	"testing"
)

func TestNarrativePosition(t *testing.T) {
	tests := []struct {
		name        string
		act         int
		scene       int
		totalActs   int
		scenesInAct int
		want        float64
	}{
		{"first scene of first act", 1, 1, 3, 4, 0},
		{"second scene of first act", 1, 2, 3, 4, (1.0 / 4.0) / 3.0},
		{"first scene of second act", 2, 1, 3, 4, 1.0 / 3.0},
		{"first scene of third act", 3, 1, 3, 4, 2.0 / 3.0},
		{"last scene of last act", 3, 4, 3, 4, 2.0/3.0 + (3.0/4.0)/3.0},
		{"single act single scene", 1, 1, 1, 1, 0},
		{"five acts", 4, 2, 5, 3, 3.0/5.0 + (1.0/3.0)/5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NarrativePosition(tt.act, tt.scene, tt.totalActs, tt.scenesInAct)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("NarrativePosition(%d, %d, %d, %d) = %v, want %v",
					tt.act, tt.scene, tt.totalActs, tt.scenesInAct, got, tt.want)
			}
			if got < 0 || got >= 1 {
				t.Errorf("NarrativePosition(%d, %d, %d, %d) = %v, outside [0,1)",
					tt.act, tt.scene, tt.totalActs, tt.scenesInAct, got)
			}
		})
	}
}

func TestNarrativePositionMonotonic(t *testing.T) {
	const totalActs, scenesInAct = 3, 4

	for act := 1; act <= totalActs; act++ {
		prev := -1.0
		for scene := 1; scene <= scenesInAct; scene++ {
			pos := NarrativePosition(act, scene, totalActs, scenesInAct)
			if pos <= prev {
				t.Errorf("position not increasing in scene: act %d scene %d = %v, previous %v",
					act, scene, pos, prev)
			}
			prev = pos
		}
	}

	for scene := 1; scene <= scenesInAct; scene++ {
		prev := -1.0
		for act := 1; act <= totalActs; act++ {
			pos := NarrativePosition(act, scene, totalActs, scenesInAct)
			if pos <= prev {
				t.Errorf("position not increasing in act: act %d scene %d = %v, previous %v",
					act, scene, pos, prev)
			}
			prev = pos
		}
	}
}
