package structure

import (
	"log/slog"
	"math"
	"sort"
)

// Default tolerances for position-based queries.
const (
	DefaultBeatTolerance     = 0.05
	DefaultSubplotTolerance  = 0.1
	DefaultReversalTolerance = 0.05
)

// PlannerOptions configures a StoryPlanner.
type PlannerOptions struct {
	StructureType NarrativeStructureType
	ActStructure  ActStructureType
	NumActs       int `validate:"gte=1,lte=7"`
	Complexity    ComplexityLevel

	// Beats overrides the catalog when non-empty.
	Beats []StoryBeat `validate:"dive"`
}

// StoryPlanner is the aggregate root for one production's narrative
// requirements: story beats, plot threads, subplots, and reversals, plus
// the main-plot skeleton. It holds requirement definitions only; the scene
// progress log lives in the scene planner.
//
// A planner is owned by a single session and is not safe for concurrent
// mutation; callers serialize access (see session.Session).
type StoryPlanner struct {
	structureType NarrativeStructureType
	actStructure  ActStructureType
	numActs       int
	complexity    ComplexityLevel

	mainPlot  MainPlot
	beats     []StoryBeat
	threads   []*PlotThread
	subplots  []*SubplotDefinition
	reversals []*PlotReversal
	devices   []NarrativeDevice
	timeJumps []TimeJump
}

// NewStoryPlanner builds a planner, seeding its beats from the catalog
// unless opts.Beats supplies them explicitly.
func NewStoryPlanner(opts PlannerOptions) (*StoryPlanner, error) {
	if err := checkRanges("planner options", opts); err != nil {
		return nil, err
	}

	beats := opts.Beats
	if len(beats) == 0 {
		beats = BeatsFor(opts.ActStructure, opts.StructureType)
	}

	p := &StoryPlanner{
		structureType: opts.StructureType,
		actStructure:  opts.ActStructure,
		numActs:       opts.NumActs,
		complexity:    opts.Complexity,
		beats:         beats,
		mainPlot: MainPlot{
			Premise:         "Central premise of the story",
			CentralConflict: "Main conflict driving the narrative",
			ProtagonistGoal: "What the protagonist aims to achieve",
			Stakes:          "What's at risk if the protagonist fails",
			Theme:           "Core thematic elements explored",
			ResolutionType:  "How the conflict resolves",
		},
	}

	slog.Debug("Story planner initialized",
		"structure_type", opts.StructureType,
		"act_structure", opts.ActStructure,
		"num_acts", opts.NumActs,
		"beat_count", len(beats),
	)

	return p, nil
}

func (p *StoryPlanner) StructureType() NarrativeStructureType { return p.structureType }
func (p *StoryPlanner) ActStructure() ActStructureType        { return p.actStructure }
func (p *StoryPlanner) NumActs() int                          { return p.numActs }
func (p *StoryPlanner) Complexity() ComplexityLevel           { return p.complexity }

// MainPlot returns the main-plot skeleton.
func (p *StoryPlanner) MainPlot() MainPlot { return p.mainPlot }

// SetMainPlot replaces the main-plot skeleton. The slots are free text and
// are typically filled by the generation collaborator.
func (p *StoryPlanner) SetMainPlot(mp MainPlot) { p.mainPlot = mp }

// Beats returns the planner's beats in template order.
func (p *StoryPlanner) Beats() []StoryBeat { return p.beats }

// PlotThreads returns all registered plot threads.
func (p *StoryPlanner) PlotThreads() []*PlotThread { return p.threads }

// Subplots returns all registered subplots.
func (p *StoryPlanner) Subplots() []*SubplotDefinition { return p.subplots }

// Reversals returns all registered plot reversals.
func (p *StoryPlanner) Reversals() []*PlotReversal { return p.reversals }

// ThreadByName resolves a name-based thread reference. Connections between
// threads store plain names; this is the only way they are resolved.
func (p *StoryPlanner) ThreadByName(name string) (*PlotThread, bool) {
	for _, t := range p.threads {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// AddPlotThread appends a thread. No uniqueness check: registering the same
// name twice yields two entries, and name lookups resolve to the first.
func (p *StoryPlanner) AddPlotThread(thread *PlotThread) error {
	if err := checkRanges("plot thread", thread); err != nil {
		return err
	}
	if thread.Status == "" {
		thread.Status = StatusActive
	}
	p.threads = append(p.threads, thread)
	return nil
}

// AddSubplot appends a subplot definition.
func (p *StoryPlanner) AddSubplot(subplot *SubplotDefinition) error {
	if err := checkRanges("subplot", subplot); err != nil {
		return err
	}
	if subplot.Status == "" {
		subplot.Status = StatusActive
	}
	p.subplots = append(p.subplots, subplot)
	return nil
}

// AddPlotReversal appends a planned reversal.
func (p *StoryPlanner) AddPlotReversal(reversal *PlotReversal) error {
	if err := checkRanges("reversal", reversal); err != nil {
		return err
	}
	p.reversals = append(p.reversals, reversal)
	return nil
}

// AddNarrativeDevice registers a device active over a position window.
func (p *StoryPlanner) AddNarrativeDevice(device NarrativeDevice) error {
	if err := checkRanges("narrative device", device); err != nil {
		return err
	}
	p.devices = append(p.devices, device)
	return nil
}

// AddTimeJump registers a narrative-to-chronological position mapping used
// by non-linear structures.
func (p *StoryPlanner) AddTimeJump(jump TimeJump) error {
	if err := checkRanges("time jump", jump); err != nil {
		return err
	}
	p.timeJumps = append(p.timeJumps, jump)
	return nil
}

// UpdateStoryBeat records a scene against the named beat and sets its
// completion flag. The scene ID is appended unconditionally, so repeated
// calls with the same ID accumulate duplicates; only the subplot path
// dedups (see sceneplan.HandleSceneCompletion). Returns false when no beat
// carries the name.
func (p *StoryPlanner) UpdateStoryBeat(name, sceneID string, complete bool) bool {
	for i := range p.beats {
		if p.beats[i].Name == name {
			p.beats[i].SceneIDs = append(p.beats[i].SceneIDs, sceneID)
			p.beats[i].Complete = complete
			slog.Debug("Story beat updated",
				"beat", name,
				"scene_id", sceneID,
				"complete", complete,
			)
			return true
		}
	}
	return false
}

// StoryBeatByPosition returns the beat whose target position is nearest to
// position within tolerance, or (nil, false) when none qualifies. The
// comparison is strict, so ties resolve to the beat encountered first in
// template order.
func (p *StoryPlanner) StoryBeatByPosition(position, tolerance float64) (*StoryBeat, bool) {
	var closest *StoryBeat
	closestDistance := math.Inf(1)

	for i := range p.beats {
		distance := math.Abs(p.beats[i].TargetPosition - position)
		if distance < closestDistance && distance <= tolerance {
			closest = &p.beats[i]
			closestDistance = distance
		}
	}

	return closest, closest != nil
}

// NextIncompleteBeat returns the earliest beat by target position that has
// not been completed, or (nil, false) when every beat is done.
func (p *StoryPlanner) NextIncompleteBeat() (*StoryBeat, bool) {
	order := make([]int, len(p.beats))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return p.beats[order[a]].TargetPosition < p.beats[order[b]].TargetPosition
	})

	for _, i := range order {
		if !p.beats[i].Complete {
			return &p.beats[i], true
		}
	}
	return nil, false
}

// ActiveSubplots returns subplots that are unresolved and have at least one
// integration point within tolerance of position. Repeated calls at the
// same position are idempotent.
func (p *StoryPlanner) ActiveSubplots(position, tolerance float64) []*SubplotDefinition {
	var active []*SubplotDefinition
	for _, subplot := range p.subplots {
		if subplot.Status == StatusResolved {
			continue
		}
		for _, point := range subplot.IntegrationPoints {
			if math.Abs(point-position) <= tolerance {
				active = append(active, subplot)
				break
			}
		}
	}
	return active
}

// PendingReversals returns incomplete reversals whose target position lies
// within tolerance of position.
func (p *StoryPlanner) PendingReversals(position, tolerance float64) []*PlotReversal {
	var pending []*PlotReversal
	for _, reversal := range p.reversals {
		if !reversal.Complete && math.Abs(reversal.TargetPosition-position) <= tolerance {
			pending = append(pending, reversal)
		}
	}
	return pending
}

// NecessaryStoryElements bundles every obligation the narrative carries at
// a position: the current beat, active subplots, pending reversals, and
// devices whose window covers the position, plus structure-specific extras
// for non-linear and parallel narratives.
func (p *StoryPlanner) NecessaryStoryElements(position float64) StoryElements {
	beat, _ := p.StoryBeatByPosition(position, DefaultBeatTolerance)

	elements := StoryElements{
		CurrentBeat:      beat,
		ActiveSubplots:   p.ActiveSubplots(position, DefaultSubplotTolerance),
		PendingReversals: p.PendingReversals(position, DefaultReversalTolerance),
		Position:         position,
		NarrativeDevices: p.activeDevices(position),
	}

	switch p.structureType {
	case StructureNonLinear:
		elements.Timeline = &TimelineRequirements{
			Connections:           p.timeJumpsAt(position),
			ChronologicalPosition: p.ChronologicalPosition(position),
		}
	case StructureParallel:
		active := p.activeThreadNames()
		elements.Threads = &ThreadRequirements{
			ActiveThreads: active,
			ThreadFocus:   threadFocus(position, active),
		}
	}

	return elements
}

func (p *StoryPlanner) activeDevices(position float64) []NarrativeDevice {
	var active []NarrativeDevice
	for _, device := range p.devices {
		if device.StartPosition <= position && position <= device.EndPosition {
			active = append(active, device)
		}
	}
	return active
}

func (p *StoryPlanner) timeJumpsAt(position float64) []TimeJump {
	var jumps []TimeJump
	for _, jump := range p.timeJumps {
		if jump.NarrativePosition == position {
			jumps = append(jumps, jump)
		}
	}
	return jumps
}

// ChronologicalPosition remaps a narrative position through the time-jump
// table. Positions with no registered jump map to themselves.
func (p *StoryPlanner) ChronologicalPosition(position float64) float64 {
	for _, jump := range p.timeJumps {
		if jump.NarrativePosition == position {
			return jump.ChronologicalPosition
		}
	}
	return position
}

func (p *StoryPlanner) activeThreadNames() []string {
	var names []string
	for _, thread := range p.threads {
		if thread.Status == StatusActive {
			names = append(names, thread.Name)
		}
	}
	return names
}

// threadFocus picks a deterministic round-robin focus among active threads
// keyed off the position. Not a semantic choice, just an alternation.
func threadFocus(position float64, activeThreads []string) string {
	if len(activeThreads) == 0 {
		return ""
	}
	return activeThreads[int(position*10)%len(activeThreads)]
}
