package session

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vampirenirmal/storyloom/internal/agent"
	"github.com/vampirenirmal/storyloom/internal/memory"
	"github.com/vampirenirmal/storyloom/internal/structure"
)

// StoryBible is the YAML seed for a session: structure choices, the main
// plot, the cast, and planned structural elements.
type StoryBible struct {
	Title string `yaml:"title"`

	Structure struct {
		Type         structure.NarrativeStructureType `yaml:"type"`
		ActStructure structure.ActStructureType       `yaml:"act_structure"`
		NumActs      int                              `yaml:"num_acts"`
		Complexity   structure.ComplexityLevel        `yaml:"complexity"`
	} `yaml:"structure"`

	MainPlot structure.MainPlot `yaml:"main_plot"`

	Characters []BibleCharacter `yaml:"characters"`

	Threads   []structure.PlotThread        `yaml:"threads"`
	Subplots  []structure.SubplotDefinition `yaml:"subplots"`
	Reversals []structure.PlotReversal      `yaml:"reversals"`
	Devices   []structure.NarrativeDevice   `yaml:"devices"`
	TimeJumps []structure.TimeJump          `yaml:"time_jumps"`
}

// BibleCharacter is one cast entry in the bible.
type BibleCharacter struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Fears   []string `yaml:"fears"`
	Desires []string `yaml:"desires"`
}

// LoadBible parses a story bible from a YAML file.
func LoadBible(path string) (*StoryBible, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading story bible: %w", err)
	}
	return ParseBible(data)
}

// ParseBible parses a story bible from YAML bytes.
func ParseBible(data []byte) (*StoryBible, error) {
	var bible StoryBible
	if err := yaml.Unmarshal(data, &bible); err != nil {
		return nil, fmt.Errorf("parsing story bible: %w", err)
	}

	if bible.Structure.Type == "" {
		bible.Structure.Type = structure.StructureLinear
	}
	if bible.Structure.ActStructure == "" {
		bible.Structure.ActStructure = structure.ActThreeAct
	}
	if bible.Structure.NumActs == 0 {
		bible.Structure.NumActs = 3
	}
	if bible.Structure.Complexity == "" {
		bible.Structure.Complexity = structure.ComplexityModerate
	}

	return &bible, nil
}

// FromBible builds a fully seeded session from a story bible. Out-of-range
// positions in any planned element surface as structure range errors.
func FromBible(bible *StoryBible, client agent.AIClient, opts ...Option) (*Session, error) {
	story, err := structure.NewStoryPlanner(structure.PlannerOptions{
		StructureType: bible.Structure.Type,
		ActStructure:  bible.Structure.ActStructure,
		NumActs:       bible.Structure.NumActs,
		Complexity:    bible.Structure.Complexity,
	})
	if err != nil {
		return nil, fmt.Errorf("building story planner: %w", err)
	}

	if bible.MainPlot != (structure.MainPlot{}) {
		story.SetMainPlot(bible.MainPlot)
	}

	for i := range bible.Threads {
		thread := bible.Threads[i]
		if err := story.AddPlotThread(&thread); err != nil {
			return nil, fmt.Errorf("thread %q: %w", thread.Name, err)
		}
	}
	for i := range bible.Subplots {
		subplot := bible.Subplots[i]
		if err := story.AddSubplot(&subplot); err != nil {
			return nil, fmt.Errorf("subplot %q: %w", subplot.Name, err)
		}
	}
	for i := range bible.Reversals {
		reversal := bible.Reversals[i]
		if err := story.AddPlotReversal(&reversal); err != nil {
			return nil, fmt.Errorf("reversal %q: %w", reversal.Description, err)
		}
	}
	for _, device := range bible.Devices {
		if err := story.AddNarrativeDevice(device); err != nil {
			return nil, fmt.Errorf("device %q: %w", device.Name, err)
		}
	}
	for _, jump := range bible.TimeJumps {
		if err := story.AddTimeJump(jump); err != nil {
			return nil, fmt.Errorf("time jump %q: %w", jump.Description, err)
		}
	}

	mem := memory.NewInMemoryStore()
	for _, c := range bible.Characters {
		id := c.ID
		if id == "" {
			id = c.Name
		}
		mem.AddCharacter(&memory.CharacterProfile{
			ID:      id,
			Name:    c.Name,
			Fears:   c.Fears,
			Desires: c.Desires,
		})
	}

	return New(bible.Title, story, mem, client, opts...), nil
}
