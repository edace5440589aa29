package structure

// BeatsFor returns the beat template sequence for an act structure, with the
// structure-type overlay beats appended. The returned slice and its beats are
// freshly allocated on every call so planners never alias catalog state.
// Unsupported act structures yield an empty base sequence.
func BeatsFor(actStructure ActStructureType, structureType NarrativeStructureType) []StoryBeat {
	var beats []StoryBeat

	switch actStructure {
	case ActThreeAct:
		beats = []StoryBeat{
			{
				Name:           "Introduction",
				Description:    "Establish the ordinary world and introduce main characters",
				Purpose:        "Set the stage and introduce the protagonist",
				TargetPosition: 0.05,
				EmotionalTone:  "Neutral or positive",
			},
			{
				Name:           "Inciting Incident",
				Description:    "Event that sets the story in motion",
				Purpose:        "Disrupt the status quo and present a challenge",
				TargetPosition: 0.12,
				EmotionalTone:  "Surprise or disturbance",
			},
			{
				Name:           "First Plot Point",
				Description:    "Protagonist accepts the challenge or is forced into it",
				Purpose:        "Transition to Act 2 and commit to the journey",
				TargetPosition: 0.25,
				EmotionalTone:  "Determination or fear",
			},
			{
				Name:           "Rising Action",
				Description:    "Protagonist faces obstacles and complications",
				Purpose:        "Build tension and develop character",
				TargetPosition: 0.45,
				EmotionalTone:  "Struggle and growth",
			},
			{
				Name:           "Midpoint",
				Description:    "Major revelation or reversal that changes the context",
				Purpose:        "Raise stakes and deepen the story",
				TargetPosition: 0.5,
				EmotionalTone:  "Revelation or surprise",
			},
			{
				Name:           "Complications",
				Description:    "New obstacles emerge, often more difficult",
				Purpose:        "Increase tension and test the protagonist",
				TargetPosition: 0.65,
				EmotionalTone:  "Mounting pressure",
			},
			{
				Name:           "Second Plot Point",
				Description:    "Final piece of information or challenge before climax",
				Purpose:        "Set up the final confrontation",
				TargetPosition: 0.75,
				EmotionalTone:  "Determination or desperation",
			},
			{
				Name:           "Climax",
				Description:    "Protagonist faces the main conflict directly",
				Purpose:        "Resolve the central conflict",
				TargetPosition: 0.88,
				EmotionalTone:  "High tension and catharsis",
			},
			{
				Name:           "Resolution",
				Description:    "Show the aftermath and tie up loose ends",
				Purpose:        "Provide closure and show change",
				TargetPosition: 0.95,
				EmotionalTone:  "Satisfaction or reflection",
			},
		}

	case ActHeroJourney:
		beats = []StoryBeat{
			{
				Name:           "Ordinary World",
				Description:    "Establish hero's normal life before the adventure",
				Purpose:        "Show what's at stake and establish contrast",
				TargetPosition: 0.05,
				EmotionalTone:  "Comfortable but incomplete",
			},
			{
				Name:           "Call to Adventure",
				Description:    "Hero is presented with a challenge or opportunity",
				Purpose:        "Present the central conflict or goal",
				TargetPosition: 0.1,
				EmotionalTone:  "Curiosity or uncertainty",
			},
			{
				Name:           "Refusal of the Call",
				Description:    "Hero initially resists the challenge",
				Purpose:        "Show reluctance and raise stakes",
				TargetPosition: 0.15,
				EmotionalTone:  "Fear or doubt",
			},
			{
				Name:           "Meeting the Mentor",
				Description:    "Hero gains guidance or assistance",
				Purpose:        "Provide tools or wisdom for the journey",
				TargetPosition: 0.2,
				EmotionalTone:  "Hope or enlightenment",
			},
			{
				Name:           "Crossing the Threshold",
				Description:    "Hero commits to the adventure",
				Purpose:        "Transition to the special world",
				TargetPosition: 0.25,
				EmotionalTone:  "Commitment or trepidation",
			},
			{
				Name:           "Tests, Allies, and Enemies",
				Description:    "Hero faces challenges and meets supporting characters",
				Purpose:        "Develop character and world",
				TargetPosition: 0.35,
				EmotionalTone:  "Growth and adaptation",
			},
			{
				Name:           "Approach to the Innermost Cave",
				Description:    "Hero prepares for major challenge",
				Purpose:        "Build tension before major confrontation",
				TargetPosition: 0.45,
				EmotionalTone:  "Anticipation or fear",
			},
			{
				Name:           "Ordeal",
				Description:    "Hero faces a major crisis or challenge",
				Purpose:        "Test the hero's resolve and abilities",
				TargetPosition: 0.5,
				EmotionalTone:  "Struggle and revelation",
			},
			{
				Name:           "Reward",
				Description:    "Hero gains something from the ordeal",
				Purpose:        "Provide a moment of achievement",
				TargetPosition: 0.6,
				EmotionalTone:  "Triumph or relief",
			},
			{
				Name:           "The Road Back",
				Description:    "Hero begins the return journey",
				Purpose:        "Create urgency to resolve remaining conflicts",
				TargetPosition: 0.7,
				EmotionalTone:  "Determination or anxiety",
			},
			{
				Name:           "Resurrection",
				Description:    "Hero faces final and most dangerous challenge",
				Purpose:        "Provide ultimate test and transformation",
				TargetPosition: 0.85,
				EmotionalTone:  "Sacrifice and transformation",
			},
			{
				Name:           "Return with the Elixir",
				Description:    "Hero returns with something to benefit the ordinary world",
				Purpose:        "Show growth and provide closure",
				TargetPosition: 0.95,
				EmotionalTone:  "Fulfillment and wisdom",
			},
		}

	case ActFiveAct:
		beats = []StoryBeat{
			{
				Name:           "Exposition",
				Description:    "Introduce the setting, characters, and initial situation",
				Purpose:        "Establish the world and characters",
				TargetPosition: 0.1,
				EmotionalTone:  "Neutral or establishing",
			},
			{
				Name:           "Inciting Incident",
				Description:    "Event that sets the story in motion",
				Purpose:        "Begin the central conflict",
				TargetPosition: 0.2,
				EmotionalTone:  "Disruption or call to action",
			},
			{
				Name:           "Rising Complications",
				Description:    "Protagonist faces increasing challenges",
				Purpose:        "Build tension and develop character",
				TargetPosition: 0.35,
				EmotionalTone:  "Struggle and determination",
			},
			{
				Name:           "Climax",
				Description:    "Turning point of the story, highest tension",
				Purpose:        "Present the major confrontation or decision",
				TargetPosition: 0.5,
				EmotionalTone:  "Peak tension and revelation",
			},
			{
				Name:           "Falling Action",
				Description:    "Consequences of the climax unfold",
				Purpose:        "Show results of climactic choices",
				TargetPosition: 0.7,
				EmotionalTone:  "Impact and processing",
			},
			{
				Name:           "Final Suspense",
				Description:    "Last moment of uncertainty before resolution",
				Purpose:        "Create final tension",
				TargetPosition: 0.8,
				EmotionalTone:  "Anticipation or anxiety",
			},
			{
				Name:           "Resolution",
				Description:    "Final outcome is revealed",
				Purpose:        "Provide closure to central conflict",
				TargetPosition: 0.9,
				EmotionalTone:  "Release of tension",
			},
			{
				Name:           "Denouement",
				Description:    "Tying up loose ends and showing new normal",
				Purpose:        "Provide complete closure",
				TargetPosition: 0.95,
				EmotionalTone:  "Satisfaction or reflection",
			},
		}

	case ActKishotenketsu:
		beats = []StoryBeat{
			{
				Name:           "Ki (Introduction)",
				Description:    "Establish the foundation of the story",
				Purpose:        "Introduce characters, setting, and situation",
				TargetPosition: 0.2,
				EmotionalTone:  "Establishment and familiarity",
			},
			{
				Name:           "Sho (Development)",
				Description:    "Develop the characters and situation",
				Purpose:        "Deepen understanding and build complexity",
				TargetPosition: 0.4,
				EmotionalTone:  "Growth and exploration",
			},
			{
				Name:           "Ten (Twist)",
				Description:    "Introduce an unexpected element or perspective",
				Purpose:        "Challenge expectations and create cognitive shift",
				TargetPosition: 0.7,
				EmotionalTone:  "Surprise or revelation",
			},
			{
				Name:           "Ketsu (Conclusion)",
				Description:    "Bring elements together for meaningful resolution",
				Purpose:        "Provide resolution that reveals new meaning",
				TargetPosition: 0.9,
				EmotionalTone:  "Harmony or realization",
			},
		}

	case ActSevenPoint:
		beats = []StoryBeat{
			{
				Name:           "Hook",
				Description:    "Capture interest and establish normal world",
				Purpose:        "Engage audience and set baseline",
				TargetPosition: 0.05,
				EmotionalTone:  "Curiosity or comfort",
			},
			{
				Name:           "Plot Turn 1",
				Description:    "Event that propels protagonist into the story",
				Purpose:        "Commit character to the journey",
				TargetPosition: 0.14,
				EmotionalTone:  "Disruption or challenge",
			},
			{
				Name:           "Pinch Point 1",
				Description:    "First major pressure point, often showing antagonistic force",
				Purpose:        "Reveal opposition and raise stakes",
				TargetPosition: 0.25,
				EmotionalTone:  "Threat or pressure",
			},
			{
				Name:           "Midpoint",
				Description:    "Major shift from reaction to action",
				Purpose:        "Transform character's approach",
				TargetPosition: 0.5,
				EmotionalTone:  "Determination or revelation",
			},
			{
				Name:           "Pinch Point 2",
				Description:    "Second major pressure point, usually worse than first",
				Purpose:        "Create maximum pressure",
				TargetPosition: 0.62,
				EmotionalTone:  "Crisis or desperation",
			},
			{
				Name:           "Plot Turn 2",
				Description:    "Final discovery or decision that enables resolution",
				Purpose:        "Equip protagonist for final confrontation",
				TargetPosition: 0.75,
				EmotionalTone:  "Realization or preparation",
			},
			{
				Name:           "Resolution",
				Description:    "Final confrontation and conclusion",
				Purpose:        "Resolve central conflict and show transformation",
				TargetPosition: 0.9,
				EmotionalTone:  "Climax and closure",
			},
		}
	}

	// Structure-type overlays are appended, never interleaved.
	switch structureType {
	case StructureNonLinear:
		beats = append(beats,
			StoryBeat{
				Name:           "Timeline Anchor",
				Description:    "Key event that grounds the non-linear structure",
				Purpose:        "Provide reference point for audience",
				TargetPosition: 0.3,
				EmotionalTone:  "Orientation",
			},
			StoryBeat{
				Name:           "Convergence Point",
				Description:    "Point where narrative threads begin to connect",
				Purpose:        "Build toward cohesive meaning",
				TargetPosition: 0.7,
				EmotionalTone:  "Realization or connection",
			},
		)
	case StructureParallel:
		beats = append(beats,
			StoryBeat{
				Name:           "Parallel Introduction",
				Description:    "Establish secondary narrative thread",
				Purpose:        "Create contrast or complementary story",
				TargetPosition: 0.15,
				EmotionalTone:  "Contrast or harmony",
			},
			StoryBeat{
				Name:           "Thread Intersection",
				Description:    "Point where parallel narratives interact",
				Purpose:        "Create meaningful connection",
				TargetPosition: 0.55,
				EmotionalTone:  "Significance or revelation",
			},
		)
	case StructureCircular:
		beats = append(beats,
			StoryBeat{
				Name:           "Foreshadowing Echo",
				Description:    "Early element that will be repeated at the end",
				Purpose:        "Plant seeds for circular resolution",
				TargetPosition: 0.15,
				EmotionalTone:  "Subtle significance",
			},
			StoryBeat{
				Name:           "Circular Return",
				Description:    "Return to beginning with new context",
				Purpose:        "Complete the circle with transformation",
				TargetPosition: 0.95,
				EmotionalTone:  "Recognition or transformation",
			},
		)
	}

	return beats
}
