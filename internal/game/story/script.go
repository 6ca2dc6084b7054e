package story

// target is where a choice leads: either another stage or an ending.
// An ending id takes precedence over the stage number.
type target struct {
	stage  int
	ending string
}

// choice is one labeled option at a stage. Order matters for rendering.
type choice struct {
	label string
	to    target
}

// rootStage is where every story starts.
const rootStage = 0

// stages is the authored story graph. Traversal is strictly forward: no
// stage is reachable twice from the root.
var stages = map[int][]choice{
	0: {
		{label: "Sacrifice your soul", to: target{stage: 1}},
		{label: "Embrace love", to: target{stage: 2}},
		{label: "Betray a friend", to: target{stage: 3}},
		{label: "Stay cold-hearted", to: target{stage: 4}},
	},
	1: {
		{label: "Fight the darkness", to: target{ending: "ending11"}},
		{label: "Run away", to: target{ending: "ending12"}},
		{label: "Accept fate", to: target{ending: "ending1"}},
		{label: "Call for help", to: target{ending: "ending2"}},
	},
	2: {
		{label: "Confess feelings", to: target{ending: "ending13"}},
		{label: "Hide emotions", to: target{ending: "ending14"}},
		{label: "Protect loved ones", to: target{ending: "ending3"}},
		{label: "Lose yourself", to: target{ending: "ending4"}},
	},
	3: {
		{label: "Backstab carefully", to: target{ending: "ending15"}},
		{label: "Go loud", to: target{ending: "ending5"}},
		{label: "Double-cross again", to: target{ending: "ending6"}},
		{label: "Repent", to: target{ending: "ending7"}},
	},
	4: {
		{label: "Freeze your heart", to: target{ending: "ending8"}},
		{label: "Build walls", to: target{ending: "ending9"}},
		{label: "Break down", to: target{ending: "ending10"}},
		{label: "Stay numb", to: target{ending: "ending8"}},
	},
}

// endings maps ending ids to their fixed narrative text. The text is
// surfaced verbatim as the terminal directive.
var endings = map[string]string{
	"ending1":  "You accepted your dark fate. The shadows consume you forever.",
	"ending2":  "Help arrived too late. Darkness claimed the night.",
	"ending3":  "Your love protected many, shining like a beacon.",
	"ending4":  "Lost in love, you forgot who you were.",
	"ending5":  "Your loud betrayal destroyed trust beyond repair.",
	"ending6":  "Double-crossing again, you sealed your doom.",
	"ending7":  "Repentance gave you a chance to start anew.",
	"ending8":  "Your cold heart kept you alive, but lonely.",
	"ending9":  "Building walls kept others out, and you in solitude.",
	"ending10": "Breaking down led to unexpected peace.",
	"ending11": "You fought the darkness until dawn, and the dawn won.",
	"ending12": "You ran until the shadows gave up the chase. So did everyone else.",
	"ending13": "Your confession hung in the air, unanswered but finally spoken.",
	"ending14": "You hid your feelings so well that even you stopped finding them.",
	"ending15": "A careful blade leaves no witnesses, only an empty room.",
}
