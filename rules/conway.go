package rules

// Transition names what happens to a single cell between two generations.
type Transition int

const (
	// Dormant is a dead cell that stays dead.
	Dormant Transition = iota
	// Underpopulation is a live cell dying with fewer than two live neighbors.
	Underpopulation
	// Overpopulation is a live cell dying with more than three live neighbors.
	Overpopulation
	// Survival is a live cell with two or three live neighbors.
	Survival
	// Reproduction is a dead cell with exactly three live neighbors.
	Reproduction
)

var transitionNames = [...]string{
	Dormant:         "dormant",
	Underpopulation: "underpopulation",
	Overpopulation:  "overpopulation",
	Survival:        "survival",
	Reproduction:    "reproduction",
}

func (t Transition) String() string {
	if t < 0 || int(t) >= len(transitionNames) {
		return "unknown"
	}
	return transitionNames[t]
}

// Alive reports whether the cell is alive after the transition.
func (t Transition) Alive() bool {
	return t == Survival || t == Reproduction
}

// Classify applies the standard B3/S23 rule to a cell and names the outcome.
func Classify(neighbors int, alive bool) Transition {
	switch next := ApplyConwayRules(neighbors, alive); {
	case next && alive:
		return Survival
	case next:
		return Reproduction
	case !alive:
		return Dormant
	case neighbors < 2:
		return Underpopulation
	default:
		return Overpopulation
	}
}

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}
