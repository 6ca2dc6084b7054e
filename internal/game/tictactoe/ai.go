package tictactoe

import "math/rand"

// chooseMove selects the AI's move for the given board and difficulty.
// The board must have at least one empty cell and no winner.
func chooseMove(b Board, d Difficulty) int {
	switch d {
	case Medium:
		return heuristicMove(b)
	case Hard:
		return bestMove(b)
	default:
		return randomMove(b)
	}
}

// randomMove picks uniformly among the empty cells.
func randomMove(b Board) int {
	empties := b.Empties()
	return empties[rand.Intn(len(empties))]
}

// heuristicMove is the medium tier: take the first immediately winning move
// (ascending cell order), else block the opponent's first immediate win,
// else fall back to a random move. Depth-1 only; a careful human can beat
// it, which is the intended tuning.
func heuristicMove(b Board) int {
	for _, i := range b.Empties() {
		nb := b
		nb[i] = AI
		if nb.Wins(AI) {
			return i
		}
	}
	for _, i := range b.Empties() {
		nb := b
		nb[i] = Human
		if nb.Wins(Human) {
			return i
		}
	}
	return randomMove(b)
}

// bestMove is the hard tier: exhaustive minimax over the remaining game
// tree with the AI maximizing. Ties are broken by the ascending traversal
// order, so the choice is deterministic for a given board.
func bestMove(b Board) int {
	best := -2
	move := -1
	for _, i := range b.Empties() {
		nb := b
		nb[i] = AI
		if score := minimax(nb, false); score > best {
			best = score
			move = i
		}
	}
	return move
}

// minimax scores a position: +1 AI win, -1 human win, 0 draw. Each
// recursive call receives its own board copy, so there is no undo step to
// get wrong.
func minimax(b Board, maximizing bool) int {
	switch {
	case b.Wins(AI):
		return 1
	case b.Wins(Human):
		return -1
	case b.Full():
		return 0
	}

	if maximizing {
		best := -2
		for _, i := range b.Empties() {
			nb := b
			nb[i] = AI
			if score := minimax(nb, false); score > best {
				best = score
			}
		}
		return best
	}

	best := 2
	for _, i := range b.Empties() {
		nb := b
		nb[i] = Human
		if score := minimax(nb, true); score < best {
			best = score
		}
	}
	return best
}
