package algorithm

import (
	"math/rand"

	"github.com/noah-isme/defense-scheduler/internal/domain"
)

// swapCells exchanges the (room,slot) cells of two randomly chosen
// assignments. It is the cheapest move every metaheuristic in this
// package perturbs with, differing only in how the result is accepted.
func swapCells(solution []domain.Assignment, rng *rand.Rand) []domain.Assignment {
	if len(solution) < 2 {
		return solution
	}
	out := make([]domain.Assignment, len(solution))
	copy(out, solution)
	i, j := rng.Intn(len(out)), rng.Intn(len(out))
	if i == j {
		return out
	}
	out[i].ClassroomID, out[j].ClassroomID = out[j].ClassroomID, out[i].ClassroomID
	out[i].TimeslotID, out[j].TimeslotID = out[j].TimeslotID, out[i].TimeslotID
	return out
}

// relocateOne moves a single random assignment onto the cell of another
// randomly chosen assignment (cheap to sample, keeps the move local to
// in-use rooms/slots). The cell is occupied, so the move can create a
// collision that the fitness then penalises.
func relocateOne(solution []domain.Assignment, rng *rand.Rand) []domain.Assignment {
	if len(solution) == 0 {
		return solution
	}
	out := make([]domain.Assignment, len(solution))
	copy(out, solution)
	target := rng.Intn(len(out))
	donor := rng.Intn(len(out))
	out[target].ClassroomID = out[donor].ClassroomID
	out[target].TimeslotID = out[donor].TimeslotID
	return out
}

// shuffleJury swaps the non-responsible tail of two assignments' jury
// lists, a move specific to population/agent encodings that want to
// explore jury composition rather than only cell placement.
func shuffleJury(solution []domain.Assignment, rng *rand.Rand) []domain.Assignment {
	if len(solution) < 2 {
		return solution
	}
	out := make([]domain.Assignment, len(solution))
	copy(out, solution)
	i, j := rng.Intn(len(out)), rng.Intn(len(out))
	if i == j || len(out[i].InstructorIDs) < 2 || len(out[j].InstructorIDs) < 2 {
		return out
	}
	tailI := append([]int(nil), out[i].InstructorIDs[1:]...)
	tailJ := append([]int(nil), out[j].InstructorIDs[1:]...)
	out[i].InstructorIDs = append([]int{out[i].InstructorIDs[0]}, tailJ...)
	out[j].InstructorIDs = append([]int{out[j].InstructorIDs[0]}, tailI...)
	return out
}
