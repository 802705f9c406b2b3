package algorithm

import (
	"sort"

	"github.com/noah-isme/defense-scheduler/internal/domain"
)

// PairAdjacentInstructors implements strategic pairing (§4.4 step 5): for
// each classroom, instructors whose blocks of consecutive slots sit next
// to one another are added reciprocally to each other's jury, provided
// the slot doesn't already list them and the instructor is not already
// booked in that slot; jury size is not checked. It runs as its own pass — grounded
// on the original's standalone jury-matching service rather than being
// inlined per strategy — so every strategy that calls BuildBaseSolution
// shares identical pairing behavior.
//
// Pairing only fires between two *different* responsible instructors
// (respA == respB is skipped below), so a thesis session whose neighbors
// all share its own responsible instructor is never paired here. The
// orchestrator closes that gap once its post-processing loop has run,
// with solutionutil.BackfillThesisJury, which enforces the A3 minimum jury
// size regardless of adjacency.
func PairAdjacentInstructors(snapshot *domain.Snapshot, solution []domain.Assignment) []domain.Assignment {
	result := make([]domain.Assignment, len(solution))
	copy(result, solution)

	byRoom := map[int][]int{}
	for i, a := range result {
		byRoom[a.ClassroomID] = append(byRoom[a.ClassroomID], i)
	}

	booked := map[instructorSlot]struct{}{}
	for _, a := range result {
		for _, iid := range a.InstructorIDs {
			booked[instructorSlot{iid, a.TimeslotID}] = struct{}{}
		}
	}

	rooms := make([]int, 0, len(byRoom))
	for r := range byRoom {
		rooms = append(rooms, r)
	}
	sort.Ints(rooms)

	for _, room := range rooms {
		indices := byRoom[room]
		sort.Slice(indices, func(i, j int) bool {
			return snapshot.SlotIndex(result[indices[i]].TimeslotID) < snapshot.SlotIndex(result[indices[j]].TimeslotID)
		})

		for k := 0; k+1 < len(indices); k++ {
			a, b := result[indices[k]], result[indices[k+1]]
			if snapshot.SlotIndex(b.TimeslotID)-snapshot.SlotIndex(a.TimeslotID) != 1 {
				continue
			}
			respA, respB := responsibleOf(a), responsibleOf(b)
			if respA == 0 || respB == 0 || respA == respB {
				continue
			}

			if !hasInstructor(a.InstructorIDs, respB) {
				if _, taken := booked[instructorSlot{respB, a.TimeslotID}]; !taken {
					a.InstructorIDs = append(a.InstructorIDs, respB)
					booked[instructorSlot{respB, a.TimeslotID}] = struct{}{}
					result[indices[k]] = a
				}
			}
			if !hasInstructor(b.InstructorIDs, respA) {
				if _, taken := booked[instructorSlot{respA, b.TimeslotID}]; !taken {
					b.InstructorIDs = append(b.InstructorIDs, respA)
					booked[instructorSlot{respA, b.TimeslotID}] = struct{}{}
					result[indices[k+1]] = b
				}
			}
		}
	}

	return result
}

type instructorSlot struct {
	instructor int
	slot       int
}

func responsibleOf(a domain.Assignment) int {
	if len(a.InstructorIDs) == 0 {
		return 0
	}
	return a.InstructorIDs[0]
}

func hasInstructor(ids []int, target int) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
