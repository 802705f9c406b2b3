package solutionutil

import (
	"sort"

	"github.com/noah-isme/defense-scheduler/internal/domain"
)

// Dedup keeps at most one assignment per project ID (S1), preferring the
// earliest (slot_index, room_id) on ties. Idempotent: applying it twice
// yields the same result as applying it once (P7).
func Dedup(snapshot *domain.Snapshot, solution []domain.Assignment) (result []domain.Assignment, removed int) {
	byProject := map[int][]domain.Assignment{}
	order := make([]int, 0, len(solution))
	for _, a := range solution {
		if _, seen := byProject[a.ProjectID]; !seen {
			order = append(order, a.ProjectID)
		}
		byProject[a.ProjectID] = append(byProject[a.ProjectID], a)
	}

	result = make([]domain.Assignment, 0, len(order))
	for _, pid := range order {
		candidates := byProject[pid]
		if len(candidates) == 1 {
			result = append(result, candidates[0])
			continue
		}
		removed += len(candidates) - 1
		best := candidates[0]
		bestSlot := snapshot.SlotIndex(best.TimeslotID)
		for _, c := range candidates[1:] {
			slotIdx := snapshot.SlotIndex(c.TimeslotID)
			if slotIdx < bestSlot || (slotIdx == bestSlot && c.ClassroomID < best.ClassroomID) {
				best = c
				bestSlot = slotIdx
			}
		}
		result = append(result, best)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ProjectID < result[j].ProjectID
	})

	return result, removed
}
