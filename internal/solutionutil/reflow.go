package solutionutil

import (
	"sort"

	"github.com/noah-isme/defense-scheduler/internal/domain"
)

// ReflowEarliestFirst iterates assignments in slot order and, for each,
// tries to move it to a strictly earlier (room,slot) cell that keeps all
// of its instructors free. A move is only ever applied when the new slot
// index is strictly smaller, so Σ slot_index can only decrease or stay
// the same across a pass (P8).
func ReflowEarliestFirst(snapshot *domain.Snapshot, solution []domain.Assignment) (result []domain.Assignment, moved int) {
	result = copySolution(solution)
	slots := snapshot.SortedTimeslots()
	rooms := snapshot.ClassroomIDs()
	occ := buildOccupancy(result)

	order := make([]int, len(result))
	for i := range result {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return snapshot.SlotIndex(result[order[i]].TimeslotID) < snapshot.SlotIndex(result[order[j]].TimeslotID)
	})

	for _, idx := range order {
		a := result[idx]
		currentIdx := snapshot.SlotIndex(a.TimeslotID)

		for _, slot := range slots {
			si := snapshot.SlotIndex(slot.ID)
			if si >= currentIdx {
				break
			}
			for _, room := range rooms {
				if room == a.ClassroomID && slot.ID == a.TimeslotID {
					continue
				}
				if !occ.cellFree(room, slot.ID) {
					continue
				}
				if !occ.instructorsFree(a.InstructorIDs, slot.ID) {
					continue
				}
				occ.release(a)
				a.ClassroomID = room
				a.TimeslotID = slot.ID
				occ.reserve(a)
				result[idx] = a
				moved++
				currentIdx = si
				break
			}
		}
	}

	return result, moved
}
