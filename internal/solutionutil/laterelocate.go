package solutionutil

import (
	"sort"

	"github.com/noah-isme/defense-scheduler/internal/domain"
)

// RelocateLateSlots attempts to move each assignment using a slot whose
// start is ≥ 16:30 into the earliest feasible (room,slot) pair with all
// of its instructors free. An assignment that cannot be moved is left in
// place and counted as flagged rather than dropped (B2).
func RelocateLateSlots(snapshot *domain.Snapshot, solution []domain.Assignment) (result []domain.Assignment, relocated, flagged int) {
	result = copySolution(solution)
	slots := snapshot.SortedTimeslots()
	rooms := snapshot.ClassroomIDs()
	occ := buildOccupancy(result)

	lateIdx := make([]int, 0)
	for i, a := range result {
		if snapshot.IsLate(a.TimeslotID) {
			lateIdx = append(lateIdx, i)
		}
	}
	sort.Slice(lateIdx, func(i, j int) bool {
		return snapshot.SlotIndex(result[lateIdx[i]].TimeslotID) < snapshot.SlotIndex(result[lateIdx[j]].TimeslotID)
	})

	for _, idx := range lateIdx {
		a := result[idx]
		moved := false
		for _, slot := range slots {
			if snapshot.IsLate(slot.ID) {
				continue
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
				relocated++
				moved = true
				break
			}
			if moved {
				break
			}
		}
		if !moved {
			flagged++
		}
	}

	return result, relocated, flagged
}
