package solutionutil

import (
	"sort"

	"github.com/noah-isme/defense-scheduler/internal/domain"
)

// Compact moves occupied slots forward within each classroom to close
// internal gaps, then makes a second cross-classroom pass picking up any
// gaps the per-classroom pass could not close because of instructor
// conflicts. A move is only ever applied when it cannot create a new
// conflict. If the two passes together would raise any classroom's gap
// count, the input is returned unchanged with a move count of 0, so
// per-classroom gap counts never increase (P9).
func Compact(snapshot *domain.Snapshot, solution []domain.Assignment) (result []domain.Assignment, moved int) {
	result = copySolution(solution)
	movedPerRoom := compactPerClassroom(snapshot, result)
	movedGlobal := compactGlobal(snapshot, result)
	before := DetectGaps(snapshot, solution).ByClassroom
	for room, gaps := range DetectGaps(snapshot, result).ByClassroom {
		if gaps > before[room] {
			return copySolution(solution), 0
		}
	}
	return result, movedPerRoom + movedGlobal
}

// compactPerClassroom mutates solution in place and returns the move count.
func compactPerClassroom(snapshot *domain.Snapshot, solution []domain.Assignment) int {
	slots := snapshot.SortedTimeslots()
	occ := buildOccupancy(solution)

	byRoom := map[int][]int{} // room -> indices into solution
	for i, a := range solution {
		byRoom[a.ClassroomID] = append(byRoom[a.ClassroomID], i)
	}

	rooms := make([]int, 0, len(byRoom))
	for r := range byRoom {
		rooms = append(rooms, r)
	}
	sort.Ints(rooms)

	moved := 0
	for _, room := range rooms {
		indices := byRoom[room]
		sort.Slice(indices, func(i, j int) bool {
			return snapshot.SlotIndex(solution[indices[i]].TimeslotID) < snapshot.SlotIndex(solution[indices[j]].TimeslotID)
		})

		cursor := 0
		for _, idx := range indices {
			a := solution[idx]
			placed := false
			for ; cursor < len(slots); cursor++ {
				targetSlotID := slots[cursor].ID
				if targetSlotID == a.TimeslotID {
					cursor++
					placed = true
					break
				}
				if !occ.cellFree(room, targetSlotID) {
					continue
				}
				if !occ.instructorsFree(a.InstructorIDs, targetSlotID) {
					continue
				}
				occ.release(a)
				a.TimeslotID = targetSlotID
				occ.reserve(a)
				solution[idx] = a
				moved++
				cursor++
				placed = true
				break
			}
			if !placed {
				// no earlier free, conflict-free slot found; leave as-is
				continue
			}
		}
	}
	return moved
}

// compactGlobal attempts to move any still-gapped assignment into an
// earlier slot of a different classroom, when the original classroom
// could not accommodate it (e.g. an instructor conflict blocked the
// per-classroom pass).
func compactGlobal(snapshot *domain.Snapshot, solution []domain.Assignment) int {
	slots := snapshot.SortedTimeslots()
	rooms := snapshot.ClassroomIDs()
	occ := buildOccupancy(solution)

	order := make([]int, len(solution))
	for i := range solution {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return snapshot.SlotIndex(solution[order[i]].TimeslotID) < snapshot.SlotIndex(solution[order[j]].TimeslotID)
	})

	moved := 0
	for _, idx := range order {
		a := solution[idx]
		currentIdx := snapshot.SlotIndex(a.TimeslotID)
		bestRoom, bestSlotID, bestSlotIdx := a.ClassroomID, a.TimeslotID, currentIdx

		for _, room := range rooms {
			for _, slot := range slots {
				si := snapshot.SlotIndex(slot.ID)
				if si >= bestSlotIdx {
					break
				}
				if room == a.ClassroomID && slot.ID == a.TimeslotID {
					continue
				}
				if !occ.cellFree(room, slot.ID) {
					continue
				}
				if !occ.instructorsFree(a.InstructorIDs, slot.ID) {
					continue
				}
				bestRoom, bestSlotID, bestSlotIdx = room, slot.ID, si
			}
		}

		if bestRoom != a.ClassroomID || bestSlotID != a.TimeslotID {
			occ.release(a)
			a.ClassroomID = bestRoom
			a.TimeslotID = bestSlotID
			occ.reserve(a)
			solution[idx] = a
			moved++
		}
	}
	return moved
}

// GapFreeOptimize repeatedly applies Compact until a pass yields no
// further moves, collapsing the schedule into continuous per-classroom
// blocks wherever feasible. This is the orchestrator's named "gap-free
// optimizer" (§4.5 step 8c).
func GapFreeOptimize(snapshot *domain.Snapshot, solution []domain.Assignment) (result []domain.Assignment, moved int) {
	result = copySolution(solution)
	for i := 0; i < 8; i++ {
		next, m := Compact(snapshot, result)
		moved += m
		result = next
		if m == 0 {
			break
		}
	}
	return result, moved
}
