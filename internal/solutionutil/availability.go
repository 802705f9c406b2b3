package solutionutil

import "github.com/noah-isme/defense-scheduler/internal/domain"

// occupancy tracks, for a working copy of a solution, which (room,slot)
// cells and which (instructor,slot) pairs are taken. It is rebuilt
// whenever a move commits so every subsequent feasibility check sees the
// latest state — the same "reserve/release" discipline the teacher's
// teacherAvailability type uses.
type occupancy struct {
	cells       map[cell]int // cell -> project id occupying it
	instructors map[instSlot]int
}

type cell struct{ room, slot int }
type instSlot struct {
	instructor int
	slot       int
}

func buildOccupancy(solution []domain.Assignment) *occupancy {
	o := &occupancy{cells: map[cell]int{}, instructors: map[instSlot]int{}}
	for _, a := range solution {
		o.reserve(a)
	}
	return o
}

func (o *occupancy) reserve(a domain.Assignment) {
	o.cells[cell{a.ClassroomID, a.TimeslotID}] = a.ProjectID
	for _, iid := range a.InstructorIDs {
		o.instructors[instSlot{iid, a.TimeslotID}] = a.ProjectID
	}
}

func (o *occupancy) release(a domain.Assignment) {
	delete(o.cells, cell{a.ClassroomID, a.TimeslotID})
	for _, iid := range a.InstructorIDs {
		delete(o.instructors, instSlot{iid, a.TimeslotID})
	}
}

// cellFree reports whether (room,slot) is unoccupied.
func (o *occupancy) cellFree(room, slot int) bool {
	_, taken := o.cells[cell{room, slot}]
	return !taken
}

// instructorsFree reports whether none of instructorIDs are booked at slot.
func (o *occupancy) instructorsFree(instructorIDs []int, slot int) bool {
	for _, iid := range instructorIDs {
		if _, taken := o.instructors[instSlot{iid, slot}]; taken {
			return false
		}
	}
	return true
}

func copySolution(solution []domain.Assignment) []domain.Assignment {
	out := make([]domain.Assignment, len(solution))
	copy(out, solution)
	return out
}
