// Package solutionutil implements the pure, copy-in/copy-out repair and
// diagnostic routines every algorithm's output is run through: conflict
// detection, gap detection, dedup, compaction and reflow. Nothing here
// mutates its input slice; callers always receive a new slice.
package solutionutil

import (
	"sort"

	"github.com/noah-isme/defense-scheduler/internal/domain"
)

// CellCollision records two assignments claiming the same (room, slot) cell.
type CellCollision struct {
	ClassroomID int
	TimeslotID  int
	ProjectIDs  []int
}

// InstructorCollision records an instructor double-booked at a timeslot.
type InstructorCollision struct {
	InstructorID int
	TimeslotID   int
	ProjectIDs   []int
}

// ConflictReport holds the three conflict lists named in §4.3.
type ConflictReport struct {
	Duplicates           []int
	CellCollisions       []CellCollision
	InstructorCollisions []InstructorCollision
}

// Empty reports whether the solution is free of every kind of conflict.
func (r ConflictReport) Empty() bool {
	return len(r.Duplicates) == 0 && len(r.CellCollisions) == 0 && len(r.InstructorCollisions) == 0
}

// DetectConflicts finds same-project duplicates, (room,slot) collisions
// and instructor-at-slot collisions (S1/S2/S3).
func DetectConflicts(_ *domain.Snapshot, solution []domain.Assignment) ConflictReport {
	report := ConflictReport{}

	byProject := map[int][]domain.Assignment{}
	for _, a := range solution {
		byProject[a.ProjectID] = append(byProject[a.ProjectID], a)
	}
	projectIDs := sortedKeys(byProject)
	for _, pid := range projectIDs {
		if len(byProject[pid]) > 1 {
			report.Duplicates = append(report.Duplicates, pid)
		}
	}

	type cellKey struct{ room, slot int }
	byCell := map[cellKey][]int{}
	for _, a := range solution {
		k := cellKey{a.ClassroomID, a.TimeslotID}
		byCell[k] = append(byCell[k], a.ProjectID)
	}
	for k, ids := range byCell {
		if len(ids) > 1 {
			sort.Ints(ids)
			report.CellCollisions = append(report.CellCollisions, CellCollision{
				ClassroomID: k.room, TimeslotID: k.slot, ProjectIDs: ids,
			})
		}
	}
	sort.Slice(report.CellCollisions, func(i, j int) bool {
		if report.CellCollisions[i].ClassroomID != report.CellCollisions[j].ClassroomID {
			return report.CellCollisions[i].ClassroomID < report.CellCollisions[j].ClassroomID
		}
		return report.CellCollisions[i].TimeslotID < report.CellCollisions[j].TimeslotID
	})

	type instKey struct{ inst, slot int }
	byInstSlot := map[instKey][]int{}
	for _, a := range solution {
		for _, iid := range a.InstructorIDs {
			k := instKey{iid, a.TimeslotID}
			byInstSlot[k] = append(byInstSlot[k], a.ProjectID)
		}
	}
	for k, ids := range byInstSlot {
		if len(ids) > 1 {
			sort.Ints(ids)
			report.InstructorCollisions = append(report.InstructorCollisions, InstructorCollision{
				InstructorID: k.inst, TimeslotID: k.slot, ProjectIDs: ids,
			})
		}
	}
	sort.Slice(report.InstructorCollisions, func(i, j int) bool {
		if report.InstructorCollisions[i].InstructorID != report.InstructorCollisions[j].InstructorID {
			return report.InstructorCollisions[i].InstructorID < report.InstructorCollisions[j].InstructorID
		}
		return report.InstructorCollisions[i].TimeslotID < report.InstructorCollisions[j].TimeslotID
	})

	return report
}

func sortedKeys(m map[int][]domain.Assignment) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
