package solutionutil

import (
	"sort"

	"github.com/noah-isme/defense-scheduler/internal/domain"
)

// GapReport totals, per classroom, the empty slots lying between
// consecutively occupied slots (§4.3 Gap detection, O2).
type GapReport struct {
	ByClassroom map[int]int
	Total       int
}

// DetectGaps builds, per classroom, the sorted list of occupied slot
// indices and, for each pair of neighbors whose index delta exceeds one,
// adds delta-1 (the number of empty slots between them).
func DetectGaps(snapshot *domain.Snapshot, solution []domain.Assignment) GapReport {
	report := GapReport{ByClassroom: map[int]int{}}

	byRoom := map[int][]int{}
	for _, a := range solution {
		idx := snapshot.SlotIndex(a.TimeslotID)
		if idx < 0 {
			continue
		}
		byRoom[a.ClassroomID] = append(byRoom[a.ClassroomID], idx)
	}

	roomIDs := make([]int, 0, len(byRoom))
	for r := range byRoom {
		roomIDs = append(roomIDs, r)
	}
	sort.Ints(roomIDs)

	for _, room := range roomIDs {
		indices := byRoom[room]
		sort.Ints(indices)
		gaps := 0
		for i := 1; i < len(indices); i++ {
			delta := indices[i] - indices[i-1]
			if delta > 1 {
				gaps += delta - 1
			}
		}
		report.ByClassroom[room] = gaps
		report.Total += gaps
	}

	return report
}

// DetectLateSlots returns the subset of assignments whose timeslot
// starts at or after 16:30.
func DetectLateSlots(snapshot *domain.Snapshot, solution []domain.Assignment) []domain.Assignment {
	var late []domain.Assignment
	for _, a := range solution {
		if snapshot.IsLate(a.TimeslotID) {
			late = append(late, a)
		}
	}
	return late
}
