package orchestrator

import (
	"sort"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// maxPostProcessIterations bounds the post-processing loop regardless
// of remaining progress (§4.5 step 8, §5 Timeouts).
const maxPostProcessIterations = 8

// postProcess runs the C3 repair chain — per-classroom then global
// compaction, the gap-free optimizer, late-slot relocation, and
// earliest-first reflow — stopping early once an iteration makes no
// improvement to the gap count or late-slot count. The thesis jury
// backfill (A3) runs once at the end: it only appends jurors, so it
// cannot itself create a gap or late-slot regression the loop above
// would need to react to.
func (s *Service) postProcess(snapshot *domain.Snapshot, solution []domain.Assignment) []domain.Assignment {
	prevGaps := solutionutil.DetectGaps(snapshot, solution).Total
	prevLate := len(solutionutil.DetectLateSlots(snapshot, solution))

	for i := 0; i < maxPostProcessIterations; i++ {
		solution, _ = solutionutil.GapFreeOptimize(snapshot, solution)
		solution, _, _ = solutionutil.RelocateLateSlots(snapshot, solution)
		solution, _ = solutionutil.ReflowEarliestFirst(snapshot, solution)

		gaps := solutionutil.DetectGaps(snapshot, solution).Total
		late := len(solutionutil.DetectLateSlots(snapshot, solution))
		if gaps >= prevGaps && late >= prevLate {
			break
		}
		prevGaps, prevLate = gaps, late
	}

	solution, _ = solutionutil.BackfillThesisJury(snapshot, solution)
	return solution
}

// PolicySummary is the per-list diagnostic §4.5 step 9 names.
type PolicySummary struct {
	Total              int         `json:"total"`
	LateCount          int         `json:"late_count"`
	DistributionBySlot map[int]int `json:"distribution_by_timeslot"`
	ClassroomsWithGap  []int       `json:"classrooms_with_gap"`
}

func buildPolicySummary(snapshot *domain.Snapshot, solution []domain.Assignment) PolicySummary {
	summary := PolicySummary{
		Total:              len(solution),
		DistributionBySlot: map[int]int{},
	}

	late := solutionutil.DetectLateSlots(snapshot, solution)
	summary.LateCount = len(late)

	for _, a := range solution {
		summary.DistributionBySlot[a.TimeslotID]++
	}

	gaps := solutionutil.DetectGaps(snapshot, solution)
	rooms := make([]int, 0, len(gaps.ByClassroom))
	for room, count := range gaps.ByClassroom {
		if count > 0 {
			rooms = append(rooms, room)
		}
	}
	sort.Ints(rooms)
	summary.ClassroomsWithGap = rooms

	return summary
}
