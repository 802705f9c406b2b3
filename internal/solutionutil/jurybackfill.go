package solutionutil

import (
	"sort"

	"github.com/noah-isme/defense-scheduler/internal/domain"
)

// BackfillThesisJury enforces A3 (thesis defenses need a jury of at
// least two, faculty preferred) for whatever PairAdjacentInstructors
// left under-staffed. Reciprocal adjacency pairing only fires between
// two sessions with *different* responsible instructors, so a thesis
// session whose neighbors all share its own responsible instructor (the
// common case BuildBaseSolution's consecutive grouping produces) is
// never paired and would otherwise reach scoring with a jury of one. It
// never removes or reorders an existing jury, only appends one more
// instructor when a thesis assignment is still short of two.
func BackfillThesisJury(snapshot *domain.Snapshot, solution []domain.Assignment) (result []domain.Assignment, added int) {
	result = copySolution(solution)
	occ := buildOccupancy(result)

	var faculty, assistants []int
	for _, inst := range snapshot.Instructors {
		if inst.Rank == domain.RankFaculty {
			faculty = append(faculty, inst.ID)
		} else {
			assistants = append(assistants, inst.ID)
		}
	}
	sort.Ints(faculty)
	sort.Ints(assistants)
	candidates := make([]int, 0, len(faculty)+len(assistants))
	candidates = append(candidates, faculty...)
	candidates = append(candidates, assistants...)

	for i, a := range result {
		proj, ok := snapshot.Project(a.ProjectID)
		if !ok || proj.Type != domain.ProjectThesis || len(a.InstructorIDs) >= 2 {
			continue
		}

		for _, cand := range candidates {
			if containsInstructor(a.InstructorIDs, cand) {
				continue
			}
			if !occ.instructorsFree([]int{cand}, a.TimeslotID) {
				continue
			}
			occ.release(a)
			a.InstructorIDs = append(append([]int{}, a.InstructorIDs...), cand)
			occ.reserve(a)
			result[i] = a
			added++
			break
		}
	}

	return result, added
}

func containsInstructor(ids []int, target int) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
