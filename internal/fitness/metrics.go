package fitness

import (
	"math"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
)

// slotRewardTable is the published per-start-time reward table (§6). A
// slot starting at/after 16:30 carries the late penalty instead; any
// other start time not listed here earns 0.
var slotRewardTable = map[string]float64{
	"09:00": 1000, "09:30": 950, "10:00": 900, "10:30": 850,
	"11:00": 800, "11:30": 750, "13:00": 700, "13:30": 650,
	"14:00": 600, "14:30": 550, "15:00": 500, "15:30": 450,
	"16:00": 400,
}

const lateSlotReward = -9999

// Result is the per-axis and total score for one solution evaluation.
type Result struct {
	Total float64
	Axes  map[string]float64
}

// Clamp restricts Total to [0,100] (R2).
func (r *Result) Clamp() {
	if r.Total < 0 {
		r.Total = 0
	}
	if r.Total > 100 {
		r.Total = 100
	}
}

// Metrics scores solutions against a Snapshot using a Weights family.
//
// The coverage axis is intentionally binary (100 if every project is
// scheduled exactly once, else 0) rather than proportional — this
// mirrors a hard-coded behavior in the reference strategies that is
// inconsistent with their own soft-constraint framing, but is preserved
// for test parity per the decided open question. It makes this axis a
// poor gradient signal for local-search convergence; strategies should
// not expect smooth feedback from it mid-search.
type Metrics struct{}

// Score computes the weighted total and per-axis breakdown for a solution.
func (Metrics) Score(snapshot *domain.Snapshot, solution []domain.Assignment, weights Weights) Result {
	axes := map[string]float64{
		"slot_reward":       slotRewardAxis(snapshot, solution),
		"coverage":          coverageAxis(snapshot, solution),
		"gap_penalty":       gapPenaltyAxis(snapshot, solution),
		"duplicate_penalty": duplicatePenaltyAxis(solution),
		"load_balance":      loadBalanceAxis(snapshot, solution),
		"late_slot_penalty": lateSlotPenaltyAxis(snapshot, solution),
		"classroom_switch":  classroomSwitchAxis(solution),
		"role_compliance":   roleComplianceAxis(snapshot, solution),
	}

	total := weights.SlotReward*axes["slot_reward"] +
		weights.Coverage*axes["coverage"] +
		weights.GapPenalty*axes["gap_penalty"] +
		weights.DuplicatePenalty*axes["duplicate_penalty"] +
		weights.LoadBalance*axes["load_balance"] +
		weights.LateSlotPenalty*axes["late_slot_penalty"] +
		0.025*axes["classroom_switch"] +
		0.025*axes["role_compliance"]

	result := Result{Total: total, Axes: axes}
	result.Clamp()
	return result
}

func startKey(t domain.Timeslot) string {
	return t.Start.Format("15:04")
}

func slotRewardAxis(snapshot *domain.Snapshot, solution []domain.Assignment) float64 {
	if len(solution) == 0 {
		return 0
	}
	var raw float64
	for _, a := range solution {
		t, ok := snapshot.Timeslot(a.TimeslotID)
		if !ok {
			continue
		}
		if domain.IsLateStart(t.Start) {
			raw += lateSlotReward
			continue
		}
		if reward, ok := slotRewardTable[startKey(t)]; ok {
			raw += reward
		}
	}
	if raw < 0 {
		return 0
	}
	count := float64(len(solution))
	minAcceptable := count * 400
	maxPossible := count * 1000
	if maxPossible == minAcceptable {
		return 100
	}
	normalized := (raw - minAcceptable) / (maxPossible - minAcceptable) * 100
	if normalized < 0 {
		return 0
	}
	if normalized > 100 {
		return 100
	}
	return normalized
}

func coverageAxis(snapshot *domain.Snapshot, solution []domain.Assignment) float64 {
	scheduled := map[int]int{}
	for _, a := range solution {
		scheduled[a.ProjectID]++
	}
	if len(scheduled) != len(snapshot.Projects) {
		return 0
	}
	for _, p := range snapshot.Projects {
		if scheduled[p.ID] != 1 {
			return 0
		}
	}
	return 100
}

func gapPenaltyAxis(snapshot *domain.Snapshot, solution []domain.Assignment) float64 {
	report := solutionutil.DetectGaps(snapshot, solution)
	if report.Total == 0 {
		return 100
	}
	return 0
}

func duplicatePenaltyAxis(solution []domain.Assignment) float64 {
	seen := map[int]struct{}{}
	for _, a := range solution {
		if _, dup := seen[a.ProjectID]; dup {
			return 0
		}
		seen[a.ProjectID] = struct{}{}
	}
	return 100
}

func loadBalanceAxis(snapshot *domain.Snapshot, solution []domain.Assignment) float64 {
	if len(snapshot.Instructors) == 0 {
		return 100
	}
	load := map[int]int{}
	for _, inst := range snapshot.Instructors {
		load[inst.ID] = 0
	}
	for _, a := range solution {
		for _, iid := range a.InstructorIDs {
			load[iid]++
		}
	}

	uninvolved := 0
	var total, count float64
	for _, n := range load {
		count++
		total += float64(n)
		if n == 0 {
			uninvolved++
		}
	}
	if count == 0 {
		return 100
	}
	mean := total / count

	var excessDeviation float64
	ok := true
	for _, n := range load {
		dev := math.Abs(float64(n) - mean)
		if dev > 1 {
			ok = false
			excessDeviation += dev - 1
		}
	}

	if uninvolved == 0 && ok {
		return 100
	}

	score := 100 - float64(uninvolved)*15 - excessDeviation*10
	if score < 0 {
		score = 0
	}
	return score
}

func lateSlotPenaltyAxis(snapshot *domain.Snapshot, solution []domain.Assignment) float64 {
	late := solutionutil.DetectLateSlots(snapshot, solution)
	if len(late) == 0 {
		return 100
	}
	score := 100 - float64(len(late))*50
	if score < 0 {
		score = 0
	}
	return score
}

// classroomSwitchAxis is advisory (O6): per instructor, distinct
// classrooms used minus one, normalized so zero switches scores 100.
func classroomSwitchAxis(solution []domain.Assignment) float64 {
	rooms := map[int]map[int]struct{}{}
	for _, a := range solution {
		for _, iid := range a.InstructorIDs {
			if rooms[iid] == nil {
				rooms[iid] = map[int]struct{}{}
			}
			rooms[iid][a.ClassroomID] = struct{}{}
		}
	}
	if len(rooms) == 0 {
		return 100
	}
	var totalSwitches int
	for _, set := range rooms {
		if len(set) > 1 {
			totalSwitches += len(set) - 1
		}
	}
	score := 100 - float64(totalSwitches)*10
	if score < 0 {
		score = 0
	}
	return score
}

// roleComplianceAxis is advisory (O7): fraction of assignments honoring
// A1 (responsible-first) and the A3/A4 minimum jury sizes.
func roleComplianceAxis(snapshot *domain.Snapshot, solution []domain.Assignment) float64 {
	if len(solution) == 0 {
		return 100
	}
	compliant := 0
	for _, a := range solution {
		if !assignmentCompliant(snapshot, a) {
			continue
		}
		compliant++
	}
	return float64(compliant) / float64(len(solution)) * 100
}

func assignmentCompliant(snapshot *domain.Snapshot, a domain.Assignment) bool {
	p, ok := snapshot.Project(a.ProjectID)
	if !ok {
		return false
	}
	if len(a.InstructorIDs) == 0 || a.InstructorIDs[0] != p.ResponsibleID {
		return false
	}
	seen := map[int]struct{}{}
	for _, iid := range a.InstructorIDs {
		if _, dup := seen[iid]; dup {
			return false
		}
		seen[iid] = struct{}{}
	}
	minJury := 1
	if p.Type == domain.ProjectThesis {
		minJury = 2
	}
	return len(a.InstructorIDs) >= minJury
}
