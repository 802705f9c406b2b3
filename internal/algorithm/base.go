package algorithm

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"time"

	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
)

// baseStrategy carries the state and shared construction heuristic every
// concrete strategy embeds: snapshot access, a seeded RNG and the
// "consecutive grouping with strategic pairing" builder (§4.4).
// Concrete strategies layer their own search loop over
// BuildBaseSolution's output in their Optimize method.
type baseStrategy struct {
	tag      string
	category fitness.AlgorithmCategory
	snapshot *domain.Snapshot
	params   map[string]any
	rng      *rand.Rand
	metrics  fitness.Metrics
	weights  fitness.Weights
}

func (b *baseStrategy) initBase(tag string, category fitness.AlgorithmCategory, snapshot *domain.Snapshot, params map[string]any) error {
	if snapshot == nil {
		return fmt.Errorf("%s: nil snapshot", tag)
	}
	if len(snapshot.Projects) == 0 || len(snapshot.Instructors) == 0 || len(snapshot.Classrooms) == 0 || len(snapshot.Timeslots) == 0 {
		return fmt.Errorf("%s: snapshot has empty projects/instructors/classrooms/timeslots", tag)
	}
	b.tag = tag
	b.category = category
	b.snapshot = snapshot
	if params == nil {
		params = map[string]any{}
	}
	b.params = params
	b.rng = rand.New(rand.NewSource(seedFrom(params)))
	b.weights = fitness.DefaultWeights(category)
	return nil
}

// seedFrom reads params["seed"] when present; otherwise it derives one
// from wall-clock time, hashed through fnv so the derived value is well
// distributed (§9 Randomness: "default: wall-clock hash"). Two runs with
// identical seed, params and snapshot reproduce bit-for-bit because every
// subsequent rand.Rand draw is deterministic from this seed alone.
func seedFrom(params map[string]any) int64 {
	if v, ok := params["seed"]; ok {
		switch n := v.(type) {
		case int:
			return int64(n)
		case int64:
			return n
		case float64:
			return int64(n)
		}
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%d", time.Now().UnixNano())
	return int64(h.Sum64())
}

func (b *baseStrategy) Category() fitness.AlgorithmCategory {
	return b.category
}

func (b *baseStrategy) EvaluateFitness(solution []domain.Assignment) float64 {
	result := b.metrics.Score(b.snapshot, solution, b.weights)
	return result.Total
}

// BuildBaseSolution runs the shared construction heuristic (§4.4):
// randomize instructor iteration order, group projects by responsible,
// place each group's projects in consecutive slots of a room with
// enough free capacity (falling back to earliest-available-anywhere),
// then pair adjacent instructors reciprocally as jury.
func (b *baseStrategy) BuildBaseSolution() []domain.Assignment {
	snapshot := b.snapshot
	byResponsible := snapshot.ProjectsByResponsible()

	responsibleIDs := make([]int, 0, len(byResponsible))
	for id := range byResponsible {
		responsibleIDs = append(responsibleIDs, id)
	}
	sort.Ints(responsibleIDs)
	b.rng.Shuffle(len(responsibleIDs), func(i, j int) {
		responsibleIDs[i], responsibleIDs[j] = responsibleIDs[j], responsibleIDs[i]
	})

	slots := snapshot.SortedTimeslots()
	rooms := snapshot.ClassroomIDs()
	occupiedCell := map[[2]int]bool{}
	occupiedInstructorSlot := map[[2]int]bool{}

	var solution []domain.Assignment

	for _, respID := range responsibleIDs {
		projects := byResponsible[respID]
		sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })

		placements := findConsecutiveBlock(rooms, slots, occupiedCell, len(projects))
		if placements == nil {
			placements = findAnyFreeSlots(rooms, slots, occupiedCell, len(projects))
		}

		for i, proj := range projects {
			if i >= len(placements) {
				break
			}
			cell := placements[i]
			instructors := []int{respID}
			if proj.CoAdvisorID != nil {
				instructors = append(instructors, *proj.CoAdvisorID)
			}
			instructors = append(instructors, proj.AssistantIDs...)
			instructors = dedupInts(instructors)

			feasible := true
			for _, iid := range instructors {
				if occupiedInstructorSlot[[2]int{iid, cell.slotID}] {
					feasible = false
					break
				}
			}
			if !feasible {
				instructors = []int{respID}
			}

			occupiedCell[[2]int{cell.roomID, cell.slotID}] = true
			for _, iid := range instructors {
				occupiedInstructorSlot[[2]int{iid, cell.slotID}] = true
			}

			solution = append(solution, domain.Assignment{
				ProjectID:     proj.ID,
				ClassroomID:   cell.roomID,
				TimeslotID:    cell.slotID,
				InstructorIDs: instructors,
			})
		}
	}

	return PairAdjacentInstructors(snapshot, solution)
}

type placement struct {
	roomID, slotID int
}

// findConsecutiveBlock locates a (room, starting-slot) whose consecutive
// free slots accommodate count placements in a single room.
func findConsecutiveBlock(rooms []int, slots []domain.Timeslot, occupied map[[2]int]bool, count int) []placement {
	for _, room := range rooms {
		run := 0
		start := -1
		for i, slot := range slots {
			if !occupied[[2]int{room, slot.ID}] {
				if run == 0 {
					start = i
				}
				run++
				if run >= count {
					out := make([]placement, 0, count)
					for j := start; j < start+count; j++ {
						out = append(out, placement{room, slots[j].ID})
					}
					return out
				}
			} else {
				run = 0
			}
		}
	}
	return nil
}

// findAnyFreeSlots falls back to scattering placements across whatever
// free (room,slot) cells remain, earliest first.
func findAnyFreeSlots(rooms []int, slots []domain.Timeslot, occupied map[[2]int]bool, count int) []placement {
	var out []placement
	for _, slot := range slots {
		for _, room := range rooms {
			if len(out) >= count {
				return out
			}
			if !occupied[[2]int{room, slot.ID}] {
				out = append(out, placement{room, slot.ID})
			}
		}
	}
	return out
}

func dedupInts(ids []int) []int {
	seen := map[int]struct{}{}
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// iterativeRefine runs a bounded number of perturb-and-select rounds
// starting from the base construction, keeping the best-scoring solution
// seen. Swarm/evolutionary/local-search strategies share this loop,
// differing only in their perturb function and iteration budget; it
// honors ctx cancellation between rounds (§5 suspension point (d)).
func (b *baseStrategy) iterativeRefine(ctx context.Context, iterations int, perturb func([]domain.Assignment, *rand.Rand) []domain.Assignment) ([]domain.Assignment, int) {
	current := b.BuildBaseSolution()
	best := current
	bestScore := b.EvaluateFitness(best)
	rounds := 0

	for i := 0; i < iterations; i++ {
		select {
		case <-ctx.Done():
			return best, rounds
		default:
		}
		candidate := perturb(current, b.rng)
		score := b.EvaluateFitness(candidate)
		if score >= bestScore {
			best = candidate
			bestScore = score
		}
		current = candidate
		rounds++
	}

	return best, rounds
}
