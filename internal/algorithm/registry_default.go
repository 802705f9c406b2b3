package algorithm

// seedDescriptor is the one parameter every strategy accepts, for
// reproducible runs (§5 suspension point / RNG seeding).
var seedDescriptor = ParamDescriptor{Name: "seed", Type: "int", Default: nil, Description: "RNG seed; wall-clock derived when omitted"}

func timeLimitDescriptor(defaultSeconds float64) ParamDescriptor {
	return ParamDescriptor{Name: "time_limit", Type: "float", Default: defaultSeconds, Description: "wall-clock budget in seconds before the solver returns its incumbent"}
}

// NewDefaultRegistry builds the Registry carrying every published
// algorithm tag (§6) and its parameter descriptors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register("greedy", newGreedy, []ParamDescriptor{seedDescriptor})

	r.Register("genetic", newGenetic, []ParamDescriptor{
		seedDescriptor,
		{Name: "population_size", Type: "int", Default: 12, Description: "individuals per generation"},
		{Name: "generations", Type: "int", Default: 30, Description: "number of generations to evolve"},
	})

	r.Register("nsga-ii", newNSGA2, []ParamDescriptor{
		seedDescriptor,
		{Name: "population_size", Type: "int", Default: 16, Description: "individuals per generation"},
		{Name: "generations", Type: "int", Default: 25, Description: "number of generations to evolve"},
	})

	r.Register("simulated-annealing", newSimulatedAnnealing, []ParamDescriptor{
		seedDescriptor,
		{Name: "iterations", Type: "int", Default: 200, Description: "annealing steps"},
		{Name: "initial_temperature", Type: "float", Default: 100.0, Description: "starting temperature"},
		{Name: "cooling_factor", Type: "float", Default: 0.95, Description: "per-step temperature multiplier"},
	})

	r.Register("tabu-search", newTabuSearch, []ParamDescriptor{
		seedDescriptor,
		{Name: "iterations", Type: "int", Default: 150, Description: "search steps"},
		{Name: "tabu_tenure", Type: "int", Default: 10, Description: "tabu tenure in steps"},
	})

	r.Register("pso", newPSO, []ParamDescriptor{
		seedDescriptor,
		{Name: "swarm_size", Type: "int", Default: 10, Description: "number of particles"},
		{Name: "iterations", Type: "int", Default: 40, Description: "swarm update steps"},
	})

	r.Register("harmony", newHarmony, []ParamDescriptor{
		seedDescriptor,
		{Name: "memory_size", Type: "int", Default: 8, Description: "harmony memory size"},
		{Name: "improvisations", Type: "int", Default: 50, Description: "improvisation steps"},
		{Name: "harmony_memory_consideration_rate", Type: "float", Default: 0.9, Description: "probability of drawing from memory vs random"},
	})

	r.Register("firefly", newFirefly, []ParamDescriptor{
		seedDescriptor,
		{Name: "population", Type: "int", Default: 10, Description: "number of fireflies"},
		{Name: "iterations", Type: "int", Default: 40, Description: "movement steps"},
		{Name: "randomness", Type: "float", Default: 0.2, Description: "random walk coefficient"},
	})

	r.Register("grey-wolf", newGreyWolf, []ParamDescriptor{
		seedDescriptor,
		{Name: "pack_size", Type: "int", Default: 12, Description: "number of wolves"},
		{Name: "iterations", Type: "int", Default: 35, Description: "hunt steps"},
	})

	r.Register("ant-colony", newAntColony, []ParamDescriptor{
		seedDescriptor,
		{Name: "ants", Type: "int", Default: 15, Description: "number of ants"},
		{Name: "iterations", Type: "int", Default: 30, Description: "construction rounds"},
		{Name: "evaporation_rate", Type: "float", Default: 0.1, Description: "pheromone evaporation rate"},
	})

	r.Register("cuckoo", newCuckoo, []ParamDescriptor{
		seedDescriptor,
		{Name: "nests", Type: "int", Default: 12, Description: "number of nests"},
		{Name: "iterations", Type: "int", Default: 35, Description: "generations"},
		{Name: "abandon_rate", Type: "float", Default: 0.25, Description: "probability per round that the worst nest is abandoned and rebuilt"},
	})

	r.Register("bee", newBee, []ParamDescriptor{
		seedDescriptor,
		{Name: "employed_bees", Type: "int", Default: 8, Description: "employed-bee food sources"},
		{Name: "scout_bees", Type: "int", Default: 4, Description: "scout replacements per cycle"},
		{Name: "cycles", Type: "int", Default: 30, Description: "foraging cycles"},
	})

	r.Register("bat", newBat, []ParamDescriptor{
		seedDescriptor,
		{Name: "population", Type: "int", Default: 10, Description: "number of bats"},
		{Name: "iterations", Type: "int", Default: 35, Description: "echolocation steps"},
	})

	r.Register("whale", newWhale, []ParamDescriptor{
		seedDescriptor,
		{Name: "population", Type: "int", Default: 10, Description: "pod size"},
		{Name: "iterations", Type: "int", Default: 35, Description: "hunt steps"},
	})

	r.Register("dragonfly", newDragonfly, []ParamDescriptor{
		seedDescriptor,
		{Name: "population", Type: "int", Default: 10, Description: "swarm size"},
		{Name: "iterations", Type: "int", Default: 30, Description: "swarm steps"},
	})

	r.Register("cp-sat", newCPSAT, []ParamDescriptor{
		seedDescriptor,
		timeLimitDescriptor(10),
	})

	r.Register("ilp", newILP, []ParamDescriptor{
		seedDescriptor,
		timeLimitDescriptor(15),
	})

	r.Register("simplex", newSimplex, []ParamDescriptor{
		seedDescriptor,
		timeLimitDescriptor(10),
	})

	r.Register("branch-bound", newBranchBound, []ParamDescriptor{
		seedDescriptor,
		timeLimitDescriptor(20),
		{Name: "branching_factor", Type: "int", Default: 4, Description: "sibling branches explored per depth"},
		{Name: "max_depth", Type: "int", Default: 20, Description: "maximum branch depth"},
	})

	r.Register("dp", newDP, []ParamDescriptor{
		seedDescriptor,
		{Name: "stages", Type: "int", Default: 8, Description: "compaction stages"},
	})

	r.Register("a-star", newAStar, []ParamDescriptor{
		seedDescriptor,
		{Name: "max_expansions", Type: "int", Default: 200, Description: "frontier node expansions before returning"},
	})

	r.Register("lexicographic", newLexicographic, []ParamDescriptor{
		seedDescriptor,
		{Name: "iterations", Type: "int", Default: 60, Description: "candidate moves evaluated"},
	})

	r.Register("deep-search", newDeepSearch, []ParamDescriptor{
		seedDescriptor,
		timeLimitDescriptor(15),
		{Name: "max_depth", Type: "int", Default: 40, Description: "search depth"},
		{Name: "samples_per_node", Type: "int", Default: 5, Description: "candidate moves sampled per depth"},
	})

	r.Register("hybrid-cp-nsga", newHybridCPNSGA, []ParamDescriptor{
		seedDescriptor,
		{Name: "population_size", Type: "int", Default: 16, Description: "individuals per generation"},
		{Name: "generations", Type: "int", Default: 25, Description: "number of generations to evolve"},
		{Name: "repair_rounds", Type: "int", Default: 3, Description: "constraint-repair attempts per individual"},
	})

	r.Register("greedy-local-search", newGreedyLocalSearch, []ParamDescriptor{
		seedDescriptor,
		{Name: "max_passes", Type: "int", Default: 20, Description: "local-search passes"},
		{Name: "candidates_per_pass", Type: "int", Default: 6, Description: "candidate moves tried per pass"},
	})

	r.Register("comprehensive", newComprehensive, []ParamDescriptor{
		seedDescriptor,
		{Name: "refinement_rounds", Type: "int", Default: 3, Description: "post-processing refinement rounds"},
	})

	return r
}
