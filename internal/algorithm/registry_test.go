package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Has("greedy"))

	r.Register("greedy", newGreedy, []ParamDescriptor{{Name: "seed", Type: "int"}})
	assert.True(t, r.Has("greedy"))

	strat, err := r.Get("greedy")
	require.NoError(t, err)
	assert.NotNil(t, strat)

	descriptors := r.Descriptors("greedy")
	require.Len(t, descriptors, 1)
	assert.Equal(t, "seed", descriptors[0].Name)
}

func TestRegistryGetUnknownTag(t *testing.T) {
	r := NewRegistry()
	r.Register("greedy", newGreedy, nil)
	_, err := r.Get("unknown")
	assert.Error(t, err)
}

func TestRegistryTagsSortedAndDeduped(t *testing.T) {
	r := NewRegistry()
	r.Register("zeta", newGreedy, nil)
	r.Register("alpha", newGreedy, nil)
	r.Register("alpha", newGreedy, nil) // re-register overwrites, doesn't duplicate order

	tags := r.Tags()
	assert.Equal(t, []string{"alpha", "zeta"}, tags)
}

func TestDefaultRegistryHasAllDocumentedTags(t *testing.T) {
	r := NewDefaultRegistry()
	wantTags := []string{
		"a-star", "ant-colony", "bat", "bee", "branch-bound", "comprehensive",
		"cp-sat", "cuckoo", "deep-search", "dp", "dragonfly", "firefly",
		"genetic", "greedy", "greedy-local-search", "grey-wolf", "harmony",
		"hybrid-cp-nsga", "ilp", "lexicographic", "nsga-ii",
		"pso", "simplex", "simulated-annealing", "tabu-search", "whale",
	}
	for _, tag := range wantTags {
		assert.True(t, r.Has(tag), "expected tag %q to be registered", tag)
	}
}
