package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/milk9111/brawler/ai"
	"github.com/milk9111/brawler/prefabs"
)

func TestShippedScriptMatchesDefaultPolicy(t *testing.T) {
	src, err := prefabs.LoadScript(prefabs.AIScriptFile)
	require.NoError(t, err)
	policy, err := ai.NewScriptPolicy(src, nil)
	require.NoError(t, err)

	rapid.Check(t, func(rt *rapid.T) {
		s := ai.Situation{
			Distance:          rapid.Float64Range(0, 800).Draw(rt, "distance"),
			OpponentAttacking: rapid.Bool().Draw(rt, "attacking"),
			SelfHealth:        rapid.Float64Range(0, 100).Draw(rt, "self"),
			OpponentHealth:    rapid.Float64Range(0, 100).Draw(rt, "opponent"),
		}
		d := rapid.SampledFrom(ai.Difficulties()).Draw(rt, "difficulty")
		roll := rapid.Float64Range(0, 0.999999).Draw(rt, "roll")

		want := ai.DefaultPolicy{}.Decide(s, d.Profile(), roll)
		if got := policy.Decide(s, d.Profile(), roll); got != want {
			rt.Fatalf("script chose %s, default chose %s", got, want)
		}
	})
}

func TestScriptPolicyFallsBack(t *testing.T) {
	cases := map[string]string{
		"unknown behavior": `decide := func(s) { return "dance" }`,
		"runtime error":    `decide := func(s) { return s.missing.field }`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			policy, err := ai.NewScriptPolicy([]byte(src), nil)
			require.NoError(t, err)
			got := policy.Decide(ai.Situation{Distance: 10}, ai.Hard.Profile(), 0.5)
			assert.Equal(t, ai.Attacking, got)
		})
	}
}

func TestScriptPolicyCompileError(t *testing.T) {
	_, err := ai.NewScriptPolicy([]byte(`decide := func(s) {`), nil)
	assert.Error(t, err)
}

func TestScriptCanOverrideDecision(t *testing.T) {
	policy, err := ai.NewScriptPolicy([]byte(`
decide := func(s) {
	if s.self_health < 30 {
		return "blocking"
	}
	return "chasing"
}`), nil)
	require.NoError(t, err)
	assert.Equal(t, ai.Blocking, policy.Decide(ai.Situation{SelfHealth: 20}, ai.Easy.Profile(), 0.9))
	assert.Equal(t, ai.Chasing, policy.Decide(ai.Situation{SelfHealth: 80}, ai.Easy.Profile(), 0.9))
}
