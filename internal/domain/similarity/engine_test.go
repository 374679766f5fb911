package similarity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func set(skills ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		m[s] = struct{}{}
	}
	return m
}

func TestJaccard_BothEmpty(t *testing.T) {
	require.Equal(t, 0.0, Jaccard(set(), set()))
}

func TestJaccard_DisjointSets(t *testing.T) {
	require.Equal(t, 0.0, Jaccard(set("A"), set("B")))
}

func TestJaccard_Symmetric(t *testing.T) {
	a := set("go", "sql", "docker")
	b := set("go", "sql")
	require.Equal(t, Jaccard(a, b), Jaccard(b, a))
	require.InDelta(t, 2.0/3.0, Jaccard(a, b), 1e-9)
}

func TestRecommendations_ClearRanking(t *testing.T) {
	profiles := []JobSkillProfile{
		{Name: "X", Skills: []string{"a", "b", "c"}},
		{Name: "Y", Skills: []string{"a", "b"}},
		{Name: "Z", Skills: []string{"d"}},
	}

	recs := Recommendations(profiles)

	// Y overlaps X more than Z does; no third candidate exists for X.
	require.Equal(t, []string{"Y", "Z"}, recs["X"])
	require.Equal(t, []string{"X", "Z"}, recs["Y"])
	require.Len(t, recs["Z"], 2)
}

func TestRecommendations_SelfExclusionAndBound(t *testing.T) {
	profiles := []JobSkillProfile{
		{Name: "A", Skills: []string{"s1", "s2"}},
		{Name: "B", Skills: []string{"s1"}},
		{Name: "C", Skills: []string{"s2"}},
		{Name: "D", Skills: []string{"s1", "s2", "s3"}},
		{Name: "E", Skills: []string{"s3"}},
	}

	recs := Recommendations(profiles)

	require.Len(t, recs, len(profiles))
	for name, similar := range recs {
		require.LessOrEqual(t, len(similar), MaxSimilarJobs)
		require.NotContains(t, similar, name)
	}
}

func TestRecommendations_SingleJob(t *testing.T) {
	recs := Recommendations([]JobSkillProfile{{Name: "Solo", Skills: []string{"a"}}})
	require.Equal(t, map[string][]string{"Solo": {}}, recs)
}

func TestRecommendations_EmptyInput(t *testing.T) {
	require.Empty(t, Recommendations(nil))
}

func TestRecommendations_StableTieBreak(t *testing.T) {
	// B, C and D all score zero against A; enumeration order must decide.
	profiles := []JobSkillProfile{
		{Name: "A", Skills: []string{"x"}},
		{Name: "B", Skills: []string{"p"}},
		{Name: "C", Skills: []string{"q"}},
		{Name: "D", Skills: []string{"r"}},
		{Name: "E", Skills: []string{"s"}},
	}

	recs := Recommendations(profiles)
	require.Equal(t, []string{"B", "C", "D"}, recs["A"])
}

func TestRecommendations_Deterministic(t *testing.T) {
	profiles := []JobSkillProfile{
		{Name: "A", Skills: []string{"go", "sql"}},
		{Name: "B", Skills: []string{"go"}},
		{Name: "C", Skills: []string{"sql"}},
		{Name: "D", Skills: []string{"go", "sql"}},
	}

	first := Recommendations(profiles)
	second := Recommendations(profiles)
	require.Equal(t, first, second)
}

func TestRecommendations_RankingNotSymmetric(t *testing.T) {
	// A is in everyone's neighborhood, but A's own top list is bounded, so
	// membership need not be mutual.
	profiles := []JobSkillProfile{
		{Name: "A", Skills: []string{"a", "b", "c", "d"}},
		{Name: "B", Skills: []string{"a", "b", "c", "d"}},
		{Name: "C", Skills: []string{"a", "b", "c"}},
		{Name: "D", Skills: []string{"a", "b"}},
		{Name: "E", Skills: []string{"a"}},
	}

	recs := Recommendations(profiles)
	require.Contains(t, recs["E"], "A")
	require.NotContains(t, recs["A"], "E")
}
