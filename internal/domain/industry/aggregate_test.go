package industry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregateSkills_SumsDuplicateSkills(t *testing.T) {
	rows := []SkillSignificance{
		{Industry: "mining", Skill: "skill_1", Significance: 2},
		{Industry: "mining", Skill: "skill_1", Significance: 2}, // same skill via another job
		{Industry: "mining", Skill: "skill_2", Significance: 3},
		{Industry: "mining", Skill: "skill_3", Significance: 2},
	}

	out := AggregateSkills(rows, 2)

	// skill_1 sums to 4 and outranks skill_2 (3); skill_3 is cut by the cap.
	require.Equal(t, []string{"skill_1", "skill_2"}, out["mining"])
}

func TestAggregateSkills_CapAt20(t *testing.T) {
	rows := make([]SkillSignificance, 0, 25)
	for i := 0; i < 25; i++ {
		rows = append(rows, SkillSignificance{
			Industry:     "energy",
			Skill:        fmt.Sprintf("skill_%02d", i),
			Significance: float64(i + 1),
		})
	}

	out := AggregateSkills(rows, 20)

	require.Len(t, out["energy"], 20)
	// Highest summed significance first; the five weakest skills are dropped.
	require.Equal(t, "skill_24", out["energy"][0])
	require.NotContains(t, out["energy"], "skill_00")
	require.NotContains(t, out["energy"], "skill_04")
}

func TestAggregateSkills_DeterministicTieBreak(t *testing.T) {
	rows := []SkillSignificance{
		{Industry: "retail", Skill: "zeta", Significance: 1},
		{Industry: "retail", Skill: "alpha", Significance: 1},
		{Industry: "retail", Skill: "mid", Significance: 1},
	}

	first := AggregateSkills(rows, 20)
	second := AggregateSkills(rows, 20)

	require.Equal(t, first, second)
	require.Equal(t, []string{"alpha", "mid", "zeta"}, first["retail"])
}

func TestAggregateSkills_GroupsByIndustry(t *testing.T) {
	rows := []SkillSignificance{
		{Industry: "mining", Skill: "drilling", Significance: 5},
		{Industry: "retail", Skill: "sales", Significance: 4},
	}

	out := AggregateSkills(rows, 20)

	require.Equal(t, []string{"drilling"}, out["mining"])
	require.Equal(t, []string{"sales"}, out["retail"])
}

func TestAggregateSkills_SkipsBlankRows(t *testing.T) {
	rows := []SkillSignificance{
		{Industry: "", Skill: "orphan", Significance: 9},
		{Industry: "mining", Skill: "", Significance: 9},
		{Industry: "mining", Skill: "drilling", Significance: 1},
	}

	out := AggregateSkills(rows, 20)

	require.Len(t, out, 1)
	require.Equal(t, []string{"drilling"}, out["mining"])
}
