package industry

import "sort"

// SkillSignificance is one industry-skill-job association row. The same
// (industry, skill) pair can appear once per contributing job.
type SkillSignificance struct {
	Industry     string
	Skill        string
	Significance float64
}

// AggregateSkills sums significance per (industry, skill) across all
// contributing jobs, then keeps the top maxSkills skills per industry ordered
// by total significance descending. Ties are broken by skill name ascending so
// the output is deterministic for a fixed input.
func AggregateSkills(rows []SkillSignificance, maxSkills int) map[string][]string {
	type total struct {
		skill string
		sum   float64
	}

	totals := make(map[string]map[string]float64)
	for _, r := range rows {
		if r.Industry == "" || r.Skill == "" {
			continue
		}
		m, ok := totals[r.Industry]
		if !ok {
			m = make(map[string]float64)
			totals[r.Industry] = m
		}
		m[r.Skill] += r.Significance
	}

	out := make(map[string][]string, len(totals))
	for industry, m := range totals {
		ranked := make([]total, 0, len(m))
		for skill, sum := range m {
			ranked = append(ranked, total{skill: skill, sum: sum})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].sum == ranked[j].sum {
				return ranked[i].skill < ranked[j].skill
			}
			return ranked[i].sum > ranked[j].sum
		})

		if maxSkills > 0 && len(ranked) > maxSkills {
			ranked = ranked[:maxSkills]
		}
		skills := make([]string, 0, len(ranked))
		for _, t := range ranked {
			skills = append(skills, t.skill)
		}
		out[industry] = skills
	}
	return out
}
