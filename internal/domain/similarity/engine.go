package similarity

import "sort"

// MaxSimilarJobs bounds the recommendation list attached to every job record.
const MaxSimilarJobs = 3

// JobSkillProfile pairs a job name with the skill names attached to it.
// Profiles are immutable for the duration of one computation and their slice
// order is the enumeration order used to break ranking ties.
type JobSkillProfile struct {
	Name   string
	Skills []string
}

type candidate struct {
	name  string
	score float64
}

// Jaccard returns |a∩b| / |a∪b| for two skill sets. Two empty sets score 0.0;
// that is a defined special case, not an error.
func Jaccard(a, b map[string]struct{}) float64 {
	union := len(a)
	intersection := 0
	for s := range b {
		if _, ok := a[s]; ok {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// Recommendations computes, for every profile, the names of the jobs with the
// highest skill-overlap scores, bounded by MaxSimilarJobs. Every input job gets
// an entry, possibly empty. A job never recommends itself and the relation is
// not symmetric.
//
// Ranking is stable: candidates with equal scores keep their enumeration
// order, so the output is reproducible for a fixed input. The pairwise pass is
// O(N²) in the number of jobs; acceptable for the thousands of distinct job
// names this runs on, but a ceiling to keep in mind.
func Recommendations(profiles []JobSkillProfile) map[string][]string {
	sets := make([]map[string]struct{}, len(profiles))
	for i, p := range profiles {
		set := make(map[string]struct{}, len(p.Skills))
		for _, s := range p.Skills {
			set[s] = struct{}{}
		}
		sets[i] = set
	}

	out := make(map[string][]string, len(profiles))
	for i, p := range profiles {
		candidates := make([]candidate, 0, len(profiles)-1)
		for j, other := range profiles {
			if p.Name == other.Name {
				continue
			}
			candidates = append(candidates, candidate{
				name:  other.Name,
				score: Jaccard(sets[i], sets[j]),
			})
		}

		// Stable sort keeps enumeration order among equal scores.
		sort.SliceStable(candidates, func(a, b int) bool {
			return candidates[a].score > candidates[b].score
		})

		top := len(candidates)
		if top > MaxSimilarJobs {
			top = MaxSimilarJobs
		}
		similar := make([]string, 0, top)
		for _, c := range candidates[:top] {
			similar = append(similar, c.name)
		}
		out[p.Name] = similar
	}
	return out
}
