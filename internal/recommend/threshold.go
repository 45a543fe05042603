package recommend

import (
	"gearmatch/internal/domain"
)

// LowConfidenceConcern marks fallback picks shown despite missing the score
// threshold.
const LowConfidenceConcern = "low match confidence: no product met the minimum score"

// Split divides scored products (pre-sorted descending) into top picks and
// alternates. When nothing reaches MinScore and candidates exist, the first
// FallbackCount products qualify anyway, each tagged with
// LowConfidenceConcern exactly once; splitting the same slice twice must not
// duplicate the tag.
func Split(scored []domain.ScoredProduct, opts Options) (topPicks, alternates []domain.ScoredProduct) {
	opts = opts.withDefaults()

	qualifying := make([]domain.ScoredProduct, 0, len(scored))
	for _, sp := range scored {
		if sp.Score >= opts.MinScore {
			qualifying = append(qualifying, sp)
		}
	}

	if len(qualifying) == 0 && len(scored) > 0 {
		n := opts.FallbackCount
		if n > len(scored) {
			n = len(scored)
		}
		for i := 0; i < n; i++ {
			tagLowConfidence(&scored[i])
			qualifying = append(qualifying, scored[i])
		}
	}

	if len(qualifying) > opts.TopPickCount {
		return qualifying[:opts.TopPickCount], qualifying[opts.TopPickCount:]
	}
	return qualifying, []domain.ScoredProduct{}
}

// tagLowConfidence prepends the fallback concern unless already present.
// This is the only post-creation mutation of a ScoredProduct.
func tagLowConfidence(sp *domain.ScoredProduct) {
	for _, c := range sp.Concerns {
		if c == LowConfidenceConcern {
			return
		}
	}
	sp.Concerns = append([]string{LowConfidenceConcern}, sp.Concerns...)
}
