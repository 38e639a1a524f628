// ABOUTME: Confidence scoring: specificity, span coverage and entity completeness
// ABOUTME: Deterministic weighted sum with a diminishing-returns curve, clamped to [0,1]

package intent

// Weights configures the scoring emphasis. The defaults weight pattern
// specificity over entity completeness over span coverage.
type Weights struct {
	Specificity  float64
	Coverage     float64
	Completeness float64
}

// DefaultWeights is the tuned default emphasis.
var DefaultWeights = Weights{
	Specificity:  0.5,
	Coverage:     0.2,
	Completeness: 0.3,
}

// specificityKnee controls the diminishing-returns curve for specificity.
// weight=3 -> ~0.67, weight=6 -> 0.8, weight=12 -> ~0.89.
const specificityKnee = 1.5

// requiredKinds is the per-label set of entity kinds a complete intent of
// that label carries. Labels absent here require nothing.
var requiredKinds = map[Label][]Kind{
	LabelRun:       {KindTarget},
	LabelSearch:    {KindTarget},
	LabelShow:      {KindTarget},
	LabelSummarize: {KindTarget},
	LabelCreate:    {KindFile},
	LabelDelete:    {KindFile},
	LabelRename:    {KindFile},
	LabelMove:      {KindFile, KindDirectory},
}

// RequiredKinds returns the required entity kinds for a label.
func RequiredKinds(label Label) []Kind {
	return requiredKinds[label]
}

// Score computes the confidence of a candidate given its extracted entities
// and the utterance token count. Identical input always yields an identical
// score.
func Score(cand Candidate, entities []Entity, tokenCount int, w Weights) float64 {
	spec := float64(cand.Specificity)
	specNorm := spec / (spec + specificityKnee)

	coverage := 0.0
	if tokenCount > 0 {
		coverage = float64(cand.SpanLen()) / float64(tokenCount)
	}

	completeness := entityCompleteness(cand.Label, entities)

	c := w.Specificity*specNorm + w.Coverage*coverage + w.Completeness*completeness
	return clamp01(c)
}

// entityCompleteness is the fraction of the label's required kinds that were
// extracted. Labels with no required kinds are complete by definition.
func entityCompleteness(label Label, entities []Entity) float64 {
	required := requiredKinds[label]
	if len(required) == 0 {
		return 1.0
	}
	have := make(map[Kind]bool, len(entities))
	for _, e := range entities {
		have[e.Kind] = true
	}
	n := 0
	for _, k := range required {
		if have[k] {
			n++
		}
	}
	return float64(n) / float64(len(required))
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
