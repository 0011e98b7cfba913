package quiz

import (
	"math/rand"
	"time"
)

// Sampler draws question sets and presentation orders for quiz sessions.
// All draws are uniform Fisher–Yates shuffles; inputs are never reordered
// in place.
type Sampler struct {
	rnd *rand.Rand
}

func NewSampler() *Sampler {
	return &Sampler{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededSampler pins the random source, for deterministic tests.
func NewSeededSampler(seed int64) *Sampler {
	return &Sampler{rnd: rand.New(rand.NewSource(seed))}
}

// Sample draws min(count, len(pool)) questions without replacement. An empty
// pool yields an empty slice; callers report that as "no questions
// available" rather than failing.
func (s *Sampler) Sample(pool []Question, count int) []Question {
	shuffled := make([]Question, len(pool))
	copy(shuffled, pool)
	s.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count < 0 {
		count = 0
	}
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

// SampleComprehensive draws perCategory questions from each pool
// independently, then applies one more full permutation across the union so
// category boundaries are not visible in presentation order.
func (s *Sampler) SampleComprehensive(pools [][]Question, perCategory int) []Question {
	var combined []Question
	for _, pool := range pools {
		combined = append(combined, s.Sample(pool, perCategory)...)
	}
	s.rnd.Shuffle(len(combined), func(i, j int) {
		combined[i], combined[j] = combined[j], combined[i]
	})
	return combined
}

// ShuffleOptions builds the per-session view of a question: a fresh uniform
// permutation of its options, with the correct option recorded by text
// (taken from the stored index before permuting). Correctness is later
// decided by comparing option text, never shuffled index against stored
// index.
func (s *Sampler) ShuffleOptions(q Question) SampledQuestion {
	correct := ""
	if q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options) {
		correct = q.Options[q.CorrectIndex]
	}
	options := make([]string, len(q.Options))
	copy(options, q.Options)
	s.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return SampledQuestion{
		QuestionID:  q.ID,
		Text:        q.Text,
		Options:     options,
		CorrectText: correct,
		ImageKey:    q.ImageKey,
	}
}

// BuildSession samples a question set and shuffles each question's options,
// returning a ready-to-answer session.
func (s *Sampler) BuildSession(pool []Question, count int) *Session {
	return sessionFrom(s, s.Sample(pool, count))
}

// BuildComprehensiveSession is BuildSession across multiple category pools.
func (s *Sampler) BuildComprehensiveSession(pools [][]Question, perCategory int) *Session {
	return sessionFrom(s, s.SampleComprehensive(pools, perCategory))
}

func sessionFrom(s *Sampler, questions []Question) *Session {
	sampled := make([]SampledQuestion, len(questions))
	for i, q := range questions {
		sampled[i] = s.ShuffleOptions(q)
	}
	return NewSession(sampled)
}
