package quiz

import "time"

// DefaultPassThreshold matches the school's pass mark.
const DefaultPassThreshold = 80.0

// Scorer evaluates submitted sessions. Threshold is a percentage; it is a
// parameter rather than a literal so tests and hosts can vary it.
type Scorer struct {
	Threshold float64
}

func NewScorer(threshold float64) Scorer { return Scorer{Threshold: threshold} }

// Grade computes the correct count and one AnswerRecord per question.
// Correctness is option-text equality against the question's recorded
// correct text; an unanswered question is incorrect, never an error.
// Grade is deterministic and does not touch session state.
func (sc Scorer) Grade(s *Session) (int, []AnswerRecord) {
	records := make([]AnswerRecord, len(s.Questions))
	correct := 0
	for i, q := range s.Questions {
		rec := AnswerRecord{QuestionID: q.QuestionID, SelectedIndex: s.Selections[i]}
		if sel := s.SelectedText(i); sel != "" && sel == q.CorrectText {
			rec.Correct = true
			correct++
		}
		records[i] = rec
	}
	return correct, records
}

// Score submits the session and evaluates it. Scoring an already-submitted
// session is a precondition violation: it returns ErrSessionSubmitted and
// writes nothing.
func (sc Scorer) Score(s *Session) (Outcome, []AnswerRecord, error) {
	if err := s.Submit(); err != nil {
		return Outcome{}, nil, err
	}
	correct, records := sc.Grade(s)
	total := len(s.Questions)
	pct := 0.0
	if total > 0 {
		pct = 100 * float64(correct) / float64(total)
	}
	return Outcome{
		Score:          correct,
		TotalQuestions: total,
		Percentage:     pct,
		Passed:         pct >= sc.Threshold,
	}, records, nil
}

// AssembleResult combines a scoring outcome with student identity and
// category context into the persisted shape. Pure; the write itself belongs
// to the result store.
func AssembleResult(o Outcome, studentName string, categoryID int64, now time.Time) Result {
	return Result{
		StudentName:    studentName,
		CategoryID:     categoryID,
		Score:          o.Score,
		TotalQuestions: o.TotalQuestions,
		Percentage:     o.Percentage,
		Passed:         o.Passed,
		CreatedAt:      now,
	}
}
