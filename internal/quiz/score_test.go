package quiz

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// fiveQuestionSession answers the first `correct` questions right and the
// rest wrong.
func fiveQuestionSession(t *testing.T, correct int) *Session {
	t.Helper()
	questions := make([]SampledQuestion, 5)
	for i := range questions {
		questions[i] = SampledQuestion{
			QuestionID:  int64(i + 1),
			Options:     []string{"right", "wrong"},
			CorrectText: "right",
		}
	}
	s := NewSession(questions)
	for i := 0; i < 5; i++ {
		sel := 1 // "wrong"
		if i < correct {
			sel = 0 // "right"
		}
		if err := s.Answer(i, sel); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}
	return s
}

func TestScoreAllCorrect(t *testing.T) {
	sc := NewScorer(DefaultPassThreshold)
	out, records, err := sc.Score(fiveQuestionSession(t, 5))
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if out.Score != 5 || out.Percentage != 100 || !out.Passed {
		t.Fatalf("got %+v, want score=5 percentage=100 passed=true", out)
	}
	if len(records) != 5 {
		t.Fatalf("expected 5 answer records, got %d", len(records))
	}
	for i, rec := range records {
		if !rec.Correct {
			t.Fatalf("record %d not marked correct", i)
		}
	}
}

func TestScoreThreeOfFive(t *testing.T) {
	sc := NewScorer(DefaultPassThreshold)
	out, _, err := sc.Score(fiveQuestionSession(t, 3))
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if out.Score != 3 || out.Percentage != 60 || out.Passed {
		t.Fatalf("got %+v, want score=3 percentage=60 passed=false", out)
	}
}

func TestScoreUnansweredCountsIncorrect(t *testing.T) {
	s := NewSession([]SampledQuestion{
		{QuestionID: 1, Options: []string{"right", "wrong"}, CorrectText: "right"},
		{QuestionID: 2, Options: []string{"right", "wrong"}, CorrectText: "right"},
	})
	if err := s.Answer(0, 0); err != nil {
		t.Fatalf("answer: %v", err)
	}

	out, records, err := NewScorer(DefaultPassThreshold).Score(s)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if out.Score != 1 || out.Percentage != 50 {
		t.Fatalf("got %+v, want score=1 percentage=50", out)
	}
	if records[1].Correct || records[1].SelectedIndex != nil {
		t.Fatalf("unanswered record = %+v, want incorrect with nil selection", records[1])
	}
}

func TestScoreZeroQuestions(t *testing.T) {
	out, records, err := NewScorer(DefaultPassThreshold).Score(NewSession(nil))
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if out.Percentage != 0 || out.Passed || out.TotalQuestions != 0 {
		t.Fatalf("got %+v, want percentage=0 passed=false total=0", out)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestScoreRejectsResubmission(t *testing.T) {
	sc := NewScorer(DefaultPassThreshold)
	s := fiveQuestionSession(t, 5)
	if _, _, err := sc.Score(s); err != nil {
		t.Fatalf("first score: %v", err)
	}
	if _, _, err := sc.Score(s); !errors.Is(err, ErrSessionSubmitted) {
		t.Fatalf("second score error = %v, want ErrSessionSubmitted", err)
	}
}

func TestScoreByTextNotIndex(t *testing.T) {
	// Canonical {options: ["14","20","12","10"], correctIndex: 0} shown as
	// ["12","14","10","20"]: position 1 ("14") must score correct even
	// though 1 != the stored index 0.
	s := NewSession([]SampledQuestion{{
		QuestionID:  1,
		Options:     []string{"12", "14", "10", "20"},
		CorrectText: "14",
	}})
	if err := s.Answer(0, 1); err != nil {
		t.Fatalf("answer: %v", err)
	}

	out, records, err := NewScorer(DefaultPassThreshold).Score(s)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if out.Score != 1 || !records[0].Correct {
		t.Fatalf("text-based comparison failed: %+v %+v", out, records[0])
	}
}

func TestGradeIsDeterministic(t *testing.T) {
	s := fiveQuestionSession(t, 3)
	sc := NewScorer(DefaultPassThreshold)

	c1, r1 := sc.Grade(s)
	c2, r2 := sc.Grade(s)
	if c1 != c2 {
		t.Fatalf("correct counts differ: %d vs %d", c1, c2)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Fatalf("answer records differ:\n%+v\n%+v", r1, r2)
	}
}

func TestScoreThresholdIsParameter(t *testing.T) {
	out, _, err := NewScorer(50).Score(fiveQuestionSession(t, 3))
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if !out.Passed {
		t.Fatalf("60%% should pass at threshold 50, got %+v", out)
	}
}

func TestAssembleResult(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	out := Outcome{Score: 4, TotalQuestions: 5, Percentage: 80, Passed: true}

	r := AssembleResult(out, "Sara", 7, now)
	if r.StudentName != "Sara" || r.CategoryID != 7 {
		t.Fatalf("identity not attached: %+v", r)
	}
	if r.Score != 4 || r.TotalQuestions != 5 || r.Percentage != 80 || !r.Passed {
		t.Fatalf("outcome not carried: %+v", r)
	}
	if !r.CreatedAt.Equal(now) {
		t.Fatalf("created at = %v, want %v", r.CreatedAt, now)
	}
}
