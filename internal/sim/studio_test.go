package sim

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStudio(t *testing.T, seed int64) *Studio {
	t.Helper()
	s, err := NewStudio(NewStudioInput{
		Name:           "Test Studio",
		Difficulty:     DifficultyEasy,
		Specialization: SpecDeveloper,
		FounderName:    "Sam",
	}, seed, testLogger())
	if err != nil {
		t.Fatalf("NewStudio: %v", err)
	}
	return s
}

func advanceDays(t *testing.T, s *Studio, n int) DayReport {
	t.Helper()
	var last DayReport
	for i := 0; i < n; i++ {
		report, err := s.AdvanceDay()
		if err != nil {
			t.Fatalf("advance day %d: %v", i+1, err)
		}
		last = report
	}
	return last
}

func TestNewStudioValidation(t *testing.T) {
	cases := []struct {
		name string
		in   NewStudioInput
		err  error
	}{
		{name: "empty name", in: NewStudioInput{Difficulty: DifficultyNormal}, err: ErrInvalidState},
		{name: "bad difficulty", in: NewStudioInput{Name: "X", Difficulty: "brutal"}, err: ErrInvalidState},
		{name: "bad specialization", in: NewStudioInput{Name: "X", Specialization: "wizard"}, err: ErrInvalidState},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewStudio(tc.in, 1, testLogger()); !errors.Is(err, tc.err) {
				t.Fatalf("got %v, want %v", err, tc.err)
			}
		})
	}
}

func TestNewStudioSetup(t *testing.T) {
	s := newTestStudio(t, 1)
	status := s.Status()
	if status.MoneyMicros != 20_000*MicrosPerCredit {
		t.Fatalf("starting money = %d", status.MoneyMicros)
	}
	if status.Headcount != 1 {
		t.Fatalf("headcount = %d, want founder only", status.Headcount)
	}
	if got := status.Skills[SkillProgramming]; got != 3 {
		t.Fatalf("programming skill = %v, want 3 after specialization bonus", got)
	}
	if got := status.Skills[SkillArt]; got != 1 {
		t.Fatalf("art skill = %v, want base 1", got)
	}
	if len(s.CandidateList()) != CandidateBatchSize {
		t.Fatalf("candidates = %d, want %d", len(s.CandidateList()), CandidateBatchSize)
	}
}

func TestAdvanceMonthClosesBooks(t *testing.T) {
	s := newTestStudio(t, 7)
	report := advanceDays(t, s, DaysPerMonth)
	if report.Month != 2 {
		t.Fatalf("month = %d, want 2", report.Month)
	}
	if !report.Boundaries.Month {
		t.Fatalf("day 28 should cross a month boundary")
	}
	summary := s.FinanceSummary()
	if len(summary.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(summary.Records))
	}
	record := summary.Records[0]
	if record.Year != 1 || record.Month != 1 {
		t.Fatalf("record dated %d/%d, want 1/1", record.Month, record.Year)
	}
	if record.OverheadMicros != overheadTotalMicros {
		t.Fatalf("overhead = %d, want %d", record.OverheadMicros, overheadTotalMicros)
	}
	// Founder draws no salary and nothing was earned.
	if record.SalariesMicros != 0 || record.IncomeMicros != 0 {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestAdvanceWhilePaused(t *testing.T) {
	s := newTestStudio(t, 1)
	s.Pause()
	if _, err := s.AdvanceDay(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("got %v, want ErrInvalidState", err)
	}
	s.Resume()
	if _, err := s.AdvanceDay(); err != nil {
		t.Fatalf("advance after resume: %v", err)
	}
}

func TestHardFloorEndsGame(t *testing.T) {
	s := newTestStudio(t, 3)
	s.state.Ledger.MoneyMicros = HardBankruptcyFloorMicros - MicrosPerCredit

	report, err := s.AdvanceDay()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !report.GameOver {
		t.Fatalf("expected game over below the hard floor")
	}
	if _, err := s.AdvanceDay(); !errors.Is(err, ErrGameOver) {
		t.Fatalf("tick after game over: got %v, want ErrGameOver", err)
	}
	if err := s.Hire("anything"); !errors.Is(err, ErrGameOver) {
		t.Fatalf("command after game over: got %v, want ErrGameOver", err)
	}
}

func TestOverdraftOffersRescueLoan(t *testing.T) {
	s := newTestStudio(t, 3)
	s.state.Ledger.MoneyMicros = -1_000 * MicrosPerCredit
	s.state.Ledger.Reputation = 10 // eligible for the small loan

	report, err := s.AdvanceDay()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if report.GameOver {
		t.Fatalf("overdraft above the floor with credit available should not end the game")
	}
	found := false
	for _, e := range report.Events {
		if e.Type == "bankruptcy" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a bankruptcy warning event, got %+v", report.Events)
	}
}

func TestOverdraftWithoutCreditEndsGame(t *testing.T) {
	s := newTestStudio(t, 3)
	s.state.Ledger.MoneyMicros = -1_000 * MicrosPerCredit
	s.state.Ledger.Reputation = 0 // no loan eligibility

	report, err := s.AdvanceDay()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !report.GameOver {
		t.Fatalf("expected game over with no credit line")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestStudio(t, 11)
	advanceDays(t, s, 10)
	if err := s.StartProject(StartProjectInput{
		Title:        "Orbit Farm",
		GenreID:      "casual",
		PlatformID:   "pc",
		BudgetMicros: 2_000 * MicrosPerCredit,
	}); err != nil {
		t.Fatalf("start project: %v", err)
	}
	before := s.Status()

	blob, err := s.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	restored, err := RestoreStudio(blob, 11, testLogger())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	after := restored.Status()
	if after.Name != before.Name || after.MoneyMicros != before.MoneyMicros {
		t.Fatalf("restored status mismatch: %+v vs %+v", after, before)
	}
	if after.Day != before.Day || after.Month != before.Month || after.Year != before.Year {
		t.Fatalf("restored clock mismatch: %+v vs %+v", after, before)
	}
	if _, err := restored.CurrentProject(); err != nil {
		t.Fatalf("restored project missing: %v", err)
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	if _, err := RestoreStudio([]byte("not json"), 1, testLogger()); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := RestoreStudio([]byte(`{"version":99,"state":{"name":"x"}}`), 1, testLogger()); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("version mismatch: got %v, want ErrInvalidState", err)
	}
}
