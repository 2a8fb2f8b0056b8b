package sim

import (
	"errors"
	"testing"
)

func startTestProject(t *testing.T, s *Studio, budgetCredits int64) {
	t.Helper()
	if err := s.StartProject(StartProjectInput{
		Title:        "Starlight Run",
		GenreID:      "casual",
		PlatformID:   "pc",
		BudgetMicros: budgetCredits * MicrosPerCredit,
	}); err != nil {
		t.Fatalf("start project: %v", err)
	}
}

func TestStartProjectValidation(t *testing.T) {
	s := newTestStudio(t, 21)
	cases := []struct {
		name string
		in   StartProjectInput
		err  error
	}{
		{name: "empty title", in: StartProjectInput{GenreID: "casual", PlatformID: "pc", BudgetMicros: MicrosPerCredit}, err: ErrInvalidState},
		{name: "unknown genre", in: StartProjectInput{Title: "X", GenreID: "roguelike", PlatformID: "pc", BudgetMicros: MicrosPerCredit}, err: ErrNotFound},
		{name: "locked genre", in: StartProjectInput{Title: "X", GenreID: "mmorpg", PlatformID: "pc", BudgetMicros: MicrosPerCredit}, err: ErrPolicy},
		{name: "unknown platform", in: StartProjectInput{Title: "X", GenreID: "casual", PlatformID: "dreamcast", BudgetMicros: MicrosPerCredit}, err: ErrNotFound},
		{name: "locked platform", in: StartProjectInput{Title: "X", GenreID: "casual", PlatformID: "vr", BudgetMicros: MicrosPerCredit}, err: ErrPolicy},
		{name: "zero budget", in: StartProjectInput{Title: "X", GenreID: "casual", PlatformID: "pc"}, err: ErrInvalidState},
		{name: "cannot afford", in: StartProjectInput{Title: "X", GenreID: "casual", PlatformID: "pc", BudgetMicros: 1_000_000 * MicrosPerCredit}, err: ErrInsufficientFunds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := s.StartProject(tc.in); !errors.Is(err, tc.err) {
				t.Fatalf("got %v, want %v", err, tc.err)
			}
		})
	}
}

func TestStartProjectEscrowsBudget(t *testing.T) {
	s := newTestStudio(t, 21)
	before := s.Status().MoneyMicros
	startTestProject(t, s, 5_000)
	if got := before - s.Status().MoneyMicros; got != 5_000*MicrosPerCredit {
		t.Fatalf("escrow = %d, want full budget", got)
	}
	if err := s.StartProject(StartProjectInput{
		Title: "Second", GenreID: "puzzle", PlatformID: "pc", BudgetMicros: MicrosPerCredit,
	}); !errors.Is(err, ErrConflict) {
		t.Fatalf("second project: got %v, want ErrConflict", err)
	}
}

func TestCancelProjectRefundsHalfRemaining(t *testing.T) {
	s := newTestStudio(t, 21)
	startTestProject(t, s, 5_000)
	s.state.Project.RemainingMicros = 4_000 * MicrosPerCredit

	before := s.Status().MoneyMicros
	if err := s.CancelProject(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := s.Status().MoneyMicros - before; got != 2_000*MicrosPerCredit {
		t.Fatalf("refund = %d, want half of remaining", got)
	}
	if err := s.CancelProject(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cancel with no project: got %v, want ErrNotFound", err)
	}
}

func TestProjectDailyProgressAndBurn(t *testing.T) {
	s := newTestStudio(t, 21)
	startTestProject(t, s, 10_000)
	p := s.state.Project

	var events []Event
	s.projectDailyLocked(&events)

	if p.StageProgress <= 0 {
		t.Fatalf("no stage progress after a day")
	}
	if p.Quality <= 0 {
		t.Fatalf("no quality gain after a day")
	}
	wantRemaining := 10_000*MicrosPerCredit - 10_000*MicrosPerCredit/200
	if p.RemainingMicros != wantRemaining {
		t.Fatalf("remaining = %d, want %d after one day of burn", p.RemainingMicros, wantRemaining)
	}
}

func TestProjectZeroBudgetDecaysQuality(t *testing.T) {
	s := newTestStudio(t, 21)
	startTestProject(t, s, 1_000)
	p := s.state.Project
	p.RemainingMicros = 0
	p.Quality = 50

	var events []Event
	s.projectDailyLocked(&events)
	if p.Quality >= 50 {
		t.Fatalf("quality = %v, want decay below 50", p.Quality)
	}
}

func TestStageTransitions(t *testing.T) {
	s := newTestStudio(t, 21)
	startTestProject(t, s, 10_000)
	p := s.state.Project
	p.StageProgress = 99.9

	var events []Event
	s.projectDailyLocked(&events)
	if p.Stage != stagePrototype {
		t.Fatalf("stage = %s, want prototype", stageNames[p.Stage])
	}
	if p.StageProgress >= 100 {
		t.Fatalf("stage progress not reset: %v", p.StageProgress)
	}
	if p.Overall() < 20 {
		t.Fatalf("overall = %v, want at least 20 in second stage", p.Overall())
	}
}

func TestReleaseCompletesProject(t *testing.T) {
	s := newTestStudio(t, 21)
	startTestProject(t, s, 5_000)
	p := s.state.Project
	p.Stage = stageRelease
	p.StageProgress = 99.9
	p.Quality = 80

	moneyBefore := s.Status().MoneyMicros
	report, err := s.AdvanceDay()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	if s.state.Project != nil {
		t.Fatalf("project still active after release")
	}
	released := s.CompletedProjects()
	if len(released) != 1 {
		t.Fatalf("completed = %d, want exactly one release", len(released))
	}
	game := released[0]
	if game.Rating < 0 || game.Rating > 10 {
		t.Fatalf("rating = %v, want within [0,10]", game.Rating)
	}
	if len(game.Reviews) != len(reviewSites) {
		t.Fatalf("reviews = %d, want %d", len(game.Reviews), len(reviewSites))
	}
	if game.Sales <= 0 {
		t.Fatalf("no launch sales")
	}
	if s.Status().MoneyMicros <= moneyBefore {
		t.Fatalf("release earned no revenue")
	}
	if s.Status().Reputation <= 0 || s.Status().Fans <= 0 {
		t.Fatalf("release should raise reputation and fans")
	}
	foundRelease := false
	for _, e := range report.Events {
		if e.Type == "release" {
			foundRelease = true
		}
	}
	if !foundRelease {
		t.Fatalf("missing release event: %+v", report.Events)
	}
}

func TestTrailingSalesDecay(t *testing.T) {
	s := newTestStudio(t, 21)
	startTestProject(t, s, 5_000)
	p := s.state.Project
	p.Stage = stageRelease
	p.StageProgress = 99.9
	p.Quality = 80
	if _, err := s.AdvanceDay(); err != nil {
		t.Fatalf("release day: %v", err)
	}

	launch := s.CompletedProjects()[0].Sales
	if _, err := s.AdvanceDay(); err != nil {
		t.Fatalf("day after release: %v", err)
	}
	if got := s.CompletedProjects()[0].Sales; got <= launch {
		t.Fatalf("sales = %d, want trailing growth above %d", got, launch)
	}
}

func TestYearlyAward(t *testing.T) {
	s := newTestStudio(t, 21)
	genre, _ := genreByID("casual")
	platform, _ := platformByID("pc")
	s.state.Completed = append(s.state.Completed, &Project{
		ID: "g1", Title: "Winner", Genre: genre, Platform: platform,
		Rating: 8.5, Released: true, ReleasedDay: 100,
		RevenueMicros: 100_000 * MicrosPerCredit,
	})
	s.state.Clock = Clock{Day: 1, Week: 1, Month: 1, Year: 2}

	repBefore := s.state.Ledger.Reputation
	moneyBefore := s.state.Ledger.MoneyMicros
	var events []Event
	s.yearlyCloseLocked(&events)

	if got := s.state.Ledger.MoneyMicros - moneyBefore; got != 20_000*MicrosPerCredit {
		t.Fatalf("award bonus = %d, want 20%% of revenue", got)
	}
	if s.state.Ledger.Reputation-repBefore != 20 {
		t.Fatalf("award reputation = %v, want +20", s.state.Ledger.Reputation-repBefore)
	}
	if s.state.Ledger.Fans != 5_000 {
		t.Fatalf("award fans = %d, want 5000", s.state.Ledger.Fans)
	}
}

func TestYearlyAwardRequiresSeven(t *testing.T) {
	s := newTestStudio(t, 21)
	genre, _ := genreByID("casual")
	platform, _ := platformByID("pc")
	s.state.Completed = append(s.state.Completed, &Project{
		ID: "g1", Title: "Flop", Genre: genre, Platform: platform,
		Rating: 6.9, Released: true, ReleasedDay: 100,
		RevenueMicros: 100_000 * MicrosPerCredit,
	})
	s.state.Clock = Clock{Day: 1, Week: 1, Month: 1, Year: 2}

	moneyBefore := s.state.Ledger.MoneyMicros
	var events []Event
	s.yearlyCloseLocked(&events)
	if s.state.Ledger.MoneyMicros != moneyBefore {
		t.Fatalf("sub-7 rating should earn no award")
	}
}
