package sim

import (
	"errors"
	"testing"
)

func TestClockAdvanceBoundaries(t *testing.T) {
	cases := []struct {
		name  string
		days  int
		month int
		year  int
	}{
		{name: "one week", days: 7, month: 1, year: 1},
		{name: "one month", days: 28, month: 2, year: 1},
		{name: "one year", days: 336, month: 1, year: 2},
		{name: "year and a half", days: 336 + 168, month: 7, year: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClock()
			for i := 0; i < tc.days; i++ {
				if _, err := c.AdvanceDay(); err != nil {
					t.Fatalf("advance day %d: %v", i+1, err)
				}
			}
			if c.Month != tc.month || c.Year != tc.year {
				t.Fatalf("after %d days got month=%d year=%d, want month=%d year=%d",
					tc.days, c.Month, c.Year, tc.month, tc.year)
			}
			if c.Day < 1 || c.Day > DaysPerWeek || c.Week < 1 || c.Week > WeeksPerMonth {
				t.Fatalf("day/week out of bounds: day=%d week=%d", c.Day, c.Week)
			}
		})
	}
}

func TestClockPaused(t *testing.T) {
	c := NewClock()
	c.Paused = true
	if _, err := c.AdvanceDay(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("advance on paused clock: got %v, want ErrInvalidState", err)
	}
	if c.Day != 1 || c.Week != 1 || c.Month != 1 || c.Year != 1 {
		t.Fatalf("paused advance mutated clock: %+v", c)
	}
}

func TestClockAbsoluteDay(t *testing.T) {
	c := NewClock()
	if got := c.AbsoluteDay(); got != 1 {
		t.Fatalf("fresh clock absolute day = %d, want 1", got)
	}
	for i := 0; i < DaysPerYear; i++ {
		if _, err := c.AdvanceDay(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if got := c.AbsoluteDay(); got != DaysPerYear+1 {
		t.Fatalf("absolute day after a year = %d, want %d", got, DaysPerYear+1)
	}
}

func TestLedgerClamps(t *testing.T) {
	l := NewLedger(1_000 * MicrosPerCredit)
	l.AddReputation(-5)
	if l.Reputation != 0 {
		t.Fatalf("reputation floored at %v, want 0", l.Reputation)
	}
	l.AddFans(-10)
	if l.Fans != 0 {
		t.Fatalf("fans floored at %d, want 0", l.Fans)
	}
	l.AddSkill(SkillProgramming, 500)
	if got := l.Skill(SkillProgramming); got != SkillCap {
		t.Fatalf("skill = %v, want cap %v", got, SkillCap)
	}
}

func TestMoneyConversions(t *testing.T) {
	if got := CreditsToMicros(1.5); got != 1_500_000 {
		t.Fatalf("CreditsToMicros(1.5) = %d", got)
	}
	if got := MicrosToCredits(2_500_000); got != 2.5 {
		t.Fatalf("MicrosToCredits(2500000) = %v", got)
	}
}

func TestStartingMoneyByDifficulty(t *testing.T) {
	cases := []struct {
		difficulty Difficulty
		credits    int64
	}{
		{DifficultyEasy, 20_000},
		{DifficultyNormal, 10_000},
		{DifficultyHard, 5_000},
	}
	for _, tc := range cases {
		if got := StartingMoneyMicros(tc.difficulty); got != tc.credits*MicrosPerCredit {
			t.Fatalf("%s starting money = %d", tc.difficulty, got)
		}
	}
}
