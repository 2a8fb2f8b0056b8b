package sim

import (
	"errors"
	"math"
)

const (
	MicrosPerCredit = int64(1_000_000)

	DaysPerWeek   = 7
	WeeksPerMonth = 4
	MonthsPerYear = 12
	DaysPerMonth  = DaysPerWeek * WeeksPerMonth  // 28
	DaysPerYear   = DaysPerMonth * MonthsPerYear // 336

	MaxRosterSize = 12
	SkillCap      = 100.0

	CandidateBatchSize        = 3
	CandidateRefreshMicros    = int64(500) * MicrosPerCredit
	TrainingCostMicros        = int64(1_000) * MicrosPerCredit
	SalesWindowDays           = int64(336)
	CompletedRetentionDays    = int64(1_008)
	HardBankruptcyFloorMicros = int64(-50_000) * MicrosPerCredit
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCapacity          = errors.New("capacity limit reached")
	ErrConflict          = errors.New("exclusive slot already occupied")
	ErrNotFound          = errors.New("not found")
	ErrPolicy            = errors.New("not eligible")
	ErrInvalidState      = errors.New("invalid state")
	ErrGameOver          = errors.New("game over")
)

const (
	SkillProgramming = "programming"
	SkillDesign      = "design"
	SkillArt         = "art"
	SkillSound       = "sound"
	SkillMarketing   = "marketing"
	SkillManagement  = "management"
)

var SkillNames = []string{
	SkillProgramming,
	SkillDesign,
	SkillArt,
	SkillSound,
	SkillMarketing,
	SkillManagement,
}

func validSkill(name string) bool {
	for _, s := range SkillNames {
		if s == name {
			return true
		}
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

func StartingMoneyMicros(d Difficulty) int64 {
	switch d {
	case DifficultyEasy:
		return 20_000 * MicrosPerCredit
	case DifficultyHard:
		return 5_000 * MicrosPerCredit
	default:
		return 10_000 * MicrosPerCredit
	}
}

type Specialization string

const (
	SpecDeveloper Specialization = "developer"
	SpecArtist    Specialization = "artist"
	SpecBusiness  Specialization = "business"
)

func specializationBonus(s Specialization) map[string]float64 {
	switch s {
	case SpecDeveloper:
		return map[string]float64{SkillProgramming: 2, SkillDesign: 2}
	case SpecArtist:
		return map[string]float64{SkillArt: 2, SkillDesign: 2}
	case SpecBusiness:
		return map[string]float64{SkillMarketing: 2, SkillManagement: 2}
	default:
		return nil
	}
}

func CreditsToMicros(v float64) int64 {
	return int64(math.Round(v * float64(MicrosPerCredit)))
}

func MicrosToCredits(v int64) float64 {
	return float64(v) / float64(MicrosPerCredit)
}

// Clock tracks simulated game time. Day/week/month always sit inside their
// bounds after an advance; overflow cascades day -> week -> month -> year.
type Clock struct {
	Day    int  `json:"day"`
	Week   int  `json:"week"`
	Month  int  `json:"month"`
	Year   int  `json:"year"`
	Paused bool `json:"paused"`
}

func NewClock() Clock {
	return Clock{Day: 1, Week: 1, Month: 1, Year: 1}
}

// Boundaries reports which period boundaries a single advance crossed.
type Boundaries struct {
	Week  bool `json:"week"`
	Month bool `json:"month"`
	Year  bool `json:"year"`
}

func (c *Clock) AdvanceDay() (Boundaries, error) {
	if c.Paused {
		return Boundaries{}, ErrInvalidState
	}
	var b Boundaries
	c.Day++
	if c.Day > DaysPerWeek {
		c.Day = 1
		c.Week++
		b.Week = true
	}
	if c.Week > WeeksPerMonth {
		c.Week = 1
		c.Month++
		b.Month = true
	}
	if c.Month > MonthsPerYear {
		c.Month = 1
		c.Year++
		b.Year = true
	}
	return b, nil
}

// AbsoluteDay numbers days from 1 at year 1 / month 1 / week 1 / day 1.
func (c Clock) AbsoluteDay() int64 {
	return int64(c.Year-1)*DaysPerYear +
		int64(c.Month-1)*DaysPerMonth +
		int64(c.Week-1)*DaysPerWeek +
		int64(c.Day)
}

// Ledger is the shared studio state every engine reads and mutates in turn
// during a tick. Reputation and fans are floored at zero; skills cap at 100.
type Ledger struct {
	MoneyMicros    int64              `json:"money_micros"`
	Reputation     float64            `json:"reputation"`
	Fans           int64              `json:"fans"`
	Skills         map[string]float64 `json:"skills"`
	InvestorEquity float64            `json:"investor_equity"`
}

func NewLedger(startingMicros int64) Ledger {
	skills := make(map[string]float64, len(SkillNames))
	for _, name := range SkillNames {
		skills[name] = 1
	}
	return Ledger{
		MoneyMicros: startingMicros,
		Skills:      skills,
	}
}

func (l *Ledger) AddMoney(deltaMicros int64) {
	l.MoneyMicros += deltaMicros
}

func (l *Ledger) AddReputation(delta float64) {
	l.Reputation += delta
	if l.Reputation < 0 {
		l.Reputation = 0
	}
}

func (l *Ledger) AddFans(delta int64) {
	l.Fans += delta
	if l.Fans < 0 {
		l.Fans = 0
	}
}

func (l *Ledger) AddSkill(name string, delta float64) {
	l.Skills[name] = clampFloat(l.Skills[name]+delta, 0, SkillCap)
}

func (l *Ledger) Skill(name string) float64 {
	return l.Skills[name]
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
