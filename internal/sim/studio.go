package sim

import (
	"log/slog"
	mathrand "math/rand"
	"strings"
	"sync"
	"time"
)

// Studio owns one simulated game studio. All public methods are safe for
// concurrent use; a single mutex covers the whole state, so every tick and
// every command runs atomically. The RNG is only touched with the mutex held.
type Studio struct {
	mu   sync.Mutex
	log  *slog.Logger
	rand *mathrand.Rand

	state studioState
}

type studioState struct {
	Name              string            `json:"name"`
	Difficulty        Difficulty        `json:"difficulty"`
	Specialization    Specialization    `json:"specialization"`
	Clock             Clock             `json:"clock"`
	Ledger            Ledger            `json:"ledger"`
	Employees         []*Employee       `json:"employees"`
	Candidates        []*Employee       `json:"candidates"`
	Project           *Project          `json:"project,omitempty"`
	Completed         []*Project        `json:"completed"`
	Research          researchState     `json:"research"`
	Campaigns         []*ActiveCampaign `json:"campaigns"`
	Finance           financeState      `json:"finance"`
	UnlockedGenres    map[string]bool   `json:"unlocked_genres"`
	UnlockedPlatforms map[string]bool   `json:"unlocked_platforms"`
	GameOver          bool              `json:"game_over"`
	GameOverReason    string            `json:"game_over_reason,omitempty"`
}

// NewStudio builds a fresh studio. Seed 0 picks a time-based seed; tests pass
// a fixed one for reproducible runs.
func NewStudio(in NewStudioInput, seed int64, logger *slog.Logger) (*Studio, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidState
	}
	difficulty := in.Difficulty
	if difficulty == "" {
		difficulty = DifficultyNormal
	}
	switch difficulty {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
	default:
		return nil, ErrInvalidState
	}
	specialization := in.Specialization
	if specialization == "" {
		specialization = SpecDeveloper
	}
	switch specialization {
	case SpecDeveloper, SpecArtist, SpecBusiness:
	default:
		return nil, ErrInvalidState
	}

	ledger := NewLedger(StartingMoneyMicros(difficulty))
	for skill, bonus := range specializationBonus(specialization) {
		ledger.AddSkill(skill, bonus)
	}
	var mainSkill string
	switch specialization {
	case SpecArtist:
		mainSkill = SkillArt
	case SpecBusiness:
		mainSkill = SkillMarketing
	default:
		mainSkill = SkillProgramming
	}

	founderName := strings.TrimSpace(in.FounderName)
	if founderName == "" {
		founderName = "Founder"
	}
	founderSkills := make(map[string]float64, len(SkillNames))
	for _, skill := range SkillNames {
		founderSkills[skill] = 1
	}
	founderSkills[mainSkill] = 3

	s := &Studio{
		log:  logger.With("component", "sim"),
		rand: mathrand.New(mathrand.NewSource(seed)),
		state: studioState{
			Name:           name,
			Difficulty:     difficulty,
			Specialization: specialization,
			Clock:          NewClock(),
			Ledger:         ledger,
			Employees: []*Employee{{
				ID:           "founder",
				Name:         founderName,
				MainSkill:    mainSkill,
				Skills:       founderSkills,
				Satisfaction: 100,
				Founder:      true,
			}},
			Research:          newResearchState(),
			UnlockedGenres:    startingUnlocks(genreLockedIDs()),
			UnlockedPlatforms: startingUnlocks(platformLockedIDs()),
		},
	}
	s.generateCandidatesLocked(CandidateBatchSize)
	s.log.Info("studio founded",
		"name", name, "difficulty", string(difficulty),
		"specialization", string(specialization))
	return s, nil
}

func genreLockedIDs() map[string]bool {
	out := make(map[string]bool, len(genreCatalog))
	for _, g := range genreCatalog {
		out[g.ID] = g.Locked
	}
	return out
}

func platformLockedIDs() map[string]bool {
	out := make(map[string]bool, len(platformCatalog))
	for _, p := range platformCatalog {
		out[p.ID] = p.Locked
	}
	return out
}

func startingUnlocks(locked map[string]bool) map[string]bool {
	out := make(map[string]bool, len(locked))
	for id, l := range locked {
		if !l {
			out[id] = true
		}
	}
	return out
}

// nextFloat draws from the studio RNG. Callers must hold s.mu.
func (s *Studio) nextFloat() float64 {
	return s.rand.Float64()
}

// playableLocked gates every player command once the studio has folded.
func (s *Studio) playableLocked() error {
	if s.state.GameOver {
		return ErrGameOver
	}
	return nil
}

func addEvent(events *[]Event, typ, severity, message string) {
	*events = append(*events, Event{Type: typ, Severity: severity, Message: message})
}

// AdvanceDay runs one simulated day. The engines run in a fixed order so each
// reads a consistent view of what the previous ones wrote; the month close
// pays salaries before settling finance so payroll shows in the same record.
func (s *Studio) AdvanceDay() (DayReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.GameOver {
		return DayReport{}, ErrGameOver
	}
	boundaries, err := s.state.Clock.AdvanceDay()
	if err != nil {
		return DayReport{}, err
	}

	var events []Event
	s.rosterDailyLocked()
	s.projectDailyLocked(&events)
	s.researchDailyLocked(&events)
	s.marketingDailyLocked(&events)
	s.postReleaseDailyLocked()
	if boundaries.Month {
		salaries := s.paySalariesLocked(&events)
		s.monthlyFinanceLocked(salaries, &events)
	}
	if boundaries.Year {
		s.yearlyCloseLocked(&events)
	}
	s.checkBankruptcyLocked(&events)

	report := DayReport{
		Day:         s.state.Clock.Day,
		Week:        s.state.Clock.Week,
		Month:       s.state.Clock.Month,
		Year:        s.state.Clock.Year,
		AbsoluteDay: s.state.Clock.AbsoluteDay(),
		Boundaries:  boundaries,
		MoneyMicros: s.state.Ledger.MoneyMicros,
		Reputation:  s.state.Ledger.Reputation,
		Fans:        s.state.Ledger.Fans,
		Events:      events,
		GameOver:    s.state.GameOver,
	}
	return report, nil
}

func (s *Studio) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Clock.Paused = true
	s.log.Info("clock paused")
}

func (s *Studio) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Clock.Paused = false
	s.log.Info("clock resumed")
}

func (s *Studio) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clock.Paused
}

func (s *Studio) Status() StatusView {
	s.mu.Lock()
	defer s.mu.Unlock()

	skills := make(map[string]float64, len(s.state.Ledger.Skills))
	for k, v := range s.state.Ledger.Skills {
		skills[k] = v
	}
	return StatusView{
		Name:           s.state.Name,
		Day:            s.state.Clock.Day,
		Week:           s.state.Clock.Week,
		Month:          s.state.Clock.Month,
		Year:           s.state.Clock.Year,
		Paused:         s.state.Clock.Paused,
		MoneyMicros:    s.state.Ledger.MoneyMicros,
		Reputation:     s.state.Ledger.Reputation,
		Fans:           s.state.Ledger.Fans,
		Skills:         skills,
		InvestorEquity: s.state.Ledger.InvestorEquity,
		Headcount:      len(s.state.Employees),
		GameOver:       s.state.GameOver,
		GameOverReason: s.state.GameOverReason,
	}
}
