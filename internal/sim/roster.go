package sim

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

type Employee struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	MainSkill    string             `json:"main_skill"`
	Skills       map[string]float64 `json:"skills"`
	SalaryMicros int64              `json:"salary_micros"` // annual; founder is 0
	Experience   float64            `json:"experience"`
	Satisfaction float64            `json:"satisfaction"`
	Founder      bool               `json:"founder"`
}

func (e *Employee) MonthlySalaryMicros() int64 {
	if e.Founder {
		return 0
	}
	return e.SalaryMicros / MonthsPerYear
}

// generateCandidatesLocked replaces the candidate pool. Skill ranges inflate
// with elapsed game years, modeling a maturing talent market.
func (s *Studio) generateCandidatesLocked(count int) {
	year := float64(s.state.Clock.Year)
	base := 1 + (year-1)*0.5
	max := 2 + (year-1)*0.7

	out := make([]*Employee, 0, count)
	for i := 0; i < count; i++ {
		main := SkillNames[int(s.nextFloat()*float64(len(SkillNames)))%len(SkillNames)]
		skills := make(map[string]float64, len(SkillNames))
		for _, name := range SkillNames {
			if name == main {
				skills[name] = clampFloat(base+s.nextFloat()*(max-base), 1, SkillCap)
				continue
			}
			level := s.nextFloat() * base
			if level < 1 {
				level = 1
			}
			skills[name] = clampFloat(level, 1, SkillCap)
		}
		experience := float64(int(s.nextFloat() * year))
		if experience < 1 {
			experience = 1
		}
		salary := 24_000 * (1 + (skills[main]-1)*0.5 + (experience-1)*0.2)

		first := candidateFirstNames[int(s.nextFloat()*float64(len(candidateFirstNames)))%len(candidateFirstNames)]
		last := candidateLastNames[int(s.nextFloat()*float64(len(candidateLastNames)))%len(candidateLastNames)]

		out = append(out, &Employee{
			ID:           uuid.NewString(),
			Name:         fmt.Sprintf("%s %s", first, last),
			MainSkill:    main,
			Skills:       skills,
			SalaryMicros: CreditsToMicros(salary),
			Experience:   experience,
			Satisfaction: 75,
		})
	}
	s.state.Candidates = out
}

// RefreshCandidates discards the current candidate pool and buys a fresh one.
func (s *Studio) RefreshCandidates() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playableLocked(); err != nil {
		return err
	}
	if s.state.Ledger.MoneyMicros < CandidateRefreshMicros {
		return ErrInsufficientFunds
	}
	s.state.Ledger.AddMoney(-CandidateRefreshMicros)
	s.generateCandidatesLocked(CandidateBatchSize)
	s.log.Info("candidates refreshed", "count", len(s.state.Candidates))
	return nil
}

func (s *Studio) Hire(employeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playableLocked(); err != nil {
		return err
	}
	idx := -1
	for i, c := range s.state.Candidates {
		if c.ID == employeeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	if len(s.state.Employees) >= MaxRosterSize {
		return ErrCapacity
	}
	candidate := s.state.Candidates[idx]
	if s.state.Ledger.MoneyMicros < candidate.MonthlySalaryMicros()*3 {
		return ErrInsufficientFunds
	}
	s.state.Candidates = append(s.state.Candidates[:idx], s.state.Candidates[idx+1:]...)
	s.state.Employees = append(s.state.Employees, candidate)
	s.log.Info("employee hired", "name", candidate.Name, "main_skill", candidate.MainSkill)
	return nil
}

func (s *Studio) Fire(employeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playableLocked(); err != nil {
		return err
	}
	idx := -1
	for i, e := range s.state.Employees {
		if e.ID == employeeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	target := s.state.Employees[idx]
	if target.Founder {
		return ErrPolicy
	}
	// Severance of one pay period; this may push money negative, which the
	// finance pass will catch on the next tick.
	s.state.Ledger.AddMoney(-target.MonthlySalaryMicros())
	s.state.Employees = append(s.state.Employees[:idx], s.state.Employees[idx+1:]...)
	s.log.Info("employee fired", "name", target.Name)
	return nil
}

func (s *Studio) Train(employeeID, skill string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playableLocked(); err != nil {
		return err
	}
	if !validSkill(skill) {
		return ErrNotFound
	}
	var target *Employee
	for _, e := range s.state.Employees {
		if e.ID == employeeID {
			target = e
			break
		}
	}
	if target == nil {
		return ErrNotFound
	}
	if s.state.Ledger.MoneyMicros < TrainingCostMicros {
		return ErrInsufficientFunds
	}
	s.state.Ledger.AddMoney(-TrainingCostMicros)
	target.Skills[skill] = clampFloat(target.Skills[skill]+0.5+s.nextFloat()*0.5, 0, SkillCap)
	target.Satisfaction = clampFloat(target.Satisfaction+10, 0, 100)
	s.log.Info("employee trained", "name", target.Name, "skill", skill)
	return nil
}

// rosterDailyLocked applies the small stochastic daily skill growth.
func (s *Studio) rosterDailyLocked() {
	for _, e := range s.state.Employees {
		if s.nextFloat() >= 0.005 {
			continue
		}
		e.Skills[e.MainSkill] = clampFloat(e.Skills[e.MainSkill]+0.1+s.nextFloat()*0.1, 0, SkillCap)
		if s.nextFloat() < 0.10 {
			e.Experience += 0.1
		}
	}
}

// paySalariesLocked runs payday: deducts salaries, drifts satisfaction, and
// resolves resignations. Returns the total salaries paid for the month record.
func (s *Studio) paySalariesLocked(events *[]Event) int64 {
	var total int64
	for _, e := range s.state.Employees {
		total += e.MonthlySalaryMicros()
	}
	s.state.Ledger.AddMoney(-total)

	broke := s.state.Ledger.MoneyMicros < 0
	recent := s.recentRatingAverageLocked(3)
	for _, e := range s.state.Employees {
		if e.Founder {
			continue
		}
		if broke {
			e.Satisfaction -= 30
		} else if s.state.Ledger.MoneyMicros > 100_000*MicrosPerCredit {
			e.Satisfaction += 5
		}
		if recent >= 8 {
			e.Satisfaction += 5
		} else if recent > 0 && recent < 5 {
			e.Satisfaction -= 5
		}
		if len(s.state.Employees) > 10 {
			e.Satisfaction -= 2
		}
		e.Satisfaction = clampFloat(e.Satisfaction, 0, 100)
	}

	if broke {
		addEvent(events, "salaries", SeverityDanger, "Payroll drained the account; the team is unsettled")
	}

	// Resignation sweep after the drift so this month's morale counts.
	kept := s.state.Employees[:0]
	for _, e := range s.state.Employees {
		if !e.Founder && e.Satisfaction < 20 {
			chance := (20 - e.Satisfaction) * 0.05
			if s.nextFloat() < chance {
				addEvent(events, "resignation", SeverityWarning, fmt.Sprintf("%s resigned", e.Name))
				s.log.Warn("employee resigned", "name", e.Name, "satisfaction", e.Satisfaction)
				continue
			}
		}
		kept = append(kept, e)
	}
	s.state.Employees = kept
	return total
}

// recentRatingAverageLocked averages the ratings of the last n releases,
// returning 0 when there are none.
func (s *Studio) recentRatingAverageLocked(n int) float64 {
	count := len(s.state.Completed)
	if count == 0 || n <= 0 {
		return 0
	}
	if n > count {
		n = count
	}
	var sum float64
	for _, p := range s.state.Completed[count-n:] {
		sum += p.Rating
	}
	return sum / float64(n)
}

func (s *Studio) Roster() []EmployeeView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return employeeViews(s.state.Employees)
}

func (s *Studio) CandidateList() []EmployeeView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return employeeViews(s.state.Candidates)
}

func employeeViews(list []*Employee) []EmployeeView {
	out := make([]EmployeeView, 0, len(list))
	for _, e := range list {
		skills := make(map[string]float64, len(e.Skills))
		for k, v := range e.Skills {
			skills[k] = v
		}
		out = append(out, EmployeeView{
			ID:           e.ID,
			Name:         e.Name,
			MainSkill:    e.MainSkill,
			Skills:       skills,
			SalaryMicros: e.SalaryMicros,
			Experience:   e.Experience,
			Satisfaction: e.Satisfaction,
			Founder:      e.Founder,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
