package sim

import (
	"fmt"
	"sort"
)

type researchState struct {
	ActiveID  string          `json:"active_id,omitempty"`
	Progress  float64         `json:"progress"`
	Available map[string]bool `json:"available"`
	Completed map[string]bool `json:"completed"`
}

func newResearchState() researchState {
	available := make(map[string]bool)
	for _, r := range researchCatalog {
		if r.Root {
			available[r.ID] = true
		}
	}
	return researchState{
		Available: available,
		Completed: make(map[string]bool),
	}
}

// StartResearch charges the full cost up front and claims the single active
// slot. Skill prerequisites are checked against the studio ledger.
func (s *Studio) StartResearch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playableLocked(); err != nil {
		return err
	}
	spec, err := researchByID(id)
	if err != nil {
		return err
	}
	if s.state.Research.ActiveID != "" {
		return ErrConflict
	}
	if s.state.Research.Completed[spec.ID] {
		return ErrInvalidState
	}
	if !s.state.Research.Available[spec.ID] {
		return ErrPolicy
	}
	for skill, level := range spec.RequiredSkills {
		if s.state.Ledger.Skill(skill) < level {
			return ErrPolicy
		}
	}
	if s.state.Ledger.MoneyMicros < spec.CostMicros {
		return ErrInsufficientFunds
	}
	s.state.Ledger.AddMoney(-spec.CostMicros)
	s.state.Research.ActiveID = spec.ID
	s.state.Research.Progress = 0
	s.log.Info("research started", "id", spec.ID, "cost_micros", spec.CostMicros)
	return nil
}

// CancelResearch refunds half the cost and discards accumulated progress.
func (s *Studio) CancelResearch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playableLocked(); err != nil {
		return err
	}
	if s.state.Research.ActiveID == "" {
		return ErrNotFound
	}
	spec, err := researchByID(s.state.Research.ActiveID)
	if err != nil {
		return err
	}
	s.state.Ledger.AddMoney(spec.CostMicros / 2)
	s.state.Research.ActiveID = ""
	s.state.Research.Progress = 0
	s.log.Info("research cancelled", "id", spec.ID)
	return nil
}

func (s *Studio) researchDailyLocked(events *[]Event) {
	id := s.state.Research.ActiveID
	if id == "" {
		return
	}
	spec, err := researchByID(id)
	if err != nil {
		// Unknown active id can only come from a corrupt snapshot; drop it.
		s.state.Research.ActiveID = ""
		s.state.Research.Progress = 0
		return
	}

	progress := 1.0
	for skill, weight := range spec.RequiredSkills {
		contribution := s.state.Ledger.Skill(skill) * 0.1
		for _, e := range s.state.Employees {
			contribution += e.Skills[skill] * 0.05
		}
		progress += weight * contribution
	}
	s.state.Research.Progress += progress

	if s.state.Research.Progress < spec.Duration {
		return
	}
	s.completeResearchLocked(spec, events)
}

func (s *Studio) completeResearchLocked(spec ResearchSpec, events *[]Event) {
	s.state.Research.ActiveID = ""
	s.state.Research.Progress = 0
	s.state.Research.Completed[spec.ID] = true
	delete(s.state.Research.Available, spec.ID)

	for skill, reward := range spec.SkillRewards {
		s.state.Ledger.AddSkill(skill, reward)
	}
	for _, next := range spec.Unlocks {
		if !s.state.Research.Completed[next] {
			s.state.Research.Available[next] = true
		}
	}
	for _, id := range spec.UnlockGenres {
		if !s.state.UnlockedGenres[id] {
			s.state.UnlockedGenres[id] = true
			if g, err := genreByID(id); err == nil {
				addEvent(events, "unlock", SeverityInfo, fmt.Sprintf("New genre available: %s", g.Name))
			}
		}
	}
	for _, id := range spec.UnlockPlatforms {
		if !s.state.UnlockedPlatforms[id] {
			s.state.UnlockedPlatforms[id] = true
			if p, err := platformByID(id); err == nil {
				addEvent(events, "unlock", SeverityInfo, fmt.Sprintf("New platform available: %s", p.Name))
			}
		}
	}

	addEvent(events, "research", SeverityInfo, fmt.Sprintf("Research complete: %s", spec.Name))
	s.log.Info("research complete", "id", spec.ID)
}

func (s *Studio) ResearchStatus() ResearchView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := ResearchView{
		Active:    s.state.Research.ActiveID,
		Progress:  s.state.Research.Progress,
		Available: sortedKeys(s.state.Research.Available),
		Completed: sortedKeys(s.state.Research.Completed),
	}
	if view.Active != "" {
		if spec, err := researchByID(view.Active); err == nil {
			view.Duration = spec.Duration
		}
	}
	return view
}

// ResearchCatalog lists every research item; hosts render lock state from the
// available/completed sets in ResearchStatus.
func (s *Studio) ResearchCatalog() []ResearchSpec {
	out := make([]ResearchSpec, len(researchCatalog))
	copy(out, researchCatalog)
	return out
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
