package sim

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

const (
	stageConcept = iota
	stagePrototype
	stageDevelopment
	stageTesting
	stageRelease
	stageCount
)

var stageNames = []string{"concept", "prototype", "development", "testing", "release"}

var reviewSites = []string{
	"Pixel Verdict", "The Daily Patch", "Critical Score", "Gamer Ledger", "Loading Bar",
}

type Review struct {
	Site  string  `json:"site"`
	Score float64 `json:"score"`
}

type Project struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Genre           GenreSpec    `json:"genre"`
	Platform        PlatformSpec `json:"platform"`
	BudgetMicros    int64        `json:"budget_micros"`
	RemainingMicros int64        `json:"remaining_micros"`
	Stage           int          `json:"stage"`
	StageProgress   float64      `json:"stage_progress"`
	Quality         float64      `json:"quality"`
	Marketing       float64      `json:"marketing"`
	Hype            float64      `json:"hype"`
	Released        bool         `json:"released"`
	ReleasedDay     int64        `json:"released_day"`
	InitialSales    int64        `json:"initial_sales"`
	Sales           int64        `json:"sales"`
	RevenueMicros   int64        `json:"revenue_micros"`
	Reviews         []Review     `json:"reviews"`
	Rating          float64      `json:"rating"`
}

// Overall maps the stage index and intra-stage progress onto a 0..100 scale.
func (p *Project) Overall() float64 {
	return float64(p.Stage)*20 + p.StageProgress/5
}

// StartProject escrows the full budget up front; the remaining budget drains
// daily and whatever is left on cancel is half refunded.
func (s *Studio) StartProject(in StartProjectInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playableLocked(); err != nil {
		return err
	}
	if s.state.Project != nil {
		return ErrConflict
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return ErrInvalidState
	}
	genre, err := genreByID(in.GenreID)
	if err != nil {
		return err
	}
	platform, err := platformByID(in.PlatformID)
	if err != nil {
		return err
	}
	if !s.state.UnlockedGenres[genre.ID] {
		return ErrPolicy
	}
	if !s.state.UnlockedPlatforms[platform.ID] {
		return ErrPolicy
	}
	if in.BudgetMicros <= 0 {
		return ErrInvalidState
	}
	if s.state.Ledger.MoneyMicros < in.BudgetMicros {
		return ErrInsufficientFunds
	}
	s.state.Ledger.AddMoney(-in.BudgetMicros)
	s.state.Project = &Project{
		ID:              uuid.NewString(),
		Title:           title,
		Genre:           genre,
		Platform:        platform,
		BudgetMicros:    in.BudgetMicros,
		RemainingMicros: in.BudgetMicros,
	}
	s.log.Info("project started",
		"title", title, "genre", genre.ID, "platform", platform.ID,
		"budget_micros", in.BudgetMicros)
	return nil
}

func (s *Studio) CancelProject() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playableLocked(); err != nil {
		return err
	}
	p := s.state.Project
	if p == nil {
		return ErrNotFound
	}
	refund := p.RemainingMicros / 2
	s.state.Ledger.AddMoney(refund)
	s.state.Project = nil
	s.log.Info("project cancelled", "title", p.Title, "refund_micros", refund)
	return nil
}

// teamSkillLocked is the studio skill plus every roster member's level in the
// same skill; the shared stage and quality formulas read team totals.
func (s *Studio) teamSkillLocked(name string) float64 {
	total := s.state.Ledger.Skill(name)
	for _, e := range s.state.Employees {
		total += e.Skills[name]
	}
	return total
}

func (p *Project) stageSkillWeight(team func(string) float64) float64 {
	switch p.Stage {
	case stageConcept:
		return team(SkillDesign) * 0.1
	case stagePrototype:
		return team(SkillProgramming)*0.05 + team(SkillDesign)*0.05
	case stageDevelopment:
		return team(SkillProgramming)*0.07 + team(SkillArt)*0.05 + team(SkillSound)*0.03
	case stageTesting:
		return team(SkillProgramming)*0.05 + team(SkillDesign)*0.05
	default:
		return team(SkillMarketing) * 0.1
	}
}

func (s *Studio) projectDailyLocked(events *[]Event) {
	p := s.state.Project
	if p == nil {
		return
	}
	headcount := float64(len(s.state.Employees))

	progress := (0.5 + p.stageSkillWeight(s.teamSkillLocked) + 0.1*headcount) /
		(p.Genre.Difficulty * p.Platform.Difficulty)
	p.StageProgress += progress

	budgetRatio := 0.0
	if p.BudgetMicros > 0 {
		budgetRatio = float64(p.RemainingMicros) / float64(p.BudgetMicros)
	}
	if p.RemainingMicros > 0 {
		gain := (0.1 +
			s.teamSkillLocked(SkillProgramming)*0.02 +
			s.teamSkillLocked(SkillDesign)*0.03 +
			s.teamSkillLocked(SkillArt)*0.02 +
			s.teamSkillLocked(SkillSound)*0.01 +
			0.02*headcount) * (0.5 + 0.5*budgetRatio)
		p.Quality = clampFloat(p.Quality+gain, 0, 100)

		burn := p.BudgetMicros / 200 // 0.5% of the original budget per day
		if burn > p.RemainingMicros {
			burn = p.RemainingMicros
		}
		p.RemainingMicros -= burn
	} else {
		// Crunching with no money left erodes the build.
		p.Quality *= 0.99
	}

	for p.StageProgress >= 100 {
		p.StageProgress -= 100
		if p.Stage == stageRelease {
			s.completeProjectLocked(events)
			return
		}
		p.Stage++
		addEvent(events, "project", SeverityInfo,
			fmt.Sprintf("%s entered the %s stage", p.Title, stageNames[p.Stage]))
	}
}

func (s *Studio) completeProjectLocked(events *[]Event) {
	p := s.state.Project

	base := p.Quality / 10 * p.Genre.Popularity * p.Platform.Popularity * (1 + p.Marketing/100)
	reviews := make([]Review, 0, len(reviewSites))
	var sum float64
	for _, site := range reviewSites {
		score := clampFloat(base+(s.nextFloat()*2-1), 0, 10)
		reviews = append(reviews, Review{Site: site, Score: score})
		sum += score
	}
	p.Reviews = reviews
	p.Rating = sum / float64(len(reviews))

	sales := p.Rating * p.Rating * 1_000 *
		p.Genre.SalesMult *
		(p.Platform.UserBase / 1_000_000) *
		(1 + p.Marketing/50) *
		(1 + s.state.Ledger.Reputation/100) *
		(1 + float64(s.state.Ledger.Fans)/10_000) *
		(0.8 + s.nextFloat()*0.4)
	p.InitialSales = int64(math.Round(sales))
	p.Sales = p.InitialSales

	revenue := CreditsToMicros(float64(p.InitialSales) * p.Platform.RevenuePerSale)
	p.RevenueMicros = revenue
	s.creditRevenueLocked(revenue)

	s.state.Ledger.AddReputation(2 * p.Rating)
	s.state.Ledger.AddFans(p.Sales / 10)

	p.Released = true
	p.ReleasedDay = s.state.Clock.AbsoluteDay()
	s.state.Completed = append(s.state.Completed, p)
	s.state.Project = nil

	addEvent(events, "release", SeverityInfo,
		fmt.Sprintf("%s shipped with a %.1f rating and %d launch sales", p.Title, p.Rating, p.InitialSales))
	s.log.Info("project released",
		"title", p.Title, "rating", p.Rating,
		"initial_sales", p.InitialSales, "revenue_micros", revenue)
}

// postReleaseDailyLocked applies trailing sales decay to every title still
// inside its sales window, then purges titles past the retention horizon.
func (s *Studio) postReleaseDailyLocked() {
	today := s.state.Clock.AbsoluteDay()
	kept := s.state.Completed[:0]
	for _, p := range s.state.Completed {
		age := today - p.ReleasedDay
		if age >= 1 && age <= SalesWindowDays {
			daily := int64(math.Round(float64(p.InitialSales) * 0.01 * math.Exp(-float64(age)/100)))
			if daily > 0 {
				p.Sales += daily
				revenue := CreditsToMicros(float64(daily) * p.Platform.RevenuePerSale)
				p.RevenueMicros += revenue
				s.creditRevenueLocked(revenue)
			}
		}
		if age > CompletedRetentionDays {
			continue
		}
		kept = append(kept, p)
	}
	s.state.Completed = kept
}

// yearlyCloseLocked hands out the game-of-the-year award for the year that
// just ended: the best release rated at least 7 earns a revenue bonus.
func (s *Studio) yearlyCloseLocked(events *[]Event) {
	closedYear := s.state.Clock.Year - 1
	yearStart := int64(closedYear-1)*DaysPerYear + 1
	yearEnd := int64(closedYear) * DaysPerYear

	var best *Project
	for _, p := range s.state.Completed {
		if p.ReleasedDay < yearStart || p.ReleasedDay > yearEnd {
			continue
		}
		if best == nil || p.Rating > best.Rating {
			best = p
		}
	}
	if best == nil || best.Rating < 7 {
		return
	}
	bonus := best.RevenueMicros / 5
	s.creditRevenueLocked(bonus)
	s.state.Ledger.AddReputation(20)
	s.state.Ledger.AddFans(5_000)
	addEvent(events, "award", SeverityInfo,
		fmt.Sprintf("%s won game of the year %d", best.Title, closedYear))
	s.log.Info("yearly award", "title", best.Title, "year", closedYear, "bonus_micros", bonus)
}

func (s *Studio) CurrentProject() (ProjectView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.state.Project
	if p == nil {
		return ProjectView{}, ErrNotFound
	}
	return ProjectView{
		ID:            p.ID,
		Title:         p.Title,
		Genre:         p.Genre.Name,
		Platform:      p.Platform.Name,
		Stage:         stageNames[p.Stage],
		StageProgress: p.StageProgress,
		Overall:       p.Overall(),
		Quality:       p.Quality,
		Hype:          p.Hype,
		BudgetMicros:  p.BudgetMicros,
		RemainMicros:  p.RemainingMicros,
		Marketing:     p.Marketing,
	}, nil
}

func (s *Studio) CompletedProjects() []ReleasedView {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := s.state.Clock.AbsoluteDay()
	out := make([]ReleasedView, 0, len(s.state.Completed))
	for _, p := range s.state.Completed {
		reviews := make([]Review, len(p.Reviews))
		copy(reviews, p.Reviews)
		out = append(out, ReleasedView{
			ID:            p.ID,
			Title:         p.Title,
			Genre:         p.Genre.Name,
			Platform:      p.Platform.Name,
			Rating:        p.Rating,
			Reviews:       reviews,
			Sales:         p.Sales,
			RevenueMicros: p.RevenueMicros,
			AgeDays:       today - p.ReleasedDay,
		})
	}
	return out
}

// GenreCatalog returns the full genre list with lock flags reflecting the
// studio's research unlocks rather than the static catalog defaults.
func (s *Studio) GenreCatalog() []GenreSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]GenreSpec, len(genreCatalog))
	copy(out, genreCatalog)
	for i := range out {
		out[i].Locked = !s.state.UnlockedGenres[out[i].ID]
	}
	return out
}

func (s *Studio) PlatformCatalog() []PlatformSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PlatformSpec, len(platformCatalog))
	copy(out, platformCatalog)
	for i := range out {
		out[i].Locked = !s.state.UnlockedPlatforms[out[i].ID]
	}
	return out
}
