package sim

import "strings"

type GenreSpec struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Difficulty  float64 `json:"difficulty"`
	Popularity  float64 `json:"popularity"`
	SalesMult   float64 `json:"sales_mult"`
	DevTimeMult float64 `json:"dev_time_mult"`
	MktMult     float64 `json:"marketing_mult"`
	Locked      bool    `json:"locked"`
}

var genreCatalog = []GenreSpec{
	{ID: "casual", Name: "Casual", Difficulty: 1, Popularity: 0.8, SalesMult: 1.2, DevTimeMult: 0.7, MktMult: 1.0},
	{ID: "puzzle", Name: "Puzzle", Difficulty: 1, Popularity: 0.7, SalesMult: 0.9, DevTimeMult: 0.8, MktMult: 1.1},
	{ID: "arcade", Name: "Arcade", Difficulty: 1, Popularity: 0.9, SalesMult: 1.0, DevTimeMult: 0.9, MktMult: 1.0},
	{ID: "action", Name: "Action", Difficulty: 2, Popularity: 1.0, SalesMult: 1.2, DevTimeMult: 1.0, MktMult: 1.2, Locked: true},
	{ID: "adventure", Name: "Adventure", Difficulty: 2, Popularity: 1.1, SalesMult: 1.3, DevTimeMult: 1.1, MktMult: 0.9, Locked: true},
	{ID: "rpg", Name: "Role-Playing", Difficulty: 3, Popularity: 1.3, SalesMult: 1.5, DevTimeMult: 1.2, MktMult: 1.1, Locked: true},
	{ID: "simulation", Name: "Simulation", Difficulty: 3, Popularity: 1.2, SalesMult: 1.0, DevTimeMult: 1.3, MktMult: 1.0, Locked: true},
	{ID: "strategy", Name: "Strategy", Difficulty: 3, Popularity: 1.1, SalesMult: 0.9, DevTimeMult: 1.4, MktMult: 0.9, Locked: true},
	{ID: "sports", Name: "Sports", Difficulty: 2, Popularity: 1.0, SalesMult: 1.1, DevTimeMult: 1.0, MktMult: 1.3, Locked: true},
	{ID: "racing", Name: "Racing", Difficulty: 2, Popularity: 0.9, SalesMult: 1.2, DevTimeMult: 1.1, MktMult: 1.2, Locked: true},
	{ID: "shooter", Name: "Shooter", Difficulty: 2, Popularity: 0.8, SalesMult: 1.3, DevTimeMult: 1.0, MktMult: 1.1, Locked: true},
	{ID: "sandbox", Name: "Sandbox", Difficulty: 4, Popularity: 1.4, SalesMult: 1.2, DevTimeMult: 1.5, MktMult: 0.8, Locked: true},
	{ID: "horror", Name: "Horror", Difficulty: 3, Popularity: 1.2, SalesMult: 1.4, DevTimeMult: 1.1, MktMult: 1.0, Locked: true},
	{ID: "mmorpg", Name: "MMORPG", Difficulty: 5, Popularity: 1.5, SalesMult: 1.7, DevTimeMult: 1.6, MktMult: 1.4, Locked: true},
}

type PlatformSpec struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Difficulty     float64 `json:"difficulty"`
	Popularity     float64 `json:"popularity"`
	UserBase       float64 `json:"user_base"`
	RevenuePerSale float64 `json:"revenue_per_sale"`
	Locked         bool    `json:"locked"`
}

var platformCatalog = []PlatformSpec{
	{ID: "pc", Name: "PC", Difficulty: 1, Popularity: 1.0, UserBase: 10_000_000, RevenuePerSale: 0.7},
	{ID: "mobile", Name: "Mobile", Difficulty: 1, Popularity: 0.8, UserBase: 50_000_000, RevenuePerSale: 0.5},
	{ID: "console", Name: "Console", Difficulty: 2, Popularity: 1.2, UserBase: 5_000_000, RevenuePerSale: 0.9, Locked: true},
	{ID: "vr", Name: "VR", Difficulty: 3, Popularity: 1.5, UserBase: 1_000_000, RevenuePerSale: 1.2, Locked: true},
	{ID: "ar", Name: "AR", Difficulty: 4, Popularity: 1.4, UserBase: 2_000_000, RevenuePerSale: 1.1, Locked: true},
	{ID: "cloud", Name: "Cloud", Difficulty: 3, Popularity: 1.3, UserBase: 8_000_000, RevenuePerSale: 0.8, Locked: true},
}

func genreByID(id string) (GenreSpec, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, g := range genreCatalog {
		if g.ID == id {
			return g, nil
		}
	}
	return GenreSpec{}, ErrNotFound
}

func platformByID(id string) (PlatformSpec, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, p := range platformCatalog {
		if p.ID == id {
			return p, nil
		}
	}
	return PlatformSpec{}, ErrNotFound
}

type CampaignSpec struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CostMicros   int64  `json:"cost_micros"`
	DurationDays int    `json:"duration_days"`
	Hype         float64
	Reputation   float64
	Fans         int64
}

var campaignCatalog = []CampaignSpec{
	{ID: "social_media", Name: "Social Media Push", CostMicros: 5_000 * MicrosPerCredit, DurationDays: 30, Hype: 3, Reputation: 1, Fans: 200},
	{ID: "online_ads", Name: "Online Ads", CostMicros: 10_000 * MicrosPerCredit, DurationDays: 30, Hype: 4, Reputation: 2, Fans: 500},
	{ID: "influencer", Name: "Influencer Deal", CostMicros: 15_000 * MicrosPerCredit, DurationDays: 30, Hype: 5, Reputation: 3, Fans: 1_000},
	{ID: "game_expo", Name: "Game Expo Booth", CostMicros: 25_000 * MicrosPerCredit, DurationDays: 14, Hype: 7, Reputation: 5, Fans: 2_000},
	{ID: "tv_commercial", Name: "TV Commercial", CostMicros: 50_000 * MicrosPerCredit, DurationDays: 30, Hype: 9, Reputation: 8, Fans: 5_000},
}

// DailySalesEffect is the per-day unit-sales bump a campaign applies to a
// released target, before age decay.
func (c CampaignSpec) DailySalesEffect() int64 {
	return c.CostMicros / MicrosPerCredit / int64(c.DurationDays) / 2
}

func campaignByID(id string) (CampaignSpec, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, c := range campaignCatalog {
		if c.ID == id {
			return c, nil
		}
	}
	return CampaignSpec{}, ErrNotFound
}

type marketingEventSpec struct {
	ID          string
	Headline    string
	SalesEffect float64
	Reputation  float64
	Fans        int64
}

var marketingEventCatalog = []marketingEventSpec{
	{ID: "viral_video", Headline: "A gameplay clip went viral", SalesEffect: 30, Reputation: 2, Fans: 800},
	{ID: "streamer_spotlight", Headline: "A top streamer featured the game", SalesEffect: 45, Reputation: 3, Fans: 1_500},
	{ID: "community_award", Headline: "The community voted it a fan favorite", SalesEffect: 20, Reputation: 5, Fans: 600},
	{ID: "press_feature", Headline: "A major outlet ran a feature story", SalesEffect: 25, Reputation: 4, Fans: 400},
}

type LoanSpec struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	PrincipalMicros int64   `json:"principal_micros"`
	AnnualRate      float64 `json:"annual_rate"`
	TermMonths      int     `json:"term_months"`
}

var loanCatalog = []LoanSpec{
	{ID: "small", Name: "Small Business Loan", PrincipalMicros: 50_000 * MicrosPerCredit, AnnualRate: 0.05, TermMonths: 12},
	{ID: "medium", Name: "Growth Loan", PrincipalMicros: 200_000 * MicrosPerCredit, AnnualRate: 0.08, TermMonths: 24},
	{ID: "large", Name: "Venture Debt", PrincipalMicros: 500_000 * MicrosPerCredit, AnnualRate: 0.12, TermMonths: 36},
}

func loanByID(id string) (LoanSpec, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, l := range loanCatalog {
		if l.ID == id {
			return l, nil
		}
	}
	return LoanSpec{}, ErrNotFound
}

// reputation gate: a loan is available once reputation reaches principal/10000.
func loanReputationRequired(l LoanSpec) float64 {
	return MicrosToCredits(l.PrincipalMicros) / 10_000
}

type ResearchSpec struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	CostMicros      int64              `json:"cost_micros"`
	Duration        float64            `json:"duration"`
	RequiredSkills  map[string]float64 `json:"required_skills"`
	SkillRewards    map[string]float64 `json:"skill_rewards"`
	Unlocks         []string           `json:"unlocks"`
	UnlockGenres    []string           `json:"unlock_genres,omitempty"`
	UnlockPlatforms []string           `json:"unlock_platforms,omitempty"`
	Root            bool               `json:"root"`
}

var researchCatalog = []ResearchSpec{
	{
		ID: "basic_engine", Name: "Basic Game Engine", CostMicros: 5_000 * MicrosPerCredit, Duration: 30,
		RequiredSkills: map[string]float64{SkillProgramming: 1, SkillDesign: 0.5},
		SkillRewards:   map[string]float64{SkillProgramming: 0.2, SkillDesign: 0.1},
		Unlocks:        []string{"graphics_2d", "basic_physics"},
		Root:           true,
	},
	{
		ID: "basic_physics", Name: "Basic Physics Engine", CostMicros: 8_000 * MicrosPerCredit, Duration: 45,
		RequiredSkills: map[string]float64{SkillProgramming: 1.5, SkillDesign: 0.3},
		SkillRewards:   map[string]float64{SkillProgramming: 0.3},
		Unlocks:        []string{"advanced_physics"},
		UnlockGenres:   []string{"sports", "racing"},
	},
	{
		ID: "graphics_2d", Name: "2D Graphics Engine", CostMicros: 7_000 * MicrosPerCredit, Duration: 40,
		RequiredSkills: map[string]float64{SkillProgramming: 1, SkillArt: 1},
		SkillRewards:   map[string]float64{SkillProgramming: 0.2, SkillArt: 0.2},
		Unlocks:        []string{"graphics_3d"},
		UnlockGenres:   []string{"action", "adventure"},
	},
	{
		ID: "graphics_3d", Name: "3D Graphics Engine", CostMicros: 15_000 * MicrosPerCredit, Duration: 60,
		RequiredSkills:  map[string]float64{SkillProgramming: 2, SkillArt: 1.5},
		SkillRewards:    map[string]float64{SkillProgramming: 0.4, SkillArt: 0.3},
		Unlocks:         []string{"advanced_3d", "graphics_optimization"},
		UnlockGenres:    []string{"rpg", "simulation"},
		UnlockPlatforms: []string{"console"},
	},
	{
		ID: "advanced_physics", Name: "Advanced Physics Engine", CostMicros: 20_000 * MicrosPerCredit, Duration: 75,
		RequiredSkills: map[string]float64{SkillProgramming: 2.5, SkillDesign: 1},
		SkillRewards:   map[string]float64{SkillProgramming: 0.5, SkillDesign: 0.2},
		Unlocks:        []string{"physics_optimization"},
		UnlockGenres:   []string{"sandbox"},
	},
	{
		ID: "advanced_3d", Name: "Advanced 3D Engine", CostMicros: 25_000 * MicrosPerCredit, Duration: 90,
		RequiredSkills:  map[string]float64{SkillProgramming: 3, SkillArt: 2},
		SkillRewards:    map[string]float64{SkillProgramming: 0.6, SkillArt: 0.4},
		Unlocks:         []string{"next_gen_rendering"},
		UnlockGenres:    []string{"horror"},
		UnlockPlatforms: []string{"vr"},
	},
	{
		ID: "ai_systems", Name: "AI Systems", CostMicros: 18_000 * MicrosPerCredit, Duration: 70,
		RequiredSkills: map[string]float64{SkillProgramming: 2, SkillDesign: 1.5},
		SkillRewards:   map[string]float64{SkillProgramming: 0.4, SkillDesign: 0.3},
		Unlocks:        []string{"advanced_ai"},
		UnlockGenres:   []string{"strategy"},
		Root:           true,
	},
	{
		ID: "networking", Name: "Network Technology", CostMicros: 22_000 * MicrosPerCredit, Duration: 80,
		RequiredSkills: map[string]float64{SkillProgramming: 2.5, SkillDesign: 1},
		SkillRewards:   map[string]float64{SkillProgramming: 0.5},
		Unlocks:        []string{"cloud_gaming"},
		UnlockGenres:   []string{"mmorpg"},
		Root:           true,
	},
	{
		ID: "sound_engine", Name: "Sound Engine", CostMicros: 12_000 * MicrosPerCredit, Duration: 50,
		RequiredSkills: map[string]float64{SkillProgramming: 1, SkillSound: 2},
		SkillRewards:   map[string]float64{SkillProgramming: 0.2, SkillSound: 0.4},
		Unlocks:        []string{"audio_3d"},
		Root:           true,
	},
	{
		ID: "graphics_optimization", Name: "Graphics Optimization", CostMicros: 20_000 * MicrosPerCredit, Duration: 65,
		RequiredSkills: map[string]float64{SkillProgramming: 2.5, SkillArt: 1},
		SkillRewards:   map[string]float64{SkillProgramming: 0.5},
		UnlockGenres:   []string{"shooter"},
	},
	{
		ID: "physics_optimization", Name: "Physics Optimization", CostMicros: 22_000 * MicrosPerCredit, Duration: 70,
		RequiredSkills: map[string]float64{SkillProgramming: 3, SkillDesign: 1},
		SkillRewards:   map[string]float64{SkillProgramming: 0.6},
	},
	{
		ID: "advanced_ai", Name: "Advanced AI Systems", CostMicros: 28_000 * MicrosPerCredit, Duration: 100,
		RequiredSkills: map[string]float64{SkillProgramming: 3, SkillDesign: 2},
		SkillRewards:   map[string]float64{SkillProgramming: 0.6, SkillDesign: 0.4},
	},
	{
		ID: "cloud_gaming", Name: "Cloud Gaming", CostMicros: 30_000 * MicrosPerCredit, Duration: 110,
		RequiredSkills:  map[string]float64{SkillProgramming: 3.5, SkillDesign: 1.5},
		SkillRewards:    map[string]float64{SkillProgramming: 0.7, SkillDesign: 0.3},
		UnlockPlatforms: []string{"cloud"},
	},
	{
		ID: "audio_3d", Name: "3D Audio", CostMicros: 18_000 * MicrosPerCredit, Duration: 60,
		RequiredSkills: map[string]float64{SkillProgramming: 1.5, SkillSound: 2.5},
		SkillRewards:   map[string]float64{SkillProgramming: 0.3, SkillSound: 0.5},
	},
	{
		ID: "next_gen_rendering", Name: "Next-Gen Rendering", CostMicros: 35_000 * MicrosPerCredit, Duration: 120,
		RequiredSkills:  map[string]float64{SkillProgramming: 4, SkillArt: 3},
		SkillRewards:    map[string]float64{SkillProgramming: 0.8, SkillArt: 0.6},
		UnlockPlatforms: []string{"ar"},
	},
}

func researchByID(id string) (ResearchSpec, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, r := range researchCatalog {
		if r.ID == id {
			return r, nil
		}
	}
	return ResearchSpec{}, ErrNotFound
}

var candidateFirstNames = []string{
	"Maya", "Arun", "Iris", "Noah", "Tara", "Kian", "Lea", "Ravi", "Nora", "Evan",
	"Zara", "Omar", "Lina", "Kade", "Ava", "Dion", "Sana", "Milo", "Rhea", "Theo",
}

var candidateLastNames = []string{
	"Lee", "Vale", "Knox", "Pike", "Sol", "Moss", "Rowe", "Jain", "Park", "Reid",
	"Cross", "Quill", "Stone", "Wren", "Bose", "Cho", "Kent", "Ford", "Hart", "Yoon",
}
