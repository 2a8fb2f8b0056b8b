package sim

type NewStudioInput struct {
	Name           string
	Difficulty     Difficulty
	Specialization Specialization
	FounderName    string
}

type StartProjectInput struct {
	Title        string
	GenreID      string
	PlatformID   string
	BudgetMicros int64
}

type StatusView struct {
	Name           string             `json:"name"`
	Day            int                `json:"day"`
	Week           int                `json:"week"`
	Month          int                `json:"month"`
	Year           int                `json:"year"`
	Paused         bool               `json:"paused"`
	MoneyMicros    int64              `json:"money_micros"`
	Reputation     float64            `json:"reputation"`
	Fans           int64              `json:"fans"`
	Skills         map[string]float64 `json:"skills"`
	InvestorEquity float64            `json:"investor_equity"`
	Headcount      int                `json:"headcount"`
	GameOver       bool               `json:"game_over"`
	GameOverReason string             `json:"game_over_reason,omitempty"`
}

type EmployeeView struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	MainSkill    string             `json:"main_skill"`
	Skills       map[string]float64 `json:"skills"`
	SalaryMicros int64              `json:"salary_micros"`
	Experience   float64            `json:"experience"`
	Satisfaction float64            `json:"satisfaction"`
	Founder      bool               `json:"founder"`
}

type ProjectView struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Genre         string  `json:"genre"`
	Platform      string  `json:"platform"`
	Stage         string  `json:"stage"`
	StageProgress float64 `json:"stage_progress"`
	Overall       float64 `json:"overall"`
	Quality       float64 `json:"quality"`
	Hype          float64 `json:"hype"`
	BudgetMicros  int64   `json:"budget_micros"`
	RemainMicros  int64   `json:"remaining_budget_micros"`
	Marketing     float64 `json:"marketing_points"`
}

type ReleasedView struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Genre         string   `json:"genre"`
	Platform      string   `json:"platform"`
	Rating        float64  `json:"rating"`
	Reviews       []Review `json:"reviews"`
	Sales         int64    `json:"sales"`
	RevenueMicros int64    `json:"revenue_micros"`
	AgeDays       int64    `json:"age_days"`
}

type ResearchView struct {
	Active    string   `json:"active,omitempty"`
	Progress  float64  `json:"progress"`
	Duration  float64  `json:"duration"`
	Available []string `json:"available"`
	Completed []string `json:"completed"`
}

type CampaignView struct {
	ID       string `json:"id"`
	Campaign string `json:"campaign"`
	Target   string `json:"target"`
	DaysLeft int    `json:"days_left"`
	Total    int    `json:"total_days"`
}

type LoanView struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	BalanceMicros int64   `json:"balance_micros"`
	PaymentMicros int64   `json:"payment_micros"`
	MonthsLeft    int     `json:"months_left"`
	AnnualRate    float64 `json:"annual_rate"`
	Repaid        bool    `json:"repaid"`
}

type OfferView struct {
	ID           string  `json:"id"`
	Investor     string  `json:"investor"`
	AmountMicros int64   `json:"amount_micros"`
	Equity       float64 `json:"equity"`
	DeadlineDay  int64   `json:"deadline_day"`
	Accepted     bool    `json:"accepted"`
	Rejected     bool    `json:"rejected"`
}

type FinanceView struct {
	MoneyMicros    int64             `json:"money_micros"`
	InvestorEquity float64           `json:"investor_equity"`
	Loans          []LoanView        `json:"loans"`
	Offers         []OfferView       `json:"offers"`
	Records        []FinancialRecord `json:"records"`
	LoanCatalog    []LoanSpec        `json:"loan_catalog"`
}

type FinancialRecord struct {
	Year           int   `json:"year"`
	Month          int   `json:"month"`
	IncomeMicros   int64 `json:"income_micros"`
	SalariesMicros int64 `json:"salaries_micros"`
	OverheadMicros int64 `json:"overhead_micros"`
	LoanMicros     int64 `json:"loan_micros"`
	NetMicros      int64 `json:"net_micros"`
}

// Event is a display-model notification produced during a tick. Hosts pull
// events from the DayReport; the core never pushes into UI code.
type Event struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityDanger  = "danger"
)

type DayReport struct {
	Day         int        `json:"day"`
	Week        int        `json:"week"`
	Month       int        `json:"month"`
	Year        int        `json:"year"`
	AbsoluteDay int64      `json:"absolute_day"`
	Boundaries  Boundaries `json:"boundaries"`
	MoneyMicros int64      `json:"money_micros"`
	Reputation  float64    `json:"reputation"`
	Fans        int64      `json:"fans"`
	Events      []Event    `json:"events"`
	GameOver    bool       `json:"game_over"`
}
