package sim

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Fixed monthly overhead, in credits.
const (
	overheadRent      = 5_000
	overheadUtilities = 1_000
	overheadSoftware  = 2_000
	overheadMisc      = 1_000

	overheadTotalMicros = (overheadRent + overheadUtilities + overheadSoftware + overheadMisc) * MicrosPerCredit
)

const financeRecordRetention = 12

type Loan struct {
	ID            string  `json:"id"`
	SpecID        string  `json:"spec_id"`
	Name          string  `json:"name"`
	BalanceMicros int64   `json:"balance_micros"`
	PaymentMicros int64   `json:"payment_micros"`
	MonthsLeft    int     `json:"months_left"`
	AnnualRate    float64 `json:"annual_rate"`
	Repaid        bool    `json:"repaid"`
}

type InvestmentOffer struct {
	ID           string  `json:"id"`
	Investor     string  `json:"investor"`
	AmountMicros int64   `json:"amount_micros"`
	Equity       float64 `json:"equity"`
	DeadlineDay  int64   `json:"deadline_day"`
	Accepted     bool    `json:"accepted"`
	Rejected     bool    `json:"rejected"`
}

type financeState struct {
	Loans             []*Loan            `json:"loans"`
	Offers            []*InvestmentOffer `json:"offers"`
	Records           []FinancialRecord  `json:"records"`
	MonthIncomeMicros int64              `json:"month_income_micros"`
}

var investorNames = []string{
	"Northbridge Capital", "Ember Ventures", "Playfield Partners",
	"Quartz Holdings", "Meridian Growth Fund",
}

// monthlyPaymentMicros is the standard amortization payment, computed in whole
// credits and rounded up, then widened to micros.
func monthlyPaymentMicros(spec LoanSpec) int64 {
	principal := MicrosToCredits(spec.PrincipalMicros)
	mr := spec.AnnualRate / 12
	n := float64(spec.TermMonths)
	factor := math.Pow(1+mr, n)
	payment := math.Ceil(principal * mr * factor / (factor - 1))
	return CreditsToMicros(payment)
}

// creditRevenueLocked books earned revenue into the ledger, net of the
// investor equity share, and accumulates it into the month's income total.
func (s *Studio) creditRevenueLocked(micros int64) {
	if micros <= 0 {
		return
	}
	share := int64(float64(micros) * s.state.Ledger.InvestorEquity / 100)
	net := micros - share
	s.state.Ledger.AddMoney(net)
	s.state.Finance.MonthIncomeMicros += net
}

func (s *Studio) TakeLoan(specID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playableLocked(); err != nil {
		return err
	}
	spec, err := loanByID(specID)
	if err != nil {
		return err
	}
	if s.state.Ledger.Reputation < loanReputationRequired(spec) {
		return ErrPolicy
	}
	s.state.Ledger.AddMoney(spec.PrincipalMicros)
	s.state.Finance.Loans = append(s.state.Finance.Loans, &Loan{
		ID:            uuid.NewString(),
		SpecID:        spec.ID,
		Name:          spec.Name,
		BalanceMicros: spec.PrincipalMicros,
		PaymentMicros: monthlyPaymentMicros(spec),
		MonthsLeft:    spec.TermMonths,
		AnnualRate:    spec.AnnualRate,
	})
	s.log.Info("loan taken", "loan", spec.ID, "principal_micros", spec.PrincipalMicros)
	return nil
}

// AcceptOffer converts an open investment offer into cash and equity. Equity
// accumulates additively across offers and never exceeds 100.
func (s *Studio) AcceptOffer(offerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playableLocked(); err != nil {
		return err
	}
	offer, err := s.offerLocked(offerID)
	if err != nil {
		return err
	}
	if offer.Accepted || offer.Rejected {
		return ErrInvalidState
	}
	if s.state.Clock.AbsoluteDay() > offer.DeadlineDay {
		return ErrInvalidState
	}
	offer.Accepted = true
	s.state.Ledger.AddMoney(offer.AmountMicros)
	s.state.Ledger.InvestorEquity = clampFloat(s.state.Ledger.InvestorEquity+offer.Equity, 0, 100)
	s.log.Info("investment accepted",
		"investor", offer.Investor, "amount_micros", offer.AmountMicros,
		"equity_total", s.state.Ledger.InvestorEquity)
	return nil
}

func (s *Studio) RejectOffer(offerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playableLocked(); err != nil {
		return err
	}
	offer, err := s.offerLocked(offerID)
	if err != nil {
		return err
	}
	if offer.Accepted || offer.Rejected {
		return ErrInvalidState
	}
	offer.Rejected = true
	s.log.Info("investment rejected", "investor", offer.Investor)
	return nil
}

func (s *Studio) offerLocked(id string) (*InvestmentOffer, error) {
	for _, o := range s.state.Finance.Offers {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, ErrNotFound
}

// monthlyFinanceLocked closes the books for the month that just ended:
// overhead and loan payments come out, a financial record is appended, and
// occasionally an investor comes knocking.
func (s *Studio) monthlyFinanceLocked(salariesMicros int64, events *[]Event) {
	var loanMicros int64
	for _, l := range s.state.Finance.Loans {
		if l.Repaid {
			continue
		}
		interest := int64(math.Round(float64(l.BalanceMicros) * l.AnnualRate / 12))
		payment := l.PaymentMicros
		if payment > l.BalanceMicros+interest {
			payment = l.BalanceMicros + interest
		}
		l.BalanceMicros += interest - payment
		l.MonthsLeft--
		loanMicros += payment
		if l.BalanceMicros <= 0 || l.MonthsLeft <= 0 {
			l.BalanceMicros = 0
			l.Repaid = true
			addEvent(events, "finance", SeverityInfo, fmt.Sprintf("%s fully repaid", l.Name))
		}
	}
	s.state.Ledger.AddMoney(-(overheadTotalMicros + loanMicros))

	income := s.state.Finance.MonthIncomeMicros
	s.state.Finance.MonthIncomeMicros = 0

	year, month := s.state.Clock.Year, s.state.Clock.Month-1
	if month < 1 {
		month = MonthsPerYear
		year--
	}
	record := FinancialRecord{
		Year:           year,
		Month:          month,
		IncomeMicros:   income,
		SalariesMicros: salariesMicros,
		OverheadMicros: overheadTotalMicros,
		LoanMicros:     loanMicros,
		NetMicros:      income - salariesMicros - overheadTotalMicros - loanMicros,
	}
	s.state.Finance.Records = append(s.state.Finance.Records, record)
	if len(s.state.Finance.Records) > financeRecordRetention {
		s.state.Finance.Records = s.state.Finance.Records[len(s.state.Finance.Records)-financeRecordRetention:]
	}
	addEvent(events, "finance", SeverityInfo,
		fmt.Sprintf("Month %d/%d closed with a net of %.0f credits", month, year, MicrosToCredits(record.NetMicros)))

	// Sweep expired offers, then maybe float a new one.
	today := s.state.Clock.AbsoluteDay()
	kept := s.state.Finance.Offers[:0]
	for _, o := range s.state.Finance.Offers {
		if !o.Accepted && !o.Rejected && today > o.DeadlineDay {
			continue
		}
		kept = append(kept, o)
	}
	s.state.Finance.Offers = kept

	if s.nextFloat() < 0.10 {
		s.makeInvestorOfferLocked(events, today)
	}
}

func (s *Studio) makeInvestorOfferLocked(events *[]Event, today int64) {
	rep := s.state.Ledger.Reputation
	mult := rep / 10
	if mult < 1 {
		mult = 1
	}
	equity := 30 - rep/5
	if equity < 5 {
		equity = 5
	}
	offer := &InvestmentOffer{
		ID:           uuid.NewString(),
		Investor:     investorNames[int(s.nextFloat()*float64(len(investorNames)))%len(investorNames)],
		AmountMicros: CreditsToMicros(100_000 * mult),
		Equity:       equity,
		DeadlineDay:  today + 30,
	}
	s.state.Finance.Offers = append(s.state.Finance.Offers, offer)
	addEvent(events, "investment", SeverityInfo,
		fmt.Sprintf("%s offered %.0f credits for %.0f%% equity", offer.Investor, MicrosToCredits(offer.AmountMicros), offer.Equity))
	s.log.Info("investor offer", "investor", offer.Investor, "equity", offer.Equity)
}

// checkBankruptcyLocked runs at the end of every tick. A negative balance is
// survivable while a rescue loan is on the table; past the hard floor, or
// with no eligible loan, the studio folds.
func (s *Studio) checkBankruptcyLocked(events *[]Event) {
	money := s.state.Ledger.MoneyMicros
	if money >= 0 || s.state.GameOver {
		return
	}
	if money < HardBankruptcyFloorMicros {
		s.gameOverLocked(events, "debt passed the point of no return")
		return
	}
	var rescue *LoanSpec
	for i := range loanCatalog {
		spec := loanCatalog[i]
		if s.state.Ledger.Reputation < loanReputationRequired(spec) {
			continue
		}
		if rescue == nil || spec.PrincipalMicros > rescue.PrincipalMicros {
			rescue = &spec
		}
	}
	if rescue == nil {
		s.gameOverLocked(events, "out of money with no credit line")
		return
	}
	addEvent(events, "bankruptcy", SeverityDanger,
		fmt.Sprintf("The account is overdrawn; the bank would still extend a %s", rescue.Name))
}

func (s *Studio) gameOverLocked(events *[]Event, reason string) {
	s.state.GameOver = true
	s.state.GameOverReason = reason
	addEvent(events, "game_over", SeverityDanger, "The studio has gone bankrupt")
	s.log.Error("game over", "reason", reason)
}

func (s *Studio) FinanceSummary() FinanceView {
	s.mu.Lock()
	defer s.mu.Unlock()

	loans := make([]LoanView, 0, len(s.state.Finance.Loans))
	for _, l := range s.state.Finance.Loans {
		loans = append(loans, LoanView{
			ID:            l.ID,
			Name:          l.Name,
			BalanceMicros: l.BalanceMicros,
			PaymentMicros: l.PaymentMicros,
			MonthsLeft:    l.MonthsLeft,
			AnnualRate:    l.AnnualRate,
			Repaid:        l.Repaid,
		})
	}
	offers := make([]OfferView, 0, len(s.state.Finance.Offers))
	for _, o := range s.state.Finance.Offers {
		offers = append(offers, OfferView{
			ID:           o.ID,
			Investor:     o.Investor,
			AmountMicros: o.AmountMicros,
			Equity:       o.Equity,
			DeadlineDay:  o.DeadlineDay,
			Accepted:     o.Accepted,
			Rejected:     o.Rejected,
		})
	}
	records := make([]FinancialRecord, len(s.state.Finance.Records))
	copy(records, s.state.Finance.Records)

	catalog := make([]LoanSpec, len(loanCatalog))
	copy(catalog, loanCatalog)

	return FinanceView{
		MoneyMicros:    s.state.Ledger.MoneyMicros,
		InvestorEquity: s.state.Ledger.InvestorEquity,
		Loans:          loans,
		Offers:         offers,
		Records:        records,
		LoanCatalog:    catalog,
	}
}
