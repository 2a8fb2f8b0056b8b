package sim

import (
	"errors"
	"testing"
)

func TestMonthlyPaymentAmortization(t *testing.T) {
	cases := []struct {
		id   string
		want int64 // credits
	}{
		{id: "small", want: 4_281},   // 50k @ 5%/12mo
		{id: "medium", want: 9_046},  // 200k @ 8%/24mo
		{id: "large", want: 16_608},  // 500k @ 12%/36mo
	}
	for _, tc := range cases {
		spec, err := loanByID(tc.id)
		if err != nil {
			t.Fatalf("%s: %v", tc.id, err)
		}
		if got := monthlyPaymentMicros(spec); got != tc.want*MicrosPerCredit {
			t.Fatalf("%s payment = %d micros, want %d credits", tc.id, got, tc.want)
		}
	}
}

func TestTakeLoanEligibility(t *testing.T) {
	s := newTestStudio(t, 51)
	if err := s.TakeLoan("jumbo"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown loan: got %v, want ErrNotFound", err)
	}
	if err := s.TakeLoan("small"); !errors.Is(err, ErrPolicy) {
		t.Fatalf("zero reputation: got %v, want ErrPolicy", err)
	}

	s.state.Ledger.Reputation = 5
	before := s.Status().MoneyMicros
	if err := s.TakeLoan("small"); err != nil {
		t.Fatalf("take loan: %v", err)
	}
	if got := s.Status().MoneyMicros - before; got != 50_000*MicrosPerCredit {
		t.Fatalf("principal credited = %d", got)
	}
	if err := s.TakeLoan("medium"); !errors.Is(err, ErrPolicy) {
		t.Fatalf("medium at rep 5: got %v, want ErrPolicy", err)
	}
}

func TestLoanRepaidAfterTerm(t *testing.T) {
	s := newTestStudio(t, 51)
	s.state.Ledger.Reputation = 5
	s.state.Ledger.MoneyMicros = 1_000_000 * MicrosPerCredit
	if err := s.TakeLoan("small"); err != nil {
		t.Fatalf("take loan: %v", err)
	}
	spec, _ := loanByID("small")

	var events []Event
	for i := 0; i < spec.TermMonths; i++ {
		s.monthlyFinanceLocked(0, &events)
	}
	loan := s.state.Finance.Loans[0]
	if !loan.Repaid {
		t.Fatalf("loan not repaid after %d payments: balance %d", spec.TermMonths, loan.BalanceMicros)
	}
	if loan.BalanceMicros != 0 {
		t.Fatalf("repaid loan balance = %d, want 0", loan.BalanceMicros)
	}
}

func TestEquityAccumulatesAdditively(t *testing.T) {
	s := newTestStudio(t, 51)
	s.state.Finance.Offers = []*InvestmentOffer{
		{ID: "o1", Investor: "A", AmountMicros: 100_000 * MicrosPerCredit, Equity: 25, DeadlineDay: 100},
		{ID: "o2", Investor: "B", AmountMicros: 100_000 * MicrosPerCredit, Equity: 20, DeadlineDay: 100},
	}
	if err := s.AcceptOffer("o1"); err != nil {
		t.Fatalf("accept o1: %v", err)
	}
	if err := s.AcceptOffer("o2"); err != nil {
		t.Fatalf("accept o2: %v", err)
	}
	if got := s.Status().InvestorEquity; got != 45 {
		t.Fatalf("equity = %v, want 45", got)
	}
	if err := s.AcceptOffer("o1"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("double accept: got %v, want ErrInvalidState", err)
	}
}

func TestEquityCappedAtHundred(t *testing.T) {
	s := newTestStudio(t, 51)
	s.state.Ledger.InvestorEquity = 90
	s.state.Finance.Offers = []*InvestmentOffer{
		{ID: "o1", Investor: "A", AmountMicros: MicrosPerCredit, Equity: 30, DeadlineDay: 100},
	}
	if err := s.AcceptOffer("o1"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if got := s.Status().InvestorEquity; got != 100 {
		t.Fatalf("equity = %v, want cap 100", got)
	}
}

func TestRejectOfferIsTerminal(t *testing.T) {
	s := newTestStudio(t, 51)
	s.state.Finance.Offers = []*InvestmentOffer{
		{ID: "o1", Investor: "A", AmountMicros: MicrosPerCredit, Equity: 10, DeadlineDay: 100},
	}
	if err := s.RejectOffer("o1"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if err := s.AcceptOffer("o1"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("accept after reject: got %v, want ErrInvalidState", err)
	}
	if err := s.RejectOffer("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown offer: got %v, want ErrNotFound", err)
	}
}

func TestExpiredOfferCannotBeAccepted(t *testing.T) {
	s := newTestStudio(t, 51)
	s.state.Finance.Offers = []*InvestmentOffer{
		{ID: "o1", Investor: "A", AmountMicros: MicrosPerCredit, Equity: 10, DeadlineDay: 0},
	}
	if err := s.AcceptOffer("o1"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expired accept: got %v, want ErrInvalidState", err)
	}
}

func TestRevenueSharedWithInvestors(t *testing.T) {
	s := newTestStudio(t, 51)
	s.state.Ledger.InvestorEquity = 25
	before := s.state.Ledger.MoneyMicros

	s.creditRevenueLocked(1_000 * MicrosPerCredit)
	if got := s.state.Ledger.MoneyMicros - before; got != 750*MicrosPerCredit {
		t.Fatalf("net revenue = %d, want 750 credits after 25%% equity", got)
	}
	if s.state.Finance.MonthIncomeMicros != 750*MicrosPerCredit {
		t.Fatalf("month income = %d, want net amount", s.state.Finance.MonthIncomeMicros)
	}
}

func TestFinancialRecordRetention(t *testing.T) {
	s := newTestStudio(t, 51)
	s.state.Ledger.MoneyMicros = 10_000_000 * MicrosPerCredit
	var events []Event
	for i := 0; i < financeRecordRetention+5; i++ {
		s.monthlyFinanceLocked(0, &events)
	}
	if got := len(s.state.Finance.Records); got != financeRecordRetention {
		t.Fatalf("records = %d, want %d", got, financeRecordRetention)
	}
}
