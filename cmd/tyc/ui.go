package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tycoon/internal/sim"

	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

type reportsPayload struct {
	Reports []sim.DayReport `json:"reports"`
}

type rosterPayload struct {
	Employees []sim.EmployeeView `json:"employees"`
}

type candidatesPayload struct {
	Candidates []sim.EmployeeView `json:"candidates"`
}

type completedPayload struct {
	Projects []sim.ReleasedView `json:"projects"`
}

type genresPayload struct {
	Genres []sim.GenreSpec `json:"genres"`
}

type platformsPayload struct {
	Platforms []sim.PlatformSpec `json:"platforms"`
}

type campaignsPayload struct {
	Campaigns []sim.CampaignView `json:"campaigns"`
}

type campaignCatalogPayload struct {
	Campaigns []sim.CampaignSpec `json:"campaigns"`
}

type researchCatalogPayload struct {
	Research []sim.ResearchSpec `json:"research"`
}

type savesPayload struct {
	Saves []saveSlot `json:"saves"`
}

type saveSlot struct {
	Slot      string    `json:"slot"`
	SizeBytes int64     `json:"size_bytes"`
	UpdatedAt time.Time `json:"updated_at"`
}

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptOptional(label string) (string, error) {
	fmt.Printf("%s: ", label)
	text, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

func promptInt64(label string, min int64) (int64, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			printWarn("Enter a whole number.")
			continue
		}
		if v < min {
			printWarn(fmt.Sprintf("Value must be >= %d", min))
			continue
		}
		return v, nil
	}
}

func renderStatus(raw map[string]any) error {
	st, err := decodeInto[sim.StatusView](raw)
	if err != nil {
		return err
	}
	accent.Printf("\n== %s ==\n", strings.ToUpper(st.Name))
	fmt.Printf("Date:        day %d, week %d, month %d, year %d\n", st.Day, st.Week, st.Month, st.Year)
	fmt.Printf("Money:       %s cr\n", colorizeMicros(st.MoneyMicros))
	fmt.Printf("Reputation:  %.1f\n", st.Reputation)
	fmt.Printf("Fans:        %s\n", comma(st.Fans))
	fmt.Printf("Headcount:   %d\n", st.Headcount)
	fmt.Printf("Equity sold: %.1f%%\n", st.InvestorEquity)
	if st.Paused {
		printWarn("Simulation is paused.")
	}
	if len(st.Skills) > 0 {
		fmt.Println()
		accent.Println("Studio Skills")
		for _, name := range sim.SkillNames {
			fmt.Printf("  %-12s %6.1f\n", name, st.Skills[name])
		}
	}
	if st.GameOver {
		danger.Printf("\nGAME OVER: %s\n", st.GameOverReason)
	}
	fmt.Println()
	return nil
}

func renderReports(raw map[string]any) error {
	out, err := decodeInto[reportsPayload](raw)
	if err != nil {
		return err
	}
	if len(out.Reports) == 0 {
		printInfo("Nothing happened.")
		return nil
	}
	for _, r := range out.Reports {
		fmt.Printf("Day %d (w%d m%d y%d)  money=%s cr\n", r.Day, r.Week, r.Month, r.Year, formatMicros(r.MoneyMicros))
		for _, ev := range r.Events {
			printEvent(ev)
		}
	}
	last := out.Reports[len(out.Reports)-1]
	if last.GameOver {
		danger.Println("\nGAME OVER.")
	}
	return nil
}

func printEvent(ev sim.Event) {
	switch ev.Severity {
	case sim.SeverityDanger:
		danger.Printf("  ! %s\n", ev.Message)
	case sim.SeverityWarning:
		warn.Printf("  * %s\n", ev.Message)
	default:
		fmt.Printf("  - %s\n", ev.Message)
	}
}

func renderEmployees(title string, rows []sim.EmployeeView) {
	accent.Printf("\n== %s ==\n", strings.ToUpper(title))
	if len(rows) == 0 {
		printInfo("Nobody here.")
		return
	}
	fmt.Printf("%-10s %-20s %-12s %10s %6s %6s %6s\n", "ID", "NAME", "SKILL", "SALARY/MO", "LEVEL", "EXP", "SAT")
	for _, e := range rows {
		id := e.ID
		if len(id) > 8 {
			id = id[:8]
		}
		name := e.Name
		if e.Founder {
			name += " (founder)"
		}
		fmt.Printf("%-10s %-20s %-12s %10s %6.1f %6.1f %6.0f\n",
			id,
			truncate(name, 20),
			e.MainSkill,
			formatMicros(e.SalaryMicros/12),
			e.Skills[e.MainSkill],
			e.Experience,
			e.Satisfaction,
		)
	}
	fmt.Println()
}

func renderRoster(raw map[string]any) error {
	out, err := decodeInto[rosterPayload](raw)
	if err != nil {
		return err
	}
	renderEmployees("Roster", out.Employees)
	return nil
}

func renderCandidates(raw map[string]any) error {
	out, err := decodeInto[candidatesPayload](raw)
	if err != nil {
		return err
	}
	renderEmployees("Candidates", out.Candidates)
	return nil
}

func renderProject(raw map[string]any) error {
	p, err := decodeInto[sim.ProjectView](raw)
	if err != nil {
		return err
	}
	accent.Printf("\n== %s ==\n", strings.ToUpper(p.Title))
	fmt.Printf("Genre:      %s on %s\n", p.Genre, p.Platform)
	fmt.Printf("Stage:      %s (%.1f%%)\n", p.Stage, p.StageProgress)
	fmt.Printf("Overall:    %.1f%%\n", p.Overall)
	fmt.Printf("Quality:    %.1f\n", p.Quality)
	fmt.Printf("Hype:       %.1f\n", p.Hype)
	fmt.Printf("Marketing:  %.1f pts\n", p.Marketing)
	fmt.Printf("Budget:     %s cr (%s cr left)\n", formatMicros(p.BudgetMicros), formatMicros(p.RemainMicros))
	fmt.Println()
	return nil
}

func renderCompleted(raw map[string]any) error {
	out, err := decodeInto[completedPayload](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== RELEASED GAMES ==")
	if len(out.Projects) == 0 {
		printInfo("Nothing shipped yet.")
		return nil
	}
	fmt.Printf("%-10s %-22s %-10s %-8s %6s %12s %14s %6s\n", "ID", "TITLE", "GENRE", "PLATFORM", "RATING", "SALES", "REVENUE", "AGE")
	for _, p := range out.Projects {
		id := p.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Printf("%-10s %-22s %-10s %-8s %6.1f %12s %14s %5dd\n",
			id,
			truncate(p.Title, 22),
			p.Genre,
			p.Platform,
			p.Rating,
			comma(p.Sales),
			formatMicros(p.RevenueMicros),
			p.AgeDays,
		)
	}
	fmt.Println()
	return nil
}

func renderGenres(raw map[string]any) error {
	out, err := decodeInto[genresPayload](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== GENRES ==")
	fmt.Printf("%-12s %-16s %6s %6s %6s %-8s\n", "ID", "NAME", "DIFF", "POP", "SALES", "STATUS")
	for _, g := range out.Genres {
		status := "open"
		if g.Locked {
			status = "locked"
		}
		fmt.Printf("%-12s %-16s %6.1f %6.1f %6.1f %-8s\n", g.ID, g.Name, g.Difficulty, g.Popularity, g.SalesMult, status)
	}
	fmt.Println()
	return nil
}

func renderPlatforms(raw map[string]any) error {
	out, err := decodeInto[platformsPayload](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== PLATFORMS ==")
	fmt.Printf("%-10s %-12s %6s %6s %14s %8s %-8s\n", "ID", "NAME", "DIFF", "POP", "USERS", "REV/SALE", "STATUS")
	for _, p := range out.Platforms {
		status := "open"
		if p.Locked {
			status = "locked"
		}
		fmt.Printf("%-10s %-12s %6.1f %6.1f %14s %8.2f %-8s\n", p.ID, p.Name, p.Difficulty, p.Popularity, comma(int64(p.UserBase)), p.RevenuePerSale, status)
	}
	fmt.Println()
	return nil
}

func renderResearch(raw map[string]any) error {
	out, err := decodeInto[sim.ResearchView](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== RESEARCH ==")
	if out.Active == "" {
		printInfo("No active research.")
	} else {
		pct := 0.0
		if out.Duration > 0 {
			pct = out.Progress / out.Duration * 100
		}
		fmt.Printf("Active:    %s (%.1f%%)\n", out.Active, pct)
	}
	fmt.Printf("Available: %s\n", strings.Join(out.Available, ", "))
	fmt.Printf("Completed: %s\n", strings.Join(out.Completed, ", "))
	fmt.Println()
	return nil
}

func renderResearchCatalog(raw map[string]any) error {
	out, err := decodeInto[researchCatalogPayload](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== RESEARCH CATALOG ==")
	fmt.Printf("%-16s %-24s %12s %8s %-28s\n", "ID", "NAME", "COST", "DAYS", "UNLOCKS")
	for _, r := range out.Research {
		unlocks := append([]string{}, r.Unlocks...)
		unlocks = append(unlocks, r.UnlockGenres...)
		unlocks = append(unlocks, r.UnlockPlatforms...)
		fmt.Printf("%-16s %-24s %12s %8.0f %-28s\n",
			r.ID,
			truncate(r.Name, 24),
			formatMicros(r.CostMicros),
			r.Duration,
			truncate(strings.Join(unlocks, ","), 28),
		)
	}
	fmt.Println()
	return nil
}

func renderCampaigns(raw map[string]any) error {
	out, err := decodeInto[campaignsPayload](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== ACTIVE CAMPAIGNS ==")
	if len(out.Campaigns) == 0 {
		printInfo("No campaigns running.")
		return nil
	}
	fmt.Printf("%-10s %-16s %-24s %10s\n", "ID", "CAMPAIGN", "TARGET", "DAYS LEFT")
	for _, c := range out.Campaigns {
		id := c.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Printf("%-10s %-16s %-24s %6d/%-3d\n", id, c.Campaign, truncate(c.Target, 24), c.DaysLeft, c.Total)
	}
	fmt.Println()
	return nil
}

func renderCampaignCatalog(raw map[string]any) error {
	out, err := decodeInto[campaignCatalogPayload](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== CAMPAIGN CATALOG ==")
	fmt.Printf("%-14s %-20s %12s %6s %6s %6s %8s\n", "ID", "NAME", "COST", "DAYS", "HYPE", "REP", "FANS")
	for _, c := range out.Campaigns {
		fmt.Printf("%-14s %-20s %12s %6d %6.1f %6.1f %8s\n",
			c.ID, c.Name, formatMicros(c.CostMicros), c.DurationDays, c.Hype, c.Reputation, comma(c.Fans))
	}
	fmt.Println()
	return nil
}

func renderFinance(raw map[string]any) error {
	out, err := decodeInto[sim.FinanceView](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== FINANCE ==")
	fmt.Printf("Money:       %s cr\n", colorizeMicros(out.MoneyMicros))
	fmt.Printf("Equity sold: %.1f%%\n", out.InvestorEquity)

	fmt.Println()
	accent.Println("Loans")
	if len(out.Loans) == 0 {
		printInfo("No loans taken.")
	} else {
		fmt.Printf("%-10s %-22s %14s %12s %8s %6s\n", "ID", "NAME", "BALANCE", "PAYMENT/MO", "MONTHS", "RATE")
		for _, l := range out.Loans {
			id := l.ID
			if len(id) > 8 {
				id = id[:8]
			}
			fmt.Printf("%-10s %-22s %14s %12s %8d %5.1f%%\n",
				id, truncate(l.Name, 22), formatMicros(l.BalanceMicros), formatMicros(l.PaymentMicros), l.MonthsLeft, l.AnnualRate*100)
		}
	}

	fmt.Println()
	accent.Println("Investment Offers")
	open := 0
	for _, o := range out.Offers {
		if o.Accepted || o.Rejected {
			continue
		}
		open++
		id := o.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Printf("%-10s %-20s %14s cr for %5.1f%% equity (until day %d)\n",
			id, truncate(o.Investor, 20), formatMicros(o.AmountMicros), o.Equity, o.DeadlineDay)
	}
	if open == 0 {
		printInfo("No open offers.")
	}

	if len(out.Records) > 0 {
		fmt.Println()
		accent.Println("Monthly Records")
		fmt.Printf("%4s %3s %14s %14s %12s %12s %14s\n", "YEAR", "MO", "INCOME", "SALARIES", "OVERHEAD", "LOANS", "NET")
		for _, rec := range out.Records {
			fmt.Printf("%4d %3d %14s %14s %12s %12s %14s\n",
				rec.Year, rec.Month,
				formatMicros(rec.IncomeMicros),
				formatMicros(rec.SalariesMicros),
				formatMicros(rec.OverheadMicros),
				formatMicros(rec.LoanMicros),
				colorizeMicros(rec.NetMicros),
			)
		}
	}

	fmt.Println()
	accent.Println("Loan Catalog")
	fmt.Printf("%-8s %-22s %14s %6s %8s\n", "ID", "NAME", "PRINCIPAL", "RATE", "TERM")
	for _, spec := range out.LoanCatalog {
		fmt.Printf("%-8s %-22s %14s %5.1f%% %6dmo\n",
			spec.ID, spec.Name, formatMicros(spec.PrincipalMicros), spec.AnnualRate*100, spec.TermMonths)
	}
	fmt.Println()
	return nil
}

func renderSaves(raw map[string]any) error {
	out, err := decodeInto[savesPayload](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== SAVE SLOTS ==")
	if len(out.Saves) == 0 {
		printInfo("No saves yet.")
		return nil
	}
	fmt.Printf("%-20s %10s %-18s\n", "SLOT", "SIZE", "UPDATED")
	for _, s := range out.Saves {
		fmt.Printf("%-20s %9dB %-18s\n", s.Slot, s.SizeBytes, s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Println()
	return nil
}

func renderSimpleOK(successMessage string) error {
	printSuccess(successMessage)
	return nil
}

func decodeInto[T any](in any) (T, error) {
	var out T
	raw, err := json.Marshal(in)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

func colorizeMicros(v int64) string {
	text := formatMicros(v)
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func formatMicros(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := v / sim.MicrosPerCredit
	frac := (v % sim.MicrosPerCredit) / 10_000
	return fmt.Sprintf("%s%s.%02d", sign, comma(whole), frac)
}

func comma(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
		if len(s) > pre {
			b.WriteByte(',')
		}
	}
	for i := pre; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
