package sim

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

type ActiveCampaign struct {
	ID         string `json:"id"`
	CampaignID string `json:"campaign_id"`
	TargetID   string `json:"target_id"`
	DaysLeft   int    `json:"days_left"`
	TotalDays  int    `json:"total_days"`
}

// StartCampaign runs a catalog campaign against the in-development project or
// a release still inside its first year. The full cost is charged up front.
func (s *Studio) StartCampaign(campaignID, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playableLocked(); err != nil {
		return err
	}
	spec, err := campaignByID(campaignID)
	if err != nil {
		return err
	}

	if targetID == "" && s.state.Project != nil {
		targetID = s.state.Project.ID
	}
	target, released, err := s.campaignTargetLocked(targetID)
	if err != nil {
		return err
	}
	if released {
		age := s.state.Clock.AbsoluteDay() - target.ReleasedDay
		if age > 365 {
			return ErrPolicy
		}
	}
	for _, c := range s.state.Campaigns {
		if c.CampaignID == spec.ID && c.TargetID == target.ID {
			return ErrConflict
		}
	}
	if s.state.Ledger.MoneyMicros < spec.CostMicros {
		return ErrInsufficientFunds
	}
	s.state.Ledger.AddMoney(-spec.CostMicros)
	s.state.Campaigns = append(s.state.Campaigns, &ActiveCampaign{
		ID:         uuid.NewString(),
		CampaignID: spec.ID,
		TargetID:   target.ID,
		DaysLeft:   spec.DurationDays,
		TotalDays:  spec.DurationDays,
	})
	s.log.Info("campaign started", "campaign", spec.ID, "target", target.Title)
	return nil
}

// CancelCampaign refunds half the unspent share of the campaign cost.
func (s *Studio) CancelCampaign(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playableLocked(); err != nil {
		return err
	}
	for i, c := range s.state.Campaigns {
		if c.ID != id {
			continue
		}
		spec, err := campaignByID(c.CampaignID)
		if err != nil {
			return err
		}
		refund := int64(float64(spec.CostMicros) * float64(c.DaysLeft) / float64(c.TotalDays) / 2)
		s.state.Ledger.AddMoney(refund)
		s.state.Campaigns = append(s.state.Campaigns[:i], s.state.Campaigns[i+1:]...)
		s.log.Info("campaign cancelled", "campaign", spec.ID, "refund_micros", refund)
		return nil
	}
	return ErrNotFound
}

// campaignTargetLocked resolves a campaign target id to either the current
// project or a completed title.
func (s *Studio) campaignTargetLocked(id string) (*Project, bool, error) {
	if p := s.state.Project; p != nil && p.ID == id {
		return p, false, nil
	}
	for _, p := range s.state.Completed {
		if p.ID == id {
			return p, true, nil
		}
	}
	return nil, false, ErrNotFound
}

func (s *Studio) marketingDailyLocked(events *[]Event) {
	today := s.state.Clock.AbsoluteDay()

	kept := s.state.Campaigns[:0]
	for _, c := range s.state.Campaigns {
		spec, err := campaignByID(c.CampaignID)
		if err != nil {
			continue
		}
		target, released, err := s.campaignTargetLocked(c.TargetID)
		if err != nil {
			// Target gone (cancelled project or purged title); drop silently.
			continue
		}

		if !released {
			perDay := spec.Hype / float64(spec.DurationDays)
			target.Hype = clampFloat(target.Hype+perDay, 0, 10)
			target.Marketing += perDay * 10
		} else {
			age := today - target.ReleasedDay
			ageMult := 1 - float64(age)/365
			if ageMult < 0.1 {
				ageMult = 0.1
			}
			sales := int64(math.Round(float64(spec.DailySalesEffect()) * ageMult))
			if sales > 0 {
				target.Sales += sales
				revenue := CreditsToMicros(float64(sales) * target.Platform.RevenuePerSale)
				target.RevenueMicros += revenue
				s.creditRevenueLocked(revenue)
			}
			fans := int64(math.Round(float64(spec.Fans) / float64(spec.DurationDays) * ageMult))
			s.state.Ledger.AddFans(fans)
		}

		c.DaysLeft--
		if c.DaysLeft <= 0 {
			s.state.Ledger.AddReputation(spec.Reputation)
			s.state.Ledger.AddFans(spec.Fans)
			addEvent(events, "marketing", SeverityInfo,
				fmt.Sprintf("%s finished for %s", spec.Name, target.Title))
			continue
		}
		kept = append(kept, c)
	}
	s.state.Campaigns = kept

	s.randomMarketingEventLocked(events, today)
}

// randomMarketingEventLocked fires a surprise press moment for a recent
// release with 5% daily probability.
func (s *Studio) randomMarketingEventLocked(events *[]Event, today int64) {
	if s.nextFloat() >= 0.05 {
		return
	}
	recent := make([]*Project, 0, len(s.state.Completed))
	for _, p := range s.state.Completed {
		if today-p.ReleasedDay <= 365 {
			recent = append(recent, p)
		}
	}
	if len(recent) == 0 {
		return
	}
	target := recent[int(s.nextFloat()*float64(len(recent)))%len(recent)]
	spec := marketingEventCatalog[int(s.nextFloat()*float64(len(marketingEventCatalog)))%len(marketingEventCatalog)]

	sales := int64(math.Round(spec.SalesEffect * target.Quality / 10))
	if sales > 0 {
		target.Sales += sales
		revenue := CreditsToMicros(float64(sales) * target.Platform.RevenuePerSale)
		target.RevenueMicros += revenue
		s.creditRevenueLocked(revenue)
	}
	s.state.Ledger.AddReputation(spec.Reputation)
	s.state.Ledger.AddFans(spec.Fans)
	addEvent(events, "press", SeverityInfo, fmt.Sprintf("%s: %s", spec.Headline, target.Title))
	s.log.Info("marketing event", "event", spec.ID, "title", target.Title)
}

func (s *Studio) ActiveCampaigns() []CampaignView {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CampaignView, 0, len(s.state.Campaigns))
	for _, c := range s.state.Campaigns {
		name := c.CampaignID
		if spec, err := campaignByID(c.CampaignID); err == nil {
			name = spec.Name
		}
		targetName := c.TargetID
		if target, _, err := s.campaignTargetLocked(c.TargetID); err == nil {
			targetName = target.Title
		}
		out = append(out, CampaignView{
			ID:       c.ID,
			Campaign: name,
			Target:   targetName,
			DaysLeft: c.DaysLeft,
			Total:    c.TotalDays,
		})
	}
	return out
}

func (s *Studio) CampaignCatalog() []CampaignSpec {
	out := make([]CampaignSpec, len(campaignCatalog))
	copy(out, campaignCatalog)
	return out
}
