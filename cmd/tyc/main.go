package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "tycoon/internal/cli"
	"tycoon/internal/config"
	"tycoon/internal/sim"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL
	if profile, err := cl.LoadProfile(); err == nil && profile.APIBaseURL != "" {
		apiBase = profile.APIBaseURL
	}

	root := &cobra.Command{
		Use:          "tyc",
		Short:        "Tycoon CLI game client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newNewCmd(&apiBase),
		newStatusCmd(&apiBase),
		newAdvanceCmd(&apiBase),
		newPauseCmd(&apiBase),
		newResumeCmd(&apiBase),
		newRosterCmd(&apiBase),
		newProjectCmd(&apiBase),
		newResearchCmd(&apiBase),
		newMarketingCmd(&apiBase),
		newFinanceCmd(&apiBase),
		newSaveCmd(&apiBase),
		newLoadCmd(&apiBase),
		newSavesCmd(&apiBase),
		newWatchCmd(&apiBase),
		newProfileCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func newNewCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new studio",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := promptRequired("Studio name")
			if err != nil {
				return err
			}
			difficulty, err := promptChoice("Difficulty", []string{"easy", "normal", "hard"}, "normal")
			if err != nil {
				return err
			}
			specialization, err := promptChoice("Specialization", []string{"developer", "artist", "business"}, "developer")
			if err != nil {
				return err
			}
			founder, err := promptOptional("Founder name (optional)")
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).NewGame(ctx, name, difficulty, specialization, founder)
			if err != nil {
				return err
			}
			printSuccess("Studio founded. Good luck.")
			return renderStatus(out)
		},
	}
}

func newStatusCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show studio status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Status(ctx)
			if err != nil {
				return err
			}
			return renderStatus(out)
		},
	}
}

func newAdvanceCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "advance [days]",
		Short: "Advance the simulation by one or more days",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days := 1
			if len(args) > 0 {
				v, err := strconv.Atoi(strings.TrimSpace(args[0]))
				if err != nil || v <= 0 {
					return fmt.Errorf("invalid day count %q", args[0])
				}
				days = v
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Advance(ctx, days)
			if err != nil {
				return err
			}
			return renderReports(out)
		},
	}
}

func newPauseCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if _, err := newClient(apiBase).Pause(ctx); err != nil {
				return err
			}
			return renderSimpleOK("Simulation paused.")
		},
	}
}

func newResumeCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume the simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if _, err := newClient(apiBase).Resume(ctx); err != nil {
				return err
			}
			return renderSimpleOK("Simulation resumed.")
		},
	}
}

func newRosterCmd(apiBase *string) *cobra.Command {
	roster := &cobra.Command{
		Use:     "roster",
		Short:   "Roster and hiring commands",
		Aliases: []string{"team"},
	}

	roster.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Roster(ctx)
			if err != nil {
				return err
			}
			return renderRoster(out)
		},
	})
	roster.AddCommand(&cobra.Command{
		Use:   "candidates",
		Short: "List candidates available for hire",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Candidates(ctx)
			if err != nil {
				return err
			}
			return renderCandidates(out)
		},
	})
	roster.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Pay for a fresh batch of candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).RefreshCandidates(ctx)
			if err != nil {
				return err
			}
			return renderCandidates(out)
		},
	})
	roster.AddCommand(&cobra.Command{
		Use:   "hire [candidate_id]",
		Short: "Hire a candidate",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := stringFromArgsOrPrompt(args, "Candidate ID")
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if _, err := newClient(apiBase).Hire(ctx, id); err != nil {
				return err
			}
			return renderSimpleOK("Hired.")
		},
	})
	roster.AddCommand(&cobra.Command{
		Use:   "fire [employee_id]",
		Short: "Fire an employee (severance applies)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := stringFromArgsOrPrompt(args, "Employee ID")
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if _, err := newClient(apiBase).Fire(ctx, id); err != nil {
				return err
			}
			return renderSimpleOK("Fired. One month of severance paid.")
		},
	})
	roster.AddCommand(&cobra.Command{
		Use:   "train [employee_id] [skill]",
		Short: "Send an employee to training",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := stringFromArgsOrPrompt(args, "Employee ID")
			if err != nil {
				return err
			}
			var skill string
			if len(args) >= 2 {
				skill = strings.ToLower(strings.TrimSpace(args[1]))
			} else {
				skill, err = promptChoice("Skill", sim.SkillNames, sim.SkillNames[0])
				if err != nil {
					return err
				}
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if _, err := newClient(apiBase).Train(ctx, id, skill); err != nil {
				return err
			}
			return renderSimpleOK(fmt.Sprintf("Training complete: %s.", skill))
		},
	})
	return roster
}

func newProjectCmd(apiBase *string) *cobra.Command {
	project := &cobra.Command{
		Use:   "project",
		Short: "Game project commands",
	}

	project.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the project in development",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Project(ctx)
			if err != nil {
				return err
			}
			return renderProject(out)
		},
	})
	project.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start a new game project",
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := promptRequired("Title")
			if err != nil {
				return err
			}
			genre, err := promptRequired("Genre ID")
			if err != nil {
				return err
			}
			platform, err := promptRequired("Platform ID")
			if err != nil {
				return err
			}
			budget, err := promptInt64("Budget (credits)", 1)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).StartProject(ctx, title, genre, platform, budget*sim.MicrosPerCredit)
			if err != nil {
				return err
			}
			printSuccess("Project started. Budget moved to escrow.")
			return renderProject(out)
		},
	})
	project.AddCommand(&cobra.Command{
		Use:   "cancel",
		Short: "Cancel the project (half the remaining budget is refunded)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if _, err := newClient(apiBase).CancelProject(ctx); err != nil {
				return err
			}
			return renderSimpleOK("Project cancelled.")
		},
	})
	project.AddCommand(&cobra.Command{
		Use:   "completed",
		Short: "List released games",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).CompletedProjects(ctx)
			if err != nil {
				return err
			}
			return renderCompleted(out)
		},
	})
	project.AddCommand(&cobra.Command{
		Use:   "genres",
		Short: "List genres and unlock state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Genres(ctx)
			if err != nil {
				return err
			}
			return renderGenres(out)
		},
	})
	project.AddCommand(&cobra.Command{
		Use:   "platforms",
		Short: "List platforms and unlock state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Platforms(ctx)
			if err != nil {
				return err
			}
			return renderPlatforms(out)
		},
	})
	return project
}

func newResearchCmd(apiBase *string) *cobra.Command {
	research := &cobra.Command{
		Use:   "research",
		Short: "Research tree commands",
	}

	research.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show research progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Research(ctx)
			if err != nil {
				return err
			}
			return renderResearch(out)
		},
	})
	research.AddCommand(&cobra.Command{
		Use:   "start [id]",
		Short: "Start a research item",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := stringFromArgsOrPrompt(args, "Research ID")
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).StartResearch(ctx, id)
			if err != nil {
				return err
			}
			return renderResearch(out)
		},
	})
	research.AddCommand(&cobra.Command{
		Use:   "cancel",
		Short: "Cancel active research (half the cost is refunded)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if _, err := newClient(apiBase).CancelResearch(ctx); err != nil {
				return err
			}
			return renderSimpleOK("Research cancelled.")
		},
	})
	research.AddCommand(&cobra.Command{
		Use:   "catalog",
		Short: "Show the full research tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).ResearchCatalog(ctx)
			if err != nil {
				return err
			}
			return renderResearchCatalog(out)
		},
	})
	return research
}

func newMarketingCmd(apiBase *string) *cobra.Command {
	marketing := &cobra.Command{
		Use:   "marketing",
		Short: "Marketing campaign commands",
	}

	marketing.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List active campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Marketing(ctx)
			if err != nil {
				return err
			}
			return renderCampaigns(out)
		},
	})
	marketing.AddCommand(&cobra.Command{
		Use:   "start [campaign] [target_id]",
		Short: "Start a campaign (target defaults to the current project)",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			campaign, err := stringFromArgsOrPrompt(args, "Campaign ID")
			if err != nil {
				return err
			}
			target := ""
			if len(args) >= 2 {
				target = strings.TrimSpace(args[1])
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).StartCampaign(ctx, campaign, target)
			if err != nil {
				return err
			}
			printSuccess("Campaign started.")
			return renderCampaigns(out)
		},
	})
	marketing.AddCommand(&cobra.Command{
		Use:   "cancel [id]",
		Short: "Cancel a running campaign",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := stringFromArgsOrPrompt(args, "Campaign ID")
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if _, err := newClient(apiBase).CancelCampaign(ctx, id); err != nil {
				return err
			}
			return renderSimpleOK("Campaign cancelled.")
		},
	})
	marketing.AddCommand(&cobra.Command{
		Use:   "catalog",
		Short: "Show available campaign types",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).CampaignCatalog(ctx)
			if err != nil {
				return err
			}
			return renderCampaignCatalog(out)
		},
	})
	return marketing
}

func newFinanceCmd(apiBase *string) *cobra.Command {
	finance := &cobra.Command{
		Use:   "finance",
		Short: "Loans, investors and monthly records",
	}

	finance.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the finance summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Finance(ctx)
			if err != nil {
				return err
			}
			return renderFinance(out)
		},
	})
	finance.AddCommand(&cobra.Command{
		Use:   "loan [small|medium|large]",
		Short: "Take a loan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var loan string
			var err error
			if len(args) > 0 {
				loan = strings.ToLower(strings.TrimSpace(args[0]))
			} else {
				loan, err = promptChoice("Loan", []string{"small", "medium", "large"}, "small")
				if err != nil {
					return err
				}
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).TakeLoan(ctx, loan)
			if err != nil {
				return err
			}
			printSuccess("Loan approved.")
			return renderFinance(out)
		},
	})
	finance.AddCommand(&cobra.Command{
		Use:   "accept [offer_id]",
		Short: "Accept an investment offer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := stringFromArgsOrPrompt(args, "Offer ID")
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).AcceptOffer(ctx, id)
			if err != nil {
				return err
			}
			printSuccess("Offer accepted.")
			return renderFinance(out)
		},
	})
	finance.AddCommand(&cobra.Command{
		Use:   "reject [offer_id]",
		Short: "Reject an investment offer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := stringFromArgsOrPrompt(args, "Offer ID")
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if _, err := newClient(apiBase).RejectOffer(ctx, id); err != nil {
				return err
			}
			return renderSimpleOK("Offer rejected.")
		},
	})
	return finance
}

func newSaveCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "save [slot]",
		Short: "Save the game to a slot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := slotFromArgsOrProfile(args)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if _, err := newClient(apiBase).Save(ctx, slot); err != nil {
				return err
			}
			rememberSlot(slot)
			return renderSimpleOK(fmt.Sprintf("Saved to slot %q.", slot))
		},
	}
}

func newLoadCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "load [slot]",
		Short: "Load the game from a slot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := slotFromArgsOrProfile(args)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Load(ctx, slot)
			if err != nil {
				return err
			}
			rememberSlot(slot)
			printSuccess(fmt.Sprintf("Loaded slot %q.", slot))
			return renderStatus(out)
		},
	}
}

func newSavesCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "saves",
		Short: "List save slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Saves(ctx)
			if err != nil {
				return err
			}
			return renderSaves(out)
		},
	}
}

func newProfileCmd() *cobra.Command {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Local CLI preferences",
	}
	profile.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the stored profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := cl.LoadProfile()
			if err != nil {
				return err
			}
			fmt.Printf("API base URL: %s\n", valueOr(p.APIBaseURL, "(env default)"))
			fmt.Printf("Default slot: %s\n", valueOr(p.DefaultSlot, "(none)"))
			return nil
		},
	})
	profile.AddCommand(&cobra.Command{
		Use:   "set-url [url]",
		Short: "Pin the API base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := cl.LoadProfile()
			if err != nil {
				return err
			}
			p.APIBaseURL = strings.TrimRight(strings.TrimSpace(args[0]), "/")
			if err := cl.SaveProfile(p); err != nil {
				return err
			}
			return renderSimpleOK("Profile updated.")
		},
	})
	profile.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearProfile(); err != nil {
				return err
			}
			return renderSimpleOK("Profile cleared.")
		},
	})
	return profile
}

func stringFromArgsOrPrompt(args []string, label string) (string, error) {
	if len(args) > 0 {
		v := strings.TrimSpace(args[0])
		if v == "" {
			return "", fmt.Errorf("invalid %s", strings.ToLower(label))
		}
		return v, nil
	}
	return promptRequired(label)
}

func slotFromArgsOrProfile(args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(args[0]), nil
	}
	p, err := cl.LoadProfile()
	if err == nil && p.DefaultSlot != "" {
		return p.DefaultSlot, nil
	}
	return "autosave", nil
}

// rememberSlot makes the last used slot the default. Failures are cosmetic.
func rememberSlot(slot string) {
	p, err := cl.LoadProfile()
	if err != nil {
		return
	}
	p.DefaultSlot = slot
	_ = cl.SaveProfile(p)
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
