package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tycoon/internal/sim"
	"tycoon/internal/store"
)

type Server struct {
	log  *slog.Logger
	host *Host
	mux  *chi.Mux
}

func New(host *Host, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		log:  logger.With("component", "api"),
		host: host,
		mux:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/report", s.handleReport)
		r.Post("/advance", s.handleAdvance)
		r.Post("/pause", s.handlePause)
		r.Post("/resume", s.handleResume)
		r.Post("/new", s.handleNewGame)

		r.Get("/roster", s.handleRoster)
		r.Get("/roster/candidates", s.handleCandidates)
		r.Post("/roster/candidates/refresh", s.handleRefreshCandidates)
		r.Post("/roster/hire", s.handleHire)
		r.Post("/roster/{id}/fire", s.handleFire)
		r.Post("/roster/{id}/train", s.handleTrain)

		r.Get("/project", s.handleProject)
		r.Get("/projects/completed", s.handleCompleted)
		r.Post("/project", s.handleStartProject)
		r.Post("/project/cancel", s.handleCancelProject)

		r.Get("/catalog/genres", s.handleGenres)
		r.Get("/catalog/platforms", s.handlePlatforms)
		r.Get("/catalog/campaigns", s.handleCampaignCatalog)
		r.Get("/catalog/research", s.handleResearchCatalog)

		r.Get("/research", s.handleResearch)
		r.Post("/research/start", s.handleStartResearch)
		r.Post("/research/cancel", s.handleCancelResearch)

		r.Get("/marketing", s.handleMarketing)
		r.Post("/marketing/start", s.handleStartCampaign)
		r.Post("/marketing/{id}/cancel", s.handleCancelCampaign)

		r.Get("/finance", s.handleFinance)
		r.Post("/finance/loans/take", s.handleTakeLoan)
		r.Post("/finance/offers/{id}/accept", s.handleAcceptOffer)
		r.Post("/finance/offers/{id}/reject", s.handleRejectOffer)

		r.Get("/saves", s.handleSavesList)
		r.Post("/saves/{slot}", s.handleSave)
		r.Post("/saves/{slot}/load", s.handleLoad)

		r.Get("/stream", s.handleStream)
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.host.Studio().Status())
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.host.Studio().FinanceSummary())
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	days := 1
	if r.ContentLength > 0 {
		var in struct {
			Days int `json:"days"`
		}
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if in.Days > 0 {
			days = in.Days
		}
	}
	if days > sim.DaysPerYear {
		writeError(w, http.StatusBadRequest, "cannot advance more than a year at once")
		return
	}
	reports := make([]sim.DayReport, 0, days)
	for i := 0; i < days; i++ {
		report, err := s.host.Advance()
		if err != nil {
			if len(reports) > 0 {
				break
			}
			writeDomainError(w, err)
			return
		}
		reports = append(reports, report)
		if report.GameOver {
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

func (s *Server) handlePause(w http.ResponseWriter, _ *http.Request) {
	s.host.Studio().Pause()
	writeJSON(w, http.StatusOK, map[string]any{"paused": true})
}

func (s *Server) handleResume(w http.ResponseWriter, _ *http.Request) {
	s.host.Studio().Resume()
	writeJSON(w, http.StatusOK, map[string]any{"paused": false})
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name           string `json:"name"`
		Difficulty     string `json:"difficulty"`
		Specialization string `json:"specialization"`
		FounderName    string `json:"founder_name"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	err := s.host.NewGame(sim.NewStudioInput{
		Name:           in.Name,
		Difficulty:     sim.Difficulty(in.Difficulty),
		Specialization: sim.Specialization(in.Specialization),
		FounderName:    in.FounderName,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.host.Studio().Status())
}

func (s *Server) handleRoster(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"employees": s.host.Studio().Roster()})
}

func (s *Server) handleCandidates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"candidates": s.host.Studio().CandidateList()})
}

func (s *Server) handleRefreshCandidates(w http.ResponseWriter, _ *http.Request) {
	if err := s.host.Studio().RefreshCandidates(); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"candidates": s.host.Studio().CandidateList()})
}

func (s *Server) handleHire(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CandidateID string `json:"candidate_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.host.Studio().Hire(in.CandidateID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleFire(w http.ResponseWriter, r *http.Request) {
	if err := s.host.Studio().Fire(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Skill string `json:"skill"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.host.Studio().Train(chi.URLParam(r, "id"), in.Skill); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleProject(w http.ResponseWriter, _ *http.Request) {
	project, err := s.host.Studio().CurrentProject()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) handleCompleted(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"projects": s.host.Studio().CompletedProjects()})
}

func (s *Server) handleStartProject(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title        string `json:"title"`
		Genre        string `json:"genre"`
		Platform     string `json:"platform"`
		BudgetMicros int64  `json:"budget_micros"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	err := s.host.Studio().StartProject(sim.StartProjectInput{
		Title:        in.Title,
		GenreID:      in.Genre,
		PlatformID:   in.Platform,
		BudgetMicros: in.BudgetMicros,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	project, err := s.host.Studio().CurrentProject()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (s *Server) handleCancelProject(w http.ResponseWriter, _ *http.Request) {
	if err := s.host.Studio().CancelProject(); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleGenres(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"genres": s.host.Studio().GenreCatalog()})
}

func (s *Server) handlePlatforms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"platforms": s.host.Studio().PlatformCatalog()})
}

func (s *Server) handleCampaignCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"campaigns": s.host.Studio().CampaignCatalog()})
}

func (s *Server) handleResearchCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"research": s.host.Studio().ResearchCatalog()})
}

func (s *Server) handleResearch(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.host.Studio().ResearchStatus())
}

func (s *Server) handleStartResearch(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID string `json:"id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.host.Studio().StartResearch(in.ID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.host.Studio().ResearchStatus())
}

func (s *Server) handleCancelResearch(w http.ResponseWriter, _ *http.Request) {
	if err := s.host.Studio().CancelResearch(); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleMarketing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"campaigns": s.host.Studio().ActiveCampaigns()})
}

func (s *Server) handleStartCampaign(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Campaign string `json:"campaign"`
		TargetID string `json:"target_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.host.Studio().StartCampaign(in.Campaign, in.TargetID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"campaigns": s.host.Studio().ActiveCampaigns()})
}

func (s *Server) handleCancelCampaign(w http.ResponseWriter, r *http.Request) {
	if err := s.host.Studio().CancelCampaign(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleFinance(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.host.Studio().FinanceSummary())
}

func (s *Server) handleTakeLoan(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Loan string `json:"loan"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.host.Studio().TakeLoan(in.Loan); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.host.Studio().FinanceSummary())
}

func (s *Server) handleAcceptOffer(w http.ResponseWriter, r *http.Request) {
	if err := s.host.Studio().AcceptOffer(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.host.Studio().FinanceSummary())
}

func (s *Server) handleRejectOffer(w http.ResponseWriter, r *http.Request) {
	if err := s.host.Studio().RejectOffer(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleSavesList(w http.ResponseWriter, r *http.Request) {
	slots, err := s.host.Saves(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saves": slots})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := s.host.Save(r.Context(), chi.URLParam(r, "slot")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if err := s.host.Load(r.Context(), chi.URLParam(r, "slot")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.host.Studio().Status())
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sim.ErrNotFound), errors.Is(err, store.ErrNoSave):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, sim.ErrInsufficientFunds), errors.Is(err, sim.ErrInvalidState):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, sim.ErrConflict), errors.Is(err, sim.ErrCapacity), errors.Is(err, sim.ErrGameOver):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, sim.ErrPolicy):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
