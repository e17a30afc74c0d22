package http

import (
	"net/http"

	"mediaccess/internal/delivery/http/handler"
	"mediaccess/internal/delivery/http/middleware"
	"mediaccess/internal/domain/entity"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Auth        *handler.AuthHandler
	Dashboard   *handler.DashboardHandler
	AuditLog    *handler.AuditLogHandler
	User        *handler.UserHandler
	Patient     *handler.PatientHandler
	Trainee     *handler.TraineeHandler
	Proposal    *handler.ProposalHandler
	Task        *handler.TaskHandler
	Publication *handler.PublicationHandler
	Financial   *handler.FinancialHandler
	Simulation  *handler.SimulationHandler
	Assistant   *handler.AssistantHandler
	Developer   *handler.DeveloperHandler
}

type Router struct {
	router            *mux.Router
	handlers          Handlers
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	metricsMiddleware *middleware.MetricsMiddleware
	gatherer          prometheus.Gatherer
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
	gatherer prometheus.Gatherer,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		handlers:          handlers,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		metricsMiddleware: metricsMiddleware,
		gatherer:          gatherer,
	}
}

// guard wraps h so it only runs for roles holding cap
func guard(cap entity.Capability, h http.HandlerFunc) http.Handler {
	return middleware.RequireCapability(cap)(h)
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers

	// Operational endpoints
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	if r.gatherer != nil {
		r.router.Handle("/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Session routes (public)
	api.HandleFunc("/session/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/roles", h.Auth.Roles).Methods(http.MethodGet)

	// Everything else acts as a role
	app := api.NewRoute().Subrouter()
	app.Use(r.authMiddleware.Authenticate)

	app.HandleFunc("/session/me", h.Auth.Me).Methods(http.MethodGet)

	// Dashboard and global state
	app.Handle("/dashboard", guard(entity.CapViewDashboard, h.Dashboard.GetDashboard)).Methods(http.MethodGet)
	app.HandleFunc("/state", h.Dashboard.GetState).Methods(http.MethodGet)
	app.HandleFunc("/state/offline/toggle", h.Dashboard.ToggleOffline).Methods(http.MethodPost)
	app.HandleFunc("/state/menu/toggle", h.Dashboard.ToggleMobileMenu).Methods(http.MethodPost)
	app.HandleFunc("/notifications", h.Dashboard.GetNotifications).Methods(http.MethodGet)
	app.HandleFunc("/notifications/{id}/read", h.Dashboard.MarkNotificationRead).Methods(http.MethodPost)

	// System logs
	app.Handle("/logs", guard(entity.CapViewDashboard, h.AuditLog.GetLogs)).Methods(http.MethodGet)
	app.Handle("/logs/archive", guard(entity.CapAnalyzeSecurityLogs, h.AuditLog.GetArchivedLogs)).Methods(http.MethodGet)

	// User management
	app.Handle("/users", guard(entity.CapManageUsers, h.User.GetAllUsers)).Methods(http.MethodGet)
	app.Handle("/users", guard(entity.CapManageUsers, h.User.CreateUser)).Methods(http.MethodPost)
	app.Handle("/users/{id}", guard(entity.CapManageUsers, h.User.UpdateUser)).Methods(http.MethodPatch)

	// Patients
	app.Handle("/patients", guard(entity.CapManagePatients, h.Patient.GetPatients)).Methods(http.MethodGet)
	app.Handle("/patients", guard(entity.CapManagePatients, h.Patient.RegisterPatient)).Methods(http.MethodPost)
	app.Handle("/patients/{id}/chart", guard(entity.CapManagePatients, h.Patient.UpdateChart)).Methods(http.MethodPut)
	app.Handle("/patients/{id}/advance", guard(entity.CapManagePatients, h.Patient.AdvancePatient)).Methods(http.MethodPost)
	app.Handle("/patients/{id}/dictation", guard(entity.CapManagePatients, h.Patient.Dictate)).Methods(http.MethodPost)

	// Trainees
	app.Handle("/trainees", guard(entity.CapViewPerformanceReviews, h.Trainee.GetTrainees)).Methods(http.MethodGet)
	app.Handle("/trainees/supervisors", guard(entity.CapManageTrainees, h.Trainee.GetSupervisors)).Methods(http.MethodGet)
	app.Handle("/trainees/{id}/supervisor", guard(entity.CapManageTrainees, h.Trainee.AssignSupervisor)).Methods(http.MethodPut)
	app.Handle("/trainees/{id}/reviews", guard(entity.CapManageTrainees, h.Trainee.LogReview)).Methods(http.MethodPost)

	// Board review
	app.Handle("/proposals", guard(entity.CapViewBoardReview, h.Proposal.GetProposals)).Methods(http.MethodGet)
	app.Handle("/proposals/{id}/votes", guard(entity.CapVoteProposals, h.Proposal.Vote)).Methods(http.MethodPost)

	// Admin approvals
	app.Handle("/tasks", guard(entity.CapApproveTasks, h.Task.GetTasks)).Methods(http.MethodGet)
	app.Handle("/tasks/audit", guard(entity.CapGenerateReports, h.Task.RunAudit)).Methods(http.MethodPost)
	app.Handle("/tasks/sla-checks", guard(entity.CapApproveTasks, h.Task.GetSLAChecklist)).Methods(http.MethodGet)
	app.Handle("/tasks/sla-checks/{id}/toggle", guard(entity.CapApproveTasks, h.Task.ToggleSLACheck)).Methods(http.MethodPost)
	app.Handle("/tasks/{id}/approve", guard(entity.CapApproveTasks, h.Task.ApproveTask)).Methods(http.MethodPost)
	app.Handle("/tasks/{id}/reject", guard(entity.CapApproveTasks, h.Task.RejectTask)).Methods(http.MethodPost)

	// Publications
	app.HandleFunc("/journals", h.Publication.GetJournals).Methods(http.MethodGet)
	app.Handle("/journals", guard(entity.CapPublishJournals, h.Publication.PublishJournal)).Methods(http.MethodPost)
	app.HandleFunc("/reports", h.Publication.GetReports).Methods(http.MethodGet)
	app.HandleFunc("/guides", h.Publication.GetGuides).Methods(http.MethodGet)
	app.Handle("/guides", guard(entity.CapManageGuides, h.Publication.UploadGuide)).Methods(http.MethodPost)
	app.Handle("/guides/{id}", guard(entity.CapManageGuides, h.Publication.DeleteGuide)).Methods(http.MethodDelete)

	// Financials
	app.Handle("/financials", guard(entity.CapViewFinancials, h.Financial.GetOutlook)).Methods(http.MethodGet)

	// Simulations
	sim := app.PathPrefix("/simulations").Subrouter()
	sim.Use(middleware.RequireCapability(entity.CapRunSimulations))
	sim.HandleFunc("/cyber-attack", h.Simulation.CyberAttack).Methods(http.MethodPost)
	sim.HandleFunc("/resolve", h.Simulation.Resolve).Methods(http.MethodPost)
	sim.HandleFunc("/patient-surge", h.Simulation.PatientSurge).Methods(http.MethodPost)

	// Assistant and knowledge base
	app.Handle("/assistant/analyze", guard(entity.CapAnalyzeSecurityLogs, h.Assistant.AnalyzeLog)).Methods(http.MethodPost)
	app.HandleFunc("/assistant/summarize", h.Assistant.Summarize).Methods(http.MethodPost)
	app.HandleFunc("/assistant/compliance", h.Assistant.AskCompliance).Methods(http.MethodPost)
	app.HandleFunc("/assistant/chat", h.Assistant.Chat).Methods(http.MethodPost)
	app.HandleFunc("/assistant/chat/stream", h.Assistant.ChatStream).Methods(http.MethodPost)
	app.HandleFunc("/assistant/chat/{session}", h.Assistant.GetTranscript).Methods(http.MethodGet)
	app.HandleFunc("/assistant/chat/{session}", h.Assistant.ResetChat).Methods(http.MethodDelete)
	app.HandleFunc("/documents", h.Assistant.GetDocuments).Methods(http.MethodGet)
	app.HandleFunc("/documents/{id}", h.Assistant.GetDocument).Methods(http.MethodGet)

	// Developer API console
	dev := app.PathPrefix("/developer").Subrouter()
	dev.Use(middleware.RequireCapability(entity.CapViewDeveloperAPI))
	dev.HandleFunc("/endpoints", h.Developer.GetEndpoints).Methods(http.MethodGet)
	dev.HandleFunc("/try", h.Developer.TryEndpoint).Methods(http.MethodPost)

	// Add CORS and metrics middleware
	r.router.Use(r.corsMiddleware.Handle)
	if r.metricsMiddleware != nil {
		r.router.Use(r.metricsMiddleware.Handle)
	}

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
