package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/David-Van-Dyne/pickup-scheduler/config"
	apperr "github.com/David-Van-Dyne/pickup-scheduler/errors"
	"github.com/David-Van-Dyne/pickup-scheduler/models"
	"github.com/David-Van-Dyne/pickup-scheduler/service"
	"github.com/David-Van-Dyne/pickup-scheduler/session"
)

// maxBodyBytes caps request bodies; connections pushing more are closed
const maxBodyBytes = 1_000_000

// Server represents the HTTP server and API handler
type Server struct {
	router              *gin.Engine
	config              *config.Config
	sessions            session.Store
	configService       service.ConfigServiceInterface
	appointmentService  service.AppointmentServiceInterface
	accountService      service.AccountServiceInterface
	notificationService service.NotificationServiceInterface
}

// ServerOptions collects the dependencies a Server needs
type ServerOptions struct {
	Config              *config.Config
	Sessions            session.Store
	ConfigService       service.ConfigServiceInterface
	AppointmentService  service.AppointmentServiceInterface
	AccountService      service.AccountServiceInterface
	NotificationService service.NotificationServiceInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(opts ServerOptions) (*Server, error) {
	if opts.Sessions == nil {
		return nil, fmt.Errorf("sessions store is required")
	}
	if opts.ConfigService == nil || opts.AppointmentService == nil ||
		opts.AccountService == nil || opts.NotificationService == nil {
		return nil, fmt.Errorf("all services are required")
	}

	server := &Server{
		router:              gin.Default(),
		config:              opts.Config,
		sessions:            opts.Sessions,
		configService:       opts.ConfigService,
		appointmentService:  opts.AppointmentService,
		accountService:      opts.AccountService,
		notificationService: opts.NotificationService,
	}

	server.setupRoutes()
	return server, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(corsMiddleware(), limitBodySize())

	s.router.GET("/healthz", s.healthz)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	{
		api.GET("/config", s.getConfig)
		api.POST("/appointments", s.createAppointment)
		api.POST("/admin/login", s.login)
		api.POST("/public/accounts", s.createPublicAccount)
	}

	admin := api.Group("", s.requireAdmin)
	{
		admin.GET("/admin/session", s.sessionProbe)
		admin.GET("/appointments", s.listAppointments)
		admin.PATCH("/appointments/:id", s.patchAppointment)
		admin.DELETE("/appointments/:id", s.deleteAppointment)
		admin.GET("/accounts", s.listAccounts)
		admin.POST("/accounts", s.createAccountFromAppointment)
		admin.GET("/accounts/:id", s.getAccount)
		admin.PATCH("/accounts/:id", s.patchAccount)
		admin.DELETE("/accounts/:id", s.deleteAccount)
		admin.POST("/accounts/:id/notifications", s.addNotification)
		admin.PATCH("/accounts/:id/notifications/:nid", s.updateNotification)
		admin.DELETE("/accounts/:id/notifications/:nid", s.deleteNotification)
	}

	s.ServeStaticFiles()
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// corsMiddleware mirrors what browser clients of the public form and admin
// panel need: reflected origin plus the headers the admin panel sends
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if strings.HasPrefix(origin, "http://") || strings.HasPrefix(origin, "https://") {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func limitBodySize() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		}
		c.Next()
	}
}

// requireAdmin guards admin-only routes with the bearer token from the
// session registry
func (s *Server) requireAdmin(c *gin.Context) {
	scheme, token, _ := strings.Cut(c.GetHeader("Authorization"), " ")
	if scheme != "Bearer" || token == "" || !s.sessions.Authenticate(token) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.Next()
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) getConfig(c *gin.Context) {
	cfg, err := s.configService.Get()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, err)
		return
	}

	token, err := s.sessions.Login(req.Password)
	if err != nil {
		slog.Warn("Admin login rejected")
		s.handleError(c, err)
		return
	}

	slog.Info("Admin login succeeded")
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) sessionProbe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "role": "admin"})
}

func (s *Server) createAppointment(c *gin.Context) {
	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, err)
		return
	}

	appt, err := s.appointmentService.Create(&req)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"confirmation": appt.ID, "appointment": appt})
}

func (s *Server) listAppointments(c *gin.Context) {
	filter := models.AppointmentFilter{
		Date:      c.Query("date"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	appts, err := s.appointmentService.List(filter)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

func (s *Server) patchAppointment(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		s.handleError(c, err)
		return
	}

	appt, err := s.appointmentService.Patch(c.Param("id"), fields)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

func (s *Server) deleteAppointment(c *gin.Context) {
	if err := s.appointmentService.Delete(c.Param("id")); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) listAccounts(c *gin.Context) {
	accounts, err := s.accountService.List()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

func (s *Server) createAccountFromAppointment(c *gin.Context) {
	var req models.AccountFromAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, err)
		return
	}

	acct, err := s.accountService.CreateFromAppointment(req.AppointmentID, req.Notes)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": acct})
}

func (s *Server) createPublicAccount(c *gin.Context) {
	var req models.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, err)
		return
	}

	acct, err := s.accountService.CreatePublic(&req)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": acct})
}

func (s *Server) getAccount(c *gin.Context) {
	acct, err := s.accountService.Get(c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": acct})
}

func (s *Server) patchAccount(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		s.handleError(c, err)
		return
	}

	acct, err := s.accountService.Patch(c.Param("id"), fields)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": acct})
}

func (s *Server) deleteAccount(c *gin.Context) {
	if err := s.accountService.Delete(c.Param("id")); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) addNotification(c *gin.Context) {
	var req models.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, err)
		return
	}

	notification, err := s.notificationService.Add(c.Param("id"), &req)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notification": notification})
}

func (s *Server) updateNotification(c *gin.Context) {
	var req models.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, err)
		return
	}

	notification, err := s.notificationService.Update(c.Param("id"), c.Param("nid"), &req)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notification": notification})
}

func (s *Server) deleteNotification(c *gin.Context) {
	if err := s.notificationService.Delete(c.Param("id"), c.Param("nid")); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var statusCode int
	var message string

	var appErr *apperr.AppError
	var bindErrs validator.ValidationErrors

	switch {
	case errors.As(err, &appErr):
		switch appErr.Type {
		case apperr.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case apperr.UnauthorizedError:
			statusCode = http.StatusUnauthorized
			message = appErr.Message
		case apperr.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case apperr.AlreadyExistsError, apperr.DateUnavailableError, apperr.CapacityError:
			statusCode = http.StatusConflict
			message = appErr.Message
		case apperr.StorageError:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	case errors.As(err, &bindErrs):
		statusCode = http.StatusBadRequest
		message = "invalid request format"
	default:
		// Malformed or oversized JSON bodies land here from binding
		statusCode = http.StatusBadRequest
		message = "invalid request body"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
