package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pankajydv07/portfolio/internal/config"
	"github.com/pankajydv07/portfolio/internal/contact"
	"github.com/pankajydv07/portfolio/internal/content"
	"github.com/pankajydv07/portfolio/internal/particle"
	"github.com/pankajydv07/portfolio/internal/store"
	"github.com/pankajydv07/portfolio/internal/terminal"
)

const (
	// relayTimeout bounds a single contact relay attempt.
	relayTimeout = 15 * time.Second
	// noticeDismissMs is how long the success notice stays up before the
	// form returns to idle.
	noticeDismissMs = 5000
)

// site holds everything the handlers share.
type site struct {
	cfg      config.Config
	store    *store.Store
	content  *content.Portfolio
	shell    *terminal.Shell
	relay    contact.Relay
	backdrop *particle.Loop

	adminToken  string
	hashingSalt string

	// tracking waits on background visitor inserts.
	tracking sync.WaitGroup
}

func main() {
	cfg := config.Load()
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	p, err := content.Load()
	if err != nil {
		log.Fatal("Failed to load content: ", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := newSite(cfg, db, p, newRelay(cfg))
	go func() {
		if err := s.backdrop.Run(ctx, particle.Discard); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Backdrop loop stopped: %v", err)
		}
	}()
	go s.runRetention(ctx, 24*time.Hour)

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		log.Fatal("Failed to listen: ", err)
	}
	srv := &http.Server{Handler: setupRouter(s, "templates/*")}

	log.Printf("Portfolio listening on :%s", cfg.Port)
	if err := serve(ctx, srv, ln, 5*time.Second); err != nil {
		log.Printf("Server error: %v", err)
	}
	s.tracking.Wait()
}

func newSite(cfg config.Config, db *store.Store, p *content.Portfolio, relay contact.Relay) *site {
	s := &site{
		cfg:      cfg,
		store:    db,
		content:  p,
		shell:    terminal.New(p),
		relay:    relay,
		backdrop: newBackdrop(),
	}
	s.initAdminToken()
	return s
}

// serve runs srv on ln until ctx is done, then gives in-flight requests
// grace to finish.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, grace time.Duration) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newRelay picks the contact relay named by CONTACT_RELAY.
func newRelay(cfg config.Config) contact.Relay {
	if cfg.Relay == "smtp" {
		log.Printf("Contact relay: SMTP via %s:%s", cfg.SMTPHost, cfg.SMTPPort)
		return contact.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.ToEmail)
	}
	log.Println("Contact relay: Web3Forms")
	return contact.NewWeb3Forms(cfg.Web3FormsURL, cfg.Web3FormsKey)
}

func setupRouter(s *site, templates string) *gin.Engine {
	r := gin.Default()
	r.SetFuncMap(templateFuncs)
	r.LoadHTMLGlob(templates)
	r.Use(s.visitorTrackingMiddleware())

	r.Static("/images", "./images")
	r.Static("/static", "./static")
	r.StaticFile("/resume.pdf", "./static/resume.pdf")

	// Home page route
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", pageData(s.content))
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/api/content", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.content)
	})

	r.GET("/api/terminal", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"lines":    s.shell.Welcome(),
			"commands": s.shell.Commands(),
		})
	})

	r.POST("/api/terminal", func(c *gin.Context) {
		var req struct {
			Command string `json:"command"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expected {\"command\": \"...\"}"})
			return
		}
		c.JSON(http.StatusOK, s.shell.Run(req.Command))
	})

	r.GET("/backdrop.png", s.handleBackdrop)

	// Contact submission from the HTMX form or a JSON fetch
	r.POST("/contact", s.handleContact)

	s.setupAdminRoutes(r)
	return r
}

func (s *site) handleContact(c *gin.Context) {
	htmx := c.GetHeader("HX-Request") == "true"
	owner := s.content.Profile.Email

	var msg contact.Message
	if err := c.ShouldBind(&msg); err != nil {
		s.contactFailed(c, htmx, http.StatusBadRequest, "Please fill in every field.")
		return
	}
	msg = msg.Normalize()
	if err := msg.Validate(); err != nil {
		s.contactFailed(c, htmx, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), relayTimeout)
	defer cancel()
	sendErr := s.relay.Send(ctx, msg)

	attempt := store.ContactAttempt{
		Name:      msg.Name,
		Email:     msg.Email,
		Delivered: sendErr == nil,
		CreatedAt: time.Now(),
	}
	if err := s.store.RecordContact(c.Request.Context(), attempt); err != nil {
		log.Printf("Error recording contact attempt: %v", err)
	}

	if sendErr != nil {
		log.Printf("Error relaying contact from %s: %v", s.hashIP(c.ClientIP()), sendErr)
		s.contactFailed(c, htmx, http.StatusBadGateway, contact.FallbackNotice(owner))
		return
	}

	log.Printf("Contact relayed from %s", s.hashIP(c.ClientIP()))
	if htmx {
		c.HTML(http.StatusOK, "contact-success.html", gin.H{
			"success":      contact.SuccessNotice,
			"dismissAfter": noticeDismissMs,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": contact.SuccessNotice})
}

// contactFailed answers a failed submission. HTMX only swaps 2xx
// responses, so fragments always go out as 200.
func (s *site) contactFailed(c *gin.Context, htmx bool, status int, notice string) {
	if htmx {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": notice})
		return
	}
	c.JSON(status, gin.H{"success": false, "message": notice})
}

// runRetention drops visitor records older than twelve months, once at
// start and then every interval.
func (s *site) runRetention(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		s.cleanupOldVisitorData(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *site) cleanupOldVisitorData(ctx context.Context) {
	n, err := s.store.Cleanup(ctx, time.Now().AddDate(-1, 0, 0))
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than 12 months", n)
	}
}
