package httpapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/goliatone/go-dashboard-ui/components/dashboard"
)

const (
	// DefaultActionRate caps form and JSON action posts per client IP per minute.
	DefaultActionRate = 600
	defaultTimeout    = 30 * time.Second
)

// DefaultContentSecurityPolicy allows the inline chart iframes and the echarts CDN.
const DefaultContentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline' https://go-echarts.github.io https://cdn.jsdelivr.net; " +
	"style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' data: https://api.dicebear.com; " +
	"frame-src 'self'; " +
	"connect-src 'self'"

// RouterConfig wires the chi transport.
type RouterConfig struct {
	Handlers   *Handlers
	BasePath   string
	ActionRate int
	CSP        string
	DevMode    bool
	Logger     *slog.Logger
}

// NewRouter mounts the console routes below the base path.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.ActionRate <= 0 {
		cfg.ActionRate = DefaultActionRate
	}
	if cfg.CSP == "" {
		cfg.CSP = DefaultContentSecurityPolicy
	}
	h := cfg.Handlers
	if h.Logger == nil {
		h.Logger = cfg.Logger
	}
	base := dashboard.NormalizeBasePath(cfg.BasePath)

	headers := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "same-origin",
		ContentSecurityPolicy: cfg.CSP,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         cfg.DevMode,
	})

	limiter := httprate.Limit(
		cfg.ActionRate,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "too many actions"})
		}),
	)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders(headers))

	r.Route(routePrefix(base), func(r chi.Router) {
		r.Handle("/static/*", dashboard.StaticHandler(base+"/static"))

		r.Route("/s/{shell}", func(r chi.Router) {
			// streams stay open, so only the short-lived endpoints get a deadline
			r.Get("/events", func(w http.ResponseWriter, r *http.Request) {
				h.HandleEvents(w, r, chi.URLParam(r, "shell"))
			})
			r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
				h.HandleSocket(w, r, chi.URLParam(r, "shell"))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(defaultTimeout))
				r.Get("/", func(w http.ResponseWriter, r *http.Request) {
					h.HandleRender(w, r, chi.URLParam(r, "shell"), "/")
				})
				r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
					h.HandleUnmount(w, r, chi.URLParam(r, "shell"))
				})
				r.Get("/state", func(w http.ResponseWriter, r *http.Request) {
					h.HandleState(w, r, chi.URLParam(r, "shell"))
				})
				r.With(limiter).Post("/actions", func(w http.ResponseWriter, r *http.Request) {
					h.HandleAction(w, r, chi.URLParam(r, "shell"))
				})
				r.Get("/{page}", func(w http.ResponseWriter, r *http.Request) {
					h.HandleRender(w, r, chi.URLParam(r, "shell"), "/"+chi.URLParam(r, "page"))
				})
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(defaultTimeout))
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				h.HandleEnter(w, r, "/")
			})
			r.Get("/{page}", func(w http.ResponseWriter, r *http.Request) {
				h.HandleEnter(w, r, "/"+chi.URLParam(r, "page"))
			})
		})
	})
	return r
}

func securityHeaders(s *secure.Secure) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := s.Process(w, r); err != nil {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func routePrefix(base string) string {
	if base == "" {
		return "/"
	}
	return strings.TrimRight(base, "/")
}
