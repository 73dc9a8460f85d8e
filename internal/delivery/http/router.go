package http

import (
	"log/slog"
	"net/http"
	"os"

	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"devevent/internal/delivery/http/controllers"
	"devevent/internal/delivery/http/middleware"
)

// RouterConfig holds the cross-cutting settings of the HTTP surface.
type RouterConfig struct {
	AllowedOrigins []string
	// UploadsDir, when set, is served under /uploads/ (local image store).
	UploadsDir string
}

// NewRouter initializes the HTTP router with all application routes and the middleware stack.
func NewRouter(logger *slog.Logger, cfg RouterConfig, eventController *controllers.EventController) http.Handler {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /events/{slug}", eventController.GetEventBySlug)
	// Empty or multi-segment slugs carry no path value and get the invalid slug envelope.
	mux.HandleFunc("GET /events/", eventController.GetEventBySlug)

	mux.HandleFunc("GET /health", controllers.HealthCheck)

	if cfg.UploadsDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(filesOnly{http.Dir(cfg.UploadsDir)})))
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var h http.Handler = mux
	h = middleware.CORS(cfg.AllowedOrigins, h)
	h = middleware.LoggingMiddleware(logger, h)
	h = chimw.Recoverer(h)
	h = chimw.RealIP(h)
	h = chimw.RequestID(h)
	return h
}

// filesOnly hides directories so uploaded object keys cannot be listed.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
