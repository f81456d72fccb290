// Package api exposes the HTTP surface: the OAuth flow, per-product
// proxy routes, the assistant endpoint, and operational routes.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	securitymiddleware "github.com/basak2005/Google-workspace-Integration/internal/infrastructure/middleware"
)

// Deps bundles everything the router mounts. Assistant may be nil when
// no model API key is configured; its route then reports unavailable.
type Deps struct {
	Auth      *AuthHandler
	Calendar  *CalendarHandler
	Tasks     *TasksHandler
	Gmail     *GmailHandler
	Drive     *DriveHandler
	Contacts  *ContactsHandler
	Sheets    *SheetsHandler
	YouTube   *YouTubeHandler
	Photos    *PhotosHandler
	User      *UserHandler
	Assistant *AssistantHandler

	CORSAllowedOrigins []string
	Logger             zerolog.Logger
}

// NewRouter assembles the chi router with the full middleware chain and
// route table.
func NewRouter(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(d.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(securitymiddleware.SecurityHeaders)
	r.Use(securitymiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(securitymiddleware.SessionIdentity)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "google-services-gateway",
			"docs":    "/swagger/index.html",
			"login":   "/auth/login",
		})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", d.Auth.Login)
		r.Get("/callback", d.Auth.Callback)
		r.Get("/status", d.Auth.Status)
		r.Get("/success", d.Auth.Success)
		r.Get("/logout", d.Auth.Logout)
		r.Post("/logout", d.Auth.Logout)
		r.Get("/users", d.Auth.ListUsers)
	})

	r.Route("/calendar", func(r chi.Router) {
		r.Get("/events", d.Calendar.ListEvents)
		r.Post("/events", d.Calendar.CreateEvent)
		r.Delete("/events/{eventID}", d.Calendar.DeleteEvent)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/lists", d.Tasks.ListTaskLists)
		r.Get("/lists/{listID}/tasks", d.Tasks.ListTasks)
		r.Post("/lists/{listID}/tasks", d.Tasks.CreateTask)
		r.Put("/lists/{listID}/tasks/{taskID}", d.Tasks.UpdateTask)
		r.Delete("/lists/{listID}/tasks/{taskID}", d.Tasks.DeleteTask)
	})

	r.Route("/gmail", func(r chi.Router) {
		r.Get("/messages", d.Gmail.ListMessages)
		r.Get("/messages/{messageID}", d.Gmail.GetMessage)
		r.Post("/send", d.Gmail.Send)
		r.Get("/labels", d.Gmail.Labels)
	})

	r.Route("/drive", func(r chi.Router) {
		r.Get("/files", d.Drive.ListFiles)
		r.Get("/files/{fileID}", d.Drive.GetFile)
		r.Delete("/files/{fileID}", d.Drive.DeleteFile)
		r.Post("/folders", d.Drive.CreateFolder)
		r.Get("/quota", d.Drive.GetQuota)
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", d.Contacts.ListContacts)
		r.Post("/", d.Contacts.CreateContact)
		r.Get("/search", d.Contacts.SearchContacts)
		r.Delete("/{resourceID}", d.Contacts.DeleteContact)
	})

	r.Route("/sheets", func(r chi.Router) {
		r.Post("/", d.Sheets.CreateSpreadsheet)
		r.Get("/{spreadsheetID}", d.Sheets.GetSpreadsheet)
		r.Get("/{spreadsheetID}/values", d.Sheets.ReadRange)
		r.Put("/{spreadsheetID}/values", d.Sheets.WriteRange)
		r.Post("/{spreadsheetID}/values", d.Sheets.AppendRows)
	})

	r.Route("/youtube", func(r chi.Router) {
		r.Get("/search", d.YouTube.Search)
		r.Get("/videos/{videoID}", d.YouTube.GetVideo)
		r.Get("/playlists", d.YouTube.ListPlaylists)
	})

	r.Route("/photos", func(r chi.Router) {
		r.Get("/albums", d.Photos.ListAlbums)
		r.Post("/albums", d.Photos.CreateAlbum)
		r.Get("/media", d.Photos.ListMediaItems)
	})

	r.Get("/user/me", d.User.Me)
	r.Get("/maps/geocode", d.User.Geocode)

	if d.Assistant != nil {
		r.Get("/assistant/daily-summary", d.Assistant.DailySummary)
	} else {
		r.Get("/assistant/daily-summary", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "assistant not configured, set GEMINI_API_KEY"})
		})
	}

	return r
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("Request handled")
		})
	}
}
