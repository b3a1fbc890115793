package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cleitonmarx/talentmatch/internal/domain"
	"github.com/cleitonmarx/talentmatch/internal/telemetry"
	"github.com/cleitonmarx/talentmatch/internal/usecases"
	"github.com/rs/cors"
)

// MatchAPIServer is the REST API HTTP server for the matching engine.
type MatchAPIServer struct {
	Port               int                  `config:"HTTP_PORT" default:"8080"`
	Logger             *log.Logger          `resolve:""`
	FindMatchesUseCase usecases.FindMatches `resolve:""`
	JobRepo            domain.JobRepository `resolve:""`
}

// Run starts the HTTP server for the MatchAPIServer.
func (api MatchAPIServer) Run(ctx context.Context) error {

	mux := http.NewServeMux()
	mux.HandleFunc("POST /jobs/{id}/matches", api.FindMatchesHandler)
	mux.HandleFunc("GET /healthz", api.HealthHandler)

	var h http.Handler = telemetry.Middleware("talentmatch-api")(mux)

	// Apply CORS at the top-level so preflight requests hit it, too.
	h = cors.AllowAll().Handler(h)

	s := &http.Server{
		Handler: h,
		Addr:    fmt.Sprintf(":%d", api.Port),
	}

	errCh := make(chan error, 1)
	go func() {
		api.Logger.Printf("MatchAPIServer: Listening on port %d", api.Port)
		errCh <- s.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.Shutdown(shutdownCtx)
		if err != nil {
			api.Logger.Printf("MatchAPIServer: error during shutdown: %v", err)
		} else {
			api.Logger.Println("MatchAPIServer: stopped")
		}
		return err
	case err := <-errCh:
		return err
	}
}

// IsReady checks if the MatchAPIServer is ready by performing a health check.
func (api MatchAPIServer) IsReady(ctx context.Context) error {
	resp, err := http.Get(fmt.Sprintf("http://:%d/healthz", api.Port))
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}

// HealthHandler reports service liveness.
func (api MatchAPIServer) HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
