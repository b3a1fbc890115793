package app

import (
	"github.com/cleitonmarx/symbiont"
	"github.com/cleitonmarx/talentmatch/internal/adapters/inbound/http"
	"github.com/cleitonmarx/talentmatch/internal/adapters/outbound/config"
	"github.com/cleitonmarx/talentmatch/internal/adapters/outbound/embedding"
	"github.com/cleitonmarx/talentmatch/internal/adapters/outbound/log"
	"github.com/cleitonmarx/talentmatch/internal/adapters/outbound/modelrunner"
	"github.com/cleitonmarx/talentmatch/internal/adapters/outbound/postgres"
	"github.com/cleitonmarx/talentmatch/internal/adapters/outbound/pubsub"
	"github.com/cleitonmarx/talentmatch/internal/adapters/outbound/rediscache"
	"github.com/cleitonmarx/talentmatch/internal/adapters/outbound/time"
	"github.com/cleitonmarx/talentmatch/internal/telemetry"
	"github.com/cleitonmarx/talentmatch/internal/usecases"
)

// NewMatchApp creates and returns a new instance of the matching engine application.
func NewMatchApp(initializers ...symbiont.Initializer) *symbiont.App {
	return symbiont.NewApp().
		Initialize(initializers...).
		Initialize(
			&log.InitLogger{},
			&telemetry.InitOpenTelemetry{},
			&telemetry.InitHttpClient{},
			&config.InitVaultProvider{},
			&postgres.InitDB{},
			&postgres.InitJobRepository{},
			&postgres.InitCandidateSource{},
			&rediscache.InitCacheStore{},
			&time.InitCurrentTimeProvider{},
			&pubsub.InitClient{},
			&pubsub.InitPublisher{},
			&modelrunner.InitEmbeddingClient{},
			&modelrunner.InitTextEncoder{},
			&embedding.InitGateway{},

			&usecases.InitFindMatches{},
		).
		Host(
			&http.MatchAPIServer{},
		).
		Introspect(&MermaidGraphIntrospector{})
}
