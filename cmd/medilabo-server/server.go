package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/medilabo/medilabo/internal/config"
	"github.com/medilabo/medilabo/internal/domain/note"
	"github.com/medilabo/medilabo/internal/domain/patient"
	"github.com/medilabo/medilabo/internal/domain/risk"
	"github.com/medilabo/medilabo/internal/platform/db"
	"github.com/medilabo/medilabo/internal/platform/docstore"
	"github.com/medilabo/medilabo/internal/platform/middleware"
	"github.com/medilabo/medilabo/pkg/diabetesrisk"
)

const mongoDialTimeout = 10 * time.Second

// engine bundles the risk service with the stores behind it.
type engine struct {
	Risk *risk.Service

	// DB backs /health/db; Notes backs /health/notes when notes live outside postgres.
	DB      db.Pinger
	DBStats func() *db.PoolStats
	Notes   db.Pinger

	closers []func()
}

func (e *engine) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

func buildEngine(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*engine, error) {
	lexicon := diabetesrisk.DefaultLexicon()
	if cfg.LexiconFile != "" {
		lex, err := diabetesrisk.LoadLexiconFile(cfg.LexiconFile)
		if err != nil {
			return nil, err
		}
		lexicon = lex
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, err
	}
	eng := &engine{
		DB:      pool,
		DBStats: func() *db.PoolStats { return db.GetPoolStats(pool) },
		closers: []func(){pool.Close},
	}
	logger.Info().Msg("connected to database")

	var noteRepo note.NoteRepository
	switch cfg.NoteStore {
	case config.NoteStoreMongo:
		session, err := docstore.Dial(cfg.MongoURL, mongoDialTimeout)
		if err != nil {
			eng.Close()
			return nil, err
		}
		eng.closers = append(eng.closers, session.Close)
		eng.Notes = docstore.Pinger{Session: session}
		noteRepo = note.NewNoteRepoMongo(session, cfg.MongoDatabase)
		logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to note store")
	case config.NoteStorePostgres:
		noteRepo = note.NewNoteRepoPG(pool)
	default:
		eng.Close()
		return nil, fmt.Errorf("unsupported note store %q", cfg.NoteStore)
	}

	evaluator := diabetesrisk.NewEvaluator(
		patient.NewService(patient.NewPatientRepoPG(pool)),
		note.NewService(noteRepo),
		diabetesrisk.WithLexicon(lexicon),
		diabetesrisk.WithLogger(logger.With().Str("component", "diabetesrisk").Logger()),
	)
	logger.Info().
		Str("file", cfg.LexiconFile).
		Int("terms", evaluator.Lexicon().Len()).
		Msg("trigger lexicon ready")
	eng.Risk = risk.NewService(evaluator, cfg.BatchConcurrency, logger)
	return eng, nil
}

func newServer(cfg *config.Config, logger zerolog.Logger, eng *engine) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	}))
	e.Use(echomw.BodyLimit("64K"))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if eng.DB != nil {
		e.GET("/health/db", db.HealthHandler(eng.DB, eng.DBStats))
	}
	if eng.Notes != nil {
		e.GET("/health/notes", db.HealthHandler(eng.Notes, nil))
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	limited := []echo.MiddlewareFunc{
		middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			BurstSize:         cfg.RateLimitBurst,
		}),
		middleware.RequestTimeout(cfg.RequestTimeout),
	}

	h := risk.NewHandler(eng.Risk)
	h.RegisterRoutes(e.Group("/api/v1", limited...))
	h.RegisterLegacyRoutes(e, limited...)

	return e
}

// writeAssessments prints one "<patient-id>\t<label>" line per assessment.
func writeAssessments(w io.Writer, results []diabetesrisk.Assessment) error {
	for _, a := range results {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", a.PatientID, a.Tier); err != nil {
			return err
		}
	}
	return nil
}
