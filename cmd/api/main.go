package main

import (
	"context"
	"flag"
	"log"

	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/cache"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/catalog"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/config"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/db"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/metrics"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/quiz"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/server"
	"github.com/KumarAkash26/BOOK-RECOMMENDER-WITH-AI-QUIZ-GENERATOR/internal/telemetry"
)

func main() {
	doMigrate := flag.Bool("migrate", false, "run migrations and exit")
	importDir := flag.String("import", "", "copy catalog artifacts from `dir` into the database and exit")
	exportDir := flag.String("export", "", "write the database catalog as artifacts into `dir` and exit")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()

	tlog := telemetry.Init(telemetry.FromEnv(config.GetEnv))
	tlog.Info().Str("port", cfg.AppPort).Str("provider", cfg.GenerationProvider).Msg("booting book recommender")

	if *doMigrate || *importDir != "" || *exportDir != "" {
		if cfg.DBDSN == "" {
			log.Fatal("DB_DSN is required for -migrate, -import and -export")
		}
		sqlxDB, err := db.Connect(cfg.DBDSN)
		if err != nil {
			log.Fatal(err)
		}
		defer sqlxDB.Close()
		if err := db.Migrate(sqlxDB); err != nil {
			log.Fatal(err)
		}
		if *importDir != "" {
			t, err := catalog.LoadDir(ctx, *importDir)
			if err != nil {
				log.Fatal(err)
			}
			if _, err := catalog.New(t); err != nil {
				log.Fatal(err)
			}
			if err := db.ImportTables(ctx, sqlxDB, t); err != nil {
				log.Fatal(err)
			}
		}
		if *exportDir != "" {
			t, err := db.LoadTables(ctx, sqlxDB)
			if err != nil {
				log.Fatal(err)
			}
			if err := catalog.WriteDir(*exportDir, t); err != nil {
				log.Fatal(err)
			}
		}
		log.Println("migrations done")
		return
	}

	snap, err := loadSnapshot(ctx, cfg)
	if err != nil {
		tlog.Fatal().Err(err).Msg("catalog_load_failed")
	}
	for table, n := range snap.Stats() {
		metrics.CatalogSize.WithLabelValues(table).Set(float64(n))
	}

	var qc quiz.Cache
	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			tlog.Warn().Err(err).Msg("redis_unavailable_cache_disabled")
		} else {
			defer rdb.Close()
			qc = cache.NewQuizCache(rdb, cfg.QuizCacheTTL)
		}
	}

	svc := quiz.NewService(quiz.BuildClient(cfg), qc)
	app := server.New(cfg, snap, svc)

	log.Fatal(app.Listen(":" + cfg.AppPort))
}

// loadSnapshot prefers the database when DB_DSN is set and falls back to the
// JSON artifacts in CATALOG_DIR.
func loadSnapshot(ctx context.Context, cfg *config.Config) (*catalog.Snapshot, error) {
	var (
		t   catalog.Tables
		err error
	)
	if cfg.DBDSN != "" {
		sqlxDB, cerr := db.Connect(cfg.DBDSN)
		if cerr != nil {
			return nil, cerr
		}
		defer sqlxDB.Close()
		t, err = db.LoadTables(ctx, sqlxDB)
	} else {
		t, err = catalog.LoadDir(ctx, cfg.CatalogDir)
	}
	if err != nil {
		return nil, err
	}
	return catalog.New(t)
}
