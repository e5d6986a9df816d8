package main

import (
	"errors"
	"flag"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"cheat-server/internal/config"
	"cheat-server/internal/jwt"
	"cheat-server/internal/mux"
	"cheat-server/internal/rng"
	"cheat-server/pkg/joincode"
	"cheat-server/pkg/room"
	"cheat-server/pkg/token"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address, overrides the configuration")

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.WithError(err).Fatal("could not load .env")
	}

	setupLogger()
	cfg := config.Instance()

	signer, err := jwt.NewSigner(seatSecret(cfg), cfg.JWT.TTL)
	if err != nil {
		logrus.WithError(err).Fatal("could not create seat token signer")
	}

	opts := room.Options{
		Allocator:       joincode.NewAllocator(codeStore(cfg), rng.Crypto{}),
		Signer:          signer,
		EmptySessionTTL: cfg.Session.EmptyTTL,
		IdleSessionTTL:  cfg.Session.IdleTTL,
	}

	if cfg.Bot.Enabled {
		opts.BotName = cfg.Bot.Name
		opts.BotDelay = cfg.Bot.Delay
	}

	pitBoss := room.NewPitBoss(opts)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	listenAddr := cfg.Addr
	if *addr != "" {
		listenAddr = *addr
	}

	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

// seatSecret returns the configured secret
// Without one, tokens only survive as long as this process
func seatSecret(cfg config.Config) string {
	if cfg.JWT.Secret != "" {
		return cfg.JWT.Secret
	}

	secret, err := token.Generate(64)
	if err != nil {
		logrus.WithError(err).Fatal("could not generate seat secret")
	}

	logrus.Warn("no jwt.secret configured, using a random secret")
	return secret
}

func codeStore(cfg config.Config) joincode.Store {
	if cfg.Redis.Addr == "" {
		return joincode.NewMemoryStore()
	}

	store, err := joincode.NewRedis(&joincode.RedisConfig{
		RedisClient: redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}),
	})
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to redis")
	}

	logrus.WithField("addr", cfg.Redis.Addr).Info("sharing join codes through redis")
	return store
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(config.Instance().Log.Format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
