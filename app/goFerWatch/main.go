package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/hopelabs/goFerWatch/business/emotion"
	"github.com/hopelabs/goFerWatch/business/worker"
	"github.com/hopelabs/goFerWatch/foundation/camera"
	"github.com/hopelabs/goFerWatch/foundation/config"
	"github.com/hopelabs/goFerWatch/foundation/logger"
	"github.com/hopelabs/goFerWatch/foundation/redis"
)

var (
	version   string
	buildTime string
)

func main() {
	// =================================================================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Camera struct {
			Address string `conf:"default:raspberrypi.local:9999"`
		}
		FaceApi struct {
			Endpoint string `conf:"default:http://127.0.0.1:8501/analyze"`
			ApiKey   string `conf:"noprint"`
		}
		Agent struct {
			Address string `conf:"default:127.0.0.1:8765"`
		}
		Redis struct {
			Address        string `conf:"default:127.0.0.1:6379"`
			Password       string `conf:"noprint"`
			ContextChannel string `conf:"default:hope:emotionContext"`
			Enabled        bool   `conf:"default:true"`
		}
		Engine struct {
			ProfilePath   string `conf:"default:profiles.json"`
			ProfileID     string `conf:"default:default"`
			DataDirectory string `conf:"default:emotion_data"`
		}
		Logger struct {
			LogDirectory string `conf:"default:logs/goFerWatch/,noprint"`
		}
	}{
		Version: conf.Version{
			Build: version,
			Desc:  buildTime,
		},
	}

	// Configuration Parsing
	if _, err := conf.Parse("FERWATCH", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}

	// =================================================================================================================
	// Version Checking Support

	displayVersion := flag.Bool("version", false, "Display version and exit")
	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		fmt.Printf("Build time:\t%s\n", buildTime)
		os.Exit(0)
	}

	// =================================================================================================================
	// Application Logger

	log, err := logger.New(cfg.Logger.LogDirectory, cfg.Engine.ProfileID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// =================================================================================================================
	// Engine Profile

	profile, err := config.GetProfile(cfg.Engine.ProfilePath, cfg.Engine.ProfileID)
	if err != nil {
		log.Errorw("startup", "ERROR", err)
	}

	policy := emotion.PolicyFromTables(
		profile.Bias.FrameBoost,
		profile.Bias.AggregateBoost,
		profile.Bias.NeutralWeight,
		profile.Bias.EmotionWeight,
		profile.Bias.RecommendThreshold,
	)

	// =================================================================================================================
	// Configuration Stringify

	out, err := conf.String(&cfg)
	if err != nil {
		log.Errorw("startup", "ERROR", err)
	}
	log.Infow("startup", "config", out)

	// =================================================================================================================
	// Redis

	var redisClient *redis.Redis
	if cfg.Redis.Enabled {
		redisClient, err = redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.ContextChannel, log)
		if err != nil {
			log.Errorw("startup", "ERROR", err)
		}
	}

	// =================================================================================================================
	// Camera Transport

	cameraClient := camera.New(cfg.Camera.Address)
	if err := cameraClient.Connect(); err != nil {
		log.Errorw("startup", "ERROR", err)
	} else {
		log.Infow("startup", "status", "camera connected", "address", cfg.Camera.Address)
	}

	// =================================================================================================================
	// Run Worker

	workerCh := worker.Run(worker.Settings{
		Logger: log,
		Camera: cameraClient,
		Redis:  redisClient,
		Policy: policy,
		Config: worker.Config{
			FaceApiEndpoint: cfg.FaceApi.Endpoint,
			FaceApiKey:      cfg.FaceApi.ApiKey,
			AgentAddr:       cfg.Agent.Address,
			DataDirectory:   cfg.Engine.DataDirectory,
			LoggingInterval: secondsToDuration(profile.Engine.LoggingIntervalSeconds),
			SaveInterval:    secondsToDuration(profile.Engine.SaveIntervalSeconds),
			ManageInterval:  secondsToDuration(profile.Engine.ManageIntervalSeconds),
			MaxRows:         profile.Engine.MaxRows,
			BufferSeconds:   profile.Engine.BufferSeconds,
			SummaryPeriod:   profile.Engine.SummaryPeriodSeconds,
			SessionDuration: secondsToDuration(profile.Engine.SessionDurationSeconds),
			ContextWindow:   profile.Engine.ContextWindowSeconds,
		},
	})

	// Blocking main and waiting for error or shutdown.
	err = <-workerCh

	log.Infow("shutdown", "status", "shutdown started")
	defer log.Infow("shutdown", "status", "shutdown complete")

	if err != nil {
		log.Errorw("shutdown", "ERROR", err)
	}
}

// =====================================================================================================================

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
