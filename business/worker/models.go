package worker

import (
	"path/filepath"
	"time"

	"github.com/hopelabs/goFerWatch/business/emotion"
	"github.com/hopelabs/goFerWatch/foundation/camera"
	"github.com/hopelabs/goFerWatch/foundation/redis"
	"go.uber.org/zap"
)

type Settings struct {
	Config
	Logger *zap.SugaredLogger
	Camera *camera.Client
	Redis  *redis.Redis
	Policy emotion.BiasPolicy
}

type Config struct {
	FaceApiEndpoint string
	FaceApiKey      string
	AgentAddr       string

	DataDirectory    string
	ArchiveDirectory string
	SnapshotPath     string
	SummaryPath      string
	SegmentsPath     string

	LoggingInterval time.Duration
	SaveInterval    time.Duration
	ManageInterval  time.Duration
	MaxRows         int
	BufferSeconds   float64
	SummaryPeriod   float64
	SessionDuration time.Duration
	ContextWindow   float64
}

func (c Config) withDefaults() Config {
	if c.DataDirectory == "" {
		c.DataDirectory = "emotion_data"
	}
	if c.ArchiveDirectory == "" {
		c.ArchiveDirectory = filepath.Join(c.DataDirectory, "archives")
	}
	if c.SnapshotPath == "" {
		c.SnapshotPath = filepath.Join(c.DataDirectory, "emotions_data.csv")
	}
	if c.SummaryPath == "" {
		c.SummaryPath = filepath.Join(c.DataDirectory, "emotions_summary.csv")
	}
	if c.SegmentsPath == "" {
		c.SegmentsPath = filepath.Join(c.DataDirectory, "voice_segments.csv")
	}

	if c.LoggingInterval <= 0 {
		c.LoggingInterval = 500 * time.Millisecond
	}
	if c.SaveInterval <= 0 {
		c.SaveInterval = 5 * time.Second
	}
	if c.ManageInterval <= 0 {
		c.ManageInterval = 60 * time.Second
	}
	if c.MaxRows <= 0 {
		c.MaxRows = 3000
	}
	if c.BufferSeconds <= 0 {
		c.BufferSeconds = 30
	}
	if c.SummaryPeriod <= 0 {
		c.SummaryPeriod = 1
	}
	if c.SessionDuration <= 0 {
		c.SessionDuration = 10 * time.Second
	}
	if c.ContextWindow <= 0 {
		c.ContextWindow = 10
	}

	return c
}
