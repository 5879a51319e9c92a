package config

type Config struct {
	Profiles []Profile `json:"profiles"`
}

// Profile bundles the engine tuning knobs and the emotion bias tables for one
// deployment. Zero values mean "use the built-in default".
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Engine Engine `json:"engine"`
	Bias   Bias   `json:"bias"`
}

type Engine struct {
	LoggingIntervalSeconds float64 `json:"logging_interval_seconds"`
	SaveIntervalSeconds    float64 `json:"save_interval_seconds"`
	ManageIntervalSeconds  float64 `json:"manage_interval_seconds"`
	MaxRows                int     `json:"max_rows"`
	BufferSeconds          float64 `json:"buffer_seconds"`
	SummaryPeriodSeconds   float64 `json:"summary_period_seconds"`
	SessionDurationSeconds float64 `json:"session_duration_seconds"`
	ContextWindowSeconds   float64 `json:"context_window_seconds"`
}

type Bias struct {
	FrameBoost         map[string]float64 `json:"frame_boost"`
	AggregateBoost     map[string]float64 `json:"aggregate_boost"`
	NeutralWeight      float64            `json:"neutral_weight"`
	EmotionWeight      float64            `json:"emotion_weight"`
	RecommendThreshold float64            `json:"recommend_threshold"`
}
