package types

// OutputFormat selects how the summary is rendered
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Config represents the application configuration
type Config struct {
	Input struct {
		LogFile     string `yaml:"log_file"`
		Workers     int    `yaml:"workers"`      // >1 parses lines in parallel
		SkipInvalid bool   `yaml:"skip_invalid"` // count bad lines instead of aborting
	} `yaml:"input"`

	Report struct {
		Top    int          `yaml:"top"`
		Format OutputFormat `yaml:"format"` // text, json
	} `yaml:"report"`

	Logging struct {
		Level   string `yaml:"level"` // zerolog level name
		Pretty  bool   `yaml:"pretty"`
		Service string `yaml:"service"`
	} `yaml:"logging"`

	Output struct {
		MetricsFile string `yaml:"metrics_file"` // node_exporter textfile, optional
		HistoryDB   string `yaml:"history_db"`   // sqlite run history, optional
	} `yaml:"output"`
}
