// Package config parses the harness's CLI flags and optional YAML
// side-file into one Config struct the entrypoint wires into the
// orchestrator.
package config

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Config is the full set of run parameters (§6 CLI surface).
type Config struct {
	Dataset         string `yaml:"dataset"`
	OutputRoot      string `yaml:"output_root"`
	RunID           string `yaml:"run_id"`
	WorkersDialog   int    `yaml:"workers_dialog"`
	WorkersJudge    int    `yaml:"workers_judge"`
	TurnTimeoutSec  int    `yaml:"turn_timeout_sec"`
	TurnHeartbeatSec int   `yaml:"turn_heartbeat_sec"`
	TurnRetries     int    `yaml:"turn_retries"`
	DryRun          bool   `yaml:"dry_run"`
	ConfigFile      string `yaml:"-"`
	Agent           string `yaml:"agent"`
	AgentModel      string `yaml:"agent_model"`
	AgentBaseURL    string `yaml:"agent_base_url"`
	AgentAPIKeyEnv  string `yaml:"agent_api_key_env"`
	Debug           bool   `yaml:"-"`
}

func defaults() Config {
	workers := runtime.GOMAXPROCS(0)
	if workers > 4 {
		workers = 4
	}
	if workers < 1 {
		workers = 1
	}
	return Config{
		Dataset:          "dataset.jsonl",
		OutputRoot:       "runs/",
		WorkersDialog:    workers,
		TurnTimeoutSec:   120,
		TurnHeartbeatSec: 20,
		TurnRetries:      0,
		Agent:            "echo",
	}
}

// Parse reads CLI flags out of args (typically os.Args[1:]) and, if
// --config names a YAML side-file, merges it underneath the flags: a flag
// explicitly set on the command line always wins over the side-file, which
// in turn wins over the built-in defaults.
func Parse(args []string) (Config, error) {
	cfg := defaults()

	fs := flag.NewFlagSet("agentbench", flag.ContinueOnError)
	datasetF := fs.String("dataset", cfg.Dataset, "path to the line-delimited dataset file")
	outputRootF := fs.String("output-root", cfg.OutputRoot, "root directory runs are written under")
	runIDF := fs.String("run-id", "", "run id; reused to resume an existing run directory")
	workersDialogF := fs.Int("workers-dialog", cfg.WorkersDialog, "bounded worker-pool size for dialog replay")
	workersJudgeF := fs.Int("workers-judge", 0, "reserved judge worker count; current builds call no external judge")
	turnTimeoutF := fs.Int("turn-timeout-sec", cfg.TurnTimeoutSec, "per-turn deadline in seconds; 0 disables")
	turnHeartbeatF := fs.Int("turn-heartbeat-sec", cfg.TurnHeartbeatSec, "heartbeat interval in seconds; 0 disables")
	turnRetriesF := fs.Int("turn-retries", cfg.TurnRetries, "bounded retry count on retryable turn errors")
	dryRunF := fs.Bool("dry-run", false, "load and validate the dataset without replaying any dialog")
	configFileF := fs.String("config", "", "optional YAML side-file merged underneath the flags above")
	agentF := fs.String("agent", cfg.Agent, "reference agent adapter to drive: echo, anthropic, openai, bedrock")
	agentModelF := fs.String("agent-model", "", "model name passed to the agent adapter")
	agentBaseURLF := fs.String("agent-base-url", "", "base URL override passed to the agent adapter")
	agentAPIKeyEnvF := fs.String("agent-api-key-env", "", "environment variable name the agent adapter reads its API key from")
	debugF := fs.Bool("debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *configFileF != "" {
		merged, err := loadYAML(*configFileF)
		if err != nil {
			return Config{}, fmt.Errorf("load config file: %w", err)
		}
		cfg = merged
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	applyString(set, "dataset", *datasetF, &cfg.Dataset)
	applyString(set, "output-root", *outputRootF, &cfg.OutputRoot)
	applyString(set, "run-id", *runIDF, &cfg.RunID)
	applyInt(set, "workers-dialog", *workersDialogF, &cfg.WorkersDialog)
	applyInt(set, "workers-judge", *workersJudgeF, &cfg.WorkersJudge)
	applyInt(set, "turn-timeout-sec", *turnTimeoutF, &cfg.TurnTimeoutSec)
	applyInt(set, "turn-heartbeat-sec", *turnHeartbeatF, &cfg.TurnHeartbeatSec)
	applyInt(set, "turn-retries", *turnRetriesF, &cfg.TurnRetries)
	applyString(set, "agent", *agentF, &cfg.Agent)
	applyString(set, "agent-model", *agentModelF, &cfg.AgentModel)
	applyString(set, "agent-base-url", *agentBaseURLF, &cfg.AgentBaseURL)
	applyString(set, "agent-api-key-env", *agentAPIKeyEnvF, &cfg.AgentAPIKeyEnv)
	if set["dry-run"] {
		cfg.DryRun = *dryRunF
	}
	if set["debug"] {
		cfg.Debug = *debugF
	}
	cfg.ConfigFile = *configFileF

	if cfg.RunID == "" {
		cfg.RunID = newRunID()
	}
	return cfg, nil
}

func applyString(set map[string]bool, name, flagVal string, dst *string) {
	if set[name] {
		*dst = flagVal
	}
}

func applyInt(set map[string]bool, name string, flagVal int, dst *int) {
	if set[name] {
		*dst = flagVal
	}
}

func loadYAML(path string) (Config, error) {
	cfg := defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// newRunID is a package var so tests can stub it out deterministically. The
// uuid suffix keeps two runs started within the same second from colliding
// on the same output directory.
var newRunID = func() string {
	return fmt.Sprintf("run-%s-%s", time.Now().UTC().Format("20060102T150405Z"), uuid.New().String()[:8])
}
