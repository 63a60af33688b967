// Command agentbench replays a dataset of evaluation dialogs against an
// Agent implementation and writes the resulting traces, turn-eval rows,
// and M1-M5 metric summary under a run directory.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/redis/go-redis/v9"
	"goa.design/clue/log"

	"goa.design/agentbench/agentapi"
	"goa.design/agentbench/agents/reference"
	"goa.design/agentbench/config"
	"goa.design/agentbench/dataset"
	"goa.design/agentbench/metrics"
	"goa.design/agentbench/observer"
	"goa.design/agentbench/orchestrator"
	"goa.design/agentbench/orchestrator/lock"
	"goa.design/agentbench/orchestrator/progress"
	"goa.design/agentbench/orchestrator/store"
	"goa.design/agentbench/replay"
	"goa.design/agentbench/report"
	"goa.design/agentbench/telemetry"
	"goa.design/agentbench/turneval"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "agentbench:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Parse(args)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	ctx := context.Background()
	logger := telemetry.NewNoopLogger()
	if cfg.Debug {
		ctx = log.Context(ctx, log.WithDebug())
		logger = telemetry.NewClueLogger()
	}

	startedAt := time.Now().UTC()

	f, err := os.Open(cfg.Dataset)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	dialogs, err := dataset.Load(f)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	if cfg.DryRun {
		valid, skipped := 0, 0
		for _, d := range dialogs {
			d = dataset.Normalize(d)
			ok, reason := dataset.Validate(d)
			if ok {
				valid++
				reason = "valid"
			} else {
				skipped++
			}
			fmt.Printf("%d\t%s\t%s\n", d.DatasetIndex, d.DialogID, reason)
		}
		fmt.Printf("dry run: %d dialogs, %d eligible, %d skipped\n", len(dialogs), valid, skipped)
		return nil
	}

	outputDir := filepath.Join(cfg.OutputRoot, cfg.RunID)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	traceStore, err := store.NewJSONLStore(filepath.Join(outputDir, "checkpoint.jsonl"))
	if err != nil {
		return fmt.Errorf("open checkpoint store: %w", err)
	}
	defer traceStore.Close()

	progressSink, err := progress.NewJSONLSink(filepath.Join(outputDir, "progress.jsonl"), logger)
	if err != nil {
		return fmt.Errorf("open progress sink: %w", err)
	}
	defer progressSink.Close()

	var runLock lock.Lock = lock.NewLocal()
	if redisURL := os.Getenv("AGENTBENCH_REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return fmt.Errorf("parse AGENTBENCH_REDIS_URL: %w", err)
		}
		runLock = lock.NewRedisLock(redis.NewClient(opts), cfg.RunID, 30*time.Second)
	}

	factory, err := agentFactory(ctx, cfg)
	if err != nil {
		return fmt.Errorf("build agent factory: %w", err)
	}

	traces, err := orchestrator.Run(ctx, dialogs, orchestrator.Options{
		RunID:         cfg.RunID,
		WorkersDialog: cfg.WorkersDialog,
		Replay: replay.Options{
			Deadline:     time.Duration(cfg.TurnTimeoutSec) * time.Second,
			Heartbeat:    time.Duration(cfg.TurnHeartbeatSec) * time.Second,
			Retries:      cfg.TurnRetries,
			AgentFactory: factory,
		},
		Store:        traceStore,
		Lock:         runLock,
		ProgressSink: progressSink,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("run orchestrator: %w", err)
	}

	rowsByDialog := make(map[string][]turneval.TurnEvalRow, len(traces))
	var profileRows []turneval.ProfileEvalRow
	counters := map[string]int{"dialogs_total": len(traces)}
	for _, tr := range traces {
		counters["dialogs_"+string(tr.DialogStatus)]++
		rowsByDialog[tr.DialogID] = turneval.BuildRows(tr)
		if row, ok := turneval.BuildProfileRow(tr); ok {
			profileRows = append(profileRows, row)
		}
	}

	summary := metrics.Compute(rowsByDialog, profileRows)

	var allRows []turneval.TurnEvalRow
	for _, rows := range rowsByDialog {
		allRows = append(allRows, rows...)
	}

	manifest := report.Manifest{
		RunID:         cfg.RunID,
		TraceVersion:  "v1",
		DatasetPath:   cfg.Dataset,
		StartedAt:     startedAt,
		FinishedAt:    time.Now().UTC(),
		WorkersDialog: cfg.WorkersDialog,
		WorkersJudge:  cfg.WorkersJudge,
		Counters:      counters,
	}
	if err := report.Write(outputDir, manifest, traces, allRows, summary); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	fmt.Printf("run %s complete: %d dialogs, output at %s, report at %s\n", cfg.RunID, len(traces), outputDir, filepath.Join(outputDir, "report.md"))
	if len(summary.MetricErrors) > 0 {
		fmt.Printf("metric errors: %v\n", summary.MetricErrors)
	}
	return nil
}

// agentFactory builds the agentapi.Factory named by cfg.Agent, wiring a
// real provider client when one is requested. The API key is read from the
// environment variable named by cfg.AgentAPIKeyEnv, falling back to the
// provider's conventional default variable when that flag is left empty.
func agentFactory(ctx context.Context, cfg config.Config) (agentapi.Factory, error) {
	switch cfg.Agent {
	case "", "echo":
		return echoFactory(), nil
	case "anthropic":
		return anthropicFactory(cfg)
	case "openai":
		return openaiFactory(cfg)
	case "bedrock":
		return bedrockFactory(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown agent adapter %q (want echo, anthropic, openai, or bedrock)", cfg.Agent)
	}
}

func echoFactory() agentapi.Factory {
	return func(dialogID string, obs observer.Handle) (agentapi.Agent, error) {
		return reference.NewEchoAgent(dialogID, obs)
	}
}

func apiKey(cfg config.Config, defaultEnv string) string {
	env := cfg.AgentAPIKeyEnv
	if env == "" {
		env = defaultEnv
	}
	return os.Getenv(env)
}

func anthropicFactory(cfg config.Config) (agentapi.Factory, error) {
	model := cfg.AgentModel
	if model == "" {
		model = string(sdk.ModelClaude3_7SonnetLatest)
	}
	opts := []anthropicopt.RequestOption{anthropicopt.WithAPIKey(apiKey(cfg, "ANTHROPIC_API_KEY"))}
	if cfg.AgentBaseURL != "" {
		opts = append(opts, anthropicopt.WithBaseURL(cfg.AgentBaseURL))
	}
	client := sdk.NewClient(opts...)
	return reference.NewAnthropicAgentFactory(client.Messages, reference.AnthropicOptions{Model: model}), nil
}

// openaiChatAdapter narrows openai.Client down to reference.ChatClient's
// fixed two-argument New, since the SDK's own method signature carries a
// trailing variadic option list the interface does not declare.
type openaiChatAdapter struct {
	client openai.Client
}

func (a openaiChatAdapter) New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return a.client.Chat.Completions.New(ctx, params)
}

func openaiFactory(cfg config.Config) (agentapi.Factory, error) {
	model := cfg.AgentModel
	if model == "" {
		model = "gpt-4o-mini"
	}
	opts := []openaiopt.RequestOption{openaiopt.WithAPIKey(apiKey(cfg, "OPENAI_API_KEY"))}
	if cfg.AgentBaseURL != "" {
		opts = append(opts, openaiopt.WithBaseURL(cfg.AgentBaseURL))
	}
	client := openai.NewClient(opts...)
	return reference.NewOpenAIAgentFactory(openaiChatAdapter{client: client}, reference.OpenAIOptions{Model: model}), nil
}

func bedrockFactory(ctx context.Context, cfg config.Config) (agentapi.Factory, error) {
	model := cfg.AgentModel
	if model == "" {
		model = "anthropic.claude-3-sonnet-20240229-v1:0"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := bedrockruntime.NewFromConfig(awsCfg)
	return reference.NewBedrockAgentFactory(client, reference.BedrockOptions{Model: model}), nil
}
