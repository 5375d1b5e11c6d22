package podcast

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/mohammad-safakhou/loopcast/config"
	"github.com/mohammad-safakhou/loopcast/internal/audio"
	"github.com/mohammad-safakhou/loopcast/internal/telemetry"
	"github.com/mohammad-safakhou/loopcast/models"
	"github.com/mohammad-safakhou/loopcast/provider"
	"github.com/mohammad-safakhou/loopcast/reddit"
	"github.com/mohammad-safakhou/loopcast/tools/web_fetch"
)

// meteredFetcher counts fetch outcomes on top of the real content fetcher.
type meteredFetcher struct {
	inner     ContentFetcher
	telemetry *telemetry.Telemetry
}

func (m meteredFetcher) FetchContent(ctx context.Context, url string) (string, bool) {
	text, ok := m.inner.FetchContent(ctx, url)
	m.telemetry.RecordURLFetch(ok)
	return text, ok
}

// PostSource supplies the raw posts a run is built from.
type PostSource interface {
	FetchTopPosts(ctx context.Context, subreddit string) ([]models.RawPost, error)
}

// SegmentWriter synthesizes script segments into audio files.
type SegmentWriter interface {
	SynthesizeAll(ctx context.Context, segments []models.Segment, dir string) ([]string, error)
}

// SegmentMerger concatenates segment files into one episode file.
type SegmentMerger interface {
	Merge(paths []string, outPath string) error
}

// Orchestrator drives a full episode run: fetch posts, enrich them,
// plan the script, write and polish the dialogue, then synthesize and
// merge the audio.
type Orchestrator struct {
	cfg       *config.Config
	source    PostSource
	enricher  *Enricher
	planner   *Planner
	dialogue  *DialogueWriter
	enhancer  *Enhancer
	batcher   SegmentWriter
	merger    SegmentMerger
	telemetry *telemetry.Telemetry
	logger    *log.Logger
}

// NewOrchestrator wires the full production pipeline from configuration.
func NewOrchestrator(cfg *config.Config) (*Orchestrator, error) {
	source, err := reddit.NewClient(cfg.Reddit)
	if err != nil {
		return nil, fmt.Errorf("creating reddit client: %w", err)
	}

	llm, err := provider.NewProvider(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("creating completion provider: %w", err)
	}

	fetcher, err := web_fetch.NewWebFetcher(web_fetch.FetcherType(cfg.Scraper.Fetcher), time.Duration(cfg.Scraper.TimeoutMS)*time.Millisecond, cfg.Scraper.MaxChars)
	if err != nil {
		return nil, fmt.Errorf("creating web fetcher: %w", err)
	}
	var cache *redis.Client
	if cfg.Cache.Enabled {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Host + ":" + cfg.Cache.Port,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
	}
	fetchLogger := log.New(log.Writer(), "[FETCH] ", log.LstdFlags)
	contentFetcher := web_fetch.NewContentFetcher(fetcher, cache, cfg.Cache.TTL, cfg.Scraper.MaxAttempts, fetchLogger)

	synth, err := audio.NewSynthesizer(cfg.Speech)
	if err != nil {
		return nil, fmt.Errorf("creating synthesizer: %w", err)
	}

	tele := telemetry.NewTelemetry(cfg.Telemetry)
	metered := meteredFetcher{inner: contentFetcher, telemetry: tele}

	enrichLogger := log.New(log.Writer(), "[ENRICH] ", log.LstdFlags)
	return &Orchestrator{
		cfg:       cfg,
		source:    source,
		enricher:  NewEnricher(metered, llm, cfg.LLM.Temperature, cfg.LLM.MaxTokens, enrichLogger),
		planner:   NewPlanner(llm, cfg.LLM.Temperature, cfg.LLM.MaxTokens),
		dialogue:  NewDialogueWriter(llm, cfg.LLM.Temperature, cfg.LLM.MaxTokens),
		enhancer:  NewEnhancer(llm, cfg.LLM.Temperature, cfg.LLM.MaxTokens),
		batcher:   audio.NewBatcher(synth),
		merger:    audio.NewMerger(),
		telemetry: tele,
		logger:    log.New(log.Writer(), "[ORCHESTRATOR] ", log.LstdFlags),
	}, nil
}

// Run produces one episode for the given subreddit.
func (o *Orchestrator) Run(ctx context.Context, subreddit string) (*models.Episode, error) {
	runID := uuid.New().String()
	start := time.Now()

	if o.cfg.General.MaxProcessingTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.General.MaxProcessingTime)
		defer cancel()
	}

	o.logger.Printf("run %s: starting for r/%s", runID, subreddit)

	episode, posts, sections, segments, err := o.run(ctx, runID, subreddit)

	event := telemetry.RunEvent{
		RunID:     runID,
		Subreddit: subreddit,
		StartTime: start,
		EndTime:   time.Now(),
		Duration:  time.Since(start),
		Success:   err == nil,
		Posts:     posts,
		Sections:  sections,
		Segments:  segments,
	}
	if err != nil {
		event.Error = err.Error()
	}
	o.telemetry.RecordRunEvent(event)

	if err != nil {
		return nil, err
	}
	o.logger.Printf("run %s: finished in %v, audio at %s", runID, time.Since(start), episode.AudioPath)
	return episode, nil
}

func (o *Orchestrator) run(ctx context.Context, runID, subreddit string) (*models.Episode, int, int, int, error) {
	posts, err := step(o, ctx, runID, "fetch_posts", func(ctx context.Context) ([]models.RawPost, error) {
		return o.source.FetchTopPosts(ctx, subreddit)
	})
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("fetching posts: %w", err)
	}
	if len(posts) == 0 {
		return nil, 0, 0, 0, fmt.Errorf("no posts found for r/%s", subreddit)
	}
	o.logger.Printf("run %s: %d posts fetched", runID, len(posts))

	enriched, err := step(o, ctx, runID, "enrich", func(ctx context.Context) ([]models.EnrichedPost, error) {
		return o.enrichAll(ctx, posts)
	})
	if err != nil {
		return nil, len(posts), 0, 0, err
	}

	var planSections []models.Section
	_, err = step(o, ctx, runID, "plan", func(ctx context.Context) (string, error) {
		plan, sections, err := o.planner.GeneratePlan(ctx, enriched)
		planSections = sections
		return plan, err
	})
	if err != nil {
		return nil, len(posts), 0, 0, fmt.Errorf("generating plan: %w", err)
	}
	o.logger.Printf("run %s: plan has %d sections", runID, len(planSections))

	introduction, dialogues, err := o.writeDialogue(ctx, planSections, enriched)
	if err != nil {
		return nil, len(posts), len(planSections), 0, err
	}

	script, err := step(o, ctx, runID, "enhance", func(ctx context.Context) (string, error) {
		return o.enhancer.EnhanceScript(ctx, introduction, dialogues)
	})
	if err != nil {
		return nil, len(posts), len(planSections), 0, fmt.Errorf("enhancing script: %w", err)
	}

	segments := audio.SegmentScript(script)
	o.telemetry.RecordSegments(len(segments))
	o.logger.Printf("run %s: script split into %d segments", runID, len(segments))

	audioPath, err := step(o, ctx, runID, "synthesize", func(ctx context.Context) (string, error) {
		return o.produceAudio(ctx, segments)
	})
	if err != nil {
		return nil, len(posts), len(planSections), len(segments), err
	}

	return &models.Episode{
		RunID:       runID,
		Subreddit:   subreddit,
		Script:      script,
		AudioPath:   audioPath,
		GeneratedAt: time.Now(),
	}, len(posts), len(planSections), len(segments), nil
}

// enrichAll runs enrichment concurrently with positional results, so
// enriched[i] always corresponds to posts[i].
func (o *Orchestrator) enrichAll(ctx context.Context, posts []models.RawPost) ([]models.EnrichedPost, error) {
	enriched := make([]models.EnrichedPost, len(posts))

	g, ctx := errgroup.WithContext(ctx)
	if o.cfg.General.MaxConcurrent > 0 {
		g.SetLimit(o.cfg.General.MaxConcurrent)
	}
	for i, post := range posts {
		i, post := i, post
		g.Go(func() error {
			ep, err := o.enricher.Enrich(ctx, post)
			if err != nil {
				return err
			}
			enriched[i] = ep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return enriched, nil
}

// writeDialogue generates the introduction and all section dialogues
// concurrently, keeping dialogues positionally aligned with sections.
func (o *Orchestrator) writeDialogue(ctx context.Context, sections []models.Section, posts []models.EnrichedPost) (string, []string, error) {
	var introduction string
	dialogues := make([]string, len(sections))

	g, ctx := errgroup.WithContext(ctx)
	if o.cfg.General.MaxConcurrent > 0 {
		g.SetLimit(o.cfg.General.MaxConcurrent)
	}
	g.Go(func() error {
		var err error
		introduction, err = o.dialogue.GenerateIntroduction(ctx, sections, posts)
		if err != nil {
			return fmt.Errorf("generating introduction: %w", err)
		}
		return nil
	})
	for i, section := range sections {
		i, section := i, section
		g.Go(func() error {
			d, err := o.dialogue.GenerateSectionDialogue(ctx, section, posts)
			if err != nil {
				return fmt.Errorf("generating dialogue for section %q: %w", section.Title, err)
			}
			dialogues[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", nil, err
	}
	return introduction, dialogues, nil
}

// produceAudio synthesizes all segments into a fresh run directory and merges
// them into the final episode file.
func (o *Orchestrator) produceAudio(ctx context.Context, segments []models.Segment) (string, error) {
	runDir := filepath.Join(o.cfg.Speech.OutputDir, "podcast_"+time.Now().Format("20060102150405"))
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("creating run directory: %w", err)
	}

	paths, err := o.batcher.SynthesizeAll(ctx, segments, runDir)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(runDir, fmt.Sprintf("podcast_%d.wav", time.Now().Unix()))
	if err := o.merger.Merge(paths, outPath); err != nil {
		return "", fmt.Errorf("merging audio: %w", err)
	}
	return outPath, nil
}

// step runs fn while recording its duration and outcome.
func step[T any](o *Orchestrator, ctx context.Context, runID, name string, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	out, err := fn(ctx)
	o.telemetry.RecordStepEvent(telemetry.StepEvent{
		RunID:    runID,
		Step:     name,
		Duration: time.Since(start),
		Success:  err == nil,
	})
	return out, err
}
