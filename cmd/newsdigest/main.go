package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"newsdigest/internal/api"
	"newsdigest/internal/archive"
	"newsdigest/internal/config"
	"newsdigest/internal/domain"
	"newsdigest/internal/embedding/tfidf"
	"newsdigest/internal/feed"
	"newsdigest/internal/logging"
	"newsdigest/internal/mailer"
	"newsdigest/internal/report"
	"newsdigest/internal/schedule"
	"newsdigest/internal/scraper"
	"newsdigest/internal/service"
	"newsdigest/internal/summarizer"
	"newsdigest/internal/tui"
	"newsdigest/internal/vectorstore/memory"
	"newsdigest/internal/watch"
)

type options struct {
	cfgPath    string
	collect    bool
	keywords   string
	serve      bool
	schedule   bool
	watchDir   string
	reportPath string
	mail       bool
	files      []string
}

func main() {
	_ = godotenv.Load()

	var opts options
	flag.StringVar(&opts.cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/newsdigest/config.yaml if not provided)")
	flag.BoolVar(&opts.collect, "collect", false, "Collect articles from the configured RSS feeds")
	flag.StringVar(&opts.keywords, "keywords", "", "Comma-separated keywords filtering collected articles")
	flag.BoolVar(&opts.serve, "serve", false, "Serve the HTTP API")
	flag.BoolVar(&opts.schedule, "schedule", false, "Run the collect/report/mail briefing on the configured cron")
	flag.StringVar(&opts.watchDir, "watch", "", "Digest .txt/.json files written into this directory")
	flag.StringVar(&opts.reportPath, "report", "", "Write an HTML report of this run to the given path")
	flag.BoolVar(&opts.mail, "mail", false, "Mail the report of this run")
	flag.Parse()
	opts.files = flag.Args()

	if !opts.collect && !opts.serve && !opts.schedule && opts.watchDir == "" && len(opts.files) == 0 {
		fmt.Println("Usage: newsdigest [-config=config.yaml] [-collect] [-keywords=a,b] [-serve] [-schedule] [-watch=dir] [-report=out.html] [-mail] [file.txt|file.json ...]")
		os.Exit(1)
	}
	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts options) error {
	var cfg *config.AppConfig
	var err error
	if opts.cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(opts.cfgPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	// Assemble components
	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = tfidf.NewEmbedder()
	default:
		return fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var st domain.VectorStore
	switch cfg.VectorStore.Type {
	case "memory", "":
		st = memory.NewStorage()
	default:
		return fmt.Errorf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	var sum domain.Summarizer
	switch cfg.Summarizer.Type {
	case "frequency", "":
		sum = summarizer.NewFrequencySummarizer()
	default:
		return fmt.Errorf("unknown summarizer: %s", cfg.Summarizer.Type)
	}
	ranker := summarizer.NewKeywordRanker()

	var arc domain.Archive
	switch cfg.Archive.Type {
	case "bolt":
		store, err := archive.Open(cfg.Archive.Path)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer store.Close()
		arc = store
	case "none", "":
	default:
		return fmt.Errorf("unknown archive: %s", cfg.Archive.Type)
	}

	svc := service.NewDigestService(service.Deps{
		Feeds:      feed.NewCollector(cfg.Feeds, logger),
		Scraper:    scraper.New(cfg.Feeds),
		Summarizer: sum,
		Ranker:     ranker,
		Archive:    arc,
		Embedder:   emb,
		Store:      st,
		Logger:     logger,
	}, service.Options{
		MaxSentences:    cfg.Summarizer.MaxSentences,
		TopK:            cfg.Keywords.TopK,
		Workers:         cfg.Feeds.Workers,
		MaxContentChars: cfg.Feeds.MaxContentChars,
	})
	renderer := report.NewRenderer(cfg.Report.Title)
	var mail schedule.Sender
	if cfg.Mail.Enabled() {
		mail = mailer.New(cfg.Mail)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var digests []domain.Digest
	if len(opts.files) > 0 {
		got, err := svc.IngestFiles(ctx, opts.files)
		if err != nil {
			return fmt.Errorf("ingest failed: %w", err)
		}
		digests = append(digests, got...)
	}
	if opts.collect {
		kws := splitKeywords(opts.keywords)
		if len(kws) == 0 {
			kws = cfg.Schedule.Keywords
		}
		got, err := svc.Collect(ctx, kws)
		if err != nil {
			return fmt.Errorf("collect failed: %w", err)
		}
		digests = append(digests, got...)
	}
	if err := deliver(opts, cfg, renderer, mail, digests, logger); err != nil {
		return err
	}

	daemon := opts.serve || opts.schedule || opts.watchDir != ""
	if !daemon {
		m := tui.New(svc, digests)
		_, err := tea.NewProgram(m).Run()
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	if opts.serve {
		h := api.NewHandler(svc, sum, ranker, cfg.Summarizer.MaxSentences, cfg.Keywords.TopK, logger)
		srv := &http.Server{Addr: cfg.Server.Addr, Handler: api.NewRouter(h)}
		g.Go(func() error {
			logger.WithField("addr", cfg.Server.Addr).Info("http api listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}
	if opts.schedule {
		sched := schedule.NewScheduler(logger)
		briefing := &schedule.Briefing{
			Collector: svc,
			Report:    renderer,
			Keywords:  cfg.Schedule.Keywords,
			OutputDir: cfg.Report.OutputDir,
			Title:     cfg.Report.Title,
			Logger:    logger,
		}
		if cfg.Schedule.Mail && mail != nil {
			briefing.Mailer = mail
		}
		if err := sched.Start(gctx, cfg.Schedule.Cron, briefing); err != nil {
			return err
		}
		g.Go(func() error {
			<-gctx.Done()
			sched.Stop(context.Background())
			return nil
		})
	}
	if opts.watchDir != "" {
		w := watch.New(opts.watchDir, svc.IngestFiles, logger)
		g.Go(func() error { return w.Run(gctx) })
	}
	return g.Wait()
}

// deliver writes and mails the report of the digests produced by this run.
func deliver(opts options, cfg *config.AppConfig, renderer *report.Renderer, mail schedule.Sender, digests []domain.Digest, logger *logrus.Logger) error {
	if opts.reportPath != "" {
		if err := renderer.WriteFile(opts.reportPath, digests); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.WithField("path", opts.reportPath).Info("report written")
	}
	if !opts.mail {
		return nil
	}
	if mail == nil {
		return mailer.ErrNotConfigured
	}
	page, err := renderer.HTML(digests)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("%s (%s, %d건)", cfg.Report.Title, time.Now().Format("2006-01-02"), len(digests))
	if err := mail.Send(subject, renderer.Markdown(digests), page); err != nil {
		return err
	}
	logger.WithField("to", strings.Join(cfg.Mail.To, ",")).Info("report mailed")
	return nil
}

func splitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
