package schedule

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"newsdigest/internal/domain"
)

// Collector is the part of the digest service a briefing needs.
type Collector interface {
	Collect(ctx context.Context, keywords []string) ([]domain.Digest, error)
}

// ReportWriter renders digests to an HTML file and to bytes for mail.
type ReportWriter interface {
	HTML(digests []domain.Digest) ([]byte, error)
	Markdown(digests []domain.Digest) string
}

// Sender delivers a rendered report.
type Sender interface {
	Send(subject, textBody string, htmlBody []byte) error
}

// Briefing is one collect → report → mail cycle.
type Briefing struct {
	Collector Collector
	Report    ReportWriter
	Mailer    Sender // nil disables mail
	Keywords  []string
	OutputDir string
	Title     string
	Logger    *logrus.Logger

	now func() time.Time
}

// Result describes what a briefing produced.
type Result struct {
	Digests    []domain.Digest
	ReportPath string
	Mailed     bool
}

// Run collects new articles, writes the HTML report and mails it. An empty
// collection writes no report.
func (b *Briefing) Run(ctx context.Context) (Result, error) {
	if b.Collector == nil {
		return Result{}, errNoCollector
	}
	logger := b.Logger
	if logger == nil {
		logger = logrus.New()
	}
	digests, err := b.Collector.Collect(ctx, b.Keywords)
	if err != nil {
		return Result{}, fmt.Errorf("briefing: %w", err)
	}
	res := Result{Digests: digests}
	if len(digests) == 0 {
		logger.Info("briefing: no new articles")
		return res, nil
	}

	page, err := b.Report.HTML(digests)
	if err != nil {
		return res, fmt.Errorf("briefing: render: %w", err)
	}
	now := b.clock()
	if b.OutputDir != "" {
		res.ReportPath = filepath.Join(b.OutputDir, "digest-"+now.Format("20060102-1504")+".html")
		if err := writeFile(res.ReportPath, page); err != nil {
			return res, fmt.Errorf("briefing: write report: %w", err)
		}
	}
	if b.Mailer != nil {
		subject := fmt.Sprintf("%s (%s, %d건)", b.Title, now.Format("2006-01-02"), len(digests))
		if err := b.Mailer.Send(subject, b.Report.Markdown(digests), page); err != nil {
			return res, fmt.Errorf("briefing: %w", err)
		}
		res.Mailed = true
	}
	logger.WithFields(logrus.Fields{
		"digests":  len(digests),
		"report":   res.ReportPath,
		"mailed":   res.Mailed,
		"keywords": strings.Join(b.Keywords, ","),
	}).Info("briefing finished")
	return res, nil
}

func (b *Briefing) clock() time.Time {
	if b.now != nil {
		return b.now()
	}
	return time.Now()
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var errNoCollector = errors.New("briefing: collector is required")
