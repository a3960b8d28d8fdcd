package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xshoji/go-doc-diff/compare"
	"github.com/xshoji/go-doc-diff/config"
	"github.com/xshoji/go-doc-diff/imageutil"
	"github.com/xshoji/go-doc-diff/rasterize"
	"github.com/xshoji/go-doc-diff/report"
	"github.com/xshoji/go-doc-diff/structdiff"
)

// loadCollections は両方の入力をコレクションとして読み込む
func loadCollections(inputA, inputB string, accept func(string) bool) (*compare.Collection, *compare.Collection, error) {
	a, err := compare.LoadCollection(inputA, accept)
	if err != nil {
		return nil, nil, err
	}
	b, err := compare.LoadCollection(inputB, accept)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// logFailures は失敗したドキュメントを出力し、失敗があったかを返す
func logFailures(failures []*compare.DocumentError) bool {
	for _, f := range failures {
		entry := logrus.WithField("document", f.Document)
		if f.Side != "" {
			entry = entry.WithField("side", f.Side)
		}
		if f.Page > 0 {
			entry = entry.WithField("page", f.Page)
		}
		entry.WithError(f.Err).Error("Document could not be compared")
	}
	return len(failures) > 0
}

// runVisual は画像比較を実行し、差分レポートのPDFを書き出す
func runVisual(ctx context.Context, cfg *config.AppConfig, inputA, inputB, output string) bool {
	a, b, err := loadCollections(inputA, inputB, rasterize.IsDocumentFile)
	if err != nil {
		logrus.WithError(err).Error("Failed to load inputs")
		return false
	}

	typeface := imageutil.LoadTypeface(cfg.Font())
	strategy := compare.NewVisualStrategy(cfg, rasterize.NewDispatcher(), typeface)

	batch, err := compare.NewOrchestrator[*compare.DocumentResult](strategy, cfg.NumCPU).Run(ctx, a, b)
	if err != nil {
		logrus.WithError(err).Error("Comparison aborted")
		return false
	}
	logrus.Info(batch.Status)

	for _, r := range batch.Results {
		for _, line := range r.Summary {
			logrus.WithField("document", r.Name).Info(line)
		}
	}
	failed := logFailures(batch.Failures)

	pages := compare.CollectReportPages(batch.Results)
	if len(pages) == 0 {
		logrus.Warn("Nothing to report, no PDF written")
		return !failed
	}

	if err := report.NewAssembler(cfg).Assemble(ctx, pages, output); err != nil {
		var ae *report.AssemblyError
		if errors.As(err, &ae) {
			logrus.WithError(ae.Err).WithField("step", ae.Step).Error("Failed to write report")
		} else {
			logrus.WithError(err).Error("Failed to write report")
		}
		return false
	}
	return !failed
}

// runStructural は構造比較を実行し、ドキュメントごとにレポートを書き出す
func runStructural(ctx context.Context, cfg *config.AppConfig, inputA, inputB, output string) bool {
	if err := structdiff.ValidateFormats(cfg.ReportFormats); err != nil {
		logrus.WithError(err).Error("Invalid report formats")
		return false
	}

	a, b, err := loadCollections(inputA, inputB, structdiff.IsSupported)
	if err != nil {
		logrus.WithError(err).Error("Failed to load inputs")
		return false
	}

	strategy := structdiff.NewStrategy(structdiff.NewFileExtractor())
	batch, err := compare.NewOrchestrator[*structdiff.Record](strategy, cfg.NumCPU).Run(ctx, a, b)
	if err != nil {
		logrus.WithError(err).Error("Comparison aborted")
		return false
	}
	logrus.Info(batch.Status)
	failed := logFailures(batch.Failures)

	generated := time.Now()
	written := make(map[string]string, len(batch.Results))
	for _, rec := range batch.Results {
		base := reportBasePath(output, rec.Name, len(batch.Results) > 1)
		if prev, ok := written[base]; ok {
			logrus.WithFields(logrus.Fields{
				"document": rec.Name,
				"previous": prev,
				"output":   base,
			}).Error("Report path already used by another document, skipped")
			failed = true
			continue
		}
		written[base] = rec.Name
		if _, err := structdiff.WriteReports(rec, base, cfg.ReportFormats, generated); err != nil {
			logrus.WithError(err).WithField("document", rec.Name).Error("Failed to write report")
			failed = true
		}
	}
	return !failed
}

// reportBasePath は出力パスから拡張子を除いたベースパスを返す
// 複数のドキュメントを比較した場合はドキュメント名（拡張子を含む）を付け足す
// contract.pdf と contract.json が同じパスにならないよう "." は "_" に置き換える
func reportBasePath(output, docName string, perDocument bool) string {
	base := strings.TrimSuffix(output, filepath.Ext(output))
	if !perDocument {
		return base
	}
	return base + "_" + strings.ReplaceAll(docName, ".", "_")
}
