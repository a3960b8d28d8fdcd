// report パッケージは比較結果の画像を1つのPDFレポートにまとめる
package report

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"

	"github.com/xshoji/go-doc-diff/config"
	"github.com/xshoji/go-doc-diff/imageutil"
	"github.com/xshoji/go-doc-diff/utils"
)

// ErrReportAssembly はレポートの組み立てに失敗した場合のエラー
var ErrReportAssembly = errors.New("report assembly failed")

var log = logrus.WithField("component", "report")

// 組み立ての各段階
const (
	StepPrepare = "prepare"
	StepEncode  = "encode"
	StepImport  = "import"
	StepWrite   = "write"
)

// AssemblyError は失敗した段階を保持する
type AssemblyError struct {
	Step string
	Err  error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrReportAssembly, e.Step, e.Err)
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}

// Is は ErrReportAssembly との比較を成立させる
func (e *AssemblyError) Is(target error) bool {
	return target == ErrReportAssembly
}

// Assembler はページ画像を1ページ1画像のPDFにまとめる
type Assembler struct {
	cfg *config.AppConfig
}

// NewAssembler 設定をもとに新しいAssemblerを作成
func NewAssembler(cfg *config.AppConfig) *Assembler {
	return &Assembler{cfg: cfg}
}

// Assemble は pages を順番通りに outPath のPDFへ書き出す
// 途中のJPEGは一時ディレクトリに置き、成功・失敗にかかわらず削除する
// 失敗した場合 outPath には何も残さない
func (a *Assembler) Assemble(ctx context.Context, pages []image.Image, outPath string) (err error) {
	startTime := time.Now()
	if len(pages) == 0 {
		return &AssemblyError{Step: StepPrepare, Err: errors.New("no pages to assemble")}
	}

	workDir, err := os.MkdirTemp("", "docdiff-*")
	if err != nil {
		return &AssemblyError{Step: StepPrepare, Err: err}
	}
	defer func() {
		if rerr := os.RemoveAll(workDir); rerr != nil {
			log.WithError(rerr).WithField("dir", workDir).Warn("Failed to remove temporary files")
		}
	}()

	log.WithFields(logrus.Fields{
		"pages":  len(pages),
		"output": outPath,
	}).Info("Assembling report")

	files, err := a.encodePages(ctx, pages, workDir)
	if err != nil {
		return &AssemblyError{Step: StepEncode, Err: err}
	}

	// 既存ファイルへの追記を避けるため一時ディレクトリ内で作ってから移動する
	tmpPDF := filepath.Join(workDir, "report.pdf")
	conf := model.NewDefaultConfiguration()
	if err := api.ImportImagesFile(files, tmpPDF, pdfcpu.DefaultImportConfig(), conf); err != nil {
		return &AssemblyError{Step: StepImport, Err: err}
	}

	if err := moveFile(tmpPDF, outPath); err != nil {
		return &AssemblyError{Step: StepWrite, Err: err}
	}

	log.WithFields(logrus.Fields{
		"output":  outPath,
		"elapsed": time.Since(startTime).String(),
	}).Info("Report saved")
	return nil
}

// encodePages は各ページをJPEGとして書き出し、ページ順のファイル名一覧を返す
func (a *Assembler) encodePages(ctx context.Context, pages []image.Image, dir string) ([]string, error) {
	files := make([]string, len(pages))
	err := utils.RunIndexed(ctx, len(pages), a.cfg.NumCPU, func(i int) error {
		path := filepath.Join(dir, fmt.Sprintf("page_%05d.jpg", i+1))
		if err := imageutil.SaveImage(pages[i], path, a.cfg.JPEGQuality); err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
		files[i] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// moveFile は src を dst に移動する。別ファイルシステムの場合はコピーする
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
