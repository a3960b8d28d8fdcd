package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xshoji/go-doc-diff/config"
	"github.com/xshoji/go-doc-diff/utils"
)

// 定数定義
const (
	UsageRequiredPrefix = "\u001B[33m(REQ)\u001B[0m "
	TimeFormat          = "2006-01-02 15:04:05.0000 [MST]"
)

// アプリケーション設定とオプション
var (
	// コマンドオプション表示に関する設定
	commandDescription      = "Document difference detection and reporting tool."
	commandOptionFieldWidth = "12" // フィールド幅の推奨値: 一般的に12、ブール値のみの場合は5

	// 必須オプション
	optionInputA = flag.String("a", "", UsageRequiredPrefix+"First document or directory")
	optionInputB = flag.String("b", "", UsageRequiredPrefix+"Second document or directory")
	optionOutput = flag.String("o", "", UsageRequiredPrefix+"Output path (report PDF, or base path of structural reports)")

	// 設定ファイル
	optionConfig = flag.String("config", "", "YAML config file")

	// 比較方式
	optionMode = flag.String("mode", config.ModeVisual, "Comparison mode (visual, structural)")

	// 描画解像度
	optionDPI = flag.Float64("r", 200, "Rendering resolution in DPI")

	// 閾値設定
	optionThreshold = flag.Int("d", 30, "Luminance difference threshold (1-255)") // 'd' for 'difference threshold'

	// 並列処理のためのCPU数設定
	optionNumCPU = flag.Int("c", runtime.NumCPU(), "Number of CPU cores to use for parallel processing")

	// 描画の設定
	optionFont      = flag.String("font", "", "TrueType/OpenType font for titles (default: built-in)")
	optionHighlight = flag.String("hc", "#ff0000", "Highlight colour of difference borders")
	optionThickness = flag.Int("t", 2, "Border thickness in pixels")
	optionNested    = flag.Bool("nested", false, "Drop regions contained in another region")

	// structural モードの出力形式
	optionFormats = flag.String("formats", "json,md,tex", "Structural report formats (json, md, tex, html)")

	optionVerbose = flag.Bool("v", false, "Enable debug logging")
)

func init() {
	// ヘルプメッセージのカスタマイズ
	customizeHelpMessage()
}

// main エントリポイント
func main() {
	// コマンドライン引数の解析
	flag.Parse()

	// 必須オプションのチェック
	if err := validateRequiredOptions(); err != nil {
		fmt.Println(err)
		flag.Usage()
		os.Exit(1)
	}

	setupLogger(*optionVerbose)

	// 設定オブジェクトの作成
	cfg, err := createAppConfig()
	if err != nil {
		logrus.WithError(err).Error("Invalid configuration")
		os.Exit(1)
	}

	// 設定情報の表示
	printFlagInfo()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startTime := time.Now()
	var ok bool
	if cfg.Mode == config.ModeStructural {
		ok = runStructural(ctx, cfg, *optionInputA, *optionInputB, *optionOutput)
	} else {
		ok = runVisual(ctx, cfg, *optionInputA, *optionInputB, *optionOutput)
	}
	logrus.WithField("elapsed", time.Since(startTime).String()).Info("Total processing completed")

	if !ok {
		stop()
		os.Exit(1)
	}
}

// validateRequiredOptions 必須オプションが指定されているかチェック
func validateRequiredOptions() error {
	var missingOptions []string

	if *optionInputA == "" {
		missingOptions = append(missingOptions, "a")
	}
	if *optionInputB == "" {
		missingOptions = append(missingOptions, "b")
	}
	if *optionOutput == "" {
		missingOptions = append(missingOptions, "o")
	}

	if len(missingOptions) > 0 {
		return fmt.Errorf("\n[ERROR] Missing required option(s): %s\n",
			strings.Join(missingOptions, ", "))
	}

	return nil
}

// setupLogger ログの出力形式とレベルを設定する
func setupLogger(verbose bool) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: TimeFormat,
	})
	logrus.SetOutput(os.Stderr)
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// printFlagInfo 設定情報を表示
func printFlagInfo() {
	fmt.Printf("[ Command options ]\n")
	flag.VisitAll(func(a *flag.Flag) {
		fmt.Printf("  -%-30s %s\n",
			fmt.Sprintf("%s %v", a.Name, a.Value),
			strings.Trim(a.Usage, "\n"))
	})

	fmt.Printf("\n\n")
}

// createAppConfig 設定ファイル → 環境変数 → 明示されたオプションの順に重ねて設定を作成
func createAppConfig() (*config.AppConfig, error) {
	cfg := config.NewDefaultConfig()
	if *optionConfig != "" {
		loaded, err := config.LoadFile(*optionConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	applyFlags(cfg, set)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags は明示的に指定されたオプションだけを設定に反映する
func applyFlags(cfg *config.AppConfig, set map[string]bool) {
	if set["mode"] {
		cfg.Mode = *optionMode
	}
	if set["r"] {
		cfg.DPI = *optionDPI
	}
	if set["d"] {
		cfg.Threshold = *optionThreshold
	}
	if set["c"] {
		cfg.NumCPU = *optionNumCPU
	}
	if set["font"] {
		cfg.FontPath = *optionFont
	}
	if set["hc"] {
		cfg.Highlight = *optionHighlight
	}
	if set["t"] {
		cfg.BorderThickness = *optionThickness
	}
	if set["nested"] {
		cfg.CollapseNested = *optionNested
	}
	if set["formats"] {
		cfg.ReportFormats = utils.SplitList(*optionFormats)
	}
}

// customizeHelpMessage ヘルプメッセージの表示形式をカスタマイズする
func customizeHelpMessage() {
	b := new(bytes.Buffer)
	func() { flag.CommandLine.SetOutput(b); flag.Usage(); flag.CommandLine.SetOutput(os.Stderr) }()
	usage := strings.Replace(strings.Replace(b.String(), ":", " [OPTIONS] [-h, --help]\n\nDescription:\n  "+commandDescription+"\n\nOptions:\n", 1), "Usage of", "Usage:", 1)
	re := regexp.MustCompile(`[^,] +(-\S+)(?: (\S+))?\n*(\s+)(.*)\n`)
	flag.Usage = func() {
		_, _ = fmt.Fprint(flag.CommandLine.Output(), re.ReplaceAllStringFunc(usage, func(m string) string {
			return fmt.Sprintf("  %-"+commandOptionFieldWidth+"s %s\n", re.FindStringSubmatch(m)[1]+" "+strings.TrimSpace(re.FindStringSubmatch(m)[2]), re.FindStringSubmatch(m)[4])
		}))
	}
}
