package structdiff

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// 出力形式
const (
	FormatJSON     = "json"
	FormatMarkdown = "md"
	FormatLaTeX    = "tex"
	FormatHTML     = "html"
)

const (
	reportTitle     = "Document Comparison Report"
	timestampLayout = "2006-01-02 15:04:05"
)

var categoryOrder = []string{CategoryAdded, CategoryRemoved, CategoryChanged}

// categoryTitle は "values_changed" を "Values Changed" のようにする
// cases.Caser は状態を持つため呼び出しごとに作る
func categoryTitle(category string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(category, "_", " "))
}

// sortedCategories は既知の分類を決まった順で、それ以外を辞書順で返す
func sortedCategories(d Differences) []string {
	known := make(map[string]bool, len(categoryOrder))
	var out []string
	for _, c := range categoryOrder {
		known[c] = true
		if len(d[c]) > 0 {
			out = append(out, c)
		}
	}
	var rest []string
	for c, changes := range d {
		if !known[c] && len(changes) > 0 {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func sortedPaths(changes map[string]Change) []string {
	paths := make([]string, 0, len(changes))
	for p := range changes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// changeFields は変更の内容を "old_value" "new_value" の順で返す
func changeFields(c Change) [][2]string {
	var fields [][2]string
	if c.HasOld {
		fields = append(fields, [2]string{"old_value", formatValue(c.Old)})
	}
	if c.HasNew {
		fields = append(fields, [2]string{"new_value", formatValue(c.New)})
	}
	return fields
}

func formatValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// FormatDifferences は差分を読みやすいテキストにする
func FormatDifferences(d Differences) string {
	if d.Empty() {
		return NoDifferences
	}
	var lines []string
	for _, category := range sortedCategories(d) {
		lines = append(lines, categoryTitle(category)+":")
		changes := d[category]
		for _, path := range sortedPaths(changes) {
			lines = append(lines, fmt.Sprintf("  - %s:", path))
			for _, f := range changeFields(changes[path]) {
				lines = append(lines, fmt.Sprintf("    %s: %s", f[0], f[1]))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// WriteJSON は結果をインデント付きJSONで書き出す
func WriteJSON(w io.Writer, rec *Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// WriteMarkdown はMarkdownのレポートを書き出す
func WriteMarkdown(w io.Writer, rec *Record, generated time.Time) error {
	report := []string{
		"# " + reportTitle,
		fmt.Sprintf("**Generated on**: %s", generated.Format(timestampLayout)),
		"",
		"## Compared Files",
		fmt.Sprintf("- **Document A**: %s", rec.SourceA),
		fmt.Sprintf("- **Document B**: %s", rec.SourceB),
		"",
		"## Differences",
		FormatDifferences(rec.Differences),
	}
	_, err := io.WriteString(w, strings.Join(report, "\n")+"\n")
	return err
}

var latexReplacer = strings.NewReplacer(
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
	`\`, `\textbackslash{}`,
)

// EscapeLaTeX はLaTeXの特殊文字をエスケープする
func EscapeLaTeX(s string) string {
	return latexReplacer.Replace(s)
}

// WriteLaTeX はLaTeXのレポートを書き出す
func WriteLaTeX(w io.Writer, rec *Record, generated time.Time) error {
	body := strings.ReplaceAll(EscapeLaTeX(FormatDifferences(rec.Differences)), "\n", `\\`+"\n")
	content := []string{
		`\documentclass[a4paper,12pt]{article}`,
		`\usepackage[utf8]{inputenc}`,
		`\usepackage[T1]{fontenc}`,
		`\usepackage{times}`,
		`\usepackage{geometry}`,
		`\geometry{margin=1in}`,
		`\usepackage{parskip}`,
		`\usepackage{enumitem}`,
		`\setlength{\parindent}{0pt}`,
		`\begin{document}`,
		`\textbf{\Large ` + reportTitle + `}`,
		`\vspace{0.5em}`,
		`\textbf{Generated on:} ` + generated.Format(timestampLayout),
		`\vspace{1em}`,
		`\section*{Compared Files}`,
		`\begin{itemize}`,
		`  \item \textbf{Document A:} ` + EscapeLaTeX(rec.SourceA),
		`  \item \textbf{Document B:} ` + EscapeLaTeX(rec.SourceB),
		`\end{itemize}`,
		`\vspace{1em}`,
		`\section*{Differences}`,
		body,
		`\end{document}`,
	}
	_, err := io.WriteString(w, strings.Join(content, "\n")+"\n")
	return err
}

// element は子ノードを持つ要素ノードを作る
func element(a atom.Atom, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// WriteHTML はHTMLのレポートを書き出す。文字列は html.Render がエスケープする
func WriteHTML(w io.Writer, rec *Record, generated time.Time) error {
	body := element(atom.Body,
		element(atom.H1, textNode(reportTitle)),
		element(atom.P, element(atom.Strong, textNode("Generated on: ")), textNode(generated.Format(timestampLayout))),
		element(atom.H2, textNode("Compared Files")),
		element(atom.Ul,
			element(atom.Li, element(atom.Strong, textNode("Document A: ")), textNode(rec.SourceA)),
			element(atom.Li, element(atom.Strong, textNode("Document B: ")), textNode(rec.SourceB)),
		),
		element(atom.H2, textNode("Differences")),
	)

	if !rec.HasDifferences() {
		body.AppendChild(element(atom.P, textNode(NoDifferences)))
	}
	for _, category := range sortedCategories(rec.Differences) {
		body.AppendChild(element(atom.H3, textNode(categoryTitle(category))))
		list := element(atom.Ul)
		changes := rec.Differences[category]
		for _, path := range sortedPaths(changes) {
			fields := element(atom.Ul)
			for _, f := range changeFields(changes[path]) {
				fields.AppendChild(element(atom.Li, element(atom.Em, textNode(f[0]+": ")), element(atom.Code, textNode(f[1]))))
			}
			list.AppendChild(element(atom.Li, element(atom.Code, textNode(path)), fields))
		}
		body.AppendChild(list)
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(element(atom.Html,
		element(atom.Head,
			&html.Node{Type: html.ElementNode, DataAtom: atom.Meta, Data: "meta", Attr: []html.Attribute{{Key: "charset", Val: "utf-8"}}},
			element(atom.Title, textNode(reportTitle)),
		),
		body,
	))
	return html.Render(w, doc)
}

// ValidateFormats は未知の出力形式が無いかを確認する
func ValidateFormats(formats []string) error {
	if len(formats) == 0 {
		return fmt.Errorf("no report formats selected")
	}
	for _, f := range formats {
		switch f {
		case FormatJSON, FormatMarkdown, FormatLaTeX, FormatHTML:
		default:
			return fmt.Errorf("unknown report format: %q", f)
		}
	}
	return nil
}

// WriteReports は basePath に各形式の拡張子を付けてレポートを書き出し、書き出したパスを返す
func WriteReports(rec *Record, basePath string, formats []string, generated time.Time) ([]string, error) {
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}

	written := make([]string, 0, len(formats))
	for _, format := range formats {
		path := basePath + "." + format
		if err := writeReport(path, format, rec, generated); err != nil {
			return written, fmt.Errorf("failed to write %s report: %w", format, err)
		}
		log.WithFields(logrus.Fields{
			"document": rec.Name,
			"format":   format,
			"output":   path,
		}).Info("Report saved")
		written = append(written, path)
	}
	return written, nil
}

func writeReport(path, format string, rec *Record, generated time.Time) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	switch format {
	case FormatJSON:
		return WriteJSON(f, rec)
	case FormatMarkdown:
		return WriteMarkdown(f, rec, generated)
	case FormatLaTeX:
		return WriteLaTeX(f, rec, generated)
	default:
		return WriteHTML(f, rec, generated)
	}
}
