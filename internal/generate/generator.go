// Package generate はキーワード重なり分析による履歴書コンテンツ生成を提供する。
//
// 生成AIバックエンドを使わない、依存のない透過的なヒューリスティック。
// 空でない2つの入力に対して常に空でない決定的な結果を返す。
package generate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/flamesblue/resumebuilder/internal/model"
)

const (
	// 求人票に空行しかない場合のデフォルトタイトル
	defaultTitle = "Professional Profile"

	headerText = "Impact-forward Resume"
	footerText = "Created with Flames Blue Resume Builder"

	adviceText = "Record a 60–90s Loom: start with a 10s intro (name, role), then 30s on a signature achievement, " +
		"20s on how it maps to the JD, and finish with a clear ask to connect. Smile, good lighting, " +
		"and share 1 on-screen artifact (dashboard, code snippet, design)."

	// キーワード抽出の上限
	topKeywords = 10
	// サマリーに埋め込む重なりキーワードの上限
	summaryKeywords = 6
	// 箇条書きのスキャン対象となるユーザー素材行数の上限
	bulletScanLines = 12
	// 箇条書きの照合に使う求人票キーワード数の上限
	bulletScanKeywords = 8
	// 箇条書きの件数上限
	maxBullets = 8
	// 箇条書きに含める素材行の最大文字数
	bulletLineLen = 140
	// フォールバック箇条書きに埋め込む素材キーワードの上限
	fallbackKeywords = 5
)

// 4文字以上のASCII英字の連続をキーワード候補とする
var wordPattern = regexp.MustCompile(`[A-Za-z]{4,}`)

// Generator はヒューリスティックコンテンツ生成器。
// 状態を持たず、すべてのメソッドは並行呼び出し可能。
type Generator struct{}

// NewGenerator はGeneratorを生成する。
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate は求人票とユーザー素材からコンテンツバンドルを生成する。
// どちらかが空または空白のみの場合はinvalid argumentエラーを返す。
// 同一入力に対する結果は完全に決定的（bulletsを含む）。
func (g *Generator) Generate(jobDescription, userMaterial string) (*model.GeneratedContent, error) {
	if strings.TrimSpace(jobDescription) == "" || strings.TrimSpace(userMaterial) == "" {
		return nil, model.NewInvalidArgumentError("求人票とユーザー素材の両方が必要です")
	}

	jdLines := nonEmptyLines(jobDescription)
	umLines := nonEmptyLines(userMaterial)

	title := defaultTitle
	if len(jdLines) > 0 {
		tokens := strings.Fields(jdLines[0])
		if len(tokens) > 6 {
			tokens = tokens[:6]
		}
		title = strings.Join(tokens, " ")
	}

	jdKeywords := keywords(jobDescription)
	umKeywords := keywords(userMaterial)

	// 重なりは求人票側のキーワード順位で並べる（決定的な順序）
	umSet := make(map[string]bool, len(umKeywords))
	for _, w := range umKeywords {
		umSet[w] = true
	}
	overlap := []string{}
	for _, w := range jdKeywords {
		if umSet[w] {
			overlap = append(overlap, w)
		}
	}

	summary := fmt.Sprintf(
		"Results-driven professional aligning closely with the role's priorities: %s. "+
			"Brings proven experience highlighted below and tailored precisely to the job description.",
		strings.Join(firstN(overlap, summaryKeywords), ", "),
	)

	bullets := buildBullets(umLines, jdKeywords)
	if len(bullets) == 0 {
		bullets = []string{fmt.Sprintf(
			"Accomplished key outcomes across %s.",
			strings.Join(firstN(umKeywords, fallbackKeywords), ", "),
		)}
	}

	// カバーレターのキーワードスロットは上限なし（サマリーの6件制限と非対称）
	coverLetter := "Dear Hiring Manager,\n\n" +
		"I'm excited to apply for this opportunity. After reviewing the job description, " +
		"I curated the attached resume to emphasize the most relevant skills and outcomes, including " +
		strings.Join(overlap, ", ") + ". " +
		"I thrive in collaborative, fast-moving environments and would welcome the chance to contribute.\n\n" +
		"Sincerely,\nYour Name"

	return &model.GeneratedContent{
		Title:       title,
		Summary:     summary,
		Bullets:     bullets,
		CoverLetter: coverLetter,
		Header:      headerText,
		Footer:      footerText,
		Advice:      adviceText,
	}, nil
}

// nonEmptyLines はテキストをトリム済みの空でない行に分割する。
func nonEmptyLines(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// keywords はテキストから頻度上位のキーワードを最大10件返す。
// 抽出対象は小文字化した4文字以上のASCII英字の連続。
// 順序は頻度の降順、同率は初出順（決定的なタイブレーク）。
func keywords(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	counts := make(map[string]int)
	firstIdx := make(map[string]int)
	uniq := []string{}
	for i, w := range words {
		if _, seen := counts[w]; !seen {
			firstIdx[w] = i
			uniq = append(uniq, w)
		}
		counts[w]++
	}

	sort.SliceStable(uniq, func(i, j int) bool {
		if counts[uniq[i]] != counts[uniq[j]] {
			return counts[uniq[i]] > counts[uniq[j]]
		}
		return firstIdx[uniq[i]] < firstIdx[uniq[j]]
	})

	return firstN(uniq, topKeywords)
}

// buildBullets はユーザー素材の先頭12行を求人票キーワードと照合し、
// 最初にヒットしたキーワードで箇条書きを作る。最大8件。
func buildBullets(umLines, jdKeywords []string) []string {
	bullets := []string{}
	scanKeywords := firstN(jdKeywords, bulletScanKeywords)

	for _, line := range firstN(umLines, bulletScanLines) {
		if len(bullets) >= maxBullets {
			break
		}
		lower := strings.ToLower(line)
		for _, kw := range scanKeywords {
			if strings.Contains(lower, kw) {
				bullets = append(bullets, fmt.Sprintf(
					"Delivered %s-focused outcomes: %s", kw, truncateRunes(line, bulletLineLen)))
				break
			}
		}
	}

	return bullets
}

// firstN はスライスの先頭最大n件を返す。
func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// truncateRunes は文字数（バイト数ではない）でテキストを切り詰める。
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}
