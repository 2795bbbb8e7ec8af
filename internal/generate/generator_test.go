package generate

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/flamesblue/resumebuilder/internal/model"
)

const sampleJD = `Senior Backend Engineer at Acme Corp Building Platforms
We need strong experience with distributed systems and caching.
Kubernetes experience required. Kubernetes operations at scale.
Experience with postgres and observability tooling.`

const sampleMaterial = `Led migration of distributed systems to kubernetes across 3 teams.
Built caching layer reducing p99 latency by 40%.
Operated postgres clusters with automated failover.
Mentored five junior engineers.`

// --- 入力検証 ---

func TestGenerate_EmptyInputs_ReturnInvalidArgument(t *testing.T) {
	g := NewGenerator()

	tests := []struct {
		name string
		jd   string
		um   string
	}{
		{"empty job description", "", "x"},
		{"empty user material", "x", ""},
		{"both empty", "", ""},
		{"whitespace only job description", "   \n\t  ", "x"},
		{"whitespace only user material", "x", "  \n  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Generate(tt.jd, tt.um)
			if err == nil {
				t.Fatal("expected error for empty input")
			}
			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *model.APIError, got %T", err)
			}
			if apiErr.Code != model.ErrCodeInvalidArgument {
				t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeInvalidArgument)
			}
		})
	}
}

// --- タイトル導出 ---

func TestGenerate_Title_ShortFirstLineUnchanged(t *testing.T) {
	g := NewGenerator()

	content, err := g.Generate("Senior Backend Engineer at Acme", sampleMaterial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if content.Title != "Senior Backend Engineer at Acme" {
		t.Errorf("title = %q, want %q", content.Title, "Senior Backend Engineer at Acme")
	}
}

func TestGenerate_Title_LongFirstLineTruncatedToSixTokens(t *testing.T) {
	g := NewGenerator()

	content, err := g.Generate("One Two Three Four Five Six Seven Eight", sampleMaterial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if content.Title != "One Two Three Four Five Six" {
		t.Errorf("title = %q, want first 6 tokens", content.Title)
	}
}

func TestGenerate_Title_CollapsesWhitespaceBetweenTokens(t *testing.T) {
	g := NewGenerator()

	content, err := g.Generate("Staff   Engineer\t Platform", sampleMaterial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if content.Title != "Staff Engineer Platform" {
		t.Errorf("title = %q, want single-space joined tokens", content.Title)
	}
}

// --- 箇条書き ---

func TestGenerate_BulletsNeverEmpty(t *testing.T) {
	g := NewGenerator()

	// キーワードが全く重ならない入力でもフォールバック箇条書きが1件返る
	content, err := g.Generate("zzzz qqqq wwww", "aaaa ssss dddd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(content.Bullets) < 1 {
		t.Fatalf("bullets length = %d, want >= 1", len(content.Bullets))
	}
	if !strings.HasPrefix(content.Bullets[0], "Accomplished key outcomes across") {
		t.Errorf("fallback bullet = %q, want fallback template", content.Bullets[0])
	}
}

func TestGenerate_BulletsMatchKeywordLines(t *testing.T) {
	g := NewGenerator()

	content, err := g.Generate(sampleJD, sampleMaterial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(content.Bullets) == 0 {
		t.Fatal("expected keyword-matched bullets")
	}
	for _, b := range content.Bullets {
		if !strings.HasPrefix(b, "Delivered ") || !strings.Contains(b, "-focused outcomes: ") {
			t.Errorf("bullet = %q, want Delivered {kw}-focused outcomes format", b)
		}
	}
	if len(content.Bullets) > 8 {
		t.Errorf("bullets length = %d, want <= 8", len(content.Bullets))
	}
}

func TestGenerate_BulletLineTruncatedTo140Chars(t *testing.T) {
	g := NewGenerator()

	longLine := "kubernetes " + strings.Repeat("a", 300)
	content, err := g.Generate("kubernetes kubernetes kubernetes deployment", longLine)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(content.Bullets) != 1 {
		t.Fatalf("bullets length = %d, want 1", len(content.Bullets))
	}
	const prefix = "Delivered kubernetes-focused outcomes: "
	got := strings.TrimPrefix(content.Bullets[0], prefix)
	if len([]rune(got)) != 140 {
		t.Errorf("embedded line length = %d runes, want 140", len([]rune(got)))
	}
}

func TestGenerate_AtMostEightBullets(t *testing.T) {
	g := NewGenerator()

	// 12行すべてがキーワードを含むが、8件で打ち切られる
	lines := make([]string, 12)
	for i := range lines {
		lines[i] = "Shipped kubernetes improvements in quarter " + string(rune('A'+i))
	}
	content, err := g.Generate("kubernetes platform work", strings.Join(lines, "\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(content.Bullets) != 8 {
		t.Errorf("bullets length = %d, want 8", len(content.Bullets))
	}
}

// --- キーワードと重なり ---

func TestKeywords_IgnoresShortWordsAndCase(t *testing.T) {
	got := keywords("Go is FUN but KUBERNETES Kubernetes kubernetes wins")

	for _, w := range got {
		if len(w) < 4 {
			t.Errorf("keyword %q shorter than 4 chars", w)
		}
		if w != strings.ToLower(w) {
			t.Errorf("keyword %q not lowercased", w)
		}
	}
	if got[0] != "kubernetes" {
		t.Errorf("most frequent keyword = %q, want %q", got[0], "kubernetes")
	}
}

func TestKeywords_DeterministicTieBreakByFirstOccurrence(t *testing.T) {
	// すべて1回ずつ出現: 初出順が保たれる
	got := keywords("delta alpha gamma beta")
	want := []string{"delta", "alpha", "gamma", "beta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("keywords = %v, want first-occurrence order %v", got, want)
	}
}

func TestKeywords_ReturnsAtMostTen(t *testing.T) {
	got := keywords("aaaa bbbb cccc dddd eeee ffff gggg hhhh iiii jjjj kkkk llll")
	if len(got) != 10 {
		t.Errorf("keywords length = %d, want 10", len(got))
	}
}

func TestGenerate_SummaryNamesOverlapKeywords(t *testing.T) {
	g := NewGenerator()

	content, err := g.Generate(sampleJD, sampleMaterial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// kubernetesは両方の上位キーワードに入るはず
	if !strings.Contains(content.Summary, "kubernetes") {
		t.Errorf("summary = %q, should name overlap keyword kubernetes", content.Summary)
	}
	if !strings.HasPrefix(content.Summary, "Results-driven professional") {
		t.Errorf("summary = %q, want fixed template prefix", content.Summary)
	}
}

// --- 決定性 ---

func TestGenerate_IdenticalInputsYieldIdenticalResults(t *testing.T) {
	g := NewGenerator()

	first, err := g.Generate(sampleJD, sampleMaterial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := g.Generate(sampleJD, sampleMaterial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// タイブレークが決定的なため、bulletsを含めて完全一致する
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated generation differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

// --- 固定文字列 ---

func TestGenerate_FixedFieldsDoNotDependOnInputs(t *testing.T) {
	g := NewGenerator()

	a, err := g.Generate("backend systems", "built backend systems")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := g.Generate("frontend design", "shipped frontend design")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Header != b.Header || a.Header != headerText {
		t.Errorf("header should be the fixed constant, got %q and %q", a.Header, b.Header)
	}
	if a.Footer != b.Footer || a.Footer != footerText {
		t.Errorf("footer should be the fixed constant, got %q and %q", a.Footer, b.Footer)
	}
	if a.Advice != b.Advice || a.Advice != adviceText {
		t.Errorf("advice should be the fixed constant")
	}
}

func TestGenerate_CoverLetterEmbedsOverlap(t *testing.T) {
	g := NewGenerator()

	content, err := g.Generate(sampleJD, sampleMaterial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(content.CoverLetter, "Dear Hiring Manager,") {
		t.Errorf("cover letter should start with the fixed salutation")
	}
	if !strings.Contains(content.CoverLetter, "kubernetes") {
		t.Errorf("cover letter should embed overlap keywords, got %q", content.CoverLetter)
	}
	if !strings.HasSuffix(content.CoverLetter, "Sincerely,\nYour Name") {
		t.Errorf("cover letter should end with the fixed signature")
	}
}
