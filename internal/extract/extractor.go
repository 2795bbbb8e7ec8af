// Package extract はアップロードファイルからのプレーンテキスト抽出を提供する。
package extract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/flamesblue/resumebuilder/internal/model"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Capabilities は起動時設定で決まる抽出バックエンドの有効フラグ。
// 無効なバックエンドへのリクエストはcapability unavailableエラーになる。
// パース失敗（malformed input）とは別のエラー種別で、呼び出し元が区別できる。
type Capabilities struct {
	PDF  bool
	DOCX bool
}

// Extractor はファイル名の拡張子に応じてテキスト抽出方式を選択する。
type Extractor struct {
	caps Capabilities
}

// NewExtractor はExtractorを生成する。
func NewExtractor(caps Capabilities) *Extractor {
	return &Extractor{caps: caps}
}

// Extract はファイルのバイト列からプレーンテキストを抽出する。
// 拡張子はファイル名の最後のドット以降を小文字化して判定する。
// ドットがない場合はファイル名全体が「拡張子」となり、未知の形式として
// 生デコードのパスに落ちる。
// パーサーバックエンドのpanicはすべてmalformed inputエラーに変換する。
func (e *Extractor) Extract(filename string, data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = model.NewMalformedInputError(fmt.Sprint(rec))
		}
	}()

	parts := strings.Split(filename, ".")
	ext := strings.ToLower(parts[len(parts)-1])

	switch ext {
	case "pdf":
		if !e.caps.PDF {
			return "", model.NewCapabilityUnavailableError("PDF")
		}
		return extractPDF(data)
	case "docx", "doc":
		if !e.caps.DOCX {
			return "", model.NewCapabilityUnavailableError("DOCX")
		}
		return extractDOCX(data)
	default:
		// テキストとして扱う。不正なバイト列はエラーにせず破棄する。
		return strings.ToValidUTF8(string(data), ""), nil
	}
}

// extractPDF はページ単位でテキストを抽出し、改行で連結する。
// 個別ページの抽出失敗はそのページだけをスキップし、ファイル全体は中断しない。
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", model.NewMalformedInputError(err.Error())
	}

	var texts []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		if text, ok := pageText(page); ok {
			texts = append(texts, text)
		}
	}

	return strings.TrimSpace(strings.Join(texts, "\n")), nil
}

// pageText は1ページ分のテキストを抽出する。失敗（エラー・panic）はokをfalseにする。
func pageText(page pdf.Page) (text string, ok bool) {
	defer func() {
		if recover() != nil {
			text = ""
			ok = false
		}
	}()

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", false
	}
	return text, true
}

// extractDOCX は段落ごとのテキストを改行で連結する。
func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", model.NewMalformedInputError(err.Error())
	}
	defer doc.Close()

	paragraphs, err := paragraphTexts(doc.Editable().GetContent())
	if err != nil {
		return "", model.NewMalformedInputError(err.Error())
	}

	return strings.TrimSpace(strings.Join(paragraphs, "\n")), nil
}

// paragraphTexts はWordprocessingML本文から段落（w:p）単位のテキストを取り出す。
// テキストラン（w:t）の文字データを段落ごとに連結する。
func paragraphTexts(content string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	// document.xmlの文字コードはUTF-8前提
	decoder.Strict = false

	var paragraphs []string
	var current strings.Builder
	inParagraph := false
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse docx body: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				current.Reset()
			case "t":
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if inParagraph {
					paragraphs = append(paragraphs, current.String())
				}
				inParagraph = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inParagraph && inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
