package cvparse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cvsite/internal/cv"
	"cvsite/internal/llm"
)

var (
	// ErrNotPDF 表示上传内容不是 PDF。
	ErrNotPDF = errors.New("file is not a PDF document")
	// ErrNoName 表示模型未能从简历中识别出姓名，通常意味着内容不是简历。
	ErrNoName = errors.New("could not find a name in the CV")
)

const extractionPrompt = `Extract the information from this CV/resume PDF and return it as JSON with this exact shape:
{
  "personalInfo": {"name": "", "email": "", "phone": "", "location": "", "title": "",
                   "linkedin": "", "github": "", "website": "", "twitter": ""},
  "summary": "",
  "experience": [{"company": "", "position": "", "duration": "", "startDate": "", "endDate": "", "description": ""}],
  "education": [{"school": "", "degree": "", "field": "", "year": ""}],
  "skills": [""],
  "languages": [""]
}
Rules:
- Keep the original language of the CV for free text.
- "duration" is a display string such as "Jan 2020 - Present".
- startDate/endDate use YYYY-MM when known, otherwise leave them empty.
- Use empty strings and empty arrays for anything missing. Do not invent data.
- "title" is the current or most recent professional title.`

// Parser 使用 LLM 把 PDF 简历解析为结构化数据。
type Parser struct {
	llm llm.Generator
}

func New(generator llm.Generator) *Parser {
	return &Parser{llm: generator}
}

// Parse 把 PDF 作为 inline_data 发送给模型，解码并规整返回的 JSON。
func (p *Parser) Parse(ctx context.Context, pdf []byte) (*cv.Data, error) {
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		return nil, ErrNotPDF
	}

	raw, err := p.llm.Generate(ctx, llm.Request{
		Operation:   "parse_cv",
		Prompt:      extractionPrompt,
		Attachments: []llm.Attachment{{MIMEType: "application/pdf", Data: pdf}},
		JSON:        true,
		Temperature: 0.1,
		MaxTokens:   8192,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze cv: %w", err)
	}

	var data cv.Data
	if err := json.Unmarshal([]byte(llm.StripCodeFences(raw)), &data); err != nil {
		return nil, fmt.Errorf("decode cv data: %w", err)
	}
	data.Normalize()
	// 上传的作品与头像由用户管理，不接受模型臆造的 URL。
	data.Portfolio = []cv.PortfolioItem{}
	data.PersonalInfo.ProfilePhotoURL = ""

	if data.PersonalInfo.Name == "" {
		return nil, ErrNoName
	}
	return &data, nil
}
