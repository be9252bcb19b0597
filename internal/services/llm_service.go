package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/justsurfingit/internship-finder/internal/config"
	"github.com/justsurfingit/internship-finder/internal/models"
)

// ErrLLMDisabled is returned when no Gemini key is configured.
var ErrLLMDisabled = errors.New("cover letter drafting is not configured")

type LLMService struct {
	// nil when disabled
	Client llms.Model
}

// NewLLMService builds the Gemini client. Without an API key the service is
// returned disabled rather than failing startup.
func NewLLMService(ctx context.Context, cfg config.LLMConfig) (*LLMService, error) {
	if cfg.APIKey == "" {
		log.Println("⚠️  GEMINI_API_KEY not set, cover letter drafts disabled.")
		return &LLMService{}, nil
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &LLMService{Client: llm}, nil
}

func (s *LLMService) Enabled() bool { return s != nil && s.Client != nil }

const coverLetterPrompt = `
You are helping a university student apply for an internship. Write a short cover letter.

### INSTRUCTIONS:
1. Address it to the hiring team at the company.
2. Keep it under 250 words, in three short paragraphs.
3. Mention the internship title and department, and connect the student's background to the listed skills.
4. Output plain text only. No markdown, no placeholders in square brackets.

### COMPANY:
Name: %s
Industry: %s
Location: %s
About: %s

### INTERNSHIP:
Title: %s
Department: %s
Required skills: %s
Requirements: %s

### STUDENT:
Name: %s
`

// DraftCoverLetter asks the model for a first draft the student can edit.
func (s *LLMService) DraftCoverLetter(ctx context.Context, company models.Company, opp models.Opportunity, user *models.User) (string, error) {
	if !s.Enabled() {
		return "", ErrLLMDisabled
	}
	prompt := fmt.Sprintf(coverLetterPrompt,
		company.Name, company.Industry, company.Location, truncateRunes(company.Description, 2000),
		opp.Title, opp.Department, strings.Join(opp.RequiredSkills, ", "), deref(opp.Requirements),
		user.DisplayName(),
	)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
