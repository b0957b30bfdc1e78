package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/menuboard"
	"google.golang.org/genai"
)

// Model is the chat model used to answer and condense questions.
const Model = "gemini-2.5-flash"

// Ensure Asker implements menuboard.Asker at compile time.
var _ menuboard.Asker = (*Asker)(nil)

// Asker implements menuboard.Asker using Google Gemini.
type Asker struct {
	client *genai.Client
	search menuboard.SearchService
}

// NewAsker creates a new Asker that retrieves context through search.
func NewAsker(client *genai.Client, search menuboard.SearchService) *Asker {
	return &Asker{client: client, search: search}
}

// Ask answers a question about the menu catalog. With a non-empty history
// the question is first rewritten into a standalone question so follow-ups
// like "그거 칼로리는?" retrieve the right menu items.
func (a *Asker) Ask(ctx context.Context, question string, history []menuboard.Turn) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", menuboard.Errorf(menuboard.EINVALID, "question required")
	}

	standalone := question
	if len(history) > 0 {
		condensed, err := a.generate(ctx, BuildCondensePrompt(history, question), BuildCondenseConfig())
		if err != nil {
			return "", fmt.Errorf("condensing question: %w", err)
		}
		if c := strings.TrimSpace(condensed); c != "" {
			standalone = c
		}
	}

	results, err := a.search.Search(ctx, standalone, menuboard.SearchOptions{Limit: menuboard.DefaultSearchLimit})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", menuboard.Errorf(menuboard.ENOTFOUND, "no menu items found for %q", standalone)
	}

	return a.generate(ctx, BuildUserPrompt(results, standalone), BuildConfig())
}

func (a *Asker) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := a.client.Models.GenerateContent(ctx, Model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", menuboard.Errorf(menuboard.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

const systemInstruction = `당신은 스타벅스, 이디야, 공차의 메뉴를 안내하는 키오스크 도우미입니다.
제공된 메뉴 정보만을 근거로 한국어로 답변하세요.
메뉴 정보에 답이 없으면 모른다고 답하세요.`

// BuildConfig returns the GenerateContentConfig for answering questions.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature: &temp,
	}
}

// BuildCondenseConfig returns the GenerateContentConfig for rewriting a
// follow-up question.
func BuildCondenseConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{Temperature: &temp}
}

// BuildUserPrompt builds the user prompt containing the retrieved menu items
// and the question.
func BuildUserPrompt(results []menuboard.SearchResult, question string) string {
	var sb strings.Builder
	sb.WriteString("<menu>\n")
	for i, r := range results {
		if r.Document == nil {
			continue
		}
		sb.WriteString("<item>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<brand>%s</brand>\n", r.Document.Metadata.Brand.DisplayName())
		fmt.Fprintf(&sb, "<content>%s</content>\n", r.Document.Content)
		sb.WriteString("</item>\n")
	}
	sb.WriteString("</menu>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}

// BuildCondensePrompt asks the model to rephrase a follow-up question as a
// standalone question, given the earlier turns.
func BuildCondensePrompt(history []menuboard.Turn, question string) string {
	var sb strings.Builder
	sb.WriteString("Given the following conversation and a follow up question, ")
	sb.WriteString("rephrase the follow up question to be a standalone question, in its original language.\n\n")
	sb.WriteString("Chat History:\n")
	for _, t := range history {
		fmt.Fprintf(&sb, "Human: %s\n", t.Question)
		fmt.Fprintf(&sb, "Assistant: %s\n", t.Answer)
	}
	fmt.Fprintf(&sb, "Follow Up Input: %s\n", question)
	sb.WriteString("Standalone question:")
	return sb.String()
}
