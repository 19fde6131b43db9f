package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// ChallengeIdea is the raw output of a challenge generator, before the
// catalog validates it and assigns ids and an end time.
type ChallengeIdea struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PointReward int    `json:"pointReward"`
}

// Valid reports whether an idea satisfies the challenge schema: non-blank
// name and description, reward within [10, 99].
func (i ChallengeIdea) Valid() bool {
	return strings.TrimSpace(i.Name) != "" &&
		strings.TrimSpace(i.Description) != "" &&
		i.PointReward >= MinPointReward && i.PointReward <= MaxPointReward
}

// Generator produces challenge ideas. Implementations must respect the
// context deadline; the catalog bounds generation so a slow generator
// never blocks unrelated reads.
type Generator interface {
	Generate(ctx context.Context, count int) ([]ChallengeIdea, error)
}

// RandomGenerator is the fallback generator: fixed idea pool, random
// reward in [10, 99]. Used when no Gemini API key is configured.
type RandomGenerator struct{}

var randomIdeaPool = []struct {
	name        string
	description string
}{
	{"Morning walk", "Take a 20 minute walk before noon."},
	{"Hydration check", "Drink eight glasses of water today."},
	{"Deep focus", "Work for 45 minutes without touching your phone."},
	{"Tidy sweep", "Clear your desk or one room for 10 minutes."},
	{"Reach out", "Message a friend you have not talked to this week."},
	{"Stretch break", "Do 5 minutes of stretching after sitting an hour."},
	{"Read a chapter", "Read one chapter of any book."},
	{"Early night", "Be in bed before 11pm tonight."},
}

func (RandomGenerator) Generate(ctx context.Context, count int) ([]ChallengeIdea, error) {
	ideas := make([]ChallengeIdea, 0, count)
	offset := rand.Intn(len(randomIdeaPool))
	for i := 0; i < count; i++ {
		pick := randomIdeaPool[(offset+i)%len(randomIdeaPool)]
		ideas = append(ideas, ChallengeIdea{
			Name:        pick.name,
			Description: pick.description,
			PointReward: rand.Intn(MaxPointReward-MinPointReward+1) + MinPointReward,
		})
	}
	return ideas, nil
}

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiGenerator asks the Gemini REST API for challenge ideas. Output
// is parsed as strict JSON; anything malformed is discarded upstream by
// ChallengeIdea.Valid, never inserted.
type GeminiGenerator struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

func NewGeminiGenerator(apiKey, model string) *GeminiGenerator {
	return &GeminiGenerator{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: defaultGeminiBaseURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiGenerator) Generate(ctx context.Context, count int) ([]ChallengeIdea, error) {
	prompt := fmt.Sprintf(
		"Generate %d daily real-life challenges for a habit tracking game. "+
			"Respond with only a JSON array, no prose, where each element is "+
			`{"name": string, "description": string, "pointReward": integer between %d and %d}. `+
			"Keep names under 40 characters and descriptions under 120 characters.",
		count, MinPointReward, MaxPointReward)

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.BaseURL, g.Model, g.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding gemini response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	ideas, err := parseIdeaJSON(out.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}
	return ideas, nil
}

// parseIdeaJSON extracts a JSON array of ideas from model output,
// tolerating markdown code fences around the payload.
func parseIdeaJSON(text string) ([]ChallengeIdea, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	var ideas []ChallengeIdea
	if err := json.Unmarshal([]byte(text), &ideas); err != nil {
		return nil, fmt.Errorf("parsing generated challenges: %w", err)
	}
	return ideas, nil
}
