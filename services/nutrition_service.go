package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// NutrientExtractor turns a free-text meal description into a structured
// breakdown. The production implementation calls Gemini; handlers depend on
// the interface so they can be tested without the network.
type NutrientExtractor interface {
	ExtractMeal(ctx context.Context, prompt string) (*MealBreakdown, error)
}

type MealItemBreakdown struct {
	Name                string  `json:"name"`
	OriginalQuantity    string  `json:"originalQuantity"`
	Grams               float64 `json:"grams"`
	Unit                string  `json:"unit"`
	StandardServingInfo string  `json:"standardServingInfo,omitempty"`
	Calories            float64 `json:"calories"`
	Protein             float64 `json:"protein"`
	Carbs               float64 `json:"carbs"`
	Fats                float64 `json:"fats"`
}

type MealTotalBreakdown struct {
	TotalGrams float64 `json:"totalGrams"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fats       float64 `json:"fats"`
}

type MealBreakdown struct {
	MealTiming string              `json:"mealTiming"`
	Items      []MealItemBreakdown `json:"items"`
	Total      MealTotalBreakdown  `json:"total"`
	Notes      string              `json:"notes,omitempty"`
}

const nutritionistInstruction = "You are a certified nutritionist helping users understand the nutritional content of their meals. " +
	"The user will describe what they ate using natural language, including food items, quantities, preparation methods, and meal timing. " +
	"Your tasks are as follows: " +
	"1. Extract each individual food item and its quantity. " +
	"2. If the quantity is not mentioned, use these standard serving sizes: " +
	"   - 1 cup cooked rice = 160g " +
	"   - 1 cup cooked pasta = 140g " +
	"   - 1 cup milk/yogurt = 240ml " +
	"   - 1 glass liquid = 250ml " +
	"   - 1 tablespoon = 15ml or 15g " +
	"   - 1 teaspoon = 5ml or 5g " +
	"   - 1 slice bread = 30g " +
	"   - 1 medium fruit = 120g " +
	"   - 1 serving meat/fish = 85g " +
	"   - 1 egg = 50g " +
	"   - 1 cup vegetables = 150g " +
	"   - 1 roti = 30g (90 calories) " +
	"3. For each item, convert ALL quantities to grams or milliliters. " +
	"4. Always include the quantity in grams/ml in ALL calculations and output. " +
	"5. For each item, provide both the user's original quantity AND the exact weight in grams/ml. " +
	"6. Calculate all nutritional values based on the gram/ml quantity. " +
	"7. For meal timing, specifically look for: " +
	"   - Direct mentions (e.g., 'breakfast', 'lunch', 'dinner', 'snacks') " +
	"   - Time references (e.g., 'in the morning', 'at noon', 'evening meal') " +
	"   - Convert time references to meal timings: " +
	"     * 4am-11am = breakfast " +
	"     * 11am-4pm = lunch " +
	"     * 4pm-8pm = dinner " +
	"     * Any other time = snacks " +
	"8. If any assumptions are made, explain the conversion in notes. " +
	"9. Calculate total nutrition based on the exact gram/ml quantities. " +
	"One Roti = 100 cal" +
	"10. Take the accurate readings of the street food data like a samosa for 250 calories and 1 steam momo veg for 60 calories " +
	"Always return the result strictly in the following JSON schema structure."

// GeminiService is the production NutrientExtractor.
type GeminiService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiService(ctx context.Context, apiKey string) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.0-flash")
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(nutritionistInstruction)}}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = mealSchema()

	return &GeminiService{client: client, model: model}, nil
}

func (s *GeminiService) ExtractMeal(ctx context.Context, prompt string) (*MealBreakdown, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("generating breakdown: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from model")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response part %T", resp.Candidates[0].Content.Parts[0])
	}

	var breakdown MealBreakdown
	if err := json.Unmarshal([]byte(text), &breakdown); err != nil {
		return nil, fmt.Errorf("decoding breakdown: %w", err)
	}
	return &breakdown, nil
}

func (s *GeminiService) Close() error {
	return s.client.Close()
}

func mealSchema() *genai.Schema {
	itemSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":                {Type: genai.TypeString},
			"originalQuantity":    {Type: genai.TypeString},
			"grams":               {Type: genai.TypeNumber},
			"unit":                {Type: genai.TypeString, Enum: []string{"g", "ml"}},
			"standardServingInfo": {Type: genai.TypeString},
			"calories":            {Type: genai.TypeNumber},
			"protein":             {Type: genai.TypeNumber},
			"carbs":               {Type: genai.TypeNumber},
			"fats":                {Type: genai.TypeNumber},
		},
		Required: []string{"name", "originalQuantity", "grams", "unit", "standardServingInfo", "calories", "protein", "carbs", "fats"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"mealTiming": {Type: genai.TypeString},
			"items":      {Type: genai.TypeArray, Items: itemSchema},
			"total": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"totalGrams": {Type: genai.TypeNumber},
					"calories":   {Type: genai.TypeNumber},
					"protein":    {Type: genai.TypeNumber},
					"carbs":      {Type: genai.TypeNumber},
					"fats":       {Type: genai.TypeNumber},
				},
				Required: []string{"totalGrams", "calories", "protein", "carbs", "fats"},
			},
			"notes": {Type: genai.TypeString},
		},
		Required: []string{"items", "total"},
	}
}
