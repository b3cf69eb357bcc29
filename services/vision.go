package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"google.golang.org/genai"
)

// LLMModelName is the GenAI backend model to use for the client.
type LLMModelName int32

const (
	Pro25 LLMModelName = iota
	Flash25
	FlashLite25
	Flash20
)

func (t LLMModelName) String() string {
	switch t {
	case Pro25:
		return "gemini-2.5-pro"
	case Flash25:
		return "gemini-2.5-flash"
	case FlashLite25:
		return "gemini-2.5-flash-lite-preview-06-17"
	case Flash20:
		return "gemini-2.0-flash"
	default:
		return "gemini-2.0-flash"
	}
}

func floatPointer(f float32) *float32 {
	return &f
}

var dashAlphaRule = regexp.MustCompile(`[^a-z0-9-]`)

// ClothingAttributes is the structured analysis for one wardrobe photo.
// Formality and Confidence live on a 0..1 scale; nil means the model
// did not return the field.
type ClothingAttributes struct {
	Label      string   `json:"label"`
	Confidence *float64 `json:"confidence"`
	Category   string   `json:"category"`
	Colors     []string `json:"colors"`
	Formality  *float64 `json:"formality"`
	StyleTags  []string `json:"style_tags"`
	Season     []string `json:"season"`
}

type ClothingVisionProvider interface {
	DetectClothingAttributes(filePath string, modelName LLMModelName) (*ClothingAttributes, error)
}

type GoogleVisionService struct{}

func tryUploadGoogleStorage(ctx context.Context, client *genai.Client, filePath string, newName *string) (*genai.File, error) {
	var genFile *genai.File
	var err error
	maxUploadTimes := 3
	for i := range maxUploadTimes {
		config := &genai.UploadFileConfig{}
		if newName != nil {
			config = &genai.UploadFileConfig{
				Name: *newName,
			}
		}

		genFile, err = client.Files.UploadFromPath(ctx, filePath, config)
		if err == nil {

			fmt.Println("File uploaded successfully:", filePath, "Attempt:", i+1)
			return genFile, nil
		}
		fmt.Printf("Error uploading file %s, attempt %d: %v\n", filePath, i+1, err)
	}
	return nil, fmt.Errorf("failed to upload file to google storage /after %d attempts: %s", maxUploadTimes, filePath)
}

func getFirstCandidateText(result *genai.GenerateContentResponse) (string, error) {
	for _, c := range result.Candidates {
		fmt.Println("Finish reason: ", c.FinishReason, " Finish message: ", c.FinishMessage)

		if len(c.SafetyRatings) > 0 {
			fmt.Println("[Safety] Safety ratings present:", len(c.SafetyRatings))
			for _, rating := range c.SafetyRatings {
				fmt.Println("[Safety] rating:", rating.Category, "Score:", rating.Probability, " Blocked:", rating.Blocked)
				if rating.Blocked {
					return "", fmt.Errorf("content violation: couldn't analyze the photo, because it contains %s", rating.Category)
				}
			}
		}
	}
	return result.Text(), nil
}

// DetectClothingAttributes runs one wardrobe photo through the vision
// model and parses the schema-constrained JSON answer.
func (GoogleVisionService) DetectClothingAttributes(filePath string, modelName LLMModelName) (*ClothingAttributes, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  os.Getenv("GOOGLE_API_KEY"),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating genai client: %v", err)
	}

	fileName := strings.ToLower(strings.ReplaceAll(filePath, ".", "-"))
	sanitizedFileName := dashAlphaRule.ReplaceAllString(fileName, "")
	_ = sanitizedFileName
	genFile, err := tryUploadGoogleStorage(ctx, client, filePath, nil)
	if err != nil {
		fmt.Println("Error uploading file:", filePath, err)
		return nil, fmt.Errorf("error uploading file to google storage %s: %v", filePath, err)
	}

	parts := []*genai.Part{
		{
			FileData: &genai.FileData{
				FileURI:  genFile.URI,
				MIMEType: genFile.MIMEType,
			},
		},
	}

	result, err := client.Models.GenerateContent(ctx, modelName.String(), []*genai.Content{{Parts: parts}}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		CandidateCount:   1,
		MaxOutputTokens:  5000,
		Temperature:      floatPointer(0.2),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: `You are an expert fashion attribute tagger. Analyze the single clothing item in the photo and return JSON with the specified fields. Follow these rules:
1. "label": a short lowercase item name, e.g. "white linen shirt".
2. "confidence": how sure you are about the label, 0 to 1.
3. "category": one of "top", "bottom", "shoes", "outer", "accessory", "other".
4. "colors": 1 to 3 lowercase color words, dominant first. Use plain names like "black", "navy", "beige".
5. "formality": 0 to 1, where 0 is gym wear and 1 is black tie.
6. "style_tags": 2 to 6 lowercase tags such as "casual", "formal", "street", "classic", "minimal", "ethnic", "sporty".
7. "season": subset of ["summer", "winter", "all_season"].
If the image contains no clothing item, return "unknown" for label with confidence 0.`},
			},
		},
		ResponseSchema: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"label": {
					Type: "string",
				},
				"confidence": {
					Type: "number",
				},
				"category": {
					Type: "string",
				},
				"colors": {
					Type:  "array",
					Items: &genai.Schema{Type: "string"},
				},
				"formality": {
					Type: "number",
				},
				"style_tags": {
					Type:  "array",
					Items: &genai.Schema{Type: "string"},
				},
				"season": {
					Type:  "array",
					Items: &genai.Schema{Type: "string"},
				},
			},
			Required: []string{"label", "confidence", "category", "colors", "formality", "style_tags"},
		},
	})

	if err != nil {
		fmt.Println("Error in GenerateContent:", err)
		return nil, fmt.Errorf("%v", err)
	}
	if result.UsageMetadata != nil {
		fmt.Println("Input token count:", result.UsageMetadata.PromptTokenCount)
		fmt.Println("Output token count:", result.UsageMetadata.CandidatesTokenCount)
		fmt.Println("Total token count:", result.UsageMetadata.TotalTokenCount)
	} else {
		fmt.Println("UsageMetadata is nil!")
	}

	if result.PromptFeedback != nil {
		fmt.Println(result.PromptFeedback.BlockReason)
		fmt.Println(result.PromptFeedback.BlockReasonMessage)
		fmt.Println(result.PromptFeedback.SafetyRatings)
		return nil, fmt.Errorf("content violation: %s %s ", filePath, result.PromptFeedback.BlockReasonMessage)
	}

	text, err := getFirstCandidateText(result)
	if err != nil {
		fmt.Println("Error getting first candidate text: ", err)
		return nil, err
	}

	var attrs ClothingAttributes
	if err := json.Unmarshal([]byte(text), &attrs); err != nil {
		return nil, fmt.Errorf("error parsing vision response: %v", err)
	}
	return &attrs, nil
}
