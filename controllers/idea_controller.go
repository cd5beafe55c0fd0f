package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/date-spark/api-go/config"
	"github.com/date-spark/api-go/services"
	"github.com/date-spark/api-go/types"
)

const ideasSystemPrompt = `You are a helpful assistant that returns a small JSON array (3-5 items) of creative, concise date ideas. Each item must be a JSON object with: title, description (1-2 sentences), placeIds (array of place ids), estimatedCost ($/$$/$$$), duration (short text). Return ONLY valid JSON (no markdown, no explanation).`

// IdeaController proxies idea generation to the text-generation backend so
// its API key never leaves the server, and repairs the model output into a
// strict JSON idea list.
type IdeaController struct {
	cfg *config.AppConfig
}

func NewIdeaController(cfg *config.AppConfig) *IdeaController {
	return &IdeaController{cfg: cfg}
}

// PostIdeas godoc
// @Summary Generate date ideas from candidate places
// @Tags ideas
// @Accept json
// @Produce json
// @Param request body types.IdeasRequest true "Candidate places and filters"
// @Success 200 {object} types.IdeasResponse
// @Router /ideas [post]
func (ic *IdeaController) PostIdeas(c *gin.Context) {
	var req types.IdeasRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Places) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing places data"})
		return
	}

	if ic.cfg.OpenAIAPIKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
		return
	}

	subset := slimPlaces(req.Places)
	subsetJSON, _ := json.Marshal(subset)
	filtersJSON, _ := json.Marshal(req.Filters)
	userPrompt := fmt.Sprintf("Filters: %s\nAvailable Places: %s", filtersJSON, subsetJSON)

	opts := []option.RequestOption{option.WithAPIKey(ic.cfg.OpenAIAPIKey)}
	if ic.cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(ic.cfg.OpenAIBaseURL))
	}
	client := openaigo.NewClient(opts...)

	completion, err := client.Chat.Completions.New(c.Request.Context(), openaigo.ChatCompletionNewParams{
		Model: openaigo.ChatModel(ic.cfg.OpenAIModel),
		Messages: []openaigo.ChatCompletionMessageParamUnion{
			openaigo.SystemMessage(ideasSystemPrompt),
			openaigo.UserMessage(userPrompt),
		},
		Temperature: openaigo.Float(0.7),
		MaxTokens:   openaigo.Int(350),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate ideas", "details": err.Error()})
		return
	}

	raw := ""
	if len(completion.Choices) > 0 {
		raw = completion.Choices[0].Message.Content
	}

	ideas, err := services.ParseIdeas(raw)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to parse AI response", "details": raw})
		return
	}

	c.Header("Cache-Control", "s-maxage=30, stale-while-revalidate=60")
	c.JSON(http.StatusOK, types.IdeasResponse{Ideas: ideas})
}

// slimPlaces bounds the prompt to the first eight places, reduced to the
// fields the model needs.
func slimPlaces(places []types.Place) []types.SlimPlace {
	if len(places) > services.MaxPlacesForIdeas {
		places = places[:services.MaxPlacesForIdeas]
	}
	out := make([]types.SlimPlace, 0, len(places))
	for _, p := range places {
		out = append(out, types.SlimPlace{
			ID:         p.ID,
			Name:       p.Name,
			Types:      p.Types,
			PriceLevel: p.PriceLevel,
			Rating:     p.Rating,
		})
	}
	return out
}
