package copilot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"retailbrain/models"
)

// FallbackAnswer is returned whenever text generation is unavailable.
const FallbackAnswer = "AI service unavailable. Showing best recommendations based on current analytics."

var errNoGenerator = errors.New("text generation is not configured")

// Generator produces an answer for a user query grounded by a system context.
// Implementations may fail; the copilot never relies on success.
type Generator interface {
	Generate(ctx context.Context, systemContext, userQuery string) (string, error)
}

// Copilot answers questions about a dataset.
type Copilot struct {
	generator Generator
	budget    Budget
	timeout   time.Duration
	log       zerolog.Logger
}

// New creates a copilot. generator may be nil, in which case every answer is
// the fallback. A zero timeout leaves the caller's deadline in charge.
func New(generator Generator, budget Budget, timeout time.Duration, log zerolog.Logger) *Copilot {
	return &Copilot{generator: generator, budget: budget, timeout: timeout, log: log}
}

// Chat grounds the query in the dataset and asks the generator. Generation
// failures degrade to the fallback answer carrying the same local insights.
func (c *Copilot) Chat(ctx context.Context, ds *models.Dataset, query string) models.CopilotResponse {
	insights := Summarize(ds)
	payload, included := RetrieveContext(ds, query, c.budget)

	used := models.ContextUsed{
		Insights:        insights,
		RowsScanned:     ds.Len(),
		RowsSentToModel: included,
	}

	answer, err := c.generate(ctx, SystemPrompt(ds, insights, payload, included), query)
	if err != nil {
		c.log.Warn().Err(err).Str("query", query).Int("rows_sent", included).Msg("Copilot generation failed, using fallback")
		return models.CopilotResponse{
			Answer:      FallbackAnswer,
			Provider:    models.ProviderFallback,
			Error:       err.Error(),
			ContextUsed: used,
		}
	}

	c.log.Debug().Int("rows_sent", included).Int("payload_bytes", len(payload)).Msg("Copilot answer generated")
	return models.CopilotResponse{
		Answer:      answer,
		Provider:    models.ProviderGenerated,
		ContextUsed: used,
	}
}

func (c *Copilot) generate(ctx context.Context, system, query string) (string, error) {
	if c.generator == nil {
		return "", errNoGenerator
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	answer, err := c.generator.Generate(ctx, system, "User question: "+query)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return "", errors.New("empty answer from text generator")
	}
	return answer, nil
}

// SystemPrompt is the grounding handed to the generator.
func SystemPrompt(ds *models.Dataset, insights models.Insights, payload string, included int) string {
	var columns []string
	if ds != nil {
		columns = ds.Columns
	}
	return fmt.Sprintf(`
You are a retail analytics copilot advising a store manager.
Base every conclusion on the business summary and the data context below.
The retrieval step scanned the whole dataset and kept the most relevant rows within a size budget.
If the data is not enough to answer, say which additional slice of data is needed.

Business summary:
- Total Revenue: %.2f
- Top Product: %s
- Slowest Product: %s
- Low Stock Products: [%s]

Dataset columns: [%s]
Total rows: %d
Rows included after retrieval: %d
Data context (JSON):
%s

Answer with actionable recommendations as bullet points.
`,
		insights.TotalRevenue,
		insights.TopProduct,
		insights.SlowMover,
		strings.Join(insights.LowStockProducts, ", "),
		strings.Join(columns, ", "),
		ds.Len(),
		included,
		payload,
	)
}
