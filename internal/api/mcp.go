package api

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/retrieval"
)

// NewMCPServer creates an MCP server exposing the chat bot and the
// similarity and search queries as tools.
func NewMCPServer(deps Deps, version string) *server.MCPServer {
	if deps.SimilarTopN <= 0 {
		deps.SimilarTopN = 10
	}
	if deps.SearchTopN <= 0 {
		deps.SearchTopN = 5
	}

	s := server.NewMCPServer(
		"flickfusion",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("flickfusion recommends movies from a fixed catalogue by genre, mood, occasion, person, year or similarity."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("recommend",
			mcp.WithDescription("Ask the movie bot in plain language, e.g. 'movies like Inception' or 'I feel sad'."),
			mcp.WithString("message", mcp.Description("The request text"), mcp.Required()),
			mcp.WithString("session_id", mcp.Description("Conversation session; a new one is created when empty")),
		),
		mcpRecommend(deps),
	)

	s.AddTool(
		mcp.NewTool("similar_movies",
			mcp.WithDescription("List the catalogue movies most similar to a title."),
			mcp.WithString("title", mcp.Description("Movie title"), mcp.Required()),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 10)")),
		),
		mcpSimilar(deps),
	)

	s.AddTool(
		mcp.NewTool("search_movies",
			mcp.WithDescription("Full-text search over movie titles and overviews."),
			mcp.WithString("query", mcp.Description("Search terms"), mcp.Required()),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 5)")),
		),
		mcpSearch(deps),
	)

	if deps.Journal != nil {
		s.AddResource(
			mcp.NewResource(
				"flickfusion://recent",
				"Recent Interactions",
				mcp.WithResourceDescription("Last 10 journaled chat turns"),
				mcp.WithMIMEType("application/json"),
			),
			mcpResourceRecent(deps),
		)
	}

	return s
}

func mcpRecommend(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mcpCallsTotal.WithLabelValues("recommend").Inc()
		message, err := req.RequireString("message")
		if err != nil {
			return mcpError("message is required"), nil
		}
		session := req.GetString("session_id", "")
		if session == "" {
			session = "mcp-" + uuid.NewString()
		}
		return mcpText(deps.Bot.ProcessQuery(ctx, message, session)), nil
	}
}

func mcpSimilar(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mcpCallsTotal.WithLabelValues("similar_movies").Inc()
		title, err := req.RequireString("title")
		if err != nil {
			return mcpError("title is required"), nil
		}
		limit := clampLimit(req.GetInt("limit", deps.SimilarTopN), deps.SimilarTopN)

		neighbors, err := deps.Index.NearestNeighbors(title, limit)
		if errors.Is(err, retrieval.ErrNotFound) {
			return mcpError(fmt.Sprintf("movie %q not found", title)), nil
		}
		if err != nil {
			return mcpError(fmt.Sprintf("similar movies failed: %v", err)), nil
		}

		views := make([]MovieView, len(neighbors))
		for i, n := range neighbors {
			views[i] = movieView(n.Movie)
			score := n.Score
			views[i].Score = &score
		}
		return mcpJSON(views)
	}
}

func mcpSearch(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mcpCallsTotal.WithLabelValues("search_movies").Inc()
		query, err := req.RequireString("query")
		if err != nil {
			return mcpError("query is required"), nil
		}
		limit := clampLimit(req.GetInt("limit", deps.SearchTopN), deps.SearchTopN)

		res, err := deps.Engine.Search(ctx, query, limit)
		if err != nil {
			return mcpError(fmt.Sprintf("search failed: %v", err)), nil
		}
		return mcpJSON(movieViews(res.Movies))
	}
}

func mcpResourceRecent(deps Deps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		interactions, err := deps.Journal.GetRecentInteractions(ctx, 10)
		if err != nil {
			return nil, fmt.Errorf("failed to get recent interactions: %w", err)
		}

		type interactionSummary struct {
			ID        string `json:"id"`
			CreatedAt string `json:"created_at"`
			Query     string `json:"query"`
			Intent    string `json:"intent"`
		}

		summaries := make([]interactionSummary, len(interactions))
		for i, ix := range interactions {
			query := ix.UserQuery
			if utf8.RuneCountInString(query) > 200 {
				runes := []rune(query)
				query = string(runes[:200]) + "..."
			}
			summaries[i] = interactionSummary{
				ID:        ix.ID,
				CreatedAt: ix.CreatedAt.Format(time.RFC3339),
				Query:     query,
				Intent:    ix.Intent,
			}
		}

		b, err := json.Marshal(summaries)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal interactions: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func clampLimit(v, def int) int {
	if v <= 0 {
		return def
	}
	if v > 50 {
		return 50
	}
	return v
}

func mcpJSON(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcpError(fmt.Sprintf("failed to marshal results: %v", err)), nil
	}
	return mcpText(string(b)), nil
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
