package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"deblinger/internal/decklist"
	"deblinger/internal/resolver"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tools exposes decklist conversion to MCP clients.
type Tools struct {
	converter *decklist.Converter
	resolver  *resolver.Resolver
}

// NewTools creates the tool set resolving against r.
func NewTools(r *resolver.Resolver) *Tools {
	return &Tools{
		converter: decklist.NewConverter(r),
		resolver:  r,
	}
}

// NewServer builds an MCP server with every tool registered.
func NewServer(r *resolver.Resolver, version string) *server.MCPServer {
	s := server.NewMCPServer("deblinger", version)
	NewTools(r).Register(s)
	return s
}

// Register adds the tools to s.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(convertDecklistTool(), t.handleConvertDecklist)
	s.AddTool(resolveCardTool(), t.handleResolveCard)
}

func convertDecklistTool() mcp.Tool {
	return mcp.NewTool("convert_decklist",
		mcp.WithDescription("Rewrite a Pokémon TCG decklist so every card points at its first printing. "+
			"Input is the usual export format: section headers (Pokémon:, Trainer:, Energy:) followed by "+
			"'<qty> <name> <SET> <NUMBER>' lines. Returns the converted decklist and the list of changed cards."),
		mcp.WithString("decklist", mcp.Required(), mcp.Description("The decklist text, newline separated")),
	)
}

func resolveCardTool() mcp.Tool {
	return mcp.NewTool("resolve_card",
		mcp.WithDescription("Resolve one card printing to its first printing and report which rule matched."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Card name, e.g. 'Charizard ex'")),
		mcp.WithString("set", mcp.Required(), mcp.Description("Set code, e.g. 'OBF'")),
		mcp.WithString("number", mcp.Required(), mcp.Description("Card number within the set, e.g. '125'")),
		mcp.WithString("card_type", mcp.Description("Section the card is listed under"), mcp.Enum("pokemon", "trainer", "energy")),
	)
}

func (t *Tools) handleConvertDecklist(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := request.GetString("decklist", "")
	if text == "" {
		return mcp.NewToolResultError("decklist is required"), nil
	}

	result, err := t.converter.Convert(text)
	if err != nil {
		return mcp.NewToolResultError(decklist.TableNotLoadedMessage), nil
	}

	return mcp.NewToolResultText(respondJSON(result)), nil
}

func (t *Tools) handleResolveCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	set := request.GetString("set", "")
	number := request.GetString("number", "")
	if name == "" || set == "" || number == "" {
		return mcp.NewToolResultError("name, set and number are required"), nil
	}

	cardType, err := resolver.ParseCardType(request.GetString("card_type", string(resolver.Pokemon)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(respondJSON(t.resolver.Explain(name, set, number, cardType))), nil
}

func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
