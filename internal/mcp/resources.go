// ABOUTME: MCP resource implementations for the nutrition tracker.
// ABOUTME: Provides nutri://today, nutri://week, and nutri://catalog resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// nutri://today - Meals and totals for the current UTC day
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "nutri://today",
		Name:        "Today's Meals",
		Description: "Meals logged today with per-meal and daily macro totals",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// nutri://week - Energy per day for the current week
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "nutri://week",
		Name:        "This Week",
		Description: "Energy per day Monday to Sunday plus seven-day macro totals",
		MIMEType:    "application/json",
	}, s.handleWeekResource)

	// nutri://catalog - Every food with its per-100g macros
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "nutri://catalog",
		Name:        "Food Catalog",
		Description: "All foods with macros per 100 g",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	summary, err := s.macros.GetDailySummary(ctx, s.today())
	if err != nil {
		return nil, fmt.Errorf("failed to total today: %w", err)
	}

	day := toDayView(summary)
	return jsonResource("nutri://today", map[string]interface{}{
		"date":  day.Date,
		"meals": day.Meals,
		"total": day.Total,
		"count": len(day.Meals),
	})
}

func (s *Server) handleWeekResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	days, err := s.macros.GetCurrentWeekMacros(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total week: %w", err)
	}

	lastSeven, err := s.macros.GetWeeklyMacros(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to total last seven days: %w", err)
	}

	return jsonResource("nutri://week", map[string]interface{}{
		"days":            days,
		"last_seven_days": lastSeven,
	})
}

func (s *Server) handleCatalogResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	foods, err := s.catalog.GetFoodItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}

	return jsonResource("nutri://catalog", map[string]interface{}{
		"foods": toFoodViews(foods),
		"count": len(foods),
	})
}
