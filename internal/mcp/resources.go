// ABOUTME: MCP resource implementations for the workout journal.
// ABOUTME: Provides gains://logs/recent and gains://metrics/recent resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	recentLogsURI    = "gains://logs/recent"
	recentMetricsURI = "gains://metrics/recent"
	recentLogsLimit  = 10
	recentMetrics    = 50
)

func (s *Server) registerResources() {
	// gains://logs/recent - last sessions with everything extracted from them
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentLogsURI,
		Name:        "Recent Workout Logs",
		Description: "Last 10 workout logs with exercises, notes and metrics",
		MIMEType:    "application/json",
	}, s.handleRecentLogsResource)

	// gains://metrics/recent - chronological metrics feed
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentMetricsURI,
		Name:        "Recent Daily Metrics",
		Description: "Last 50 daily metrics in chronological order",
		MIMEType:    "application/json",
	}, s.handleRecentMetricsResource)
}

// Resource handlers

func (s *Server) handleRecentLogsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	logs, err := s.repo.ListLogs(ctx, recentLogsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	details := make([]logDetailView, 0, len(logs))
	for _, w := range logs {
		d, err := s.repo.GetLogDetail(ctx, w.ID.String())
		if err != nil {
			return nil, fmt.Errorf("failed to load log %s: %w", w.ID, err)
		}
		details = append(details, toLogDetailView(d))
	}

	return jsonResource(recentLogsURI, map[string]any{
		"count": len(details),
		"logs":  details,
	})
}

func (s *Server) handleRecentMetricsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	feed, err := s.repo.MetricsFeed(ctx, nil, recentMetrics)
	if err != nil {
		return nil, fmt.Errorf("failed to list metrics: %w", err)
	}

	metrics := toMetricViews(feed)
	return jsonResource(recentMetricsURI, map[string]any{
		"count":   len(metrics),
		"metrics": metrics,
	})
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
