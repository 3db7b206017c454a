package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchGravesTool defines the search_graves MCP tool.
var searchGravesTool = mcp.NewTool("search_graves",
	mcp.WithDescription("Find buried persons by a fragment of their name. Results are sorted by surname, then by plot location."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Part of a first name or surname, case-insensitive"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 20)"),
	),
)

// getGraveTool defines the get_grave MCP tool.
var getGraveTool = mcp.NewTool("get_grave",
	mcp.WithDescription("Get everyone buried at one plot, with dates, plot address, coordinates and photo paths."),
	mcp.WithString("key",
		mcp.Required(),
		mcp.Description("Plot key as returned by search_graves, e.g. A_II_3"),
	),
)

// upcomingAnniversariesTool defines the upcoming_anniversaries MCP tool.
var upcomingAnniversariesTool = mcp.NewTool("upcoming_anniversaries",
	mcp.WithDescription("List death anniversaries falling within the next few days."),
	mcp.WithNumber("days",
		mcp.Description("How many days ahead to look (default from configuration)"),
	),
	mcp.WithString("date",
		mcp.Description("Start date as YYYY-MM-DD (default today)"),
	),
)

// catalogStatusTool defines the catalog_status MCP tool.
var catalogStatusTool = mcp.NewTool("catalog_status",
	mcp.WithDescription("Report how many plots and persons are loaded and whether the last reload failed."),
)
