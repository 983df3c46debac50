package domain

import (
	gamegrpc "github.com/louisbranch/monsterdex/internal/services/game/api/grpc/game"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools adds every game tool to the MCP server.
func RegisterTools(server *mcp.Server, client gamegrpc.GameServiceClient) {
	mcp.AddTool(server, PlayerRegisterTool(), PlayerRegisterHandler(client))
	mcp.AddTool(server, PlayerProfileTool(), PlayerProfileHandler(client))
	mcp.AddTool(server, ExploreTool(), ExploreHandler(client))
	mcp.AddTool(server, CatchTool(), CatchHandler(client))
	mcp.AddTool(server, BattleWildTool(), BattleWildHandler(client))
	mcp.AddTool(server, BattleGymTool(), BattleGymHandler(client))
	mcp.AddTool(server, BattleAITool(), BattleAIHandler(client))
	mcp.AddTool(server, BattlePlayerTool(), BattlePlayerHandler(client))
	mcp.AddTool(server, MonsterListTool(), MonsterListHandler(client))
	mcp.AddTool(server, MonsterRenameTool(), MonsterRenameHandler(client))
	mcp.AddTool(server, MonsterReleaseTool(), MonsterReleaseHandler(client))
	mcp.AddTool(server, BattleHistoryTool(), BattleHistoryHandler(client))
	mcp.AddTool(server, LeaderboardTool(), LeaderboardHandler(client))
}
