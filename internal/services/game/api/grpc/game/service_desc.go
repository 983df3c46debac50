package game

import (
	"context"

	platformgrpc "github.com/louisbranch/monsterdex/internal/platform/grpc"
	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "monsterdex.game.v1.GameService"

// Full method names.
const (
	RegisterPlayerMethod   = "/" + ServiceName + "/RegisterPlayer"
	GetProfileMethod       = "/" + ServiceName + "/GetProfile"
	ExploreMethod          = "/" + ServiceName + "/Explore"
	CatchMethod            = "/" + ServiceName + "/Catch"
	BattleWildMethod       = "/" + ServiceName + "/BattleWild"
	BattlePlayerMethod     = "/" + ServiceName + "/BattlePlayer"
	BattleGymMethod        = "/" + ServiceName + "/BattleGym"
	BattleAIMethod         = "/" + ServiceName + "/BattleAI"
	ListMonstersMethod     = "/" + ServiceName + "/ListMonsters"
	RenameMonsterMethod    = "/" + ServiceName + "/RenameMonster"
	ReleaseMonsterMethod   = "/" + ServiceName + "/ReleaseMonster"
	ListBattlesMethod      = "/" + ServiceName + "/ListBattles"
	LeaderboardMethod      = "/" + ServiceName + "/Leaderboard"
	ListAchievementsMethod = "/" + ServiceName + "/ListAchievements"
)

// GameServiceServer is the server API for GameService.
type GameServiceServer interface {
	RegisterPlayer(context.Context, *RegisterPlayerRequest) (*RegisterPlayerResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
	Explore(context.Context, *ExploreRequest) (*ExploreResponse, error)
	Catch(context.Context, *CatchRequest) (*CatchResponse, error)
	BattleWild(context.Context, *BattleRequest) (*BattleResponse, error)
	BattlePlayer(context.Context, *BattleRequest) (*BattleResponse, error)
	BattleGym(context.Context, *BattleRequest) (*BattleResponse, error)
	BattleAI(context.Context, *BattleRequest) (*BattleResponse, error)
	ListMonsters(context.Context, *ListMonstersRequest) (*ListMonstersResponse, error)
	RenameMonster(context.Context, *RenameMonsterRequest) (*RenameMonsterResponse, error)
	ReleaseMonster(context.Context, *ReleaseMonsterRequest) (*ReleaseMonsterResponse, error)
	ListBattles(context.Context, *ListBattlesRequest) (*ListBattlesResponse, error)
	Leaderboard(context.Context, *LeaderboardRequest) (*LeaderboardResponse, error)
	ListAchievements(context.Context, *ListAchievementsRequest) (*ListAchievementsResponse, error)
}

// ServiceDesc describes GameService for grpc.Server registration.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GameServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterPlayer", Handler: unaryHandler(RegisterPlayerMethod, GameServiceServer.RegisterPlayer)},
		{MethodName: "GetProfile", Handler: unaryHandler(GetProfileMethod, GameServiceServer.GetProfile)},
		{MethodName: "Explore", Handler: unaryHandler(ExploreMethod, GameServiceServer.Explore)},
		{MethodName: "Catch", Handler: unaryHandler(CatchMethod, GameServiceServer.Catch)},
		{MethodName: "BattleWild", Handler: unaryHandler(BattleWildMethod, GameServiceServer.BattleWild)},
		{MethodName: "BattlePlayer", Handler: unaryHandler(BattlePlayerMethod, GameServiceServer.BattlePlayer)},
		{MethodName: "BattleGym", Handler: unaryHandler(BattleGymMethod, GameServiceServer.BattleGym)},
		{MethodName: "BattleAI", Handler: unaryHandler(BattleAIMethod, GameServiceServer.BattleAI)},
		{MethodName: "ListMonsters", Handler: unaryHandler(ListMonstersMethod, GameServiceServer.ListMonsters)},
		{MethodName: "RenameMonster", Handler: unaryHandler(RenameMonsterMethod, GameServiceServer.RenameMonster)},
		{MethodName: "ReleaseMonster", Handler: unaryHandler(ReleaseMonsterMethod, GameServiceServer.ReleaseMonster)},
		{MethodName: "ListBattles", Handler: unaryHandler(ListBattlesMethod, GameServiceServer.ListBattles)},
		{MethodName: "Leaderboard", Handler: unaryHandler(LeaderboardMethod, GameServiceServer.Leaderboard)},
		{MethodName: "ListAchievements", Handler: unaryHandler(ListAchievementsMethod, GameServiceServer.ListAchievements)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "monsterdex/game/v1/game.json",
}

// RegisterGameServiceServer registers srv on s.
func RegisterGameServiceServer(s grpc.ServiceRegistrar, srv GameServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unaryHandler[Req, Resp any](fullMethod string, call func(GameServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GameServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(GameServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// GameServiceClient is the client API for GameService.
type GameServiceClient interface {
	RegisterPlayer(ctx context.Context, in *RegisterPlayerRequest, opts ...grpc.CallOption) (*RegisterPlayerResponse, error)
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error)
	Explore(ctx context.Context, in *ExploreRequest, opts ...grpc.CallOption) (*ExploreResponse, error)
	Catch(ctx context.Context, in *CatchRequest, opts ...grpc.CallOption) (*CatchResponse, error)
	BattleWild(ctx context.Context, in *BattleRequest, opts ...grpc.CallOption) (*BattleResponse, error)
	BattlePlayer(ctx context.Context, in *BattleRequest, opts ...grpc.CallOption) (*BattleResponse, error)
	BattleGym(ctx context.Context, in *BattleRequest, opts ...grpc.CallOption) (*BattleResponse, error)
	BattleAI(ctx context.Context, in *BattleRequest, opts ...grpc.CallOption) (*BattleResponse, error)
	ListMonsters(ctx context.Context, in *ListMonstersRequest, opts ...grpc.CallOption) (*ListMonstersResponse, error)
	RenameMonster(ctx context.Context, in *RenameMonsterRequest, opts ...grpc.CallOption) (*RenameMonsterResponse, error)
	ReleaseMonster(ctx context.Context, in *ReleaseMonsterRequest, opts ...grpc.CallOption) (*ReleaseMonsterResponse, error)
	ListBattles(ctx context.Context, in *ListBattlesRequest, opts ...grpc.CallOption) (*ListBattlesResponse, error)
	Leaderboard(ctx context.Context, in *LeaderboardRequest, opts ...grpc.CallOption) (*LeaderboardResponse, error)
	ListAchievements(ctx context.Context, in *ListAchievementsRequest, opts ...grpc.CallOption) (*ListAchievementsResponse, error)
}

type gameServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewGameServiceClient returns a client that speaks the JSON codec on cc.
func NewGameServiceClient(cc grpc.ClientConnInterface) GameServiceClient {
	return &gameServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(platformgrpc.JSONCodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gameServiceClient) RegisterPlayer(ctx context.Context, in *RegisterPlayerRequest, opts ...grpc.CallOption) (*RegisterPlayerResponse, error) {
	return invoke[RegisterPlayerResponse](ctx, c.cc, RegisterPlayerMethod, in, opts)
}

func (c *gameServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error) {
	return invoke[GetProfileResponse](ctx, c.cc, GetProfileMethod, in, opts)
}

func (c *gameServiceClient) Explore(ctx context.Context, in *ExploreRequest, opts ...grpc.CallOption) (*ExploreResponse, error) {
	return invoke[ExploreResponse](ctx, c.cc, ExploreMethod, in, opts)
}

func (c *gameServiceClient) Catch(ctx context.Context, in *CatchRequest, opts ...grpc.CallOption) (*CatchResponse, error) {
	return invoke[CatchResponse](ctx, c.cc, CatchMethod, in, opts)
}

func (c *gameServiceClient) BattleWild(ctx context.Context, in *BattleRequest, opts ...grpc.CallOption) (*BattleResponse, error) {
	return invoke[BattleResponse](ctx, c.cc, BattleWildMethod, in, opts)
}

func (c *gameServiceClient) BattlePlayer(ctx context.Context, in *BattleRequest, opts ...grpc.CallOption) (*BattleResponse, error) {
	return invoke[BattleResponse](ctx, c.cc, BattlePlayerMethod, in, opts)
}

func (c *gameServiceClient) BattleGym(ctx context.Context, in *BattleRequest, opts ...grpc.CallOption) (*BattleResponse, error) {
	return invoke[BattleResponse](ctx, c.cc, BattleGymMethod, in, opts)
}

func (c *gameServiceClient) BattleAI(ctx context.Context, in *BattleRequest, opts ...grpc.CallOption) (*BattleResponse, error) {
	return invoke[BattleResponse](ctx, c.cc, BattleAIMethod, in, opts)
}

func (c *gameServiceClient) ListMonsters(ctx context.Context, in *ListMonstersRequest, opts ...grpc.CallOption) (*ListMonstersResponse, error) {
	return invoke[ListMonstersResponse](ctx, c.cc, ListMonstersMethod, in, opts)
}

func (c *gameServiceClient) RenameMonster(ctx context.Context, in *RenameMonsterRequest, opts ...grpc.CallOption) (*RenameMonsterResponse, error) {
	return invoke[RenameMonsterResponse](ctx, c.cc, RenameMonsterMethod, in, opts)
}

func (c *gameServiceClient) ReleaseMonster(ctx context.Context, in *ReleaseMonsterRequest, opts ...grpc.CallOption) (*ReleaseMonsterResponse, error) {
	return invoke[ReleaseMonsterResponse](ctx, c.cc, ReleaseMonsterMethod, in, opts)
}

func (c *gameServiceClient) ListBattles(ctx context.Context, in *ListBattlesRequest, opts ...grpc.CallOption) (*ListBattlesResponse, error) {
	return invoke[ListBattlesResponse](ctx, c.cc, ListBattlesMethod, in, opts)
}

func (c *gameServiceClient) Leaderboard(ctx context.Context, in *LeaderboardRequest, opts ...grpc.CallOption) (*LeaderboardResponse, error) {
	return invoke[LeaderboardResponse](ctx, c.cc, LeaderboardMethod, in, opts)
}

func (c *gameServiceClient) ListAchievements(ctx context.Context, in *ListAchievementsRequest, opts ...grpc.CallOption) (*ListAchievementsResponse, error) {
	return invoke[ListAchievementsResponse](ctx, c.cc, ListAchievementsMethod, in, opts)
}
