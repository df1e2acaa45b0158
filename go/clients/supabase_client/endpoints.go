package supabase_client

const (
	RestPath = "/rest/v1"
	AuthPath = "/auth/v1"

	// Auth endpoints
	PasswordGrantEndpoint = AuthPath + "/token?grant_type=password"
	UserEndpoint          = AuthPath + "/user"
	LogoutEndpoint        = AuthPath + "/logout"

	// Tables
	ProDataTable       = "pro_data"
	GameStateTable     = "game_state"
	UpcomingGamesTable = "upcoming_games"
	ProfilesTable      = "profiles"

	// Headers
	APIKeyHeader        = "apikey"
	AuthorizationHeader = "Authorization"
	PreferHeader        = "Prefer"
	AcceptHeader        = "Accept"

	singleObjectMediaType = "application/vnd.pgrst.object+json"
	noRowsCode            = "PGRST116"
)
