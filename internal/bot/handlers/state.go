package handlers

// Conversation states kept in redis between messages.
const (
	StateIdle              = ""
	StateAwaitingSearch    = "awaiting_search"
	StateAwaitingSubscribe = "awaiting_subscribe"
)

func getUserState(ctx *Context, userID int64) (string, error) {
	dbCtx, cancel := ctx.timeout()
	defer cancel()
	return ctx.Cache.GetUserState(dbCtx, userID)
}

func setUserState(ctx *Context, userID int64, state string) error {
	dbCtx, cancel := ctx.timeout()
	defer cancel()
	return ctx.Cache.SetUserState(dbCtx, userID, state)
}

func clearUserState(ctx *Context, userID int64) error {
	dbCtx, cancel := ctx.timeout()
	defer cancel()
	return ctx.Cache.DeleteUserState(dbCtx, userID)
}
