package models

// Ключи gin.Context, выставляемые AuthMiddleware.
const (
	CtxKeyUserID    = "user_id"
	CtxKeyUserEmail = "user_email"
	CtxKeySessionID = "session_id"
)
