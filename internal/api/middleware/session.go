package middleware

import (
	goerrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/session"
)

const (
	// SessionHeader lets API clients carry the session id without cookies
	SessionHeader = "X-Session-ID"
	// SessionCookie is the browser session cookie
	SessionCookie = "storefront_session"

	sessionKey      = "session"
	sessionStoreKey = "session_store"
)

// SessionMiddleware attaches the visitor's session to the request, creating a
// fresh one when the id is missing or unknown.
func SessionMiddleware(store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id, _ = c.Cookie(SessionCookie)
		}

		var sess *session.Session
		if id != "" {
			loaded, err := store.Load(c.Request.Context(), id)
			switch {
			case err == nil:
				sess = loaded
			case goerrors.Is(err, session.ErrNotFound):
			default:
				logger.Error("Failed to load session", zap.String("session_id", id), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				c.Abort()
				return
			}
		}
		if sess == nil {
			sess = session.New()
			if err := store.Save(c.Request.Context(), sess); err != nil {
				logger.Error("Failed to create session", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				c.Abort()
				return
			}
		}

		setSessionID(c, sess.ID)
		c.Set(sessionKey, sess)
		c.Set(sessionStoreKey, store)
		c.Next()
	}
}

func setSessionID(c *gin.Context, id string) {
	c.Header(SessionHeader, id)
	c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
}

// GetSession retrieves the session from context
func GetSession(c *gin.Context) (*session.Session, bool) {
	val, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := val.(*session.Session)
	return sess, ok
}

// SaveSession writes the request's session through to the store
func SaveSession(c *gin.Context) error {
	sess, ok := GetSession(c)
	if !ok {
		return goerrors.New("no session in context")
	}
	val, exists := c.Get(sessionStoreKey)
	if !exists {
		return goerrors.New("no session store in context")
	}
	return val.(session.Store).Save(c.Request.Context(), sess)
}

// RotateSession moves the request's session to a fresh id and drops the old
// one. Called when the session's privilege changes.
func RotateSession(c *gin.Context) error {
	sess, ok := GetSession(c)
	if !ok {
		return goerrors.New("no session in context")
	}
	val, exists := c.Get(sessionStoreKey)
	if !exists {
		return goerrors.New("no session store in context")
	}
	store := val.(session.Store)

	previous := sess.ID
	sess.ID = uuid.NewString()
	if err := store.Save(c.Request.Context(), sess); err != nil {
		return err
	}
	if err := store.Delete(c.Request.Context(), previous); err != nil {
		return err
	}
	setSessionID(c, sess.ID)
	return nil
}
