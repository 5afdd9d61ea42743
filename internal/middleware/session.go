package middleware // middleware holds the echo middleware shared by all routes

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tourmate/internal/namespace"
    "github.com/iliyamo/tourmate/internal/utils"
)

// SessionCookie carries the signed session token.
const SessionCookie = "tourmate_session"

// SessionNamespace gives every browser its own namespace.  The session cookie
// holds an HS256 JWT whose subject is the namespace scope; when the cookie is
// missing, expired or forged a fresh scope is issued.  The opened namespace
// and its scope are stored in the context for handlers (see Namespace and
// Scope).  The cookie is marked Secure when the request came over https,
// directly or through a proxy setting X-Forwarded-Proto.
func SessionNamespace(secret string, ttl time.Duration, open namespace.Factory) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            scope := ""
            if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
                if s, err := utils.ParseSessionToken(secret, ck.Value); err == nil {
                    scope = s
                }
            }
            if scope == "" {
                s, err := utils.NewScope()
                if err != nil {
                    c.Logger().Errorf("[session] scope generation failed: %v", err)
                    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session unavailable"})
                }
                tok, err := utils.NewSessionToken(secret, s, ttl)
                if err != nil {
                    c.Logger().Errorf("[session] sign token failed: %v", err)
                    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session unavailable"})
                }
                c.SetCookie(&http.Cookie{
                    Name:     SessionCookie,
                    Value:    tok.Token,
                    Path:     "/",
                    Expires:  tok.Exp,
                    HttpOnly: true,
                    Secure:   c.Scheme() == "https",
                    SameSite: http.SameSiteLaxMode,
                })
                scope = s
            }
            c.Set(scopeKey, scope)
            c.Set(namespaceKey, open(scope))
            return next(c)
        }
    }
}
