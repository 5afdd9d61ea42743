package handler_test

import (
    "errors"

    "github.com/iliyamo/tourmate/internal/utils"
)

func scopeFromCookie(s *testServer) (string, error) {
    if s.cookie == nil {
        return "", errors.New("no session cookie")
    }
    return utils.ParseSessionToken("test-secret", s.cookie.Value)
}
