package handler

import (
    "math"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tourmate/internal/recommend"
)

// GetRecommendation handles GET /v1/recommendation?budget=N and returns the
// hotel tier for the budget.  A missing or non-numeric budget is a 400.
func GetRecommendation(c echo.Context) error {
    raw := strings.TrimSpace(c.QueryParam("budget"))
    if raw == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "budget required"})
    }
    b, err := strconv.ParseFloat(raw, 64)
    if err != nil || math.IsNaN(b) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid budget"})
    }
    return c.JSON(http.StatusOK, recommend.Recommend(b))
}

// GetTiers handles GET /v1/tiers and lists the whole threshold ladder.
func GetTiers(c echo.Context) error {
    return c.JSON(http.StatusOK, recommend.Tiers())
}
