package controllers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/GritGym/internal/pkg/membership"
	"github.com/ManuelReschke/GritGym/internal/pkg/statistics"
)

// MainController renders the public landing page
type MainController struct {
	catalog membership.Catalog
	counter statistics.StatusCounter
}

func NewMainController(catalog membership.Catalog, counter statistics.StatusCounter) *MainController {
	return &MainController{catalog: catalog, counter: counter}
}

// planCard is a plan prepared for the pricing section
type planCard struct {
	membership.MembershipPlan
	PriceText    string
	OriginalText string
	CTA          string
}

func (mc *MainController) HandleStart(c *fiber.Ctx) error {
	plans := mc.catalog.Plans()
	cards := make([]planCard, 0, len(plans))
	for _, p := range plans {
		cards = append(cards, planCard{
			MembershipPlan: p,
			PriceText:      p.PriceLabel(),
			OriginalText:   p.OriginalPriceLabel(),
			CTA:            "/membership?plan=" + url.QueryEscape(p.Name),
		})
	}

	return render(c, "index", "", fiber.Map{
		"Plans": cards,
		"Stats": statistics.GetStatisticsData(c.UserContext(), mc.counter),
	})
}

// HandleNotFound renders the error page for unknown routes
func HandleNotFound(c *fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)
	return render(c, "error", "Not Found", fiber.Map{
		"Code":    fiber.StatusNotFound,
		"Message": "The page you are looking for does not exist.",
	})
}
