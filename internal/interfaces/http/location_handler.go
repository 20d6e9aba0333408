package http

import (
	"github.com/gofiber/fiber/v2"
)

// LocationHandler países y estados para los formularios de dirección.
type LocationHandler struct {
	catalog locationCatalog
}

// NewLocationHandler construye el handler.
func NewLocationHandler(catalog locationCatalog) *LocationHandler {
	return &LocationHandler{catalog: catalog}
}

// Countries godoc
// @Summary      Listar países
// @Tags         locations
// @Produce      json
// @Success      200  {array}  entity.Country
// @Router       /api/locations/countries [get]
func (h *LocationHandler) Countries(c *fiber.Ctx) error {
	return c.JSON(h.catalog.Countries())
}

// States godoc
// @Summary      Listar estados de un país
// @Tags         locations
// @Produce      json
// @Param        country  query  string  false  "Código de país"  default(IN)
// @Success      200  {array}  entity.State
// @Router       /api/locations/states [get]
func (h *LocationHandler) States(c *fiber.Ctx) error {
	return c.JSON(h.catalog.States(c.Query("country", "IN")))
}
