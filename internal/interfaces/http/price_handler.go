package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/application/dto"
)

// PriceHandler maneja las peticiones HTTP para Price.
type PriceHandler struct {
	finder *catalog.FinderUseCase
	uc     *catalog.PriceUseCase
	report *catalog.PriceListUseCase
}

// NewPriceHandler construye el handler.
func NewPriceHandler(finder *catalog.FinderUseCase, uc *catalog.PriceUseCase, report *catalog.PriceListUseCase) *PriceHandler {
	return &PriceHandler{finder: finder, uc: uc, report: report}
}

// List godoc
// @Summary      Listar precios
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página (base 0)"         default(0)
// @Param        sortBy  query  string  false  "id | amount | currency"  default(id)
// @Success      200     {object}  dto.PageResponse[dto.PriceResponse]
// @Router       /api/prices [get]
func (h *PriceHandler) List(c *fiber.Ctx) error {
	out, err := h.finder.ListPrices(c.UserContext(), c.QueryInt("page", 0), c.Query("sortBy", "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByValue godoc
// @Summary      Buscar precios
// @Description  price_range-MIN-MAX (exclusivo), currency-X, ID numérico o nombre de producto.
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Param        value  path  string  true  "Valor de búsqueda"
// @Success      200    {array}   dto.PriceResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/prices/{value} [get]
func (h *PriceHandler) GetByValue(c *fiber.Ctx) error {
	out, err := h.finder.FindPrices(c.UserContext(), pathValue(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Fijar precio de un producto en una moneda
// @Description  Si ya existe precio para (producto, moneda) se sobrescribe; la respuesta es 201 en ambos casos.
// @Tags         prices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePriceRequest  true  "Producto, monto y moneda"
// @Success      201   {object}  dto.PriceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/prices [post]
func (h *PriceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePriceRequest
	if e := bindJSON(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.CreateOrUpdate(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar precio
// @Tags         prices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del precio"
// @Param        body  body  dto.UpdatePriceRequest  true  "Monto y moneda"
// @Success      200   {object}  dto.PriceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/prices/{id} [put]
func (h *PriceHandler) Update(c *fiber.Ctx) error {
	id, e := paramID(c)
	if e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	var in dto.UpdatePriceRequest
	if e := bindJSON(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.UpdateByID(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar precio
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del precio"
// @Success      200  {object}  dto.PriceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prices/{id} [delete]
func (h *PriceHandler) Delete(c *fiber.Ctx) error {
	id, e := paramID(c)
	if e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.DeleteByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Listado de precios en PDF
// @Tags         prices
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/prices/report.pdf [get]
func (h *PriceHandler) Report(c *fiber.Ctx) error {
	pdf, filename, err := h.report.DownloadPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
