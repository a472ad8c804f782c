package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/application/dto"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	finder *catalog.FinderUseCase
	uc     *catalog.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(finder *catalog.FinderUseCase, uc *catalog.ProductUseCase) *ProductHandler {
	return &ProductHandler{finder: finder, uc: uc}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página (base 0)"  default(0)
// @Param        sortBy  query  string  false  "id | name"        default(id)
// @Success      200     {object}  dto.PageResponse[dto.ProductResponse]
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.finder.ListProducts(c.UserContext(), c.QueryInt("page", 0), c.Query("sortBy", "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByValue godoc
// @Summary      Buscar productos por ID, categoría (category_id-N) o nombre
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        value  path  string  true  "Valor de búsqueda"
// @Success      200    {array}   dto.ProductResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/products/{value} [get]
func (h *ProductHandler) GetByValue(c *fiber.Ctx) error {
	out, err := h.finder.FindProducts(c.UserContext(), pathValue(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Nombre y categoría existente"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if e := bindJSON(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Renombrar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Nuevo nombre"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, e := paramID(c)
	if e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	var in dto.UpdateProductRequest
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
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
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
