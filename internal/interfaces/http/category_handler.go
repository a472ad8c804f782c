package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/application/dto"
)

// CategoryHandler maneja las peticiones HTTP para Category.
type CategoryHandler struct {
	finder *catalog.FinderUseCase
	uc     *catalog.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(finder *catalog.FinderUseCase, uc *catalog.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{finder: finder, uc: uc}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página (base 0)"  default(0)
// @Param        sortBy  query  string  false  "id | name"        default(id)
// @Success      200     {object}  dto.PageResponse[dto.CategoryResponse]
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.finder.ListCategories(c.UserContext(), c.QueryInt("page", 0), c.Query("sortBy", "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByValue godoc
// @Summary      Buscar categorías por ID o nombre
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        value  path  string  true  "ID numérico o nombre exacto"
// @Success      200    {array}   dto.CategoryResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/categories/{value} [get]
func (h *CategoryHandler) GetByValue(c *fiber.Ctx) error {
	out, err := h.finder.FindCategories(c.UserContext(), pathValue(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear o actualizar categoría por nombre
// @Description  Si ya existe una categoría con ese nombre se actualiza en su lugar; la respuesta es 201 en ambos casos.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Nombre y padre opcional"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
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
// @Summary      Actualizar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID de la categoría"
// @Param        body  body  dto.CategoryRequest  true  "Nombre y padre (nil = raíz)"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, e := paramID(c)
	if e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	var in dto.CategoryRequest
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
// @Summary      Eliminar categoría
// @Description  Las subcategorías directas quedan como raíz.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
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
