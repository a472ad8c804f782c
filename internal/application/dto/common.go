package dto

// PageResponse página de resultados de un listado.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
