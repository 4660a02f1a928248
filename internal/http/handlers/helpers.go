package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/http/middleware"
	"github.com/ignatzorin/hvacsite/internal/http/response"
	"github.com/ignatzorin/hvacsite/internal/query"
)

// respondQuery отвечает данными запроса или ошибкой с текстом операции.
func respondQuery[T any](c *gin.Context, res query.Result[T], failure string) {
	if res.IsError() {
		middleware.LogRequestError(c, res.Err)
		response.Error(c, res.Err, failure)
		return
	}
	response.Success(c, res.Data)
}

// respondDetail отвечает 404, если запись не найдена: это не ошибка.
func respondDetail[T any](c *gin.Context, res query.Result[*T], failure, notFound string) {
	if res.IsError() {
		middleware.LogRequestError(c, res.Err)
		response.Error(c, res.Err, failure)
		return
	}
	if res.Data == nil {
		response.NotFound(c, notFound)
		return
	}
	response.Success(c, res.Data)
}

func respondList[T any](c *gin.Context, res query.Result[dto.ListResult[T]], failure string) {
	if res.IsError() {
		middleware.LogRequestError(c, res.Err)
		response.Error(c, res.Err, failure)
		return
	}
	page := res.Data
	if page.Data == nil {
		page.Data = []T{}
	}
	response.List(c, page.Data, page.Total, page.Page, page.Limit)
}

// bindQuery разбирает параметры строки запроса. Неизвестные и пустые параметры означают "без фильтра".
func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return false
	}
	return true
}
