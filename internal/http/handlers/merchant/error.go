package merchant

import (
	"errors"
	"strconv"

	handlershared "github.com/storeforge-next/internal/http/handlers/shared"
	"github.com/storeforge-next/internal/http/response"
	"github.com/storeforge-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var storeErrorRules = []mappedHandlerError{
	{target: service.ErrStoreNotFound, code: response.CodeNotFound, msg: "store not found"},
	{target: service.ErrStoreInvalid, code: response.CodeBadRequest, msg: "store input invalid"},
	{target: service.ErrSlugExhausted, code: response.CodeConflict, msg: "slug candidates exhausted"},
}

var categoryErrorRules = []mappedHandlerError{
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, msg: "category not found"},
	{target: service.ErrCategoryInvalid, code: response.CodeBadRequest, msg: "category input invalid"},
	{target: service.ErrCategoryInUse, code: response.CodeConflict, msg: "category has products"},
	{target: service.ErrSlugExists, code: response.CodeConflict, msg: "slug already exists"},
}

var productErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrProductInvalid, code: response.CodeBadRequest, msg: "product input invalid"},
	{target: service.ErrCategoryNotFound, code: response.CodeBadRequest, msg: "category not found"},
	{target: service.ErrSlugExists, code: response.CodeConflict, msg: "slug already exists"},
}

var discountErrorRules = []mappedHandlerError{
	{target: service.ErrDiscountNotFound, code: response.CodeNotFound, msg: "discount not found"},
	{target: service.ErrDiscountInvalid, code: response.CodeBadRequest, msg: "discount input invalid"},
	{target: service.ErrDiscountCodeExists, code: response.CodeConflict, msg: "discount code already exists"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, msg: "order status transition invalid"},
}

// parseUintParam 解析路径中的数字参数。
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		respondError(c, response.CodeBadRequest, name+" invalid", nil)
		return 0, false
	}
	return uint(value), true
}
