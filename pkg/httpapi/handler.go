package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skillswap-forms/pkg/forms"
	"skillswap-forms/pkg/logger"
	"skillswap-forms/pkg/validator"
)

// Handler 表单接口
// 提供表单定义下发与验证引擎的调用入口，不做持久化
type Handler struct {
	registry *forms.Registry
	logger   *zap.Logger
}

// NewHandler 创建处理器
func NewHandler(registry *forms.Registry, l *zap.Logger) *Handler {
	return &Handler{registry: registry, logger: logger.OrNop(l)}
}

// NewRouter 创建 gin 路由
func NewRouter(registry *forms.Registry, l *zap.Logger) *gin.Engine {
	l = logger.OrNop(l)
	h := NewHandler(registry, l)

	r := gin.New()
	r.Use(RequestID(), AccessLog(l), Recovery(l))
	h.Register(r)
	return r
}

// Register 注册路由
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.health)

	api := r.Group("/api/forms")
	api.GET("", h.list)
	api.GET("/:name", h.get)
	api.POST("/:name/validate", h.validate)
	api.POST("/:name/submit", h.submit)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"forms": h.registry.Names()})
}

func (h *Handler) get(c *gin.Context) {
	form, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, form)
}

// validate 验证整张表单；带 field 查询参数时只验证单个字段（失焦场景）
func (h *Handler) validate(c *gin.Context) {
	form, ok := h.lookup(c)
	if !ok {
		return
	}
	values, ok := h.bindValues(c)
	if !ok {
		return
	}

	engine := h.registry.Engine()
	if id := c.Query("field"); id != "" {
		if _, exists := form.Field(id); !exists {
			c.JSON(http.StatusNotFound, errorBody(fmt.Sprintf("unknown field '%s'", id)))
			return
		}
		c.JSON(http.StatusOK, gin.H{"field": id, "result": engine.ValidateField(form, id, values)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": form.Name, "results": engine.Validate(form, values)})
}

// submit 提交检查，未通过时返回 422
func (h *Handler) submit(c *gin.Context) {
	form, ok := h.lookup(c)
	if !ok {
		return
	}
	values, ok := h.bindValues(c)
	if !ok {
		return
	}

	res := h.registry.Engine().SubmitCheck(form, values)
	if !res.AllValid {
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) lookup(c *gin.Context) (*validator.FormSpec, bool) {
	form, err := h.registry.Get(c.Param("name"))
	if err != nil {
		if errors.Is(err, forms.ErrFormNotFound) {
			c.JSON(http.StatusNotFound, errorBody(err.Error()))
			return nil, false
		}
		h.logger.Error("查询表单失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody("internal error"))
		return nil, false
	}
	return form, true
}

// bindValues 读取字段值：JSON 对象、url-encoded 或 multipart 表单
func (h *Handler) bindValues(c *gin.Context) (validator.Values, bool) {
	values, err := readValues(c)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		return nil, false
	}
	return values, true
}

func readValues(c *gin.Context) (validator.Values, error) {
	switch ct := c.ContentType(); {
	case strings.HasPrefix(ct, gin.MIMEJSON):
		return readJSONValues(c)
	case ct == gin.MIMEMultipartPOSTForm:
		if _, err := c.MultipartForm(); err != nil {
			return nil, fmt.Errorf("invalid multipart body: %w", err)
		}
	default:
		if err := c.Request.ParseForm(); err != nil {
			return nil, fmt.Errorf("invalid form body: %w", err)
		}
	}

	// 只取请求体中的值，查询参数不参与验证
	values := make(validator.Values, len(c.Request.PostForm))
	for k, vs := range c.Request.PostForm {
		if len(vs) > 0 {
			values[k] = vs[0]
		}
	}
	return values, nil
}

// readJSONValues 数字按原文保留，超过 2^53 的 id 不会丢失精度
func readJSONValues(c *gin.Context) (validator.Values, error) {
	if c.Request.Body == nil {
		return nil, errors.New("invalid json body: empty body")
	}
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid json body: %w", err)
	}
	values := make(validator.Values, len(raw))
	for k, v := range raw {
		s, err := stringify(v)
		if err != nil {
			return nil, fmt.Errorf("field '%s': %w", k, err)
		}
		values[k] = s
	}
	return values, nil
}

// stringify 将 JSON 标量转换为字段值，null 视为空字符串
func stringify(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	}
	return "", errors.New("value must be a scalar")
}

func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}
