package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pitak-order-api/internal/dto"
	"pitak-order-api/internal/line"
	"pitak-order-api/internal/notion"
	"pitak-order-api/internal/pdf"
	"pitak-order-api/internal/service"
	"pitak-order-api/internal/slips"
)

type OrderController struct {
	Service *service.OrderService
	Slips   *slips.Store
	Line    *line.Client
	Notion  *notion.Client
}

func NewOrderController(s *service.OrderService, sl *slips.Store, ln *line.Client, nc *notion.Client) *OrderController {
	return &OrderController{Service: s, Slips: sl, Line: ln, Notion: nc}
}

// respondError maps business errors onto the envelope and an HTTP
// status. Messages are in Thai, the storefront's operating language.
func respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		env := dto.Fail("VALIDATION_ERROR", "ข้อมูลไม่ครบถ้วน")
		env.Data = ve.Fields
		c.JSON(http.StatusBadRequest, env)
	case errors.Is(err, service.ErrDuplicateOrder):
		c.JSON(http.StatusConflict, dto.Fail("DUPLICATE_ORDER", "Order ID ซ้ำ"))
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, dto.Fail("NOT_FOUND", "ไม่พบ Order"))
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, dto.Fail("INVALID_STATUS", "สถานะไม่ถูกต้อง"))
	case errors.Is(err, service.ErrFileRequired):
		c.JSON(http.StatusBadRequest, dto.Fail("FILE_REQUIRED", "กรุณาแนบไฟล์สลิป"))
	case errors.Is(err, slips.ErrBadFileType):
		c.JSON(http.StatusBadRequest, dto.Fail("INVALID_FILE_TYPE", "อนุญาตเฉพาะ JPG, PNG, PDF"))
	case errors.Is(err, notion.ErrUnavailable):
		c.JSON(http.StatusInternalServerError, dto.Fail("DB_ERROR", "Database not connected"))
	default:
		zap.L().Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.Fail("SERVER_ERROR", err.Error()))
	}
}

// GET /api/health
func (ctl *OrderController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OK(gin.H{
		"status": "ok",
		"notion": ctl.Notion.Available(),
		"line":   ctl.Line.Configured(),
		"time":   time.Now().UTC().Format(time.RFC3339),
	}))
}

// POST /api/orders
func (ctl *OrderController) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("VALIDATION_ERROR", "ข้อมูลไม่ครบถ้วน"))
		return
	}

	order, err := ctl.Service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(dto.FromOrder(order)))
}

// GET /api/orders/:orderId
func (ctl *OrderController) GetOrder(c *gin.Context) {
	order, err := ctl.Service.GetByOrderID(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.FromOrder(order)))
}

// POST /api/orders/:orderId/slip — multipart field "slip"
func (ctl *OrderController) UploadSlip(c *gin.Context) {
	orderID := c.Param("orderId")

	// Reject unknown orders before touching the file store.
	if _, err := ctl.Service.GetByOrderID(c.Request.Context(), orderID); err != nil {
		respondError(c, err)
		return
	}

	file, err := c.FormFile("slip")
	if err != nil {
		respondError(c, service.ErrFileRequired)
		return
	}
	if file.Size > slips.MaxFileSize {
		c.JSON(http.StatusBadRequest, dto.Fail("FILE_TOO_LARGE", "ไฟล์ต้องไม่เกิน 5MB"))
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer src.Close()

	slipURL, err := ctl.Slips.Save(orderID, file.Filename, src)
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := ctl.Service.AttachSlip(c.Request.Context(), orderID, slipURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(gin.H{
		"orderId": order.OrderID,
		"slipUrl": order.SlipURL,
	}))
}

// GET /api/orders — admin. The summary is a projection over the
// fetched list, not a store query.
func (ctl *OrderController) ListOrders(c *gin.Context) {
	orders, err := ctl.Service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.FromOrder(o))
	}

	c.JSON(http.StatusOK, dto.OK(gin.H{
		"summary": dto.Summarize(orders),
		"orders":  out,
	}))
}

// PATCH /api/orders/:orderId/status — admin
func (ctl *OrderController) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("INVALID_STATUS", "สถานะไม่ถูกต้อง"))
		return
	}

	order, err := ctl.Service.UpdateStatus(c.Request.Context(), c.Param("orderId"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(gin.H{
		"orderId": order.OrderID,
		"status":  order.Status,
	}))
}

// GET /api/orders/:orderId/pdf?type=order|receipt — admin
func (ctl *OrderController) GetPDF(c *gin.Context) {
	order, err := ctl.Service.GetByOrderID(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}

	docType := pdf.DocType(c.DefaultQuery("type", string(pdf.TypeOrder)))
	data, err := pdf.Render(order, docType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Fail("PDF_ERROR", err.Error()))
		return
	}

	filename := fmt.Sprintf("%s-%s.pdf", order.OrderID, docType)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// GET /uploads/:filename — streams a stored slip from GridFS.
func (ctl *OrderController) DownloadSlip(c *gin.Context) {
	filename := c.Param("filename")

	stream, err := ctl.Slips.Open(filename)
	if err != nil {
		if errors.Is(err, slips.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("NOT_FOUND", "ไม่พบไฟล์"))
			return
		}
		respondError(c, err)
		return
	}
	defer stream.Close()

	c.DataFromReader(http.StatusOK, stream.GetFile().Length,
		slips.ContentType(filename), stream, nil)
}
