package httpapi

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"grubdash/internal/domain"
	"grubdash/internal/pipeline"
	"grubdash/internal/service"
)

type Server struct {
	engine *gin.Engine
	dishes *service.DishService
	orders *service.OrderService
}

func NewServer(dishes *service.DishService, orders *service.OrderService) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	s := &Server{engine: r, dishes: dishes, orders: orders}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	s.engine.GET("/health", s.health)

	dishes := s.engine.Group("/dishes")
	dishes.GET("", s.listDishes)
	dishes.POST("", s.createDish)
	dishes.GET(":dishId", s.readDish)
	dishes.PUT(":dishId", s.updateDish)

	orders := s.engine.Group("/orders")
	orders.GET("", s.listOrders)
	orders.POST("", s.createOrder)
	orders.GET(":orderId", s.readOrder)
	orders.PUT(":orderId", s.updateOrder)
	orders.DELETE(":orderId", s.deleteOrder)
}

// Request bodies carry the payload under a "data" key; responses answer the
// same envelope. Errors answer {status, message}.

type dishEnvelope struct {
	Data domain.DishPayload `json:"data"`
}

type orderEnvelope struct {
	Data domain.OrderPayload `json:"data"`
}

type errorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// bindData decodes the request envelope. A missing body is treated as an
// empty payload so the field rules answer instead of a decode error.
func bindData(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errorBody{Status: http.StatusBadRequest, Message: "invalid json"})
		return false
	}
	return true
}

func respondData(c *gin.Context, status int, v any) {
	c.JSON(status, gin.H{"data": v})
}

func respondError(c *gin.Context, err error) {
	var pe *pipeline.Error
	if errors.As(err, &pe) {
		c.JSON(pe.Status, errorBody{Status: pe.Status, Message: pe.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, errorBody{Status: http.StatusInternalServerError, Message: "Something went wrong!"})
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "time": time.Now().Format(time.RFC3339)})
}

// Dish handlers

// @Summary List dishes
// @Tags dishes
// @Produce json
// @Success 200 {object} map[string][]domain.Dish
// @Router /dishes [get]
func (s *Server) listDishes(c *gin.Context) {
	list, err := s.dishes.List(c)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

// @Summary Create dish
// @Tags dishes
// @Accept json
// @Produce json
// @Param input body dishEnvelope true "Dish"
// @Success 201 {object} map[string]domain.Dish
// @Failure 400 {object} errorBody
// @Router /dishes [post]
func (s *Server) createDish(c *gin.Context) {
	var req dishEnvelope
	if !bindData(c, &req) {
		return
	}
	d, err := s.dishes.Create(c, req.Data)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, d)
}

// @Summary Get dish by id
// @Tags dishes
// @Produce json
// @Param dishId path string true "Dish ID"
// @Success 200 {object} map[string]domain.Dish
// @Failure 404 {object} errorBody
// @Router /dishes/{dishId} [get]
func (s *Server) readDish(c *gin.Context) {
	d, err := s.dishes.Read(c, c.Param("dishId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, d)
}

// @Summary Update dish
// @Tags dishes
// @Accept json
// @Produce json
// @Param dishId path string true "Dish ID"
// @Param input body dishEnvelope true "Dish"
// @Success 200 {object} map[string]domain.Dish
// @Failure 400 {object} errorBody
// @Failure 404 {object} errorBody
// @Router /dishes/{dishId} [put]
func (s *Server) updateDish(c *gin.Context) {
	var req dishEnvelope
	if !bindData(c, &req) {
		return
	}
	d, err := s.dishes.Update(c, c.Param("dishId"), req.Data)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, d)
}

// Order handlers

// @Summary List orders
// @Tags orders
// @Produce json
// @Success 200 {object} map[string][]domain.Order
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	list, err := s.orders.List(c)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param input body orderEnvelope true "Order"
// @Success 201 {object} map[string]domain.Order
// @Failure 400 {object} errorBody
// @Router /orders [post]
func (s *Server) createOrder(c *gin.Context) {
	var req orderEnvelope
	if !bindData(c, &req) {
		return
	}
	o, err := s.orders.Create(c, req.Data)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, o)
}

// @Summary Get order by id
// @Tags orders
// @Produce json
// @Param orderId path string true "Order ID"
// @Success 200 {object} map[string]domain.Order
// @Failure 404 {object} errorBody
// @Router /orders/{orderId} [get]
func (s *Server) readOrder(c *gin.Context) {
	o, err := s.orders.Read(c, c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, o)
}

// @Summary Update order
// @Tags orders
// @Accept json
// @Produce json
// @Param orderId path string true "Order ID"
// @Param input body orderEnvelope true "Order"
// @Success 200 {object} map[string]domain.Order
// @Failure 400 {object} errorBody
// @Failure 404 {object} errorBody
// @Router /orders/{orderId} [put]
func (s *Server) updateOrder(c *gin.Context) {
	var req orderEnvelope
	if !bindData(c, &req) {
		return
	}
	o, err := s.orders.Update(c, c.Param("orderId"), req.Data)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, o)
}

// @Summary Delete order
// @Tags orders
// @Param orderId path string true "Order ID"
// @Success 204
// @Failure 400 {object} errorBody
// @Failure 404 {object} errorBody
// @Router /orders/{orderId} [delete]
func (s *Server) deleteOrder(c *gin.Context) {
	if err := s.orders.Delete(c, c.Param("orderId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
