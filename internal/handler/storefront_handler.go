package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SamuelSnowball/Bookstore/internal/client"
	"github.com/SamuelSnowball/Bookstore/internal/domain"
)

// StorefrontHandler exposes the browsing surface: catalog, cart, addresses,
// order history and login, each a thin passthrough to the owning service.
type StorefrontHandler struct {
	books     *client.BookClient
	cart      *client.CartClient
	orders    *client.OrderClient
	addresses *client.AddressClient
	auth      *client.AuthClient
	logger    *zap.Logger
}

func NewStorefrontHandler(
	books *client.BookClient,
	cart *client.CartClient,
	orders *client.OrderClient,
	addresses *client.AddressClient,
	auth *client.AuthClient,
	logger *zap.Logger,
) *StorefrontHandler {
	return &StorefrontHandler{
		books:     books,
		cart:      cart,
		orders:    orders,
		addresses: addresses,
		auth:      auth,
		logger:    logger,
	}
}

func (h *StorefrontHandler) ListBooks(c *gin.Context) {
	prevPageLastBookID, _ := strconv.Atoi(c.DefaultQuery("prevPageLastBookId", "0"))

	books, err := h.books.ListBooks(c.Request.Context(), prevPageLastBookID)
	if err != nil {
		h.respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *StorefrontHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *StorefrontHandler) GetCart(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	items, err := h.cart.GetCart(c.Request.Context(), token)
	if err != nil {
		h.respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type addCartItemRequest struct {
	BookID   int `json:"bookId" binding:"required"`
	Quantity int `json:"quantity"`
}

func (h *StorefrontHandler) AddCartItem(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bookId is required"})
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	if err := h.cart.AddItem(c.Request.Context(), token, req.BookID, req.Quantity); err != nil {
		h.respondUpstreamError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func (h *StorefrontHandler) UpdateCartItem(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	cartItemID, err := strconv.Atoi(c.Param("cartItemId"))
	if err != nil || cartItemID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item id"})
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be at least 1"})
		return
	}

	if err := h.cart.UpdateQuantity(c.Request.Context(), token, cartItemID, req.Quantity); err != nil {
		h.respondUpstreamError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *StorefrontHandler) RemoveCartItem(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	cartItemID, err := strconv.Atoi(c.Param("cartItemId"))
	if err != nil || cartItemID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item id"})
		return
	}

	if err := h.cart.RemoveItem(c.Request.Context(), token, cartItemID); err != nil {
		h.respondUpstreamError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *StorefrontHandler) GetOrders(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	orders, err := h.orders.GetOrders(c.Request.Context(), token)
	if err != nil {
		h.respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *StorefrontHandler) ListAddresses(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	addresses, err := h.addresses.ListAddresses(c.Request.Context(), token)
	if err != nil {
		h.respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, addresses)
}

func (h *StorefrontHandler) GetDefaultAddress(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	address, err := h.addresses.GetDefaultAddress(c.Request.Context(), token)
	if err != nil {
		h.respondUpstreamError(c, err)
		return
	}
	if address == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no default address"})
		return
	}
	c.JSON(http.StatusOK, address)
}

func (h *StorefrontHandler) CreateAddress(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	var address domain.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
		return
	}

	created, err := h.addresses.CreateAddress(c.Request.Context(), token, address)
	if err != nil {
		h.respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *StorefrontHandler) UpdateAddress(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	addressID, err := strconv.Atoi(c.Param("addressId"))
	if err != nil || addressID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	var address domain.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
		return
	}

	if err := h.addresses.UpdateAddress(c.Request.Context(), token, addressID, address); err != nil {
		h.respondUpstreamError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *StorefrontHandler) DeleteAddress(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	addressID, err := strconv.Atoi(c.Param("addressId"))
	if err != nil || addressID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	if err := h.addresses.DeleteAddress(c.Request.Context(), token, addressID); err != nil {
		h.respondUpstreamError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *StorefrontHandler) SetDefaultAddress(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	addressID, err := strconv.Atoi(c.Param("addressId"))
	if err != nil || addressID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	if err := h.addresses.SetDefaultAddress(c.Request.Context(), token, addressID); err != nil {
		h.respondUpstreamError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *StorefrontHandler) requireToken(c *gin.Context) (string, bool) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return "", false
	}
	return token, true
}

// respondUpstreamError passes an upstream status and message through, and
// shields everything else behind a 502.
func (h *StorefrontHandler) respondUpstreamError(c *gin.Context, err error) {
	var upstream *client.UpstreamError
	if errors.As(err, &upstream) {
		c.JSON(upstream.StatusCode, gin.H{"error": upstream.Message})
		return
	}

	h.logger.Error("Upstream call failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": "upstream service unavailable"})
}
