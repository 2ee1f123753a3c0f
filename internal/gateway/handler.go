package gateway

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/promptforge/prompt-studio/enhancer-api/internal/auth"
	"github.com/promptforge/prompt-studio/enhancer-api/internal/chain"
	"github.com/promptforge/prompt-studio/enhancer-api/internal/enhancement"
	"github.com/promptforge/prompt-studio/enhancer-api/internal/history"
	"github.com/promptforge/prompt-studio/enhancer-api/internal/models"
)

// Handler handles HTTP requests for the gateway layer
type Handler struct {
	enhancementService *enhancement.Service
	jwtManager         *auth.JWTManager
	pool               *pgxpool.Pool
}

// NewHandler creates a new gateway handler
func NewHandler(enhancementService *enhancement.Service, jwtManager *auth.JWTManager, pool *pgxpool.Pool) *Handler {
	return &Handler{
		enhancementService: enhancementService,
		jwtManager:         jwtManager,
		pool:               pool,
	}
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request", Code: models.ErrCodeInvalidRequest})
		return
	}

	var user models.User
	err := h.pool.QueryRow(c.Request.Context(),
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`,
		req.Email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		log.Printf(`{"level":"warn","message":"User not found","email":"%s"}`, req.Email)
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password", Code: models.ErrCodeUnauthorized})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Printf(`{"level":"warn","message":"Invalid password","email":"%s"}`, req.Email)
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password", Code: models.ErrCodeUnauthorized})
		return
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	token, err := h.jwtManager.GenerateToken(
		c.Request.Context(),
		user.ID,
		user.Email,
		[]string{"user"},
		24*time.Hour,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token", Code: models.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.ToUserInfo(),
	})
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// RefreshToken godoc
// @Summary Refresh JWT token
// @Description Exchange a valid token for a fresh one
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Current token"
// @Success 200 {object} map[string]string
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/refresh [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request", Code: models.ErrCodeInvalidRequest})
		return
	}

	token, err := h.jwtManager.RefreshToken(c.Request.Context(), req.Token, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid or expired token", Code: models.ErrCodeUnauthorized})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ListTechniques godoc
// @Summary List techniques
// @Description List the ids of all registered enhancement techniques
// @Tags techniques
// @Produce json
// @Success 200 {object} models.TechniqueListResponse
// @Security BearerAuth
// @Router /techniques [get]
func (h *Handler) ListTechniques(c *gin.Context) {
	c.JSON(http.StatusOK, models.TechniqueListResponse{
		Techniques: h.enhancementService.Techniques(),
	})
}

// Enhance godoc
// @Summary Enhance a prompt
// @Description Apply an ordered chain of techniques to a prompt. Individual technique failures do not fail the request; they are reported in metadata.chain_errors.
// @Tags enhancements
// @Accept json
// @Produce json
// @Param request body models.EnhanceRequest true "Enhancement request"
// @Success 200 {object} models.EnhanceResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /enhance [post]
func (h *Handler) Enhance(c *gin.Context) {
	var req models.EnhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request", Code: models.ErrCodeInvalidRequest})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	output, err := h.enhancementService.Enhance(c.Request.Context(), userID, enhancement.Input{
		Text:       req.Text,
		Techniques: req.Techniques,
		Intent:     req.Intent,
		Complexity: req.Complexity,
		Options:    req.Options,
	})
	if err != nil {
		respondEnhanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enhanceResponse(output))
}

// ListHistory godoc
// @Summary List enhancement history
// @Description List the authenticated user's past enhancements, newest first
// @Tags history
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} models.HistoryListResponse
// @Security BearerAuth
// @Router /history [get]
func (h *Handler) ListHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, limit, offset, err := h.enhancementService.ListRecords(c.Request.Context(), userID, limit, offset)
	if err != nil {
		log.Printf(`{"level":"error","message":"Failed to list history","error":"%v","user_id":"%s"}`, err, userID)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list history", Code: models.ErrCodeInternalError})
		return
	}

	items := make([]models.HistoryItem, 0, len(records))
	for _, record := range records {
		items = append(items, historyItem(record))
	}

	c.JSON(http.StatusOK, models.HistoryListResponse{
		Items:  items,
		Limit:  limit,
		Offset: offset,
	})
}

// GetEnhancement godoc
// @Summary Get one enhancement
// @Description Retrieve a single enhancement record by id
// @Tags history
// @Produce json
// @Param id path string true "Enhancement ID"
// @Success 200 {object} history.Record
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /history/{id} [get]
func (h *Handler) GetEnhancement(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	enhancementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid enhancement ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	record, err := h.enhancementService.GetRecord(c.Request.Context(), userID, enhancementID)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Enhancement not found", Code: models.ErrCodeNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get enhancement", Code: models.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusOK, record)
}

// RerunEnhancement godoc
// @Summary Re-run an enhancement
// @Description Re-execute a stored enhancement with its original techniques and options
// @Tags history
// @Produce json
// @Param id path string true "Enhancement ID"
// @Success 200 {object} models.EnhanceResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /history/{id}/rerun [post]
func (h *Handler) RerunEnhancement(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	enhancementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid enhancement ID", Code: models.ErrCodeInvalidRequest})
		return
	}

	output, err := h.enhancementService.Rerun(c.Request.Context(), userID, enhancementID)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Enhancement not found", Code: models.ErrCodeNotFound})
			return
		}
		respondEnhanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enhanceResponse(output))
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "User not authenticated", Code: models.ErrCodeUnauthorized})
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDVal.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid user ID", Code: models.ErrCodeUnauthorized})
		return uuid.Nil, false
	}
	return userID, true
}

func respondEnhanceError(c *gin.Context, err error) {
	if errors.Is(err, chain.ErrNothingToChain) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Request must include a prompt or at least one technique", Code: models.ErrCodeNothingToChain})
		return
	}
	log.Printf(`{"level":"error","message":"Enhancement failed","error":"%v"}`, err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Enhancement failed", Code: models.ErrCodeInternalError})
}

func enhanceResponse(output *enhancement.Output) models.EnhanceResponse {
	resp := models.EnhanceResponse{
		EnhancedPrompt: output.Response.EnhancedPrompt,
		Intent:         output.Intent,
		Complexity:     output.Complexity,
		Metadata:       output.Response.Metadata,
		Warnings:       output.Response.Warnings,
	}
	if output.EnhancementID != uuid.Nil {
		resp.EnhancementID = output.EnhancementID.String()
	}
	return resp
}

func historyItem(record *history.Record) models.HistoryItem {
	return models.HistoryItem{
		ID:             record.ID.String(),
		OriginalPrompt: record.OriginalPrompt,
		EnhancedPrompt: record.EnhancedPrompt,
		Techniques:     record.Techniques,
		Intent:         record.Intent,
		Complexity:     record.Complexity,
		CreatedAt:      record.CreatedAt,
	}
}
