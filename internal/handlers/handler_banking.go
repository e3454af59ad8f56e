package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/agrisuite/genfin_backend/internal/apperrors"
	portssvc "github.com/agrisuite/genfin_backend/internal/core/ports/services"
	"github.com/agrisuite/genfin_backend/internal/dto"
	"github.com/agrisuite/genfin_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bankingHandler handles HTTP requests for bank accounts, checks, and ACH
// batch generation.
type bankingHandler struct {
	bankingService portssvc.BankingSvcFacade
}

func newBankingHandler(bs portssvc.BankingSvcFacade) *bankingHandler {
	return &bankingHandler{bankingService: bs}
}

// registerBankingRoutes registers routes related to banking output.
func registerBankingRoutes(rg *gin.RouterGroup, bankingService portssvc.BankingSvcFacade) {
	h := newBankingHandler(bankingService)

	banks := rg.Group("/bank-accounts")
	{
		banks.POST("", h.createBankAccount)
		banks.GET("", h.listBankAccounts)
		banks.GET("/:id", h.getBankAccount)
		banks.POST("/:id/checks", h.issueCheck)
		banks.GET("/:id/checks", h.listChecks)
		banks.POST("/:id/ach-batches", h.generateACHBatch)
		banks.GET("/:id/ach-batches", h.listACHBatches)
	}

	rg.POST("/checks/:id/void", h.voidCheck)
	rg.GET("/ach-batches/:id", h.getACHBatch)
	rg.GET("/ach-batches/:id/file", h.getACHFile)
}

func (h *bankingHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.bankingService.CreateBankAccount(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating bank account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create bank account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bank account"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

func (h *bankingHandler) getBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("id")

	account, err := h.bankingService.GetBankAccountByID(c.Request.Context(), bankAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
		} else {
			logger.Error("Failed to get bank account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bank account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

func (h *bankingHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params listParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.bankingService.ListBankAccounts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list bank accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bank accounts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bankAccounts": dto.ToListBankAccountResponse(accounts)})
}

func (h *bankingHandler) issueCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("id")

	var req dto.IssueCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	check, err := h.bankingService.IssueCheck(c.Request.Context(), bankAccountID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrFormatOverflow) {
			logger.Warn("Check field overflow", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrStateConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to issue check", slog.String("error", err.Error()), slog.String("bank_account_id", bankAccountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue check"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCheckResponse(check))
}

func (h *bankingHandler) voidCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.bankingService.VoidCheck(c.Request.Context(), checkID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Check not found"})
		} else if errors.Is(err, apperrors.ErrStateConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to void check", slog.String("error", err.Error()), slog.String("check_id", checkID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to void check"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *bankingHandler) listChecks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("id")

	var params listParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	checks, err := h.bankingService.ListChecks(c.Request.Context(), bankAccountID, params.Limit, params.Offset)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
		} else {
			logger.Error("Failed to list checks", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list checks"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"checks": dto.ToListCheckResponse(checks)})
}

func (h *bankingHandler) generateACHBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("id")

	var req dto.GenerateACHBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	batch, err := h.bankingService.GenerateACHBatch(c.Request.Context(), bankAccountID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
		} else if errors.Is(err, apperrors.ErrFormatOverflow) {
			logger.Warn("NACHA field overflow", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error generating ACH batch", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to generate ACH batch", slog.String("error", err.Error()), slog.String("bank_account_id", bankAccountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate ACH batch"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToACHBatchResponse(batch))
}

func (h *bankingHandler) getACHBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("id")

	batch, err := h.bankingService.GetACHBatchByID(c.Request.Context(), batchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ACH batch not found"})
		} else {
			logger.Error("Failed to get ACH batch", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ACH batch"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToACHBatchResponse(batch))
}

func (h *bankingHandler) getACHFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("id")

	contents, err := h.bankingService.GetACHFile(c.Request.Context(), batchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ACH batch not found"})
		} else {
			logger.Error("Failed to get ACH file", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ACH file"})
		}
		return
	}

	c.Header("Content-Disposition", "attachment; filename=ach-"+batchID+".txt")
	c.String(http.StatusOK, contents)
}

func (h *bankingHandler) listACHBatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("id")

	var params listParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	batches, err := h.bankingService.ListACHBatches(c.Request.Context(), bankAccountID, params.Limit, params.Offset)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
		} else {
			logger.Error("Failed to list ACH batches", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ACH batches"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"achBatches": dto.ToListACHBatchResponse(batches)})
}
