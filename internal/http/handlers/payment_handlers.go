package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

// PaymentHandlers handles charge requests and gateway webhooks
type PaymentHandlers struct {
	paymentSvc domain.PaymentService
}

// NewPaymentHandlers creates new payment handlers
func NewPaymentHandlers(paymentSvc domain.PaymentService) *PaymentHandlers {
	return &PaymentHandlers{paymentSvc: paymentSvc}
}

// ChargeRequest mirrors the checkout form posted by the frontend
type ChargeRequest struct {
	ProviderID uint   `json:"provider_id" binding:"required"`
	Type       string `json:"type" binding:"required,oneof=ACTIVATION FEATURED"`
	FormData   struct {
		Token           string `json:"token"`
		Installments    int    `json:"installments"`
		PaymentMethodID string `json:"payment_method_id"`
		IssuerID        string `json:"issuer_id"`
		Payer           struct {
			Email          string `json:"email"`
			FirstName      string `json:"firstName"`
			LastName       string `json:"lastName"`
			Identification struct {
				Type   string `json:"type"`
				Number string `json:"number"`
			} `json:"identification"`
		} `json:"payer"`
	} `json:"formData" binding:"required"`
}

// WebhookRequest is the gateway's notification payload
type WebhookRequest struct {
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Charge handles POST /payment
func (h *PaymentHandlers) Charge(c *gin.Context) {
	var req ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form := domain.ChargeRequest{
		Token:           req.FormData.Token,
		Installments:    req.FormData.Installments,
		PaymentMethodID: req.FormData.PaymentMethodID,
		IssuerID:        req.FormData.IssuerID,
		PayerEmail:      req.FormData.Payer.Email,
		PayerFirstName:  req.FormData.Payer.FirstName,
		PayerLastName:   req.FormData.Payer.LastName,
		PayerDocType:    req.FormData.Payer.Identification.Type,
		PayerDocNumber:  req.FormData.Payer.Identification.Number,
	}

	result, err := h.paymentSvc.Charge(c.Request.Context(), req.ProviderID, req.Type, form)
	if err != nil {
		switch err {
		case domain.ErrProviderNotFound:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Prestador não localizado"})
		case domain.ErrInvalidPayment:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo de pagamento inválido"})
		default:
			log.Printf("PAYMENT_CHARGE_ERROR: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno ao processar"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":        result.Status,
		"status_detail": result.StatusDetail,
		"id":            result.ExternalID,
		"qr_code":       result.QRCode,
		"ticket_url":    result.TicketURL,
	})
}

// Webhook handles POST /payment/webhook. Delivery is at least once and may
// arrive before or after the synchronous charge response; the service's
// conditional transition makes either order safe. Always answers 200 so the
// gateway does not retry forever on terminal errors.
func (h *PaymentHandlers) Webhook(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusOK)
		return
	}

	if (req.Action == "payment.updated" || req.Action == "payment.created") && req.Data.ID != "" {
		if err := h.paymentSvc.SyncFromGateway(c.Request.Context(), req.Data.ID); err != nil {
			log.Printf("PAYMENT_WEBHOOK_ERROR: external_id=%s error=%v", req.Data.ID, err)
		}
	}

	c.Status(http.StatusOK)
}
