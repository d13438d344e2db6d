package payments

import (
	"context"
	"fmt"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

// MercadoPagoGateway implements domain.PaymentGateway over the Mercado Pago
// payments API.
type MercadoPagoGateway struct {
	client          payment.Client
	notificationURL string
	descriptor      string
}

// NewMercadoPagoGateway creates a new gateway client
func NewMercadoPagoGateway(accessToken, notificationURL, descriptor string) (*MercadoPagoGateway, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to configure mercado pago client: %w", err)
	}
	return &MercadoPagoGateway{
		client:          payment.NewClient(cfg),
		notificationURL: notificationURL,
		descriptor:      descriptor,
	}, nil
}

// Charge implements domain.PaymentGateway
func (g *MercadoPagoGateway) Charge(ctx context.Context, amount float64, description, reference string, form domain.ChargeRequest) (*domain.ChargeResult, error) {
	request := payment.Request{
		TransactionAmount:   amount,
		Token:               form.Token,
		Description:         description,
		Installments:        form.Installments,
		PaymentMethodID:     form.PaymentMethodID,
		IssuerID:            form.IssuerID,
		ExternalReference:   reference,
		NotificationURL:     g.notificationURL,
		StatementDescriptor: g.descriptor,
		Payer: &payment.PayerRequest{
			Email:     form.PayerEmail,
			FirstName: form.PayerFirstName,
			LastName:  form.PayerLastName,
			Identification: &payment.IdentificationRequest{
				Type:   form.PayerDocType,
				Number: form.PayerDocNumber,
			},
		},
	}

	resource, err := g.client.Create(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("mercado pago charge failed: %w", err)
	}

	result := &domain.ChargeResult{
		ExternalID:   strconv.Itoa(resource.ID),
		Status:       resource.Status,
		StatusDetail: resource.StatusDetail,
	}
	result.QRCode = resource.PointOfInteraction.TransactionData.QRCode
	result.TicketURL = resource.PointOfInteraction.TransactionData.TicketURL
	return result, nil
}

// FetchStatus implements domain.PaymentGateway
func (g *MercadoPagoGateway) FetchStatus(ctx context.Context, externalID string) (string, error) {
	id, err := strconv.Atoi(externalID)
	if err != nil {
		return "", fmt.Errorf("invalid mercado pago payment id %q: %w", externalID, err)
	}

	resource, err := g.client.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("mercado pago status fetch failed: %w", err)
	}
	return resource.Status, nil
}
