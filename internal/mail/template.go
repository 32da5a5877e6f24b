package mail

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/digistore/digistore/internal/model"
)

var purchaseTmpl = template.Must(template.New("purchase").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h1 style="color: #4F46E5;">Thank you for your purchase!</h1>
    <p>Dear {{.Recipient}},</p>
    <p>Your purchase of <strong>{{.ProductTitle}}</strong> has been confirmed.</p>
    <div style="background-color: #F3F4F6; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <h2 style="color: #374151; margin-top: 0;">Purchase Details:</h2>
        <ul style="list-style: none; padding: 0;">
            <li style="margin: 10px 0;"><strong>Product:</strong> {{.ProductTitle}}</li>
            <li style="margin: 10px 0;"><strong>Price:</strong> {{.Price}}</li>
            <li style="margin: 10px 0;"><strong>Order ID:</strong> {{.OrderID}}</li>
        </ul>
    </div>
    <p>You can download your product here:</p>
    <p><a href="{{.DownloadURL}}" style="color: #4F46E5; text-decoration: underline;">{{.DownloadURL}}</a></p>
    <p style="margin-top: 30px; color: #6B7280;">Thank you for shopping with us!</p>
</div>
`))

type purchaseTmplData struct {
	Recipient    string
	ProductTitle string
	Price        string
	OrderID      string
	DownloadURL  string
}

// PurchaseConfirmation composes the order confirmation message for a
// completed purchase. Price is rendered with two fraction digits and the
// order id is embedded verbatim.
func PurchaseConfirmation(identity *model.Identity, order *model.Order, product *model.Product) (*Message, error) {
	recipient := identity.Name
	if recipient == "" {
		recipient = "valued customer"
	}

	price := fmt.Sprintf("$%.2f", product.Price)

	data := purchaseTmplData{
		Recipient:    recipient,
		ProductTitle: product.Title,
		Price:        price,
		OrderID:      order.ID,
		DownloadURL:  product.DownloadURL,
	}

	var html strings.Builder
	if err := purchaseTmpl.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("compose purchase confirmation: %w", err)
	}

	text := fmt.Sprintf(
		"Thank you for your purchase!\n\nProduct: %s\nPrice: %s\nOrder ID: %s\n\nDownload: %s\n",
		product.Title, price, order.ID, product.DownloadURL,
	)

	return &Message{
		ToEmail:  identity.Email,
		ToName:   identity.Name,
		Subject:  "Your Purchase: " + product.Title,
		HTMLBody: html.String(),
		TextBody: text,
	}, nil
}
