// Package templates renders the HTML emails sent to customers and users.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"

	"github.com/podstore/backoffice/internal/domain/identity"
	"github.com/podstore/backoffice/internal/domain/shared"
	"github.com/podstore/backoffice/internal/domain/trade"
)

//go:embed html/*.html
var files embed.FS

// Email subjects
const (
	SubjectOrderConfirmation = "Resumen de tu pedido"
	SubjectOrderSummary      = "Resumen de su pedido"
	SubjectTicket            = "Tu ticket de Pod Store"
	SubjectWelcome           = "Bienvenido a nuestra plataforma"
)

// CustomerPlaceholder replaces an empty customer name
const CustomerPlaceholder = "Cliente sin nombre"

// Company is the signature block shown at the bottom of every email
type Company struct {
	CompanyName  string
	ContactEmail string
	ContactPhone string
}

// Engine renders the email templates
type Engine struct {
	company Company
	tmpl    *template.Template
}

// NewEngine parses the embedded templates
func NewEngine(company Company) (*Engine, error) {
	tmpl, err := template.New("email").Funcs(template.FuncMap{
		"money":    shared.FormatCurrency,
		"datetime": shared.FormatDateTime,
		"customer": customerName,
	}).ParseFS(files, "html/*.html")
	if err != nil {
		return nil, fmt.Errorf("templates: parse: %w", err)
	}
	return &Engine{company: company, tmpl: tmpl}, nil
}

// OrderConfirmation renders the email sent after a marketplace order is stored
func (e *Engine) OrderConfirmation(order *trade.Order) (string, string, error) {
	html, err := e.render("order_confirmation.html", map[string]any{
		"Order":   order,
		"Company": e.company,
	})
	return SubjectOrderConfirmation, html, err
}

// OrderSummary renders the summary table sent from the dashboard
func (e *Engine) OrderSummary(lines []trade.SummaryLine, total decimal.Decimal) (string, string, error) {
	html, err := e.render("order_summary.html", map[string]any{
		"Lines":   lines,
		"Total":   total,
		"Company": e.company,
	})
	return SubjectOrderSummary, html, err
}

// Ticket renders the ticket of a completed marketplace order
func (e *Engine) Ticket(order trade.MarketplaceOrder) (string, string, error) {
	html, err := e.render("ticket.html", map[string]any{
		"Order":   order,
		"Company": e.company,
	})
	return SubjectTicket, html, err
}

// Welcome renders the email sent to a newly created user
func (e *Engine) Welcome(user *identity.User) (string, string, error) {
	html, err := e.render("welcome.html", map[string]any{
		"Name":    user.Name,
		"Company": e.company,
	})
	return SubjectWelcome, html, err
}

func (e *Engine) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("templates: render %s: %w", name, err)
	}
	return buf.String(), nil
}

func customerName(name string) string {
	if name == "" {
		return CustomerPlaceholder
	}
	return name
}
