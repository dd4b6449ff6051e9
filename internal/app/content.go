// internal/app/content.go
package app

import (
	"fmt"
	"html/template"
	"strings"

	"shop_notifier/internal/domain/delivery"
	"shop_notifier/internal/domain/mailer"
	"shop_notifier/internal/domain/routine"
)

// Message bodies per record family. The markup itself is a collaborator
// concern; the engine only merges per-record data into it.
var (
	signupTmpl = template.Must(template.New("signup").Parse(`<html><body>
<h2>Welcome to Glow, {{.Name}}!</h2>
<p>Your account is ready. Browse our catalog and find the routine that fits your skin.</p>
<p>If you ever want a personalized plan, request one from your profile page and we will send it over as a PDF.</p>
</body></html>`))

	orderPlacedTmpl = template.Must(template.New("order_placed").Parse(`<html><body>
<h2>Thanks for your order, {{.Name}}!</h2>
<p>We received order <strong>{{.OrderID}}</strong> and are preparing it for shipment.</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Product</th><th>Qty</th><th>Price</th></tr>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.Price}}</td></tr>
{{end}}</table>
<p>Order total: <strong>{{.Total}}</strong></p>
</body></html>`))

	orderDeliveredTmpl = template.Must(template.New("order_delivered").Parse(`<html><body>
<h2>Your order has arrived, {{.Name}}!</h2>
<p>Order <strong>{{.OrderID}}</strong> was delivered. We hope you love it.</p>
<p>Give each new product a week or two of consistent use before judging results.</p>
</body></html>`))

	planRequestTmpl = template.Must(template.New("plan_request").Parse(`<html><body>
<h2>Your personalized skincare plan is ready, {{.Name}}!</h2>
<p>We built a routine for {{.SkinType}} skin{{if .Concerns}} targeting {{.Concerns}}{{end}}.</p>
<p>The full 7-day plan is attached as a PDF, including your product picks and personalized tips.</p>
</body></html>`))
)

type orderItemView struct {
	Name     string
	Quantity int
	Price    string
}

// buildMessage derives the outbound message for one record. Any error here is
// a permanent failure for the record: the payload will not fix itself.
func (s *CycleService) buildMessage(rec *delivery.Record) (mailer.Message, error) {
	msg := mailer.Message{
		From:     s.mailFrom,
		FromName: s.mailFromName,
		To:       rec.RecipientEmail,
		ToName:   rec.RecipientName,
	}

	switch rec.Family {
	case delivery.FamilySignup:
		msg.Subject = "Welcome to Glow Skincare Shop"
		body, err := renderTemplate(signupTmpl, map[string]any{"Name": rec.RecipientName})
		if err != nil {
			return mailer.Message{}, err
		}
		msg.HTMLBody = body

	case delivery.FamilyOrderPlaced, delivery.FamilyOrderDelivered:
		order, err := rec.OrderPayload()
		if err != nil {
			return mailer.Message{}, err
		}
		items := make([]orderItemView, len(order.Items))
		for i, it := range order.Items {
			items[i] = orderItemView{Name: it.Name, Quantity: it.Quantity, Price: formatPrice(it.UnitPrice)}
		}
		data := map[string]any{
			"Name":    rec.RecipientName,
			"OrderID": order.OrderID,
			"Items":   items,
			"Total":   formatPrice(order.Total),
		}
		tmpl := orderPlacedTmpl
		msg.Subject = fmt.Sprintf("Order %s confirmed", order.OrderID)
		if rec.Family == delivery.FamilyOrderDelivered {
			tmpl = orderDeliveredTmpl
			msg.Subject = fmt.Sprintf("Order %s delivered", order.OrderID)
		}
		body, err := renderTemplate(tmpl, data)
		if err != nil {
			return mailer.Message{}, err
		}
		msg.HTMLBody = body

	case delivery.FamilyPromotion:
		promo, err := rec.PromotionPayload()
		if err != nil {
			return mailer.Message{}, err
		}
		if promo.Subject == "" {
			return mailer.Message{}, fmt.Errorf("promotion record %d has no subject", rec.ID)
		}
		msg.Subject = promo.Subject
		msg.HTMLBody = promo.Body

	case delivery.FamilyPlanRequest:
		req, err := rec.PlanRequestPayload()
		if err != nil {
			return mailer.Message{}, err
		}
		plan, err := routine.GeneratePlan(req.SkinType, req.Concerns, req.MorningTime, req.EveningTime)
		if err != nil {
			return mailer.Message{}, err
		}
		document, err := s.renderer.Render(rec.RecipientName, plan)
		if err != nil {
			return mailer.Message{}, err
		}
		body, err := renderTemplate(planRequestTmpl, map[string]any{
			"Name":     rec.RecipientName,
			"SkinType": req.SkinType,
			"Concerns": strings.Join(req.Concerns, ", "),
		})
		if err != nil {
			return mailer.Message{}, err
		}
		msg.Subject = "Your personalized skincare plan"
		msg.HTMLBody = body
		msg.Attachment = &mailer.Attachment{
			Filename: "skincare-plan.pdf",
			MIMEType: "application/pdf",
			Content:  document,
		}

	default:
		return mailer.Message{}, fmt.Errorf("unknown record family %q for record %d", rec.Family, rec.ID)
	}

	return msg, nil
}

func renderTemplate(tmpl *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering %s template: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}

func formatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
