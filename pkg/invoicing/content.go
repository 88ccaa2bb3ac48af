package invoicing

import (
	"fmt"
	"strings"

	"github.com/jordanlanch/freelanceflow/pkg/models"
)

// Content generates an invoice title, description and line items from a
// plain summary of the work done. Pure text assembly, no store access.
func (s *Service) Content(req models.InvoiceContentRequest) *models.InvoiceContent {
	title := fmt.Sprintf("Professional Services - %s", req.ClientName)
	if req.ProjectName != "" {
		title = fmt.Sprintf("Invoice for %s - %s", req.ProjectName, req.ClientName)
	}

	description := "Professional services rendered as per agreement"
	if len(req.WorkCompleted) > 0 {
		var b strings.Builder
		b.WriteString("Work completed:")
		for _, item := range req.WorkCompleted {
			b.WriteString("\n- ")
			b.WriteString(item)
		}
		description = b.String()
	}

	amount := float64(DefaultMilestoneAmount)
	if req.HoursWorked > 0 && req.HourlyRate > 0 {
		amount = req.HoursWorked * req.HourlyRate
	}

	items := make([]models.InvoiceLineItem, 0, len(req.WorkCompleted))
	for _, work := range req.WorkCompleted {
		rate := amount / float64(len(req.WorkCompleted))
		items = append(items, models.InvoiceLineItem{
			Description: work,
			Quantity:    1,
			Rate:        rate,
			Amount:      rate,
		})
	}

	return &models.InvoiceContent{
		Title:           title,
		Description:     description,
		SuggestedAmount: amount,
		LineItems:       items,
	}
}
