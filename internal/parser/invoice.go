package parser

import (
	"regexp"
	"strconv"
	"strings"

	"orderdocs/internal/model"
)

var numberRe = regexp.MustCompile(`\d+(\.\d+)?`)

// ParseInvoice parses an invoice document. Scalar fields come from labeled text
// lines; product line items are reconciled from the extractor's tables, cumulatively
// in table order then row order. Rows with fewer than four cells or non-numeric
// quantity/price are dropped without emitting a partial item.
func ParseInvoice(text string, tables []model.Table) (*model.Invoice, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	inv := &model.Invoice{
		Type:     model.DocumentTypeInvoice,
		Products: []model.ProductLineItem{},
	}

	for _, line := range textLines(text) {
		switch {
		case strings.HasPrefix(line, "Order ID:"):
			inv.OrderID = strPtr(fieldValue(line))
		case strings.HasPrefix(line, "Customer ID:"):
			inv.CustomerID = strPtr(fieldValue(line))
		case strings.HasPrefix(line, "Order Date:"):
			inv.OrderDate = strPtr(fieldValue(line))
		case strings.HasPrefix(line, "Contact Name:"):
			inv.CustomerDetails.ContactName = fieldValue(line)
		case strings.HasPrefix(line, "Address:"):
			inv.CustomerDetails.Address = fieldValue(line)
		case strings.HasPrefix(line, "City:"):
			inv.CustomerDetails.City = fieldValue(line)
		case strings.HasPrefix(line, "Postal Code:"):
			inv.CustomerDetails.PostalCode = fieldValue(line)
		case strings.HasPrefix(line, "Country:"):
			inv.CustomerDetails.Country = fieldValue(line)
		case strings.HasPrefix(line, "Phone:"):
			inv.CustomerDetails.Phone = fieldValue(line)
		case strings.HasPrefix(line, "Fax:"):
			inv.CustomerDetails.Fax = fieldValue(line)
		case strings.HasPrefix(line, "TotalPrice"):
			// The first number on the line, wherever it sits.
			if m := numberRe.FindString(line); m != "" {
				if v, err := strconv.ParseFloat(m, 64); err == nil {
					inv.TotalPrice = &v
				}
			}
		}
	}

	for _, tbl := range tables {
		// A qualifying table has a header row and at least one data row.
		if len(tbl.Rows) < 2 {
			continue
		}
		for _, row := range tbl.Rows[1:] {
			if item, ok := lineItemFromRow(row); ok {
				inv.Products = append(inv.Products, item)
			}
		}
	}

	return inv, nil
}

// lineItemFromRow maps a table row positionally: id, name, quantity, unit price.
func lineItemFromRow(row []string) (model.ProductLineItem, bool) {
	if len(row) < 4 {
		return model.ProductLineItem{}, false
	}
	qty, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return model.ProductLineItem{}, false
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
	if err != nil {
		return model.ProductLineItem{}, false
	}
	return model.ProductLineItem{
		ProductID:   strPtr(strings.TrimSpace(row[0])),
		ProductName: strings.TrimSpace(row[1]),
		Quantity:    &qty,
		UnitPrice:   &price,
	}, true
}
