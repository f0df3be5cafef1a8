package parser

import (
	"regexp"
	"strconv"
	"strings"

	"orderdocs/internal/model"
)

var (
	// poHeaderRe matches the order header line: 5-digit id, ISO-like date, customer name.
	poHeaderRe = regexp.MustCompile(`^\d{5}\s+\d{4}-\d{2}-\d{2}\s+.+`)
	// poProductRe matches a product row: id, name, quantity, unit price.
	poProductRe = regexp.MustCompile(`^(\d+)\s+(.*?)\s+(\d+)\s+([\d.]+)$`)
)

// ParsePurchaseOrder parses a purchase order document. The first line matching the
// header pattern is the sole source of order_id/order_date/customer_name. Product
// rows are scanned only after a line containing both "Product ID:" and "Product:";
// a blank line or a line containing "Page" is a hard boundary that ends product
// scanning entirely. A document with several concatenated orders therefore yields
// only the first one.
func ParsePurchaseOrder(text string) (*model.PurchaseOrder, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	po := &model.PurchaseOrder{
		Type:     model.DocumentTypePurchaseOrder,
		Products: []model.ProductLineItem{},
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)

		if po.OrderID == nil && poHeaderRe.MatchString(line) {
			parts := strings.Fields(line)
			if len(parts) >= 3 {
				po.OrderID = strPtr(parts[0])
				po.OrderDate = strPtr(parts[1])
				po.CustomerName = strPtr(strings.Join(parts[2:], " "))
			}
		}

		if strings.Contains(line, "Product ID:") && strings.Contains(line, "Product:") {
			for _, raw := range lines[i+1:] {
				raw = strings.TrimSpace(raw)
				if raw == "" || strings.Contains(raw, "Page") {
					break
				}
				m := poProductRe.FindStringSubmatch(raw)
				if m == nil {
					continue
				}
				qty, err := strconv.Atoi(m[3])
				if err != nil {
					continue
				}
				price, err := strconv.ParseFloat(m[4], 64)
				if err != nil {
					continue
				}
				po.Products = append(po.Products, model.ProductLineItem{
					ProductID:   strPtr(m[1]),
					ProductName: strings.TrimSpace(m[2]),
					Quantity:    &qty,
					UnitPrice:   &price,
				})
			}
			break
		}
	}

	return po, nil
}
