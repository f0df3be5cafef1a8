package parser

import (
	"regexp"
	"strconv"
	"strings"

	"orderdocs/internal/model"
)

// section is the current-section cursor of the order summary state machine.
type section int

const (
	sectionNone section = iota
	sectionShipping
	sectionCustomer
	sectionEmployee
	sectionShipper
	sectionOrder
	sectionProducts
)

var totalPriceRe = regexp.MustCompile(`Total Price:\s*(\d+(\.\d+)?)`)

// ParseOrderSummary parses an order summary document with a full sectioned state
// machine. Header lines move the cursor; "Order ID:" and "Total Price:" lines are
// handled at top level regardless of the active section and do not move it.
//
// Within the products section a "Product:" line begins a new line item, flushing
// any item already under construction; the item in progress at end of input is
// flushed as well. An item is terminated only by the next "Product:" line or end
// of input, never by blank lines. Quantity/price lines seen before any "Product:"
// line belong to no item and are ignored.
func ParseOrderSummary(text string) (*model.OrderSummary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	sum := &model.OrderSummary{
		Type:     model.DocumentTypeOrderSummary,
		Products: []model.ProductLineItem{},
	}

	cur := sectionNone
	var item *model.ProductLineItem

	for _, line := range textLines(text) {
		switch {
		case strings.HasPrefix(line, "Order ID:"):
			sum.OrderID = strPtr(fieldValue(line))
		case strings.HasPrefix(line, "Shipping Details:"):
			cur = sectionShipping
		case strings.HasPrefix(line, "Customer Details:"):
			cur = sectionCustomer
		case strings.HasPrefix(line, "Employee Details:"):
			cur = sectionEmployee
		case strings.HasPrefix(line, "Shipper Details:"):
			cur = sectionShipper
		case strings.HasPrefix(line, "Order Details:"):
			cur = sectionOrder
		case strings.Contains(line, "Products:"):
			cur = sectionProducts
		case strings.HasPrefix(line, "Total Price:"):
			if m := totalPriceRe.FindStringSubmatch(line); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					sum.TotalPrice = &v
				}
			}
		default:
			item = applyFieldLine(sum, cur, line, item)
		}
	}

	if item != nil {
		sum.Products = append(sum.Products, *item)
	}

	return sum, nil
}

// applyFieldLine applies a non-header line to the active section. It returns the
// product line item currently under construction (possibly a new one).
func applyFieldLine(sum *model.OrderSummary, cur section, line string, item *model.ProductLineItem) *model.ProductLineItem {
	switch cur {
	case sectionShipping:
		switch {
		case strings.Contains(line, "Ship Name:"):
			sum.ShippingDetails.ShipName = fieldValue(line)
		case strings.Contains(line, "Ship Address:"):
			sum.ShippingDetails.ShipAddress = fieldValue(line)
		case strings.Contains(line, "Ship City:"):
			sum.ShippingDetails.ShipCity = fieldValue(line)
		case strings.Contains(line, "Ship Region:"):
			sum.ShippingDetails.ShipRegion = fieldValue(line)
		case strings.Contains(line, "Ship Postal Code:"):
			sum.ShippingDetails.ShipPostalCode = fieldValue(line)
		case strings.Contains(line, "Ship Country:"):
			sum.ShippingDetails.ShipCountry = fieldValue(line)
		}
	case sectionCustomer:
		switch {
		case strings.Contains(line, "Customer ID:"):
			sum.CustomerDetails.CustomerID = fieldValue(line)
		case strings.Contains(line, "Customer Name:"):
			sum.CustomerDetails.CustomerName = fieldValue(line)
		}
	case sectionEmployee:
		if strings.Contains(line, "Employee Name:") {
			sum.EmployeeDetails.EmployeeName = fieldValue(line)
		}
	case sectionShipper:
		switch {
		case strings.Contains(line, "Shipper ID:"):
			sum.ShipperDetails.ShipperID = fieldValue(line)
		case strings.Contains(line, "Shipper Name:"):
			sum.ShipperDetails.ShipperName = fieldValue(line)
		}
	case sectionOrder:
		switch {
		case strings.Contains(line, "Order Date:"):
			sum.OrderDetails.OrderDate = fieldValue(line)
		case strings.Contains(line, "Shipped Date:"):
			sum.OrderDetails.ShippedDate = fieldValue(line)
		}
	case sectionProducts:
		switch {
		case strings.HasPrefix(line, "Product:"):
			if item != nil {
				sum.Products = append(sum.Products, *item)
			}
			item = &model.ProductLineItem{ProductName: fieldValue(line)}
		case item == nil:
			// Quantity/price lines before any "Product:" line belong to no item.
		case strings.Contains(line, "Quantity:"):
			if v, err := strconv.Atoi(fieldValue(line)); err == nil {
				item.Quantity = &v
			}
		case strings.Contains(line, "Unit Price:"):
			if v, err := strconv.ParseFloat(fieldValue(line), 64); err == nil {
				item.UnitPrice = &v
			}
		case strings.Contains(line, "Total:"):
			if v, err := strconv.ParseFloat(fieldValue(line), 64); err == nil {
				item.Total = &v
			}
		}
	}
	return item
}
