package model

// Record is the tagged union of parsed business records. The three variants share
// only the order_id identity field; everything else is variant-specific, so this is
// an interface over structs rather than one struct with a type switch inside.
type Record interface {
	// DocType returns the discriminator stored in the record's "type" field.
	DocType() DocumentType
	// Key returns the record's order_id, or "" when the document carried none.
	// Records without a key are appended to their store, never deduplicated.
	Key() string
}

// ProductLineItem is one product row within a record's product list.
// Fields other than the name are pointers so a serialized item carries only what
// was actually parsed; malformed numerics are dropped, not zeroed.
type ProductLineItem struct {
	ProductID   *string  `json:"product_id,omitempty"`
	ProductName string   `json:"product_name"`
	Quantity    *int     `json:"quantity,omitempty"`
	UnitPrice   *float64 `json:"unit_price,omitempty"`
	Total       *float64 `json:"total,omitempty"`
}

// CustomerDetails holds the contact block of an invoice. All fields optional.
type CustomerDetails struct {
	ContactName string `json:"contact_name,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	Country     string `json:"country,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Fax         string `json:"fax,omitempty"`
}

// Invoice is the parsed form of an invoice document. Product line items come from
// the extractor's tables, not from the text.
type Invoice struct {
	Type            DocumentType      `json:"type"`
	OrderID         *string           `json:"order_id"`
	CustomerID      *string           `json:"customer_id"`
	OrderDate       *string           `json:"order_date"`
	CustomerDetails CustomerDetails   `json:"customer_details"`
	Products        []ProductLineItem `json:"products"`
	TotalPrice      *float64          `json:"total_price"`
}

func (i *Invoice) DocType() DocumentType { return DocumentTypeInvoice }

func (i *Invoice) Key() string {
	if i.OrderID == nil {
		return ""
	}
	return *i.OrderID
}

// PurchaseOrder is the parsed form of a purchase order document. Its line items
// carry no total column.
type PurchaseOrder struct {
	Type         DocumentType      `json:"type"`
	OrderID      *string           `json:"order_id"`
	OrderDate    *string           `json:"order_date"`
	CustomerName *string           `json:"customer_name"`
	Products     []ProductLineItem `json:"products"`
}

func (p *PurchaseOrder) DocType() DocumentType { return DocumentTypePurchaseOrder }

func (p *PurchaseOrder) Key() string {
	if p.OrderID == nil {
		return ""
	}
	return *p.OrderID
}

// ShippingDetails is the shipping section of an order summary.
type ShippingDetails struct {
	ShipName       string `json:"ship_name,omitempty"`
	ShipAddress    string `json:"ship_address,omitempty"`
	ShipCity       string `json:"ship_city,omitempty"`
	ShipRegion     string `json:"ship_region,omitempty"`
	ShipPostalCode string `json:"ship_postal_code,omitempty"`
	ShipCountry    string `json:"ship_country,omitempty"`
}

// CustomerRef is the customer section of an order summary.
type CustomerRef struct {
	CustomerID   string `json:"customer_id,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
}

// EmployeeDetails is the employee section of an order summary.
type EmployeeDetails struct {
	EmployeeName string `json:"employee_name,omitempty"`
}

// ShipperDetails is the shipper section of an order summary.
type ShipperDetails struct {
	ShipperID   string `json:"shipper_id,omitempty"`
	ShipperName string `json:"shipper_name,omitempty"`
}

// OrderDetails is the order-dates section of an order summary.
type OrderDetails struct {
	OrderDate   string `json:"order_date,omitempty"`
	ShippedDate string `json:"shipped_date,omitempty"`
}

// OrderSummary is the parsed form of an order summary document, built by the
// sectioned state-machine parser.
type OrderSummary struct {
	Type            DocumentType      `json:"type"`
	OrderID         *string           `json:"order_id"`
	ShippingDetails ShippingDetails   `json:"shipping_details"`
	CustomerDetails CustomerRef       `json:"customer_details"`
	EmployeeDetails EmployeeDetails   `json:"employee_details"`
	ShipperDetails  ShipperDetails    `json:"shipper_details"`
	OrderDetails    OrderDetails      `json:"order_details"`
	Products        []ProductLineItem `json:"products"`
	TotalPrice      *float64          `json:"total_price"`
}

func (o *OrderSummary) DocType() DocumentType { return DocumentTypeOrderSummary }

func (o *OrderSummary) Key() string {
	if o.OrderID == nil {
		return ""
	}
	return *o.OrderID
}
