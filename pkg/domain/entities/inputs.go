package entities

import "github.com/shopspring/decimal"

// Inputs holds the normalized calculator inputs. Rates are fractions in [0, 1].
type Inputs struct {
	Visitors         decimal.Decimal `json:"visitors"`
	AdSpend          decimal.Decimal `json:"adSpend"`
	ConversionRate   decimal.Decimal `json:"conversionRate"`
	SellingPrice     decimal.Decimal `json:"sellingPrice"`
	ProductCost      decimal.Decimal `json:"productCost"`
	ShippingCost     decimal.Decimal `json:"shippingCost"`
	FixedCosts       decimal.Decimal `json:"fixedCosts"`
	ConfirmationRate decimal.Decimal `json:"confirmationRate"`
	DeliveryRate     decimal.Decimal `json:"deliveryRate"`
}

// InputForm is the raw form as typed by the user. Rates are percentages
// ("2.5" means 2.5%) and any field may be blank or non-numeric.
type InputForm struct {
	Visitors         string `json:"visitors" yaml:"visitors"`
	AdSpend          string `json:"adSpend" yaml:"ad_spend"`
	ConversionRate   string `json:"conversionRate" yaml:"conversion_rate"`
	SellingPrice     string `json:"sellingPrice" yaml:"selling_price"`
	ProductCost      string `json:"productCost" yaml:"product_cost"`
	ShippingCost     string `json:"shippingCost" yaml:"shipping_cost"`
	FixedCosts       string `json:"fixedCosts" yaml:"fixed_costs"`
	ConfirmationRate string `json:"confirmationRate" yaml:"confirmation_rate"`
	DeliveryRate     string `json:"deliveryRate" yaml:"delivery_rate"`
}

// DefaultForm returns the form the calculator starts from and resets to.
func DefaultForm() InputForm {
	return InputForm{
		Visitors:         "10000",
		AdSpend:          "2000",
		ConversionRate:   "2.5",
		SellingPrice:     "49.99",
		ProductCost:      "15",
		ShippingCost:     "5",
		FixedCosts:       "500",
		ConfirmationRate: "70",
		DeliveryRate:     "60",
	}
}

// DefaultInputs returns DefaultForm in normalized form.
func DefaultInputs() Inputs {
	return Inputs{
		Visitors:         decimal.NewFromInt(10000),
		AdSpend:          decimal.NewFromInt(2000),
		ConversionRate:   decimal.RequireFromString("0.025"),
		SellingPrice:     decimal.RequireFromString("49.99"),
		ProductCost:      decimal.NewFromInt(15),
		ShippingCost:     decimal.NewFromInt(5),
		FixedCosts:       decimal.NewFromInt(500),
		ConfirmationRate: decimal.RequireFromString("0.7"),
		DeliveryRate:     decimal.RequireFromString("0.6"),
	}
}

// Scenario is a named set of inputs evaluated in batch mode
type Scenario struct {
	Name   string
	Inputs Inputs
}

// FormField describes one InputForm field for hosts that render or parse it
type FormField struct {
	Key     string
	JSONKey string
	Label   string
	Percent bool
}

// FormFields lists the form fields in display order. Keys match the yaml
// tags, JSONKey the json tags.
func FormFields() []FormField {
	return []FormField{
		{Key: "visitors", JSONKey: "visitors", Label: "Monthly Visitors"},
		{Key: "ad_spend", JSONKey: "adSpend", Label: "Ad Spend"},
		{Key: "conversion_rate", JSONKey: "conversionRate", Label: "Conversion Rate", Percent: true},
		{Key: "selling_price", JSONKey: "sellingPrice", Label: "Selling Price"},
		{Key: "product_cost", JSONKey: "productCost", Label: "Product Cost"},
		{Key: "shipping_cost", JSONKey: "shippingCost", Label: "Shipping Cost"},
		{Key: "fixed_costs", JSONKey: "fixedCosts", Label: "Fixed Costs"},
		{Key: "confirmation_rate", JSONKey: "confirmationRate", Label: "Confirmation Rate", Percent: true},
		{Key: "delivery_rate", JSONKey: "deliveryRate", Label: "Delivery Rate", Percent: true},
	}
}

func (f *InputForm) field(key string) *string {
	switch key {
	case "visitors":
		return &f.Visitors
	case "ad_spend":
		return &f.AdSpend
	case "conversion_rate":
		return &f.ConversionRate
	case "selling_price":
		return &f.SellingPrice
	case "product_cost":
		return &f.ProductCost
	case "shipping_cost":
		return &f.ShippingCost
	case "fixed_costs":
		return &f.FixedCosts
	case "confirmation_rate":
		return &f.ConfirmationRate
	case "delivery_rate":
		return &f.DeliveryRate
	}
	return nil
}

// Get returns the raw value of the field named key, or "" for an unknown key
func (f InputForm) Get(key string) string {
	if p := f.field(key); p != nil {
		return *p
	}
	return ""
}

// Set assigns the field named key and reports whether the key exists
func (f *InputForm) Set(key, value string) bool {
	p := f.field(key)
	if p == nil {
		return false
	}
	*p = value
	return true
}
