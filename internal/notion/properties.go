package notion

import (
	"time"

	"pitak-order-api/internal/model"
)

// Property names in the orders database.
const (
	propOrderID    = "Order ID"
	propCustomer   = "Customer"
	propPhone      = "Phone"
	propAmulet     = "Amulet"
	propQuantity   = "Quantity"
	propPrice      = "Price"
	propTotal      = "Total"
	propStatus     = "Status"
	propSlipURL    = "SlipUrl"
	propLineUserID = "LineUserId"
)

type textContent struct {
	Content string `json:"content"`
}

type richText struct {
	Text      *textContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

type selectOption struct {
	Name string `json:"name"`
}

// property is the union of the typed values this database uses:
// title, rich_text, number, select, url and phone_number.
type property struct {
	Title       []richText    `json:"title,omitempty"`
	RichText    []richText    `json:"rich_text,omitempty"`
	Number      *float64      `json:"number,omitempty"`
	Select      *selectOption `json:"select,omitempty"`
	URL         *string       `json:"url,omitempty"`
	PhoneNumber *string       `json:"phone_number,omitempty"`
}

type page struct {
	ID          string              `json:"id"`
	CreatedTime time.Time           `json:"created_time"`
	Properties  map[string]property `json:"properties"`
}

func titleProp(s string) property {
	return property{Title: []richText{{Text: &textContent{Content: s}}}}
}

func richTextProp(s string) property {
	return property{RichText: []richText{{Text: &textContent{Content: s}}}}
}

func numberProp(n float64) property {
	return property{Number: &n}
}

func selectProp(name string) property {
	return property{Select: &selectOption{Name: name}}
}

func urlProp(u string) property {
	return property{URL: &u}
}

func phoneProp(p string) property {
	return property{PhoneNumber: &p}
}

func plainText(rt []richText) string {
	if len(rt) == 0 {
		return ""
	}
	if rt[0].PlainText != "" {
		return rt[0].PlainText
	}
	if rt[0].Text != nil {
		return rt[0].Text.Content
	}
	return ""
}

// orderProperties marshals an order into the typed-property shape for
// page create. SlipUrl and LineUserId are only written when set.
func orderProperties(o *model.Order) map[string]property {
	props := map[string]property{
		propOrderID:  titleProp(o.OrderID),
		propCustomer: richTextProp(o.CustomerName),
		propPhone:    phoneProp(o.Phone),
		propAmulet:   richTextProp(o.AmuletName),
		propQuantity: numberProp(float64(o.Quantity)),
		propPrice:    numberProp(o.Price),
		propTotal:    numberProp(o.Total),
		propStatus:   selectProp(string(o.Status)),
	}
	if o.SlipURL != "" {
		props[propSlipURL] = urlProp(o.SlipURL)
	}
	if o.LineUserID != "" {
		props[propLineUserID] = richTextProp(o.LineUserID)
	}
	return props
}

func parseOrder(p page) *model.Order {
	props := p.Properties

	o := &model.Order{
		RecordID:     p.ID,
		OrderID:      plainText(props[propOrderID].Title),
		CustomerName: plainText(props[propCustomer].RichText),
		AmuletName:   plainText(props[propAmulet].RichText),
		LineUserID:   plainText(props[propLineUserID].RichText),
		Status:       model.StatusPending,
		CreatedAt:    p.CreatedTime,
	}

	if v := props[propPhone].PhoneNumber; v != nil {
		o.Phone = *v
	}
	if v := props[propQuantity].Number; v != nil {
		o.Quantity = int(*v)
	}
	if v := props[propPrice].Number; v != nil {
		o.Price = *v
	}
	if v := props[propTotal].Number; v != nil {
		o.Total = *v
	}
	if s := props[propStatus].Select; s != nil && s.Name != "" {
		o.Status = model.Status(s.Name)
	}
	if v := props[propSlipURL].URL; v != nil {
		o.SlipURL = *v
	}
	return o
}
