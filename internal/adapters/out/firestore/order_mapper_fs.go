// internal/adapters/out/firestore/order_mapper_fs.go
package firestore

import (
	fscommon "github.com/ridoy-softworldit/bdm-bazar-backend/internal/adapters/out/firestore/common"
	orderdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/order"
)

// Document field names follow the original collection layout: the line
// items live under "orderInfo", the contact block under "customerInfo".

func docToOrder(id string, data map[string]any) orderdom.Order {
	o := orderdom.Order{
		ID:          id,
		OrderID:     fscommon.GetString(data, "orderId"),
		CustomerID:  fscommon.GetString(data, "customerId"),
		TotalAmount: fscommon.GetFloat(data, "totalAmount"),
		CreatedAt:   fscommon.GetTime(data, "createdAt"),
		UpdatedAt:   fscommon.GetTimePtr(data, "updatedAt"),
	}

	ci := fscommon.GetMap(data, "customerInfo")
	o.Customer = orderdom.CustomerSnapshot{
		Name:    fscommon.GetString(ci, "name"),
		Email:   fscommon.GetString(ci, "email"),
		Phone:   fscommon.GetString(ci, "phone"),
		Address: fscommon.GetString(ci, "address"),
	}

	pi := fscommon.GetMap(data, "paymentInfo")
	o.Payment = orderdom.PaymentSnapshot{
		Method:        fscommon.GetString(pi, "method"),
		TransactionID: fscommon.GetString(pi, "transactionId"),
	}

	for _, raw := range fscommon.GetSlice(data, "orderInfo") {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		o.Items = append(o.Items, orderdom.LineItem{
			ProductID:      fscommon.GetString(m, "productId"),
			TrackingNumber: fscommon.GetString(m, "trackingNumber"),
			Status:         orderdom.Status(fscommon.GetString(m, "status")),
			Quantity:       fscommon.GetInt(m, "quantity"),
			Price:          fscommon.GetFloat(m, "price"),
			OrderedAt:      fscommon.GetTime(m, "orderedAt"),
		})
	}
	return o
}

func orderToDoc(o orderdom.Order) map[string]any {
	doc := map[string]any{
		"orderId":      o.OrderID,
		"customerId":   o.CustomerID,
		"orderInfo":    itemsToDoc(o.Items),
		"customerInfo": customerToDoc(o.Customer),
		"paymentInfo":  paymentToDoc(o.Payment),
		"totalAmount":  o.TotalAmount,
		"createdAt":    o.CreatedAt,
	}
	if o.UpdatedAt != nil {
		doc["updatedAt"] = o.UpdatedAt.UTC()
	}
	return doc
}

func itemsToDoc(items []orderdom.LineItem) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, map[string]any{
			"productId":      it.ProductID,
			"trackingNumber": it.TrackingNumber,
			"status":         string(it.Status),
			"quantity":       it.Quantity,
			"price":          it.Price,
			"orderedAt":      it.OrderedAt,
		})
	}
	return out
}

func customerToDoc(c orderdom.CustomerSnapshot) map[string]any {
	return map[string]any{
		"name":    c.Name,
		"email":   c.Email,
		"phone":   c.Phone,
		"address": c.Address,
	}
}

func paymentToDoc(p orderdom.PaymentSnapshot) map[string]any {
	return map[string]any{
		"method":        p.Method,
		"transactionId": p.TransactionID,
	}
}
