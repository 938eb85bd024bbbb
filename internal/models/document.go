package models

import "go.mongodb.org/mongo-driver/bson"

// Document is a loosely typed record as stored in a collection.
// Only the fields an operation needs are ever inspected.
type Document = bson.M

// Collection names in the mobile_bazar database.
const (
	ProductsCollection = "products"
	OrdersCollection   = "orders"
	ReviewCollection   = "review"
	UsersCollection    = "users"
)

// IDField is the store-assigned identifier key.
const IDField = "_id"

// RoleAdmin marks a privileged user.
const RoleAdmin = "admin"

// StringField returns doc[key] when it holds a string.
func StringField(doc Document, key string) string {
	if doc == nil {
		return ""
	}
	s, _ := doc[key].(string)
	return s
}

// WithoutID returns a shallow copy of doc with any client-supplied _id removed.
func WithoutID(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		if k == IDField {
			continue
		}
		out[k] = v
	}
	return out
}
