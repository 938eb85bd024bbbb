package models

// ProductFields are the fields PUT /updateProduct may replace.
var ProductFields = []string{"name", "img", "description", "price"}

// ProductPatch returns the $set document for the product fields present in body.
// Values keep whatever JSON type the client sent.
func ProductPatch(body Document) Document {
	patch := Document{}
	for _, field := range ProductFields {
		if v, ok := body[field]; ok {
			patch[field] = v
		}
	}
	return patch
}
