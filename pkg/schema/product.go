package schema

const ProductSchemaTextV1 = `{
	"type": "record",
	"namespace": "catalog",
	"name": "product",
	"fields": [
		{"name": "id", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "price", "type": "double"},
		{"name": "stock", "type": "long"},
		{"name": "category", "type": "string"},
		{"name": "brand", "type": "string"},
		{"name": "attributes", "type": {"type": "array", "items": "string"}, "default": []}
	]
}`

// ProductV1 is the wire shape of one catalog product record.
type ProductV1 struct {
	ID         string   `avro:"id"`
	Name       string   `avro:"name"`
	Price      float64  `avro:"price"`
	Stock      int      `avro:"stock"`
	Category   string   `avro:"category"`
	Brand      string   `avro:"brand"`
	Attributes []string `avro:"attributes"`
}
