package schema

const ProductRecallSchemaTextV1 = `{
	"type": "record",
	"namespace": "catalog",
	"name": "product_recall",
	"fields": [
		{"name": "product_id", "type": "string"},
		{"name": "recalled", "type": "boolean"}
	]
}`

// ProductRecallV1 is the wire shape of one recall rule event.
type ProductRecallV1 struct {
	ProductID string `avro:"product_id"`
	Recalled  bool   `avro:"recalled"`
}
